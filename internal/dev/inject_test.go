package dev

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func htmlHandler(status int, body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(body))
	})
}

func TestInjectScript(t *testing.T) {
	rec := httptest.NewRecorder()
	h := InjectScript(htmlHandler(http.StatusOK, "<html><body><p>hi</p></body></html>"))
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	body := rec.Body.String()
	if !strings.Contains(body, DevClientScript) {
		t.Fatalf("client script not injected:\n%s", body)
	}
	script := strings.Index(body, "<script>")
	closing := strings.Index(body, "</body>")
	if script == -1 || closing < script {
		t.Error("script must sit before the closing body tag")
	}
	if got := rec.Header().Get("Content-Length"); got != strconv.Itoa(len(body)) {
		t.Errorf("Content-Length = %q, body is %d bytes", got, len(body))
	}
}

func TestInjectScriptPreservesStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	h := InjectScript(htmlHandler(http.StatusInternalServerError, "<html><body>boom</body></html>"))
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	// Error pages get the script too, so the browser can recover after a fix.
	if !strings.Contains(rec.Body.String(), DevClientScript) {
		t.Error("client script not injected into error page")
	}
}

func TestInjectScriptSkipsNonHTML(t *testing.T) {
	const payload = `{"ok":true}`
	rec := httptest.NewRecorder()
	h := InjectScript(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api", nil))

	if rec.Body.String() != payload {
		t.Errorf("non-HTML body changed: %q", rec.Body.String())
	}
}

func TestInjectScriptSkipsHTMLWithoutBody(t *testing.T) {
	const fragment = "<p>partial</p>"
	rec := httptest.NewRecorder()
	h := InjectScript(htmlHandler(http.StatusOK, fragment))
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Body.String() != fragment {
		t.Errorf("body without a closing tag changed: %q", rec.Body.String())
	}
}

func TestInjectScriptSkipsUpgradeRequests(t *testing.T) {
	rec := httptest.NewRecorder()
	h := InjectScript(htmlHandler(http.StatusOK, "<html><body></body></html>"))
	req := httptest.NewRequest("GET", ReloadEndpoint, nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")
	h.ServeHTTP(rec, req)

	if strings.Contains(rec.Body.String(), DevClientScript) {
		t.Error("upgrade requests must bypass injection")
	}
}

func TestDevClientScriptTargetsReloadEndpoint(t *testing.T) {
	if !strings.Contains(DevClientScript, ReloadEndpoint) {
		t.Errorf("client script does not connect to %s", ReloadEndpoint)
	}
}
