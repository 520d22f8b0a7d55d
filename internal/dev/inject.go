package dev

import (
	"bytes"
	"net/http"
	"strconv"
	"strings"
)

// InjectScript is a response middleware that inserts DevClientScript before
// the closing body tag of HTML responses, so pages served in development
// mode connect back to the reload endpoint. Non-HTML responses and WebSocket
// upgrades pass through untouched.
func InjectScript(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Upgrade requests need the raw connection (http.Hijacker).
		if r.Header.Get("Upgrade") != "" {
			next.ServeHTTP(w, r)
			return
		}
		inj := &scriptInjector{ResponseWriter: w}
		next.ServeHTTP(inj, r)
		inj.finish()
	})
}

// scriptInjector buffers HTML responses so the client script can be spliced
// in before the body closes. Anything without a text/html content type is
// forwarded as written.
type scriptInjector struct {
	http.ResponseWriter
	status      int
	buf         bytes.Buffer
	decided     bool
	passthrough bool
}

func (i *scriptInjector) WriteHeader(status int) {
	i.status = status
	i.decide()
	if i.passthrough {
		i.ResponseWriter.WriteHeader(status)
	}
}

func (i *scriptInjector) Write(p []byte) (int, error) {
	i.decide()
	if i.passthrough {
		return i.ResponseWriter.Write(p)
	}
	return i.buf.Write(p)
}

// decide fixes the buffering choice on the first write, when the handler has
// set its Content-Type.
func (i *scriptInjector) decide() {
	if i.decided {
		return
	}
	i.decided = true
	i.passthrough = !strings.Contains(i.Header().Get("Content-Type"), "text/html")
}

func (i *scriptInjector) finish() {
	if i.passthrough {
		return
	}
	body := i.buf.Bytes()
	if idx := bytes.LastIndex(body, []byte("</body>")); idx != -1 {
		var out bytes.Buffer
		out.Grow(len(body) + len(DevClientScript))
		out.Write(body[:idx])
		out.WriteString(DevClientScript)
		out.Write(body[idx:])
		body = out.Bytes()
	}

	i.Header().Set("Content-Length", strconv.Itoa(len(body)))
	status := i.status
	if status == 0 {
		status = http.StatusOK
	}
	i.ResponseWriter.WriteHeader(status)
	i.ResponseWriter.Write(body)
}
