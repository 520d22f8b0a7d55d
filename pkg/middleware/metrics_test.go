package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusMiddleware(t *testing.T) {
	registry := prometheus.NewRegistry()
	mw := Prometheus(WithRegistry(registry))

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/x", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("status = %d, middleware must pass the response through", rec.Code)
	}

	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := map[string]bool{}
	for _, fam := range families {
		found[fam.GetName()] = true
	}
	if !found["zyte_requests_total"] {
		t.Errorf("zyte_requests_total not collected, got %v", found)
	}
	if !found["zyte_request_duration_seconds"] {
		t.Errorf("zyte_request_duration_seconds not collected, got %v", found)
	}
}

func TestRecordersNeverPanic(t *testing.T) {
	// The recorders are called from render paths that may run before any
	// middleware is constructed (static export, tests). They must not panic.
	RecordRender("ok")
	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheSize(3)
	RecordExpressionFailure()
}
