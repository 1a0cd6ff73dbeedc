package trace

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cardledger/internal/log"
)

func TestMiddlewareAssignsRequestID(t *testing.T) {
	var buf bytes.Buffer
	m := NewMiddleware(func(*http.Request) string { return "10.0.0.1" }, log.NewWithWriter(&buf, slog.LevelInfo))

	var seen string
	var ctxLogger *log.Logger
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
		ctxLogger = log.FromContext(r.Context())
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/search?q=x", nil))

	if !strings.HasPrefix(seen, "req_") {
		t.Fatalf("request ID = %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Errorf("response header = %q, want %q", rec.Header().Get(RequestIDHeader), seen)
	}
	if ctxLogger.Component() != log.ComponentHTTP {
		t.Errorf("context logger component = %s", ctxLogger.Component())
	}

	out := buf.String()
	for _, want := range []string{"HTTP request started", "HTTP request completed", "status_code=404", "level=WARN", "request_id=" + seen, "client_ip=10.0.0.1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestMetrics(t *testing.T) {
	m := NewMiddleware(nil, nil)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 3; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}
	if got := m.GetMetrics().TotalRequests; got != 3 {
		t.Errorf("TotalRequests = %d, want 3", got)
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	if GenerateRequestID() == GenerateRequestID() {
		t.Error("request IDs should differ")
	}
}
