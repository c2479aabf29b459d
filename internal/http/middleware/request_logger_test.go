package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/comelu/waitlist-api/pkg/logging"
)

func TestRequestLoggerPassthrough(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusTeapot)
	})

	handler := RequestLogger(logging.Default())(next)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !called {
		t.Fatal("next handler was not invoked")
	}
	if w.Code != http.StatusTeapot {
		t.Fatalf("expected status passthrough, got %d", w.Code)
	}
}

func TestRequestLoggerNilLogger(t *testing.T) {
	handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
}
