package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/comelu/waitlist-api/internal/leads"
	"github.com/comelu/waitlist-api/pkg/logging"
)

func newTestRouter() http.Handler {
	return New(&Config{
		Logger:       logging.Default(),
		LeadsHandler: leads.NewHandler(leads.NewInMemoryRepository(), nil, nil, nil, logging.Default()),
	})
}

func TestRouterPreflight(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/submitLead", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", w.Body.String())
	}
}

func TestRouterSubmit(t *testing.T) {
	r := newTestRouter()

	body := `{"nombre":"Carlos González","email":"carlos@empresa.cl","telefonoPais":"+56",
		"telefonoNumero":"912345678","rol":"Laboratorista","tamano":"1–3",
		"dolor":"Archivos perdidos","intereses":["Órdenes + estados por etapa"],"checklist":true}`

	for _, path := range []string{"/submitLead", "/leads"} {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d: %s", path, w.Code, w.Body.String())
		}
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/submitLead", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", w.Code)
	}
}

func TestRouterHealth(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
