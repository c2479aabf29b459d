package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	httpmiddleware "github.com/comelu/waitlist-api/internal/http/middleware"
	"github.com/comelu/waitlist-api/internal/leads"
	"github.com/comelu/waitlist-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	LeadsHandler   *leads.Handler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// The submit handler owns its own method dispatch (OPTIONS/POST/405)
	// and CORS headers, so it is mounted for all methods.
	r.HandleFunc("/submitLead", cfg.LeadsHandler.Submit)
	r.HandleFunc("/leads", cfg.LeadsHandler.Submit)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}
