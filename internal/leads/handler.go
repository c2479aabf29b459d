package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/comelu/waitlist-api/internal/observability/metrics"
	"github.com/comelu/waitlist-api/internal/ratelimit"
	"github.com/comelu/waitlist-api/pkg/logging"
)

// The permissive cross-origin header set every response carries. The
// landing page is served from a different origin than this endpoint.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "authorization, x-client-info, apikey, content-type",
	"Access-Control-Allow-Methods": "POST, OPTIONS",
}

type submitResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Handler handles waitlist submissions.
type Handler struct {
	repo     Repository
	limiter  ratelimit.Limiter
	notifier *confirmationDispatch
	metrics  *metrics.SubmissionMetrics
	logger   *logging.Logger

	// Hook for the detached confirmation send; tests replace it.
	sendConfirmation func(email, name string)
}

// ConfirmationSender sends the best-effort confirmation email.
type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, email, name string)
}

type confirmationDispatch struct {
	sender  ConfirmationSender
	timeout time.Duration
}

// NewHandler creates the submission handler. repo may be nil when
// storage is not configured; submissions then fail with a generic 500.
// confirmations may be nil to disable the acknowledgement entirely.
func NewHandler(repo Repository, limiter ratelimit.Limiter, confirmations ConfirmationSender, m *metrics.SubmissionMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{
		repo:    repo,
		limiter: limiter,
		metrics: m,
		logger:  logger,
	}
	if confirmations != nil {
		h.notifier = &confirmationDispatch{sender: confirmations, timeout: 15 * time.Second}
	}
	h.sendConfirmation = h.detachedConfirmation
	return h
}

// Submit handles OPTIONS and POST on the waitlist endpoint. The flow is
// terminal at the first response: preflight, method check, rate limit,
// JSON parse, validation, honeypot short-circuit, insert, detached
// confirmation.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	for k, v := range corsHeaders {
		w.Header().Set(k, v)
	}

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
		return
	}

	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, submitResponse{OK: false, Error: "Method not allowed"})
		return
	}

	clientKey := ratelimit.ClientKey(r.Header)
	if h.limiter != nil && !h.limiter.Allow(clientKey) {
		h.logger.Warn("submission rate limited", "client_key", clientKey)
		h.metrics.ObserveSubmission(metrics.OutcomeRateLimited)
		h.writeJSON(w, http.StatusTooManyRequests, submitResponse{OK: false, Error: "Too many requests"})
		return
	}

	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		h.writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: "JSON inválido."})
		return
	}

	sub, err := ParseSubmission(body)
	if err != nil {
		h.metrics.ObserveSubmission(metrics.OutcomeRejected)
		h.writeJSON(w, http.StatusBadRequest, submitResponse{OK: false, Error: err.Error()})
		return
	}

	// Suspected bot traffic is absorbed silently: same success response,
	// nothing stored, nothing sent.
	if sub.IsBot() {
		h.logger.Info("honeypot triggered, absorbing submission", "client_key", clientKey)
		h.metrics.ObserveSubmission(metrics.OutcomeHoneypot)
		h.writeJSON(w, http.StatusOK, submitResponse{OK: true})
		return
	}

	if h.repo == nil {
		h.logger.Error("lead storage not configured, rejecting submission")
		h.metrics.ObserveSubmission(metrics.OutcomeConfigError)
		h.writeJSON(w, http.StatusInternalServerError, submitResponse{OK: false, Error: "Configuración de almacenamiento incompleta."})
		return
	}

	lead, err := h.repo.Create(r.Context(), sub)
	if err != nil {
		h.logger.Error("lead insert failed", "error", err)
		h.metrics.ObserveSubmission(metrics.OutcomeStorageError)
		h.writeJSON(w, http.StatusInternalServerError, submitResponse{OK: false, Error: "No se pudo guardar el lead."})
		return
	}

	h.logger.Info("lead stored", "id", lead.ID, "rol", lead.Rol, "tamano", lead.Tamano)

	// The response does not wait for the acknowledgement email; its
	// outcome never changes an already-decided success.
	if h.notifier != nil {
		h.sendConfirmation(sub.Email, sub.Nombre)
	}

	h.metrics.ObserveSubmission(metrics.OutcomeAccepted)
	h.writeJSON(w, http.StatusOK, submitResponse{OK: true})
}

func (h *Handler) detachedConfirmation(email, name string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.notifier.timeout)
		defer cancel()
		h.notifier.sender.SendConfirmation(ctx, email, name)
	}()
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body submitResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
