package metrics

import "github.com/prometheus/client_golang/prometheus"

// Submission outcome labels.
const (
	OutcomeAccepted     = "accepted"
	OutcomeRejected     = "rejected"
	OutcomeRateLimited  = "rate_limited"
	OutcomeHoneypot     = "honeypot"
	OutcomeStorageError = "storage_error"
	OutcomeConfigError  = "config_error"
)

// SubmissionMetrics exposes counters for waitlist submission outcomes.
type SubmissionMetrics struct {
	submissionsTotal *prometheus.CounterVec
}

func NewSubmissionMetrics(reg prometheus.Registerer) *SubmissionMetrics {
	m := &SubmissionMetrics{
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "comelu",
			Subsystem: "waitlist",
			Name:      "submissions_total",
			Help:      "Total waitlist submissions by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submissionsTotal)
	return m
}

func (m *SubmissionMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}
