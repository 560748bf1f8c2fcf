package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the verification engine.
type Metrics struct {
	AttemptsStarted prometheus.Counter

	// Decisions by outcome (VERIFIED, REJECTED, NEEDS_INFO)
	Decisions *prometheus.CounterVec

	DocumentUpdates *prometheus.CounterVec

	// Post-commit side effects that failed and were swallowed
	CertificateFailures  prometheus.Counter
	NotificationFailures *prometheus.CounterVec

	ConflictRetries prometheus.Counter
	DecisionLatency prometheus.Histogram
}

func New() *Metrics {
	return &Metrics{
		AttemptsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verification_attempts_started_total",
			Help: "Verification attempts opened",
		}),
		Decisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_decisions_total",
			Help: "Submitted verification decisions by outcome",
		}, []string{"decision"}),
		DocumentUpdates: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_document_updates_total",
			Help: "Document verification upserts by resulting status",
		}, []string{"status"}),
		CertificateFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certificate_generation_failures_total",
			Help: "Certificates that could not be issued after a VERIFIED decision",
		}),
		NotificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "verification_notification_failures_total",
			Help: "Owner notifications that failed after commit, by type",
		}, []string{"type"}),
		ConflictRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "verification_conflict_retries_total",
			Help: "Transactions re-run after losing an open-attempt or owner version race",
		}),
		DecisionLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "verification_decision_duration_seconds",
			Help:    "Duration of decision submission including post-commit effects",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncAttemptStarted() {
	if m != nil {
		m.AttemptsStarted.Inc()
	}
}

func (m *Metrics) IncDecision(decision string) {
	if m != nil {
		m.Decisions.WithLabelValues(decision).Inc()
	}
}

func (m *Metrics) IncDocumentUpdate(status string) {
	if m != nil {
		m.DocumentUpdates.WithLabelValues(status).Inc()
	}
}

func (m *Metrics) IncCertificateFailure() {
	if m != nil {
		m.CertificateFailures.Inc()
	}
}

func (m *Metrics) IncNotificationFailure(kind string) {
	if m != nil {
		m.NotificationFailures.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncConflictRetry() {
	if m != nil {
		m.ConflictRetries.Inc()
	}
}

func (m *Metrics) ObserveDecisionLatency(d time.Duration) {
	if m != nil {
		m.DecisionLatency.Observe(d.Seconds())
	}
}
