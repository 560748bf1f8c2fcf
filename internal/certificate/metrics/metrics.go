package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for certificate issuance and public validation.
type Metrics struct {
	Issued           prometheus.Counter
	NumberCollisions prometheus.Counter
	Revoked          prometheus.Counter
	Validations      *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Issued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certificates_issued_total",
			Help: "Verification certificates issued",
		}),
		NumberCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certificate_number_collisions_total",
			Help: "Certificate number collisions that were retried with a fresh number",
		}),
		Revoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "certificates_revoked_total",
			Help: "Verification certificates revoked",
		}),
		Validations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "certificate_validations_total",
			Help: "Public certificate validations by outcome",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncIssued() {
	if m == nil {
		return
	}
	m.Issued.Inc()
}

func (m *Metrics) IncNumberCollision() {
	if m == nil {
		return
	}
	m.NumberCollisions.Inc()
}

func (m *Metrics) IncRevoked() {
	if m == nil {
		return
	}
	m.Revoked.Inc()
}

func (m *Metrics) ObserveValidation(result string) {
	if m == nil {
		return
	}
	m.Validations.WithLabelValues(result).Inc()
}
