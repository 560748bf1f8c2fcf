package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Failures *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "audit_log_failures_total",
			Help: "Best-effort audit writes that failed, by entry kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) IncFailure(kind string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(kind).Inc()
}
