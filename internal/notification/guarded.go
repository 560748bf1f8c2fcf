package notification

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	verificationmodels "ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/circuit"
)

// ErrCircuitOpen is returned without attempting delivery while the breaker is open.
var ErrCircuitOpen = errors.New("notifier circuit open")

type Metrics struct {
	Failures     *prometheus.CounterVec
	Skipped      prometheus.Counter
	BreakerState prometheus.Gauge
}

func NewMetrics() *Metrics {
	return &Metrics{
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_failures_total",
			Help: "Notification deliveries that failed, by notification type",
		}, []string{"type"}),
		Skipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "notification_skipped_total",
			Help: "Notifications skipped because the circuit breaker was open",
		}),
		BreakerState: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "notification_circuit_breaker_state",
			Help: "Notifier circuit breaker state (0=closed, 1=open)",
		}),
	}
}

// Guarded bounds every delivery with a timeout and stops calling a failing
// notifier until the breaker cooldown has passed.
type Guarded struct {
	next    Notifier
	breaker *circuit.Breaker
	timeout time.Duration
	logger  *slog.Logger
	metrics *Metrics
}

type GuardOption func(*Guarded)

func WithTimeout(d time.Duration) GuardOption {
	return func(g *Guarded) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) GuardOption {
	return func(g *Guarded) { g.breaker = b }
}

func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guarded) { g.logger = logger }
}

func WithMetrics(m *Metrics) GuardOption {
	return func(g *Guarded) { g.metrics = m }
}

func NewGuarded(next Notifier, opts ...GuardOption) *Guarded {
	g := &Guarded{
		next:    next,
		breaker: circuit.New("notifier"),
		timeout: 3 * time.Second,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Guarded) SendVerificationDecision(ctx context.Context, ownerID id.OwnerID, decision verificationmodels.Decision, reason string) error {
	return g.call(ctx, TypeVerificationDecision, func(ctx context.Context) error {
		return g.next.SendVerificationDecision(ctx, ownerID, decision, reason)
	})
}

func (g *Guarded) SendDocumentStatus(ctx context.Context, ownerID id.OwnerID, documentID id.DocumentID, status verificationmodels.DocumentStatus) error {
	return g.call(ctx, TypeDocumentStatus, func(ctx context.Context) error {
		return g.next.SendDocumentStatus(ctx, ownerID, documentID, status)
	})
}

func (g *Guarded) call(ctx context.Context, kind string, fn func(context.Context) error) error {
	if !g.breaker.Allow() {
		if g.metrics != nil {
			g.metrics.Skipped.Inc()
		}
		return dErrors.Wrap(ErrCircuitOpen, dErrors.CodeDependencyFailure, "notifier unavailable")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if err := fn(ctx); err != nil {
		_, change := g.breaker.RecordFailure()
		if change.Opened {
			g.logger.WarnContext(ctx, "notifier circuit opened", "breaker", g.breaker.Name())
			g.setState(1)
		}
		if g.metrics != nil {
			g.metrics.Failures.WithLabelValues(kind).Inc()
		}
		return dErrors.Wrap(err, dErrors.CodeDependencyFailure, "notification delivery failed")
	}
	if _, change := g.breaker.RecordSuccess(); change.Closed {
		g.logger.InfoContext(ctx, "notifier circuit closed", "breaker", g.breaker.Name())
		g.setState(0)
	}
	return nil
}

func (g *Guarded) setState(v float64) {
	if g.metrics != nil {
		g.metrics.BreakerState.Set(v)
	}
}
