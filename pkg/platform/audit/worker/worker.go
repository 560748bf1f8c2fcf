package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"ownerverify/pkg/platform/audit/store/postgres"
)

// Outbox is the slice of the postgres audit store the relay needs.
type Outbox interface {
	FetchUnpublished(ctx context.Context, limit int) ([]postgres.OutboxEntry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers map[string]string) error
}

// Metrics for the outbox relay.
type Metrics struct {
	Published prometheus.Counter
	Failures  prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		Published: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ownerverify_audit_outbox_published_total",
			Help: "Audit outbox entries published to Kafka",
		}),
		Failures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ownerverify_audit_outbox_publish_failures_total",
			Help: "Audit outbox publish attempts that failed and will be retried",
		}),
	}
}

// Worker relays outbox rows to Kafka. Delivery is at-least-once: a row is
// marked published only after the broker acknowledged it.
type Worker struct {
	outbox    Outbox
	publisher Publisher
	topic     string
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
	metrics   *Metrics
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) { w.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(w *Worker) { w.metrics = m }
}

func NewWorker(outbox Outbox, publisher Publisher, topic string, opts ...Option) *Worker {
	w := &Worker{
		outbox:    outbox,
		publisher: publisher,
		topic:     topic,
		interval:  2 * time.Second,
		batchSize: 100,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if _, err := w.RunOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.ErrorContext(ctx, "audit outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RunOnce publishes one batch and returns how many rows were marked published.
// Publishing stops at the first failure so rows keep their order.
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	entries, err := w.outbox.FetchUnpublished(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		headers := map[string]string{"event_type": e.EventType, "outbox_id": e.ID.String()}
		if err := w.publisher.Publish(ctx, w.topic, []byte(e.AggregateID), e.Payload, headers); err != nil {
			publishErr = err
			if w.metrics != nil {
				w.metrics.Failures.Inc()
			}
			break
		}
		published = append(published, e.ID)
	}

	if err := w.outbox.MarkPublished(ctx, published, time.Now()); err != nil {
		return 0, err
	}
	if w.metrics != nil {
		w.metrics.Published.Add(float64(len(published)))
	}
	return len(published), publishErr
}
