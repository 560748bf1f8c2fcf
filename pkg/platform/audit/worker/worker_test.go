package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ownerverify/pkg/platform/audit/store/postgres"
)

type fakeOutbox struct {
	entries []postgres.OutboxEntry
	marked  []uuid.UUID
}

func (f *fakeOutbox) FetchUnpublished(_ context.Context, limit int) ([]postgres.OutboxEntry, error) {
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func (f *fakeOutbox) MarkPublished(_ context.Context, ids []uuid.UUID, _ time.Time) error {
	f.marked = append(f.marked, ids...)
	return nil
}

type fakePublisher struct {
	failOn int
	calls  int
	keys   []string
}

func (p *fakePublisher) Publish(_ context.Context, _ string, key, _ []byte, _ map[string]string) error {
	p.calls++
	if p.failOn > 0 && p.calls == p.failOn {
		return errors.New("broker unavailable")
	}
	p.keys = append(p.keys, string(key))
	return nil
}

func entries(n int) []postgres.OutboxEntry {
	out := make([]postgres.OutboxEntry, n)
	for i := range out {
		out[i] = postgres.OutboxEntry{ID: uuid.New(), AggregateID: uuid.NewString(), EventType: "VERIFICATION_STARTED", Payload: []byte(`{}`)}
	}
	return out
}

func TestRunOnce_PublishesAndMarksBatch(t *testing.T) {
	outbox := &fakeOutbox{entries: entries(3)}
	pub := &fakePublisher{}
	w := NewWorker(outbox, pub, "audit.activity", WithBatchSize(2))

	n, err := w.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []uuid.UUID{outbox.entries[0].ID, outbox.entries[1].ID}, outbox.marked)
	assert.Equal(t, outbox.entries[0].AggregateID, pub.keys[0])
}

func TestRunOnce_StopsAtFirstFailure(t *testing.T) {
	outbox := &fakeOutbox{entries: entries(3)}
	pub := &fakePublisher{failOn: 2}
	w := NewWorker(outbox, pub, "audit.activity")

	n, err := w.RunOnce(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []uuid.UUID{outbox.entries[0].ID}, outbox.marked)
	assert.Equal(t, 2, pub.calls)
}
