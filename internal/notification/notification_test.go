package notification

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	verificationmodels "ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/circuit"
	"ownerverify/pkg/requestcontext"
)

type capturePublisher struct {
	topic   string
	key     []byte
	value   []byte
	headers map[string]string
	err     error
}

func (p *capturePublisher) Publish(_ context.Context, topic string, key, value []byte, headers map[string]string) error {
	p.topic, p.key, p.value, p.headers = topic, key, value, headers
	return p.err
}

type countingNotifier struct {
	calls int
	err   error
}

func (n *countingNotifier) SendVerificationDecision(context.Context, id.OwnerID, verificationmodels.Decision, string) error {
	n.calls++
	return n.err
}

func (n *countingNotifier) SendDocumentStatus(context.Context, id.OwnerID, id.DocumentID, verificationmodels.DocumentStatus) error {
	n.calls++
	return n.err
}

func TestKafkaNotifier(t *testing.T) {
	pub := &capturePublisher{}
	n := NewKafkaNotifier(pub, "owner.notifications")
	ownerID := id.NewOwnerID()
	at := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithRequestID(requestcontext.WithTime(context.Background(), at), "req-7")

	require.NoError(t, n.SendVerificationDecision(ctx, ownerID, verificationmodels.DecisionRejected, "ID expired"))

	assert.Equal(t, "owner.notifications", pub.topic)
	assert.Equal(t, ownerID.String(), string(pub.key))
	assert.Equal(t, "req-7", pub.headers["request_id"])

	var msg Message
	require.NoError(t, json.Unmarshal(pub.value, &msg))
	assert.Equal(t, Message{
		Type:       TypeVerificationDecision,
		OwnerID:    ownerID.String(),
		Decision:   "REJECTED",
		Reason:     "ID expired",
		OccurredAt: at,
	}, msg)

	pub.err = errors.New("leader not available")
	err := n.SendDocumentStatus(ctx, ownerID, id.NewDocumentID(), verificationmodels.DocumentExpired)
	assert.ErrorContains(t, err, "leader not available")
}

func TestGuarded_OpensAfterRepeatedFailures(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Minute),
		circuit.WithClock(func() time.Time { return now }))
	inner := &countingNotifier{err: errors.New("timeout")}
	g := NewGuarded(inner, WithBreaker(breaker), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	ctx := context.Background()
	ownerID := id.NewOwnerID()

	for range 2 {
		err := g.SendVerificationDecision(ctx, ownerID, verificationmodels.DecisionVerified, "")
		assert.True(t, dErrors.HasCode(err, dErrors.CodeDependencyFailure))
	}
	require.True(t, breaker.IsOpen())

	err := g.SendVerificationDecision(ctx, ownerID, verificationmodels.DecisionVerified, "")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the notifier")

	now = now.Add(2 * time.Minute)
	inner.err = nil
	require.NoError(t, g.SendVerificationDecision(ctx, ownerID, verificationmodels.DecisionVerified, ""))
	assert.Equal(t, 3, inner.calls)
}
