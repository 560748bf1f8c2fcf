package notification

import (
	"context"
	"encoding/json"
	"fmt"

	verificationmodels "ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/requestcontext"
)

// Publisher is satisfied by the Kafka producer.
type Publisher interface {
	Publish(ctx context.Context, topic string, key, value []byte, headers map[string]string) error
}

// KafkaNotifier publishes notification messages keyed by owner, so one owner's
// notifications stay ordered within a partition.
type KafkaNotifier struct {
	publisher Publisher
	topic     string
}

func NewKafkaNotifier(publisher Publisher, topic string) *KafkaNotifier {
	return &KafkaNotifier{publisher: publisher, topic: topic}
}

func (n *KafkaNotifier) SendVerificationDecision(ctx context.Context, ownerID id.OwnerID, decision verificationmodels.Decision, reason string) error {
	return n.publish(ctx, Message{
		Type:       TypeVerificationDecision,
		OwnerID:    ownerID.String(),
		Decision:   string(decision),
		Reason:     reason,
		OccurredAt: requestcontext.Now(ctx),
	})
}

func (n *KafkaNotifier) SendDocumentStatus(ctx context.Context, ownerID id.OwnerID, documentID id.DocumentID, status verificationmodels.DocumentStatus) error {
	return n.publish(ctx, Message{
		Type:       TypeDocumentStatus,
		OwnerID:    ownerID.String(),
		DocumentID: documentID.String(),
		Status:     string(status),
		OccurredAt: requestcontext.Now(ctx),
	})
}

func (n *KafkaNotifier) publish(ctx context.Context, msg Message) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	headers := map[string]string{"type": msg.Type}
	if rid := requestcontext.RequestID(ctx); rid != "" {
		headers["request_id"] = rid
	}
	if err := n.publisher.Publish(ctx, n.topic, []byte(msg.OwnerID), b, headers); err != nil {
		return fmt.Errorf("publish %s notification: %w", msg.Type, err)
	}
	return nil
}
