// Package notification publishes owner-facing notification events. Delivery
// channels (email, SMS) consume the published events elsewhere.
package notification

import (
	"context"
	"time"

	verificationmodels "ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
)

// Notifier sends owner notifications. Callers treat every method as best-effort.
type Notifier interface {
	SendVerificationDecision(ctx context.Context, ownerID id.OwnerID, decision verificationmodels.Decision, reason string) error
	SendDocumentStatus(ctx context.Context, ownerID id.OwnerID, documentID id.DocumentID, status verificationmodels.DocumentStatus) error
}

const (
	TypeVerificationDecision = "verification_decision"
	TypeDocumentStatus       = "document_status"
)

// Message is the wire format of a notification event.
type Message struct {
	Type       string    `json:"type"`
	OwnerID    string    `json:"businessOwnerId"`
	Decision   string    `json:"decision,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	DocumentID string    `json:"documentId,omitempty"`
	Status     string    `json:"status,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
