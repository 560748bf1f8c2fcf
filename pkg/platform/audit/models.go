package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	id "ownerverify/pkg/domain"
)

// EntityType names the aggregate an activity entry is about.
type EntityType string

const (
	EntityBusinessOwner EntityType = "business_owner"
	EntityDocument      EntityType = "document"
	EntityVerification  EntityType = "verification"
	EntityCertificate   EntityType = "certificate"
)

// Action is the verb recorded on history and activity entries.
type Action string

const (
	ActionVerificationStarted         Action = "VERIFICATION_STARTED"
	ActionDraftSaved                  Action = "DRAFT_SAVED"
	ActionDocumentVerificationUpdated Action = "DOCUMENT_VERIFICATION_UPDATED"
	ActionVerificationCompleted       Action = "VERIFICATION_COMPLETED"
	ActionCertificateGenerated        Action = "CERTIFICATE_GENERATED"
	ActionCertificateRevoked          Action = "CERTIFICATE_REVOKED"
	ActionDocumentUploaded            Action = "DOCUMENT_UPLOADED"
	ActionCreate                      Action = "CREATE"
	ActionUpdate                      Action = "UPDATE"
	ActionDelete                      Action = "DELETE"
)

// ActivityLog is the cross-entity feed entry for one owner. Append-only.
type ActivityLog struct {
	ID          uuid.UUID
	OwnerID     id.OwnerID
	EntityType  EntityType
	EntityID    string
	Action      Action
	PerformedBy id.ActorID
	Description string
	Details     map[string]any
	RequestID   string
	ClientIP    string
	UserAgent   string
	CreatedAt   time.Time
}

// HistoryLog is the verification-scoped trail. Append-only.
type HistoryLog struct {
	ID             uuid.UUID
	VerificationID id.VerificationID
	Action         Action
	PerformedBy    id.ActorID
	Details        map[string]any
	StepNumber     *int
	CreatedAt      time.Time
}

// Store persists audit entries. Writes join the transaction carried by ctx when there is one.
type Store interface {
	AppendActivity(ctx context.Context, entry *ActivityLog) error
	AppendHistory(ctx context.Context, entry *HistoryLog) error
	ListActivityByOwner(ctx context.Context, ownerID id.OwnerID, limit int) ([]*ActivityLog, error)
	ListHistoryByVerification(ctx context.Context, verificationID id.VerificationID) ([]*HistoryLog, error)
}
