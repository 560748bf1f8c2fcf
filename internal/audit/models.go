package audit

import (
	"github.com/google/uuid"

	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
)

// Event is one activity-feed entry to record. OwnerID may be left nil when the
// entity type has a registered owner resolver.
type Event struct {
	EntityType  audit.EntityType
	EntityID    string
	Action      audit.Action
	PerformedBy id.ActorID
	Details     map[string]any
	OwnerID     *id.OwnerID
}

// HistoryEvent is one verification-scoped history entry. The linked activity
// entry defaults to the verification entity unless ActivityEntity is set.
type HistoryEvent struct {
	VerificationID   id.VerificationID
	Action           audit.Action
	PerformedBy      id.ActorID
	Details          map[string]any
	StepNumber       *int
	OwnerID          *id.OwnerID
	ActivityEntity   audit.EntityType
	ActivityEntityID string
}

// Result reports the outcome of a best-effort write. Callers may inspect it
// but are never expected to fail because of it.
type Result struct {
	Success bool
	ID      uuid.UUID
	Err     error
}
