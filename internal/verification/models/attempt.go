package models

import (
	"strings"
	"time"

	ownermodels "ownerverify/internal/owner/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

// Decision is the terminal outcome of an attempt.
type Decision string

const (
	DecisionVerified  Decision = "VERIFIED"
	DecisionRejected  Decision = "REJECTED"
	DecisionNeedsInfo Decision = "NEEDS_INFO"
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(strings.ToUpper(strings.TrimSpace(s))); d {
	case DecisionVerified, DecisionRejected, DecisionNeedsInfo:
		return d, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "decision must be one of VERIFIED, REJECTED, NEEDS_INFO")
}

// RequiresReason reports whether a decision must carry a reason.
func (d Decision) RequiresReason() bool {
	return d == DecisionRejected || d == DecisionNeedsInfo
}

// OwnerStatus is the owner status a decision moves the owner to.
func (d Decision) OwnerStatus() ownermodels.VerificationStatus {
	switch d {
	case DecisionVerified:
		return ownermodels.StatusVerified
	case DecisionRejected:
		return ownermodels.StatusRejected
	default:
		return ownermodels.StatusNeedsInfo
	}
}

// ErrAttemptCompleted is the message surfaced for any write to a completed attempt.
const ErrAttemptCompleted = "This verification attempt has already been completed"

// Attempt is one verification cycle for an owner. OPEN until CompletedAt is set,
// then immutable.
type Attempt struct {
	ID             id.VerificationID
	OwnerID        id.OwnerID
	InitiatedBy    id.ActorID
	Sections       Sections
	DraftData      DraftData
	CompletedAt    *time.Time
	CompletedBy    *id.ActorID
	Decision       *Decision
	DecisionReason string
	CreatedAt      time.Time
	LastUpdated    time.Time
}

// NewAttempt opens an attempt with every section INCOMPLETE.
func NewAttempt(ownerID id.OwnerID, actor id.ActorID, now time.Time) *Attempt {
	return &Attempt{
		ID:          id.NewVerificationID(),
		OwnerID:     ownerID,
		InitiatedBy: actor,
		Sections:    NewSections(),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

func (a *Attempt) IsOpen() bool {
	return a.CompletedAt == nil
}

func (a *Attempt) IsVerified() bool {
	return !a.IsOpen() && a.Decision != nil && *a.Decision == DecisionVerified
}

func (a *Attempt) ensureOpen() error {
	if !a.IsOpen() {
		return dErrors.New(dErrors.CodeInvalidState, ErrAttemptCompleted)
	}
	return nil
}

// ApplyDraft overwrites the draft. Sections and decision are untouched.
func (a *Attempt) ApplyDraft(draft DraftData, now time.Time) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	a.DraftData = draft
	a.LastUpdated = now
	return nil
}

// Complete moves the attempt to its terminal state.
func (a *Attempt) Complete(actor id.ActorID, decision Decision, reason string, sections Sections, now time.Time) error {
	if err := a.ensureOpen(); err != nil {
		return err
	}
	completedAt := now
	completedBy := actor
	a.CompletedAt = &completedAt
	a.CompletedBy = &completedBy
	a.Decision = &decision
	a.DecisionReason = reason
	a.Sections = sections
	a.LastUpdated = now
	return nil
}
