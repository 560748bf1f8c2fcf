package models

import (
	"strings"
	"time"

	id "ownerverify/pkg/domain"
)

// VerificationStatus is the owner-level outcome of the latest verification cycle.
type VerificationStatus string

const (
	StatusUnverified          VerificationStatus = "UNVERIFIED"
	StatusPendingVerification VerificationStatus = "PENDING_VERIFICATION"
	StatusVerified            VerificationStatus = "VERIFIED"
	StatusRejected            VerificationStatus = "REJECTED"
	StatusNeedsInfo           VerificationStatus = "NEEDS_INFO"
)

// VerificationValidity is how long a VERIFIED status holds before re-verification.
const VerificationValidity = 365 * 24 * time.Hour

// BusinessOwner is the identity under verification.
type BusinessOwner struct {
	ID           id.OwnerID
	FirstName    string
	MiddleName   string
	LastName     string
	BusinessName string
	Email        string
	Phone        string
	TaxID        string

	VerificationStatus           VerificationStatus
	CurrentVerificationAttemptID *id.VerificationID
	LastVerifiedAt               *time.Time
	VerificationExpiresAt        *time.Time

	AssignedManagerID id.ActorID
	DeletedAt         *time.Time
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName joins the non-empty name parts.
func (o *BusinessOwner) FullName() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{o.FirstName, o.MiddleName, o.LastName} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// IsManagedBy is the authorization rule for every manager operation:
// the owner exists, is not soft-deleted and is assigned to actor.
func (o *BusinessOwner) IsManagedBy(actor id.ActorID) bool {
	return o != nil && o.DeletedAt == nil && !actor.IsNil() && o.AssignedManagerID == actor
}

// HasOpenAttempt reports whether a verification attempt is in progress.
func (o *BusinessOwner) HasOpenAttempt() bool {
	return o.CurrentVerificationAttemptID != nil
}

// ApplyAttemptStarted links a newly opened attempt.
func (o *BusinessOwner) ApplyAttemptStarted(attemptID id.VerificationID, now time.Time) {
	o.CurrentVerificationAttemptID = &attemptID
	o.VerificationStatus = StatusPendingVerification
	o.UpdatedAt = now
}

// ApplyDecision records the outcome of a completed attempt and unlinks it.
// The owner may start a new attempt afterwards whatever the outcome.
func (o *BusinessOwner) ApplyDecision(status VerificationStatus, now time.Time) {
	o.VerificationStatus = status
	if status == StatusVerified {
		verifiedAt := now
		expiresAt := now.Add(VerificationValidity)
		o.LastVerifiedAt = &verifiedAt
		o.VerificationExpiresAt = &expiresAt
	}
	o.CurrentVerificationAttemptID = nil
	o.UpdatedAt = now
}

// Masked returns a copy safe to hand to callers: identifiers keep only their
// last 4 characters. TaxID is the only government identifier an owner
// carries; names, email and phone are contact details and stay readable. Any
// identifier field added to BusinessOwner must be masked here too.
func (o BusinessOwner) Masked() BusinessOwner {
	o.TaxID = MaskLast4(o.TaxID)
	return o
}

// MaskLast4 replaces all but the last four characters with '*'.
func MaskLast4(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
