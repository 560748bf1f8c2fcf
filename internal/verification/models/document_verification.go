package models

import (
	"strings"
	"time"

	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

// DocumentStatus is the reviewer's verdict on one document within an attempt.
type DocumentStatus string

const (
	DocumentPending          DocumentStatus = "PENDING"
	DocumentVerified         DocumentStatus = "VERIFIED"
	DocumentRejected         DocumentStatus = "REJECTED"
	DocumentUnreadable       DocumentStatus = "UNREADABLE"
	DocumentExpired          DocumentStatus = "EXPIRED"
	DocumentInconsistentData DocumentStatus = "INCONSISTENT_DATA"
	DocumentSuspectedFraud   DocumentStatus = "SUSPECTED_FRAUD"
	DocumentOtherIssue       DocumentStatus = "OTHER_ISSUE"
	DocumentNeedsReview      DocumentStatus = "NEEDS_REVIEW"
	DocumentNotApplicable    DocumentStatus = "NOT_APPLICABLE"
)

// AllDocumentStatuses is the display order used by breakdowns.
var AllDocumentStatuses = []DocumentStatus{
	DocumentPending, DocumentVerified, DocumentRejected, DocumentUnreadable, DocumentExpired,
	DocumentInconsistentData, DocumentSuspectedFraud, DocumentOtherIssue, DocumentNeedsReview,
	DocumentNotApplicable,
}

var noteRequired = map[DocumentStatus]bool{
	DocumentRejected:         true,
	DocumentUnreadable:       true,
	DocumentExpired:          true,
	DocumentInconsistentData: true,
	DocumentSuspectedFraud:   true,
	DocumentOtherIssue:       true,
	DocumentNeedsReview:      true,
}

func ParseDocumentStatus(s string) (DocumentStatus, error) {
	st := DocumentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if st.IsValid() {
		return st, nil
	}
	return "", dErrors.New(dErrors.CodeValidation, "unknown document status: "+s)
}

func (s DocumentStatus) IsValid() bool {
	for _, known := range AllDocumentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// RequiresNote reports whether reviewers are expected to explain the status.
// The requirement is advisory and never rejects a write.
func (s DocumentStatus) RequiresNote() bool {
	return noteRequired[s]
}

// DocumentVerification is keyed by (VerificationID, DocumentID) and overwritten in place.
type DocumentVerification struct {
	VerificationID id.VerificationID
	DocumentID     id.DocumentID
	Status         DocumentStatus
	Notes          string
	VerifiedBy     id.ActorID
	VerifiedAt     time.Time
}

// DocumentDecision is one requested document verdict, as carried by a decision submission.
type DocumentDecision struct {
	DocumentID id.DocumentID
	Status     DocumentStatus
	Notes      string
}

// UpsertResult surfaces the advisory note requirement alongside the stored record.
type UpsertResult struct {
	Verification   *DocumentVerification
	PreviousStatus DocumentStatus
	RequiresNote   bool
	NoteMissing    bool
}

func NewUpsertResult(dv *DocumentVerification, previous DocumentStatus) *UpsertResult {
	requires := dv.Status.RequiresNote()
	return &UpsertResult{
		Verification:   dv,
		PreviousStatus: previous,
		RequiresNote:   requires,
		NoteMissing:    requires && strings.TrimSpace(dv.Notes) == "",
	}
}
