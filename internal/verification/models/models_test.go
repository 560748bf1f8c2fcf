package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ownermodels "ownerverify/internal/owner/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
)

func allComplete() Sections {
	return Sections{
		Identity:            SectionState{Status: SectionComplete},
		Address:             SectionState{Status: SectionComplete},
		BusinessAffiliation: SectionState{Status: SectionComplete},
	}
}

func TestAttempt_CompleteIsWriteOnce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	actor := id.NewActorID()
	a := NewAttempt(id.NewOwnerID(), actor, now)

	require.True(t, a.IsOpen())
	require.Equal(t, NewSections(), a.Sections)

	require.NoError(t, a.Complete(actor, DecisionVerified, "", allComplete(), now.Add(time.Minute)))
	assert.False(t, a.IsOpen())
	assert.True(t, a.IsVerified())

	err := a.Complete(actor, DecisionRejected, "late", NewSections(), now.Add(2*time.Minute))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	assert.Equal(t, ErrAttemptCompleted, dErrors.Message(err))
	assert.Equal(t, DecisionVerified, *a.Decision)
	assert.Equal(t, allComplete(), a.Sections)

	err = a.ApplyDraft(DraftData{CurrentStep: 2}, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestAttempt_ApplyDraftLeavesSectionsAlone(t *testing.T) {
	now := time.Now()
	a := NewAttempt(id.NewOwnerID(), id.NewActorID(), now)
	a.Sections.Identity = SectionState{Status: SectionFlagged, Notes: "blurry"}

	draft := DraftData{CurrentStep: 1, Identity: json.RawMessage(`{"step1":"x"}`)}
	require.NoError(t, a.ApplyDraft(draft, now.Add(time.Second)))

	assert.Equal(t, draft, a.DraftData)
	assert.Equal(t, SectionFlagged, a.Sections.Identity.Status)
	assert.Nil(t, a.Decision)
	assert.Equal(t, now.Add(time.Second), a.LastUpdated)
}

func TestDraftData_StepKeys(t *testing.T) {
	d := DraftData{
		Identity:            json.RawMessage(`{"a":1}`),
		Address:             json.RawMessage(` null `),
		BusinessAffiliation: json.RawMessage(`{}`),
	}
	assert.Equal(t, []string{"identity", "businessAffiliation"}, d.StepKeys())
	assert.Empty(t, DraftData{}.StepKeys())
}

func TestDecision(t *testing.T) {
	d, err := ParseDecision(" needs_info ")
	require.NoError(t, err)
	assert.Equal(t, DecisionNeedsInfo, d)
	assert.True(t, d.RequiresReason())
	assert.Equal(t, ownermodels.StatusNeedsInfo, d.OwnerStatus())

	assert.False(t, DecisionVerified.RequiresReason())
	assert.Equal(t, ownermodels.StatusRejected, DecisionRejected.OwnerStatus())

	_, err = ParseDecision("APPROVED")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestSections(t *testing.T) {
	s := allComplete()
	assert.True(t, s.AllComplete())
	assert.Empty(t, s.Incomplete())

	s.Address.Status = SectionFlagged
	assert.False(t, s.AllComplete())
	assert.Equal(t, []SectionName{SectionAddress}, s.Incomplete())

	s.Identity.Status = "DONE"
	assert.True(t, dErrors.HasCode(s.Validate(), dErrors.CodeValidation))
}

func TestDocumentStatus_RequiresNote(t *testing.T) {
	for _, st := range []DocumentStatus{DocumentOtherIssue, DocumentRejected, DocumentUnreadable,
		DocumentExpired, DocumentInconsistentData, DocumentSuspectedFraud, DocumentNeedsReview} {
		assert.True(t, st.RequiresNote(), st)
	}
	for _, st := range []DocumentStatus{DocumentPending, DocumentVerified, DocumentNotApplicable} {
		assert.False(t, st.RequiresNote(), st)
	}

	res := NewUpsertResult(&DocumentVerification{Status: DocumentOtherIssue, Notes: "  "}, "")
	assert.True(t, res.RequiresNote)
	assert.True(t, res.NoteMissing)

	_, err := ParseDocumentStatus("LOST")
	assert.Error(t, err)
}

func TestComputeBreakdown(t *testing.T) {
	vid := id.NewVerificationID()
	passport, bill, orphan := id.NewDocumentID(), id.NewDocumentID(), id.NewDocumentID()
	categories := map[id.DocumentID]ownermodels.DocumentCategory{
		passport: ownermodels.CategoryIdentity,
		bill:     ownermodels.CategoryAddress,
	}
	verifications := []*DocumentVerification{
		{VerificationID: vid, DocumentID: passport, Status: DocumentVerified},
		{VerificationID: vid, DocumentID: bill, Status: DocumentExpired},
		{VerificationID: vid, DocumentID: orphan, Status: DocumentPending},
	}

	b := ComputeBreakdown(vid, verifications, categories)

	require.Len(t, b.Categories, 4)
	assert.Equal(t, 3, b.Total)
	assert.Equal(t, 1, b.Totals[DocumentExpired])
	assert.Equal(t, ownermodels.CategoryIdentity, b.Categories[0].Category)
	assert.Equal(t, 1, b.Categories[0].ByStatus[DocumentVerified])
	assert.Equal(t, 1, b.Categories[1].ByStatus[DocumentExpired])
	assert.Equal(t, 0, b.Categories[2].Total)
	assert.Equal(t, 1, b.Categories[3].ByStatus[DocumentPending])
}
