package service

import (
	"context"
	"errors"

	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/sentinel"
	"ownerverify/pkg/requestcontext"
)

// Tracker records per-document verdicts for an attempt. It always runs against
// the stores of the caller's unit of work.
type Tracker struct{}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Upsert writes one verdict. The parent attempt must still be open.
func (t *Tracker) Upsert(ctx context.Context, stores ports.Stores, verificationID id.VerificationID, documentID id.DocumentID, status models.DocumentStatus, notes string, actorID id.ActorID) (*models.UpsertResult, error) {
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown document verification status: "+string(status))
	}
	attempt, err := stores.Attempts.FindByID(ctx, verificationID)
	if err != nil {
		return nil, translateAttemptErr(err)
	}
	if !attempt.IsOpen() {
		return nil, dErrors.New(dErrors.CodeInvalidState, models.ErrAttemptCompleted)
	}

	dv := &models.DocumentVerification{
		VerificationID: verificationID,
		DocumentID:     documentID,
		Status:         status,
		Notes:          notes,
		VerifiedBy:     actorID,
		VerifiedAt:     requestcontext.Now(ctx),
	}
	previous, err := stores.Verifications.Upsert(ctx, dv)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save document verification")
	}
	return models.NewUpsertResult(dv, previous), nil
}

// UpsertBatch writes several verdicts for an open attempt in one statement.
func (t *Tracker) UpsertBatch(ctx context.Context, stores ports.Stores, attempt *models.Attempt, decisions []models.DocumentDecision, actorID id.ActorID) ([]*models.DocumentVerification, error) {
	if !attempt.IsOpen() {
		return nil, dErrors.New(dErrors.CodeInvalidState, models.ErrAttemptCompleted)
	}
	if len(decisions) == 0 {
		return nil, nil
	}
	now := requestcontext.Now(ctx)
	dvs := make([]*models.DocumentVerification, 0, len(decisions))
	for _, d := range decisions {
		dvs = append(dvs, &models.DocumentVerification{
			VerificationID: attempt.ID,
			DocumentID:     d.DocumentID,
			Status:         d.Status,
			Notes:          d.Notes,
			VerifiedBy:     actorID,
			VerifiedAt:     now,
		})
	}
	if err := stores.Verifications.UpsertBatch(ctx, dvs); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save document verifications")
	}
	return dvs, nil
}

// ComputeBreakdown groups an attempt's verdicts by document category.
func (t *Tracker) ComputeBreakdown(ctx context.Context, stores ports.Stores, verificationID id.VerificationID) (*models.Breakdown, error) {
	attempt, err := stores.Attempts.FindByID(ctx, verificationID)
	if err != nil {
		return nil, translateAttemptErr(err)
	}
	dvs, err := stores.Verifications.ListByVerification(ctx, verificationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document verifications")
	}
	docs, err := stores.Documents.ListByOwner(ctx, attempt.OwnerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load owner documents")
	}
	categories := make(map[id.DocumentID]ownermodels.DocumentCategory, len(docs))
	for _, d := range docs {
		categories[d.ID] = d.Category
	}
	return models.ComputeBreakdown(verificationID, dvs, categories), nil
}

func translateAttemptErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "verification attempt not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification attempt")
}
