package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	"ownerverify/internal/verification/ports/mocks"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	"ownerverify/pkg/platform/sentinel"
	"ownerverify/pkg/requestcontext"
)

func TestTracker_Upsert(t *testing.T) {
	now := time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)
	ownerID := id.NewOwnerID()
	actor := id.NewActorID()
	open := models.NewAttempt(ownerID, actor, now.Add(-time.Hour))
	completed := models.NewAttempt(ownerID, actor, now.Add(-time.Hour))
	require.NoError(t, completed.Complete(actor, models.DecisionRejected, "no", models.NewSections(), now))
	docID := id.NewDocumentID()

	tests := []struct {
		name     string
		attempt  *models.Attempt
		findErr  error
		status   models.DocumentStatus
		previous models.DocumentStatus
		upsert   bool
		wantCode dErrors.Code
	}{
		{name: "new verdict", attempt: open, status: models.DocumentVerified, upsert: true},
		{name: "overwrite", attempt: open, status: models.DocumentSuspectedFraud, previous: models.DocumentPending, upsert: true},
		{name: "completed attempt", attempt: completed, status: models.DocumentVerified, wantCode: dErrors.CodeInvalidState},
		{name: "missing attempt", findErr: sentinel.ErrNotFound, status: models.DocumentVerified, wantCode: dErrors.CodeNotFound},
		{name: "store failure", findErr: errors.New("conn refused"), status: models.DocumentVerified, wantCode: dErrors.CodeInternal},
		{name: "unknown status", status: "FINE", wantCode: dErrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			attempts := mocks.NewMockAttemptStore(ctrl)
			verifications := mocks.NewMockDocumentVerificationStore(ctrl)
			stores := ports.Stores{Attempts: attempts, Verifications: verifications}

			if tt.attempt != nil || tt.findErr != nil {
				attempts.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(tt.attempt, tt.findErr)
			}
			if tt.upsert {
				verifications.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, dv *models.DocumentVerification) (models.DocumentStatus, error) {
						assert.Equal(t, docID, dv.DocumentID)
						assert.Equal(t, actor, dv.VerifiedBy)
						assert.Equal(t, now, dv.VerifiedAt)
						return tt.previous, nil
					})
			}

			result, err := NewTracker().Upsert(ctx, stores, open.ID, docID, tt.status, "", actor)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.True(t, dErrors.HasCode(err, tt.wantCode), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.previous, result.PreviousStatus)
			assert.Equal(t, tt.status.RequiresNote(), result.NoteMissing)
		})
	}
}

func TestTracker_ComputeBreakdown(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	attempts := mocks.NewMockAttemptStore(ctrl)
	verifications := mocks.NewMockDocumentVerificationStore(ctrl)
	documents := mocks.NewMockDocumentRegistry(ctrl)
	stores := ports.Stores{Attempts: attempts, Verifications: verifications, Documents: documents}

	ownerID := id.NewOwnerID()
	attempt := models.NewAttempt(ownerID, id.NewActorID(), time.Now())
	passport, license, bill, deleted := id.NewDocumentID(), id.NewDocumentID(), id.NewDocumentID(), id.NewDocumentID()

	attempts.EXPECT().FindByID(gomock.Any(), attempt.ID).Return(attempt, nil)
	verifications.EXPECT().ListByVerification(gomock.Any(), attempt.ID).Return([]*models.DocumentVerification{
		{DocumentID: passport, Status: models.DocumentVerified},
		{DocumentID: license, Status: models.DocumentExpired},
		{DocumentID: bill, Status: models.DocumentVerified},
		{DocumentID: deleted, Status: models.DocumentRejected},
	}, nil)
	documents.EXPECT().ListByOwner(gomock.Any(), ownerID).Return([]*ownermodels.Document{
		{ID: passport, Category: ownermodels.CategoryIdentity},
		{ID: license, Category: ownermodels.CategoryIdentity},
		{ID: bill, Category: ownermodels.CategoryAddress},
	}, nil)

	b, err := NewTracker().ComputeBreakdown(ctx, stores, attempt.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, b.Total)
	assert.Equal(t, 2, b.Totals[models.DocumentVerified])

	byCategory := map[ownermodels.DocumentCategory]models.CategoryBreakdown{}
	for _, c := range b.Categories {
		byCategory[c.Category] = c
	}
	assert.Equal(t, 2, byCategory[ownermodels.CategoryIdentity].Total)
	assert.Equal(t, 1, byCategory[ownermodels.CategoryIdentity].ByStatus[models.DocumentExpired])
	assert.Equal(t, 1, byCategory[ownermodels.CategoryAddress].Total)
	assert.Equal(t, 0, byCategory[ownermodels.CategoryBusinessAffiliation].Total)
	assert.Equal(t, 1, byCategory[ownermodels.CategoryOther].ByStatus[models.DocumentRejected])
}
