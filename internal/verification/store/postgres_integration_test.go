//go:build integration

package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	ownermodels "ownerverify/internal/owner/models"
	ownerstore "ownerverify/internal/owner/store"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/store"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/platform/sentinel"
	txcontext "ownerverify/pkg/platform/tx"
	"ownerverify/pkg/testutil/containers"
)

type VerificationPostgresSuite struct {
	suite.Suite
	postgres  *containers.PostgresContainer
	owners    *ownerstore.OwnerPostgres
	documents *ownerstore.DocumentPostgres
	attempts  *store.AttemptPostgres
	verdicts  *store.DocumentVerificationPostgres
	manager   id.ActorID
	owner     *ownermodels.BusinessOwner
	now       time.Time
}

func TestVerificationPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(VerificationPostgresSuite))
}

func (s *VerificationPostgresSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
	s.owners = ownerstore.NewOwnerPostgres(s.postgres.DB)
	s.documents = ownerstore.NewDocumentPostgres(s.postgres.DB)
	s.attempts = store.NewAttemptPostgres(s.postgres.DB)
	s.verdicts = store.NewDocumentVerificationPostgres(s.postgres.DB)
}

func (s *VerificationPostgresSuite) SetupTest() {
	ctx := context.Background()
	s.Require().NoError(s.postgres.TruncateTables(ctx,
		"document_verifications", "verification_attempts", "documents", "business_owners"))

	s.now = time.Now().UTC().Truncate(time.Microsecond)
	s.manager = id.NewActorID()
	s.owner = &ownermodels.BusinessOwner{
		ID:                 id.NewOwnerID(),
		FirstName:          "Ana",
		LastName:           "Lima",
		TaxID:              "123-45-6789",
		VerificationStatus: ownermodels.StatusUnverified,
		AssignedManagerID:  s.manager,
		Version:            1,
		CreatedAt:          s.now,
		UpdatedAt:          s.now,
	}
	s.Require().NoError(s.owners.Create(ctx, s.owner))
}

func (s *VerificationPostgresSuite) newDocument(category ownermodels.DocumentCategory) *ownermodels.Document {
	doc := &ownermodels.Document{
		ID:           id.NewDocumentID(),
		OwnerID:      s.owner.ID,
		Category:     category,
		DocumentType: "scan",
		FileName:     "scan.pdf",
		ContentType:  "application/pdf",
		StoragePath:  "documents/aa/scan.pdf",
		ContentHash:  "aa",
		Size:         10,
		UploadedBy:   s.manager,
		UploadedAt:   s.now,
	}
	s.Require().NoError(s.documents.Create(context.Background(), doc))
	return doc
}

func (s *VerificationPostgresSuite) TestAttemptRoundTrip() {
	ctx := context.Background()
	attempt := models.NewAttempt(s.owner.ID, s.manager, s.now)
	s.Require().NoError(s.attempts.Create(ctx, attempt))

	s.Require().NoError(attempt.ApplyDraft(models.DraftData{
		CurrentStep: 2,
		Identity:    json.RawMessage(`{"firstName":"Ana"}`),
	}, s.now.Add(time.Minute)))
	s.Require().NoError(s.attempts.SaveDraft(ctx, attempt))

	found, err := s.attempts.FindOpenByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(attempt.ID, found.ID)
	s.Equal(2, found.DraftData.CurrentStep)
	s.Equal([]string{"identity"}, found.DraftData.StepKeys())
	s.Equal(models.SectionIncomplete, found.Sections.Identity.Status)
	s.True(found.IsOpen())
}

// TestAtMostOneOpenAttempt checks the partial unique index under concurrent creates.
func (s *VerificationPostgresSuite) TestAtMostOneOpenAttempt() {
	ctx := context.Background()
	const goroutines = 20

	var (
		wg        sync.WaitGroup
		created   atomic.Int32
		conflicts atomic.Int32
	)
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.attempts.Create(ctx, models.NewAttempt(s.owner.ID, s.manager, s.now))
			switch {
			case err == nil:
				created.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), created.Load(), "exactly one open attempt should be created")
	s.Equal(int32(goroutines-1), conflicts.Load())

	open, err := s.attempts.FindOpenByOwner(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Require().NoError(open.Complete(s.manager, models.DecisionRejected, "blurry scans", open.Sections, s.now))
	s.Require().NoError(s.attempts.Complete(ctx, open))

	s.NoError(s.attempts.Create(ctx, models.NewAttempt(s.owner.ID, s.manager, s.now)),
		"a new attempt can open once the previous one completed")
}

func (s *VerificationPostgresSuite) TestCompletedAttemptsAreImmutable() {
	ctx := context.Background()
	attempt := models.NewAttempt(s.owner.ID, s.manager, s.now)
	s.Require().NoError(s.attempts.Create(ctx, attempt))

	first := *attempt
	s.Require().NoError(first.Complete(s.manager, models.DecisionVerified, "", models.NewSections(), s.now))
	s.Require().NoError(s.attempts.Complete(ctx, &first))

	second := *attempt
	s.Require().NoError(second.Complete(s.manager, models.DecisionRejected, "changed my mind", models.NewSections(), s.now))
	s.ErrorIs(s.attempts.Complete(ctx, &second), sentinel.ErrInvalidState)

	draft := *attempt
	draft.DraftData = models.DraftData{CurrentStep: 3}
	s.ErrorIs(s.attempts.SaveDraft(ctx, &draft), sentinel.ErrInvalidState)

	stored, err := s.attempts.FindByID(ctx, attempt.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.Decision)
	s.Equal(models.DecisionVerified, *stored.Decision)
	s.Empty(stored.DecisionReason)

	_, err = s.attempts.FindOpenByOwner(ctx, s.owner.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *VerificationPostgresSuite) TestUpsertReturnsPreviousStatus() {
	ctx := context.Background()
	attempt := models.NewAttempt(s.owner.ID, s.manager, s.now)
	s.Require().NoError(s.attempts.Create(ctx, attempt))
	doc := s.newDocument(ownermodels.CategoryIdentity)

	previous, err := s.verdicts.Upsert(ctx, &models.DocumentVerification{
		VerificationID: attempt.ID, DocumentID: doc.ID, Status: models.DocumentRejected,
		Notes: "expired passport", VerifiedBy: s.manager, VerifiedAt: s.now,
	})
	s.Require().NoError(err)
	s.Empty(previous)

	previous, err = s.verdicts.Upsert(ctx, &models.DocumentVerification{
		VerificationID: attempt.ID, DocumentID: doc.ID, Status: models.DocumentVerified,
		VerifiedBy: s.manager, VerifiedAt: s.now.Add(time.Minute),
	})
	s.Require().NoError(err)
	s.Equal(models.DocumentRejected, previous)

	list, err := s.verdicts.ListByVerification(ctx, attempt.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 1, "upsert overwrites in place")
	s.Equal(models.DocumentVerified, list[0].Status)
	s.Empty(list[0].Notes)
}

func (s *VerificationPostgresSuite) TestUpsertBatch() {
	ctx := context.Background()
	attempt := models.NewAttempt(s.owner.ID, s.manager, s.now)
	s.Require().NoError(s.attempts.Create(ctx, attempt))
	identity := s.newDocument(ownermodels.CategoryIdentity)
	address := s.newDocument(ownermodels.CategoryAddress)

	_, err := s.verdicts.Upsert(ctx, &models.DocumentVerification{
		VerificationID: attempt.ID, DocumentID: identity.ID, Status: models.DocumentPending,
		VerifiedBy: s.manager, VerifiedAt: s.now,
	})
	s.Require().NoError(err)

	s.Require().NoError(s.verdicts.UpsertBatch(ctx, []*models.DocumentVerification{
		{VerificationID: attempt.ID, DocumentID: identity.ID, Status: models.DocumentVerified, VerifiedBy: s.manager, VerifiedAt: s.now},
		{VerificationID: attempt.ID, DocumentID: address.ID, Status: models.DocumentUnreadable, Notes: "glare", VerifiedBy: s.manager, VerifiedAt: s.now},
	}))

	list, err := s.verdicts.ListByVerification(ctx, attempt.ID)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	byDoc := map[id.DocumentID]models.DocumentStatus{}
	for _, dv := range list {
		byDoc[dv.DocumentID] = dv.Status
	}
	s.Equal(models.DocumentVerified, byDoc[identity.ID])
	s.Equal(models.DocumentUnreadable, byDoc[address.ID])
}

// TestStoresJoinContextTransaction rolls back a transaction carried in the
// context and expects none of its writes to survive.
func (s *VerificationPostgresSuite) TestStoresJoinContextTransaction() {
	ctx := context.Background()
	tx, err := s.postgres.DB.BeginTx(ctx, nil)
	s.Require().NoError(err)
	txCtx := txcontext.WithTx(ctx, tx)

	attempt := models.NewAttempt(s.owner.ID, s.manager, s.now)
	s.Require().NoError(s.attempts.Create(txCtx, attempt))

	owner, err := s.owners.FindByID(txCtx, s.owner.ID)
	s.Require().NoError(err)
	owner.ApplyAttemptStarted(attempt.ID, s.now)
	s.Require().NoError(s.owners.Update(txCtx, owner))

	s.Require().NoError(tx.Rollback())

	_, err = s.attempts.FindByID(ctx, attempt.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	reloaded, err := s.owners.FindByID(ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(ownermodels.StatusUnverified, reloaded.VerificationStatus)
	s.Nil(reloaded.CurrentVerificationAttemptID)
}

func (s *VerificationPostgresSuite) TestOwnerUpdateIsOptimistic() {
	ctx := context.Background()
	a, err := s.owners.FindByID(ctx, s.owner.ID)
	s.Require().NoError(err)
	b, err := s.owners.FindByID(ctx, s.owner.ID)
	s.Require().NoError(err)

	a.ApplyDecision(ownermodels.StatusRejected, s.now)
	s.Require().NoError(s.owners.Update(ctx, a))

	b.ApplyDecision(ownermodels.StatusVerified, s.now)
	s.ErrorIs(s.owners.Update(ctx, b), sentinel.ErrConflict)
}
