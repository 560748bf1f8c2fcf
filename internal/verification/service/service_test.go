package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	auditsvc "ownerverify/internal/audit"
	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/storage"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	portmocks "ownerverify/internal/verification/ports/mocks"
	"ownerverify/internal/verification/service/mocks"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/requestcontext"
)

// ownersOverride runs units of work on db with a substitute owner store.
type ownersOverride struct {
	db     *storage.DB
	owners func(real ports.OwnerStore) ports.OwnerStore
}

func (o *ownersOverride) RunInTx(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	return o.db.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
		stores.Owners = o.owners(stores.Owners)
		return fn(ctx, stores)
	})
}

type VerificationServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	db       *storage.DB
	issuer   *mocks.MockCertificateIssuer
	notifier *mocks.MockNotifier
	service  *Service
	ctx      context.Context
	now      time.Time
	manager  id.ActorID
	owner    *ownermodels.BusinessOwner
	passport *ownermodels.Document
	utility  *ownermodels.Document
}

func TestVerificationServiceSuite(t *testing.T) {
	suite.Run(t, new(VerificationServiceSuite))
}

func (s *VerificationServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.db = storage.NewDB()
	s.issuer = mocks.NewMockCertificateIssuer(s.ctrl)
	s.notifier = mocks.NewMockNotifier(s.ctrl)
	s.now = time.Date(2026, 5, 2, 14, 0, 0, 0, time.UTC)
	s.ctx = requestcontext.WithTime(context.Background(), s.now)
	s.manager = id.NewActorID()

	s.owner = &ownermodels.BusinessOwner{
		ID:                id.NewOwnerID(),
		FirstName:         "Katherine",
		LastName:          "Johnson",
		BusinessName:      "Orbital Mechanics LLC",
		TaxID:             "660-12-3456",
		AssignedManagerID: s.manager,
	}
	s.Require().NoError(s.db.Owners().Create(s.ctx, s.owner))
	s.passport = s.seedDocument(ownermodels.CategoryIdentity, "passport")
	s.utility = s.seedDocument(ownermodels.CategoryAddress, "utility_bill")

	s.service = s.newService(s.db)
}

func (s *VerificationServiceSuite) newService(tx ports.TxRunner) *Service {
	return New(s.db.Stores(), tx, s.issuer, s.notifier, auditsvc.NewService(s.db.Audit()))
}

func (s *VerificationServiceSuite) seedDocument(category ownermodels.DocumentCategory, docType string) *ownermodels.Document {
	doc := &ownermodels.Document{
		ID:           id.NewDocumentID(),
		OwnerID:      s.owner.ID,
		Category:     category,
		DocumentType: docType,
		FileName:     docType + ".pdf",
		ContentType:  "application/pdf",
		UploadedBy:   s.manager,
		UploadedAt:   s.now.Add(-24 * time.Hour),
	}
	s.Require().NoError(s.db.Documents().Create(s.ctx, doc))
	return doc
}

func completeSections() models.Sections {
	sections := models.NewSections()
	sections.Identity.Status = models.SectionComplete
	sections.Address.Status = models.SectionComplete
	sections.BusinessAffiliation.Status = models.SectionComplete
	return sections
}

func (s *VerificationServiceSuite) historyActions(verificationID id.VerificationID) []audit.Action {
	history, err := s.db.Audit().ListHistoryByVerification(s.ctx, verificationID)
	s.Require().NoError(err)
	actions := make([]audit.Action, 0, len(history))
	for _, h := range history {
		actions = append(actions, h.Action)
	}
	return actions
}

func (s *VerificationServiceSuite) TestCreateAttempt() {
	s.Run("opens an attempt and links it to the owner", func() {
		attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
		s.Require().NoError(err)
		s.True(attempt.IsOpen())
		s.Equal(models.NewSections(), attempt.Sections)

		owner, err := s.db.Stores().Owners.FindByID(s.ctx, s.owner.ID)
		s.Require().NoError(err)
		s.Equal(ownermodels.StatusPendingVerification, owner.VerificationStatus)
		s.Require().NotNil(owner.CurrentVerificationAttemptID)
		s.Equal(attempt.ID, *owner.CurrentVerificationAttemptID)
		s.Contains(s.historyActions(attempt.ID), audit.ActionVerificationStarted)
	})

	s.Run("returns the existing open attempt", func() {
		first, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
		s.Require().NoError(err)
		second, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
		s.Require().NoError(err)
		s.Equal(first.ID, second.ID)
	})

	s.Run("owners outside the actor's scope read as missing", func() {
		_, err := s.service.CreateAttempt(s.ctx, s.owner.ID, id.NewActorID())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		_, err = s.service.CreateAttempt(s.ctx, id.NewOwnerID(), s.manager)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *VerificationServiceSuite) TestCreateAttempt_ConcurrentCallersShareOneAttempt() {
	const callers = 16
	ids := make([]id.VerificationID, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
			errs[i] = err
			if err == nil {
				ids[i] = a.ID
			}
		}()
	}
	wg.Wait()

	for i := range callers {
		s.Require().NoError(errs[i])
		s.Equal(ids[0], ids[i])
	}
}

func (s *VerificationServiceSuite) TestSaveDraft() {
	draft := models.DraftData{CurrentStep: 2, Identity: []byte(`{"firstName":"Katherine"}`)}

	attempt, err := s.service.SaveDraft(s.ctx, s.owner.ID, s.manager, draft)
	s.Require().NoError(err)
	s.Equal(2, attempt.DraftData.CurrentStep)

	stored, err := s.db.Stores().Attempts.FindByID(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.JSONEq(`{"firstName":"Katherine"}`, string(stored.DraftData.Identity))
	s.Equal(models.NewSections(), stored.Sections)

	history, err := s.db.Audit().ListHistoryByVerification(s.ctx, attempt.ID)
	s.Require().NoError(err)
	var saved *audit.HistoryLog
	for _, h := range history {
		if h.Action == audit.ActionDraftSaved {
			saved = h
		}
	}
	s.Require().NotNil(saved)
	s.Require().NotNil(saved.StepNumber)
	s.Equal(2, *saved.StepNumber)

	_, err = s.service.SaveDraft(s.ctx, s.owner.ID, s.manager, models.DraftData{CurrentStep: -1})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *VerificationServiceSuite) TestUpdateDocumentVerification() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	s.Run("records the verdict and notifies the owner", func() {
		s.notifier.EXPECT().SendDocumentStatus(gomock.Any(), s.owner.ID, s.passport.ID, models.DocumentVerified).Return(nil)

		result, err := s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: s.passport.ID,
			ActorID: s.manager, Status: models.DocumentVerified,
		})
		s.Require().NoError(err)
		s.Equal(models.DocumentStatus(""), result.PreviousStatus)
		s.False(result.RequiresNote)
	})

	s.Run("overwrites in place and flags a missing note", func() {
		s.notifier.EXPECT().SendDocumentStatus(gomock.Any(), s.owner.ID, s.passport.ID, models.DocumentExpired).Return(errors.New("smtp down"))

		result, err := s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: s.passport.ID,
			ActorID: s.manager, Status: models.DocumentExpired,
		})
		s.Require().NoError(err)
		s.Equal(models.DocumentVerified, result.PreviousStatus)
		s.True(result.RequiresNote)
		s.True(result.NoteMissing)

		dvs, err := s.db.Stores().Verifications.ListByVerification(s.ctx, attempt.ID)
		s.Require().NoError(err)
		s.Require().Len(dvs, 1)
		s.Equal(models.DocumentExpired, dvs[0].Status)
	})

	s.Run("rejects documents of another owner", func() {
		_, err := s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: id.NewDocumentID(),
			ActorID: s.manager, Status: models.DocumentVerified,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("rejects unknown statuses", func() {
		_, err := s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: s.passport.ID,
			ActorID: s.manager, Status: "LOOKS_FINE",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func (s *VerificationServiceSuite) TestSubmitDecision_Verified() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	certID := id.NewCertificateID()
	s.issuer.EXPECT().Generate(gomock.Any(), attempt.ID, s.manager).Return(&certmodels.Certificate{ID: certID}, nil)
	s.notifier.EXPECT().SendVerificationDecision(gomock.Any(), s.owner.ID, models.DecisionVerified, "").Return(nil)

	result, err := s.service.SubmitDecision(s.ctx, DecisionRequest{
		OwnerID:        s.owner.ID,
		VerificationID: attempt.ID,
		ActorID:        s.manager,
		Decision:       models.DecisionVerified,
		Sections:       completeSections(),
		Documents: []models.DocumentDecision{
			{DocumentID: s.passport.ID, Status: models.DocumentVerified},
			{DocumentID: s.utility.ID, Status: models.DocumentVerified},
		},
	})
	s.Require().NoError(err)
	s.False(result.Attempt.IsOpen())
	s.True(result.Attempt.IsVerified())
	s.Require().NotNil(result.CertificateID)
	s.Equal(certID, *result.CertificateID)
	s.Equal("*******3456", result.Owner.TaxID)

	owner, err := s.db.Stores().Owners.FindByID(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(ownermodels.StatusVerified, owner.VerificationStatus)
	s.Nil(owner.CurrentVerificationAttemptID)
	s.Require().NotNil(owner.VerificationExpiresAt)
	s.Equal(s.now.Add(ownermodels.VerificationValidity), *owner.VerificationExpiresAt)

	dvs, err := s.db.Stores().Verifications.ListByVerification(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.Len(dvs, 2)
	s.Contains(s.historyActions(attempt.ID), audit.ActionVerificationCompleted)
}

func (s *VerificationServiceSuite) TestSubmitDecision_Rejected() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	s.notifier.EXPECT().SendVerificationDecision(gomock.Any(), s.owner.ID, models.DecisionRejected, "address mismatch").Return(nil)

	result, err := s.service.SubmitDecision(s.ctx, DecisionRequest{
		OwnerID:        s.owner.ID,
		VerificationID: attempt.ID,
		ActorID:        s.manager,
		Decision:       models.DecisionRejected,
		Reason:         "  address mismatch ",
		Sections:       models.NewSections(),
	})
	s.Require().NoError(err)
	s.Nil(result.CertificateID)
	s.Equal("address mismatch", result.Attempt.DecisionReason)
	s.Equal(ownermodels.StatusRejected, result.Owner.VerificationStatus)

	s.Run("a new attempt may start after completion", func() {
		next, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
		s.Require().NoError(err)
		s.NotEqual(attempt.ID, next.ID)
	})
}

func (s *VerificationServiceSuite) TestSubmitDecision_Validation() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)
	base := DecisionRequest{OwnerID: s.owner.ID, VerificationID: attempt.ID, ActorID: s.manager}

	tests := []struct {
		name   string
		mutate func(r *DecisionRequest)
	}{
		{"unknown decision", func(r *DecisionRequest) { r.Decision = "MAYBE"; r.Sections = completeSections() }},
		{"rejection without reason", func(r *DecisionRequest) { r.Decision = models.DecisionRejected; r.Sections = models.NewSections() }},
		{"needs info without reason", func(r *DecisionRequest) { r.Decision = models.DecisionNeedsInfo; r.Reason = " "; r.Sections = models.NewSections() }},
		{"verified with incomplete sections", func(r *DecisionRequest) {
			r.Decision = models.DecisionVerified
			r.Sections = completeSections()
			r.Sections.Address.Status = models.SectionFlagged
		}},
		{"duplicate document verdicts", func(r *DecisionRequest) {
			r.Decision = models.DecisionVerified
			r.Sections = completeSections()
			r.Documents = []models.DocumentDecision{
				{DocumentID: s.passport.ID, Status: models.DocumentVerified},
				{DocumentID: s.passport.ID, Status: models.DocumentRejected},
			}
		}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := base
			tt.mutate(&req)
			_, err := s.service.SubmitDecision(s.ctx, req)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
		})
	}

	stored, err := s.db.Stores().Attempts.FindByID(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.True(stored.IsOpen())
}

func (s *VerificationServiceSuite) TestSubmitDecision_CompletedAttemptIsImmutable() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)
	s.notifier.EXPECT().SendVerificationDecision(gomock.Any(), s.owner.ID, models.DecisionNeedsInfo, "upload a recent bill").Return(nil)

	_, err = s.service.SubmitDecision(s.ctx, DecisionRequest{
		OwnerID: s.owner.ID, VerificationID: attempt.ID, ActorID: s.manager,
		Decision: models.DecisionNeedsInfo, Reason: "upload a recent bill", Sections: models.NewSections(),
	})
	s.Require().NoError(err)

	s.Run("second decision", func() {
		_, err := s.service.SubmitDecision(s.ctx, DecisionRequest{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, ActorID: s.manager,
			Decision: models.DecisionRejected, Reason: "changed my mind", Sections: models.NewSections(),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
		s.Equal(models.ErrAttemptCompleted, dErrors.Message(err))
	})

	s.Run("document update", func() {
		_, err := s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
			OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: s.passport.ID,
			ActorID: s.manager, Status: models.DocumentVerified,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidState))
	})

	stored, err := s.db.Stores().Attempts.FindByID(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.Equal(models.DecisionNeedsInfo, *stored.Decision)
	s.Equal("upload a recent bill", stored.DecisionReason)
}

func (s *VerificationServiceSuite) TestSubmitDecision_OwnerUpdateFailureLeavesAttemptOpen() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	svc := s.newService(&ownersOverride{db: s.db, owners: func(real ports.OwnerStore) ports.OwnerStore {
		owners := portmocks.NewMockOwnerStore(s.ctrl)
		owners.EXPECT().FindByID(gomock.Any(), s.owner.ID).DoAndReturn(real.FindByID)
		owners.EXPECT().Update(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))
		return owners
	}})

	_, err = svc.SubmitDecision(s.ctx, DecisionRequest{
		OwnerID: s.owner.ID, VerificationID: attempt.ID, ActorID: s.manager,
		Decision: models.DecisionVerified, Sections: completeSections(),
		Documents: []models.DocumentDecision{{DocumentID: s.passport.ID, Status: models.DocumentVerified}},
	})
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))

	stored, err := s.db.Stores().Attempts.FindByID(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.True(stored.IsOpen())
	owner, err := s.db.Stores().Owners.FindByID(s.ctx, s.owner.ID)
	s.Require().NoError(err)
	s.Equal(ownermodels.StatusPendingVerification, owner.VerificationStatus)
	dvs, err := s.db.Stores().Verifications.ListByVerification(s.ctx, attempt.ID)
	s.Require().NoError(err)
	s.Empty(dvs)
	s.NotContains(s.historyActions(attempt.ID), audit.ActionVerificationCompleted)
}

func (s *VerificationServiceSuite) TestSubmitDecision_CertificateFailureKeepsDecision() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	s.issuer.EXPECT().Generate(gomock.Any(), attempt.ID, s.manager).
		Return(nil, dErrors.New(dErrors.CodeDependencyFailure, "failed to render certificate"))
	s.notifier.EXPECT().SendVerificationDecision(gomock.Any(), s.owner.ID, models.DecisionVerified, "").Return(nil)

	result, err := s.service.SubmitDecision(s.ctx, DecisionRequest{
		OwnerID: s.owner.ID, VerificationID: attempt.ID, ActorID: s.manager,
		Decision: models.DecisionVerified, Sections: completeSections(),
	})
	s.Require().NoError(err)
	s.Nil(result.CertificateID)
	s.True(result.Attempt.IsVerified())
}

func (s *VerificationServiceSuite) TestGetStatus() {
	attempt, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)
	s.notifier.EXPECT().SendDocumentStatus(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	_, err = s.service.UpdateDocumentVerification(s.ctx, DocumentUpdate{
		OwnerID: s.owner.ID, VerificationID: attempt.ID, DocumentID: s.utility.ID,
		ActorID: s.manager, Status: models.DocumentUnreadable, Notes: "blurry scan",
	})
	s.Require().NoError(err)

	s.issuer.EXPECT().LatestForOwner(gomock.Any(), s.owner.ID).Return(nil, nil)

	view, err := s.service.GetStatus(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)
	s.Require().NotNil(view.Attempt)
	s.Equal(attempt.ID, view.Attempt.ID)
	s.Nil(view.Certificate)
	s.Require().NotNil(view.Breakdown)
	s.Equal(1, view.Breakdown.Total)
	s.Equal(1, view.Breakdown.Totals[models.DocumentUnreadable])
	s.Equal("*******3456", view.Owner.TaxID)
}

func (s *VerificationServiceSuite) TestListActivity() {
	_, err := s.service.CreateAttempt(s.ctx, s.owner.ID, s.manager)
	s.Require().NoError(err)

	entries, err := s.service.ListActivity(s.ctx, s.owner.ID, s.manager, 0)
	s.Require().NoError(err)
	s.NotEmpty(entries)

	_, err = s.service.ListActivity(s.ctx, s.owner.ID, id.NewActorID(), 10)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
