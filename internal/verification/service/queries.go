package service

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/sentinel"
)

// StatusView is the owner's verification summary.
type StatusView struct {
	Owner       ownermodels.BusinessOwner
	Attempt     *models.Attempt
	Breakdown   *models.Breakdown
	Certificate *certmodels.Certificate
}

// AttemptView is an attempt with its recorded document verdicts.
type AttemptView struct {
	Attempt       *models.Attempt
	Verifications []*models.DocumentVerification
}

// GetStatus gathers the open attempt, its breakdown and the latest certificate concurrently.
func (s *Service) GetStatus(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (view *StatusView, err error) {
	ctx, span := startSpan(ctx, "verification.GetStatus", ownerID)
	defer func() { endSpan(span, err) }()

	owner, err := s.authorize(ctx, s.stores, ownerID, actorID)
	if err != nil {
		return nil, err
	}
	view = &StatusView{Owner: owner.Masked()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		attempt, err := s.stores.Attempts.FindOpenByOwner(gctx, ownerID)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load open verification attempt")
		}
		breakdown, err := s.tracker.ComputeBreakdown(gctx, s.stores, attempt.ID)
		if err != nil {
			return err
		}
		view.Attempt, view.Breakdown = attempt, breakdown
		return nil
	})
	g.Go(func() error {
		cert, err := s.issuer.LatestForOwner(gctx, ownerID)
		if err != nil {
			return err
		}
		view.Certificate = cert
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) GetAttempt(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) (*AttemptView, error) {
	if _, err := s.authorize(ctx, s.stores, ownerID, actorID); err != nil {
		return nil, err
	}
	attempt, err := s.ownedAttempt(ctx, s.stores, ownerID, verificationID)
	if err != nil {
		return nil, err
	}
	dvs, err := s.stores.Verifications.ListByVerification(ctx, verificationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document verifications")
	}
	return &AttemptView{Attempt: attempt, Verifications: dvs}, nil
}

func (s *Service) GetBreakdown(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) (*models.Breakdown, error) {
	if _, err := s.authorize(ctx, s.stores, ownerID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAttempt(ctx, s.stores, ownerID, verificationID); err != nil {
		return nil, err
	}
	return s.tracker.ComputeBreakdown(ctx, s.stores, verificationID)
}

// ListHistory returns the attempt's history in the order it was written.
func (s *Service) ListHistory(ctx context.Context, ownerID id.OwnerID, verificationID id.VerificationID, actorID id.ActorID) ([]*audit.HistoryLog, error) {
	if _, err := s.authorize(ctx, s.stores, ownerID, actorID); err != nil {
		return nil, err
	}
	if _, err := s.ownedAttempt(ctx, s.stores, ownerID, verificationID); err != nil {
		return nil, err
	}
	entries, err := s.stores.Audit.ListHistoryByVerification(ctx, verificationID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification history")
	}
	return entries, nil
}

// ListActivity returns the owner's newest activity entries. limit <= 0 uses the default page.
func (s *Service) ListActivity(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, limit int) ([]*audit.ActivityLog, error) {
	if _, err := s.authorize(ctx, s.stores, ownerID, actorID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityPage
	}
	entries, err := s.stores.Audit.ListActivityByOwner(ctx, ownerID, limit)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load activity")
	}
	return entries, nil
}
