// Package service runs the verification attempt lifecycle: opening attempts,
// autosaving drafts, recording document verdicts and submitting decisions.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	auditsvc "ownerverify/internal/audit"
	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/metrics"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/sentinel"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks CertificateIssuer,Notifier,AuditLogger

// CertificateIssuer issues certificates for VERIFIED attempts in its own unit of work.
type CertificateIssuer interface {
	Generate(ctx context.Context, verificationID id.VerificationID, actorID id.ActorID) (*certmodels.Certificate, error)
	LatestForOwner(ctx context.Context, ownerID id.OwnerID) (*certmodels.Certificate, error)
}

type Notifier interface {
	SendVerificationDecision(ctx context.Context, ownerID id.OwnerID, decision models.Decision, reason string) error
	SendDocumentStatus(ctx context.Context, ownerID id.OwnerID, documentID id.DocumentID, status models.DocumentStatus) error
}

// AuditLogger records history. LogVerificationHistory is best-effort, Record is strict.
type AuditLogger interface {
	LogVerificationHistory(ctx context.Context, ev auditsvc.HistoryEvent) auditsvc.Result
	Record(ctx context.Context, store audit.Store, ev auditsvc.HistoryEvent) error
}

const (
	maxConflictRetries  = 3
	defaultActivityPage = 50
)

var tracer = otel.Tracer("ownerverify/verification")

// Service is the verification attempt engine.
type Service struct {
	stores   ports.Stores
	tx       ports.TxRunner
	tracker  *Tracker
	issuer   CertificateIssuer
	notifier Notifier
	audit    AuditLogger
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New wires the engine. stores serve reads outside transactions.
func New(stores ports.Stores, tx ports.TxRunner, issuer CertificateIssuer, notifier Notifier, auditor AuditLogger, opts ...Option) *Service {
	s := &Service{
		stores:   stores,
		tx:       tx,
		tracker:  NewTracker(),
		issuer:   issuer,
		notifier: notifier,
		audit:    auditor,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DocumentUpdate asks for one document verdict on an open attempt.
type DocumentUpdate struct {
	OwnerID        id.OwnerID
	VerificationID id.VerificationID
	DocumentID     id.DocumentID
	ActorID        id.ActorID
	Status         models.DocumentStatus
	Notes          string
}

// DecisionRequest completes an attempt.
type DecisionRequest struct {
	OwnerID        id.OwnerID
	VerificationID id.VerificationID
	ActorID        id.ActorID
	Decision       models.Decision
	Reason         string
	Sections       models.Sections
	Documents      []models.DocumentDecision
}

// DecisionResult carries the completed attempt, the owner with its tax id masked,
// and the certificate id when one was issued.
type DecisionResult struct {
	Attempt       *models.Attempt
	Owner         ownermodels.BusinessOwner
	CertificateID *id.CertificateID
}

// CreateAttempt returns the owner's open attempt, opening one if there is none.
func (s *Service) CreateAttempt(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID) (attempt *models.Attempt, err error) {
	ctx, span := startSpan(ctx, "verification.CreateAttempt", ownerID)
	defer func() { endSpan(span, err) }()

	attempt, created, err := s.withOpenAttempt(ctx, ownerID, actorID, nil)
	if err != nil {
		return nil, err
	}
	if created {
		s.attemptStarted(ctx, attempt)
	}
	return attempt, nil
}

// SaveDraft overwrites the draft of the owner's open attempt, opening one if needed.
func (s *Service) SaveDraft(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, draft models.DraftData) (attempt *models.Attempt, err error) {
	ctx, span := startSpan(ctx, "verification.SaveDraft", ownerID)
	defer func() { endSpan(span, err) }()

	if draft.CurrentStep < 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "currentStep must not be negative")
	}
	attempt, created, err := s.withOpenAttempt(ctx, ownerID, actorID, func(ctx context.Context, stores ports.Stores, a *models.Attempt) error {
		if err := a.ApplyDraft(draft, requestcontext.Now(ctx)); err != nil {
			return err
		}
		return stores.Attempts.SaveDraft(ctx, a)
	})
	if err != nil {
		return nil, err
	}
	if created {
		s.attemptStarted(ctx, attempt)
	}

	step := draft.CurrentStep
	s.audit.LogVerificationHistory(ctx, auditsvc.HistoryEvent{
		VerificationID: attempt.ID,
		Action:         audit.ActionDraftSaved,
		PerformedBy:    actorID,
		StepNumber:     &step,
		OwnerID:        &attempt.OwnerID,
		Details: map[string]any{
			"currentStep": step,
			"savedSteps":  draft.StepKeys(),
		},
	})
	return attempt, nil
}

// UpdateDocumentVerification records a verdict on one of the owner's documents.
func (s *Service) UpdateDocumentVerification(ctx context.Context, req DocumentUpdate) (result *models.UpsertResult, err error) {
	ctx, span := startSpan(ctx, "verification.UpdateDocumentVerification", req.OwnerID)
	defer func() { endSpan(span, err) }()

	if !req.Status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown document verification status: "+string(req.Status))
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
		if _, err := s.authorize(ctx, stores, req.OwnerID, req.ActorID); err != nil {
			return err
		}
		if _, err := s.ownedAttempt(ctx, stores, req.OwnerID, req.VerificationID); err != nil {
			return err
		}
		if err := s.ownedDocuments(ctx, stores, req.OwnerID, []id.DocumentID{req.DocumentID}); err != nil {
			return err
		}
		r, err := s.tracker.Upsert(ctx, stores, req.VerificationID, req.DocumentID, req.Status, req.Notes, req.ActorID)
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return nil, translate(err, "failed to update document verification")
	}
	s.metrics.IncDocumentUpdate(string(req.Status))

	if err := s.notifier.SendDocumentStatus(ctx, req.OwnerID, req.DocumentID, req.Status); err != nil {
		s.notifyFailed(ctx, "document_status", req.OwnerID, err)
	}
	s.audit.LogVerificationHistory(ctx, auditsvc.HistoryEvent{
		VerificationID:   req.VerificationID,
		Action:           audit.ActionDocumentVerificationUpdated,
		PerformedBy:      req.ActorID,
		OwnerID:          &req.OwnerID,
		ActivityEntity:   audit.EntityDocument,
		ActivityEntityID: req.DocumentID.String(),
		Details: map[string]any{
			"documentId":     req.DocumentID.String(),
			"previousStatus": string(result.PreviousStatus),
			"status":         string(req.Status),
			"notes":          req.Notes,
			"requiresNote":   result.RequiresNote,
		},
	})
	if result.NoteMissing {
		s.logger.WarnContext(ctx, "document verdict recorded without a note",
			"verification_id", req.VerificationID.String(),
			"document_id", req.DocumentID.String(),
			"status", string(req.Status),
		)
	}
	return result, nil
}

// SubmitDecision completes the attempt and updates the owner atomically, then
// issues the certificate and notifies the owner on a best-effort basis.
func (s *Service) SubmitDecision(ctx context.Context, req DecisionRequest) (result *DecisionResult, err error) {
	ctx, span := startSpan(ctx, "verification.SubmitDecision", req.OwnerID)
	span.SetAttributes(attribute.String("decision", string(req.Decision)))
	defer func() { endSpan(span, err) }()
	start := time.Now()
	defer func() { s.metrics.ObserveDecisionLatency(time.Since(start)) }()

	if err := validateDecision(req); err != nil {
		return nil, err
	}

	var (
		attempt *models.Attempt
		owner   *ownermodels.BusinessOwner
	)
	for i := 0; ; i++ {
		err = s.tx.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
			o, err := s.authorize(ctx, stores, req.OwnerID, req.ActorID)
			if err != nil {
				return err
			}
			a, err := s.ownedAttempt(ctx, stores, req.OwnerID, req.VerificationID)
			if err != nil {
				return err
			}
			if !a.IsOpen() {
				return dErrors.New(dErrors.CodeInvalidState, models.ErrAttemptCompleted)
			}

			docIDs := make([]id.DocumentID, 0, len(req.Documents))
			for _, d := range req.Documents {
				docIDs = append(docIDs, d.DocumentID)
			}
			if err := s.ownedDocuments(ctx, stores, req.OwnerID, docIDs); err != nil {
				return err
			}
			if _, err := s.tracker.UpsertBatch(ctx, stores, a, req.Documents, req.ActorID); err != nil {
				return err
			}

			now := requestcontext.Now(ctx)
			if err := a.Complete(req.ActorID, req.Decision, strings.TrimSpace(req.Reason), req.Sections, now); err != nil {
				return err
			}
			if err := stores.Attempts.Complete(ctx, a); err != nil {
				return err
			}

			o.ApplyDecision(req.Decision.OwnerStatus(), now)
			if err := stores.Owners.Update(ctx, o); err != nil {
				return err
			}

			if err := s.audit.Record(ctx, stores.Audit, auditsvc.HistoryEvent{
				VerificationID: a.ID,
				Action:         audit.ActionVerificationCompleted,
				PerformedBy:    req.ActorID,
				OwnerID:        &a.OwnerID,
				Details: map[string]any{
					"decision":       string(req.Decision),
					"reason":         a.DecisionReason,
					"documentCount":  len(req.Documents),
					"ownerStatus":    string(o.VerificationStatus),
					"sectionsStatus": sectionStatuses(req.Sections),
				},
			}); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record verification decision")
			}

			attempt, owner = a, o
			return nil
		})
		if err == nil {
			break
		}
		if errors.Is(err, sentinel.ErrConflict) && i < maxConflictRetries {
			s.metrics.IncConflictRetry()
			continue
		}
		return nil, translate(err, "failed to submit verification decision")
	}

	s.metrics.IncDecision(string(req.Decision))
	s.logger.InfoContext(ctx, "verification decision submitted",
		"request_id", requestcontext.RequestID(ctx),
		"owner_id", req.OwnerID.String(),
		"verification_id", attempt.ID.String(),
		"decision", string(req.Decision),
	)

	result = &DecisionResult{Attempt: attempt, Owner: owner.Masked()}
	if req.Decision == models.DecisionVerified {
		cert, err := s.issuer.Generate(ctx, attempt.ID, req.ActorID)
		if err != nil {
			s.metrics.IncCertificateFailure()
			s.logger.ErrorContext(ctx, "certificate generation failed",
				"verification_id", attempt.ID.String(),
				"error", err,
			)
		} else {
			result.CertificateID = &cert.ID
		}
	}

	if err := s.notifier.SendVerificationDecision(ctx, req.OwnerID, req.Decision, attempt.DecisionReason); err != nil {
		s.notifyFailed(ctx, "verification_decision", req.OwnerID, err)
	}
	return result, nil
}

func validateDecision(req DecisionRequest) error {
	if _, err := models.ParseDecision(string(req.Decision)); err != nil {
		return err
	}
	if req.Decision.RequiresReason() && strings.TrimSpace(req.Reason) == "" {
		return dErrors.New(dErrors.CodeValidation, "decisionReason is required for "+string(req.Decision))
	}
	if err := req.Sections.Validate(); err != nil {
		return err
	}
	if req.Decision == models.DecisionVerified && !req.Sections.AllComplete() {
		names := make([]string, 0, 3)
		for _, n := range req.Sections.Incomplete() {
			names = append(names, string(n))
		}
		return dErrors.New(dErrors.CodeValidation, "all sections must be COMPLETE to verify; incomplete: "+strings.Join(names, ", "))
	}
	seen := make(map[id.DocumentID]struct{}, len(req.Documents))
	for _, d := range req.Documents {
		if !d.Status.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "unknown document verification status: "+string(d.Status))
		}
		if _, dup := seen[d.DocumentID]; dup {
			return dErrors.New(dErrors.CodeValidation, "duplicate document verification for "+d.DocumentID.String())
		}
		seen[d.DocumentID] = struct{}{}
	}
	return nil
}

// withOpenAttempt finds or creates the open attempt and runs fn on it in the
// same transaction. Losing a creation or version race re-runs the whole
// transaction, since a failed statement poisons it.
func (s *Service) withOpenAttempt(ctx context.Context, ownerID id.OwnerID, actorID id.ActorID, fn func(ctx context.Context, stores ports.Stores, a *models.Attempt) error) (*models.Attempt, bool, error) {
	for i := 0; ; i++ {
		var (
			attempt *models.Attempt
			created bool
		)
		err := s.tx.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
			owner, err := s.authorize(ctx, stores, ownerID, actorID)
			if err != nil {
				return err
			}
			a, err := stores.Attempts.FindOpenByOwner(ctx, ownerID)
			switch {
			case err == nil:
			case errors.Is(err, sentinel.ErrNotFound):
				now := requestcontext.Now(ctx)
				a = models.NewAttempt(ownerID, actorID, now)
				if err := stores.Attempts.Create(ctx, a); err != nil {
					return err
				}
				owner.ApplyAttemptStarted(a.ID, now)
				if err := stores.Owners.Update(ctx, owner); err != nil {
					return err
				}
				created = true
			default:
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load open verification attempt")
			}
			if fn != nil {
				if err := fn(ctx, stores, a); err != nil {
					return err
				}
			}
			attempt = a
			return nil
		})
		if err == nil {
			return attempt, created, nil
		}
		if errors.Is(err, sentinel.ErrConflict) && i < maxConflictRetries {
			s.metrics.IncConflictRetry()
			continue
		}
		return nil, false, translate(err, "failed to open verification attempt")
	}
}

func (s *Service) attemptStarted(ctx context.Context, attempt *models.Attempt) {
	s.metrics.IncAttemptStarted()
	s.logger.InfoContext(ctx, "verification attempt opened",
		"request_id", requestcontext.RequestID(ctx),
		"owner_id", attempt.OwnerID.String(),
		"verification_id", attempt.ID.String(),
	)
	s.audit.LogVerificationHistory(ctx, auditsvc.HistoryEvent{
		VerificationID: attempt.ID,
		Action:         audit.ActionVerificationStarted,
		PerformedBy:    attempt.InitiatedBy,
		OwnerID:        &attempt.OwnerID,
	})
}

// authorize loads the owner when actorID is its assigned manager. Any other
// outcome reads as a missing owner.
func (s *Service) authorize(ctx context.Context, stores ports.Stores, ownerID id.OwnerID, actorID id.ActorID) (*ownermodels.BusinessOwner, error) {
	owner, err := stores.Owners.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "business owner not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business owner")
	}
	if !owner.IsManagedBy(actorID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "business owner not found")
	}
	return owner, nil
}

func (s *Service) ownedAttempt(ctx context.Context, stores ports.Stores, ownerID id.OwnerID, verificationID id.VerificationID) (*models.Attempt, error) {
	attempt, err := stores.Attempts.FindByID(ctx, verificationID)
	if err != nil {
		return nil, translateAttemptErr(err)
	}
	if attempt.OwnerID != ownerID {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification attempt not found")
	}
	return attempt, nil
}

func (s *Service) ownedDocuments(ctx context.Context, stores ports.Stores, ownerID id.OwnerID, documentIDs []id.DocumentID) error {
	for _, docID := range documentIDs {
		doc, err := stores.Documents.FindByID(ctx, docID)
		if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load document")
		}
		if err != nil || doc.OwnerID != ownerID {
			return dErrors.New(dErrors.CodeNotFound, "document not found: "+docID.String())
		}
	}
	return nil
}

func (s *Service) notifyFailed(ctx context.Context, kind string, ownerID id.OwnerID, err error) {
	s.metrics.IncNotificationFailure(kind)
	s.logger.WarnContext(ctx, "owner notification failed",
		"type", kind,
		"owner_id", ownerID.String(),
		"error", err,
	)
}

// translate keeps coded errors and maps store sentinels that escaped a unit of work.
func translate(err error, msg string) error {
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.New(dErrors.CodeInvalidState, models.ErrAttemptCompleted)
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "verification was modified concurrently, retry the request")
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.Wrap(err, dErrors.CodeNotFound, "resource not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, msg)
	}
}

func sectionStatuses(s models.Sections) map[string]string {
	return map[string]string{
		string(models.SectionIdentity):            string(s.Identity.Status),
		string(models.SectionAddress):             string(s.Address.Status),
		string(models.SectionBusinessAffiliation): string(s.BusinessAffiliation.Status),
	}
}

func startSpan(ctx context.Context, name string, ownerID id.OwnerID) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("owner_id", ownerID.String())))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprint(dErrors.CodeOf(err)))
	}
	span.End()
}
