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
	"ownerverify/internal/certificate/metrics"
	"ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/platform/blobstore"
	verificationmodels "ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/sentinel"
	"ownerverify/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type Renderer interface {
	Render(ctx context.Context, payload models.RenderPayload) ([]byte, error)
	ContentType() string
}

type BlobStore interface {
	Upload(ctx context.Context, data []byte, contentType string) (blobstore.Object, error)
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, store audit.Store, ev auditsvc.HistoryEvent) error
}

// HashLookup reads certificates by hash, typically through a cache.
type HashLookup interface {
	FindByHash(ctx context.Context, hash string) (*models.Certificate, error)
	Invalidate(ctx context.Context, hash string)
}

const (
	defaultNumberAttempts = 5
	defaultDownloadTTL    = 15 * time.Minute
)

var tracer = otel.Tracer("ownerverify/certificate")

// Service issues, validates and revokes verification certificates.
type Service struct {
	stores         ports.Stores
	tx             ports.TxRunner
	renderer       Renderer
	blobs          BlobStore
	audit          AuditRecorder
	lookup         HashLookup
	baseURL        string
	downloadTTL    time.Duration
	numberAttempts int
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithHashLookup puts a cache in front of public hash lookups.
func WithHashLookup(l HashLookup) Option {
	return func(s *Service) { s.lookup = l }
}

func WithDownloadTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.downloadTTL = d
		}
	}
}

func WithNumberAttempts(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.numberAttempts = n
		}
	}
}

// New constructs the issuer. stores are the committed-state stores used for
// reads outside a transaction; baseURL prefixes validation URLs.
func New(stores ports.Stores, tx ports.TxRunner, renderer Renderer, blobs BlobStore, auditor AuditRecorder, baseURL string, opts ...Option) *Service {
	s := &Service{
		stores:         stores,
		tx:             tx,
		renderer:       renderer,
		blobs:          blobs,
		audit:          auditor,
		baseURL:        strings.TrimRight(baseURL, "/"),
		downloadTTL:    defaultDownloadTTL,
		numberAttempts: defaultNumberAttempts,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidationURL is the public link a certificate hash resolves at.
func (s *Service) ValidationURL(hash string) string {
	return s.baseURL + "/verify/" + hash
}

// Generate issues the certificate for a VERIFIED attempt. An existing
// certificate for the attempt is returned unchanged.
func (s *Service) Generate(ctx context.Context, verificationID id.VerificationID, actorID id.ActorID) (cert *models.Certificate, err error) {
	ctx, span := tracer.Start(ctx, "certificate.Generate",
		trace.WithAttributes(attribute.String("verification_id", verificationID.String())))
	defer func() { endSpan(span, err) }()

	existing, err := s.stores.Certificates.FindByVerification(ctx, verificationID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}

	attempt, err := s.stores.Attempts.FindByID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeInvalidState, "verification attempt not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load verification attempt")
	}
	if !attempt.IsVerified() {
		return nil, dErrors.New(dErrors.CodeInvalidState, "certificates are only issued for VERIFIED verification attempts")
	}
	owner, err := s.stores.Owners.FindByID(ctx, attempt.OwnerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business owner")
	}

	hash, err := models.NewHashPayload(attempt.ID, attempt.OwnerID, *attempt.CompletedBy, *attempt.CompletedAt, owner.FullName()).Hash()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to compute verification hash")
	}

	for i := 0; i < s.numberAttempts; i++ {
		cert, err = s.issue(ctx, attempt, owner, hash, actorID)
		switch {
		case err == nil:
			s.metrics.IncIssued()
			s.logger.InfoContext(ctx, "certificate issued",
				"certificate_id", cert.ID.String(),
				"verification_id", verificationID.String(),
				"certificate_number", cert.CertificateNumber,
			)
			return cert, nil
		case errors.Is(err, sentinel.ErrConflict):
			s.metrics.IncNumberCollision()
			continue
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			winner, findErr := s.stores.Certificates.FindByVerification(ctx, verificationID)
			if findErr != nil {
				return nil, dErrors.Wrap(findErr, dErrors.CodeInternal, "failed to load concurrently issued certificate")
			}
			return winner, nil
		default:
			return nil, err
		}
	}
	return nil, dErrors.New(dErrors.CodeConflict, "could not allocate a unique certificate number")
}

// issue renders, uploads and persists one certificate with a fresh number.
// Store conflicts come back as sentinel errors for Generate to interpret.
func (s *Service) issue(ctx context.Context, attempt *verificationmodels.Attempt, owner *ownermodels.BusinessOwner, hash string, actorID id.ActorID) (*models.Certificate, error) {
	now := requestcontext.Now(ctx)
	number, err := models.GenerateNumber(now)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate certificate number")
	}
	validationURL := s.ValidationURL(hash)
	qr, err := models.QRPayload{CertificateNumber: number, VerificationHash: hash, ValidationURL: validationURL}.Encode()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encode qr payload")
	}

	cert := &models.Certificate{
		ID:                id.NewCertificateID(),
		VerificationID:    attempt.ID,
		OwnerID:           attempt.OwnerID,
		CertificateNumber: number,
		OwnerName:         owner.FullName(),
		VerifiedAt:        *attempt.CompletedAt,
		IssuedAt:          now,
		ExpiresAt:         attempt.CompletedAt.Add(models.Validity),
		VerificationHash:  hash,
		ValidationURL:     validationURL,
		QRCodeData:        qr,
		IssuedBy:          actorID,
	}

	pdf, err := s.renderer.Render(ctx, models.RenderPayload{
		CertificateNumber: cert.CertificateNumber,
		OwnerName:         cert.OwnerName,
		BusinessName:      owner.BusinessName,
		VerifiedAt:        cert.VerifiedAt,
		IssuedAt:          cert.IssuedAt,
		ExpiresAt:         cert.ExpiresAt,
		VerificationHash:  cert.VerificationHash,
		ValidationURL:     cert.ValidationURL,
		QRCodeData:        cert.QRCodeData,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDependencyFailure, "failed to render certificate")
	}
	obj, err := s.blobs.Upload(ctx, pdf, s.renderer.ContentType())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeDependencyFailure, "failed to store certificate document")
	}
	cert.DocumentPath = obj.Path
	cert.DocumentURL = obj.URL

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
		if err := stores.Certificates.Create(ctx, cert); err != nil {
			return err
		}
		return s.audit.Record(ctx, stores.Audit, auditsvc.HistoryEvent{
			VerificationID:   attempt.ID,
			Action:           audit.ActionCertificateGenerated,
			PerformedBy:      actorID,
			OwnerID:          &cert.OwnerID,
			ActivityEntity:   audit.EntityCertificate,
			ActivityEntityID: cert.ID.String(),
			Details: map[string]any{
				"certificateId":     cert.ID.String(),
				"certificateNumber": cert.CertificateNumber,
				"verificationHash":  cert.VerificationHash,
				"expiresAt":         cert.ExpiresAt.UTC().Format(time.RFC3339),
			},
		})
	})
	if err != nil {
		if errors.Is(err, sentinel.ErrConflict) || errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist certificate")
	}
	return cert, nil
}

// VerifyByHash is the public validation path. Failures carry a reason and no owner data.
func (s *Service) VerifyByHash(ctx context.Context, hash string) (v models.Validation, err error) {
	ctx, span := tracer.Start(ctx, "certificate.VerifyByHash")
	defer func() { endSpan(span, err) }()

	hash = strings.ToLower(strings.TrimSpace(hash))
	if !models.IsValidHash(hash) {
		s.metrics.ObserveValidation("malformed")
		return models.Validation{Reason: models.ReasonMalformed}, nil
	}

	var cert *models.Certificate
	if s.lookup != nil {
		cert, err = s.lookup.FindByHash(ctx, hash)
	} else {
		cert, err = s.stores.Certificates.FindByHash(ctx, hash)
	}
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return models.Validation{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up certificate")
	}

	v = models.Evaluate(cert, requestcontext.Now(ctx))
	s.metrics.ObserveValidation(validationLabel(v))
	return v, nil
}

func validationLabel(v models.Validation) string {
	switch {
	case v.Valid:
		return "valid"
	case v.Reason == models.ReasonRevoked:
		return "revoked"
	case v.Reason == models.ReasonExpired:
		return "expired"
	default:
		return "not_found"
	}
}

// Revoke is one-way. Certificates of owners outside the actor's scope are reported as not found.
func (s *Service) Revoke(ctx context.Context, certificateID id.CertificateID, actorID id.ActorID, reason string) (cert *models.Certificate, err error) {
	ctx, span := tracer.Start(ctx, "certificate.Revoke",
		trace.WithAttributes(attribute.String("certificate_id", certificateID.String())))
	defer func() { endSpan(span, err) }()

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "revocation reason is required")
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context, stores ports.Stores) error {
		c, err := s.authorizedCertificate(ctx, stores, certificateID, actorID)
		if err != nil {
			return err
		}
		if err := c.Revoke(actorID, reason, requestcontext.Now(ctx)); err != nil {
			return err
		}
		if err := stores.Certificates.Revoke(ctx, c); err != nil {
			if errors.Is(err, sentinel.ErrInvalidState) {
				return dErrors.New(dErrors.CodeInvalidState, "certificate is already revoked")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke certificate")
		}
		if err := s.audit.Record(ctx, stores.Audit, auditsvc.HistoryEvent{
			VerificationID:   c.VerificationID,
			Action:           audit.ActionCertificateRevoked,
			PerformedBy:      actorID,
			OwnerID:          &c.OwnerID,
			ActivityEntity:   audit.EntityCertificate,
			ActivityEntityID: c.ID.String(),
			Details: map[string]any{
				"certificateNumber": c.CertificateNumber,
				"reason":            reason,
			},
		}); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record certificate revocation")
		}
		cert = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.lookup != nil {
		s.lookup.Invalidate(ctx, cert.VerificationHash)
	}
	s.metrics.IncRevoked()
	s.logger.InfoContext(ctx, "certificate revoked",
		"certificate_id", cert.ID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return cert, nil
}

// GetDownloadURL returns a short-lived signed link to the certificate PDF.
func (s *Service) GetDownloadURL(ctx context.Context, certificateID id.CertificateID, actorID id.ActorID) (string, error) {
	cert, err := s.authorizedCertificate(ctx, s.stores, certificateID, actorID)
	if err != nil {
		return "", err
	}
	url, err := s.blobs.SignedURL(ctx, cert.DocumentPath, s.downloadTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeDependencyFailure, "failed to sign certificate download link")
	}
	return url, nil
}

// LatestForOwner returns the owner's most recent certificate, nil when there is none.
func (s *Service) LatestForOwner(ctx context.Context, ownerID id.OwnerID) (*models.Certificate, error) {
	cert, err := s.stores.Certificates.FindLatestByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	return cert, nil
}

func (s *Service) authorizedCertificate(ctx context.Context, stores ports.Stores, certificateID id.CertificateID, actorID id.ActorID) (*models.Certificate, error) {
	notFound := dErrors.New(dErrors.CodeNotFound, "certificate not found")
	cert, err := stores.Certificates.FindByID(ctx, certificateID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, notFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load certificate")
	}
	owner, err := stores.Owners.FindByID(ctx, cert.OwnerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, notFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load business owner")
	}
	if !owner.IsManagedBy(actorID) {
		return nil, notFound
	}
	return cert, nil
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, fmt.Sprint(dErrors.CodeOf(err)))
	}
	span.End()
}
