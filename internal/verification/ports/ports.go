// Package ports declares the persistence boundary shared by the verification
// engine and the certificate issuer. Every store method joins the unit of work
// carried by its context.
package ports

import (
	"context"

	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=mocks/ports_mock.go -package=mocks

// OwnerStore returns sentinel.ErrNotFound for unknown owners and
// sentinel.ErrConflict when Update loses the optimistic version check.
type OwnerStore interface {
	FindByID(ctx context.Context, ownerID id.OwnerID) (*ownermodels.BusinessOwner, error)
	// Update persists owner when its stored version still equals owner.Version,
	// then increments owner.Version.
	Update(ctx context.Context, owner *ownermodels.BusinessOwner) error
}

// DocumentRegistry holds the owners' uploaded document metadata.
type DocumentRegistry interface {
	Create(ctx context.Context, doc *ownermodels.Document) error
	FindByID(ctx context.Context, documentID id.DocumentID) (*ownermodels.Document, error)
	ListByOwner(ctx context.Context, ownerID id.OwnerID) ([]*ownermodels.Document, error)
}

// AttemptStore enforces one open attempt per owner: Create returns
// sentinel.ErrConflict when the owner already has one. Writes to a completed
// attempt return sentinel.ErrInvalidState.
type AttemptStore interface {
	Create(ctx context.Context, attempt *models.Attempt) error
	FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Attempt, error)
	FindOpenByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Attempt, error)
	SaveDraft(ctx context.Context, attempt *models.Attempt) error
	Complete(ctx context.Context, attempt *models.Attempt) error
}

// DocumentVerificationStore upserts on (verificationID, documentID).
type DocumentVerificationStore interface {
	// Upsert returns the status the record had before the write, empty when new.
	Upsert(ctx context.Context, dv *models.DocumentVerification) (models.DocumentStatus, error)
	UpsertBatch(ctx context.Context, dvs []*models.DocumentVerification) error
	ListByVerification(ctx context.Context, verificationID id.VerificationID) ([]*models.DocumentVerification, error)
}

// CertificateStore returns sentinel.ErrAlreadyUsed when the verification already
// has a certificate and sentinel.ErrConflict on a certificate number collision.
type CertificateStore interface {
	Create(ctx context.Context, cert *certmodels.Certificate) error
	FindByID(ctx context.Context, certificateID id.CertificateID) (*certmodels.Certificate, error)
	FindByVerification(ctx context.Context, verificationID id.VerificationID) (*certmodels.Certificate, error)
	FindByHash(ctx context.Context, hash string) (*certmodels.Certificate, error)
	FindLatestByOwner(ctx context.Context, ownerID id.OwnerID) (*certmodels.Certificate, error)
	// FindRevocation reads only the revocation columns of one certificate.
	FindRevocation(ctx context.Context, certificateID id.CertificateID) (certmodels.Revocation, error)
	// Revoke persists revocation fields only when the stored row is not revoked yet.
	Revoke(ctx context.Context, cert *certmodels.Certificate) error
}

// Stores groups the repositories a unit of work can touch.
type Stores struct {
	Owners        OwnerStore
	Documents     DocumentRegistry
	Attempts      AttemptStore
	Verifications DocumentVerificationStore
	Certificates  CertificateStore
	Audit         audit.Store
}

// TxRunner runs fn atomically. fn must use the context and stores it is given;
// when fn returns an error nothing it wrote is kept.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}
