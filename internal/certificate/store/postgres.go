package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"ownerverify/internal/certificate/models"
	"ownerverify/internal/platform/postgres"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/platform/sentinel"
	txcontext "ownerverify/pkg/platform/tx"
)

const (
	verificationConstraint = "uq_certificates_verification"
	numberConstraint       = "uq_certificates_number"
)

// Postgres persists certificates. Rows are never deleted; only revocation
// columns are updated after insert.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

const certificateColumns = `
	id, verification_id, business_owner_id, certificate_number, owner_name, verified_at,
	issued_at, expires_at, document_path, document_url, verification_hash, validation_url,
	qr_code_data, issued_by, is_revoked, revoked_at, revoked_reason, revoked_by`

func (s *Postgres) Create(ctx context.Context, c *models.Certificate) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO verification_certificates (`+certificateColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, FALSE, NULL, '', NULL)
	`,
		uuid.UUID(c.ID), uuid.UUID(c.VerificationID), uuid.UUID(c.OwnerID), c.CertificateNumber, c.OwnerName,
		c.VerifiedAt, c.IssuedAt, c.ExpiresAt, c.DocumentPath, c.DocumentURL, c.VerificationHash,
		c.ValidationURL, c.QRCodeData, uuid.UUID(c.IssuedBy),
	)
	switch {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err, verificationConstraint):
		return sentinel.ErrAlreadyUsed
	case postgres.IsUniqueViolation(err, numberConstraint):
		return sentinel.ErrConflict
	default:
		return fmt.Errorf("insert certificate: %w", err)
	}
}

func (s *Postgres) FindByID(ctx context.Context, certificateID id.CertificateID) (*models.Certificate, error) {
	return s.findOne(ctx, `WHERE id = $1`, uuid.UUID(certificateID))
}

func (s *Postgres) FindByVerification(ctx context.Context, verificationID id.VerificationID) (*models.Certificate, error) {
	return s.findOne(ctx, `WHERE verification_id = $1`, uuid.UUID(verificationID))
}

func (s *Postgres) FindByHash(ctx context.Context, hash string) (*models.Certificate, error) {
	return s.findOne(ctx, `WHERE verification_hash = $1`, hash)
}

func (s *Postgres) FindLatestByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Certificate, error) {
	return s.findOne(ctx, `WHERE business_owner_id = $1 ORDER BY issued_at DESC LIMIT 1`, uuid.UUID(ownerID))
}

// FindRevocation reads the revocation columns by primary key. The hash cache
// calls it on every hit so revocation never comes from Redis.
func (s *Postgres) FindRevocation(ctx context.Context, certificateID id.CertificateID) (models.Revocation, error) {
	var (
		r         models.Revocation
		revokedBy *uuid.UUID
	)
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		SELECT is_revoked, revoked_at, revoked_reason, revoked_by
		FROM verification_certificates WHERE id = $1
	`, uuid.UUID(certificateID)).Scan(&r.IsRevoked, &r.RevokedAt, &r.RevokedReason, &revokedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Revocation{}, sentinel.ErrNotFound
		}
		return models.Revocation{}, fmt.Errorf("find certificate revocation: %w", err)
	}
	if revokedBy != nil {
		actor := id.ActorID(*revokedBy)
		r.RevokedBy = &actor
	}
	return r, nil
}

func (s *Postgres) Revoke(ctx context.Context, c *models.Certificate) error {
	var revokedBy *uuid.UUID
	if c.RevokedBy != nil {
		u := uuid.UUID(*c.RevokedBy)
		revokedBy = &u
	}
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE verification_certificates SET
			is_revoked = TRUE,
			revoked_at = $2,
			revoked_reason = $3,
			revoked_by = $4
		WHERE id = $1 AND is_revoked = FALSE
	`, uuid.UUID(c.ID), c.RevokedAt, c.RevokedReason, revokedBy)
	if err != nil {
		return fmt.Errorf("revoke certificate: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke certificate: %w", err)
	}
	if n == 0 {
		return sentinel.ErrInvalidState
	}
	return nil
}

func (s *Postgres) findOne(ctx context.Context, where string, arg any) (*models.Certificate, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+certificateColumns+` FROM verification_certificates `+where, arg)

	var (
		c                         models.Certificate
		rawID, vid, owner, issuer uuid.UUID
		revokedBy                 *uuid.UUID
	)
	err := row.Scan(&rawID, &vid, &owner, &c.CertificateNumber, &c.OwnerName, &c.VerifiedAt,
		&c.IssuedAt, &c.ExpiresAt, &c.DocumentPath, &c.DocumentURL, &c.VerificationHash, &c.ValidationURL,
		&c.QRCodeData, &issuer, &c.IsRevoked, &c.RevokedAt, &c.RevokedReason, &revokedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find certificate: %w", err)
	}
	c.ID = id.CertificateID(rawID)
	c.VerificationID = id.VerificationID(vid)
	c.OwnerID = id.OwnerID(owner)
	c.IssuedBy = id.ActorID(issuer)
	if revokedBy != nil {
		actor := id.ActorID(*revokedBy)
		c.RevokedBy = &actor
	}
	return &c, nil
}
