package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ownerverify/internal/owner/models"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/platform/sentinel"
	txcontext "ownerverify/pkg/platform/tx"
)

// OwnerPostgres persists business owners.
type OwnerPostgres struct {
	db *sql.DB
}

func NewOwnerPostgres(db *sql.DB) *OwnerPostgres {
	return &OwnerPostgres{db: db}
}

const ownerColumns = `
	id, first_name, middle_name, last_name, business_name, email, phone, tax_id,
	verification_status, current_verification_attempt_id, last_verified_at,
	verification_expires_at, assigned_manager_id, deleted_at, version, created_at, updated_at`

// Create inserts a new owner with version 1.
func (s *OwnerPostgres) Create(ctx context.Context, o *models.BusinessOwner) error {
	if o.Version == 0 {
		o.Version = 1
	}
	if o.VerificationStatus == "" {
		o.VerificationStatus = models.StatusUnverified
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO business_owners (`+ownerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`,
		uuid.UUID(o.ID), o.FirstName, o.MiddleName, o.LastName, o.BusinessName, o.Email, o.Phone, o.TaxID,
		string(o.VerificationStatus), nullableVerificationID(o.CurrentVerificationAttemptID), o.LastVerifiedAt,
		o.VerificationExpiresAt, uuid.UUID(o.AssignedManagerID), o.DeletedAt, o.Version, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business owner: %w", err)
	}
	return nil
}

func (s *OwnerPostgres) FindByID(ctx context.Context, ownerID id.OwnerID) (*models.BusinessOwner, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+ownerColumns+` FROM business_owners WHERE id = $1`, uuid.UUID(ownerID))

	var (
		o                models.BusinessOwner
		rawID, manager   uuid.UUID
		status           string
		currentAttemptID *uuid.UUID
	)
	err := row.Scan(&rawID, &o.FirstName, &o.MiddleName, &o.LastName, &o.BusinessName, &o.Email, &o.Phone, &o.TaxID,
		&status, &currentAttemptID, &o.LastVerifiedAt, &o.VerificationExpiresAt, &manager, &o.DeletedAt,
		&o.Version, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find business owner: %w", err)
	}
	o.ID = id.OwnerID(rawID)
	o.AssignedManagerID = id.ActorID(manager)
	o.VerificationStatus = models.VerificationStatus(status)
	if currentAttemptID != nil {
		vid := id.VerificationID(*currentAttemptID)
		o.CurrentVerificationAttemptID = &vid
	}
	return &o, nil
}

// Update writes the verification fields guarded by the optimistic version.
func (s *OwnerPostgres) Update(ctx context.Context, o *models.BusinessOwner) error {
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE business_owners SET
			verification_status = $3,
			current_verification_attempt_id = $4,
			last_verified_at = $5,
			verification_expires_at = $6,
			updated_at = $7,
			version = version + 1
		WHERE id = $1 AND version = $2
	`,
		uuid.UUID(o.ID), o.Version, string(o.VerificationStatus),
		nullableVerificationID(o.CurrentVerificationAttemptID),
		o.LastVerifiedAt, o.VerificationExpiresAt, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update business owner: %w", err)
	}
	if affected == 0 {
		return sentinel.ErrConflict
	}
	o.Version++
	return nil
}

func nullableVerificationID(v *id.VerificationID) *uuid.UUID {
	if v == nil {
		return nil
	}
	u := uuid.UUID(*v)
	return &u
}

// DocumentPostgres persists document metadata. Blob bytes live in the blob store.
type DocumentPostgres struct {
	db *sql.DB
}

func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

const documentColumns = `
	id, business_owner_id, category, document_type, file_name, content_type,
	storage_path, content_hash, size_bytes, uploaded_by, uploaded_at`

func (s *DocumentPostgres) Create(ctx context.Context, d *models.Document) error {
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		uuid.UUID(d.ID), uuid.UUID(d.OwnerID), string(d.Category), d.DocumentType, d.FileName, d.ContentType,
		d.StoragePath, d.ContentHash, d.Size, uuid.UUID(d.UploadedBy), d.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *DocumentPostgres) FindByID(ctx context.Context, documentID id.DocumentID) (*models.Document, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = $1`, uuid.UUID(documentID))
	if err != nil {
		return nil, fmt.Errorf("find document: %w", err)
	}
	docs, err := scanDocuments(rows)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, sentinel.ErrNotFound
	}
	return docs[0], nil
}

func (s *DocumentPostgres) ListByOwner(ctx context.Context, ownerID id.OwnerID) ([]*models.Document, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE business_owner_id = $1 ORDER BY uploaded_at`, uuid.UUID(ownerID))
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return scanDocuments(rows)
}

func scanDocuments(rows *sql.Rows) ([]*models.Document, error) {
	defer rows.Close()
	var out []*models.Document
	for rows.Next() {
		var (
			d                      models.Document
			rawID, owner, uploader uuid.UUID
			category               string
			uploadedAt             time.Time
		)
		if err := rows.Scan(&rawID, &owner, &category, &d.DocumentType, &d.FileName, &d.ContentType,
			&d.StoragePath, &d.ContentHash, &d.Size, &uploader, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.ID = id.DocumentID(rawID)
		d.OwnerID = id.OwnerID(owner)
		d.UploadedBy = id.ActorID(uploader)
		d.Category = models.DocumentCategory(category)
		d.UploadedAt = uploadedAt
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return out, nil
}
