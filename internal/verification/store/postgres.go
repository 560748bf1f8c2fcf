package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"ownerverify/internal/platform/postgres"
	"ownerverify/internal/verification/models"
	id "ownerverify/pkg/domain"
	"ownerverify/pkg/platform/sentinel"
	txcontext "ownerverify/pkg/platform/tx"
)

const openAttemptConstraint = "uq_verification_attempts_open_owner"

// AttemptPostgres persists verification attempts. Sections and draft data are JSONB.
type AttemptPostgres struct {
	db *sql.DB
}

func NewAttemptPostgres(db *sql.DB) *AttemptPostgres {
	return &AttemptPostgres{db: db}
}

const attemptColumns = `
	id, business_owner_id, initiated_by, sections, draft_data, completed_at,
	completed_by, decision, decision_reason, created_at, last_updated`

func (s *AttemptPostgres) Create(ctx context.Context, a *models.Attempt) error {
	sections, draft, err := marshalAttemptJSON(a)
	if err != nil {
		return err
	}
	_, err = txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO verification_attempts (`+attemptColumns+`)
		VALUES ($1, $2, $3, $4, $5, NULL, NULL, NULL, '', $6, $7)
	`, uuid.UUID(a.ID), uuid.UUID(a.OwnerID), uuid.UUID(a.InitiatedBy), sections, draft, a.CreatedAt, a.LastUpdated)
	if err != nil {
		if postgres.IsUniqueViolation(err, openAttemptConstraint) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert verification attempt: %w", err)
	}
	return nil
}

func (s *AttemptPostgres) FindByID(ctx context.Context, verificationID id.VerificationID) (*models.Attempt, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+attemptColumns+` FROM verification_attempts WHERE id = $1`, uuid.UUID(verificationID))
	return scanAttempt(row)
}

func (s *AttemptPostgres) FindOpenByOwner(ctx context.Context, ownerID id.OwnerID) (*models.Attempt, error) {
	row := txcontext.Exec(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+attemptColumns+` FROM verification_attempts
		 WHERE business_owner_id = $1 AND completed_at IS NULL`, uuid.UUID(ownerID))
	return scanAttempt(row)
}

func (s *AttemptPostgres) SaveDraft(ctx context.Context, a *models.Attempt) error {
	draft, err := json.Marshal(a.DraftData)
	if err != nil {
		return fmt.Errorf("marshal draft data: %w", err)
	}
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE verification_attempts SET draft_data = $2, last_updated = $3
		WHERE id = $1 AND completed_at IS NULL
	`, uuid.UUID(a.ID), draft, a.LastUpdated)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return requireOneRow(res, "save draft")
}

func (s *AttemptPostgres) Complete(ctx context.Context, a *models.Attempt) error {
	if a.CompletedAt == nil || a.CompletedBy == nil || a.Decision == nil {
		return fmt.Errorf("complete attempt %s: %w", a.ID, sentinel.ErrInvalidState)
	}
	sections, err := json.Marshal(a.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	res, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE verification_attempts SET
			sections = $2,
			completed_at = $3,
			completed_by = $4,
			decision = $5,
			decision_reason = $6,
			last_updated = $7
		WHERE id = $1 AND completed_at IS NULL
	`, uuid.UUID(a.ID), sections, *a.CompletedAt, uuid.UUID(*a.CompletedBy), string(*a.Decision), a.DecisionReason, a.LastUpdated)
	if err != nil {
		return fmt.Errorf("complete attempt: %w", err)
	}
	return requireOneRow(res, "complete attempt")
}

// requireOneRow maps a guarded update that matched nothing to ErrInvalidState:
// callers load the attempt first, so a miss means it completed in between.
func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrInvalidState
	}
	return nil
}

func marshalAttemptJSON(a *models.Attempt) (sections, draft []byte, err error) {
	if sections, err = json.Marshal(a.Sections); err != nil {
		return nil, nil, fmt.Errorf("marshal sections: %w", err)
	}
	if draft, err = json.Marshal(a.DraftData); err != nil {
		return nil, nil, fmt.Errorf("marshal draft data: %w", err)
	}
	return sections, draft, nil
}

func scanAttempt(row *sql.Row) (*models.Attempt, error) {
	var (
		a                       models.Attempt
		rawID, owner, initiator uuid.UUID
		sections, draft         []byte
		completedBy             *uuid.UUID
		decision                *string
	)
	err := row.Scan(&rawID, &owner, &initiator, &sections, &draft, &a.CompletedAt,
		&completedBy, &decision, &a.DecisionReason, &a.CreatedAt, &a.LastUpdated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification attempt: %w", err)
	}
	a.ID = id.VerificationID(rawID)
	a.OwnerID = id.OwnerID(owner)
	a.InitiatedBy = id.ActorID(initiator)
	if err := json.Unmarshal(sections, &a.Sections); err != nil {
		return nil, fmt.Errorf("unmarshal sections: %w", err)
	}
	if err := json.Unmarshal(draft, &a.DraftData); err != nil {
		return nil, fmt.Errorf("unmarshal draft data: %w", err)
	}
	if completedBy != nil {
		actor := id.ActorID(*completedBy)
		a.CompletedBy = &actor
	}
	if decision != nil {
		d := models.Decision(*decision)
		a.Decision = &d
	}
	return &a, nil
}

// DocumentVerificationPostgres persists per-document verdicts keyed by
// (verification_id, document_id).
type DocumentVerificationPostgres struct {
	db *sql.DB
}

func NewDocumentVerificationPostgres(db *sql.DB) *DocumentVerificationPostgres {
	return &DocumentVerificationPostgres{db: db}
}

func (s *DocumentVerificationPostgres) Upsert(ctx context.Context, dv *models.DocumentVerification) (models.DocumentStatus, error) {
	var previous string
	err := txcontext.Exec(ctx, s.db).QueryRowContext(ctx, `
		WITH prev AS (
			SELECT status FROM document_verifications
			WHERE verification_id = $1 AND document_id = $2
		)
		INSERT INTO document_verifications (verification_id, document_id, status, notes, verified_by, verified_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (verification_id, document_id) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			verified_by = EXCLUDED.verified_by,
			verified_at = EXCLUDED.verified_at
		RETURNING COALESCE((SELECT status FROM prev), '')
	`, uuid.UUID(dv.VerificationID), uuid.UUID(dv.DocumentID), string(dv.Status), dv.Notes,
		uuid.UUID(dv.VerifiedBy), dv.VerifiedAt).Scan(&previous)
	if err != nil {
		return "", fmt.Errorf("upsert document verification: %w", err)
	}
	return models.DocumentStatus(previous), nil
}

// UpsertBatch writes all records in one round trip using unnest.
func (s *DocumentVerificationPostgres) UpsertBatch(ctx context.Context, dvs []*models.DocumentVerification) error {
	if len(dvs) == 0 {
		return nil
	}
	var (
		verificationIDs = make([]string, len(dvs))
		documentIDs     = make([]string, len(dvs))
		statuses        = make([]string, len(dvs))
		notes           = make([]string, len(dvs))
		verifiedBy      = make([]string, len(dvs))
		verifiedAt      = make([]string, len(dvs))
	)
	for i, dv := range dvs {
		verificationIDs[i] = dv.VerificationID.String()
		documentIDs[i] = dv.DocumentID.String()
		statuses[i] = string(dv.Status)
		notes[i] = dv.Notes
		verifiedBy[i] = dv.VerifiedBy.String()
		verifiedAt[i] = dv.VerifiedAt.UTC().Format(time.RFC3339Nano)
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		INSERT INTO document_verifications (verification_id, document_id, status, notes, verified_by, verified_at)
		SELECT * FROM unnest($1::uuid[], $2::uuid[], $3::text[], $4::text[], $5::uuid[], $6::timestamptz[])
		ON CONFLICT (verification_id, document_id) DO UPDATE SET
			status = EXCLUDED.status,
			notes = EXCLUDED.notes,
			verified_by = EXCLUDED.verified_by,
			verified_at = EXCLUDED.verified_at
	`, pq.Array(verificationIDs), pq.Array(documentIDs), pq.Array(statuses), pq.Array(notes),
		pq.Array(verifiedBy), pq.Array(verifiedAt))
	if err != nil {
		return fmt.Errorf("upsert document verifications batch: %w", err)
	}
	return nil
}

func (s *DocumentVerificationPostgres) ListByVerification(ctx context.Context, verificationID id.VerificationID) ([]*models.DocumentVerification, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT verification_id, document_id, status, notes, verified_by, verified_at
		FROM document_verifications
		WHERE verification_id = $1
		ORDER BY verified_at, document_id
	`, uuid.UUID(verificationID))
	if err != nil {
		return nil, fmt.Errorf("list document verifications: %w", err)
	}
	defer rows.Close()

	var out []*models.DocumentVerification
	for rows.Next() {
		var (
			dv                   models.DocumentVerification
			vid, docID, verifier uuid.UUID
			status               string
		)
		if err := rows.Scan(&vid, &docID, &status, &dv.Notes, &verifier, &dv.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scan document verification: %w", err)
		}
		dv.VerificationID = id.VerificationID(vid)
		dv.DocumentID = id.DocumentID(docID)
		dv.VerifiedBy = id.ActorID(verifier)
		dv.Status = models.DocumentStatus(status)
		out = append(out, &dv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document verifications: %w", err)
	}
	return out, nil
}
