package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
	txcontext "ownerverify/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Every entry is written to its table and to the outbox in the same statement
// batch; the relay publishes outbox rows to Kafka.
type Store struct {
	db *sql.DB
}

// New creates a PostgreSQL audit store.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// outboxPayload is the JSON structure published to Kafka.
type outboxPayload struct {
	ID             string         `json:"id"`
	Kind           string         `json:"kind"`
	OwnerID        string         `json:"businessOwnerId,omitempty"`
	VerificationID string         `json:"verificationId,omitempty"`
	EntityType     string         `json:"entityType,omitempty"`
	EntityID       string         `json:"entityId,omitempty"`
	Action         string         `json:"action"`
	PerformedBy    string         `json:"performedBy"`
	Description    string         `json:"description,omitempty"`
	Details        map[string]any `json:"details,omitempty"`
	RequestID      string         `json:"requestId,omitempty"`
	Timestamp      string         `json:"timestamp"`
}

func (s *Store) AppendActivity(ctx context.Context, entry *audit.ActivityLog) error {
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}
	exec := txcontext.Exec(ctx, s.db)
	_, err = exec.ExecContext(ctx, `
		INSERT INTO activity_logs (
			id, business_owner_id, entity_type, entity_id, action, performed_by,
			description, details, request_id, client_ip, user_agent, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		entry.ID,
		uuid.UUID(entry.OwnerID),
		string(entry.EntityType),
		entry.EntityID,
		string(entry.Action),
		uuid.UUID(entry.PerformedBy),
		entry.Description,
		details,
		entry.RequestID,
		entry.ClientIP,
		entry.UserAgent,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}

	return s.appendOutbox(ctx, exec, string(audit.EntityBusinessOwner), entry.OwnerID.String(), entry.Action, outboxPayload{
		ID:          entry.ID.String(),
		Kind:        "activity",
		OwnerID:     entry.OwnerID.String(),
		EntityType:  string(entry.EntityType),
		EntityID:    entry.EntityID,
		Action:      string(entry.Action),
		PerformedBy: entry.PerformedBy.String(),
		Description: entry.Description,
		Details:     entry.Details,
		RequestID:   entry.RequestID,
		Timestamp:   entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func (s *Store) AppendHistory(ctx context.Context, entry *audit.HistoryLog) error {
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}
	exec := txcontext.Exec(ctx, s.db)
	_, err = exec.ExecContext(ctx, `
		INSERT INTO verification_history_logs (
			id, verification_id, action, performed_by, details, step_number, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		entry.ID,
		uuid.UUID(entry.VerificationID),
		string(entry.Action),
		uuid.UUID(entry.PerformedBy),
		details,
		entry.StepNumber,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert verification history: %w", err)
	}

	return s.appendOutbox(ctx, exec, string(audit.EntityVerification), entry.VerificationID.String(), entry.Action, outboxPayload{
		ID:             entry.ID.String(),
		Kind:           "history",
		VerificationID: entry.VerificationID.String(),
		Action:         string(entry.Action),
		PerformedBy:    entry.PerformedBy.String(),
		Details:        entry.Details,
		Timestamp:      entry.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

func (s *Store) appendOutbox(ctx context.Context, exec txcontext.Executor, aggregateType, aggregateID string, action audit.Action, payload outboxPayload) error {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal outbox payload: %w", err)
	}
	_, err = exec.ExecContext(ctx, `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		uuid.New(),
		aggregateType,
		aggregateID,
		string(action),
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// ListActivityByOwner returns the newest entries first.
func (s *Store) ListActivityByOwner(ctx context.Context, ownerID id.OwnerID, limit int) ([]*audit.ActivityLog, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, business_owner_id, entity_type, entity_id, action, performed_by,
			   description, details, request_id, client_ip, user_agent, created_at
		FROM activity_logs
		WHERE business_owner_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, uuid.UUID(ownerID), limit)
	if err != nil {
		return nil, fmt.Errorf("query activity logs: %w", err)
	}
	defer rows.Close()

	var out []*audit.ActivityLog
	for rows.Next() {
		var (
			entry              audit.ActivityLog
			owner, performedBy uuid.UUID
			entityType, action string
			details            []byte
		)
		if err := rows.Scan(&entry.ID, &owner, &entityType, &entry.EntityID, &action, &performedBy,
			&entry.Description, &details, &entry.RequestID, &entry.ClientIP, &entry.UserAgent, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		entry.OwnerID = id.OwnerID(owner)
		entry.PerformedBy = id.ActorID(performedBy)
		entry.EntityType = audit.EntityType(entityType)
		entry.Action = audit.Action(action)
		if entry.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate activity logs: %w", err)
	}
	return out, nil
}

// ListHistoryByVerification returns entries in the order they were written.
func (s *Store) ListHistoryByVerification(ctx context.Context, verificationID id.VerificationID) ([]*audit.HistoryLog, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, verification_id, action, performed_by, details, step_number, created_at
		FROM verification_history_logs
		WHERE verification_id = $1
		ORDER BY created_at ASC, id ASC
	`, uuid.UUID(verificationID))
	if err != nil {
		return nil, fmt.Errorf("query verification history: %w", err)
	}
	defer rows.Close()

	var out []*audit.HistoryLog
	for rows.Next() {
		var (
			entry            audit.HistoryLog
			vid, performedBy uuid.UUID
			action           string
			details          []byte
		)
		if err := rows.Scan(&entry.ID, &vid, &action, &performedBy, &details, &entry.StepNumber, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan verification history: %w", err)
		}
		entry.VerificationID = id.VerificationID(vid)
		entry.PerformedBy = id.ActorID(performedBy)
		entry.Action = audit.Action(action)
		if entry.Details, err = unmarshalDetails(details); err != nil {
			return nil, err
		}
		out = append(out, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification history: %w", err)
	}
	return out, nil
}

// OutboxEntry is an unpublished outbox row.
type OutboxEntry struct {
	ID          uuid.UUID
	AggregateID string
	EventType   string
	Payload     []byte
}

// FetchUnpublished returns the oldest unpublished rows. Rows are locked with
// SKIP LOCKED when called inside a transaction so concurrent relays split the work.
func (s *Store) FetchUnpublished(ctx context.Context, limit int) ([]OutboxEntry, error) {
	rows, err := txcontext.Exec(ctx, s.db).QueryContext(ctx, `
		SELECT id, aggregate_id, event_type, payload
		FROM outbox
		WHERE published_at IS NULL
		ORDER BY created_at
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query outbox: %w", err)
	}
	defer rows.Close()

	var out []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		if err := rows.Scan(&e.ID, &e.AggregateID, &e.EventType, &e.Payload); err != nil {
			return nil, fmt.Errorf("scan outbox: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox: %w", err)
	}
	return out, nil
}

// MarkPublished stamps a batch of outbox rows in one round trip.
func (s *Store) MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	raw := make([]string, len(ids))
	for i, v := range ids {
		raw[i] = v.String()
	}
	_, err := txcontext.Exec(ctx, s.db).ExecContext(ctx, `
		UPDATE outbox SET published_at = $2
		WHERE id = ANY($1::uuid[])
	`, pq.Array(raw), at)
	if err != nil {
		return fmt.Errorf("mark outbox published: %w", err)
	}
	return nil
}

func marshalDetails(details map[string]any) ([]byte, error) {
	if details == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("marshal audit details: %w", err)
	}
	return b, nil
}

func unmarshalDetails(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var out map[string]any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("unmarshal audit details: %w", err)
	}
	return out, nil
}
