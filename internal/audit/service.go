package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"

	"github.com/google/uuid"

	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/requestcontext"
)

// OwnerResolver finds the owner an entity belongs to.
type OwnerResolver func(ctx context.Context, entityID string) (id.OwnerID, error)

var errOwnerUnresolved = errors.New("business owner could not be resolved")

// Service records activity and verification history. LogEvent and
// LogVerificationHistory are best-effort; Record is the strict variant used
// inside transactions.
type Service struct {
	store     audit.Store
	resolvers map[audit.EntityType]OwnerResolver
	logger    *slog.Logger
	metrics   *Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithOwnerResolver registers how to find the owner of an entity type.
func WithOwnerResolver(entityType audit.EntityType, r OwnerResolver) Option {
	return func(s *Service) { s.resolvers[entityType] = r }
}

func NewService(store audit.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		resolvers: map[audit.EntityType]OwnerResolver{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogEvent writes an activity entry. Failures are logged and counted, never returned as errors.
func (s *Service) LogEvent(ctx context.Context, ev Event) Result {
	entry, err := s.activityEntry(ctx, ev)
	if err == nil {
		err = s.store.AppendActivity(ctx, entry)
	}
	if err != nil {
		s.reportFailure(ctx, "activity", string(ev.Action), err)
		return Result{Err: err}
	}
	return Result{Success: true, ID: entry.ID}
}

// LogVerificationHistory writes the history entry, then the linked activity entry.
func (s *Service) LogVerificationHistory(ctx context.Context, ev HistoryEvent) Result {
	historyID, err := s.record(ctx, s.store, ev)
	if err != nil {
		s.reportFailure(ctx, "history", string(ev.Action), err)
		return Result{ID: historyID, Err: err}
	}
	return Result{Success: true, ID: historyID}
}

// Record writes a history entry and its activity entry through store,
// typically the transaction-scoped store. Errors are returned so the caller's
// transaction aborts.
func (s *Service) Record(ctx context.Context, store audit.Store, ev HistoryEvent) error {
	_, err := s.record(ctx, store, ev)
	return err
}

func (s *Service) record(ctx context.Context, store audit.Store, ev HistoryEvent) (uuid.UUID, error) {
	now := requestcontext.Now(ctx)
	history := &audit.HistoryLog{
		ID:             uuid.New(),
		VerificationID: ev.VerificationID,
		Action:         ev.Action,
		PerformedBy:    ev.PerformedBy,
		Details:        maps.Clone(ev.Details),
		StepNumber:     ev.StepNumber,
		CreatedAt:      now,
	}
	if err := store.AppendHistory(ctx, history); err != nil {
		return uuid.Nil, fmt.Errorf("append verification history: %w", err)
	}

	entityType, entityID := ev.ActivityEntity, ev.ActivityEntityID
	if entityType == "" {
		entityType, entityID = audit.EntityVerification, ev.VerificationID.String()
	}
	details := maps.Clone(ev.Details)
	if details == nil {
		details = map[string]any{}
	}
	details["historyLogId"] = history.ID.String()

	ownerID := ev.OwnerID
	if ownerID == nil && entityType != audit.EntityVerification {
		// the history belongs to a verification whatever the activity entity is
		if r, ok := s.resolvers[audit.EntityVerification]; ok {
			resolved, err := r(ctx, ev.VerificationID.String())
			if err == nil {
				ownerID = &resolved
			}
		}
	}

	activity, err := s.activityEntry(ctx, Event{
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      ev.Action,
		PerformedBy: ev.PerformedBy,
		Details:     details,
		OwnerID:     ownerID,
	})
	if err != nil {
		return history.ID, err
	}
	if err := store.AppendActivity(ctx, activity); err != nil {
		return history.ID, fmt.Errorf("append activity log: %w", err)
	}
	return history.ID, nil
}

func (s *Service) activityEntry(ctx context.Context, ev Event) (*audit.ActivityLog, error) {
	ownerID, err := s.resolveOwner(ctx, ev)
	if err != nil {
		return nil, err
	}
	return &audit.ActivityLog{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		EntityType:  ev.EntityType,
		EntityID:    ev.EntityID,
		Action:      ev.Action,
		PerformedBy: ev.PerformedBy,
		Description: audit.Describe(ev.EntityType, ev.Action, ev.Details),
		Details:     maps.Clone(ev.Details),
		RequestID:   requestcontext.RequestID(ctx),
		ClientIP:    requestcontext.ClientIP(ctx),
		UserAgent:   SummarizeUserAgent(requestcontext.UserAgent(ctx)),
		CreatedAt:   requestcontext.Now(ctx),
	}, nil
}

func (s *Service) resolveOwner(ctx context.Context, ev Event) (id.OwnerID, error) {
	if ev.OwnerID != nil && !ev.OwnerID.IsNil() {
		return *ev.OwnerID, nil
	}
	if ev.EntityType == audit.EntityBusinessOwner {
		if owner, err := id.ParseOwnerID(ev.EntityID); err == nil {
			return owner, nil
		}
	}
	r, ok := s.resolvers[ev.EntityType]
	if !ok {
		return id.OwnerID{}, fmt.Errorf("%w: no resolver for %s", errOwnerUnresolved, ev.EntityType)
	}
	owner, err := r(ctx, ev.EntityID)
	if err != nil {
		return id.OwnerID{}, fmt.Errorf("%w: %s %s: %v", errOwnerUnresolved, ev.EntityType, ev.EntityID, err)
	}
	return owner, nil
}

func (s *Service) reportFailure(ctx context.Context, kind, action string, err error) {
	s.metrics.IncFailure(kind)
	s.logger.ErrorContext(ctx, "audit log write failed",
		"kind", kind,
		"action", action,
		"request_id", requestcontext.RequestID(ctx),
		"error", err,
	)
}
