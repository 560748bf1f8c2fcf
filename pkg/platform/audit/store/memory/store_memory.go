package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	id "ownerverify/pkg/domain"
	audit "ownerverify/pkg/platform/audit"
)

// InMemoryStore keeps audit entries in process. Entries are copied in and out
// so callers cannot mutate stored history.
type InMemoryStore struct {
	mu       sync.RWMutex
	activity []audit.ActivityLog
	history  []audit.HistoryLog
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) AppendActivity(_ context.Context, entry *audit.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *entry
	e.Details = maps.Clone(entry.Details)
	s.activity = append(s.activity, e)
	return nil
}

func (s *InMemoryStore) AppendHistory(_ context.Context, entry *audit.HistoryLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := *entry
	e.Details = maps.Clone(entry.Details)
	s.history = append(s.history, e)
	return nil
}

func (s *InMemoryStore) ListActivityByOwner(_ context.Context, ownerID id.OwnerID, limit int) ([]*audit.ActivityLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*audit.ActivityLog
	for i := len(s.activity) - 1; i >= 0; i-- {
		if s.activity[i].OwnerID != ownerID {
			continue
		}
		e := s.activity[i]
		out = append(out, &e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *InMemoryStore) ListHistoryByVerification(_ context.Context, verificationID id.VerificationID) ([]*audit.HistoryLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*audit.HistoryLog
	for i := range s.history {
		if s.history[i].VerificationID == verificationID {
			e := s.history[i]
			out = append(out, &e)
		}
	}
	return out, nil
}

// Len is used by tests to assert nothing was written.
func (s *InMemoryStore) Len() (activity, history int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.activity), len(s.history)
}
