// Package storage holds the in-memory implementation of the verification
// stores. Transactions stage writes on a copy of the state and swap it in on
// success, so a failed unit of work leaves nothing behind.
package storage

import (
	"context"
	"maps"
	"sync"
	"time"

	certmodels "ownerverify/internal/certificate/models"
	ownermodels "ownerverify/internal/owner/models"
	"ownerverify/internal/verification/models"
	"ownerverify/internal/verification/ports"
	id "ownerverify/pkg/domain"
	dErrors "ownerverify/pkg/domain-errors"
	audit "ownerverify/pkg/platform/audit"
	"ownerverify/pkg/platform/audit/store/memory"
)

const defaultTxTimeout = 5 * time.Second

type dvKey struct {
	verificationID id.VerificationID
	documentID     id.DocumentID
}

type state struct {
	owners        map[id.OwnerID]ownermodels.BusinessOwner
	documents     map[id.DocumentID]ownermodels.Document
	attempts      map[id.VerificationID]models.Attempt
	verifications map[dvKey]models.DocumentVerification
	certificates  map[id.CertificateID]certmodels.Certificate
}

func newState() *state {
	return &state{
		owners:        map[id.OwnerID]ownermodels.BusinessOwner{},
		documents:     map[id.DocumentID]ownermodels.Document{},
		attempts:      map[id.VerificationID]models.Attempt{},
		verifications: map[dvKey]models.DocumentVerification{},
		certificates:  map[id.CertificateID]certmodels.Certificate{},
	}
}

func (s *state) clone() *state {
	return &state{
		owners:        maps.Clone(s.owners),
		documents:     maps.Clone(s.documents),
		attempts:      maps.Clone(s.attempts),
		verifications: maps.Clone(s.verifications),
		certificates:  maps.Clone(s.certificates),
	}
}

// DB is a process-local database. One mutex serializes transactions and live access.
type DB struct {
	mu      sync.Mutex
	state   *state
	audit   *memory.InMemoryStore
	timeout time.Duration
}

func NewDB() *DB {
	return &DB{state: newState(), audit: memory.NewInMemoryStore(), timeout: defaultTxTimeout}
}

// Stores returns views over committed state. They must not be used inside RunInTx.
func (db *DB) Stores() ports.Stores {
	return newStores(&view{db: db}, db.audit)
}

// Owners returns the live owner view, which also exposes Create for seeding.
func (db *DB) Owners() *OwnerStore {
	return &OwnerStore{&view{db: db}}
}

func (db *DB) Documents() *DocumentStore {
	return &DocumentStore{&view{db: db}}
}

// Audit exposes the committed audit entries.
func (db *DB) Audit() *memory.InMemoryStore {
	return db.audit
}

func newStores(v *view, auditStore audit.Store) ports.Stores {
	return ports.Stores{
		Owners:        &OwnerStore{v},
		Documents:     &DocumentStore{v},
		Attempts:      &AttemptStore{v},
		Verifications: &VerificationStore{v},
		Certificates:  &CertificateStore{v},
		Audit:         auditStore,
	}
}

// RunInTx runs fn against a staged copy of the state. The copy and the buffered
// audit entries are committed only when fn succeeds.
func (db *DB) RunInTx(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, db.timeout)
		defer cancel()
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	staged := db.state.clone()
	stagedAudit := &bufferedAudit{live: db.audit}
	if err := fn(ctx, newStores(&view{staged: staged}, stagedAudit)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	db.state = staged
	stagedAudit.flush(ctx)
	return nil
}

// view resolves the state a store operates on: the staged copy inside a
// transaction, or the committed state under the DB lock.
type view struct {
	db     *DB
	staged *state
}

func (v *view) with(fn func(st *state) error) error {
	if v.staged != nil {
		return fn(v.staged)
	}
	v.db.mu.Lock()
	defer v.db.mu.Unlock()
	return fn(v.db.state)
}

// bufferedAudit holds audit writes until the transaction commits.
type bufferedAudit struct {
	live     *memory.InMemoryStore
	activity []*audit.ActivityLog
	history  []*audit.HistoryLog
}

func (b *bufferedAudit) AppendActivity(_ context.Context, e *audit.ActivityLog) error {
	cp := *e
	cp.Details = maps.Clone(e.Details)
	b.activity = append(b.activity, &cp)
	return nil
}

func (b *bufferedAudit) AppendHistory(_ context.Context, e *audit.HistoryLog) error {
	cp := *e
	cp.Details = maps.Clone(e.Details)
	b.history = append(b.history, &cp)
	return nil
}

func (b *bufferedAudit) ListActivityByOwner(ctx context.Context, ownerID id.OwnerID, limit int) ([]*audit.ActivityLog, error) {
	committed, err := b.live.ListActivityByOwner(ctx, ownerID, 0)
	if err != nil {
		return nil, err
	}
	var out []*audit.ActivityLog
	for i := len(b.activity) - 1; i >= 0; i-- {
		if b.activity[i].OwnerID == ownerID {
			out = append(out, b.activity[i])
		}
	}
	out = append(out, committed...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (b *bufferedAudit) ListHistoryByVerification(ctx context.Context, verificationID id.VerificationID) ([]*audit.HistoryLog, error) {
	out, err := b.live.ListHistoryByVerification(ctx, verificationID)
	if err != nil {
		return nil, err
	}
	for _, e := range b.history {
		if e.VerificationID == verificationID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (b *bufferedAudit) flush(ctx context.Context) {
	// the in-memory store cannot fail
	for _, e := range b.history {
		_ = b.live.AppendHistory(ctx, e)
	}
	for _, e := range b.activity {
		_ = b.live.AppendActivity(ctx, e)
	}
}
