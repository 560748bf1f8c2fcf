package main

import (
	"context"
	"database/sql"
	"time"

	"ownerverify/internal/verification/ports"
	dErrors "ownerverify/pkg/domain-errors"
	txcontext "ownerverify/pkg/platform/tx"
)

const defaultVerificationTxTimeout = 5 * time.Second

// verificationPostgresTx runs a unit of work in one database/sql transaction.
// The Postgres stores pick the transaction up from the context.
type verificationPostgresTx struct {
	db      *sql.DB
	stores  ports.Stores
	timeout time.Duration
}

func newVerificationPostgresTx(db *sql.DB, stores ports.Stores) *verificationPostgresTx {
	return &verificationPostgresTx{db: db, stores: stores}
}

func (t *verificationPostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores ports.Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultVerificationTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx), t.stores); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}
