package testutil

import (
	"context"
	"database/sql"
	"sync/atomic"

	"github.com/alexanderramin/strata/internal/db"
)

// FailOnNthExecUoW wraps a real SQLite unit of work and makes the FailOn-th
// write inside WithinTx return Err, so snapshot replacement can be broken
// part way through. Only ExecContext calls are counted, starting at 1.
// Reads and WithinReadTx pass straight through.
type FailOnNthExecUoW struct {
	DB     *sql.DB
	FailOn int32
	Err    error

	// Execs is the number of writes attempted by the last WithinTx.
	Execs int32
}

func (u *FailOnNthExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	inner := db.NewSQLiteUnitOfWork(u.DB)
	return inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		w := &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err}
		defer func() { u.Execs = w.count.Load() }()
		return fn(ctx, w)
	})
}

func (u *FailOnNthExecUoW) WithinReadTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinReadTx(ctx, fn)
}

type countingTx struct {
	db.DBTX
	count  atomic.Int32
	failOn int32
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if c.count.Add(1) == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
