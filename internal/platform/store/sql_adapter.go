package store

import (
	"context"
	"time"

	perr "truthlens/internal/platform/errors"
	"truthlens/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// pgxQ is the statement surface shared by the pool and a transaction
type pgxQ interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier adapts pgx to RowQuerier and traces each statement through pg.PG
type querier struct {
	q  pgxQ
	db *pg.PG
}

func (a querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	start := time.Now()
	ct, err := a.q.Exec(ctx, sql, args...)
	a.db.Trace(ctx, sql, args, start, err)
	return ct, err
}

func (a querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rs, err := a.q.Query(ctx, sql, args...)
	a.db.Trace(ctx, sql, args, start, err)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (a querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	start := time.Now()
	return tracedRow{r: a.q.QueryRow(ctx, sql, args...), done: func(err error) {
		a.db.Trace(ctx, sql, args, start, err)
	}}
}

// tracedRow reports once Scan has run, so the tracer sees no-rows errors
type tracedRow struct {
	r    pgx.Row
	done func(error)
}

func (t tracedRow) Scan(dst ...any) error {
	err := t.r.Scan(dst...)
	t.done(err)
	return err
}

// pgAdapter is the pool-backed TxRunner the store publishes as PG
type pgAdapter struct {
	querier
}

func newPGAdapter(p *pg.PG) *pgAdapter {
	return &pgAdapter{querier{q: p.Pool, db: p}}
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.db.Pool.Ping(ctx) }

func (a *pgAdapter) Close() error { a.db.Close(); return nil }

// Tx commits when fn returns nil and rolls back otherwise
// serialization failures and deadlocks rerun fn from a fresh transaction
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	var err error
	for attempt := 0; attempt < txAttempts; attempt++ {
		if err = a.tx(ctx, fn); !perr.IsRetryable(err) {
			return err
		}
	}
	return err
}

// txAttempts bounds reruns of fn after serialization failures and deadlocks
const txAttempts = 3

func (a *pgAdapter) tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.db.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(querier{q: tx, db: a.db}); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
