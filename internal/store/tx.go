package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/graphmirror/internal/mirrorerr"
)

// Tx is an active transaction on a Store. Tx methods never issue a
// BEGIN themselves; they run inside the transaction they belong to.
// Where a Store method of the same name exists (RegisterObject,
// CreateUpdate), it is a WithTx wrapper around the Tx method. This
// is how larger operations (the connection ingestor chaining many
// object registrations) group work into one outer transaction without
// nested BEGINs.
type Tx struct {
	s  *Store
	tx *sql.Tx
}

// WithTx opens a serializable transaction, runs fn with it, and commits
// on normal return or rolls back on any error. Attempting to open a
// transaction while one is already active fails fast with
// *mirrorerr.AlreadyInTransaction rather than nesting BEGINs.
//
// If fn itself commits (or rolls back) the transaction it was given,
// WithTx's own Commit call will observe sql.ErrTxDone and treat that as
// success rather than raising — the transaction is still closed exactly
// once either way.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.withTxOpts(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable}, fn)
}

// WithReadTx is WithTx's read-only counterpart, used by the Staleness
// Planner (§4.F), which the specification calls out as running "in a
// single read transaction". It shares the same AlreadyInTransaction
// guard and commit/rollback discipline. It requests read-only mode
// through sql.TxOptions.ReadOnly; the go-sqlite3 driver does not act on
// that option, so a write attempted inside fn is not rejected.
func (s *Store) WithReadTx(ctx context.Context, fn func(tx *Tx) error) error {
	return s.withTxOpts(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable, ReadOnly: true}, fn)
}

func (s *Store) withTxOpts(ctx context.Context, opts *sql.TxOptions, fn func(tx *Tx) error) error {
	if s.inTx {
		return &mirrorerr.AlreadyInTransaction{}
	}

	sqlTx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	s.inTx = true
	defer func() { s.inTx = false }()

	if err := fn(&Tx{s: s, tx: sqlTx}); err != nil {
		_ = sqlTx.Rollback()
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		if errors.Is(err, sql.ErrTxDone) {
			// fn already committed (or rolled back) this transaction.
			return nil
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// QueryContext exposes the underlying transaction's read access to
// callers outside the package — the Staleness Planner (§4.F) composes
// its own SQL against a live Tx rather than going through per-row
// primitives, since its queries are read-only joins rather than
// single-row lookups.
func (t *Tx) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, query, args...)
}

// ExecContext exposes the underlying transaction's write access to
// callers outside the package, for the same reason as QueryContext.
func (t *Tx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, query, args...)
}

// QueryRowContext exposes the underlying transaction's single-row read
// access to callers outside the package, for the same reason as
// QueryContext.
func (t *Tx) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, query, args...)
}

// execSingleRow runs an UPDATE (or other statement) expected to affect
// exactly one row — a primary-key lookup that is known to exist and be
// unique — and raises *mirrorerr.InvariantViolation if it affected zero
// or more than one row. The surrounding transaction propagates the
// error and rolls back.
func execSingleRow(ctx context.Context, ex execer, query string, args ...any) error {
	res, err := ex.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n != 1 {
		return &mirrorerr.InvariantViolation{Query: query, RowsAffected: n}
	}
	return nil
}
