package store

import (
	"context"
	"fmt"
)

// CreateUpdate allocates a new update row in its own transaction and
// returns its id. See Tx.CreateUpdate for the full semantics.
func (s *Store) CreateUpdate(ctx context.Context, nowMillis int64) (int64, error) {
	var id int64
	err := s.WithTx(ctx, func(tx *Tx) error {
		var err error
		id, err = tx.CreateUpdate(ctx, nowMillis)
		return err
	})
	return id, err
}

// CreateUpdate is the Update Clock primitive (§4.E). It inserts a row
// into updates stamped with nowMillis (milliseconds since 1970-UTC,
// ECMAScript-millis semantics: 86,400,000 ms/day, no leap seconds) and
// returns the assigned row id. IDs are dense and monotonically
// increasing within a process; only their uniqueness is relied on by
// the rest of the mirror, never their ordering relative to wall time
// across restarts.
func (t *Tx) CreateUpdate(ctx context.Context, nowMillis int64) (int64, error) {
	res, err := t.tx.ExecContext(ctx, `INSERT INTO updates (time_epoch_millis) VALUES (?)`, nowMillis)
	if err != nil {
		return 0, fmt.Errorf("inserting update: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading update id: %w", err)
	}
	return id, nil
}

// UpdateExists reports whether updateID corresponds to a row in
// updates. Used by the ingestor to fail fast with
// *mirrorerr.UnknownUpdate before performing any other writes.
func (t *Tx) UpdateExists(ctx context.Context, updateID int64) (bool, error) {
	var count int
	err := t.tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM updates WHERE rowid = ?`, updateID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking update %d: %w", updateID, err)
	}
	return count > 0, nil
}
