package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/graphmirror/internal/mirrorerr"
)

// ConnectionState is the current row of connections for one
// (objectID, fieldname) pair. LastUpdate.Valid is false iff the
// connection has never been updated — in that case TotalCount,
// HasNextPage, and EndCursor are all necessarily unset too, per the
// invariant in §3.
type ConnectionState struct {
	RowID       int64
	LastUpdate  sql.NullInt64
	TotalCount  sql.NullInt64
	HasNextPage sql.NullBool
	EndCursor   sql.NullString
}

// GetConnection looks up the connection row for (objectID, fieldname).
// It fails with *mirrorerr.UnknownConnection if no such row exists —
// either the object was never registered, or fieldname is not a
// connection field of its type (both cases are indistinguishable at
// this layer since registration pre-populates every connection row).
func (t *Tx) GetConnection(ctx context.Context, objectID, fieldname string) (ConnectionState, error) {
	return getConnection(ctx, t.tx, objectID, fieldname)
}

func getConnection(ctx context.Context, ex execer, objectID, fieldname string) (ConnectionState, error) {
	var cs ConnectionState
	err := ex.QueryRowContext(ctx, `
		SELECT rowid, last_update, total_count, has_next_page, end_cursor
		FROM connections
		WHERE object_id = ? AND fieldname = ?
	`, objectID, fieldname).Scan(&cs.RowID, &cs.LastUpdate, &cs.TotalCount, &cs.HasNextPage, &cs.EndCursor)
	if err == sql.ErrNoRows {
		return ConnectionState{}, &mirrorerr.UnknownConnection{ObjectID: objectID, Field: fieldname}
	}
	if err != nil {
		return ConnectionState{}, fmt.Errorf("looking up connection %q.%q: %w", objectID, fieldname, err)
	}
	return cs, nil
}

// SetConnectionMeta updates a connection row's freshness metadata.
// hasNextPage is stored as 0/1; endCursor is stored verbatim (it may be
// NULL even though the connection has now been fetched — "fetched,
// null" per the three-valued cursor in §4.F/§9). This is a single-row
// update on a primary-key lookup, so it is guarded: exactly one row
// must be affected or the call raises *mirrorerr.InvariantViolation.
func (t *Tx) SetConnectionMeta(ctx context.Context, connRowID, updateID int64, totalCount int64, hasNextPage bool, endCursor *string) error {
	const q = `
		UPDATE connections
		SET last_update = ?, total_count = ?, has_next_page = ?, end_cursor = ?
		WHERE rowid = ?
	`
	return execSingleRow(ctx, t.tx, q, updateID, totalCount, hasNextPage, endCursor, connRowID)
}

// NextConnectionEntryIndex returns one past the highest idx currently
// stored for connRowID, or 1 if the connection has no entries yet.
func (t *Tx) NextConnectionEntryIndex(ctx context.Context, connRowID int64) (int64, error) {
	var max sql.NullInt64
	err := t.tx.QueryRowContext(ctx, `SELECT MAX(idx) FROM connection_entries WHERE connection_id = ?`, connRowID).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("computing next index for connection %d: %w", connRowID, err)
	}
	if !max.Valid {
		return 1, nil
	}
	return max.Int64 + 1, nil
}

// InsertConnectionEntry appends one entry. Entries are never deleted or
// reordered. idx must be unique within a connection, enforced by the
// UNIQUE(connection_id, idx) constraint; callers take increasing values
// from NextConnectionEntryIndex.
func (t *Tx) InsertConnectionEntry(ctx context.Context, connRowID, idx int64, childID *string) error {
	if _, err := t.tx.ExecContext(ctx, `INSERT INTO connection_entries (connection_id, idx, child_id) VALUES (?, ?, ?)`, connRowID, idx, childID); err != nil {
		return fmt.Errorf("inserting connection entry (connection=%d idx=%d): %w", connRowID, idx, err)
	}
	return nil
}
