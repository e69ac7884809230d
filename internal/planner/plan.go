// Package planner implements the Staleness Planner (§4.F): it decides
// which registered objects and connections are old enough to need a
// refresh from the remote graph.
package planner

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/graphmirror/internal/cursor"
	"github.com/roach88/graphmirror/internal/store"
)

// ObjectRef identifies a stale object the fetcher should refresh.
type ObjectRef struct {
	Typename string
	ID       string
}

// ConnectionRef identifies a stale connection and the cursor the
// fetcher should resume pagination from.
type ConnectionRef struct {
	ObjectID  string
	Fieldname string
	EndCursor cursor.State
}

// QueryPlan is the output of FindOutdated: everything the fetch loop
// should refresh next.
type QueryPlan struct {
	Objects     []ObjectRef
	Connections []ConnectionRef
}

// FindOutdated runs in a single read transaction and returns a
// QueryPlan of everything older than since (§4.F):
//
//   - an object is stale if its last_update is null, or the referenced
//     update's time is strictly less than since;
//   - a connection is stale if it has never been updated, or its last
//     update is older than since, or its last known has_next_page is
//     true (incomplete pagination).
func FindOutdated(ctx context.Context, s *store.Store, sinceMillis int64) (QueryPlan, error) {
	var plan QueryPlan

	err := s.WithReadTx(ctx, func(tx *store.Tx) error {
		objects, err := staleObjects(ctx, tx, sinceMillis)
		if err != nil {
			return fmt.Errorf("finding stale objects: %w", err)
		}
		plan.Objects = objects

		connections, err := staleConnections(ctx, tx, sinceMillis)
		if err != nil {
			return fmt.Errorf("finding stale connections: %w", err)
		}
		plan.Connections = connections
		return nil
	})
	if err != nil {
		return QueryPlan{}, err
	}
	return plan, nil
}

func staleObjects(ctx context.Context, tx *store.Tx, sinceMillis int64) ([]ObjectRef, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT o.id, o.typename
		FROM objects o
		LEFT JOIN updates u ON u.rowid = o.last_update
		WHERE o.last_update IS NULL OR u.time_epoch_millis < ?
		ORDER BY o.id
	`, sinceMillis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ObjectRef
	for rows.Next() {
		var ref ObjectRef
		if err := rows.Scan(&ref.ID, &ref.Typename); err != nil {
			return nil, err
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func staleConnections(ctx context.Context, tx *store.Tx, sinceMillis int64) ([]ConnectionRef, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT c.object_id, c.fieldname, c.last_update, c.end_cursor, c.has_next_page
		FROM connections c
		LEFT JOIN updates u ON u.rowid = c.last_update
		WHERE c.last_update IS NULL
		   OR u.time_epoch_millis < ?
		   OR c.has_next_page = 1
		ORDER BY c.object_id, c.fieldname
	`, sinceMillis)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ConnectionRef
	for rows.Next() {
		var (
			objectID, fieldname string
			lastUpdate          sql.NullInt64
			endCursor           sql.NullString
			hasNextPage         sql.NullBool
		)
		if err := rows.Scan(&objectID, &fieldname, &lastUpdate, &endCursor, &hasNextPage); err != nil {
			return nil, err
		}
		out = append(out, ConnectionRef{
			ObjectID:  objectID,
			Fieldname: fieldname,
			EndCursor: cursor.FromStoreRow(lastUpdate.Valid, endCursor.Valid, endCursor.String),
		})
	}
	return out, rows.Err()
}
