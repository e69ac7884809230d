// Package mirror is the public façade over every mirror component
// (§4.A–J): schema decomposition, the SQLite-backed store, the
// staleness planner, the query synthesizer, and the connection
// ingestor. Callers that only need one component can import that
// component's package directly; cmd/mirror and most tests go through
// Mirror instead.
package mirror

import (
	"context"

	"github.com/roach88/graphmirror/internal/cursor"
	"github.com/roach88/graphmirror/internal/gqlbuilder"
	"github.com/roach88/graphmirror/internal/ingest"
	"github.com/roach88/graphmirror/internal/planner"
	"github.com/roach88/graphmirror/internal/querysynth"
	"github.com/roach88/graphmirror/internal/schema"
	"github.com/roach88/graphmirror/internal/store"
)

// Mirror bundles an open store with the schema it was opened against.
type Mirror struct {
	s *store.Store
}

// Open opens (creating if necessary) the SQLite-backed mirror at path,
// installing sch into it. See store.Open for the install/verify
// semantics.
func Open(ctx context.Context, path string, sch schema.Schema) (*Mirror, error) {
	s, err := store.Open(ctx, path, sch)
	if err != nil {
		return nil, err
	}
	return &Mirror{s: s}, nil
}

// Close closes the underlying store.
func (m *Mirror) Close() error {
	return m.s.Close()
}

// RegisterObject registers (typename, id) in the Object Registry
// (§4.D), in its own transaction.
func (m *Mirror) RegisterObject(ctx context.Context, typename, id string) error {
	return m.s.RegisterObject(ctx, typename, id)
}

// CreateUpdate allocates a new update row stamped with nowMillis
// (§4.E) and returns its id.
func (m *Mirror) CreateUpdate(ctx context.Context, nowMillis int64) (int64, error) {
	return m.s.CreateUpdate(ctx, nowMillis)
}

// FindOutdated runs the Staleness Planner (§4.F) in a single read
// transaction.
func (m *Mirror) FindOutdated(ctx context.Context, sinceMillis int64) (planner.QueryPlan, error) {
	return planner.FindOutdated(ctx, m.s, sinceMillis)
}

// QueryShallow synthesizes the minimal selection set for discovering
// an object's concrete type and id (§4.G).
func (m *Mirror) QueryShallow(typename string) ([]gqlbuilder.Selection, error) {
	return querysynth.QueryShallow(m.s.Schema(), typename)
}

// QueryConnection synthesizes one paginated connection query (§4.G).
func (m *Mirror) QueryConnection(parentTypename, fieldname string, endCursor cursor.State, pageSize int) (gqlbuilder.Selection, error) {
	return querysynth.QueryConnection(m.s.Schema(), parentTypename, fieldname, endCursor, pageSize)
}

// ConnectionCursor returns the current three-valued end-cursor state
// stored for (objectID, fieldname), for callers that need to resume
// pagination (e.g. the CLI's `query connection`) without going through
// FindOutdated first.
func (m *Mirror) ConnectionCursor(ctx context.Context, objectID, fieldname string) (cursor.State, error) {
	var state cursor.State
	err := m.s.WithReadTx(ctx, func(tx *store.Tx) error {
		cs, err := tx.GetConnection(ctx, objectID, fieldname)
		if err != nil {
			return err
		}
		state = cursor.FromStoreRow(cs.LastUpdate.Valid, cs.EndCursor.Valid, cs.EndCursor.String)
		return nil
	})
	return state, err
}

// UpdateConnection applies one fetched connection page atomically
// (§4.H).
func (m *Mirror) UpdateConnection(ctx context.Context, updateID int64, objectID, fieldname string, result ingest.Result) error {
	return ingest.UpdateConnection(ctx, m.s, updateID, objectID, fieldname, result)
}
