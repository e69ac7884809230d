package ingest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/graphmirror/internal/mirrorerr"
	"github.com/roach88/graphmirror/internal/schema"
	"github.com/roach88/graphmirror/internal/store"
	"github.com/roach88/graphmirror/internal/testutil"
)

func sampleSchema() schema.Schema {
	return schema.Schema{
		"Repo": schema.Type{Name: "Repo", Kind: schema.KindObject, Fields: []schema.Field{
			{Name: "id", Kind: schema.FieldID},
			{Name: "issues", Kind: schema.FieldConnection, ElementType: "Issue"},
		}},
		"Issue": schema.Type{Name: "Issue", Kind: schema.KindObject, Fields: []schema.Field{
			{Name: "id", Kind: schema.FieldID},
			{Name: "title", Kind: schema.FieldPrimitive},
		}},
	}
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	dir := t.TempDir()
	s, err := store.Open(ctx, filepath.Join(dir, "test.db"), sampleSchema())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUpdateConnection_AppendsOrderedEntriesAndRegistersNodes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterObject(ctx, "Repo", "r1"))
	updateID, err := s.CreateUpdate(ctx, 1000)
	require.NoError(t, err)

	ids := testutil.NewSequentialIDGenerator("issue")
	endCursor := "c1"
	result := Result{
		TotalCount: 5,
		PageInfo:   PageInfo{HasNextPage: true, EndCursor: &endCursor},
		Nodes: []*ShallowNode{
			{Typename: "Issue", ID: ids.Next()},
			nil,
			{Typename: "Issue", ID: ids.Next()},
		},
	}

	require.NoError(t, UpdateConnection(ctx, s, updateID, "r1", "issues", result))

	var count int
	require.NoError(t, s.WithTx(ctx, func(tx *store.Tx) error {
		cs, err := tx.GetConnection(ctx, "r1", "issues")
		require.NoError(t, err)
		require.Equal(t, updateID, cs.LastUpdate.Int64)
		require.Equal(t, int64(5), cs.TotalCount.Int64)
		require.True(t, cs.HasNextPage.Bool)
		require.Equal(t, "c1", cs.EndCursor.String)

		row := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM connection_entries WHERE connection_id = ?`, cs.RowID)
		return row.Scan(&count)
	}))
	require.Equal(t, 3, count)
}

func TestUpdateConnection_UnknownUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RegisterObject(ctx, "Repo", "r1"))

	err := UpdateConnection(ctx, s, 999, "r1", "issues", Result{})
	require.Error(t, err)
	require.IsType(t, &mirrorerr.UnknownUpdate{}, err)
}

func TestUpdateConnection_UnknownConnection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	updateID, err := s.CreateUpdate(ctx, 1000)
	require.NoError(t, err)

	err = UpdateConnection(ctx, s, updateID, "nope", "issues", Result{})
	require.Error(t, err)
	require.IsType(t, &mirrorerr.UnknownConnection{}, err)
}

func TestUpdateConnection_SuccessivePagesAppendInOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.RegisterObject(ctx, "Repo", "r1"))

	u1, err := s.CreateUpdate(ctx, 1000)
	require.NoError(t, err)
	c1 := "c1"
	require.NoError(t, UpdateConnection(ctx, s, u1, "r1", "issues", Result{
		TotalCount: 2,
		PageInfo:   PageInfo{HasNextPage: true, EndCursor: &c1},
		Nodes:      []*ShallowNode{{Typename: "Issue", ID: "i1"}},
	}))

	u2, err := s.CreateUpdate(ctx, 2000)
	require.NoError(t, err)
	require.NoError(t, UpdateConnection(ctx, s, u2, "r1", "issues", Result{
		TotalCount: 2,
		PageInfo:   PageInfo{HasNextPage: false, EndCursor: nil},
		Nodes:      []*ShallowNode{{Typename: "Issue", ID: "i2"}},
	}))

	var ids []string
	require.NoError(t, s.WithTx(ctx, func(tx *store.Tx) error {
		cs, err := tx.GetConnection(ctx, "r1", "issues")
		require.NoError(t, err)

		rows, err := tx.QueryContext(ctx, `SELECT child_id FROM connection_entries WHERE connection_id = ? ORDER BY idx`, cs.RowID)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return err
			}
			ids = append(ids, id)
		}
		return rows.Err()
	}))
	require.Equal(t, []string{"i1", "i2"}, ids)
}
