// Package ingest implements the Connection Ingestor (§4.H): it applies
// one fetched page of a connection to the store atomically, appending
// ordered entries and registering any newly-seen nodes.
package ingest

import (
	"context"
	"fmt"

	"github.com/roach88/graphmirror/internal/mirrorerr"
	"github.com/roach88/graphmirror/internal/store"
)

// ShallowNode is one element of a connection page, as returned by a
// query synthesized with querysynth.QueryShallow. A nil *ShallowNode in
// Result.Nodes represents a Relay null (deleted or inaccessible node).
type ShallowNode struct {
	Typename string
	ID       string
}

// PageInfo mirrors GraphQL's standard Relay PageInfo shape, restricted
// to the two fields the mirror tracks.
type PageInfo struct {
	HasNextPage bool
	EndCursor   *string
}

// Result is one fetched page of a connection, exactly as returned by
// queryConnection's response shape.
type Result struct {
	TotalCount int64
	PageInfo   PageInfo
	Nodes      []*ShallowNode
}

// UpdateConnection applies one fetched page to objectId.fieldname,
// stamping it with updateID, in a single transaction:
//
//  1. look up the connection row (*mirrorerr.UnknownConnection if absent);
//  2. update last_update/total_count/has_next_page/end_cursor;
//  3. compute nextIndex = max(idx)+1 over existing entries, or 1;
//  4. for each node in order, register it (if non-null) and append a
//     connection_entries row with the next index;
//
// Fails with *mirrorerr.UnknownUpdate if updateID is not a valid
// update row. Entries are appended in the order received and never
// reordered or deduplicated — overlapping pages produce duplicate
// entries, by design (§4.H "No dedup").
func UpdateConnection(ctx context.Context, s *store.Store, updateID int64, objectID, fieldname string, result Result) error {
	return s.WithTx(ctx, func(tx *store.Tx) error {
		exists, err := tx.UpdateExists(ctx, updateID)
		if err != nil {
			return fmt.Errorf("checking update %d: %w", updateID, err)
		}
		if !exists {
			return &mirrorerr.UnknownUpdate{UpdateID: updateID}
		}

		conn, err := tx.GetConnection(ctx, objectID, fieldname)
		if err != nil {
			return err
		}

		if err := tx.SetConnectionMeta(ctx, conn.RowID, updateID, result.TotalCount, result.PageInfo.HasNextPage, result.PageInfo.EndCursor); err != nil {
			return fmt.Errorf("updating connection metadata: %w", err)
		}

		nextIndex, err := tx.NextConnectionEntryIndex(ctx, conn.RowID)
		if err != nil {
			return fmt.Errorf("computing next entry index: %w", err)
		}

		for _, node := range result.Nodes {
			var childID *string
			if node != nil {
				if err := tx.RegisterObject(ctx, node.Typename, node.ID); err != nil {
					return fmt.Errorf("registering connection node %q: %w", node.ID, err)
				}
				id := node.ID
				childID = &id
			}

			if err := tx.InsertConnectionEntry(ctx, conn.RowID, nextIndex, childID); err != nil {
				return fmt.Errorf("appending connection entry: %w", err)
			}
			nextIndex++
		}

		return nil
	})
}
