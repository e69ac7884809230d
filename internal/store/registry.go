package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/graphmirror/internal/mirrorerr"
)

// RegisterObject registers (typename, id) in its own transaction. See
// Tx.RegisterObject for the full semantics.
func (s *Store) RegisterObject(ctx context.Context, typename, id string) error {
	return s.WithTx(ctx, func(tx *Tx) error {
		return tx.RegisterObject(ctx, typename, id)
	})
}

// RegisterObject is the non-transactional Object Registry primitive
// (§4.D). It is idempotent when (typename, id) is already present;
// fails with *mirrorerr.TypeConflict if id exists with a different
// typename; *mirrorerr.UnknownType if typename is absent from the
// schema; *mirrorerr.NonObjectType if typename resolves to a union.
//
// On first insert, it creates the objects row plus one row per
// applicable link and connection field, all with null payloads — the
// central uniformity invariant that turns every later write on this
// object into a single-row UPDATE.
func (t *Tx) RegisterObject(ctx context.Context, typename, id string) error {
	d, ok := t.s.schema[typename]
	if !ok {
		return &mirrorerr.UnknownType{Typename: typename}
	}
	if !d.IsObject() {
		return &mirrorerr.NonObjectType{Typename: typename}
	}

	var existingType string
	err := t.tx.QueryRowContext(ctx, `SELECT typename FROM objects WHERE id = ?`, id).Scan(&existingType)
	switch {
	case err == sql.ErrNoRows:
		// fall through to insert below
	case err != nil:
		return fmt.Errorf("looking up object %q: %w", id, err)
	default:
		if existingType != typename {
			return &mirrorerr.TypeConflict{ID: id, Existing: existingType, Got: typename}
		}
		return nil // idempotent: already registered with this typename
	}

	if _, err := t.tx.ExecContext(ctx, `INSERT INTO objects (id, typename, last_update) VALUES (?, ?, NULL)`, id, typename); err != nil {
		return fmt.Errorf("inserting object %q: %w", id, err)
	}

	if _, err := t.tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO primitives_%s (id) VALUES (?)`, typename), id); err != nil {
		return fmt.Errorf("inserting primitives row for %q: %w", id, err)
	}

	for _, fieldname := range d.LinkFieldNames {
		if _, err := t.tx.ExecContext(ctx, `INSERT INTO links (parent_id, fieldname, child_id) VALUES (?, ?, NULL)`, id, fieldname); err != nil {
			return fmt.Errorf("inserting link row %q.%q: %w", id, fieldname, err)
		}
	}

	for _, fieldname := range d.ConnectionFieldNames {
		if _, err := t.tx.ExecContext(ctx, `INSERT INTO connections (object_id, fieldname, last_update, total_count, has_next_page, end_cursor) VALUES (?, ?, NULL, NULL, NULL, NULL)`, id, fieldname); err != nil {
			return fmt.Errorf("inserting connection row %q.%q: %w", id, fieldname, err)
		}
	}

	return nil
}
