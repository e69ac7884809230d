package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/roach88/graphmirror/internal/ir"
	"github.com/roach88/graphmirror/internal/mirrorerr"
	"github.com/roach88/graphmirror/internal/schema"
)

// schemaFingerprintVersion is bumped whenever this package's DDL or
// fingerprint encoding changes semantics. It is embedded in every
// fingerprint so that a code upgrade that changes the on-disk shape is
// detected as an incompatible store rather than silently misread.
const schemaFingerprintVersion = "MIRROR_v1"

// structuralDDL is the fixed, version-locked set of tables every store
// carries regardless of schema, per §6 of the specification.
var structuralDDL = []string{
	`CREATE TABLE IF NOT EXISTS meta (
		zero INTEGER PRIMARY KEY,
		schema TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS updates (
		rowid INTEGER PRIMARY KEY,
		time_epoch_millis INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS objects (
		id TEXT PRIMARY KEY,
		typename TEXT NOT NULL,
		last_update INTEGER REFERENCES updates(rowid)
	)`,
	`CREATE TABLE IF NOT EXISTS links (
		rowid INTEGER PRIMARY KEY,
		parent_id TEXT NOT NULL,
		fieldname TEXT NOT NULL,
		child_id TEXT,
		UNIQUE(parent_id, fieldname),
		FOREIGN KEY(parent_id) REFERENCES objects(id),
		FOREIGN KEY(child_id) REFERENCES objects(id)
	)`,
	`CREATE TABLE IF NOT EXISTS connections (
		rowid INTEGER PRIMARY KEY,
		object_id TEXT NOT NULL,
		fieldname TEXT NOT NULL,
		last_update INTEGER REFERENCES updates(rowid),
		total_count INTEGER,
		has_next_page BOOLEAN,
		end_cursor TEXT,
		CHECK((last_update IS NULL) = (total_count IS NULL)),
		CHECK((last_update IS NULL) = (has_next_page IS NULL)),
		CHECK((last_update IS NULL) <= (end_cursor IS NULL)),
		UNIQUE(object_id, fieldname)
	)`,
	`CREATE TABLE IF NOT EXISTS connection_entries (
		rowid INTEGER PRIMARY KEY,
		connection_id INTEGER NOT NULL,
		idx INTEGER NOT NULL,
		child_id TEXT,
		UNIQUE(connection_id, idx),
		FOREIGN KEY(connection_id) REFERENCES connections(rowid),
		FOREIGN KEY(child_id) REFERENCES objects(id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_links_parent_field ON links(parent_id, fieldname)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_connections_object_field ON connections(object_id, fieldname)`,
	`CREATE INDEX IF NOT EXISTS idx_connection_entries_connection ON connection_entries(connection_id)`,
}

// install runs the Schema Installer (§4.C) inside a single transaction:
// create meta if missing, compare the existing fingerprint (if any) to
// the one computed from sch, and either no-op, bootstrap a fresh store,
// or fail with *mirrorerr.IncompatibleStore.
func (s *Store) install(ctx context.Context, path string, sch schema.Schema, idx schema.Index) error {
	fingerprint, err := computeFingerprint(sch)
	if err != nil {
		return fmt.Errorf("computing schema fingerprint: %w", err)
	}

	return s.WithTx(ctx, func(tx *Tx) error {
		if _, err := tx.tx.ExecContext(ctx, structuralDDL[0]); err != nil {
			return fmt.Errorf("creating meta table: %w", err)
		}

		existing, found, err := readMeta(ctx, tx.tx)
		if err != nil {
			return fmt.Errorf("reading meta: %w", err)
		}

		if found {
			if existing != fingerprint {
				return &mirrorerr.IncompatibleStore{Path: path}
			}
			return nil
		}

		for _, stmt := range structuralDDL {
			if _, err := tx.tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("structural DDL: %w", err)
			}
		}

		for _, typename := range sortedObjectTypes(idx) {
			ddl := primitiveTableDDL(typename, idx[typename].PrimitiveFieldNames)
			if _, err := tx.tx.ExecContext(ctx, ddl); err != nil {
				return fmt.Errorf("primitive table for %q: %w", typename, err)
			}
		}

		if _, err := tx.tx.ExecContext(ctx, `INSERT INTO meta (zero, schema) VALUES (0, ?)`, fingerprint); err != nil {
			return fmt.Errorf("inserting meta: %w", err)
		}
		return nil
	})
}

// computeFingerprint produces the deterministic serialization of
// {version, schema} described in §4.C and §6: keys sorted
// lexicographically at every nesting level, no extraneous whitespace,
// UTF-8.
func computeFingerprint(sch schema.Schema) (string, error) {
	schemaValue, err := sch.ToIRValue()
	if err != nil {
		return "", err
	}
	obj := ir.IRObject{
		"version": ir.IRString(schemaFingerprintVersion),
		"schema":  schemaValue,
	}
	data, err := ir.MarshalCanonical(obj)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func readMeta(ctx context.Context, ex execer) (string, bool, error) {
	var value string
	err := ex.QueryRowContext(ctx, `SELECT schema FROM meta WHERE zero = 0`).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// sortedObjectTypes returns the object-type names of idx in sorted
// order, so per-type table creation order is deterministic.
func sortedObjectTypes(idx schema.Index) []string {
	names := make([]string, 0, len(idx))
	for name, d := range idx {
		if d.IsObject() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// primitiveTableDDL builds the CREATE TABLE statement for
// primitives_<typename>, per §4.C / §6. typename and every fieldName
// have already passed schema.ValidateIdentifiers.
func primitiveTableDDL(typename string, fieldNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `CREATE TABLE IF NOT EXISTS primitives_%s (`, typename)
	b.WriteString(`id TEXT PRIMARY KEY REFERENCES objects(id)`)
	for _, f := range fieldNames {
		fmt.Fprintf(&b, `, "%s"`, f)
	}
	b.WriteString(`)`)
	return b.String()
}
