// Package store implements the Schema Installer, Object Registry, Update
// Clock, Transaction Harness, and Single-Update Guard: every piece of the
// mirror that owns the SQLite connection directly.
package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/graphmirror/internal/schema"
)

// Store owns the SQLite connection backing one mirror instance for the
// lifetime of the process. A Store exclusively owns its database file;
// concurrent external writers are undefined behavior.
type Store struct {
	db     *sql.DB
	schema schema.Index
	inTx   bool
}

// Open opens (creating if necessary) a SQLite database at path and
// installs sch into it. On a fresh database this creates every
// structural and per-type table; on an existing one it verifies the
// stored schema fingerprint matches sch byte-for-byte and fails with
// *mirrorerr.IncompatibleStore otherwise.
func Open(ctx context.Context, path string, sch schema.Schema) (*Store, error) {
	idx, err := schema.Decompose(sch)
	if err != nil {
		return nil, err
	}
	if err := schema.ValidateIdentifiers(idx); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	// SQLite supports one writer at a time; the mirror is the sole writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{db: db, schema: idx}

	if err := s.install(ctx, path, sch, idx); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Schema returns the decomposed schema index this store was opened
// with. Callers (planner, query synthesizer, ingestor) consult this
// instead of re-decomposing the raw schema on every call.
func (s *Store) Schema() schema.Index {
	return s.schema
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("applying %q: %w", p, err)
		}
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx. The helpers that
// take one (getConnection, readMeta, execSingleRow) are called with the
// *sql.Tx of the active transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
