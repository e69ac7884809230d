package cli

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/graphmirror/internal/mirror"
	"github.com/roach88/graphmirror/internal/schemasrc"
)

// openMirror loads the schema from schemaDir and opens (or installs)
// the store at dbPath against it. Every subcommand but `install` also
// uses this to reopen an existing store, which re-verifies the schema
// fingerprint on every invocation (§4.C).
func openMirror(ctx context.Context, dbPath, schemaDir string) (*mirror.Mirror, error) {
	sch, err := schemasrc.LoadSchema(schemaDir)
	if err != nil {
		return nil, err
	}
	return mirror.Open(ctx, dbPath, sch)
}

// correlationID returns a fresh per-invocation id for verbose logging,
// so concurrent CLI runs against the same store can be told apart in a
// shared log stream.
func correlationID() string {
	return uuid.NewString()
}
