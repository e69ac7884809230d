package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// SequentialIDGenerator produces readable, deterministic object IDs of
// the form "<prefix>-<n>" for tests that register many objects and
// need stable, predictable identifiers instead of random UUIDs.
//
// Unlike RandomIDGenerator, the same sequence of calls always produces
// the same IDs, which golden-file and ordering tests depend on.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator that emits
// "<prefix>-1", "<prefix>-2", and so on.
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	return &SequentialIDGenerator{prefix: prefix}
}

// Next returns the next id in the sequence.
func (g *SequentialIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

// RandomIDGenerator produces real v4 UUIDs, for tests and CLI
// correlation IDs where collision-freedom matters more than
// readability or determinism (e.g. distinguishing concurrent CLI
// invocations in a shared log stream).
type RandomIDGenerator struct{}

// Next returns a freshly generated UUID string.
func (RandomIDGenerator) Next() string {
	return uuid.NewString()
}
