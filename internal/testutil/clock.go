// Package testutil collects small deterministic fakes shared across the
// mirror's test suites — a millisecond clock for CreateUpdate callers
// that need a reproducible, strictly increasing time source, and an ID
// generator for tests that need stable object identifiers without
// hardcoding them inline.
package testutil

import "sync"

// MillisClock is a thread-safe, strictly increasing source of
// millisecond timestamps for tests exercising store.CreateUpdate and
// the Staleness Planner, where real wall-clock time would make the
// same test produce different update IDs/times on each run.
type MillisClock struct {
	mu  sync.Mutex
	now int64
}

// NewMillisClock creates a clock starting at startMillis.
func NewMillisClock(startMillis int64) *MillisClock {
	return &MillisClock{now: startMillis}
}

// Next advances the clock by stepMillis and returns the new time.
func (c *MillisClock) Next(stepMillis int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += stepMillis
	return c.now
}

// Current returns the current time without advancing it.
func (c *MillisClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}
