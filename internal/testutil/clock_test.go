package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMillisClock_StartsAtGivenValue(t *testing.T) {
	clock := NewMillisClock(1000)
	assert.Equal(t, int64(1000), clock.Current())
}

func TestMillisClock_NextAdvancesByStep(t *testing.T) {
	clock := NewMillisClock(0)
	assert.Equal(t, int64(100), clock.Next(100))
	assert.Equal(t, int64(250), clock.Next(150))
	assert.Equal(t, int64(250), clock.Current())
}

func TestMillisClock_ThreadSafe(t *testing.T) {
	clock := NewMillisClock(0)
	const numGoroutines = 50
	const callsPerGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				clock.Next(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(numGoroutines*callsPerGoroutine), clock.Current())
}
