package testutil

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicClock_Steps(t *testing.T) {
	clock := NewDeterministicClock(0.5)

	assert.Equal(t, 0.5, clock.Seconds())
	assert.Equal(t, 1.0, clock.Seconds())
	assert.Equal(t, 1.5, clock.Seconds())
	assert.Equal(t, int64(3), clock.Readings())
}

func TestDeterministicClock_DefaultStep(t *testing.T) {
	assert.Equal(t, 1.0, NewDeterministicClock(0).Seconds())
	assert.Equal(t, 1.0, NewDeterministicClock(-2).Seconds())
}

func TestDeterministicClock_Reset(t *testing.T) {
	clock := NewDeterministicClock(1)

	clock.Seconds()
	clock.Seconds()
	clock.Reset()

	assert.Equal(t, int64(0), clock.Readings())
	assert.Equal(t, 1.0, clock.Seconds())
}

func TestDeterministicClock_ThreadSafe(t *testing.T) {
	clock := NewDeterministicClock(1)
	const numGoroutines = 50
	const callsPerGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	results := make([][]float64, numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		results[i] = make([]float64, callsPerGoroutine)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < callsPerGoroutine; j++ {
				results[idx][j] = clock.Seconds()
			}
		}(i)
	}
	wg.Wait()

	seen := make(map[float64]bool)
	for i := range results {
		for j := 1; j < callsPerGoroutine; j++ {
			require.Greater(t, results[i][j], results[i][j-1], "readings within one goroutine must increase")
		}
		for _, v := range results[i] {
			require.False(t, seen[v], "duplicate reading %v", v)
			seen[v] = true
		}
	}
	assert.Len(t, seen, numGoroutines*callsPerGoroutine)
}
