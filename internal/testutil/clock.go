package testutil

import "sync"

// DeterministicClock is a capability.Clock for tests that advances by a fixed
// step on every reading.
//
// The first call to Seconds returns step, the next 2*step, and so on, so
// scripts measuring elapsed time see reproducible durations.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	step  float64
	ticks int64
}

// NewDeterministicClock creates a clock that advances step seconds per reading.
// A non-positive step defaults to one second.
func NewDeterministicClock(step float64) *DeterministicClock {
	if step <= 0 {
		step = 1
	}
	return &DeterministicClock{step: step}
}

// Seconds advances the clock and returns the new reading.
func (c *DeterministicClock) Seconds() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
	return float64(c.ticks) * c.step
}

// Readings returns how many times Seconds has been called.
func (c *DeterministicClock) Readings() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Reset returns the clock to zero readings.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
