package capability

import "time"

// Clock is a monotonic time source measured in seconds.
type Clock interface {
	Seconds() float64
}

// MonotonicClock reports seconds elapsed since it was created using the
// process's monotonic clock reading, so wall-clock adjustments never move it
// backwards.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock whose zero is now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

// Seconds returns the elapsed time as a float.
func (c *MonotonicClock) Seconds() float64 {
	return time.Since(c.start).Seconds()
}
