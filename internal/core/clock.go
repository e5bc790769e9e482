package core

import "time"

// Clock supplies the monotonic simulation time.
type Clock interface {
	Now() time.Duration
}

// TickClock is a fixed-step clock: every Advance moves time forward by one
// tick of 1/rate seconds. Using tick counts instead of wall time keeps runs
// replayable.
type TickClock struct {
	rate  int
	ticks uint64
}

// NewTickClock creates a clock running at rate ticks per second.
// Non-positive rates fall back to 60.
func NewTickClock(rate int) *TickClock {
	if rate <= 0 {
		rate = 60
	}
	return &TickClock{rate: rate}
}

// Advance moves the clock forward one tick and returns the new time.
func (c *TickClock) Advance() time.Duration {
	c.ticks++
	return c.Now()
}

// Now returns the elapsed simulation time.
func (c *TickClock) Now() time.Duration {
	return time.Duration(c.ticks) * time.Second / time.Duration(c.rate)
}

// Ticks returns the number of ticks advanced so far.
func (c *TickClock) Ticks() uint64 {
	return c.ticks
}

// Step returns the duration of a single tick.
func (c *TickClock) Step() time.Duration {
	return time.Second / time.Duration(c.rate)
}

// Reset rewinds the clock to zero.
func (c *TickClock) Reset() {
	c.ticks = 0
}
