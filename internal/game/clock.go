package game

import "time"

// FrameClock is simulated time advanced by the game loop, for headless runs
// where notification expiry should follow frames rather than the wall clock.
type FrameClock struct {
	now time.Time
}

// NewFrameClock starts a clock at a fixed epoch.
func NewFrameClock() *FrameClock {
	return &FrameClock{now: time.Unix(0, 0).UTC()}
}

// Now returns the simulated time.
func (c *FrameClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FrameClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
