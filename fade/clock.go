package fade

import (
	"context"
	"sync"
	"time"
)

// Clock supplies monotonic time and absolute-deadline waiting
type Clock interface {
	Now() time.Time
	// SleepUntil blocks until deadline or until ctx ends
	SleepUntil(ctx context.Context, deadline time.Time) error
}

// SystemClock is the real monotonic clock
// time.Now carries a monotonic reading, so deadlines derived from it are immune to wall clock steps
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// SleepUntil waits for an absolute deadline; a past deadline returns immediately
func (SystemClock) SleepUntil(ctx context.Context, deadline time.Time) error {
	d := time.Until(deadline)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManualClock is a controllable clock for deterministic animation
// SleepUntil jumps time forward to the deadline instead of blocking
type ManualClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps int
}

// NewManualClock creates a manual clock starting at start
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current manual time
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set moves the clock to t; moving backwards is ignored to keep time monotonic
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}

// Advance moves the clock forward by d
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SleepUntil advances to deadline if it is in the future
func (c *ManualClock) SleepUntil(ctx context.Context, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sleeps++
	if deadline.After(c.now) {
		c.now = deadline
	}
	return nil
}

// Sleeps returns how many times SleepUntil was called
func (c *ManualClock) Sleeps() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sleeps
}
