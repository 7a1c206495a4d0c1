package authoritytest

import (
	"sync"
	"time"

	authority "github.com/ironforge/authority"
)

// Clock is a deterministic time source for tests that need to control
// temp-permission/temp-group expiration without sleeping. Advance moves
// the clock forward; Source satisfies authority.TickSource.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock starting at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Source returns the authority.TickSource backed by c.
func (c *Clock) Source() authority.TickSource {
	return c.Now
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Set pins the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
