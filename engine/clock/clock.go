// Package clock abstracts monotonic time so the render loop can be driven by a deterministic clock in tests.
package clock

import (
	"sync"
	"time"
)

// Clock provides monotonic time queries and the blocking sleep used for frame pacing.
type Clock interface {
	// Now returns the current instant. Successive calls never go backwards on the system clock.
	//
	// Returns:
	//   - time.Time: the current instant
	Now() time.Time

	// Since returns the time elapsed since prior.
	// The result is clamped to zero if the underlying clock reports an earlier instant than prior.
	//
	// Parameters:
	//   - prior: an instant previously returned by Now
	//
	// Returns:
	//   - time.Duration: the non-negative elapsed duration
	Since(prior time.Time) time.Duration

	// Sleep blocks the calling goroutine for d. Non-positive durations return immediately.
	//
	// Parameters:
	//   - d: the duration to sleep
	Sleep(d time.Duration)
}

// systemClock implements Clock using the runtime monotonic clock.
type systemClock struct{}

var _ Clock = systemClock{}

// NewClock returns a Clock backed by the runtime monotonic clock.
//
// Returns:
//   - Clock: the system clock
func NewClock() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) Since(prior time.Time) time.Duration {
	return clamp(time.Since(prior))
}

func (systemClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	time.Sleep(d)
}

// clamp returns d, or zero when d is negative.
func clamp(d time.Duration) time.Duration {
	if d < 0 {
		return 0
	}
	return d
}

// ManualClock is a Clock whose time only moves when told to.
// Sleep advances the clock by the requested duration plus an optional oversleep,
// which simulates OS timer slack.
type ManualClock struct {
	mu        sync.Mutex
	now       time.Time
	oversleep time.Duration
	slept     []time.Duration
}

var _ Clock = &ManualClock{}

// NewManualClock creates a ManualClock starting at start.
//
// Parameters:
//   - start: the initial instant
//
// Returns:
//   - *ManualClock: the manual clock
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Since(prior time.Time) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return clamp(c.now.Sub(prior))
}

func (c *ManualClock) Sleep(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d + c.oversleep)
}

// Advance moves the clock forward by d. Negative values are ignored.
//
// Parameters:
//   - d: the duration to advance
func (c *ManualClock) Advance(d time.Duration) {
	if d <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Set moves the clock to t, which may be earlier than the current instant.
//
// Parameters:
//   - t: the new current instant
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// SetOversleep sets the extra time every Sleep call adds beyond the requested duration.
//
// Parameters:
//   - d: the oversleep duration
func (c *ManualClock) SetOversleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.oversleep = d
}

// Sleeps returns a copy of every duration passed to Sleep.
//
// Returns:
//   - []time.Duration: the requested sleep durations in call order
func (c *ManualClock) Sleeps() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.slept))
	copy(out, c.slept)
	return out
}
