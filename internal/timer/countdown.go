package timer

import (
	"fmt"
	"time"
)

// Countdown tracks a deadline anchored to the wall clock. Remaining time is
// always recomputed from the absolute deadline rather than decremented, so a
// suspended and resumed process still reports the correct value.
type Countdown struct {
	start    time.Time
	deadline time.Time
	expired  bool
}

// NewCountdown creates a countdown running from start for the given duration.
func NewCountdown(duration time.Duration, start time.Time) *Countdown {
	return &Countdown{
		start:    start,
		deadline: start.Add(duration),
	}
}

// Remaining returns the whole seconds left at now, computed as the ceiling of
// the remaining interval and clamped at zero.
func (c *Countdown) Remaining(now time.Time) int {
	rem := c.deadline.Sub(now)
	if rem <= 0 {
		return 0
	}
	return int((rem + time.Second - 1) / time.Second)
}

// Elapsed returns how long the countdown has been running at now.
func (c *Countdown) Elapsed(now time.Time) time.Duration {
	return now.Sub(c.start)
}

// Total returns the full countdown duration.
func (c *Countdown) Total() time.Duration {
	return c.deadline.Sub(c.start)
}

// Start returns the instant the countdown began.
func (c *Countdown) Start() time.Time {
	return c.start
}

// Expire reports whether the countdown has reached zero at now, returning
// true exactly once. Further calls at or past the deadline return false.
func (c *Countdown) Expire(now time.Time) bool {
	if c.expired || c.Remaining(now) > 0 {
		return false
	}
	c.expired = true
	return true
}

// Expired reports whether the one-time expiry has already fired.
func (c *Countdown) Expired() bool {
	return c.expired
}

// FormatSeconds renders whole seconds as an MM:SS display string.
func FormatSeconds(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
