package clock

import "time"

// Timer is a single-shot logical timer.
//
// It never fires on its own: Running is evaluated against the timestamp of
// the current tick, so a Timer can be refreshed and checked from the tick
// goroutine without any OS callback.
type Timer struct {
	duration        time.Duration
	lastRefreshedAt time.Time
	armed           bool
}

// NewTimer creates a stopped timer with the given duration.
func NewTimer(d time.Duration) Timer {
	return Timer{duration: d}
}

// Start arms the timer at now. Calling Start on a running timer restarts it.
func (t *Timer) Start(now time.Time) {
	t.lastRefreshedAt = now
	t.armed = true
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.armed = false
	t.lastRefreshedAt = time.Time{}
}

// Running reports whether the timer was started and has not yet expired at now.
func (t *Timer) Running(now time.Time) bool {
	return t.armed && now.Sub(t.lastRefreshedAt) < t.duration
}

// Remaining returns time left until expiry, or 0 when not running.
func (t *Timer) Remaining(now time.Time) time.Duration {
	if !t.Running(now) {
		return 0
	}
	return t.duration - now.Sub(t.lastRefreshedAt)
}

// Duration returns the configured timer duration.
func (t *Timer) Duration() time.Duration {
	return t.duration
}
