package wifi

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of triggers into a single trailing-edge
// delivery. A trigger (re)arms a timer for the quiet period; the function
// fires once the quiet period elapses without another trigger. Deliveries
// are additionally spaced at least one window apart, so a steady stream of
// triggers fires at most once per rolling window.
type debouncer struct {
	quiet  time.Duration
	window time.Duration
	fn     func()

	mu        sync.Mutex
	timer     *time.Timer
	lastFired time.Time
}

func newDebouncer(quiet, window time.Duration, fn func()) *debouncer {
	return &debouncer{
		quiet:  quiet,
		window: window,
		fn:     fn,
	}
}

// Trigger requests a delivery. Concurrent callers share one coalescing
// window.
func (d *debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	delay := d.quiet
	if !d.lastFired.IsZero() {
		if remaining := d.window - time.Since(d.lastFired); remaining > delay {
			delay = remaining
		}
	}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	d.lastFired = time.Now()
	d.timer = nil
	d.mu.Unlock()

	d.fn()
}

// Stop cancels any pending delivery. Triggers after Stop arm a new one.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
