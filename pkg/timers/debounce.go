// Package timers provides a cancellable debounce timer.
package timers

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid triggers into a single callback after a quiet
// period. Each Trigger cancels the previously scheduled callback, so only the
// most recent one fires; superseded callbacks are discarded, not queued.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending *time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period, cancelling any
// previously scheduled callback. fn runs on its own goroutine.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.pending = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
