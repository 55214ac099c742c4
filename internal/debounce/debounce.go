// Package debounce provides a trailing-edge debouncer for coalescing bursts
// of calls into a single deferred invocation.
//
// The wizard screens use one debouncer per screen to throttle "field updated"
// analytics and classification refetches while the user types: every
// keystroke reschedules the pending invocation, and only the quiet period
// after the last keystroke lets it fire, with the last call's arguments.
package debounce

import (
	"sync"
	"time"
)

// Debouncer defers invocation of a function until a quiet period has elapsed.
// Each Call cancels and replaces the previously scheduled invocation; there
// is no queue, so only the most recent call's arguments are ever honored.
//
// The function runs on the runtime timer goroutine. Debouncer serializes its
// own bookkeeping but does not serialize fn against the calling goroutine;
// a panicking fn is not recovered.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
	fn    func(args ...any)
	wait  time.Duration
}

// New creates a Debouncer that invokes fn after wait of inactivity.
// Each call to New produces an independent timer; wrappers are never shared.
func New(fn func(args ...any), wait time.Duration) *Debouncer {
	return &Debouncer{
		fn:   fn,
		wait: wait,
	}
}

// Call schedules fn(args...) to run after the wait period. A call made while
// a previous invocation is still pending cancels it and restarts the clock,
// discarding the previous arguments.
func (d *Debouncer) Call(args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.wait, func() {
		d.fn(args...)
	})
}

// Stop cancels any pending invocation. It is safe to call when nothing is
// pending. A Call after Stop schedules normally.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
