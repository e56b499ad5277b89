package search

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid calls into one trailing-edge invocation of fn:
// fn runs once the configured quiet period has elapsed since the last
// Call. It is independent of any transport or UI layer so it can be
// tested in isolation.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fn    func()
	timer *time.Timer
}

func NewDebouncer(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Call schedules fn after the quiet period, resetting the window if one
// is already pending.
func (d *Debouncer) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fn)
}

// Stop cancels any pending invocation.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
