package autosave

import (
	"sync"
	"time"
)

// Debouncer coalesces rapid successive triggers into one execution per key:
// arming a key cancels its pending timer and starts a fresh quiet period.
type Debouncer struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewDebouncer creates a new debouncer
func NewDebouncer() *Debouncer {
	return &Debouncer{
		timers: make(map[string]*time.Timer),
	}
}

// Arm schedules fn to run after the quiet period. Arming the same key again
// before it fires cancels the previous schedule and restarts the period.
func (d *Debouncer) Arm(key string, quiet time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.timers[key]; exists {
		timer.Stop()
	}
	d.timers[key] = time.AfterFunc(quiet, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Fire cancels a pending schedule for key and reports whether one existed.
// The caller runs the action itself.
func (d *Debouncer) Fire(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	timer, exists := d.timers[key]
	if exists {
		timer.Stop()
		delete(d.timers, key)
	}
	return exists
}

// Stop cancels all pending schedules
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
