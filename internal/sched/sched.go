package sched

import (
	"sync"
	"time"
)

// Debouncer runs a function only after calls have quiesced for the
// configured delay. Each Schedule restarts the quiet period and replaces
// the pending function.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	pending func()
	seq     uint64
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule queues fn to run after the quiet period. A previously pending
// function is discarded and its timer restarted.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pending = fn
	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.fire(seq)
	})
}

func (d *Debouncer) fire(seq uint64) {
	d.mu.Lock()
	if seq != d.seq || d.pending == nil {
		d.mu.Unlock()
		return
	}
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}

// Cancel discards any pending invocation.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.seq++
	d.pending = nil
}

// Pending returns true while an invocation is queued.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

// SetDelay updates the quiet period for future schedules.
func (d *Debouncer) SetDelay(delay time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delay = delay
}

// Throttler runs at most one function per interval. The first call in a
// window runs synchronously on the leading edge; further calls within the
// window are coalesced to the most recent and run once on the trailing
// edge.
type Throttler struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
	timer    *time.Timer
	pending  func()
	seq      uint64
}

// NewThrottler creates a throttler with the given window.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{interval: interval}
}

// Call runs fn now if the window has elapsed, otherwise queues it for the
// trailing edge, replacing any previously queued function.
func (t *Throttler) Call(fn func()) {
	t.mu.Lock()

	now := time.Now()
	if t.timer == nil && now.Sub(t.last) >= t.interval {
		t.last = now
		t.mu.Unlock()
		fn()
		return
	}

	t.pending = fn
	if t.timer == nil {
		remaining := t.interval - now.Sub(t.last)
		if remaining <= 0 {
			remaining = t.interval
		}
		t.seq++
		seq := t.seq
		t.timer = time.AfterFunc(remaining, func() {
			t.fire(seq)
		})
	}
	t.mu.Unlock()
}

func (t *Throttler) fire(seq uint64) {
	t.mu.Lock()
	if seq != t.seq || t.pending == nil {
		t.timer = nil
		t.mu.Unlock()
		return
	}
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.last = time.Now()
	t.mu.Unlock()

	fn()
}

// Cancel discards any pending trailing-edge invocation.
func (t *Throttler) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.seq++
	t.pending = nil
}

// SetInterval updates the window for future calls.
func (t *Throttler) SetInterval(interval time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interval = interval
}
