// Package debounce turns a burst of values into the single value the burst settled on.
package debounce

import (
	"sync"
	"time"
)

// DefaultQuiet is the quiet period used when none is given.
const DefaultQuiet = 500 * time.Millisecond

// Debouncer emits a pushed value once no newer value has arrived for the quiet period.
// Each Push restarts the timer; superseded values are never emitted.
type Debouncer struct {
	quiet time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	out     chan string
	stopped bool
}

// New returns a debouncer with the given quiet period. Non-positive periods use DefaultQuiet.
func New(quiet time.Duration) *Debouncer {
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	return &Debouncer{
		quiet: quiet,
		out:   make(chan string, 1),
	}
}

// Push records a raw value and restarts the quiet period.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.seq++
	seq := d.seq

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(seq, value) })
}

func (d *Debouncer) fire(seq uint64, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A timer that lost the race with Stop or a newer Push.
	if d.stopped || seq != d.seq {
		return
	}

	// Only the latest settled value matters to a slow consumer.
	select {
	case <-d.out:
	default:
	}
	d.out <- value
}

// Values delivers settled values. It is closed by Stop.
func (d *Debouncer) Values() <-chan string {
	return d.out
}

// Cancel discards the pending value, if any, and a settled value not yet received.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.out:
	default:
	}
}

// Stop discards any pending value and closes Values. Further pushes are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
	}

	select {
	case <-d.out:
	default:
	}
	close(d.out)
}
