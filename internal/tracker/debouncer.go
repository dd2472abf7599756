package tracker

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Debouncer collapses a stream of raw editor events into a bounded rate of
// activity signals per file. Write events always pass.
type Debouncer struct {
	window time.Duration
	logger zerolog.Logger

	mu           sync.Mutex
	lastResource string
	lastSignal   time.Time
	lastWasWrite bool
	hasSignal    bool
}

// NewDebouncer creates a Debouncer with the given suppression window.
func NewDebouncer(window time.Duration, logger zerolog.Logger) *Debouncer {
	return &Debouncer{
		window: window,
		logger: logger,
	}
}

// Observe decides whether the event at now should produce activity. An
// event is suppressed only when a previous signal exists for the same
// resource, neither event is a write, and the window has not elapsed.
// Accepted events update the tracked state before the decision is
// released, so concurrent callers never act on a stale signal.
func (d *Debouncer) Observe(resource string, isWrite bool, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !isWrite && d.hasSignal &&
		d.lastResource == resource &&
		!d.lastWasWrite &&
		now.Sub(d.lastSignal) < d.window {
		d.logger.Debug().Str("resource", resource).Msg("Debounced editor event")
		return false
	}

	d.lastResource = resource
	d.lastSignal = now
	d.lastWasWrite = isWrite
	d.hasSignal = true
	return true
}
