package event

import (
	"fmt"
	"time"
)

// Screen records the display geometry at capture time. Display-only
// metadata: replay never rescales coordinates with it.
type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Metadata summarizes a recording. CreatedAt is the wall-clock session
// start and exists for display only; replay timing uses the events'
// session-relative timestamps.
type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	Duration   float64   `json:"duration"`
	EventCount int       `json:"event_count"`
	Screen     *Screen   `json:"screen,omitempty"`
}

// Recording is an ordered event log plus its metadata. It is append-only
// while capture runs and immutable afterwards.
type Recording struct {
	Metadata Metadata `json:"metadata"`
	Events   []Event  `json:"events"`
}

// New finalizes a captured event sequence into a Recording. Duration is
// the last event's timestamp, or 0 for an empty session.
func New(events []Event, createdAt time.Time) *Recording {
	if events == nil {
		// A zero-event session still serializes as an empty list, not
		// null, which the document schema would reject on load.
		events = []Event{}
	}
	rec := &Recording{
		Metadata: Metadata{
			CreatedAt:  createdAt,
			EventCount: len(events),
		},
		Events: events,
	}
	if len(events) > 0 {
		rec.Metadata.Duration = events[len(events)-1].T
	}
	return rec
}

// Validate checks the ordering invariant: timestamps never decrease
// across the sequence. Ties are fine, near-simultaneous events keep
// their arrival order.
func (r *Recording) Validate() error {
	for i := 1; i < len(r.Events); i++ {
		if r.Events[i].T < r.Events[i-1].T {
			return validationf("event %d timestamp %g decreases from %g",
				i, r.Events[i].T, r.Events[i-1].T)
		}
	}
	return nil
}

// ValidationError reports a malformed recording document or a violated
// ordering invariant. It is fatal for the load that produced it and
// nothing else.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid recording: " + e.Reason
}

func validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}
