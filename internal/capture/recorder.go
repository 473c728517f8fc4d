// Package capture subscribes to the global OS input hook and turns raw
// pointer notifications into an ordered, timestamped Recording. The hook
// callbacks run outside normal control flow, so they only stamp and push
// raw events onto a queue; the recorder's own goroutine drains the queue
// in arrival order.
package capture

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-vgo/robotgo"
	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
)

// ErrAlreadyRecording is returned when Record is called while a session
// is active.
var ErrAlreadyRecording = errors.New("recording already in progress")

// Queue between the hook callbacks and the recorder goroutine. Pushes
// block rather than drop when the drain falls behind, keeping the 1:1
// notification-to-event mapping intact.
const rawQueueSize = 1024

type stampedEvent struct {
	ev      hook.Event
	elapsed time.Duration
}

// Recorder captures global mouse events until the cancel key is
// released or Stop is called. One capture session at a time.
type Recorder struct {
	cancelKey string

	mu        sync.Mutex
	recording bool
	events    []event.Event
	createdAt time.Time
}

// NewRecorder returns a recorder that stops on a release of cancelKey
// (gohook key name, e.g. "esc").
func NewRecorder(cancelKey string) *Recorder {
	if cancelKey == "" {
		cancelKey = "esc"
	}
	return &Recorder{cancelKey: cancelKey}
}

// Record blocks until the cancel key is released or Stop is called,
// then returns the finalized Recording. Timestamps come from the
// monotonic clock, relative to the session start. The cancel keypress
// itself never becomes a domain event.
func (r *Recorder) Record() (*event.Recording, error) {
	r.mu.Lock()
	if r.recording {
		r.mu.Unlock()
		return nil, ErrAlreadyRecording
	}
	r.recording = true
	r.events = nil
	start := time.Now()
	r.createdAt = start
	r.mu.Unlock()

	raw := make(chan stampedEvent, rawQueueSize)
	push := func(e hook.Event) {
		// Stamp in the hook's dispatch loop so ordering and timing
		// reflect arrival, not drain latency.
		raw <- stampedEvent{ev: e, elapsed: time.Since(start)}
	}
	// gohook's constants mirror the raw uiohook enum, where the names
	// are shifted against physical semantics: MouseHold is the physical
	// button press and MouseDown the release. MouseUp is the synthetic
	// click-completed notification, which never fires after a drag, so
	// it is not subscribed; relying on it would record presses without
	// releases.
	for _, kind := range []uint8{hook.MouseMove, hook.MouseDrag, hook.MouseHold, hook.MouseDown, hook.MouseWheel} {
		hook.Register(kind, []string{}, push)
	}

	cancelCode := hook.Keycode[r.cancelKey]
	hook.Register(hook.KeyUp, []string{}, func(e hook.Event) {
		if e.Keycode == cancelCode {
			slog.Debug("cancel key released, stopping capture", "key", r.cancelKey)
			hook.End()
		}
	})

	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for se := range raw {
			ev, ok := normalize(se.ev, se.elapsed)
			if !ok {
				continue
			}
			r.mu.Lock()
			r.events = append(r.events, ev)
			r.mu.Unlock()
		}
	}()

	evChan := hook.Start()
	slog.Debug("input hook started")
	// Blocks until hook.End() is called, by the cancel-key handler or
	// by Stop.
	<-hook.Process(evChan)
	close(raw)
	<-drained
	slog.Debug("input hook stopped")

	r.mu.Lock()
	events := r.events
	createdAt := r.createdAt
	r.events = nil
	r.recording = false
	r.mu.Unlock()

	rec := event.New(events, createdAt)
	if w, h := robotgo.GetScreenSize(); w > 0 && h > 0 {
		rec.Metadata.Screen = &event.Screen{Width: w, Height: h}
	}
	return rec, nil
}

// Stop terminates an active capture session from outside, e.g. on an
// interrupt signal. Safe to call when nothing is recording.
func (r *Recorder) Stop() {
	r.mu.Lock()
	active := r.recording
	r.mu.Unlock()
	if active {
		hook.End()
	}
}

// IsRecording reports whether a capture session is active.
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// EventCount returns the number of events captured so far. Safe to poll
// from another goroutine while recording.
func (r *Recorder) EventCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}
