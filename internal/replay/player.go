// Package replay re-emits a recording's events against the OS input
// layer, scaling the original inter-event gaps by a speed multiplier.
// Every wait is sliced so an external cancel lands within one slice.
package replay

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
)

// MinSpeed is the slowest accepted multiplier. Anything below implies
// impractically long waits and is rejected up front.
const MinSpeed = 0.01

// waitSlice bounds cancellation latency regardless of how long a single
// inter-event wait is.
const waitSlice = 100 * time.Millisecond

var (
	// ErrInvalidSpeed rejects speed multipliers below MinSpeed.
	ErrInvalidSpeed = errors.New("speed multiplier out of range")
	// ErrNegativeDelay rejects a negative start delay.
	ErrNegativeDelay = errors.New("start delay must not be negative")
)

// InjectionError reports the OS refusing one synthetic input event.
// Events emitted before it are real and stay in effect.
type InjectionError struct {
	Index int
	Type  event.Type
	Err   error
}

func (e *InjectionError) Error() string {
	return fmt.Sprintf("inject %s event %d: %v", e.Type, e.Index, e.Err)
}

func (e *InjectionError) Unwrap() error { return e.Err }

// Injector synthesizes pointer input. The OS-backed implementation is
// in injector.go; tests substitute their own.
type Injector interface {
	MoveTo(x, y int) error
	Button(x, y int, button event.Button, pressed bool) error
	Wheel(x, y, dx, dy int) error
}

// Result describes how a playback session ended. Cancelled is a
// distinct outcome, not a failure.
type Result struct {
	EventsEmitted int
	Elapsed       time.Duration
	Cancelled     bool
}

// Player replays one recording at a time. Cancel may be called from any
// goroutine; the flag is observed between wait slices and before every
// emission.
type Player struct {
	inj Injector

	cancelled atomic.Bool

	mu     sync.Mutex
	cursor int
	total  int
}

// NewPlayer returns a player emitting through inj, or through the OS
// injector when inj is nil.
func NewPlayer(inj Injector) *Player {
	if inj == nil {
		inj = OSInjector{}
	}
	return &Player{inj: inj}
}

// Cancel requests that the current playback halt. Cooperative: no
// goroutine is killed, the player stops at its next check.
func (p *Player) Cancel() {
	p.cancelled.Store(true)
}

// Progress returns the fraction of events emitted so far. Safe to poll
// from another goroutine while Play runs.
func (p *Player) Progress() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.total == 0 {
		return 0
	}
	return float64(p.cursor) / float64(p.total)
}

// Play blocks until the full sequence has been emitted, an injection
// fails, or Cancel is observed. delay is waited out before the first
// event so the operator can move away from the keyboard. An empty
// recording is a trivially successful no-op.
func (p *Player) Play(rec *event.Recording, speed float64, delay time.Duration) (Result, error) {
	if speed < MinSpeed {
		return Result{}, fmt.Errorf("%w: %g (minimum %g)", ErrInvalidSpeed, speed, MinSpeed)
	}
	if delay < 0 {
		return Result{}, ErrNegativeDelay
	}

	p.cancelled.Store(false)
	p.mu.Lock()
	p.cursor = 0
	p.total = len(rec.Events)
	p.mu.Unlock()

	start := time.Now()
	if !p.wait(delay) {
		return Result{Elapsed: time.Since(start), Cancelled: true}, nil
	}

	emitted := 0
	prev := 0.0
	for i, ev := range rec.Events {
		gap := ev.T - prev
		if gap < 0 {
			// Timestamps are monotonic by invariant; never sleep
			// a negative wait regardless.
			gap = 0
		}
		if !p.wait(time.Duration(gap / speed * float64(time.Second))) {
			return Result{EventsEmitted: emitted, Elapsed: time.Since(start), Cancelled: true}, nil
		}
		if err := p.emit(ev); err != nil {
			return Result{EventsEmitted: emitted, Elapsed: time.Since(start)},
				&InjectionError{Index: i, Type: ev.Type, Err: err}
		}
		emitted++
		prev = ev.T
		p.mu.Lock()
		p.cursor = i + 1
		p.mu.Unlock()
	}
	return Result{EventsEmitted: emitted, Elapsed: time.Since(start)}, nil
}

// wait sleeps d in slices of at most waitSlice, re-checking the cancel
// flag after each. Returns false once cancellation is observed. The
// flag is checked even for a zero wait, so no event is emitted after a
// cancel.
func (p *Player) wait(d time.Duration) bool {
	for {
		if p.cancelled.Load() {
			return false
		}
		if d <= 0 {
			return true
		}
		slice := d
		if slice > waitSlice {
			slice = waitSlice
		}
		time.Sleep(slice)
		d -= slice
	}
}

func (p *Player) emit(ev event.Event) error {
	switch ev.Type {
	case event.TypeMove:
		return p.inj.MoveTo(ev.X, ev.Y)
	case event.TypeClick:
		return p.inj.Button(ev.X, ev.Y, ev.Button, ev.Pressed)
	case event.TypeScroll:
		return p.inj.Wheel(ev.X, ev.Y, ev.DX, ev.DY)
	}
	return fmt.Errorf("unknown event type %q", ev.Type)
}
