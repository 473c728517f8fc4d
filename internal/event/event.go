// Package event holds the shared data model for recorded pointer input:
// the tagged Event variant, the Recording container and its validation
// rules. The capture, replay and storage packages all depend on this
// package and on nothing else of each other.
package event

import (
	"encoding/json"
	"fmt"
)

// Type discriminates the three event variants.
type Type string

const (
	TypeMove   Type = "move"
	TypeClick  Type = "click"
	TypeScroll Type = "scroll"
)

// Button identifies a pointer button on a click event.
type Button string

const (
	ButtonLeft   Button = "left"
	ButtonRight  Button = "right"
	ButtonMiddle Button = "middle"
)

func validButton(b Button) bool {
	return b == ButtonLeft || b == ButtonRight || b == ButtonMiddle
}

// Event is one normalized pointer-device occurrence. Which fields are
// meaningful depends on Type: Button/Pressed only for clicks, DX/DY only
// for scrolls. T is seconds since the start of the capture session,
// never wall-clock.
type Event struct {
	Type    Type
	X, Y    int
	Button  Button
	Pressed bool
	DX, DY  int
	T       float64
}

// Move builds a pointer-motion event at absolute screen coordinates.
func Move(x, y int, t float64) Event {
	return Event{Type: TypeMove, X: x, Y: y, T: t}
}

// Click builds a button transition event. pressed=true is a press,
// false a release.
func Click(x, y int, button Button, pressed bool, t float64) Event {
	return Event{Type: TypeClick, X: x, Y: y, Button: button, Pressed: pressed, T: t}
}

// Scroll builds a wheel-delta event at the given position.
func Scroll(x, y, dx, dy int, t float64) Event {
	return Event{Type: TypeScroll, X: x, Y: y, DX: dx, DY: dy, T: t}
}

// Per-variant wire shapes. Pressed and the deltas must survive their zero
// values through a round trip, so each variant serializes exactly the
// fields it owns instead of sharing one omitempty struct.
type moveJSON struct {
	Type Type    `json:"type"`
	X    int     `json:"x"`
	Y    int     `json:"y"`
	T    float64 `json:"timestamp"`
}

type clickJSON struct {
	Type    Type    `json:"type"`
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Button  Button  `json:"button"`
	Pressed bool    `json:"pressed"`
	T       float64 `json:"timestamp"`
}

type scrollJSON struct {
	Type Type    `json:"type"`
	X    int     `json:"x"`
	Y    int     `json:"y"`
	DX   int     `json:"dx"`
	DY   int     `json:"dy"`
	T    float64 `json:"timestamp"`
}

// MarshalJSON writes the variant-specific document shape.
func (e Event) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case TypeMove:
		return json.Marshal(moveJSON{Type: e.Type, X: e.X, Y: e.Y, T: e.T})
	case TypeClick:
		return json.Marshal(clickJSON{Type: e.Type, X: e.X, Y: e.Y, Button: e.Button, Pressed: e.Pressed, T: e.T})
	case TypeScroll:
		return json.Marshal(scrollJSON{Type: e.Type, X: e.X, Y: e.Y, DX: e.DX, DY: e.DY, T: e.T})
	}
	return nil, fmt.Errorf("marshal event: unknown type %q", e.Type)
}

// UnmarshalJSON parses one event object, enforcing the per-variant
// required fields. Unknown extra fields are ignored for forward
// compatibility; a missing required field or an unknown type is a
// ValidationError.
func (e *Event) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type    *Type    `json:"type"`
		X       *int     `json:"x"`
		Y       *int     `json:"y"`
		Button  *Button  `json:"button"`
		Pressed *bool    `json:"pressed"`
		DX      *int     `json:"dx"`
		DY      *int     `json:"dy"`
		T       *float64 `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Type == nil {
		return validationf("event missing required field %q", "type")
	}
	switch *raw.Type {
	case TypeMove, TypeClick, TypeScroll:
	default:
		return validationf("unknown event type %q", *raw.Type)
	}
	switch {
	case raw.X == nil:
		return validationf("%s event missing required field %q", *raw.Type, "x")
	case raw.Y == nil:
		return validationf("%s event missing required field %q", *raw.Type, "y")
	case raw.T == nil:
		return validationf("%s event missing required field %q", *raw.Type, "timestamp")
	}

	switch *raw.Type {
	case TypeMove:
		*e = Move(*raw.X, *raw.Y, *raw.T)
	case TypeClick:
		if raw.Button == nil {
			return validationf("click event missing required field %q", "button")
		}
		if raw.Pressed == nil {
			return validationf("click event missing required field %q", "pressed")
		}
		if !validButton(*raw.Button) {
			return validationf("click event has unknown button %q", *raw.Button)
		}
		*e = Click(*raw.X, *raw.Y, *raw.Button, *raw.Pressed, *raw.T)
	case TypeScroll:
		if raw.DX == nil || raw.DY == nil {
			return validationf("scroll event missing required field %q", "dx/dy")
		}
		*e = Scroll(*raw.X, *raw.Y, *raw.DX, *raw.DY, *raw.T)
	}
	return nil
}
