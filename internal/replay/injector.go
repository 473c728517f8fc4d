package replay

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
)

// robotgo calls the middle button "center".
var robotgoButtons = map[event.Button]string{
	event.ButtonLeft:   "left",
	event.ButtonRight:  "right",
	event.ButtonMiddle: "center",
}

// OSInjector synthesizes pointer input through robotgo.
type OSInjector struct{}

func (OSInjector) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

func (OSInjector) Button(x, y int, button event.Button, pressed bool) error {
	name, ok := robotgoButtons[button]
	if !ok {
		return fmt.Errorf("unknown button %q", button)
	}
	robotgo.Move(x, y)
	dir := "up"
	if pressed {
		dir = "down"
	}
	return robotgo.Toggle(name, dir)
}

func (OSInjector) Wheel(x, y, dx, dy int) error {
	robotgo.Move(x, y)
	robotgo.Scroll(dx, dy)
	return nil
}
