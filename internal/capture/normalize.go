package capture

import (
	"log/slog"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/vedantwpatil/Mouse-Replay/internal/event"
)

// libuiohook wheel direction codes.
const (
	wheelVertical   = 3
	wheelHorizontal = 4
)

// buttonNames is built from hook.MouseMap so the numbering stays correct
// across platforms.
var buttonNames = map[uint16]event.Button{
	hook.MouseMap["left"]:   event.ButtonLeft,
	hook.MouseMap["right"]:  event.ButtonRight,
	hook.MouseMap["center"]: event.ButtonMiddle,
}

// normalize converts one raw hook notification into its domain event.
// Returns false for notifications that have no domain representation,
// such as extra mouse buttons.
func normalize(e hook.Event, elapsed time.Duration) (event.Event, bool) {
	t := elapsed.Seconds()
	switch e.Kind {
	case hook.MouseMove, hook.MouseDrag:
		// A drag is motion with a button held; same Move variant.
		return event.Move(int(e.X), int(e.Y), t), true
	case hook.MouseHold, hook.MouseDown:
		// Physical press arrives as MouseHold and release as MouseDown;
		// the constant names track the raw uiohook enum, not the
		// physical transition.
		btn, ok := buttonNames[e.Button]
		if !ok {
			slog.Debug("ignoring unmapped mouse button", "button", e.Button)
			return event.Event{}, false
		}
		return event.Click(int(e.X), int(e.Y), btn, e.Kind == hook.MouseHold, t), true
	case hook.MouseWheel:
		var dx, dy int
		if e.Direction == wheelHorizontal {
			dx = int(e.Rotation)
		} else {
			dy = int(e.Rotation)
		}
		return event.Scroll(int(e.X), int(e.Y), dx, dy, t), true
	}
	return event.Event{}, false
}
