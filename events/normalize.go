package events

import (
	"errors"
	"fmt"
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// ErrEventDecode reports a browser event that has no terminal equivalent
// The bridge logs and drops such events
var ErrEventDecode = errors.New("event decode failed")

// Geometry maps client pixel coordinates onto the grid
type Geometry struct {
	// Left, Top is the client position of the grid origin
	Left, Top float64
	// CellWidth, CellHeight is the pixel size of one cell
	CellWidth, CellHeight float64
	Cols, Rows            int
}

// Cell returns the grid cell under the client point (x, y)
func (g Geometry) Cell(x, y float64) (col, row int, ok bool) {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return 0, 0, false
	}
	fx := math.Floor((x - g.Left) / g.CellWidth)
	fy := math.Floor((y - g.Top) / g.CellHeight)
	if fx < 0 || fy < 0 || fx >= float64(g.Cols) || fy >= float64(g.Rows) {
		return 0, 0, false
	}
	return int(fx), int(fy), true
}

func decodeErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrEventDecode, fmt.Sprintf(format, args...))
}

func modifiers(ev *host.RawEvent) terminal.Modifier {
	var m terminal.Modifier
	if ev.Shift {
		m |= terminal.ModShift
	}
	if ev.Alt {
		m |= terminal.ModAlt
	}
	if ev.Ctrl {
		m |= terminal.ModCtrl
	}
	if ev.Meta {
		m |= terminal.ModMeta
	}
	return m
}

// NormalizeKey converts a keydown event into a key event
// Printable characters become KeyRune with Shift already applied to the rune,
// so ModShift is not reported for them
func NormalizeKey(ev *host.RawEvent) (terminal.KeyEvent, error) {
	if ev == nil {
		return terminal.KeyEvent{}, decodeErr("nil event")
	}
	mods := modifiers(ev)

	if k, ok := namedKeys[ev.Key]; ok {
		if k == terminal.KeyTab && mods.Has(terminal.ModShift) {
			k = terminal.KeyBacktab
		}
		return terminal.KeyEvent{Key: k, Modifiers: mods}, nil
	}
	if _, ok := modifierKeys[ev.Key]; ok {
		return terminal.KeyEvent{}, decodeErr("modifier key %q", ev.Key)
	}

	r, size := utf8.DecodeRuneInString(ev.Key)
	if r == utf8.RuneError || size != len(ev.Key) {
		return terminal.KeyEvent{}, decodeErr("unknown key %q", ev.Key)
	}

	if altGraph(ev, r) {
		mods &^= terminal.ModCtrl | terminal.ModAlt
	}
	if mods.Has(terminal.ModCtrl) {
		if k := terminal.KeyCtrlLetter(r); k != terminal.KeyNone {
			return terminal.KeyEvent{Key: k, Modifiers: mods}, nil
		}
		if k, ok := ctrlSpecial[r]; ok {
			return terminal.KeyEvent{Key: k, Modifiers: mods}, nil
		}
	}
	if !unicode.IsPrint(r) {
		return terminal.KeyEvent{}, decodeErr("unprintable key %U", r)
	}
	return terminal.KeyEvent{Key: terminal.KeyRune, Rune: r, Modifiers: mods &^ terminal.ModShift}, nil
}

// altGraph reports whether r was typed through AltGr
// Ctrl+Alt+ASCII letter stays a control chord
func altGraph(ev *host.RawEvent, r rune) bool {
	if ev.AltGraph {
		return true
	}
	return ev.Ctrl && ev.Alt && terminal.KeyCtrlLetter(r) == terminal.KeyNone
}

// buttonIDs maps MouseEvent.button to a button
var buttonIDs = [...]terminal.MouseButton{
	0: terminal.MouseBtnLeft,
	1: terminal.MouseBtnMiddle,
	2: terminal.MouseBtnRight,
	3: terminal.MouseBtnBack,
	4: terminal.MouseBtnForward,
}

// heldButton returns the primary button in a MouseEvent.buttons mask
func heldButton(mask int) terminal.MouseButton {
	switch {
	case mask&1 != 0:
		return terminal.MouseBtnLeft
	case mask&2 != 0:
		return terminal.MouseBtnRight
	case mask&4 != 0:
		return terminal.MouseBtnMiddle
	case mask&8 != 0:
		return terminal.MouseBtnBack
	case mask&16 != 0:
		return terminal.MouseBtnForward
	}
	return terminal.MouseBtnNone
}

// NormalizeMouse converts a mouse or wheel event into a grid mouse event
// Moves with a button held are reported as drags; wheel turns are presses of
// the wheel buttons
func NormalizeMouse(ev *host.RawEvent, g Geometry) (terminal.MouseEvent, error) {
	if ev == nil {
		return terminal.MouseEvent{}, decodeErr("nil event")
	}
	out := terminal.MouseEvent{Modifiers: modifiers(ev)}

	switch ev.Type {
	case "mousedown", "mouseup":
		if ev.Button < 0 || ev.Button >= len(buttonIDs) {
			return terminal.MouseEvent{}, decodeErr("mouse button %d", ev.Button)
		}
		out.Button = buttonIDs[ev.Button]
		out.Action = terminal.MouseActionPress
		if ev.Type == "mouseup" {
			out.Action = terminal.MouseActionRelease
		}
	case "mousemove":
		out.Button = heldButton(ev.Buttons)
		out.Action = terminal.MouseActionMove
		if out.Button != terminal.MouseBtnNone {
			out.Action = terminal.MouseActionDrag
		}
	case "wheel":
		switch {
		case ev.DeltaY < 0:
			out.Button = terminal.MouseBtnWheelUp
		case ev.DeltaY > 0:
			out.Button = terminal.MouseBtnWheelDown
		default:
			return terminal.MouseEvent{}, decodeErr("horizontal wheel")
		}
		out.Action = terminal.MouseActionPress
	default:
		return terminal.MouseEvent{}, decodeErr("event type %q", ev.Type)
	}

	col, row, ok := g.Cell(ev.X, ev.Y)
	if !ok {
		return terminal.MouseEvent{}, decodeErr("%s at (%g,%g) outside grid", ev.Type, ev.X, ev.Y)
	}
	out.Col, out.Row = col, row
	return out, nil
}
