package terminal

import "strconv"

// KeyEvent is a normalized keyboard event
// Key is KeyRune for printable characters, with the character in Rune
type KeyEvent struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// IsRune reports whether the event carries the printable character r
func (e KeyEvent) IsRune(r rune) bool {
	return e.Key == KeyRune && e.Rune == r
}

// String renders the event as e.g. "ctrl+shift+up" or "a"
func (e KeyEvent) String() string {
	name := e.Key.String()
	if e.Key == KeyRune {
		name = string(e.Rune)
	}
	if e.Modifiers == ModNone {
		return name
	}
	return e.Modifiers.String() + "+" + name
}

// MouseEvent is a normalized mouse event in grid coordinates
type MouseEvent struct {
	Action    MouseAction
	Button    MouseButton
	Col       int
	Row       int
	Modifiers Modifier
}

// Position returns the grid cell under the pointer
func (e MouseEvent) Position() Position {
	return Position{Row: e.Row, Col: e.Col}
}

// String renders the event as e.g. "Press Left (3,4)"
func (e MouseEvent) String() string {
	s := e.Action.String() + " " + e.Button.String() + " (" + strconv.Itoa(e.Col) + "," + strconv.Itoa(e.Row) + ")"
	if e.Modifiers != ModNone {
		s = e.Modifiers.String() + " " + s
	}
	return s
}
