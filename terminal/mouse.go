package terminal

// MouseButton identifies the button of a mouse event
type MouseButton uint8

const (
	MouseBtnNone MouseButton = iota
	MouseBtnLeft
	MouseBtnMiddle
	MouseBtnRight
	MouseBtnWheelUp
	MouseBtnWheelDown
	MouseBtnBack    // browser button 3
	MouseBtnForward // browser button 4
)

// MouseAction is what happened to the button
type MouseAction uint8

const (
	MouseActionNone MouseAction = iota
	MouseActionPress
	MouseActionRelease
	MouseActionMove
	MouseActionDrag
)

var buttonNames = [...]string{
	MouseBtnNone:      "None",
	MouseBtnLeft:      "Left",
	MouseBtnMiddle:    "Middle",
	MouseBtnRight:     "Right",
	MouseBtnWheelUp:   "WheelUp",
	MouseBtnWheelDown: "WheelDown",
	MouseBtnBack:      "Back",
	MouseBtnForward:   "Forward",
}

var actionNames = [...]string{
	MouseActionNone:    "None",
	MouseActionPress:   "Press",
	MouseActionRelease: "Release",
	MouseActionMove:    "Move",
	MouseActionDrag:    "Drag",
}

// IsWheel reports whether b is a wheel direction rather than a physical button
func (b MouseButton) IsWheel() bool {
	return b == MouseBtnWheelUp || b == MouseBtnWheelDown
}

func (b MouseButton) String() string {
	if int(b) < len(buttonNames) {
		return buttonNames[b]
	}
	return "None"
}

func (a MouseAction) String() string {
	if int(a) < len(actionNames) {
		return actionNames[a]
	}
	return "None"
}
