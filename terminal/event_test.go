package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyEvent_String(t *testing.T) {
	tests := []struct {
		ev   KeyEvent
		want string
	}{
		{KeyEvent{Key: KeyRune, Rune: 'a'}, "a"},
		{KeyEvent{Key: KeyEnter}, "enter"},
		{KeyEvent{Key: KeyUp, Modifiers: ModCtrl | ModShift}, "ctrl+shift+up"},
		{KeyEvent{Key: KeyRune, Rune: 'x', Modifiers: ModMeta | ModAlt}, "alt+meta+x"},
		{KeyEvent{Key: KeyPageDown}, "page_down"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}
}

func TestKeyEvent_IsRune(t *testing.T) {
	assert.True(t, KeyEvent{Key: KeyRune, Rune: 'q'}.IsRune('q'))
	assert.False(t, KeyEvent{Key: KeyRune, Rune: 'q'}.IsRune('w'))
	assert.False(t, KeyEvent{Key: KeyEnter, Rune: 'q'}.IsRune('q'))
}

func TestKeyByName(t *testing.T) {
	for k, name := range keyToName {
		got, ok := KeyByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, k, got, name)
	}

	k, ok := KeyByName("shift_tab")
	assert.True(t, ok)
	assert.Equal(t, KeyBacktab, k)

	_, ok = KeyByName("hyper")
	assert.False(t, ok)

	assert.Equal(t, "ctrl_c", KeyName(KeyCtrlC))
	assert.Equal(t, "f10", KeyF10.String())
	assert.Empty(t, KeyName(KeyRune))
	assert.Len(t, keyToName, 15+12+26+6)
}

func TestKeyCtrlLetter(t *testing.T) {
	assert.Equal(t, KeyCtrlA, KeyCtrlLetter('a'))
	assert.Equal(t, KeyCtrlZ, KeyCtrlLetter('Z'))
	assert.Equal(t, KeyNone, KeyCtrlLetter('1'))
}

func TestMouseEvent_String(t *testing.T) {
	ev := MouseEvent{Action: MouseActionPress, Button: MouseBtnLeft, Col: 3, Row: 4}
	assert.Equal(t, "Press Left (3,4)", ev.String())
	assert.Equal(t, Position{Row: 4, Col: 3}, ev.Position())

	ev.Modifiers = ModCtrl
	assert.Equal(t, "ctrl Press Left (3,4)", ev.String())
}

func TestMouseButton(t *testing.T) {
	assert.True(t, MouseBtnWheelDown.IsWheel())
	assert.False(t, MouseBtnLeft.IsWheel())
	assert.Equal(t, "Forward", MouseBtnForward.String())
	assert.Equal(t, "None", MouseButton(99).String())
	assert.Equal(t, "Drag", MouseActionDrag.String())
}
