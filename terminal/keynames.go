package terminal

import "strconv"

// keyToName holds the canonical lowercase name of every named key
// Function and Ctrl+letter names are generated in init
var keyToName = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBacktab:   "backtab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",

	KeyUp:       "up",
	KeyDown:     "down",
	KeyLeft:     "left",
	KeyRight:    "right",
	KeyHome:     "home",
	KeyEnd:      "end",
	KeyPageUp:   "page_up",
	KeyPageDown: "page_down",
	KeyInsert:   "insert",

	KeyCtrlSpace:        "ctrl_space",
	KeyCtrlBackslash:    "ctrl_backslash",
	KeyCtrlBracketLeft:  "ctrl_bracket_left",
	KeyCtrlBracketRight: "ctrl_bracket_right",
	KeyCtrlCaret:        "ctrl_caret",
	KeyCtrlUnderscore:   "ctrl_underscore",
}

var nameToKey map[string]Key

func init() {
	for i := 0; i < 12; i++ {
		keyToName[KeyF1+Key(i)] = "f" + strconv.Itoa(i+1)
	}
	for r := 'a'; r <= 'z'; r++ {
		keyToName[KeyCtrlLetter(r)] = "ctrl_" + string(r)
	}

	nameToKey = make(map[string]Key, len(keyToName)+1)
	for k, name := range keyToName {
		nameToKey[name] = k
	}
	nameToKey["shift_tab"] = KeyBacktab
}

// KeyName returns the canonical name of k, empty for KeyNone and KeyRune
func KeyName(k Key) string {
	return keyToName[k]
}

// KeyByName resolves a canonical name or alias
func KeyByName(name string) (Key, bool) {
	k, ok := nameToKey[name]
	return k, ok
}

// String returns the canonical name, "rune" for KeyRune and "none" for KeyNone
func (k Key) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyRune:
		return "rune"
	}
	if name, ok := keyToName[k]; ok {
		return name
	}
	return "unknown"
}

// modifierNames lists modifiers in display order
var modifierNames = [...]struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModAlt, "alt"},
	{ModShift, "shift"},
	{ModMeta, "meta"},
}

// String returns modifiers joined by '+', empty for ModNone
func (m Modifier) String() string {
	var b []byte
	for _, mn := range modifierNames {
		if m&mn.mod == 0 {
			continue
		}
		if len(b) > 0 {
			b = append(b, '+')
		}
		b = append(b, mn.name...)
	}
	return string(b)
}
