package events

import "github.com/lixenwraith/webterm/terminal"

// keyEntry maps one KeyboardEvent.key value to a key
type keyEntry struct {
	name string
	key  terminal.Key
}

// keyTable lists the named keys; legacy values from older browsers follow the
// standard name of the same key
var keyTable = []keyEntry{
	{"Enter", terminal.KeyEnter},
	{"Escape", terminal.KeyEscape},
	{"Esc", terminal.KeyEscape},
	{"Tab", terminal.KeyTab},
	{"Backspace", terminal.KeyBackspace},
	{"Delete", terminal.KeyDelete},
	{"Del", terminal.KeyDelete},
	{"Insert", terminal.KeyInsert},

	{"ArrowUp", terminal.KeyUp},
	{"Up", terminal.KeyUp},
	{"ArrowDown", terminal.KeyDown},
	{"Down", terminal.KeyDown},
	{"ArrowLeft", terminal.KeyLeft},
	{"Left", terminal.KeyLeft},
	{"ArrowRight", terminal.KeyRight},
	{"Right", terminal.KeyRight},
	{"Home", terminal.KeyHome},
	{"End", terminal.KeyEnd},
	{"PageUp", terminal.KeyPageUp},
	{"PageDown", terminal.KeyPageDown},

	{"F1", terminal.KeyF1},
	{"F2", terminal.KeyF2},
	{"F3", terminal.KeyF3},
	{"F4", terminal.KeyF4},
	{"F5", terminal.KeyF5},
	{"F6", terminal.KeyF6},
	{"F7", terminal.KeyF7},
	{"F8", terminal.KeyF8},
	{"F9", terminal.KeyF9},
	{"F10", terminal.KeyF10},
	{"F11", terminal.KeyF11},
	{"F12", terminal.KeyF12},
}

// modifierOnly are key values that never produce a key event on their own
var modifierOnly = []string{
	"Shift", "Control", "Alt", "AltGraph", "Meta", "OS", "Super", "Hyper",
	"CapsLock", "NumLock", "ScrollLock", "Fn", "FnLock", "Symbol", "SymbolLock",
}

// ctrlSpecial maps the character typed with Ctrl to the control key it selects
var ctrlSpecial = map[rune]terminal.Key{
	' ':  terminal.KeyCtrlSpace,
	'@':  terminal.KeyCtrlSpace,
	'\\': terminal.KeyCtrlBackslash,
	'[':  terminal.KeyCtrlBracketLeft,
	']':  terminal.KeyCtrlBracketRight,
	'^':  terminal.KeyCtrlCaret,
	'_':  terminal.KeyCtrlUnderscore,
}

var (
	namedKeys    map[string]terminal.Key
	modifierKeys map[string]struct{}
)

func init() {
	namedKeys = make(map[string]terminal.Key, len(keyTable))
	for _, e := range keyTable {
		namedKeys[e.name] = e.key
	}
	modifierKeys = make(map[string]struct{}, len(modifierOnly))
	for _, name := range modifierOnly {
		modifierKeys[name] = struct{}{}
	}
}
