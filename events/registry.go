package events

import (
	"fmt"

	"github.com/lixenwraith/webterm/terminal"
)

// Category selects a handler list
type Category uint8

const (
	CategoryKey Category = iota
	CategoryMouse
)

func (c Category) String() string {
	switch c {
	case CategoryKey:
		return "key"
	case CategoryMouse:
		return "mouse"
	default:
		return fmt.Sprintf("Category(%d)", c)
	}
}

// Registry holds the application's input handlers
// Handlers are only appended; Clear* drops a whole category
type Registry struct {
	keys  handlerList[terminal.KeyEvent]
	mouse handlerList[terminal.MouseEvent]
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// OnKey appends a key handler
func (r *Registry) OnKey(fn func(terminal.KeyEvent)) {
	r.keys.add(fn)
}

// OnMouse appends a mouse handler
func (r *Registry) OnMouse(fn func(terminal.MouseEvent)) {
	r.mouse.add(fn)
}

// ClearKey removes every key handler
func (r *Registry) ClearKey() {
	r.keys.clear()
}

// ClearMouse removes every mouse handler
func (r *Registry) ClearMouse() {
	r.mouse.clear()
}

// DispatchKey runs the key handlers in registration order and returns how many ran
func (r *Registry) DispatchKey(ev terminal.KeyEvent) int {
	return r.keys.dispatch(ev)
}

// DispatchMouse runs the mouse handlers in registration order and returns how many ran
func (r *Registry) DispatchMouse(ev terminal.MouseEvent) int {
	return r.mouse.dispatch(ev)
}

// HandlerCount returns the number of handlers registered for c
func (r *Registry) HandlerCount(c Category) int {
	switch c {
	case CategoryKey:
		return r.keys.count()
	case CategoryMouse:
		return r.mouse.count()
	}
	return 0
}
