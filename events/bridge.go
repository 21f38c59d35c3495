package events

import (
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// mouseEvents are the pointer events subscribed on the backend target
var mouseEvents = []string{"mousedown", "mouseup", "mousemove", "wheel"}

// BridgeOptions configures a Bridge
type BridgeOptions struct {
	// PreventDefault suppresses the browser action of decoded keys
	PreventDefault bool
	// MouseSelection leaves native text selection enabled on the target
	MouseSelection bool
	// Intercept sees every decoded mouse event before the registry
	Intercept func(terminal.MouseEvent)
}

// Bridge turns browser input into registry dispatches
// Listeners are attached once at construction and released by Close
type Bridge struct {
	registry *Registry
	geometry func() Geometry
	opts     BridgeOptions

	listeners []host.Listener
	dropped   int
	closed    bool
}

// NewBridge subscribes keydown on win and the mouse events on target
// geometry is consulted on every mouse event so resizes need no resubscription
func NewBridge(win host.Window, target host.Element, registry *Registry, geometry func() Geometry, opts BridgeOptions) *Bridge {
	b := &Bridge{
		registry: registry,
		geometry: geometry,
		opts:     opts,
	}
	b.listeners = append(b.listeners, win.Listen("keydown", b.handleKey))
	if target != nil {
		for _, name := range mouseEvents {
			b.listeners = append(b.listeners, target.Listen(name, b.handleMouse))
		}
		if !opts.MouseSelection {
			// Drags select text otherwise
			host.SetStyleField(target, "user-select", "none")
		}
	}
	return b
}

func (b *Bridge) handleKey(ev *host.RawEvent) {
	key, err := NormalizeKey(ev)
	if err != nil {
		b.drop(err)
		return
	}
	if b.opts.PreventDefault && ev.PreventDefault != nil {
		ev.PreventDefault()
	}
	b.registry.DispatchKey(key)
}

func (b *Bridge) handleMouse(ev *host.RawEvent) {
	var g Geometry
	if b.geometry != nil {
		g = b.geometry()
	}
	mouse, err := NormalizeMouse(ev, g)
	if err != nil {
		b.drop(err)
		return
	}
	if b.opts.Intercept != nil {
		b.opts.Intercept(mouse)
	}
	b.registry.DispatchMouse(mouse)
}

func (b *Bridge) drop(err error) {
	b.dropped++
	core.Debugf("events: dropped: %v", err)
}

// Dropped returns the number of events that failed to decode
func (b *Bridge) Dropped() int {
	return b.dropped
}

// Close releases every listener; safe to call more than once
func (b *Bridge) Close() {
	if b.closed {
		return
	}
	b.closed = true
	for _, l := range b.listeners {
		l.Release()
	}
	b.listeners = nil
}
