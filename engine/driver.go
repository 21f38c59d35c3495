package engine

import (
	"fmt"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/render"
	"github.com/lixenwraith/webterm/terminal"
)

// State is the lifecycle phase of a Driver
type State uint8

const (
	StateUninitialized State = iota
	StateRunning
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateRunning:
		return "Running"
	case StateStopped:
		return "Stopped"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}

// DrawFunc fills a fresh frame once per animation callback
type DrawFunc func(f *terminal.Frame)

// Driver runs the render loop on the browser's animation callbacks
//
// Lifecycle:
//   - Uninitialized: the first callback initializes the backend
//   - Running: every callback draws one frame, diffs it against the previous
//     snapshot, renders and re-schedules
//   - Stopped: terminal; the backend is released and nothing is scheduled
//
// All methods must be called from the browser event loop
type Driver struct {
	win     host.Window
	backend terminal.Backend
	draw    DrawFunc

	state         State
	width, height int
	resizePending bool

	prev      *terminal.Snapshot
	frameID   int
	scheduled bool
	frames    int

	err    error
	onStop []func(error)
}

// NewDriver returns an uninitialized driver for a width x height grid
func NewDriver(win host.Window, backend terminal.Backend, width, height int, draw DrawFunc) *Driver {
	return &Driver{
		win:     win,
		backend: backend,
		draw:    draw,
		width:   width,
		height:  height,
	}
}

// SetDraw replaces the draw callback, effective from the next frame
func (d *Driver) SetDraw(draw DrawFunc) {
	d.draw = draw
}

// Start schedules the first animation callback
// No-op once started or stopped
func (d *Driver) Start() {
	if d.state != StateUninitialized || d.scheduled {
		return
	}
	d.schedule()
}

func (d *Driver) schedule() {
	d.frameID = d.win.RequestAnimationFrame(d.tick)
	d.scheduled = true
}

func (d *Driver) tick(float64) {
	d.scheduled = false
	if d.state == StateStopped {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			d.fail(fmt.Errorf("frame %d: %w", d.frames, core.HandleCrash(r)))
		}
	}()

	switch {
	case d.state == StateUninitialized:
		if err := d.backend.Initialize(d.width, d.height); err != nil {
			d.fail(fmt.Errorf("initialize %dx%d: %w", d.width, d.height, err))
			return
		}
		d.state = StateRunning
		d.resizePending = false
		d.checkRetained()
		core.Debugf("engine: running %dx%d", d.width, d.height)
	case d.resizePending:
		d.resizePending = false
		if err := d.backend.Initialize(d.width, d.height); err != nil {
			d.fail(fmt.Errorf("resize %dx%d: %w", d.width, d.height, err))
			return
		}
		d.checkRetained()
		// Drop the old snapshot so the next diff is full
		d.prev = nil
		core.Debugf("engine: resized to %dx%d", d.width, d.height)
	}

	d.frame()
	if d.state == StateRunning {
		d.schedule()
	}
}

func (d *Driver) frame() {
	f := terminal.NewFrame(d.width, d.height)
	if d.draw != nil {
		d.draw(f)
	}
	// Stopped from inside draw
	if d.state != StateRunning {
		return
	}
	snap := f.Snapshot()
	d.backend.Render(terminal.ComputeDiff(d.prev, snap), snap)
	d.prev = snap
	d.frames++
}

// Resize records new grid dimensions; the next callback re-initializes the
// backend and renders a full frame
func (d *Driver) Resize(width, height int) {
	if d.state == StateStopped {
		return
	}
	d.width = max(width, constants.MinGridWidth)
	d.height = max(height, constants.MinGridHeight)
	if d.state == StateRunning {
		d.resizePending = true
	}
}

// Stop cancels the pending callback and releases the backend
// Safe to call more than once
func (d *Driver) Stop() {
	d.stop(nil)
}

func (d *Driver) fail(err error) {
	core.Logf("engine: render loop stopped: %v", err)
	d.stop(err)
}

func (d *Driver) stop(err error) {
	if d.state == StateStopped {
		return
	}
	d.state = StateStopped
	d.err = err
	if d.scheduled {
		d.win.CancelAnimationFrame(d.frameID)
		d.scheduled = false
	}
	d.backend.Release()
	d.prev = nil

	observers := d.onStop
	d.onStop = nil
	for _, fn := range observers {
		fn(err)
	}
}

// OnStop registers fn to run once when the driver stops, with the error that
// stopped it or nil after Stop; runs immediately if already stopped
func (d *Driver) OnStop(fn func(error)) {
	if d.state == StateStopped {
		fn(d.err)
		return
	}
	d.onStop = append(d.onStop, fn)
}

// State returns the lifecycle phase
func (d *Driver) State() State {
	return d.state
}

// Err returns the error that stopped the driver, nil while running or after Stop
func (d *Driver) Err() error {
	return d.err
}

// Size returns the grid dimensions of the next frame
func (d *Driver) Size() (int, int) {
	return d.width, d.height
}

// Snapshot returns the last rendered frame, nil before the first one
func (d *Driver) Snapshot() *terminal.Snapshot {
	return d.prev
}

// Frames returns the number of frames rendered
func (d *Driver) Frames() int {
	return d.frames
}

// checkRetained panics unless a backend holding per-cell resources matches the grid
func (d *Driver) checkRetained() {
	r, ok := d.backend.(render.Retainer)
	if !ok {
		return
	}
	if n := r.Retained(); n != d.width*d.height {
		terminal.Violation("engine.Initialize", "backend retains %d cells, grid %dx%d", n, d.width, d.height)
	}
}
