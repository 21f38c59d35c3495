package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/webterm/config"
	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/events"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/render"
	"github.com/lixenwraith/webterm/terminal"
)

var (
	// ErrStopped is returned when drawing on a stopped terminal
	ErrStopped = errors.New("terminal stopped")
	// ErrNoHost reports a missing window or backend
	ErrNoHost = errors.New("no host")
)

// Options configures a Terminal
type Options struct {
	// Width, Height fix the grid; 0 fits that dimension to the container
	Width, Height int
	// Container is the element id whose size the grid fits; empty uses the window
	Container string
	// PreventDefault suppresses the browser action of decoded keys
	PreventDefault bool
	// Hyperlinks opens cell links on left click for backends that do not render them
	Hyperlinks bool
	// MouseSelection leaves native text selection enabled
	MouseSelection bool
}

// OptionsFromConfig extracts the terminal options of cfg
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Width:          cfg.Grid.Width,
		Height:         cfg.Grid.Height,
		Container:      cfg.Container,
		PreventDefault: cfg.PreventDefault,
		Hyperlinks:     cfg.Hyperlinks,
		MouseSelection: cfg.MouseSelection,
	}
}

// Terminal couples a backend to the render loop and the input bridge
type Terminal struct {
	win      host.Window
	backend  terminal.Backend
	opts     Options
	registry *events.Registry
	bridge   *events.Bridge
	driver   *Driver
	target   host.Element

	resize host.Listener
	done   chan struct{}
}

// New wires backend into win. The backend is initialized on the first animation callback
func New(win host.Window, backend terminal.Backend, opts Options) (*Terminal, error) {
	if win == nil || backend == nil {
		return nil, fmt.Errorf("engine: %w", ErrNoHost)
	}

	t := &Terminal{
		win:      win,
		backend:  backend,
		opts:     opts,
		registry: events.NewRegistry(),
		done:     make(chan struct{}),
	}
	if tg, ok := backend.(render.Targeter); ok {
		t.target = tg.Target()
	}

	width, height := t.fit()
	t.driver = NewDriver(win, backend, width, height, nil)
	bopts := events.BridgeOptions{
		PreventDefault: opts.PreventDefault,
		MouseSelection: opts.MouseSelection,
	}
	if lr, ok := backend.(render.LinkRenderer); opts.Hyperlinks && !(ok && lr.RendersLinks()) {
		bopts.Intercept = t.followLink
	}
	t.bridge = events.NewBridge(win, t.target, t.registry, t.geometry, bopts)
	t.resize = win.Listen("resize", t.handleResize)
	t.driver.OnStop(t.shutdown)

	core.Debugf("engine: terminal %dx%d", width, height)
	return t, nil
}

// NewFromConfig builds the configured backend, falling back through cfg.Fallback,
// and wires it into win
func NewFromConfig(win host.Window, cfg *config.Config) (*Terminal, error) {
	if win == nil {
		return nil, fmt.Errorf("engine: %w", ErrNoHost)
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	core.SetVerbose(cfg.Verbose)

	ropts, err := cfg.RenderOptions()
	if err != nil {
		return nil, err
	}
	kinds, err := cfg.Kinds()
	if err != nil {
		return nil, err
	}
	backend, kind, err := render.NewWithFallback(win.Document(), ropts, kinds...)
	if err != nil {
		return nil, fmt.Errorf("engine: no backend: %w", err)
	}
	core.Debugf("engine: %s backend", kind)
	return New(win, backend, OptionsFromConfig(cfg))
}

// DrawWeb installs draw and starts the render loop
// Calling it again replaces the draw callback
func (t *Terminal) DrawWeb(draw func(f *terminal.Frame)) error {
	if t.driver.State() == StateStopped {
		return ErrStopped
	}
	t.driver.SetDraw(draw)
	t.driver.Start()
	return nil
}

// OnKeyEvent appends a key handler
func (t *Terminal) OnKeyEvent(fn func(terminal.KeyEvent)) {
	t.registry.OnKey(fn)
}

// OnMouseEvent appends a mouse handler
func (t *Terminal) OnMouseEvent(fn func(terminal.MouseEvent)) {
	t.registry.OnMouse(fn)
}

// Registry returns the input handler registry
func (t *Terminal) Registry() *events.Registry {
	return t.registry
}

// Stop ends the render loop and releases the backend and listeners
func (t *Terminal) Stop() {
	t.driver.Stop()
}

// Size returns the grid dimensions
func (t *Terminal) Size() (int, int) {
	return t.driver.Size()
}

// State returns the render loop phase
func (t *Terminal) State() State {
	return t.driver.State()
}

// Err returns the error that stopped the render loop
func (t *Terminal) Err() error {
	return t.driver.Err()
}

// Frames returns the number of frames rendered
func (t *Terminal) Frames() int {
	return t.driver.Frames()
}

// Done is closed once the terminal stops
func (t *Terminal) Done() <-chan struct{} {
	return t.done
}

func (t *Terminal) shutdown(error) {
	t.bridge.Close()
	t.resize.Release()
	close(t.done)
}

// followLink opens the link under a left press in a new tab
func (t *Terminal) followLink(ev terminal.MouseEvent) {
	if ev.Action != terminal.MouseActionPress || ev.Button != terminal.MouseBtnLeft {
		return
	}
	snap := t.driver.Snapshot()
	if snap == nil || !snap.InBounds(ev.Row, ev.Col) {
		return
	}
	link := snap.At(ev.Row, ev.Col).Link
	if link == "" {
		return
	}
	if err := t.win.OpenURL(link, true); err != nil {
		core.Logf("engine: %v", err)
	}
}

func (t *Terminal) handleResize(*host.RawEvent) {
	if t.opts.Width > 0 && t.opts.Height > 0 {
		return
	}
	width, height := t.fit()
	if cw, ch := t.driver.Size(); cw == width && ch == height {
		return
	}
	t.driver.Resize(width, height)
}

// fit returns the grid size from the options, filling unset dimensions from
// the space available to the grid
func (t *Terminal) fit() (int, int) {
	width, height := t.opts.Width, t.opts.Height
	if width > 0 && height > 0 {
		return width, height
	}

	cellW, cellH := t.backend.CellSize()
	pw, ph := t.viewport()
	cols, rows := constants.FallbackGridWidth, constants.FallbackGridHeight
	if cellW > 0 && cellH > 0 && pw >= cellW && ph >= cellH {
		cols = max(int(pw/cellW), constants.MinGridWidth)
		rows = max(int(ph/cellH), constants.MinGridHeight)
	} else {
		core.Debugf("engine: viewport %gx%g unusable, using %dx%d", pw, ph, cols, rows)
	}
	if width <= 0 {
		width = cols
	}
	if height <= 0 {
		height = rows
	}
	return width, height
}

// viewport returns the pixel area available to the grid
// Mobile browsers report the screen, since their window size changes with the
// on-screen keyboard
func (t *Terminal) viewport() (float64, float64) {
	if t.win.IsMobile() {
		return t.win.ScreenSize()
	}
	if t.opts.Container != "" {
		if doc := t.win.Document(); doc != nil {
			if el, ok := doc.ElementByID(t.opts.Container); ok {
				if b := el.Bounds(); b.Width > 0 && b.Height > 0 {
					return b.Width, b.Height
				}
			}
		}
	}
	return t.win.InnerSize()
}

func (t *Terminal) geometry() events.Geometry {
	cellW, cellH := t.backend.CellSize()
	cols, rows := t.driver.Size()
	g := events.Geometry{CellWidth: cellW, CellHeight: cellH, Cols: cols, Rows: rows}
	if t.target != nil {
		b := t.target.Bounds()
		g.Left, g.Top = b.Left, b.Top
	}
	return g
}
