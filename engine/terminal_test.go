package engine_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/webterm/config"
	"github.com/lixenwraith/webterm/engine"
	"github.com/lixenwraith/webterm/events"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/host/hosttest"
	"github.com/lixenwraith/webterm/render"
	"github.com/lixenwraith/webterm/terminal"
)

func newDOMTerminal(t *testing.T, win *hosttest.Window, opts engine.Options) (*engine.Terminal, *render.DOM) {
	t.Helper()
	ropts := render.DefaultOptions()
	ropts.Container = opts.Container
	dom, err := render.NewDOM(win.Doc, ropts)
	require.NoError(t, err)
	term, err := engine.New(win, dom, opts)
	require.NoError(t, err)
	return term, dom
}

func isClosed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestTerminal_FixedSize(t *testing.T) {
	win := hosttest.NewWindow()
	term, dom := newDOMTerminal(t, win, engine.Options{Width: 80, Height: 24})

	require.NoError(t, term.DrawWeb(func(f *terminal.Frame) {
		f.SetString(0, 0, "hello", tcell.StyleDefault)
	}))
	win.Flush()

	assert.Equal(t, engine.StateRunning, term.State())
	w, h := term.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
	assert.Equal(t, 80*24, dom.Retained())
	assert.Equal(t, "h", win.Doc.BodyElement().Find("span")[0].Text)

	// Fixed grids ignore window resizes
	win.Width = 1600
	win.Dispatch(&host.RawEvent{Type: "resize"})
	win.Flush()
	assert.Equal(t, 80*24, dom.Retained())
}

func TestTerminal_FitsWindowAndFollowsResize(t *testing.T) {
	win := hosttest.NewWindow()
	term, dom := newDOMTerminal(t, win, engine.Options{})
	require.NoError(t, term.DrawWeb(nil))
	win.Flush()

	// 800x600 with the 10x19 fallback cell
	w, h := term.Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 31, h)
	assert.Equal(t, 80*31, dom.Retained())
	win.Doc.BodyElement().ResetCounters()

	win.Width = 1000
	win.Dispatch(&host.RawEvent{Type: "resize"})
	w, _ = term.Size()
	assert.Equal(t, 100, w)

	win.Flush()
	assert.Equal(t, 100*31, dom.Retained())
	assert.Len(t, win.Doc.BodyElement().Find("span"), 100*31)
	text, _ := win.Doc.BodyElement().Writes()
	assert.Equal(t, 100*31, text, "resize renders a full frame")
}

func TestTerminal_FitsContainer(t *testing.T) {
	win := hosttest.NewWindow()
	win.Doc.AddContainer("term", host.Bounds{Width: 200, Height: 190})
	term, _ := newDOMTerminal(t, win, engine.Options{Container: "term", Height: 5})

	w, h := term.Size()
	assert.Equal(t, 20, w)
	assert.Equal(t, 5, h, "fixed dimension kept")
}

func TestTerminal_MobileUsesScreen(t *testing.T) {
	win := hosttest.NewWindow()
	win.Mobile = true
	term, _ := newDOMTerminal(t, win, engine.Options{})

	w, h := term.Size()
	assert.Equal(t, 192, w)
	assert.Equal(t, 56, h)
}

func TestTerminal_DeliversInput(t *testing.T) {
	win := hosttest.NewWindow()
	term, _ := newDOMTerminal(t, win, engine.Options{PreventDefault: true})
	require.NoError(t, term.DrawWeb(nil))
	win.Flush()

	var keys []terminal.KeyEvent
	var mice []terminal.MouseEvent
	term.OnKeyEvent(func(ev terminal.KeyEvent) { keys = append(keys, ev) })
	term.OnMouseEvent(func(ev terminal.MouseEvent) { mice = append(mice, ev) })

	win.Dispatch(&host.RawEvent{Type: "keydown", Key: "a"})
	win.Dispatch(&host.RawEvent{Type: "keydown", Key: "Enter"})
	win.Doc.BodyElement().Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 15, Y: 25})

	assert.Equal(t, []terminal.KeyEvent{
		{Key: terminal.KeyRune, Rune: 'a'},
		{Key: terminal.KeyEnter},
	}, keys)
	require.Len(t, mice, 1)
	assert.Equal(t, terminal.Position{Row: 1, Col: 1}, mice[0].Position())
	assert.Equal(t, 2, term.Registry().HandlerCount(events.CategoryKey)+term.Registry().HandlerCount(events.CategoryMouse))
}

func TestTerminal_Stop(t *testing.T) {
	win := hosttest.NewWindow()
	term, dom := newDOMTerminal(t, win, engine.Options{})
	require.NoError(t, term.DrawWeb(nil))
	win.Flush()

	term.Stop()
	term.Stop()
	assert.True(t, isClosed(term.Done()))
	assert.Equal(t, engine.StateStopped, term.State())
	assert.Zero(t, dom.Retained())
	assert.Zero(t, win.ListenerCount("keydown"))
	assert.Zero(t, win.ListenerCount("resize"))
	assert.Zero(t, win.Pending())
	assert.ErrorIs(t, term.DrawWeb(nil), engine.ErrStopped)
}

func TestTerminal_InitFailureStops(t *testing.T) {
	quietLogs(t)
	win := hosttest.NewWindow()
	term, err := engine.New(win, &fakeBackend{initErr: terminal.ErrSurfaceUnavailable}, engine.Options{})
	require.NoError(t, err)
	require.NoError(t, term.DrawWeb(nil))
	win.Flush()

	assert.True(t, isClosed(term.Done()))
	assert.ErrorIs(t, term.Err(), terminal.ErrSurfaceUnavailable)
}

func TestTerminal_NoHost(t *testing.T) {
	_, err := engine.New(nil, &fakeBackend{}, engine.Options{})
	assert.ErrorIs(t, err, engine.ErrNoHost)
	_, err = engine.New(hosttest.NewWindow(), nil, engine.Options{})
	assert.ErrorIs(t, err, engine.ErrNoHost)
}

func TestNewFromConfig_FallsBack(t *testing.T) {
	quietLogs(t)
	cfg, err := config.Decode(`
backend = "webgl2"
fallback = ["canvas", "dom"]
[grid]
width = 40
height = 10
`)
	require.NoError(t, err)

	win := hosttest.NewWindow()
	win.Doc.NoWebGL2 = true
	term, err := engine.NewFromConfig(win, cfg)
	require.NoError(t, err)
	require.NoError(t, term.DrawWeb(nil))
	win.Flush()

	canvases := win.Doc.BodyElement().Find("canvas")
	require.Len(t, canvases, 1)
	assert.Equal(t, 400, win.Doc.Canvases[1].Width)
	w, h := term.Size()
	assert.Equal(t, 40, w)
	assert.Equal(t, 10, h)
}

func TestNewFromConfig_Invalid(t *testing.T) {
	quietLogs(t)
	cfg := config.DefaultConfig()
	cfg.Backend = "svg"
	_, err := engine.NewFromConfig(hosttest.NewWindow(), cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	win := hosttest.NewWindow()
	win.Doc.RemoveBody()
	_, err = engine.NewFromConfig(win, config.DefaultConfig())
	assert.ErrorIs(t, err, terminal.ErrSurfaceUnavailable)
}

type counter struct {
	frames int
	keys   int
	clicks int
}

func TestWithState(t *testing.T) {
	win := hosttest.NewWindow()
	term, _ := newDOMTerminal(t, win, engine.Options{Width: 4, Height: 1})
	st := engine.WithState(term, &counter{})

	st.OnKeyEvent(func(c *counter, ev terminal.KeyEvent) { c.keys++ })
	st.OnMouseEvent(func(c *counter, ev terminal.MouseEvent) { c.clicks++ })
	var seen *counter
	require.NoError(t, st.DrawWeb(func(c *counter, f *terminal.Frame) {
		c.frames++
		seen = c
		f.SetString(0, 0, string(rune('0'+c.keys)), tcell.StyleDefault)
	}))

	win.Flush()
	win.Dispatch(&host.RawEvent{Type: "keydown", Key: "x"})
	win.Flush()

	require.NotNil(t, seen)
	assert.Equal(t, 2, seen.frames)
	assert.Equal(t, 1, seen.keys)
	assert.Equal(t, "1", win.Doc.BodyElement().Find("span")[0].Text)
	assert.Same(t, term, st.Terminal())
}

// targetBackend is a fakeBackend that receives pointer events on el
type targetBackend struct {
	fakeBackend
	el host.Element
}

func (b *targetBackend) Target() host.Element { return b.el }

func newLinkTerminal(t *testing.T, win *hosttest.Window, opts engine.Options) *hosttest.Element {
	t.Helper()
	el := win.Doc.AddContainer("term", host.Bounds{Width: 400, Height: 200})
	term, err := engine.New(win, &targetBackend{el: el}, opts)
	require.NoError(t, err)
	require.NoError(t, term.DrawWeb(func(f *terminal.Frame) {
		f.SetString(0, 0, "see", tcell.StyleDefault)
		f.SetHyperlink(0, 1, "docs", "https://go.dev/doc", tcell.StyleDefault)
	}))
	win.Flush()
	return el
}

func TestTerminal_ClickFollowsLink(t *testing.T) {
	win := hosttest.NewWindow()
	el := newLinkTerminal(t, win, engine.Options{Width: 8, Height: 2, Hyperlinks: true})

	el.Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 5, Y: 5})
	el.Dispatch(&host.RawEvent{Type: "mousemove", Buttons: 1, X: 15, Y: 25})
	el.Dispatch(&host.RawEvent{Type: "mousedown", Button: 2, X: 15, Y: 25})
	assert.Empty(t, win.Opened, "plain cell, drag and right button open nothing")

	el.Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 15, Y: 25})
	assert.Equal(t, []hosttest.OpenedURL{{URL: "https://go.dev/doc", NewTab: true}}, win.Opened)
}

func TestTerminal_ClickLinkDisabled(t *testing.T) {
	win := hosttest.NewWindow()
	el := newLinkTerminal(t, win, engine.Options{Width: 8, Height: 2})

	el.Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 15, Y: 25})
	assert.Empty(t, win.Opened)
}

func TestTerminal_BlockedPopupLogged(t *testing.T) {
	logs := quietLogs(t)
	win := hosttest.NewWindow()
	win.BlockPopups = true
	el := newLinkTerminal(t, win, engine.Options{Width: 8, Height: 2, Hyperlinks: true})

	el.Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 15, Y: 25})
	assert.Empty(t, win.Opened)
	assert.Contains(t, logs.String(), host.ErrPopupBlocked.Error())
}

func TestTerminal_DOMFollowsLinksItself(t *testing.T) {
	win := hosttest.NewWindow()
	term, _ := newDOMTerminal(t, win, engine.Options{Width: 8, Height: 2, Hyperlinks: true})
	require.NoError(t, term.DrawWeb(func(f *terminal.Frame) {
		f.SetHyperlink(0, 0, "docs", "https://go.dev/doc", tcell.StyleDefault)
	}))
	win.Flush()
	require.Len(t, win.Doc.BodyElement().Find("a"), 4)

	win.Doc.BodyElement().Dispatch(&host.RawEvent{Type: "mousedown", Button: 0, X: 5, Y: 5})
	assert.Empty(t, win.Opened, "anchors handle the click")
}

func TestOptionsFromConfig(t *testing.T) {
	cfg, err := config.Decode(`
container = "term"
hyperlinks = true
mouse_selection = true
[grid]
width = 40
`)
	require.NoError(t, err)
	assert.Equal(t, engine.Options{
		Width:          40,
		Container:      "term",
		PreventDefault: true,
		Hyperlinks:     true,
		MouseSelection: true,
	}, engine.OptionsFromConfig(cfg))
}
