package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/webterm/config"
	"github.com/lixenwraith/webterm/engine"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
	"github.com/lixenwraith/webterm/terminal/tui"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	labelStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	valueStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	linkStyle   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Underline(true)
)

const projectURL = "https://github.com/lixenwraith/webterm"

// attributeSamples shows one word per supported text attribute
var attributeSamples = []struct {
	label string
	style tcell.Style
}{
	{"bold", tcell.StyleDefault.Bold(true)},
	{"dim", tcell.StyleDefault.Dim(true)},
	{"italic", tcell.StyleDefault.Italic(true)},
	{"underline", tcell.StyleDefault.Underline(true)},
	{"strike", tcell.StyleDefault.StrikeThrough(true)},
	{"reverse", tcell.StyleDefault.Reverse(true)},
}

// demo is the state shared by the draw callback and the input handlers
type demo struct {
	lastKey string
	mouse   terminal.MouseEvent
	hovered bool
	clicks  int
	frames  int
	stop    func()
}

func (d *demo) onKey(ev terminal.KeyEvent) {
	if ev.Key == terminal.KeyEscape {
		if d.stop != nil {
			d.stop()
		}
		return
	}
	d.lastKey = ev.String()
}

func (d *demo) onMouse(ev terminal.MouseEvent) {
	d.mouse = ev
	d.hovered = true
	if ev.Action == terminal.MouseActionPress {
		d.clicks++
	}
}

func (d *demo) draw(f *terminal.Frame) {
	d.frames++
	body := tui.NewRegion(f).Card("webterm", tui.LineRounded, borderStyle)

	mouse := ""
	if d.hovered {
		mouse = d.mouse.String()
	}
	field(body, 0, "key", d.lastKey)
	field(body, 1, "mouse", mouse)
	field(body, 2, "clicks", fmt.Sprint(d.clicks))
	field(body, 3, "frame", fmt.Sprint(d.frames))
	body.Spinner(body.W-1, 0, d.frames, valueStyle)

	for i := 0; i < 16; i++ {
		body.Text(i*2, 5, "  ", tcell.StyleDefault.Background(tcell.PaletteColor(i)))
	}

	x := 0
	for _, s := range attributeSamples {
		x += body.Text(x, 7, s.label, s.style) + 1
	}

	x = body.Text(0, 8, "source: ", labelStyle)
	body.Link(x, 8, "github.com/lixenwraith/webterm", projectURL, linkStyle)
	body.Text(0, 9, "wide: 世界 ｗｅｂ  box: ┌─┐ braille: ⣿⡇", valueStyle)
	body.Progress(0, 10, min(body.W, 32), float64(d.frames%100)/100, valueStyle)
	body.TextCenter(body.H-1, "Esc stops", labelStyle)

	if d.hovered {
		f.ShowCursor(d.mouse.Col, d.mouse.Row)
	} else {
		f.HideCursor()
	}
}

func field(r tui.Region, y int, label, value string) {
	r.Text(0, y, label, labelStyle)
	r.Text(8, y, value, valueStyle)
}

// parseFlags overlays command line settings on cfg
func parseFlags(args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet("webterm", flag.ContinueOnError)
	backend := fs.String("backend", cfg.Backend, "Render backend: dom, canvas, webgl2")
	fallback := fs.String("fallback", strings.Join(cfg.Fallback, ","), "Comma separated backends tried when the first is unavailable")
	container := fs.String("container", cfg.Container, "Element id hosting the terminal, empty for <body>")
	fontSize := fs.Float64("font-size", cfg.Font.Size, "Font size in CSS pixels")
	verbose := fs.Bool("verbose", cfg.Verbose, "Log dropped events and backend selection")
	links := fs.Bool("links", cfg.Hyperlinks, "Open hyperlinks on click on canvas and webgl2")
	selection := fs.Bool("select", cfg.MouseSelection, "Keep native text selection")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg.Backend = *backend
	cfg.Fallback = nil
	for _, name := range strings.Split(*fallback, ",") {
		if name = strings.TrimSpace(name); name != "" {
			cfg.Fallback = append(cfg.Fallback, name)
		}
	}
	cfg.Container = *container
	cfg.Font.Size = *fontSize
	cfg.Verbose = *verbose
	cfg.Hyperlinks = *links
	cfg.MouseSelection = *selection
	return nil
}

// run mounts the demo terminal on win and starts its render loop
func run(win host.Window, cfg *config.Config) (*engine.Terminal, error) {
	term, err := engine.NewFromConfig(win, cfg)
	if err != nil {
		return nil, err
	}

	st := engine.WithState(term, &demo{stop: term.Stop})
	st.OnKeyEvent((*demo).onKey)
	st.OnMouseEvent((*demo).onMouse)
	if err := st.DrawWeb((*demo).draw); err != nil {
		return nil, err
	}
	return term, nil
}
