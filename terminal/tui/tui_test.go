package tui_test

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/webterm/terminal"
	"github.com/lixenwraith/webterm/terminal/tui"
)

func row(f *terminal.Frame, y int) string {
	w, _ := f.Size()
	var out []rune
	for x := 0; x < w; x++ {
		r := f.Cell(x, y).Rune
		if r == 0 {
			r = '.'
		}
		out = append(out, r)
	}
	return string(out)
}

func TestRegion_SubClips(t *testing.T) {
	f := terminal.NewFrame(10, 5)
	r := tui.NewRegion(f)

	sub := r.Sub(-2, 3, 6, 10)
	assert.Equal(t, terminal.Rect{Col: 0, Row: 3, Width: 4, Height: 2}, sub.Rect())
	assert.Equal(t, terminal.Rect{Col: 1, Row: 1, Width: 8, Height: 3}, r.Inset(1).Rect())
	assert.True(t, r.Inset(5).Rect().Empty())
}

func TestRegion_Text(t *testing.T) {
	f := terminal.NewFrame(8, 1)
	r := tui.NewRegion(f).Sub(2, 0, 5, 1)

	assert.Equal(t, 4, r.Text(0, 0, "a世b", tcell.StyleDefault))
	assert.Equal(t, "..a世.b..", row(f, 0))

	// The wide rune no longer fits
	f = terminal.NewFrame(8, 1)
	r = tui.NewRegion(f).Sub(0, 0, 3, 1)
	assert.Equal(t, 2, r.Text(0, 0, "ab世", tcell.StyleDefault))
	assert.Equal(t, rune(0), f.Cell(2, 0).Rune)

	r.Text(0, 4, "x", tcell.StyleDefault)
	r.TextRight(0, "z", tcell.StyleDefault)
	assert.Equal(t, 'z', f.Cell(2, 0).Rune)
}

func TestRegion_Card(t *testing.T) {
	f := terminal.NewFrame(10, 4)
	inner := tui.NewRegion(f).Card("ok", tui.LineSingle, tcell.StyleDefault)

	assert.Equal(t, "┌── ok ──┐", row(f, 0))
	assert.Equal(t, "│........│", row(f, 1))
	assert.Equal(t, "└────────┘", row(f, 3))
	assert.Equal(t, terminal.Rect{Col: 1, Row: 1, Width: 8, Height: 2}, inner.Rect())
	assert.True(t, f.Cell(4, 0).Attrs&terminal.AttrBold != 0)
}

func TestRegion_Progress(t *testing.T) {
	f := terminal.NewFrame(4, 1)
	r := tui.NewRegion(f)

	r.Progress(0, 0, 4, 0.625, tcell.StyleDefault)
	assert.Equal(t, "██▌░", row(f, 0))

	r.Progress(0, 0, 4, 2, tcell.StyleDefault)
	assert.Equal(t, "████", row(f, 0))
}

func TestRegion_Link(t *testing.T) {
	f := terminal.NewFrame(8, 1)
	r := tui.NewRegion(f).Sub(2, 0, 4, 1)

	assert.Equal(t, 4, r.Link(0, 0, "docs!", "https://go.dev", tcell.StyleDefault))
	assert.Equal(t, "..docs..", row(f, 0))
	assert.Empty(t, f.Cell(1, 0).Link)
	for x := 2; x < 6; x++ {
		assert.Equal(t, "https://go.dev", f.Cell(x, 0).Link, "col %d", x)
	}
	assert.Empty(t, f.Cell(6, 0).Link, "clipped text carries no link")
}
