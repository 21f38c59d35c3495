package render

import (
	"fmt"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/terminal"
)

// paint is a cell resolved against the theme and cursor, ready to draw
type paint struct {
	cell  terminal.Cell
	fg    terminal.RGB
	bg    terminal.RGB
	bgSet bool
	attrs terminal.Attr
}

// resolve applies theme defaults and reverse video; the cursor cell is shown reversed
func resolve(theme terminal.Theme, c terminal.Cell, cursor bool) paint {
	if cursor {
		c.Attrs ^= terminal.AttrReverse
	}
	fg, bg, bgSet := theme.CellColors(c)
	return paint{cell: c, fg: fg, bg: bg, bgSet: bgSet, attrs: c.Attrs}
}

// visible reports whether a glyph or decoration is drawn over the background
func (p paint) visible() bool {
	return !p.attrs.Has(terminal.AttrHidden)
}

// inkFg returns the foreground with dim applied as a blend toward the background
func (p paint) inkFg() terminal.RGB {
	if p.attrs.Has(terminal.AttrDim) {
		return p.fg.Blend(p.bg, constants.DimBlend)
	}
	return p.fg
}

// continuation reports whether (row, col) is the trailing half of a wide glyph
func continuation(snap *terminal.Snapshot, row, col int) bool {
	if col == 0 {
		return false
	}
	return snap.At(row, col).Rune == 0 && snap.At(row, col-1).Width() == 2
}

// cursorAt reports whether the visible cursor sits at (row, col)
func cursorAt(cur terminal.Cursor, row, col int) bool {
	return cur.Visible && cur.Y == row && cur.X == col
}

// cursorRepaint lists the cells to repaint when the cursor moves or toggles
func cursorRepaint(prev, curr terminal.Cursor) []terminal.Position {
	if prev == curr {
		return nil
	}
	var out []terminal.Position
	if prev.Visible {
		out = append(out, terminal.Position{Row: prev.Y, Col: prev.X})
	}
	if curr.Visible && (!prev.Visible || prev.X != curr.X || prev.Y != curr.Y) {
		out = append(out, terminal.Position{Row: curr.Y, Col: curr.X})
	}
	return out
}

// checkFrame panics unless snap matches the initialized grid and every position is inside it
func checkFrame(op string, width, height int, diff terminal.Diff, snap *terminal.Snapshot) {
	if snap == nil {
		terminal.Violation(op, "nil snapshot")
	}
	if snap.Width() != width || snap.Height() != height {
		terminal.Violation(op, "snapshot %dx%d, grid %dx%d", snap.Width(), snap.Height(), width, height)
	}
	if err := diff.Validate(snap); err != nil {
		panic(err)
	}
}

func surfaceErr(what, format string, args ...any) error {
	return fmt.Errorf("%s: %s: %w", what, fmt.Sprintf(format, args...), terminal.ErrSurfaceUnavailable)
}
