package render

import (
	"math"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// Canvas paints the grid on a 2D canvas
// Partial frames clear and repaint only the bounding rectangle of the changed cells
type Canvas struct {
	doc    host.Document
	parent host.Element
	canvas host.Canvas
	ctx    host.Context2D
	opts   Options

	width, height int
	cellW, cellH  float64
	cursor        terminal.Cursor
	font          string
}

// NewCanvas creates a canvas in the configured container
func NewCanvas(doc host.Document, opts Options) (*Canvas, error) {
	opts = opts.withDefaults()
	parent, err := container(doc, opts.Container)
	if err != nil {
		return nil, err
	}

	c := &Canvas{doc: doc, parent: parent, opts: opts}
	if err := c.mount(); err != nil {
		return nil, err
	}
	c.cellW, c.cellH = measureContext(c.ctx, opts)
	return c, nil
}

func (c *Canvas) mount() error {
	cv := c.doc.CreateCanvas()
	ctx, err := cv.Context2D()
	if err != nil {
		return surfaceErr("canvas", "%v", err)
	}
	cv.SetAttribute("style", "display: block; background-color: "+c.opts.Theme.Background.CSS()+";")
	c.parent.AppendChild(cv)
	c.canvas, c.ctx = cv, ctx
	return nil
}

// Initialize sizes the canvas for the grid and clears it
func (c *Canvas) Initialize(width, height int) error {
	if c.canvas == nil {
		if err := c.mount(); err != nil {
			return err
		}
	}
	pw := int(math.Ceil(float64(width) * c.cellW))
	ph := int(math.Ceil(float64(height) * c.cellH))
	// Resizing resets context state
	c.canvas.SetSize(pw, ph)
	c.ctx.SetTextBaseline("top")
	c.font = ""

	c.width, c.height = width, height
	c.cursor = terminal.Cursor{}
	c.ctx.ClearRect(0, 0, float64(pw), float64(ph))
	core.Debugf("canvas: initialized %dx%d (%dx%d px)", width, height, pw, ph)
	return nil
}

// Render repaints the full grid or the dirty rectangle
func (c *Canvas) Render(diff terminal.Diff, snap *terminal.Snapshot) {
	checkFrame("canvas.Render", c.width, c.height, diff, snap)

	cur := snap.Cursor()
	var rect terminal.Rect
	if diff.IsFull() {
		rect = terminal.Rect{Width: c.width, Height: c.height}
	} else {
		rect, _ = diff.Bounds()
		for _, p := range cursorRepaint(c.cursor, cur) {
			rect = rect.Union(p)
		}
	}
	c.cursor = cur
	if rect.Empty() {
		return
	}

	c.paintRect(snap, c.widen(snap, rect), cur)
}

// widen grows rect so no wide glyph straddles its left or right edge
func (c *Canvas) widen(snap *terminal.Snapshot, rect terminal.Rect) terminal.Rect {
	left, right := rect.Col, rect.Col+rect.Width
	for row := rect.Row; row < rect.Row+rect.Height; row++ {
		if left > 0 && continuation(snap, row, left) {
			rect = rect.Union(terminal.Position{Row: row, Col: left - 1})
		}
		if right < c.width && continuation(snap, row, right) {
			rect = rect.Union(terminal.Position{Row: row, Col: right})
		}
	}
	return rect
}

func (c *Canvas) paintRect(snap *terminal.Snapshot, rect terminal.Rect, cur terminal.Cursor) {
	x0, y0 := float64(rect.Col)*c.cellW, float64(rect.Row)*c.cellH
	c.ctx.ClearRect(x0, y0, float64(rect.Width)*c.cellW, float64(rect.Height)*c.cellH)

	// Backgrounds first so wide glyphs are not overdrawn by their trailing cell
	for row := rect.Row; row < rect.Row+rect.Height; row++ {
		for col := rect.Col; col < rect.Col+rect.Width; col++ {
			p := c.paintAt(snap, row, col, cur)
			if !p.bgSet {
				continue
			}
			c.ctx.SetFillStyle(p.bg.CSS())
			c.ctx.FillRect(float64(col)*c.cellW, float64(row)*c.cellH, c.cellW, c.cellH)
		}
	}

	for row := rect.Row; row < rect.Row+rect.Height; row++ {
		for col := rect.Col; col < rect.Col+rect.Width; col++ {
			if continuation(snap, row, col) {
				continue
			}
			p := c.paintAt(snap, row, col, cur)
			if !p.visible() {
				continue
			}
			c.drawGlyph(p, row, col)
		}
	}
}

func (c *Canvas) paintAt(snap *terminal.Snapshot, row, col int, cur terminal.Cursor) paint {
	return resolve(c.opts.Theme, snap.At(row, col), cursorAt(cur, row, col))
}

func (c *Canvas) drawGlyph(p paint, row, col int) {
	x, y := float64(col)*c.cellW, float64(row)*c.cellH
	span := float64(p.cell.Width()) * c.cellW
	ink := p.inkFg().CSS()

	hasGlyph := !p.cell.Blank()
	under := p.attrs.Has(terminal.AttrUnderline)
	strike := p.attrs.Has(terminal.AttrStrikethrough)
	if !hasGlyph && !under && !strike {
		return
	}

	c.ctx.SetFillStyle(ink)
	if hasGlyph {
		if font := c.opts.Font(p.attrs & terminal.AttrFont); font != c.font {
			c.ctx.SetFont(font)
			c.font = font
		}
		c.ctx.FillText(p.cell.Glyph(), x, y)
	}

	thick := math.Max(1, c.cellH*constants.DecorationThickness)
	if under {
		c.ctx.FillRect(x, y+c.cellH*constants.UnderlineOffset, span, thick)
	}
	if strike {
		c.ctx.FillRect(x, y+c.cellH*constants.StrikethroughOffset, span, thick)
	}
}

// CellSize returns the measured cell size
func (c *Canvas) CellSize() (float64, float64) {
	return c.cellW, c.cellH
}

// Target returns the canvas element
func (c *Canvas) Target() host.Element {
	if c.canvas == nil {
		return c.parent
	}
	return c.canvas
}

// Release removes the canvas from the page
func (c *Canvas) Release() {
	if c.canvas == nil {
		return
	}
	c.canvas.Remove()
	c.canvas, c.ctx = nil, nil
	c.width, c.height = 0, 0
}
