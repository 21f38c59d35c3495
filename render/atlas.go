package render

import (
	"math"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
	"github.com/mattn/go-runewidth"
)

type glyphKey struct {
	r    rune
	face terminal.Attr
}

// glyphSlot locates a cached glyph; wide glyphs span index and index+1
type glyphSlot struct {
	index int
	width int
}

var blankSlot = glyphSlot{index: 0, width: 1}

// atlas rasterizes glyphs white-on-transparent into a grid of cell-sized
// slots on an offscreen canvas, uploaded as the WebGL glyph texture
type atlas struct {
	canvas host.Canvas
	ctx    host.Context2D
	opts   Options

	cellW, cellH float64
	cols, rows   int
	texW, texH   int

	slots   map[glyphKey]glyphSlot
	entries []glyphKey
	next    int
	dirty   bool
}

func newAtlas(doc host.Document, opts Options) (*atlas, error) {
	cv := doc.CreateCanvas()
	ctx, err := cv.Context2D()
	if err != nil {
		return nil, surfaceErr("atlas", "%v", err)
	}
	a := &atlas{
		canvas: cv,
		ctx:    ctx,
		opts:   opts,
		cols:   constants.AtlasColumns,
		rows:   constants.AtlasInitialRows,
		slots:  make(map[glyphKey]glyphSlot),
	}
	a.cellW, a.cellH = measureContext(ctx, opts)
	a.resize()

	// Slot 0 stays empty for blanks; slot 1 holds the fallback glyph
	a.next = constants.AtlasFallbackSlot
	fallback := glyphKey{r: '?'}
	a.slots[fallback] = glyphSlot{index: a.next, width: 1}
	a.entries = append(a.entries, fallback)
	a.draw(fallback, a.next)
	a.next++
	return a, nil
}

// resize sizes the canvas for the current row count; the canvas is cleared
func (a *atlas) resize() {
	a.texW = int(math.Ceil(float64(a.cols) * a.cellW))
	a.texH = int(math.Ceil(float64(a.rows) * a.cellH))
	a.canvas.SetSize(a.texW, a.texH)
	a.ctx.SetTextBaseline("top")
	a.ctx.SetFillStyle("#ffffff")
	a.dirty = true
}

// slotUV returns the texture coordinate extent of one slot
func (a *atlas) slotUV() (float32, float32) {
	return float32(a.cellW / float64(a.texW)), float32(a.cellH / float64(a.texH))
}

// lookup returns the slot for r in the given face, rasterizing on first use
func (a *atlas) lookup(r rune, face terminal.Attr) glyphSlot {
	if r == 0 || r == ' ' {
		return blankSlot
	}
	key := glyphKey{r: r, face: face & terminal.AttrFont}
	if s, ok := a.slots[key]; ok {
		return s
	}

	width := 1
	if runewidth.RuneWidth(r) == 2 {
		width = 2
	}
	// Both halves of a wide glyph share one atlas row
	if width == 2 && a.next%a.cols == a.cols-1 {
		a.next++
	}
	if a.next+width > a.cols*a.rows && !a.grow(a.next+width) {
		core.Debugf("atlas: full, %q uses fallback", r)
		return a.slots[glyphKey{r: '?'}]
	}

	s := glyphSlot{index: a.next, width: width}
	a.next += width
	a.slots[key] = s
	a.entries = append(a.entries, key)
	a.draw(key, s.index)
	return s
}

// grow doubles the row count until need slots fit, redrawing every cached glyph
func (a *atlas) grow(need int) bool {
	maxRows := constants.AtlasMaxGlyphs / a.cols
	if need > maxRows*a.cols {
		return false
	}
	for a.rows*a.cols < need {
		a.rows = min(a.rows*2, maxRows)
	}
	a.resize()
	for _, key := range a.entries {
		a.draw(key, a.slots[key].index)
	}
	return true
}

func (a *atlas) draw(key glyphKey, slot int) {
	x := float64(slot%a.cols) * a.cellW
	y := float64(slot/a.cols) * a.cellH
	a.ctx.SetFont(a.opts.Font(key.face))
	a.ctx.FillText(string(key.r), x, y)
	a.dirty = true
}
