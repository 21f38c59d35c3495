package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/host/hosttest"
	"github.com/lixenwraith/webterm/terminal"
)

func newTestAtlas(t *testing.T) (*atlas, *hosttest.Canvas) {
	t.Helper()
	doc := hosttest.NewDocument()
	a, err := newAtlas(doc, DefaultOptions())
	require.NoError(t, err)
	return a, doc.Canvases[0]
}

func TestAtlas_Slots(t *testing.T) {
	a, cv := newTestAtlas(t)
	assert.Equal(t, blankSlot, a.lookup(' ', 0))
	assert.Equal(t, blankSlot, a.lookup(0, 0))

	s := a.lookup('a', 0)
	assert.Equal(t, glyphSlot{index: 2, width: 1}, s)
	assert.Equal(t, s, a.lookup('a', terminal.AttrUnderline), "decorations share the face")
	assert.Equal(t, 3, a.lookup('a', terminal.AttrBold).index, "bold is its own face")

	before := len(cv.Ctx().Ops)
	a.lookup('a', 0)
	assert.Len(t, cv.Ctx().Ops, before, "cached glyph is not redrawn")
}

func TestAtlas_WideGlyphStaysInRow(t *testing.T) {
	a, _ := newTestAtlas(t)
	a.next = constants.AtlasColumns - 1

	s := a.lookup('世', 0)
	assert.Equal(t, 2, s.width)
	assert.Equal(t, constants.AtlasColumns, s.index, "skips the last column")
	assert.Equal(t, constants.AtlasColumns+2, a.next)
}

func TestAtlas_Grows(t *testing.T) {
	a, cv := newTestAtlas(t)
	capacity := a.cols * a.rows
	a.next = capacity
	a.dirty = false
	cv.Ctx().Reset()

	s := a.lookup('z', 0)
	assert.Equal(t, capacity, s.index)
	assert.Equal(t, constants.AtlasInitialRows*2, a.rows)
	assert.True(t, a.dirty)
	assert.Equal(t, int(math.Ceil(float64(a.rows)*a.cellH)), cv.Height)
	// Fallback and the new glyph are redrawn on the resized canvas
	assert.Equal(t, "?z", cv.Ctx().Texts())
}

func TestAtlas_FullUsesFallback(t *testing.T) {
	a, _ := newTestAtlas(t)
	a.next = constants.AtlasMaxGlyphs

	s := a.lookup('q', 0)
	assert.Equal(t, constants.AtlasFallbackSlot, s.index)
}

func TestAtlas_TextureCoversFractionalCells(t *testing.T) {
	a, cv := newTestAtlas(t)
	require.InDelta(t, 19.2, a.cellH, 1e-9)

	// 4 rows of 19.2px need 76.8px; a truncated canvas would clip the last row
	assert.Equal(t, 77, cv.Height)
	assert.Equal(t, 320, cv.Width)
	assert.GreaterOrEqual(t, float64(cv.Height), float64(a.rows)*a.cellH)

	u, v := a.slotUV()
	assert.InDelta(t, 10.0/320, u, 1e-6)
	assert.InDelta(t, 19.2/77, v, 1e-6)
	assert.Less(t, float64(v)*float64(a.rows), 1.0, "last row ends inside the texture")
}
