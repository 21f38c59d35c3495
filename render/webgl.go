package render

import (
	"math"
	"slices"

	"github.com/lixenwraith/webterm/constants"
	"github.com/lixenwraith/webterm/core"
	"github.com/lixenwraith/webterm/host"
	"github.com/lixenwraith/webterm/terminal"
)

// WebGL draws the whole grid with one instanced draw call per frame
// Each cell owns one instance record; partial frames rewrite only the
// changed records and upload them as contiguous runs
type WebGL struct {
	parent host.Element
	canvas host.Canvas
	gl     host.GL
	atlas  *atlas
	opts   Options

	program  host.GLObject
	vao      host.GLObject
	buffer   host.GLObject
	texture  host.GLObject
	uGrid    host.GLObject
	uCell    host.GLObject
	uAtlas   host.GLObject
	uAtlasGr host.GLObject
	uSlot    host.GLObject

	records []float32
	dirty   []int

	width, height int
	cursor        terminal.Cursor
	released      bool
	// stale is set while frames are written without reaching the GPU
	stale bool
}

// NewWebGL creates a WebGL2 canvas, compiles the cell program and prepares the glyph atlas
func NewWebGL(doc host.Document, opts Options) (*WebGL, error) {
	opts = opts.withDefaults()
	parent, err := container(doc, opts.Container)
	if err != nil {
		return nil, err
	}

	cv := doc.CreateCanvas()
	gl, err := cv.ContextWebGL2()
	if err != nil {
		return nil, surfaceErr("webgl2", "%v", err)
	}

	program, err := gl.CreateProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, surfaceErr("webgl2", "cell program: %v", err)
	}

	at, err := newAtlas(doc, opts)
	if err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}

	w := &WebGL{
		parent:  parent,
		canvas:  cv,
		gl:      gl,
		atlas:   at,
		opts:    opts,
		program: program,
	}
	w.setupBuffers()

	cv.SetAttribute("style", "display: block;")
	parent.AppendChild(cv)
	return w, nil
}

func (w *WebGL) setupBuffers() {
	gl := w.gl
	w.vao = gl.CreateVertexArray()
	gl.BindVertexArray(w.vao)

	w.buffer = gl.CreateBuffer()
	gl.BindArrayBuffer(w.buffer)
	stride := constants.InstanceStride
	gl.VertexAttrib(gl.AttribLocation(w.program, "a_glyph"), 1, stride, constants.InstanceGlyphOffset, 1)
	gl.VertexAttrib(gl.AttribLocation(w.program, "a_fg"), 3, stride, constants.InstanceFgOffset, 1)
	gl.VertexAttrib(gl.AttribLocation(w.program, "a_bg"), 3, stride, constants.InstanceBgOffset, 1)
	gl.VertexAttrib(gl.AttribLocation(w.program, "a_flags"), 1, stride, constants.InstanceFlagsOffset, 1)

	w.texture = gl.CreateTexture()
	w.uGrid = gl.UniformLocation(w.program, "u_grid")
	w.uCell = gl.UniformLocation(w.program, "u_cell")
	w.uAtlasGr = gl.UniformLocation(w.program, "u_atlasGrid")
	w.uAtlas = gl.UniformLocation(w.program, "u_atlas")
	w.uSlot = gl.UniformLocation(w.program, "u_atlasSlot")
}

// Initialize reallocates the instance buffer for width*height records
func (w *WebGL) Initialize(width, height int) error {
	if w.released {
		return surfaceErr("webgl2", "released")
	}
	if w.gl.IsContextLost() {
		return surfaceErr("webgl2", "context lost")
	}

	cellW, cellH := w.CellSize()
	pw := int(math.Ceil(float64(width) * cellW))
	ph := int(math.Ceil(float64(height) * cellH))
	w.canvas.SetSize(pw, ph)
	w.gl.Viewport(pw, ph)

	w.records = make([]float32, width*height*constants.InstanceFloats)
	w.dirty = w.dirty[:0]
	w.gl.BindArrayBuffer(w.buffer)
	w.gl.BufferData(len(w.records) * 4)

	w.gl.UseProgram(w.program)
	w.gl.Uniform2f(w.uGrid, float32(width), float32(height))
	w.gl.Uniform2f(w.uCell, float32(cellW), float32(cellH))
	w.gl.Uniform1i(w.uAtlas, 0)

	w.width, w.height = width, height
	w.cursor = terminal.Cursor{}
	w.stale = false
	core.Debugf("webgl: initialized %dx%d (%d instances)", width, height, width*height)
	return nil
}

// Render rewrites changed instance records and draws the grid
func (w *WebGL) Render(diff terminal.Diff, snap *terminal.Snapshot) {
	checkFrame("webgl.Render", w.width, w.height, diff, snap)

	// Records are kept current even without a context; they are the source
	// for the full upload once it comes back
	cur := snap.Cursor()
	if diff.IsFull() {
		for row := 0; row < w.height; row++ {
			for col := 0; col < w.width; col++ {
				w.writeRecord(snap, row, col, cur)
			}
		}
	} else {
		w.collectDirty(diff, cur)
		for _, idx := range w.dirty {
			w.writeRecord(snap, idx/w.width, idx%w.width, cur)
		}
	}
	w.cursor = cur

	gl := w.gl
	if gl.IsContextLost() {
		if !w.stale {
			core.Debugf("webgl: context lost, drawing suspended")
		}
		w.stale = true
		return
	}

	gl.BindArrayBuffer(w.buffer)
	switch {
	case diff.IsFull() || w.stale:
		if len(w.records) > 0 {
			gl.BufferSubData(0, w.records)
		}
		if w.stale {
			w.atlas.dirty = true
			w.stale = false
		}
	default:
		w.uploadRuns()
	}

	if w.atlas.dirty {
		gl.UploadTexture(w.texture, w.atlas.canvas)
		gl.UseProgram(w.program)
		gl.Uniform2f(w.uAtlasGr, float32(w.atlas.cols), float32(w.atlas.rows))
		su, sv := w.atlas.slotUV()
		gl.Uniform2f(w.uSlot, su, sv)
		w.atlas.dirty = false
	}

	bg := w.opts.Theme.Background
	r, g, b := bg.Floats()
	gl.ClearColor(r, g, b, 1)
	gl.Clear()
	gl.UseProgram(w.program)
	gl.BindVertexArray(w.vao)
	gl.DrawArraysInstanced(constants.QuadVertices, w.width*w.height)
}

// collectDirty gathers sorted unique record indices touched by diff and cursor movement
func (w *WebGL) collectDirty(diff terminal.Diff, cur terminal.Cursor) {
	w.dirty = w.dirty[:0]
	add := func(p terminal.Position) {
		idx := p.Row*w.width + p.Col
		w.dirty = append(w.dirty, idx)
		// Trailing half of a wide glyph follows its leading cell
		if p.Col+1 < w.width {
			w.dirty = append(w.dirty, idx+1)
		}
	}
	for _, p := range diff.Positions() {
		add(p)
	}
	for _, p := range cursorRepaint(w.cursor, cur) {
		add(p)
	}
	slices.Sort(w.dirty)
	w.dirty = slices.Compact(w.dirty)
}

// uploadRuns sends each contiguous run of dirty records in one BufferSubData
func (w *WebGL) uploadRuns() {
	const n = constants.InstanceFloats
	for i := 0; i < len(w.dirty); {
		start := w.dirty[i]
		end := start
		i++
		for i < len(w.dirty) && w.dirty[i] == end+1 {
			end = w.dirty[i]
			i++
		}
		w.gl.BufferSubData(start*constants.InstanceStride, w.records[start*n:(end+1)*n])
	}
}

func (w *WebGL) writeRecord(snap *terminal.Snapshot, row, col int, cur terminal.Cursor) {
	var p paint
	var slot int
	if continuation(snap, row, col) {
		lead := snap.At(row, col-1)
		p = resolve(w.opts.Theme, lead, cursorAt(cur, row, col-1))
		s := w.atlas.lookup(lead.Rune, lead.Attrs)
		if s.width == 2 {
			slot = s.index + 1
		}
	} else {
		c := snap.At(row, col)
		p = resolve(w.opts.Theme, c, cursorAt(cur, row, col))
		slot = w.atlas.lookup(c.Rune, c.Attrs).index
	}

	var flags float32
	if p.attrs.Has(terminal.AttrUnderline) {
		flags += constants.InstanceFlagUnderline
	}
	if p.attrs.Has(terminal.AttrStrikethrough) {
		flags += constants.InstanceFlagStrikethrough
	}
	if !p.visible() {
		flags += constants.InstanceFlagHidden
		slot = 0
	}

	rec := w.records[(row*w.width+col)*constants.InstanceFloats:][:constants.InstanceFloats]
	fr, fg, fb := p.inkFg().Floats()
	br, bgc, bb := p.bg.Floats()
	rec[0] = float32(slot)
	rec[1], rec[2], rec[3] = fr, fg, fb
	rec[4], rec[5], rec[6] = br, bgc, bb
	rec[7] = flags
}

// CellSize returns the atlas cell size
func (w *WebGL) CellSize() (float64, float64) {
	return w.atlas.cellW, w.atlas.cellH
}

// Target returns the WebGL canvas
func (w *WebGL) Target() host.Element {
	return w.canvas
}

// Retained returns the number of instance records
func (w *WebGL) Retained() int {
	return len(w.records) / constants.InstanceFloats
}

// Release deletes every GL object and removes the canvas
func (w *WebGL) Release() {
	if w.released {
		return
	}
	w.released = true
	gl := w.gl
	gl.DeleteBuffer(w.buffer)
	gl.DeleteVertexArray(w.vao)
	gl.DeleteTexture(w.texture)
	gl.DeleteProgram(w.program)
	w.canvas.Remove()
	w.records, w.dirty = nil, nil
	w.width, w.height = 0, 0
}
