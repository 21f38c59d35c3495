package hosttest

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/webterm/host"
)

// GLOptions configures a fake GL context
type GLOptions struct {
	// FailProgram makes CreateProgram return a link error
	FailProgram bool
}

// SubData is one recorded BufferSubData upload
type SubData struct {
	Buffer      host.GLObject
	OffsetBytes int
	Floats      int
}

// GL records WebGL2 calls and keeps the bound array buffer contents in memory
type GL struct {
	opts GLOptions

	next    host.GLObject
	live    map[host.GLObject]string
	buffers map[host.GLObject][]float32
	bound   host.GLObject
	attribs map[string]int

	// Calls is every method invoked, in order
	Calls      []string
	DrawCalls  int
	Instances  int
	Uploads    []SubData
	Textures   int
	Lost       bool
	ClearValue [4]float32
}

func newGL(opts GLOptions) *GL {
	return &GL{
		opts:    opts,
		live:    make(map[host.GLObject]string),
		buffers: make(map[host.GLObject][]float32),
		attribs: make(map[string]int),
	}
}

func (g *GL) record(format string, args ...any) {
	g.Calls = append(g.Calls, fmt.Sprintf(format, args...))
}

func (g *GL) alloc(kind string) host.GLObject {
	g.next++
	g.live[g.next] = kind
	return g.next
}

func (g *GL) free(o host.GLObject) {
	delete(g.live, o)
	delete(g.buffers, o)
}

// Live returns the number of allocated objects of kind ("program", "vao",
// "buffer", "texture", "uniform")
func (g *GL) Live(kind string) int {
	n := 0
	for _, k := range g.live {
		if k == kind {
			n++
		}
	}
	return n
}

// Buffer returns a copy of the buffer's float contents
func (g *GL) Buffer(o host.GLObject) []float32 {
	return append([]float32(nil), g.buffers[o]...)
}

// BoundBuffer returns the current array buffer
func (g *GL) BoundBuffer() host.GLObject {
	return g.bound
}

// ResetFrame forgets per-frame records
func (g *GL) ResetFrame() {
	g.Calls = nil
	g.DrawCalls = 0
	g.Uploads = nil
}

func (g *GL) CreateProgram(vertexSrc, fragmentSrc string) (host.GLObject, error) {
	g.record("CreateProgram")
	if g.opts.FailProgram {
		return 0, errors.New("link program: fake failure")
	}
	if vertexSrc == "" || fragmentSrc == "" {
		return 0, errors.New("compile shader: empty source")
	}
	return g.alloc("program"), nil
}

func (g *GL) UseProgram(p host.GLObject)    { g.record("UseProgram(%d)", p) }
func (g *GL) DeleteProgram(p host.GLObject) { g.record("DeleteProgram(%d)", p); g.free(p) }

func (g *GL) AttribLocation(p host.GLObject, name string) int {
	g.record("AttribLocation(%s)", name)
	if loc, ok := g.attribs[name]; ok {
		return loc
	}
	loc := len(g.attribs)
	g.attribs[name] = loc
	return loc
}

func (g *GL) UniformLocation(p host.GLObject, name string) host.GLObject {
	g.record("UniformLocation(%s)", name)
	return g.alloc("uniform")
}

func (g *GL) Uniform2f(loc host.GLObject, x, y float32) { g.record("Uniform2f(%d,%g,%g)", loc, x, y) }
func (g *GL) Uniform1i(loc host.GLObject, v int)        { g.record("Uniform1i(%d,%d)", loc, v) }

func (g *GL) CreateVertexArray() host.GLObject {
	g.record("CreateVertexArray")
	return g.alloc("vao")
}

func (g *GL) BindVertexArray(vao host.GLObject)   { g.record("BindVertexArray(%d)", vao) }
func (g *GL) DeleteVertexArray(vao host.GLObject) { g.record("DeleteVertexArray(%d)", vao); g.free(vao) }

func (g *GL) CreateBuffer() host.GLObject {
	g.record("CreateBuffer")
	return g.alloc("buffer")
}

func (g *GL) BindArrayBuffer(buf host.GLObject) {
	g.record("BindArrayBuffer(%d)", buf)
	g.bound = buf
}

func (g *GL) BufferData(sizeBytes int) {
	g.record("BufferData(%d)", sizeBytes)
	g.buffers[g.bound] = make([]float32, sizeBytes/4)
}

func (g *GL) BufferSubData(offsetBytes int, data []float32) {
	g.record("BufferSubData(%d,%d)", offsetBytes, len(data))
	buf := g.buffers[g.bound]
	start := offsetBytes / 4
	if start < 0 || start+len(data) > len(buf) {
		panic(fmt.Sprintf("hosttest: BufferSubData out of range: %d+%d > %d", start, len(data), len(buf)))
	}
	copy(buf[start:], data)
	g.Uploads = append(g.Uploads, SubData{Buffer: g.bound, OffsetBytes: offsetBytes, Floats: len(data)})
}

func (g *GL) DeleteBuffer(buf host.GLObject) {
	g.record("DeleteBuffer(%d)", buf)
	g.free(buf)
	if g.bound == buf {
		g.bound = 0
	}
}

func (g *GL) VertexAttrib(loc, size, strideBytes, offsetBytes, divisor int) {
	g.record("VertexAttrib(%d,%d,%d,%d,%d)", loc, size, strideBytes, offsetBytes, divisor)
}

func (g *GL) CreateTexture() host.GLObject {
	g.record("CreateTexture")
	return g.alloc("texture")
}

func (g *GL) UploadTexture(tex host.GLObject, src host.Canvas) {
	g.record("UploadTexture(%d)", tex)
	g.Textures++
}

func (g *GL) DeleteTexture(tex host.GLObject) { g.record("DeleteTexture(%d)", tex); g.free(tex) }

func (g *GL) Viewport(width, height int) { g.record("Viewport(%d,%d)", width, height) }

func (g *GL) ClearColor(r, gr, b, a float32) {
	g.ClearValue = [4]float32{r, gr, b, a}
}

func (g *GL) Clear() { g.record("Clear") }

func (g *GL) DrawArraysInstanced(vertexCount, instanceCount int) {
	g.record("DrawArraysInstanced(%d,%d)", vertexCount, instanceCount)
	g.DrawCalls++
	g.Instances = instanceCount
}

func (g *GL) IsContextLost() bool {
	return g.Lost
}
