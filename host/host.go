// Package host is the boundary between the renderer and the browser.
//
// Everything the backends, the event bridge and the render loop touch in the
// page goes through these interfaces. The js/wasm build provides the real
// implementation (Browser); package hosttest provides recording fakes for
// native tests.
package host

import "errors"

var (
	// ErrNoContext reports that a canvas refused a rendering context
	ErrNoContext = errors.New("rendering context unavailable")
	// ErrPopupBlocked reports that the browser refused to open a new tab
	ErrPopupBlocked = errors.New("popup blocked")
)

// Listener is an active event subscription
type Listener interface {
	Release()
}

// Handler receives one raw browser event
type Handler func(ev *RawEvent)

// RawEvent carries the fields of a keyboard, mouse or wheel event that the
// event bridge needs. Unused fields are zero.
type RawEvent struct {
	Type string

	// Keyboard
	Key    string
	Code   string
	Repeat bool

	// Modifiers
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool

	// AltGraph is set while AltGr is held; Windows also reports it as Ctrl+Alt
	AltGraph bool

	// Mouse, client coordinates in CSS pixels
	Button  int
	Buttons int
	X, Y    float64

	// Wheel
	DeltaX, DeltaY float64

	// PreventDefault is nil when the event is not cancelable
	PreventDefault func()
}

// Bounds is a client rectangle in CSS pixels
type Bounds struct {
	Left, Top     float64
	Width, Height float64
}

// Element is a DOM element
type Element interface {
	SetText(text string)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	Attribute(name string) string
	AppendChild(child Element)
	Remove()
	Bounds() Bounds
	Listen(eventType string, fn Handler) Listener
}

// Document creates and looks up elements
type Document interface {
	CreateElement(tag string) Element
	CreateCanvas() Canvas
	ElementByID(id string) (Element, bool)
	Body() Element
}

// Canvas is a <canvas> element
type Canvas interface {
	Element
	SetSize(width, height int)
	Size() (width, height int)
	Context2D() (Context2D, error)
	ContextWebGL2() (GL, error)
}

// Context2D is the subset of CanvasRenderingContext2D the renderers use
type Context2D interface {
	SetFont(font string)
	SetFillStyle(style string)
	SetTextBaseline(baseline string)
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(text string, x, y float64)
	MeasureText(text string) float64
}

// GLObject is an opaque handle to a WebGL object; 0 is the null object
type GLObject uint32

// GL is the subset of WebGL2RenderingContext the instanced renderer uses
type GL interface {
	CreateProgram(vertexSrc, fragmentSrc string) (GLObject, error)
	UseProgram(p GLObject)
	DeleteProgram(p GLObject)
	AttribLocation(p GLObject, name string) int
	UniformLocation(p GLObject, name string) GLObject
	Uniform2f(loc GLObject, x, y float32)
	Uniform1i(loc GLObject, v int)

	CreateVertexArray() GLObject
	BindVertexArray(vao GLObject)
	DeleteVertexArray(vao GLObject)

	CreateBuffer() GLObject
	BindArrayBuffer(buf GLObject)
	BufferData(sizeBytes int)
	BufferSubData(offsetBytes int, data []float32)
	DeleteBuffer(buf GLObject)
	// VertexAttrib enables a float attribute sourced from the bound array buffer
	VertexAttrib(loc, size, strideBytes, offsetBytes, divisor int)

	CreateTexture() GLObject
	UploadTexture(tex GLObject, src Canvas)
	DeleteTexture(tex GLObject)

	Viewport(width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawArraysInstanced(vertexCount, instanceCount int)
	IsContextLost() bool
}

// Window is the browser window
type Window interface {
	Document() Document
	RequestAnimationFrame(fn func(timestamp float64)) int
	CancelAnimationFrame(id int)
	InnerSize() (width, height float64)
	ScreenSize() (width, height float64)
	DevicePixelRatio() float64
	IsMobile() bool
	Listen(eventType string, fn Handler) Listener
	// OpenURL navigates to url, in a new tab when newTab is set
	OpenURL(url string, newTab bool) error
}

// ContainerOrBody returns the element with the given id, or the document body
// when id is empty or not found
func ContainerOrBody(doc Document, id string) Element {
	if id != "" {
		if el, ok := doc.ElementByID(id); ok {
			return el
		}
	}
	return doc.Body()
}
