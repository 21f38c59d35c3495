// Package hosttest provides in-memory fakes of the browser host for tests.
// The fakes record every mutation so tests can assert on what a renderer did.
package hosttest

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/webterm/host"
)

type listener struct {
	eventType string
	fn        host.Handler
	active    bool
}

func (l *listener) Release() {
	l.active = false
}

// listeners is an ordered subscription list shared by window and elements
type listeners struct {
	list []*listener
}

func (ls *listeners) add(eventType string, fn host.Handler) host.Listener {
	l := &listener{eventType: eventType, fn: fn, active: true}
	ls.list = append(ls.list, l)
	return l
}

func (ls *listeners) dispatch(ev *host.RawEvent) {
	for _, l := range ls.list {
		if l.active && l.eventType == ev.Type {
			l.fn(ev)
		}
	}
}

func (ls *listeners) count(eventType string) int {
	n := 0
	for _, l := range ls.list {
		if l.active && l.eventType == eventType {
			n++
		}
	}
	return n
}

// --- Window ---

// Window is a fake browser window with a manually flushed animation queue
type Window struct {
	Doc       *Document
	Width     float64
	Height    float64
	ScreenW   float64
	ScreenH   float64
	PixelRate float64
	Mobile    bool

	// Opened records OpenURL calls; BlockPopups fails new-tab opens
	Opened      []OpenedURL
	BlockPopups bool

	frames    map[int]func(float64)
	order     []int
	nextFrame int
	listeners listeners
	now       float64
}

// NewWindow returns a 800x600 desktop window with an empty document
func NewWindow() *Window {
	return &Window{
		Doc:       NewDocument(),
		Width:     800,
		Height:    600,
		ScreenW:   1920,
		ScreenH:   1080,
		PixelRate: 1,
		frames:    make(map[int]func(float64)),
	}
}

func (w *Window) Document() host.Document {
	return w.Doc
}

func (w *Window) RequestAnimationFrame(fn func(timestamp float64)) int {
	w.nextFrame++
	w.frames[w.nextFrame] = fn
	w.order = append(w.order, w.nextFrame)
	return w.nextFrame
}

func (w *Window) CancelAnimationFrame(id int) {
	delete(w.frames, id)
}

// OpenedURL is one recorded OpenURL call
type OpenedURL struct {
	URL    string
	NewTab bool
}

func (w *Window) OpenURL(url string, newTab bool) error {
	if newTab && w.BlockPopups {
		return fmt.Errorf("open %s: %w", url, host.ErrPopupBlocked)
	}
	w.Opened = append(w.Opened, OpenedURL{URL: url, NewTab: newTab})
	return nil
}

// Pending returns the number of scheduled animation callbacks
func (w *Window) Pending() int {
	return len(w.frames)
}

// Flush runs the callbacks scheduled before the call, like one browser frame
// Returns the number of callbacks run
func (w *Window) Flush() int {
	w.now += 16
	batch := w.order
	w.order = nil
	n := 0
	for _, id := range batch {
		fn, ok := w.frames[id]
		if !ok {
			continue
		}
		delete(w.frames, id)
		fn(w.now)
		n++
	}
	return n
}

// FlushN runs n browser frames
func (w *Window) FlushN(n int) {
	for range n {
		w.Flush()
	}
}

func (w *Window) InnerSize() (float64, float64) {
	return w.Width, w.Height
}

func (w *Window) ScreenSize() (float64, float64) {
	return w.ScreenW, w.ScreenH
}

func (w *Window) DevicePixelRatio() float64 {
	return w.PixelRate
}

func (w *Window) IsMobile() bool {
	return w.Mobile
}

func (w *Window) Listen(eventType string, fn host.Handler) host.Listener {
	return w.listeners.add(eventType, fn)
}

// Dispatch delivers ev to window listeners
func (w *Window) Dispatch(ev *host.RawEvent) {
	w.listeners.dispatch(ev)
}

// ListenerCount returns the active window listeners for eventType
func (w *Window) ListenerCount(eventType string) int {
	return w.listeners.count(eventType)
}

// --- Document ---

// Document is a fake DOM document
type Document struct {
	body     *Element
	ids      map[string]*Element
	Created  int
	Canvases []*Canvas

	// Canvas context availability for canvases created afterwards
	No2D     bool
	NoWebGL2 bool
	// Unmeasurable makes 2D contexts report zero text width
	Unmeasurable bool
	// SpanBounds is the layout box given to every span created afterwards
	SpanBounds host.Bounds
	// GLOptions configures fake GL contexts
	GLOptions GLOptions
}

// NewDocument returns a document with an empty body
func NewDocument() *Document {
	d := &Document{ids: make(map[string]*Element)}
	d.body = newElement("body")
	return d
}

func (d *Document) CreateElement(tag string) host.Element {
	d.Created++
	el := newElement(tag)
	if tag == "span" {
		el.Rect = d.SpanBounds
	}
	return el
}

func (d *Document) CreateCanvas() host.Canvas {
	d.Created++
	c := &Canvas{Element: newElement("canvas"), no2D: d.No2D, noGL: d.NoWebGL2, glOpts: d.GLOptions, advance: 10}
	if d.Unmeasurable {
		c.advance = 0
	}
	d.Canvases = append(d.Canvases, c)
	return c
}

func (d *Document) ElementByID(id string) (host.Element, bool) {
	el, ok := d.ids[id]
	if !ok {
		return nil, false
	}
	return el, true
}

func (d *Document) Body() host.Element {
	if d.body == nil {
		return nil
	}
	return d.body
}

// BodyElement returns the concrete body
func (d *Document) BodyElement() *Element {
	return d.body
}

// RemoveBody simulates a document without a body
func (d *Document) RemoveBody() {
	d.body = nil
}

// AddContainer appends an element with the given id to the body
func (d *Document) AddContainer(id string, bounds host.Bounds) *Element {
	el := newElement("div")
	el.Attrs["id"] = id
	el.Rect = bounds
	d.ids[id] = el
	if d.body != nil {
		d.body.AppendChild(el)
	}
	return el
}

// --- Element ---

// Element is a fake DOM element
type Element struct {
	Tag      string
	Text     string
	Attrs    map[string]string
	Children []host.Element
	Parent   *Element
	Removed  bool
	Rect     host.Bounds

	// Mutation counters
	TextWrites int
	AttrWrites int

	listeners listeners
}

func newElement(tag string) *Element {
	return &Element{Tag: tag, Attrs: make(map[string]string)}
}

// SetText replaces the children with text, as textContent does
func (e *Element) SetText(text string) {
	e.TextWrites++
	e.Text = text
	for _, ch := range e.Children {
		unwrap(ch).Parent = nil
	}
	e.Children = nil
}

func (e *Element) SetAttribute(name, value string) {
	e.AttrWrites++
	e.Attrs[name] = value
}

func (e *Element) RemoveAttribute(name string) {
	e.AttrWrites++
	delete(e.Attrs, name)
}

func (e *Element) Attribute(name string) string {
	return e.Attrs[name]
}

func (e *Element) AppendChild(child host.Element) {
	c := unwrap(child)
	if c.Parent != nil {
		c.Parent.detach(c)
	}
	c.Parent = e
	c.Removed = false
	e.Children = append(e.Children, child)
}

func (e *Element) detach(c *Element) {
	for i, ch := range e.Children {
		if unwrap(ch) == c {
			e.Children = append(e.Children[:i], e.Children[i+1:]...)
			return
		}
	}
}

func (e *Element) Remove() {
	if e.Parent != nil {
		e.Parent.detach(e)
		e.Parent = nil
	}
	e.Removed = true
}

func (e *Element) Bounds() host.Bounds {
	return e.Rect
}

func (e *Element) Listen(eventType string, fn host.Handler) host.Listener {
	return e.listeners.add(eventType, fn)
}

// Dispatch delivers ev to the element's listeners
func (e *Element) Dispatch(ev *host.RawEvent) {
	e.listeners.dispatch(ev)
}

// ListenerCount returns the active listeners for eventType
func (e *Element) ListenerCount(eventType string) int {
	return e.listeners.count(eventType)
}

// Descendants counts attached elements below e
func (e *Element) Descendants() int {
	n := 0
	for _, ch := range e.Children {
		n += 1 + unwrap(ch).Descendants()
	}
	return n
}

// Find returns attached descendants with the given tag in document order
func (e *Element) Find(tag string) []*Element {
	var out []*Element
	for _, ch := range e.Children {
		c := unwrap(ch)
		if c.Tag == tag {
			out = append(out, c)
		}
		out = append(out, c.Find(tag)...)
	}
	return out
}

// ResetCounters zeroes mutation counters on e and its descendants
func (e *Element) ResetCounters() {
	e.TextWrites, e.AttrWrites = 0, 0
	for _, ch := range e.Children {
		unwrap(ch).ResetCounters()
	}
}

// Writes sums mutation counters over e and its descendants
func (e *Element) Writes() (text, attrs int) {
	text, attrs = e.TextWrites, e.AttrWrites
	for _, ch := range e.Children {
		t, a := unwrap(ch).Writes()
		text += t
		attrs += a
	}
	return text, attrs
}

func unwrap(el host.Element) *Element {
	switch v := el.(type) {
	case *Element:
		return v
	case *Canvas:
		return v.Element
	}
	panic(fmt.Sprintf("hosttest: foreign element %T", el))
}

// --- Canvas ---

// Canvas is a fake canvas element
type Canvas struct {
	*Element
	Width, Height int

	ctx     *Context2D
	gl      *GL
	no2D    bool
	noGL    bool
	glOpts  GLOptions
	advance float64
}

func (c *Canvas) SetSize(width, height int) {
	c.Width, c.Height = width, height
}

func (c *Canvas) Size() (int, int) {
	return c.Width, c.Height
}

func (c *Canvas) Context2D() (host.Context2D, error) {
	if c.no2D || c.gl != nil {
		return nil, fmt.Errorf("2d: %w", host.ErrNoContext)
	}
	if c.ctx == nil {
		c.ctx = &Context2D{CharWidth: c.advance}
	}
	return c.ctx, nil
}

func (c *Canvas) ContextWebGL2() (host.GL, error) {
	if c.noGL || c.ctx != nil {
		return nil, fmt.Errorf("webgl2: %w", host.ErrNoContext)
	}
	if c.gl == nil {
		c.gl = newGL(c.glOpts)
	}
	return c.gl, nil
}

// Ctx returns the 2D context handed out, nil if none
func (c *Canvas) Ctx() *Context2D {
	return c.ctx
}

// GL returns the WebGL2 context handed out, nil if none
func (c *Canvas) GL() *GL {
	return c.gl
}

// --- Context2D ---

// Op2D is one recorded 2D drawing call
type Op2D struct {
	Name       string
	Text       string
	Style      string
	X, Y, W, H float64
}

func (o Op2D) String() string {
	switch o.Name {
	case "fillText":
		return fmt.Sprintf("fillText(%q %s @%g,%g)", o.Text, o.Style, o.X, o.Y)
	default:
		return fmt.Sprintf("%s(%s %g,%g %gx%g)", o.Name, o.Style, o.X, o.Y, o.W, o.H)
	}
}

// Context2D records drawing calls
type Context2D struct {
	// CharWidth is the advance reported by MeasureText per rune; 0 simulates a
	// font that cannot be measured
	CharWidth float64
	Font      string
	Fill      string
	Baseline  string
	Ops       []Op2D
}

func (x *Context2D) SetFont(font string)             { x.Font = font }
func (x *Context2D) SetFillStyle(style string)       { x.Fill = style }
func (x *Context2D) SetTextBaseline(baseline string) { x.Baseline = baseline }

func (x *Context2D) FillRect(px, py, w, h float64) {
	x.Ops = append(x.Ops, Op2D{Name: "fillRect", Style: x.Fill, X: px, Y: py, W: w, H: h})
}

func (x *Context2D) ClearRect(px, py, w, h float64) {
	x.Ops = append(x.Ops, Op2D{Name: "clearRect", X: px, Y: py, W: w, H: h})
}

func (x *Context2D) FillText(text string, px, py float64) {
	x.Ops = append(x.Ops, Op2D{Name: "fillText", Text: text, Style: x.Fill, X: px, Y: py})
}

func (x *Context2D) MeasureText(text string) float64 {
	return x.CharWidth * float64(utf8.RuneCountInString(text))
}

// Count returns the number of recorded ops named name
func (x *Context2D) Count(name string) int {
	n := 0
	for _, op := range x.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Texts returns the glyphs drawn by fillText, in call order
func (x *Context2D) Texts() string {
	var b strings.Builder
	for _, op := range x.Ops {
		if op.Name == "fillText" {
			b.WriteString(op.Text)
		}
	}
	return b.String()
}

// Reset forgets recorded ops
func (x *Context2D) Reset() {
	x.Ops = nil
}
