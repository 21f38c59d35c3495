//go:build js && wasm

package host

import (
	"encoding/binary"
	"fmt"
	"math"
	"strings"
	"syscall/js"
)

// Browser returns the page's window
func Browser() Window {
	g := js.Global()
	return &jsWindow{
		v:   g.Get("window"),
		doc: &jsDocument{v: g.Get("document")},
	}
}

type jsListener struct {
	target    js.Value
	eventType string
	fn        js.Func
	released  bool
}

func (l *jsListener) Release() {
	if l.released {
		return
	}
	l.released = true
	l.target.Call("removeEventListener", l.eventType, l.fn)
	l.fn.Release()
}

func listen(target js.Value, eventType string, fn Handler) Listener {
	cb := js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		ev := decodeEvent(args[0])
		fn(ev)
		return nil
	})
	target.Call("addEventListener", eventType, cb)
	return &jsListener{target: target, eventType: eventType, fn: cb}
}

func decodeEvent(v js.Value) *RawEvent {
	ev := &RawEvent{
		Type:  v.Get("type").String(),
		Ctrl:  truthy(v.Get("ctrlKey")),
		Alt:   truthy(v.Get("altKey")),
		Shift: truthy(v.Get("shiftKey")),
		Meta:  truthy(v.Get("metaKey")),
	}
	if k := v.Get("key"); k.Type() == js.TypeString {
		ev.Key = k.String()
		ev.Code = stringOr(v.Get("code"))
		ev.Repeat = truthy(v.Get("repeat"))
		if v.Get("getModifierState").Type() == js.TypeFunction {
			ev.AltGraph = truthy(v.Call("getModifierState", "AltGraph"))
		}
	}
	if x := v.Get("clientX"); x.Type() == js.TypeNumber {
		ev.X = x.Float()
		ev.Y = v.Get("clientY").Float()
		ev.Button = v.Get("button").Int()
		ev.Buttons = v.Get("buttons").Int()
	}
	if dy := v.Get("deltaY"); dy.Type() == js.TypeNumber {
		ev.DeltaY = dy.Float()
		ev.DeltaX = v.Get("deltaX").Float()
	}
	if truthy(v.Get("cancelable")) {
		ev.PreventDefault = func() { v.Call("preventDefault") }
	}
	return ev
}

func truthy(v js.Value) bool {
	return v.Type() == js.TypeBoolean && v.Bool()
}

func stringOr(v js.Value) string {
	if v.Type() != js.TypeString {
		return ""
	}
	return v.String()
}

// --- Window ---

type jsWindow struct {
	v      js.Value
	doc    *jsDocument
	frames map[int]js.Func
}

func (w *jsWindow) Document() Document {
	return w.doc
}

func (w *jsWindow) RequestAnimationFrame(fn func(timestamp float64)) int {
	if w.frames == nil {
		w.frames = make(map[int]js.Func)
	}
	var id int
	var cb js.Func
	cb = js.FuncOf(func(_ js.Value, args []js.Value) any {
		delete(w.frames, id)
		cb.Release()
		ts := 0.0
		if len(args) > 0 {
			ts = args[0].Float()
		}
		fn(ts)
		return nil
	})
	id = w.v.Call("requestAnimationFrame", cb).Int()
	w.frames[id] = cb
	return id
}

func (w *jsWindow) CancelAnimationFrame(id int) {
	cb, ok := w.frames[id]
	if !ok {
		return
	}
	w.v.Call("cancelAnimationFrame", id)
	delete(w.frames, id)
	cb.Release()
}

func (w *jsWindow) InnerSize() (float64, float64) {
	return w.v.Get("innerWidth").Float(), w.v.Get("innerHeight").Float()
}

func (w *jsWindow) ScreenSize() (float64, float64) {
	screen := w.v.Get("screen")
	return screen.Get("width").Float(), screen.Get("height").Float()
}

func (w *jsWindow) DevicePixelRatio() float64 {
	r := w.v.Get("devicePixelRatio")
	if r.Type() != js.TypeNumber || r.Float() <= 0 {
		return 1
	}
	return r.Float()
}

func (w *jsWindow) IsMobile() bool {
	ua := strings.ToLower(w.v.Get("navigator").Get("userAgent").String())
	for _, marker := range []string{"mobi", "android", "iphone", "ipad"} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

func (w *jsWindow) Listen(eventType string, fn Handler) Listener {
	return listen(w.v, eventType, fn)
}

func (w *jsWindow) OpenURL(url string, newTab bool) error {
	if !newTab {
		w.v.Get("location").Set("href", url)
		return nil
	}
	opened := w.v.Call("open", url, "_blank")
	if opened.IsNull() || opened.IsUndefined() {
		return fmt.Errorf("open %s: %w", url, ErrPopupBlocked)
	}
	opened.Set("opener", js.Null())
	return nil
}

// --- Document ---

type jsDocument struct {
	v js.Value
}

func (d *jsDocument) CreateElement(tag string) Element {
	return &jsElement{v: d.v.Call("createElement", tag)}
}

func (d *jsDocument) CreateCanvas() Canvas {
	return &jsCanvas{jsElement: jsElement{v: d.v.Call("createElement", "canvas")}}
}

func (d *jsDocument) ElementByID(id string) (Element, bool) {
	v := d.v.Call("getElementById", id)
	if v.IsNull() || v.IsUndefined() {
		return nil, false
	}
	return &jsElement{v: v}, true
}

func (d *jsDocument) Body() Element {
	v := d.v.Get("body")
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &jsElement{v: v}
}

// --- Element ---

type jsElement struct {
	v js.Value
}

func (e *jsElement) value() js.Value {
	return e.v
}

type jsValuer interface {
	value() js.Value
}

func (e *jsElement) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *jsElement) SetAttribute(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *jsElement) RemoveAttribute(name string) {
	e.v.Call("removeAttribute", name)
}

func (e *jsElement) Attribute(name string) string {
	return stringOr(e.v.Call("getAttribute", name))
}

func (e *jsElement) AppendChild(child Element) {
	c, ok := child.(jsValuer)
	if !ok {
		panic(fmt.Sprintf("host: foreign element %T", child))
	}
	e.v.Call("appendChild", c.value())
}

func (e *jsElement) Remove() {
	e.v.Call("remove")
}

func (e *jsElement) Bounds() Bounds {
	r := e.v.Call("getBoundingClientRect")
	return Bounds{
		Left:   r.Get("left").Float(),
		Top:    r.Get("top").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e *jsElement) Listen(eventType string, fn Handler) Listener {
	return listen(e.v, eventType, fn)
}

// --- Canvas ---

type jsCanvas struct {
	jsElement
}

func (c *jsCanvas) SetSize(width, height int) {
	c.v.Set("width", width)
	c.v.Set("height", height)
}

func (c *jsCanvas) Size() (int, int) {
	return c.v.Get("width").Int(), c.v.Get("height").Int()
}

func (c *jsCanvas) Context2D() (Context2D, error) {
	ctx := c.v.Call("getContext", "2d")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, fmt.Errorf("2d: %w", ErrNoContext)
	}
	return &jsContext2D{v: ctx}, nil
}

func (c *jsCanvas) ContextWebGL2() (GL, error) {
	ctx := c.v.Call("getContext", "webgl2")
	if ctx.IsNull() || ctx.IsUndefined() {
		return nil, fmt.Errorf("webgl2: %w", ErrNoContext)
	}
	return newJSGL(ctx), nil
}

// --- Context2D ---

type jsContext2D struct {
	v js.Value
}

func (x *jsContext2D) SetFont(font string)             { x.v.Set("font", font) }
func (x *jsContext2D) SetFillStyle(style string)       { x.v.Set("fillStyle", style) }
func (x *jsContext2D) SetTextBaseline(baseline string) { x.v.Set("textBaseline", baseline) }
func (x *jsContext2D) FillRect(px, py, w, h float64)   { x.v.Call("fillRect", px, py, w, h) }
func (x *jsContext2D) ClearRect(px, py, w, h float64)  { x.v.Call("clearRect", px, py, w, h) }
func (x *jsContext2D) FillText(text string, px, py float64) {
	x.v.Call("fillText", text, px, py)
}

func (x *jsContext2D) MeasureText(text string) float64 {
	return x.v.Call("measureText", text).Get("width").Float()
}

// --- WebGL2 ---

// jsGL maps GLObject handles to the JS objects WebGL hands out
type jsGL struct {
	v       js.Value
	objects map[GLObject]js.Value
	next    GLObject
	scratch []byte

	arrayBuffer     js.Value
	float           js.Value
	dynamicDraw     js.Value
	texture2D       js.Value
	triangles       js.Value
	colorBufferBit  js.Value
	vertexShader    js.Value
	fragmentShader  js.Value
	compileStatus   js.Value
	linkStatus      js.Value
	rgba            js.Value
	unsignedByte    js.Value
	linear          js.Value
	clampToEdge     js.Value
	texMinFilter    js.Value
	texMagFilter    js.Value
	texWrapS        js.Value
	texWrapT        js.Value
	blend           js.Value
	srcAlpha        js.Value
	oneMinusSrcAlph js.Value
}

func newJSGL(v js.Value) *jsGL {
	return &jsGL{
		v:               v,
		objects:         make(map[GLObject]js.Value),
		arrayBuffer:     v.Get("ARRAY_BUFFER"),
		float:           v.Get("FLOAT"),
		dynamicDraw:     v.Get("DYNAMIC_DRAW"),
		texture2D:       v.Get("TEXTURE_2D"),
		triangles:       v.Get("TRIANGLES"),
		colorBufferBit:  v.Get("COLOR_BUFFER_BIT"),
		vertexShader:    v.Get("VERTEX_SHADER"),
		fragmentShader:  v.Get("FRAGMENT_SHADER"),
		compileStatus:   v.Get("COMPILE_STATUS"),
		linkStatus:      v.Get("LINK_STATUS"),
		rgba:            v.Get("RGBA"),
		unsignedByte:    v.Get("UNSIGNED_BYTE"),
		linear:          v.Get("LINEAR"),
		clampToEdge:     v.Get("CLAMP_TO_EDGE"),
		texMinFilter:    v.Get("TEXTURE_MIN_FILTER"),
		texMagFilter:    v.Get("TEXTURE_MAG_FILTER"),
		texWrapS:        v.Get("TEXTURE_WRAP_S"),
		texWrapT:        v.Get("TEXTURE_WRAP_T"),
		blend:           v.Get("BLEND"),
		srcAlpha:        v.Get("SRC_ALPHA"),
		oneMinusSrcAlph: v.Get("ONE_MINUS_SRC_ALPHA"),
	}
}

func (g *jsGL) put(v js.Value) GLObject {
	if v.IsNull() || v.IsUndefined() {
		return 0
	}
	g.next++
	g.objects[g.next] = v
	return g.next
}

func (g *jsGL) get(o GLObject) js.Value {
	if v, ok := g.objects[o]; ok {
		return v
	}
	return js.Null()
}

func (g *jsGL) drop(o GLObject) js.Value {
	v := g.get(o)
	delete(g.objects, o)
	return v
}

func (g *jsGL) compile(kind js.Value, src string) (js.Value, error) {
	sh := g.v.Call("createShader", kind)
	g.v.Call("shaderSource", sh, src)
	g.v.Call("compileShader", sh)
	if !g.v.Call("getShaderParameter", sh, g.compileStatus).Bool() {
		msg := g.v.Call("getShaderInfoLog", sh).String()
		g.v.Call("deleteShader", sh)
		return js.Null(), fmt.Errorf("compile shader: %s", msg)
	}
	return sh, nil
}

func (g *jsGL) CreateProgram(vertexSrc, fragmentSrc string) (GLObject, error) {
	vs, err := g.compile(g.vertexShader, vertexSrc)
	if err != nil {
		return 0, err
	}
	fs, err := g.compile(g.fragmentShader, fragmentSrc)
	if err != nil {
		g.v.Call("deleteShader", vs)
		return 0, err
	}
	p := g.v.Call("createProgram")
	g.v.Call("attachShader", p, vs)
	g.v.Call("attachShader", p, fs)
	g.v.Call("linkProgram", p)
	g.v.Call("deleteShader", vs)
	g.v.Call("deleteShader", fs)
	if !g.v.Call("getProgramParameter", p, g.linkStatus).Bool() {
		msg := g.v.Call("getProgramInfoLog", p).String()
		g.v.Call("deleteProgram", p)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	g.v.Call("enable", g.blend)
	g.v.Call("blendFunc", g.srcAlpha, g.oneMinusSrcAlph)
	return g.put(p), nil
}

func (g *jsGL) UseProgram(p GLObject)    { g.v.Call("useProgram", g.get(p)) }
func (g *jsGL) DeleteProgram(p GLObject) { g.v.Call("deleteProgram", g.drop(p)) }

func (g *jsGL) AttribLocation(p GLObject, name string) int {
	return g.v.Call("getAttribLocation", g.get(p), name).Int()
}

func (g *jsGL) UniformLocation(p GLObject, name string) GLObject {
	return g.put(g.v.Call("getUniformLocation", g.get(p), name))
}

func (g *jsGL) Uniform2f(loc GLObject, x, y float32) {
	g.v.Call("uniform2f", g.get(loc), x, y)
}

func (g *jsGL) Uniform1i(loc GLObject, v int) {
	g.v.Call("uniform1i", g.get(loc), v)
}

func (g *jsGL) CreateVertexArray() GLObject     { return g.put(g.v.Call("createVertexArray")) }
func (g *jsGL) BindVertexArray(vao GLObject)    { g.v.Call("bindVertexArray", g.get(vao)) }
func (g *jsGL) DeleteVertexArray(vao GLObject)  { g.v.Call("deleteVertexArray", g.drop(vao)) }
func (g *jsGL) CreateBuffer() GLObject          { return g.put(g.v.Call("createBuffer")) }
func (g *jsGL) BindArrayBuffer(buf GLObject)    { g.v.Call("bindBuffer", g.arrayBuffer, g.get(buf)) }
func (g *jsGL) DeleteBuffer(buf GLObject)       { g.v.Call("deleteBuffer", g.drop(buf)) }
func (g *jsGL) CreateTexture() GLObject         { return g.put(g.v.Call("createTexture")) }
func (g *jsGL) DeleteTexture(tex GLObject)      { g.v.Call("deleteTexture", g.drop(tex)) }
func (g *jsGL) Viewport(width, height int)      { g.v.Call("viewport", 0, 0, width, height) }
func (g *jsGL) ClearColor(r, gr, b, a float32)  { g.v.Call("clearColor", r, gr, b, a) }
func (g *jsGL) Clear()                          { g.v.Call("clear", g.colorBufferBit) }
func (g *jsGL) IsContextLost() bool             { return g.v.Call("isContextLost").Bool() }
func (g *jsGL) BufferData(sizeBytes int)        { g.v.Call("bufferData", g.arrayBuffer, sizeBytes, g.dynamicDraw) }
func (g *jsGL) DrawArraysInstanced(n, inst int) { g.v.Call("drawArraysInstanced", g.triangles, 0, n, inst) }

func (g *jsGL) BufferSubData(offsetBytes int, data []float32) {
	n := len(data) * 4
	if cap(g.scratch) < n {
		g.scratch = make([]byte, n)
	}
	buf := g.scratch[:n]
	for i, f := range data {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	arr := js.Global().Get("Uint8Array").New(n)
	js.CopyBytesToJS(arr, buf)
	g.v.Call("bufferSubData", g.arrayBuffer, offsetBytes, arr)
}

func (g *jsGL) VertexAttrib(loc, size, strideBytes, offsetBytes, divisor int) {
	if loc < 0 {
		return
	}
	g.v.Call("enableVertexAttribArray", loc)
	g.v.Call("vertexAttribPointer", loc, size, g.float, false, strideBytes, offsetBytes)
	g.v.Call("vertexAttribDivisor", loc, divisor)
}

func (g *jsGL) UploadTexture(tex GLObject, src Canvas) {
	c, ok := src.(jsValuer)
	if !ok {
		panic(fmt.Sprintf("host: foreign canvas %T", src))
	}
	g.v.Call("bindTexture", g.texture2D, g.get(tex))
	g.v.Call("texImage2D", g.texture2D, 0, g.rgba, g.rgba, g.unsignedByte, c.value())
	g.v.Call("texParameteri", g.texture2D, g.texMinFilter, g.linear)
	g.v.Call("texParameteri", g.texture2D, g.texMagFilter, g.linear)
	g.v.Call("texParameteri", g.texture2D, g.texWrapS, g.clampToEdge)
	g.v.Call("texParameteri", g.texture2D, g.texWrapT, g.clampToEdge)
}
