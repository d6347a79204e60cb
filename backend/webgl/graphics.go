//go:build js && wasm

// Package webgl provides a WebGL 1 backend for the lchart package, for
// programs compiled with GOOS=js GOARCH=wasm.
package webgl

import (
	"fmt"
	"syscall/js"

	"github.com/go-theft-auto/lchart"
)

type glConsts struct {
	arrayBuffer        int
	elementArrayBuffer int
	staticDraw         int
	dynamicDraw        int
	floatType          int
	unsignedShort      int
	lineStrip          int
	colorBufferBit     int
	compileStatus      int
	linkStatus         int
	vertexShader       int
	fragmentShader     int
}

// Graphics implements lchart.Graphics on a WebGLRenderingContext.
// WebGL objects are kept in tables indexed by the handles lchart sees.
type Graphics struct {
	gl     js.Value
	consts glConsts

	nextID   uint32
	objects  map[uint32]js.Value
	uniforms map[lchart.UniformLocation]uniform
	byName   map[uniformKey]lchart.UniformLocation
}

// uniformKey identifies a uniform lookup; repeated lookups share a handle.
type uniformKey struct {
	program uint32
	name    string
}

type uniform struct {
	program uint32
	loc     js.Value
}

var _ lchart.Graphics = (*Graphics)(nil)

// NewGraphics wraps a context obtained from canvas.getContext("webgl").
func NewGraphics(gl js.Value) (*Graphics, error) {
	if gl.IsUndefined() || gl.IsNull() {
		return nil, fmt.Errorf("%w: webgl context is required", lchart.ErrSurfaceUnavailable)
	}
	g := &Graphics{
		gl:       gl,
		objects:  make(map[uint32]js.Value),
		uniforms: make(map[lchart.UniformLocation]uniform),
		byName:   make(map[uniformKey]lchart.UniformLocation),
	}
	g.initConsts()
	return g, nil
}

// FromCanvas looks up a canvas element by id, sizes its drawing buffer to
// its CSS size and returns a backend on its WebGL context.
func FromCanvas(id string) (*Graphics, error) {
	canvas := js.Global().Get("document").Call("getElementById", id)
	if canvas.IsNull() || canvas.IsUndefined() {
		return nil, fmt.Errorf("%w: no canvas %q", lchart.ErrSurfaceUnavailable, id)
	}
	canvas.Set("width", canvas.Get("clientWidth"))
	canvas.Set("height", canvas.Get("clientHeight"))
	return NewGraphics(canvas.Call("getContext", "webgl"))
}

func (g *Graphics) initConsts() {
	g.consts = glConsts{
		arrayBuffer:        g.gl.Get("ARRAY_BUFFER").Int(),
		elementArrayBuffer: g.gl.Get("ELEMENT_ARRAY_BUFFER").Int(),
		staticDraw:         g.gl.Get("STATIC_DRAW").Int(),
		dynamicDraw:        g.gl.Get("DYNAMIC_DRAW").Int(),
		floatType:          g.gl.Get("FLOAT").Int(),
		unsignedShort:      g.gl.Get("UNSIGNED_SHORT").Int(),
		lineStrip:          g.gl.Get("LINE_STRIP").Int(),
		colorBufferBit:     g.gl.Get("COLOR_BUFFER_BIT").Int(),
		compileStatus:      g.gl.Get("COMPILE_STATUS").Int(),
		linkStatus:         g.gl.Get("LINK_STATUS").Int(),
		vertexShader:       g.gl.Get("VERTEX_SHADER").Int(),
		fragmentShader:     g.gl.Get("FRAGMENT_SHADER").Int(),
	}
}

func (g *Graphics) store(v js.Value) uint32 {
	g.nextID++
	g.objects[g.nextID] = v
	return g.nextID
}

func (g *Graphics) lookup(id uint32) js.Value {
	if v, ok := g.objects[id]; ok {
		return v
	}
	return js.Null()
}

func (g *Graphics) release(id uint32) js.Value {
	v := g.lookup(id)
	delete(g.objects, id)
	return v
}

func (g *Graphics) target(t lchart.BufferTarget) int {
	if t == lchart.ElementArrayBuffer {
		return g.consts.elementArrayBuffer
	}
	return g.consts.arrayBuffer
}

// CreateBuffer calls createBuffer, which returns null when out of resources.
func (g *Graphics) CreateBuffer() (lchart.Buffer, error) {
	b := g.gl.Call("createBuffer")
	if b.IsNull() || b.IsUndefined() {
		return 0, fmt.Errorf("createBuffer returned null")
	}
	return lchart.Buffer(g.store(b)), nil
}

func (g *Graphics) DeleteBuffer(b lchart.Buffer) {
	g.gl.Call("deleteBuffer", g.release(uint32(b)))
}

func (g *Graphics) BindBuffer(target lchart.BufferTarget, b lchart.Buffer) {
	g.gl.Call("bindBuffer", g.target(target), g.lookup(uint32(b)))
}

// BufferData copies data into a Uint8Array view and uploads it.
func (g *Graphics) BufferData(target lchart.BufferTarget, data []byte, usage lchart.BufferUsage) {
	view := js.Global().Get("Uint8Array").New(len(data))
	if len(data) > 0 {
		js.CopyBytesToJS(view, data)
	}
	u := g.consts.staticDraw
	if usage == lchart.DynamicDraw {
		u = g.consts.dynamicDraw
	}
	g.gl.Call("bufferData", g.target(target), view, u)
}

func (g *Graphics) CompileShader(kind lchart.ShaderKind, source string) (lchart.Shader, error) {
	typ := g.consts.vertexShader
	if kind == lchart.FragmentShader {
		typ = g.consts.fragmentShader
	}
	shader := g.gl.Call("createShader", typ)
	if shader.IsNull() {
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: "unable to create shader object"}
	}
	g.gl.Call("shaderSource", shader, source)
	g.gl.Call("compileShader", shader)
	if !g.gl.Call("getShaderParameter", shader, g.consts.compileStatus).Bool() {
		log := g.gl.Call("getShaderInfoLog", shader).String()
		g.gl.Call("deleteShader", shader)
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: log}
	}
	return lchart.Shader(g.store(shader)), nil
}

func (g *Graphics) DeleteShader(s lchart.Shader) {
	g.gl.Call("deleteShader", g.release(uint32(s)))
}

func (g *Graphics) LinkProgram(vertex, fragment lchart.Shader) (lchart.Program, error) {
	program := g.gl.Call("createProgram")
	if program.IsNull() {
		return 0, &lchart.LinkError{Log: "unable to create program object"}
	}
	g.gl.Call("attachShader", program, g.lookup(uint32(vertex)))
	g.gl.Call("attachShader", program, g.lookup(uint32(fragment)))
	g.gl.Call("linkProgram", program)
	if !g.gl.Call("getProgramParameter", program, g.consts.linkStatus).Bool() {
		log := g.gl.Call("getProgramInfoLog", program).String()
		g.gl.Call("deleteProgram", program)
		return 0, &lchart.LinkError{Log: log}
	}
	return lchart.Program(g.store(program)), nil
}

// DeleteProgram deletes the program and forgets its uniform handles.
func (g *Graphics) DeleteProgram(p lchart.Program) {
	for key, id := range g.byName {
		if key.program == uint32(p) {
			delete(g.byName, key)
			delete(g.uniforms, id)
		}
	}
	g.gl.Call("deleteProgram", g.release(uint32(p)))
}

func (g *Graphics) UseProgram(p lchart.Program) {
	g.gl.Call("useProgram", g.lookup(uint32(p)))
}

func (g *Graphics) AttribLocation(p lchart.Program, name string) (uint32, bool) {
	loc := g.gl.Call("getAttribLocation", g.lookup(uint32(p)), name).Int()
	if loc < 0 {
		return 0, false
	}
	return uint32(loc), true
}

// UniformLocation stores the WebGLUniformLocation object behind a handle.
// Looking up the same name on the same program returns the same handle.
func (g *Graphics) UniformLocation(p lchart.Program, name string) (lchart.UniformLocation, bool) {
	key := uniformKey{program: uint32(p), name: name}
	if id, ok := g.byName[key]; ok {
		return id, true
	}
	loc := g.gl.Call("getUniformLocation", g.lookup(uint32(p)), name)
	if loc.IsNull() || loc.IsUndefined() {
		return 0, false
	}
	g.nextID++
	id := lchart.UniformLocation(g.nextID)
	g.uniforms[id] = uniform{program: uint32(p), loc: loc}
	g.byName[key] = id
	return id, true
}

func (g *Graphics) EnableVertexAttribArray(index uint32) {
	g.gl.Call("enableVertexAttribArray", index)
}

func (g *Graphics) VertexAttribPointer(index uint32, size, stride, offset int) {
	g.gl.Call("vertexAttribPointer", index, size, g.consts.floatType, false, stride, offset)
}

func (g *Graphics) UniformMatrix3(loc lchart.UniformLocation, m lchart.Mat3) {
	u, ok := g.uniforms[loc]
	if !ok {
		return
	}
	arr := js.Global().Get("Float32Array").New(len(m))
	for i, v := range m {
		arr.SetIndex(i, v)
	}
	g.gl.Call("uniformMatrix3fv", u.loc, false, arr)
}

func (g *Graphics) Viewport(x, y, width, height int) {
	g.gl.Call("viewport", x, y, width, height)
}

func (g *Graphics) ClearColor(r, gr, b, a float32) {
	g.gl.Call("clearColor", r, gr, b, a)
}

func (g *Graphics) Clear() {
	g.gl.Call("clear", g.consts.colorBufferBit)
}

func (g *Graphics) DrawLineStrip(count int) {
	g.gl.Call("drawElements", g.consts.lineStrip, count, g.consts.unsignedShort, 0)
}

// SurfaceSize reads the drawing buffer size of the context's canvas.
func (g *Graphics) SurfaceSize() (int, int, error) {
	canvas := g.gl.Get("canvas")
	if canvas.IsNull() || canvas.IsUndefined() {
		return 0, 0, fmt.Errorf("%w: context has no canvas", lchart.ErrSurfaceUnavailable)
	}
	if g.gl.Call("isContextLost").Bool() {
		return 0, 0, fmt.Errorf("%w: context lost", lchart.ErrSurfaceUnavailable)
	}
	return canvas.Get("width").Int(), canvas.Get("height").Int(), nil
}
