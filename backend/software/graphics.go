// Package software is a CPU backend for the lchart package. It draws into
// an *image.RGBA, so charts can be rendered headless and inspected in tests.
//
// The pipeline is fixed-function: the program's first vec2 attribute is the
// position and its mat3 uniform (identity until set) maps it to clip space,
// which is what the chart's vertex shader computes. The fragment stage paints
// the constant color the fragment shader assigns to gl_FragColor.
package software

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/go-theft-auto/lchart"
)

// Option configures a Graphics.
type Option func(*Graphics)

// WithLineWidth sets the stroke width in pixels (default 1).
func WithLineWidth(w float32) Option {
	return func(g *Graphics) {
		if w > 0 {
			g.lineWidth = w
		}
	}
}

// WithBufferLimit makes CreateBuffer fail once n buffers are alive,
// simulating GPU memory exhaustion.
func WithBufferLimit(n int) Option {
	return func(g *Graphics) { g.bufferLimit = n }
}

type program struct {
	vertex   *compiledShader
	fragment *compiledShader
	// attributes and uniforms are indexed by location.
	attributes []declaration
	uniforms   []declaration
	matrices   map[lchart.UniformLocation]lchart.Mat3
}

type attribPointer struct {
	buffer lchart.Buffer
	size   int
	stride int
	offset int
	set    bool
}

// Graphics implements lchart.Graphics on the CPU.
type Graphics struct {
	img       *image.RGBA
	detached  bool
	lineWidth float32

	nextID      uint32
	bufferLimit int
	buffers     map[lchart.Buffer][]byte
	bound       map[lchart.BufferTarget]lchart.Buffer
	shaders     map[lchart.Shader]*compiledShader
	programs    map[lchart.Program]*program
	current     lchart.Program

	enabled  map[uint32]bool
	pointers map[uint32]attribPointer

	viewport   image.Rectangle
	clearColor color.NRGBA
	draws      int
}

var _ lchart.Graphics = (*Graphics)(nil)

// New creates a backend with a width x height surface.
func New(width, height int, opts ...Option) *Graphics {
	g := &Graphics{
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		lineWidth: 1,
		buffers:   make(map[lchart.Buffer][]byte),
		bound:     make(map[lchart.BufferTarget]lchart.Buffer),
		shaders:   make(map[lchart.Shader]*compiledShader),
		programs:  make(map[lchart.Program]*program),
		enabled:   make(map[uint32]bool),
		pointers:  make(map[uint32]attribPointer),
		viewport:  image.Rect(0, 0, width, height),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Image returns the surface. It is updated in place by Clear and draws.
func (g *Graphics) Image() *image.RGBA {
	return g.img
}

// Resize replaces the surface with a cleared one of the new size.
func (g *Graphics) Resize(width, height int) {
	g.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Detach makes the surface unavailable, as when a canvas leaves the page.
func (g *Graphics) Detach() {
	g.detached = true
}

// DrawCalls returns how many line strips were drawn.
func (g *Graphics) DrawCalls() int {
	return g.draws
}

func (g *Graphics) newID() uint32 {
	g.nextID++
	return g.nextID
}

// CreateBuffer allocates an empty buffer.
func (g *Graphics) CreateBuffer() (lchart.Buffer, error) {
	if g.bufferLimit > 0 && len(g.buffers) >= g.bufferLimit {
		return 0, fmt.Errorf("out of memory: %d buffers alive", len(g.buffers))
	}
	b := lchart.Buffer(g.newID())
	g.buffers[b] = nil
	return b, nil
}

// DeleteBuffer frees a buffer and unbinds it.
func (g *Graphics) DeleteBuffer(b lchart.Buffer) {
	delete(g.buffers, b)
	for t, bound := range g.bound {
		if bound == b {
			delete(g.bound, t)
		}
	}
}

// BindBuffer binds b to target.
func (g *Graphics) BindBuffer(target lchart.BufferTarget, b lchart.Buffer) {
	g.bound[target] = b
}

// BufferData copies data into the buffer bound to target.
func (g *Graphics) BufferData(target lchart.BufferTarget, data []byte, _ lchart.BufferUsage) {
	b, ok := g.bound[target]
	if !ok {
		return
	}
	if _, alive := g.buffers[b]; !alive {
		return
	}
	g.buffers[b] = append([]byte(nil), data...)
}

// CompileShader validates source and records its interface.
func (g *Graphics) CompileShader(kind lchart.ShaderKind, source string) (lchart.Shader, error) {
	sh, err := parseShader(kind, source)
	if err != nil {
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: err.Error()}
	}
	s := lchart.Shader(g.newID())
	g.shaders[s] = sh
	return s, nil
}

// DeleteShader forgets a shader. Linked programs keep their copy.
func (g *Graphics) DeleteShader(s lchart.Shader) {
	delete(g.shaders, s)
}

// LinkProgram checks stage kinds and that shared uniforms agree on type.
func (g *Graphics) LinkProgram(vertex, fragment lchart.Shader) (lchart.Program, error) {
	vs, ok := g.shaders[vertex]
	if !ok || vs.kind != lchart.VertexShader {
		return 0, &lchart.LinkError{Log: "ERROR: no valid vertex shader attached"}
	}
	fs, ok := g.shaders[fragment]
	if !ok || fs.kind != lchart.FragmentShader {
		return 0, &lchart.LinkError{Log: "ERROR: no valid fragment shader attached"}
	}

	p := &program{
		vertex:     vs,
		fragment:   fs,
		attributes: vs.attributes,
		matrices:   make(map[lchart.UniformLocation]lchart.Mat3),
	}
	seen := make(map[string]string)
	for _, u := range append(append([]declaration(nil), vs.uniforms...), fs.uniforms...) {
		if typ, dup := seen[u.name]; dup {
			if typ != u.typ {
				return 0, &lchart.LinkError{Log: fmt.Sprintf("ERROR: uniform %q declared as %s and %s", u.name, typ, u.typ)}
			}
			continue
		}
		seen[u.name] = u.typ
		p.uniforms = append(p.uniforms, u)
	}

	id := lchart.Program(g.newID())
	g.programs[id] = p
	return id, nil
}

// DeleteProgram frees a program.
func (g *Graphics) DeleteProgram(p lchart.Program) {
	delete(g.programs, p)
	if g.current == p {
		g.current = 0
	}
}

// UseProgram makes p current.
func (g *Graphics) UseProgram(p lchart.Program) {
	g.current = p
}

// AttribLocation returns the declaration index of an attribute.
func (g *Graphics) AttribLocation(p lchart.Program, name string) (uint32, bool) {
	prog, ok := g.programs[p]
	if !ok {
		return 0, false
	}
	for i, a := range prog.attributes {
		if a.name == name {
			return uint32(i), true
		}
	}
	return 0, false
}

// UniformLocation returns the declaration index of a uniform.
func (g *Graphics) UniformLocation(p lchart.Program, name string) (lchart.UniformLocation, bool) {
	prog, ok := g.programs[p]
	if !ok {
		return 0, false
	}
	for i, u := range prog.uniforms {
		if u.name == name {
			return lchart.UniformLocation(i), true
		}
	}
	return 0, false
}

// EnableVertexAttribArray enables an attribute slot.
func (g *Graphics) EnableVertexAttribArray(index uint32) {
	g.enabled[index] = true
}

// VertexAttribPointer captures the array buffer binding for index.
func (g *Graphics) VertexAttribPointer(index uint32, size, stride, offset int) {
	g.pointers[index] = attribPointer{
		buffer: g.bound[lchart.ArrayBuffer],
		size:   size,
		stride: stride,
		offset: offset,
		set:    true,
	}
}

// UniformMatrix3 sets a mat3 uniform of the current program.
// Calls for locations that are not mat3 are ignored, like a GL error.
func (g *Graphics) UniformMatrix3(loc lchart.UniformLocation, m lchart.Mat3) {
	prog, ok := g.programs[g.current]
	if !ok || int(loc) < 0 || int(loc) >= len(prog.uniforms) {
		return
	}
	if prog.uniforms[loc].typ != "mat3" {
		return
	}
	prog.matrices[loc] = m
}

// Viewport sets the target rectangle in GL window coordinates (origin bottom-left).
func (g *Graphics) Viewport(x, y, width, height int) {
	g.viewport = image.Rect(x, y, x+width, y+height)
}

// ClearColor sets the clear color.
func (g *Graphics) ClearColor(r, gr, b, a float32) {
	g.clearColor = color.NRGBA{R: unit8(r), G: unit8(gr), B: unit8(b), A: unit8(a)}
}

// Clear fills the whole surface with the clear color.
func (g *Graphics) Clear() {
	draw.Draw(g.img, g.img.Bounds(), image.NewUniform(g.clearColor), image.Point{}, draw.Src)
}

// DrawLineStrip reads count indices from the bound element buffer and
// strokes the resulting polyline. Incomplete state draws nothing.
func (g *Graphics) DrawLineStrip(count int) {
	prog, ok := g.programs[g.current]
	if !ok || count < 2 {
		return
	}
	points, err := g.fetchVertices(prog, count)
	if err != nil {
		return
	}

	matrix := lchart.Identity()
	for i, u := range prog.uniforms {
		if u.typ == "mat3" {
			if m, set := prog.matrices[lchart.UniformLocation(i)]; set {
				matrix = m
			}
			break
		}
	}

	window := make([]lchart.Vec2, len(points))
	for i, p := range points {
		window[i] = g.clipToWindow(matrix.Apply(p))
	}
	g.strokePolyline(window, prog.fragment.color)
	g.draws++
}

var errIncomplete = errors.New("incomplete vertex state")

// fetchVertices resolves count indices into positions.
func (g *Graphics) fetchVertices(prog *program, count int) ([]lchart.Vec2, error) {
	var posLoc uint32
	found := false
	for i, a := range prog.attributes {
		if a.typ == "vec2" {
			posLoc, found = uint32(i), true
			break
		}
	}
	if !found || !g.enabled[posLoc] {
		return nil, errIncomplete
	}
	ptr := g.pointers[posLoc]
	if !ptr.set || ptr.size < 2 {
		return nil, errIncomplete
	}
	vertexData, ok := g.buffers[ptr.buffer]
	if !ok {
		return nil, errIncomplete
	}
	indexData, ok := g.buffers[g.bound[lchart.ElementArrayBuffer]]
	if !ok || len(indexData) < count*2 {
		return nil, errIncomplete
	}

	stride := ptr.stride
	if stride == 0 {
		stride = ptr.size * 4
	}
	points := make([]lchart.Vec2, count)
	for i := range points {
		idx := int(binary.LittleEndian.Uint16(indexData[i*2:]))
		at := ptr.offset + idx*stride
		if at < 0 || at+8 > len(vertexData) {
			return nil, errIncomplete
		}
		points[i] = lchart.Vec2{
			X: math.Float32frombits(binary.LittleEndian.Uint32(vertexData[at:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(vertexData[at+4:])),
		}
	}
	return points, nil
}

// clipToWindow maps clip coordinates into image pixels (origin top-left).
func (g *Graphics) clipToWindow(p lchart.Vec2) lchart.Vec2 {
	vp := g.viewport
	h := float32(g.img.Bounds().Dy())
	x := float32(vp.Min.X) + (p.X+1)/2*float32(vp.Dx())
	y := float32(vp.Min.Y) + (p.Y+1)/2*float32(vp.Dy())
	return lchart.Vec2{X: x, Y: h - y}
}

// SurfaceSize returns the image size.
func (g *Graphics) SurfaceSize() (int, int, error) {
	if g.detached {
		return 0, 0, fmt.Errorf("%w: surface detached", lchart.ErrSurfaceUnavailable)
	}
	b := g.img.Bounds()
	return b.Dx(), b.Dy(), nil
}

func unit8(v float32) uint8 {
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
