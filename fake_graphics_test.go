package lchart_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-theft-auto/lchart"
)

// fakeGraphics records calls and keeps just enough state to check what the
// renderer uploaded and drew.
type fakeGraphics struct {
	calls []string

	width, height int
	surfaceErr    error

	failBufferAt int // 1-based CreateBuffer call that fails; 0 = never
	bufferCalls  int
	noAttribute  bool
	noUniform    bool
	failLink     bool

	nextID   uint32
	buffers  map[lchart.Buffer][]byte
	bound    map[lchart.BufferTarget]lchart.Buffer
	shaders  map[lchart.Shader]bool
	programs map[lchart.Program]bool

	usages     []lchart.BufferUsage
	matrix     lchart.Mat3
	clearColor [4]float32
	viewport   [4]int
	drawCount  int
	draws      int
}

func newFakeGraphics() *fakeGraphics {
	return &fakeGraphics{
		width:    640,
		height:   480,
		buffers:  make(map[lchart.Buffer][]byte),
		bound:    make(map[lchart.BufferTarget]lchart.Buffer),
		shaders:  make(map[lchart.Shader]bool),
		programs: make(map[lchart.Program]bool),
	}
}

func (f *fakeGraphics) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeGraphics) id() uint32 {
	f.nextID++
	return f.nextID
}

func (f *fakeGraphics) CreateBuffer() (lchart.Buffer, error) {
	f.bufferCalls++
	if f.bufferCalls == f.failBufferAt {
		return 0, errors.New("out of memory")
	}
	b := lchart.Buffer(f.id())
	f.buffers[b] = nil
	f.record("CreateBuffer")
	return b, nil
}

func (f *fakeGraphics) DeleteBuffer(b lchart.Buffer) {
	delete(f.buffers, b)
	f.record("DeleteBuffer")
}

func (f *fakeGraphics) BindBuffer(target lchart.BufferTarget, b lchart.Buffer) {
	f.bound[target] = b
	f.record("BindBuffer")
}

func (f *fakeGraphics) BufferData(target lchart.BufferTarget, data []byte, usage lchart.BufferUsage) {
	f.buffers[f.bound[target]] = append([]byte(nil), data...)
	f.usages = append(f.usages, usage)
	f.record("BufferData")
}

func (f *fakeGraphics) CompileShader(kind lchart.ShaderKind, source string) (lchart.Shader, error) {
	if !strings.Contains(source, "void main") {
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: "ERROR: 0:1: 'main' : missing"}
	}
	s := lchart.Shader(f.id())
	f.shaders[s] = true
	f.record("CompileShader")
	return s, nil
}

func (f *fakeGraphics) DeleteShader(s lchart.Shader) {
	delete(f.shaders, s)
	f.record("DeleteShader")
}

func (f *fakeGraphics) LinkProgram(vertex, fragment lchart.Shader) (lchart.Program, error) {
	if f.failLink {
		return 0, errors.New("attribute mismatch")
	}
	p := lchart.Program(f.id())
	f.programs[p] = true
	f.record("LinkProgram")
	return p, nil
}

func (f *fakeGraphics) DeleteProgram(p lchart.Program) {
	delete(f.programs, p)
	f.record("DeleteProgram")
}

func (f *fakeGraphics) UseProgram(p lchart.Program) { f.record("UseProgram") }

func (f *fakeGraphics) AttribLocation(p lchart.Program, name string) (uint32, bool) {
	return 3, !f.noAttribute
}

func (f *fakeGraphics) UniformLocation(p lchart.Program, name string) (lchart.UniformLocation, bool) {
	return 7, !f.noUniform
}

func (f *fakeGraphics) EnableVertexAttribArray(index uint32) { f.record("EnableVertexAttribArray") }

func (f *fakeGraphics) VertexAttribPointer(index uint32, size, stride, offset int) {
	f.record("VertexAttribPointer %d %d %d %d", index, size, stride, offset)
}

func (f *fakeGraphics) UniformMatrix3(loc lchart.UniformLocation, m lchart.Mat3) {
	f.matrix = m
	f.record("UniformMatrix3")
}

func (f *fakeGraphics) Viewport(x, y, width, height int) {
	f.viewport = [4]int{x, y, width, height}
	f.record("Viewport")
}

func (f *fakeGraphics) ClearColor(r, g, b, a float32) {
	f.clearColor = [4]float32{r, g, b, a}
	f.record("ClearColor")
}

func (f *fakeGraphics) Clear() { f.record("Clear") }

func (f *fakeGraphics) DrawLineStrip(count int) {
	f.drawCount = count
	f.draws++
	f.record("DrawLineStrip")
}

func (f *fakeGraphics) SurfaceSize() (int, int, error) {
	if f.surfaceErr != nil {
		return 0, 0, f.surfaceErr
	}
	return f.width, f.height, nil
}

// reset forgets recorded calls.
func (f *fakeGraphics) reset() {
	f.calls = nil
}

// boundIndices decodes the buffer bound to ElementArrayBuffer.
func (f *fakeGraphics) boundIndices() []uint16 {
	data := f.buffers[f.bound[lchart.ElementArrayBuffer]]
	out := make([]uint16, len(data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(data[i*2:])
	}
	return out
}

// vertexData decodes the buffer bound to ArrayBuffer.
func (f *fakeGraphics) vertexData() []lchart.Vec2 {
	data := f.buffers[f.bound[lchart.ArrayBuffer]]
	out := make([]lchart.Vec2, len(data)/8)
	for i := range out {
		out[i] = lchart.Vec2{
			X: math.Float32frombits(binary.LittleEndian.Uint32(data[i*8:])),
			Y: math.Float32frombits(binary.LittleEndian.Uint32(data[i*8+4:])),
		}
	}
	return out
}
