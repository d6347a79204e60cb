// Package opengl provides a desktop OpenGL 2.1 backend for the lchart package.
package opengl

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/go-gl/gl/v2.1/gl"

	"github.com/go-theft-auto/lchart"
)

// Surface reports the drawable size of the host surface in pixels.
type Surface interface {
	Size() (width, height int, err error)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func() (width, height int, err error)

// Size calls f.
func (f SurfaceFunc) Size() (int, int, error) { return f() }

// FixedSurface is a Surface of constant size, e.g. an offscreen framebuffer.
func FixedSurface(width, height int) Surface {
	return SurfaceFunc(func() (int, int, error) { return width, height, nil })
}

// Graphics implements lchart.Graphics on the current OpenGL context.
// gl.Init must have been called on the context's thread.
type Graphics struct {
	surface Surface
}

var _ lchart.Graphics = (*Graphics)(nil)

// NewGraphics creates a backend drawing into surface.
func NewGraphics(surface Surface) *Graphics {
	return &Graphics{surface: surface}
}

func glTarget(t lchart.BufferTarget) uint32 {
	if t == lchart.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glUsage(u lchart.BufferUsage) uint32 {
	if u == lchart.DynamicDraw {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func glShaderType(k lchart.ShaderKind) uint32 {
	if k == lchart.FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CreateBuffer generates a buffer object name.
func (g *Graphics) CreateBuffer() (lchart.Buffer, error) {
	var b uint32
	gl.GenBuffers(1, &b)
	if b == 0 {
		return 0, fmt.Errorf("glGenBuffers returned 0 (error 0x%x)", gl.GetError())
	}
	return lchart.Buffer(b), nil
}

// DeleteBuffer deletes a buffer object.
func (g *Graphics) DeleteBuffer(b lchart.Buffer) {
	id := uint32(b)
	gl.DeleteBuffers(1, &id)
}

// BindBuffer binds b to target.
func (g *Graphics) BindBuffer(target lchart.BufferTarget, b lchart.Buffer) {
	gl.BindBuffer(glTarget(target), uint32(b))
}

// BufferData replaces the contents of the buffer bound to target.
func (g *Graphics) BufferData(target lchart.BufferTarget, data []byte, usage lchart.BufferUsage) {
	if len(data) == 0 {
		gl.BufferData(glTarget(target), 0, nil, glUsage(usage))
		return
	}
	gl.BufferData(glTarget(target), len(data), gl.Ptr(data), glUsage(usage))
}

// CompileShader compiles source, returning the info log on failure.
func (g *Graphics) CompileShader(kind lchart.ShaderKind, source string) (lchart.Shader, error) {
	shader := gl.CreateShader(glShaderType(kind))
	if shader == 0 {
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: "glCreateShader returned 0"}
	}
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, &lchart.ShaderCompileError{Kind: kind, Log: cString(log)}
	}
	return lchart.Shader(shader), nil
}

// DeleteShader deletes a shader object.
func (g *Graphics) DeleteShader(s lchart.Shader) {
	gl.DeleteShader(uint32(s))
}

// LinkProgram links vertex and fragment into a new program.
func (g *Graphics) LinkProgram(vertex, fragment lchart.Shader) (lchart.Program, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, uint32(vertex))
	gl.AttachShader(program, uint32(fragment))
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := make([]byte, logLength+1)
		gl.GetProgramInfoLog(program, logLength, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, &lchart.LinkError{Log: cString(log)}
	}

	// Shaders are linked into the program now.
	gl.DetachShader(program, uint32(vertex))
	gl.DetachShader(program, uint32(fragment))
	return lchart.Program(program), nil
}

// DeleteProgram deletes a program object.
func (g *Graphics) DeleteProgram(p lchart.Program) {
	gl.DeleteProgram(uint32(p))
}

// UseProgram installs p for rendering.
func (g *Graphics) UseProgram(p lchart.Program) {
	gl.UseProgram(uint32(p))
}

// AttribLocation returns the slot of an active attribute.
func (g *Graphics) AttribLocation(p lchart.Program, name string) (uint32, bool) {
	loc := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return uint32(loc), true
}

// UniformLocation returns the location of an active uniform.
func (g *Graphics) UniformLocation(p lchart.Program, name string) (lchart.UniformLocation, bool) {
	loc := gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
	if loc < 0 {
		return 0, false
	}
	return lchart.UniformLocation(loc), true
}

// EnableVertexAttribArray enables an attribute slot.
func (g *Graphics) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

// VertexAttribPointer points index at float data in the bound array buffer.
func (g *Graphics) VertexAttribPointer(index uint32, size, stride, offset int) {
	gl.VertexAttribPointer(index, int32(size), gl.FLOAT, false, int32(stride), gl.PtrOffset(offset))
}

// UniformMatrix3 uploads a column-major mat3.
func (g *Graphics) UniformMatrix3(loc lchart.UniformLocation, m lchart.Mat3) {
	gl.UniformMatrix3fv(int32(loc), 1, false, &m[0])
}

// Viewport sets the viewport rectangle.
func (g *Graphics) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// ClearColor sets the clear color.
func (g *Graphics) ClearColor(r, gr, b, a float32) {
	gl.ClearColor(r, gr, b, a)
}

// Clear clears the color buffer.
func (g *Graphics) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawLineStrip draws count uint16 indices from the bound element buffer.
func (g *Graphics) DrawLineStrip(count int) {
	gl.DrawElements(gl.LINE_STRIP, int32(count), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
}

// SurfaceSize queries the host surface.
func (g *Graphics) SurfaceSize() (int, int, error) {
	if g.surface == nil {
		return 0, 0, fmt.Errorf("%w: no surface", lchart.ErrSurfaceUnavailable)
	}
	w, h, err := g.surface.Size()
	if err != nil {
		if errors.Is(err, lchart.ErrSurfaceUnavailable) {
			return 0, 0, err
		}
		return 0, 0, fmt.Errorf("%w: %v", lchart.ErrSurfaceUnavailable, err)
	}
	return w, h, nil
}

// ReadPixels reads the current framebuffer into an image, top row first.
func (g *Graphics) ReadPixels() (*image.RGBA, error) {
	w, h, err := g.SurfaceSize()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return img, nil
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := w * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < h/2; y++ {
		top := y * rowLen
		bot := (h - 1 - y) * rowLen
		copy(tmp, img.Pix[top:top+rowLen])
		copy(img.Pix[top:top+rowLen], img.Pix[bot:bot+rowLen])
		copy(img.Pix[bot:bot+rowLen], tmp)
	}
	return img, nil
}

// cString trims a NUL-terminated driver log.
func cString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}

// initGL loads OpenGL function pointers for the current context.
func initGL() error {
	return gl.Init()
}
