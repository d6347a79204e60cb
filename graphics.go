package lchart

// Handles are backend-assigned identifiers. Zero is never a valid handle.
type (
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// UniformLocation identifies a uniform inside a linked program.
type UniformLocation int32

// ShaderKind selects the pipeline stage a shader is compiled for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	switch k {
	case VertexShader:
		return "vertex"
	case FragmentShader:
		return "fragment"
	default:
		return "unknown"
	}
}

// BufferTarget is the binding point a buffer is bound to.
type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BufferUsage is the usage hint passed with an upload.
type BufferUsage int

const (
	StaticDraw BufferUsage = iota
	DynamicDraw
)

// Graphics is the rendering capability a backend provides to the chart.
// Every backend (desktop OpenGL, WebGL, the software rasterizer) implements
// it; the renderer never talks to a graphics API directly.
//
// Methods that can fail on the GPU side return errors. CompileShader should
// return *ShaderCompileError and LinkProgram *LinkError carrying the driver
// log; other error values are wrapped into those types by the caller.
// SurfaceSize returns an error wrapping ErrSurfaceUnavailable when the
// surface is gone.
type Graphics interface {
	CreateBuffer() (Buffer, error)
	DeleteBuffer(b Buffer)
	BindBuffer(target BufferTarget, b Buffer)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)

	CompileShader(kind ShaderKind, source string) (Shader, error)
	DeleteShader(s Shader)
	LinkProgram(vertex, fragment Shader) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)

	AttribLocation(p Program, name string) (uint32, bool)
	UniformLocation(p Program, name string) (UniformLocation, bool)
	EnableVertexAttribArray(index uint32)
	// VertexAttribPointer describes float32 vertex data in the bound array buffer.
	VertexAttribPointer(index uint32, size, stride, offset int)
	UniformMatrix3(loc UniformLocation, m Mat3)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	// DrawLineStrip draws count uint16 indices from the bound element buffer.
	DrawLineStrip(count int)

	SurfaceSize() (width, height int, err error)
}
