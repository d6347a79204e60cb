package lchart

import (
	"errors"
	"fmt"
)

const (
	positionAttribute = "a_position"
	matrixUniform     = "u_matrix"
)

// VertexShaderSource maps each 2D position through the u_matrix affine
// transform. No #version line: the same text is valid GLSL 1.10 and GLSL ES 1.00.
const VertexShaderSource = `
attribute vec2 a_position;

uniform mat3 u_matrix;

void main(void) {
    gl_Position = vec4(u_matrix * vec3(a_position, 1.0), 1.0);
}
`

// FragmentShaderSource paints every fragment solid white.
const FragmentShaderSource = `
#ifdef GL_ES
precision mediump float;
#endif

void main(void) {
    gl_FragColor = vec4(1.0, 1.0, 1.0, 1.0);
}
`

// shaderProgram is a linked program plus the locations the renderer needs.
type shaderProgram struct {
	program     Program
	positionLoc uint32
	matrixLoc   UniformLocation
	matrixOK    bool
}

// compileShader compiles a single shader of the given kind.
func compileShader(g Graphics, kind ShaderKind, source string) (Shader, error) {
	s, err := g.CompileShader(kind, source)
	if err != nil {
		var compileErr *ShaderCompileError
		if errors.As(err, &compileErr) {
			return 0, err
		}
		return 0, &ShaderCompileError{Kind: kind, Log: err.Error()}
	}
	return s, nil
}

// linkProgram links a vertex and a fragment shader into a program.
func linkProgram(g Graphics, vertex, fragment Shader) (Program, error) {
	p, err := g.LinkProgram(vertex, fragment)
	if err != nil {
		var linkErr *LinkError
		if errors.As(err, &linkErr) {
			return 0, err
		}
		return 0, &LinkError{Log: err.Error()}
	}
	return p, nil
}

// buildProgram compiles both stages, links them and looks up the position
// attribute and matrix uniform. Shaders are released once linked.
func buildProgram(g Graphics, vertexSource, fragmentSource string) (*shaderProgram, error) {
	vs, err := compileShader(g, VertexShader, vertexSource)
	if err != nil {
		return nil, err
	}
	defer g.DeleteShader(vs)

	fs, err := compileShader(g, FragmentShader, fragmentSource)
	if err != nil {
		return nil, err
	}
	defer g.DeleteShader(fs)

	program, err := linkProgram(g, vs, fs)
	if err != nil {
		return nil, err
	}

	positionLoc, ok := g.AttribLocation(program, positionAttribute)
	if !ok {
		g.DeleteProgram(program)
		return nil, &AttributeLookupError{Name: positionAttribute}
	}

	// A missing matrix uniform is reported by Draw, not here.
	matrixLoc, matrixOK := g.UniformLocation(program, matrixUniform)

	return &shaderProgram{
		program:     program,
		positionLoc: positionLoc,
		matrixLoc:   matrixLoc,
		matrixOK:    matrixOK,
	}, nil
}

// matrixLocation returns the u_matrix location or a lookup error.
func (sp *shaderProgram) matrixLocation() (UniformLocation, error) {
	if !sp.matrixOK {
		return 0, &UniformLookupError{Name: matrixUniform}
	}
	return sp.matrixLoc, nil
}

func (sp *shaderProgram) String() string {
	return fmt.Sprintf("program=%d position=%d matrix=%d", sp.program, sp.positionLoc, sp.matrixLoc)
}
