package lchart

import (
	"errors"
	"fmt"
	"log/slog"
)

// Renderer owns one shader program and one pair of geometry buffers and
// draws the current geometry as a line strip. It is not safe for
// concurrent use.
type Renderer struct {
	g       Graphics
	program *shaderProgram
	buffers geometryBuffers
	logger  *slog.Logger
	usage   BufferUsage

	clearColor [4]float32
	geometry   Geometry
	matrix     Mat3
	deleted    bool
}

// NewRenderer builds the shader program and allocates empty buffers.
// On failure nothing allocated so far is left behind.
func NewRenderer(g Graphics, opts ...Option) (*Renderer, error) {
	c := applyOptions(opts)

	program, err := buildProgram(g, c.vertexSource, c.fragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader: %w", err)
	}

	buffers, err := createBuffers(g)
	if err != nil {
		g.DeleteProgram(program.program)
		return nil, err
	}

	r := &Renderer{
		g:       g,
		program: program,
		buffers: buffers,
		logger:  c.logger,
		usage:   c.usage,
		geometry: Geometry{
			Points: []Vec2{
				{X: -0.5, Y: -0.5},
				{X: -0.5, Y: 0.5},
				{X: 0.5, Y: 0.5},
				{X: 0.5, Y: -0.5},
			},
			Indices: []uint16{0, 1, 2, 3},
		},
		matrix: Identity(),
	}
	cr, cg, cb, ca := unpackRGBAf(c.clearColor)
	r.clearColor = [4]float32{cr, cg, cb, ca}

	r.logger.Debug("renderer created", "program", program.String(),
		"vertexBuffer", buffers.vertex, "indexBuffer", buffers.index)

	return r, nil
}

// SetGeometry replaces the geometry drawn by the next Draw.
// The slices are copied.
func (r *Renderer) SetGeometry(points []Vec2, indices []uint16) error {
	geom := Geometry{
		Points:  append([]Vec2(nil), points...),
		Indices: append([]uint16(nil), indices...),
	}
	if err := geom.Validate(); err != nil {
		return err
	}
	r.geometry = geom
	return nil
}

// SetTransform replaces the data-to-clip matrix used by the next Draw.
func (r *Renderer) SetTransform(m Mat3) {
	r.matrix = m
}

// Geometry returns the current geometry. Callers must not modify it.
func (r *Renderer) Geometry() Geometry {
	return r.geometry
}

// Transform returns the current matrix.
func (r *Renderer) Transform() Mat3 {
	return r.matrix
}

// Draw uploads the current geometry and draws it over the whole surface.
// Every call rebinds all state and re-uploads both buffers.
func (r *Renderer) Draw() error {
	if r.deleted {
		return ErrClosed
	}

	// Both lookups happen before any GPU state is touched.
	matrixLoc, err := r.program.matrixLocation()
	if err != nil {
		return err
	}
	width, height, err := r.g.SurfaceSize()
	if err != nil {
		if !errors.Is(err, ErrSurfaceUnavailable) {
			err = fmt.Errorf("%w: %v", ErrSurfaceUnavailable, err)
		}
		return err
	}

	g := r.g
	g.UseProgram(r.program.program)
	g.EnableVertexAttribArray(r.program.positionLoc)

	if err := uploadVertices(g, r.buffers.vertex, r.geometry.Points, r.usage); err != nil {
		return err
	}
	if err := uploadIndices(g, r.buffers.index, r.geometry.Indices, r.usage); err != nil {
		return err
	}

	g.Viewport(0, 0, width, height)
	g.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	g.Clear()

	// VertexAttribPointer captures whatever is bound to ArrayBuffer.
	g.BindBuffer(ArrayBuffer, r.buffers.vertex)
	g.VertexAttribPointer(r.program.positionLoc, 2, 0, 0)
	g.UniformMatrix3(matrixLoc, r.matrix)
	g.DrawLineStrip(len(r.geometry.Indices))

	r.logger.Debug("draw",
		"points", len(r.geometry.Points),
		"indices", len(r.geometry.Indices),
		"width", width, "height", height)

	return nil
}

// Delete releases GPU resources. The renderer is unusable afterwards.
func (r *Renderer) Delete() {
	if r.deleted {
		return
	}
	r.deleted = true
	r.buffers.delete(r.g)
	if r.program != nil && r.program.program != 0 {
		r.g.DeleteProgram(r.program.program)
	}
}
