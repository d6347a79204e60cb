package lchart

import (
	"fmt"
	"log/slog"
)

// Chart plots a sampled function as a single polyline.
//
// Usage:
//
//	chart, err := lchart.New(graphics)
//	if err != nil {
//	    return err
//	}
//	defer chart.Close()
//
//	err = chart.Plot(lchart.Sin, 100, 0, 2*math.Pi, -1, 1)
type Chart struct {
	renderer *Renderer
	logger   *slog.Logger
	closed   bool
}

// New creates a chart drawing through g. Shader or buffer failures are
// returned and no chart is created.
func New(g Graphics, opts ...Option) (*Chart, error) {
	c := applyOptions(opts)

	r, err := NewRenderer(g, opts...)
	if err != nil {
		return nil, err
	}

	return &Chart{renderer: r, logger: c.logger}, nil
}

// Plot samples s at pointCount points over [fromX, toX] and draws them as
// a line strip mapped from [fromX,toX]x[fromY,toY] to the whole surface.
// Points outside the bounds are clipped by the GPU. Argument errors are
// reported before any GPU call is made.
func (c *Chart) Plot(s Sampler, pointCount int, fromX, toX, fromY, toY float32) error {
	if err := c.checkArgs(s, pointCount); err != nil {
		return err
	}

	matrix, err := AffineToClip(fromX, toX, fromY, toY)
	if err != nil {
		return err
	}

	points := Sample(s, pointCount, fromX, toX)
	return c.plotPoints(points, matrix, Bounds{FromX: fromX, ToX: toX, FromY: fromY, ToY: toY})
}

func (c *Chart) checkArgs(s Sampler, pointCount int) error {
	if c.closed {
		return ErrClosed
	}
	if s == nil {
		return ErrNoSampler
	}
	if pointCount < 2 || pointCount > MaxPoints {
		return &InvalidSampleCountError{Count: pointCount}
	}
	return nil
}

func (c *Chart) plotPoints(points []Vec2, matrix Mat3, b Bounds) error {
	if err := c.renderer.SetGeometry(points, LineStripIndices(len(points))); err != nil {
		return err
	}
	c.renderer.SetTransform(matrix)

	c.logger.Debug("plot",
		"points", len(points),
		"fromX", b.FromX, "toX", b.ToX,
		"fromY", b.FromY, "toY", b.ToY)

	return c.renderer.Draw()
}

// PlotKind plots a built-in kind over its preset bounds. KindCustom plots
// custom and fails with ErrNoSampler when it is nil; KindSin ignores it.
func (c *Chart) PlotKind(kind Kind, pointCount int, custom Sampler) error {
	var s Sampler
	switch kind {
	case KindSin:
		s = Sin
	case KindCustom:
		if custom == nil {
			return ErrNoSampler
		}
		s = custom
	default:
		return fmt.Errorf("lchart: unknown kind %d", kind)
	}
	b := kind.Preset()
	return c.Plot(s, pointCount, b.FromX, b.ToX, b.FromY, b.ToY)
}

// Redraw draws the last plotted geometry again, e.g. after the host
// surface was resized.
func (c *Chart) Redraw() error {
	if c.closed {
		return ErrClosed
	}
	return c.renderer.Draw()
}

// Renderer exposes the underlying renderer.
func (c *Chart) Renderer() *Renderer {
	return c.renderer
}

// Close releases GPU resources. Later calls return ErrClosed.
func (c *Chart) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.renderer.Delete()
}
