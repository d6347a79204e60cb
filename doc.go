/*
Package lchart renders a 2D line chart into a GPU surface through a minimal
shader pipeline: one program, one vertex buffer, one index buffer and one
3x3 transform uniform.

# Overview

The package never talks to a graphics API directly. A backend implements the
Graphics interface and the chart drives it:

	backend/opengl    desktop OpenGL 2.1 (go-gl), surface from a GLFW window
	backend/webgl     WebGL 1 through syscall/js (js/wasm builds)
	backend/software  CPU rasterizer drawing into an *image.RGBA

# Quick Start

	// Setup (window and GL context owned by the host)
	g := opengl.NewGraphics(opengl.GLFWSurface(window))
	chart, err := lchart.New(g)
	if err != nil {
	    return err
	}
	defer chart.Close()

	// Plot one sine period with 100 samples
	if err := chart.Plot(lchart.Sin, 100, 0, 2*math.Pi, -1, 1); err != nil {
	    return err
	}
	window.SwapBuffers()

# Coordinate Transform

Plot maps the caller's bounds, not the data's min/max, onto clip space:
(fromX, fromY) lands in the top-left corner (-1, +1) and (toX, toY) in the
bottom-right corner (+1, -1). Samples outside the bounds are clipped.

	m, _ := lchart.AffineToClip(0, 4, 0, 2)
	m.Apply(lchart.Vec2{X: 0, Y: 0}) // (-1, +1)
	m.Apply(lchart.Vec2{X: 4, Y: 2}) // (+1, -1)

# Custom Samplers

Any function can be plotted without touching the renderer:

	square := lchart.Custom(func(x float32) float32 { return x * x })
	chart.Plot(square, 50, -2, 2, 0, 4)

When the range of the function is unknown, PlotFit picks vertical bounds
from the samples with FitY:

	chart.PlotFit(square, 50, -2, 2)

# Errors

Nothing is retried or swallowed. Use errors.As for the typed errors
(*ShaderCompileError, *LinkError, *UniformLookupError, *AttributeLookupError,
*DegenerateRangeError, *InvalidSampleCountError, *IndexRangeError) and
errors.Is for the sentinels ErrBufferAllocation, ErrSurfaceUnavailable,
ErrClosed and ErrNoSampler.

# Threading

A Chart is single-threaded. GL backends must be driven from the thread that
owns the context (runtime.LockOSThread in main).
*/
package lchart
