// Example opens a window and plots a sampled function with the OpenGL backend.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//	go run ./example/ -kind custom -points 400 -v
//
// The chart is redrawn every frame so window resizes are picked up.
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/lchart"
	"github.com/go-theft-auto/lchart/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "lchart example"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	kind := flag.String("kind", "sin", "sampler: sin or custom")
	points := flag.Int("points", 10, "number of samples")
	fit := flag.Bool("fit", false, "fit vertical bounds to the samples")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	lchart.SetVerbose(*verbose)

	if err := run(*kind, *points, *fit); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(kindName string, points int, fit bool) error {
	kind := lchart.KindSin
	if kindName == "custom" {
		kind = lchart.KindCustom
	}
	// A damped oscillation across the custom preset's square.
	custom := lchart.Custom(func(x float32) float32 {
		return 8000 * float32(math.Exp(-math.Abs(float64(x))/4000)*math.Cos(float64(x)/800))
	})

	window, closeWindow, err := opengl.OpenWindow(opengl.WindowConfig{
		Width:   windowWidth,
		Height:  windowHeight,
		Title:   windowTitle,
		Visible: true,
	})
	if err != nil {
		return err
	}
	defer closeWindow()
	glfw.SwapInterval(1) // vsync

	// Every window event redraws, so uploads are frequent.
	chart, err := lchart.New(opengl.NewGraphics(opengl.GLFWSurface(window)),
		lchart.WithBufferUsage(lchart.DynamicDraw))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}
	defer chart.Close()

	if fit {
		s, b := lchart.Sin, kind.Preset()
		if kind == lchart.KindCustom {
			s = custom
		}
		err = chart.PlotFit(s, points, b.FromX, b.ToX)
	} else {
		err = chart.PlotKind(kind, points, custom)
	}
	if err != nil {
		return fmt.Errorf("plot: %w", err)
	}
	window.SwapBuffers()

	for !window.ShouldClose() {
		glfw.WaitEvents()
		if window.ShouldClose() {
			break
		}
		if err := chart.Redraw(); err != nil {
			return fmt.Errorf("redraw: %w", err)
		}
		window.SwapBuffers()
	}

	return nil
}
