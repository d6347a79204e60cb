// Command gen renders preset charts and saves JPEG screenshots to doc/imgs/.
//
// Usage:
//
//	go run ./doc/gen/                  # software backend, no display needed
//	devbox shell
//	go run ./doc/gen/ -backend gl      # hidden GLFW window, reads back the framebuffer
package main

import (
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"runtime"

	xdraw "golang.org/x/image/draw"

	"github.com/go-theft-auto/lchart"
	"github.com/go-theft-auto/lchart/backend/opengl"
	"github.com/go-theft-auto/lchart/backend/software"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	backend := flag.String("backend", "software", "software or gl")
	outDir := flag.String("out", filepath.Join("doc", "imgs"), "output directory")
	supersample := flag.Int("ss", 2, "software supersampling factor")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	lchart.SetVerbose(*verbose)

	if err := run(*backend, *outDir, *supersample); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// background is the dark panel color of the screenshots.
var background = lchart.RGBA(0x1e, 0x1e, 0x28, 0xff)

// screenshot defines a single chart screenshot to capture.
type screenshot struct {
	name    string         // filename without extension
	width   int            // surface width
	height  int            // surface height
	sampler lchart.Sampler // plotted function
	points  int            // sample count
	bounds  lchart.Bounds  // data rectangle
}

func buildScreenshots() []screenshot {
	sinBounds := lchart.KindSin.Preset()
	return []screenshot{
		{name: "sin_10", width: 400, height: 300, sampler: lchart.Sin, points: 10, bounds: sinBounds},
		{name: "sin_200", width: 400, height: 300, sampler: lchart.Sin, points: 200, bounds: sinBounds},
		{
			name: "parabola", width: 400, height: 300, points: 64,
			sampler: lchart.Custom(func(x float32) float32 { return x * x }),
			bounds:  lchart.Bounds{FromX: -2, ToX: 2, FromY: 4, ToY: 0},
		},
		{
			name: "clipped_sin", width: 400, height: 300, sampler: lchart.Sin, points: 100,
			bounds: lchart.Bounds{FromX: 0, ToX: 4 * math.Pi, FromY: -0.5, ToY: 0.5},
		},
	}
}

func run(backend, outDir string, supersample int) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	var capture func(s screenshot) (image.Image, error)
	switch backend {
	case "software":
		capture = func(s screenshot) (image.Image, error) { return captureSoftware(s, supersample) }
	case "gl":
		_, closeWindow, err := opengl.OpenWindow(opengl.WindowConfig{Width: 800, Height: 600, Title: "screenshot-gen"})
		if err != nil {
			return err
		}
		defer closeWindow()
		capture = captureGL
	default:
		return fmt.Errorf("unknown backend %q", backend)
	}

	shots := buildScreenshots()
	for _, s := range shots {
		img, err := capture(s)
		if err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		if err := save(filepath.Join(outDir, s.name+".jpg"), img); err != nil {
			return fmt.Errorf("save %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func plot(g lchart.Graphics, s screenshot) error {
	chart, err := lchart.New(g, lchart.WithClearColor(background))
	if err != nil {
		return err
	}
	defer chart.Close()
	b := s.bounds
	return chart.Plot(s.sampler, s.points, b.FromX, b.ToX, b.FromY, b.ToY)
}

// captureSoftware renders at ss times the size and scales down.
func captureSoftware(s screenshot, ss int) (image.Image, error) {
	ss = max(ss, 1)
	g := software.New(s.width*ss, s.height*ss, software.WithLineWidth(float32(ss)))
	if err := plot(g, s); err != nil {
		return nil, err
	}
	if ss == 1 {
		return g.Image(), nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), g.Image(), g.Image().Bounds(), xdraw.Src, nil)
	return dst, nil
}

// captureGL renders into the hidden window's back buffer and reads it back.
// The window stays at 800x600, larger than every screenshot.
func captureGL(s screenshot) (image.Image, error) {
	g := opengl.NewGraphics(opengl.FixedSurface(s.width, s.height))
	if err := plot(g, s); err != nil {
		return nil, err
	}
	return g.ReadPixels()
}

func save(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}
