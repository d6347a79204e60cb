package lchart_test

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-theft-auto/lchart"
)

func newChart(t *testing.T, g *fakeGraphics, opts ...lchart.Option) *lchart.Chart {
	t.Helper()
	chart, err := lchart.New(g, opts...)
	if err != nil {
		t.Fatalf("New() returned error: %v", err)
	}
	return chart
}

func TestSampleCoverage(t *testing.T) {
	identity := lchart.Custom(func(x float32) float32 { return x })
	points := lchart.Sample(identity, 5, 0, 4)

	if len(points) != 5 {
		t.Fatalf("expected 5 samples, got %d", len(points))
	}
	for i, p := range points {
		if p.X != float32(i) {
			t.Errorf("sample %d: expected x=%d, got %f", i, i, p.X)
		}
		if p.Y != p.X {
			t.Errorf("sample %d: sampler not applied, got y=%f", i, p.Y)
		}
	}
}

func TestSampleEndpointExact(t *testing.T) {
	// Steps that do not add up exactly in float32.
	tests := []struct {
		n          int
		fromX, toX float32
	}{
		{10, 0, 2 * math.Pi},
		{7, 0.1, 0.7},
		{1000, -3, 3.3},
		{2, -1, 1},
	}

	for _, tt := range tests {
		points := lchart.Sample(lchart.Sin, tt.n, tt.fromX, tt.toX)
		if len(points) != tt.n {
			t.Errorf("n=%d: got %d samples", tt.n, len(points))
			continue
		}
		if points[0].X != tt.fromX {
			t.Errorf("n=%d: first x=%f, want %f", tt.n, points[0].X, tt.fromX)
		}
		last := points[len(points)-1]
		if last.X != tt.toX {
			t.Errorf("n=%d: last x=%f, want exactly %f", tt.n, last.X, tt.toX)
		}
		if last.Y != lchart.Sin.Sample(tt.toX) {
			t.Errorf("n=%d: last y=%f, want sin(toX)", tt.n, last.Y)
		}
		for i := 1; i < len(points); i++ {
			if points[i].X < points[i-1].X {
				t.Errorf("n=%d: x not increasing at %d", tt.n, i)
				break
			}
		}
	}
}

func TestPlotInvalidSampleCount(t *testing.T) {
	for _, n := range []int{-1, 0, 1, lchart.MaxPoints + 1} {
		g := newFakeGraphics()
		chart := newChart(t, g)
		g.reset()

		err := chart.Plot(lchart.Sin, n, 0, 1, 0, 1)
		var countErr *lchart.InvalidSampleCountError
		if !errors.As(err, &countErr) {
			t.Errorf("n=%d: expected InvalidSampleCountError, got %v", n, err)
			continue
		}
		if countErr.Count != n {
			t.Errorf("n=%d: error carries count %d", n, countErr.Count)
		}
		if len(g.calls) != 0 {
			t.Errorf("n=%d: expected no GPU calls, got %v", n, g.calls)
		}
	}
}

func TestPlotDegenerateRange(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	g.reset()

	err := chart.Plot(lchart.Sin, 10, 5, 5, 0, 1)
	var rangeErr *lchart.DegenerateRangeError
	if !errors.As(err, &rangeErr) {
		t.Fatalf("expected DegenerateRangeError, got %v", err)
	}
	if rangeErr.Axis != "x" {
		t.Errorf("expected x axis, got %q", rangeErr.Axis)
	}

	err = chart.Plot(lchart.Sin, 10, 0, 1, 2, 2)
	if !errors.As(err, &rangeErr) || rangeErr.Axis != "y" {
		t.Errorf("expected y-axis DegenerateRangeError, got %v", err)
	}

	if g.draws != 0 || len(g.calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", g.calls)
	}
}

func TestPlotIndexValidity(t *testing.T) {
	for _, n := range []int{2, 5, 37, 1000, lchart.MaxPoints} {
		g := newFakeGraphics()
		chart := newChart(t, g)

		if err := chart.Plot(lchart.Sin, n, -1, 1, -1, 1); err != nil {
			t.Fatalf("n=%d: Plot() returned error: %v", n, err)
		}

		indices := g.boundIndices()
		if len(indices) != n {
			t.Fatalf("n=%d: uploaded %d indices", n, len(indices))
		}
		for i, idx := range indices {
			if int(idx) != i {
				t.Fatalf("n=%d: index %d is %d, want identity order", n, i, idx)
			}
		}
		if got := len(g.vertexData()); got != n {
			t.Errorf("n=%d: uploaded %d vertices", n, got)
		}
		if g.drawCount != n {
			t.Errorf("n=%d: drew %d elements", n, g.drawCount)
		}
	}
}

func TestPlotIdempotent(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)

	plot := func() (lchart.Geometry, lchart.Mat3, []lchart.Vec2, []uint16) {
		if err := chart.Plot(lchart.Sin, 50, 0, 2*math.Pi, -1, 1); err != nil {
			t.Fatalf("Plot() returned error: %v", err)
		}
		return chart.Renderer().Geometry(), g.matrix, g.vertexData(), g.boundIndices()
	}

	geom1, m1, v1, i1 := plot()
	geom2, m2, v2, i2 := plot()

	if !reflect.DeepEqual(geom1, geom2) {
		t.Error("geometry differs between identical plots")
	}
	if m1 != m2 {
		t.Errorf("matrix differs: %v vs %v", m1, m2)
	}
	if !reflect.DeepEqual(v1, v2) || !reflect.DeepEqual(i1, i2) {
		t.Error("uploaded buffers differ between identical plots")
	}
}

func TestPlotUsesCallerBounds(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)

	// sin stays within [-1, 1]; the bounds are wider and must win.
	if err := chart.Plot(lchart.Sin, 20, 0, 10, -5, 5); err != nil {
		t.Fatal(err)
	}
	want, _ := lchart.AffineToClip(0, 10, -5, 5)
	if g.matrix != want {
		t.Errorf("uploaded matrix %v, want %v", g.matrix, want)
	}
}

func TestPlotDrawSequence(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	g.reset()

	if err := chart.Plot(lchart.Sin, 4, 0, 1, 0, 1); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"UseProgram",
		"EnableVertexAttribArray",
		"BindBuffer", "BufferData",
		"BindBuffer", "BufferData",
		"Viewport",
		"ClearColor",
		"Clear",
		"BindBuffer",
		"VertexAttribPointer 3 2 0 0",
		"UniformMatrix3",
		"DrawLineStrip",
	}
	if !reflect.DeepEqual(g.calls, want) {
		t.Errorf("draw sequence:\n got %v\nwant %v", g.calls, want)
	}
	if g.viewport != [4]int{0, 0, 640, 480} {
		t.Errorf("viewport %v, want full surface", g.viewport)
	}
}

func TestBufferUsage(t *testing.T) {
	tests := []struct {
		name string
		opts []lchart.Option
		want lchart.BufferUsage
	}{
		{"default", nil, lchart.StaticDraw},
		{"dynamic", []lchart.Option{lchart.WithBufferUsage(lchart.DynamicDraw)}, lchart.DynamicDraw},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newFakeGraphics()
			chart := newChart(t, g, tt.opts...)
			if err := chart.Plot(lchart.Sin, 4, 0, 1, 0, 1); err != nil {
				t.Fatal(err)
			}
			if len(g.usages) != 2 {
				t.Fatalf("expected 2 uploads, got %d", len(g.usages))
			}
			for i, u := range g.usages {
				if u != tt.want {
					t.Errorf("upload %d used %d, want %d", i, u, tt.want)
				}
			}
		})
	}
}

func TestViewportFollowsSurface(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	if err := chart.Plot(lchart.Sin, 4, 0, 1, 0, 1); err != nil {
		t.Fatal(err)
	}

	g.width, g.height = 1920, 1080
	if err := chart.Redraw(); err != nil {
		t.Fatal(err)
	}
	if g.viewport != [4]int{0, 0, 1920, 1080} {
		t.Errorf("viewport %v after resize", g.viewport)
	}
	if g.drawCount != 4 {
		t.Errorf("redraw drew %d elements, want 4", g.drawCount)
	}
}

func TestNewShaderCompileError(t *testing.T) {
	g := newFakeGraphics()
	chart, err := lchart.New(g, lchart.WithShaderSources("this is not glsl", lchart.FragmentShaderSource))
	if chart != nil {
		t.Error("expected no chart on shader failure")
	}

	var compileErr *lchart.ShaderCompileError
	if !errors.As(err, &compileErr) {
		t.Fatalf("expected ShaderCompileError, got %v", err)
	}
	if compileErr.Kind != lchart.VertexShader {
		t.Errorf("expected vertex shader failure, got %s", compileErr.Kind)
	}
	if compileErr.Log == "" {
		t.Error("expected driver log in error")
	}
	if len(g.buffers) != 0 || len(g.programs) != 0 || len(g.shaders) != 0 {
		t.Errorf("leaked objects: buffers=%d programs=%d shaders=%d", len(g.buffers), len(g.programs), len(g.shaders))
	}
}

func TestNewFragmentCompileErrorReleasesVertexShader(t *testing.T) {
	g := newFakeGraphics()
	_, err := lchart.New(g, lchart.WithShaderSources(lchart.VertexShaderSource, "gl_FragColor = vec4(1.0);"))

	var compileErr *lchart.ShaderCompileError
	if !errors.As(err, &compileErr) || compileErr.Kind != lchart.FragmentShader {
		t.Fatalf("expected fragment ShaderCompileError, got %v", err)
	}
	if len(g.shaders) != 0 {
		t.Errorf("vertex shader leaked")
	}
}

func TestNewLinkError(t *testing.T) {
	g := newFakeGraphics()
	g.failLink = true

	_, err := lchart.New(g)
	var linkErr *lchart.LinkError
	if !errors.As(err, &linkErr) {
		t.Fatalf("expected LinkError, got %v", err)
	}
	if linkErr.Log != "attribute mismatch" {
		t.Errorf("expected backend message as log, got %q", linkErr.Log)
	}
	if len(g.shaders) != 0 {
		t.Error("shaders leaked after link failure")
	}
}

func TestNewMissingAttribute(t *testing.T) {
	g := newFakeGraphics()
	g.noAttribute = true

	_, err := lchart.New(g)
	var attrErr *lchart.AttributeLookupError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected AttributeLookupError, got %v", err)
	}
	if len(g.programs) != 0 {
		t.Error("program leaked")
	}
}

func TestNewBufferAllocationError(t *testing.T) {
	for _, failAt := range []int{1, 2} {
		g := newFakeGraphics()
		g.failBufferAt = failAt

		chart, err := lchart.New(g)
		if chart != nil {
			t.Errorf("failAt=%d: expected no chart", failAt)
		}
		if !errors.Is(err, lchart.ErrBufferAllocation) {
			t.Errorf("failAt=%d: expected ErrBufferAllocation, got %v", failAt, err)
		}
		if len(g.buffers) != 0 || len(g.programs) != 0 {
			t.Errorf("failAt=%d: leaked buffers=%d programs=%d", failAt, len(g.buffers), len(g.programs))
		}
	}
}

func TestDrawUniformLookupError(t *testing.T) {
	g := newFakeGraphics()
	g.noUniform = true
	chart := newChart(t, g)
	g.reset()

	err := chart.Plot(lchart.Sin, 10, 0, 1, 0, 1)
	var uniformErr *lchart.UniformLookupError
	if !errors.As(err, &uniformErr) {
		t.Fatalf("expected UniformLookupError, got %v", err)
	}
	if uniformErr.Name != "u_matrix" {
		t.Errorf("expected u_matrix, got %q", uniformErr.Name)
	}
	if len(g.calls) != 0 {
		t.Errorf("expected no GPU state changes, got %v", g.calls)
	}
}

func TestDrawSurfaceUnavailable(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	g.reset()

	g.surfaceErr = errors.New("canvas detached")
	err := chart.Plot(lchart.Sin, 10, 0, 1, 0, 1)
	if !errors.Is(err, lchart.ErrSurfaceUnavailable) {
		t.Fatalf("expected ErrSurfaceUnavailable, got %v", err)
	}
	if g.draws != 0 || len(g.calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", g.calls)
	}
}

func TestClearColor(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	if err := chart.Redraw(); err != nil {
		t.Fatal(err)
	}
	if g.clearColor != [4]float32{1, 0, 0, 1} {
		t.Errorf("default clear color %v, want red", g.clearColor)
	}

	g = newFakeGraphics()
	chart = newChart(t, g, lchart.WithClearColor(lchart.ColorBlack))
	if err := chart.Redraw(); err != nil {
		t.Fatal(err)
	}
	if g.clearColor != [4]float32{0, 0, 0, 1} {
		t.Errorf("clear color %v, want black", g.clearColor)
	}
}

func TestClearColorFromComponents(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g, lchart.WithClearColor(lchart.RGBAf(0, 0.5, 1, 1)))
	if err := chart.Redraw(); err != nil {
		t.Fatal(err)
	}
	want := [4]float32{0, 128.0 / 255, 1, 1}
	for i := range want {
		if !near(g.clearColor[i], want[i], 1e-6) {
			t.Errorf("component %d = %f, want %f", i, g.clearColor[i], want[i])
		}
	}
}

func TestPackedColors(t *testing.T) {
	nan := float32(math.NaN())

	tests := []struct {
		name string
		got  uint32
		want uint32
	}{
		{"white bytes", lchart.RGBA(255, 255, 255, 255), lchart.ColorWhite},
		{"red bytes", lchart.RGBA(255, 0, 0, 255), lchart.ColorRed},
		{"black floats", lchart.RGBAf(0, 0, 0, 1), lchart.ColorBlack},
		{"clamped", lchart.RGBAf(2, -1, nan, 1.5), lchart.ColorRed},
		{"rounded", lchart.RGBAf(0.5, 0.2, 0.8, 1), lchart.RGBA(128, 51, 204, 255)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %#08x, want %#08x", tt.got, tt.want)
			}
		})
	}

	r, g, b, a := lchart.UnpackRGBA(lchart.RGBA(1, 2, 3, 4))
	if r != 1 || g != 2 || b != 3 || a != 4 {
		t.Errorf("unpacked %d %d %d %d, want 1 2 3 4", r, g, b, a)
	}
}

func TestRedrawBeforePlot(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)

	if err := chart.Redraw(); err != nil {
		t.Fatal(err)
	}
	if g.drawCount != 4 {
		t.Errorf("initial geometry drew %d elements, want 4", g.drawCount)
	}
	if g.matrix != lchart.Identity() {
		t.Errorf("initial matrix %v, want identity", g.matrix)
	}
}

func TestCloseReleasesResources(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	chart.Close()
	chart.Close()

	if len(g.buffers) != 0 || len(g.programs) != 0 {
		t.Errorf("leaked buffers=%d programs=%d", len(g.buffers), len(g.programs))
	}
	if err := chart.Plot(lchart.Sin, 10, 0, 1, 0, 1); !errors.Is(err, lchart.ErrClosed) {
		t.Errorf("Plot after Close: expected ErrClosed, got %v", err)
	}
	if err := chart.Redraw(); !errors.Is(err, lchart.ErrClosed) {
		t.Errorf("Redraw after Close: expected ErrClosed, got %v", err)
	}
}

func TestPlotKindPresets(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)

	if err := chart.PlotKind(lchart.KindSin, 10, nil); err != nil {
		t.Fatal(err)
	}
	want, _ := lchart.AffineToClip(0, 2*math.Pi, -1, 1)
	if g.matrix != want {
		t.Errorf("sin preset matrix %v, want %v", g.matrix, want)
	}

	constant := lchart.Custom(func(float32) float32 { return 42 })
	if err := chart.PlotKind(lchart.KindCustom, 3, constant); err != nil {
		t.Fatal(err)
	}
	for _, p := range g.vertexData() {
		if p.Y != 42 {
			t.Errorf("custom sampler not used: y=%f", p.Y)
		}
	}
	b := lchart.KindCustom.Preset()
	if b.FromX != -10000 || b.ToY != 10000 {
		t.Errorf("unexpected custom preset %+v", b)
	}
}

func TestPlotKindCustomNeedsSampler(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	g.reset()

	if err := chart.PlotKind(lchart.KindCustom, 5, nil); !errors.Is(err, lchart.ErrNoSampler) {
		t.Fatalf("expected ErrNoSampler, got %v", err)
	}
	if err := chart.Plot(nil, 5, 0, 1, 0, 1); !errors.Is(err, lchart.ErrNoSampler) {
		t.Fatalf("Plot(nil): expected ErrNoSampler, got %v", err)
	}
	if err := chart.PlotKind(lchart.Kind(9), 5, lchart.Sin); err == nil {
		t.Fatal("unknown kind accepted")
	}
	if len(g.calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", g.calls)
	}
	if n := len(chart.Renderer().Geometry().Points); n != 4 {
		t.Errorf("geometry replaced: %d points", n)
	}
}

func TestRendererSetGeometryValidates(t *testing.T) {
	g := newFakeGraphics()
	r, err := lchart.NewRenderer(g)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Delete()

	err = r.SetGeometry([]lchart.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}, []uint16{0, 1, 2})
	var idxErr *lchart.IndexRangeError
	if !errors.As(err, &idxErr) {
		t.Fatalf("expected IndexRangeError, got %v", err)
	}
	if idxErr.Index != 2 || idxErr.Position != 2 || idxErr.Points != 2 {
		t.Errorf("unexpected error fields %+v", idxErr)
	}
	if got := len(r.Geometry().Points); got != 4 {
		t.Errorf("failed SetGeometry replaced geometry (%d points)", got)
	}
}

func TestRendererCopiesGeometry(t *testing.T) {
	g := newFakeGraphics()
	r, err := lchart.NewRenderer(g)
	if err != nil {
		t.Fatal(err)
	}

	points := []lchart.Vec2{{X: 0, Y: 0}, {X: 1, Y: 1}}
	if err := r.SetGeometry(points, []uint16{0, 1}); err != nil {
		t.Fatal(err)
	}
	points[0].X = 99
	if r.Geometry().Points[0].X != 0 {
		t.Error("renderer aliases caller's slice")
	}
}

func TestLineStripIndices(t *testing.T) {
	got := lchart.LineStripIndices(4)
	if !reflect.DeepEqual(got, []uint16{0, 1, 2, 3}) {
		t.Errorf("got %v", got)
	}
	if n := len(lchart.LineStripIndices(lchart.MaxPoints)); n != lchart.MaxPoints {
		t.Errorf("got %d indices", n)
	}
}

func TestSampleWideRange(t *testing.T) {
	// toX-fromX overflows float32 but every sample position is representable.
	points := lchart.Sample(lchart.Custom(func(x float32) float32 { return 0 }), 5, -3e38, 3e38)
	want := []float32{-3e38, -1.5e38, 0, 1.5e38, 3e38}
	if len(points) != len(want) {
		t.Fatalf("expected %d samples, got %d", len(want), len(points))
	}
	for i, p := range points {
		if math.IsInf(float64(p.X), 0) || math.IsNaN(float64(p.X)) {
			t.Fatalf("sample %d: x=%f is not finite", i, p.X)
		}
		if !near(p.X, want[i], 1e32) {
			t.Errorf("sample %d: x=%g, want %g", i, p.X, want[i])
		}
	}
}

func TestPlotWideRangeRejected(t *testing.T) {
	g := newFakeGraphics()
	chart := newChart(t, g)
	g.reset()

	err := chart.Plot(lchart.Sin, 10, -3e38, 3e38, -1, 1)
	var rangeErr *lchart.DegenerateRangeError
	if !errors.As(err, &rangeErr) || rangeErr.Axis != "x" {
		t.Fatalf("expected x DegenerateRangeError, got %v", err)
	}
	if len(g.calls) != 0 {
		t.Errorf("expected no GPU calls, got %v", g.calls)
	}
}
