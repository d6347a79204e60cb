package software

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/vector"

	"github.com/go-theft-auto/lchart"
)

// strokePolyline rasterizes consecutive segments as quads of lineWidth,
// anti-aliased, composited over the surface.
func (g *Graphics) strokePolyline(pts []lchart.Vec2, c color.NRGBA) {
	b := g.img.Bounds()
	if b.Empty() {
		return
	}
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	half := g.lineWidth / 2
	margin := g.lineWidth + 1
	lo := lchart.Vec2{X: -margin, Y: -margin}
	hi := lchart.Vec2{X: float32(b.Dx()) + margin, Y: float32(b.Dy()) + margin}

	drawn := false
	for i := 1; i < len(pts); i++ {
		p0, p1, ok := clipSegment(pts[i-1], pts[i], lo, hi)
		if !ok {
			continue
		}
		d := p1.Sub(p0)
		length := float32(math.Hypot(float64(d.X), float64(d.Y)))
		if length == 0 {
			continue
		}
		// Normal scaled to half the line width.
		nx, ny := -d.Y/length*half, d.X/length*half
		z.MoveTo(p0.X+nx, p0.Y+ny)
		z.LineTo(p1.X+nx, p1.Y+ny)
		z.LineTo(p1.X-nx, p1.Y-ny)
		z.LineTo(p0.X-nx, p0.Y-ny)
		z.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	z.Draw(g.img, b, image.NewUniform(c), image.Point{})
}

// clipSegment clips p0-p1 to the box [lo, hi] (Liang-Barsky).
func clipSegment(p0, p1, lo, hi lchart.Vec2) (lchart.Vec2, lchart.Vec2, bool) {
	t0, t1 := float32(0), float32(1)
	d := p1.Sub(p0)
	edges := [4][2]float32{
		{-d.X, p0.X - lo.X},
		{d.X, hi.X - p0.X},
		{-d.Y, p0.Y - lo.Y},
		{d.Y, hi.Y - p0.Y},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return p0, p1, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return p0, p1, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return p0, p1, false
			}
			t1 = min(t1, r)
		}
	}
	return lchart.Vec2{X: p0.X + t0*d.X, Y: p0.Y + t0*d.Y},
		lchart.Vec2{X: p0.X + t1*d.X, Y: p0.Y + t1*d.Y}, true
}
