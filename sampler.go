package lchart

import "math"

// MaxPoints is the largest point count a uint16 index buffer can address.
const MaxPoints = math.MaxUint16 + 1

// Sampler evaluates the plotted function at x.
type Sampler interface {
	Sample(x float32) float32
}

// SamplerFunc adapts an ordinary function to Sampler.
type SamplerFunc func(x float32) float32

// Sample calls f(x).
func (f SamplerFunc) Sample(x float32) float32 { return f(x) }

// Sin samples y = sin(x).
var Sin Sampler = SamplerFunc(func(x float32) float32 {
	return float32(math.Sin(float64(x)))
})

// Custom wraps a caller-supplied mapping.
func Custom(f func(x float32) float32) Sampler {
	return SamplerFunc(f)
}

// Kind names the sampler families a host can offer to users.
type Kind uint8

const (
	KindSin Kind = iota
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindSin:
		return "sin"
	case KindCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// Bounds is a data-space rectangle.
type Bounds struct {
	FromX, ToX float32
	FromY, ToY float32
}

// Preset returns the default plot bounds for k: one sine period for
// KindSin and a wide symmetric square for KindCustom.
func (k Kind) Preset() Bounds {
	switch k {
	case KindSin:
		return Bounds{FromX: 0, ToX: 2 * math.Pi, FromY: -1, ToY: 1}
	default:
		return Bounds{FromX: -10000, ToX: 10000, FromY: -10000, ToY: 10000}
	}
}

// Sample evaluates s at n evenly spaced x values over [fromX, toX].
// The last point is always exactly (toX, s(toX)) regardless of rounding
// in the step. n must be at least 2.
func Sample(s Sampler, n int, fromX, toX float32) []Vec2 {
	if n < 2 {
		return nil
	}
	// float64 keeps the width finite for any pair of float32 bounds.
	from := float64(fromX)
	step := (float64(toX) - from) / float64(n-1)
	points := make([]Vec2, 0, n)
	for i := 0; i < n-1; i++ {
		x := float32(from + float64(i)*step)
		points = append(points, Vec2{X: x, Y: s.Sample(x)})
	}
	return append(points, Vec2{X: toX, Y: s.Sample(toX)})
}

// LineStripIndices returns 0..n-1, drawing every point once in order.
func LineStripIndices(n int) []uint16 {
	indices := make([]uint16, n)
	for i := range indices {
		indices[i] = uint16(i)
	}
	return indices
}
