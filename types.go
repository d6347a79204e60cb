package lchart

// Vec2 is a 2D point in data or clip space.
type Vec2 struct {
	X, Y float32
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// Geometry is a polyline: points plus the line-strip draw order over them.
type Geometry struct {
	Points  []Vec2
	Indices []uint16
}

// Validate checks that every index references an existing point.
func (g Geometry) Validate() error {
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Points) {
			return &IndexRangeError{Position: i, Index: idx, Points: len(g.Points)}
		}
	}
	return nil
}

// Clear colors are packed RGBA, red in the low byte: 0xAABBGGRR.
const (
	ColorWhite uint32 = 0xFFFFFFFF
	ColorBlack uint32 = 0xFF000000
	ColorRed   uint32 = 0xFF0000FF
)

// RGBA packs 8-bit components into a clear color.
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// RGBAf packs normalized components, clamped to [0, 1] and rounded to the
// nearest 8-bit step. NaN components pack as 0.
func RGBAf(r, g, b, a float32) uint32 {
	return RGBA(unitToByte(r), unitToByte(g), unitToByte(b), unitToByte(a))
}

// UnpackRGBA extracts 8-bit components from a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// unpackRGBAf extracts normalized components, the form ClearColor expects.
func unpackRGBAf(c uint32) (r, g, b, a float32) {
	r8, g8, b8, a8 := UnpackRGBA(c)
	return float32(r8) / 255, float32(g8) / 255, float32(b8) / 255, float32(a8) / 255
}

func unitToByte(v float32) uint8 {
	if !(v > 0) {
		return 0
	}
	return uint8(min(v, 1)*255 + 0.5)
}
