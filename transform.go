package lchart

import "math"

// Mat3 is a 3x3 matrix in column-major order, the layout glUniformMatrix3fv
// expects with transpose=false. Elements 6 and 7 hold the translation.
type Mat3 [9]float32

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Apply transforms p as the column vector (x, y, 1) and drops the w row.
func (m Mat3) Apply(p Vec2) Vec2 {
	return Vec2{
		X: m[0]*p.X + m[3]*p.Y + m[6],
		Y: m[1]*p.X + m[4]*p.Y + m[7],
	}
}

// AffineToClip maps the data rectangle [fromX,toX]x[fromY,toY] onto clip
// space so that (fromX, fromY) lands on (-1, +1) and (toX, toY) on (+1, -1).
// The vertical axis is flipped. Reversed ranges mirror the plot.
func AffineToClip(fromX, toX, fromY, toY float32) (Mat3, error) {
	sx, err := axisScale("x", fromX, toX, 2)
	if err != nil {
		return Mat3{}, err
	}
	sy, err := axisScale("y", fromY, toY, -2)
	if err != nil {
		return Mat3{}, err
	}

	// Translation solves s*from + t = edge for each axis.
	tx := -1 - sx*fromX
	ty := 1 - sy*fromY

	return Mat3{
		sx, 0, 0,
		0, sy, 0,
		tx, ty, 1,
	}, nil
}

// axisScale returns span/(to-from), rejecting empty and non-finite ranges
// and ranges too wide or too narrow for a float32 scale.
func axisScale(axis string, from, to, span float32) (float32, error) {
	width := to - from
	s := span / width
	if width == 0 || !finite(from) || !finite(to) || !finite(width) || !finite(s) || s == 0 {
		return 0, &DegenerateRangeError{Axis: axis, From: from, To: to}
	}
	return s, nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
