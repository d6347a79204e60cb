package lchart

import "math"

// FitPadding is the share of the data height added above and below by FitY.
const FitPadding = 0.1

// FitY returns vertical bounds enclosing every finite Y in points, padded
// by FitPadding of the data height. The larger bound comes first so it maps
// to the top of the surface. Flat data is padded by FitPadding of its
// magnitude, at least 1; data with no finite value yields 1, -1.
func FitY(points []Vec2) (fromY, toY float32) {
	yMin := float32(math.Inf(1))
	yMax := float32(math.Inf(-1))
	for _, p := range points {
		if !finite(p.Y) {
			continue
		}
		yMin = min(yMin, p.Y)
		yMax = max(yMax, p.Y)
	}
	if yMin > yMax {
		return 1, -1
	}

	padding := (yMax - yMin) * FitPadding
	if padding == 0 {
		padding = max(1, max(-yMax, yMax)*FitPadding)
	}
	return yMax + padding, yMin - padding
}

// PlotFit is Plot with vertical bounds chosen by FitY, so the whole curve
// is visible with the upper values on top.
func (c *Chart) PlotFit(s Sampler, pointCount int, fromX, toX float32) error {
	if err := c.checkArgs(s, pointCount); err != nil {
		return err
	}
	if _, err := axisScale("x", fromX, toX, 2); err != nil {
		return err
	}

	points := Sample(s, pointCount, fromX, toX)
	fromY, toY := FitY(points)
	matrix, err := AffineToClip(fromX, toX, fromY, toY)
	if err != nil {
		return err
	}
	return c.plotPoints(points, matrix, Bounds{FromX: fromX, ToX: toX, FromY: fromY, ToY: toY})
}
