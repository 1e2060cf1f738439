package popicon

import (
	"image"
	"math"
)

// ShapeMask renders a hard-edged rounded rectangle inset by margin on every
// side of a size x size canvas. Inside is 255, outside 0.
func ShapeMask(size, margin, radius int) *image.Gray {
	mask := newMask(size, size)
	side := size - 2*margin
	if side <= 0 {
		return mask
	}
	half := float64(side) / 2
	r := min(float64(max(radius, 0)), half)
	center := float64(size) / 2
	for y := margin; y < size-margin; y++ {
		for x := margin; x < size-margin; x++ {
			d := roundedBoxSDF(float64(x)+0.5-center, float64(y)+0.5-center, half, half, r)
			if d <= 0 {
				mask.Pix[labelOffset(size, x, y)] = 255
			}
		}
	}
	return mask
}

// ShapeArea is the analytic area of the rounded rectangle drawn by ShapeMask.
func ShapeArea(size, margin, radius int) float64 {
	side := float64(size - 2*margin)
	if side <= 0 {
		return 0
	}
	r := min(float64(max(radius, 0)), side/2)
	return side*side - (4-math.Pi)*r*r
}

// roundedBoxSDF returns the signed distance from (px, py) to a rounded box
// centred at the origin with half extents bx, by. Negative is inside.
func roundedBoxSDF(px, py, bx, by, r float64) float64 {
	qx := math.Abs(px) - bx + r
	qy := math.Abs(py) - by + r
	return math.Hypot(max(qx, 0), max(qy, 0)) + min(max(qx, qy), 0) - r
}
