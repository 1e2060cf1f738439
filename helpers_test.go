package popicon

import (
	"image"
	"image/color"
)

// synthImage creates a w x h opaque image filled with bg and lets mutate paint on it.
func synthImage(w, h int, bg color.NRGBA, mutate func(img *image.NRGBA)) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, bg)
		}
	}
	if mutate != nil {
		mutate(img)
	}
	return img
}

// fillRect paints the half-open rectangle [x0,x1) x [y0,y1), clamped to img.
func fillRect(img *image.NRGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// rectMask returns a w x h mask with 255 inside the given rectangles.
func rectMask(w, h int, rects ...image.Rectangle) *image.Gray {
	m := image.NewGray(image.Rect(0, 0, w, h))
	for _, r := range rects {
		r = r.Intersect(m.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				m.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return m
}

func countAbove(m *image.Gray, floor uint8) int {
	n := 0
	for _, v := range m.Pix {
		if v > floor {
			n++
		}
	}
	return n
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}

var (
	gray  = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	brown = color.NRGBA{R: 139, G: 69, B: 19, A: 255}
)

// woodOnGray is the 400x600 reference scene: a brown block over rows
// 100..300 and columns 150..250 on a flat grey backdrop.
func woodOnGray() *image.NRGBA {
	return synthImage(400, 600, gray, func(img *image.NRGBA) {
		fillRect(img, 150, 100, 250, 300, brown)
	})
}
