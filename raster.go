package popicon

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

func pixOffset(w, x, y int) int {
	return (y*w + x) * 4
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToNRGBA copies img into a new NRGBA image whose bounds start at (0,0).
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(out, image.Point{}, img, b, xdraw.Src, nil)
	return out
}

func newMask(w, h int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, w, h))
}

// grayFromNRGBA keeps the red channel of a grey-valued NRGBA image.
func grayFromNRGBA(src *image.NRGBA) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := newMask(w, h)
	for y := range h {
		row := src.Pix[y*src.Stride:]
		for x := range w {
			out.Pix[labelOffset(w, x, y)] = row[x*4]
		}
	}
	return out
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 255
	return c
}
