package popicon

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/popicon/utils"
)

// PaletteSize is the number of colours extracted from the backdrop bands.
const PaletteSize = 4

// SampleBackdrop estimates the flat backdrop colour from the margin bands of img.
// Method dominantcolor takes the strongest palette colour; anything else
// averages the bands. Both give the same colour for the same input.
func SampleBackdrop(img *image.NRGBA, opt SampleOptions) color.NRGBA {
	if opt.Method != "bands" {
		if method, err := utils.ParsePaletteMethod(opt.Method); err == nil && method == utils.PaletteMethodDominantColor {
			if palette := SampleBackdropPalette(img, opt, PaletteSize, method); len(palette) > 0 {
				return colorToNRGBA(palette[0])
			}
		}
	}
	return sampleBands(img, opt)
}

func sampleBands(img *image.NRGBA, opt SampleOptions) color.NRGBA {
	var sumR, sumG, sumB, n int
	for _, c := range bandSamples(img, opt) {
		sumR += int(c.R)
		sumG += int(c.G)
		sumB += int(c.B)
		n++
	}
	if n == 0 {
		return color.NRGBA{A: 255}
	}
	return color.NRGBA{R: uint8(sumR / n), G: uint8(sumG / n), B: uint8(sumB / n), A: 255}
}

// SampleBackdropPalette extracts a k-colour palette from the backdrop bands.
// The strongest colour comes first.
func SampleBackdropPalette(img *image.NRGBA, opt SampleOptions, k int, method utils.PaletteMethod) []colorful.Color {
	samples := bandSamples(img, opt)
	if len(samples) == 0 {
		return nil
	}
	strip := image.NewNRGBA(image.Rect(0, 0, len(samples), 1))
	for i, c := range samples {
		strip.SetNRGBA(i, 0, opaque(c))
	}
	return utils.ExtractPalette(strip, k, method)
}

// bandSamples collects the pixels of the sampling band at every configured row.
// A band that does not fit the image falls back to the whole row.
func bandSamples(img *image.NRGBA, opt SampleOptions) []color.NRGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil
	}
	l0, l1, r0, r1 := opt.Band.columns(w)
	if l1 <= l0 && r1 <= r0 {
		l0, l1, r0, r1 = 0, w, 0, 0
	}
	out := make([]color.NRGBA, 0, len(opt.Rows)*(l1-l0+r1-r0))
	for _, frac := range opt.Rows {
		y := clampInt(int(frac*float64(h)), 0, h-1)
		for x := l0; x < l1; x++ {
			out = append(out, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
		for x := r0; x < r1; x++ {
			out = append(out, img.NRGBAAt(b.Min.X+x, b.Min.Y+y))
		}
	}
	return out
}

func colorToNRGBA(c colorful.Color) color.NRGBA {
	c = c.Clamped()
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
