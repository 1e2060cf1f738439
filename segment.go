package popicon

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"gonum.org/v1/gonum/mat"
)

// SegmentStats summarises one segmentation run.
type SegmentStats struct {
	Candidates int // pixels passing the deviation or saturation test
	Components int // connected regions after morphology
	Kept       int // pixels of the surviving region
}

// Removed is the number of components discarded as noise.
func (s SegmentStats) Removed() int {
	return max(0, s.Components-1)
}

// Segment returns a soft mask of the single dominant foreground object in img.
// An image with no candidate pixels yields an all-zero mask.
func Segment(img *image.NRGBA, opt SegmentOptions) (*image.Gray, SegmentStats) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	var stats SegmentStats
	if w == 0 || h == 0 {
		return newMask(w, h), stats
	}
	img = ToNRGBA(img)

	luma, sat := lumaSaturation(img)
	model := opt.Background
	if model == nil {
		model = RowBandModel{Band: opt.LumaBand}
	}
	var dev mat.Dense
	dev.Sub(luma, model.Estimate(luma))
	dev.Apply(func(_, _ int, v float64) float64 { return math.Abs(v) }, &dev)

	cand := newMask(w, h)
	for y := range h {
		devRow := dev.RawRowView(y)
		satRow := sat.RawRowView(y)
		for x := range w {
			if devRow[x] > opt.DeviationThreshold || satRow[x] > opt.SaturationThreshold {
				cand.Pix[labelOffset(w, x, y)] = 255
			}
		}
	}
	clearExclusions(cand, opt)
	for _, v := range cand.Pix {
		if v != 0 {
			stats.Candidates++
		}
	}

	cleaned := openMask(closeMask(cand, opt.CloseDilate, opt.CloseErode), opt.OpenSize)
	largest, n := keepLargest(cleaned)
	stats.Components = n
	for _, v := range largest.Pix {
		if v != 0 {
			stats.Kept++
		}
	}

	if opt.BlurSigma <= 0 || stats.Kept == 0 {
		return largest, stats
	}
	return grayFromNRGBA(imaging.Blur(largest, opt.BlurSigma)), stats
}

// lumaSaturation returns the broadcast-video luma and the HSV saturation of
// every pixel as rows x cols matrices.
func lumaSaturation(img *image.NRGBA) (*mat.Dense, *mat.Dense) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	luma := mat.NewDense(h, w, nil)
	sat := mat.NewDense(h, w, nil)
	for y := range h {
		lRow := luma.RawRowView(y)
		sRow := sat.RawRowView(y)
		for x := range w {
			off := pixOffset(w, x, y)
			r := float64(img.Pix[off])
			g := float64(img.Pix[off+1])
			bl := float64(img.Pix[off+2])
			lRow[x] = 0.299*r + 0.587*g + 0.114*bl
			_, s, _ := colorful.Color{R: r / 255, G: g / 255, B: bl / 255}.Hsv()
			sRow[x] = s
		}
	}
	return luma, sat
}

// clearExclusions zeroes the caption band, the chrome band and both side margins.
func clearExclusions(mask *image.Gray, opt SegmentOptions) {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	top := clampInt(int(float64(h)*opt.ChromeEnd), 0, h)
	bottom := clampInt(int(float64(h)*opt.CaptionStart), 0, h)
	side := clampInt(opt.SideMargin, 0, w)
	for y := range h {
		row := mask.Pix[y*w : (y+1)*w]
		if y < top || y >= bottom {
			clear(row)
			continue
		}
		clear(row[:side])
		clear(row[w-side:])
	}
}
