package popicon

import "image"

// dilate is a square max filter of the given window size.
func dilate(src *image.Gray, size int) *image.Gray {
	return rankFilter(src, size, maxU8)
}

// erode is a square min filter of the given window size.
func erode(src *image.Gray, size int) *image.Gray {
	return rankFilter(src, size, minU8)
}

// closeMask fills gaps narrower than the dilate window.
func closeMask(src *image.Gray, dilateSize, erodeSize int) *image.Gray {
	return erode(dilate(src, dilateSize), erodeSize)
}

// openMask removes specks smaller than the window.
func openMask(src *image.Gray, size int) *image.Gray {
	return dilate(erode(src, size), size)
}

func maxU8(a, b uint8) uint8 { return max(a, b) }
func minU8(a, b uint8) uint8 { return min(a, b) }

// rankFilter runs a separable square window (rows, then columns). The window
// is clipped at the image edge rather than padded.
func rankFilter(src *image.Gray, size int, pick func(a, b uint8) uint8) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := newMask(w, h)
	copy(out.Pix, src.Pix)
	r := size / 2
	if r <= 0 || w == 0 || h == 0 {
		return out
	}

	tmp := newMask(w, h)
	for y := range h {
		row := out.Pix[y*w : (y+1)*w]
		dst := tmp.Pix[y*w : (y+1)*w]
		for x := range w {
			v := row[x]
			for k := max(0, x-r); k <= min(w-1, x+r); k++ {
				v = pick(v, row[k])
			}
			dst[x] = v
		}
	}
	for y := range h {
		for x := range w {
			v := tmp.Pix[labelOffset(w, x, y)]
			for k := max(0, y-r); k <= min(h-1, y+r); k++ {
				v = pick(v, tmp.Pix[labelOffset(w, x, k)])
			}
			out.Pix[labelOffset(w, x, y)] = v
		}
	}
	return out
}
