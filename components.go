package popicon

import "image"

// labelComponents assigns 4-connected labels to non-zero mask cells.
// Background cells get -1. It returns the labels and each label's pixel count.
func labelComponents(mask *image.Gray) ([]int, []int) {
	b := mask.Bounds()
	w, h := b.Dx(), b.Dy()
	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	dx4 := []int{-1, 0, 1, 0}
	dy4 := []int{0, -1, 0, 1}
	var sizes []int
	queue := make([]int, 0, 64)
	for y := range h {
		for x := range w {
			start := labelOffset(w, x, y)
			if mask.Pix[start] == 0 || labels[start] != -1 {
				continue
			}
			label := len(sizes)
			labels[start] = label
			queue = append(queue[:0], start)
			for c := 0; c < len(queue); c++ {
				cur := queue[c]
				cx, cy := cur%w, cur/w
				for k := range 4 {
					nx, ny := cx+dx4[k], cy+dy4[k]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					nIdx := labelOffset(w, nx, ny)
					if mask.Pix[nIdx] != 0 && labels[nIdx] == -1 {
						labels[nIdx] = label
						queue = append(queue, nIdx)
					}
				}
			}
			sizes = append(sizes, len(queue))
		}
	}
	return labels, sizes
}

// keepLargest returns a 0/255 mask holding only the biggest component, plus the
// number of components found. Ties go to the component found first.
func keepLargest(mask *image.Gray) (*image.Gray, int) {
	b := mask.Bounds()
	out := newMask(b.Dx(), b.Dy())
	labels, sizes := labelComponents(mask)
	if len(sizes) == 0 {
		return out, 0
	}
	largest := 0
	for i, n := range sizes {
		if n > sizes[largest] {
			largest = i
		}
	}
	for i, l := range labels {
		if l == largest {
			out.Pix[i] = 255
		}
	}
	return out, len(sizes)
}
