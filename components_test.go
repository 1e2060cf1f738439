package popicon

import (
	"image"
	"testing"
)

func TestLabelComponents_FourConnected(t *testing.T) {
	// diagonal neighbours are separate regions
	m := rectMask(4, 4, image.Rect(0, 0, 1, 1), image.Rect(1, 1, 2, 2))
	_, sizes := labelComponents(m)
	if len(sizes) != 2 {
		t.Fatalf("expected 2 components, got %d", len(sizes))
	}
}

func TestKeepLargest(t *testing.T) {
	large := image.Rect(2, 2, 20, 20)
	small := image.Rect(30, 30, 34, 34)
	got, n := keepLargest(rectMask(40, 40, large, small))
	if n != 2 {
		t.Fatalf("expected 2 components, got %d", n)
	}
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			in := image.Pt(x, y).In(large)
			if v := got.GrayAt(x, y).Y; (v == 255) != in {
				t.Fatalf("pixel (%d,%d) = %d, inside large = %v", x, y, v, in)
			}
		}
	}
}

func TestKeepLargest_Empty(t *testing.T) {
	got, n := keepLargest(rectMask(5, 5))
	if n != 0 || countAbove(got, 0) != 0 {
		t.Fatalf("expected empty result, got %d components", n)
	}
}
