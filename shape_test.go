package popicon

import (
	"math"
	"testing"
)

func TestShapeMask_MarginIsClear(t *testing.T) {
	const size, margin, radius = 1024, 82, 191
	m := ShapeMask(size, margin, radius)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			edge := x < margin || y < margin || x >= size-margin || y >= size-margin
			if edge && m.GrayAt(x, y).Y != 0 {
				t.Fatalf("pixel (%d,%d) inside the margin is set", x, y)
			}
		}
	}
	if m.GrayAt(size/2, margin).Y != 255 || m.GrayAt(margin, size/2).Y != 255 {
		t.Fatalf("shape does not reach the margin at the edge midpoints")
	}
	if m.GrayAt(margin, margin).Y != 0 {
		t.Fatalf("corner should be rounded off")
	}
}

func TestShapeMask_AreaMatchesAnalytic(t *testing.T) {
	tests := []struct {
		size, margin, radius int
	}{
		{1024, 82, 191},
		{256, 20, 48},
		{100, 10, 0},
		{100, 10, 500}, // radius clamps to a circle
	}
	for _, tt := range tests {
		m := ShapeMask(tt.size, tt.margin, tt.radius)
		got := float64(countAbove(m, 0))
		want := ShapeArea(tt.size, tt.margin, tt.radius)
		if tol := 0.005*want + 4; math.Abs(got-want) > tol {
			t.Errorf("size=%d margin=%d radius=%d: area %v, analytic %v", tt.size, tt.margin, tt.radius, got, want)
		}
	}
}

func TestShapeMask_HardEdgeAndSymmetric(t *testing.T) {
	const size = 128
	m := ShapeMask(size, 12, 30)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			v := m.GrayAt(x, y).Y
			if v != 0 && v != 255 {
				t.Fatalf("soft value %d at (%d,%d)", v, x, y)
			}
			if v != m.GrayAt(size-1-x, y).Y || v != m.GrayAt(x, size-1-y).Y {
				t.Fatalf("asymmetric at (%d,%d)", x, y)
			}
		}
	}
}

func TestShapeMask_MarginTooLarge(t *testing.T) {
	if n := countAbove(ShapeMask(10, 5, 2), 0); n != 0 {
		t.Fatalf("expected empty mask, got %d cells", n)
	}
}
