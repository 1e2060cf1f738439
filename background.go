package popicon

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// BackgroundModel estimates the backdrop luma at every pixel from the luma field.
// Both matrices are rows x cols of the source image.
type BackgroundModel interface {
	Estimate(luma *mat.Dense) *mat.Dense
}

// RowBandModel assumes a backdrop that varies only by row. Each row's estimate
// is the average of its left and right band means, broadcast across the row.
type RowBandModel struct {
	Band Band
}

func (m RowBandModel) Estimate(luma *mat.Dense) *mat.Dense {
	h, w := luma.Dims()
	l0, l1, r0, r1 := m.Band.columns(w)
	out := mat.NewDense(h, w, nil)
	for y := range h {
		row := luma.RawRowView(y)
		est := (bandMean(row, l0, l1) + bandMean(row, r0, r1)) / 2
		dst := out.RawRowView(y)
		for x := range dst {
			dst[x] = est
		}
	}
	return out
}

// FlatBandModel uses a single estimate: the mean of all band pixels.
type FlatBandModel struct {
	Band Band
}

func (m FlatBandModel) Estimate(luma *mat.Dense) *mat.Dense {
	h, w := luma.Dims()
	l0, l1, r0, r1 := m.Band.columns(w)
	vals := make([]float64, 0, h*(l1-l0+r1-r0))
	for y := range h {
		row := luma.RawRowView(y)
		vals = append(vals, row[l0:l1]...)
		vals = append(vals, row[r0:r1]...)
	}
	est := 0.0
	if len(vals) > 0 {
		est = stat.Mean(vals, nil)
	}
	out := mat.NewDense(h, w, nil)
	for y := range h {
		dst := out.RawRowView(y)
		for x := range dst {
			dst[x] = est
		}
	}
	return out
}

// bandMean is 0 for an empty range, so a missing band halves the other side.
func bandMean(row []float64, from, to int) float64 {
	if to <= from {
		return 0
	}
	return stat.Mean(row[from:to], nil)
}
