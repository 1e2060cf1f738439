package popicon

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

// Bounds is a pixel rectangle with inclusive maxima.
type Bounds struct {
	MinRow, MinCol int
	MaxRow, MaxCol int
}

func (b Bounds) Height() int { return b.MaxRow - b.MinRow }
func (b Bounds) Width() int  { return b.MaxCol - b.MinCol }

// Empty reports whether the bounds collapse on either axis.
func (b Bounds) Empty() bool {
	return b.MaxRow <= b.MinRow || b.MaxCol <= b.MinCol
}

func (b Bounds) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.MinRow, b.MinCol, b.MaxRow, b.MaxCol)
}

// FindBounds returns the tightest rectangle around mask cells above floor.
func FindBounds(mask *image.Gray, floor uint8) (Bounds, error) {
	r := mask.Bounds()
	w, h := r.Dx(), r.Dy()
	bounds := Bounds{MinRow: h, MinCol: w, MaxRow: -1, MaxCol: -1}
	for y := range h {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+w]
		for x, v := range row {
			if v <= floor {
				continue
			}
			bounds.MinRow = min(bounds.MinRow, y)
			bounds.MaxRow = max(bounds.MaxRow, y)
			bounds.MinCol = min(bounds.MinCol, x)
			bounds.MaxCol = max(bounds.MaxCol, x)
		}
	}
	if bounds.MaxRow < 0 {
		return Bounds{}, fmt.Errorf("%w: no mask value above %d", ErrEmptyBounds, floor)
	}
	if bounds.Empty() {
		return bounds, fmt.Errorf("%w: %v", ErrEmptyBounds, bounds)
	}
	return bounds, nil
}

// Crop is the salient region cut from the source and its mask.
type Crop struct {
	Source *image.NRGBA
	Mask   *image.Gray
	Bounds Bounds          // object bounds in source coordinates
	Rect   image.Rectangle // cut rectangle in source coordinates
}

// CropRegion cuts src and mask to the object bounds, keeping only the upper
// KeepRatio of the object and padding the other three sides.
func CropRegion(src *image.NRGBA, mask *image.Gray, opt CropOptions) (Crop, error) {
	if opt.KeepRatio <= 0 || opt.KeepRatio > 1 {
		return Crop{}, fmt.Errorf("%w: keep ratio %v outside (0,1]", ErrInvalidOptions, opt.KeepRatio)
	}
	if src.Bounds().Size() != mask.Bounds().Size() {
		return Crop{}, fmt.Errorf("%w: mask %v does not match source %v", ErrInvalidSource, mask.Bounds().Size(), src.Bounds().Size())
	}
	bounds, err := FindBounds(mask, opt.Floor)
	if err != nil {
		return Crop{}, err
	}

	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	rect := image.Rect(
		max(0, bounds.MinCol-opt.Padding),
		max(0, bounds.MinRow-opt.Padding),
		min(w, bounds.MaxCol+opt.Padding),
		min(h, bounds.MinRow+int(float64(bounds.Height())*opt.KeepRatio)),
	)
	if rect.Empty() {
		return Crop{}, fmt.Errorf("%w: crop %v", ErrEmptyBounds, rect)
	}

	out := Crop{
		Source: image.NewNRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy())),
		Mask:   newMask(rect.Dx(), rect.Dy()),
		Bounds: bounds,
		Rect:   rect,
	}
	xdraw.Copy(out.Source, image.Point{}, src, rect.Add(src.Bounds().Min), xdraw.Src, nil)
	xdraw.Copy(out.Mask, image.Point{}, mask, rect.Add(mask.Bounds().Min), xdraw.Src, nil)
	return out, nil
}
