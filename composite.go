package popicon

import (
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Placement locates the scaled source on the canvas.
type Placement struct {
	Offset image.Point // top-left of the scaled source
	Size   image.Point // scaled source size
	// Pixels of the source above the shape's top edge after placement.
	PopOutTop int
	// Pixels of the source beside the shape on each side.
	PopOutSide int
	// Corrected is set when the bottom overflow forced an upward shift.
	Corrected bool
	// Pixels still below the shape bottom beyond the tolerance.
	BottomOverflow int
}

// Place centres the scaled source horizontally and lifts it so opt.PopOut
// pixels rise above the shape. When the bottom would pass the shape by more
// than opt.BottomTolerance the source moves up, but never above the canvas top.
func Place(scaled image.Point, opt CompositeOptions) Placement {
	shapeBottom := opt.Size - opt.Margin
	p := Placement{
		Offset: image.Pt((opt.Size-scaled.X)/2, opt.Margin-opt.PopOut),
		Size:   scaled,
	}
	if p.Offset.Y+scaled.Y > shapeBottom+opt.BottomTolerance {
		p.Corrected = true
		p.Offset.Y = max(0, shapeBottom-scaled.Y+opt.BottomTolerance)
	}
	p.PopOutTop = opt.Margin - p.Offset.Y
	p.PopOutSide = opt.Margin - p.Offset.X
	p.BottomOverflow = max(0, p.Offset.Y+scaled.Y-shapeBottom-opt.BottomTolerance)
	return p
}

// ScaleCrop resizes the crop's source and mask together to the given width,
// preserving the aspect ratio.
func ScaleCrop(crop Crop, width int) (*image.NRGBA, *image.Gray) {
	sb := crop.Source.Bounds()
	height := max(1, int(float64(sb.Dy())*float64(width)/float64(sb.Dx())))
	src := image.NewNRGBA(image.Rect(0, 0, width, height))
	mask := newMask(width, height)
	xdraw.CatmullRom.Scale(src, src.Bounds(), crop.Source, sb, xdraw.Src, nil)
	xdraw.CatmullRom.Scale(mask, mask.Bounds(), crop.Mask, crop.Mask.Bounds(), xdraw.Src, nil)
	return src, mask
}

// BackgroundLayer fills the shape with the backdrop colour; the rest stays transparent.
func BackgroundLayer(size int, backdrop color.NRGBA, shape *image.Gray) *image.NRGBA {
	layer := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i, a := range shape.Pix[:size*size] {
		if a == 0 {
			continue
		}
		off := i * 4
		layer.Pix[off] = backdrop.R
		layer.Pix[off+1] = backdrop.G
		layer.Pix[off+2] = backdrop.B
		layer.Pix[off+3] = a
	}
	return layer
}

// ClippedSourceLayer pastes the raw source at `at` and clips its alpha to the shape.
func ClippedSourceLayer(src *image.NRGBA, at image.Point, shape *image.Gray) *image.NRGBA {
	layer := pasteOnCanvas(src, at, shape.Bounds().Dx())
	for i, s := range shape.Pix[:len(layer.Pix)/4] {
		a := &layer.Pix[i*4+3]
		*a = min(*a, s)
	}
	return layer
}

// PopOutLayer pastes the source at `at` with the mask as alpha, keeping only
// what falls outside the shape.
func PopOutLayer(src *image.NRGBA, mask *image.Gray, at image.Point, shape *image.Gray) *image.NRGBA {
	sb := src.Bounds()
	masked := image.NewNRGBA(image.Rect(0, 0, sb.Dx(), sb.Dy()))
	xdraw.Copy(masked, image.Point{}, src, sb, xdraw.Src, nil)
	w := sb.Dx()
	for y := range sb.Dy() {
		for x := range w {
			masked.Pix[pixOffset(w, x, y)+3] = mask.GrayAt(mask.Rect.Min.X+x, mask.Rect.Min.Y+y).Y
		}
	}
	layer := pasteOnCanvas(masked, at, shape.Bounds().Dx())
	for i, s := range shape.Pix[:len(layer.Pix)/4] {
		a := &layer.Pix[i*4+3]
		*a = uint8(uint32(*a) * uint32(255-s) / 255)
	}
	return layer
}

// pasteOnCanvas copies src onto a transparent size x size canvas at `at`.
func pasteOnCanvas(src *image.NRGBA, at image.Point, size int) *image.NRGBA {
	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	sb := src.Bounds()
	w := sb.Dx()
	for y := range sb.Dy() {
		cy := at.Y + y
		if cy < 0 || cy >= size {
			continue
		}
		for x := range w {
			cx := at.X + x
			if cx < 0 || cx >= size {
				continue
			}
			so := src.PixOffset(sb.Min.X+x, sb.Min.Y+y)
			copy(canvas.Pix[pixOffset(size, cx, cy):pixOffset(size, cx, cy)+4], src.Pix[so:so+4])
		}
	}
	return canvas
}

// Flatten alpha-composites the layers bottom to top onto a transparent canvas.
// Colours are straight (non-premultiplied):
// ao = as + ad(1-as), co = (cs*as + cd*ad*(1-as)) / ao.
func Flatten(size int, layers ...*image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, size, size))
	for _, layer := range layers {
		for i := 0; i < len(out.Pix); i += 4 {
			sa := layer.Pix[i+3]
			if sa == 0 {
				continue
			}
			as := float64(sa) / 255
			ad := float64(out.Pix[i+3]) / 255
			keep := ad * (1 - as)
			ao := as + keep
			for c := range 3 {
				v := (float64(layer.Pix[i+c])*as + float64(out.Pix[i+c])*keep) / ao
				out.Pix[i+c] = uint8(max(0, min(255, v+0.5)))
			}
			out.Pix[i+3] = uint8(max(0, min(255, ao*255+0.5)))
		}
	}
	return out
}

// Composition is the compositor output. Layers are background, clipped
// source and pop-out, in drawing order.
type Composition struct {
	Icon      *image.NRGBA
	Layers    []*image.NRGBA
	Shape     *image.Gray
	Placement Placement
}

// Composite builds the final icon from a crop and the backdrop colour.
func Composite(crop Crop, backdrop color.NRGBA, opt CompositeOptions) (Composition, error) {
	if crop.Source == nil || crop.Source.Bounds().Empty() {
		return Composition{}, fmt.Errorf("%w: empty crop", ErrEmptyBounds)
	}
	if crop.Mask == nil || crop.Mask.Bounds().Size() != crop.Source.Bounds().Size() {
		return Composition{}, fmt.Errorf("%w: crop mask does not match crop source", ErrInvalidSource)
	}
	if opt.Size <= 0 || 2*opt.Margin >= opt.Size || opt.WidthFraction <= 0 {
		return Composition{}, fmt.Errorf("%w: canvas %d margin %d width fraction %v",
			ErrInvalidOptions, opt.Size, opt.Margin, opt.WidthFraction)
	}
	width := max(1, int(float64(opt.Size)*opt.WidthFraction))
	src, mask := ScaleCrop(crop, width)
	place := Place(src.Bounds().Size(), opt)
	shape := ShapeMask(opt.Size, opt.Margin, opt.ShapeRadius())

	layers := []*image.NRGBA{
		BackgroundLayer(opt.Size, opaque(backdrop), shape),
		ClippedSourceLayer(src, place.Offset, shape),
		PopOutLayer(src, mask, place.Offset, shape),
	}
	return Composition{
		Icon:      Flatten(opt.Size, layers...),
		Layers:    layers,
		Shape:     shape,
		Placement: place,
	}, nil
}
