package popicon

import (
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/setanarut/popicon/utils"
	"go.uber.org/zap"
)

type IconBuilder struct {
	InputImage  image.Image
	Source      *image.NRGBA
	Backdrop    color.NRGBA
	Palette     []colorful.Color
	Mask        *image.Gray
	Stats       SegmentStats
	Crop        Crop
	Composition Composition
	Logger      *zap.Logger
}

func NewIconBuilder(input image.Image) *IconBuilder {
	return &IconBuilder{
		InputImage: input,
		Logger:     zap.NewNop(),
	}
}

// Build runs sampling, segmentation, cropping and compositing in order.
// Results of an earlier run are cleared first; a failed stage leaves the
// later ones zero.
func (ib *IconBuilder) Build(opt Options) error {
	ib.reset()
	if err := opt.Validate(); err != nil {
		return err
	}
	if err := ib.prepareSource(); err != nil {
		return err
	}
	ib.sampleBackdrop(opt.Sample)
	ib.segment(opt.Segment)
	if err := ib.cropRegion(opt.Crop); err != nil {
		return err
	}
	return ib.compose(opt.Composite)
}

// Icon returns the master icon, or nil before a successful Build.
func (ib *IconBuilder) Icon() *image.NRGBA {
	return ib.Composition.Icon
}

// Layers returns the three compositing layers, bottom first.
func (ib *IconBuilder) Layers() []*image.NRGBA {
	return ib.Composition.Layers
}

// ============ SOURCE ============

func (ib *IconBuilder) reset() {
	ib.Source = nil
	ib.Backdrop = color.NRGBA{}
	ib.Palette = nil
	ib.Mask = nil
	ib.Stats = SegmentStats{}
	ib.Crop = Crop{}
	ib.Composition = Composition{}
}

func (ib *IconBuilder) prepareSource() error {
	if ib.InputImage == nil {
		return fmt.Errorf("%w: no image", ErrInvalidSource)
	}
	size := ib.InputImage.Bounds().Size()
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("%w: size %v", ErrInvalidSource, size)
	}
	ib.Source = ToNRGBA(ib.InputImage)
	ib.Logger.Info("source loaded", zap.Int("width", size.X), zap.Int("height", size.Y))
	return nil
}

// ============ BACKDROP ============

func (ib *IconBuilder) sampleBackdrop(opt SampleOptions) {
	method, err := utils.ParsePaletteMethod(opt.Palette)
	if err != nil {
		method = utils.PaletteMethodDominantColor
	}
	ib.Palette = SampleBackdropPalette(ib.Source, opt, PaletteSize, method)
	// Same extraction as SampleBackdrop; reuse it instead of running it twice.
	if opt.Method != "bands" && method == utils.PaletteMethodDominantColor && len(ib.Palette) > 0 {
		ib.Backdrop = colorToNRGBA(ib.Palette[0])
	} else {
		ib.Backdrop = SampleBackdrop(ib.Source, opt)
	}
	ib.Logger.Info("backdrop sampled",
		zap.String("method", opt.Method),
		zap.Stringer("palette", method),
		zap.Uint8s("rgba", []uint8{ib.Backdrop.R, ib.Backdrop.G, ib.Backdrop.B, ib.Backdrop.A}))
}

// ============ SEGMENTATION ============

func (ib *IconBuilder) segment(opt SegmentOptions) {
	ib.Mask, ib.Stats = Segment(ib.Source, opt)
	fields := []zap.Field{
		zap.Int("candidates", ib.Stats.Candidates),
		zap.Int("components", ib.Stats.Components),
		zap.Int("kept", ib.Stats.Kept),
	}
	if ib.Stats.Removed() > 0 {
		fields = append(fields, zap.Int("removed", ib.Stats.Removed()))
	}
	ib.Logger.Info("foreground segmented", fields...)
}

// ============ CROP ============

func (ib *IconBuilder) cropRegion(opt CropOptions) error {
	crop, err := CropRegion(ib.Source, ib.Mask, opt)
	if err != nil {
		return fmt.Errorf("crop: %w", err)
	}
	ib.Crop = crop
	ib.Logger.Info("region cropped",
		zap.Stringer("bounds", crop.Bounds),
		zap.Stringer("rect", crop.Rect),
		zap.Float64("keep_ratio", opt.KeepRatio))
	return nil
}

// ============ COMPOSITE ============

func (ib *IconBuilder) compose(opt CompositeOptions) error {
	comp, err := Composite(ib.Crop, ib.Backdrop, opt)
	if err != nil {
		return fmt.Errorf("composite: %w", err)
	}
	ib.Composition = comp
	p := comp.Placement
	ib.Logger.Info("icon composed",
		zap.Int("size", opt.Size),
		zap.Stringer("scaled", p.Size),
		zap.Stringer("offset", p.Offset),
		zap.Int("pop_out_top", p.PopOutTop),
		zap.Int("pop_out_side", p.PopOutSide))
	if p.Corrected {
		ib.Logger.Warn("placement shifted up to limit bottom overflow",
			zap.Int("requested_pop_out", opt.PopOut),
			zap.Int("pop_out_top", p.PopOutTop),
			zap.Int("bottom_overflow", p.BottomOverflow))
	}
	return nil
}
