package popicon

import (
	"fmt"
	"image"

	"github.com/setanarut/popicon/utils"
)

// Band is a vertical strip of columns measured inward from both image edges.
// The left strip covers [From, To), the right strip covers [w-To, w-From).
type Band struct {
	From int `mapstructure:"from" yaml:"from"`
	To   int `mapstructure:"to" yaml:"to"`
}

// columns returns the left and right column ranges of the band clamped to width w.
func (b Band) columns(w int) (l0, l1, r0, r1 int) {
	l0 = clampInt(b.From, 0, w)
	l1 = clampInt(b.To, l0, w)
	r0 = clampInt(w-b.To, 0, w)
	r1 = clampInt(w-b.From, r0, w)
	return l0, l1, r0, r1
}

func (b Band) scaled(f float64) Band {
	return Band{From: int(float64(b.From) * f), To: max(int(float64(b.To)*f), int(float64(b.From)*f)+1)}
}

type SampleOptions struct {
	// Backdrop sampling strip.
	// Must sit inside the backdrop on both sides of the object.
	Band Band `mapstructure:"band" yaml:"band"`
	// Row positions as fractions of the image height.
	// Keep them above the object's widest part and below the UI chrome.
	Rows []float64 `mapstructure:"rows" yaml:"rows"`
	// Backdrop colour source: bands or dominantcolor. Both are deterministic.
	Method string `mapstructure:"method" yaml:"method"`
	// Method for the debug palette swatch: dominantcolor or kmeans.
	// kmeans seeds from the global random source and varies between runs.
	Palette string `mapstructure:"palette" yaml:"palette"`
}

type SegmentOptions struct {
	// Strip used by the row background model.
	LumaBand Band `mapstructure:"luma_band" yaml:"luma_band"`
	// Minimum |luma - background| for a candidate pixel.
	// Ideal start: 18-26. Lower picks up backdrop gradient noise.
	DeviationThreshold float64 `mapstructure:"deviation_threshold" yaml:"deviation_threshold"`
	// Minimum HSV saturation for a candidate pixel.
	// Ideal start: 0.12-0.20 for warm objects on a grey backdrop.
	SaturationThreshold float64 `mapstructure:"saturation_threshold" yaml:"saturation_threshold"`
	// Rows above ChromeEnd*h are cleared.
	ChromeEnd float64 `mapstructure:"chrome_end" yaml:"chrome_end"`
	// Rows from CaptionStart*h downwards are cleared.
	CaptionStart float64 `mapstructure:"caption_start" yaml:"caption_start"`
	// Columns cleared on each side.
	SideMargin int `mapstructure:"side_margin" yaml:"side_margin"`
	// Closing window sizes (dilate, then erode). Odd values.
	CloseDilate int `mapstructure:"close_dilate" yaml:"close_dilate"`
	CloseErode  int `mapstructure:"close_erode" yaml:"close_erode"`
	// Opening window size (erode, then dilate).
	// Too high removes thin object parts such as strings or pegs.
	OpenSize int `mapstructure:"open_size" yaml:"open_size"`
	// Gaussian sigma for the final edge softening. 0 keeps a hard mask.
	BlurSigma float64 `mapstructure:"blur_sigma" yaml:"blur_sigma"`
	// Background luma strategy. Nil means RowBandModel over LumaBand.
	Background BackgroundModel `mapstructure:"-" yaml:"-"`
}

type CropOptions struct {
	// Fraction of the object height kept, measured from its top. (0,1].
	KeepRatio float64 `mapstructure:"keep_ratio" yaml:"keep_ratio"`
	// Mask values above Floor count as foreground when measuring bounds.
	Floor uint8 `mapstructure:"floor" yaml:"floor"`
	// Pixels added left, right and above the bounds.
	Padding int `mapstructure:"padding" yaml:"padding"`
}

type CompositeOptions struct {
	// Canvas side in pixels.
	Size int `mapstructure:"size" yaml:"size"`
	// Inset of the shape from every canvas edge.
	Margin int `mapstructure:"margin" yaml:"margin"`
	// Corner radius of the shape. 0 derives it from the shape side.
	Radius int `mapstructure:"radius" yaml:"radius"`
	// Scaled source width as a fraction of Size.
	// Larger values zoom in and push the object further out on the sides.
	WidthFraction float64 `mapstructure:"width_fraction" yaml:"width_fraction"`
	// Pixels of the scaled source placed above the shape's top edge.
	PopOut int `mapstructure:"pop_out" yaml:"pop_out"`
	// Allowed overflow below the shape's bottom edge before shifting up.
	BottomTolerance int `mapstructure:"bottom_tolerance" yaml:"bottom_tolerance"`
}

// Apple's corner radius ratio for the shape side.
const cornerRatio = 0.223

// ShapeRadius returns the configured radius or the derived one.
func (o CompositeOptions) ShapeRadius() int {
	if o.Radius > 0 {
		return o.Radius
	}
	return int(float64(o.Size-2*o.Margin) * cornerRatio)
}

type Options struct {
	Sample    SampleOptions    `mapstructure:"sample" yaml:"sample"`
	Segment   SegmentOptions   `mapstructure:"segment" yaml:"segment"`
	Crop      CropOptions      `mapstructure:"crop" yaml:"crop"`
	Composite CompositeOptions `mapstructure:"composite" yaml:"composite"`
}

func DefaultOptions() Options {
	return Options{
		Sample: SampleOptions{
			Band:   Band{From: 50, To: 80},
			Rows:   []float64{0.25, 0.35, 0.45},
			Method:  "bands",
			Palette: "dominantcolor",
		},
		Segment: SegmentOptions{
			LumaBand:            Band{From: 40, To: 90},
			DeviationThreshold:  22,
			SaturationThreshold: 0.15,
			ChromeEnd:           0.12,
			CaptionStart:        0.72,
			SideMargin:          30,
			CloseDilate:         9,
			CloseErode:          7,
			OpenSize:            5,
			BlurSigma:           2.0,
		},
		Crop: CropOptions{
			KeepRatio: 0.78,
			Floor:     30,
			Padding:   8,
		},
		Composite: CompositeOptions{
			Size:            1024,
			Margin:          82,
			WidthFraction:   0.93,
			PopOut:          40,
			BottomTolerance: 20,
		},
	}
}

// Sources narrower than this get proportionally narrower pixel bands.
const referenceWidth = 400

func OptionsFromSize(size image.Point) Options {
	opt := DefaultOptions()
	if size.X <= 0 || size.Y <= 0 || size.X >= referenceWidth {
		return opt
	}
	f := float64(size.X) / referenceWidth
	opt.Sample.Band = opt.Sample.Band.scaled(f)
	opt.Segment.LumaBand = opt.Segment.LumaBand.scaled(f)
	opt.Segment.SideMargin = int(float64(opt.Segment.SideMargin) * f)
	opt.Crop.Padding = max(1, int(float64(opt.Crop.Padding)*f))
	return opt
}

// Validate reports option values the pipeline cannot run with.
func (o Options) Validate() error {
	switch {
	case o.Crop.KeepRatio <= 0 || o.Crop.KeepRatio > 1:
		return fmt.Errorf("%w: keep ratio %v outside (0,1]", ErrInvalidOptions, o.Crop.KeepRatio)
	case o.Composite.Size <= 0:
		return fmt.Errorf("%w: canvas size %d", ErrInvalidOptions, o.Composite.Size)
	case o.Composite.Margin < 0 || 2*o.Composite.Margin >= o.Composite.Size:
		return fmt.Errorf("%w: margin %d does not fit canvas %d", ErrInvalidOptions, o.Composite.Margin, o.Composite.Size)
	case o.Composite.WidthFraction <= 0:
		return fmt.Errorf("%w: width fraction %v", ErrInvalidOptions, o.Composite.WidthFraction)
	case len(o.Sample.Rows) == 0:
		return fmt.Errorf("%w: no sample rows", ErrInvalidOptions)
	}
	if o.Sample.Method != "bands" {
		method, err := utils.ParsePaletteMethod(o.Sample.Method)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidOptions, err)
		}
		if method != utils.PaletteMethodDominantColor {
			return fmt.Errorf("%w: backdrop method %q is not deterministic", ErrInvalidOptions, o.Sample.Method)
		}
	}
	if _, err := utils.ParsePaletteMethod(o.Sample.Palette); err != nil {
		return fmt.Errorf("%w: palette %v", ErrInvalidOptions, err)
	}
	return nil
}
