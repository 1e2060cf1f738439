package popicon

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSource marks a missing or zero-sized source image.
	ErrInvalidSource = errors.New("popicon: invalid source image")
	// ErrSegmentation marks a run where no usable foreground was found.
	ErrSegmentation = errors.New("popicon: segmentation failed")
	// ErrEmptyBounds is returned when the mask has no extent to crop to.
	ErrEmptyBounds = fmt.Errorf("%w: empty foreground bounds", ErrSegmentation)
	// ErrInvalidOptions marks option values the pipeline cannot run with.
	ErrInvalidOptions = errors.New("popicon: invalid options")
)
