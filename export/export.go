// Package export writes a master icon out as the platform icon set:
// PNG sizes, a macOS .icns container, a Windows .ico and a favicon.
package export

import (
	"context"
	"errors"
	"image"
)

// ErrPackaging marks a failed container step. Files written before it stay.
var ErrPackaging = errors.New("icon packaging failed")

// Exporter turns a master icon into files under dir.
type Exporter interface {
	Export(ctx context.Context, icon image.Image, dir string) (Report, error)
}

// Report lists written files. Packaging holds a non-fatal container failure.
type Report struct {
	Written   []string
	Packaging error
}

// Target is one square PNG output.
type Target struct {
	Name string `mapstructure:"name" yaml:"name"`
	Size int    `mapstructure:"size" yaml:"size"`
}

type ICNSOptions struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
	// Packaging tool, run as `<tool> -c icns <iconset> -o <output>`.
	Tool    string   `mapstructure:"tool" yaml:"tool"`
	Iconset string   `mapstructure:"iconset" yaml:"iconset"`
	Output  string   `mapstructure:"output" yaml:"output"`
	Sizes   []Target `mapstructure:"sizes" yaml:"sizes"`
}

type ICOOptions struct {
	// Empty disables the .ico output.
	Name  string `mapstructure:"name" yaml:"name"`
	Sizes []int  `mapstructure:"sizes" yaml:"sizes"`
}

type Options struct {
	Targets []Target `mapstructure:"targets" yaml:"targets"`
	// Unscaled copy of the master icon. Empty skips it.
	Master string      `mapstructure:"master" yaml:"master"`
	ICNS   ICNSOptions `mapstructure:"icns" yaml:"icns"`
	ICO    ICOOptions  `mapstructure:"ico" yaml:"ico"`
	// Favicon path. Relative paths resolve against the export directory.
	Favicon     string `mapstructure:"favicon" yaml:"favicon"`
	FaviconSize int    `mapstructure:"favicon_size" yaml:"favicon_size"`
}

func DefaultOptions() Options {
	return Options{
		Targets: []Target{
			{"32x32.png", 32},
			{"64x64.png", 64},
			{"128x128.png", 128},
			{"128x128@2x.png", 256},
			{"icon.png", 512},
		},
		Master: "icon-1024.png",
		ICNS: ICNSOptions{
			Enabled: true,
			Tool:    "iconutil",
			Iconset: "icon.iconset",
			Output:  "icon.icns",
			Sizes: []Target{
				{"icon_16x16.png", 16},
				{"icon_16x16@2x.png", 32},
				{"icon_32x32.png", 32},
				{"icon_32x32@2x.png", 64},
				{"icon_128x128.png", 128},
				{"icon_128x128@2x.png", 256},
				{"icon_256x256.png", 256},
				{"icon_256x256@2x.png", 512},
				{"icon_512x512.png", 512},
				{"icon_512x512@2x.png", 1024},
			},
		},
		ICO: ICOOptions{
			Name:  "icon.ico",
			Sizes: []int{16, 24, 32, 48, 64, 128, 256},
		},
		FaviconSize: 32,
	}
}
