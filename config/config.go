// Package config loads and saves popicon settings.
package config

import (
	"github.com/setanarut/popicon"
	"github.com/setanarut/popicon/export"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. POPICON_LOG_MODE.
	EnvPrefix = "POPICON"
	// FileName is the default configuration file name.
	FileName = "popicon.yaml"
)

type Config struct {
	Log      LogConfig       `mapstructure:"log" yaml:"log"`
	Output   OutputConfig    `mapstructure:"output" yaml:"output"`
	Pipeline popicon.Options `mapstructure:"pipeline" yaml:"pipeline"`
	Export   export.Options  `mapstructure:"export" yaml:"export"`
}

type LogConfig struct {
	// debug or release.
	Mode string `mapstructure:"mode" yaml:"mode"`
}

type OutputConfig struct {
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Preview path for the master icon. Empty skips it.
	Preview string `mapstructure:"preview" yaml:"preview"`
	// Debug artefacts (mask, layers, palette) go here when enabled.
	DebugDir string `mapstructure:"debug_dir" yaml:"debug_dir"`
}

func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{Mode: "debug"},
		Output: OutputConfig{
			Dir:      "icons",
			Preview:  "icon-preview.png",
			DebugDir: "debug",
		},
		Pipeline: popicon.DefaultOptions(),
		Export:   export.DefaultOptions(),
	}
}
