package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/setanarut/popicon"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Log.Mode != "debug" {
		t.Errorf("expected log mode 'debug', got %s", cfg.Log.Mode)
	}
	if cfg.Pipeline.Crop.KeepRatio != 0.78 {
		t.Errorf("expected keep ratio 0.78, got %v", cfg.Pipeline.Crop.KeepRatio)
	}
	if err := cfg.Pipeline.Validate(); err != nil {
		t.Errorf("default pipeline options invalid: %v", err)
	}
	if len(cfg.Export.ICNS.Sizes) != 10 {
		t.Errorf("expected 10 iconset entries, got %d", len(cfg.Export.ICNS.Sizes))
	}
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent", FileName))
	if err != nil {
		t.Fatalf("expected no error for non-existent file, got: %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg, cmpopts.IgnoreInterfaces(struct{ popicon.BackgroundModel }{})); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", FileName)

	cfg := DefaultConfig()
	cfg.Output.Dir = "out/icons"
	cfg.Pipeline.Crop.KeepRatio = 0.6
	cfg.Pipeline.Segment.BlurSigma = 0
	cfg.Export.ICO.Sizes = []int{16, 32}

	if err := Save(path, cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
	if !Exists(path) {
		t.Fatal("expected config file to exist after save")
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.IgnoreInterfaces(struct{ popicon.BackgroundModel }{})); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `pipeline:
  crop:
    keep_ratio: 0.5
export:
  favicon: static/favicon.png
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Pipeline.Crop.KeepRatio != 0.5 {
		t.Errorf("expected keep ratio 0.5, got %v", cfg.Pipeline.Crop.KeepRatio)
	}
	if cfg.Pipeline.Crop.Padding != 8 || cfg.Pipeline.Segment.DeviationThreshold != 22 {
		t.Errorf("defaults lost: padding %d threshold %v", cfg.Pipeline.Crop.Padding, cfg.Pipeline.Segment.DeviationThreshold)
	}
	if cfg.Export.Favicon != "static/favicon.png" || cfg.Export.Master != "icon-1024.png" {
		t.Errorf("unexpected export options: %+v", cfg.Export)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POPICON_LOG_MODE", "release")
	t.Setenv("POPICON_OUTPUT_DIR", "/tmp/icons")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Log.Mode != "release" {
		t.Errorf("expected log mode 'release', got %s", cfg.Log.Mode)
	}
	if cfg.Output.Dir != "/tmp/icons" {
		t.Errorf("expected output dir '/tmp/icons', got %s", cfg.Output.Dir)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("pipeline: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for invalid YAML")
	}
}
