package export

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/setanarut/popicon/utils"
)

type fakePackager struct {
	err     error
	iconset []string
}

func (f *fakePackager) Package(_ context.Context, iconset, output string) error {
	entries, err := os.ReadDir(iconset)
	if err != nil {
		return err
	}
	for _, e := range entries {
		f.iconset = append(f.iconset, e.Name())
	}
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("icns"), 0644)
}

func testIcon(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := range size {
		for x := range size {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	return img
}

func readSize(t *testing.T, path string) image.Point {
	t.Helper()
	img, err := utils.ReadImage(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return img.Bounds().Size()
}

func TestCatalog_WritesDefaultSet(t *testing.T) {
	dir := t.TempDir()
	pack := &fakePackager{}
	c := NewCatalog(DefaultOptions())
	c.Packager = pack
	c.Options.Favicon = filepath.Join("static", "favicon.png")

	report, err := c.Export(context.Background(), testIcon(1024), dir)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if report.Packaging != nil {
		t.Fatalf("unexpected packaging error: %v", report.Packaging)
	}

	for _, tgt := range DefaultOptions().Targets {
		if got := readSize(t, filepath.Join(dir, tgt.Name)); got != image.Pt(tgt.Size, tgt.Size) {
			t.Errorf("%s: expected %dpx, got %v", tgt.Name, tgt.Size, got)
		}
	}
	if got := readSize(t, filepath.Join(dir, "icon-1024.png")); got != image.Pt(1024, 1024) {
		t.Errorf("master: got %v", got)
	}
	if got := readSize(t, filepath.Join(dir, "static", "favicon.png")); got != image.Pt(32, 32) {
		t.Errorf("favicon: got %v", got)
	}
	if _, err := os.Stat(filepath.Join(dir, "icon.icns")); err != nil {
		t.Errorf("icns missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "icon.iconset")); !os.IsNotExist(err) {
		t.Errorf("iconset directory should be removed, stat err: %v", err)
	}

	var want []string
	for _, tgt := range DefaultOptions().ICNS.Sizes {
		want = append(want, tgt.Name)
	}
	sort.Strings(want)
	if diff := cmp.Diff(want, pack.iconset); diff != "" {
		t.Errorf("iconset contents mismatch (-want +got):\n%s", diff)
	}
	if len(report.Written) != 5+1+1+1+1 {
		t.Errorf("unexpected written list: %v", report.Written)
	}
}

func TestCatalog_ICOContainsAllSizes(t *testing.T) {
	dir := t.TempDir()
	opt := DefaultOptions()
	opt.ICNS.Enabled = false
	if _, err := NewCatalog(opt).Export(context.Background(), testIcon(512), dir); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "icon.ico"))
	if err != nil {
		t.Fatalf("open ico: %v", err)
	}
	defer f.Close()
	images, err := ico.DecodeAll(f)
	if err != nil {
		t.Fatalf("decode ico: %v", err)
	}
	var got []int
	for _, img := range images {
		got = append(got, img.Bounds().Dx())
	}
	sort.Ints(got)
	if diff := cmp.Diff(opt.ICO.Sizes, got); diff != "" {
		t.Errorf("ico sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestCatalog_PackagingFailureIsNotFatal(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(DefaultOptions())
	c.Packager = &fakePackager{err: errors.New("iconutil: not found")}

	report, err := c.Export(context.Background(), testIcon(256), dir)
	if err != nil {
		t.Fatalf("packaging failure must not abort export: %v", err)
	}
	if !errors.Is(report.Packaging, ErrPackaging) {
		t.Fatalf("expected ErrPackaging in report, got %v", report.Packaging)
	}
	if _, err := os.Stat(filepath.Join(dir, "icon.ico")); err != nil {
		t.Errorf("later outputs should still be written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "icon.iconset")); !os.IsNotExist(err) {
		t.Errorf("iconset directory should be removed after failure")
	}
}

func TestCatalog_Errors(t *testing.T) {
	tests := []struct {
		name string
		icon image.Image
		opt  func(*Options)
		ctx  func() context.Context
	}{
		{name: "nil icon"},
		{name: "bad target size", icon: testIcon(64), opt: func(o *Options) { o.Targets = []Target{{"zero.png", 0}} }},
		{name: "ico too large", icon: testIcon(64), opt: func(o *Options) {
			o.ICNS.Enabled = false
			o.ICO.Sizes = []int{512}
		}},
		{name: "cancelled", icon: testIcon(64), ctx: func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := DefaultOptions()
			if tt.opt != nil {
				tt.opt(&opt)
			}
			ctx := context.Background()
			if tt.ctx != nil {
				ctx = tt.ctx()
			}
			c := NewCatalog(opt)
			c.Packager = &fakePackager{}
			if _, err := c.Export(ctx, tt.icon, t.TempDir()); err == nil {
				t.Fatalf("expected an error")
			}
		})
	}
}

func TestIconUtil_MissingTool(t *testing.T) {
	err := IconUtil{Tool: "popicon-no-such-tool"}.Package(context.Background(), t.TempDir(), filepath.Join(t.TempDir(), "x.icns"))
	if err == nil {
		t.Fatalf("expected an error for a missing tool")
	}
}
