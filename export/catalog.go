package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
	"github.com/setanarut/popicon/utils"
	"go.uber.org/zap"
)

// Catalog is the file-based Exporter.
type Catalog struct {
	Options  Options
	Packager Packager
	Logger   *zap.Logger
}

var _ Exporter = (*Catalog)(nil)

func NewCatalog(opt Options) *Catalog {
	return &Catalog{
		Options:  opt,
		Packager: IconUtil{Tool: opt.ICNS.Tool},
		Logger:   zap.NewNop(),
	}
}

// Export writes every configured output. PNG and ICO write failures abort;
// a packaging failure is recorded in the report and logged.
func (c *Catalog) Export(ctx context.Context, icon image.Image, dir string) (Report, error) {
	var report Report
	if icon == nil || icon.Bounds().Empty() {
		return report, errors.New("export: empty icon")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return report, err
	}
	opt := c.Options

	if opt.Master != "" {
		path := filepath.Join(dir, opt.Master)
		if err := utils.SaveImage(icon, path); err != nil {
			return report, err
		}
		report.Written = append(report.Written, path)
	}

	written, err := c.writeTargets(ctx, icon, dir, opt.Targets)
	report.Written = append(report.Written, written...)
	if err != nil {
		return report, err
	}

	if opt.ICNS.Enabled && len(opt.ICNS.Sizes) > 0 {
		path, err := c.writeICNS(ctx, icon, dir)
		if err != nil {
			if !errors.Is(err, ErrPackaging) {
				return report, err
			}
			report.Packaging = err
			c.Logger.Warn("icns packaging failed", zap.Error(err))
		} else {
			report.Written = append(report.Written, path)
		}
	}

	if opt.ICO.Name != "" && len(opt.ICO.Sizes) > 0 {
		path := filepath.Join(dir, opt.ICO.Name)
		if err := writeICO(icon, path, opt.ICO.Sizes); err != nil {
			return report, err
		}
		report.Written = append(report.Written, path)
	}

	if opt.Favicon != "" {
		path := opt.Favicon
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		size := opt.FaviconSize
		if size <= 0 {
			size = 32
		}
		if err := utils.SaveImage(resize(icon, size), path); err != nil {
			return report, err
		}
		report.Written = append(report.Written, path)
	}

	c.Logger.Info("icons exported", zap.String("dir", dir), zap.Int("files", len(report.Written)))
	return report, nil
}

func (c *Catalog) writeTargets(ctx context.Context, icon image.Image, dir string, targets []Target) ([]string, error) {
	var written []string
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		if t.Size <= 0 {
			return written, fmt.Errorf("export %s: invalid size %d", t.Name, t.Size)
		}
		path := filepath.Join(dir, t.Name)
		if err := utils.SaveImage(resize(icon, t.Size), path); err != nil {
			return written, err
		}
		c.Logger.Debug("png written", zap.String("path", path), zap.Int("size", t.Size))
		written = append(written, path)
	}
	return written, nil
}

// writeICNS fills the iconset directory, packs it and removes the directory.
func (c *Catalog) writeICNS(ctx context.Context, icon image.Image, dir string) (string, error) {
	opt := c.Options.ICNS
	iconset := filepath.Join(dir, opt.Iconset)
	defer os.RemoveAll(iconset)

	if _, err := c.writeTargets(ctx, icon, iconset, opt.Sizes); err != nil {
		return "", err
	}
	output := filepath.Join(dir, opt.Output)
	packager := c.Packager
	if packager == nil {
		packager = IconUtil{Tool: opt.Tool}
	}
	if err := packager.Package(ctx, iconset, output); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	return output, nil
}

func writeICO(icon image.Image, path string, sizes []int) error {
	images := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		if s <= 0 || s > 256 {
			return fmt.Errorf("export %s: ico size %d outside 1..256", path, s)
		}
		images = append(images, resize(icon, s))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ico.EncodeAll(f, images); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func resize(icon image.Image, size int) image.Image {
	if b := icon.Bounds(); b.Dx() == size && b.Dy() == size {
		return icon
	}
	return imaging.Resize(icon, size, size, imaging.Lanczos)
}
