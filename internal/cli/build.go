package cli

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/setanarut/popicon"
	"github.com/setanarut/popicon/config"
	"github.com/setanarut/popicon/export"
	"github.com/setanarut/popicon/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildOutput    string
	buildKeepRatio float64
	buildPreview   string
	buildDebug     bool
	buildNoExport  bool
)

var buildCmd = &cobra.Command{
	Use:   "build <source>",
	Short: "Build the icon set from a source photo",
	Long: `Build the master icon from a source photo and export the icon set.

The photo should show one object on a flat, evenly lit backdrop. The
backdrop colour is sampled from the image sides, the object is segmented,
its upper part is cropped and composed into a rounded square.

Outputs (default config):
  icon-1024.png, icon.png, 32x32.png, 64x64.png, 128x128.png,
  128x128@2x.png, icon.icns (macOS only), icon.ico

Examples:
  popicon build photo.png
  popicon build photo.png -o icons --keep-ratio 0.7 --debug
  popicon build photo.png --preview icon-preview.png --no-export`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "export directory (default from config)")
	buildCmd.Flags().Float64Var(&buildKeepRatio, "keep-ratio", 0, "fraction of the object height to keep, in (0,1]")
	buildCmd.Flags().StringVar(&buildPreview, "preview", "", "write the master icon to this path")
	buildCmd.Flags().BoolVar(&buildDebug, "debug", false, "dump the mask, layers and backdrop palette")
	buildCmd.Flags().BoolVar(&buildNoExport, "no-export", false, "skip the icon set export")

	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := utils.InitLogger(cfg.Log.Mode); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer utils.Sync()

	img, err := utils.ReadImage(args[0])
	if err != nil {
		return err
	}

	opt := pipelineOptions(cmd, cfg, img.Bounds().Size())
	ib := popicon.NewIconBuilder(img)
	ib.Logger = utils.Logger.Named("build")
	buildErr := ib.Build(opt)

	if buildDebug {
		if err := dumpDebug(ib, cfg.Output.DebugDir); err != nil {
			utils.Logger.Warn("debug dump failed", zap.Error(err))
		}
	}
	if buildErr != nil {
		return buildErr
	}

	preview := cfg.Output.Preview
	if cmd.Flags().Changed("preview") {
		preview = buildPreview
	}
	if preview != "" {
		if err := utils.SaveImage(ib.Icon(), preview); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "preview: %s\n", preview)
	}

	if buildNoExport {
		return nil
	}
	dir := cfg.Output.Dir
	if buildOutput != "" {
		dir = buildOutput
	}
	catalog := export.NewCatalog(cfg.Export)
	catalog.Logger = utils.Logger.Named("export")
	report, err := catalog.Export(cmd.Context(), ib.Icon(), dir)
	if err != nil {
		return err
	}
	for _, path := range report.Written {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", path)
	}
	if report.Packaging != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", report.Packaging)
	}
	return nil
}

// pipelineOptions takes the configured options, falls back to size-scaled
// defaults when no config file exists and applies flag overrides.
func pipelineOptions(cmd *cobra.Command, cfg *config.Config, size image.Point) popicon.Options {
	opt := cfg.Pipeline
	if !config.Exists(configPath) {
		opt = popicon.OptionsFromSize(size)
	}
	if cmd.Flags().Changed("keep-ratio") {
		opt.Crop.KeepRatio = buildKeepRatio
	}
	return opt
}

func dumpDebug(ib *popicon.IconBuilder, dir string) error {
	if ib.Mask != nil {
		if err := utils.SaveImage(ib.Mask, filepath.Join(dir, "mask.png")); err != nil {
			return err
		}
	}
	if len(ib.Layers()) > 0 {
		if err := utils.SaveImages(ib.Layers(), dir, "layer"); err != nil {
			return err
		}
	}
	if len(ib.Palette) > 0 {
		utils.SortPaletteByBrightness(ib.Palette)
		if err := utils.SavePalette(ib.Palette, 64, filepath.Join(dir, "palette.png")); err != nil {
			return err
		}
	}
	utils.Logger.Info("debug artefacts written", zap.String("dir", dir))
	return nil
}
