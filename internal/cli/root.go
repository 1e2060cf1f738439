// Package cli implements the popicon command line.
package cli

import (
	"github.com/setanarut/popicon/config"
	"github.com/spf13/cobra"
)

var version = "dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "popicon",
	Short: "Build pop-out app icons from product photos",
	Long: `popicon cuts the object out of a photo taken on a flat backdrop and
composes a rounded-square app icon where the object rises out of the shape.

Examples:
  popicon build photo.png
  popicon build photo.png -o src-tauri/icons --keep-ratio 0.7
  popicon config init`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.FileName, "config file (missing file uses defaults)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
