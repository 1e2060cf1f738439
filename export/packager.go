package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Packager turns an iconset directory into a single container file.
type Packager interface {
	Package(ctx context.Context, iconset, output string) error
}

// IconUtil packs an iconset with the macOS iconutil tool.
type IconUtil struct {
	Tool string
}

func (u IconUtil) Package(ctx context.Context, iconset, output string) error {
	tool := u.Tool
	if tool == "" {
		tool = "iconutil"
	}
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, tool, "-c", "icns", iconset, "-o", output)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%s: %w: %s", tool, err, msg)
		}
		return fmt.Errorf("%s: %w", tool, err)
	}
	return nil
}
