// Package figure is the boundary to figure rendering: producing an
// image file for insertion and knowing its aspect ratio. The planner
// itself never decodes pixels; it only needs width over height.
package figure

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	// Registered image formats for DetectAspect. GIF, JPEG and PNG come
	// from the standard library; BMP, TIFF and WebP from x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/google/uuid"
)

// RenderOptions are forwarded to the renderer unchanged. Tight trims
// surrounding whitespace before saving, the way plotting libraries'
// tight layouts do.
type RenderOptions struct {
	Tight bool
	DPI   int
}

// Renderer produces an image file for the current figure and reports
// its aspect ratio (width/height). Implementations own the temp-file
// lifecycle of the returned path.
type Renderer interface {
	Render(opts RenderOptions) (path string, aspect float64, err error)
}

// FileRenderer is a Renderer over an already-rendered image file.
type FileRenderer struct {
	Path string
}

// Render implements Renderer. The aspect ratio is read from the image
// header.
func (f FileRenderer) Render(RenderOptions) (string, float64, error) {
	aspect, err := DetectAspect(f.Path)
	if err != nil {
		return "", 0, err
	}
	return f.Path, aspect, nil
}

// DetectAspect reads an image file's header and returns its
// width/height ratio. PNG, JPEG, GIF, BMP, TIFF and WebP are
// recognized.
func DetectAspect(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("reading image header of %s: %w", path, err)
	}
	if cfg.Height == 0 {
		return 0, fmt.Errorf("image %s (%s) has zero height", path, format)
	}
	return float64(cfg.Width) / float64(cfg.Height), nil
}

// TempPath returns a fresh PNG path in the system temp directory for a
// renderer to write to.
func TempPath() string {
	return filepath.Join(os.TempDir(), "slidefig-"+uuid.New().String()[:8]+".png")
}
