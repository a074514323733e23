// Package imageio reads image files and reports their metadata.
package imageio

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"photo-analyzer-go/domain/analysis"
)

// Errors for image loading.
var (
	ErrImageNotFound = errors.New("image file not found")
	ErrImageDecode   = errors.New("failed to decode image")
)

// SupportedExtensions lists the file extensions accepted by the open dialog.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".gif", ".tiff", ".tif", ".webp"}

// Open reads the header of the image at path and returns its metadata.
// Pixels are not decoded.
func Open(path string) (*analysis.ImageMetadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat image: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrImageNotFound, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrImageDecode, filepath.Base(path), err)
	}

	return &analysis.ImageMetadata{
		Path:      path,
		Width:     cfg.Width,
		Height:    cfg.Height,
		ColorMode: ColorMode(cfg.ColorModel),
		Format:    strings.ToUpper(format),
		FileSize:  info.Size(),
	}, nil
}

// ReadBytes returns the raw file contents for upload.
func ReadBytes(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrImageNotFound, path)
		}
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	return data, nil
}

// ColorMode maps a color model to its conventional short name.
func ColorMode(m color.Model) string {
	if _, ok := m.(color.Palette); ok {
		return "P"
	}
	switch m {
	case color.RGBAModel, color.NRGBAModel, color.RGBA64Model, color.NRGBA64Model:
		return "RGBA"
	case color.YCbCrModel, color.NYCbCrAModel:
		return "RGB"
	case color.GrayModel:
		return "L"
	case color.Gray16Model:
		return "I;16"
	case color.CMYKModel:
		return "CMYK"
	case color.AlphaModel, color.Alpha16Model:
		return "A"
	default:
		return "Unknown"
	}
}

// MIMEType returns the upload content type for a detected format name.
func MIMEType(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// Inspector implements analysis.Inspector on the local filesystem.
type Inspector struct{}

// NewInspector creates a filesystem inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect reads metadata for path.
func (i *Inspector) Inspect(path string) (*analysis.ImageMetadata, error) {
	return Open(path)
}

var _ analysis.Inspector = (*Inspector)(nil)
