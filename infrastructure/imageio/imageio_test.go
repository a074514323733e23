package imageio

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func writeImage(t *testing.T, name string, encode func(f *os.File) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	defer f.Close()
	if err := encode(f); err != nil {
		t.Fatalf("encode %s: %v", name, err)
	}
	return path
}

func TestOpen_Formats(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 64, 32))
	gray := image.NewGray(image.Rect(0, 0, 20, 40))
	paletted := image.NewPaletted(image.Rect(0, 0, 16, 16), color.Palette{color.Black, color.White})

	tests := []struct {
		name   string
		file   string
		encode func(f *os.File) error
		format string
		width  int
		height int
		mode   string
	}{
		{"png rgba", "a.png", func(f *os.File) error { return png.Encode(f, rgba) }, "PNG", 64, 32, "RGBA"},
		{"png gray", "g.png", func(f *os.File) error { return png.Encode(f, gray) }, "PNG", 20, 40, "L"},
		{"gif", "p.gif", func(f *os.File) error { return gif.Encode(f, paletted, nil) }, "GIF", 16, 16, "P"},
		{"bmp", "b.bmp", func(f *os.File) error { return bmp.Encode(f, rgba) }, "BMP", 64, 32, ""},
		{"tiff", "t.tiff", func(f *os.File) error { return tiff.Encode(f, rgba, nil) }, "TIFF", 64, 32, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeImage(t, tt.file, tt.encode)

			meta, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if meta.Format != tt.format {
				t.Errorf("Format = %v, want %v", meta.Format, tt.format)
			}
			if meta.Width != tt.width || meta.Height != tt.height {
				t.Errorf("size = %dx%d, want %dx%d", meta.Width, meta.Height, tt.width, tt.height)
			}
			if tt.mode != "" && meta.ColorMode != tt.mode {
				t.Errorf("ColorMode = %v, want %v", meta.ColorMode, tt.mode)
			}
			if meta.FileSize <= 0 {
				t.Errorf("FileSize = %d, want > 0", meta.FileSize)
			}
			if meta.Path != path {
				t.Errorf("Path = %v, want %v", meta.Path, path)
			}
		})
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("error = %v, want ErrImageNotFound", err)
	}
}

func TestOpen_Directory(t *testing.T) {
	_, err := Open(t.TempDir())
	if !errors.Is(err, ErrImageNotFound) {
		t.Errorf("error = %v, want ErrImageNotFound", err)
	}
}

func TestOpen_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.png")
	if err := os.WriteFile(path, []byte("definitely not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Open(path)
	if !errors.Is(err, ErrImageDecode) {
		t.Errorf("error = %v, want ErrImageDecode", err)
	}
}

func TestReadBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "raw.bin")
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}

	data, err := ReadBytes(path)
	if err != nil {
		t.Fatalf("ReadBytes() error = %v", err)
	}
	if len(data) != 3 {
		t.Errorf("len = %d, want 3", len(data))
	}

	if _, err := ReadBytes(path + ".missing"); !errors.Is(err, ErrImageNotFound) {
		t.Errorf("error = %v, want ErrImageNotFound", err)
	}
}

func TestMIMEType(t *testing.T) {
	tests := []struct {
		format   string
		expected string
	}{
		{"PNG", "image/png"},
		{"jpeg", "image/jpeg"},
		{"GIF", "image/gif"},
		{"WEBP", "image/webp"},
		{"", "image/jpeg"},
	}
	for _, tt := range tests {
		if got := MIMEType(tt.format); got != tt.expected {
			t.Errorf("MIMEType(%q) = %v, want %v", tt.format, got, tt.expected)
		}
	}
}

func TestColorMode(t *testing.T) {
	tests := []struct {
		name     string
		model    color.Model
		expected string
	}{
		{"rgba", color.RGBAModel, "RGBA"},
		{"ycbcr", color.YCbCrModel, "RGB"},
		{"gray", color.GrayModel, "L"},
		{"gray16", color.Gray16Model, "I;16"},
		{"cmyk", color.CMYKModel, "CMYK"},
		{"palette", color.Palette{color.Black}, "P"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ColorMode(tt.model); got != tt.expected {
				t.Errorf("ColorMode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInspector(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 3))
	path := writeImage(t, "i.png", func(f *os.File) error { return png.Encode(f, img) })

	meta, err := NewInspector().Inspect(path)
	if err != nil {
		t.Fatalf("Inspect() error = %v", err)
	}
	if meta.Width != 3 {
		t.Errorf("Width = %d, want 3", meta.Width)
	}
}
