// Package library tracks recently opened images.
// Only image references are kept; analysis results and credentials are never stored.
package library

import (
	"fmt"
	"path/filepath"
	"time"
)

// RecentImage is a reference to an image the user opened.
type RecentImage struct {
	// ID is the unique identifier assigned by the repository
	ID string

	// Path is the absolute path of the image file
	Path string

	// Format is the detected container format
	Format string

	// Width and Height are the pixel dimensions
	Width  int
	Height int

	// FileSize is the file size in bytes
	FileSize int64

	// OpenedAt is when the image was last opened
	OpenedAt time.Time
}

// Name returns the base name of the image file.
func (r *RecentImage) Name() string {
	return filepath.Base(r.Path)
}

// Label returns a compact description for selection lists.
func (r *RecentImage) Label() string {
	return fmt.Sprintf("%s (%d×%d)", r.Name(), r.Width, r.Height)
}

// Clone creates a copy of the entry.
func (r *RecentImage) Clone() *RecentImage {
	clone := *r
	return &clone
}
