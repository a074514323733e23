// Package analysis defines image metadata, analysis results and the offline
// analysis routines that run without any network dependency.
package analysis

import (
	"fmt"
	"path/filepath"

	"photo-analyzer-go/domain/provider"
)

// ImageMetadata describes a decoded image without holding its pixels.
type ImageMetadata struct {
	// Path is the source file path
	Path string

	// Width and Height are the pixel dimensions
	Width  int
	Height int

	// ColorMode is the short color mode name (RGB, RGBA, L, P, CMYK, ...)
	ColorMode string

	// Format is the detected container format (JPEG, PNG, ...)
	Format string

	// FileSize is the source file size in bytes
	FileSize int64
}

// FileName returns the base name of the source file.
func (m *ImageMetadata) FileName() string {
	if m.Path == "" {
		return ""
	}
	return filepath.Base(m.Path)
}

// SizeKB returns the file size in kilobytes.
func (m *ImageMetadata) SizeKB() float64 {
	return float64(m.FileSize) / 1024
}

// Source identifies which path produced an analysis result.
type Source int

const (
	// SourcePrimary is the primary remote provider.
	SourcePrimary Source = iota
	// SourceSecondary is the secondary remote provider.
	SourceSecondary
	// SourceFallback is the local, metadata-only analyzer.
	SourceFallback
)

// String returns the string representation of the source.
func (s Source) String() string {
	switch s {
	case SourcePrimary:
		return "remote-primary"
	case SourceSecondary:
		return "remote-secondary"
	case SourceFallback:
		return "local-fallback"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Label returns the attribution shown under a result.
func (s Source) Label() string {
	switch s {
	case SourcePrimary:
		return provider.Primary.DisplayName()
	case SourceSecondary:
		return provider.Secondary.DisplayName()
	case SourceFallback:
		return "Fallback Analysis (Basic)"
	default:
		return s.String()
	}
}

// IsRemote returns true if the result came from a remote provider.
func (s Source) IsRemote() bool {
	return s == SourcePrimary || s == SourceSecondary
}

// SourceFor maps a provider to the source tag of its results.
func SourceFor(p provider.Provider) Source {
	if p == provider.Secondary {
		return SourceSecondary
	}
	return SourcePrimary
}

// Result is an immutable analysis report.
type Result struct {
	Text   string
	Source Source
}

// NewResult creates a result with the given text and source.
func NewResult(text string, source Source) Result {
	return Result{Text: text, Source: source}
}

// FallbackError reports that even the offline analyzer could not produce a report.
type FallbackError struct {
	Path string
	Err  error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("fallback analysis of %s failed: %v", e.Path, e.Err)
}

func (e *FallbackError) Unwrap() error {
	return e.Err
}
