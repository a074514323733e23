package analysis

import (
	"fmt"
	"strings"
)

const (
	mib = 1024 * 1024

	landscapeThreshold = 1.5
	portraitThreshold  = 0.7
)

// Orientation values reported by the fallback analyzer.
const (
	OrientationLandscape = "landscape"
	OrientationPortrait  = "portrait"
	OrientationSquare    = "square"
)

// Size tiers reported by the fallback analyzer.
const (
	TierHighResolution  = "high resolution"
	TierGoodQuality     = "good quality"
	TierStandardQuality = "standard quality"
)

const basicDescription = "This image contains visual content suitable for detailed AI analysis. " +
	"The technical properties indicate it's ready for advanced computer vision processing."

const configureHint = "For full AI-powered analysis with object recognition, scene understanding, " +
	"and detailed descriptions, ensure the API key for the selected provider is properly configured."

// Inspector reads image metadata from a file.
type Inspector interface {
	Inspect(path string) (*ImageMetadata, error)
}

// InspectorFunc adapts a function to the Inspector interface.
type InspectorFunc func(path string) (*ImageMetadata, error)

// Inspect calls f(path).
func (f InspectorFunc) Inspect(path string) (*ImageMetadata, error) {
	return f(path)
}

// AspectRatio returns width/height, or 0 when height is zero.
func AspectRatio(width, height int) float64 {
	if height == 0 {
		return 0
	}
	return float64(width) / float64(height)
}

// Orientation classifies the image by aspect ratio.
func Orientation(width, height int) string {
	if height == 0 {
		return OrientationSquare
	}
	aspect := AspectRatio(width, height)
	switch {
	case aspect > landscapeThreshold:
		return OrientationLandscape
	case aspect < portraitThreshold:
		return OrientationPortrait
	default:
		return OrientationSquare
	}
}

// SizeTier classifies the image by file size in bytes.
func SizeTier(fileSize int64) string {
	switch {
	case fileSize > 5*mib:
		return TierHighResolution
	case fileSize > 1*mib:
		return TierGoodQuality
	default:
		return TierStandardQuality
	}
}

func paletteNote(colorMode string) string {
	switch colorMode {
	case "1", "L", "LA", "I;16", "I":
		return "Grayscale tonal composition"
	case "P":
		return "Indexed color palette detected"
	default:
		return "Rich color palette detected"
	}
}

// AnalyzeFallback composes the offline report for the given metadata.
// The output depends only on the metadata; identical input yields identical text.
func AnalyzeFallback(meta *ImageMetadata) Result {
	format := meta.Format
	if format == "" {
		format = "Unknown"
	}
	mode := meta.ColorMode
	if mode == "" {
		mode = "Unknown"
	}

	var b strings.Builder
	b.WriteString("Technical Analysis:\n")
	fmt.Fprintf(&b, "• Dimensions: %d × %d pixels\n", meta.Width, meta.Height)
	fmt.Fprintf(&b, "• Format: %s (%s mode)\n", format, mode)
	fmt.Fprintf(&b, "• File Size: %.1f KB\n", meta.SizeKB())
	fmt.Fprintf(&b, "• %s\n", paletteNote(meta.ColorMode))
	b.WriteString("\n")
	b.WriteString("Visual Assessment:\n")
	fmt.Fprintf(&b, "• This is a %s image\n", SizeTier(meta.FileSize))
	fmt.Fprintf(&b, "• Image has %s orientation\n", Orientation(meta.Width, meta.Height))
	fmt.Fprintf(&b, "• Aspect ratio: %.2f\n", AspectRatio(meta.Width, meta.Height))
	b.WriteString("\n")
	b.WriteString("Basic Description:\n")
	b.WriteString(basicDescription)
	b.WriteString("\n\n")
	b.WriteString(configureHint)

	return NewResult(b.String(), SourceFallback)
}

// AnalyzeFile inspects path and runs the fallback analyzer on it.
// When inspection fails the returned result still carries a displayable
// message, and the error is a *FallbackError.
func AnalyzeFile(inspector Inspector, path string) (Result, error) {
	meta, err := inspector.Inspect(path)
	if err != nil {
		return NewResult(fmt.Sprintf("Analysis error: %v", err), SourceFallback), &FallbackError{Path: path, Err: err}
	}
	return AnalyzeFallback(meta), nil
}
