package analysis

import (
	"errors"
	"strings"
	"testing"

	"photo-analyzer-go/domain/provider"
)

func TestFallback_Classification(t *testing.T) {
	tests := []struct {
		name        string
		width       int
		height      int
		fileSize    int64
		orientation string
		tier        string
	}{
		{"full hd", 1920, 1080, 2_000_000, OrientationLandscape, TierGoodQuality},
		{"tall portrait", 800, 1200, 6_000_000, OrientationPortrait, TierHighResolution},
		{"square", 1000, 1000, 500_000, OrientationSquare, TierStandardQuality},
		{"exactly 1.5 is square", 1500, 1000, 1 * mib, OrientationSquare, TierStandardQuality},
		{"exactly 0.7 is square", 700, 1000, 5 * mib, OrientationSquare, TierGoodQuality},
		{"just above 5 MiB", 100, 100, 5*mib + 1, OrientationSquare, TierHighResolution},
		{"zero height", 100, 0, 0, OrientationSquare, TierStandardQuality},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Orientation(tt.width, tt.height); got != tt.orientation {
				t.Errorf("Orientation() = %v, want %v", got, tt.orientation)
			}
			if got := SizeTier(tt.fileSize); got != tt.tier {
				t.Errorf("SizeTier() = %v, want %v", got, tt.tier)
			}

			result := AnalyzeFallback(&ImageMetadata{
				Width:     tt.width,
				Height:    tt.height,
				FileSize:  tt.fileSize,
				ColorMode: "RGB",
				Format:    "PNG",
			})
			if result.Source != SourceFallback {
				t.Errorf("Source = %v, want local-fallback", result.Source)
			}
			if !strings.Contains(result.Text, "Image has "+tt.orientation+" orientation") {
				t.Errorf("report missing orientation %q:\n%s", tt.orientation, result.Text)
			}
			if !strings.Contains(result.Text, "This is a "+tt.tier+" image") {
				t.Errorf("report missing tier %q:\n%s", tt.tier, result.Text)
			}
		})
	}
}

func TestAnalyzeFallback_Deterministic(t *testing.T) {
	meta := &ImageMetadata{Width: 1920, Height: 1080, FileSize: 2_000_000, ColorMode: "RGB", Format: "JPEG"}

	first := AnalyzeFallback(meta)
	second := AnalyzeFallback(meta)
	if first != second {
		t.Error("AnalyzeFallback should be deterministic")
	}

	for _, want := range []string{
		"• Dimensions: 1920 × 1080 pixels",
		"• Format: JPEG (RGB mode)",
		"• File Size: 1953.1 KB",
		"• Aspect ratio: 1.78",
	} {
		if !strings.Contains(first.Text, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestAnalyzeFallback_UnknownFormat(t *testing.T) {
	result := AnalyzeFallback(&ImageMetadata{Width: 10, Height: 10})
	if !strings.Contains(result.Text, "Format: Unknown (Unknown mode)") {
		t.Errorf("expected Unknown format and mode, got:\n%s", result.Text)
	}
}

func TestAnalyzeFile(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		inspector := InspectorFunc(func(path string) (*ImageMetadata, error) {
			return &ImageMetadata{Path: path, Width: 800, Height: 1200, FileSize: 6_000_000}, nil
		})
		result, err := AnalyzeFile(inspector, "/tmp/a.png")
		if err != nil {
			t.Fatalf("AnalyzeFile() error = %v", err)
		}
		if !strings.Contains(result.Text, OrientationPortrait) {
			t.Errorf("expected portrait report, got:\n%s", result.Text)
		}
	})

	t.Run("inspection failure", func(t *testing.T) {
		cause := errors.New("corrupt header")
		inspector := InspectorFunc(func(path string) (*ImageMetadata, error) {
			return nil, cause
		})
		result, err := AnalyzeFile(inspector, "/tmp/broken.png")

		var fbErr *FallbackError
		if !errors.As(err, &fbErr) {
			t.Fatalf("error = %v, want *FallbackError", err)
		}
		if !errors.Is(err, cause) {
			t.Error("FallbackError should unwrap to the cause")
		}
		if result.Text != "Analysis error: corrupt header" {
			t.Errorf("Text = %q", result.Text)
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"star bullets", "* item one\n* item two", "• item one\n• item two"},
		{"double quotes", `"hello"`, "hello"},
		{"single quotes", "'hello'", "hello"},
		{"quotes with padding", `  " padded "  `, "padded"},
		{"mismatched quotes", `"hello'`, `"hello'`},
		{"lone quote", `"`, `"`},
		{"object passthrough", `  {"a": "* b"}  `, `{"a": "* b"}`},
		{"tab bullet", "*\tTabbed", "• Tabbed"},
		{"wide bullet", "*   Wide", "•   Wide"},
		{"bullet with nested marker", "* * nested", "• * nested"},
		{"indented bullet", "   * Indented", "• Indented"},
		{"bold is not a bullet", "**Summary:** text", "**Summary:** text"},
		{"star without space", "*emphasis*", "*emphasis*"},
		{"plain lines", "Summary: a cat\nSetting: a sofa", "Summary: a cat\nSetting: a sofa"},
		{"crlf", "* a\r\n* b", "• a\n• b"},
		{"quoted bullets", "\"* a\n* b\"", "• a\n• b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"• item one\n• item two",
		"* a\n  * b\nplain",
		"Summary: x\n\n• Colors: warm",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestSource(t *testing.T) {
	tests := []struct {
		source   Source
		expected string
		remote   bool
	}{
		{SourcePrimary, "remote-primary", true},
		{SourceSecondary, "remote-secondary", true},
		{SourceFallback, "local-fallback", false},
		{Source(8), "Unknown(8)", false},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.source.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
			if got := tt.source.IsRemote(); got != tt.remote {
				t.Errorf("IsRemote() = %v, want %v", got, tt.remote)
			}
		})
	}

	if SourceFor(provider.Primary) != SourcePrimary {
		t.Error("SourceFor(Primary) should be SourcePrimary")
	}
	if SourceFor(provider.Secondary) != SourceSecondary {
		t.Error("SourceFor(Secondary) should be SourceSecondary")
	}
}

func TestFrame(t *testing.T) {
	remote := Frame(NewResult("A cat on a sofa.", SourcePrimary))
	if !strings.HasPrefix(remote, "AI Analysis Results\n") {
		t.Errorf("unexpected heading: %q", remote)
	}
	if !strings.Contains(remote, "Generated by: "+provider.Primary.DisplayName()) {
		t.Errorf("missing attribution: %q", remote)
	}
	if !strings.HasSuffix(remote, "Analysis Complete") {
		t.Errorf("missing completion footer: %q", remote)
	}

	basic := Frame(NewResult("report", SourceFallback))
	if !strings.HasPrefix(basic, "Basic Analysis Results\n") {
		t.Errorf("unexpected fallback heading: %q", basic)
	}
	if !strings.Contains(basic, "Generated by: Fallback Analysis (Basic)") {
		t.Errorf("missing fallback attribution: %q", basic)
	}
}

func TestFrameFailure(t *testing.T) {
	got := FrameFailure(errors.New("disk gone"))
	if got != "Analysis Failed\n\nError: disk gone" {
		t.Errorf("FrameFailure() = %q", got)
	}
}

func TestImageMetadata_Helpers(t *testing.T) {
	meta := &ImageMetadata{Path: "/photos/cat.jpg", FileSize: 2048}
	if meta.FileName() != "cat.jpg" {
		t.Errorf("FileName() = %v, want cat.jpg", meta.FileName())
	}
	if meta.SizeKB() != 2 {
		t.Errorf("SizeKB() = %v, want 2", meta.SizeKB())
	}
	if (&ImageMetadata{}).FileName() != "" {
		t.Error("empty path should give empty FileName")
	}
}
