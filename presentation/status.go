package presentation

import (
	"fmt"
	"strings"

	"photo-analyzer-go/domain/analysis"
	"photo-analyzer-go/domain/credential"
	"photo-analyzer-go/domain/library"
	"photo-analyzer-go/domain/provider"
)

const (
	statusReady        = "Ready - Import an image to begin"
	resultsPlaceholder = "Import an image and click Analyze to get a description."
)

// credentialStatusText renders the key status label for a provider.
func credentialStatusText(p provider.Provider, status credential.Status) string {
	var text string
	switch status {
	case credential.UsingDefault:
		text = "Using default key"
	case credential.CustomKeySet:
		text = "Custom key set"
	default:
		text = "No key (basic analysis only)"
	}
	return fmt.Sprintf("%s: %s", p.ShortName(), text)
}

// imageInfoText renders the one-line summary shown under the preview.
func imageInfoText(meta *analysis.ImageMetadata) string {
	if meta == nil {
		return "No image loaded"
	}
	return fmt.Sprintf("%s | %d×%d | %s | %.1f KB",
		meta.FileName(), meta.Width, meta.Height, meta.ColorMode, meta.SizeKB())
}

// analysisStatusText renders the status bar after an analysis finished.
func analysisStatusText(p provider.Provider, fallback bool, remoteErr error) string {
	if !fallback {
		return fmt.Sprintf("Analysis complete (%s)", p.ShortName())
	}
	if remoteErr == nil {
		return "Basic analysis complete"
	}
	return fmt.Sprintf("%s unavailable, showing basic analysis: %s", p.ShortName(), firstLine(remoteErr.Error()))
}

// providerOptions returns the radio group labels in display order.
func providerOptions() []string {
	options := make([]string, len(provider.All))
	for i, p := range provider.All {
		options[i] = p.DisplayName()
	}
	return options
}

// providerFromOption maps a radio group label back to its provider.
func providerFromOption(option string) (provider.Provider, bool) {
	for _, p := range provider.All {
		if p.DisplayName() == option {
			return p, true
		}
	}
	return 0, false
}

// recentOptions returns select labels for recent images, keyed back to their paths.
func recentOptions(images []*library.RecentImage) ([]string, map[string]string) {
	labels := make([]string, 0, len(images))
	paths := make(map[string]string, len(images))
	for _, img := range images {
		label := img.Label()
		if _, dup := paths[label]; dup {
			label = img.Path
		}
		labels = append(labels, label)
		paths[label] = img.Path
	}
	return labels, paths
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
