package analysis

import (
	"fmt"
	"strings"
)

var rule = strings.Repeat("=", 50)

// Frame wraps a result with a heading and an attribution footer for display.
func Frame(r Result) string {
	heading := "AI Analysis Results"
	if r.Source == SourceFallback {
		heading = "Basic Analysis Results"
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(rule)
	b.WriteString("\n\n")
	b.WriteString(r.Text)
	b.WriteString("\n\n")
	b.WriteString(rule)
	fmt.Fprintf(&b, "\nGenerated by: %s\n", r.Source.Label())
	b.WriteString(rule)
	b.WriteString("\nAnalysis Complete")
	return b.String()
}

// FrameFailure renders a terminal failure message for display.
func FrameFailure(err error) string {
	return fmt.Sprintf("Analysis Failed\n\nError: %v", err)
}

// Progress renders the placeholder shown while a provider is working.
func Progress(providerName string) string {
	return fmt.Sprintf("AI Analysis in Progress (%s)...\n\nPlease wait while the image is analyzed.", providerName)
}
