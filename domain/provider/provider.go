// Package provider defines the closed set of remote image-description services.
package provider

import (
	"fmt"
	"strings"
)

// Provider identifies a remote image-description service integration.
type Provider int

const (
	// Primary is the OpenAI-compatible vision chat provider.
	Primary Provider = iota
	// Secondary is the multipart describe-image provider.
	Secondary
)

// All lists every known provider in display order.
var All = []Provider{Primary, Secondary}

// String returns the stable identifier used in config files and logs.
func (p Provider) String() string {
	switch p {
	case Primary:
		return "openai"
	case Secondary:
		return "imagedescriber"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// DisplayName returns the human-readable provider name.
func (p Provider) DisplayName() string {
	switch p {
	case Primary:
		return "ChatGPT-4 (OpenAI)"
	case Secondary:
		return "ImageDescriber.online"
	default:
		return p.String()
	}
}

// ShortName returns a compact label suitable for status bars and radio groups.
func (p Provider) ShortName() string {
	switch p {
	case Primary:
		return "ChatGPT"
	case Secondary:
		return "ImageDescriber"
	default:
		return p.String()
	}
}

// EnvVar returns the environment variable holding the provider's default key.
func (p Provider) EnvVar() string {
	switch p {
	case Primary:
		return "OPENAI_API_KEY"
	case Secondary:
		return "IMAGEDESCRIBER_API_KEY"
	default:
		return ""
	}
}

// IsValid reports whether p is one of the known providers.
func (p Provider) IsValid() bool {
	return p == Primary || p == Secondary
}

// Parse resolves a provider from its identifier or short name (case-insensitive).
func Parse(s string) (Provider, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, p := range All {
		if key == p.String() || key == strings.ToLower(p.ShortName()) {
			return p, nil
		}
	}
	switch key {
	case "primary", "chatgpt-4", "gpt":
		return Primary, nil
	case "secondary":
		return Secondary, nil
	}
	return 0, fmt.Errorf("unknown provider: %q", s)
}
