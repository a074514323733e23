package analysis

import "strings"

// Bullet is the uniform bullet prefix used in normalized text.
const Bullet = "• "

// Normalize cleans provider text for display.
// Object-looking payloads pass through, a single pair of surrounding quotes
// is stripped, and "* " style bullets become "• ".
func Normalize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "{") && strings.HasSuffix(cleaned, "}") {
		return cleaned
	}

	cleaned = stripQuotes(cleaned)

	lines := strings.Split(strings.ReplaceAll(cleaned, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = normalizeBullet(line)
	}
	return strings.Join(lines, "\n")
}

func stripQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if (first == '"' || first == '\'') && first == last {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}

func normalizeBullet(line string) string {
	trimmed := strings.TrimLeft(line, " \t")
	if len(trimmed) < 2 || trimmed[0] != '*' {
		return line
	}
	if trimmed[1] != ' ' && trimmed[1] != '\t' {
		return line
	}
	// Only the marker and its separator are replaced; the rest is kept as written.
	return Bullet + trimmed[2:]
}
