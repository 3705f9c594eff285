package chunker

import "strings"

// DefaultMaxLength matches the transport limit for one outbound message.
const DefaultMaxLength = 4000

// Split breaks a long answer into transport-safe parts of at most
// maxLength characters, preferring to cut after the last period inside
// the window. Parts are trimmed and never empty; a text shorter than
// maxLength yields exactly one part. Callers pace delivery of successive
// parts themselves.
func Split(text string, maxLength int) []string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	var parts []string
	remaining := []rune(text)

	for len(remaining) > 0 {
		if len(remaining) <= maxLength {
			appendPart(&parts, string(remaining))
			break
		}

		window := remaining[:maxLength]
		lastPeriod := lastIndexRune(window, '.')
		if lastPeriod != -1 {
			appendPart(&parts, string(remaining[:lastPeriod+1]))
			remaining = trimLeading(remaining[lastPeriod+1:])
		} else {
			appendPart(&parts, string(window))
			remaining = remaining[maxLength:]
		}
	}

	return parts
}

func appendPart(parts *[]string, part string) {
	part = strings.TrimSpace(part)
	if part != "" {
		*parts = append(*parts, part)
	}
}

func lastIndexRune(runes []rune, r rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == r {
			return i
		}
	}
	return -1
}

func trimLeading(runes []rune) []rune {
	i := 0
	for i < len(runes) && (runes[i] == ' ' || runes[i] == '\n' || runes[i] == '\t' || runes[i] == '\r') {
		i++
	}
	return runes[i:]
}
