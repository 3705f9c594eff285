package utils

import "strings"

// separators, in order of preference. Paragraph breaks beat line breaks,
// line breaks beat sentence ends, and so on down to single spaces.
var separators = []string{"\n\n", "\n", ". ", "! ", "? ", ", ", " "}

// SplitText splits a long string into chunks of approximately 'chunkSize'
// characters with an 'overlap' to preserve context at boundaries. The cut
// point backtracks to the nearest preferred separator inside the window so
// fragments keep whole paragraphs and sentences where possible.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	if len(runes) <= chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + chunkSize
		if end >= len(runes) {
			end = len(runes)
		} else {
			end = cutPoint(runes, start, end)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}

// cutPoint finds the best boundary inside runes[start:end]. Separators are
// only honored in the back half of the window; otherwise chunks degenerate.
func cutPoint(runes []rune, start, end int) int {
	window := string(runes[start:end])
	minCut := (end - start) / 2

	for _, sep := range separators {
		idx := strings.LastIndex(window, sep)
		if idx < 0 {
			continue
		}
		// LastIndex is a byte offset; convert back to a rune offset
		runeIdx := len([]rune(window[:idx]))
		if runeIdx < minCut {
			continue
		}
		return start + runeIdx + len([]rune(sep))
	}
	return end
}
