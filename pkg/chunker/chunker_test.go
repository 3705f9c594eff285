package chunker

import (
	"strings"
	"testing"
	"unicode"
)

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func TestSplitShortTextYieldsOnePart(t *testing.T) {
	parts := Split("Короткий ответ.", 4000)
	if len(parts) != 1 {
		t.Fatalf("part count = %d, want 1", len(parts))
	}
	if parts[0] != "Короткий ответ." {
		t.Errorf("part = %q", parts[0])
	}
}

func TestSplitSingleCharacter(t *testing.T) {
	parts := Split("я", 4000)
	if len(parts) != 1 || parts[0] != "я" {
		t.Fatalf("parts = %v, want exactly [я]", parts)
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	// A period sits just inside the window; the cut must land after it
	text := strings.Repeat("а", 3990) + ". " + strings.Repeat("б", 100)

	parts := Split(text, 4000)

	if len(parts) != 2 {
		t.Fatalf("part count = %d, want 2", len(parts))
	}
	if !strings.HasSuffix(parts[0], ".") {
		t.Errorf("first part must end at the sentence boundary, got suffix %q", parts[0][len(parts[0])-10:])
	}
	if parts[1] != strings.Repeat("б", 100) {
		t.Errorf("second part = %q", parts[1][:minInt(20, len(parts[1]))])
	}
}

func TestSplitHardCutWithoutPeriod(t *testing.T) {
	text := strings.Repeat("б", 9000)

	parts := Split(text, 4000)

	if len(parts) != 3 {
		t.Fatalf("part count = %d, want 3", len(parts))
	}
	for i, part := range parts {
		if n := len([]rune(part)); n > 4000 {
			t.Errorf("part %d length = %d, exceeds max", i, n)
		}
	}
}

func TestSplitPreservesContent(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("Виноград требует регулярной обрезки и внимательного ухода в течение всего сезона. ")
	}
	text := b.String()

	parts := Split(text, 4000)

	if len(parts) < 2 {
		t.Fatalf("expected multiple parts, got %d", len(parts))
	}
	for i, part := range parts {
		if part == "" {
			t.Fatalf("part %d is empty", i)
		}
		if part != strings.TrimSpace(part) {
			t.Errorf("part %d not trimmed", i)
		}
		if n := len([]rune(part)); n > 4000 {
			t.Errorf("part %d length = %d, exceeds max", i, n)
		}
	}
	if stripSpace(strings.Join(parts, "")) != stripSpace(text) {
		t.Fatal("concatenated parts lost content")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
