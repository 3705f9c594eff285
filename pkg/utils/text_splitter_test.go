package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("Короткий текст.", 500, 100)
	if len(chunks) != 1 || chunks[0] != "Короткий текст." {
		t.Fatalf("chunks = %v, want the input unchanged", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	if chunks := SplitText("   \n ", 500, 100); chunks != nil {
		t.Fatalf("chunks = %v, want nil for blank input", chunks)
	}
}

func TestSplitTextRespectsChunkSize(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("Виноградная лоза растёт быстро. ")
	}

	chunks := SplitText(b.String(), 500, 100)

	if len(chunks) < 2 {
		t.Fatalf("chunk count = %d, want several", len(chunks))
	}
	for i, chunk := range chunks {
		if n := len([]rune(chunk)); n > 500 {
			t.Errorf("chunk %d length = %d, exceeds 500", i, n)
		}
		if strings.TrimSpace(chunk) == "" {
			t.Errorf("chunk %d is blank", i)
		}
	}
}

func TestSplitTextPrefersSentenceBoundaries(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("Это предложение о винограде. ")
	}

	chunks := SplitText(b.String(), 500, 100)

	for i, chunk := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(chunk, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: ...%q", i, chunk[len(chunk)-10:])
		}
	}
}

func TestSplitTextOverlapPreservesContext(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 100; i++ {
		b.WriteString("Лоза требует ухода и полива в жаркое время года. ")
	}

	chunks := SplitText(b.String(), 500, 100)
	if len(chunks) < 2 {
		t.Fatalf("chunk count = %d, want several", len(chunks))
	}

	// The tail of each chunk reappears at the head of the next one
	for i := 0; i < len(chunks)-1; i++ {
		tail := []rune(chunks[i])
		probe := string(tail[len(tail)-20:])
		if !strings.Contains(chunks[i+1], probe) {
			t.Errorf("chunk %d tail not found in chunk %d (no overlap)", i, i+1)
		}
	}
}

func TestSplitTextParagraphBreakBeatsSpace(t *testing.T) {
	text := strings.Repeat("а", 300) + "\n\n" + strings.Repeat("б", 300)

	chunks := SplitText(text, 500, 0)

	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(chunks))
	}
	if strings.ContainsRune(chunks[0], 'б') {
		t.Error("first chunk crossed the paragraph break")
	}
}
