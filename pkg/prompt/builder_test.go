package prompt

import (
	"strings"
	"testing"

	"vineyard-assistant/internal/constant"
	"vineyard-assistant/pkg/llm"
)

func TestBuildPlacesSystemTurnFirstExactlyOnce(t *testing.T) {
	b := NewBuilder("системная инструкция")
	history := []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: "в1"},
		{Role: constant.ChatMessageRoleAssistant, Content: "о1"},
	}

	messages := b.Build(history, []string{"пассаж"}, "вопрос")

	if messages[0].Role != constant.ChatMessageRoleSystem {
		t.Fatalf("first role = %q, want system", messages[0].Role)
	}
	if messages[0].Content != "системная инструкция" {
		t.Errorf("system content = %q", messages[0].Content)
	}

	systemCount := 0
	for _, m := range messages {
		if m.Role == constant.ChatMessageRoleSystem {
			systemCount++
		}
	}
	if systemCount != 1 {
		t.Fatalf("system turn count = %d, want exactly 1", systemCount)
	}
}

func TestBuildKeepsHistoryOrder(t *testing.T) {
	b := NewBuilder("система")
	history := []llm.Message{
		{Role: constant.ChatMessageRoleUser, Content: "в1"},
		{Role: constant.ChatMessageRoleAssistant, Content: "о1"},
		{Role: constant.ChatMessageRoleUser, Content: "в2"},
		{Role: constant.ChatMessageRoleAssistant, Content: "о2"},
	}

	messages := b.Build(history, nil, "вопрос")

	if len(messages) != 6 {
		t.Fatalf("message count = %d, want 6 (system + 4 history + user)", len(messages))
	}
	for i, m := range messages[1:5] {
		if m != history[i] {
			t.Errorf("history turn %d out of order: got %+v, want %+v", i, m, history[i])
		}
	}
}

func TestBuildFinalUserTurnTemplate(t *testing.T) {
	b := NewBuilder("система")

	messages := b.Build(nil, []string{"первый пассаж", "второй пассаж"}, "как обрезать лозу?")

	last := messages[len(messages)-1]
	if last.Role != constant.ChatMessageRoleUser {
		t.Fatalf("last role = %q, want user", last.Role)
	}
	if !strings.Contains(last.Content, "Контекст:\n\nпервый пассаж\n\nвторой пассаж") {
		t.Errorf("context block malformed:\n%s", last.Content)
	}
	if !strings.Contains(last.Content, "Вопрос: как обрезать лозу?") {
		t.Errorf("question missing:\n%s", last.Content)
	}
	if strings.Index(last.Content, "Контекст:") > strings.Index(last.Content, "Вопрос:") {
		t.Error("context block must precede the question")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	b := NewBuilder("система")
	history := []llm.Message{{Role: constant.ChatMessageRoleUser, Content: "в"}}
	passages := []string{"п1", "п2"}

	first := b.Build(history, passages, "вопрос")
	second := b.Build(history, passages, "вопрос")

	if len(first) != len(second) {
		t.Fatal("same inputs produced different message counts")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("message %d differs between identical builds", i)
		}
	}
}
