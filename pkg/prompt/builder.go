package prompt

import (
	"strings"

	"vineyard-assistant/internal/constant"
	"vineyard-assistant/pkg/llm"
)

// Builder deterministically assembles the message sequence for one
// generation call: system persona first (exactly once), the prior dialog
// in chronological order, then a final user turn interleaving the
// retrieved passages and the raw question.
type Builder struct {
	systemPrompt string
}

func NewBuilder(systemPrompt string) *Builder {
	return &Builder{systemPrompt: systemPrompt}
}

func (b *Builder) Build(history []llm.Message, passages []string, rawQuery string) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+2)

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleSystem,
		Content: b.systemPrompt,
	})

	messages = append(messages, history...)

	messages = append(messages, llm.Message{
		Role:    constant.ChatMessageRoleUser,
		Content: b.userTurn(passages, rawQuery),
	})

	return messages
}

// userTurn renders the fixed template: retrieved context block, then the
// question. Passages are joined by a blank line; no re-ranking or
// deduplication happens here.
func (b *Builder) userTurn(passages []string, rawQuery string) string {
	var turn strings.Builder

	turn.WriteString("Контекст:\n\n")
	turn.WriteString(strings.Join(passages, "\n\n"))
	turn.WriteString("\n\nВопрос: ")
	turn.WriteString(rawQuery)
	turn.WriteString("\n\n")

	return turn.String()
}
