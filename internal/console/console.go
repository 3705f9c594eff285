package console

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"vineyard-assistant/internal/pkg/logger"
	"vineyard-assistant/pkg/assistant"
	"vineyard-assistant/pkg/retrieval"
)

// consoleUserID: the REPL serves a single local operator.
const consoleUserID int64 = 0

var exitWords = map[string]bool{
	"выход": true,
	"exit":  true,
	"quit":  true,
}

// Console is the interactive diagnostic interface: it shows the
// normalized query and the retrieved passages before the answer.
type Console struct {
	assistant *assistant.Assistant
	retriever *retrieval.Gateway
	log       logger.ILogger
	topK      int
}

func New(asst *assistant.Assistant, retriever *retrieval.Gateway, log logger.ILogger, topK int) *Console {
	return &Console{
		assistant: asst,
		retriever: retriever,
		log:       log,
		topK:      topK,
	}
}

// Run reads questions from stdin until EOF or an exit word.
func (c *Console) Run(ctx context.Context) error {
	color.Green("Здравствуйте! Я ваш помощник-агроном по виноградарству компании Ceres Pro.")
	color.Green("Задайте мне вопрос и я постараюсь Вам помочь.")
	color.Yellow("Для выхода введите 'выход'")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nВаш вопрос: ")
		if !scanner.Scan() {
			break
		}

		query := strings.TrimSpace(scanner.Text())
		if exitWords[strings.ToLower(query)] {
			break
		}
		if query == "" {
			color.Yellow("Пожалуйста, введите ваш вопрос.")
			continue
		}

		c.showRetrievalDetails(ctx, query)

		answer, err := c.assistant.ProcessQuery(ctx, consoleUserID, query)
		if err != nil {
			color.Red("\n%s", assistant.AdvisoryMessage(err))
			continue
		}

		color.Cyan("\n=== Ответ помощника ===")
		fmt.Println(answer)
	}

	color.Green("\nСпасибо за использование помощника Ceres Pro!")
	color.Green("До свидания и удачи в виноградарстве!")
	c.log.Info("Console", "Console interface shutdown", nil)
	return scanner.Err()
}

// showRetrievalDetails prints what the index returns for the query. The
// gateway memoizes per (query, k), so the assistant's own retrieval right
// after reuses this result instead of hitting the index twice.
func (c *Console) showRetrievalDetails(ctx context.Context, query string) {
	normalized := c.retriever.Normalize(query)
	color.Yellow("\nПредобработанный запрос: %s", normalized)

	passages, err := c.retriever.Retrieve(ctx, normalized, c.topK)
	if err != nil {
		color.Red("Ошибка поиска по базе знаний: %v", err)
		return
	}

	color.Cyan("\n=== Найденные похожие документы ===")
	for i, passage := range passages {
		fmt.Printf("\nДокумент %d:\n", i+1)
		fmt.Println(strings.Repeat("-", 50))
		fmt.Println(passage)
		fmt.Println(strings.Repeat("-", 50))
	}
}
