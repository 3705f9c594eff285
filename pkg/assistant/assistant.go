package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vineyard-assistant/internal/constant"
	"vineyard-assistant/internal/pkg/logger"
	"vineyard-assistant/pkg/llm"
	"vineyard-assistant/pkg/prompt"
	"vineyard-assistant/pkg/respcache"
	"vineyard-assistant/pkg/retrieval"
	"vineyard-assistant/pkg/session"
)

// ErrInvalidQuery is returned for empty or non-textual input. The user
// must rephrase; nothing was retrieved or generated.
var ErrInvalidQuery = errors.New("invalid query")

// Params are the fixed generation parameters. They are configuration,
// never user-controlled.
type Params struct {
	TopK        int
	Temperature float64
	MaxTokens   int
}

// Assistant sequences one query through cache lookup, retrieval, prompt
// assembly, generation and state updates. Failed requests leave the
// session store and response cache untouched; no step retries.
type Assistant struct {
	sessions  *session.Store
	cache     *respcache.Cache
	retriever *retrieval.Gateway
	prompts   *prompt.Builder
	provider  llm.LLMProvider
	log       logger.ILogger
	params    Params
}

func New(
	sessions *session.Store,
	cache *respcache.Cache,
	retriever *retrieval.Gateway,
	prompts *prompt.Builder,
	provider llm.LLMProvider,
	log logger.ILogger,
	params Params,
) *Assistant {
	return &Assistant{
		sessions:  sessions,
		cache:     cache,
		retriever: retriever,
		prompts:   prompts,
		provider:  provider,
		log:       log,
		params:    params,
	}
}

// ProcessQuery answers one free-text question for one user.
func (a *Assistant) ProcessQuery(ctx context.Context, userID int64, rawQuery string) (string, error) {
	start := time.Now()

	// 1. Validate
	if isBlank(rawQuery) {
		a.log.Warn("Assistant", "Rejected empty query", map[string]interface{}{
			"user_id":    userID,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return "", ErrInvalidQuery
	}

	// 2. Cache lookup (keyed by the raw, unnormalized text)
	if answer, found := a.cache.Lookup(rawQuery); found {
		a.log.Info("Assistant", "Cached query processed", map[string]interface{}{
			"user_id":    userID,
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return answer, nil
	}

	// 3. Normalize + Retrieve
	normalized := a.retriever.Normalize(rawQuery)
	passages, err := a.retriever.Retrieve(ctx, normalized, a.params.TopK)
	if err != nil {
		if errors.Is(err, retrieval.ErrEmptyQuery) {
			return "", ErrInvalidQuery
		}
		a.log.Error("Assistant", "Retrieval failed", map[string]interface{}{
			"user_id":    userID,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return "", err
	}

	// 4. Assemble context
	messages := a.prompts.Build(a.sessions.Context(userID), passages, rawQuery)

	// 5. Invoke generation
	answer, err := a.provider.Chat(ctx, messages,
		llm.WithTemperature(a.params.Temperature),
		llm.WithMaxTokens(a.params.MaxTokens),
	)
	if err != nil {
		// Session and cache stay untouched on every failure path
		a.log.Error("Assistant", "Generation failed", map[string]interface{}{
			"user_id":    userID,
			"error":      err.Error(),
			"elapsed_ms": time.Since(start).Milliseconds(),
		})
		return "", err
	}

	// 6. Record state, then answer
	a.sessions.RecordExchange(userID, rawQuery, answer)
	a.cache.Store(rawQuery, answer)

	a.log.Info("Assistant", "Query processed", map[string]interface{}{
		"user_id":    userID,
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return answer, nil
}

// ClearSession drops the user's dialog history. Used by the explicit
// "clear history" and "end conversation" actions.
func (a *Assistant) ClearSession(userID int64) {
	a.sessions.Clear(userID)
}

// AdvisoryMessage translates a ProcessQuery failure into the user-facing
// advisory string. Provider detail never reaches the user.
func AdvisoryMessage(err error) string {
	var rateErr *llm.RateLimitError
	var tokenErr *llm.TokenLimitError

	switch {
	case errors.Is(err, ErrInvalidQuery):
		return constant.MsgEmptyQuery
	case errors.As(err, &rateErr):
		hint := rateErr.RetryAfter
		if hint == "" {
			hint = constant.DefaultWaitHint
		}
		return fmt.Sprintf(constant.MsgRateLimited, hint)
	case errors.As(err, &tokenErr):
		return constant.MsgTokenLimit
	default:
		return constant.MsgGenericError
	}
}

// isBlank reports whether the query has no textual content at all.
func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
