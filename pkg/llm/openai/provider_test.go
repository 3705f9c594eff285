package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vineyard-assistant/pkg/llm"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewOpenAIProvider(server.URL, "test-key", "gpt-4o-mini")
}

func TestChatSuccess(t *testing.T) {
	var gotReq chatCompletionRequest
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ответ модели"}},
			},
		})
	})

	answer, err := provider.Chat(context.Background(),
		[]llm.Message{
			{Role: "system", Content: "система"},
			{Role: "user", Content: "вопрос"},
		},
		llm.WithTemperature(0.5),
		llm.WithMaxTokens(1000),
	)

	require.NoError(t, err)
	assert.Equal(t, "ответ модели", answer)
	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, 0.5, gotReq.Temperature)
	assert.Equal(t, 1000, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestChatRateLimited(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "Rate limit reached for gpt-4o-mini. Please try again in 20s.",
				"type":    "requests",
				"code":    "rate_limit_exceeded",
			},
		})
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "вопрос"}})

	var rateErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "20s", rateErr.RetryAfter)
}

func TestChatRateLimitedRetryAfterHeaderFallback(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"message": "Too many requests"},
		})
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "вопрос"}})

	var rateErr *llm.RateLimitError
	require.ErrorAs(t, err, &rateErr)
	assert.Equal(t, "30s", rateErr.RetryAfter)
}

func TestChatTokenLimit(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "This model's maximum context length is 128000 tokens.",
				"type":    "invalid_request_error",
				"code":    "context_length_exceeded",
			},
		})
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "вопрос"}})

	var tokenErr *llm.TokenLimitError
	require.ErrorAs(t, err, &tokenErr)
}

func TestChatTokenLimitTextFallback(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{
				"message": "Request exceeds the token limit for this model",
			},
		})
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "вопрос"}})

	var tokenErr *llm.TokenLimitError
	require.ErrorAs(t, err, &tokenErr)
}

func TestChatProviderError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream exploded"))
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "вопрос"}})

	var provErr *llm.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusInternalServerError, provErr.StatusCode)
}

func TestChatMapsModelRole(t *testing.T) {
	var gotReq chatCompletionRequest
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": "ок"}},
			},
		})
	})

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "model", Content: "прошлый ответ"}})

	require.NoError(t, err)
	require.Len(t, gotReq.Messages, 1)
	assert.Equal(t, "assistant", gotReq.Messages[0].Role)
}
