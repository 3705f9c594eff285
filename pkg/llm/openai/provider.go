package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"vineyard-assistant/pkg/llm"
)

type OpenAIProvider struct {
	BaseURL   string
	ApiKey    string
	ModelName string
	Client    *http.Client
}

// Ensure OpenAIProvider implements LLMProvider
var _ llm.LLMProvider = &OpenAIProvider{}

func NewOpenAIProvider(baseURL, apiKey, modelName string) *OpenAIProvider {
	return &OpenAIProvider{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		ApiKey:    apiKey,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

// --- Request/Response structs (Internal to this package) ---

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
}

type apiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

// --- Interface Implementation ---

func (p *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	// 1. Process Options
	options := &llm.Options{
		Temperature: 0.5, // Default
	}
	for _, opt := range opts {
		opt(options)
	}

	// 2. Map generic messages to API messages
	messages := make([]chatMessage, len(history))
	for i, msg := range history {
		role := msg.Role
		if role == "model" {
			role = "assistant"
		}
		messages[i] = chatMessage{
			Role:    role,
			Content: msg.Content,
		}
	}

	// 3. Prepare Payload
	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := chatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: options.Temperature,
		MaxTokens:   options.MaxTokens,
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	// 4. Send Request
	url := p.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.ApiKey)

	resp, err := p.Client.Do(req)
	if err != nil {
		return "", &llm.ProviderError{Detail: fmt.Sprintf("openai request failed: %v", err)}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &llm.ProviderError{StatusCode: resp.StatusCode, Detail: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp, bodyBytes)
	}

	// 5. Parse Response
	var completion chatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &completion); err != nil {
		return "", &llm.ProviderError{StatusCode: resp.StatusCode, Detail: fmt.Sprintf("unmarshal response: %v", err)}
	}

	if len(completion.Choices) == 0 {
		return "", &llm.ProviderError{StatusCode: resp.StatusCode, Detail: "openai returned no choices"}
	}

	return completion.Choices[0].Message.Content, nil
}

// classifyError maps a non-200 response to a typed error. Structured fields
// (HTTP status, error.code) are authoritative; matching on the message text
// is the last resort for providers that omit proper codes.
func classifyError(resp *http.Response, body []byte) error {
	var apiErr apiErrorResponse
	_ = json.Unmarshal(body, &apiErr)

	message := apiErr.Error.Message
	if message == "" {
		message = string(body)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests,
		apiErr.Error.Code == "rate_limit_exceeded",
		apiErr.Error.Code == "insufficient_quota":
		hint := llm.ExtractWaitHint(message)
		if hint == "" {
			hint = strings.TrimSpace(resp.Header.Get("Retry-After"))
			if hint != "" {
				hint += "s"
			}
		}
		return &llm.RateLimitError{RetryAfter: hint, Detail: message}

	case apiErr.Error.Code == "context_length_exceeded",
		apiErr.Error.Type == "tokens":
		return &llm.TokenLimitError{Detail: message}
	}

	// Fallback: text matching
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "rate limit"):
		return &llm.RateLimitError{RetryAfter: llm.ExtractWaitHint(message), Detail: message}
	case strings.Contains(lower, "token limit"), strings.Contains(lower, "maximum context length"):
		return &llm.TokenLimitError{Detail: message}
	}

	return &llm.ProviderError{StatusCode: resp.StatusCode, Detail: message}
}
