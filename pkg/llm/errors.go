package llm

import (
	"fmt"
	"regexp"
	"strings"
)

// RateLimitError indicates the provider rejected the request due to
// request-rate exhaustion. RetryAfter is a best-effort human-readable
// wait hint ("20s", "1m30s"); empty when the provider gave none.
type RateLimitError struct {
	RetryAfter string
	Detail     string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("rate limited, retry after %s: %s", e.RetryAfter, e.Detail)
	}
	return fmt.Sprintf("rate limited: %s", e.Detail)
}

// TokenLimitError indicates the combined prompt exceeded the model's
// input/output token budget.
type TokenLimitError struct {
	Detail string
}

func (e *TokenLimitError) Error() string {
	return fmt.Sprintf("token limit exceeded: %s", e.Detail)
}

// ProviderError covers every other provider-side failure (network, auth,
// 5xx). Detail stays internal; callers show a generic message to users.
type ProviderError struct {
	StatusCode int
	Detail     string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Detail)
}

var waitHintPattern = regexp.MustCompile(`(?i)try again in\s+([^.]+)`)

// ExtractWaitHint pulls a human-readable wait time out of a provider error
// message ("Rate limit reached ... Please try again in 20s."). Returns ""
// when the message carries no hint.
func ExtractWaitHint(message string) string {
	m := waitHintPattern.FindStringSubmatch(message)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
