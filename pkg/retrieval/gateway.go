package retrieval

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"vineyard-assistant/pkg/vectorstore"
)

// ErrEmptyQuery is returned when the normalized query has no content to
// search with.
var ErrEmptyQuery = errors.New("query is empty")

// domainKeywords mark a query as already on-topic. Queries containing
// none of them get the anchor prefixed so the index is nudged toward
// domain-relevant passages.
var domainKeywords = []string{"виноград", "лоза", "куст", "сорт", "урожай", "обработка"}

const domainAnchor = "виноград"

// Gateway wraps the semantic index: it normalizes queries, cleans the
// returned passages and memoizes lookups per (normalized query, k).
type Gateway struct {
	store vectorstore.VectorStore
	memo  *cache.Cache
}

func NewGateway(store vectorstore.VectorStore, memoTTL time.Duration) *Gateway {
	return &Gateway{
		store: store,
		memo:  cache.New(memoTTL, 30*time.Minute),
	}
}

// Normalize trims and lowercases the query, anchoring it to the domain
// when no domain keyword is present.
func (g *Gateway) Normalize(rawQuery string) string {
	query := strings.ToLower(strings.TrimSpace(rawQuery))
	if query == "" {
		return ""
	}

	for _, keyword := range domainKeywords {
		if strings.Contains(query, keyword) {
			return query
		}
	}
	return domainAnchor + " " + query
}

// Retrieve returns the cleaned top-k passages for the normalized query.
// Repeated calls with the same (query, k) pair return the memoized result
// without re-invoking the index.
func (g *Gateway) Retrieve(ctx context.Context, normalizedQuery string, k int) ([]string, error) {
	if strings.TrimSpace(normalizedQuery) == "" {
		return nil, ErrEmptyQuery
	}

	memoKey := fmt.Sprintf("%s|%d", normalizedQuery, k)
	if x, found := g.memo.Get(memoKey); found {
		return x.([]string), nil
	}

	passages, err := g.store.SimilaritySearch(ctx, normalizedQuery, k)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	cleaned := make([]string, 0, len(passages))
	for _, p := range passages {
		if text := cleanPassage(p.Text); text != "" {
			cleaned = append(cleaned, text)
		}
	}

	g.memo.Set(memoKey, cleaned, cache.DefaultExpiration)
	return cleaned, nil
}

// cleanPassage strips redundant whitespace and blank lines from an
// index fragment.
func cleanPassage(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			kept = append(kept, strings.Join(strings.Fields(line), " "))
		}
	}
	return strings.Join(kept, "\n")
}
