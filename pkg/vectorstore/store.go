package vectorstore

import "context"

// Passage is a corpus fragment returned by a similarity search,
// ordered by decreasing relevance.
type Passage struct {
	Text  string  `json:"text"`
	Score float32 `json:"score"`
}

// VectorStore is the contract every index backend satisfies. Stores own
// their embedding provider: callers pass raw text both ways.
type VectorStore interface {
	// Add embeds and indexes the given corpus fragments.
	Add(ctx context.Context, texts []string) error

	// SimilaritySearch returns the top-k passages nearest in meaning
	// to the query text.
	SimilaritySearch(ctx context.Context, query string, k int) ([]Passage, error)

	// Len reports how many fragments are indexed.
	Len(ctx context.Context) (int, error)
}
