package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"vineyard-assistant/pkg/embedding"
	"vineyard-assistant/pkg/vectorstore"
)

// Storage is a brute-force cosine-similarity vector store held in memory
// and persisted to a single JSON file on disk. It plays the role a local
// FAISS index would: built once from the corpus, loaded on startup.
type Storage struct {
	mu       sync.RWMutex
	embedder embedding.EmbeddingProvider
	texts    []string
	vectors  [][]float32
}

var _ vectorstore.VectorStore = &Storage{}

func NewStorage(embedder embedding.EmbeddingProvider) *Storage {
	return &Storage{embedder: embedder}
}

// --- Persistence format (Internal to this package) ---

type indexFile struct {
	Texts   []string    `json:"texts"`
	Vectors [][]float32 `json:"vectors"`
}

// --- Interface Implementation ---

func (s *Storage) Add(ctx context.Context, texts []string) error {
	for _, text := range texts {
		vec, err := s.embedder.Embed(ctx, text, embedding.TaskDocument)
		if err != nil {
			return fmt.Errorf("embed fragment: %w", err)
		}
		normalize(vec)

		s.mu.Lock()
		s.texts = append(s.texts, text)
		s.vectors = append(s.vectors, vec)
		s.mu.Unlock()
	}
	return nil
}

func (s *Storage) SimilaritySearch(ctx context.Context, query string, k int) ([]vectorstore.Passage, error) {
	if k <= 0 {
		k = 5
	}

	queryVec, err := s.embedder.Embed(ctx, query, embedding.TaskQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	normalize(queryVec)

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Vectors are L2-normalized on insert, so dot product == cosine similarity
	type scored struct {
		idx   int
		score float32
	}
	scores := make([]scored, len(s.vectors))
	for i, vec := range s.vectors {
		scores[i] = scored{idx: i, score: dot(vec, queryVec)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })

	if k > len(scores) {
		k = len(scores)
	}
	results := make([]vectorstore.Passage, 0, k)
	for i := 0; i < k; i++ {
		results = append(results, vectorstore.Passage{
			Text:  s.texts[scores[i].idx],
			Score: scores[i].score,
		})
	}
	return results, nil
}

func (s *Storage) Len(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.texts), nil
}

// --- Disk persistence ---

// Save writes the index to path atomically (tmp file + rename).
func (s *Storage) Save(path string) error {
	s.mu.RLock()
	data, err := json.Marshal(indexFile{Texts: s.texts, Vectors: s.vectors})
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	return os.Rename(tmp, path)
}

// Load replaces the in-memory index with the one stored at path.
func (s *Storage) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read index: %w", err)
	}

	var file indexFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("unmarshal index: %w", err)
	}
	if len(file.Texts) != len(file.Vectors) {
		return errors.New("corrupt index: texts and vectors length mismatch")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = file.Texts
	s.vectors = file.Vectors
	return nil
}

// --- Vector math ---

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(v []float32) {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return
	}
	for i := range v {
		v[i] = float32(float64(v[i]) / norm)
	}
}
