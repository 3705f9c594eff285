package pgvector

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"vineyard-assistant/pkg/embedding"
	"vineyard-assistant/pkg/vectorstore"
)

// Storage is a pgvector-backed index. Each corpus fragment is one row;
// search orders by cosine distance on the embedding column.
type Storage struct {
	db       *gorm.DB
	embedder embedding.EmbeddingProvider
}

var _ vectorstore.VectorStore = &Storage{}

func NewStorage(db *gorm.DB, embedder embedding.EmbeddingProvider) *Storage {
	return &Storage{db: db, embedder: embedder}
}

// --- Model (Internal to this package) ---

type corpusEmbedding struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Document       string          `gorm:"type:text"`
	EmbeddingValue pgvector.Vector `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (corpusEmbedding) TableName() string {
	return "corpus_embeddings"
}

// Migrate ensures the pgvector extension and the embeddings table exist.
func (s *Storage) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
		return fmt.Errorf("create vector extension: %w", err)
	}
	return s.db.WithContext(ctx).AutoMigrate(&corpusEmbedding{})
}

// Reset drops all indexed fragments. Used by the indexer before a rebuild.
func (s *Storage) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&corpusEmbedding{}).Error
}

// --- Interface Implementation ---

func (s *Storage) Add(ctx context.Context, texts []string) error {
	for _, text := range texts {
		vec, err := s.embedder.Embed(ctx, text, embedding.TaskDocument)
		if err != nil {
			return fmt.Errorf("embed fragment: %w", err)
		}

		row := corpusEmbedding{
			Id:             uuid.New(),
			Document:       text,
			EmbeddingValue: pgvector.NewVector(vec),
		}
		if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
			return fmt.Errorf("insert fragment: %w", err)
		}
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

	// Cosine distance in pgvector is: 1 - cosine_similarity
	// So we compute: 1 - (embedding_value <=> query_vector) = cosine_similarity
	type result struct {
		corpusEmbedding
		Similarity float64
	}
	var results []result

	queryVector := pgvector.NewVector(queryVec)

	err = s.db.WithContext(ctx).
		Table("corpus_embeddings").
		Select("corpus_embeddings.*, 1 - (embedding_value <=> ?) as similarity", queryVector).
		Order("similarity DESC").
		Limit(k).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	passages := make([]vectorstore.Passage, len(results))
	for i, res := range results {
		passages[i] = vectorstore.Passage{
			Text:  res.Document,
			Score: float32(res.Similarity),
		}
	}
	return passages, nil
}

func (s *Storage) Len(ctx context.Context) (int, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&corpusEmbedding{}).Count(&count).Error
	return int(count), err
}
