package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"vineyard-assistant/internal/config"
	"vineyard-assistant/internal/constant"
	"vineyard-assistant/internal/pkg/logger"
	"vineyard-assistant/pkg/assistant"
	"vineyard-assistant/pkg/database"
	"vineyard-assistant/pkg/embedding"
	"vineyard-assistant/pkg/llm/openai"
	"vineyard-assistant/pkg/prompt"
	"vineyard-assistant/pkg/respcache"
	"vineyard-assistant/pkg/retrieval"
	"vineyard-assistant/pkg/session"
	"vineyard-assistant/pkg/vectorstore"
	"vineyard-assistant/pkg/vectorstore/memory"
	"vineyard-assistant/pkg/vectorstore/pgvector"
)

type Container struct {
	Log       *logger.ZapLogger
	Assistant *assistant.Assistant
	Retriever *retrieval.Gateway
	Sessions  *session.Store
	Store     vectorstore.VectorStore

	// MemoryStore is set only when VECTOR_STORE=memory; the indexer uses
	// it to persist the built index to disk.
	MemoryStore *memory.Storage

	// PgStore is set only when VECTOR_STORE=pgvector.
	PgStore *pgvector.Storage
}

func NewContainer(cfg *config.Config) (*Container, error) {
	// 1. Logger
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Embedding Provider
	var embedder embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "gemini":
		embedder = embedding.NewGeminiProvider(cfg.Ai.GeminiKey)
	case "ollama":
		embedder = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Ai.EmbeddingProvider)
	}

	// 3. Vector Store
	c := &Container{Log: sysLogger}
	switch cfg.Ai.VectorStore {
	case "memory":
		store := memory.NewStorage(embedder)
		if _, err := os.Stat(cfg.App.IndexPath); err == nil {
			if err := store.Load(cfg.App.IndexPath); err != nil {
				return nil, fmt.Errorf("load vector index: %w", err)
			}
			sysLogger.Info("Bootstrap", "Loaded vector index from disk", map[string]interface{}{
				"path": cfg.App.IndexPath,
			})
		} else {
			sysLogger.Warn("Bootstrap", "No vector index on disk, run the indexer first", map[string]interface{}{
				"path": cfg.App.IndexPath,
			})
		}
		c.MemoryStore = store
		c.Store = store
	case "pgvector":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		store := pgvector.NewStorage(db, embedder)
		if err := store.Migrate(context.Background()); err != nil {
			return nil, fmt.Errorf("migrate vector store: %w", err)
		}
		c.PgStore = store
		c.Store = store
	default:
		return nil, fmt.Errorf("unknown vector store: %s", cfg.Ai.VectorStore)
	}

	// 4. LLM Provider
	llmProvider := openai.NewOpenAIProvider(cfg.Ai.OpenAIBaseURL, cfg.Ai.OpenAIKey, cfg.Ai.LLMModel)

	// 5. Core Components
	c.Sessions = session.NewStore(
		time.Duration(cfg.Assistant.SessionTimeoutMinutes)*time.Minute,
		cfg.Assistant.SessionMaxTurns,
	)
	respCache := respcache.New(time.Duration(cfg.Assistant.CacheTTLSeconds) * time.Second)
	c.Retriever = retrieval.NewGateway(c.Store, time.Duration(cfg.Assistant.RetrievalMemoTTLHours)*time.Hour)
	prompts := prompt.NewBuilder(constant.SystemPromptV2)

	// 6. Orchestrator
	c.Assistant = assistant.New(
		c.Sessions,
		respCache,
		c.Retriever,
		prompts,
		llmProvider,
		sysLogger,
		assistant.Params{
			TopK:        cfg.Assistant.RetrievalTopK,
			Temperature: cfg.Ai.Temperature,
			MaxTokens:   cfg.Ai.MaxTokens,
		},
	)

	return c, nil
}
