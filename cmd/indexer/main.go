package main

import (
	"context"
	"log"

	"vineyard-assistant/internal/bootstrap"
	"vineyard-assistant/internal/config"
	"vineyard-assistant/internal/indexer"
)

// Builds the semantic index from DATA_DIR and persists it (to disk for
// the memory store, to Postgres for pgvector). Run once before the bot.
func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Log.Sync()

	ctx := context.Background()

	// 3. Reset the pgvector table before a rebuild
	if container.PgStore != nil {
		if err := container.PgStore.Reset(ctx); err != nil {
			log.Fatalf("Unable to reset vector store: %v", err)
		}
	}

	// 4. Build
	ix := indexer.New(container.Store, container.Log)
	total, err := ix.BuildFromDir(ctx, cfg.App.DataDir)
	if err != nil {
		log.Fatalf("Indexing failed: %v", err)
	}

	// 5. Persist the memory store to disk
	if container.MemoryStore != nil {
		if err := container.MemoryStore.Save(cfg.App.IndexPath); err != nil {
			log.Fatalf("Unable to save vector index: %v", err)
		}
	}

	container.Log.Info("Indexer", "Index build complete", map[string]interface{}{
		"fragments": total,
	})
}
