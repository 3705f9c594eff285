package indexer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"vineyard-assistant/internal/pkg/logger"
	"vineyard-assistant/pkg/utils"
	"vineyard-assistant/pkg/vectorstore"
)

// Corpus fragments of ~500 characters with ~100 overlap keep each passage
// small enough to embed well while preserving context across boundaries.
const (
	ChunkSize    = 500
	ChunkOverlap = 100
)

// Indexer builds the semantic index from a directory of .txt files.
type Indexer struct {
	store vectorstore.VectorStore
	log   logger.ILogger
}

func New(store vectorstore.VectorStore, log logger.ILogger) *Indexer {
	return &Indexer{store: store, log: log}
}

// BuildFromDir splits every .txt file under dataDir into fragments,
// embeds them and populates the store. Returns the fragment count.
// Unreadable files are skipped with a warning, not fatal.
func (ix *Indexer) BuildFromDir(ctx context.Context, dataDir string) (int, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return 0, fmt.Errorf("read data dir: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(dataDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			ix.log.Warn("Indexer", "Skipping unreadable file", map[string]interface{}{
				"file":  path,
				"error": err.Error(),
			})
			continue
		}

		fragments := utils.SplitText(string(data), ChunkSize, ChunkOverlap)
		if len(fragments) == 0 {
			continue
		}

		if err := ix.store.Add(ctx, fragments); err != nil {
			return total, fmt.Errorf("index %s: %w", entry.Name(), err)
		}

		ix.log.Info("Indexer", "Indexed file", map[string]interface{}{
			"file":      path,
			"fragments": len(fragments),
		})
		total += len(fragments)
	}

	return total, nil
}
