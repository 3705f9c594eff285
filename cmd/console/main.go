package main

import (
	"context"
	"log"

	"vineyard-assistant/internal/bootstrap"
	"vineyard-assistant/internal/config"
	"vineyard-assistant/internal/console"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Log.Sync()

	// 3. Run REPL
	repl := console.New(
		container.Assistant,
		container.Retriever,
		container.Log,
		cfg.Assistant.RetrievalTopK,
	)
	if err := repl.Run(context.Background()); err != nil {
		log.Fatalf("Console error: %v", err)
	}
}
