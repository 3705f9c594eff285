package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"vineyard-assistant/internal/bootstrap"
	"vineyard-assistant/internal/config"
	"vineyard-assistant/internal/telegram"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Telegram.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	// 2. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap: %v", err)
	}
	defer container.Log.Sync()

	// 3. Initialize Bot
	bot, err := telegram.NewBot(
		cfg.Telegram.BotToken,
		container.Assistant,
		container.Log,
		cfg.Assistant.ChunkMaxLength,
	)
	if err != nil {
		log.Panicf("Unable to create bot: %v", err)
	}

	// 4. Graceful Shutdown on SIGINT/SIGTERM
	go func() {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		sig := <-stop
		container.Log.Info("Main", "Received signal, shutting down", map[string]interface{}{
			"signal": sig.String(),
		})
		bot.Stop()
	}()

	// 5. Run (blocks until Stop)
	if err := bot.Start(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
