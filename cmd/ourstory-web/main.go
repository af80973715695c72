package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ourstory/ourstory/internal/chat"
	"github.com/ourstory/ourstory/internal/config"
	"github.com/ourstory/ourstory/internal/llm"
	"github.com/ourstory/ourstory/internal/server"
	"github.com/ourstory/ourstory/internal/storage"
	"github.com/ourstory/ourstory/internal/storage/postgres"
	"github.com/ourstory/ourstory/internal/storage/sqlite"
	"github.com/ourstory/ourstory/pkg/log"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	// A missing .env file is fine, the environment may already be set.
	_ = godotenv.Load()

	ctx := log.NewContextWithLogger(context.Background(), *debug)
	logger := log.FromCtx(ctx)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}

	store, chatLog, err := openStore(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	defer store.Close()

	completer := llm.NewGroqClient(llm.GroqConfig{
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		APIURL:  cfg.LLM.APIURL,
		Timeout: time.Duration(cfg.LLM.TimeoutSeconds) * time.Second,
	})
	chatSvc := chat.NewService(completer, chatLog)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	addr, _, err := server.Start(ctx, cfg, store, chatSvc)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
	logger.Info().Str("addr", addr).Str("engine", cfg.Storage.Engine).Msg("ourstory backend running")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info().Msg("shutting down gracefully")
	cancel()
	// Give in-flight connections time to drain.
	time.Sleep(1 * time.Second)
}

// openStore builds the configured storage backend. Both backends also
// serve as the chat log.
func openStore(cfg *config.Config) (storage.MemoryStore, storage.ChatLog, error) {
	switch cfg.Storage.Engine {
	case "postgres":
		store, err := postgres.NewStore(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o755); err != nil {
			return nil, nil, err
		}
		store, err := sqlite.NewStore(filepath.Join(cfg.Storage.DataPath, "ourstory.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	}
}
