// Package server provides HTTP server initialization and lifecycle
// management for the OurStory backend.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/ourstory/ourstory/internal/chat"
	"github.com/ourstory/ourstory/internal/config"
	"github.com/ourstory/ourstory/internal/storage"
	"github.com/ourstory/ourstory/pkg/log"
	"github.com/ourstory/ourstory/web/handlers"
)

// Start initializes and starts the HTTP server. It returns the actual
// address being listened on (useful for testing with port 0) and the
// WebSocketHub carrying memory change events. The server shuts down
// gracefully when ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config, store storage.MemoryStore, chatSvc *chat.Service) (string, *handlers.WebSocketHub, error) {
	logger := log.FromCtx(ctx)

	wsHub := handlers.NewWebSocketHub(cfg.Security.AllowedOrigins)
	go wsHub.Run()

	memoryHandlers := handlers.NewMemoryHandlers(store)
	memoryHandlers.SetEventHub(wsHub)
	chatHandlers := handlers.NewChatHandlers(chatSvc)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", memoryHandlers.Health)
	mux.HandleFunc("GET /api/memories", memoryHandlers.ListMemories)
	mux.HandleFunc("POST /api/memories", memoryHandlers.CreateMemory)
	mux.HandleFunc("GET /api/memories/stats", memoryHandlers.MemoryStats)
	mux.HandleFunc("GET /api/memories/{id}", memoryHandlers.GetMemory)
	mux.HandleFunc("PUT /api/memories/{id}", memoryHandlers.UpdateMemory)
	mux.HandleFunc("DELETE /api/memories/{id}", memoryHandlers.DeleteMemory)
	mux.HandleFunc("POST /api/chat", chatHandlers.Chat)
	mux.HandleFunc("POST /api/import/markdown", memoryHandlers.ImportMarkdown)
	mux.Handle("GET /ws", wsHub)

	handler := handlers.CORSMiddleware(mux, cfg.Security.AllowedOrigins)
	handler = handlers.SecurityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		wsHub.Stop()
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("server error")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		wsHub.Stop()
	}()

	logger.Info().Str("addr", actualAddr).Msg("http server listening")
	return actualAddr, wsHub, nil
}
