package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourstory/ourstory/internal/chat"
	"github.com/ourstory/ourstory/internal/config"
	"github.com/ourstory/ourstory/internal/storage/sqlite"
	"github.com/ourstory/ourstory/pkg/types"
)

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, message string) (string, error) {
	return "echo: " + message, nil
}

func (echoCompleter) GetModel() string { return "echo-model" }

// startTestServer spins up a full server on an ephemeral port backed by
// an in-memory store.
func startTestServer(t *testing.T) string {
	t.Helper()

	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Security.AllowedOrigins = []string{"*"}

	chatSvc := chat.NewService(echoCompleter{}, store)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	addr, hub, err := Start(ctx, cfg, store, chatSvc)
	require.NoError(t, err)
	require.NotNil(t, hub)

	// Wait for the listener to accept connections.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/health", addr))
		if err == nil {
			_ = resp.Body.Close()
			return addr
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("server did not become ready")
	return ""
}

func TestServerHealthEndpoint(t *testing.T) {
	addr := startTestServer(t)

	resp, err := http.Get(fmt.Sprintf("http://%s/api/health", addr))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "healthy")
}

func TestServerMemoryLifecycle(t *testing.T) {
	addr := startTestServer(t)
	base := fmt.Sprintf("http://%s", addr)

	payload, _ := json.Marshal(map[string]string{
		"type":    "EVENT",
		"title":   "Road trip",
		"content": "We drove up the coast.",
	})
	resp, err := http.Post(base+"/api/memories", "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created types.Memory
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	_ = resp.Body.Close()
	require.Positive(t, created.ID)

	resp, err = http.Get(fmt.Sprintf("%s/api/memories/%d", base, created.ID))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/memories/%d", base, created.ID), nil)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestServerChatEndpoint(t *testing.T) {
	addr := startTestServer(t)

	payload, _ := json.Marshal(map[string]string{"message": "hi", "userId": "u1"})
	resp, err := http.Post(fmt.Sprintf("http://%s/api/chat", addr), "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var reply chat.Reply
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&reply))
	assert.Equal(t, "echo: hi", reply.Reply)
	assert.Equal(t, "echo-model", reply.Model)
}

func TestServerShutdown(t *testing.T) {
	store, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	cfg := &config.Config{}
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Security.AllowedOrigins = []string{"*"}

	ctx, cancel := context.WithCancel(context.Background())
	addr, _, err := Start(ctx, cfg, store, chat.NewService(echoCompleter{}, nil))
	require.NoError(t, err)

	cancel()

	// After shutdown completes the port must stop accepting requests.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/api/health", addr))
		if err != nil {
			return
		}
		_ = resp.Body.Close()
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("server still accepting requests after shutdown")
}
