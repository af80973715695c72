package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8787, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Storage.Engine)
	assert.Equal(t, "./data", cfg.Storage.DataPath)
	assert.Equal(t, "https://api.groq.com/openai/v1/chat/completions", cfg.LLM.APIURL)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.LLM.Model)
	assert.Equal(t, 60, cfg.LLM.TimeoutSeconds)
	assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
	assert.Empty(t, cfg.Security.JWTSecret)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OURSTORY_HOST", "0.0.0.0")
	t.Setenv("OURSTORY_PORT", "9000")
	t.Setenv("OURSTORY_STORAGE_ENGINE", "postgres")
	t.Setenv("OURSTORY_POSTGRES_DSN", "postgres://ourstory@localhost/ourstory?sslmode=disable")
	t.Setenv("GROQ_API_KEY", "gsk_test")
	t.Setenv("GROQ_MODEL", "mixtral-8x7b-32768")
	t.Setenv("ALLOWED_ORIGINS", "https://ourstory.example, https://staging.ourstory.example")
	t.Setenv("JWT_SECRET", "reserved")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Storage.Engine)
	assert.Equal(t, "postgres://ourstory@localhost/ourstory?sslmode=disable", cfg.Storage.PostgresDSN)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
	assert.Equal(t, "mixtral-8x7b-32768", cfg.LLM.Model)
	// env/v11 does not trim spaces around separator-split entries; the
	// middleware normalises origins, so the raw values are kept here.
	assert.Len(t, cfg.Security.AllowedOrigins, 2)
	assert.Equal(t, "reserved", cfg.Security.JWTSecret)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("OURSTORY_PORT", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}
