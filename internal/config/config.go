// Package config provides configuration for the OurStory backend.
// All settings come from environment variables; the resulting Config is
// constructed once at process entry and passed down, never mutated.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all configuration settings for the OurStory backend.
type Config struct {
	Server   ServerConfig
	Storage  StorageConfig
	LLM      LLMConfig
	Security SecurityConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Host string `env:"OURSTORY_HOST" envDefault:"127.0.0.1"`
	Port int    `env:"OURSTORY_PORT" envDefault:"8787"`
}

// StorageConfig contains database configuration.
type StorageConfig struct {
	// Engine selects the storage backend: "sqlite" or "postgres".
	Engine string `env:"OURSTORY_STORAGE_ENGINE" envDefault:"sqlite"`

	// DataPath is the directory holding the SQLite database file.
	DataPath string `env:"OURSTORY_DATA_PATH" envDefault:"./data"`

	// PostgresDSN is the connection string used when Engine is "postgres".
	PostgresDSN string `env:"OURSTORY_POSTGRES_DSN"`
}

// LLMConfig contains the upstream chat completion endpoint configuration.
type LLMConfig struct {
	// APIURL is the full URL of the chat completions endpoint.
	APIURL string `env:"GROQ_API_URL" envDefault:"https://api.groq.com/openai/v1/chat/completions"`

	APIKey string `env:"GROQ_API_KEY"`
	Model  string `env:"GROQ_MODEL" envDefault:"llama-3.1-8b-instant"`

	// TimeoutSeconds bounds the outbound completion call. A call that
	// exceeds it is treated as an upstream failure.
	TimeoutSeconds int `env:"GROQ_TIMEOUT_SECONDS" envDefault:"60"`
}

// SecurityConfig contains request admission settings.
type SecurityConfig struct {
	// AllowedOrigins is the comma-separated CORS allow-list. A single "*"
	// entry allows any origin.
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// JWTSecret is reserved for a future authentication layer. It is
	// loaded here so deployments can provision it, but nothing reads it yet.
	JWTSecret string `env:"JWT_SECRET"`
}

// Load parses configuration from environment variables with defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment: %w", err)
	}
	return cfg, nil
}
