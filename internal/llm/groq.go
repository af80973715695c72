package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GroqConfig holds configuration for the Groq client.
type GroqConfig struct {
	APIKey  string
	Model   string        // default: llama-3.1-8b-instant
	APIURL  string        // full chat completions endpoint, default: https://api.groq.com/openai/v1/chat/completions
	Timeout time.Duration // default: 60s
}

// GroqClient implements ChatCompleter using Groq's OpenAI-compatible
// chat completions API.
type GroqClient struct {
	cfg            GroqConfig
	client         *http.Client
	circuitBreaker *CircuitBreaker
}

// NewGroqClient creates a new Groq client with the given configuration.
func NewGroqClient(cfg GroqConfig) *GroqClient {
	if cfg.Model == "" {
		cfg.Model = "llama-3.1-8b-instant"
	}
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.groq.com/openai/v1/chat/completions"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GroqClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		circuitBreaker: NewCircuitBreaker(),
	}
}

// groqChatRequest is the request body for the chat completions endpoint.
type groqChatRequest struct {
	Model       string            `json:"model"`
	Messages    []groqChatMessage `json:"messages"`
	Temperature float64           `json:"temperature"`
	MaxTokens   int               `json:"max_tokens"`
}

type groqChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// groqChatResponse is the response body from the chat completions endpoint.
type groqChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends a single-turn completion to Groq and returns the response text.
func (c *GroqClient) Complete(ctx context.Context, message string) (string, error) {
	result, err := c.circuitBreaker.Execute(ctx, func() (interface{}, error) {
		return c.complete(ctx, message)
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			return "", fmt.Errorf("groq circuit breaker open: %w", err)
		}
		return "", err
	}
	return result.(string), nil
}

func (c *GroqClient) complete(ctx context.Context, message string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	reqBody := groqChatRequest{
		Model: c.cfg.Model,
		Messages: []groqChatMessage{
			{Role: "user", Content: message},
		},
		Temperature: 0.7,
		MaxTokens:   1024,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.APIURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("groq returned status %d: %s", resp.StatusCode, string(body))
	}

	var respData groqChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&respData); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(respData.Choices) == 0 {
		return "", fmt.Errorf("groq returned no choices")
	}

	return respData.Choices[0].Message.Content, nil
}

// GetModel returns the configured model name.
func (c *GroqClient) GetModel() string {
	return c.cfg.Model
}

// Compile-time assertion.
var _ ChatCompleter = (*GroqClient)(nil)
