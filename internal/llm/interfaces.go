// Package llm provides clients for external language model APIs.
package llm

import "context"

// ChatCompleter is the interface for single-turn chat completion.
type ChatCompleter interface {
	Complete(ctx context.Context, message string) (string, error)
	GetModel() string
}
