// Package chat implements the conversational assistant on top of an
// upstream language model, with a canned fallback when the model is
// unavailable.
package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ourstory/ourstory/internal/llm"
	"github.com/ourstory/ourstory/internal/storage"
	"github.com/ourstory/ourstory/pkg/log"
	"github.com/ourstory/ourstory/pkg/types"
)

// FallbackReply is returned when the upstream model cannot produce a
// response. The client still receives a successful reply so the
// conversation never surfaces an upstream outage to the user.
const FallbackReply = "🤖 I'm currently processing your message. Please try again in a moment."

// ErrEmptyMessage indicates the caller sent a blank message.
var ErrEmptyMessage = errors.New("message is required")

// Reply is the result of a chat turn.
type Reply struct {
	Reply     string    `json:"reply"`
	Model     string    `json:"model"`
	Timestamp time.Time `json:"timestamp"`
}

// Service coordinates completions and conversation logging.
type Service struct {
	completer llm.ChatCompleter
	chatLog   storage.ChatLog
}

// NewService creates a chat service. chatLog may be nil, in which case
// conversations are not persisted.
func NewService(completer llm.ChatCompleter, chatLog storage.ChatLog) *Service {
	return &Service{
		completer: completer,
		chatLog:   chatLog,
	}
}

// Send runs one chat turn. Upstream failures of any kind degrade to
// FallbackReply rather than an error; the only error returned is
// ErrEmptyMessage for blank input.
func (s *Service) Send(ctx context.Context, userID, message string) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, ErrEmptyMessage
	}

	reply := Reply{
		Model:     s.completer.GetModel(),
		Timestamp: time.Now().UTC(),
	}

	content, err := s.completer.Complete(ctx, message)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Msg("chat completion failed, using fallback reply")
		reply.Reply = FallbackReply
		return reply, nil
	}
	reply.Reply = content

	// Conversations are only recorded for identified users, and only
	// when the model actually answered. A logging failure must not
	// break the reply.
	if s.chatLog != nil && userID != "" {
		record := &types.ChatRecord{
			ID:        uuid.New().String(),
			UserID:    userID,
			Message:   message,
			Reply:     content,
			Model:     reply.Model,
			CreatedAt: reply.Timestamp,
		}
		if err := s.chatLog.Append(ctx, record); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("user_id", userID).Msg("failed to record chat turn")
		}
	}

	return reply, nil
}
