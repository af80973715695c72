package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ourstory/ourstory/internal/chat"
)

// ChatHandlers contains HTTP handlers for the chat endpoint.
type ChatHandlers struct {
	service *chat.Service
}

// NewChatHandlers creates a new ChatHandlers instance.
func NewChatHandlers(service *chat.Service) *ChatHandlers {
	return &ChatHandlers{service: service}
}

// Chat handles POST /api/chat. An upstream model failure still yields a
// 200 with a fallback reply; only malformed input is a client error.
func (h *ChatHandlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	reply, err := h.service.Send(r.Context(), req.UserID, req.Message)
	if err != nil {
		if errors.Is(err, chat.ErrEmptyMessage) {
			respondError(w, http.StatusBadRequest, "message is required", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "chat failed", err)
		return
	}

	respondJSON(w, http.StatusOK, reply)
}
