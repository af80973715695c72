// Package handlers provides HTTP handlers and middleware for the REST API.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ourstory/ourstory/internal/storage"
	"github.com/ourstory/ourstory/pkg/types"
)

// MemoryHandlers contains HTTP handlers for the memories REST API.
type MemoryHandlers struct {
	store  storage.MemoryStore
	events *WebSocketHub // optional, nil disables event broadcasting
}

// NewMemoryHandlers creates a new MemoryHandlers instance.
func NewMemoryHandlers(store storage.MemoryStore) *MemoryHandlers {
	return &MemoryHandlers{store: store}
}

// SetEventHub attaches a hub that receives created/updated/deleted events.
func (h *MemoryHandlers) SetEventHub(hub *WebSocketHub) {
	h.events = hub
}

// Health handles GET /api/health.
func (h *MemoryHandlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Service:   "OurStory AI Backend",
		Timestamp: time.Now().UTC(),
	})
}

// ListMemories handles GET /api/memories with optional type, search and
// limit query parameters.
func (h *MemoryHandlers) ListMemories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	opts := storage.ListOptions{
		Type:   types.MemoryType(q.Get("type")),
		Search: q.Get("search"),
		Limit:  parseInt(q.Get("limit"), 0),
	}

	if opts.Type != "" && !opts.Type.Valid() {
		respondError(w, http.StatusBadRequest, "invalid memory type", fmt.Errorf("unknown type %q", opts.Type))
		return
	}

	opts.Normalize()

	memories, err := h.store.List(r.Context(), opts)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list memories", err)
		return
	}

	respondJSON(w, http.StatusOK, memories)
}

// GetMemory handles GET /api/memories/{id}.
func (h *MemoryHandlers) GetMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(w, r)
	if !ok {
		return
	}

	memory, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memory not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get memory", err)
		return
	}

	respondJSON(w, http.StatusOK, memory)
}

// CreateMemoryRequest represents the request body for creating a memory.
type CreateMemoryRequest struct {
	Type    types.MemoryType `json:"type"`
	Title   string           `json:"title"`
	Content string           `json:"content"`
	Date    string           `json:"date,omitempty"`
}

// CreateMemory handles POST /api/memories.
func (h *MemoryHandlers) CreateMemory(w http.ResponseWriter, r *http.Request) {
	var req CreateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	memory := &types.Memory{
		Type:    req.Type,
		Title:   req.Title,
		Content: req.Content,
		Date:    req.Date,
	}

	if err := h.store.Create(r.Context(), memory); err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, "invalid memory", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to create memory", err)
		return
	}

	h.broadcastEvent(EventMemoryCreated, memory)
	respondJSON(w, http.StatusCreated, memory)
}

// UpdateMemoryRequest represents the request body for updating a memory.
// Omitted fields keep their current values.
type UpdateMemoryRequest struct {
	Type    *types.MemoryType `json:"type,omitempty"`
	Title   *string           `json:"title,omitempty"`
	Content *string           `json:"content,omitempty"`
	Date    *string           `json:"date,omitempty"`
}

// UpdateMemory handles PUT /api/memories/{id}.
func (h *MemoryHandlers) UpdateMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(w, r)
	if !ok {
		return
	}

	var req UpdateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	memory, err := h.store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memory not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to get memory", err)
		return
	}

	if req.Type != nil {
		memory.Type = *req.Type
	}
	if req.Title != nil {
		memory.Title = *req.Title
	}
	if req.Content != nil {
		memory.Content = *req.Content
	}
	if req.Date != nil {
		memory.Date = *req.Date
	}

	if err := h.store.Update(r.Context(), memory); err != nil {
		if errors.Is(err, storage.ErrInvalidInput) {
			respondError(w, http.StatusBadRequest, "invalid memory", err)
			return
		}
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memory not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to update memory", err)
		return
	}

	h.broadcastEvent(EventMemoryUpdated, memory)
	respondJSON(w, http.StatusOK, memory)
}

// DeleteMemory handles DELETE /api/memories/{id}.
func (h *MemoryHandlers) DeleteMemory(w http.ResponseWriter, r *http.Request) {
	id, ok := memoryID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(w, http.StatusNotFound, "memory not found", err)
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to delete memory", err)
		return
	}

	h.broadcastEvent(EventMemoryDeleted, &types.Memory{ID: id})
	w.WriteHeader(http.StatusNoContent)
}

func (h *MemoryHandlers) broadcastEvent(eventType string, memory *types.Memory) {
	if h.events == nil {
		return
	}
	h.events.Broadcast(MemoryEvent{Type: eventType, Memory: memory})
}

// Helper functions

// memoryID extracts and validates the {id} path parameter, writing a
// 400 response when it is missing or not an integer.
func memoryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	if raw == "" {
		respondError(w, http.StatusBadRequest, "memory ID is required", nil)
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "memory ID must be an integer", err)
		return 0, false
	}
	return id, true
}

// parseInt parses an integer from a string, returning defaultValue if parsing fails.
func parseInt(s string, defaultValue int) int {
	if s == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return defaultValue
	}
	return val
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers already sent, nothing more to write.
		fmt.Printf("failed to encode JSON response: %v\n", err)
	}
}

// respondError writes an error response with the given status code.
func respondError(w http.ResponseWriter, statusCode int, message string, err error) {
	errResp := ErrorResponse{
		Error: message,
		Code:  http.StatusText(statusCode),
	}

	if err != nil {
		errResp.Details = map[string]interface{}{
			"error": err.Error(),
		}
	}

	respondJSON(w, statusCode, errResp)
}
