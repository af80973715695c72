package handlers

import "net/http"

// MemoryStats handles GET /api/memories/stats. Every known memory type
// appears in the response even when its count is zero.
func (h *MemoryHandlers) MemoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
