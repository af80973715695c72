package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ourstory/ourstory/internal/importer"
)

// ImportMarkdown handles POST /api/import/markdown. Each file is parsed
// and stored independently; one bad file does not abort the batch.
func (h *MemoryHandlers) ImportMarkdown(w http.ResponseWriter, r *http.Request) {
	var req ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "failed to parse request body", err)
		return
	}

	if len(req.Files) == 0 {
		respondError(w, http.StatusBadRequest, "no files to import", nil)
		return
	}

	resp := ImportResponse{}
	for _, file := range req.Files {
		note, err := importer.ParseMarkdown([]byte(file.Content), file.Path)
		if err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, ImportError{Path: file.Path, Error: err.Error()})
			continue
		}

		memory := note.Memory()
		if err := h.store.Create(r.Context(), &memory); err != nil {
			resp.Failed++
			resp.Errors = append(resp.Errors, ImportError{Path: file.Path, Error: err.Error()})
			continue
		}

		h.broadcastEvent(EventMemoryCreated, &memory)
		resp.Imported++
	}

	respondJSON(w, http.StatusOK, resp)
}
