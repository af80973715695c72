package handlers

import "time"

// ErrorResponse is the standard error response format for the API.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Code    string                 `json:"code"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthResponse is the response format for GET /api/health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the request format for POST /api/chat.
type ChatRequest struct {
	Message string `json:"message"`
	UserID  string `json:"userId,omitempty"`
}

// ImportRequest is the request format for POST /api/import/markdown.
type ImportRequest struct {
	Files []ImportFile `json:"files"`
}

// ImportFile is a single Markdown file to import.
type ImportFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// ImportResponse is the response format for POST /api/import/markdown.
type ImportResponse struct {
	Imported int           `json:"imported"`
	Failed   int           `json:"failed"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// ImportError describes a single file that could not be imported.
type ImportError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}
