package types

import "time"

// ChatRecord is one logged chat exchange. The chat log is a best-effort
// side artifact: chat messages themselves are transient and client-held,
// and a failed write never surfaces to the chat caller.
type ChatRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Reply     string    `json:"reply"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"createdAt"`
}
