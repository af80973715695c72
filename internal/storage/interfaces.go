package storage

import (
	"context"

	"github.com/ourstory/ourstory/pkg/types"
)

// MemoryStore provides CRUD and aggregate operations for memory records.
// Implementations validate caller-supplied fields and report violations as
// errors wrapping ErrInvalidInput; unknown ids are reported as ErrNotFound.
type MemoryStore interface {
	// Create validates the record, assigns a new ID and timestamps
	// (created_at == updated_at), and persists it. The passed record is
	// updated in place with the server-assigned fields.
	Create(ctx context.Context, m *types.Memory) error

	// Get retrieves a memory by ID.
	Get(ctx context.Context, id int64) (*types.Memory, error)

	// List retrieves memories newest-first, optionally filtered by
	// category and by a case-insensitive substring match on title/content.
	List(ctx context.Context, opts ListOptions) ([]types.Memory, error)

	// Update overwrites type, title, content, and date of an existing
	// record and refreshes updated_at. There are no upsert semantics:
	// an unknown ID fails with ErrNotFound and creates nothing.
	Update(ctx context.Context, m *types.Memory) error

	// Delete permanently removes a memory by ID. Deleting an already
	// deleted ID fails with ErrNotFound again, never with success.
	Delete(ctx context.Context, id int64) error

	// Stats returns the total record count and the count per category,
	// zero-filled for categories with no records.
	Stats(ctx context.Context) (*types.MemoryStats, error)

	// Close releases any resources held by the store.
	Close() error
}

// ChatLog persists chat exchanges as a best-effort side artifact.
// Callers treat write failures as non-fatal.
type ChatLog interface {
	// Append inserts one chat record.
	Append(ctx context.Context, rec *types.ChatRecord) error

	// Recent returns the most recent chat records for a user,
	// newest-first, up to limit.
	Recent(ctx context.Context, userID string, limit int) ([]types.ChatRecord, error)
}
