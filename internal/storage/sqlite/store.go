// Package sqlite provides the SQLite implementation of the storage interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ourstory/ourstory/internal/storage"
	"github.com/ourstory/ourstory/pkg/types"
)

// Store implements storage.MemoryStore and storage.ChatLog using SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database, configures WAL mode, and creates the schema.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to open database: %w", err)
	}

	// SQLite only supports one concurrent writer. A single open connection
	// serialises writes and avoids SQLITE_BUSY errors under concurrent load.
	// WAL mode allows concurrent readers to proceed without blocking the writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to enable WAL mode: %w", err)
	}

	// Wait instead of failing immediately when the connection is held by
	// another goroutine.
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to set busy timeout: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Create validates the record, assigns ID and timestamps, and persists it.
func (s *Store) Create(ctx context.Context, m *types.Memory) error {
	if m == nil {
		return storage.ErrInvalidInput
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %s", storage.ErrInvalidInput, err)
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO memories (type, title, content, date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, m.Type, m.Title, m.Content, nullableString(m.Date), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: failed to create memory: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: failed to read inserted id: %w", err)
	}
	m.ID = id

	return nil
}

// Get retrieves a memory by ID.
func (s *Store) Get(ctx context.Context, id int64) (*types.Memory, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, type, title, content, date, created_at, updated_at
		FROM memories
		WHERE id = ?
	`, id)

	m, err := scanMemory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to get memory: %w", err)
	}
	return m, nil
}

// List retrieves memories newest-first with optional type and search filters.
func (s *Store) List(ctx context.Context, opts storage.ListOptions) ([]types.Memory, error) {
	opts.Normalize()

	query := `
		SELECT id, type, title, content, date, created_at, updated_at
		FROM memories
	`

	var conditions []string
	var args []interface{}

	if opts.Type != "" {
		conditions = append(conditions, "type = ?")
		args = append(args, opts.Type)
	}

	if opts.Search != "" {
		needle := strings.ToLower(opts.Search)
		conditions = append(conditions, "(instr(lower(title), ?) > 0 OR instr(lower(content), ?) > 0)")
		args = append(args, needle, needle)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, opts.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list memories: %w", err)
	}
	defer rows.Close()

	memories := make([]types.Memory, 0)
	for rows.Next() {
		m, err := scanMemory(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan memory: %w", err)
		}
		memories = append(memories, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: error iterating memories: %w", err)
	}

	return memories, nil
}

// Update overwrites the caller-supplied fields of an existing record and
// refreshes updated_at. Unknown IDs fail with ErrNotFound; nothing is created.
func (s *Store) Update(ctx context.Context, m *types.Memory) error {
	if m == nil {
		return storage.ErrInvalidInput
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %s", storage.ErrInvalidInput, err)
	}

	m.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE memories
		SET type = ?, title = ?, content = ?, date = ?, updated_at = ?
		WHERE id = ?
	`, m.Type, m.Title, m.Content, nullableString(m.Date), m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("sqlite: failed to update memory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// Delete permanently removes a memory by ID.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM memories WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("sqlite: failed to delete memory: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: failed to check rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return storage.ErrNotFound
	}

	return nil
}

// Stats returns the total record count and the count per category in a
// single grouped query, zero-filled for empty categories.
func (s *Store) Stats(ctx context.Context) (*types.MemoryStats, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT type, COUNT(*) FROM memories GROUP BY type")
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to count memories: %w", err)
	}
	defer rows.Close()

	stats := &types.MemoryStats{}
	for rows.Next() {
		var t string
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan stats row: %w", err)
		}
		stats.Add(types.MemoryType(t), n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: error iterating stats: %w", err)
	}

	return stats, nil
}

// Append inserts one chat record.
func (s *Store) Append(ctx context.Context, rec *types.ChatRecord) error {
	if rec == nil || rec.ID == "" {
		return fmt.Errorf("%w: chat record ID is required", storage.ErrInvalidInput)
	}

	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chats (id, user_id, message, reply, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.Message, rec.Reply, rec.Model, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("sqlite: failed to append chat record: %w", err)
	}

	return nil
}

// Recent returns the most recent chat records for a user, newest-first.
func (s *Store) Recent(ctx context.Context, userID string, limit int) ([]types.ChatRecord, error) {
	if limit < 1 {
		limit = storage.DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, message, reply, model, created_at
		FROM chats
		WHERE user_id = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: failed to list chat records: %w", err)
	}
	defer rows.Close()

	records := make([]types.ChatRecord, 0)
	for rows.Next() {
		var rec types.ChatRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Message, &rec.Reply, &rec.Model, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: failed to scan chat record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: error iterating chat records: %w", err)
	}

	return records, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMemory scans a single memories row in SELECT column order.
func scanMemory(row rowScanner) (*types.Memory, error) {
	var m types.Memory
	var date sql.NullString

	err := row.Scan(&m.ID, &m.Type, &m.Title, &m.Content, &date, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if date.Valid {
		m.Date = date.String
	}

	return &m, nil
}

// nullableString converts a string to sql.NullString.
// An empty string is treated as NULL.
func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

// Compile-time assertions.
var (
	_ storage.MemoryStore = (*Store)(nil)
	_ storage.ChatLog     = (*Store)(nil)
)
