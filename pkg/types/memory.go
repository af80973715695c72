// Package types defines the core data types shared across the OurStory system.
package types

import (
	"errors"
	"fmt"
	"time"
)

// MemoryType classifies a memory record for display and filtering.
// The set is closed: the store rejects values outside it.
type MemoryType string

const (
	TypeFirstMeeting MemoryType = "FIRST_MEETING"
	TypeMemory       MemoryType = "MEMORY"
	TypeHerInfo      MemoryType = "HER_INFO"
	TypeHisInfo      MemoryType = "HIS_INFO"
	TypeEvent        MemoryType = "EVENT"
	TypeNote         MemoryType = "NOTE"
)

// AllMemoryTypes lists every valid memory type in display order.
var AllMemoryTypes = []MemoryType{
	TypeFirstMeeting,
	TypeMemory,
	TypeHerInfo,
	TypeHisInfo,
	TypeEvent,
	TypeNote,
}

// Valid reports whether t is a member of the closed memory type set.
func (t MemoryType) Valid() bool {
	switch t {
	case TypeFirstMeeting, TypeMemory, TypeHerInfo, TypeHisInfo, TypeEvent, TypeNote:
		return true
	}
	return false
}

// dateLayout is the calendar date format for the optional Date field.
const dateLayout = "2006-01-02"

// Memory represents a single relationship memory record.
// JSON field names follow the client contract (camelCase).
type Memory struct {
	ID      int64      `json:"id"`      // Server-assigned, immutable after creation
	Type    MemoryType `json:"type"`    // Category from the closed set
	Title   string     `json:"title"`   // Required, non-empty
	Content string     `json:"content"` // Required, non-empty, unbounded length
	Date    string     `json:"date,omitempty"` // Optional YYYY-MM-DD; when the remembered event occurred

	CreatedAt time.Time `json:"createdAt"` // Server-assigned, immutable
	UpdatedAt time.Time `json:"updatedAt"` // Refreshed on every update
}

// Validate checks the caller-supplied fields of a memory record.
// It does not inspect server-assigned fields (ID, timestamps).
func (m *Memory) Validate() error {
	if !m.Type.Valid() {
		return fmt.Errorf("unknown memory type %q", m.Type)
	}
	if m.Title == "" {
		return errors.New("title is required")
	}
	if m.Content == "" {
		return errors.New("content is required")
	}
	if m.Date != "" {
		if _, err := time.Parse(dateLayout, m.Date); err != nil {
			return fmt.Errorf("date must be in YYYY-MM-DD format: %q", m.Date)
		}
	}
	return nil
}

// MemoryStats is the aggregate count of memories per category.
// JSON field names mirror the category constants so the stats payload
// reads as {total, FIRST_MEETING, MEMORY, ...} with zero-filled entries.
type MemoryStats struct {
	Total        int `json:"total"`
	FirstMeeting int `json:"FIRST_MEETING"`
	Memory       int `json:"MEMORY"`
	HerInfo      int `json:"HER_INFO"`
	HisInfo      int `json:"HIS_INFO"`
	Event        int `json:"EVENT"`
	Note         int `json:"NOTE"`
}

// Add records n memories of the given type in the tally.
// Unknown types only contribute to the total; the store never produces them.
func (s *MemoryStats) Add(t MemoryType, n int) {
	s.Total += n
	switch t {
	case TypeFirstMeeting:
		s.FirstMeeting += n
	case TypeMemory:
		s.Memory += n
	case TypeHerInfo:
		s.HerInfo += n
	case TypeHisInfo:
		s.HisInfo += n
	case TypeEvent:
		s.Event += n
	case TypeNote:
		s.Note += n
	}
}

// CountFor returns the tally for a single category.
func (s *MemoryStats) CountFor(t MemoryType) int {
	switch t {
	case TypeFirstMeeting:
		return s.FirstMeeting
	case TypeMemory:
		return s.Memory
	case TypeHerInfo:
		return s.HerInfo
	case TypeHisInfo:
		return s.HisInfo
	case TypeEvent:
		return s.Event
	case TypeNote:
		return s.Note
	}
	return 0
}
