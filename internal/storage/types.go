// Package storage defines the storage interfaces for the OurStory system.
package storage

import (
	"errors"

	"github.com/ourstory/ourstory/pkg/types"
)

var (
	// ErrNotFound indicates that the requested record was not found.
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput indicates that the input parameters are invalid.
	ErrInvalidInput = errors.New("invalid input")
)

const (
	// DefaultListLimit is the number of records returned when no limit is requested.
	DefaultListLimit = 50

	// MaxListLimit caps the number of records a single list call can return.
	MaxListLimit = 200
)

// ListOptions provides filtering options for listing memories.
// Results are always ordered newest-first by creation time.
type ListOptions struct {
	// Type restricts results to a single category. Empty means all types.
	Type types.MemoryType

	// Search restricts results to records whose title or content contains
	// this string, case-insensitively. Empty means no text filter.
	Search string

	// Limit is the maximum number of records to return.
	Limit int
}

// Normalize applies defaults and bounds to the options.
func (o *ListOptions) Normalize() {
	if o.Limit < 1 {
		o.Limit = DefaultListLimit
	}
	if o.Limit > MaxListLimit {
		o.Limit = MaxListLimit
	}
}
