package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListOptionsNormalize(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"zero gets default", 0, DefaultListLimit},
		{"negative gets default", -5, DefaultListLimit},
		{"in range kept", 25, 25},
		{"max kept", MaxListLimit, MaxListLimit},
		{"over max clamped", 500, MaxListLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ListOptions{Limit: tt.limit}
			opts.Normalize()
			assert.Equal(t, tt.want, opts.Limit)
		})
	}
}
