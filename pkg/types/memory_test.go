package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryTypeValid(t *testing.T) {
	for _, mt := range AllMemoryTypes {
		assert.True(t, mt.Valid(), "expected %q to be valid", mt)
	}

	assert.False(t, MemoryType("").Valid())
	assert.False(t, MemoryType("BIRTHDAY").Valid())
	assert.False(t, MemoryType("event").Valid(), "type matching is case-sensitive")
}

func TestMemoryValidate(t *testing.T) {
	valid := Memory{
		Type:    TypeEvent,
		Title:   "Anniversary",
		Content: "Dinner at the place we met",
	}

	tests := []struct {
		name    string
		mutate  func(m *Memory)
		wantErr bool
	}{
		{"valid without date", func(m *Memory) {}, false},
		{"valid with date", func(m *Memory) { m.Date = "2024-02-14" }, false},
		{"empty title", func(m *Memory) { m.Title = "" }, true},
		{"empty content", func(m *Memory) { m.Content = "" }, true},
		{"unknown type", func(m *Memory) { m.Type = "BIRTHDAY" }, true},
		{"empty type", func(m *Memory) { m.Type = "" }, true},
		{"malformed date", func(m *Memory) { m.Date = "14/02/2024" }, true},
		{"impossible date", func(m *Memory) { m.Date = "2024-13-40" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := valid
			tt.mutate(&m)
			err := m.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMemoryStatsAdd(t *testing.T) {
	var s MemoryStats

	s.Add(TypeEvent, 2)
	s.Add(TypeNote, 1)
	s.Add(TypeFirstMeeting, 1)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Event)
	assert.Equal(t, 1, s.Note)
	assert.Equal(t, 1, s.FirstMeeting)
	assert.Equal(t, 0, s.Memory)
	assert.Equal(t, 0, s.HerInfo)
	assert.Equal(t, 0, s.HisInfo)

	// Total always equals the sum of the per-category counts.
	sum := 0
	for _, mt := range AllMemoryTypes {
		sum += s.CountFor(mt)
	}
	assert.Equal(t, s.Total, sum)
}
