package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestParseStatus(t *testing.T) {
	st, ok := ParseStatus(" reading ")
	assert.True(t, ok)
	assert.Equal(t, StatusReading, st)

	_, ok = ParseStatus("on-hold")
	assert.False(t, ok)
}

func TestClampProgress(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		total    *int
		want     int
	}{
		{"negative floors at zero", -3, intPtr(12), 0},
		{"above total", 40, intPtr(12), 12},
		{"within", 5, intPtr(12), 5},
		{"unknown total", 500, nil, 500},
		{"zero total is unknown", 40, intPtr(0), 40},
		{"zero total still floors", -1, intPtr(0), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampProgress(tt.progress, tt.total))
		})
	}
}

func TestMarkCompleted(t *testing.T) {
	e := &ListEntry{Status: StatusWatching, Progress: 3}
	e.MarkCompleted(intPtr(24))
	assert.Equal(t, StatusCompleted, e.Status)
	assert.Equal(t, 24, e.Progress)

	e = &ListEntry{Progress: 3}
	e.MarkCompleted(nil)
	assert.Equal(t, 3, e.Progress)
}
