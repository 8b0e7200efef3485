package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonWindowContains(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	window := NewSeasonWindow(
		time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC),
		chicago,
	)

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before start", time.Date(2025, 9, 3, 23, 59, 0, 0, chicago), false},
		{"first minute", time.Date(2025, 9, 4, 0, 0, 0, 0, chicago), true},
		{"mid season", time.Date(2025, 11, 20, 12, 0, 0, 0, chicago), true},
		{"last day evening", time.Date(2026, 1, 6, 23, 59, 59, 0, chicago), true},
		{"after end", time.Date(2026, 1, 7, 0, 0, 0, 0, chicago), false},
		{"utc instant still on last day in chicago", time.Date(2026, 1, 7, 3, 0, 0, 0, time.UTC), true},
		{"utc instant before start in chicago", time.Date(2025, 9, 4, 3, 0, 0, 0, time.UTC), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, window.Contains(tc.at))
		})
	}

	assert.Equal(t, "2025-09-04..2026-01-06 America/Chicago", window.String())
}
