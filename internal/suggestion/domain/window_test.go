package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrepWindow(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	event := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)

	t.Run("valid window", func(t *testing.T) {
		w, err := NewPrepWindow(start, event, 2*time.Hour)
		require.NoError(t, err)
		assert.Equal(t, start, w.Start)
		assert.Equal(t, event, w.EventDate)
		assert.Equal(t, 2*time.Hour, w.DailyBudget)
	})

	t.Run("rejects non-positive budget", func(t *testing.T) {
		_, err := NewPrepWindow(start, event, 0)
		assert.ErrorIs(t, err, ErrNonPositiveBudget)

		_, err = NewPrepWindow(start, event, -time.Hour)
		assert.ErrorIs(t, err, ErrNonPositiveBudget)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		_, err := NewPrepWindow(event, start, time.Hour)
		assert.ErrorIs(t, err, ErrWindowInverted)
	})

	t.Run("same-day window is allowed", func(t *testing.T) {
		w, err := NewPrepWindow(start, start, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, 0, w.AvailableDays())
	})
}

func TestPrepWindowAvailableDays(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		event time.Time
		want  int
	}{
		{"four full days", base.AddDate(0, 0, 4), 4},
		{"one day", base.AddDate(0, 0, 1), 1},
		{"partial day rounds up", base.Add(36 * time.Hour), 2},
		{"under a day rounds up to one", base.Add(6 * time.Hour), 1},
		{"same instant", base, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := NewPrepWindow(base, tt.event, 2*time.Hour)
			require.NoError(t, err)
			assert.Equal(t, tt.want, w.AvailableDays())
		})
	}
}

func TestPrepWindowCapacity(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	w, err := NewPrepWindow(base, base.AddDate(0, 0, 3), 90*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 270*time.Minute, w.Capacity())
}
