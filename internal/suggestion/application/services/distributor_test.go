package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

func task(desc string, d time.Duration, p domain.Priority) ScoredTemplate {
	return ScoredTemplate{
		Template: domain.TaskTemplate{
			ID:          domain.DeriveTemplateID(domain.TypeGeneral, desc),
			Type:        domain.TypeGeneral,
			Description: desc,
			Priority:    p,
		},
		Confidence: 0.5,
		Duration:   d,
	}
}

func window(t *testing.T, days int, budget time.Duration) domain.PrepWindow {
	t.Helper()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	w, err := domain.NewPrepWindow(start, start.AddDate(0, 0, days), budget)
	require.NoError(t, err)
	return w
}

func TestDistribute(t *testing.T) {
	d := NewDistributor()

	t.Run("earliest fit", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("a", time.Hour, domain.PriorityMedium),
			task("b", 2*time.Hour, domain.PriorityMedium),
			task("c", time.Hour, domain.PriorityMedium),
		}, window(t, 4, 2*time.Hour))

		require.Len(t, dist.Tasks, 3)
		assert.False(t, dist.Overflow)
		assert.Zero(t, dist.Deficit)

		byDesc := map[string]int{}
		for _, task := range dist.Tasks {
			byDesc[task.Description] = task.Day
		}
		assert.Equal(t, 0, byDesc["a"])
		assert.Equal(t, 1, byDesc["b"])
		assert.Equal(t, 0, byDesc["c"])
	})

	t.Run("high priority is placed first", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("filler", 2*time.Hour, domain.PriorityLow),
			task("urgent", 2*time.Hour, domain.PriorityHigh),
		}, window(t, 2, 2*time.Hour))

		require.Len(t, dist.Tasks, 2)
		for _, placed := range dist.Tasks {
			if placed.Description == "urgent" {
				assert.Equal(t, 0, placed.Day)
			} else {
				assert.Equal(t, 1, placed.Day)
			}
		}
	})

	t.Run("oversized task is split across days", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("big", 3*time.Hour, domain.PriorityMedium),
		}, window(t, 2, 2*time.Hour))

		require.Len(t, dist.Tasks, 2)
		assert.False(t, dist.Overflow)
		assert.Equal(t, 0, dist.Tasks[0].Day)
		assert.Equal(t, 2*time.Hour, dist.Tasks[0].Duration)
		assert.True(t, dist.Tasks[0].Split)
		assert.Equal(t, 1, dist.Tasks[1].Day)
		assert.Equal(t, time.Hour, dist.Tasks[1].Duration)
		assert.True(t, dist.Tasks[1].Split)
	})

	t.Run("work beyond capacity becomes deficit", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("huge", 5*time.Hour, domain.PriorityMedium),
		}, window(t, 2, 2*time.Hour))

		assert.True(t, dist.Overflow)
		assert.Equal(t, time.Hour, dist.Deficit)

		var placed time.Duration
		for _, piece := range dist.Tasks {
			placed += piece.Duration
		}
		assert.Equal(t, 4*time.Hour, placed)
	})

	t.Run("zero-day window piles everything on day zero", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("a", time.Hour, domain.PriorityHigh),
			task("b", 30*time.Minute, domain.PriorityLow),
		}, window(t, 0, 2*time.Hour))

		require.Len(t, dist.Tasks, 2)
		assert.True(t, dist.Overflow)
		assert.Equal(t, 90*time.Minute, dist.Deficit)
		for _, placed := range dist.Tasks {
			assert.Equal(t, 0, placed.Day)
		}
	})

	t.Run("no tasks", func(t *testing.T) {
		dist := d.Distribute(nil, window(t, 3, time.Hour))
		assert.Empty(t, dist.Tasks)
		assert.False(t, dist.Overflow)
	})

	t.Run("output is ordered by day", func(t *testing.T) {
		dist := d.Distribute([]ScoredTemplate{
			task("a", time.Hour, domain.PriorityLow),
			task("b", time.Hour, domain.PriorityHigh),
			task("c", time.Hour, domain.PriorityMedium),
			task("d", time.Hour, domain.PriorityMedium),
		}, window(t, 4, time.Hour))

		require.Len(t, dist.Tasks, 4)
		for i := 1; i < len(dist.Tasks); i++ {
			assert.LessOrEqual(t, dist.Tasks[i-1].Day, dist.Tasks[i].Day)
		}
		// Priority decides who got the earliest day.
		assert.Equal(t, "b", dist.Tasks[0].Description)
	})
}
