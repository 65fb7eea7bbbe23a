package services

import (
	"sort"
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// Distribution is the result of placing tasks into a preparation window.
// Overflow is a reported condition, not an error: the schedule is still
// the best effort and Deficit says how much work did not fit.
type Distribution struct {
	Tasks    []domain.SuggestedTask
	Overflow bool
	Deficit  time.Duration
}

// Distributor assigns tasks to days with a greedy, priority-first
// earliest-fit walk over per-day capacity.
type Distributor struct{}

// NewDistributor creates a distributor.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// Distribute places each task on the earliest day with enough remaining
// capacity for its full duration. A task no single day can hold is split
// across the days with the most remaining capacity, earliest first, each
// piece flagged. Work beyond total capacity is reported as Deficit.
//
// A zero-day window puts everything on day 0 and reports the whole
// duration as deficit. The window's budget has already been validated at
// configuration load; Distribute assumes DailyBudget > 0.
func (d *Distributor) Distribute(tasks []ScoredTemplate, window domain.PrepWindow) Distribution {
	days := window.AvailableDays()

	if days == 0 {
		return d.sameDayOverflow(tasks)
	}

	remaining := make([]time.Duration, days)
	for i := range remaining {
		remaining[i] = window.DailyBudget
	}

	sorted := sortByPriority(tasks)

	var dist Distribution
	for _, task := range sorted {
		d.place(task, remaining, &dist)
	}

	dist.Overflow = dist.Deficit > 0
	// Within a day, assignment order is already priority-descending then
	// generation order; a stable sort by day keeps it that way.
	sort.SliceStable(dist.Tasks, func(i, j int) bool {
		return dist.Tasks[i].Day < dist.Tasks[j].Day
	})
	return dist
}

func (d *Distributor) place(task ScoredTemplate, remaining []time.Duration, dist *Distribution) {
	// Earliest day that fits the whole task.
	for day, capacity := range remaining {
		if capacity >= task.Duration {
			remaining[day] -= task.Duration
			dist.Tasks = append(dist.Tasks, suggested(task, day, task.Duration, false))
			return
		}
	}

	// No single day fits: split across the days with the most remaining
	// capacity. The walk continues past two days when needed so a load
	// that fits total capacity never overflows.
	left := task.Duration
	var pieces []domain.SuggestedTask
	for left > 0 {
		day := richestDay(remaining)
		if day < 0 {
			break
		}
		take := remaining[day]
		if take > left {
			take = left
		}
		remaining[day] -= take
		left -= take
		pieces = append(pieces, suggested(task, day, take, true))
	}

	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].Day < pieces[j].Day })
	dist.Tasks = append(dist.Tasks, pieces...)
	dist.Deficit += left
}

// sameDayOverflow handles an event that is today or already past: every
// task lands on day 0 regardless of capacity.
func (d *Distributor) sameDayOverflow(tasks []ScoredTemplate) Distribution {
	dist := Distribution{Overflow: true}
	for _, task := range sortByPriority(tasks) {
		dist.Tasks = append(dist.Tasks, suggested(task, 0, task.Duration, false))
		dist.Deficit += task.Duration
	}
	return dist
}

// sortByPriority orders high before medium before low, preserving the
// generator's order within a tier.
func sortByPriority(tasks []ScoredTemplate) []ScoredTemplate {
	sorted := make([]ScoredTemplate, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Template.Priority.Weight() > sorted[j].Template.Priority.Weight()
	})
	return sorted
}

// richestDay returns the day with the most remaining capacity, earliest
// on ties, or -1 when every day is full.
func richestDay(remaining []time.Duration) int {
	best := -1
	var bestCap time.Duration
	for day, capacity := range remaining {
		if capacity > bestCap {
			best = day
			bestCap = capacity
		}
	}
	return best
}

func suggested(task ScoredTemplate, day int, duration time.Duration, split bool) domain.SuggestedTask {
	return domain.SuggestedTask{
		TemplateID:  task.Template.ID,
		Type:        task.Template.Type,
		Description: task.Template.Description,
		Confidence:  task.Confidence,
		Day:         day,
		Duration:    duration,
		Priority:    task.Template.Priority,
		Split:       split,
	}
}
