package domain

import (
	"errors"
	"time"
)

var (
	ErrWindowInverted    = errors.New("preparation start is after the event date")
	ErrNonPositiveBudget = errors.New("daily budget must be positive")
)

// PrepWindow is the span of days between a preparation start date and the
// event date, with a per-day time budget.
type PrepWindow struct {
	Start       time.Time
	EventDate   time.Time
	DailyBudget time.Duration
}

// NewPrepWindow validates and builds a preparation window.
func NewPrepWindow(start, eventDate time.Time, dailyBudget time.Duration) (PrepWindow, error) {
	if dailyBudget <= 0 {
		return PrepWindow{}, ErrNonPositiveBudget
	}
	if start.After(eventDate) {
		return PrepWindow{}, ErrWindowInverted
	}
	return PrepWindow{Start: start, EventDate: eventDate, DailyBudget: dailyBudget}, nil
}

// AvailableDays returns ceil(eventDate - start) in days. A same-day or
// past event yields zero days.
func (w PrepWindow) AvailableDays() int {
	span := w.EventDate.Sub(w.Start)
	if span <= 0 {
		return 0
	}
	days := int(span / (24 * time.Hour))
	if span%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Capacity returns the total schedulable time in the window.
func (w PrepWindow) Capacity() time.Duration {
	return time.Duration(w.AvailableDays()) * w.DailyBudget
}
