// Package domain defines the types the suggestion pipeline operates on:
// events under preparation, classified type matches, task templates,
// generated tasks, preparation windows, and feedback history.
package domain

import "time"

// Event is the read-only input to classification. It is owned by the
// caller; the engine never persists or mutates it.
type Event struct {
	Title       string
	Description string
	Location    string
	StartsAt    time.Time
	Duration    time.Duration
}

// Text returns the combined free text used for classification.
func (e Event) Text() string {
	return e.Title + " " + e.Description + " " + e.Location
}

// TypeMatch is one classification result, ranked by confidence.
type TypeMatch struct {
	Type       EventType
	Confidence float64
}
