package domain

import (
	"time"

	"github.com/google/uuid"
)

// WeightKey identifies a learned weight for a (template, event type) pair.
type WeightKey struct {
	TemplateID uuid.UUID
	Type       EventType
}

// WeightSnapshot is an immutable, versioned view of the learned weights.
// Retraining publishes a new snapshot; readers observe either the old or
// the new one, never a mix.
type WeightSnapshot struct {
	Version   int
	TrainedAt time.Time
	Weights   map[WeightKey]float64
}

// EmptySnapshot returns the zero-version snapshot with no overrides.
func EmptySnapshot() *WeightSnapshot {
	return &WeightSnapshot{Version: 0, Weights: map[WeightKey]float64{}}
}

// Lookup returns the learned weight for the pair, if present.
func (s *WeightSnapshot) Lookup(templateID uuid.UUID, t EventType) (float64, bool) {
	if s == nil || s.Weights == nil {
		return 0, false
	}
	w, ok := s.Weights[WeightKey{TemplateID: templateID, Type: t}]
	return w, ok
}

// Next builds the successor snapshot with the given weights.
func (s *WeightSnapshot) Next(weights map[WeightKey]float64, trainedAt time.Time) *WeightSnapshot {
	version := 1
	if s != nil {
		version = s.Version + 1
	}
	return &WeightSnapshot{Version: version, TrainedAt: trainedAt, Weights: weights}
}
