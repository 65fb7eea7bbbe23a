// Package persistence implements the suggestion repositories on SQLite
// (local mode) and Postgres (worker mode).
package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

type weightEntry struct {
	TemplateID string  `json:"template_id"`
	EventType  string  `json:"event_type"`
	Weight     float64 `json:"weight"`
}

type snapshotDocument struct {
	Version   int           `json:"version"`
	TrainedAt time.Time     `json:"trained_at"`
	Weights   []weightEntry `json:"weights"`
}

func encodeWeights(weights map[domain.WeightKey]float64) ([]byte, error) {
	entries := make([]weightEntry, 0, len(weights))
	for key, weight := range weights {
		entries = append(entries, weightEntry{
			TemplateID: key.TemplateID.String(),
			EventType:  key.Type.String(),
			Weight:     weight,
		})
	}
	return json.Marshal(entries)
}

func decodeWeights(data []byte) (map[domain.WeightKey]float64, error) {
	var entries []weightEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}
	weights := make(map[domain.WeightKey]float64, len(entries))
	for _, entry := range entries {
		templateID, err := uuid.Parse(entry.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("invalid template id %q: %w", entry.TemplateID, err)
		}
		eventType, err := domain.ParseEventType(entry.EventType)
		if err != nil {
			return nil, fmt.Errorf("invalid event type %q: %w", entry.EventType, err)
		}
		weights[domain.WeightKey{TemplateID: templateID, Type: eventType}] = entry.Weight
	}
	return weights, nil
}

// EncodeSnapshot serializes a full snapshot, weights included. Used by
// the Redis cache, which stores whole documents rather than rows.
func EncodeSnapshot(snap *domain.WeightSnapshot) ([]byte, error) {
	entries := make([]weightEntry, 0, len(snap.Weights))
	for key, weight := range snap.Weights {
		entries = append(entries, weightEntry{
			TemplateID: key.TemplateID.String(),
			EventType:  key.Type.String(),
			Weight:     weight,
		})
	}
	return json.Marshal(snapshotDocument{
		Version:   snap.Version,
		TrainedAt: snap.TrainedAt,
		Weights:   entries,
	})
}

// DecodeSnapshot is the inverse of EncodeSnapshot.
func DecodeSnapshot(data []byte) (*domain.WeightSnapshot, error) {
	var doc snapshotDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	weights := make(map[domain.WeightKey]float64, len(doc.Weights))
	for _, entry := range doc.Weights {
		templateID, err := uuid.Parse(entry.TemplateID)
		if err != nil {
			return nil, fmt.Errorf("invalid template id %q: %w", entry.TemplateID, err)
		}
		eventType, err := domain.ParseEventType(entry.EventType)
		if err != nil {
			return nil, fmt.Errorf("invalid event type %q: %w", entry.EventType, err)
		}
		weights[domain.WeightKey{TemplateID: templateID, Type: eventType}] = entry.Weight
	}
	return &domain.WeightSnapshot{
		Version:   doc.Version,
		TrainedAt: doc.TrainedAt,
		Weights:   weights,
	}, nil
}
