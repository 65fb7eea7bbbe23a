package domain

import (
	"github.com/google/uuid"

	shared "github.com/prepara/prepara/internal/shared/domain"
)

// SuggestionGenerated is published after a suggestion request completes.
type SuggestionGenerated struct {
	shared.BaseEvent
	EventTitle string `json:"event_title"`
	EventType  string `json:"event_type"`
	TaskCount  int    `json:"task_count"`
	Overflow   bool   `json:"overflow"`
}

// NewSuggestionGenerated creates a SuggestionGenerated event.
func NewSuggestionGenerated(title string, t EventType, taskCount int, overflow bool) SuggestionGenerated {
	return SuggestionGenerated{
		BaseEvent:  shared.NewBaseEvent(uuid.New(), "suggestion", "suggestion.generated"),
		EventTitle: title,
		EventType:  t.String(),
		TaskCount:  taskCount,
		Overflow:   overflow,
	}
}

// FeedbackRecorded is published after feedback is appended.
type FeedbackRecorded struct {
	shared.BaseEvent
	TemplateID string `json:"template_id"`
	EventType  string `json:"event_type"`
	Accepted   bool   `json:"accepted"`
}

// NewFeedbackRecorded creates a FeedbackRecorded event.
func NewFeedbackRecorded(rec FeedbackRecord) FeedbackRecorded {
	return FeedbackRecorded{
		BaseEvent:  shared.NewBaseEvent(rec.ID, "feedback", "feedback.recorded"),
		TemplateID: rec.TemplateID.String(),
		EventType:  rec.Type.String(),
		Accepted:   rec.Accepted,
	}
}

// WeightsRetrained is published when retraining produces a new snapshot.
type WeightsRetrained struct {
	shared.BaseEvent
	Version   int `json:"version"`
	PairCount int `json:"pair_count"`
}

// NewWeightsRetrained creates a WeightsRetrained event.
func NewWeightsRetrained(snap *WeightSnapshot) WeightsRetrained {
	return WeightsRetrained{
		BaseEvent: shared.NewBaseEvent(uuid.New(), "weights", "weights.retrained"),
		Version:   snap.Version,
		PairCount: len(snap.Weights),
	}
}
