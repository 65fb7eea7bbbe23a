package domain

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackRecord captures one accept/reject decision on a suggested task.
// Append-only; consumed in aggregate by retraining.
type FeedbackRecord struct {
	ID         uuid.UUID
	TemplateID uuid.UUID
	Type       EventType
	Accepted   bool
	RecordedAt time.Time
}

// NewFeedbackRecord creates a feedback record stamped with the current time.
func NewFeedbackRecord(templateID uuid.UUID, t EventType, accepted bool) FeedbackRecord {
	return FeedbackRecord{
		ID:         uuid.New(),
		TemplateID: templateID,
		Type:       t,
		Accepted:   accepted,
		RecordedAt: time.Now().UTC(),
	}
}
