package domain

import (
	"time"

	"github.com/google/uuid"
)

// SuggestedTask is one generated preparation task, placed on a day offset
// from the preparation start. Transient: the caller decides whether to
// persist an accepted suggestion as a durable task.
type SuggestedTask struct {
	TemplateID  uuid.UUID
	Type        EventType
	Description string
	Confidence  float64
	Day         int // offset in [0, availableDays)
	Duration    time.Duration
	Priority    Priority
	Split       bool // true when the task was divided across days
}
