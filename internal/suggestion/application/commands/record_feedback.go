package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/prepara/prepara/internal/shared/infrastructure/eventbus"
	"github.com/prepara/prepara/internal/suggestion/domain"
)

// RecordFeedbackCommand captures one accept/reject decision.
type RecordFeedbackCommand struct {
	TemplateID uuid.UUID
	EventType  string
	Accepted   bool
}

// RecordFeedbackResult contains the stored record's ID.
type RecordFeedbackResult struct {
	FeedbackID uuid.UUID
}

// RecordFeedbackHandler handles the RecordFeedbackCommand.
type RecordFeedbackHandler struct {
	feedback  domain.FeedbackRepository
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewRecordFeedbackHandler creates a new RecordFeedbackHandler.
func NewRecordFeedbackHandler(feedback domain.FeedbackRepository, publisher eventbus.Publisher, logger *slog.Logger) *RecordFeedbackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordFeedbackHandler{feedback: feedback, publisher: publisher, logger: logger}
}

// Handle appends the record and publishes feedback.recorded.
func (h *RecordFeedbackHandler) Handle(ctx context.Context, cmd RecordFeedbackCommand) (*RecordFeedbackResult, error) {
	eventType, err := domain.ParseEventType(cmd.EventType)
	if err != nil {
		return nil, err
	}

	rec := domain.NewFeedbackRecord(cmd.TemplateID, eventType, cmd.Accepted)
	if err := h.feedback.Append(ctx, rec); err != nil {
		return nil, err
	}

	if err := eventbus.PublishDomainEvent(ctx, h.publisher, domain.NewFeedbackRecorded(rec)); err != nil {
		h.logger.Warn("failed to publish feedback.recorded", "error", err)
	}

	return &RecordFeedbackResult{FeedbackID: rec.ID}, nil
}
