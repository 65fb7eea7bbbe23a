// Package commands holds the write-side application handlers.
package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/prepara/prepara/internal/shared/infrastructure/eventbus"
	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/domain"
)

// SuggestTasksCommand describes one suggestion request.
type SuggestTasksCommand struct {
	Title         string
	Description   string
	Location      string
	EventAt       time.Time
	EventDuration time.Duration
	PrepStart     time.Time
	DailyBudget   time.Duration
}

// SuggestTasksResult carries the generated schedule back to the caller.
type SuggestTasksResult struct {
	Suggestion *services.Suggestion
	Window     domain.PrepWindow
}

// SuggestTasksHandler handles the SuggestTasksCommand.
type SuggestTasksHandler struct {
	suggester *services.Suggester
	publisher eventbus.Publisher
	logger    *slog.Logger
}

// NewSuggestTasksHandler creates a new SuggestTasksHandler.
func NewSuggestTasksHandler(suggester *services.Suggester, publisher eventbus.Publisher, logger *slog.Logger) *SuggestTasksHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SuggestTasksHandler{suggester: suggester, publisher: publisher, logger: logger}
}

// Handle validates the window, runs the pipeline, and publishes a
// suggestion.generated event. The event is best-effort: a publish
// failure is logged, not returned, because the schedule itself is still
// valid output.
func (h *SuggestTasksHandler) Handle(ctx context.Context, cmd SuggestTasksCommand) (*SuggestTasksResult, error) {
	window, err := domain.NewPrepWindow(cmd.PrepStart, cmd.EventAt, cmd.DailyBudget)
	if err != nil {
		return nil, err
	}

	ev := domain.Event{
		Title:       cmd.Title,
		Description: cmd.Description,
		Location:    cmd.Location,
		StartsAt:    cmd.EventAt,
		Duration:    cmd.EventDuration,
	}

	suggestion, err := h.suggester.Suggest(ctx, ev, window)
	if err != nil {
		return nil, err
	}

	event := domain.NewSuggestionGenerated(cmd.Title, suggestion.Matches[0].Type, len(suggestion.Tasks), suggestion.Overflow)
	if err := eventbus.PublishDomainEvent(ctx, h.publisher, event); err != nil {
		h.logger.Warn("failed to publish suggestion.generated", "error", err)
	}

	return &SuggestTasksResult{Suggestion: suggestion, Window: window}, nil
}
