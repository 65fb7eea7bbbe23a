package queries

import (
	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// ClassifyEventQuery asks only for the type classification of an event,
// without generating a schedule.
type ClassifyEventQuery struct {
	Title       string
	Description string
	Location    string
}

// ClassifyEventResult carries the ranked matches and the complexity read.
type ClassifyEventResult struct {
	Matches    []domain.TypeMatch
	Complexity services.Complexity
}

// ClassifyEventHandler handles the ClassifyEventQuery.
type ClassifyEventHandler struct {
	classifier *services.Classifier
	rules      *rules.Store
}

// NewClassifyEventHandler creates a new ClassifyEventHandler.
func NewClassifyEventHandler(classifier *services.Classifier, store *rules.Store) *ClassifyEventHandler {
	return &ClassifyEventHandler{classifier: classifier, rules: store}
}

// Handle classifies the event against the current ruleset.
func (h *ClassifyEventHandler) Handle(q ClassifyEventQuery) ClassifyEventResult {
	ev := domain.Event{
		Title:       q.Title,
		Description: q.Description,
		Location:    q.Location,
	}
	return ClassifyEventResult{
		Matches:    h.classifier.Classify(h.rules.Current(), ev),
		Complexity: services.AnalyzeComplexity(ev),
	}
}
