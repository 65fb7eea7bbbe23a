package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// SnapshotProvider serves the current weight snapshot. Implemented by
// the snapshot repository and by the Redis cache in front of it.
type SnapshotProvider interface {
	Latest(ctx context.Context) (*domain.WeightSnapshot, error)
}

// Suggestion is the full result of one suggest request.
type Suggestion struct {
	Matches    []domain.TypeMatch
	Complexity Complexity
	Tasks      []domain.SuggestedTask
	Overflow   bool
	Deficit    time.Duration
}

// Suggester composes classification, template generation, and day
// distribution against one immutable (ruleset, weights) pair per call.
type Suggester struct {
	classifier  *Classifier
	generator   *Generator
	distributor *Distributor
	rules       *rules.Store
	weights     SnapshotProvider
	logger      *slog.Logger
}

// NewSuggester wires the pipeline.
func NewSuggester(
	classifier *Classifier,
	generator *Generator,
	distributor *Distributor,
	rulesStore *rules.Store,
	weights SnapshotProvider,
	logger *slog.Logger,
) *Suggester {
	if logger == nil {
		logger = slog.Default()
	}
	return &Suggester{
		classifier:  classifier,
		generator:   generator,
		distributor: distributor,
		rules:       rulesStore,
		weights:     weights,
		logger:      logger,
	}
}

// Suggest runs the pipeline for one event. The ruleset and weight
// snapshot are read once up front, so a concurrent retrain or ruleset
// reload never leaves a request observing a mix of old and new state.
func (s *Suggester) Suggest(ctx context.Context, ev domain.Event, window domain.PrepWindow) (*Suggestion, error) {
	rs := s.rules.Current()

	snap, err := s.weights.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSnapshot) {
			s.logger.Warn("weight snapshot unavailable, using static weights", "error", err)
		}
		snap = domain.EmptySnapshot()
	}

	matches := s.classifier.Classify(rs, ev)
	complexity := AnalyzeComplexity(ev)
	scored := s.generator.Generate(matches, rs, snap, complexity.Score)
	dist := s.distributor.Distribute(scored, window)

	s.logger.Debug("suggestion generated",
		"event_type", matches[0].Type.String(),
		"confidence", matches[0].Confidence,
		"tasks", len(dist.Tasks),
		"overflow", dist.Overflow,
	)

	return &Suggestion{
		Matches:    matches,
		Complexity: complexity,
		Tasks:      dist.Tasks,
		Overflow:   dist.Overflow,
		Deficit:    dist.Deficit,
	}, nil
}
