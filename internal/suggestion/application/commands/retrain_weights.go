package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/prepara/prepara/internal/shared/infrastructure/eventbus"
	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// SnapshotCache receives freshly trained snapshots so request-time reads
// skip the database. Optional.
type SnapshotCache interface {
	Put(ctx context.Context, snap *domain.WeightSnapshot) error
}

// RetrainWeightsCommand triggers one retraining pass.
type RetrainWeightsCommand struct {
	// Now anchors the trailing window; zero means time.Now.
	Now time.Time
}

// RetrainWeightsResult reports what the pass produced.
type RetrainWeightsResult struct {
	Version int
	Pairs   int
	Updated bool
}

// RetrainWeightsHandler handles the RetrainWeightsCommand.
type RetrainWeightsHandler struct {
	trainer   *services.Trainer
	rules     *rules.Store
	snapshots domain.SnapshotRepository
	feedback  domain.FeedbackRepository
	cache     SnapshotCache
	publisher eventbus.Publisher
	window    time.Duration
	logger    *slog.Logger
}

// NewRetrainWeightsHandler creates a new RetrainWeightsHandler. cache
// may be nil.
func NewRetrainWeightsHandler(
	trainer *services.Trainer,
	rulesStore *rules.Store,
	snapshots domain.SnapshotRepository,
	feedback domain.FeedbackRepository,
	cache SnapshotCache,
	publisher eventbus.Publisher,
	window time.Duration,
	logger *slog.Logger,
) *RetrainWeightsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &RetrainWeightsHandler{
		trainer:   trainer,
		rules:     rulesStore,
		snapshots: snapshots,
		feedback:  feedback,
		cache:     cache,
		publisher: publisher,
		window:    window,
		logger:    logger,
	}
}

// Handle loads the prior snapshot and trailing feedback, retrains, and
// publishes the new snapshot when anything changed. An unchanged
// outcome (no feedback, or nothing above the observation floor) is a
// no-op, not an error.
func (h *RetrainWeightsHandler) Handle(ctx context.Context, cmd RetrainWeightsCommand) (*RetrainWeightsResult, error) {
	now := cmd.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	prior, err := h.snapshots.Latest(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoSnapshot) {
			return nil, err
		}
		prior = domain.EmptySnapshot()
	}

	since := time.Time{}
	if h.window > 0 {
		since = now.Add(-h.window)
	}
	history, err := h.feedback.ListSince(ctx, since)
	if err != nil {
		return nil, err
	}

	next := h.trainer.Retrain(now, prior, h.rules.Current(), history)
	if next == prior {
		h.logger.Info("retraining skipped, no qualifying feedback",
			"records", len(history),
			"version", prior.Version,
		)
		return &RetrainWeightsResult{Version: prior.Version, Pairs: len(prior.Weights)}, nil
	}

	if err := h.snapshots.Save(ctx, next); err != nil {
		return nil, err
	}
	if h.cache != nil {
		if err := h.cache.Put(ctx, next); err != nil {
			h.logger.Warn("failed to cache weight snapshot", "error", err)
		}
	}

	if err := eventbus.PublishDomainEvent(ctx, h.publisher, domain.NewWeightsRetrained(next)); err != nil {
		h.logger.Warn("failed to publish weights.retrained", "error", err)
	}

	h.logger.Info("weights retrained",
		"version", next.Version,
		"pairs", len(next.Weights),
		"records", len(history),
	)
	return &RetrainWeightsResult{Version: next.Version, Pairs: len(next.Weights), Updated: true}, nil
}
