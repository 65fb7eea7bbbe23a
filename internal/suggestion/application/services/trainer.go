package services

import (
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// TrainerConfig tunes weight retraining.
type TrainerConfig struct {
	// Smoothing is the EMA factor: new = (1-s)*prior + s*acceptanceRate.
	// Keeps a handful of recent records from swinging a weight to 0 or 1.
	Smoothing float64
	// MinObservations is the count below which a pair keeps its prior weight.
	MinObservations int
	// Window bounds how far back feedback is considered. Zero means unbounded.
	Window time.Duration
}

// DefaultTrainerConfig returns the stock retraining settings.
func DefaultTrainerConfig() TrainerConfig {
	return TrainerConfig{
		Smoothing:       0.3,
		MinObservations: 5,
		Window:          90 * 24 * time.Hour,
	}
}

// Trainer recomputes per-(template, event type) weights from feedback
// history. It never mutates the prior snapshot: a changed outcome is a
// new snapshot, an unchanged one is the prior itself.
type Trainer struct {
	cfg TrainerConfig
}

// NewTrainer creates a trainer.
func NewTrainer(cfg TrainerConfig) *Trainer {
	return &Trainer{cfg: cfg}
}

type pairStats struct {
	total    int
	accepted int
}

// Retrain blends the trailing acceptance rate of each pair into its
// prior weight. Pairs with fewer than MinObservations records are left
// untouched; no qualifying pair (or an empty history) returns the prior
// snapshot unchanged.
func (t *Trainer) Retrain(
	now time.Time,
	prior *domain.WeightSnapshot,
	rs *rules.Ruleset,
	history []domain.FeedbackRecord,
) *domain.WeightSnapshot {
	if prior == nil {
		prior = domain.EmptySnapshot()
	}
	if len(history) == 0 {
		return prior
	}

	cutoff := time.Time{}
	if t.cfg.Window > 0 {
		cutoff = now.Add(-t.cfg.Window)
	}

	stats := map[domain.WeightKey]*pairStats{}
	for _, rec := range history {
		if !cutoff.IsZero() && rec.RecordedAt.Before(cutoff) {
			continue
		}
		key := domain.WeightKey{TemplateID: rec.TemplateID, Type: rec.Type}
		s := stats[key]
		if s == nil {
			s = &pairStats{}
			stats[key] = s
		}
		s.total++
		if rec.Accepted {
			s.accepted++
		}
	}

	weights := make(map[domain.WeightKey]float64, len(prior.Weights))
	for k, v := range prior.Weights {
		weights[k] = v
	}

	updated := false
	for key, s := range stats {
		if s.total < t.cfg.MinObservations {
			continue
		}

		priorWeight, ok := prior.Weights[key]
		if !ok {
			tmpl, found := rs.TemplateByID(key.TemplateID)
			if !found {
				// Feedback for a template no longer registered.
				continue
			}
			priorWeight = tmpl.Weight
		}

		rate := float64(s.accepted) / float64(s.total)
		weights[key] = clamp01((1-t.cfg.Smoothing)*priorWeight + t.cfg.Smoothing*rate)
		updated = true
	}

	if !updated {
		return prior
	}
	return prior.Next(weights, now.UTC())
}
