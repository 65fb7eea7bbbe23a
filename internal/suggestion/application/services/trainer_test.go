package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

func feedbackAt(templateID uuid.UUID, t domain.EventType, accepted bool, at time.Time) domain.FeedbackRecord {
	return domain.FeedbackRecord{
		ID:         uuid.New(),
		TemplateID: templateID,
		Type:       t,
		Accepted:   accepted,
		RecordedAt: at,
	}
}

func repeatFeedback(templateID uuid.UUID, t domain.EventType, accepted, rejected int, at time.Time) []domain.FeedbackRecord {
	var out []domain.FeedbackRecord
	for i := 0; i < accepted; i++ {
		out = append(out, feedbackAt(templateID, t, true, at))
	}
	for i := 0; i < rejected; i++ {
		out = append(out, feedbackAt(templateID, t, false, at))
	}
	return out
}

func TestRetrain(t *testing.T) {
	rs := testRuleset(t)
	trainer := NewTrainer(DefaultTrainerConfig())
	now := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)
	recent := now.Add(-24 * time.Hour)

	exam, ok := rs.RuleFor(domain.TypeExam)
	require.True(t, ok)
	templateID := exam.Templates[0].ID
	key := domain.WeightKey{TemplateID: templateID, Type: domain.TypeExam}

	t.Run("empty history returns the prior unchanged", func(t *testing.T) {
		prior := domain.EmptySnapshot()
		next := trainer.Retrain(now, prior, rs, nil)
		assert.Same(t, prior, next)
	})

	t.Run("below observation floor returns the prior unchanged", func(t *testing.T) {
		prior := domain.EmptySnapshot()
		history := repeatFeedback(templateID, domain.TypeExam, 3, 1, recent)
		next := trainer.Retrain(now, prior, rs, history)
		assert.Same(t, prior, next)
	})

	t.Run("blends acceptance rate into the prior weight", func(t *testing.T) {
		prior := &domain.WeightSnapshot{
			Version:   2,
			TrainedAt: recent,
			Weights:   map[domain.WeightKey]float64{key: 0.5},
		}
		history := repeatFeedback(templateID, domain.TypeExam, 4, 1, recent)

		next := trainer.Retrain(now, prior, rs, history)
		require.NotSame(t, prior, next)
		assert.Equal(t, 3, next.Version)
		assert.Equal(t, now.UTC(), next.TrainedAt)
		// 0.7*0.5 + 0.3*0.8
		assert.InDelta(t, 0.59, next.Weights[key], 1e-9)
		// Prior snapshot is untouched.
		assert.Equal(t, 0.5, prior.Weights[key])
	})

	t.Run("missing prior weight starts from the static template weight", func(t *testing.T) {
		history := repeatFeedback(templateID, domain.TypeExam, 0, 5, recent)
		next := trainer.Retrain(now, domain.EmptySnapshot(), rs, history)
		require.Equal(t, 1, next.Version)
		// 0.7*1.0 + 0.3*0.0
		assert.InDelta(t, 0.7, next.Weights[key], 1e-9)
	})

	t.Run("feedback for an unregistered template is skipped", func(t *testing.T) {
		prior := domain.EmptySnapshot()
		unknown := uuid.New()
		history := repeatFeedback(unknown, domain.TypeExam, 5, 0, recent)
		next := trainer.Retrain(now, prior, rs, history)
		assert.Same(t, prior, next)
	})

	t.Run("records outside the window are ignored", func(t *testing.T) {
		prior := domain.EmptySnapshot()
		stale := now.Add(-91 * 24 * time.Hour)
		history := append(
			repeatFeedback(templateID, domain.TypeExam, 3, 0, stale),
			repeatFeedback(templateID, domain.TypeExam, 2, 0, recent)...,
		)
		// Only two in-window records, below the floor of five.
		next := trainer.Retrain(now, prior, rs, history)
		assert.Same(t, prior, next)
	})

	t.Run("untouched pairs keep their prior weights", func(t *testing.T) {
		otherKey := domain.WeightKey{TemplateID: exam.Templates[1].ID, Type: domain.TypeExam}
		prior := &domain.WeightSnapshot{
			Version: 1,
			Weights: map[domain.WeightKey]float64{otherKey: 0.42},
		}
		history := repeatFeedback(templateID, domain.TypeExam, 5, 0, recent)

		next := trainer.Retrain(now, prior, rs, history)
		require.NotSame(t, prior, next)
		assert.Equal(t, 0.42, next.Weights[otherKey])
	})

	t.Run("nil prior is treated as empty", func(t *testing.T) {
		history := repeatFeedback(templateID, domain.TypeExam, 5, 0, recent)
		next := trainer.Retrain(now, nil, rs, history)
		require.NotNil(t, next)
		assert.Equal(t, 1, next.Version)
	})
}

func TestRetrainIdempotentOnSameHistory(t *testing.T) {
	rs := testRuleset(t)
	trainer := NewTrainer(DefaultTrainerConfig())
	now := time.Date(2026, 8, 31, 3, 0, 0, 0, time.UTC)

	exam, _ := rs.RuleFor(domain.TypeExam)
	history := repeatFeedback(exam.Templates[0].ID, domain.TypeExam, 6, 2, now.Add(-time.Hour))

	a := trainer.Retrain(now, domain.EmptySnapshot(), rs, history)
	b := trainer.Retrain(now, domain.EmptySnapshot(), rs, history)
	assert.Equal(t, a.Weights, b.Weights)
}
