package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/suggestion/application/services"
	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

type stubSnapshotRepo struct {
	snap *domain.WeightSnapshot
}

func (r *stubSnapshotRepo) Save(ctx context.Context, snap *domain.WeightSnapshot) error {
	r.snap = snap
	return nil
}

func (r *stubSnapshotRepo) Latest(ctx context.Context) (*domain.WeightSnapshot, error) {
	if r.snap == nil {
		return nil, domain.ErrNoSnapshot
	}
	return r.snap, nil
}

func TestGetSnapshotHandler(t *testing.T) {
	t.Run("returns the stored snapshot", func(t *testing.T) {
		want := &domain.WeightSnapshot{Version: 4, TrainedAt: time.Now(), Weights: map[domain.WeightKey]float64{}}
		handler := NewGetSnapshotHandler(&stubSnapshotRepo{snap: want})

		got, err := handler.Handle(context.Background())
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("empty store yields the zero snapshot", func(t *testing.T) {
		handler := NewGetSnapshotHandler(&stubSnapshotRepo{})
		got, err := handler.Handle(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, got.Version)
		assert.Empty(t, got.Weights)
	})
}

func TestClassifyEventHandler(t *testing.T) {
	classifier := services.NewClassifier(services.ClassifierConfig{
		MinConfidence:     0.1,
		GeneralConfidence: 0.3,
		TitleBoost:        2.0,
	})
	handler := NewClassifyEventHandler(classifier, rules.NewStore(rules.Defaults()))

	t.Run("ranks matching types", func(t *testing.T) {
		result := handler.Handle(ClassifyEventQuery{Title: "Final chemistry exam"})
		require.NotEmpty(t, result.Matches)
		assert.Equal(t, domain.TypeExam, result.Matches[0].Type)
		assert.NotEmpty(t, result.Complexity.Band)
	})

	t.Run("falls back to general", func(t *testing.T) {
		result := handler.Handle(ClassifyEventQuery{Title: "Untitled"})
		require.Len(t, result.Matches, 1)
		assert.Equal(t, domain.TypeGeneral, result.Matches[0].Type)
		assert.Equal(t, 0.3, result.Matches[0].Confidence)
	})
}

func TestListRulesHandler(t *testing.T) {
	handler := NewListRulesHandler(rules.NewStore(rules.Defaults()))

	summaries := handler.Handle()
	require.NotEmpty(t, summaries)

	byType := map[string]RuleSummary{}
	for _, s := range summaries {
		byType[s.Type] = s
	}

	exam, ok := byType["exam"]
	require.True(t, ok)
	assert.Greater(t, exam.Keywords, 0)
	assert.Greater(t, exam.Templates, 0)

	general, ok := byType["general"]
	require.True(t, ok)
	assert.Equal(t, 0, general.Keywords)
	assert.Greater(t, general.Templates, 0)
}
