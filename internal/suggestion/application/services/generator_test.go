package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

func TestGenerate(t *testing.T) {
	rs := testRuleset(t)
	g := NewGenerator(DefaultGeneratorConfig())
	empty := domain.EmptySnapshot()

	t.Run("expands templates in order", func(t *testing.T) {
		out := g.Generate(
			[]domain.TypeMatch{{Type: domain.TypeExam, Confidence: 0.8}},
			rs, empty, 1.0,
		)
		require.Len(t, out, 2)
		assert.Equal(t, "Review lecture notes", out[0].Template.Description)
		assert.Equal(t, "Practice problems", out[1].Template.Description)
		assert.InDelta(t, 0.8, out[0].Confidence, 1e-9)
		assert.Equal(t, 60*time.Minute, out[0].Duration)
	})

	t.Run("limits to top-k matches", func(t *testing.T) {
		out := g.Generate(
			[]domain.TypeMatch{
				{Type: domain.TypeExam, Confidence: 0.8},
				{Type: domain.TypeMeeting, Confidence: 0.5},
				{Type: domain.TypeGeneral, Confidence: 0.3},
			},
			rs, empty, 1.0,
		)
		for _, s := range out {
			assert.NotEqual(t, domain.TypeGeneral, s.Template.Type)
		}
	})

	t.Run("snapshot weight overrides static weight", func(t *testing.T) {
		exam, ok := rs.RuleFor(domain.TypeExam)
		require.True(t, ok)
		first := exam.Templates[0]

		snap := &domain.WeightSnapshot{
			Version: 1,
			Weights: map[domain.WeightKey]float64{
				{TemplateID: first.ID, Type: domain.TypeExam}: 0.5,
			},
		}
		out := g.Generate(
			[]domain.TypeMatch{{Type: domain.TypeExam, Confidence: 0.8}},
			rs, snap, 1.0,
		)
		require.Len(t, out, 2)
		assert.InDelta(t, 0.4, out[0].Confidence, 1e-9)
		// Second template has no override; static weight 1.0 applies.
		assert.InDelta(t, 0.8, out[1].Confidence, 1e-9)
	})

	t.Run("complexity scales durations in 5 minute steps", func(t *testing.T) {
		out := g.Generate(
			[]domain.TypeMatch{{Type: domain.TypeExam, Confidence: 0.8}},
			rs, empty, 1.5,
		)
		require.Len(t, out, 2)
		assert.Equal(t, 90*time.Minute, out[0].Duration)
		assert.Equal(t, 135*time.Minute, out[1].Duration)
	})

	t.Run("unregistered match type is skipped", func(t *testing.T) {
		out := g.Generate(
			[]domain.TypeMatch{{Type: domain.TypeTravel, Confidence: 0.8}},
			rs, empty, 1.0,
		)
		assert.Empty(t, out)
	})
}

func TestGenerateDeduplicatesBySignature(t *testing.T) {
	rs, err := rules.Parse([]byte(`
types:
  - name: exam
    keywords: [{text: exam}]
    templates:
      - description: Review notes
        duration_minutes: 60
  - name: meeting
    keywords: [{text: meeting}]
    templates:
      - description: review  Notes
        duration_minutes: 30
  - name: general
    templates:
      - description: Prepare
        duration_minutes: 15
`))
	require.NoError(t, err)

	g := NewGenerator(GeneratorConfig{TopK: 2})
	out := g.Generate(
		[]domain.TypeMatch{
			{Type: domain.TypeExam, Confidence: 0.9},
			{Type: domain.TypeMeeting, Confidence: 0.4},
		},
		rs, domain.EmptySnapshot(), 1.0,
	)

	require.Len(t, out, 1)
	assert.Equal(t, domain.TypeExam, out[0].Template.Type)
	assert.InDelta(t, 0.9, out[0].Confidence, 1e-9)
}

func TestScaleDuration(t *testing.T) {
	tests := []struct {
		name       string
		d          time.Duration
		complexity float64
		want       time.Duration
	}{
		{"identity", 60 * time.Minute, 1.0, 60 * time.Minute},
		{"scaled and rounded", 25 * time.Minute, 1.3, 35 * time.Minute},
		{"rounds down", 20 * time.Minute, 1.1, 20 * time.Minute},
		{"floor of five minutes", 5 * time.Minute, 0.3, 5 * time.Minute},
		{"zero complexity treated as one", 30 * time.Minute, 0, 30 * time.Minute},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, scaleDuration(tt.d, tt.complexity))
		})
	}
}
