package services

import (
	"sort"
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// GeneratorConfig tunes template expansion.
type GeneratorConfig struct {
	// TopK limits expansion to the K highest-confidence matches so
	// low-relevance types don't dilute the suggestions.
	TopK int
}

// DefaultGeneratorConfig returns the stock expansion settings.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{TopK: 2}
}

// ScoredTemplate is one expanded template with its resolved confidence
// and complexity-scaled duration.
type ScoredTemplate struct {
	Template   domain.TaskTemplate
	Confidence float64
	Duration   time.Duration
}

// Generator expands ranked type matches into scored task templates.
type Generator struct {
	cfg GeneratorConfig
}

// NewGenerator creates a generator.
func NewGenerator(cfg GeneratorConfig) *Generator {
	return &Generator{cfg: cfg}
}

// Generate expands the top-k matches into templates. Resolved confidence
// is match confidence times the template weight (snapshot override wins
// over the static weight), clamped to [0, 1]. Templates sharing a
// description signature across types keep only the highest-confidence
// instance. Output is grouped by match confidence descending, then by
// the template's ordering hint.
func (g *Generator) Generate(
	matches []domain.TypeMatch,
	rs *rules.Ruleset,
	weights *domain.WeightSnapshot,
	complexity float64,
) []ScoredTemplate {
	topK := g.cfg.TopK
	if topK < 1 {
		topK = 1
	}
	if topK > len(matches) {
		topK = len(matches)
	}

	var out []ScoredTemplate
	bySignature := map[string]int{}

	for _, match := range matches[:topK] {
		rule, ok := rs.RuleFor(match.Type)
		if !ok {
			continue
		}
		for _, tmpl := range orderedTemplates(rule.Templates) {
			weight := tmpl.Weight
			if learned, ok := weights.Lookup(tmpl.ID, match.Type); ok {
				weight = learned
			}

			scored := ScoredTemplate{
				Template:   tmpl,
				Confidence: clamp01(match.Confidence * weight),
				Duration:   scaleDuration(tmpl.Duration, complexity),
			}

			sig := tmpl.Signature()
			if at, seen := bySignature[sig]; seen {
				if scored.Confidence > out[at].Confidence {
					out[at] = scored
				}
				continue
			}
			bySignature[sig] = len(out)
			out = append(out, scored)
		}
	}

	return out
}

// orderedTemplates returns the templates sorted by their ordering hint,
// stable for equal hints.
func orderedTemplates(templates []domain.TaskTemplate) []domain.TaskTemplate {
	sorted := make([]domain.TaskTemplate, len(templates))
	copy(sorted, templates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Order < sorted[j].Order
	})
	return sorted
}

// scaleDuration applies the complexity multiplier, rounded to 5 minutes.
func scaleDuration(d time.Duration, complexity float64) time.Duration {
	if complexity <= 0 {
		complexity = 1
	}
	scaled := time.Duration(float64(d) * complexity)
	step := 5 * time.Minute
	rounded := (scaled + step/2) / step * step
	if rounded < step {
		rounded = step
	}
	return rounded
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
