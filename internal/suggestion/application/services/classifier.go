// Package services implements the suggestion pipeline: classification,
// template generation, day distribution, and weight retraining.
package services

import (
	"sort"
	"strings"
	"unicode"

	"github.com/prepara/prepara/internal/suggestion/domain"
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// ClassifierConfig tunes the keyword classifier. The values are tuning
// constants, not load-bearing algorithmic choices.
type ClassifierConfig struct {
	// MinConfidence is the score below which the general fallback kicks in.
	MinConfidence float64
	// GeneralConfidence is the fixed confidence of the general fallback match.
	GeneralConfidence float64
	// TitleBoost multiplies keyword hits found in the event title.
	TitleBoost float64
}

// DefaultClassifierConfig returns the stock thresholds.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		MinConfidence:     0.1,
		GeneralConfidence: 0.3,
		TitleBoost:        2.0,
	}
}

// maxConfidence caps every reported confidence; a keyword match is never
// certainty.
const maxConfidence = 0.95

// Classifier maps event text to a ranked set of event-type matches.
// Pure: same ruleset and input always produce the same output.
type Classifier struct {
	cfg ClassifierConfig
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg ClassifierConfig) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scores every registered type against the event text and
// returns matches ordered by confidence descending, ties broken by the
// type's registration order. It never returns an empty slice: when no
// type clears MinConfidence the single general fallback is returned.
func (c *Classifier) Classify(rs *rules.Ruleset, ev domain.Event) []domain.TypeMatch {
	title := newTokenSet(ev.Title)
	body := newTokenSet(ev.Description + " " + ev.Location)

	matches := make([]domain.TypeMatch, 0, len(rs.Types))
	for _, rule := range rs.Types {
		if rule.Type == domain.TypeGeneral || len(rule.Keywords) == 0 {
			continue
		}
		score := c.scoreRule(rule, title, body)
		if score > 0 {
			matches = append(matches, domain.TypeMatch{Type: rule.Type, Confidence: score})
		}
	}

	// Stable sort preserves registration order for equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Confidence > matches[j].Confidence
	})

	if len(matches) == 0 || matches[0].Confidence < c.cfg.MinConfidence {
		return []domain.TypeMatch{{Type: domain.TypeGeneral, Confidence: c.cfg.GeneralConfidence}}
	}
	return matches
}

// scoreRule sums specificity weights of matched keywords, boosting title
// hits, and normalizes against the maximum attainable score so the
// result lands in [0, 1].
func (c *Classifier) scoreRule(rule rules.TypeRule, title, body tokenSet) float64 {
	var raw, denom float64
	for _, kw := range rule.Keywords {
		denom += kw.Weight * c.cfg.TitleBoost
		switch {
		case title.matches(kw.Text):
			raw += kw.Weight * c.cfg.TitleBoost
		case body.matches(kw.Text):
			raw += kw.Weight
		}
	}
	if denom == 0 {
		return 0
	}
	score := raw / denom
	if score > maxConfidence {
		score = maxConfidence
	}
	return score
}

var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "at": true, "for": true,
	"in": true, "of": true, "on": true, "or": true, "the": true,
	"to": true, "with": true,
}

// tokenSet holds the normalized tokens and stems of one text field,
// plus the raw normalized text for phrase matching.
type tokenSet struct {
	text   string
	tokens map[string]bool
	stems  map[string]bool
}

func newTokenSet(text string) tokenSet {
	normalized := strings.ToLower(text)
	ts := tokenSet{
		text:   normalized,
		tokens: map[string]bool{},
		stems:  map[string]bool{},
	}
	for _, tok := range strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if stopwords[tok] {
			continue
		}
		ts.tokens[tok] = true
		ts.stems[stem(tok)] = true
	}
	return ts
}

// matches reports whether the keyword occurs in the field: phrases by
// substring, single words by exact token or stem. Both forms are checked
// both ways because stemming is not idempotent ("meetings" stems to
// "meeting", which stems further to "meet").
func (ts tokenSet) matches(keyword string) bool {
	keyword = strings.ToLower(keyword)
	if strings.ContainsRune(keyword, ' ') {
		return strings.Contains(ts.text, keyword)
	}
	stemmed := stem(keyword)
	return ts.tokens[keyword] || ts.tokens[stemmed] || ts.stems[keyword] || ts.stems[stemmed]
}

// stem strips common English suffixes. A rough stand-in for the
// lemmatization the original pipeline delegated to an NLP library;
// adequate for keyword lists of this size.
func stem(word string) string {
	switch {
	case len(word) > 5 && strings.HasSuffix(word, "ing"):
		return word[:len(word)-3]
	case len(word) > 4 && strings.HasSuffix(word, "ies"):
		return word[:len(word)-3] + "y"
	case len(word) > 4 && strings.HasSuffix(word, "ed"):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "es"):
		return word[:len(word)-2]
	case len(word) > 3 && strings.HasSuffix(word, "s"):
		return word[:len(word)-1]
	}
	return word
}
