package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

// ComplexityBand buckets a complexity score.
type ComplexityBand string

const (
	ComplexityLow    ComplexityBand = "low"
	ComplexityMedium ComplexityBand = "medium"
	ComplexityHigh   ComplexityBand = "high"
)

// Complexity describes how demanding the preparation for an event is.
// The score scales template durations; the factors explain it.
type Complexity struct {
	Score   float64
	Band    ComplexityBand
	Factors []string
}

// complexityCap bounds the duration scaling to 3x.
const complexityCap = 3.0

var highStakesWords = []string{"critical", "important", "major", "final", "board", "client", "public"}

var stakeholderWords = []string{"team", "client", "board", "committee", "group", "department"}

var complexLocationWords = []string{"international", "airport", "conference center"}

// AnalyzeComplexity scores an event's preparation demand from its
// duration, location, and stakeholder signals.
func AnalyzeComplexity(ev domain.Event) Complexity {
	score := 1.0
	var factors []string

	if ev.Duration > 8*time.Hour {
		score *= 2.0
		factors = append(factors, "very long duration")
	} else if ev.Duration > 4*time.Hour {
		score *= 1.5
		factors = append(factors, "long duration")
	}

	location := strings.ToLower(ev.Location)
	for _, word := range complexLocationWords {
		if strings.Contains(location, word) {
			score *= 1.3
			factors = append(factors, "complex location")
			break
		}
	}

	text := strings.ToLower(ev.Text())
	for _, word := range highStakesWords {
		if strings.Contains(text, word) {
			score *= 1.2
			factors = append(factors, "high-stakes keyword: "+word)
		}
	}

	stakeholders := 0
	for _, word := range stakeholderWords {
		if strings.Contains(text, word) {
			stakeholders++
		}
	}
	if stakeholders > 0 {
		score *= 1 + 0.1*float64(stakeholders)
		factors = append(factors, fmt.Sprintf("multiple stakeholders (%d)", stakeholders))
	}

	if score > complexityCap {
		score = complexityCap
	}

	return Complexity{Score: score, Band: bandFor(score), Factors: factors}
}

func bandFor(score float64) ComplexityBand {
	switch {
	case score >= 2.0:
		return ComplexityHigh
	case score >= 1.3:
		return ComplexityMedium
	default:
		return ComplexityLow
	}
}
