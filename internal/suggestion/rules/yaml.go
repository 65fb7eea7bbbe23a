package rules

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

type yamlRuleset struct {
	Types []yamlType `yaml:"types"`
}

type yamlType struct {
	Name      string         `yaml:"name"`
	Keywords  []yamlKeyword  `yaml:"keywords"`
	Templates []yamlTemplate `yaml:"templates"`
}

type yamlKeyword struct {
	Text   string  `yaml:"text"`
	Weight float64 `yaml:"weight"`
}

type yamlTemplate struct {
	ID              string  `yaml:"id"`
	Description     string  `yaml:"description"`
	DurationMinutes int     `yaml:"duration_minutes"`
	Priority        string  `yaml:"priority"`
	Order           int     `yaml:"order"`
	Weight          float64 `yaml:"weight"`
}

// Load reads and validates a ruleset from a YAML file.
func Load(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ruleset %s: %w", path, err)
	}
	return Parse(data)
}

// Parse builds and validates a ruleset from YAML bytes.
func Parse(data []byte) (*Ruleset, error) {
	var raw yamlRuleset
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ruleset: %w", err)
	}

	rs := &Ruleset{Types: make([]TypeRule, 0, len(raw.Types))}
	for _, yt := range raw.Types {
		eventType, err := domain.ParseEventType(yt.Name)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", yt.Name, err)
		}

		rule := TypeRule{Type: eventType}
		for _, kw := range yt.Keywords {
			weight := kw.Weight
			if weight == 0 {
				weight = defaultKeywordWeight(kw.Text)
			}
			rule.Keywords = append(rule.Keywords, Keyword{Text: kw.Text, Weight: weight})
		}
		for i, ytm := range yt.Templates {
			tmpl, err := buildTemplate(eventType, ytm, i)
			if err != nil {
				return nil, err
			}
			rule.Templates = append(rule.Templates, tmpl)
		}
		rs.Types = append(rs.Types, rule)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

func buildTemplate(eventType domain.EventType, ytm yamlTemplate, pos int) (domain.TaskTemplate, error) {
	id := domain.DeriveTemplateID(eventType, ytm.Description)
	if ytm.ID != "" {
		parsed, err := uuid.Parse(ytm.ID)
		if err != nil {
			return domain.TaskTemplate{}, fmt.Errorf("template %q: bad id: %w", ytm.Description, err)
		}
		id = parsed
	}

	priority := domain.PriorityMedium
	if ytm.Priority != "" {
		parsed, err := domain.ParsePriority(ytm.Priority)
		if err != nil {
			return domain.TaskTemplate{}, fmt.Errorf("template %q: %w", ytm.Description, err)
		}
		priority = parsed
	}

	order := ytm.Order
	if order == 0 {
		order = pos + 1
	}

	weight := ytm.Weight
	if weight == 0 {
		weight = 1.0
	}

	return domain.TaskTemplate{
		ID:          id,
		Type:        eventType,
		Description: ytm.Description,
		Duration:    time.Duration(ytm.DurationMinutes) * time.Minute,
		Priority:    priority,
		Order:       order,
		Weight:      weight,
	}, nil
}

// Multi-word phrases are more specific than single keywords, so they
// default heavier when the ruleset omits an explicit weight.
func defaultKeywordWeight(text string) float64 {
	for _, r := range text {
		if r == ' ' {
			return 0.9
		}
	}
	return 0.6
}
