// Package rules holds the event-type registry: per-type keyword lists and
// task templates, loaded from YAML and served as an immutable snapshot.
package rules

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

var (
	ErrEmptyRegistry  = errors.New("event type registry is empty")
	ErrDuplicateType  = errors.New("event type declared twice")
	ErrNoKeywords     = errors.New("event type has no keywords")
	ErrBadWeight      = errors.New("weight must be in (0, 1]")
	ErrEmptyKeyword   = errors.New("keyword text is empty")
	ErrEmptyTemplates = errors.New("event type has no templates")
)

// Keyword is one match pattern with a specificity weight. Heavier
// keywords contribute more to the type's score.
type Keyword struct {
	Text   string
	Weight float64
}

// TypeRule binds an event type to its keywords and task templates.
// Registration order is significant: it breaks confidence ties.
type TypeRule struct {
	Type      domain.EventType
	Keywords  []Keyword
	Templates []domain.TaskTemplate
}

// Ruleset is the full registry. Treat as immutable once built; reloads
// swap in a whole new Ruleset via Store.
type Ruleset struct {
	Types []TypeRule
}

// RuleFor returns the rule for the given type, if registered.
func (r *Ruleset) RuleFor(t domain.EventType) (TypeRule, bool) {
	for _, rule := range r.Types {
		if rule.Type == t {
			return rule, true
		}
	}
	return TypeRule{}, false
}

// TemplateByID searches all types for a template. Used to resolve prior
// weights during retraining.
func (r *Ruleset) TemplateByID(id uuid.UUID) (domain.TaskTemplate, bool) {
	for _, rule := range r.Types {
		for _, tmpl := range rule.Templates {
			if tmpl.ID == id {
				return tmpl, true
			}
		}
	}
	return domain.TaskTemplate{}, false
}

// Validate fails fast on a registry the pipeline cannot run with.
func (r *Ruleset) Validate() error {
	if len(r.Types) == 0 {
		return ErrEmptyRegistry
	}
	seen := map[domain.EventType]bool{}
	for _, rule := range r.Types {
		name := rule.Type.String()
		if seen[rule.Type] {
			return fmt.Errorf("%w: %s", ErrDuplicateType, name)
		}
		seen[rule.Type] = true

		// The general fallback type carries no keywords of its own.
		if rule.Type != domain.TypeGeneral && len(rule.Keywords) == 0 {
			return fmt.Errorf("%w: %s", ErrNoKeywords, name)
		}
		for _, kw := range rule.Keywords {
			if kw.Text == "" {
				return fmt.Errorf("%w (type %s)", ErrEmptyKeyword, name)
			}
			if kw.Weight <= 0 || kw.Weight > 1 {
				return fmt.Errorf("%w: keyword %q of %s has weight %v", ErrBadWeight, kw.Text, name, kw.Weight)
			}
		}
		if len(rule.Templates) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyTemplates, name)
		}
		for _, tmpl := range rule.Templates {
			if tmpl.Weight <= 0 || tmpl.Weight > 1 {
				return fmt.Errorf("%w: template %q of %s has weight %v", ErrBadWeight, tmpl.Description, name, tmpl.Weight)
			}
			if tmpl.Duration <= 0 {
				return fmt.Errorf("template %q of %s has non-positive duration", tmpl.Description, name)
			}
		}
	}
	return nil
}
