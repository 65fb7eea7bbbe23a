package queries

import (
	"github.com/prepara/prepara/internal/suggestion/rules"
)

// RuleSummary is one event type with its configured sizes.
type RuleSummary struct {
	Type      string
	Keywords  int
	Templates int
}

// ListRulesHandler summarizes the active ruleset.
type ListRulesHandler struct {
	rules *rules.Store
}

// NewListRulesHandler creates a new ListRulesHandler.
func NewListRulesHandler(store *rules.Store) *ListRulesHandler {
	return &ListRulesHandler{rules: store}
}

// Handle returns one summary per registered type, in registration order.
func (h *ListRulesHandler) Handle() []RuleSummary {
	rs := h.rules.Current()
	out := make([]RuleSummary, 0, len(rs.Types))
	for _, rule := range rs.Types {
		out = append(out, RuleSummary{
			Type:      rule.Type.String(),
			Keywords:  len(rule.Keywords),
			Templates: len(rule.Templates),
		})
	}
	return out
}
