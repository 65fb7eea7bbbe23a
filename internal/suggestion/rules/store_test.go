package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prepara/prepara/internal/suggestion/domain"
)

func TestStoreSwap(t *testing.T) {
	store := NewStore(Defaults())
	before := store.Current()
	require.NotNil(t, before)

	replacement, err := Parse([]byte(`
types:
  - name: exam
    keywords: [{text: exam}]
    templates: [{description: Study, duration_minutes: 30}]
  - name: general
    templates: [{description: Prepare, duration_minutes: 15}]
`))
	require.NoError(t, err)

	require.NoError(t, store.Swap(replacement))
	assert.Same(t, replacement, store.Current())
	assert.NotSame(t, before, store.Current())
}

func TestStoreSwapRejectsInvalid(t *testing.T) {
	store := NewStore(Defaults())
	before := store.Current()

	err := store.Swap(&Ruleset{})
	assert.ErrorIs(t, err, ErrEmptyRegistry)
	// Failed swap leaves the current ruleset in place.
	assert.Same(t, before, store.Current())
}

func TestRulesetTemplateByID(t *testing.T) {
	rs := Defaults()
	rule, ok := rs.RuleFor(domain.TypeExam)
	require.True(t, ok)
	require.NotEmpty(t, rule.Templates)

	want := rule.Templates[0]
	got, ok := rs.TemplateByID(want.ID)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	_, ok = rs.TemplateByID(domain.DeriveTemplateID(domain.TypeExam, "not registered"))
	assert.False(t, ok)
}
