package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		input string
		want  EventType
	}{
		{"general", TypeGeneral},
		{"meeting", TypeMeeting},
		{"exam", TypeExam},
		{"travel", TypeTravel},
		{"project", TypeProject},
		{"presentation", TypePresentation},
		{"appointment", TypeAppointment},
		{"social", TypeSocial},
		{"workshop", TypeWorkshop},
		{"  Meeting  ", TypeMeeting},
		{"EXAM", TypeExam},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseEventType(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseEventType("birthday")
		assert.ErrorIs(t, err, ErrInvalidEventType)

		_, err = ParseEventType("")
		assert.ErrorIs(t, err, ErrInvalidEventType)
	})
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "meeting", TypeMeeting.String())
	assert.Equal(t, "general", TypeGeneral.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestEventTypeIsValid(t *testing.T) {
	assert.True(t, TypeWorkshop.IsValid())
	assert.False(t, EventType(99).IsValid())
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	_, err = ParsePriority("urgent")
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestPriorityWeightOrdering(t *testing.T) {
	assert.Greater(t, PriorityHigh.Weight(), PriorityMedium.Weight())
	assert.Greater(t, PriorityMedium.Weight(), PriorityLow.Weight())
}
