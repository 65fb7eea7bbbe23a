package domain

import (
	"errors"
	"strings"
)

// EventType is a category label used to select which task templates apply.
type EventType int

const (
	TypeGeneral EventType = iota
	TypeMeeting
	TypeExam
	TypeTravel
	TypeProject
	TypePresentation
	TypeAppointment
	TypeSocial
	TypeWorkshop
)

var ErrInvalidEventType = errors.New("invalid event type")

var eventTypeNames = map[EventType]string{
	TypeGeneral:      "general",
	TypeMeeting:      "meeting",
	TypeExam:         "exam",
	TypeTravel:       "travel",
	TypeProject:      "project",
	TypePresentation: "presentation",
	TypeAppointment:  "appointment",
	TypeSocial:       "social",
	TypeWorkshop:     "workshop",
}

var eventTypeValues = map[string]EventType{
	"general":      TypeGeneral,
	"meeting":      TypeMeeting,
	"exam":         TypeExam,
	"travel":       TypeTravel,
	"project":      TypeProject,
	"presentation": TypePresentation,
	"appointment":  TypeAppointment,
	"social":       TypeSocial,
	"workshop":     TypeWorkshop,
}

// ParseEventType creates an EventType from a string.
func ParseEventType(s string) (EventType, error) {
	t, ok := eventTypeValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return TypeGeneral, ErrInvalidEventType
	}
	return t, nil
}

// String returns the string representation of the event type.
func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the event type is a known value.
func (t EventType) IsValid() bool {
	_, ok := eventTypeNames[t]
	return ok
}
