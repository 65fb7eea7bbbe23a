package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// templateNamespace seeds deterministic template IDs so feedback stays
// joinable across ruleset reloads.
var templateNamespace = uuid.MustParse("8f1c5c5e-3f55-4f7d-9a6b-2f1d4a0c9b31")

// TaskTemplate is a reusable preparation task associated with one event type.
type TaskTemplate struct {
	ID          uuid.UUID
	Type        EventType
	Description string
	Duration    time.Duration
	Priority    Priority
	Order       int     // ordering hint within the type
	Weight      float64 // base confidence weight in [0,1]
}

// DeriveTemplateID returns the deterministic ID for a (type, description) pair.
func DeriveTemplateID(t EventType, description string) uuid.UUID {
	return uuid.NewSHA1(templateNamespace, []byte(t.String()+"|"+normalizeSignature(description)))
}

// Signature normalizes the description so the same task reached through
// different event types deduplicates.
func (t TaskTemplate) Signature() string {
	return normalizeSignature(t.Description)
}

func normalizeSignature(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
