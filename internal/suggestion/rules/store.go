package rules

import "sync/atomic"

// Store serves the current ruleset to concurrent readers. Reloads swap
// in a whole new snapshot; in-flight requests keep the one they read.
type Store struct {
	current atomic.Pointer[Ruleset]
}

// NewStore creates a store seeded with the given ruleset.
func NewStore(rs *Ruleset) *Store {
	s := &Store{}
	s.current.Store(rs)
	return s
}

// Current returns the active ruleset snapshot.
func (s *Store) Current() *Ruleset {
	return s.current.Load()
}

// Swap validates and installs a new ruleset. The previous snapshot stays
// valid for readers that already hold it.
func (s *Store) Swap(rs *Ruleset) error {
	if err := rs.Validate(); err != nil {
		return err
	}
	s.current.Store(rs)
	return nil
}
