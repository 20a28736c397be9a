package roster

import (
	"sync"

	"github.com/rs/zerolog"

	"classroom/internal/pkg/logx"
)

// Store serializes roster operations from concurrent callers. Each call applies
// one engine operation atomically against the current State.
type Store struct {
	// mu protects state.
	mu    sync.RWMutex
	state State

	rng    Shuffler
	logger zerolog.Logger
}

// NewStore wraps initial. rng drives RandomAssign.
func NewStore(initial State, rng Shuffler) *Store {
	return &Store{
		state:  initial,
		rng:    rng,
		logger: logx.Component("roster"),
	}
}

// State returns the current roster value.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Snapshot renders the current roster.
func (s *Store) Snapshot() Snapshot {
	return s.State().Snapshot()
}

// Move applies MovePerson and reports whether anything changed.
func (s *Store) Move(name string, dest Destination) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := s.state.Locate(name)

	next, changed := move(s.state, name, dest)
	if !changed {
		s.logger.Debug().
			Str("name", name).
			Stringer("from", from).
			Stringer("to", dest).
			Msg("Move ignored.")
		return s.state, false
	}

	s.state = next
	s.logger.Info().
		Str("name", name).
		Stringer("from", from).
		Stringer("to", dest).
		Msg("Participant moved.")

	return next, true
}

// RandomAssign distributes the whole pool across the rooms.
func (s *Store) RandomAssign() (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	assigned := len(s.state.pool)

	next, changed := randomAssign(s.state, s.rng)
	if !changed {
		s.logger.Debug().Msg("Random assignment skipped: empty pool or no rooms.")
		return s.state, false
	}

	s.state = next
	s.logger.Info().
		Int("assigned", assigned).
		Int("rooms", len(next.rooms)).
		Msg("Available participants randomly assigned.")

	return next, true
}

// Admit adds a newcomer to the pool. It reports false for known names.
func (s *Store) Admit(fullName string) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := admit(s.state, fullName)
	if !changed {
		return s.state, false
	}

	s.state = next
	s.logger.Info().Str("name", fullName).Int("available", len(next.pool)).Msg("Participant admitted.")

	return next, true
}
