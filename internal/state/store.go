package state

import (
	"sync"
	"time"
)

const historyLimit = 64

// Dispatched records one action applied to a Store.
type Dispatched struct {
	Action  string
	At      time.Time
	Changed bool
}

// Store owns the current AppState and replaces it wholesale on every
// dispatch. The zero value holds Initial().
type Store struct {
	mu      sync.RWMutex
	current AppState
	history []Dispatched
}

// Dispatch reduces the current state with action and stores the result. It
// returns the new state and whether anything changed.
func (s *Store) Dispatch(action Action) (AppState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := Reduce(s.current, action)
	changed := !Equal(s.current, next)
	s.current = next

	name := "<nil>"
	if action != nil {
		name = action.String()
	}
	s.history = append(s.history, Dispatched{Action: name, At: time.Now(), Changed: changed})
	if len(s.history) > historyLimit {
		s.history = append([]Dispatched(nil), s.history[len(s.history)-historyLimit:]...)
	}
	return next.Clone(), changed
}

// State returns a copy of the current state.
func (s *Store) State() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// History returns the most recent dispatches, oldest first.
func (s *Store) History() []Dispatched {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.history) == 0 {
		return nil
	}
	dup := make([]Dispatched, len(s.history))
	copy(dup, s.history)
	return dup
}
