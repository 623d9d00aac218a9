package services

import "sync"

// SessionTracker remembers which position each candidate is currently
// applying for. It is the only mutable state shared between webhook handlers
// and background workers, so every accessor holds the lock.
type SessionTracker interface {
	Select(candidate, position string)
	Get(candidate string) (string, bool)
	Take(candidate string) (string, bool)
	Clear(candidate string)
}

type sessionTracker struct {
	mu        sync.Mutex
	positions map[string]string
}

func NewSessionTracker() SessionTracker {
	return &sessionTracker{
		positions: make(map[string]string),
	}
}

// Select implements SessionTracker.
func (s *sessionTracker) Select(candidate, position string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.positions[candidate] = position
}

// Get implements SessionTracker.
func (s *sessionTracker) Get(candidate string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	position, ok := s.positions[candidate]
	return position, ok
}

// Take implements SessionTracker. It removes and returns the entry in one
// step, so two documents racing for the same selection can never both be
// accepted: the loser sees ok == false.
func (s *sessionTracker) Take(candidate string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	position, ok := s.positions[candidate]
	if ok {
		delete(s.positions, candidate)
	}
	return position, ok
}

// Clear implements SessionTracker. Clearing an absent candidate is a no-op.
func (s *sessionTracker) Clear(candidate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.positions, candidate)
}
