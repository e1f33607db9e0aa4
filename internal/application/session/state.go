package session

import (
	"sync"

	"supportdesk/internal/domain/user"
)

// State is the process-wide session context. The gateway reads the token from
// it on every call; only the Manager writes it.
type State struct {
	mu      sync.RWMutex
	session user.Session
}

func NewState() *State {
	return &State{}
}

// Token implements gateway.TokenSource.
func (s *State) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// Snapshot returns a copy of the current session.
func (s *State) Snapshot() user.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.session
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *State) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Token = token
}

func (s *State) setUser(u *user.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.User = u
}

func (s *State) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = user.Session{}
}
