package composition

import (
	"iter"
	"maps"
)

// Store holds session state keyed by id. Repository serializes every call,
// so implementations carry no locking of their own.
type Store interface {
	GetSession(id SessionID) (*SessionState, bool)
	SetSession(s *SessionState)
	// DeleteSession evicts a session and reports whether it was present.
	DeleteSession(id SessionID) bool
	// Sessions yields every stored session in no particular order.
	Sessions() iter.Seq[*SessionState]
}

// InMemoryStore keeps sessions in a map for the life of the process.
type InMemoryStore struct {
	sessions map[SessionID]*SessionState
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[SessionID]*SessionState)}
}

func (s *InMemoryStore) GetSession(id SessionID) (*SessionState, bool) {
	st, ok := s.sessions[id]
	return st, ok
}

func (s *InMemoryStore) SetSession(st *SessionState) {
	s.sessions[st.ID] = st
}

func (s *InMemoryStore) DeleteSession(id SessionID) bool {
	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *InMemoryStore) Sessions() iter.Seq[*SessionState] {
	return maps.Values(s.sessions)
}
