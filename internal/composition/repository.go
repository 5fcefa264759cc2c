package composition

import (
	"fmt"
	"sort"
	"sync"
)

// Repository defines the concurrency-safe contract for accessing and mutating
// session state.
type Repository interface {
	// RegisterArtifact records an artifact for the given session, creating the
	// session if needed. added is false when the identical artifact was
	// already registered, so recorder retries are harmless. The same id with
	// a different payload is ErrArtifactConflict. If the session has been
	// closed, ErrSessionClosed is returned.
	RegisterArtifact(sessionID SessionID, a Artifact) (added bool, err error)

	// GetSessionSnapshot returns the session's artifacts sorted by id along
	// with its closed flag. ok is false if the session does not exist.
	GetSessionSnapshot(sessionID SessionID) (artifacts []Artifact, closed bool, ok bool)

	// CloseSession marks a session as closed; later artifacts are rejected.
	// Closing an unknown id leaves a closed, empty session behind so a late
	// artifact cannot reopen it. closed reports whether an open session with
	// artifacts was closed by this call.
	CloseSession(sessionID SessionID) (closed bool, err error)

	// DeleteSession evicts a session and reports whether it existed.
	DeleteSession(sessionID SessionID) bool

	// OpenSessionCount returns the number of sessions not yet closed.
	// Used for metrics.
	OpenSessionCount() int
}

// InMemoryRepository is a concurrency-safe implementation of Repository.
// It uses a Store for persistence; by default that is an InMemoryStore.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store Store
}

// NewInMemoryRepository constructs a new repository with a default in-memory store.
func NewInMemoryRepository() *InMemoryRepository {
	return NewInMemoryRepositoryWithStore(NewInMemoryStore())
}

// NewInMemoryRepositoryWithStore constructs a repository that uses the given Store.
func NewInMemoryRepositoryWithStore(store Store) *InMemoryRepository {
	return &InMemoryRepository{store: store}
}

// RegisterArtifact implements Repository.RegisterArtifact.
func (r *InMemoryRepository) RegisterArtifact(sessionID SessionID, a Artifact) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.getOrCreateSessionLocked(sessionID)
	if session.Closed {
		return false, ErrSessionClosed
	}

	if prev, exists := session.Artifacts[a.ID]; exists {
		if prev != a {
			return false, fmt.Errorf("%w: id %d registered as [%d, %d) screen=%t",
				ErrArtifactConflict, a.ID, prev.Start, prev.End(), prev.Screen)
		}
		return false, nil
	}
	session.Artifacts[a.ID] = a
	return true, nil
}

// GetSessionSnapshot implements Repository.GetSessionSnapshot.
func (r *InMemoryRepository) GetSessionSnapshot(sessionID SessionID) (artifacts []Artifact, closed bool, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.store.GetSession(sessionID)
	if !exists {
		return nil, false, false
	}
	if len(session.Artifacts) == 0 {
		return nil, session.Closed, true
	}

	artifacts = make([]Artifact, 0, len(session.Artifacts))
	for _, a := range session.Artifacts {
		artifacts = append(artifacts, a)
	}
	sort.Slice(artifacts, func(i, j int) bool { return artifacts[i].ID < artifacts[j].ID })

	return artifacts, session.Closed, true
}

// CloseSession implements Repository.CloseSession.
func (r *InMemoryRepository) CloseSession(sessionID SessionID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session := r.getOrCreateSessionLocked(sessionID)
	if session.Closed {
		return false, nil
	}
	session.Closed = true
	return len(session.Artifacts) > 0, nil
}

// DeleteSession implements Repository.DeleteSession.
func (r *InMemoryRepository) DeleteSession(sessionID SessionID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.store.DeleteSession(sessionID)
}

// OpenSessionCount implements Repository.OpenSessionCount.
func (r *InMemoryRepository) OpenSessionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for st := range r.store.Sessions() {
		if !st.Closed {
			n++
		}
	}
	return n
}

// getOrCreateSessionLocked returns an existing session or creates a new one.
// Caller must hold r.mu in write mode.
func (r *InMemoryRepository) getOrCreateSessionLocked(sessionID SessionID) *SessionState {
	if session, ok := r.store.GetSession(sessionID); ok {
		return session
	}

	session := &SessionState{
		ID:        sessionID,
		Artifacts: make(map[ArtifactID]Artifact),
	}
	r.store.SetSession(session)
	return session
}
