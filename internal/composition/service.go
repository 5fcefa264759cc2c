package composition

import (
	"fmt"

	"github.com/google/uuid"
)

// Service validates incoming artifacts, delegates storage to Repository and
// composes sessions into filter-graph plans.
type Service struct {
	repo Repository
	opts Options
}

// NewService returns a Service that uses repo and composes with opts.
func NewService(repo Repository, opts Options) *Service {
	return &Service{repo: repo, opts: opts}
}

// RegisterArtifact rejects malformed artifacts before they reach the
// repository; a bad artifact would corrupt every later composition of the
// session. added is false for an identical retry.
func (s *Service) RegisterArtifact(sessionID SessionID, a Artifact) (added bool, err error) {
	if err := ValidateArtifact(a); err != nil {
		return false, err
	}
	return s.repo.RegisterArtifact(sessionID, a)
}

// Compose builds the plan for the artifacts registered so far. Open sessions
// can be composed too; the plan then reflects a partial recording. Each plan
// gets a fresh ID. A session holding no artifacts has nothing to compose and
// is reported as not found.
func (s *Service) Compose(sessionID SessionID) (*Plan, error) {
	artifacts, _, ok := s.repo.GetSessionSnapshot(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if len(artifacts) == 0 {
		return nil, fmt.Errorf("%w: %s has no artifacts", ErrSessionNotFound, sessionID)
	}

	plan, err := Compose(artifacts, s.opts)
	if err != nil {
		return nil, err
	}
	plan.ID = uuid.NewString()
	return plan, nil
}

// CloseSession marks the session as closed; new artifacts will be rejected.
// closed is false when there was no open recording to close.
func (s *Service) CloseSession(sessionID SessionID) (closed bool, err error) {
	return s.repo.CloseSession(sessionID)
}

// DeleteSession evicts a session once its composite is no longer needed.
func (s *Service) DeleteSession(sessionID SessionID) bool {
	return s.repo.DeleteSession(sessionID)
}
