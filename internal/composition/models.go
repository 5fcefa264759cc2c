package composition

import (
	"errors"
	"fmt"
	"math"
)

// SessionID uniquely identifies a recorded multi-party session.
type SessionID string

// ArtifactID identifies one recorded track within a session. It doubles as the
// encoder input index, so the raw stream of artifact 3 is referenced as [3].
type ArtifactID int

// Artifact is one participant's camera track or one screen-share track.
// Start and Duration are milliseconds on the shared session clock.
// This also matches the input JSON payload for registering artifacts.
type Artifact struct {
	ID       ArtifactID `json:"id"`
	Start    int64      `json:"start"`
	Duration int64      `json:"duration"`
	Screen   bool       `json:"screen"`
	Input    string     `json:"input,omitempty"` // file or stream the encoder reads
}

// End returns the exclusive end instant of the artifact.
func (a Artifact) End() int64 {
	return a.Start + a.Duration
}

// Slice is a contiguous [Start, End) sub-interval of one artifact's timeline.
type Slice struct {
	Start int64 `json:"start"`
	End   int64 `json:"end"`
}

// Entry pairs an artifact with its ordered slices; it is the Grouper's input.
type Entry struct {
	ID     ArtifactID
	Slices []Slice
}

// Group is a maximal interval of the session timeline with a stable live set.
// IDs is deduplicated and ascending.
type Group struct {
	Start int64        `json:"start"`
	End   int64        `json:"end"`
	IDs   []ArtifactID `json:"ids"`
}

// SessionState holds all in-memory state for a session.
type SessionState struct {
	ID        SessionID
	Artifacts map[ArtifactID]Artifact
	Closed    bool
}

var (
	// ErrInvalidArtifact is returned for artifacts that would corrupt the
	// global grid: non-positive duration, negative start or id, an end beyond
	// the int64 millisecond clock, duplicate id.
	ErrInvalidArtifact = errors.New("invalid artifact")

	// ErrInvalidBase is returned when the composition base instant lies after
	// an artifact's start, which would produce negative trim offsets.
	ErrInvalidBase = errors.New("invalid base instant")

	// ErrSliceOutOfRange is returned when a slice does not lie inside the
	// artifact it is cut from.
	ErrSliceOutOfRange = errors.New("slice outside artifact range")

	// ErrUnsupportedLayout is returned when no layout rule covers a group's
	// live set. Dropping a participant silently is never an option.
	ErrUnsupportedLayout = errors.New("unsupported layout")

	// ErrSessionClosed is returned when registering an artifact on a session
	// that has already been closed.
	ErrSessionClosed = errors.New("session has been closed")

	// ErrArtifactConflict is returned when an id is registered again with a
	// different start, duration, kind or input.
	ErrArtifactConflict = errors.New("artifact conflicts with registered artifact")

	// ErrSessionNotFound is returned when composing an unknown session or
	// one with no artifacts.
	ErrSessionNotFound = errors.New("session not found")
)

// ValidateArtifact rejects a single malformed artifact.
func ValidateArtifact(a Artifact) error {
	switch {
	case a.ID < 0:
		return fmt.Errorf("%w: id %d is negative", ErrInvalidArtifact, a.ID)
	case a.Duration <= 0:
		return fmt.Errorf("%w: artifact %d has duration %dms", ErrInvalidArtifact, a.ID, a.Duration)
	case a.Start < 0:
		return fmt.Errorf("%w: artifact %d starts at %d", ErrInvalidArtifact, a.ID, a.Start)
	case a.Start > math.MaxInt64-a.Duration:
		return fmt.Errorf("%w: artifact %d ends past the representable clock", ErrInvalidArtifact, a.ID)
	}
	return nil
}

// ValidateArtifacts checks every artifact and rejects duplicate ids.
func ValidateArtifacts(artifacts []Artifact) error {
	seen := make(map[ArtifactID]struct{}, len(artifacts))
	for _, a := range artifacts {
		if err := ValidateArtifact(a); err != nil {
			return err
		}
		if _, dup := seen[a.ID]; dup {
			return fmt.Errorf("%w: duplicate id %d", ErrInvalidArtifact, a.ID)
		}
		seen[a.ID] = struct{}{}
	}
	return nil
}
