package composition

import (
	"errors"
	"math"
	"testing"
)

func TestValidateArtifact(t *testing.T) {
	tests := []struct {
		name    string
		a       Artifact
		wantErr bool
	}{
		{"valid", Artifact{ID: 0, Start: 0, Duration: 1000}, false},
		{"ends_at_clock_limit", Artifact{ID: 0, Start: math.MaxInt64 - 1000, Duration: 1000}, false},
		{"zero_duration", Artifact{ID: 0, Start: 0, Duration: 0}, true},
		{"negative_start", Artifact{ID: 0, Start: -1, Duration: 10}, true},
		{"negative_id", Artifact{ID: -1, Start: 0, Duration: 10}, true},
		{"end_overflows", Artifact{ID: 1, Start: math.MaxInt64 - 1000, Duration: 5000}, true},
		{"max_duration_overflows", Artifact{ID: 1, Start: 1, Duration: math.MaxInt64}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArtifact(tt.a)
			if tt.wantErr && !errors.Is(err, ErrInvalidArtifact) {
				t.Errorf("expected ErrInvalidArtifact, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if err == nil && tt.a.End() < tt.a.Start {
				t.Errorf("accepted artifact with wrapped end %d", tt.a.End())
			}
		})
	}
}

func TestValidateArtifacts_duplicate(t *testing.T) {
	err := ValidateArtifacts([]Artifact{
		{ID: 1, Start: 0, Duration: 10},
		{ID: 1, Start: 20, Duration: 10},
	})
	if !errors.Is(err, ErrInvalidArtifact) {
		t.Errorf("expected ErrInvalidArtifact for duplicate id, got %v", err)
	}
}
