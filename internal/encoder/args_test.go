package encoder

import (
	"errors"
	"slices"
	"testing"

	"call-compositor/internal/composition"
)

func twoCameras() []composition.Artifact {
	return []composition.Artifact{
		{ID: 1, Start: 0, Duration: 2000, Input: "b.webm"},
		{ID: 0, Start: 0, Duration: 2000, Input: "a.webm"},
	}
}

func TestArgs(t *testing.T) {
	artifacts := twoCameras()
	plan, err := composition.Compose(artifacts, composition.Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}

	got, err := Args(plan, artifacts, "out.mp4")
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	want := []string{
		"-y",
		"-i", "a.webm",
		"-i", "b.webm",
		"-filter_complex", plan.String(),
		"-map", "[video]",
		"out.mp4",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Args mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestArgs_custom_output_label(t *testing.T) {
	artifacts := twoCameras()
	plan, err := composition.Compose(artifacts, composition.Options{OutputLabel: "mix"})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	got, err := Args(plan, artifacts, "out.mp4")
	if err != nil {
		t.Fatalf("Args: %v", err)
	}
	if i := slices.Index(got, "-map"); i < 0 || got[i+1] != "[mix]" {
		t.Errorf("expected -map [mix], got %q", got)
	}
}

func TestArgs_errors(t *testing.T) {
	plan, err := composition.Compose(twoCameras(), composition.Options{})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	empty, err := composition.Compose(nil, composition.Options{})
	if err != nil {
		t.Fatalf("Compose empty: %v", err)
	}

	tests := []struct {
		name      string
		plan      *composition.Plan
		artifacts []composition.Artifact
		output    string
		want      error
	}{
		{name: "nil_plan", plan: nil, artifacts: twoCameras(), output: "o.mp4", want: ErrEmptyPlan},
		{name: "empty_plan", plan: empty, artifacts: nil, output: "o.mp4", want: ErrEmptyPlan},
		{
			name: "gap_in_ids",
			plan: plan,
			artifacts: []composition.Artifact{
				{ID: 0, Duration: 2000, Input: "a.webm"},
				{ID: 2, Duration: 2000, Input: "c.webm"},
			},
			output: "o.mp4",
			want:   ErrInputs,
		},
		{
			name: "missing_input",
			plan: plan,
			artifacts: []composition.Artifact{
				{ID: 0, Duration: 2000, Input: "a.webm"},
				{ID: 1, Duration: 2000},
			},
			output: "o.mp4",
			want:   ErrInputs,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Args(tt.plan, tt.artifacts, tt.output)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := Args(plan, twoCameras(), ""); err == nil {
		t.Error("expected error for empty output path")
	}
}
