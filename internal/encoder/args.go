// Package encoder turns a composition plan into the ffmpeg argument vector
// that renders it. Nothing here starts a process; callers hand the result to
// exec.Command("ffmpeg", args...) or whatever runner they own.
package encoder

import (
	"errors"
	"fmt"
	"sort"

	"call-compositor/internal/composition"
)

var (
	// ErrEmptyPlan is returned for a plan with no filter nodes.
	ErrEmptyPlan = errors.New("plan has no filters")

	// ErrInputs is returned when the artifacts cannot be mapped onto ffmpeg
	// input indices.
	ErrInputs = errors.New("artifact inputs do not match plan")
)

// Args builds the ffmpeg argv for plan. Artifact ids double as input indices,
// so artifacts must carry ids 0..n-1 (in any order) and each must name its
// input. output is the destination file.
func Args(plan *composition.Plan, artifacts []composition.Artifact, output string) ([]string, error) {
	if plan == nil || len(plan.Nodes) == 0 {
		return nil, ErrEmptyPlan
	}
	if output == "" {
		return nil, errors.New("output path is required")
	}

	sorted := make([]composition.Artifact, len(artifacts))
	copy(sorted, artifacts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	// Always overwrite output files
	args := []string{"-y"}
	for i, a := range sorted {
		if a.ID != composition.ArtifactID(i) {
			return nil, fmt.Errorf("%w: artifact id %d at input index %d", ErrInputs, a.ID, i)
		}
		if a.Input == "" {
			return nil, fmt.Errorf("%w: artifact %d has no input", ErrInputs, a.ID)
		}
		args = append(args, "-i", a.Input)
	}

	args = append(args,
		"-filter_complex", plan.String(),
		"-map", "["+plan.Output+"]",
		output,
	)
	return args, nil
}
