package composition

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ArtifactSlices cuts artifact at breakpoints and returns len(breakpoints)+1
// contiguous slices covering [artifact.Start, artifact.End()).
// breakpoints must be sorted ascending and lie strictly inside the artifact,
// which FindBreakPoints guarantees.
func ArtifactSlices(artifact Artifact, breakpoints []int64) []Slice {
	slices := make([]Slice, 0, len(breakpoints)+1)
	prev := artifact.Start
	for _, bp := range breakpoints {
		slices = append(slices, Slice{Start: prev, End: bp})
		prev = bp
	}
	return append(slices, Slice{Start: prev, End: artifact.End()})
}

// SliceAll computes every artifact's slices against all the others.
// Each target only reads the shared artifact list, so targets are sliced
// concurrently. Entries are returned in input order.
func SliceAll(artifacts []Artifact) ([]Entry, error) {
	entries := make([]Entry, len(artifacts))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, target := range artifacts {
		g.Go(func() error {
			if err := ValidateArtifact(target); err != nil {
				return err
			}
			entries[i] = Entry{
				ID:     target.ID,
				Slices: ArtifactSlices(target, FindBreakPoints(target, artifacts)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return entries, nil
}
