package composition

import "sort"

// FindBreakPoints returns the instants at which target's timeline must be cut
// because another artifact starts or ends strictly inside it. Instants equal to
// target's own start or end are already boundaries and are never returned, so
// passing target inside others is harmless. The result is sorted ascending and
// deduplicated.
func FindBreakPoints(target Artifact, others []Artifact) []int64 {
	start, end := target.Start, target.End()

	seen := make(map[int64]struct{})
	points := make([]int64, 0, 2*len(others))
	add := func(p int64) {
		if p <= start || p >= end {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}

	for _, other := range others {
		add(other.Start)
		add(other.End())
	}

	sort.Slice(points, func(i, j int) bool { return points[i] < points[j] })
	return points
}
