package composition

import (
	"slices"
	"sort"
)

// GroupArtifacts partitions the session timeline into groups tagged with the
// ids live throughout each group.
//
// Every slice boundary of every entry forms the master grid. Each pair of
// adjacent grid points (a, b) is tagged with the entries owning a slice [s, e)
// with s <= a and e >= b. Intervals nobody covers are recording gaps and are
// dropped. Adjacent intervals with the same live set are merged so groups are
// maximal. Output is ascending by Start.
func GroupArtifacts(entries []Entry) []Group {
	grid := boundaryGrid(entries)
	if len(grid) < 2 {
		return nil
	}

	groups := make([]Group, 0, len(grid)-1)
	for i := 0; i+1 < len(grid); i++ {
		a, b := grid[i], grid[i+1]
		ids := liveIDs(entries, a, b)
		if len(ids) == 0 {
			continue
		}

		if n := len(groups); n > 0 && groups[n-1].End == a && slices.Equal(groups[n-1].IDs, ids) {
			groups[n-1].End = b
			continue
		}
		groups = append(groups, Group{Start: a, End: b, IDs: ids})
	}
	return groups
}

// boundaryGrid folds every slice boundary into one sorted set of instants.
func boundaryGrid(entries []Entry) []int64 {
	seen := make(map[int64]struct{})
	var grid []int64
	for _, e := range entries {
		for _, s := range e.Slices {
			if s.Start == s.End {
				continue
			}
			for _, p := range [2]int64{s.Start, s.End} {
				if _, ok := seen[p]; !ok {
					seen[p] = struct{}{}
					grid = append(grid, p)
				}
			}
		}
	}
	sort.Slice(grid, func(i, j int) bool { return grid[i] < grid[j] })
	return grid
}

// liveIDs returns the ascending, deduplicated ids whose slices fully cover [a, b).
func liveIDs(entries []Entry, a, b int64) []ArtifactID {
	var ids []ArtifactID
	for _, e := range entries {
		if covers(e.Slices, a, b) && !slices.Contains(ids, e.ID) {
			ids = append(ids, e.ID)
		}
	}
	slices.Sort(ids)
	return ids
}

func covers(ss []Slice, a, b int64) bool {
	for _, s := range ss {
		if s.Start <= a && s.End >= b {
			return true
		}
	}
	return false
}
