package composition

import (
	"fmt"
	"sort"
)

const (
	// CanvasLabel is the label of the black background source.
	CanvasLabel = "canvas"
	// DefaultOutputLabel is the label the final composite is published under.
	DefaultOutputLabel = "video"
)

// GroupPlan is a group together with the layout chosen for it and the label
// of its last overlay.
type GroupPlan struct {
	Group
	Layout Layout `json:"layout"`
	Output string `json:"output"`
}

// Fragment is the filter chain for a run of groups.
type Fragment struct {
	Nodes  []Node
	Groups []GroupPlan
	Output string
}

// GroupFilters walks groups in timeline order, applies the layout policy to
// each and threads every group's final overlay into the next group as its
// background, so the groups form one continuous overlay chain starting from
// background. Labels are scoped as {group}-{artifact} so an artifact live in
// several groups never repeats a label.
func (b *Builder) GroupFilters(groups []Group, artifacts map[ArtifactID]Artifact, base int64, background string) (Fragment, error) {
	ordered := make([]Group, len(groups))
	copy(ordered, groups)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	frag := Fragment{Output: background}
	for idx, g := range ordered {
		live := make([]Artifact, 0, len(g.IDs))
		for _, id := range g.IDs {
			a, ok := artifacts[id]
			if !ok {
				return Fragment{}, fmt.Errorf("%w: group [%d, %d) references unknown id %d",
					ErrInvalidArtifact, g.Start, g.End, id)
			}
			live = append(live, a)
		}

		layout, view, err := b.groupView(idx, g, live, base, frag.Output)
		if err != nil {
			return Fragment{}, fmt.Errorf("group %d [%d, %d): %w", idx, g.Start, g.End, err)
		}

		frag.Nodes = append(frag.Nodes, view.Nodes()...)
		frag.Output = view.Output()
		frag.Groups = append(frag.Groups, GroupPlan{Group: g, Layout: layout, Output: frag.Output})
	}
	return frag, nil
}

func (b *Builder) groupView(idx int, g Group, live []Artifact, base int64, background string) (Layout, ViewFilters, error) {
	layout, err := SelectLayout(live)
	if err != nil {
		return 0, nil, err
	}

	place := func(a Artifact) Placement {
		return Placement{ID: a.ID, Start: a.Start, End: a.End(), Key: fmt.Sprintf("%d-%d", idx, a.ID)}
	}
	v := ViewParams{Slice: Slice{Start: g.Start, End: g.End}, Base: base, Background: background}
	r := SplitRoles(live)
	// Same-kind pairs are split regardless of kind.
	pair := append(append([]Artifact{}, r.Screens...), r.Cameras...)

	var view ViewFilters
	switch layout {
	case LayoutFullScreen:
		view, err = b.FullScreen(v, place(live[0]))
	case LayoutSplitScreen:
		view, err = b.SplitScreen(v, place(pair[0]), place(pair[1]))
	case LayoutSoloPresenter:
		view, err = b.SoloPresenter(v, place(r.Screens[0]), place(r.Cameras[0]))
	case LayoutAccompaniedPresenter:
		view, err = b.AccompaniedPresenter(v, place(r.Screens[0]),
			[2]Placement{place(r.Cameras[0]), place(r.Cameras[1])})
	case LayoutMultiPresenter:
		view, err = b.MultiPresenter(v,
			[2]Placement{place(r.Screens[0]), place(r.Screens[1])},
			[2]Placement{place(r.Cameras[0]), place(r.Cameras[1])})
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedLayout, layout)
	}
	return layout, view, err
}
