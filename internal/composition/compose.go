package composition

import (
	"fmt"
	"sort"
)

// Options controls one composition job.
type Options struct {
	Dimensions Dimensions
	// Base is output time zero. Nil means the earliest artifact start; an
	// explicit base must not lie after any artifact's start.
	Base *int64
	// OutputLabel names the final composite. Empty means DefaultOutputLabel.
	OutputLabel string
}

// Plan is the fully resolved filter graph for one session.
type Plan struct {
	ID         string      `json:"id,omitempty"`
	Base       int64       `json:"base"`
	End        int64       `json:"end"`
	Dimensions Dimensions  `json:"dimensions"`
	Groups     []GroupPlan `json:"groups"`
	Nodes      []Node      `json:"-"`
	Output     string      `json:"output"`
}

// Duration is the length of the composite in milliseconds.
func (p *Plan) Duration() int64 {
	return p.End - p.Base
}

// String renders the plan as a filter_complex description.
func (p *Plan) String() string {
	return RenderGraph(p.Nodes)
}

// Compose runs breakpoints, slicing, grouping and filter construction over a
// session's artifacts. The result does not depend on input order. An empty
// artifact list yields an empty plan; whether that is a failure is the
// caller's decision.
func Compose(artifacts []Artifact, opts Options) (*Plan, error) {
	if err := ValidateArtifacts(artifacts); err != nil {
		return nil, err
	}

	b := NewBuilder(opts.Dimensions)
	output := opts.OutputLabel
	if output == "" {
		output = DefaultOutputLabel
	}

	plan := &Plan{Dimensions: b.Dimensions(), Groups: []GroupPlan{}}
	if len(artifacts) == 0 {
		return plan, nil
	}

	sorted := make([]Artifact, len(artifacts))
	copy(sorted, artifacts)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	base, end := sorted[0].Start, sorted[0].End()
	byID := make(map[ArtifactID]Artifact, len(sorted))
	for _, a := range sorted {
		base = min(base, a.Start)
		end = max(end, a.End())
		byID[a.ID] = a
	}
	if opts.Base != nil {
		if *opts.Base > base {
			return nil, fmt.Errorf("%w: base %d is after earliest artifact start %d", ErrInvalidBase, *opts.Base, base)
		}
		base = *opts.Base
	}
	plan.Base, plan.End = base, end

	entries, err := SliceAll(sorted)
	if err != nil {
		return nil, err
	}
	groups := GroupArtifacts(entries)

	canvas := Canvas{
		Width:    plan.Dimensions.Width,
		Height:   plan.Dimensions.Height,
		Duration: plan.Duration(),
		Out:      CanvasLabel,
	}
	frag, err := b.GroupFilters(groups, byID, base, canvas.Out)
	if err != nil {
		return nil, err
	}

	plan.Nodes = append([]Node{canvas}, frag.Nodes...)
	plan.Groups = frag.Groups

	// Publish the last node under the output label.
	last := len(plan.Nodes) - 1
	plan.Nodes[last] = plan.Nodes[last].withOutput(output)
	if n := len(plan.Groups); n > 0 {
		plan.Groups[n-1].Output = output
	}
	plan.Output = output
	return plan, nil
}
