package composition

import (
	"fmt"
	"strconv"
)

// Dimensions is the output canvas size in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultDimensions is the 720p canvas recordings are composited onto.
var DefaultDimensions = Dimensions{Width: 1280, Height: 720}

// presenterMargin is the gap between the picture-in-picture camera and the
// canvas edges in the solo presenter layout.
const presenterMargin = 10

// Placement is one live artifact positioned inside a group.
type Placement struct {
	ID    ArtifactID
	Start int64 // the artifact's own start instant
	End   int64 // the artifact's exclusive end instant
	// Key scopes the generated labels (trim-{Key}, scale-{Key}, overlay-{Key}).
	// Empty means the artifact id.
	Key string
}

func (p Placement) key() string {
	if p.Key != "" {
		return p.Key
	}
	return strconv.Itoa(int(p.ID))
}

// ViewParams is what every artifact drawn in one group shares.
type ViewParams struct {
	Slice      Slice
	Base       int64  // composition start; output time zero
	Background string // label of the composite drawn so far
}

// OverlayFilters is the cut -> scale -> overlay chain for one artifact.
type OverlayFilters struct {
	Cut     Cut
	Scale   Scale
	Overlay Overlay
}

// Output is the label carrying the composite after this overlay.
func (f OverlayFilters) Output() string { return f.Overlay.Out }

// Nodes returns the chain in dependency order.
func (f OverlayFilters) Nodes() []Node { return []Node{f.Cut, f.Scale, f.Overlay} }

// ViewFilters is every artifact chain of one layout in drawing order; each
// overlay is drawn onto the previous one's output.
type ViewFilters []OverlayFilters

// Output is the label of the last overlay drawn.
func (v ViewFilters) Output() string {
	if len(v) == 0 {
		return ""
	}
	return v[len(v)-1].Output()
}

// Nodes flattens the view into one dependency-ordered node list.
func (v ViewFilters) Nodes() []Node {
	nodes := make([]Node, 0, 3*len(v))
	for _, f := range v {
		nodes = append(nodes, f.Nodes()...)
	}
	return nodes
}

// Builder constructs layout filter chains for a fixed canvas.
type Builder struct {
	dims Dimensions
}

// NewBuilder returns a Builder for dims. Zero dimensions fall back to
// DefaultDimensions.
func NewBuilder(dims Dimensions) *Builder {
	if dims.Width <= 0 || dims.Height <= 0 {
		dims = DefaultDimensions
	}
	return &Builder{dims: dims}
}

// Dimensions returns the canvas size the builder lays out on.
func (b *Builder) Dimensions() Dimensions { return b.dims }

type box struct {
	w, h, x, y int
}

// overlay derives one artifact chain. The trim window is the slice on the
// artifact's own clock; the scale offset is the slice on the output clock.
func overlay(v ViewParams, p Placement, background string, at box) (OverlayFilters, error) {
	if v.Base > p.Start {
		return OverlayFilters{}, fmt.Errorf("%w: base %d is after artifact %d start %d",
			ErrInvalidBase, v.Base, p.ID, p.Start)
	}
	if v.Slice.Start < p.Start || v.Slice.End > p.End || v.Slice.End <= v.Slice.Start {
		return OverlayFilters{}, fmt.Errorf("%w: slice [%d, %d) of artifact %d spanning [%d, %d)",
			ErrSliceOutOfRange, v.Slice.Start, v.Slice.End, p.ID, p.Start, p.End)
	}

	key := p.key()
	trim := "trim-" + key
	scale := "scale-" + key
	out := "overlay-" + key

	return OverlayFilters{
		Cut: Cut{
			In:        strconv.Itoa(int(p.ID)),
			TrimStart: v.Slice.Start - p.Start,
			TrimEnd:   v.Slice.End - p.Start,
			Out:       trim,
		},
		Scale: Scale{
			In:     trim,
			Offset: v.Slice.Start - v.Base,
			Width:  at.w,
			Height: at.h,
			Out:    scale,
		},
		Overlay: Overlay{
			Background: background,
			In:         scale,
			X:          at.x,
			Y:          at.y,
			Out:        out,
		},
	}, nil
}

// draw chains the placements in order, each onto the previous overlay.
func draw(v ViewParams, placements []Placement, boxes []box) (ViewFilters, error) {
	view := make(ViewFilters, 0, len(placements))
	background := v.Background
	for i, p := range placements {
		f, err := overlay(v, p, background, boxes[i])
		if err != nil {
			return nil, err
		}
		view = append(view, f)
		background = f.Output()
	}
	return view, nil
}

// FullScreen scales one artifact to the whole canvas.
func (b *Builder) FullScreen(v ViewParams, p Placement) (ViewFilters, error) {
	return draw(v, []Placement{p}, []box{{w: b.dims.Width, h: b.dims.Height}})
}

// SplitScreen draws left on the left half, then right on the right half on
// top of left's output.
func (b *Builder) SplitScreen(v ViewParams, left, right Placement) (ViewFilters, error) {
	half := b.dims.Width / 2
	return draw(v, []Placement{left, right}, []box{
		{w: half, h: b.dims.Height},
		{w: half, h: b.dims.Height, x: half},
	})
}

// SoloPresenter draws the screen full canvas and the presenter at a fifth of
// the canvas in the bottom-right corner.
func (b *Builder) SoloPresenter(v ViewParams, screen, presenter Placement) (ViewFilters, error) {
	w, h := b.dims.Width/5, b.dims.Height/5
	return draw(v, []Placement{screen, presenter}, []box{
		{w: b.dims.Width, h: b.dims.Height},
		{w: w, h: h, x: b.dims.Width - w - presenterMargin, y: b.dims.Height - h - presenterMargin},
	})
}

// AccompaniedPresenter draws the screen over the left three quarters and the
// two cameras stacked in the right quarter, first camera on top.
//
//	+--------------+--------+
//	|              | user 1 |
//	|    screen    +--------+
//	|              | user 2 |
//	+--------------+--------+
func (b *Builder) AccompaniedPresenter(v ViewParams, screen Placement, users [2]Placement) (ViewFilters, error) {
	sw := b.dims.Width * 3 / 4
	uw, uh := b.dims.Width/4, b.dims.Height/2
	return draw(v, []Placement{screen, users[0], users[1]}, []box{
		{w: sw, h: b.dims.Height},
		{w: uw, h: uh, x: sw},
		{w: uw, h: uh, x: sw, y: uh},
	})
}

// MultiPresenter draws a 2x2 grid: screens on the top row, cameras on the
// bottom row, first of each pair on the left.
func (b *Builder) MultiPresenter(v ViewParams, screens, users [2]Placement) (ViewFilters, error) {
	w, h := b.dims.Width/2, b.dims.Height/2
	return draw(v, []Placement{screens[0], screens[1], users[0], users[1]}, []box{
		{w: w, h: h},
		{w: w, h: h, x: w},
		{w: w, h: h, y: h},
		{w: w, h: h, x: w, y: h},
	})
}
