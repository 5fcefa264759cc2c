package composition

import (
	"fmt"
	"sort"
)

// Layout is the visual arrangement used to composite one group.
type Layout int

const (
	// LayoutFullScreen renders a single artifact over the whole canvas.
	LayoutFullScreen Layout = iota + 1
	// LayoutSplitScreen renders two artifacts side by side, lower id on the left.
	LayoutSplitScreen
	// LayoutSoloPresenter renders a screen share full canvas with the single
	// camera as a picture-in-picture in the bottom-right corner.
	LayoutSoloPresenter
	// LayoutAccompaniedPresenter renders a screen share on the left 75% and
	// two cameras stacked in the right column.
	LayoutAccompaniedPresenter
	// LayoutMultiPresenter renders two screens on the top row and two cameras
	// on the bottom row.
	LayoutMultiPresenter
)

var layoutNames = map[Layout]string{
	LayoutFullScreen:           "full_screen",
	LayoutSplitScreen:          "split_screen",
	LayoutSoloPresenter:        "solo_presenter",
	LayoutAccompaniedPresenter: "accompanied_presenter",
	LayoutMultiPresenter:       "multi_presenter",
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("layout(%d)", int(l))
}

// MarshalText encodes the layout by name in JSON plans.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Roles is a live set split into screen shares and cameras, each ascending by id.
// Ascending id is the side-assignment contract: the lower id is drawn left
// (or on top) in every multi-artifact layout.
type Roles struct {
	Screens []Artifact
	Cameras []Artifact
}

// SplitRoles separates live artifacts into screens and cameras.
func SplitRoles(live []Artifact) Roles {
	var r Roles
	for _, a := range live {
		if a.Screen {
			r.Screens = append(r.Screens, a)
		} else {
			r.Cameras = append(r.Cameras, a)
		}
	}
	byID := func(s []Artifact) {
		sort.Slice(s, func(i, j int) bool { return s[i].ID < s[j].ID })
	}
	byID(r.Screens)
	byID(r.Cameras)
	return r
}

// SelectLayout maps a group's live artifacts to a layout. Single artifacts are
// always full screen and pairs of the same kind are split; mixed sets follow
// the presenter layouts. Any other combination returns ErrUnsupportedLayout.
func SelectLayout(live []Artifact) (Layout, error) {
	r := SplitRoles(live)
	screens, cameras := len(r.Screens), len(r.Cameras)

	switch {
	case screens+cameras == 1:
		return LayoutFullScreen, nil
	case screens == 0 && cameras == 2, screens == 2 && cameras == 0:
		return LayoutSplitScreen, nil
	case screens == 1 && cameras == 1:
		return LayoutSoloPresenter, nil
	case screens == 1 && cameras == 2:
		return LayoutAccompaniedPresenter, nil
	case screens == 2 && cameras == 2:
		return LayoutMultiPresenter, nil
	}
	return 0, fmt.Errorf("%w: %d cameras and %d screens", ErrUnsupportedLayout, cameras, screens)
}
