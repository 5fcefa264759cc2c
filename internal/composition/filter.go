package composition

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is one filter-graph operation: a Canvas source, or a Cut, Scale or
// Overlay step. Nodes carry their labels and parameters as values and only
// become ffmpeg filter syntax in String.
type Node interface {
	Inputs() []string
	Output() string
	String() string

	withOutput(label string) Node
}

// Canvas is the black background source every group is composited onto.
type Canvas struct {
	Width    int
	Height   int
	Duration int64 // ms
	Out      string
}

// Cut trims an artifact's raw input to a window of its own clock and resets
// timestamps so the clip begins at local zero.
type Cut struct {
	In        string
	TrimStart int64 // ms on the artifact clock
	TrimEnd   int64
	Out       string
}

// Scale shifts a trimmed clip to its absolute position on the output timeline
// and fits it into a Width x Height box.
type Scale struct {
	In     string
	Offset int64 // ms from the composition base
	Width  int
	Height int
	Out    string
}

// Overlay composites In onto Background at (X, Y). The background persists
// after the overlaid clip ends.
type Overlay struct {
	Background string
	In         string
	X          int
	Y          int
	Out        string
}

func (n Canvas) Inputs() []string  { return nil }
func (n Canvas) Output() string    { return n.Out }
func (n Cut) Inputs() []string     { return []string{n.In} }
func (n Cut) Output() string       { return n.Out }
func (n Scale) Inputs() []string   { return []string{n.In} }
func (n Scale) Output() string     { return n.Out }
func (n Overlay) Inputs() []string { return []string{n.Background, n.In} }
func (n Overlay) Output() string   { return n.Out }

func (n Canvas) withOutput(label string) Node  { n.Out = label; return n }
func (n Cut) withOutput(label string) Node     { n.Out = label; return n }
func (n Scale) withOutput(label string) Node   { n.Out = label; return n }
func (n Overlay) withOutput(label string) Node { n.Out = label; return n }

// String renders e.g. "color=color=black:size=1280x720:duration=1800 [canvas]".
func (n Canvas) String() string {
	return chain(nil, fmt.Sprintf("color=color=black:size=%dx%d:duration=%s",
		n.Width, n.Height, seconds(n.Duration)), n.Out)
}

// String renders e.g. "[1] trim=start=180:end=480, setpts=PTS-STARTPTS [trim-1]".
func (n Cut) String() string {
	return chain(n.Inputs(), fmt.Sprintf("trim=start=%s:end=%s, setpts=PTS-STARTPTS",
		seconds(n.TrimStart), seconds(n.TrimEnd)), n.Out)
}

// String renders the timestamp shift followed by a letterboxing scale:
// the clip is shrunk to fit (w-1)x(h-1), padded to w:h and given square pixels.
func (n Scale) String() string {
	return chain(n.Inputs(), fmt.Sprintf(
		"setpts=PTS+%s/TB, scale=%dx%d:force_original_aspect_ratio=decrease, pad=%d:%d:(ow-iw)/2:(oh-ih)/2, setsar=1",
		seconds(n.Offset), n.Width-1, n.Height-1, n.Width, n.Height), n.Out)
}

// String renders e.g. "[bg][scale-2] overlay=eof_action=pass:x=640 [overlay-2]".
// Zero coordinates are omitted.
func (n Overlay) String() string {
	var b strings.Builder
	b.WriteString("overlay=eof_action=pass")
	if n.X != 0 {
		fmt.Fprintf(&b, ":x=%d", n.X)
	}
	if n.Y != 0 {
		fmt.Fprintf(&b, ":y=%d", n.Y)
	}
	return chain(n.Inputs(), b.String(), n.Out)
}

func chain(inputs []string, body, output string) string {
	var b strings.Builder
	for _, in := range inputs {
		b.WriteString("[" + in + "]")
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(body)
	if output != "" {
		b.WriteString(" [" + output + "]")
	}
	return b.String()
}

// seconds formats milliseconds as the shortest exact decimal number of seconds.
func seconds(ms int64) string {
	return strconv.FormatFloat(float64(ms)/1000, 'f', -1, 64)
}

// RenderGraph joins nodes into one filter_complex description.
func RenderGraph(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.String()
	}
	return strings.Join(parts, ";\n")
}
