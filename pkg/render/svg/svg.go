// Package svg draws positioned org charts directly as SVG cards with
// elbow connectors, without going through Graphviz.
//
// Node positions are card centers. The canvas is sized to the layout
// bounds plus one card and Padding on every side.
package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	svgo "github.com/ajstarks/svgo"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Styles.
const (
	StyleCard    = "card"
	StyleCompact = "compact"
)

// Default card geometry.
const (
	DefaultNodeWidth  = 180.0
	DefaultNodeHeight = 64.0
	DefaultPadding    = 24.0
)

// Options configures SVG rendering.
type Options struct {
	// Style is StyleCard (label and subtitle) or StyleCompact (label only,
	// half height).
	Style      string
	NodeWidth  float64
	NodeHeight float64
	Padding    float64
	// Title is drawn in the top-left corner when set.
	Title string
}

// SetDefaults fills zero fields.
func (o *Options) SetDefaults() {
	if o.Style == "" {
		o.Style = StyleCard
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
		if o.Style == StyleCompact {
			o.NodeHeight /= 2
		}
	}
	if o.Padding <= 0 {
		o.Padding = DefaultPadding
	}
}

// Validate reports an unknown style.
func (o Options) Validate() error {
	switch o.Style {
	case "", StyleCard, StyleCompact:
		return nil
	}
	return fmt.Errorf("invalid style: %q (must be %q or %q)", o.Style, StyleCard, StyleCompact)
}

type palette struct{ fill, stroke string }

var kindPalette = map[string]palette{
	org.KindPerson.String():   {"#ffffff", "#334155"},
	org.KindTeam.String():     {"#e0f2fe", "#0369a1"},
	org.KindOpenRole.String(): {"#fef3c7", "#b45309"},
	org.KindAgent.String():    {"#ede9fe", "#6d28d9"},
}

const (
	edgeStyle     = "fill:none;stroke:#94a3b8;stroke-width:2"
	labelStyle    = "font-family:sans-serif;font-size:14px;font-weight:bold;fill:#0f172a;text-anchor:middle"
	subtitleStyle = "font-family:sans-serif;font-size:11px;fill:#475569;text-anchor:middle"
	titleStyle    = "font-family:sans-serif;font-size:16px;font-weight:bold;fill:#0f172a"
)

// Render writes the layout as an SVG document to w.
func Render(w io.Writer, l graph.Layout, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	opts.SetDefaults()

	header := 0.0
	if opts.Title != "" {
		header = 32
	}
	// Card centers map to canvas coordinates by this offset.
	dx := opts.Padding + opts.NodeWidth/2 - l.MinX
	dy := opts.Padding + header + opts.NodeHeight/2 - l.MinY
	width := px(l.Width + opts.NodeWidth + 2*opts.Padding)
	height := px(l.Height + opts.NodeHeight + 2*opts.Padding + header)
	if len(l.Nodes) == 0 {
		width, height = px(2*opts.Padding), px(2*opts.Padding+header)
	}

	canvas := svgo.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#f8fafc")
	if opts.Title != "" {
		canvas.Text(px(opts.Padding), px(opts.Padding+16), opts.Title, titleStyle)
	}

	index := make(map[string]graph.LayoutNode, len(l.Nodes))
	for _, n := range l.Nodes {
		index[n.ID] = n
	}

	// Connectors first so cards sit on top.
	canvas.Gstyle(edgeStyle)
	for _, e := range l.ParentEdges() {
		parent, child := index[e.Source], index[e.Target]
		if child.Level != parent.Level+1 {
			continue
		}
		x1, y1 := parent.X+dx, parent.Y+dy+opts.NodeHeight/2
		x2, y2 := child.X+dx, child.Y+dy-opts.NodeHeight/2
		midY := (y1 + y2) / 2
		canvas.Polyline(
			[]int{px(x1), px(x1), px(x2), px(x2)},
			[]int{px(y1), px(midY), px(midY), px(y2)},
		)
	}
	canvas.Gend()

	for _, n := range l.Nodes {
		drawNode(canvas, n, n.X+dx, n.Y+dy, opts)
	}

	canvas.End()
	return nil
}

func drawNode(canvas *svgo.SVG, n graph.LayoutNode, cx, cy float64, opts Options) {
	pal, ok := kindPalette[n.Kind]
	if !ok {
		pal = kindPalette[org.KindPerson.String()]
	}
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", pal.fill, pal.stroke)
	if n.Kind == org.KindOpenRole.String() {
		style += ";stroke-dasharray:6,4"
	}

	x, y := px(cx-opts.NodeWidth/2), px(cy-opts.NodeHeight/2)
	canvas.Group(fmt.Sprintf(`id="node-%s"`, sanitizeID(n.ID)))
	canvas.Title(n.ID)
	canvas.Roundrect(x, y, px(opts.NodeWidth), px(opts.NodeHeight), 8, 8, style)

	maxChars := int(opts.NodeWidth / 8)
	label := truncate(n.DisplayLabel(), maxChars)
	if opts.Style == StyleCompact {
		canvas.Text(px(cx), px(cy+5), label, labelStyle)
	} else {
		canvas.Text(px(cx), px(cy-4), label, labelStyle)
		p, _ := n.Profile()
		if sub := p.Subtitle(); sub != "" {
			canvas.Text(px(cx), px(cy+14), truncate(sub, int(opts.NodeWidth/6.5)), subtitleStyle)
		}
	}
	canvas.Gend()
}

func px(v float64) int { return int(math.Round(v)) }

func truncate(s string, max int) string {
	r := []rune(s)
	if max < 2 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}

// sanitizeID keeps ids usable as XML id attributes.
func sanitizeID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, id)
}
