package graph

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// =============================================================================
// Layout - Positioned Chart
// =============================================================================

// Layout is the serialization format for a computed layout. It carries
// everything a renderer needs, so cached layouts can be rendered without
// re-reading the dataset:
//
//   - View, spacing and anchors: the options the layout was computed with
//   - Width, Height: the bounding box of node positions
//   - Nodes: positioned nodes with their level
//   - Edges: the reporting lines the engine followed, one per child
//   - Levels: node ids by depth, in visitation order
//   - Issues: recoverable input problems the engine skipped
type Layout struct {
	View              string  `json:"view,omitempty"`
	Period            string  `json:"period,omitempty"`
	HorizontalSpacing float64 `json:"horizontal_spacing"`
	VerticalSpacing   float64 `json:"vertical_spacing"`
	CenterX           float64 `json:"center_x"`
	BaseY             float64 `json:"base_y"`
	Traversal         string  `json:"traversal,omitempty"`
	Components        string  `json:"components,omitempty"`

	MinX   float64 `json:"min_x"`
	MinY   float64 `json:"min_y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Nodes  []LayoutNode `json:"nodes"`
	Edges  []Edge       `json:"edges,omitempty"`
	Levels [][]string   `json:"levels"`
	Roots  []string     `json:"roots,omitempty"`
	Issues []Issue      `json:"issues,omitempty"`
}

// LayoutNode is a node with its computed position.
type LayoutNode struct {
	Node
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Level int     `json:"level"`
}

// Issue is a serialized layout issue.
type Issue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IssueFrom serializes an engine or load issue.
func IssueFrom(err error) Issue {
	return Issue{Code: string(orgerrors.GetCode(err)), Message: err.Error()}
}

// Node returns the positioned node with the given id.
func (l *Layout) Node(id string) (LayoutNode, bool) {
	for _, n := range l.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return LayoutNode{}, false
}

// ParentEdges returns the edges a renderer should draw: both endpoints
// present, no self-edges, and only the first edge into each target. Layouts
// produced by [FromResult] already satisfy this; hand-edited files may not.
func (l *Layout) ParentEdges() []Edge {
	known := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		known[n.ID] = true
	}
	seen := make(map[string]bool, len(l.Edges))
	out := make([]Edge, 0, len(l.Edges))
	for _, e := range l.Edges {
		if e.Source == e.Target || !known[e.Source] || !known[e.Target] || seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		out = append(out, e)
	}
	return out
}

// FromResult serializes a layout result. opts should be the options passed to
// the engine.
func FromResult(res tree.Result, opts tree.Options) Layout {
	opts.SetDefaults()
	b := res.Bounds()
	l := Layout{
		HorizontalSpacing: opts.HorizontalSpacing,
		VerticalSpacing:   opts.VerticalSpacing,
		CenterX:           opts.CenterX,
		BaseY:             opts.BaseY,
		Traversal:         opts.Traversal.String(),
		Components:        opts.Components.String(),
		MinX:              b.MinX,
		MinY:              b.MinY,
		Width:             b.Width(),
		Height:            b.Height(),
		Nodes:             make([]LayoutNode, len(res.Nodes)),
		Edges:             make([]Edge, len(res.Edges)),
		Levels:            make([][]string, len(res.Levels)),
		Roots:             append([]string(nil), res.Roots...),
	}
	for i, n := range res.Nodes {
		l.Nodes[i] = LayoutNode{
			Node:  nodeFromOrg(n),
			X:     n.Position.X,
			Y:     n.Position.Y,
			Level: res.Level(n.ID),
		}
	}
	for i, e := range res.Edges {
		l.Edges[i] = Edge{Source: e.Source, Target: e.Target}
	}
	for d, ids := range res.Levels {
		l.Levels[d] = append([]string(nil), ids...)
	}
	for _, issue := range res.Issues {
		l.Issues = append(l.Issues, IssueFrom(issue))
	}
	return l
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Every level entry must name a node in Nodes.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}

	known := make(map[string]bool, len(l.Nodes))
	for _, n := range l.Nodes {
		known[n.ID] = true
	}
	for d, ids := range l.Levels {
		for _, id := range ids {
			if !known[id] {
				return Layout{}, fmt.Errorf("level %d references unknown node %q", d, id)
			}
		}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
