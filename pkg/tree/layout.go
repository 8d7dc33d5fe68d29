package tree

import (
	"errors"
	"math"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Result is the outcome of a layout pass.
type Result struct {
	// Nodes are copies of the input nodes with Position set, in input order.
	// Duplicate ids keep only their first occurrence.
	Nodes []org.Node
	// Edges are the parent edges the layout follows, in input order.
	// Dangling, self, second-parent and cycle-closing edges are left out,
	// so every node appears as a target at most once.
	Edges []org.Edge
	// Levels groups ids by depth in visitation order.
	Levels Levels
	// Roots lists the tree roots in layout order: nodes without an accepted
	// parent first, then any node promoted to root to break a cycle.
	Roots []string
	// Issues lists recoverable problems with the input, in detection order.
	// Each is one of [*DanglingEdgeError], [*CycleError],
	// [*DuplicateParentError] or [*DuplicateNodeError].
	Issues []error

	index map[string]int
	depth map[string]int
}

// Node returns the positioned node with the given id.
func (r Result) Node(id string) (org.Node, bool) {
	i, ok := r.index[id]
	if !ok {
		return org.Node{}, false
	}
	return r.Nodes[i], true
}

// Level returns the depth of id, or -1 if id was not laid out.
func (r Result) Level(id string) int {
	if d, ok := r.depth[id]; ok {
		return d
	}
	return -1
}

// Rect is an axis-aligned bounding box over node positions.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns MaxY - MinY.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Bounds returns the box spanned by all node positions. It is the zero Rect
// for an empty result.
func (r Result) Bounds() Rect {
	if len(r.Nodes) == 0 {
		return Rect{}
	}
	b := Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, n := range r.Nodes {
		b.MinX = min(b.MinX, n.Position.X)
		b.MaxX = max(b.MaxX, n.Position.X)
		b.MinY = min(b.MinY, n.Position.Y)
		b.MaxY = max(b.MaxY, n.Position.Y)
	}
	return b
}

// Err joins Issues with [errors.Join]. It is nil when the input was clean.
func (r Result) Err() error {
	return errors.Join(r.Issues...)
}

// Layout positions nodes as a top-down tree. Edges point from parent to
// child. The input slices are not modified.
//
// Malformed input never fails the pass: bad records are skipped, reported
// in [Result.Issues] and logged at warn level through opts.Logger.
func Layout(nodes []org.Node, edges []org.Edge, opts Options) Result {
	opts.SetDefaults()

	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	f := buildForest(ids, edges)
	w := f.traverse(opts.Traversal)

	res := Result{
		Nodes:  make([]org.Node, 0, len(f.order)),
		Edges:  f.edges(),
		Levels: w.levels,
		Roots:  w.roots,
		Issues: f.issues,
		index:  make(map[string]int, len(f.order)),
		depth:  w.depth,
	}

	seen := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		res.index[n.ID] = len(res.Nodes)
		res.Nodes = append(res.Nodes, n)
	}

	switch opts.Components {
	case ComponentsBanded:
		positionBanded(&res, w, opts)
	default:
		positionShared(&res, opts)
	}

	for _, issue := range res.Issues {
		opts.Logger.Warn("skipped record", "issue", issue)
	}
	opts.Logger.Debug("computed layout",
		"nodes", len(res.Nodes), "levels", res.Levels.Depth(), "roots", len(res.Roots), "issues", len(res.Issues))
	return res
}

// LayoutChart lays out every node and edge of c.
func LayoutChart(c *org.Chart, opts Options) Result {
	return Layout(c.Nodes(), c.Edges(), opts)
}

// positionShared centers every level on opts.CenterX.
func positionShared(res *Result, opts Options) {
	for depth, ids := range res.Levels {
		y := opts.BaseY + float64(depth)*opts.VerticalSpacing
		x0 := opts.CenterX - float64(len(ids)-1)*opts.HorizontalSpacing/2
		for i, id := range ids {
			res.Nodes[res.index[id]].Position = org.Position{
				X: x0 + float64(i)*opts.HorizontalSpacing,
				Y: y,
			}
		}
	}
}

// positionBanded gives each component a band as wide as its widest level,
// places the bands left to right in root order separated by
// opts.ComponentGap, and centers the row on opts.CenterX.
func positionBanded(res *Result, w walk, opts Options) {
	k := len(w.roots)
	if k == 0 {
		return
	}

	// counts[c][d] is the number of nodes of component c at depth d.
	counts := make([][]int, k)
	for d, ids := range res.Levels {
		for _, id := range ids {
			c := w.component[id]
			for len(counts[c]) <= d {
				counts[c] = append(counts[c], 0)
			}
			counts[c][d]++
		}
	}

	widths := make([]float64, k)
	total := opts.ComponentGap * float64(k-1)
	for c, levels := range counts {
		widest := 0
		for _, n := range levels {
			widest = max(widest, n)
		}
		widths[c] = float64(widest-1) * opts.HorizontalSpacing
		total += widths[c]
	}

	centers := make([]float64, k)
	left := opts.CenterX - total/2
	for c := range k {
		centers[c] = left + widths[c]/2
		left += widths[c] + opts.ComponentGap
	}

	// Per component and depth, the next slot to fill.
	next := make([][]int, k)
	for c := range next {
		next[c] = make([]int, len(counts[c]))
	}
	for d, ids := range res.Levels {
		y := opts.BaseY + float64(d)*opts.VerticalSpacing
		for _, id := range ids {
			c := w.component[id]
			n := counts[c][d]
			x0 := centers[c] - float64(n-1)*opts.HorizontalSpacing/2
			res.Nodes[res.index[id]].Position = org.Position{
				X: x0 + float64(next[c][d])*opts.HorizontalSpacing,
				Y: y,
			}
			next[c][d]++
		}
	}
}
