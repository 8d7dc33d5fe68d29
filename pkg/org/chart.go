package org

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

var (
	// ErrInvalidNodeID is returned by [Chart.AddNode] when the node ID is
	// empty. All nodes must have non-empty identifiers.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Chart.AddNode] when a node with the
	// same ID already exists in the chart.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation names a node that does
	// not exist in the chart.
	ErrUnknownNode = errors.New("unknown node")

	// ErrDanglingEdge is reported by [Chart.Validate] for edges whose source
	// or target is not in the chart.
	ErrDanglingEdge = errors.New("edge references unknown node")

	// ErrMultipleParents is reported by [Chart.Validate] when a node is the
	// target of more than one edge.
	ErrMultipleParents = errors.New("node has more than one parent")

	// ErrSelfLoop is reported by [Chart.Validate] for edges from a node to
	// itself.
	ErrSelfLoop = errors.New("node is its own parent")
)

// Position is a point in layout space. X grows to the right, Y grows
// downward, matching the screen coordinates of the drawing surface.
type Position struct {
	X float64
	Y float64
}

// Node is a member of an org chart.
//
// The zero value is not usable - ID must be set before adding to a Chart.
type Node struct {
	ID       string   // Unique identifier
	Profile  Profile  // Display attributes, opaque to layout
	Position Position // Assigned by the layout engine
}

// Edge is a reporting line: Source is the parent of Target.
type Edge struct {
	Source string
	Target string
}

// String renders the edge as "source→target" for logs and messages.
func (e Edge) String() string { return e.Source + "→" + e.Target }

// NewID returns a fresh random node identifier for nodes created
// interactively rather than loaded from a dataset.
func NewID() string { return uuid.NewString() }

// Chart is an ordered node set plus an ordered edge list.
//
// Insertion order is preserved for both nodes and edges because the layout
// engine is deterministic only with respect to input order.
//
// The zero value is not usable - use NewChart.
type Chart struct {
	nodes []*Node
	index map[string]*Node
	edges []Edge
}

// NewChart creates an empty chart.
func NewChart() *Chart {
	return &Chart{index: make(map[string]*Node)}
}

// AddNode appends a node. Returns ErrInvalidNodeID if the ID is empty or
// ErrDuplicateNodeID if it is already taken.
func (c *Chart) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := c.index[n.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
	}
	node := &n
	node.Profile = n.Profile.clone()
	c.nodes = append(c.nodes, node)
	c.index[node.ID] = node
	return nil
}

// AddEdge appends an edge as given. No validation is performed: dangling
// edges and second parents are kept so that [Chart.Validate] and the layout
// engine can report them.
func (c *Chart) AddEdge(e Edge) {
	c.edges = append(c.edges, e)
}

// RemoveEdge removes every edge source→target. It is a no-op when no such
// edge exists.
func (c *Chart) RemoveEdge(source, target string) {
	c.edges = slices.DeleteFunc(c.edges, func(e Edge) bool {
		return e.Source == source && e.Target == target
	})
}

// RemoveNode removes a node and every edge touching it. Former children of
// the node become roots. Returns ErrUnknownNode if the node is absent.
func (c *Chart) RemoveNode(id string) error {
	if _, ok := c.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, id)
	}
	delete(c.index, id)
	c.nodes = slices.DeleteFunc(c.nodes, func(n *Node) bool { return n.ID == id })
	c.edges = slices.DeleteFunc(c.edges, func(e Edge) bool {
		return e.Source == id || e.Target == id
	})
	return nil
}

// Node returns the node with the given ID and true, or nil and false if not
// found. The pointer refers to the chart's node; ID changes are not allowed.
func (c *Chart) Node(id string) (*Node, bool) {
	n, ok := c.index[id]
	return n, ok
}

// Nodes returns copies of all nodes in insertion order.
func (c *Chart) Nodes() []Node {
	out := make([]Node, len(c.nodes))
	for i, n := range c.nodes {
		out[i] = *n
	}
	return out
}

// Edges returns a copy of all edges in insertion order.
func (c *Chart) Edges() []Edge { return slices.Clone(c.edges) }

// NodeCount returns the number of nodes.
func (c *Chart) NodeCount() int { return len(c.nodes) }

// EdgeCount returns the number of edges, including invalid ones.
func (c *Chart) EdgeCount() int { return len(c.edges) }

// Parent returns the first parent of id in edge order, following the same
// first-parent-wins rule as the layout engine. Self loops and edges from
// unknown nodes are ignored.
func (c *Chart) Parent(id string) (string, bool) {
	for _, e := range c.edges {
		if e.Target != id || e.Source == id {
			continue
		}
		if _, ok := c.index[e.Source]; ok {
			return e.Source, true
		}
	}
	return "", false
}

// Children returns the ids of nodes whose first parent is id, in edge order.
func (c *Chart) Children(id string) []string {
	parents := c.parents()
	seen := make(map[string]bool)
	var out []string
	for _, e := range c.edges {
		if e.Source != id || parents[e.Target] != id || seen[e.Target] {
			continue
		}
		seen[e.Target] = true
		out = append(out, e.Target)
	}
	return out
}

// Roots returns the ids of nodes without a (valid) parent, in insertion order.
func (c *Chart) Roots() []string {
	parents := c.parents()
	var out []string
	for _, n := range c.nodes {
		if _, ok := parents[n.ID]; !ok {
			out = append(out, n.ID)
		}
	}
	return out
}

// parents maps every edge target to its first parent under the rules of
// [Chart.Parent].
func (c *Chart) parents() map[string]string {
	out := make(map[string]string, len(c.edges))
	for _, e := range c.edges {
		if e.Source == e.Target {
			continue
		}
		if _, done := out[e.Target]; done {
			continue
		}
		if _, ok := c.index[e.Source]; ok {
			out[e.Target] = e.Source
		}
	}
	return out
}

// Clone returns a deep copy of the chart.
func (c *Chart) Clone() *Chart {
	out := &Chart{
		nodes: make([]*Node, len(c.nodes)),
		index: make(map[string]*Node, len(c.nodes)),
		edges: slices.Clone(c.edges),
	}
	for i, n := range c.nodes {
		cp := *n
		cp.Profile = n.Profile.clone()
		out.nodes[i] = &cp
		out.index[cp.ID] = &cp
	}
	return out
}

// Validate checks structural integrity and returns every problem found,
// joined with errors.Join. It returns nil for a clean forest.
//
// Cycles are not detected here; the layout engine reports them while
// traversing.
func (c *Chart) Validate() error {
	var errs []error
	parents := make(map[string]string, len(c.edges))
	for _, e := range c.edges {
		_, srcOK := c.index[e.Source]
		_, dstOK := c.index[e.Target]
		switch {
		case !srcOK || !dstOK:
			errs = append(errs, fmt.Errorf("%w: %s", ErrDanglingEdge, e))
			continue
		case e.Source == e.Target:
			errs = append(errs, fmt.Errorf("%w: %s", ErrSelfLoop, e.Source))
			continue
		}
		if first, ok := parents[e.Target]; ok && first != e.Source {
			errs = append(errs, fmt.Errorf("%w: %s (kept %s, ignored %s)", ErrMultipleParents, e.Target, first, e.Source))
			continue
		}
		parents[e.Target] = e.Source
	}
	for _, n := range c.nodes {
		if err := n.Profile.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("node %s: %w", n.ID, err))
		}
	}
	return errors.Join(errs...)
}
