package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Default anchors and spacings. Views override the spacings; observed
// values range from 120 to 250.
const (
	DefaultHorizontalSpacing = 200.0
	DefaultVerticalSpacing   = 150.0
	DefaultCenterX           = 400.0
	DefaultBaseY             = 50.0
)

// Traversal selects the order in which each tree is walked. Because every
// accepted node has exactly one parent, both orders yield the same level
// map; they differ in the order levels are filled.
type Traversal int

const (
	// BreadthFirst visits each tree level by level.
	BreadthFirst Traversal = iota
	// DepthFirst visits each tree in pre-order.
	DepthFirst
)

// String returns "bfs" or "dfs".
func (t Traversal) String() string {
	if t == DepthFirst {
		return "dfs"
	}
	return "bfs"
}

// ParseTraversal accepts "bfs"/"breadth-first" and "dfs"/"depth-first".
// The empty string selects BreadthFirst.
func ParseTraversal(s string) (Traversal, error) {
	switch strings.ToLower(s) {
	case "", "bfs", "breadth-first":
		return BreadthFirst, nil
	case "dfs", "depth-first":
		return DepthFirst, nil
	}
	return 0, fmt.Errorf("invalid traversal: %q (must be 'bfs' or 'dfs')", s)
}

// Components selects how disconnected trees share horizontal space.
type Components int

const (
	// ComponentsShared centers every level on CenterX regardless of which
	// tree its members belong to.
	ComponentsShared Components = iota
	// ComponentsBanded gives each root's tree its own band, left to right in
	// root order, and centers the row of bands on CenterX.
	ComponentsBanded
)

// String returns "shared" or "banded".
func (c Components) String() string {
	if c == ComponentsBanded {
		return "banded"
	}
	return "shared"
}

// ParseComponents accepts "shared" and "banded". The empty string selects
// ComponentsShared.
func ParseComponents(s string) (Components, error) {
	switch strings.ToLower(s) {
	case "", "shared":
		return ComponentsShared, nil
	case "banded":
		return ComponentsBanded, nil
	}
	return 0, fmt.Errorf("invalid components mode: %q (must be 'shared' or 'banded')", s)
}

// Options configures a layout pass.
//
// Start from [DefaultOptions]: a zero CenterX or BaseY is a valid anchor and
// is kept as is, while zero spacings are replaced by the defaults.
type Options struct {
	HorizontalSpacing float64
	VerticalSpacing   float64
	CenterX           float64
	BaseY             float64

	Traversal  Traversal
	Components Components
	// ComponentGap separates bands in ComponentsBanded mode. Zero or
	// negative means HorizontalSpacing.
	ComponentGap float64

	// Logger receives a warning per skipped record. Nil discards.
	Logger *log.Logger
}

// DefaultOptions returns the default anchors and spacings.
func DefaultOptions() Options {
	return Options{
		HorizontalSpacing: DefaultHorizontalSpacing,
		VerticalSpacing:   DefaultVerticalSpacing,
		CenterX:           DefaultCenterX,
		BaseY:             DefaultBaseY,
	}
}

// SetDefaults fills zero spacings and a nil logger.
func (o *Options) SetDefaults() {
	if o.HorizontalSpacing <= 0 {
		o.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if o.VerticalSpacing <= 0 {
		o.VerticalSpacing = DefaultVerticalSpacing
	}
	if o.ComponentGap <= 0 {
		o.ComponentGap = o.HorizontalSpacing
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}
