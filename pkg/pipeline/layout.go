package pipeline

import (
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// GenerateLayout positions a chart and converts the result to the
// serializable layout format. Issues are logged by the engine and carried in
// the layout.
func GenerateLayout(c *org.Chart, opts Options) graph.Layout {
	opts.SetDefaults()
	res := tree.LayoutChart(c, opts.Layout)
	l := graph.FromResult(res, opts.Layout)
	l.View = opts.View
	l.Period = opts.Period
	return l
}
