// Package render groups the output renderers for positioned org charts.
//
// Both renderers consume a [graph.Layout], so a cached layout can be
// rendered without recomputing positions:
//
//   - [svg]: direct SVG cards and elbow connectors via ajstarks/svgo
//   - [nodelink]: Graphviz DOT with pinned positions, rendered by neato to
//     SVG or PNG
//
//	l := graph.FromResult(tree.LayoutChart(c, opts), opts)
//	_ = svg.Render(w, l, svg.Options{})
//	png, err := nodelink.RenderPNG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//
// [graph.Layout]: github.com/matzehuels/orgchart/pkg/graph#Layout
// [svg]: github.com/matzehuels/orgchart/pkg/render/svg
// [nodelink]: github.com/matzehuels/orgchart/pkg/render/nodelink
package render
