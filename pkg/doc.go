// Package pkg holds the orgchart libraries.
//
// # Overview
//
// Orgchart turns a reporting structure (people, teams, open roles and
// agents connected by manager edges) into a positioned tree: every node
// gets a level and an x,y coordinate, and the result is rendered as SVG,
// Graphviz DOT/SVG/PNG or serialized as JSON.
//
// # Packages
//
// Domain:
//
//   - [org]: nodes, profiles, charts and the observable [org.Store]
//   - [tree]: the layout engine (level assignment, per-level centering,
//     issue reporting for dangling edges, cycles and duplicates)
//   - [dataset]: multi-period projection datasets in TOML, YAML or JSON
//
// Serialization and output:
//
//   - [graph]: flat wire types for charts and layouts
//   - [render/svg]: card-style SVG drawn from a layout
//   - [render/nodelink]: Graphviz DOT with pinned positions, rendered
//     through go-graphviz
//
// Infrastructure:
//
//   - [pipeline]: load → layout → render with caching
//   - [cache]: file, Redis and null backends plus key derivation
//   - [config]: TOML config file with environment overrides
//   - [observability]: hooks around pipeline stages and cache lookups
//   - [errors]: error codes shared across packages
//   - [buildinfo]: version information for the CLI
//
// # Data Flow
//
//	dataset file (or built-in sample)
//	         ↓
//	    [dataset] selects a period → *org.Chart
//	         ↓
//	    [tree] assigns levels and positions
//	         ↓
//	    [graph] flattens the result into a Layout
//	         ↓
//	    [render/svg], [render/nodelink] or JSON
//
// # Quick Start
//
//	chart, _ := dataset.Sample().Period("current")
//	res := tree.LayoutChart(chart, tree.DefaultOptions())
//	for depth, ids := range res.Levels {
//	    fmt.Println(depth, ids)
//	}
//
// Or with the pipeline, which also renders and caches:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Period:  "6m",
//	    Formats: []string{pipeline.FormatSVG, pipeline.FormatJSON},
//	})
//
// The orgchart command in cmd/orgchart wraps the same pipeline.
package pkg
