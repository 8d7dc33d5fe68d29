// Package graph provides serialization types for org charts and layouts.
//
// This package defines the canonical wire format for orgchart data, used
// for JSON files, dataset files, the layout cache and cross-tool
// interoperability.
//
// # Architecture
//
// The package sits at the serialization boundary between internal
// representations and external formats:
//
//   - [Chart], [Layout]: Serialization types (this package)
//   - pkg/org.Chart: Internal org structure
//   - pkg/tree.Result: Internal layout (positions, levels, issues)
//
// Use [FromChart]/[ToChart] and [FromResult] to convert between them.
//
// # Chart Serialization
//
// Charts use a node-link JSON format with flattened profiles:
//
//	{
//	  "nodes": [
//	    {"id": "ceo", "name": "Ada", "title": "CEO"},
//	    {"id": "eng", "kind": "team", "name": "Engineering", "headcount": 12}
//	  ],
//	  "edges": [{"source": "ceo", "target": "eng"}]
//	}
//
// The kind defaults to "person". Detail fields for other kinds are
// ignored. The same struct carries toml and yaml tags so dataset files can
// embed charts directly.
//
// Common operations:
//
//	c, issues := graph.BuildChart(gc)      // Chart → org.Chart, bad records skipped
//	c, err := graph.ToChart(gc)            // Chart → org.Chart, first bad record fails
//	graph.WriteChartFile(c, "out.json")    // org.Chart → File
//	data, _ := graph.MarshalChart(c)       // org.Chart → []byte
//
// # Layout Serialization
//
// A [Layout] records positioned nodes, levels and the issues the engine
// skipped, plus the options it was computed with:
//
//	res := tree.LayoutChart(c, opts)
//	l := graph.FromResult(res, opts)
//	data, _ := graph.MarshalLayout(l)
//
// Renderers consume [Layout] directly.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
