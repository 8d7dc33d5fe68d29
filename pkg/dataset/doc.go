// Package dataset loads projection datasets: named sets of org charts, one
// per planning period ("current", "6m", "1y", ...).
//
// A dataset file is TOML, YAML or JSON, chosen by extension:
//
//	name = "Northwind Labs"
//	default = "current"
//
//	[[periods]]
//	id = "current"
//	label = "Today"
//
//	[[periods.nodes]]
//	id = "ceo"
//	name = "Maya Okafor"
//
//	[[periods.edges]]
//	source = "ceo"
//	target = "cto"
//
// Nodes and edges use the flattened format of pkg/graph. A file with
// top-level nodes and edges and no periods is read as a single period
// named "current".
//
// [Sample] returns the embedded mock dataset used when no file is given.
package dataset
