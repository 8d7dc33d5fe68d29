// Package org provides the organization chart model laid out by package tree.
//
// # Overview
//
// An org chart is a forest: every [Node] is a person, team, open role or
// agent system, and every [Edge] says "Source is the parent of Target". The
// structural contract is deliberately narrow. The layout engine only reads
// [Node.ID] and the edge list; everything shown on screen lives in the
// node's [Profile], a tagged presentation struct with one optional detail
// block per [Kind].
//
// # Basic Usage
//
// Create a chart with [NewChart], add nodes with [Chart.AddNode] and edges
// with [Chart.AddEdge]:
//
//	c := org.NewChart()
//	_ = c.AddNode(org.Node{ID: "ceo", Profile: org.Profile{Kind: org.KindPerson, Name: "Ada"}})
//	_ = c.AddNode(org.Node{ID: "cto", Profile: org.Profile{Kind: org.KindPerson, Name: "Linus"}})
//	c.AddEdge(org.Edge{Source: "ceo", Target: "cto"})
//
// Node ids must be unique and non-empty. Edges are recorded as given, even
// when they reference unknown nodes or give a node a second parent: charts
// are built from loosely curated mock data, and a single bad record must not
// block the rest of the chart. [Chart.Validate] reports such problems and the
// layout engine skips them.
//
// # State Container
//
// [Store] wraps a chart behind a mutex and applies [Action] values
// atomically, notifying subscribers with a fresh snapshot after every
// commit. Views subscribe to the store and recompute their layout wholesale
// on each change (see tree.Follow).
//
// # Concurrency
//
// Chart instances are not safe for concurrent use. Store is.
package org
