package tree_test

import (
	"fmt"

	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func ExampleLayout() {
	nodes := []org.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}, {ID: "D"}}
	edges := []org.Edge{
		{Source: "A", Target: "B"},
		{Source: "A", Target: "C"},
		{Source: "A", Target: "D"},
	}

	res := tree.Layout(nodes, edges, tree.DefaultOptions())
	for _, n := range res.Nodes {
		fmt.Printf("%s (%g, %g)\n", n.ID, n.Position.X, n.Position.Y)
	}
	// Output:
	// A (400, 50)
	// B (200, 200)
	// C (400, 200)
	// D (600, 200)
}

func ExampleLayout_issues() {
	nodes := []org.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []org.Edge{
		{Source: "A", Target: "C"},
		{Source: "B", Target: "C"},
		{Source: "A", Target: "ghost"},
	}

	res := tree.Layout(nodes, edges, tree.DefaultOptions())
	for _, issue := range res.Issues {
		fmt.Println(issue)
	}
	fmt.Println("levels:", res.Levels)
	// Output:
	// node C already reports to A: ignoring edge from B
	// dangling edge A→ghost: unknown node ghost
	// levels: [[A B] [C]]
}

func ExampleOptions_banded() {
	nodes := []org.Node{{ID: "eng"}, {ID: "ops"}, {ID: "sre"}}
	edges := []org.Edge{{Source: "ops", Target: "sre"}}

	opts := tree.DefaultOptions()
	opts.Components = tree.ComponentsBanded
	res := tree.Layout(nodes, edges, opts)
	for _, n := range res.Nodes {
		fmt.Printf("%s x=%g\n", n.ID, n.Position.X)
	}
	// Output:
	// eng x=300
	// ops x=500
	// sre x=500
}
