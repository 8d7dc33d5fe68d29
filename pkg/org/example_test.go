package org_test

import (
	"fmt"

	"github.com/matzehuels/orgchart/pkg/org"
)

func ExampleChart() {
	c := org.NewChart()
	_ = c.AddNode(org.Node{ID: "ceo", Profile: org.Profile{Name: "Ada", Title: "CEO"}})
	_ = c.AddNode(org.Node{ID: "cto", Profile: org.Profile{Name: "Linus", Title: "CTO"}})
	_ = c.AddNode(org.Node{ID: "cfo", Profile: org.Profile{Name: "Grace", Title: "CFO"}})
	c.AddEdge(org.Edge{Source: "ceo", Target: "cto"})
	c.AddEdge(org.Edge{Source: "ceo", Target: "cfo"})

	fmt.Println("Roots:", c.Roots())
	fmt.Println("Reports to ceo:", c.Children("ceo"))
	// Output:
	// Roots: [ceo]
	// Reports to ceo: [cto cfo]
}

func ExampleStore() {
	s := org.NewStore(nil)
	s.Subscribe(func(c *org.Chart, version uint64) {
		fmt.Printf("v%d: %d nodes\n", version, c.NodeCount())
	})

	_ = s.Dispatch(org.AddNode{Node: org.Node{ID: "ceo"}})
	_ = s.Dispatch(org.AddNode{Node: org.Node{ID: "cto"}, Parent: "ceo"})
	// Output:
	// v1: 1 nodes
	// v2: 2 nodes
}
