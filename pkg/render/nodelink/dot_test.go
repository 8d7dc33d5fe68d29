package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func testLayout() graph.Layout {
	nodes := []org.Node{
		{ID: "ceo", Profile: org.Profile{Name: "Ada", Title: "CEO", Department: "Exec"}},
		{ID: "eng", Profile: org.Profile{Kind: org.KindTeam, Name: "Engineering"}},
		{ID: "hire", Profile: org.Profile{Kind: org.KindOpenRole, Title: "SRE"}},
		{ID: "bot", Profile: org.Profile{Kind: org.KindAgent, Name: "Triage"}},
	}
	edges := []org.Edge{
		{Source: "ceo", Target: "eng"},
		{Source: "eng", Target: "hire"},
		{Source: "eng", Target: "bot"},
		{Source: "ceo", Target: "ghost"},
	}
	opts := tree.DefaultOptions()
	return graph.FromResult(tree.Layout(nodes, edges, opts), opts)
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testLayout(), Options{})

	tests := []struct {
		name string
		want string
	}{
		{"Engine", "layout=neato;"},
		{"Scale", "inputscale=72;"},
		{"PinnedRoot", `"ceo" [label="Ada", pos="400,-50!"]`},
		{"TeamFill", `"eng" [label="Engineering", pos="400,-200!", fillcolor="#e0f2fe"]`},
		{"OpenRoleDashed", `style="rounded,filled,dashed"`},
		{"AgentShape", "shape=hexagon"},
		{"Edge", `"ceo" -> "eng";`},
	}
	for _, tt := range tests {
		if !strings.Contains(dot, tt.want) {
			t.Errorf("%s: DOT missing %q\n%s", tt.name, tt.want, dot)
		}
	}
	if strings.Contains(dot, "ghost") {
		t.Error("dangling edge should not reach DOT")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testLayout(), Options{Detailed: true})
	if !strings.Contains(dot, `label="Ada\nCEO · Exec"`) {
		t.Errorf("detailed label missing subtitle:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(testLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Engineering")) {
		t.Errorf("unexpected SVG output: %.200s", svg)
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(context.Background(), ToDOT(testLayout(), Options{}))
	if err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG: % x", png[:min(8, len(png))])
	}
}

func TestRenderSVGInvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("expected error for malformed DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00" width="100" height="50"`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestToDOTDrawsOneEdgePerChild(t *testing.T) {
	opts := tree.DefaultOptions()
	nodes := []org.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []org.Edge{{Source: "A", Target: "C"}, {Source: "B", Target: "C"}}
	fromEngine := graph.FromResult(tree.Layout(nodes, edges, opts), opts)

	handEdited := fromEngine
	handEdited.Edges = []graph.Edge{{Source: "A", Target: "C"}, {Source: "B", Target: "C"}}

	tests := []struct {
		name string
		l    graph.Layout
	}{
		{"engine layout", fromEngine},
		{"hand-edited layout", handEdited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(tt.l, Options{})
			if got := strings.Count(dot, " -> "); got != 1 {
				t.Errorf("edges = %d, want 1\n%s", got, dot)
			}
			if strings.Contains(dot, `"B" -> "C"`) {
				t.Errorf("second parent edge drawn:\n%s", dot)
			}
		})
	}
}
