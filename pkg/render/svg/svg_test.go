package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func testLayout() graph.Layout {
	nodes := []org.Node{
		{ID: "ceo", Profile: org.Profile{Name: "Ada & Co", Title: "CEO"}},
		{ID: "eng", Profile: org.Profile{Kind: org.KindTeam, Name: "Engineering"}},
		{ID: "hire", Profile: org.Profile{Kind: org.KindOpenRole, Title: "SRE"}},
	}
	edges := []org.Edge{{Source: "ceo", Target: "eng"}, {Source: "ceo", Target: "hire"}}
	opts := tree.DefaultOptions()
	return graph.FromResult(tree.Layout(nodes, edges, opts), opts)
}

func render(t *testing.T, l graph.Layout, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Render(&buf, l, opts); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func TestRenderIsWellFormedXML(t *testing.T) {
	out := render(t, testLayout(), Options{Title: "Northwind"})

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		_, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("invalid XML: %v\n%s", err, out)
			}
			break
		}
	}
}

func TestRenderContent(t *testing.T) {
	out := render(t, testLayout(), Options{Title: "Northwind"})

	for _, want := range []string{
		"Ada &amp; Co",
		"Engineering",
		"stroke-dasharray",
		`id="node-hire"`,
		"<polyline",
		"Northwind",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if got := strings.Count(out, "<polyline"); got != 2 {
		t.Errorf("connectors = %d, want 2", got)
	}
}

func TestRenderCanvasSize(t *testing.T) {
	l := testLayout()
	out := render(t, l, Options{NodeWidth: 100, NodeHeight: 40, Padding: 10})
	// Bounds are 200 x 150; add one card and padding on both sides.
	if !strings.Contains(out, `width="320" height="210"`) {
		t.Errorf("unexpected canvas size in %.300s", out)
	}
}

func TestRenderCompact(t *testing.T) {
	out := render(t, testLayout(), Options{Style: StyleCompact})
	if strings.Contains(out, "CEO") {
		t.Error("compact style should omit subtitles")
	}
}

func TestRenderSkipsDanglingAndCrossLevelEdges(t *testing.T) {
	l := testLayout()
	l.Edges = append(l.Edges, graph.Edge{Source: "ceo", Target: "ghost"}, graph.Edge{Source: "eng", Target: "hire"})
	out := render(t, l, Options{})
	if got := strings.Count(out, "<polyline"); got != 2 {
		t.Errorf("connectors = %d, want 2", got)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := render(t, graph.Layout{}, Options{})
	if !strings.Contains(out, "<svg") {
		t.Errorf("empty layout should still produce an svg document: %s", out)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Style: "neon"}).Validate(); err == nil {
		t.Error("unknown style should fail")
	}
	var buf bytes.Buffer
	if err := Render(&buf, testLayout(), Options{Style: "neon"}); err == nil {
		t.Error("Render should reject unknown style")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"much too long", 5, "much…"},
		{"ünïcødé", 4, "ünï…"},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSanitizeID(t *testing.T) {
	if got := sanitizeID("fp&a team"); got != "fp_a_team" {
		t.Errorf("sanitizeID = %q", got)
	}
}

func TestRenderDrawsOneConnectorPerChild(t *testing.T) {
	opts := tree.DefaultOptions()
	nodes := []org.Node{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []org.Edge{{Source: "A", Target: "C"}, {Source: "B", Target: "C"}}
	fromEngine := graph.FromResult(tree.Layout(nodes, edges, opts), opts)

	handEdited := fromEngine
	handEdited.Edges = []graph.Edge{{Source: "A", Target: "C"}, {Source: "B", Target: "C"}, {Source: "C", Target: "C"}}

	tests := []struct {
		name string
		l    graph.Layout
	}{
		{"engine layout", fromEngine},
		{"hand-edited layout", handEdited},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render(t, tt.l, Options{})
			if got := strings.Count(out, "<polyline"); got != 1 {
				t.Errorf("connectors = %d, want 1", got)
			}
		})
	}
}
