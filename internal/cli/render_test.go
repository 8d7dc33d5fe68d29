package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/orgchart/pkg/tree"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to svg", "", []string{"svg"}},
		{"single format", "dot", []string{"dot"}},
		{"multiple formats", "svg,dot,json", []string{"svg", "dot", "json"}},
		{"spaces trimmed", "svg, png", []string{"svg", "png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if !slices.Equal(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDatasetName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "sample"},
		{"acme.toml", "acme"},
		{"data/plans/acme-2026.yaml", "acme-2026"},
		{"chart.json", "chart"},
	}
	for _, tt := range tests {
		if got := datasetName(tt.path); got != tt.want {
			t.Errorf("datasetName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOutputBase(t *testing.T) {
	if got := outputBase("", "6m"); got != "sample-6m" {
		t.Errorf("outputBase = %q, want sample-6m", got)
	}
	if got := outputBase("plans/acme.toml", "current"); got != "acme-current" {
		t.Errorf("outputBase = %q, want acme-current", got)
	}
}

func TestArtifactPaths(t *testing.T) {
	tests := []struct {
		name    string
		formats []string
		output  string
		base    string
		want    map[string]string
	}{
		{
			name:    "single format default base",
			formats: []string{"svg"},
			base:    "sample-current",
			want:    map[string]string{"svg": "sample-current.svg"},
		},
		{
			name:    "single format explicit output",
			formats: []string{"png"},
			output:  "out/chart.image",
			base:    "sample-current",
			want:    map[string]string{"png": "out/chart.image"},
		},
		{
			name:    "multiple formats share base",
			formats: []string{"svg", "graphviz-svg", "json"},
			base:    "acme-1y",
			want: map[string]string{
				"svg":          "acme-1y.svg",
				"graphviz-svg": "acme-1y.graphviz.svg",
				"json":         "acme-1y.layout.json",
			},
		},
		{
			name:    "multiple formats explicit output",
			formats: []string{"svg", "dot"},
			output:  "out/org.svg",
			base:    "ignored",
			want:    map[string]string{"svg": "out/org.svg", "dot": "out/org.dot"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := artifactPaths(tt.formats, tt.output, tt.base)
			if len(got) != len(tt.want) {
				t.Fatalf("artifactPaths() = %v, want %v", got, tt.want)
			}
			for f, p := range tt.want {
				if got[f] != p {
					t.Errorf("artifactPaths()[%q] = %q, want %q", f, got[f], p)
				}
			}
		})
	}
}

func TestTrimFormatExt(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"org.svg", "org"},
		{"org.graphviz.svg", "org"},
		{"org.layout.json", "org"},
		{"dir/org.png", "dir/org"},
		{"org.txt", "org.txt"},
		{"org", "org"},
	}
	for _, tt := range tests {
		if got := trimFormatExt(tt.path); got != tt.want {
			t.Errorf("trimFormatExt(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "nested", "chart")

	err := writeArtifacts(artifactWriteParams{
		artifacts: map[string][]byte{"svg": []byte("<svg/>"), "dot": []byte("digraph {}")},
		formats:   []string{"svg", "dot"},
		base:      base,
		nodes:     3,
		levels:    2,
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}

	for ext, want := range map[string]string{".svg": "<svg/>", ".dot": "digraph {}"} {
		data, err := os.ReadFile(base + ext)
		if err != nil {
			t.Fatalf("read %s: %v", ext, err)
		}
		if string(data) != want {
			t.Errorf("%s content = %q, want %q", ext, data, want)
		}
	}
}

func TestLayoutFlagsApply(t *testing.T) {
	tests := []struct {
		name    string
		flags   layoutFlags
		check   func(tree.Options) bool
		wantErr bool
	}{
		{
			name:  "unset flags keep view",
			flags: layoutFlags{},
			check: func(o tree.Options) bool {
				return o.HorizontalSpacing == 150 && o.VerticalSpacing == 100 && o.Traversal == tree.BreadthFirst
			},
		},
		{
			name:  "spacing override",
			flags: layoutFlags{horizontal: 220, vertical: 90},
			check: func(o tree.Options) bool { return o.HorizontalSpacing == 220 && o.VerticalSpacing == 90 },
		},
		{
			name:  "traversal and components",
			flags: layoutFlags{traversal: "dfs", components: "banded", gap: 40},
			check: func(o tree.Options) bool {
				return o.Traversal == tree.DepthFirst && o.Components == tree.ComponentsBanded && o.ComponentGap == 40
			},
		},
		{name: "negative spacing", flags: layoutFlags{horizontal: -1}, wantErr: true},
		{name: "bad traversal", flags: layoutFlags{traversal: "zigzag"}, wantErr: true},
		{name: "bad components", flags: layoutFlags{components: "stacked"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tree.Options{HorizontalSpacing: 150, VerticalSpacing: 100}
			err := tt.flags.apply(&opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("apply() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !tt.check(opts) {
				t.Errorf("apply() options = %+v", opts)
			}
		})
	}
}
