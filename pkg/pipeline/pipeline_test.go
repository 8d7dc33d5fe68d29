package pipeline

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/tree"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"graphviz-svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !orgerrors.Is(err, orgerrors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, orgerrors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatSVG:         "svg",
		FormatDOT:         "dot",
		FormatGraphvizSVG: "graphviz.svg",
		FormatPNG:         "png",
		FormatJSON:        "layout.json",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestOptionsSetDefaults(t *testing.T) {
	var opts Options
	opts.SetDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Style != DefaultStyle {
		t.Errorf("Style = %q, want %q", opts.Style, DefaultStyle)
	}
	if opts.Logger == nil || opts.Layout.Logger != opts.Logger {
		t.Error("layout logger should default to the pipeline logger")
	}
	if opts.Layout.HorizontalSpacing != tree.DefaultHorizontalSpacing {
		t.Errorf("HorizontalSpacing = %v", opts.Layout.HorizontalSpacing)
	}
	if err := opts.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"bad style", Options{Style: "handdrawn"}},
		{"bad format", Options{Formats: []string{"pdf"}}},
		{"negative width", Options{NodeWidth: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.SetDefaults()
			if err := tt.opts.Validate(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantPeriod string
		wantNodes  int
	}{
		{"default period", Options{}, "current", 8},
		{"named period", Options{Period: "6m"}, "6m", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := Load(tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if src.Period != tt.wantPeriod || src.Chart.NodeCount() != tt.wantNodes || len(src.Issues) != 0 {
				t.Errorf("period=%q nodes=%d issues=%v", src.Period, src.Chart.NodeCount(), src.Issues)
			}
		})
	}

	_, err := Load(Options{Period: "5y"})
	if !orgerrors.Is(err, orgerrors.ErrCodePeriodNotFound) {
		t.Errorf("unknown period error = %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeDataset(t, `{"nodes":[{"id":"lead"},{"id":"dev"}],"edges":[{"source":"lead","target":"dev"}]}`)

	src, err := Load(Options{Dataset: path})
	if err != nil {
		t.Fatal(err)
	}
	if src.Period != "current" || src.Chart.NodeCount() != 2 || src.Chart.EdgeCount() != 1 {
		t.Errorf("period=%q nodes=%d edges=%d", src.Period, src.Chart.NodeCount(), src.Chart.EdgeCount())
	}

	_, err = Load(Options{Dataset: filepath.Join(t.TempDir(), "missing.toml")})
	if !orgerrors.Is(err, orgerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func writeDataset(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "team.json")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExecuteSkipsBadNodeRecords(t *testing.T) {
	tests := []struct {
		name      string
		data      string
		wantNodes []string
		wantCodes []string
	}{
		{
			name:      "duplicate id",
			data:      `{"nodes":[{"id":"ceo"},{"id":"cto"},{"id":"cto"}],"edges":[{"source":"ceo","target":"cto"}]}`,
			wantNodes: []string{"ceo", "cto"},
			wantCodes: []string{"DUPLICATE_NODE"},
		},
		{
			name:      "unknown kind",
			data:      `{"nodes":[{"id":"ceo"},{"id":"temp","kind":"contractor"}],"edges":[{"source":"ceo","target":"temp"}]}`,
			wantNodes: []string{"ceo"},
			wantCodes: []string{"INVALID_INPUT", "DANGLING_EDGE"},
		},
		{
			name:      "both",
			data:      `{"nodes":[{"id":"ceo"},{"id":"cto"},{"id":"cto"},{"id":"temp","kind":"contractor"}],"edges":[{"source":"ceo","target":"cto"}]}`,
			wantNodes: []string{"ceo", "cto"},
			wantCodes: []string{"DUPLICATE_NODE", "INVALID_INPUT"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRunner(nil, nil, log.New(io.Discard))
			res, err := r.Execute(context.Background(), Options{
				Dataset: writeDataset(t, tt.data),
				Formats: []string{FormatJSON},
			})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			var ids []string
			for _, n := range res.Layout.Nodes {
				ids = append(ids, n.ID)
			}
			if !slices.Equal(ids, tt.wantNodes) {
				t.Errorf("nodes = %v, want %v", ids, tt.wantNodes)
			}
			var codes []string
			for _, issue := range res.Layout.Issues {
				codes = append(codes, issue.Code)
			}
			if !slices.Equal(codes, tt.wantCodes) {
				t.Errorf("issue codes = %v, want %v", codes, tt.wantCodes)
			}
			if !bytes.Contains(res.Artifacts[FormatJSON], []byte(tt.wantCodes[0])) {
				t.Errorf("layout JSON missing %s", tt.wantCodes[0])
			}
		})
	}
}

func TestRunnerLoadIssuesNotCached(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	src, err := Load(Options{Dataset: writeDataset(t, `{"nodes":[{"id":"ceo"},{"id":"ceo"}]}`)})
	if err != nil {
		t.Fatal(err)
	}

	for _, wantHit := range []bool{false, true} {
		l, hit, err := r.LayoutWithCacheInfo(ctx, src, Options{})
		if err != nil {
			t.Fatal(err)
		}
		if hit != wantHit || len(l.Issues) != 1 || l.Period != "current" {
			t.Errorf("hit=%v issues=%v period=%q, want hit=%v and one issue", hit, l.Issues, l.Period, wantHit)
		}
	}
}

func TestGenerateLayout(t *testing.T) {
	src, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}
	c := src.Chart

	opts := Options{View: "org", Period: "current", Layout: tree.Options{
		HorizontalSpacing: 250,
		VerticalSpacing:   150,
		CenterX:           400,
		BaseY:             50,
	}}
	l := GenerateLayout(c, opts)

	if l.View != "org" || l.Period != "current" {
		t.Errorf("labels = %q/%q", l.View, l.Period)
	}
	if l.HorizontalSpacing != 250 {
		t.Errorf("HorizontalSpacing = %v", l.HorizontalSpacing)
	}
	root, ok := l.Node("ceo")
	if !ok {
		t.Fatal("ceo missing from layout")
	}
	if root.X != 400 || root.Y != 50 || root.Level != 0 {
		t.Errorf("ceo = (%v, %v) level %d", root.X, root.Y, root.Level)
	}
	if len(l.Nodes) != c.NodeCount() {
		t.Errorf("layout has %d nodes, chart %d", len(l.Nodes), c.NodeCount())
	}
	if len(l.Issues) != 0 {
		t.Errorf("sample should lay out cleanly, got %v", l.Issues)
	}
}

func sampleLayout(t *testing.T) graph.Layout {
	t.Helper()
	src, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}
	return GenerateLayout(src.Chart, Options{View: "org", Period: src.Period})
}

func TestRender(t *testing.T) {
	l := sampleLayout(t)

	artifacts, err := Render(context.Background(), l, Options{
		Formats: []string{FormatSVG, FormatDOT, FormatJSON, FormatSVG},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 3 {
		t.Errorf("got %d artifacts, want 3", len(artifacts))
	}
	if !bytes.Contains(artifacts[FormatSVG], []byte("<svg")) {
		t.Error("svg artifact is not SVG")
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "digraph G {") {
		t.Error("dot artifact is not DOT")
	}
	back, err := graph.UnmarshalLayout(artifacts[FormatJSON])
	if err != nil {
		t.Fatal(err)
	}
	if len(back.Nodes) != len(l.Nodes) {
		t.Errorf("json round trip has %d nodes, want %d", len(back.Nodes), len(l.Nodes))
	}

	if _, err := Render(context.Background(), l, Options{Formats: []string{"pdf"}}); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestRenderFromLayoutData(t *testing.T) {
	data, err := graph.MarshalLayout(sampleLayout(t))
	if err != nil {
		t.Fatal(err)
	}
	artifacts, err := RenderFromLayoutData(context.Background(), data, Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(artifacts[FormatDOT], []byte(`"ceo"`)) {
		t.Error("dot artifact should contain the root")
	}

	if _, err := RenderFromLayoutData(context.Background(), []byte("{"), Options{}); err == nil {
		t.Error("invalid layout data should fail")
	}
}

func newFileRunner(t *testing.T) *Runner {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRunnerExecuteCaches(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{View: "org", Formats: []string{FormatSVG, FormatJSON}}

	first, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("first run should miss: %+v", first.CacheInfo)
	}
	if first.Period != "current" || first.ChartHash == "" {
		t.Errorf("period=%q hash=%q", first.Period, first.ChartHash)
	}
	if first.Stats.NodeCount != 8 {
		t.Errorf("NodeCount = %d", first.Stats.NodeCount)
	}

	second, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run should hit: %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Layout.HorizontalSpacing = 300
	third, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.LayoutHit {
		t.Error("changed spacing should miss the layout cache")
	}
}

func TestRunnerRefresh(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	opts := Options{Formats: []string{FormatDOT}}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatal(err)
	}
	opts.Refresh = true
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if res.CacheInfo.LayoutHit || res.CacheInfo.RenderHit {
		t.Errorf("refresh should skip cache reads: %+v", res.CacheInfo)
	}
}

func TestRunnerCachedLayoutKeepsPeriodLabel(t *testing.T) {
	ctx := context.Background()
	r := newFileRunner(t)
	src, err := Load(Options{})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := r.Layout(ctx, src, Options{Period: "current"}); err != nil {
		t.Fatal(err)
	}
	l, hit, err := r.LayoutWithCacheInfo(ctx, src, Options{Period: "copy"})
	if err != nil {
		t.Fatal(err)
	}
	if !hit || l.Period != "copy" {
		t.Errorf("hit=%v period=%q", hit, l.Period)
	}
}

func TestRunnerLoadError(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Execute(context.Background(), Options{Period: "nope"})
	if !orgerrors.Is(err, orgerrors.ErrCodePeriodNotFound) {
		t.Errorf("error = %v, want PERIOD_NOT_FOUND", err)
	}

	_, err = r.Execute(context.Background(), Options{Style: "fancy"})
	if err == nil {
		t.Error("invalid style should fail before loading")
	}
}

type countingHooks struct {
	observability.NoopPipelineHooks
	observability.NoopCacheHooks

	mu     sync.Mutex
	events []string
}

func (h *countingHooks) record(s string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, s)
}

func (h *countingHooks) OnLoadComplete(_ context.Context, _, period string, _ int, _ time.Duration, _ error) {
	h.record("load:" + period)
}

func (h *countingHooks) OnLayoutComplete(_ context.Context, view string, _ int, _ time.Duration, _ error) {
	h.record("layout:" + view)
}

func (h *countingHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {
	h.record("render")
}

func (h *countingHooks) OnCacheHit(_ context.Context, keyType string) {
	h.record("hit:" + keyType)
}

func (h *countingHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.record("miss:" + keyType)
}

func TestRunnerHooks(t *testing.T) {
	h := &countingHooks{}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	defer observability.Reset()

	r := newFileRunner(t)
	opts := Options{View: "agents", Period: "1y", Formats: []string{FormatDOT}}
	for range 2 {
		if _, err := r.Execute(context.Background(), opts); err != nil {
			t.Fatal(err)
		}
	}

	want := []string{
		"load:1y", "miss:layout", "layout:agents", "miss:artifact", "render",
		"load:1y", "hit:layout", "layout:agents", "hit:artifact", "render",
	}
	if strings.Join(h.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant     %v", h.events, want)
	}
}
