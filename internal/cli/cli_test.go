package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/config"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return New(&bytes.Buffer{}, LogInfo)
}

func TestRootCommandSubcommands(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{"layout", "render", "levels", "export", "periods", "browse", "cache", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "dataset", "period", "view", "no-cache"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestLoadConfigFlagOverrides(t *testing.T) {
	c := newTestCLI(t)
	c.view = "agents"
	c.dataset = "plans/acme.toml"
	if err := c.loadConfig(); err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if c.Config.View != "agents" || c.Config.Dataset != "plans/acme.toml" {
		t.Errorf("Config = %+v, flags not applied", c.Config)
	}

	c.view = "sideways"
	if err := c.loadConfig(); err == nil {
		t.Error("loadConfig accepted an unknown view")
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	c := newTestCLI(t)
	c.configPath = filepath.Join(t.TempDir(), "nope.toml")
	if err := c.loadConfig(); err == nil {
		t.Error("loadConfig succeeded for a missing --config file")
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		setup   func(c *CLI)
		wantNul bool
	}{
		{"no-cache flag", func(c *CLI) { c.noCache = true }, true},
		{"backend none", func(c *CLI) { c.Config.Cache.Backend = config.CacheNone }, true},
		{"file backend", func(c *CLI) { c.Config.Cache.Dir = dir }, false},
		{"unreachable redis degrades", func(c *CLI) {
			c.Config.Cache.Backend = config.CacheRedis
			c.Config.Cache.RedisAddr = "127.0.0.1:1"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCLI(t)
			tt.setup(c)
			store, err := c.newCache(ctx)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer store.Close()
			_, isNull := store.(cache.NullCache)
			if isNull != tt.wantNul {
				t.Errorf("newCache() = %T, want null cache %v", store, tt.wantNul)
			}
		})
	}
}

func TestCacheLocation(t *testing.T) {
	c := newTestCLI(t)
	c.Config.Cache.Dir = "/tmp/orgchart-cache"
	if got := c.cacheLocation(); got != "/tmp/orgchart-cache" {
		t.Errorf("cacheLocation() = %q", got)
	}

	c.Config.Cache.Backend = config.CacheRedis
	c.Config.Cache.RedisAddr = "cache:6379"
	if got := c.cacheLocation(); got != "redis://cache:6379" {
		t.Errorf("cacheLocation() = %q", got)
	}

	c.Config.Cache.Backend = config.CacheNone
	if got := c.cacheLocation(); got != "(disabled)" {
		t.Errorf("cacheLocation() = %q", got)
	}
}

func TestDefaultCacheDirFollowsXDG(t *testing.T) {
	c := newTestCLI(t)
	dir, err := c.cacheDir()
	if err != nil {
		t.Fatalf("cacheDir: %v", err)
	}
	if !strings.HasPrefix(dir, os.Getenv("XDG_CACHE_HOME")) || filepath.Base(dir) != config.AppName {
		t.Errorf("cacheDir() = %q, want $XDG_CACHE_HOME/%s", dir, config.AppName)
	}
}

func TestLayoutThenRender(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()
	layoutPath := filepath.Join(dir, "sample.layout.json")

	root := c.RootCommand()
	root.SetArgs([]string{"layout", "--no-cache", "-p", "6m", "-o", layoutPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("layout: %v", err)
	}

	l, err := graph.ReadLayoutFile(layoutPath)
	if err != nil {
		t.Fatalf("read layout: %v", err)
	}
	if l.Period != "6m" || len(l.Nodes) != 10 {
		t.Errorf("layout period=%q nodes=%d, want 6m and 10", l.Period, len(l.Nodes))
	}

	svgPath := filepath.Join(dir, "org.svg")
	root = newTestCLI(t).RootCommand()
	root.SetArgs([]string{"render", "--no-cache", "--layout", layoutPath, "-o", svgPath})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("render: %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("render output is not svg: %.80s", data)
	}
}

func TestExportThenLevels(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "team.json")
	data := `{"nodes":[{"id":"ceo"},{"id":"cto"},{"id":"cto"},{"id":"temp","kind":"contractor"}],"edges":[{"source":"ceo","target":"cto"}]}`
	if err := os.WriteFile(dataset, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		args      []string
		wantNodes int
	}{
		{"sample period", []string{"export", "-p", "6m"}, 10},
		{"skips bad records", []string{"export", "--dataset", dataset}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "chart.json")
			root := newTestCLI(t).RootCommand()
			root.SetArgs(append(tt.args, "-o", out))
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Fatalf("export: %v", err)
			}

			opts := pipeline.Options{Dataset: out}
			src, err := pipeline.Load(opts)
			if err != nil {
				t.Fatalf("reload export: %v", err)
			}
			if got := src.Chart.NodeCount(); got != tt.wantNodes || len(src.Issues) != 0 {
				t.Errorf("exported nodes = %d issues = %v, want %d clean", got, src.Issues, tt.wantNodes)
			}

			root = newTestCLI(t).RootCommand()
			root.SetArgs([]string{"levels", "--no-cache", "--dataset", out})
			if err := root.ExecuteContext(context.Background()); err != nil {
				t.Errorf("levels on export: %v", err)
			}
		})
	}
}

func TestLayoutCancelled(t *testing.T) {
	c := newTestCLI(t)
	c.noCache = true
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := filepath.Join(t.TempDir(), "org.layout.json")
	if err := c.runLayout(ctx, pipeline.Options{}, out); !errors.Is(err, context.Canceled) {
		t.Errorf("runLayout() = %v, want context.Canceled", err)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cancelled layout wrote %s", out)
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	root := newTestCLI(t).RootCommand()
	root.SetArgs([]string{"render", "--no-cache", "-f", "pdf", "-o", filepath.Join(t.TempDir(), "x.pdf")})
	root.SetErr(&bytes.Buffer{})
	if err := root.ExecuteContext(context.Background()); err == nil {
		t.Error("render accepted an unknown format")
	}
}

func TestLevelsAndPeriodsCommands(t *testing.T) {
	for _, args := range [][]string{
		{"levels", "--no-cache", "-p", "1y", "--positions"},
		{"periods"},
		{"cache", "path"},
	} {
		root := newTestCLI(t).RootCommand()
		root.SetArgs(args)
		if err := root.ExecuteContext(context.Background()); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestCacheClear(t *testing.T) {
	c := newTestCLI(t)
	c.Config.Cache.Dir = t.TempDir()
	store, err := c.newCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := store.Set(context.Background(), k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	store.Close()

	cmd := c.cacheClearCommand()
	cmd.SetContext(context.Background())
	if err := cmd.RunE(cmd, nil); err != nil {
		t.Fatalf("cache clear: %v", err)
	}

	store, _ = c.newCache(context.Background())
	defer store.Close()
	if _, ok, _ := store.Get(context.Background(), "a"); ok {
		t.Error("entry survived cache clear")
	}
}
