package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/org"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides the per-type entry lifetimes when positive.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Pipeline()

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	hooks.OnLoadStart(ctx, opts.Dataset, opts.Period)
	src, err := Load(opts)
	result.Stats.LoadTime = time.Since(loadStart)
	if err != nil {
		hooks.OnLoadComplete(ctx, opts.Dataset, opts.Period, 0, result.Stats.LoadTime, err)
		return nil, fmt.Errorf("load: %w", err)
	}
	c, period := src.Chart, src.Period
	hooks.OnLoadComplete(ctx, opts.Dataset, period, c.NodeCount(), result.Stats.LoadTime, nil)
	opts.Period = period
	result.Chart = c
	result.Period = period
	result.Stats.NodeCount = c.NodeCount()
	result.Stats.EdgeCount = c.EdgeCount()

	r.Logger.Info("loaded chart",
		"period", period,
		"nodes", c.NodeCount(),
		"edges", c.EdgeCount(),
		"skipped", len(src.Issues),
		"duration", result.Stats.LoadTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	hooks.OnLayoutStart(ctx, opts.View, c.NodeCount())
	layout, chartHash, layoutHit, err := r.layout(ctx, src, opts)
	result.Stats.LayoutTime = time.Since(layoutStart)
	hooks.OnLayoutComplete(ctx, opts.View, len(layout.Issues), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.ChartHash = chartHash
	result.CacheInfo.LayoutHit = layoutHit

	r.Logger.Info("computed layout",
		"levels", len(layout.Levels),
		"issues", len(layout.Issues),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LayoutWithCacheInfo computes a layout with caching and returns cache hit
// info. The source's load issues lead the layout's issues. opts.Period
// labels the layout and defaults to src.Period.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, src Source, opts Options) (graph.Layout, bool, error) {
	l, _, hit, err := r.layout(ctx, src, opts)
	return l, hit, err
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, src Source, opts Options) (graph.Layout, error) {
	l, _, err := r.LayoutWithCacheInfo(ctx, src, opts)
	return l, err
}

func (r *Runner) layout(ctx context.Context, src Source, opts Options) (graph.Layout, string, bool, error) {
	l, hash, hit, err := r.chartLayout(ctx, src.Chart, opts, src.Period)
	if err != nil || len(src.Issues) == 0 {
		return l, hash, hit, err
	}
	issues := make([]graph.Issue, 0, len(src.Issues)+len(l.Issues))
	for _, issue := range src.Issues {
		r.Logger.Debug("skipped node record", "err", issue)
		issues = append(issues, graph.IssueFrom(issue))
	}
	l.Issues = append(issues, l.Issues...)
	return l, hash, hit, nil
}

// chartLayout lays out c through the cache. Cached entries never carry load
// issues.
func (r *Runner) chartLayout(ctx context.Context, c *org.Chart, opts Options, period string) (graph.Layout, string, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if opts.Period == "" {
		opts.Period = period
	}
	hooks := observability.Cache()

	chartData, err := graph.MarshalChart(c)
	if err != nil {
		return graph.Layout{}, "", false, fmt.Errorf("serialize chart for cache key: %w", err)
	}
	chartHash := cache.Hash(chartData)
	cacheKey := r.Keyer.LayoutKey(chartHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, ok := r.get(ctx, cacheKey); ok {
			cached, err := graph.UnmarshalLayout(data)
			if err == nil {
				hooks.OnCacheHit(ctx, "layout")
				// Period is a label, so one entry serves every period with
				// the same chart.
				cached.View = opts.View
				cached.Period = opts.Period
				return cached, chartHash, true, nil
			}
			r.Logger.Debug("discarding unreadable cached layout", "err", err)
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	l := GenerateLayout(c, opts)

	if data, err := graph.MarshalLayout(l); err == nil {
		r.set(ctx, cacheKey, data, r.ttl(cache.TTLLayout))
		hooks.OnCacheSet(ctx, "layout", len(data))
	}

	return l, chartHash, false, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit
// info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.Validate(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	layoutData, err := graph.MarshalLayout(l)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte)
	if !opts.Refresh {
		for _, format := range opts.Formats {
			data, ok := r.get(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)))
			if !ok {
				hooks.OnCacheMiss(ctx, "artifact")
				break
			}
			hooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
		}
		if len(artifacts) == len(uniq(opts.Formats)) {
			return artifacts, true, nil
		}
	}

	rendered, err := Render(ctx, l, opts)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		r.set(ctx, r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format)), data, r.ttl(cache.TTLArtifact))
		hooks.OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// get reads a cache entry. Backend failures count as misses.
func (r *Runner) get(ctx context.Context, key string) ([]byte, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
		return nil, false
	}
	return data, hit
}

func (r *Runner) set(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
	}
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func uniq(formats []string) map[string]bool {
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		seen[f] = true
	}
	return seen
}
