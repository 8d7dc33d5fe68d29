package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/buildinfo"
	"github.com/matzehuels/orgchart/pkg/cache"
	"github.com/matzehuels/orgchart/pkg/config"
	"github.com/matzehuels/orgchart/pkg/observability"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	// Global flags. Empty values defer to the config.
	configPath string
	dataset    string
	period     string
	view       string
	noCache    bool
}

// New creates a new CLI instance with a default logger and the built-in
// configuration. The config file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level. At debug level pipeline and cache
// events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "orgchart",
		Short: "Orgchart lays out organization charts as positioned trees",
		Long: `Orgchart computes hierarchical layouts for org charts and renders them
as SVG, Graphviz or JSON. Charts come from dataset files with one or more
projection periods; without a dataset the built-in sample is used.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/orgchart/config.toml)")
	flags.StringVarP(&c.dataset, "dataset", "d", "", "dataset file: .toml, .yaml or .json (default: built-in sample)")
	flags.StringVarP(&c.period, "period", "p", "", "projection period (default: the dataset's default)")
	flags.StringVar(&c.view, "view", "", "layout view preset: org, projection, agents or a configured view")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable caching")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.periodsCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file and applies the global flags on top.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.view != "" {
		cfg.View = c.view
	}
	if c.dataset != "" {
		cfg.Dataset = c.dataset
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.Config = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	keyer := cache.NewScopedKeyer(nil, datasetName(c.Config.Dataset)+":")
	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.TTL = c.Config.Cache.TTL
	return runner, nil
}

// newCache opens the configured backend. An unreachable Redis degrades to
// no caching with a warning.
func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if errors.Is(err, cache.ErrUnavailable) {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache(), nil
		}
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, continuing without cache", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the XDG default.
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from the global flags and config.
func (c *CLI) pipelineOptions() (pipeline.Options, error) {
	layout, err := c.Config.LayoutOptions(c.Config.View)
	if err != nil {
		return pipeline.Options{}, err
	}
	// Issues are printed from the layout, cached or not.
	layout.Logger = log.NewWithOptions(io.Discard, log.Options{})
	return pipeline.Options{
		Dataset: c.Config.Dataset,
		Period:  c.period,
		View:    c.Config.View,
		Layout:  layout,
		Logger:  c.Logger,
	}, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	formats := strings.Split(s, ",")
	for i, f := range formats {
		formats[i] = strings.TrimSpace(f)
	}
	return formats
}

// datasetName names a dataset for cache scoping and default output paths.
func datasetName(path string) string {
	if path == "" {
		return "sample"
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
