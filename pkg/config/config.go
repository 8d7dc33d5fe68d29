// Package config loads orgchart settings: layout view presets, the default
// dataset and the layout cache backend.
//
// Settings come from three layers, later ones winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/orgchart/config.toml
//  3. ORGCHART_* environment variables
//
// A minimal file:
//
//	view = "projection"
//
//	[views.org]
//	horizontal_spacing = 260
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "12h"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// AppName names the config and cache directories.
const AppName = "orgchart"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Built-in view names.
const (
	ViewOrg        = "org"
	ViewProjection = "projection"
	ViewAgents     = "agents"
)

// View is a named layout preset.
type View struct {
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
	Traversal         string  `toml:"traversal"`
	Components        string  `toml:"components"`
	ComponentGap      float64 `toml:"component_gap"`
}

// Cache configures the layout cache.
type Cache struct {
	Backend       string        `toml:"backend"`
	Dir           string        `toml:"dir"`
	RedisAddr     string        `toml:"redis_addr"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db"`
	TTL           time.Duration `toml:"ttl"`
}

// Config is the merged configuration.
type Config struct {
	View    string          `toml:"view"`
	Dataset string          `toml:"dataset"`
	CenterX float64         `toml:"center_x"`
	BaseY   float64         `toml:"base_y"`
	Views   map[string]View `toml:"views"`
	Cache   Cache           `toml:"cache"`
}

// envOverrides lists the environment variables. Empty values leave the file
// setting alone.
type envOverrides struct {
	View          string        `env:"ORGCHART_VIEW"`
	Dataset       string        `env:"ORGCHART_DATASET"`
	Cache         string        `env:"ORGCHART_CACHE"`
	CacheDir      string        `env:"ORGCHART_CACHE_DIR"`
	RedisAddr     string        `env:"ORGCHART_REDIS_ADDR"`
	RedisPassword string        `env:"ORGCHART_REDIS_PASSWORD"`
	RedisDB       int           `env:"ORGCHART_REDIS_DB" envDefault:"-1"`
	CacheTTL      time.Duration `env:"ORGCHART_CACHE_TTL"`
}

func builtinViews() map[string]View {
	return map[string]View{
		ViewOrg:        {HorizontalSpacing: 250, VerticalSpacing: 150},
		ViewProjection: {HorizontalSpacing: 200, VerticalSpacing: 120},
		ViewAgents:     {HorizontalSpacing: 180, VerticalSpacing: 160},
	}
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		View:    ViewOrg,
		CenterX: tree.DefaultCenterX,
		BaseY:   tree.DefaultBaseY,
		Views:   builtinViews(),
		Cache: Cache{
			Backend: CacheFile,
			TTL:     24 * time.Hour,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/orgchart/config.toml, falling back to
// ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/orgchart/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load merges defaults, the config file and the process environment.
//
// An empty path reads [DefaultPath] if it exists. An explicit path must
// exist.
func Load(path string) (Config, error) {
	return load(path, nil)
}

// LoadWithEnv is Load with an explicit environment instead of os.Environ.
func LoadWithEnv(path string, environ map[string]string) (Config, error) {
	if environ == nil {
		environ = map[string]string{}
	}
	return load(path, environ)
}

func load(path string, environ map[string]string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	if path != "" {
		err := cfg.decodeFile(path)
		switch {
		case err == nil:
		case errors.Is(err, os.ErrNotExist) && !explicit:
		case errors.Is(err, os.ErrNotExist):
			return Config{}, orgerrors.Wrap(orgerrors.ErrCodeFileNotFound, err, "config file %s not found", path)
		default:
			return Config{}, err
		}
	}

	var ov envOverrides
	if err := env.ParseWithOptions(&ov, env.Options{Environment: environ}); err != nil {
		return Config{}, orgerrors.Wrap(orgerrors.ErrCodeInvalidConfig, err, "parse environment")
	}
	cfg.apply(ov)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	views := c.Views
	c.Views = nil
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return orgerrors.Wrap(orgerrors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}

	// File views extend the presets; a partial table keeps the preset's
	// spacings for the keys it leaves out.
	for name, v := range c.Views {
		if b, ok := views[name]; ok {
			if v.HorizontalSpacing == 0 {
				v.HorizontalSpacing = b.HorizontalSpacing
			}
			if v.VerticalSpacing == 0 {
				v.VerticalSpacing = b.VerticalSpacing
			}
		}
		views[name] = v
	}
	c.Views = views
	return nil
}

func (c *Config) apply(ov envOverrides) {
	if ov.View != "" {
		c.View = ov.View
	}
	if ov.Dataset != "" {
		c.Dataset = ov.Dataset
	}
	if ov.Cache != "" {
		c.Cache.Backend = ov.Cache
	}
	if ov.CacheDir != "" {
		c.Cache.Dir = ov.CacheDir
	}
	if ov.RedisAddr != "" {
		c.Cache.RedisAddr = ov.RedisAddr
	}
	if ov.RedisPassword != "" {
		c.Cache.RedisPassword = ov.RedisPassword
	}
	if ov.RedisDB >= 0 {
		c.Cache.RedisDB = ov.RedisDB
	}
	if ov.CacheTTL > 0 {
		c.Cache.TTL = ov.CacheTTL
	}
}

// Validate checks the selected view, every preset and the cache settings.
func (c Config) Validate() error {
	if _, ok := c.Views[c.View]; !ok {
		return orgerrors.New(orgerrors.ErrCodeInvalidView, "unknown view %q (available: %v)", c.View, c.ViewNames())
	}
	for _, name := range c.ViewNames() {
		if _, err := c.Views[name].Options(c.CenterX, c.BaseY); err != nil {
			return orgerrors.Wrap(orgerrors.ErrCodeInvalidConfig, err, "view %s", name)
		}
	}
	switch c.Cache.Backend {
	case CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return orgerrors.New(orgerrors.ErrCodeInvalidConfig, "redis cache requires redis_addr")
		}
	default:
		return orgerrors.New(orgerrors.ErrCodeInvalidConfig, "unknown cache backend %q (must be file, redis or none)", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// ViewNames returns the configured view names in sorted order.
func (c Config) ViewNames() []string {
	names := make([]string, 0, len(c.Views))
	for name := range c.Views {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LayoutOptions returns layout options for the named view. The empty name
// selects the configured default view.
func (c Config) LayoutOptions(view string) (tree.Options, error) {
	if view == "" {
		view = c.View
	}
	v, ok := c.Views[view]
	if !ok {
		return tree.Options{}, orgerrors.New(orgerrors.ErrCodeInvalidView, "unknown view %q (available: %v)", view, c.ViewNames())
	}
	return v.Options(c.CenterX, c.BaseY)
}

// Options converts the preset into layout options around the given anchors.
func (v View) Options(centerX, baseY float64) (tree.Options, error) {
	if v.HorizontalSpacing < 0 || v.VerticalSpacing < 0 {
		return tree.Options{}, fmt.Errorf("spacing must not be negative")
	}
	traversal, err := tree.ParseTraversal(v.Traversal)
	if err != nil {
		return tree.Options{}, err
	}
	components, err := tree.ParseComponents(v.Components)
	if err != nil {
		return tree.Options{}, err
	}
	return tree.Options{
		HorizontalSpacing: v.HorizontalSpacing,
		VerticalSpacing:   v.VerticalSpacing,
		CenterX:           centerX,
		BaseY:             baseY,
		Traversal:         traversal,
		Components:        components,
		ComponentGap:      v.ComponentGap,
	}, nil
}
