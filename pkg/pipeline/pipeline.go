// Package pipeline provides the load → layout → render pipeline behind the
// orgchart CLI.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: read a dataset (or the embedded sample) and pick one period
//  2. Layout: position the period's chart with the tree engine
//  3. Render: produce artifacts (SVG, DOT, Graphviz SVG, PNG, layout JSON)
//
// Layouts and artifacts are cached by content hash, so re-running over an
// unchanged chart with unchanged options does no work.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Period:  "6m",
//	    View:    "org",
//	    Layout:  layoutOpts,
//	    Formats: []string{"svg", "json"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	src, err := pipeline.Load(opts)
//	layout, err := runner.Layout(ctx, src, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/orgchart/pkg/cache"
	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/render/svg"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// =============================================================================
// Formats and Styles
// =============================================================================

// Format constants for output formats.
const (
	FormatSVG         = "svg"
	FormatDOT         = "dot"
	FormatGraphvizSVG = "graphviz-svg"
	FormatPNG         = "png"
	FormatJSON        = "json"
)

// DefaultStyle is the default SVG style.
const DefaultStyle = svg.StyleCard

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:         true,
	FormatDOT:         true,
	FormatGraphvizSVG: true,
	FormatPNG:         true,
	FormatJSON:        true,
}

// ValidStyles is the set of supported SVG styles.
var ValidStyles = map[string]bool{
	svg.StyleCard:    true,
	svg.StyleCompact: true,
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	switch format {
	case FormatGraphvizSVG:
		return "graphviz.svg"
	case FormatJSON:
		return "layout.json"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Load options
	Dataset string // dataset file; empty uses the embedded sample
	Period  string // empty selects the dataset's default period

	// Layout options
	View   string
	Layout tree.Options

	// Render options
	Formats    []string
	Style      string
	NodeWidth  float64
	NodeHeight float64
	Padding    float64
	Detailed   bool
	Title      string

	// Refresh skips cache reads; results are still written back.
	Refresh bool

	Logger *log.Logger
}

// Result contains the outputs of a pipeline run.
type Result struct {
	Chart     *org.Chart
	ChartHash string
	// Period is the resolved period id.
	Period string

	Layout    graph.Layout
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached stage.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return orgerrors.New(orgerrors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, dot, graphviz-svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateStyle checks that a style is valid.
func ValidateStyle(style string) error {
	if !ValidStyles[style] {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput,
			"invalid style: %q (must be one of: card, compact)", style)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields. It is idempotent.
func (o *Options) SetDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Layout.Logger == nil {
		o.Layout.Logger = o.Logger
	}
	o.Layout.SetDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Style == "" {
		o.Style = DefaultStyle
	}
}

// Validate checks render options. Call SetDefaults first.
func (o *Options) Validate() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := ValidateStyle(o.Style); err != nil {
		return err
	}
	if o.NodeWidth < 0 || o.NodeHeight < 0 || o.Padding < 0 {
		return orgerrors.New(orgerrors.ErrCodeInvalidInput, "node size and padding must not be negative")
	}
	return nil
}

// SVGOptions returns the options for the direct SVG renderer.
func (o *Options) SVGOptions() svg.Options {
	return svg.Options{
		Style:      o.Style,
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		Padding:    o.Padding,
		Title:      o.Title,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		View:              o.View,
		HorizontalSpacing: o.Layout.HorizontalSpacing,
		VerticalSpacing:   o.Layout.VerticalSpacing,
		CenterX:           o.Layout.CenterX,
		BaseY:             o.Layout.BaseY,
		Traversal:         o.Layout.Traversal.String(),
		Components:        o.Layout.Components.String(),
		ComponentGap:      o.Layout.ComponentGap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:     format,
		Style:      o.Style,
		NodeWidth:  o.NodeWidth,
		NodeHeight: o.NodeHeight,
		Padding:    o.Padding,
		Detailed:   o.Detailed,
		Title:      o.Title,
	}
}
