package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// renderCommand creates the render command. It renders a period straight
// from the dataset, or a layout file written by 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		layoutPath string
		flags      layoutFlags
		render     pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a projection period to SVG, DOT or PNG",
		Long: `Render a projection period to SVG, DOT or PNG.

Formats:
  svg           cards and elbow connectors drawn directly (default)
  dot           Graphviz source with every node pinned at its position
  graphviz-svg  the DOT source rendered by Graphviz
  png           the DOT source rendered by Graphviz as PNG
  json          the layout itself

With --layout the positions come from a layout.json written by 'layout' and
the dataset is not read. Results are cached locally for faster subsequent
runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(&opts.Layout); err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			opts.Style = render.Style
			opts.Detailed = render.Detailed
			opts.Title = render.Title
			opts.NodeWidth = render.NodeWidth
			opts.NodeHeight = render.NodeHeight
			opts.Padding = render.Padding
			opts.SetDefaults()
			if err := opts.Validate(); err != nil {
				return err
			}
			if layoutPath != "" {
				return c.runRenderLayout(cmd.Context(), layoutPath, opts, output)
			}
			return c.runRender(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, graphviz-svg, png, json (comma-separated)")
	cmd.Flags().StringVar(&layoutPath, "layout", "", "render a layout.json instead of the dataset")
	cmd.Flags().StringVar(&render.Style, "style", pipeline.DefaultStyle, "svg style: card (default), compact")
	cmd.Flags().BoolVar(&render.Detailed, "detailed", false, "add subtitles to Graphviz nodes")
	cmd.Flags().StringVar(&render.Title, "title", "", "title drawn in the svg corner")
	cmd.Flags().Float64Var(&render.NodeWidth, "node-width", 0, "svg card width")
	cmd.Flags().Float64Var(&render.NodeHeight, "node-height", 0, "svg card height")
	cmd.Flags().Float64Var(&render.Padding, "padding", 0, "svg canvas padding")
	flags.register(cmd)

	return cmd
}

// runRender runs the full pipeline for the selected period.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Rendering chart...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("rendered %d artifacts", len(result.Artifacts)))

	printIssues(result.Layout.Issues)
	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		base:      outputBase(opts.Dataset, result.Period),
		output:    output,
		nodes:     result.Stats.NodeCount,
		levels:    len(result.Layout.Levels),
		cacheHit:  result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit,
	})
}

// runRenderLayout renders a layout file.
func (c *CLI) runRenderLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	layout, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cacheHit, err := runner.RenderWithCacheInfo(ctx, layout, opts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	printIssues(layout.Issues)
	return writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   opts.Formats,
		base:      strings.TrimSuffix(strings.TrimSuffix(input, ".json"), ".layout"),
		output:    output,
		nodes:     len(layout.Nodes),
		levels:    len(layout.Levels),
		cacheHit:  cacheHit,
	})
}

// =============================================================================
// Output
// =============================================================================

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	base      string // default base path when output is empty
	output    string
	nodes     int
	levels    int
	cacheHit  bool
}

// writeArtifacts writes each artifact to its own file and prints a summary.
func writeArtifacts(p artifactWriteParams) error {
	paths := artifactPaths(p.formats, p.output, p.base)
	var written []string
	for _, format := range p.formats {
		path := paths[format]
		if slices.Contains(written, path) {
			continue
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}

	printSuccess("Render complete")
	for _, path := range written {
		printFile(path)
	}
	printStats(p.nodes, p.levels, p.cacheHit)
	return nil
}

// artifactPaths maps each format to its output file. A single format with
// an explicit output writes exactly there; otherwise files are named
// <base>.<extension>, where an explicit output minus a known extension
// replaces the default base.
func artifactPaths(formats []string, output, base string) map[string]string {
	paths := make(map[string]string, len(formats))
	if output != "" && len(formats) == 1 {
		paths[formats[0]] = output
		return paths
	}
	if output != "" {
		base = trimFormatExt(output)
	}
	for _, f := range formats {
		paths[f] = base + "." + pipeline.Extension(f)
	}
	return paths
}

// trimFormatExt strips a trailing format extension such as ".svg" or
// ".layout.json".
func trimFormatExt(path string) string {
	exts := make([]string, 0, len(pipeline.ValidFormats))
	for f := range pipeline.ValidFormats {
		exts = append(exts, "."+pipeline.Extension(f))
	}
	// ".graphviz.svg" before ".svg"
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return strings.TrimSuffix(path, ext)
		}
	}
	return path
}
