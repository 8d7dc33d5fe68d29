package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// layoutFlags are the layout overrides shared by layout and render.
type layoutFlags struct {
	horizontal float64
	vertical   float64
	traversal  string
	components string
	gap        float64
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.horizontal, "horizontal-spacing", 0, "sibling spacing (default: from view)")
	cmd.Flags().Float64Var(&f.vertical, "vertical-spacing", 0, "level spacing (default: from view)")
	cmd.Flags().StringVar(&f.traversal, "traversal", "", "tree walk: bfs or dfs (default: from view)")
	cmd.Flags().StringVar(&f.components, "components", "", "disconnected trees: shared or banded (default: from view)")
	cmd.Flags().Float64Var(&f.gap, "component-gap", 0, "gap between bands in banded mode")
}

// apply overrides the view's layout options with the flags that were set.
func (f *layoutFlags) apply(opts *tree.Options) error {
	if f.horizontal < 0 || f.vertical < 0 || f.gap < 0 {
		return fmt.Errorf("spacing must not be negative")
	}
	if f.horizontal > 0 {
		opts.HorizontalSpacing = f.horizontal
	}
	if f.vertical > 0 {
		opts.VerticalSpacing = f.vertical
	}
	if f.gap > 0 {
		opts.ComponentGap = f.gap
	}
	if f.traversal != "" {
		t, err := tree.ParseTraversal(f.traversal)
		if err != nil {
			return err
		}
		opts.Traversal = t
	}
	if f.components != "" {
		m, err := tree.ParseComponents(f.components)
		if err != nil {
			return err
		}
		opts.Components = m
	}
	return nil
}

// layoutCommand creates the layout command for computing chart layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		flags  layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the layout of a projection period",
		Long: `Compute the layout of a projection period.

The layout command loads the dataset, positions every node of the selected
period and writes a layout.json file that 'render --layout' turns into
SVG, DOT or PNG without recomputing positions.

Records that cannot be placed (dangling edges, second parents, cycles,
duplicate ids, unknown kinds) are reported as warnings; the rest of the chart
is still laid out. Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(&opts.Layout); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>-<period>.layout.json)")
	flags.register(cmd)

	return cmd
}

// runLayout loads the chart, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string) error {
	src, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	opts.Period = src.Period

	runner, err := c.newRunner(ctx)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Computing %s layout...", opts.View))
	spinner.Start()

	layout, cacheHit, err := runner.LayoutWithCacheInfo(ctx, src, opts)
	if spinner.Cancelled() {
		spinner.Stop()
		return ctx.Err()
	}
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	outputPath := output
	if outputPath == "" {
		outputPath = outputBase(opts.Dataset, src.Period) + ".layout.json"
	}

	if err := graph.WriteLayoutFile(layout, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printIssues(layout.Issues)
	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(layout.Nodes), len(layout.Levels), cacheHit)
	printNewline()
	printNextStep("Render", "orgchart render --layout "+outputPath)

	return nil
}

// outputBase derives "<dataset>-<period>" for default output paths.
func outputBase(dataset, period string) string {
	return datasetName(dataset) + "-" + period
}
