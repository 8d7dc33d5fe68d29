package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// exportCommand creates the export command, which writes one period as a
// standalone chart file.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a projection period as a chart JSON file",
		Long: `Write a projection period as a chart JSON file.

The file holds the period's nodes and reporting lines without the other
periods. Skipped records are reported and left out. Pass the file back with
--dataset to lay it out on its own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			return c.runExport(opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <dataset>-<period>.json)")

	return cmd
}

func (c *CLI) runExport(opts pipeline.Options, output string) error {
	src, err := pipeline.Load(opts)
	if err != nil {
		return err
	}
	if output == "" {
		output = outputBase(opts.Dataset, src.Period) + ".json"
	}
	if err := graph.WriteChartFile(src.Chart, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	for _, issue := range src.Issues {
		printWarning("%s", issue)
	}
	printSuccess("Exported %s", plural(src.Chart.NodeCount(), "node"))
	printFile(output)
	printNewline()
	printNextStep("Levels", "orgchart levels --dataset "+output)
	return nil
}
