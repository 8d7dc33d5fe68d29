package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	lgtree "github.com/charmbracelet/lipgloss/tree"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
)

// levelsCommand creates the levels command, which prints the level map of
// a period together with its headcount summary.
func (c *CLI) levelsCommand() *cobra.Command {
	var (
		positions bool
		flags     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "Print the level map of a projection period",
		Long: `Print the level map of a projection period.

Every node is listed under its depth from the root, in the order the layout
engine visited it, followed by a headcount summary of the period.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(&opts.Layout); err != nil {
				return err
			}
			return c.runLevels(cmd.Context(), opts, positions)
		},
	}

	cmd.Flags().BoolVar(&positions, "positions", false, "show computed x,y positions")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runLevels(ctx context.Context, opts pipeline.Options, positions bool) error {
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

	layout, _, err := runner.LayoutWithCacheInfo(ctx, src, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	printIssues(layout.Issues)
	fmt.Println(formatLevels(layout, positions))
	printNewline()
	printSummary(dataset.Summarize(src.Chart))
	return nil
}

// formatLevels renders the level map as a tree: one branch per level, one
// leaf per node.
func formatLevels(l graph.Layout, positions bool) string {
	nodes := make(map[string]graph.LayoutNode, len(l.Nodes))
	for _, n := range l.Nodes {
		nodes[n.ID] = n
	}

	title := "levels"
	if l.Period != "" {
		title = l.Period
	}
	if l.View != "" {
		title += " · " + l.View
	}

	root := lgtree.Root(StyleTitle.Render(title)).Enumerator(lgtree.RoundedEnumerator)
	for depth, ids := range l.Levels {
		level := lgtree.Root(fmt.Sprintf("Level %d %s", depth, StyleDim.Render("· "+plural(len(ids), "node"))))
		for _, id := range ids {
			level.Child(formatLevelNode(nodes[id], positions))
		}
		root.Child(level)
	}
	return root.String()
}

func formatLevelNode(n graph.LayoutNode, positions bool) string {
	label := n.DisplayLabel()
	switch n.Kind {
	case org.KindTeam.String():
		label = styleKindTeam.Render(label)
	case org.KindOpenRole.String():
		label = styleKindOpenRole.Render(label + " (open)")
	case org.KindAgent.String():
		label = styleKindAgent.Render(label)
	default:
		label = StyleValue.Render(label)
	}

	parts := []string{label}
	if n.DisplayLabel() != n.ID {
		parts = append(parts, StyleDim.Render(n.ID))
	}
	if positions {
		parts = append(parts, StyleNumber.Render(fmt.Sprintf("(%s, %s)", fmtCoord(n.X), fmtCoord(n.Y))))
	}
	return strings.Join(parts, " ")
}

// printSummary prints the headcount summary of a chart.
func printSummary(s dataset.Summary) {
	printKeyValue("Nodes", strconv.Itoa(s.Nodes))
	printKeyValue("Headcount", strconv.Itoa(s.Headcount))
	printKeyValue("Planned", strconv.Itoa(s.Planned))
	if s.OpenRoles > 0 {
		printKeyValue("Open roles", fmt.Sprintf("%d (avg risk %.2f)", s.OpenRoles, s.AverageRisk))
	}
	if s.Agents > 0 {
		printKeyValue("Agents", strconv.Itoa(s.Agents))
	}
	var depts []string
	for _, d := range s.Departments() {
		if d == "" {
			continue
		}
		depts = append(depts, fmt.Sprintf("%s %d", d, s.ByDepartment[d]))
	}
	if len(depts) > 0 {
		printKeyValue("Departments", strings.Join(depts, ", "))
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
