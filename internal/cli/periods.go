package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/tree"
)

var periodHeaders = []string{"", "Period", "Label", "Nodes", "Levels", "Headcount", "Planned", "Open roles", "Agents"}

// periodsCommand creates the periods command.
func (c *CLI) periodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "periods",
		Short: "List the projection periods of a dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := pipeline.LoadDataset(c.Config.Dataset)
			if err != nil {
				return err
			}
			rows, err := periodRows(ds)
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(ds.Name))
			fmt.Println(periodTable(rows))
			printNewline()
			printNextStep("Show one period", "orgchart levels -p "+ds.Default)
			return nil
		},
	}
}

// periodRows summarizes every period of ds, one table row each. The default
// period is marked with an asterisk in the first column.
func periodRows(ds *dataset.Dataset) ([][]string, error) {
	rows := make([][]string, 0, len(ds.Periods))
	for _, p := range ds.Periods {
		chart, err := ds.Period(p.ID)
		if err != nil {
			return nil, err
		}
		s := dataset.Summarize(chart)
		levels := tree.LayoutChart(chart, tree.DefaultOptions()).Levels.Depth()

		mark := ""
		if p.ID == ds.Default {
			mark = "*"
		}
		rows = append(rows, []string{
			mark,
			p.ID,
			p.DisplayLabel(),
			strconv.Itoa(s.Nodes),
			strconv.Itoa(levels),
			strconv.Itoa(s.Headcount),
			strconv.Itoa(s.Planned),
			strconv.Itoa(s.OpenRoles),
			strconv.Itoa(s.Agents),
		})
	}
	return rows, nil
}

func periodTable(rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(periodHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return cellStyle.Foreground(colorGreen)
			case col == 1:
				return cellStyle.Foreground(colorCyan)
			case col >= 3:
				return cellStyle.Foreground(colorWhite).Align(lipgloss.Right)
			}
			return cellStyle
		})
	return t.Render()
}
