package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/orgchart/pkg/dataset"
	"github.com/matzehuels/orgchart/pkg/graph"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/pipeline"
	"github.com/matzehuels/orgchart/pkg/tree"
)

var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand creates the browse command: pick a period interactively,
// print its level map, and pick again until the user quits.
func (c *CLI) browseCommand() *cobra.Command {
	var flags layoutFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Pick projection periods interactively and show their levels",
		Long: `Pick projection periods interactively and show their levels.

Each selection replaces the browsed chart and prints the new level map; the
picker then reopens on the same period. Press q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds, err := pipeline.LoadDataset(c.Config.Dataset)
			if err != nil {
				return err
			}
			opts, err := c.pipelineOptions()
			if err != nil {
				return err
			}
			if err := flags.apply(&opts.Layout); err != nil {
				return err
			}

			b := newBrowser(os.Stdout, ds, opts)
			defer b.Close()

			model := NewPeriodListModel(ds)
			for shown := 0; ; shown++ {
				final, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
				if err != nil {
					return fmt.Errorf("browse: %w", err)
				}
				m, ok := final.(PeriodListModel)
				if !ok || m.Selected == nil {
					if shown == 0 {
						printInfo("No period selected")
					}
					return nil
				}
				if err := b.Show(m.Selected.ID); err != nil {
					return err
				}
				model, model.Selected = m, nil
			}
		},
	}
	flags.register(cmd)

	return cmd
}

// =============================================================================
// Browser - Followed chart store
// =============================================================================

// browser holds the browsed chart in an org.Store. Show replaces the chart;
// a tree.Follow subscription lays out every commit and prints it.
type browser struct {
	ds    *dataset.Dataset
	opts  pipeline.Options
	out   io.Writer
	store *org.Store

	mu     sync.Mutex
	period string
	issues []error // load issues of period
	stop   func()
}

func newBrowser(out io.Writer, ds *dataset.Dataset, opts pipeline.Options) *browser {
	b := &browser{ds: ds, opts: opts, out: out, store: org.NewStore(nil)}
	b.stop = tree.Follow(b.store, opts.Layout, b.print)
	return b
}

// Show loads a period and commits it to the store.
func (b *browser) Show(period string) error {
	c, issues, err := b.ds.Chart(period)
	if err != nil {
		return err
	}
	if period == "" {
		period = b.ds.Default
	}
	b.mu.Lock()
	b.period, b.issues = period, issues
	b.mu.Unlock()
	return b.store.Dispatch(org.ReplaceChart{Chart: c})
}

func (b *browser) print(res tree.Result, version uint64) {
	// Version 0 is the empty chart the store starts with.
	if version == 0 {
		return
	}
	b.mu.Lock()
	period, issues := b.period, b.issues
	b.mu.Unlock()

	l := graph.FromResult(res, b.opts.Layout)
	l.View, l.Period = b.opts.View, period
	all := make([]graph.Issue, 0, len(issues)+len(l.Issues))
	for _, issue := range issues {
		all = append(all, graph.IssueFrom(issue))
	}
	l.Issues = append(all, l.Issues...)
	for _, issue := range l.Issues {
		fmt.Fprintln(b.out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(issue.Message))
	}
	fmt.Fprintln(b.out, formatLevels(l, false))

	c, _ := b.store.Snapshot()
	s := dataset.Summarize(c)
	fmt.Fprintln(b.out, StyleDim.Render(fmt.Sprintf("%s · headcount %d · planned %d", plural(s.Nodes, "node"), s.Headcount, s.Planned)))
	fmt.Fprintln(b.out)
}

// Close ends the store subscription.
func (b *browser) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stop != nil {
		b.stop()
		b.stop = nil
	}
}

// =============================================================================
// PeriodListModel - Interactive period selection
// =============================================================================

// PeriodListModel is the bubbletea model for interactive period selection.
type PeriodListModel struct {
	Name     string
	Default  string
	Periods  []dataset.Period
	Cursor   int
	Selected *dataset.Period
}

// NewPeriodListModel creates a period list with the cursor on the default
// period.
func NewPeriodListModel(ds *dataset.Dataset) PeriodListModel {
	m := PeriodListModel{Name: ds.Name, Default: ds.Default, Periods: ds.Periods}
	for i, p := range ds.Periods {
		if p.ID == ds.Default {
			m.Cursor = i
		}
	}
	return m
}

func (m PeriodListModel) Init() tea.Cmd {
	return nil
}

func (m PeriodListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Periods)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Periods) == 0 {
				return m, tea.Quit
			}
			p := m.Periods[m.Cursor]
			m.Selected = &p
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m PeriodListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Period"))
	if m.Name != "" {
		b.WriteString(" " + listDimStyle.Render(m.Name))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, p := range m.Periods {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if p.ID == m.Default {
			mark = StyleSuccess.Render("*")
		}
		line := fmt.Sprintf("%s%-10s %s", cursor, p.ID, listDimStyle.Render(fmt.Sprintf("%-24s %d nodes", p.DisplayLabel(), len(p.Chart.Nodes))))
		if i == m.Cursor {
			line = listSelectedStyle.Render(line)
		} else {
			line = listNormalStyle.Render(line)
		}
		b.WriteString(mark + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Periods))))
	return b.String()
}
