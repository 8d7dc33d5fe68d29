package graph

import (
	"fmt"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
	"github.com/matzehuels/orgchart/pkg/tree"
)

// =============================================================================
// Chart - Org Structure Serialization
// =============================================================================

// Chart is the canonical serialization format for org charts. Dataset files
// embed it once per projection period and the CLI reads and writes it as
// JSON.
//
// Node and edge order is preserved: it is the order the layout engine uses
// to break ties.
type Chart struct {
	Nodes []Node `json:"nodes" toml:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" toml:"edges" yaml:"edges"`
}

// =============================================================================
// Node - Flattened Profile
// =============================================================================

// Node is a flattened org.Node. Only the detail fields matching Kind are
// meaningful; the rest are omitted on output and ignored on input.
type Node struct {
	ID         string `json:"id" toml:"id" yaml:"id"`
	Kind       string `json:"kind,omitempty" toml:"kind,omitempty" yaml:"kind,omitempty"`
	Name       string `json:"name,omitempty" toml:"name,omitempty" yaml:"name,omitempty"`
	Title      string `json:"title,omitempty" toml:"title,omitempty" yaml:"title,omitempty"`
	Role       string `json:"role,omitempty" toml:"role,omitempty" yaml:"role,omitempty"`
	Department string `json:"department,omitempty" toml:"department,omitempty" yaml:"department,omitempty"`

	// person
	Email    string `json:"email,omitempty" toml:"email,omitempty" yaml:"email,omitempty"`
	Location string `json:"location,omitempty" toml:"location,omitempty" yaml:"location,omitempty"`
	Tenure   int    `json:"tenure_months,omitempty" toml:"tenure_months,omitempty" yaml:"tenure_months,omitempty"`

	// team
	Headcount int `json:"headcount,omitempty" toml:"headcount,omitempty" yaml:"headcount,omitempty"`
	Budget    int `json:"budget,omitempty" toml:"budget,omitempty" yaml:"budget,omitempty"`

	// open_role
	TargetQuarter string  `json:"target_quarter,omitempty" toml:"target_quarter,omitempty" yaml:"target_quarter,omitempty"`
	Priority      string  `json:"priority,omitempty" toml:"priority,omitempty" yaml:"priority,omitempty"`
	RiskScore     float64 `json:"risk_score,omitempty" toml:"risk_score,omitempty" yaml:"risk_score,omitempty"`

	// agent
	Systems          []string           `json:"systems,omitempty" toml:"systems,omitempty" yaml:"systems,omitempty"`
	WorkDistribution map[string]float64 `json:"work_distribution,omitempty" toml:"work_distribution,omitempty" yaml:"work_distribution,omitempty"`
}

// DisplayLabel returns the name, falling back to the title and then the ID.
func (n *Node) DisplayLabel() string {
	return org.Profile{Name: n.Name, Title: n.Title}.Label(n.ID)
}

// Profile rebuilds the typed profile. Detail blocks are only attached when
// at least one of their fields is set.
func (n *Node) Profile() (org.Profile, error) {
	kind, err := org.ParseKind(n.Kind)
	if err != nil {
		return org.Profile{}, err
	}
	p := org.Profile{
		Kind:       kind,
		Name:       n.Name,
		Title:      n.Title,
		Role:       n.Role,
		Department: n.Department,
	}
	switch kind {
	case org.KindPerson:
		if n.Email != "" || n.Location != "" || n.Tenure != 0 {
			p.Person = &org.PersonDetails{Email: n.Email, Location: n.Location, Tenure: n.Tenure}
		}
	case org.KindTeam:
		if n.Headcount != 0 || n.Budget != 0 {
			p.Team = &org.TeamDetails{Headcount: n.Headcount, Budget: n.Budget}
		}
	case org.KindOpenRole:
		if n.TargetQuarter != "" || n.Priority != "" || n.RiskScore != 0 {
			p.OpenRole = &org.OpenRoleDetails{TargetQuarter: n.TargetQuarter, Priority: n.Priority, RiskScore: n.RiskScore}
		}
	case org.KindAgent:
		if len(n.Systems) > 0 || len(n.WorkDistribution) > 0 {
			p.Agent = &org.AgentDetails{Systems: n.Systems, WorkDistribution: n.WorkDistribution}
		}
	}
	return p, p.Validate()
}

// =============================================================================
// Edge - Reporting Line
// =============================================================================

// Edge is a reporting line: Source manages Target.
type Edge struct {
	Source string `json:"source" toml:"source" yaml:"source"`
	Target string `json:"target" toml:"target" yaml:"target"`
}

// =============================================================================
// Chart ↔ org.Chart Conversion
// =============================================================================

// FromChart converts an org chart to its serialization format, keeping
// node and edge order.
func FromChart(c *org.Chart) Chart {
	nodes := c.Nodes()
	edges := c.Edges()
	out := Chart{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	for i, n := range nodes {
		out.Nodes[i] = nodeFromOrg(n)
	}
	for i, e := range edges {
		out.Edges[i] = Edge{Source: e.Source, Target: e.Target}
	}
	return out
}

// ToChart converts a serialized chart into an org chart. Node ids must pass
// [orgerrors.ValidateNodeID], kinds must parse and ids must be unique; the
// first bad record fails the conversion. Edges are taken as given.
func ToChart(gc Chart) (*org.Chart, error) {
	c, issues := BuildChart(gc)
	if len(issues) > 0 {
		return nil, issues[0]
	}
	return c, nil
}

// BuildChart converts a serialized chart, skipping node records that cannot
// be used. Invalid records are reported as [*SkippedNodeError]; repeated ids
// keep the first occurrence and are reported as [*tree.DuplicateNodeError].
// Edges are taken as given; dangling or conflicting reporting lines are left
// for the layout engine to report.
func BuildChart(gc Chart) (*org.Chart, []error) {
	var issues []error
	c := org.NewChart()
	for _, nj := range gc.Nodes {
		if err := orgerrors.ValidateNodeID(nj.ID); err != nil {
			issues = append(issues, &SkippedNodeError{ID: nj.ID, Err: err})
			continue
		}
		p, err := nj.Profile()
		if err != nil {
			issues = append(issues, &SkippedNodeError{ID: nj.ID, Err: err})
			continue
		}
		if _, dup := c.Node(nj.ID); dup {
			issues = append(issues, &tree.DuplicateNodeError{ID: nj.ID})
			continue
		}
		if err := c.AddNode(org.Node{ID: nj.ID, Profile: p}); err != nil {
			issues = append(issues, &SkippedNodeError{ID: nj.ID, Err: err})
		}
	}
	for _, ej := range gc.Edges {
		c.AddEdge(org.Edge{Source: ej.Source, Target: ej.Target})
	}
	return c, issues
}

// SkippedNodeError reports a node record that was left out of a chart.
type SkippedNodeError struct {
	ID  string
	Err error
}

func (e *SkippedNodeError) Error() string {
	return fmt.Sprintf("node %q skipped: %v", e.ID, e.Err)
}

func (e *SkippedNodeError) Unwrap() error { return e.Err }

// Code returns the code of the cause, or [orgerrors.ErrCodeInvalidInput].
func (e *SkippedNodeError) Code() orgerrors.Code {
	if code := orgerrors.GetCode(e.Err); code != "" {
		return code
	}
	return orgerrors.ErrCodeInvalidInput
}

// nodeFromOrg is the single point of conversion from org.Node.
func nodeFromOrg(n org.Node) Node {
	p := n.Profile
	out := Node{
		ID:         n.ID,
		Name:       p.Name,
		Title:      p.Title,
		Role:       p.Role,
		Department: p.Department,
	}
	if p.Kind != org.KindPerson {
		out.Kind = p.Kind.String()
	}
	if d := p.Person; d != nil {
		out.Email, out.Location, out.Tenure = d.Email, d.Location, d.Tenure
	}
	if d := p.Team; d != nil {
		out.Headcount, out.Budget = d.Headcount, d.Budget
	}
	if d := p.OpenRole; d != nil {
		out.TargetQuarter, out.Priority, out.RiskScore = d.TargetQuarter, d.Priority, d.RiskScore
	}
	if d := p.Agent; d != nil {
		out.Systems = append([]string(nil), d.Systems...)
		if len(d.WorkDistribution) > 0 {
			out.WorkDistribution = make(map[string]float64, len(d.WorkDistribution))
			for k, v := range d.WorkDistribution {
				out.WorkDistribution[k] = v
			}
		}
	}
	return out
}
