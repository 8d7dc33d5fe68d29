package dataset

import (
	"slices"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Summary is a headcount overview of one chart.
type Summary struct {
	Nodes  int
	ByKind map[org.Kind]int
	// ByDepartment counts nodes per department; nodes without one are
	// counted under "".
	ByDepartment map[string]int

	// Headcount adds one per person and each team's headcount.
	Headcount int
	// Planned adds one per person and open role, plus each team's budget or
	// its headcount when that is larger.
	Planned int

	OpenRoles int
	// AverageRisk is the mean hiring-risk score over open roles with
	// details, zero when there are none.
	AverageRisk float64
	Agents      int
}

// Summarize computes a headcount overview.
func Summarize(c *org.Chart) Summary {
	s := Summary{
		ByKind:       make(map[org.Kind]int),
		ByDepartment: make(map[string]int),
	}
	var riskSum float64
	var scored int
	for _, n := range c.Nodes() {
		p := n.Profile
		s.Nodes++
		s.ByKind[p.Kind]++
		s.ByDepartment[p.Department]++

		switch p.Kind {
		case org.KindPerson:
			s.Headcount++
			s.Planned++
		case org.KindTeam:
			if p.Team != nil {
				s.Headcount += p.Team.Headcount
				s.Planned += max(p.Team.Budget, p.Team.Headcount)
			}
		case org.KindOpenRole:
			s.OpenRoles++
			s.Planned++
			if p.OpenRole != nil {
				riskSum += p.OpenRole.RiskScore
				scored++
			}
		case org.KindAgent:
			s.Agents++
		}
	}
	if scored > 0 {
		s.AverageRisk = riskSum / float64(scored)
	}
	return s
}

// Departments returns the department names in sorted order.
func (s Summary) Departments() []string {
	out := make([]string, 0, len(s.ByDepartment))
	for d := range s.ByDepartment {
		out = append(out, d)
	}
	slices.Sort(out)
	return out
}
