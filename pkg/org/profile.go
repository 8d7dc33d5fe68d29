package org

import (
	"fmt"
	"strings"
)

// Kind tags what a node represents and therefore which detail block of its
// [Profile] is populated.
type Kind int

const (
	// KindPerson is an employee. Details live in Profile.Person.
	KindPerson Kind = iota
	// KindTeam is a team or department grouping. Details live in Profile.Team.
	KindTeam
	// KindOpenRole is a planned hire that does not exist yet. Details live in
	// Profile.OpenRole.
	KindOpenRole
	// KindAgent is an automated agent system doing work inside the org.
	// Details live in Profile.Agent.
	KindAgent
)

var kindNames = [...]string{
	KindPerson:   "person",
	KindTeam:     "team",
	KindOpenRole: "open_role",
	KindAgent:    "agent",
}

// String returns the wire name of the kind ("person", "team", ...).
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind converts a wire name back to a Kind. The empty string maps to
// KindPerson, the most common node kind in org charts.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KindPerson, nil
	}
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// Kinds returns all node kinds in declaration order.
func Kinds() []Kind {
	return []Kind{KindPerson, KindTeam, KindOpenRole, KindAgent}
}

// Profile is the display-only part of a node. The layout engine never reads
// it.
type Profile struct {
	Kind       Kind
	Name       string
	Title      string
	Role       string
	Department string

	// Exactly one of these is expected to be set, matching Kind. A nil
	// detail block is valid and simply means "no extra details".
	Person   *PersonDetails
	Team     *TeamDetails
	OpenRole *OpenRoleDetails
	Agent    *AgentDetails
}

// PersonDetails holds fields specific to employees.
type PersonDetails struct {
	Email    string
	Location string
	Tenure   int // months
}

// TeamDetails holds fields specific to teams.
type TeamDetails struct {
	Headcount int
	Budget    int // planned headcount
}

// OpenRoleDetails holds fields specific to planned hires.
type OpenRoleDetails struct {
	TargetQuarter string
	Priority      string
	// RiskScore is the hiring-risk scorecard value in [0, 1].
	RiskScore float64
}

// AgentDetails holds fields specific to automated agent systems.
type AgentDetails struct {
	Systems []string
	// WorkDistribution maps a work category to its share in [0, 1].
	WorkDistribution map[string]float64
}

// Label returns the text shown on a node: the name, falling back to the
// title and then to the given id.
func (p Profile) Label(id string) string {
	switch {
	case p.Name != "":
		return p.Name
	case p.Title != "":
		return p.Title
	default:
		return id
	}
}

// Subtitle returns the secondary line shown under the label.
func (p Profile) Subtitle() string {
	parts := make([]string, 0, 2)
	if p.Name != "" && p.Title != "" {
		parts = append(parts, p.Title)
	} else if p.Role != "" {
		parts = append(parts, p.Role)
	}
	if p.Department != "" {
		parts = append(parts, p.Department)
	}
	return strings.Join(parts, " · ")
}

// Validate reports a detail block that does not match the profile kind.
func (p Profile) Validate() error {
	set := map[Kind]bool{
		KindPerson:   p.Person != nil,
		KindTeam:     p.Team != nil,
		KindOpenRole: p.OpenRole != nil,
		KindAgent:    p.Agent != nil,
	}
	for _, k := range Kinds() {
		if set[k] && k != p.Kind {
			return fmt.Errorf("%s profile carries %s details", p.Kind, k)
		}
	}
	if p.OpenRole != nil && (p.OpenRole.RiskScore < 0 || p.OpenRole.RiskScore > 1) {
		return fmt.Errorf("risk score %.2f out of range [0, 1]", p.OpenRole.RiskScore)
	}
	return nil
}

// clone returns a deep copy so snapshots never share detail pointers.
func (p Profile) clone() Profile {
	out := p
	if p.Person != nil {
		v := *p.Person
		out.Person = &v
	}
	if p.Team != nil {
		v := *p.Team
		out.Team = &v
	}
	if p.OpenRole != nil {
		v := *p.OpenRole
		out.OpenRole = &v
	}
	if p.Agent != nil {
		v := AgentDetails{Systems: append([]string(nil), p.Agent.Systems...)}
		if p.Agent.WorkDistribution != nil {
			v.WorkDistribution = make(map[string]float64, len(p.Agent.WorkDistribution))
			for k, share := range p.Agent.WorkDistribution {
				v.WorkDistribution[k] = share
			}
		}
		out.Agent = &v
	}
	return out
}
