package tree

import (
	"fmt"
	"strings"

	orgerrors "github.com/matzehuels/orgchart/pkg/errors"
	"github.com/matzehuels/orgchart/pkg/org"
)

// DanglingEdgeError reports an edge whose source or target is not in the
// node list. The edge is skipped.
type DanglingEdgeError struct {
	Edge    org.Edge
	Missing []string // unknown endpoint ids, source first
}

func (e *DanglingEdgeError) Error() string {
	return fmt.Sprintf("dangling edge %s: unknown node %s", e.Edge, strings.Join(e.Missing, ", "))
}

// Code returns [orgerrors.ErrCodeDanglingEdge].
func (e *DanglingEdgeError) Code() orgerrors.Code { return orgerrors.ErrCodeDanglingEdge }

// CycleError reports a loop of parent pointers. Nodes lists the loop in
// parent→child order starting at the member that was promoted to root; a
// single entry is a self loop.
type CycleError struct {
	Nodes []string
}

func (e *CycleError) Error() string {
	if len(e.Nodes) == 1 {
		return fmt.Sprintf("cycle detected: %s is its own parent", e.Nodes[0])
	}
	return fmt.Sprintf("cycle detected: %s → %s", strings.Join(e.Nodes, " → "), e.Nodes[0])
}

// Code returns [orgerrors.ErrCodeCycleDetected].
func (e *CycleError) Code() orgerrors.Code { return orgerrors.ErrCodeCycleDetected }

// DuplicateParentError reports a second parent edge for Target. The edge
// from Ignored is skipped; Kept stays the parent.
type DuplicateParentError struct {
	Target  string
	Kept    string
	Ignored string
}

func (e *DuplicateParentError) Error() string {
	return fmt.Sprintf("node %s already reports to %s: ignoring edge from %s", e.Target, e.Kept, e.Ignored)
}

// Code returns [orgerrors.ErrCodeDuplicateParent].
func (e *DuplicateParentError) Code() orgerrors.Code { return orgerrors.ErrCodeDuplicateParent }

// DuplicateNodeError reports a repeated node id. Only the first occurrence
// is laid out.
type DuplicateNodeError struct {
	ID string
}

func (e *DuplicateNodeError) Error() string {
	return fmt.Sprintf("duplicate node %s: keeping first occurrence", e.ID)
}

// Code returns [orgerrors.ErrCodeDuplicateNode].
func (e *DuplicateNodeError) Code() orgerrors.Code { return orgerrors.ErrCodeDuplicateNode }
