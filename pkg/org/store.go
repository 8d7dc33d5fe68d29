package org

import (
	"fmt"
	"sync"
)

// Action is a single change to a chart. Actions are applied by [Store]
// against a private copy, so a failing action leaves the store untouched.
type Action interface {
	apply(c *Chart) error
}

// AddNode adds Node. An empty ID is replaced by [NewID].
type AddNode struct {
	Node Node
	// Parent optionally connects the new node under an existing node.
	Parent string
}

func (a AddNode) apply(c *Chart) error {
	n := a.Node
	if n.ID == "" {
		n.ID = NewID()
	}
	if a.Parent != "" {
		if _, ok := c.Node(a.Parent); !ok {
			return fmt.Errorf("%w: parent %s", ErrUnknownNode, a.Parent)
		}
	}
	if err := c.AddNode(n); err != nil {
		return err
	}
	if a.Parent != "" {
		c.AddEdge(Edge{Source: a.Parent, Target: n.ID})
	}
	return nil
}

// RemoveNode removes the node ID and its edges.
type RemoveNode struct{ ID string }

func (a RemoveNode) apply(c *Chart) error { return c.RemoveNode(a.ID) }

// Connect adds the reporting line Source→Target. Both nodes must exist.
type Connect struct{ Source, Target string }

func (a Connect) apply(c *Chart) error {
	for _, id := range []string{a.Source, a.Target} {
		if _, ok := c.Node(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownNode, id)
		}
	}
	c.AddEdge(Edge{Source: a.Source, Target: a.Target})
	return nil
}

// Disconnect removes the reporting line Source→Target.
type Disconnect struct{ Source, Target string }

func (a Disconnect) apply(c *Chart) error {
	c.RemoveEdge(a.Source, a.Target)
	return nil
}

// UpdateProfile replaces the profile of node ID.
type UpdateProfile struct {
	ID      string
	Profile Profile
}

func (a UpdateProfile) apply(c *Chart) error {
	n, ok := c.Node(a.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownNode, a.ID)
	}
	if err := a.Profile.Validate(); err != nil {
		return fmt.Errorf("node %s: %w", a.ID, err)
	}
	n.Profile = a.Profile.clone()
	return nil
}

// ReplaceChart swaps in a whole new chart, e.g. when a different projection
// period is selected.
type ReplaceChart struct{ Chart *Chart }

func (a ReplaceChart) apply(c *Chart) error {
	if a.Chart == nil {
		return fmt.Errorf("replace chart: nil chart")
	}
	*c = *a.Chart.Clone()
	return nil
}

// Store is the explicit state container for one chart view.
//
// All reads return clones; all writes go through [Store.Dispatch]. Each
// successful dispatch bumps the version and notifies subscribers in
// subscription order, outside the store lock.
type Store struct {
	mu      sync.RWMutex
	chart   *Chart
	version uint64

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(*Chart, uint64)
	order  []int
}

// NewStore creates a store holding a copy of initial. A nil chart starts
// the store empty.
func NewStore(initial *Chart) *Store {
	if initial == nil {
		initial = NewChart()
	}
	return &Store{
		chart: initial.Clone(),
		subs:  make(map[int]func(*Chart, uint64)),
	}
}

// Snapshot returns a copy of the current chart and its version.
func (s *Store) Snapshot() (*Chart, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chart.Clone(), s.version
}

// Version returns the number of committed actions.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Dispatch applies the actions in order as one atomic commit. Either all
// actions apply or none do.
func (s *Store) Dispatch(actions ...Action) error {
	s.mu.Lock()
	next := s.chart.Clone()
	for _, a := range actions {
		if err := a.apply(next); err != nil {
			s.mu.Unlock()
			return err
		}
	}
	s.chart = next
	s.version++
	version := s.version
	s.mu.Unlock()

	s.notify(next.Clone(), version)
	return nil
}

// Subscribe registers fn to receive a snapshot after every commit. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func(*Chart, uint64)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.order = append(s.order, id)
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) notify(c *Chart, version uint64) {
	s.subMu.Lock()
	fns := make([]func(*Chart, uint64), 0, len(s.subs))
	live := s.order[:0]
	for _, id := range s.order {
		if fn, ok := s.subs[id]; ok {
			fns = append(fns, fn)
			live = append(live, id)
		}
	}
	s.order = live
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(c.Clone(), version)
	}
}
