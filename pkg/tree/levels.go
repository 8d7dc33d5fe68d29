package tree

import (
	"slices"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Levels groups node ids by depth: Levels[0] holds the roots, Levels[d]
// the nodes d edges below a root, each in visitation order.
type Levels [][]string

// Depth returns the number of levels.
func (l Levels) Depth() int { return len(l) }

// Width returns the size of the largest level.
func (l Levels) Width() int {
	w := 0
	for _, ids := range l {
		w = max(w, len(ids))
	}
	return w
}

// Of returns the level containing id, or -1.
func (l Levels) Of(id string) int {
	for d, ids := range l {
		if slices.Contains(ids, id) {
			return d
		}
	}
	return -1
}

func (l Levels) add(depth int, id string) Levels {
	for len(l) <= depth {
		l = append(l, nil)
	}
	l[depth] = append(l[depth], id)
	return l
}

// forest is the accepted parent structure after malformed edges have been
// dropped. Every node has at most one parent.
type forest struct {
	order    []string
	index    map[string]int
	parent   map[string]string
	children map[string][]string
	accepted []org.Edge // parent edges in input order, before cycle cuts
	issues   []error
}

func buildForest(ids []string, edges []org.Edge) *forest {
	f := &forest{
		order:    make([]string, 0, len(ids)),
		index:    make(map[string]int, len(ids)),
		parent:   make(map[string]string, len(edges)),
		children: make(map[string][]string, len(ids)),
	}

	for _, id := range ids {
		if _, dup := f.index[id]; dup {
			f.issues = append(f.issues, &DuplicateNodeError{ID: id})
			continue
		}
		f.index[id] = len(f.order)
		f.order = append(f.order, id)
	}

	for _, e := range edges {
		var missing []string
		if _, ok := f.index[e.Source]; !ok {
			missing = append(missing, e.Source)
		}
		if _, ok := f.index[e.Target]; !ok && e.Target != e.Source {
			missing = append(missing, e.Target)
		}
		if len(missing) > 0 {
			f.issues = append(f.issues, &DanglingEdgeError{Edge: e, Missing: missing})
			continue
		}
		if e.Source == e.Target {
			f.issues = append(f.issues, &CycleError{Nodes: []string{e.Source}})
			continue
		}
		if kept, ok := f.parent[e.Target]; ok {
			// A repeated identical edge is harmless; only a different
			// parent is worth reporting.
			if kept != e.Source {
				f.issues = append(f.issues, &DuplicateParentError{Target: e.Target, Kept: kept, Ignored: e.Source})
			}
			continue
		}
		f.parent[e.Target] = e.Source
		f.children[e.Source] = append(f.children[e.Source], e.Target)
		f.accepted = append(f.accepted, e)
	}
	return f
}

// edges returns the parent edges that survived, in input order.
func (f *forest) edges() []org.Edge {
	out := make([]org.Edge, 0, len(f.accepted))
	for _, e := range f.accepted {
		if p, ok := f.parent[e.Target]; ok && p == e.Source {
			out = append(out, e)
		}
	}
	return out
}

// walk is the result of traversing the forest.
type walk struct {
	levels    Levels
	depth     map[string]int
	component map[string]int // id -> index into roots
	roots     []string
}

func (f *forest) traverse(t Traversal) walk {
	w := walk{
		depth:     make(map[string]int, len(f.order)),
		component: make(map[string]int, len(f.order)),
	}
	visited := make(map[string]bool, len(f.order))

	visit := func(root string) {
		comp := len(w.roots)
		w.roots = append(w.roots, root)
		w.depth[root] = 0

		pending := []string{root}
		for len(pending) > 0 {
			var id string
			if t == DepthFirst {
				id = pending[len(pending)-1]
				pending = pending[:len(pending)-1]
			} else {
				id = pending[0]
				pending = pending[1:]
			}
			if visited[id] {
				continue
			}
			visited[id] = true
			w.component[id] = comp
			w.levels = w.levels.add(w.depth[id], id)

			kids := f.children[id]
			for _, kid := range kids {
				w.depth[kid] = w.depth[id] + 1
			}
			if t == DepthFirst {
				// Push in reverse so the first child is popped first.
				for i := len(kids) - 1; i >= 0; i-- {
					pending = append(pending, kids[i])
				}
			} else {
				pending = append(pending, kids...)
			}
		}
	}

	for _, id := range f.order {
		if _, hasParent := f.parent[id]; !hasParent {
			visit(id)
		}
	}

	// Whatever is left hangs off a loop of parent pointers that no root
	// reaches. Cut each loop at its earliest member and lay it out as a root.
	for _, id := range f.order {
		if visited[id] {
			continue
		}
		loop := f.findLoop(id)
		root := loop[0]
		f.issues = append(f.issues, &CycleError{Nodes: loop})
		f.cut(root)
		visit(root)
	}
	return w
}

// findLoop follows parent pointers from id until a node repeats and returns
// the loop in parent→child order, rotated to start at its earliest member
// in node order.
func (f *forest) findLoop(id string) []string {
	seen := make(map[string]int)
	var path []string
	cur := id
	for {
		if i, ok := seen[cur]; ok {
			path = path[i:]
			break
		}
		seen[cur] = len(path)
		path = append(path, cur)
		cur = f.parent[cur]
	}

	// path runs child→parent; flip it.
	slices.Reverse(path)
	first := 0
	for i, n := range path {
		if f.index[n] < f.index[path[first]] {
			first = i
		}
	}
	return append(path[first:], path[:first]...)
}

// cut detaches id from its parent.
func (f *forest) cut(id string) {
	p, ok := f.parent[id]
	if !ok {
		return
	}
	delete(f.parent, id)
	f.children[p] = slices.DeleteFunc(f.children[p], func(c string) bool { return c == id })
}
