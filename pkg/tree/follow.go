package tree

import (
	"sync"

	"github.com/matzehuels/orgchart/pkg/org"
)

// Follow keeps a layout in step with a store. fn receives the layout of the
// current snapshot immediately, then a fresh layout after every commit,
// together with the store version it was computed from.
//
// Versions delivered to fn never go backwards: a commit whose notification
// arrives after a newer one has been laid out is dropped. fn may be called
// from the goroutine that dispatched the commit.
func Follow(s *org.Store, opts Options, fn func(Result, uint64)) (cancel func()) {
	var (
		mu        sync.Mutex
		delivered uint64
		started   bool
	)
	deliver := func(c *org.Chart, version uint64) {
		res := LayoutChart(c, opts)
		mu.Lock()
		defer mu.Unlock()
		if started && version <= delivered {
			return
		}
		started = true
		delivered = version
		fn(res, version)
	}

	cancel = s.Subscribe(deliver)
	c, version := s.Snapshot()
	deliver(c, version)
	return cancel
}
