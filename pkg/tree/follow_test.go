package tree

import (
	"testing"

	"github.com/matzehuels/orgchart/pkg/org"
)

func TestFollow(t *testing.T) {
	s := org.NewStore(nil)
	if err := s.Dispatch(org.AddNode{Node: org.Node{ID: "ceo"}}); err != nil {
		t.Fatal(err)
	}

	var versions []uint64
	var last Result
	cancel := Follow(s, DefaultOptions(), func(r Result, v uint64) {
		versions = append(versions, v)
		last = r
	})

	if len(versions) != 1 || versions[0] != 1 {
		t.Fatalf("initial delivery = %v, want [1]", versions)
	}
	if n, _ := last.Node("ceo"); n.Position != (org.Position{X: DefaultCenterX, Y: DefaultBaseY}) {
		t.Errorf("ceo = %+v", n.Position)
	}

	if err := s.Dispatch(org.AddNode{Node: org.Node{ID: "cto"}, Parent: "ceo"}); err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 || versions[1] != 2 {
		t.Fatalf("versions = %v, want [1 2]", versions)
	}
	if got := last.Level("cto"); got != 1 {
		t.Errorf("Level(cto) = %d, want 1", got)
	}

	cancel()
	if err := s.Dispatch(org.RemoveNode{ID: "cto"}); err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 {
		t.Errorf("delivered after cancel: %v", versions)
	}
}

func TestFollowFailedDispatchDoesNotRelayout(t *testing.T) {
	s := org.NewStore(nil)
	calls := 0
	cancel := Follow(s, DefaultOptions(), func(Result, uint64) { calls++ })
	defer cancel()

	if err := s.Dispatch(org.Connect{Source: "a", Target: "b"}); err == nil {
		t.Fatal("Connect on unknown nodes should fail")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
