package resolve

import (
	"testing"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/coverage"
	"github.com/exascience/dbgresolve/graph"
)

// newTestGraph builds a graph of conjugate edge pairs 1/-1 .. 5/-5, each
// of length 100 (well above any maxOverlap used in these tests).
func newTestGraph() *graph.InMemory {
	g := graph.NewInMemory(5)
	for _, id := range []graph.EdgeID{1, 2, 3, 4, 5} {
		g.AddEdge(id, 100, -id, false)
		g.AddEdge(-id, 100, id, false)
	}
	return g
}

func newSubscribedPath(g graph.Provider, c *container.Container, cov *coverage.Map, edges ...graph.EdgeID) *bipath.Path {
	p, q := bipath.New(g), bipath.New(g)
	c.AddPair(p, q)
	for _, e := range edges {
		p.PushBack(e, 0)
	}
	cov.Subscribe(p)
	cov.Subscribe(q)
	return p
}

func TestRemoveSimilarPathsCollapsesExactDuplicates(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	cov := coverage.New(g)

	p1 := newSubscribedPath(g, c, cov, 1, 2, 3)
	p2 := newSubscribedPath(g, c, cov, 1, 2, 3)

	RemoveSimilarPaths(g, cov, 10, 0, Policy{})

	if p1.Empty() {
		t.Fatal("p1 should survive the duplicate collapse")
	}
	if !p2.Empty() {
		t.Fatal("p2 should be cleared as a duplicate of p1")
	}
}

func TestRemoveSimilarPathsDeletesContainedSubpath(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	cov := coverage.New(g)

	p1 := newSubscribedPath(g, c, cov, 1, 2, 3)
	p2 := newSubscribedPath(g, c, cov, 2)

	RemoveSimilarPaths(g, cov, 10, 0, Policy{DelSubpaths: true})

	if p2.Size() != 0 {
		t.Fatalf("p2 (a whole subpath of p1) should be cleared, got %v", p2.Edges())
	}
	if got := p1.Edges(); len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("p1 should be untouched, got %v", got)
	}
}

func TestRemoveSimilarPathsTrimsSharedPrefix(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	cov := coverage.New(g)

	// p1 and p2 share a leading run [1,2]; p2 is the shorter path.
	p1 := newSubscribedPath(g, c, cov, 1, 2, 3)
	p2 := newSubscribedPath(g, c, cov, 1, 2)

	RemoveSimilarPaths(g, cov, 10, 0, Policy{DelBegins: true})

	if p1.HasOverlapedBegin || !p2.HasOverlapedBegin {
		t.Fatalf("expected only the shorter path (p2) to be marked overlapped at begin: p1=%v p2=%v", p1.HasOverlapedBegin, p2.HasOverlapedBegin)
	}
	if p2.Size() != 0 {
		t.Fatalf("p2's shared prefix should have been popped entirely (it is fully contained), got %v", p2.Edges())
	}
}

func TestRemoveOverlapsExtractsSharedTail(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	cov := coverage.New(g)

	p1 := newSubscribedPath(g, c, cov, 1, 2, 3)
	p2 := newSubscribedPath(g, c, cov, 2, 3, 4)

	RemoveOverlaps(c, cov, 10)

	if got := p1.Edges(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("p1 should have its shared tail [2,3] popped, got %v", got)
	}
	if got := p2.Edges(); len(got) != 1 || got[0] != 4 {
		t.Fatalf("p2 should have its shared head [2,3] popped, got %v", got)
	}
	if !p1.HasOverlapedEnd || !p2.HasOverlapedBegin {
		t.Fatalf("expected overlap flags set, p1.HasOverlapedEnd=%v p2.HasOverlapedBegin=%v", p1.HasOverlapedEnd, p2.HasOverlapedBegin)
	}

	// The extracted overlap [2,3] should now be its own covered path.
	found := false
	for _, p := range cov.GetCoveringPaths(2) {
		if p.IsOverlap && p.Size() == 2 {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an extracted overlap path of size 2 covering edge 2")
	}
}

func TestRunExecutesAllFourPasses(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	cov := coverage.New(g)

	newSubscribedPath(g, c, cov, 1, 2, 3)
	newSubscribedPath(g, c, cov, 1, 2, 3)

	if err := Run(c, g, cov, 10, 0, nil, ""); err != nil {
		t.Fatalf("Run returned an error: %v", err)
	}
}
