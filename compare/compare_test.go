package compare

import (
	"testing"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/graph"
)

func newTestGraph() *graph.InMemory {
	g := graph.NewInMemory(5)
	for _, id := range []graph.EdgeID{1, 2, 3, 4, 5, 6, 7} {
		g.AddEdge(id, 10, -id, false)
		g.AddEdge(-id, 10, id, false)
	}
	return g
}

func newPath(g graph.Provider, c *container.Container, edges ...graph.EdgeID) *bipath.Path {
	p, q := bipath.New(g), bipath.New(g)
	c.AddPair(p, q)
	for _, e := range edges {
		p.PushBack(e, 0)
	}
	return p
}

func TestComparePathsExtendsThroughExactMatch(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	p1 := newPath(g, c, 1, 2, 3, 4)
	p2 := newPath(g, c, 2, 3, 4, 5)

	last1, last2 := ComparePaths(1, 0, p1, p2, 50)
	if last1 != 3 || last2 != 2 {
		t.Fatalf("ComparePaths = (%d,%d), want (3,2)", last1, last2)
	}
}

func TestComparePathsStopsOnBudgetExceeded(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	p1 := newPath(g, c, 1, 2, 3)
	p2 := newPath(g, c, 1, 7, 7, 7, 7, 7, 3)

	// p1[1]=2 never occurs in p2; p1[2]=3 occurs at p2[6], but the
	// skipped material in p2 between positions 0 and 6 is 5*10=50
	// nucleotides, and p1's own skip of edge 2 (length 10) already
	// exceeds a small budget.
	last1, last2 := ComparePaths(0, 0, p1, p2, 5)
	if last1 != 0 || last2 != 0 {
		t.Fatalf("ComparePaths = (%d,%d), want (0,0) — budget too small to extend", last1, last2)
	}
}

func TestCompareAndCutFindsWidestSpan(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	// p1 and p2 share the subpath [2,3,4].
	p1 := newPath(g, c, 1, 2, 3, 4, 5)
	p2 := newPath(g, c, 2, 3, 4)

	span1, span2, ok := CompareAndCut(3, p1, p2, 50)
	if !ok {
		t.Fatal("expected a match")
	}
	if span1.First != 1 || span1.Last != 3 {
		t.Fatalf("span1 = %+v, want First=1 Last=3", span1)
	}
	if span2.First != 0 || span2.Last != 2 {
		t.Fatalf("span2 = %+v, want First=0 Last=2", span2)
	}
	if span2.Size() != 3 {
		t.Fatalf("span2.Size() = %d, want 3", span2.Size())
	}
}

func TestCompareAndCutNoCooccurrence(t *testing.T) {
	g := newTestGraph()
	c := container.New()
	p1 := newPath(g, c, 1, 2, 3)
	p2 := newPath(g, c, 4, 5, 6)

	_, _, ok := CompareAndCut(1, p1, p2, 50)
	if ok {
		t.Fatal("expected no match: edge 1 does not occur in p2")
	}
}
