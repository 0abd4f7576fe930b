package container

import (
	"testing"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/graph"
)

func newTestGraph() *graph.InMemory {
	g := graph.NewInMemory(5)
	g.AddEdge(1, 10, -1, false)
	g.AddEdge(-1, 10, 1, false)
	return g
}

func TestAddPairAssignsDistinctIDs(t *testing.T) {
	g := newTestGraph()
	c := New()

	p1, q1 := bipath.New(g), bipath.New(g)
	c.AddPair(p1, q1)
	p2, q2 := bipath.New(g), bipath.New(g)
	c.AddPair(p2, q2)

	ids := map[bipath.ID]bool{p1.ID(): true, q1.ID(): true, p2.ID(): true, q2.ID(): true}
	if len(ids) != 4 {
		t.Fatalf("expected 4 distinct ids, got %v", ids)
	}
	if p1.Conjugate() != q1 || q1.Conjugate() != p1 {
		t.Fatal("AddPair did not cross-link p1/q1")
	}
}

func TestGetAndGetConjugate(t *testing.T) {
	g := newTestGraph()
	c := New()
	p, q := bipath.New(g), bipath.New(g)
	c.AddPair(p, q)

	if c.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", c.Size())
	}
	if c.Get(0) != p {
		t.Fatal("Get(0) != p")
	}
	if c.GetConjugate(0) != q {
		t.Fatal("GetConjugate(0) != q")
	}
}

func TestAllVisitsEveryCanonicalPath(t *testing.T) {
	g := newTestGraph()
	c := New()
	var pairs [][2]*bipath.Path
	for i := 0; i < 3; i++ {
		p, q := bipath.New(g), bipath.New(g)
		c.AddPair(p, q)
		pairs = append(pairs, [2]*bipath.Path{p, q})
	}

	var visited []*bipath.Path
	c.All(func(p *bipath.Path) { visited = append(visited, p) })

	if len(visited) != 3 {
		t.Fatalf("visited %d paths, want 3", len(visited))
	}
	for i, p := range visited {
		if p != pairs[i][0] {
			t.Fatalf("visited[%d] = %p, want canonical path %p", i, p, pairs[i][0])
		}
	}
}
