package weight

import (
	"testing"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/graph"
)

func newTestGraph() *graph.InMemory {
	g := graph.NewInMemory(5)
	for _, id := range []graph.EdgeID{1, 2, 3} {
		g.AddEdge(id, 10, -id, false)
		g.AddEdge(-id, 10, id, false)
	}
	return g
}

func newTestPath(g graph.Provider, edges ...graph.EdgeID) *bipath.Path {
	c := container.New()
	p, q := bipath.New(g), bipath.New(g)
	c.AddPair(p, q)
	for _, e := range edges {
		p.PushBack(e, 0)
	}
	return p
}

// fakeLibrary reports a fixed count per (from, to) pair, ignoring
// distance, so tests don't depend on the exact Normal density value.
type fakeLibrary struct {
	counts    map[[2]graph.EdgeID]float64
	mean      float64
	stdDev    float64
	threshold float64
}

func (l fakeLibrary) Count(from, to graph.EdgeID, distance int) float64 {
	return l.counts[[2]graph.EdgeID{from, to}]
}
func (l fakeLibrary) Mean() float64      { return l.mean }
func (l fakeLibrary) StdDev() float64    { return l.stdDev }
func (l fakeLibrary) Threshold() float64 { return l.threshold }

func TestExcludedExcludeAndTest(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	ex := NewExcluded()
	if ex.IsExcluded(p, 1) {
		t.Fatal("position 1 should not be excluded before Exclude is called")
	}
	ex.Exclude(p, 1)
	if !ex.IsExcluded(p, 1) {
		t.Fatal("position 1 should be excluded after Exclude")
	}
	if ex.IsExcluded(p, 0) || ex.IsExcluded(p, 2) {
		t.Fatal("Exclude must not affect other positions")
	}
}

func TestExcludedIsPerPath(t *testing.T) {
	g := newTestGraph()
	// Both paths live in one container, so they carry distinct ids.
	c := container.New()
	p1, q1 := bipath.New(g), bipath.New(g)
	c.AddPair(p1, q1)
	p2, q2 := bipath.New(g), bipath.New(g)
	c.AddPair(p2, q2)
	for _, e := range []graph.EdgeID{1, 2, 3} {
		p1.PushBack(e, 0)
		p2.PushBack(e, 0)
	}

	ex := NewExcluded()
	ex.Exclude(p1, 0)
	if ex.IsExcluded(p2, 0) {
		t.Fatal("Exclude on p1 must not leak to a different path with the same edges")
	}
}

func TestReadCountWeightSumsRawCounts(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{1, 4}: 2.0,
		{2, 4}: 3.0,
		{3, 4}: 0.0,
	}, mean: 20, stdDev: 5}

	rc := ReadCount{Libraries: []Library{lib}, Normalize: false}
	got := rc.Weight(p, 4, 0)
	want := 5.0
	if got != want {
		t.Fatalf("ReadCount.Weight = %v, want %v", got, want)
	}
}

func TestReadCountWeightRespectsExcluded(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{1, 4}: 2.0,
		{2, 4}: 3.0,
		{3, 4}: 4.0,
	}, mean: 20, stdDev: 5}

	ex := NewExcluded()
	ex.Exclude(p, 1) // drop the middle position's contribution (3.0)

	rc := ReadCount{Libraries: []Library{lib}, Excluded: ex, Normalize: false}
	got := rc.Weight(p, 4, 0)
	want := 6.0 // 2.0 + 4.0, position 1 skipped
	if got != want {
		t.Fatalf("ReadCount.Weight = %v, want %v", got, want)
	}
}

func TestReadCountWeightEmptyLibraries(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	rc := ReadCount{}
	if got := rc.Weight(p, 4, 0); got != 0 {
		t.Fatalf("ReadCount.Weight with no libraries = %v, want 0", got)
	}
}

// TestPathCoverFullySupportedIsOne uses threshold 0, so any non-negative
// count clears it at every position: the supported fraction is always
// idealTotal/idealTotal == 1, regardless of the exact Normal density
// value computed for each distance.
func TestPathCoverFullySupportedIsOne(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{1, 4}: 1.0,
		{2, 4}: 1.0,
		{3, 4}: 1.0,
	}, mean: 20, stdDev: 5, threshold: 0}

	pc := PathCover{Libraries: []Library{lib}}
	got := pc.Weight(p, 4, 0)
	if got != 1.0 {
		t.Fatalf("PathCover.Weight = %v, want 1.0", got)
	}
}

// TestPathCoverUnsupportedIsZero uses an unreachably high threshold, so
// no position can ever clear it: supported stays 0 at every position.
func TestPathCoverUnsupportedIsZero(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{1, 4}: 1.0,
		{2, 4}: 1.0,
		{3, 4}: 1.0,
	}, mean: 20, stdDev: 5, threshold: 1e9}

	pc := PathCover{Libraries: []Library{lib}}
	got := pc.Weight(p, 4, 0)
	if got != 0.0 {
		t.Fatalf("PathCover.Weight = %v, want 0.0", got)
	}
}

func TestPathCoverSingleThresholdFallback(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	// Threshold() <= 0 means "no per-library threshold data"; SingleThreshold
	// of 0 makes every position supported, same as the fully-supported case.
	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{1, 4}: 1.0,
		{2, 4}: 1.0,
		{3, 4}: 1.0,
	}, mean: 20, stdDev: 5, threshold: 0}

	pc := PathCover{Libraries: []Library{lib}, SingleThreshold: 0}
	got := pc.Weight(p, 4, 0)
	if got != 1.0 {
		t.Fatalf("PathCover.Weight with SingleThreshold fallback = %v, want 1.0", got)
	}
}

func TestPathCoverNoLibrariesIsZero(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	pc := PathCover{}
	if got := pc.Weight(p, 4, 0); got != 0 {
		t.Fatalf("PathCover.Weight with no libraries = %v, want 0", got)
	}
}

func TestIsExtensionPossible(t *testing.T) {
	g := newTestGraph()
	p := newTestPath(g, 1, 2, 3)

	lib := fakeLibrary{counts: map[[2]graph.EdgeID]float64{
		{3, 4}: 5.0,
	}, mean: 20, stdDev: 5}
	rc := ReadCount{Libraries: []Library{lib}, Normalize: false}

	if !IsExtensionPossible(rc, p, 4, 0, 5.0) {
		t.Fatal("weight 5.0 should meet threshold 5.0")
	}
	if IsExtensionPossible(rc, p, 4, 0, 5.01) {
		t.Fatal("weight 5.0 should not meet threshold 5.01")
	}
}
