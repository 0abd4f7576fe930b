// Package bipath implements BidirectionalPath: an ordered sequence of
// graph edges with a conjugate twin kept consistent under every mutation.
package bipath

import (
	"github.com/exascience/dbgresolve/graph"
	"github.com/exascience/dbgresolve/internal"
)

// ID is a stable, monotonically assigned path identifier.
type ID int64

// Listener receives mutation notifications from a Path. Implementations
// (e.g. a coverage map) must not mutate the path that is notifying them.
type Listener interface {
	OnEdgeAdded(e graph.EdgeID, p *Path)
	OnEdgeRemoved(e graph.EdgeID, p *Path)
}

// Path is a BidirectionalPath. Every Path is created together with its
// conjugate by container.Container.AddPair; the two are cross-linked for
// their entire lifetime and every mutation on one is mirrored atomically
// on the other, so the pair always represents reverse-complements of one
// another.
type Path struct {
	id        ID
	g         graph.Provider
	edges     []graph.EdgeID
	gaps      []int // gaps[i] is the gap before edges[i]; gaps[0] is always 0
	conjugate *Path

	IsOverlap         bool
	HasOverlapedBegin bool
	HasOverlapedEnd   bool

	listeners []Listener
}

// New creates an unattached path with no edges. Callers should use
// container.Container.AddPair to obtain a properly cross-linked
// conjugate pair rather than calling New directly.
func New(g graph.Provider) *Path {
	return &Path{g: g}
}

// ID returns the path's stable identifier.
func (p *Path) ID() ID { return p.id }

// Provider returns the graph provider the path was constructed over.
func (p *Path) Provider() graph.Provider { return p.g }

// SetID is called once by container.Container at pair construction.
func (p *Path) SetID(id ID) { p.id = id }

// SetConjugate cross-links p and q. Called once by container.Container.
func SetConjugate(p, q *Path) {
	p.conjugate = q
	q.conjugate = p
}

// Conjugate returns p's reverse-complement twin.
func (p *Path) Conjugate() *Path { return p.conjugate }

// MarkOverlapedBegin records that p's beginning has already donated
// material to an extracted overlap path. It also marks p's conjugate's
// end, since the beginning of p and the end of conj(p) are the same
// physical locus in the underlying contig: a later pass that happens to
// visit the conjugate orientation of this pair must see the same fact.
func (p *Path) MarkOverlapedBegin() {
	p.HasOverlapedBegin = true
	p.conjugate.HasOverlapedEnd = true
}

// MarkOverlapedEnd is MarkOverlapedBegin's mirror for p's end.
func (p *Path) MarkOverlapedEnd() {
	p.HasOverlapedEnd = true
	p.conjugate.HasOverlapedBegin = true
}

// Subscribe registers a listener for future mutations. It does not
// replay existing edges; coverage.Map.Subscribe does that separately by
// reading p.Edges() once up front.
func (p *Path) Subscribe(l Listener) {
	for _, existing := range p.listeners {
		if existing == l {
			return
		}
	}
	p.listeners = append(p.listeners, l)
}

func (p *Path) notifyAdded(e graph.EdgeID) {
	for _, l := range p.listeners {
		l.OnEdgeAdded(e, p)
	}
}

func (p *Path) notifyRemoved(e graph.EdgeID) {
	for _, l := range p.listeners {
		l.OnEdgeRemoved(e, p)
	}
}

// Size returns the number of edges.
func (p *Path) Size() int { return len(p.edges) }

// Empty reports whether the path has been cleared (logically deleted).
func (p *Path) Empty() bool { return len(p.edges) == 0 }

// At returns the edge at position i.
func (p *Path) At(i int) graph.EdgeID { return p.edges[i] }

// GapAt returns the gap before position i (i >= 1).
func (p *Path) GapAt(i int) int { return p.gaps[i] }

// Edges returns the path's edges. The slice must not be mutated by the
// caller.
func (p *Path) Edges() []graph.EdgeID { return p.edges }

// Head returns the last edge of the path.
func (p *Path) Head() graph.EdgeID { return p.edges[len(p.edges)-1] }

// LengthAt returns the total nucleotide length from position i to the
// end, including gaps.
func (p *Path) LengthAt(i int) int {
	total := 0
	for j := i; j < len(p.edges); j++ {
		total += p.g.Edge(p.edges[j]).Length()
		if j > i {
			total += p.gaps[j]
		}
	}
	return total
}

// EdgeSpan returns the nucleotide contribution of position i: that
// edge's length plus the gap before it (0 for i == 0).
func (p *Path) EdgeSpan(i int) int {
	span := p.g.Edge(p.edges[i]).Length()
	if i > 0 {
		span += p.gaps[i]
	}
	return span
}

// Length is LengthAt(0).
func (p *Path) Length() int {
	if len(p.edges) == 0 {
		return 0
	}
	return p.LengthAt(0)
}

// FindAll returns a lazy, deterministic ascending-order iterator over
// every position at which e occurs. Call the returned function
// repeatedly; it returns ok == false once exhausted.
func (p *Path) FindAll(e graph.EdgeID) func() (int, bool) {
	next := 0
	edges := p.edges
	return func() (int, bool) {
		for next < len(edges) {
			i := next
			next++
			if edges[i] == e {
				return i, true
			}
		}
		return 0, false
	}
}

// Equal reports whether p and other have the same size, the same edges
// at every position, and gaps differing by no more than gapTolerance at
// every position i >= 1. Gap tolerance is treated as exact; see
// DESIGN.md's Open Question decisions.
const gapTolerance = 0

func (p *Path) Equal(other *Path) bool {
	if len(p.edges) != len(other.edges) {
		return false
	}
	for i := range p.edges {
		if p.edges[i] != other.edges[i] {
			return false
		}
		if i >= 1 {
			diff := p.gaps[i] - other.gaps[i]
			if diff < -gapTolerance || diff > gapTolerance {
				return false
			}
		}
	}
	return true
}

// SameContig reports whether p and other represent the same underlying
// contig, either directly or because one is the conjugate of the other.
func SameContig(p, other *Path) bool {
	return p.Equal(other) || p.Equal(other.conjugate)
}

// OverlapEndSize returns the largest k such that the last k edges of p
// equal the first k edges of other; 0 if none.
func (p *Path) OverlapEndSize(other *Path) int {
	max := len(p.edges)
	if len(other.edges) < max {
		max = len(other.edges)
	}
	for k := max; k > 0; k-- {
		matches := true
		for i := 0; i < k; i++ {
			if p.edges[len(p.edges)-k+i] != other.edges[i] {
				matches = false
				break
			}
		}
		if matches {
			return k
		}
	}
	return 0
}

// PushBack appends e to the end of p with the given gap (the gap before
// e, ignored for the first edge of an empty path), mirroring the
// mutation on p's conjugate as a push to the front.
func (p *Path) PushBack(e graph.EdgeID, gap int) {
	p.pushBackRaw(e, gap)
	ce := p.g.Edge(e).Conjugate()
	p.conjugate.pushFrontRaw(ce, gap)
}

func (p *Path) pushBackRaw(e graph.EdgeID, gap int) {
	if len(p.edges) == 0 {
		gap = 0
	}
	p.edges = append(p.edges, e)
	p.gaps = append(p.gaps, gap)
	p.notifyAdded(e)
}

func (p *Path) pushFrontRaw(e graph.EdgeID, gap int) {
	edges := make([]graph.EdgeID, len(p.edges)+1)
	edges[0] = e
	copy(edges[1:], p.edges)
	gaps := make([]int, len(p.gaps)+1)
	if len(p.gaps) > 0 {
		gaps[1] = gap
		copy(gaps[2:], p.gaps[1:])
	}
	p.edges = edges
	p.gaps = gaps
	p.notifyAdded(e)
}

// PopBack removes the last n edges. Undefined (panics) if n > Size().
func (p *Path) PopBack(n int) {
	internal.Assert(n <= len(p.edges), "PopBack: n exceeds path size")
	if n == 0 {
		return
	}
	p.popBackRaw(n)
	p.conjugate.popFrontRaw(n)
}

func (p *Path) popBackRaw(n int) {
	start := len(p.edges) - n
	removed := append([]graph.EdgeID(nil), p.edges[start:]...)
	p.edges = p.edges[:start]
	p.gaps = p.gaps[:start]
	for _, e := range removed {
		p.notifyRemoved(e)
	}
}

func (p *Path) popFrontRaw(n int) {
	removed := append([]graph.EdgeID(nil), p.edges[:n]...)
	edges := make([]graph.EdgeID, len(p.edges)-n)
	copy(edges, p.edges[n:])
	gaps := make([]int, len(p.gaps)-n)
	copy(gaps, p.gaps[n:])
	if len(gaps) > 0 {
		gaps[0] = 0
	}
	p.edges = edges
	p.gaps = gaps
	for _, e := range removed {
		p.notifyRemoved(e)
	}
}

// Clear removes all edges, mirroring the mutation on p's conjugate.
func (p *Path) Clear() {
	p.clearRaw()
	p.conjugate.clearRaw()
}

func (p *Path) clearRaw() {
	removed := p.edges
	p.edges = nil
	p.gaps = nil
	for _, e := range removed {
		p.notifyRemoved(e)
	}
}
