// Package coverage implements CoverageMap: a live inverted index from
// graph edges to the set of paths currently covering them, maintained
// incrementally by subscribing to bipath.Path mutation events.
package coverage

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/graph"
)

// Map is a CoverageMap. At quiescence between public operations, for
// every edge e, Map satisfies the coverage correctness invariant: the set
// of covering paths returned for e equals exactly the set of paths for
// which e appears in the path's edge sequence, with multiplicity
// matching the number of occurrences.
type Map struct {
	g     graph.Provider
	cover map[graph.EdgeID]map[*bipath.Path]int
	seen  map[*bipath.Path]bool
}

// New creates an empty CoverageMap over g.
func New(g graph.Provider) *Map {
	return &Map{
		g:     g,
		cover: make(map[graph.EdgeID]map[*bipath.Path]int),
		seen:  make(map[*bipath.Path]bool),
	}
}

// Subscribe registers p's current edge occurrences and listens for
// future mutations. Idempotent per path.
func (m *Map) Subscribe(p *bipath.Path) {
	if m.seen[p] {
		return
	}
	m.seen[p] = true
	for _, e := range p.Edges() {
		m.add(e, p)
	}
	p.Subscribe(m)
}

func (m *Map) add(e graph.EdgeID, p *bipath.Path) {
	set := m.cover[e]
	if set == nil {
		set = make(map[*bipath.Path]int)
		m.cover[e] = set
	}
	set[p]++
}

func (m *Map) remove(e graph.EdgeID, p *bipath.Path) {
	set := m.cover[e]
	if set == nil {
		return
	}
	if set[p] <= 1 {
		delete(set, p)
	} else {
		set[p]--
	}
	if len(set) == 0 {
		delete(m.cover, e)
	}
}

// OnEdgeAdded implements bipath.Listener.
func (m *Map) OnEdgeAdded(e graph.EdgeID, p *bipath.Path) { m.add(e, p) }

// OnEdgeRemoved implements bipath.Listener.
func (m *Map) OnEdgeRemoved(e graph.EdgeID, p *bipath.Path) { m.remove(e, p) }

// GetCoveringPaths returns the set of paths currently containing e, in
// deterministic ascending path-id order.
func (m *Map) GetCoveringPaths(e graph.EdgeID) []*bipath.Path {
	set := m.cover[e]
	if len(set) == 0 {
		return nil
	}
	result := make([]*bipath.Path, 0, len(set))
	for p := range set {
		result = append(result, p)
	}
	slices.SortFunc(result, func(a, b *bipath.Path) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	return result
}

// GetCoverage returns the number of (path, occurrence) pairs covering e.
func (m *Map) GetCoverage(e graph.EdgeID) int {
	total := 0
	for _, n := range m.cover[e] {
		total += n
	}
	return total
}

// IsCovered reports whether coverage(e) >= 1.
func (m *Map) IsCovered(e graph.EdgeID) bool {
	return len(m.cover[e]) > 0
}

// SortedEdges returns every edge id of g, together with its
// conjugate, sorted by (length asc, id asc) — the deterministic visiting
// order RemoveSimilarPaths requires.
func SortedEdges(g graph.Provider) []graph.EdgeID {
	seen := make(map[graph.EdgeID]bool)
	var ids []graph.EdgeID
	for _, id := range g.Edges() {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
		c := g.Edge(id).Conjugate()
		if !seen[c] {
			seen[c] = true
			ids = append(ids, c)
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		li, lj := g.Edge(ids[i]).Length(), g.Edge(ids[j]).Length()
		if li != lj {
			return li < lj
		}
		return ids[i] < ids[j]
	})
	return ids
}
