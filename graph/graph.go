// Package graph specifies the read-only edge/topology provider that the
// path resolution core consumes. The assembly graph itself is built and
// owned elsewhere; this package only fixes the interface and a small
// deterministic in-memory implementation used by tests and the cmd
// front-end.
package graph

import "sort"

// EdgeID identifies an edge. Ids are totally ordered; callers may sort on
// them to get a deterministic iteration order.
type EdgeID int64

// Edge is an opaque graph edge: a nucleotide-length-bearing unit with a
// conjugate (reverse-complement) twin.
type Edge interface {
	ID() EdgeID
	Length() int
	Conjugate() EdgeID
	InCycle() bool
}

// Provider is the opaque, read-only edge/topology source the resolver
// core operates over. Implementations must return stable answers across
// all calls within a single run.
type Provider interface {
	// K is the overlap length (k-mer size) the graph was built with.
	K() int
	// Edge returns the edge with the given id. Undefined if id is not a
	// valid edge id for this graph.
	Edge(id EdgeID) Edge
	// Edges returns every edge id, in ascending order.
	Edges() []EdgeID
	// OutgoingEdgesFromEnd returns the edges leaving the end vertex of
	// the given edge, in ascending id order.
	OutgoingEdgesFromEnd(id EdgeID) []EdgeID
}

type simpleEdge struct {
	id        EdgeID
	length    int
	conjugate EdgeID
	inCycle   bool
}

func (e simpleEdge) ID() EdgeID        { return e.id }
func (e simpleEdge) Length() int       { return e.length }
func (e simpleEdge) Conjugate() EdgeID { return e.conjugate }
func (e simpleEdge) InCycle() bool     { return e.inCycle }

// InMemory is a deterministic, in-memory Provider, useful for tests and
// for the cmd front-end's plain-text graph format.
type InMemory struct {
	k         int
	edges     map[EdgeID]simpleEdge
	outgoing  map[EdgeID][]EdgeID
	sortedIDs []EdgeID
}

// NewInMemory creates an empty in-memory graph with the given k-mer size.
func NewInMemory(k int) *InMemory {
	return &InMemory{
		k:        k,
		edges:    make(map[EdgeID]simpleEdge),
		outgoing: make(map[EdgeID][]EdgeID),
	}
}

// AddEdge registers one edge together with the id of its conjugate.
// AddEdge must be called for both e and conj before the graph is used.
// It does not check that conjugate differs from id.
func (g *InMemory) AddEdge(id EdgeID, length int, conjugate EdgeID, inCycle bool) {
	g.edges[id] = simpleEdge{id: id, length: length, conjugate: conjugate, inCycle: inCycle}
	g.sortedIDs = nil
}

// Connect records that edge `to` leaves the end vertex of edge `from`.
func (g *InMemory) Connect(from, to EdgeID) {
	g.outgoing[from] = append(g.outgoing[from], to)
	sort.Slice(g.outgoing[from], func(i, j int) bool { return g.outgoing[from][i] < g.outgoing[from][j] })
}

func (g *InMemory) K() int { return g.k }

func (g *InMemory) Edge(id EdgeID) Edge { return g.edges[id] }

func (g *InMemory) Edges() []EdgeID {
	if g.sortedIDs == nil {
		ids := make([]EdgeID, 0, len(g.edges))
		for id := range g.edges {
			ids = append(ids, id)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		g.sortedIDs = ids
	}
	return g.sortedIDs
}

func (g *InMemory) OutgoingEdgesFromEnd(id EdgeID) []EdgeID {
	return g.outgoing[id]
}
