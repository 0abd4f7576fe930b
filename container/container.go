// Package container implements PathContainer: an ordered collection of
// (path, conjugate) pairs that owns both members of every pair for their
// full lifetime.
package container

import (
	"github.com/exascience/dbgresolve/bipath"
)

type pair struct {
	p, q *bipath.Path
}

// Container owns pairs of mutually-conjugate paths. No path outlives its
// container.
type Container struct {
	pairs  []pair
	nextID bipath.ID
}

// New creates an empty container.
func New() *Container {
	return &Container{}
}

// AddPair inserts p and q as a mutually-conjugate pair, cross-links them,
// and assigns both fresh, distinct ids.
func (c *Container) AddPair(p, q *bipath.Path) {
	c.nextID++
	p.SetID(c.nextID)
	c.nextID++
	q.SetID(c.nextID)
	bipath.SetConjugate(p, q)
	c.pairs = append(c.pairs, pair{p, q})
}

// Size returns the number of pairs.
func (c *Container) Size() int { return len(c.pairs) }

// Get returns the canonical path of pair i.
func (c *Container) Get(i int) *bipath.Path { return c.pairs[i].p }

// GetConjugate returns the twin of pair i's canonical path.
func (c *Container) GetConjugate(i int) *bipath.Path { return c.pairs[i].q }

// All calls f for every canonical path in the container, in pair order.
func (c *Container) All(f func(p *bipath.Path)) {
	for i := range c.pairs {
		f(c.pairs[i].p)
	}
}
