package resolve

import (
	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/coverage"
)

// RemoveOverlaps extracts shared terminal repeats as their own paths. For
// each canonical path (and, independently, its conjugate) in c, it finds
// the best-matching partner on coverage of its trailing edge and, if they
// share a nonzero overlap, extracts or absorbs it via RemoveOverlap.
func RemoveOverlaps(c *container.Container, cov *coverage.Map, maxOverlap int) {
	for i := 0; i < c.Size(); i++ {
		removeOverlapAtTail(c, c.Get(i), cov)
		removeOverlapAtTail(c, c.GetConjugate(i), cov)
	}
}

func removeOverlapAtTail(c *container.Container, p1 *bipath.Path, cov *coverage.Map) {
	if p1.Empty() || p1.HasOverlapedEnd {
		return
	}
	tail := p1.Head()
	if cov.GetCoverage(tail) <= 1 {
		return
	}
	var best *bipath.Path
	bestSize := 0
	for _, p2 := range cov.GetCoveringPaths(tail) {
		if p2 == p1 || p2 == p1.Conjugate() || p2.HasOverlapedBegin {
			continue
		}
		k := p1.OverlapEndSize(p2)
		if k > bestSize {
			bestSize = k
			best = p2
		}
	}
	if best != nil && bestSize > 0 {
		RemoveOverlap(c, p1, best, bestSize, cov)
	}
}

// RemoveOverlap resolves a k-edge overlap between the end of p1 and the
// start of p2. If either side is already an extracted overlap path whose
// entire length is the shared segment, the other side simply absorbs it
// by popping its own edges and recording the overlap flag. Otherwise a
// new overlap path is extracted from the shared edges, subscribed to cov,
// and both p1 and p2 are trimmed and flagged.
func RemoveOverlap(c *container.Container, p1, p2 *bipath.Path, k int, cov *coverage.Map) {
	switch {
	case p1.IsOverlap && k == p1.Size():
		p2.Conjugate().PopBack(k)
		p2.MarkOverlapedBegin()
	case p2.IsOverlap && k == p2.Size():
		p1.PopBack(k)
		p1.MarkOverlapedEnd()
	default:
		extractOverlap(c, p1, p2, k, cov)
	}
}

func extractOverlap(c *container.Container, p1, p2 *bipath.Path, k int, cov *coverage.Map) {
	o := bipath.New(p1.Provider())
	oc := bipath.New(p1.Provider())
	c.AddPair(o, oc)

	start := p1.Size() - k
	for i := start; i < p1.Size(); i++ {
		gap := 0
		if i > start {
			gap = p1.GapAt(i)
		}
		o.PushBack(p1.At(i), gap)
	}
	o.IsOverlap = true
	oc.IsOverlap = true
	cov.Subscribe(o)
	cov.Subscribe(oc)

	p1.PopBack(k)
	p2.Conjugate().PopBack(k)
	p1.MarkOverlapedEnd()
	p2.MarkOverlapedBegin()
}
