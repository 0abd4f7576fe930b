package resolve

import (
	"log"
	"sort"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/compare"
	"github.com/exascience/dbgresolve/coverage"
	"github.com/exascience/dbgresolve/graph"
	"github.com/exascience/dbgresolve/intervals"
)

// RemoveSimilarPaths collects every edge and its conjugate, sorted by
// (length asc, id asc), and for each one repeatedly pops ordered pairs of
// its covering paths (sorted by path id ascending) and resolves them:
// equal paths collapse, and anything else eligible gets compared and cut
// per pol. Short edges are visited first, so small merges happen before
// the comparator has to bridge larger gaps. maxRepeatLength is purely
// diagnostic: whenever a comparison matches a span longer than
// maxRepeatLength in nucleotides but the policy table takes no action on
// it, a warning is logged; pass 0 to disable the check.
func RemoveSimilarPaths(g graph.Provider, cov *coverage.Map, maxOverlap, maxRepeatLength int, pol Policy) {
	spans := make(map[graph.EdgeID][]intervals.Interval)
	for _, e := range coverage.SortedEdges(g) {
		resolveEdge(g, cov, e, maxOverlap, maxRepeatLength, pol, spans)
	}
	if maxRepeatLength > 0 {
		reportExcessiveRepeats(spans, maxRepeatLength)
	}
}

// resolveEdge walks e's covering paths as a fixed snapshot, comparing
// each unordered pair (path1 at vect_i, path2 at vect_i1 = vect_i+1)
// exactly once in ascending path-id order, the same single forward scan
// as the original pe_resolver.hpp's RemoveSimilarPaths: the snapshot
// itself is never re-taken mid-walk, only the live membership set is
// refreshed after a mutation, and a path dropped from it is skipped in
// place (`continue`) rather than restarting the scan. A no-op compare
// (CompareAndCut finding no cuttable span, or applyCutPolicy finding no
// eligible policy row) mutates nothing, so the scan simply advances to
// the next pair — resetting on every compare, mutating or not, is what
// makes a purely-interior shared span (matched in the middle of both
// paths, touching neither end) loop forever instead of terminating.
func resolveEdge(g graph.Provider, cov *coverage.Map, e graph.EdgeID, maxOverlap, maxRepeatLength int, pol Policy, spans map[graph.EdgeID][]intervals.Interval) {
	snapshot := cov.GetCoveringPaths(e)
	member := membershipSet(cov, e)

	for i := 0; i < len(snapshot); i++ {
		p1 := snapshot[i]
		if !member[p1] {
			continue
		}
		for j := i + 1; j < len(snapshot); j++ {
			p2 := snapshot[j]
			if !member[p2] {
				continue
			}

			if bipath.SameContig(p1, p2) {
				if p2.IsOverlap {
					p1.IsOverlap = true
				}
				p2.Clear()
				member = membershipSet(cov, e)
				continue
			}
			if g.Edge(e).Length() <= maxOverlap || p1.IsOverlap || p2.IsOverlap || pol.DelOnlyEqual {
				continue
			}
			span1, span2, ok := compare.CompareAndCut(e, p1, p2, maxOverlap)
			if !ok {
				continue
			}
			applied := applyCutPolicy(p1, p2, span1, span2, pol)
			if !applied {
				if maxRepeatLength > 0 {
					recordExcessive(e, p1, span1, p2, span2, spans)
				}
				continue
			}
			member = membershipSet(cov, e)
		}
	}
}

// membershipSet snapshots which paths currently cover e, for resolveEdge
// to test pairs from its fixed index scan against without re-fetching
// (and potentially reordering) the covering-path list itself.
func membershipSet(cov *coverage.Map, e graph.EdgeID) map[*bipath.Path]bool {
	paths := cov.GetCoveringPaths(e)
	set := make(map[*bipath.Path]bool, len(paths))
	for _, p := range paths {
		set[p] = true
	}
	return set
}

// recordExcessive appends the matched span's nucleotide range on e to
// spans, to be merged and reported once per edge by
// reportExcessiveRepeats rather than logged per pair comparison — a
// single long unresolved repeat otherwise produces one warning per
// overlapping pair that touches it.
func recordExcessive(e graph.EdgeID, p1 *bipath.Path, span1 compare.Span, p2 *bipath.Path, span2 compare.Span, spans map[graph.EdgeID][]intervals.Interval) {
	start := p1.LengthAt(span1.First)
	end := p1.LengthAt(span1.Last + 1)
	if s2 := p2.LengthAt(span2.First); s2 < start {
		start = s2
	}
	if e2 := p2.LengthAt(span2.Last + 1); e2 > end {
		end = e2
	}
	spans[e] = append(spans[e], intervals.Interval{Start: int32(start), End: int32(end)})
}

// reportExcessiveRepeats merges the accumulated per-edge spans and logs
// one warning per edge whose merged span exceeds maxRepeatLength.
func reportExcessiveRepeats(spans map[graph.EdgeID][]intervals.Interval, maxRepeatLength int) {
	for _, e := range sortedEdgeKeys(spans) {
		ivs := spans[e]
		intervals.SortByStart(ivs)
		for _, iv := range intervals.Flatten(ivs) {
			if length := int(iv.End - iv.Start); length > maxRepeatLength {
				log.Println("edge", e, "has an unresolved repeat of length", length, "exceeding max-repeat-length", maxRepeatLength)
			}
		}
	}
}

func sortedEdgeKeys(spans map[graph.EdgeID][]intervals.Interval) []graph.EdgeID {
	keys := make([]graph.EdgeID, 0, len(spans))
	for e := range spans {
		keys = append(keys, e)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func applyCutPolicy(p1, p2 *bipath.Path, span1, span2 compare.Span, pol Policy) (applied bool) {
	size1, size2 := p1.Size(), p2.Size()
	whole1 := span1.First == 0 && span1.Last == size1-1
	whole2 := span2.First == 0 && span2.Last == size2-1
	touchesStart1 := span1.First == 0
	touchesEnd1 := span1.Last == size1-1
	touchesStart2 := span2.First == 0
	touchesEnd2 := span2.Last == size2-1

	switch {
	case whole1 && pol.DelSubpaths:
		if !p1.HasOverlapedBegin && !p1.HasOverlapedEnd {
			p1.Clear()
			return true
		}
	case whole2 && pol.DelSubpaths:
		if !p2.HasOverlapedBegin && !p2.HasOverlapedEnd {
			p2.Clear()
			return true
		}
	case touchesStart1 && touchesStart2 && pol.DelBegins:
		return popShorterFront(p1, p2, span1.Size(), span2.Size())
	case touchesEnd1 && touchesEnd2 && pol.DelBegins:
		return popShorterBack(p1, p2, span1.Size(), span2.Size())
	case touchesStart2 && pol.DelAll:
		if !p2.HasOverlapedBegin {
			p2.Conjugate().PopBack(span2.Size())
			p2.MarkOverlapedBegin()
			return true
		}
	case touchesEnd2 && pol.DelAll:
		if !p2.HasOverlapedEnd {
			p2.PopBack(span2.Size())
			p2.MarkOverlapedEnd()
			return true
		}
	case touchesStart1 && pol.DelAll:
		if !p1.HasOverlapedBegin {
			p1.Conjugate().PopBack(span1.Size())
			p1.MarkOverlapedBegin()
			return true
		}
	case touchesEnd1 && pol.DelAll:
		if !p1.HasOverlapedEnd {
			p1.PopBack(span1.Size())
			p1.MarkOverlapedEnd()
			return true
		}
	}
	return false
}

// popShorterFront removes the matched span from the front of whichever of
// p1, p2 is shorter by total nucleotide length, expressed as popping the
// back of that path's conjugate.
func popShorterFront(p1, p2 *bipath.Path, k1, k2 int) bool {
	shorter, k := p1, k1
	if p2.Length() < p1.Length() {
		shorter, k = p2, k2
	}
	if shorter.HasOverlapedBegin {
		return false
	}
	shorter.Conjugate().PopBack(k)
	shorter.MarkOverlapedBegin()
	return true
}

// popShorterBack removes the matched span from the back of whichever of
// p1, p2 is shorter by total nucleotide length.
func popShorterBack(p1, p2 *bipath.Path, k1, k2 int) bool {
	shorter, k := p1, k1
	if p2.Length() < p1.Length() {
		shorter, k = p2, k2
	}
	if shorter.HasOverlapedEnd {
		return false
	}
	shorter.PopBack(k)
	shorter.MarkOverlapedEnd()
	return true
}
