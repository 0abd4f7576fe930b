// Package compare implements the tolerant path matcher: ComparePaths
// extends a match between two paths as far as possible within a
// nucleotide-distance tolerance, and CompareAndCut combines a forward and
// a backward match to find the full matched span around a shared edge.
// The algorithm follows the same "walk forward, budget mismatches, bail
// past a threshold" shape as a tolerant sequence aligner.
package compare

import (
	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/graph"
)

// ComparePaths extends a match that begins with p1[start1] == p2[start2]
// as far as possible. It walks cur forward from start1+1 through p1; at
// each step it looks for an occurrence of p1[cur] in p2 at a position
// greater than the last accepted p2 position, within maxOverlap
// nucleotides measured from that last accepted position. If found, the
// match is accepted and the P1-skip counter resets to 0; if not, the
// length of p1[cur] (plus its gap) is added to the skip counter, and the
// walk terminates once that counter exceeds maxOverlap. Ties are broken
// by the smallest qualifying p2 position.
func ComparePaths(start1, start2 int, p1, p2 *bipath.Path, maxOverlap int) (last1, last2 int) {
	last1, last2 = start1, start2
	skip := 0
	for cur := start1 + 1; cur < p1.Size(); cur++ {
		if pos, ok := findWithinBudget(p2, p1.At(cur), last2, maxOverlap); ok {
			last1 = cur
			last2 = pos
			skip = 0
			continue
		}
		skip += p1.EdgeSpan(cur)
		if skip > maxOverlap {
			return
		}
	}
	return
}

// findWithinBudget returns the smallest position of e in p2 greater than
// after, provided the nucleotide distance from after to that position is
// within budget. Distance is monotonically non-decreasing in position
// (barring pathological negative gaps), so the first qualifying
// occurrence found in ascending order is the answer.
func findWithinBudget(p2 *bipath.Path, e graph.EdgeID, after, budget int) (int, bool) {
	find := p2.FindAll(e)
	for {
		pos, ok := find()
		if !ok {
			return 0, false
		}
		if pos <= after {
			continue
		}
		if distance(p2, after, pos) <= budget {
			return pos, true
		}
		return 0, false
	}
}

// distance measures the nucleotide distance in p2 strictly between
// position after and position pos (pos > after): the sum of edge lengths
// and gaps of the positions strictly between the two, i.e. the skipped
// material.
func distance(p2 *bipath.Path, after, pos int) int {
	total := 0
	for i := after + 1; i < pos; i++ {
		total += p2.EdgeSpan(i)
	}
	return total
}

// Span is an inclusive [First, Last] matched range in one path.
type Span struct {
	First, Last int
}

// Size returns the number of positions the span covers.
func (s Span) Size() int { return s.Last - s.First + 1 }

// CompareAndCut finds every co-occurrence of edge in both p1 and p2,
// extends a match forward from each using ComparePaths, then extends
// backward by running ComparePaths on the conjugates (the backward match
// on p1,p2 starting at pos is the forward match on conj(p1),conj(p2)
// starting at size-pos-1). It returns the best (widest) matched span in
// each path. ok is false if edge does not co-occur in both paths.
func CompareAndCut(edge graph.EdgeID, p1, p2 *bipath.Path, maxOverlap int) (span1, span2 Span, ok bool) {
	bestSize := -1
	find1 := p1.FindAll(edge)
	for {
		pos1, ok1 := find1()
		if !ok1 {
			break
		}
		find2 := p2.FindAll(edge)
		for {
			pos2, ok2 := find2()
			if !ok2 {
				break
			}
			last1, last2 := ComparePaths(pos1, pos2, p1, p2, maxOverlap)

			c1, c2 := p1.Conjugate(), p2.Conjugate()
			cpos1 := p1.Size() - pos1 - 1
			cpos2 := p2.Size() - pos2 - 1
			clast1, clast2 := ComparePaths(cpos1, cpos2, c1, c2, maxOverlap)
			first1 := p1.Size() - clast1 - 1
			first2 := p2.Size() - clast2 - 1

			size := (last1 - first1 + 1) + (last2 - first2 + 1)
			if size > bestSize {
				bestSize = size
				span1 = Span{First: first1, Last: last1}
				span2 = Span{First: first2, Last: last2}
				ok = true
			}
		}
	}
	return
}
