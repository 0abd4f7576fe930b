// Package weight scores candidate path extensions from paired-read
// evidence, for consumption by the external seed extender. Its scoring
// shape follows the same priority-queue-driven extension scoring used
// for haplotype assembly.
package weight

import (
	"github.com/bits-and-blooms/bitset"
	psync "github.com/exascience/pargo/sync"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/graph"
)

// Library is a paired-read insert-size library: an external collaborator
// providing observed and modeled counts for a (edge, edge, distance)
// triple.
type Library interface {
	// Count returns the observed number of read pairs whose two mates
	// land on from and to, distance nucleotides apart.
	Count(from, to graph.EdgeID, distance int) float64
	// Mean and StdDev parameterize the library's insert-size
	// distribution, used to compute the expected ("ideal") count.
	Mean() float64
	StdDev() float64
	// Threshold is the per-library count/ideal ratio at or above which an
	// edge is considered "supported" by this library, used by
	// PathCover.
	Threshold() float64
}

// ideal returns the expected paired-read count at the given insert
// distance under l's insert-size distribution, modeled as the Normal
// probability density at that distance. The density is not rescaled.
func ideal(l Library, distance int) float64 {
	dist := distuv.Normal{Mu: l.Mean(), Sigma: l.StdDev()}
	return dist.Prob(float64(distance))
}

// Counter is a path-extension scoring strategy: given a path and a
// candidate edge at a gap, produce a non-negative weight.
type Counter interface {
	Weight(p *bipath.Path, e graph.EdgeID, gap int) float64
}

// pathKey adapts a path id to pargo/sync.Map's hashable-key requirement.
type pathKey bipath.ID

func (k pathKey) Hash() uint64 { return uint64(k) }

// Excluded is a veto map letting a caller zero out specific path
// positions without mutating the path itself, shared safely across the
// extender's concurrent seed-growing goroutines. Entries are keyed by
// path id, which is unique only within one container.
type Excluded struct {
	m *psync.Map
}

// NewExcluded creates an empty veto map.
func NewExcluded() *Excluded { return &Excluded{m: psync.NewMap(0)} }

func (ex *Excluded) bits(p *bipath.Path) *bitset.BitSet {
	v, ok := ex.m.Load(pathKey(p.ID()))
	if !ok {
		return nil
	}
	return v.(*bitset.BitSet)
}

// Exclude marks position i of p as vetoed: weight contributions at that
// position are treated as zero.
func (ex *Excluded) Exclude(p *bipath.Path, i int) {
	v, _ := ex.m.LoadOrStore(pathKey(p.ID()), bitset.New(uint(p.Size())))
	v.(*bitset.BitSet).Set(uint(i))
}

// IsExcluded reports whether position i of p has been vetoed.
func (ex *Excluded) IsExcluded(p *bipath.Path, i int) bool {
	b := ex.bits(p)
	return b != nil && b.Test(uint(i))
}

// ReadCount sums, over every library, the count/ideal ratio at every
// path position against the candidate edge at the given gap; ideal
// normalization is skipped when Normalize is false.
type ReadCount struct {
	Libraries []Library
	Excluded  *Excluded
	Normalize bool
}

func (rc ReadCount) Weight(p *bipath.Path, e graph.EdgeID, gap int) float64 {
	total := 0.0
	for i := 0; i < p.Size(); i++ {
		if rc.Excluded != nil && rc.Excluded.IsExcluded(p, i) {
			continue
		}
		distance := p.LengthAt(i) + gap
		for _, l := range rc.Libraries {
			count := l.Count(p.At(i), e, distance)
			if !rc.Normalize {
				total += count
				continue
			}
			if id := ideal(l, distance); id > 0 {
				total += count / id
			}
		}
	}
	return total
}

// PathCover compares, at every path position and for every library, the
// count/ideal ratio against that library's per-library threshold,
// classifying the candidate edge as supported or not there; the weight
// is the supported fraction of total ideal weight, averaged across
// libraries, which lies in [0,1] since supported weight never exceeds
// total weight. SingleThreshold is used in place of a
// library's own Threshold() whenever that returns <= 0, so a caller that
// has no per-library threshold data can still run PathCover with one
// global threshold.
type PathCover struct {
	Libraries       []Library
	Excluded        *Excluded
	SingleThreshold float64
}

func (pc PathCover) Weight(p *bipath.Path, e graph.EdgeID, gap int) float64 {
	if len(pc.Libraries) == 0 {
		return 0
	}
	total := 0.0
	for _, l := range pc.Libraries {
		threshold := l.Threshold()
		if threshold <= 0 {
			threshold = pc.SingleThreshold
		}
		supported, idealTotal := 0.0, 0.0
		for i := 0; i < p.Size(); i++ {
			if pc.Excluded != nil && pc.Excluded.IsExcluded(p, i) {
				continue
			}
			distance := p.LengthAt(i) + gap
			id := ideal(l, distance)
			idealTotal += id
			if id <= 0 {
				continue
			}
			if l.Count(p.At(i), e, distance)/id >= threshold {
				supported += id
			}
		}
		if idealTotal > 0 {
			total += supported / idealTotal
		}
	}
	return total / float64(len(pc.Libraries))
}

// IsExtensionPossible reports whether c's weight for extending p with e
// meets or exceeds threshold.
func IsExtensionPossible(c Counter, p *bipath.Path, e graph.EdgeID, gap int, threshold float64) bool {
	return c.Weight(p, e, gap) >= threshold
}
