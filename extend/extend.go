// Package extend provides the default seed extender: the external
// collaborator that grows each seed path as far as the graph and the
// weight counter allow. Growing seeds is embarrassingly parallel and
// independent of the single-threaded resolver core, so it is the one
// place in this module pargo/pipeline parallelism belongs, the same way
// independent per-alignment work is parallelized in a filter pipeline.
package extend

import (
	"github.com/exascience/pargo/pipeline"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/graph"
	"github.com/exascience/dbgresolve/internal"
	"github.com/exascience/dbgresolve/weight"
)

// Extender grows a batch of seed paths into their final, extended form,
// appending every resulting path (and implicitly its conjugate, which
// grows in mirror via bipath's conjugate-push machinery) to outPaths.
type Extender interface {
	GrowAll(seeds []*bipath.Path, outPaths *[]*bipath.Path)
}

// Default is a pargo/pipeline-parallel Extender: each seed is grown
// independently by greedily walking the highest-weight outgoing edge
// until no edge clears threshold or a dead end is reached.
type Default struct {
	Provider  graph.Provider
	Counter   weight.Counter
	Threshold float64
	MaxSteps  int
}

// GrowAll grows every seed in parallel via a pargo pipeline, then
// appends the results to outPaths in original seed order (pipeline
// batches preserve input order).
func (d Default) GrowAll(seeds []*bipath.Path, outPaths *[]*bipath.Path) {
	if len(seeds) == 0 {
		return
	}
	grown := make([]*bipath.Path, len(seeds))
	copy(grown, seeds)

	var p pipeline.Pipeline
	p.Source(grown)
	p.Add(pipeline.LimitedPar(0, pipeline.Receive(func(_ int, data interface{}) interface{} {
		batch := data.([]*bipath.Path)
		for _, s := range batch {
			d.growOne(s)
		}
		return batch
	})))
	internal.RunPipeline(&p)

	*outPaths = append(*outPaths, grown...)
}

// growOne extends p edge by edge, always taking the highest-weight
// outgoing edge from its current head, stopping when no candidate
// clears Threshold, a dead end is reached, or MaxSteps is exhausted.
func (d Default) growOne(p *bipath.Path) {
	for step := 0; d.MaxSteps <= 0 || step < d.MaxSteps; step++ {
		candidates := d.Provider.OutgoingEdgesFromEnd(p.Head())
		if len(candidates) == 0 {
			return
		}
		var best graph.EdgeID
		bestWeight := -1.0
		for _, e := range candidates {
			w := d.Counter.Weight(p, e, 0)
			if w > bestWeight {
				bestWeight = w
				best = e
			}
		}
		if bestWeight < d.Threshold {
			return
		}
		p.PushBack(best, 0)
	}
}
