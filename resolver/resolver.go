// Package resolver orchestrates the full path resolution run: seed
// generation, delegation to the external extender, the multi-pass
// overlap-removal driver, uncovered-edge backfill, and mate-pair end
// trimming. Its phased, logged structure follows the same best-practices
// pipeline orchestration idiom used elsewhere in this codebase: one log
// line per phase, early return on error.
package resolver

import (
	"log"

	"github.com/google/uuid"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/coverage"
	"github.com/exascience/dbgresolve/extend"
	"github.com/exascience/dbgresolve/graph"
	"github.com/exascience/dbgresolve/resolve"
)

// MakeSimpleSeeds emits a singleton (e) / (conj(e)) seed pair for every
// edge with a positive id that does not lie on a cycle, skipping edges
// already covered by an earlier seed or its conjugate.
func MakeSimpleSeeds(g graph.Provider, c *container.Container) {
	covered := make(map[graph.EdgeID]bool)
	for _, e := range g.Edges() {
		if e <= 0 || g.Edge(e).InCycle() || covered[e] {
			continue
		}
		ce := g.Edge(e).Conjugate()
		p := bipath.New(g)
		q := bipath.New(g)
		c.AddPair(p, q)
		p.PushBack(e, 0)
		covered[e] = true
		covered[ce] = true
	}
}

// ExtendSeeds delegates growing every canonical seed path in c to ext.
func ExtendSeeds(c *container.Container, ext extend.Extender) {
	seeds := make([]*bipath.Path, 0, c.Size())
	c.All(func(p *bipath.Path) { seeds = append(seeds, p) })
	var grown []*bipath.Path
	ext.GrowAll(seeds, &grown)
}

// RemoveOverlaps runs the four-pass overlap-removal pipeline over c,
// optionally writing snapshots via writer into outDir.
func RemoveOverlaps(c *container.Container, g graph.Provider, cov *coverage.Map, maxOverlap, maxRepeatLength int, writer resolve.SnapshotWriter, outDir string) error {
	return resolve.Run(c, g, cov, maxOverlap, maxRepeatLength, writer, outDir)
}

// AddUncoveredEdges adds a singleton seed pair for every edge not
// currently present in the coverage map.
func AddUncoveredEdges(g graph.Provider, c *container.Container, cov *coverage.Map) {
	for _, e := range g.Edges() {
		if cov.IsCovered(e) {
			continue
		}
		p := bipath.New(g)
		q := bipath.New(g)
		c.AddPair(p, q)
		p.PushBack(e, 0)
		cov.Subscribe(p)
		cov.Subscribe(q)
	}
}

// RemoveMatePairEnds pops trailing edges shorter than minEdgeLen from
// every path and its twin in c.
func RemoveMatePairEnds(g graph.Provider, c *container.Container, minEdgeLen int) {
	c.All(func(p *bipath.Path) {
		trimTrailingShortEdges(g, p, minEdgeLen)
		trimTrailingShortEdges(g, p.Conjugate(), minEdgeLen)
	})
}

func trimTrailingShortEdges(g graph.Provider, p *bipath.Path, minEdgeLen int) {
	n := 0
	for i := p.Size() - 1; i >= 0 && g.Edge(p.At(i)).Length() < minEdgeLen; i-- {
		n++
	}
	if n > 0 {
		p.PopBack(n)
	}
}

// Config bundles the tunable parameters of a full run.
type Config struct {
	MaxOverlap      int
	MaxRepeatLength int
	MinEdgeLen      int
	OutDir          string
	Writer          resolve.SnapshotWriter
}

// Run executes the full resolver driver: seed, extend, remove overlaps,
// backfill uncovered edges, trim mate-pair ends. Each phase is logged
// with the run's correlation id so multiple runs writing into the same
// output directory can be told apart in the log.
func Run(g graph.Provider, ext extend.Extender, cfg Config) (*container.Container, error) {
	runID := uuid.New()
	c := container.New()
	cov := coverage.New(g)

	log.Println(runID, "making simple seeds")
	MakeSimpleSeeds(g, c)

	log.Println(runID, "extending seeds")
	ExtendSeeds(c, ext)

	// Subscribe only after extension: the extender may grow seeds
	// concurrently, and the coverage map is not safe for concurrent use.
	// Subscribe registers each path's edges as they stand at this point.
	c.All(func(p *bipath.Path) {
		cov.Subscribe(p)
		cov.Subscribe(p.Conjugate())
	})

	log.Println(runID, "removing overlaps")
	if err := RemoveOverlaps(c, g, cov, cfg.MaxOverlap, cfg.MaxRepeatLength, cfg.Writer, cfg.OutDir); err != nil {
		return nil, err
	}

	log.Println(runID, "adding uncovered edges")
	AddUncoveredEdges(g, c, cov)

	log.Println(runID, "trimming mate-pair ends")
	RemoveMatePairEnds(g, c, cfg.MinEdgeLen)

	log.Println(runID, "done,", c.Size(), "contig pairs")
	return c, nil
}
