package resolve

import (
	"path/filepath"

	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/coverage"
	"github.com/exascience/dbgresolve/graph"
)

// SnapshotWriter persists the container's current contigs to filename, as
// an external collaborator (typically a FASTA writer). A nil writer
// disables snapshotting.
type SnapshotWriter interface {
	WritePaths(c *container.Container, filename string) error
}

var snapshotNames = [...]string{
	"before.fasta",
	"remove_similar.fasta",
	"after_remove_overlaps.fasta",
	"remove_equal.fasta",
	"remove_all.fasta",
}

// Run executes the canonical four-pass pipeline:
//
//  1. remove_similar_paths(max_overlap, false, true, true, false) — kill
//     contained subpaths and trim shared ends of long matches.
//  2. remove_overlaps(paths, max_overlap) — extract shared terminal
//     repeats as their own paths.
//  3. remove_similar_paths(max_overlap, true, false, false, false) —
//     collapse exact duplicates produced by step 2.
//  4. remove_similar_paths(max_overlap, false, true, true, true) — final
//     aggressive cleanup.
//
// If writer is non-nil, a snapshot is written to outDir before the first
// pass and after each of the four, using five fixed names. maxRepeatLength
// is the diagnostic threshold described on RemoveSimilarPaths; pass 0 to
// disable it.
func Run(c *container.Container, g graph.Provider, cov *coverage.Map, maxOverlap, maxRepeatLength int, writer SnapshotWriter, outDir string) error {
	if err := snapshot(writer, c, outDir, 0); err != nil {
		return err
	}

	RemoveSimilarPaths(g, cov, maxOverlap, maxRepeatLength, Policy{DelSubpaths: true, DelBegins: true})
	if err := snapshot(writer, c, outDir, 1); err != nil {
		return err
	}

	RemoveOverlaps(c, cov, maxOverlap)
	if err := snapshot(writer, c, outDir, 2); err != nil {
		return err
	}

	RemoveSimilarPaths(g, cov, maxOverlap, maxRepeatLength, Policy{DelOnlyEqual: true})
	if err := snapshot(writer, c, outDir, 3); err != nil {
		return err
	}

	RemoveSimilarPaths(g, cov, maxOverlap, maxRepeatLength, Policy{DelSubpaths: true, DelBegins: true, DelAll: true})
	return snapshot(writer, c, outDir, 4)
}

func snapshot(writer SnapshotWriter, c *container.Container, outDir string, pass int) error {
	if writer == nil {
		return nil
	}
	return writer.WritePaths(c, filepath.Join(outDir, snapshotNames[pass]))
}
