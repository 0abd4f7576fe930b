package cmd

import (
	"flag"
	"log"
	"os"

	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/extend"
	"github.com/exascience/dbgresolve/fasta"
	"github.com/exascience/dbgresolve/graph"
	"github.com/exascience/dbgresolve/resolver"
	"github.com/exascience/dbgresolve/weight"
)

// ResolveHelp is the help string for this command.
const ResolveHelp = "resolve parameters:\n" +
	"dbgresolve resolve graph-file output-dir\n" +
	"[--max-overlap int]\n" +
	"[--max-repeat-length int]\n" +
	"[--min-edge-len int]\n" +
	"[--normalize-weight]\n" +
	"[--threshold float]\n" +
	"[--single-threshold float]\n" +
	"[--path-cover]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--cpu-profile path-prefix]\n"

// Resolve implements the dbgresolve resolve command: it loads a
// plain-text graph, runs the full seed/extend/remove-overlaps/backfill
// driver, and writes the five fixed-name FASTA snapshots plus a final
// result.fasta into output-dir.
func Resolve() error {
	var (
		maxOverlap      int
		maxRepeatLength int
		minEdgeLen      int
		normalizeWeight bool
		threshold       float64
		singleThreshold float64
		pathCover       bool
		logPath         string
		timed           bool
		cpuProfile      string
	)

	var flags flag.FlagSet
	flags.IntVar(&maxOverlap, "max-overlap", 50, "tolerance used by the comparator, in nucleotides")
	flags.IntVar(&maxRepeatLength, "max-repeat-length", 10000, "diagnostic threshold for unresolved similar-path warnings")
	flags.IntVar(&minEdgeLen, "min-edge-len", 0, "threshold for mate-pair end trimming")
	flags.BoolVar(&normalizeWeight, "normalize-weight", true, "divide observed by ideal count in the weight counter")
	flags.Float64Var(&threshold, "threshold", 1.0, "extension weight threshold")
	flags.Float64Var(&singleThreshold, "single-threshold", 0.5, "per-position support threshold in path-cover mode")
	flags.BoolVar(&pathCover, "path-cover", false, "use the path-cover weight strategy instead of read-count")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "log elapsed wall-clock time for the run")
	flags.StringVar(&cpuProfile, "cpu-profile", "", "write a pprof CPU profile with this path prefix")
	parseFlags(flags, 4, ResolveHelp)

	graphFile := getFilename(os.Args[2], ResolveHelp)
	outDir := getFilename(os.Args[3], ResolveHelp)

	setLogOutput(logPath)

	if !checkExist("graph-file", graphFile) || !checkCreateDir("output-dir", outDir) {
		os.Exit(1)
	}

	g := graph.LoadText(graphFile)

	var counter weight.Counter
	if pathCover {
		counter = weight.PathCover{SingleThreshold: singleThreshold}
	} else {
		counter = weight.ReadCount{Normalize: normalizeWeight}
	}
	ext := extend.Default{
		Provider:  g,
		Counter:   counter,
		Threshold: threshold,
	}

	var c *container.Container
	var runErr error
	timedRun(timed, cpuProfile, "Running resolve", 0, func() {
		c, runErr = resolver.Run(g, ext, resolver.Config{
			MaxOverlap:      maxOverlap,
			MaxRepeatLength: maxRepeatLength,
			MinEdgeLen:      minEdgeLen,
			OutDir:          outDir,
			Writer:          fasta.Writer{},
		})
	})
	if runErr != nil {
		return runErr
	}

	if err := (fasta.Writer{}).WritePaths(c, outDir+string(os.PathSeparator)+"result.fasta"); err != nil {
		return err
	}

	log.Println("Wrote", c.Size(), "contig pairs to", outDir)
	return nil
}
