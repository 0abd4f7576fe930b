// Package fasta implements the contig writer: the external collaborator
// called as write_paths(container, filename) between resolver passes to
// persist a snapshot of the container's current contigs. Materializing
// edge identifiers into actual nucleotide sequences is explicitly out of
// scope (paths are sequences of edge identifiers; base-level output
// belongs to a downstream writer with access to the graph's sequence
// data), so each record's "sequence" line is its edge-id path. The
// buffered-write-then-fsync durability idiom mirrors a memory-mapped
// snapshot writer's fsync-before-return guarantee.
package fasta

import (
	"bufio"
	"fmt"
	"log"
	"strconv"

	"golang.org/x/sys/unix"

	"github.com/exascience/dbgresolve/bipath"
	"github.com/exascience/dbgresolve/container"
	"github.com/exascience/dbgresolve/internal"
)

// LineWidth is the number of edge ids written per sequence line.
const LineWidth = 16

// Writer writes Container snapshots as FASTA-shaped files, one record
// per non-empty canonical path and one for its conjugate.
type Writer struct{}

// WritePaths implements the contig writer contract: it writes every
// non-empty path in c (canonical and conjugate) to filename as a FASTA
// record, then fsyncs the file before returning.
func (Writer) WritePaths(c *container.Container, filename string) error {
	f := internal.FileCreate(filename)
	defer internal.Close(f)

	w := bufio.NewWriter(f)
	for i := 0; i < c.Size(); i++ {
		writeRecord(w, c.Get(i))
		writeRecord(w, c.GetConjugate(i))
	}
	if err := w.Flush(); err != nil {
		log.Panic(err)
	}
	return unix.Fsync(int(f.Fd()))
}

// writeRecord renders one record's sequence line into a pooled byte
// buffer before writing it out, so repeated snapshot writes over a large
// container don't allocate a new line buffer per record (the same reuse
// idiom as internal.ReserveByteBuffer/ReleaseByteBuffer).
func writeRecord(w *bufio.Writer, p *bipath.Path) {
	if p.Empty() {
		return
	}
	fmt.Fprintf(w, ">path_%d length=%d edges=%d\n", p.ID(), p.Length(), p.Size())

	buf := internal.ReserveByteBuffer()
	defer internal.ReleaseByteBuffer(buf)
	for i := 0; i < p.Size(); i++ {
		if i > 0 {
			if i%LineWidth == 0 {
				buf = append(buf, '\n')
			} else {
				buf = append(buf, ' ')
			}
		}
		buf = strconv.AppendInt(buf, int64(p.At(i)), 10)
	}
	buf = append(buf, '\n')
	w.Write(buf)
}
