package graph

import (
	"bufio"
	"log"
	"strconv"
	"strings"

	"github.com/exascience/dbgresolve/internal"
)

// LoadText reads a plain-text graph description, used by the cmd
// front-end in place of a real assembler's in-memory graph. Lines are
// whitespace-separated records:
//
//	K <k>
//	EDGE <id> <length> <conjugate> <in_cycle:0|1>
//	CONNECT <from> <to>
//
// Blank lines and lines starting with # are ignored.
func LoadText(filename string) *InMemory {
	f := internal.FileOpen(filename)
	defer internal.Close(f)

	g := NewInMemory(0)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "K":
			k, err := strconv.Atoi(fields[1])
			if err != nil {
				log.Panicf("invalid K line %q: %v", line, err)
			}
			g.k = k
		case "EDGE":
			if len(fields) != 5 {
				log.Panicf("invalid EDGE line %q", line)
			}
			id, err1 := strconv.ParseInt(fields[1], 10, 64)
			length, err2 := strconv.Atoi(fields[2])
			conj, err3 := strconv.ParseInt(fields[3], 10, 64)
			inCycle, err4 := strconv.Atoi(fields[4])
			if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
				log.Panicf("invalid EDGE line %q", line)
			}
			g.AddEdge(EdgeID(id), length, EdgeID(conj), inCycle != 0)
		case "CONNECT":
			if len(fields) != 3 {
				log.Panicf("invalid CONNECT line %q", line)
			}
			from, err1 := strconv.ParseInt(fields[1], 10, 64)
			to, err2 := strconv.ParseInt(fields[2], 10, 64)
			if err1 != nil || err2 != nil {
				log.Panicf("invalid CONNECT line %q", line)
			}
			g.Connect(EdgeID(from), EdgeID(to))
		default:
			log.Panicf("unrecognized graph record %q", line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Panic(err)
	}
	return g
}
