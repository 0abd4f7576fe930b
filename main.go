// dbgresolve reduces a set of grown de Bruijn-graph path seeds to a
// non-redundant set of contig paths: it detects and removes subpath
// containment, prefix/suffix overlaps, and shared terminal repeats
// across bidirectional paths with conjugate pairing.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/exascience/dbgresolve/cmd"
)

func printHelp() {
	fmt.Fprintln(os.Stderr, "Available commands: resolve")
	fmt.Fprint(os.Stderr, "\n", cmd.ResolveHelp)
}

func main() {
	fmt.Fprintln(os.Stderr, cmd.ProgramMessage)
	if len(os.Args) < 2 {
		log.Println("Incorrect number of parameters.")
		fmt.Fprintln(os.Stderr, cmd.HelpMessage)
		printHelp()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "resolve":
		err = cmd.Resolve()
	case "help", "-help", "--help", "-h", "--h":
		printHelp()
	default:
		log.Println("Unknown command:", os.Args[1])
		printHelp()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal(err)
	}
}
