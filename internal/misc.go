package internal

import (
	"log"

	"github.com/exascience/pargo/pipeline"
)

// RunPipeline is p.Run() with a panic in place of an error return, for
// pargo pipelines that the caller considers infallible.
func RunPipeline(p *pipeline.Pipeline) {
	p.Run()
	if err := p.Err(); err != nil {
		log.Panic(err)
	}
}

// Assert panics with msg if cond is false. Used at boundaries where a
// violation (e.g. popping more edges than a path contains) indicates a
// caller bug rather than recoverable bad input.
func Assert(cond bool, msg string) {
	if !cond {
		log.Panic(msg)
	}
}
