package utils

const (
	// ProgramName is the name reported in the cmd banner and log lines.
	ProgramName = "dbgresolve"

	// ProgramVersion is the version of the dbgresolve binary.
	ProgramVersion = "1.0.0"

	// ProgramURL is a short description of where this tool lives.
	ProgramURL = "github.com/exascience/dbgresolve"
)
