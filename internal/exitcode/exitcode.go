// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// Failure indicates a command that could not be applied: the document
	// could not be read or written, it is malformed, or the task is missing.
	Failure = 1

	// Usage indicates bad arguments or flags.
	Usage = 2
)
