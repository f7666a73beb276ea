// regscan tallies recurring error signatures across a regression.
//
// Usage:
//
//	regscan [--config <name>] [--fast_search] [-v] [--report <file>]
//	regscan configs
//	regscan serve
//
// Run it from inside a repository clone; the results area is derived from
// the clone's path.
package main

import (
	"errors"
	"fmt"
	"os"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// reportedError wraps an error whose tagged message is already on the console.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }

func (e *reportedError) Unwrap() error { return e.err }
