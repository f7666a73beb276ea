package regress

import "errors"

// Fatal conditions. Each aborts before any configuration is scanned.
var (
	ErrWrongDirectory     = errors.New("repository not found in working directory")
	ErrScratchAreaMissing = errors.New("scratch area not found")
	ErrConfigNotFound     = errors.New("configuration not found")
)

// Recoverable conditions. The pipeline records them and moves on.
var (
	ErrNoRuns          = errors.New("no run directories")
	ErrArtifactMissing = errors.New("no log or status file")
	ErrArtifactRead    = errors.New("artifact could not be read")
)

// IsFatal reports whether err aborts the whole scan.
func IsFatal(err error) bool {
	return errors.Is(err, ErrWrongDirectory) ||
		errors.Is(err, ErrScratchAreaMissing) ||
		errors.Is(err, ErrConfigNotFound)
}

// NotFoundError names the missing scratch area or configuration.
// It unwraps to ErrScratchAreaMissing or ErrConfigNotFound.
type NotFoundError struct {
	Err  error
	Name string
}

func (e *NotFoundError) Error() string { return e.Err.Error() + ": " + e.Name }

func (e *NotFoundError) Unwrap() error { return e.Err }
