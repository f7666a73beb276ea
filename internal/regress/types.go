// Package regress walks a regression results tree: configurations under the
// scratch area, run directories under each configuration, and the one log or
// status artifact chosen for each run.
//
// Every operation takes fully qualified paths; nothing changes the process
// working directory.
package regress

import "regscan/internal/settings"

// Mode selects which artifact a run is judged by.
type Mode int

const (
	FullLog    Mode = iota // the verbose simulation log
	FastSearch             // the short status file
)

func (m Mode) String() string {
	if m == FastSearch {
		return "fast"
	}
	return "full"
}

// Status is the outcome inferred from a status file suffix.
// Full-log artifacts carry StatusNone.
type Status string

const (
	StatusNone    Status = ""
	StatusGood    Status = settings.StatusGood
	StatusBad     Status = settings.StatusBad
	StatusUnknown Status = settings.StatusUnknown
)

// Configuration is one results subdirectory of the scratch area.
type Configuration struct {
	Name string
	Dir  string
}

// Run is one seed of a configuration.
type Run struct {
	Config string
	Seed   string
	Dir    string
}

// Artifact is the file selected for a run.
type Artifact struct {
	Run    Run
	Path   string
	Status Status
}
