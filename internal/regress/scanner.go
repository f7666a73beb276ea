package regress

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"regscan/internal/settings"
)

// Scanner finds run directories and selects one artifact per run.
type Scanner struct {
	runPrefix      string
	logFileName    func(seed string) string
	statusPrefix   string
	statusSuffixes []settings.StatusSuffix
}

// NewScanner builds a Scanner from the site conventions in s.
func NewScanner(s settings.Settings) *Scanner {
	return &Scanner{
		runPrefix:      s.RunPrefix,
		logFileName:    s.LogFileName,
		statusPrefix:   s.StatusPrefix,
		statusSuffixes: s.StatusSuffixes,
	}
}

// Runs lists the run directories of c ordered by seed: numeric seeds
// ascending, then non-numeric seeds by name. A configuration without runs
// yields ErrNoRuns.
func (s *Scanner) Runs(c Configuration) ([]Run, error) {
	entries, err := os.ReadDir(c.Dir)
	if err != nil {
		return nil, fmt.Errorf("list runs of %s: %w", c.Name, err)
	}
	var runs []Run
	for _, ent := range entries {
		name := ent.Name()
		if !strings.HasPrefix(name, s.runPrefix) {
			continue
		}
		dir := filepath.Join(c.Dir, name)
		if !entryIsDir(ent, dir) {
			continue
		}
		runs = append(runs, Run{
			Config: c.Name,
			Seed:   strings.TrimPrefix(name, s.runPrefix),
			Dir:    dir,
		})
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoRuns, c.Name)
	}
	sort.SliceStable(runs, func(i, j int) bool {
		return seedLess(runs[i].Seed, runs[j].Seed)
	})
	return runs, nil
}

func seedLess(a, b string) bool {
	na, errA := strconv.ParseUint(a, 10, 64)
	nb, errB := strconv.ParseUint(b, 10, 64)
	switch {
	case errA == nil && errB == nil:
		if na != nb {
			return na < nb
		}
		return a < b
	case errA == nil:
		return true
	case errB == nil:
		return false
	default:
		return a < b
	}
}

// Select picks the artifact for r. Full-log mode takes the seed's log file.
// Fast-search mode takes the first status file that exists in suffix
// precedence order. ErrArtifactMissing when nothing matches.
func (s *Scanner) Select(r Run, mode Mode) (Artifact, error) {
	if mode == FullLog {
		path := filepath.Join(r.Dir, s.logFileName(r.Seed))
		if !isFile(path) {
			return Artifact{}, fmt.Errorf("%w: %s", ErrArtifactMissing, path)
		}
		return Artifact{Run: r, Path: path, Status: StatusNone}, nil
	}

	for _, ss := range s.statusSuffixes {
		path := filepath.Join(r.Dir, s.statusPrefix+ss.Suffix)
		if isFile(path) {
			return Artifact{Run: r, Path: path, Status: Status(ss.Status)}, nil
		}
	}
	return Artifact{}, fmt.Errorf("%w: %s has no %s* file", ErrArtifactMissing, r.Dir, s.statusPrefix)
}
