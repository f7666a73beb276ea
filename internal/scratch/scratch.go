// Package scratch maps a working directory inside a repository clone to the
// scratch area holding that clone's regression results.
//
// For a clone at /home/<user>/<a>/<b>/<repo>, results live at
// <base>/<user>/<a>/<b>/<results>.
package scratch

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"regscan/internal/regress"
	"regscan/internal/settings"
)

// Resolve computes the scratch-area path for cwd. It touches no filesystem.
func Resolve(cwd string, s settings.Settings) (string, error) {
	segments := strings.Split(filepath.Clean(cwd), string(filepath.Separator))

	repoIdx := lastIndex(segments, s.RepoName)
	if repoIdx < 0 {
		return "", fmt.Errorf("%w: %q not in %s", regress.ErrWrongDirectory, s.RepoName, cwd)
	}
	if s.User == "" {
		return "", fmt.Errorf("%w: no user identity to anchor %s", regress.ErrWrongDirectory, cwd)
	}
	userIdx := slices.Index(segments[:repoIdx], s.User)
	if userIdx < 0 {
		return "", fmt.Errorf("%w: user %q not before %q in %s", regress.ErrWrongDirectory, s.User, s.RepoName, cwd)
	}

	rel := strings.Join(segments[userIdx:repoIdx], "/")
	return path.Join(s.ScratchBase, rel, s.ResultsDir), nil
}

func lastIndex(segments []string, name string) int {
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] == name {
			return i
		}
	}
	return -1
}

// Resolver resolves and checks the scratch area against a filesystem.
type Resolver struct {
	Settings settings.Settings
	Stat     func(string) (os.FileInfo, error)
}

// NewResolver returns a Resolver backed by os.Stat.
func NewResolver(s settings.Settings) *Resolver {
	return &Resolver{Settings: s, Stat: os.Stat}
}

// Locate resolves the scratch area for cwd and confirms it is a directory.
func (r *Resolver) Locate(cwd string) (string, error) {
	dir, err := Resolve(cwd, r.Settings)
	if err != nil {
		return "", err
	}
	info, err := r.Stat(filepath.FromSlash(dir))
	if err != nil || !info.IsDir() {
		return "", &regress.NotFoundError{Err: regress.ErrScratchAreaMissing, Name: dir}
	}
	return dir, nil
}
