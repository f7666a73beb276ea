package regress

import (
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

// Enumerator lists configuration directories under a scratch area.
type Enumerator struct {
	Root   string
	Prefix string
}

// NewEnumerator returns an Enumerator rooted at the resolved scratch area.
func NewEnumerator(root, prefix string) *Enumerator {
	return &Enumerator{Root: root, Prefix: prefix}
}

// Configurations returns the configurations to scan, ordered by name.
// When only is non-empty it must name an existing directory directly under
// Root, otherwise ErrConfigNotFound is returned; the prefix is not applied
// to it.
// The listing is taken at call time; the returned sequence may be ranged
// over any number of times.
func (e *Enumerator) Configurations(only string) (iter.Seq[Configuration], error) {
	if only != "" {
		dir := filepath.Join(e.Root, only)
		if !isEntryName(only) || !isDir(dir) {
			return nil, &NotFoundError{Err: ErrConfigNotFound, Name: only}
		}
		cfgs := []Configuration{{Name: only, Dir: dir}}
		return seqOf(cfgs), nil
	}

	entries, err := os.ReadDir(e.Root)
	if err != nil {
		return nil, fmt.Errorf("list configurations: %w", err)
	}
	var cfgs []Configuration
	for _, ent := range entries {
		if !strings.HasPrefix(ent.Name(), e.Prefix) {
			continue
		}
		dir := filepath.Join(e.Root, ent.Name())
		if !entryIsDir(ent, dir) {
			continue
		}
		cfgs = append(cfgs, Configuration{Name: ent.Name(), Dir: dir})
	}
	return seqOf(cfgs), nil
}

func seqOf[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, it := range items {
			if !yield(it) {
				return
			}
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// entryIsDir follows symlinks, which results trees often use for
// configurations shared between regressions.
func entryIsDir(ent os.DirEntry, path string) bool {
	if ent.Type()&os.ModeSymlink != 0 {
		return isDir(path)
	}
	return ent.IsDir()
}

// isEntryName reports whether name is a single path element.
func isEntryName(name string) bool {
	return filepath.IsLocal(name) && !strings.ContainsAny(name, `/\`) && name != "."
}
