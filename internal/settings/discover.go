package settings

import (
	"os"
	"path/filepath"
)

// FileNames are the settings files Discover looks for, in order.
var FileNames = []string{".regscan.yaml", ".regscan.yml", ".regscan.json"}

// Discover walks from dir up to the filesystem root and returns the first
// settings file found, nearest directory first.
func Discover(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	for {
		for _, name := range FileNames {
			p := filepath.Join(dir, name)
			if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
				return p, true
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
