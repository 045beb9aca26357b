// Package locator finds the MidiMind SQLite store on disk.
package locator

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultCandidates returns the store locations probed when no path is given,
// highest priority first. Entries may start with "~".
func DefaultCandidates() []string {
	return []string{
		"./data/midimind.db",
		"../data/midimind.db",
		"~/Ma-est-tro/data/midimind.db",
		"/home/pi/Ma-est-tro/data/midimind.db",
		"~/data/midimind.db",
	}
}

// Expand replaces a leading "~" with home. Other paths are returned unchanged.
func Expand(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Locator resolves the store path from an optional override and a candidate list.
type Locator struct {
	Override   string
	Candidates []string
	Home       string
}

// New creates a Locator over the default candidates, using the current user's home.
func New(override string) *Locator {
	home, _ := os.UserHomeDir()
	return &Locator{
		Override:   override,
		Candidates: DefaultCandidates(),
		Home:       home,
	}
}

// Probed lists every path Locate checks, expanded, in order.
func (l *Locator) Probed() []string {
	var paths []string
	if l.Override != "" {
		paths = append(paths, Expand(l.Override, l.Home))
	}
	for _, c := range l.Candidates {
		paths = append(paths, Expand(c, l.Home))
	}
	return paths
}

// Locate returns the first probed path that is an existing regular file.
func (l *Locator) Locate() (string, bool) {
	for _, p := range l.Probed() {
		if isFile(p) {
			return p, true
		}
	}
	return "", false
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
