package locator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestExpand(t *testing.T) {
	assert.Equal(t, "/home/pi/data/midimind.db", Expand("~/data/midimind.db", "/home/pi"))
	assert.Equal(t, "/home/pi", Expand("~", "/home/pi"))
	assert.Equal(t, "./data/midimind.db", Expand("./data/midimind.db", "/home/pi"))
	assert.Equal(t, "~other/x.db", Expand("~other/x.db", "/home/pi"))
	assert.Equal(t, "~/x.db", Expand("~/x.db", ""))
}

func TestDefaultCandidatesOrder(t *testing.T) {
	assert.Equal(t, []string{
		"./data/midimind.db",
		"../data/midimind.db",
		"~/Ma-est-tro/data/midimind.db",
		"/home/pi/Ma-est-tro/data/midimind.db",
		"~/data/midimind.db",
	}, DefaultCandidates())
}

func TestLocateFirstExistingCandidate(t *testing.T) {
	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	first := filepath.Join(dir, "first.db")
	second := "~/second.db"
	third := filepath.Join(dir, "third.db")
	touch(t, filepath.Join(home, "second.db"))
	touch(t, third)

	l := &Locator{Candidates: []string{first, second, third}, Home: home}

	path, ok := l.Locate()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, "second.db"), path)
}

func TestLocateOverrideWins(t *testing.T) {
	dir := t.TempDir()
	override := filepath.Join(dir, "custom.db")
	candidate := filepath.Join(dir, "candidate.db")
	touch(t, override)
	touch(t, candidate)

	l := &Locator{Override: override, Candidates: []string{candidate}}

	path, ok := l.Locate()
	require.True(t, ok)
	assert.Equal(t, override, path)
	assert.Equal(t, []string{override, candidate}, l.Probed())
}

func TestLocateMissingOverrideFallsBack(t *testing.T) {
	dir := t.TempDir()
	candidate := filepath.Join(dir, "candidate.db")
	touch(t, candidate)

	l := &Locator{Override: filepath.Join(dir, "nope.db"), Candidates: []string{candidate}}

	path, ok := l.Locate()
	require.True(t, ok)
	assert.Equal(t, candidate, path)
}

func TestLocateNothingFound(t *testing.T) {
	dir := t.TempDir()
	// directories never count as a store
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.db"), 0755))

	l := &Locator{Candidates: []string{filepath.Join(dir, "a.db"), filepath.Join(dir, "dir.db")}}

	path, ok := l.Locate()
	assert.False(t, ok)
	assert.Empty(t, path)
	assert.Len(t, l.Probed(), 2)
}

func TestNewUsesDefaults(t *testing.T) {
	t.Setenv("HOME", "/tmp/fake-home")

	l := New("")

	assert.Equal(t, "/tmp/fake-home", l.Home)
	assert.Contains(t, l.Probed(), "/tmp/fake-home/data/midimind.db")
}
