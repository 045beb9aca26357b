package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveOverwrites(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	target := filepath.Join(dir, "Under The Sea.midi")
	require.NoError(t, os.WriteFile(target, []byte("old contents, longer"), 0644))

	path, err := store.Save("Under The Sea.midi", []byte("MThd"))
	require.NoError(t, err)
	assert.Equal(t, target, path)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, []byte("MThd"), got)
}

func TestSaveRejectsEscapingNames(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)

	for _, name := range []string{"", ".", "..", "../up.mid", "sub/dir.mid", `win\path.mid`} {
		_, err := store.Save(name, []byte{1})
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSaveMissingDirectory(t *testing.T) {
	store := NewLocalStore(filepath.Join(t.TempDir(), "absent"))

	_, err := store.Save("a.mid", []byte{1})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidName)
}

func TestPathFor(t *testing.T) {
	assert.Equal(t, "./song.mid", NewLocalStore("").PathFor("song.mid"))
	assert.Equal(t, "./song.mid", NewLocalStore(".").PathFor("song.mid"))
	assert.Equal(t, filepath.Join("out", "song.mid"), NewLocalStore("out").PathFor("song.mid"))
}
