package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"midiextract/logger"
)

// ErrInvalidName is returned when a file name would land outside the output directory.
var ErrInvalidName = errors.New("invalid file name")

// LocalStore writes extracted files into a single directory.
type LocalStore struct {
	Dir string
}

// NewLocalStore creates a LocalStore rooted at dir ("." when empty).
func NewLocalStore(dir string) *LocalStore {
	if dir == "" {
		dir = "."
	}
	return &LocalStore{Dir: dir}
}

// PathFor returns the path name would be written to, as shown to the user.
// For the current directory it keeps the "./" prefix.
func (s *LocalStore) PathFor(name string) string {
	if s.Dir == "." {
		return "./" + name
	}
	return filepath.Join(s.Dir, name)
}

// Save writes data to Dir/name, replacing any existing file, and returns the path.
func (s *LocalStore) Save(name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := s.PathFor(name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("写入文件失败 %s: %w", path, err)
	}
	logger.Debug("file written", logger.String("path", path), logger.Int("bytes", len(data)))
	return path, nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
