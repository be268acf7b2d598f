package split

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage holds the session's transient files. In practice that is a single
// rendered receipt bitmap, replaced on every successful parse.
type Storage interface {
	// Save saves a file and returns the path/filename
	Save(filename string, data []byte) (string, error)

	// Get retrieves a file by path
	Get(path string) ([]byte, error)

	// Delete removes a file
	Delete(path string) error
}

// ScratchDir implements the Storage interface using a local scratch directory
type ScratchDir struct {
	basePath string
}

// NewScratchDir creates a new ScratchDir instance
func NewScratchDir(basePath string) (*ScratchDir, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}

	return &ScratchDir{
		basePath: basePath,
	}, nil
}

// Save writes a file into the scratch directory, overwriting any previous one
func (s *ScratchDir) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.basePath, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filename, nil
}

// Get retrieves a file from the scratch directory
func (s *ScratchDir) Get(path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.basePath, path))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a file from the scratch directory
func (s *ScratchDir) Delete(path string) error {
	if err := os.Remove(filepath.Join(s.basePath, path)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
