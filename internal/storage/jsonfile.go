package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/scriptdeck/scriptdeck/internal/plugin"
)

// FileStore persists the plugin library as a single JSON document. A
// missing file is an empty library, not an error; writes go through a
// temp-file rename so a crash mid-write cannot truncate the library.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a file store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// LoadPlugins reads the persisted library.
func (s *FileStore) LoadPlugins(ctx context.Context) ([]plugin.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading plugin library %s: %w", s.path, err)
	}

	var defs []plugin.Definition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing plugin library %s: %w", s.path, err)
	}
	return defs, nil
}

// SavePlugins replaces the persisted library.
func (s *FileStore) SavePlugins(ctx context.Context, defs []plugin.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plugin library: %w", err)
	}

	return writeFileAtomic(s.path, data)
}

// writeFileAtomic writes data via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
