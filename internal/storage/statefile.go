package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// StateFile is a JSON file-backed key/value store implementing the
// api.StateStore boundary. Values survive restarts; Set persists
// immediately, logging failures rather than surfacing them (the StateStore
// contract has no error channel, matching how plugins consume it).
type StateFile struct {
	mu     sync.Mutex
	path   string
	values map[string]any
	logger *logrus.Entry
}

// OpenStateFile loads (or initializes) a state file at the given path.
func OpenStateFile(path string, logger *logrus.Logger) (*StateFile, error) {
	s := &StateFile{
		path:   path,
		values: make(map[string]any),
		logger: logger.WithField("component", "statefile"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading state file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing state file %s: %w", path, err)
	}
	return s, nil
}

// Get returns the value for key.
func (s *StateFile) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value and persists the file.
func (s *StateFile) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value

	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		s.logger.WithError(err).Error("encoding state failed")
		return
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		s.logger.WithError(err).Error("persisting state failed")
	}
}
