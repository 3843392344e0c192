package storage

import (
	"context"
	"sync"

	"github.com/scriptdeck/scriptdeck/internal/plugin"
)

// MemoryStore is an in-memory plugin.Store for tests and ephemeral hosts.
type MemoryStore struct {
	mu   sync.Mutex
	defs []plugin.Definition
}

// NewMemoryStore creates an empty memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// LoadPlugins returns a copy of the stored library.
func (s *MemoryStore) LoadPlugins(ctx context.Context) ([]plugin.Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]plugin.Definition, len(s.defs))
	copy(out, s.defs)
	return out, nil
}

// SavePlugins replaces the stored library.
func (s *MemoryStore) SavePlugins(ctx context.Context, defs []plugin.Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defs = make([]plugin.Definition, len(defs))
	copy(s.defs, defs)
	return nil
}

// MemoryState is an in-memory api.StateStore.
type MemoryState struct {
	mu     sync.Mutex
	values map[string]any
}

// NewMemoryState creates an empty memory state store.
func NewMemoryState() *MemoryState {
	return &MemoryState{values: make(map[string]any)}
}

// Get returns the value for key.
func (s *MemoryState) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

// Set stores a value.
func (s *MemoryState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
