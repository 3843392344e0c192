package plugin

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store recording every save.
type memStore struct {
	mu        sync.Mutex
	defs      []Definition
	saveCount int
	loadErr   error
	saveErr   error
}

func (s *memStore) LoadPlugins(ctx context.Context) ([]Definition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out, nil
}

func (s *memStore) SavePlugins(ctx context.Context, defs []Definition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.defs = make([]Definition, len(defs))
	copy(s.defs, defs)
	s.saveCount++
	return nil
}

func (s *memStore) saved() []Definition {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Definition, len(s.defs))
	copy(out, s.defs)
	return out
}

// memState is an in-memory StateStore.
type memState struct {
	mu sync.Mutex
	m  map[string]any
}

func newMemState() *memState {
	return &memState{m: make(map[string]any)}
}

func (s *memState) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *memState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestLibrary(t *testing.T) (*Library, *memStore, *memState) {
	t.Helper()
	store := &memStore{}
	ui := newMemState()
	return NewLibrary(store, ui, testLogger()), store, ui
}

func TestLoadSeedsDefaults(t *testing.T) {
	lib, store, _ := newTestLibrary(t)

	if err := lib.Load(context.Background()); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	defs := lib.List()
	if len(defs) != 2 {
		t.Fatalf("Load() seeded %d definitions, want 2", len(defs))
	}
	if defs[0].Name != SeedWelcomeName || defs[1].Name != SeedCounterName {
		t.Errorf("seeded names = %q, %q, want %q, %q",
			defs[0].Name, defs[1].Name, SeedWelcomeName, SeedCounterName)
	}
	for _, def := range defs {
		if def.ID == "" {
			t.Errorf("seeded definition %q has empty id", def.Name)
		}
		if !def.Enabled {
			t.Errorf("seeded definition %q is not enabled", def.Name)
		}
	}

	if got := len(store.saved()); got != 2 {
		t.Errorf("persisted %d definitions, want 2", got)
	}
}

func TestLoadIdempotent(t *testing.T) {
	lib, _, _ := newTestLibrary(t)
	ctx := context.Background()

	if err := lib.Load(ctx); err != nil {
		t.Fatal(err)
	}
	if err := lib.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if got := lib.Count(); got != 2 {
		t.Errorf("Count() = %d after double Load, want 2", got)
	}
}

func TestLoadDoesNotReseedAcrossSessions(t *testing.T) {
	store := &memStore{}
	ui := newMemState()
	ctx := context.Background()

	first := NewLibrary(store, ui, testLogger())
	if err := first.Load(ctx); err != nil {
		t.Fatal(err)
	}

	// Same store and UI state, fresh library: simulates a host restart.
	second := NewLibrary(store, ui, testLogger())
	if err := second.Load(ctx); err != nil {
		t.Fatal(err)
	}

	if got := second.Count(); got != 2 {
		t.Errorf("Count() = %d after reload, want 2 (no duplicate seeding)", got)
	}
}

func TestLoadStoreError(t *testing.T) {
	store := &memStore{loadErr: errors.New("disk gone")}
	lib := NewLibrary(store, newMemState(), testLogger())

	if err := lib.Load(context.Background()); err == nil {
		t.Fatal("Load() expected error when store fails")
	}
}

func TestAdd(t *testing.T) {
	lib, store, _ := newTestLibrary(t)

	def := lib.Add("X", `register({})`)

	if def.ID == "" {
		t.Error("Add() returned empty id")
	}
	if def.Name != "X" {
		t.Errorf("Name = %q, want X", def.Name)
	}
	if def.Source != `register({})` {
		t.Errorf("Source = %q", def.Source)
	}
	if !def.Enabled {
		t.Error("Enabled = false, want true")
	}
	if def.EditedAt.IsZero() {
		t.Error("EditedAt is zero")
	}

	got, ok := lib.Get(def.ID)
	if !ok {
		t.Fatal("Get() did not find added definition")
	}
	if got.Name != "X" {
		t.Errorf("Get() Name = %q, want X", got.Name)
	}

	saved := store.saved()
	if len(saved) != 1 || saved[0].ID != def.ID {
		t.Errorf("store mirror = %+v, want the added definition", saved)
	}
}

func TestAddUniqueIDs(t *testing.T) {
	lib, _, _ := newTestLibrary(t)

	a := lib.Add("a", "")
	b := lib.Add("b", "")

	if a.ID == b.ID {
		t.Errorf("Add() produced duplicate id %q", a.ID)
	}
}

func TestEdit(t *testing.T) {
	lib, store, _ := newTestLibrary(t)

	def := lib.Add("old", "old source")
	before, _ := lib.Get(def.ID)

	lib.Edit(def.ID, "new", "new source")

	got, _ := lib.Get(def.ID)
	if got.Name != "new" || got.Source != "new source" {
		t.Errorf("after Edit: name=%q source=%q", got.Name, got.Source)
	}
	if got.ID != def.ID {
		t.Errorf("Edit changed id: %q -> %q", def.ID, got.ID)
	}
	if got.EditedAt.Before(before.EditedAt) {
		t.Error("Edit did not refresh EditedAt")
	}

	saved := store.saved()
	if len(saved) != 1 || saved[0].Name != "new" {
		t.Errorf("store mirror not updated: %+v", saved)
	}
}

func TestEditAbsentIsNoop(t *testing.T) {
	lib, store, _ := newTestLibrary(t)
	lib.Add("keep", "src")
	savesBefore := store.saveCount

	lib.Edit("no-such-id", "x", "y")

	if got := lib.Count(); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
	if store.saveCount != savesBefore {
		t.Error("Edit of absent id should not persist")
	}
}

func TestRemove(t *testing.T) {
	lib, store, _ := newTestLibrary(t)

	a := lib.Add("a", "")
	b := lib.Add("b", "")

	lib.Remove(a.ID)

	if _, ok := lib.Get(a.ID); ok {
		t.Error("removed definition still present")
	}
	if _, ok := lib.Get(b.ID); !ok {
		t.Error("unrelated definition was removed")
	}

	saved := store.saved()
	if len(saved) != 1 || saved[0].ID != b.ID {
		t.Errorf("store mirror after Remove = %+v", saved)
	}
}

func TestRemoveAbsentIsNoop(t *testing.T) {
	lib, store, _ := newTestLibrary(t)
	lib.Add("a", "")
	savesBefore := store.saveCount

	lib.Remove("no-such-id")

	if store.saveCount != savesBefore {
		t.Error("Remove of absent id should not persist")
	}
}

func TestListCopyIsolation(t *testing.T) {
	lib, _, _ := newTestLibrary(t)
	def := lib.Add("original", "src")

	list := lib.List()
	list[0].Name = "mutated"
	list[0].Source = "mutated"

	got, _ := lib.Get(def.ID)
	if got.Name != "original" {
		t.Errorf("mutating List() result changed library: Name = %q", got.Name)
	}

	fresh := lib.List()
	if fresh[0].Name != "original" {
		t.Errorf("fresh List() reflects caller mutation: Name = %q", fresh[0].Name)
	}
}

func TestGetCopyIsolation(t *testing.T) {
	lib, _, _ := newTestLibrary(t)
	def := lib.Add("original", "src")

	got, _ := lib.Get(def.ID)
	got.Name = "mutated"

	again, _ := lib.Get(def.ID)
	if again.Name != "original" {
		t.Errorf("mutating Get() result changed library: Name = %q", again.Name)
	}
}

func TestPersistFailureDoesNotPropagate(t *testing.T) {
	store := &memStore{saveErr: errors.New("write failed")}
	lib := NewLibrary(store, newMemState(), testLogger())

	// Must not panic or error; the in-memory collection stays authoritative.
	def := lib.Add("x", "src")

	if _, ok := lib.Get(def.ID); !ok {
		t.Error("definition missing after failed persist")
	}
}
