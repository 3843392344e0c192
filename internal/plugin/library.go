package plugin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/scriptdeck/scriptdeck/internal/plugin/api"
)

// Store is the persistence collaborator for the plugin library. The only
// guarantee assumed of implementations is last-write-wins.
type Store interface {
	// LoadPlugins fetches the full persisted library.
	LoadPlugins(ctx context.Context) ([]Definition, error)

	// SavePlugins replaces the persisted library.
	SavePlugins(ctx context.Context, defs []Definition) error
}

// seededKey is the UI-state flag marking that the example plugins have been
// seeded once. It lives in UI state, not the library itself, so deleting
// every plugin does not re-trigger seeding.
const seededKey = "plugins.defaultsSeeded"

// Library is the in-memory record store for plugin definitions, mirrored to
// its Store after every mutation. Persistence failures are logged, never
// surfaced to callers; the in-memory collection is the source of truth for
// the running session.
type Library struct {
	mu      sync.RWMutex
	defs    []Definition
	loaded  bool
	store   Store
	uiState api.StateStore
	logger  *logrus.Entry

	// Seams for tests.
	now   func() time.Time
	newID func() string
}

// NewLibrary creates a library backed by the given store. The UI-state
// store is used only for the one-time default-seeding flag.
func NewLibrary(store Store, uiState api.StateStore, logger *logrus.Logger) *Library {
	return &Library{
		store:   store,
		uiState: uiState,
		logger:  logger.WithField("component", "library"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load fetches the library from the store. On the first-ever load, detected
// via the UI-state seeding flag, it seeds the example definitions and
// persists them. Subsequent calls are no-ops.
func (l *Library) Load(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.loaded {
		return nil
	}

	defs, err := l.store.LoadPlugins(ctx)
	if err != nil {
		return fmt.Errorf("loading plugin library: %w", err)
	}
	l.defs = defs

	if _, seeded := l.uiState.Get(seededKey); !seeded {
		l.defs = append(l.defs, defaultDefinitions(l.now(), l.newID)...)
		l.uiState.Set(seededKey, true)
		l.persistLocked()
	}

	l.loaded = true
	return nil
}

// Reload replaces the in-memory library with the persisted one, without
// re-seeding. Meant for when the backing file was changed outside this
// process; destroying affected live processes is the caller's job.
func (l *Library) Reload(ctx context.Context) error {
	defs, err := l.store.LoadPlugins(ctx)
	if err != nil {
		return fmt.Errorf("reloading plugin library: %w", err)
	}

	l.mu.Lock()
	l.defs = defs
	l.loaded = true
	l.mu.Unlock()
	return nil
}

// Add creates a definition with a fresh identity, appends it, persists, and
// returns a copy.
func (l *Library) Add(name, source string) Definition {
	l.mu.Lock()
	defer l.mu.Unlock()

	def := Definition{
		ID:       l.newID(),
		Name:     name,
		Source:   source,
		Enabled:  true,
		EditedAt: l.now(),
	}
	l.defs = append(l.defs, def)
	l.persistLocked()
	return def
}

// Edit updates name, source, and timestamp of the definition with the given
// id, then persists. Absent ids are a no-op, not an error.
func (l *Library) Edit(id, name, source string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.defs {
		if l.defs[i].ID == id {
			l.defs[i].Name = name
			l.defs[i].Source = source
			l.defs[i].EditedAt = l.now()
			l.persistLocked()
			return
		}
	}
}

// Remove filters the definition with the given id out of the library and
// persists. Absent ids are a no-op.
func (l *Library) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.defs[:0]
	removed := false
	for _, def := range l.defs {
		if def.ID == id {
			removed = true
			continue
		}
		kept = append(kept, def)
	}
	l.defs = kept

	if removed {
		l.persistLocked()
	}
}

// Get returns a copy of the definition with the given id.
func (l *Library) Get(id string) (Definition, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, def := range l.defs {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}

// List returns copies of all definitions in library order.
func (l *Library) List() []Definition {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Definition, len(l.defs))
	copy(out, l.defs)
	return out
}

// Count returns the number of definitions.
func (l *Library) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.defs)
}

// persistLocked mirrors the library to the store. Must be called with mu
// held. The write happens inline on a snapshot: mutations are
// human-triggered and libraries are small, and writing in mutation order
// preserves last-write-wins. Failures are logged, never returned; callers
// do not await durability.
func (l *Library) persistLocked() {
	snapshot := make([]Definition, len(l.defs))
	copy(snapshot, l.defs)

	if err := l.store.SavePlugins(context.Background(), snapshot); err != nil {
		l.logger.WithError(err).Error("persisting plugin library failed")
	}
}
