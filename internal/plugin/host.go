package plugin

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/scriptdeck/scriptdeck/internal/plugin/api"
	"github.com/scriptdeck/scriptdeck/internal/plugin/lua"
	"github.com/scriptdeck/scriptdeck/internal/surface"
)

// Capability field names an instance table may expose.
const (
	capRender  = "render"
	capDestroy = "destroy"
)

// Host is the lifecycle controller. It owns the plugin library and the
// process registry and orchestrates spawn, render, destroy, and the
// structural library operations.
//
// No failure inside plugin code ever escapes a Host method as an error;
// failures become observable bookkeeping state (ProcessInfo.HasError) and a
// logged diagnostic. The host must stay usable when a plugin is broken.
type Host struct {
	mu      sync.RWMutex
	procs   map[string]*process
	library *Library

	hostState api.StateStore
	uiState   api.StateStore
	logger    *logrus.Logger

	now func() time.Time
}

// NewHost creates a lifecycle controller. The host-state and UI-state
// stores are the opaque capability objects handed to every spawned plugin;
// the UI-state store additionally backs the library's seeding flag.
func NewHost(store Store, hostState, uiState api.StateStore, logger *logrus.Logger) *Host {
	return &Host{
		procs:     make(map[string]*process),
		library:   NewLibrary(store, uiState, logger),
		hostState: hostState,
		uiState:   uiState,
		logger:    logger,
		now:       time.Now,
	}
}

// Library returns the record store, for callers that manage definitions
// without going through the lifecycle pass-throughs.
func (h *Host) Library() *Library {
	return h.library
}

// Load fetches the plugin library, seeding example plugins on first-ever
// load. Idempotent.
func (h *Host) Load(ctx context.Context) error {
	return h.library.Load(ctx)
}

// AddPluginToLibrary creates and persists a new definition.
func (h *Host) AddPluginToLibrary(name, source string) Definition {
	return h.library.Add(name, source)
}

// GetPluginFromLibrary returns a copy of the definition with the given id.
func (h *Host) GetPluginFromLibrary(id string) (Definition, bool) {
	return h.library.Get(id)
}

// GetLibrary returns copies of all definitions in library order.
func (h *Host) GetLibrary() []Definition {
	return h.library.List()
}

// OverwritePlugin replaces a definition's name and source. Any live process
// is destroyed first so an edited definition cannot keep stale running
// code; the destroy runs even when the id is absent from the library.
func (h *Host) OverwritePlugin(ctx context.Context, id, name, source string) {
	h.Destroy(ctx, id)
	h.library.Edit(id, name, source)
}

// DeletePlugin removes a definition and destroys any live process, leaving
// no residue in the library, the registry, or the bookkeeping.
func (h *Host) DeletePlugin(ctx context.Context, id string) {
	h.Destroy(ctx, id)
	h.library.Remove(id)
}

// Spawn compiles the definition's source into a fresh Lua process and
// executes it with the capability bundle. Idempotent: if a live instance
// already exists for id it is returned without re-executing the source.
// Returns nil when the id is not in the library or the plugin never
// registered an instance; callers distinguish "never spawned" from
// "spawned and failed" via GetProcessInfo.
func (h *Host) Spawn(ctx context.Context, id string) *lua.Instance {
	h.mu.Lock()
	if p, ok := h.procs[id]; ok {
		if inst := p.getInstance(); inst != nil {
			h.mu.Unlock()
			return inst
		}
	}

	def, ok := h.library.Get(id)
	if !ok {
		h.mu.Unlock()
		return nil
	}

	// Bookkeeping exists before the instantiation attempt; a retry after a
	// failed spawn replaces the stale record.
	p := newProcess(id, h.now())
	h.procs[id] = p
	h.mu.Unlock()

	logger := h.logger.WithField("plugin", id)

	state := lua.NewState()
	p.setState(state)

	if err := api.InjectAll(state.LuaState(),
		api.NewStateModule("host", h.hostState),
		api.NewStateModule("ui", h.uiState),
		api.NewLogModule(logger),
	); err != nil {
		p.markError()
		logger.WithError(err).Error("capability injection failed")
		p.close()
		return nil
	}
	state.SetGlobal("register", state.LuaState().NewFunction(p.registerFunc(state)))

	// Execute the plugin body. Registration may already have committed by
	// the time a failure surfaces; a registered instance is preserved.
	if err := state.DoString(def.Source); err != nil {
		p.markError()
		logger.WithError(err).Warn("plugin spawn failed")
	}

	inst := p.getInstance()
	if inst == nil {
		// Nothing registered: no live instance can ever be reached, so the
		// Lua state is released now. The bookkeeping record stays behind as
		// the observable trace of the attempt.
		state.Close()
	}
	return inst
}

// Render ensures the plugin is spawned, then invokes its render capability
// with the given surface. Render is at-most-once-on-success: once a render
// has succeeded it is never re-invoked until the process is destroyed and
// respawned. A failed render leaves Rendered false so a later call retries.
func (h *Host) Render(ctx context.Context, id string, surf surface.Surface) {
	inst := h.Spawn(ctx, id)

	h.mu.RLock()
	p := h.procs[id]
	h.mu.RUnlock()

	if p == nil || p.rendered() {
		return
	}
	if inst == nil || !inst.Has(capRender) {
		return
	}

	surfTbl := api.PushSurface(inst.State().LuaState(), surf)
	if err := inst.Call(capRender, surfTbl); err != nil {
		p.markError()
		h.logger.WithField("plugin", id).WithError(err).Warn("plugin render failed")
		return
	}
	p.markRendered()
}

// Destroy invokes the instance's destroy capability, if any, and removes
// the process and its bookkeeping. Cleanup is unconditional: a failure
// inside destroy is recorded for concurrent observers of the record, but
// the post-condition is always "no entry for id".
func (h *Host) Destroy(ctx context.Context, id string) {
	h.mu.RLock()
	p := h.procs[id]
	h.mu.RUnlock()

	if p == nil {
		return
	}

	if inst := p.getInstance(); inst != nil && inst.Has(capDestroy) {
		if err := inst.Call(capDestroy); err != nil {
			p.markError()
			h.logger.WithField("plugin", id).WithError(err).Warn("plugin destroy failed")
		}
	}

	p.close()

	h.mu.Lock()
	if h.procs[id] == p {
		delete(h.procs, id)
	}
	h.mu.Unlock()
}

// DestroyAll tears down every live process. Used on host shutdown.
func (h *Host) DestroyAll(ctx context.Context) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.procs))
	for id := range h.procs {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		h.Destroy(ctx, id)
	}
}

// GetProcessInfo returns a copy of the bookkeeping record for id. Absent
// means no spawn attempt is on record; a record with a nil instance slot
// means the attempt never produced a live instance (HasError tells whether
// it failed or simply never registered).
func (h *Host) GetProcessInfo(id string) (ProcessInfo, bool) {
	h.mu.RLock()
	p := h.procs[id]
	h.mu.RUnlock()

	if p == nil {
		return ProcessInfo{}, false
	}
	return p.snapshot(), true
}

// GetAllProcessInfos returns copies of every bookkeeping record keyed by
// plugin id.
func (h *Host) GetAllProcessInfos() map[string]ProcessInfo {
	h.mu.RLock()
	defer h.mu.RUnlock()

	infos := make(map[string]ProcessInfo, len(h.procs))
	for id, p := range h.procs {
		infos[id] = p.snapshot()
	}
	return infos
}

// StateOf derives the lifecycle state for a plugin identity.
func (h *Host) StateOf(id string) State {
	h.mu.RLock()
	p := h.procs[id]
	h.mu.RUnlock()

	if p == nil {
		return StateDefined
	}

	info := p.snapshot()
	switch {
	case info.HasError:
		return StateFailed
	case info.Rendered:
		return StateRendered
	case p.getInstance() != nil:
		return StateRunning
	default:
		return StateSpawning
	}
}
