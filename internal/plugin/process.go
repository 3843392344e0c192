package plugin

import (
	"sync"
	"time"

	glua "github.com/yuin/gopher-lua"

	"github.com/scriptdeck/scriptdeck/internal/plugin/lua"
)

// ProcessInfo is the bookkeeping record for one spawned plugin. It is a
// separate object from the live instance so plugin code can never overwrite
// its own audit trail. Records are created the moment a spawn attempt
// begins, so failed spawns remain observable.
type ProcessInfo struct {
	// PluginID is the identity the record belongs to.
	PluginID string `json:"pluginId"`

	// Rendered is true once the render capability has completed
	// successfully at least once in this process's life.
	Rendered bool `json:"rendered"`

	// HasError is true if spawn, render, or destroy raised a failure.
	HasError bool `json:"hasError"`

	// StartedAt is when the spawn attempt began.
	StartedAt time.Time `json:"startedAt"`
}

// process pairs a registry slot with its bookkeeping record. The slot holds
// at most one live instance; the record exists from the moment the spawn
// attempt begins. An instance without a record can never occur because both
// live on the same struct.
type process struct {
	mu       sync.Mutex
	state    *lua.State
	instance *lua.Instance
	info     ProcessInfo
}

func newProcess(id string, startedAt time.Time) *process {
	return &process{
		info: ProcessInfo{PluginID: id, StartedAt: startedAt},
	}
}

// registerFunc builds the Lua "register" function for this process. The
// slot is write-once, first-wins: the first table registered is installed,
// later calls are ignored. This lets a plugin body that suspends during its
// own initialization become live before the spawn call resolves.
func (p *process) registerFunc(state *lua.State) glua.LGFunction {
	return func(L *glua.LState) int {
		tbl := L.CheckTable(1)

		p.mu.Lock()
		if p.instance == nil {
			p.instance = lua.NewInstance(state, tbl)
		}
		p.mu.Unlock()
		return 0
	}
}

func (p *process) getInstance() *lua.Instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.instance
}

func (p *process) setState(state *lua.State) {
	p.mu.Lock()
	p.state = state
	p.mu.Unlock()
}

func (p *process) snapshot() ProcessInfo {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info
}

func (p *process) markError() {
	p.mu.Lock()
	p.info.HasError = true
	p.mu.Unlock()
}

func (p *process) markRendered() {
	p.mu.Lock()
	p.info.Rendered = true
	p.mu.Unlock()
}

func (p *process) rendered() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.info.Rendered
}

// close tears down the Lua state. Safe to call when no state was ever
// attached and safe to call twice.
func (p *process) close() {
	p.mu.Lock()
	state := p.state
	p.state = nil
	p.instance = nil
	p.mu.Unlock()

	if state != nil {
		state.Close()
	}
}
