package lua

import (
	glua "github.com/yuin/gopher-lua"
)

// Instance is the live realization of a plugin: the table its source passed
// to register, bound to the State that owns it. The table may expose
// optional "render" and "destroy" function fields; everything else on it is
// the plugin's own business.
type Instance struct {
	state *State
	table *glua.LTable
}

// NewInstance binds a registered plugin table to its owning state.
func NewInstance(state *State, table *glua.LTable) *Instance {
	return &Instance{state: state, table: table}
}

// Has reports whether the instance exposes the named capability as a
// callable function.
func (i *Instance) Has(capability string) bool {
	return i.state.HasField(i.table, capability)
}

// Call invokes the named capability with the given arguments. Failures,
// including Lua panics, come back as errors and never propagate further.
func (i *Instance) Call(capability string, args ...glua.LValue) error {
	return i.state.CallField(i.table, capability, args...)
}

// State returns the owning Lua state.
func (i *Instance) State() *State {
	return i.state
}
