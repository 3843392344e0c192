package api

import (
	glua "github.com/yuin/gopher-lua"

	"github.com/scriptdeck/scriptdeck/internal/plugin/lua"
)

// StateModule exposes a StateStore to Lua as a global table with get/set
// functions. The same module type backs both the host-state handle
// (installed as "host") and the UI-state handle (installed as "ui").
type StateModule struct {
	name  string
	store StateStore
}

// NewStateModule creates a state capability installed under the given
// global name.
func NewStateModule(name string, store StateStore) *StateModule {
	return &StateModule{name: name, store: store}
}

// Name returns the Lua global name.
func (m *StateModule) Name() string {
	return m.name
}

// Register installs the module.
//
// Lua surface:
//
//	host.get(key) -> value | nil
//	host.set(key, value)
func (m *StateModule) Register(L *glua.LState) error {
	bridge := lua.NewBridge(L)

	tbl := L.NewTable()

	L.SetField(tbl, "get", L.NewFunction(func(L *glua.LState) int {
		key := L.CheckString(1)
		value, ok := m.store.Get(key)
		if !ok {
			L.Push(glua.LNil)
			return 1
		}
		L.Push(bridge.ToLua(value))
		return 1
	}))

	L.SetField(tbl, "set", L.NewFunction(func(L *glua.LState) int {
		key := L.CheckString(1)
		value := L.CheckAny(2)
		m.store.Set(key, bridge.ToGo(value))
		return 0
	}))

	L.SetGlobal(m.name, tbl)
	return nil
}
