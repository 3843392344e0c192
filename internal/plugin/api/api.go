// Package api builds the capability bundle injected into every spawned
// plugin. Each capability is a Module that installs itself as a Lua global;
// plugins have no host access outside these modules plus the register
// function installed by the spawner.
package api

import (
	"fmt"

	glua "github.com/yuin/gopher-lua"
)

// StateStore is the boundary to a host-provided key/value store. Both the
// host application's domain state and its UI state are handed to plugins
// through this interface; the store internals are outside this package.
type StateStore interface {
	// Get returns the value for key, and whether it was present.
	Get(key string) (any, bool)

	// Set stores a value under key.
	Set(key string, value any)
}

// Module is a capability that can install itself into a Lua state.
type Module interface {
	// Name returns the Lua global the module installs itself under.
	Name() string

	// Register installs the module into the Lua state.
	Register(L *glua.LState) error
}

// InjectAll registers every module into the Lua state.
func InjectAll(L *glua.LState, mods ...Module) error {
	for _, mod := range mods {
		if err := mod.Register(L); err != nil {
			return fmt.Errorf("injecting module %q: %w", mod.Name(), err)
		}
	}
	return nil
}
