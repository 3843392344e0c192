package lua

import (
	glua "github.com/yuin/gopher-lua"
)

// openSafeLibraries opens only the Lua standard libraries that cannot touch
// the host environment.
func openSafeLibraries(L *glua.LState) {
	glua.OpenBase(L)
	glua.OpenTable(L)
	glua.OpenString(L)
	glua.OpenMath(L)

	// Intentionally not opened:
	// - io, os (filesystem and system access)
	// - debug (can inspect and rewrite host-installed globals)
	// - package (module loading from disk)
}

// installSandbox removes base-library functions that would let plugin code
// compile arbitrary chunks outside the host's control. Plugins receive all
// host access through the injected capability bundle; nothing else.
func installSandbox(L *glua.LState) {
	for _, name := range []string{
		"dofile",
		"loadfile",
		"load",
		"loadstring",
	} {
		L.SetGlobal(name, glua.LNil)
	}
}
