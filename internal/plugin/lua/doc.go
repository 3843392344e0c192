// Package lua provides the embedded Lua runtime used to execute plugin
// source. Each spawned plugin owns one sandboxed State; the host compiles
// the plugin's source text into it, injects the capability bundle as
// globals, and contains any failure at the call boundary.
//
// gopher-lua states are not goroutine-safe. A State serializes all access
// through its own mutex; callers must still ensure that render/destroy
// calls for one plugin do not overlap with its spawn, which the host's
// per-identity orchestration guarantees.
package lua
