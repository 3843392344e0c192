package plugin

// State describes where a plugin identity is in its lifecycle. It is
// derived from the registry and bookkeeping, not stored: the registry slot
// and the record flags are the single source of truth.
type State int

// Plugin lifecycle states.
const (
	// StateDefined - the plugin exists in the library but has no process.
	StateDefined State = iota

	// StateSpawning - a spawn attempt has begun; nothing registered yet.
	StateSpawning

	// StateRunning - a live instance is registered, not yet rendered.
	StateRunning

	// StateRendered - the instance has rendered successfully.
	StateRendered

	// StateFailed - spawn, render, or destroy raised a failure.
	StateFailed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateDefined:
		return "defined"
	case StateSpawning:
		return "spawning"
	case StateRunning:
		return "running"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
