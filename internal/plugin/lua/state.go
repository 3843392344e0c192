package lua

import (
	"fmt"
	"sync"

	glua "github.com/yuin/gopher-lua"
)

// State wraps a gopher-lua LState for single-plugin execution.
//
// The LState is created with a restricted library set and the sandbox
// installed. All methods recover Lua panics and convert them to errors so
// broken plugin code cannot take down the host.
type State struct {
	L *glua.LState

	mu     sync.Mutex
	closed bool
}

// NewState creates a sandboxed Lua state.
func NewState() *State {
	L := glua.NewState(glua.Options{
		SkipOpenLibs: true, // opened selectively below
	})

	openSafeLibraries(L)
	installSandbox(L)

	return &State{L: L}
}

// DoString compiles and executes Lua source. The call blocks until the
// chunk finishes or raises.
func (s *State) DoString(code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	return s.withRecovery(func() error {
		return s.L.DoString(code)
	})
}

// CallField calls tbl.field(args...) with panic recovery. Returns
// ErrNotFunction if the field is absent or not callable.
func (s *State) CallField(tbl *glua.LTable, field string, args ...glua.LValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	fn := s.L.GetField(tbl, field)
	if fn.Type() != glua.LTFunction {
		return fmt.Errorf("%q: %w", field, ErrNotFunction)
	}

	return s.withRecovery(func() error {
		s.L.Push(fn)
		for _, arg := range args {
			s.L.Push(arg)
		}
		return s.L.PCall(len(args), 0, nil)
	})
}

// HasField reports whether tbl.field is a callable function.
func (s *State) HasField(tbl *glua.LTable, field string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	return s.L.GetField(tbl, field).Type() == glua.LTFunction
}

// SetGlobal sets a global variable.
func (s *State) SetGlobal(name string, value glua.LValue) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.SetGlobal(name, value)
}

// LuaState returns the underlying gopher-lua state.
//
// Direct access bypasses the mutex; use only while no other goroutine can
// touch this State (e.g. during capability injection before execution).
func (s *State) LuaState() *glua.LState {
	return s.L
}

// IsClosed reports whether Close has been called.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the Lua state. Safe to call more than once.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.L.Close()
	s.closed = true
}

// withRecovery runs fn converting Lua panics to errors.
// Must be called with mu held.
func (s *State) withRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}
