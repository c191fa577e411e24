// Package lua runs inflection scripts on an embedded gopher-lua runtime.
package lua

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Default limits for Lua state.
const (
	DefaultExecutionTimeout = 5 * time.Second
	DefaultInstructionLimit = 1_000_000 // host API calls per run
)

// State wraps gopher-lua with the safe standard libraries only.
//
// gopher-lua's LState is not goroutine-safe; the mutex serialises runs from
// Go code.
type State struct {
	L *lua.LState

	mu sync.Mutex

	executionTimeout time.Duration
	instructionLimit int64
	output           io.Writer

	instructions atomic.Int64
	limitHit     atomic.Bool

	closed bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithExecutionTimeout bounds the wall time of a single run. Zero disables it.
func WithExecutionTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.executionTimeout = d
	}
}

// WithInstructionLimit caps host API calls per run. Zero disables it.
func WithInstructionLimit(limit int64) StateOption {
	return func(s *State) {
		s.instructionLimit = limit
	}
}

// WithOutput redirects the Lua print function. The default is stderr.
func WithOutput(w io.Writer) StateOption {
	return func(s *State) {
		if w != nil {
			s.output = w
		}
	}
}

// NewState creates a new sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	state := &State{
		executionTimeout: DefaultExecutionTimeout,
		instructionLimit: DefaultInstructionLimit,
		output:           os.Stderr,
	}
	for _, opt := range opts {
		opt(state)
	}

	state.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(state.L)
	state.L.SetGlobal("print", state.L.NewFunction(state.print))
	return state
}

// openSafeLibraries opens base, table, string and math. io, os, debug and
// package stay closed, and the base loaders are removed.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// print writes its arguments, tab separated, to the configured output.
func (s *State) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(s.output, strings.Join(parts, "\t"))
	return 0
}

// DoFile executes a Lua file.
func (s *State) DoFile(path string) error {
	return s.run(func() error { return s.L.DoFile(path) })
}

// DoString executes a Lua string.
func (s *State) DoString(code string) error {
	return s.run(func() error { return s.L.DoString(code) })
}

func (s *State) run(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStateClosed
	}

	s.instructions.Store(0)
	s.limitHit.Store(false)

	ctx := context.Background()
	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}
	s.L.SetContext(ctx)
	defer s.L.RemoveContext()

	err := s.doWithRecovery(fn)
	switch {
	case err == nil:
		return nil
	case s.limitHit.Load():
		return fmt.Errorf("%w: %v", ErrInstructionLimit, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrExecutionTimeout, err)
	}
	return err
}

// doWithRecovery executes a function with panic recovery.
func (s *State) doWithRecovery(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	return fn()
}

// charge counts one host API call and raises a Lua error once the limit is
// passed. It runs inside a script, so it must not take the mutex.
func (s *State) charge(L *lua.LState) {
	if s.instructionLimit <= 0 {
		return
	}
	if s.instructions.Add(1) > s.instructionLimit {
		s.limitHit.Store(true)
		L.RaiseError("instruction limit of %d exceeded", s.instructionLimit)
	}
}

// InstructionCount returns the host API calls made by the current or last run.
func (s *State) InstructionCount() int64 {
	return s.instructions.Load()
}

// GetGlobal returns a global variable value.
func (s *State) GetGlobal(name string) lua.LValue {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return lua.LNil
	}
	return s.L.GetGlobal(name)
}

// RegisterModule installs funcs as a global table called name.
func (s *State) RegisterModule(name string, funcs map[string]lua.LGFunction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	mod := s.L.SetFuncs(s.L.NewTable(), funcs)
	s.L.SetGlobal(name, mod)
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases all resources associated with the Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
