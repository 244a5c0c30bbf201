package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Manager owns one sandboxed VM holding every loaded hook script.
//
// Manager is safe for concurrent use; hook calls are serialized because an
// LState is single-threaded.
type Manager struct {
	mu     sync.Mutex
	L      *lua.LState
	cancel func()
	limit  int
	logger *zap.Logger

	// stream is the randomness engine.dice draws from during a call.
	stream *dice.Stream
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{logger: logger}
}

// Load replaces the VM with a fresh one, registers the engine module and runs
// every *.lua file in dir in lexicographic order. instLimit bounds each hook
// call and each file load.
//
// Postcondition: on error the previous VM stays in place.
func (m *Manager) Load(dir string, instLimit int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	L, cancel := NewSandboxedState(instLimit)
	m.registerModules(L)
	for _, path := range files {
		if err := L.DoFile(path); err != nil {
			cancel()
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}
	cancel()
	L.RemoveContext()

	m.mu.Lock()
	m.closeLocked()
	m.L = L
	m.limit = normalizeLimit(instLimit)
	m.mu.Unlock()
	m.logger.Info("scripts loaded", zap.String("dir", dir), zap.Int("files", len(files)))
	return nil
}

// Loaded reports whether a VM is in place.
func (m *Manager) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.L != nil
}

// HasHook reports whether the named global function is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return false
	}
	_, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named global function with args, drawing engine.dice
// rolls from s. A missing VM or hook yields LNil. Lua runtime errors,
// including an exhausted opcode budget, are logged at Warn and never
// propagated.
//
// Precondition: s may be nil only if the hook never rolls dice.
// Postcondition: returns the hook's first return value or LNil.
func (m *Manager) CallHook(s *dice.Stream, hook string, args ...lua.LValue) lua.LValue {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.call(s, hook, args...)
}

// call runs hook with m.mu held.
func (m *Manager) call(s *dice.Stream, hook string, args ...lua.LValue) lua.LValue {
	if m.L == nil {
		return lua.LNil
	}
	fn, ok := m.L.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return lua.LNil
	}

	ctx, cancel := newBudget(m.limit)
	defer cancel()
	m.L.SetContext(ctx)
	defer m.L.RemoveContext()
	m.stream = s
	defer func() { m.stream = nil }()

	if err := m.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
		m.logger.Warn("lua hook failed", zap.String("hook", hook), zap.Error(err))
		return lua.LNil
	}
	ret := m.L.Get(-1)
	m.L.Pop(1)
	return ret
}

// Close releases the VM. Later hook calls are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Manager) closeLocked() {
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}
