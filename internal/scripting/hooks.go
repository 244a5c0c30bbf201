package scripting

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// DeathHook is the global function called on a death when the race names
// no hook of its own.
const DeathHook = "on_death"

// ActorInfo is the snapshot of an actor handed to Lua.
type ActorInfo struct {
	ID     string
	Name   string
	Race   string
	Level  int
	HP     int
	MaxHP  int
	X, Y   int
	Player bool
	Unique bool
}

func (a *ActorInfo) table(L *lua.LState) lua.LValue {
	if a == nil {
		return lua.LNil
	}
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(a.ID))
	L.SetField(t, "name", lua.LString(a.Name))
	L.SetField(t, "race", lua.LString(a.Race))
	L.SetField(t, "level", lua.LNumber(a.Level))
	L.SetField(t, "hp", lua.LNumber(a.HP))
	L.SetField(t, "max_hp", lua.LNumber(a.MaxHP))
	L.SetField(t, "x", lua.LNumber(a.X))
	L.SetField(t, "y", lua.LNumber(a.Y))
	L.SetField(t, "player", lua.LBool(a.Player))
	L.SetField(t, "unique", lua.LBool(a.Unique))
	return t
}

// OnDeath runs hook (DeathHook when empty) for victim. killer is nil when the death
// had no attributable cause. The hook may return a list of item IDs to add
// to the corpse drop; any other return value is ignored.
//
// Postcondition: returns nil when no hook is defined or the hook fails.
func (m *Manager) OnDeath(s *dice.Stream, hook string, victim, killer *ActorInfo) []string {
	if hook == "" {
		hook = DeathHook
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return nil
	}
	ret := m.call(s, hook, victim.table(m.L), killer.table(m.L))
	drops, ok := ret.(*lua.LTable)
	if !ok {
		return nil
	}
	var out []string
	for i := 1; i <= drops.Len(); i++ {
		if id, ok := drops.RawGetInt(i).(lua.LString); ok && id != "" {
			out = append(out, string(id))
		}
	}
	return out
}
