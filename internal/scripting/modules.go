package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

const maxScriptDice = 100

// registerModules installs the engine table:
//
//	engine.log.debug/info/warn(msg)
//	engine.dice.roll(count, sides)   -- damroll on the caller's stream
//	engine.dice.one_in(n)
func (m *Manager) registerModules(L *lua.LState) {
	engine := L.NewTable()

	log := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": m.logger.Debug,
		"info":  m.logger.Info,
		"warn":  m.logger.Warn,
	} {
		write := fn
		L.SetField(log, name, L.NewFunction(func(L *lua.LState) int {
			write(L.CheckString(1), zap.String("source", "lua"))
			return 0
		}))
	}
	L.SetField(engine, "log", log)

	dice := L.NewTable()
	L.SetField(dice, "roll", L.NewFunction(func(L *lua.LState) int {
		count, sides := L.CheckInt(1), L.CheckInt(2)
		if count < 0 || count > maxScriptDice {
			L.ArgError(1, "dice count out of range")
			return 0
		}
		if m.stream == nil {
			L.RaiseError("engine.dice.roll: no dice stream for this call")
			return 0
		}
		L.Push(lua.LNumber(m.stream.Damroll(count, sides)))
		return 1
	}))
	L.SetField(dice, "one_in", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		if m.stream == nil {
			L.RaiseError("engine.dice.one_in: no dice stream for this call")
			return 0
		}
		L.Push(lua.LBool(m.stream.OneIn(n)))
		return 1
	}))
	L.SetField(engine, "dice", dice)

	L.SetGlobal("engine", engine)
}
