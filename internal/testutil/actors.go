package testutil

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Conditions is a shared default status registry.
var Conditions = condition.DefaultRegistry()

// Player returns a level 30 human warrior with 300 HP, fists, one blow and
// mid-range stats.
func Player(id string) *actor.Actor {
	stats := actor.Stats{18, 12, 12, 18, 18, 12}
	return &actor.Actor{
		ID:         id,
		Name:       id,
		Kind:       actor.KindPlayer,
		PlayerRace: actor.PlayerHuman,
		Class:      actor.ClassWarrior,
		Level:      30,
		Exp:        50000,
		MaxExp:     50000,
		Stats:      stats,
		MaxStats:   stats,
		AC:         60,
		Skill:      100,
		SaveSkill:  50,
		HP:         300,
		MaxHP:      300,
		SP:         50,
		MaxSP:      50,
		Food:       5000,
		Gold:       1000,
		Light:      1500,
		Status:     condition.NewActiveSet(Conditions),
		Weapon:     actor.Fists(),
		BlowCount:  1,
	}
}

// Monster returns a level 20 living, neutral monster with 100 HP, AC 30 and
// the given blows.
func Monster(id string, blows ...actor.BlowDescriptor) *actor.Actor {
	m := &actor.Actor{
		ID:     id,
		Name:   id,
		Kind:   actor.KindMonster,
		Race:   &actor.Race{ID: id, Name: id, Level: 20, MaxHP: 100},
		Level:  20,
		AC:     30,
		HP:     100,
		MaxHP:  100,
		Status: condition.NewActiveSet(Conditions),
	}
	copy(m.Blows[:], blows)
	m.BlowCount = min(len(blows), actor.MaxBlows)
	return m
}

// Blow is shorthand for a blow descriptor.
func Blow(method actor.Method, effect actor.Effect, count, sides int) actor.BlowDescriptor {
	return actor.BlowDescriptor{Method: method, Effect: effect, Dice: dice.D(count, sides)}
}
