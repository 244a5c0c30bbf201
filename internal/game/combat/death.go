package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// explodeRadius is the reach of an exploding corpse.
const explodeRadius = 3

func nameOf(a *actor.Actor) string {
	if a == nil {
		return ""
	}
	return a.Name
}

// kill resolves the death of victim at the hands of killer (nil when no
// actor is to blame). A second call for the same victim is a no-op.
//
// Postcondition: victim.Dead is true, victim.HP is 0 and the victim has left
// the registry. The death hook ran exactly once.
func (t *Turn) kill(victim, killer *actor.Actor) {
	if victim.Dead {
		return
	}
	victim.Dead = true
	victim.HP = 0
	if t.Registry != nil {
		if err := t.Registry.Remove(victim.ID); err != nil {
			t.logger().Warn("removing dead actor", zap.String("actor", victim.ID), zap.Error(err))
		}
	}
	if t.Lore != nil {
		switch {
		case !victim.IsPlayer() && killer != nil && killer.IsPlayer():
			t.Lore.RecordKill(raceID(victim))
		case victim.IsPlayer() && killer != nil && !killer.IsPlayer() && !t.Arena:
			t.Lore.RecordDeath(raceID(killer))
		}
	}
	t.logger().Info("actor died",
		zap.String("victim", victim.ID),
		zap.String("killer", nameOf(killer)),
		zap.Int("turn", t.Number),
	)
	switch {
	case victim.IsPlayer():
		t.say(narrate.PlayerDies, nameOf(killer), victim.Name)
	case killer != nil && killer.IsPlayer():
		t.say(narrate.Slain, killer.Name, victim.Name)
	default:
		t.say(narrate.Destroyed, nameOf(killer), victim.Name)
	}
	if t.Death != nil {
		t.Death.OnDeath(t.stream(), victim, killer)
	}
	t.explodeCorpse(victim)
}

// explodeCorpse bursts a monster whose race attacks by exploding, delivering
// that blow's element in a ball around the corpse.
func (t *Turn) explodeCorpse(victim *actor.Actor) {
	if victim.IsPlayer() || t.Projector == nil {
		return
	}
	for _, b := range victim.Blows {
		if b.Empty() || !b.Method.Info().Explode {
			continue
		}
		el := InfoFor(b.Effect).Element
		if el == element.None {
			return
		}
		t.Projector.Project(t.stream(), arena.Projection{
			Source:  victim,
			Origin:  victim.Pos,
			Radius:  explodeRadius,
			Damage:  t.stream().Damroll(b.Dice.Count, b.Dice.Sides),
			Element: el,
			Protect: t.protectMonsters(),
		})
		t.sweep(victim.Pos, explodeRadius, victim)
		return
	}
}

// sweep kills every actor within radius of center left at 0 HP by an area
// effect.
func (t *Turn) sweep(center actor.Pos, radius int, killer *actor.Actor) {
	if t.Registry == nil {
		return
	}
	for _, a := range t.Registry.Within(center, radius) {
		if a.HP <= 0 && !a.Dead {
			t.kill(a, killer)
		}
	}
}

// checkDead kills a if it has no HP left.
func (t *Turn) checkDead(a, killer *actor.Actor) {
	if a.HP <= 0 && !a.Dead {
		t.kill(a, killer)
	}
}
