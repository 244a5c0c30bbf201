package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

type auraKind struct {
	aura    actor.Aura
	element element.Element
	key     narrate.Key
}

// Player auras answer a touch in this order.
var playerAuras = [...]auraKind{
	{actor.AuraFire, element.Fire, narrate.AuraFire},
	{actor.AuraElec, element.Elec, narrate.AuraElec},
	{actor.AuraCold, element.Cold, narrate.AuraCold},
	{actor.AuraShards, element.Shards, narrate.AuraShards},
}

// Monster auras answer a touch in this order.
var monsterAuras = [...]auraKind{
	{actor.AuraFire, element.Fire, narrate.AuraFire},
	{actor.AuraCold, element.Cold, narrate.AuraCold},
	{actor.AuraElec, element.Elec, narrate.AuraElec},
}

// auraBlocked reports whether the monster m shrugs off an aura of el.
// Shards are stopped by resistance as well as immunity.
func auraBlocked(m *actor.Actor, el element.Element) bool {
	if m.Immune(el) || m.RaceFlags.Has(actor.RaceResistAll) {
		return true
	}
	return el == element.Shards && m.Resists(el)
}

// playerAurasStrike answers a monster's touch with the player's auras. Each
// aura deals 2d6; holy power burns only evil attackers.
//
// Precondition: attacker is a monster that just touched the player p.
// Postcondition: a dead or already-dead attacker is never damaged further.
func (t *Turn) playerAurasStrike(p, attacker *actor.Actor) {
	s := t.stream()
	for _, a := range playerAuras {
		if attacker.Dead {
			return
		}
		if !p.Auras.Has(a.aura) {
			continue
		}
		if auraBlocked(attacker, a.element) {
			t.learnImmunity(attacker, a.element)
			t.say(narrate.AuraImmune, attacker.Name)
			continue
		}
		t.say(a.key, attacker.Name)
		t.hurtMonster(attacker, s.Damroll(2, 6), false)
		t.checkDead(attacker, p)
	}
	if attacker.Dead {
		return
	}
	if p.HasStatus(condition.HolyAura) && attacker.Alignment == actor.Evil {
		if attacker.RaceFlags.Has(actor.RaceResistAll) {
			t.learnFlags(attacker, actor.RaceResistAll)
			t.say(narrate.AuraImmune, attacker.Name)
		} else {
			t.learnFlags(attacker, actor.RaceEvil)
			t.say(narrate.AuraHoly, attacker.Name)
			t.hurtMonster(attacker, s.Damroll(2, 6), false)
			t.checkDead(attacker, p)
		}
	}
	if attacker.Dead {
		return
	}
	if p.HasStatus(condition.ForceAura) {
		if attacker.RaceFlags.Has(actor.RaceResistAll) {
			t.learnFlags(attacker, actor.RaceResistAll)
			t.say(narrate.AuraImmune, attacker.Name)
		} else {
			t.say(narrate.AuraForce, attacker.Name)
			t.hurtMonster(attacker, s.Damroll(2, 6), false)
			t.checkDead(attacker, p)
		}
	}
}

// monsterAurasStrike answers another monster's touch with the defender's
// auras, projected at the attacker with dice growing with the defender's
// level.
func (t *Turn) monsterAurasStrike(defender, attacker *actor.Actor) {
	s := t.stream()
	for _, a := range monsterAuras {
		if attacker.Dead {
			return
		}
		if !defender.Auras.Has(a.aura) {
			continue
		}
		if attacker.Immune(a.element) {
			t.learnImmunity(attacker, a.element)
			continue
		}
		t.learnAura(defender, a.aura)
		t.say(a.key, attacker.Name)
		dam := s.Damroll(1+defender.Level/26, 1+defender.Level/17)
		t.projectAt(defender, attacker, a.element, dam)
		t.checkDead(attacker, defender)
	}
}

// monsterAurasBurnPlayer answers the player's touch with the monster's
// auras. The player's resistances scale each hit.
func (t *Turn) monsterAurasBurnPlayer(m, p *actor.Actor) {
	s := t.stream()
	for _, a := range monsterAuras {
		if p.Dead {
			return
		}
		if !m.Auras.Has(a.aura) || p.Immune(a.element) {
			continue
		}
		t.learnAura(m, a.aura)
		t.say(a.key, p.Name)
		dam, _ := t.ElementalDamage(p, a.element, s.Damroll(1+m.Level/13, 1+m.Level/26))
		t.hurtPlayer(p, dam, false)
		t.checkDead(p, m)
	}
}
