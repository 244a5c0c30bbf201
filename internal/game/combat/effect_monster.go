package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// Against another monster most tags reduce to a projection of the tag's
// element; thefts and drains that only make sense against the player
// project nothing.
var monsterEffects = [actor.EffectCount]EffectHandler{
	actor.EffectNone:      EffectFunc(monsterInert),
	actor.EffectHurt:      EffectFunc(monsterHurt),
	actor.EffectPoison:    EffectFunc(monsterProject),
	actor.EffectUnBonus:   EffectFunc(monsterProject),
	actor.EffectUnPower:   EffectFunc(monsterProject),
	actor.EffectEatGold:   EffectFunc(monsterSnatch),
	actor.EffectEatItem:   EffectFunc(monsterSnatch),
	actor.EffectEatFood:   EffectFunc(monsterInert),
	actor.EffectEatLite:   EffectFunc(monsterInert),
	actor.EffectAcid:      EffectFunc(monsterProject),
	actor.EffectElec:      EffectFunc(monsterProject),
	actor.EffectFire:      EffectFunc(monsterProject),
	actor.EffectCold:      EffectFunc(monsterProject),
	actor.EffectBlind:     EffectFunc(monsterInert),
	actor.EffectConfuse:   EffectFunc(monsterProject),
	actor.EffectTerrify:   EffectFunc(monsterProject),
	actor.EffectParalyze:  EffectFunc(monsterParalyze),
	actor.EffectLoseStr:   EffectFunc(monsterInert),
	actor.EffectLoseInt:   EffectFunc(monsterInert),
	actor.EffectLoseWis:   EffectFunc(monsterInert),
	actor.EffectLoseDex:   EffectFunc(monsterInert),
	actor.EffectLoseCon:   EffectFunc(monsterInert),
	actor.EffectLoseChr:   EffectFunc(monsterInert),
	actor.EffectLoseAll:   EffectFunc(monsterInert),
	actor.EffectShatter:   EffectFunc(monsterShatter),
	actor.EffectExp10:     EffectFunc(monsterProject),
	actor.EffectExp20:     EffectFunc(monsterProject),
	actor.EffectExp40:     EffectFunc(monsterProject),
	actor.EffectExp80:     EffectFunc(monsterProject),
	actor.EffectDisease:   EffectFunc(monsterProject),
	actor.EffectTime:      EffectFunc(monsterProject),
	actor.EffectExpVamp:   EffectFunc(monsterExpVamp),
	actor.EffectDrainMana: EffectFunc(monsterInert),
	actor.EffectSuperHurt: EffectFunc(monsterSuperHurt),
	actor.EffectInertia:   EffectFunc(monsterProject),
	actor.EffectStun:      EffectFunc(monsterProject),
	actor.EffectHungry:    EffectFunc(monsterInert),
	actor.EffectFlavor:    EffectFunc(monsterInert),
}

func monsterInert(c *EffectContext) EffectResult {
	return EffectResult{Obvious: true}
}

func monsterProject(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Element: InfoFor(c.Blow.Effect).Element, Obvious: true}
}

func monsterHurt(c *EffectContext) EffectResult {
	return EffectResult{Damage: Mitigate(c.Damage, c.Target.AC), Element: InfoFor(actor.EffectHurt).Element, Obvious: true}
}

func monsterSuperHurt(c *EffectContext) EffectResult {
	s := c.stream()
	if s.Randint1(c.Level*2+250) > c.Target.AC+200 || s.OneIn(invulnPierce) {
		dam := max(c.Damage, 2*Mitigate(c.Damage, c.Target.AC))
		return EffectResult{Damage: dam, Element: InfoFor(actor.EffectHurt).Element, Obvious: true}
	}
	return monsterHurt(c)
}

// monsterSnatch is a theft against a monster: nothing is taken, but the
// thief may still blink away.
func monsterSnatch(c *EffectContext) EffectResult {
	c.Blinked = c.stream().OneIn(2)
	return EffectResult{Obvious: true}
}

// monsterParalyze projects sleep with the attacker's level as its power.
func monsterParalyze(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Level, Element: InfoFor(actor.EffectParalyze).Element, Obvious: true}
}

func monsterShatter(c *EffectContext) EffectResult {
	if c.Damage > shatterQuake {
		c.quake(c.Attacker.Pos, quakeRadius, c.Attacker, narrate.Quake)
	}
	return EffectResult{Damage: c.Damage, Element: InfoFor(actor.EffectShatter).Element, Obvious: true}
}

func monsterExpVamp(c *EffectContext) EffectResult {
	dam := c.Damage
	return EffectResult{Damage: dam, Element: InfoFor(actor.EffectExpVamp).Element, Obvious: true, Status: func(c *EffectContext) bool {
		if !c.Target.Living() || dam <= 2 {
			return false
		}
		if c.Attacker.Heal(c.stream().Damroll(4, dam/6)) > 0 {
			c.say(narrate.Healed, c.Attacker.Name)
		}
		return true
	}}
}
