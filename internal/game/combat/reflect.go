package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

const (
	// scytheChance is the 1-in-N chance a missed death-scythe blow turns on
	// its wielder.
	scytheChance = 3
	// scytheEvilFloor and scytheExposedFloor are multiplier floors, in
	// tenths, for evil wielders and for wielders missing any base resistance.
	scytheEvilFloor    = 20
	scytheExposedFloor = 25
	scytheDeepChance   = 6
	scytheDeepChain    = 4
)

var reflectElements = [...]element.Element{
	element.Acid, element.Elec, element.Fire, element.Cold, element.Poison,
}

// ScytheMultiplier is the reflected-damage multiplier in tenths for the
// wielder p.
func ScytheMultiplier(p *actor.Actor) int {
	mult := p.PlayerRace.ScytheMultiplier()
	if p.Alignment == actor.Evil && mult < scytheEvilFloor {
		mult = scytheEvilFloor
	}
	for _, el := range reflectElements {
		if !(p.Immune(el) || p.Resists(el) || p.Opposes(el)) {
			return max(mult, scytheExposedFloor)
		}
	}
	return mult
}

// scytheReflect turns a missed death-scythe blow on its wielder one time in
// three. The reflected blow can critical and cut deep, and ignores
// invulnerability.
//
// Postcondition: returns the HP the wielder lost.
func (t *Turn) scytheReflect(p *actor.Actor, tech Technique) int {
	s := t.stream()
	w := p.Weapon
	if !s.OneIn(scytheChance) {
		return 0
	}
	t.say(narrate.ScytheReturns, p.Name)
	k := s.Roll(w.Dice).Total() * ScytheMultiplier(p) / baseMult
	k, _ = CriticalNorm(s, w.Weight, w.ToHit, k, p.ToHit, p.Skill, p.Class, tech)
	if s.OneIn(scytheDeepChance) {
		mult := 2
		for s.OneIn(scytheDeepChain) {
			mult++
		}
		t.say(narrate.ScytheDeep, p.Name)
		k *= mult
	}
	k = max(k+p.ToDam+w.ToDam, 0)
	lost := t.hurtPlayer(p, k, true)
	t.checkDead(p, p)
	return lost
}
