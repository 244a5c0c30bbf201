package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/game/lore"
)

// Multipliers are in tenths: 10 leaves damage unchanged.
const (
	baseMult      = 10
	brandMult     = 25
	brandHurtMult = 50
)

type slayEntry struct {
	slay actor.Slay
	race actor.RaceFlag
	mult int
}

var slayTable = [...]slayEntry{
	{actor.SlayAnimal, actor.RaceAnimal, 25},
	{actor.KillAnimal, actor.RaceAnimal, 40},
	{actor.SlayEvil, actor.RaceEvil, 20},
	{actor.KillEvil, actor.RaceEvil, 35},
	{actor.SlayGood, actor.RaceGood, 20},
	{actor.KillGood, actor.RaceGood, 35},
	{actor.SlayHuman, actor.RaceHuman, 25},
	{actor.KillHuman, actor.RaceHuman, 40},
	{actor.SlayUndead, actor.RaceUndead, 30},
	{actor.KillUndead, actor.RaceUndead, 50},
	{actor.SlayDemon, actor.RaceDemon, 30},
	{actor.KillDemon, actor.RaceDemon, 50},
	{actor.SlayOrc, actor.RaceOrc, 30},
	{actor.KillOrc, actor.RaceOrc, 50},
	{actor.SlayTroll, actor.RaceTroll, 30},
	{actor.KillTroll, actor.RaceTroll, 50},
	{actor.SlayGiant, actor.RaceGiant, 30},
	{actor.KillGiant, actor.RaceGiant, 50},
	{actor.SlayDragon, actor.RaceDragon, 30},
	{actor.KillDragon, actor.RaceDragon, 50},
}

var brandElements = [...]element.Element{
	element.Acid, element.Elec, element.Fire, element.Cold, element.Poison,
}

func raceID(a *actor.Actor) string {
	if a.Race == nil {
		return ""
	}
	return a.Race.ID
}

// MultSlaying returns the strongest slay multiplier w has against target.
// Every matched race flag is revealed in lr when lr is non-nil.
//
// Postcondition: result is the maximum over matching entries, at least 10.
func MultSlaying(w *actor.Weapon, target *actor.Actor, lr *lore.Store) int {
	mult := baseMult
	var learned actor.RaceFlag
	for _, e := range slayTable {
		if !w.Slays.Has(e.slay) || !target.RaceFlags.Has(e.race) {
			continue
		}
		learned |= e.race
		mult = max(mult, e.mult)
	}
	if lr != nil && target.Race != nil {
		lr.LearnFlags(raceID(target), learned)
	}
	return mult
}

// MultBrand returns the strongest brand multiplier w has against target. An
// immune target contributes nothing for that brand; the immunity is
// revealed in lr when the attacker perceives the target.
//
// Postcondition: result is the maximum over matching brands, at least 10.
func MultBrand(w *actor.Weapon, target *actor.Actor, lr *lore.Store, perceived bool) int {
	mult := baseMult
	for _, el := range brandElements {
		if !w.Brands.Has(el) {
			continue
		}
		if target.Immune(el) {
			if perceived && lr != nil && target.Race != nil {
				lr.LearnImmunity(raceID(target), el)
			}
			continue
		}
		if target.Vulnerable(el) {
			mult = max(mult, brandHurtMult)
			continue
		}
		mult = max(mult, brandMult)
	}
	return mult
}

// TotalMultiplier is the single strongest of the slay and brand multipliers.
func TotalMultiplier(w *actor.Weapon, target *actor.Actor, lr *lore.Store, perceived bool) int {
	return max(MultSlaying(w, target, lr), MultBrand(w, target, lr, perceived))
}

// ApplyMultiplier scales dam by a tenths multiplier.
func ApplyMultiplier(dam, mult int) int { return dam * mult / baseMult }

// RollVorpal rolls the vorpal chain of w: a 1-in-VorpalChance trigger, then
// a multiplier starting at 2 that grows by one for as long as further
// 1-in-VorpalChance rolls succeed.
//
// Postcondition: ok is false and mult is 1 when the weapon is not vorpal or
// the trigger fails; otherwise mult >= 2.
func RollVorpal(s *dice.Stream, w *actor.Weapon) (mult int, ok bool) {
	if !w.Vorpal() || !s.OneIn(w.VorpalChance) {
		return 1, false
	}
	mult = 2
	for s.OneIn(w.VorpalChance) {
		mult++
	}
	return mult, true
}

// WeaponDamage is the outcome of the player weapon pipeline for one blow.
type WeaponDamage struct {
	Base     int
	Mult     int
	Critical CriticalTier
	Vorpal   int
	// Impact is set when an earthquake weapon's blow shakes the ground.
	Impact bool
	// Drain is the damage a vampiric weapon draws on, before flat bonuses.
	Drain int
	Total int
}

// WeaponBlow runs the player damage pipeline: base dice, the slay/brand
// maximum, the critical roll, the vorpal chain, then the weapon's and the
// wielder's flat bonus, floored at 0.
func WeaponBlow(s *dice.Stream, p *actor.Actor, target *actor.Actor, lr *lore.Store, perceived bool, tech Technique) WeaponDamage {
	w := p.Weapon
	var d WeaponDamage
	d.Base = s.Roll(w.Dice).Total()
	d.Mult = TotalMultiplier(w, target, lr, perceived)
	k := ApplyMultiplier(d.Base, d.Mult)

	if w.Impact && (k > 50 || s.OneIn(7)) {
		d.Impact = true
	}
	k, d.Critical = CriticalNorm(s, w.Weight, w.ToHit, k, p.ToHit, p.Skill, p.Class, tech)
	d.Drain = k
	if mult, ok := RollVorpal(s, w); ok {
		d.Vorpal = mult
		k *= mult
	}
	_, stunDam := meleePenalty(p)
	k += w.ToDam + p.ToDam - stunDam
	d.Total = max(k, 0)
	return d
}
