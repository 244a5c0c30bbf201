package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// statDamageChance is the 1-in-N chance an elemental hit also harms a stat.
const statDamageChance = 16

var elementalStat = map[element.Element]actor.Stat{
	element.Acid: actor.StatChr,
	element.Elec: actor.StatDex,
	element.Fire: actor.StatStr,
	element.Cold: actor.StatStr,
}

// ElementalDamage scales dam of element el against the player p.
// Immunity blocks it outright; vulnerability doubles it; permanent and
// temporary resistance each cut it to (d+2)/3. A player lacking one of the
// two resistances loses a point of the element's stat one time in 16 unless
// illusory doubles absorb the blow.
//
// Postcondition: returns the damage to apply, and whether p was immune.
func (t *Turn) ElementalDamage(p *actor.Actor, el element.Element, dam int) (int, bool) {
	if dam <= 0 || p.Immune(el) {
		return 0, p.Immune(el)
	}
	scaled := p.ResistScale(el, dam)
	doubled := p.Resists(el) && p.Opposes(el)
	if stat, ok := elementalStat[el]; ok && !doubled && t.stream().OneIn(statDamageChance) && !t.Shadowed(p) {
		t.decStat(p, stat)
	}
	return scaled, false
}

// decStat drains one point of stat unless sustained. Either way the player
// notices.
func (t *Turn) decStat(p *actor.Actor, stat actor.Stat) bool {
	if p.Sustain[stat] {
		t.say(narrate.StatSustained, p.Name, stat.Adjective())
		return true
	}
	if p.Stats[stat] > actor.MinStat {
		p.Stats[stat]--
	}
	t.say(narrate.StatDrained, p.Name, stat.Adjective())
	return true
}

// scaleStat multiplies one stat by num/den, floored at MinStat.
func scaleStat(p *actor.Actor, stat actor.Stat, num, den int) {
	p.Stats[stat] = max(p.Stats[stat]*num/den, actor.MinStat)
}
