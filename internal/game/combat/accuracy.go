// Package combat resolves melee: the blow sequencer for the three attack
// directions, the hit and critical models, slay, brand and vorpal damage
// modifiers, the blow effect table, reactive auras, morale and death.
//
// One ResolveAttack call is fully synchronous and draws every random number
// from the engine's single stream in a fixed order, so a seeded stream
// replays a fight exactly.
package combat

import "github.com/cory-johannsen/delve/internal/game/dice"

const (
	// hitScale is the share of the skill/armor contest that can be won, in percent.
	hitScale = 90
	minHit   = 5
	maxHit   = 95
)

// HitChance returns the percent chance that a blow with the given skill lands
// against armor. The lazy personality fights at 19/20 of the normal scale.
//
// Postcondition: result is in [5, 95].
func HitChance(skill, armor int, lazy bool) int {
	if skill <= 0 {
		return minHit
	}
	scale := hitScale
	if lazy {
		scale = (scale*19 + 9) / 20
	}
	chance := minHit + (100-armor*75/skill)*scale/100
	return min(max(chance, minHit), maxHit)
}

// TestHit rolls a player blow. An unseen target halves the chance first.
func TestHit(s *dice.Stream, chance, armor int, visible, lazy bool) bool {
	if !visible {
		chance = (chance + 1) / 2
	}
	return HitChance(chance, armor, lazy) >= s.Randint1(100)
}

// TestHitOn rolls a monster blow of the given effect power against armor.
// A roll under 10 is decided on its own: under 5 hits, 5 to 9 misses. A
// stunned attacker misses on a coin flip taken after that roll.
func TestHitOn(s *dice.Stream, power, level, armor int, stunned bool) bool {
	k := s.Randint0(100)
	if stunned && s.OneIn(2) {
		return false
	}
	if k < 10 {
		return k < 5
	}
	i := power + level*3
	return i > 0 && s.Randint1(i) > armor*3/4
}
