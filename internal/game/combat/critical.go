package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Technique is a special sword technique modifying the critical roll.
type Technique int

const (
	TechniqueNone Technique = iota
	// TechniqueIai is the counter drawn from the iai stance.
	TechniqueIai
	// TechniqueMajin always criticals and rolls the severity twice.
	TechniqueMajin
	// TechniqueThreeStep always criticals and rolls the severity twice.
	TechniqueThreeStep
)

func (t Technique) certain() bool {
	return t == TechniqueMajin || t == TechniqueThreeStep
}

const (
	critPower      = 5000
	critPowerNinja = 4444
	critSeverity   = 650
)

// CriticalTier is the narrated severity of a player critical, 0 for none.
type CriticalTier int

// CriticalNorm rolls a player critical hit. The chance is
// (weight + bonus*3 + plus*5 + skill) in 5000, or in 4444 for ninjas; the
// severity is weight + 1d650 and selects one of five damage bands.
//
// Postcondition: tier is 0 and dam is unchanged when no critical occurs.
func CriticalNorm(s *dice.Stream, weight, plus, dam, bonus, skill int, class actor.Class, tech Technique) (int, CriticalTier) {
	power := weight + bonus*3 + plus*5 + skill
	denom := critPower
	if class == actor.ClassNinja {
		denom = critPowerNinja
	}
	if s.Randint1(denom) > power && !tech.certain() {
		return dam, 0
	}
	k := weight + s.Randint1(critSeverity)
	if tech.certain() {
		k += s.Randint1(critSeverity)
	}
	return CriticalBand(k, dam)
}

// CriticalBand maps a severity roll onto its damage transform.
func CriticalBand(k, dam int) (int, CriticalTier) {
	switch {
	case k < 400:
		return 2*dam + 5, 1
	case k < 700:
		return 2*dam + 10, 2
	case k < 900:
		return 3*dam + 15, 3
	case k < 1300:
		return 3*dam + 20, 4
	}
	return 7*dam/2 + 25, 5
}

// MaxRank is the highest incoming-blow severity rank.
const MaxRank = 7

// CalcMonsterCritical ranks the severity of a monster blow of dice x sides
// that rolled dam, for the cut and stun tables. Below 20 damage a blow must
// roll near its maximum and then pass a dam-in-100 check; from 20 on every
// blow ranks, with a 2% chance per step of ranking higher.
//
// Postcondition: result is in [0, MaxRank] and, for a fixed stream, does not
// decrease as dam grows.
func CalcMonsterCritical(s *dice.Stream, count, sides, dam int) int {
	total := count * sides
	if dam < 20 {
		if dam < total*19/20 {
			return 0
		}
		if s.Randint0(100) >= dam {
			return 0
		}
	}
	bonus := 0
	if dam >= total && dam >= 40 {
		bonus++
	}
	if dam >= 20 {
		for bonus < MaxRank && s.Randint0(100) < 2 {
			bonus++
		}
	}
	var rank int
	switch {
	case dam > 45:
		rank = 6
	case dam > 33:
		rank = 5
	case dam > 25:
		rank = 4
	case dam > 18:
		rank = 3
	case dam > 11:
		rank = 2
	default:
		rank = 1
	}
	return min(rank+bonus, MaxRank)
}

type rankRoll struct {
	base, sides int
}

var (
	cutTable = [MaxRank + 1]rankRoll{
		{0, 0}, {0, 5}, {5, 5}, {20, 20}, {50, 50}, {100, 100}, {300, 0}, {500, 0},
	}
	stunTable = [MaxRank + 1]rankRoll{
		{0, 0}, {0, 5}, {10, 5}, {20, 10}, {30, 15}, {40, 20}, {80, 0}, {150, 0},
	}
)

func rollRank(s *dice.Stream, table *[MaxRank + 1]rankRoll, rank int) int {
	rank = min(max(rank, 0), MaxRank)
	r := table[rank]
	return r.base + s.Randint1(r.sides)
}

// CutForRank rolls the cut magnitude for a severity rank.
func CutForRank(s *dice.Stream, rank int) int { return rollRank(s, &cutTable, rank) }

// StunForRank rolls the stun magnitude for a severity rank.
func StunForRank(s *dice.Stream, rank int) int { return rollRank(s, &stunTable, rank) }
