package actor

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/element"
)

// RaceFlag is a bitset of creature categories and innate monster traits.
type RaceFlag uint32

const (
	RaceAnimal RaceFlag = 1 << iota
	RaceEvil
	RaceGood
	RaceHuman
	RaceUndead
	RaceDemon
	RaceOrc
	RaceTroll
	RaceGiant
	RaceDragon
	RaceNonliving
	RaceNoFear
	RaceNoConf
	RaceNoSleep
	RaceHurtFire
	RaceHurtCold
	RaceInvisible
	RaceResistAll
	RaceEmptyMind
)

var raceFlagNames = map[string]RaceFlag{
	"animal":     RaceAnimal,
	"evil":       RaceEvil,
	"good":       RaceGood,
	"human":      RaceHuman,
	"undead":     RaceUndead,
	"demon":      RaceDemon,
	"orc":        RaceOrc,
	"troll":      RaceTroll,
	"giant":      RaceGiant,
	"dragon":     RaceDragon,
	"nonliving":  RaceNonliving,
	"no_fear":    RaceNoFear,
	"no_conf":    RaceNoConf,
	"no_sleep":   RaceNoSleep,
	"hurt_fire":  RaceHurtFire,
	"hurt_cold":  RaceHurtCold,
	"invisible":  RaceInvisible,
	"resist_all": RaceResistAll,
	"empty_mind": RaceEmptyMind,
}

// Has reports whether every bit of f is set.
func (r RaceFlag) Has(f RaceFlag) bool { return r&f == f && f != 0 }

// ParseRaceFlags folds flag names into a set.
func ParseRaceFlags(names []string) (RaceFlag, error) {
	var out RaceFlag
	for _, n := range names {
		f, ok := raceFlagNames[n]
		if !ok {
			return 0, fmt.Errorf("actor: unknown race flag %q", n)
		}
		out |= f
	}
	return out, nil
}

// ElementSet is a bitset indexed by element.Element.
type ElementSet uint32

// Has reports whether e is in the set.
func (s ElementSet) Has(e element.Element) bool { return s&(1<<uint(e)) != 0 }

// With returns the set plus e.
func (s ElementSet) With(e ...element.Element) ElementSet {
	for _, x := range e {
		s |= 1 << uint(x)
	}
	return s
}

// Elements builds a set from elements.
func Elements(e ...element.Element) ElementSet { return ElementSet(0).With(e...) }

// Resistances is an actor's elemental standing. Temporary resistances live in
// the status set (condition.Oppose*), not here.
type Resistances struct {
	Immune     ElementSet
	Resist     ElementSet
	Vulnerable ElementSet
}

// Trait is a bitset of protective or sensory abilities.
type Trait uint32

const (
	TraitFreeAction Trait = 1 << iota
	TraitHoldLife
	TraitResistFear
	TraitResistConf
	TraitResistBlind
	TraitSeeInvisible
	TraitAntiTeleport
)

var traitNames = map[string]Trait{
	"free_action":   TraitFreeAction,
	"hold_life":     TraitHoldLife,
	"resist_fear":   TraitResistFear,
	"resist_conf":   TraitResistConf,
	"resist_blind":  TraitResistBlind,
	"see_invisible": TraitSeeInvisible,
	"anti_teleport": TraitAntiTeleport,
}

// Has reports whether every bit of t is set.
func (tr Trait) Has(t Trait) bool { return tr&t == t && t != 0 }

// ParseTraits folds trait names into a set.
func ParseTraits(names []string) (Trait, error) {
	var out Trait
	for _, n := range names {
		t, ok := traitNames[n]
		if !ok {
			return 0, fmt.Errorf("actor: unknown trait %q", n)
		}
		out |= t
	}
	return out, nil
}

// Aura is a bitset of permanent reactive touch auras.
type Aura uint8

const (
	AuraFire Aura = 1 << iota
	AuraElec
	AuraCold
	AuraShards
)

var auraNames = map[string]Aura{
	"fire":   AuraFire,
	"elec":   AuraElec,
	"cold":   AuraCold,
	"shards": AuraShards,
}

// Has reports whether a is set.
func (s Aura) Has(a Aura) bool { return s&a == a && a != 0 }

// ParseAuras folds aura names into a set.
func ParseAuras(names []string) (Aura, error) {
	var out Aura
	for _, n := range names {
		a, ok := auraNames[n]
		if !ok {
			return 0, fmt.Errorf("actor: unknown aura %q", n)
		}
		out |= a
	}
	return out, nil
}

// Alignment is the moral tag checked by holy auras, protection from evil and
// slaying weapons.
type Alignment int

const (
	Neutral Alignment = iota
	Good
	Evil
)

// ParseAlignment maps "good", "evil" or "neutral" (or "") to an Alignment.
func ParseAlignment(s string) (Alignment, error) {
	switch s {
	case "", "neutral":
		return Neutral, nil
	case "good":
		return Good, nil
	case "evil":
		return Evil, nil
	}
	return Neutral, fmt.Errorf("actor: unknown alignment %q", s)
}
