package actor

import "fmt"

// PlayerRace is the player's race. It matters to combat only through life
// status and the death-scythe reflection multiplier.
type PlayerRace int

const (
	PlayerHuman PlayerRace = iota
	PlayerHalfElf
	PlayerElf
	PlayerHobbit
	PlayerGnome
	PlayerDwarf
	PlayerHalfOrc
	PlayerHalfTroll
	PlayerAmberite
	PlayerHighElf
	PlayerBarbarian
	PlayerHalfOgre
	PlayerHalfGiant
	PlayerHalfTitan
	PlayerCyclops
	PlayerYeek
	PlayerKlackon
	PlayerKobold
	PlayerNibelung
	PlayerDarkElf
	PlayerDraconian
	PlayerMindFlayer
	PlayerImp
	PlayerGolem
	PlayerSkeleton
	PlayerZombie
	PlayerVampire
	PlayerSpectre
	PlayerSprite
	PlayerBeastman
	PlayerEnt
	PlayerArchon
	PlayerBalrog
	PlayerDunadan
	PlayerShadowFairy
	PlayerKutar
	PlayerAndroid
	playerRaceCount
)

type raceLife int

const (
	lifeLiving raceLife = iota
	lifeUndead
	lifeNonliving
)

type playerRaceInfo struct {
	name string
	life raceLife
	// scythe is the death-scythe reflection multiplier in tenths.
	scythe int
}

var playerRaces = [playerRaceCount]playerRaceInfo{
	PlayerHuman:       {"human", lifeLiving, 25},
	PlayerHalfElf:     {"half_elf", lifeLiving, 10},
	PlayerElf:         {"elf", lifeLiving, 10},
	PlayerHobbit:      {"hobbit", lifeLiving, 10},
	PlayerGnome:       {"gnome", lifeLiving, 10},
	PlayerDwarf:       {"dwarf", lifeLiving, 10},
	PlayerHalfOrc:     {"half_orc", lifeLiving, 30},
	PlayerHalfTroll:   {"half_troll", lifeLiving, 30},
	PlayerAmberite:    {"amberite", lifeLiving, 25},
	PlayerHighElf:     {"high_elf", lifeLiving, 10},
	PlayerBarbarian:   {"barbarian", lifeLiving, 25},
	PlayerHalfOgre:    {"half_ogre", lifeLiving, 30},
	PlayerHalfGiant:   {"half_giant", lifeLiving, 30},
	PlayerHalfTitan:   {"half_titan", lifeLiving, 30},
	PlayerCyclops:     {"cyclops", lifeLiving, 30},
	PlayerYeek:        {"yeek", lifeLiving, 10},
	PlayerKlackon:     {"klackon", lifeLiving, 10},
	PlayerKobold:      {"kobold", lifeLiving, 10},
	PlayerNibelung:    {"nibelung", lifeLiving, 10},
	PlayerDarkElf:     {"dark_elf", lifeLiving, 10},
	PlayerDraconian:   {"draconian", lifeLiving, 30},
	PlayerMindFlayer:  {"mind_flayer", lifeLiving, 10},
	PlayerImp:         {"imp", lifeLiving, 30},
	PlayerGolem:       {"golem", lifeNonliving, 10},
	PlayerSkeleton:    {"skeleton", lifeUndead, 30},
	PlayerZombie:      {"zombie", lifeUndead, 30},
	PlayerVampire:     {"vampire", lifeUndead, 30},
	PlayerSpectre:     {"spectre", lifeUndead, 30},
	PlayerSprite:      {"sprite", lifeLiving, 10},
	PlayerBeastman:    {"beastman", lifeLiving, 25},
	PlayerEnt:         {"ent", lifeLiving, 10},
	PlayerArchon:      {"archon", lifeLiving, 10},
	PlayerBalrog:      {"balrog", lifeLiving, 30},
	PlayerDunadan:     {"dunadan", lifeLiving, 25},
	PlayerShadowFairy: {"shadow_fairy", lifeLiving, 10},
	PlayerKutar:       {"kutar", lifeLiving, 10},
	PlayerAndroid:     {"android", lifeNonliving, 10},
}

func (r PlayerRace) String() string {
	if r < 0 || r >= playerRaceCount {
		return fmt.Sprintf("race(%d)", int(r))
	}
	return playerRaces[r].name
}

// Living reports whether the race is neither undead nor a construct.
func (r PlayerRace) Living() bool { return playerRaces[r].life == lifeLiving }

// ScytheMultiplier is the race's death-scythe reflection multiplier in tenths.
func (r PlayerRace) ScytheMultiplier() int { return playerRaces[r].scythe }

// ParsePlayerRace maps a race name to its PlayerRace.
func ParsePlayerRace(s string) (PlayerRace, error) {
	for i, info := range playerRaces {
		if info.name == s {
			return PlayerRace(i), nil
		}
	}
	return PlayerHuman, fmt.Errorf("actor: unknown player race %q", s)
}

// Class is the player's class.
type Class int

const (
	ClassWarrior Class = iota
	ClassMage
	ClassPriest
	ClassRogue
	ClassRanger
	ClassPaladin
	ClassMonk
	ClassSamurai
	ClassForceTrainer
	ClassBerserker
	ClassMirrorMaster
	ClassNinja
	classCount
)

var classNames = [classCount]string{
	"warrior", "mage", "priest", "rogue", "ranger", "paladin",
	"monk", "samurai", "force_trainer", "berserker", "mirror_master", "ninja",
}

func (c Class) String() string {
	if c < 0 || c >= classCount {
		return fmt.Sprintf("class(%d)", int(c))
	}
	return classNames[c]
}

// ParseClass maps a class name to its Class.
func ParseClass(s string) (Class, error) {
	for i, n := range classNames {
		if n == s {
			return Class(i), nil
		}
	}
	return ClassWarrior, fmt.Errorf("actor: unknown class %q", s)
}

// Personality is the player's personality.
type Personality int

const (
	PersonalityOrdinary Personality = iota
	PersonalityMighty
	PersonalityShrewd
	PersonalityPious
	PersonalityNimble
	PersonalityFearless
	PersonalityCombat
	PersonalityLazy
	PersonalitySexy
	PersonalityLucky
	PersonalityPatient
	PersonalityMunchkin
	personalityCount
)

var personalityNames = [personalityCount]string{
	"ordinary", "mighty", "shrewd", "pious", "nimble", "fearless",
	"combat", "lazy", "sexy", "lucky", "patient", "munchkin",
}

func (p Personality) String() string {
	if p < 0 || p >= personalityCount {
		return fmt.Sprintf("personality(%d)", int(p))
	}
	return personalityNames[p]
}

// ParsePersonality maps a personality name to its Personality.
func ParsePersonality(s string) (Personality, error) {
	for i, n := range personalityNames {
		if n == s {
			return Personality(i), nil
		}
	}
	return PersonalityOrdinary, fmt.Errorf("actor: unknown personality %q", s)
}
