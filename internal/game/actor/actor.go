// Package actor models the participants of melee combat: players and
// monsters, their weapons and innate blows, and the registry that tracks
// the live ones.
package actor

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// Kind distinguishes the player from monsters.
type Kind int

const (
	KindPlayer Kind = iota
	KindMonster
)

func (k Kind) String() string {
	if k == KindPlayer {
		return "player"
	}
	return "monster"
}

// Pos is a grid coordinate.
type Pos struct {
	X int
	Y int
}

// Distance is the Chebyshev distance between two grids.
func (p Pos) Distance(q Pos) int {
	dx, dy := abs(p.X-q.X), abs(p.Y-q.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Actor is a player or monster taking part in combat. HP, SP, status and the
// resource fields are the only state combat mutates.
type Actor struct {
	ID   string
	Name string
	Kind Kind

	// Race is the monster template; nil for the player.
	Race        *Race
	PlayerRace  PlayerRace
	Class       Class
	Personality Personality

	Level    int
	Exp      int
	MaxExp   int
	Stats    Stats
	MaxStats Stats
	Sustain  [StatCount]bool

	AC        int
	ToHit     int
	ToDam     int
	Skill     int
	SaveSkill int

	HP    int
	MaxHP int
	SP    int
	MaxSP int
	Food  int
	Gold  int
	Light int
	Pack  Pack

	Status    *condition.ActiveSet
	Resist    Resistances
	Traits    Trait
	RaceFlags RaceFlag
	Alignment Alignment
	Auras     Aura

	Weapon    *Weapon
	BlowCount int
	Blows     [MaxBlows]BlowDescriptor

	Unique    bool
	Quest     bool
	NeverBlow bool

	Pos  Pos
	Dead bool
}

// IsPlayer reports whether the actor is the player.
func (a *Actor) IsPlayer() bool { return a.Kind == KindPlayer }

// Living reports whether the actor is a living creature, the precondition for
// life drain healing its attacker.
func (a *Actor) Living() bool {
	if a.IsPlayer() {
		return a.PlayerRace.Living()
	}
	return !a.RaceFlags.Has(RaceUndead) && !a.RaceFlags.Has(RaceNonliving) && !a.RaceFlags.Has(RaceDemon)
}

// Invisible reports whether the actor cannot be seen without see-invisible.
func (a *Actor) Invisible() bool { return a.RaceFlags.Has(RaceInvisible) }

// HasStatus reports whether status id is active.
func (a *Actor) HasStatus(id string) bool { return a.Status.Has(id) }

// HPPercent returns 100*HP/MaxHP.
func (a *Actor) HPPercent() int {
	if a.MaxHP <= 0 {
		return 0
	}
	return 100 * a.HP / a.MaxHP
}

// SetHP stores hp clamped to [0, MaxHP].
func (a *Actor) SetHP(hp int) {
	switch {
	case hp < 0:
		hp = 0
	case hp > a.MaxHP:
		hp = a.MaxHP
	}
	a.HP = hp
}

// Heal raises HP by n, capped at MaxHP, and returns the amount restored.
func (a *Actor) Heal(n int) int {
	if n <= 0 || a.Dead {
		return 0
	}
	before := a.HP
	a.SetHP(a.HP + n)
	return a.HP - before
}

// Immune reports whether the actor ignores element e entirely.
func (a *Actor) Immune(e element.Element) bool { return a.Resist.Immune.Has(e) }

// Resists reports a permanent resistance to e.
func (a *Actor) Resists(e element.Element) bool {
	return a.Resist.Resist.Has(e) || a.RaceFlags.Has(RaceResistAll)
}

// Vulnerable reports a vulnerability to e. Hurt-by race flags count.
func (a *Actor) Vulnerable(e element.Element) bool {
	switch {
	case e == element.Fire && a.RaceFlags.Has(RaceHurtFire):
		return true
	case e == element.Cold && a.RaceFlags.Has(RaceHurtCold):
		return true
	}
	return a.Resist.Vulnerable.Has(e)
}

var opposeStatus = map[element.Element]string{
	element.Acid:   condition.OpposeAcid,
	element.Elec:   condition.OpposeElec,
	element.Fire:   condition.OpposeFire,
	element.Cold:   condition.OpposeCold,
	element.Poison: condition.OpposePois,
}

// Opposes reports a temporary resistance to e.
func (a *Actor) Opposes(e element.Element) bool {
	id, ok := opposeStatus[e]
	return ok && a.Status.Has(id)
}

// ResistScale applies the actor's elemental standing to dam. A player ignores
// an immune element entirely, takes double from a vulnerability, and divides
// by three for each of permanent and temporary resistance. A monster takes a
// ninth when immune, a third when resistant and double when vulnerable.
func (a *Actor) ResistScale(e element.Element, dam int) int {
	if dam <= 0 {
		return 0
	}
	if a.IsPlayer() {
		if a.Immune(e) {
			return 0
		}
		if a.Vulnerable(e) {
			dam *= 2
		}
		if a.Resists(e) {
			dam = (dam + 2) / 3
		}
		if a.Opposes(e) {
			dam = (dam + 2) / 3
		}
		return dam
	}
	switch {
	case a.Immune(e):
		return dam / 9
	case a.Resists(e):
		return dam / 3
	case a.Vulnerable(e):
		return dam * 2
	}
	return dam
}

// Filter selects actors, for example the targets of an area projection.
type Filter func(*Actor) bool

// NewMonster builds a live monster from a validated race.
//
// Precondition: r must have passed Validate; reg must be non-nil.
// Postcondition: Returns a monster at full HP with the race's blows in order.
func NewMonster(id string, r *Race, reg *condition.Registry) *Actor {
	a := &Actor{
		ID:        id,
		Name:      r.Name,
		Kind:      KindMonster,
		Race:      r,
		Level:     r.Level,
		AC:        r.AC,
		HP:        r.MaxHP,
		MaxHP:     r.MaxHP,
		Status:    condition.NewActiveSet(reg),
		Resist:    Resistances{Immune: Elements(r.Immune...), Resist: Elements(r.Resist...), Vulnerable: Elements(r.Vulnerable...)},
		Traits:    r.traits,
		RaceFlags: r.raceFlags,
		Alignment: r.align,
		Auras:     r.auras,
		Unique:    r.Unique,
		Quest:     r.Quest,
		NeverBlow: r.NeverBlow,
	}
	if a.Alignment == Neutral {
		switch {
		case a.RaceFlags.Has(RaceEvil):
			a.Alignment = Evil
		case a.RaceFlags.Has(RaceGood):
			a.Alignment = Good
		}
	}
	copy(a.Blows[:], r.Blows)
	for _, b := range a.Blows {
		if !b.Empty() {
			a.BlowCount++
		}
	}
	return a
}

// Validate checks the live actor's invariants. The combat engine calls it
// before resolving an attack.
func (a *Actor) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("actor: id must not be empty")
	}
	if a.Status == nil {
		return fmt.Errorf("actor %q: status set must not be nil", a.ID)
	}
	if a.MaxHP < 1 {
		return fmt.Errorf("actor %q: max hp must be >= 1", a.ID)
	}
	if a.HP < 0 || a.HP > a.MaxHP {
		return fmt.Errorf("actor %q: hp %d outside [0, %d]", a.ID, a.HP, a.MaxHP)
	}
	for i, b := range a.Blows {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("actor %q: blow[%d]: %w", a.ID, i, err)
		}
	}
	if a.Weapon != nil {
		if err := a.Weapon.Validate(); err != nil {
			return fmt.Errorf("actor %q: %w", a.ID, err)
		}
	}
	return nil
}
