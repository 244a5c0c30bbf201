package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/game/lore"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// Registry is the active actor set combat reads and removes the dead from.
// *actor.Registry satisfies it.
type Registry interface {
	Get(id string) (*actor.Actor, bool)
	Remove(id string) error
	Visible(observer, target *actor.Actor) bool
	Within(center actor.Pos, radius int) []*actor.Actor
}

// Projector delivers area effects. It must not fail on an empty target set
// and never removes actors itself.
type Projector interface {
	Project(s *dice.Stream, p arena.Projection) bool
}

// Quaker shakes the ground around a grid.
type Quaker interface {
	Earthquake(s *dice.Stream, center actor.Pos, radius int, cause *actor.Actor) bool
}

// Displacer moves fleeing actors.
type Displacer interface {
	TeleportAway(s *dice.Stream, a *actor.Actor, distance int) bool
	Blocked(defender, mover *actor.Actor) bool
}

// DeathHook is told about each death exactly once, after the victim has
// left the registry. Corpse and loot generation live behind it.
type DeathHook interface {
	OnDeath(s *dice.Stream, victim, killer *actor.Actor)
}

// Messenger receives narrative lines. It never influences resolution.
type Messenger interface {
	Say(key narrate.Key, args ...any)
}

// Turn is the context of one ResolveAttack call: the random stream and
// the collaborators every step of resolution reaches through. Nil
// collaborators are no-ops.
type Turn struct {
	Stream    *dice.Stream
	Registry  Registry
	Lore      *lore.Store
	Messages  Messenger
	Projector Projector
	Quaker    Quaker
	Displacer Displacer
	Death     DeathHook
	// Number is the game turn; multishadow only protects on odd turns.
	Number int
	// Arena marks an arena battle, where unique and quest monsters get no
	// protection from monster damage.
	Arena bool
	// MaxPlayerBlows caps the player's blows per turn; 0 leaves BlowCount.
	MaxPlayerBlows int
	Logger         *zap.Logger

	frightened map[string]bool
}

func (t *Turn) say(key narrate.Key, args ...any) {
	if t.Messages != nil {
		t.Messages.Say(key, args...)
	}
}

func (t *Turn) logger() *zap.Logger {
	if t.Logger == nil {
		return zap.NewNop()
	}
	return t.Logger
}

func (t *Turn) stream() *dice.Stream {
	if t.Stream == nil {
		panic("combat: turn has no dice stream")
	}
	return t.Stream
}

// visible reports whether observer sees target.
func (t *Turn) visible(observer, target *actor.Actor) bool {
	if t.Registry == nil {
		return !observer.HasStatus(condition.Blind)
	}
	return t.Registry.Visible(observer, target)
}

func (t *Turn) frighten(a *actor.Actor) {
	if t.frightened == nil {
		t.frightened = make(map[string]bool)
	}
	t.frightened[a.ID] = true
}

// Shadowed reports whether a's illusory doubles absorb attacks this turn.
func (t *Turn) Shadowed(a *actor.Actor) bool {
	return a.IsPlayer() && a.HasStatus(condition.Multishadow) && t.Number%2 == 1
}

// invulnPierce is the 1-in-N chance a blow pierces invulnerability.
const invulnPierce = 13

// hurtPlayer applies dam to the player p. Invulnerability stops it unless a
// 1-in-13 roll pierces; illusory doubles absorb it on odd turns. force
// damage ignores both.
//
// Postcondition: returns the HP actually lost. Death is left to the caller.
func (t *Turn) hurtPlayer(p *actor.Actor, dam int, force bool) int {
	if dam <= 0 || p.Dead {
		return 0
	}
	if !force {
		if p.HasStatus(condition.Invulnerable) && !t.stream().OneIn(invulnPierce) {
			t.say(narrate.Invulnerable, p.Name)
			return 0
		}
		if t.Shadowed(p) {
			t.say(narrate.Shadow, p.Name)
			return 0
		}
	}
	before := p.HP
	p.SetHP(p.HP - dam)
	return before - p.HP
}

// hurtMonster applies dam to the monster m and updates its morale.
// protect floors unique and quest monsters at 1 HP.
//
// Postcondition: returns the HP actually lost. Death is left to the caller.
func (t *Turn) hurtMonster(m *actor.Actor, dam int, protect bool) int {
	if m.Dead || dam < 0 {
		return 0
	}
	if m.HasStatus(condition.Invulnerable) && !t.stream().OneIn(invulnPierce) {
		return 0
	}
	before := m.HP
	hp := m.HP - dam
	if protect && (m.Unique || m.Quest) && hp < 1 {
		hp = 1
	}
	m.SetHP(hp)
	lost := before - m.HP
	if m.HP > 0 {
		t.morale(m, dam)
	}
	return lost
}

// hurt dispatches on the victim's kind.
func (t *Turn) hurt(victim *actor.Actor, dam int, protect bool) int {
	if victim.IsPlayer() {
		return t.hurtPlayer(victim, dam, false)
	}
	return t.hurtMonster(victim, dam, protect)
}

// protectMonsters reports whether unique and quest monsters are floored
// against monster damage in this turn.
func (t *Turn) protectMonsters() bool { return !t.Arena }

func meleePenalty(a *actor.Actor) (toHit, toDam int) {
	return condition.MeleePenalty(a.Status)
}

// learnImmunity reveals that the monster m ignores el.
func (t *Turn) learnImmunity(m *actor.Actor, el element.Element) {
	if t.Lore != nil && !m.IsPlayer() {
		t.Lore.LearnImmunity(raceID(m), el)
	}
}

// learnFlags reveals race flags of the monster m.
func (t *Turn) learnFlags(m *actor.Actor, f actor.RaceFlag) {
	if t.Lore != nil && !m.IsPlayer() {
		t.Lore.LearnFlags(raceID(m), f)
	}
}

// learnAura reveals a permanent aura of the monster m.
func (t *Turn) learnAura(m *actor.Actor, a actor.Aura) {
	if t.Lore != nil && !m.IsPlayer() {
		t.Lore.LearnAura(raceID(m), a)
	}
}
