package arena

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// Projection is one area effect: Damage of Element delivered to every actor
// within Radius of Origin that Filter accepts.
type Projection struct {
	Source  *actor.Actor
	Origin  actor.Pos
	Radius  int
	Damage  int
	Element element.Element
	// Filter selects targets; nil accepts every living actor in range.
	Filter actor.Filter
	// Protect floors unique and quest monsters at 1 HP.
	Protect bool
}

const sleepTurns = 500

// Project applies p and reports whether any target was affected. Actors are
// never removed here; one left at 0 HP is for the caller to resolve.
//
// Precondition: s must be non-nil.
// Postcondition: an empty target set yields false and no mutation.
func (a *Arena) Project(s *dice.Stream, p Projection) bool {
	hit := false
	for _, t := range a.actors.Within(p.Origin, p.Radius) {
		if t.Dead || (p.Filter != nil && !p.Filter(t)) {
			continue
		}
		if a.affect(s, t, p) {
			hit = true
		}
	}
	a.logger.Debug("projection",
		zap.String("element", p.Element.String()),
		zap.Int("radius", p.Radius),
		zap.Int("damage", p.Damage),
		zap.Bool("hit", hit),
	)
	return hit
}

// resistedByLevel is the saving roll monsters make against fear and sleep.
func resistedByLevel(s *dice.Stream, t *actor.Actor, power int) bool {
	return t.Level > s.Randint1(max(1, power-10))+10
}

func (a *Arena) affect(s *dice.Stream, t *actor.Actor, p Projection) bool {
	dam := p.Damage
	switch p.Element {
	case element.TurnAll:
		if t.IsPlayer() {
			if t.Traits.Has(actor.TraitResistFear) || s.Randint0(100) < t.SaveSkill {
				return true
			}
		} else if t.RaceFlags.Has(actor.RaceNoFear) || t.Unique || resistedByLevel(s, t, dam) {
			return true
		}
		_, _ = t.Status.Extend(condition.Afraid, s.Damroll(3, dam/2)+1)
		return true

	case element.OldSleep:
		if t.IsPlayer() {
			return false
		}
		if t.RaceFlags.Has(actor.RaceNoSleep) || resistedByLevel(s, t, dam) {
			return true
		}
		_ = t.Status.Apply(condition.Asleep, sleepTurns)
		return true

	case element.OldDrain:
		if !t.Living() {
			return true
		}

	case element.Nether:
		if t.RaceFlags.Has(actor.RaceUndead) {
			return true
		}
		if t.RaceFlags.Has(actor.RaceEvil) {
			dam /= 2
		}
		dam = t.ResistScale(p.Element, dam)

	case element.Holy:
		switch {
		case t.Alignment == actor.Evil:
			dam *= 2
		case t.Alignment == actor.Good:
			dam /= 9
		}

	case element.Confusion:
		if t.RaceFlags.Has(actor.RaceNoConf) || t.Traits.Has(actor.TraitResistConf) {
			dam /= 3
		} else {
			_, _ = t.Status.Extend(condition.Confused, s.Damroll(3, dam/2)+1)
		}
		dam = t.ResistScale(p.Element, dam)

	case element.Sound:
		if !t.Resists(element.Sound) && !t.Immune(element.Sound) {
			_, _ = t.Status.Extend(condition.Stunned, 10+s.Randint1(15))
		}
		dam = t.ResistScale(p.Element, dam)

	case element.Inertia:
		if !t.Resists(element.Inertia) && !t.Immune(element.Inertia) {
			_, _ = t.Status.Extend(condition.Slow, 10)
		}
		dam = t.ResistScale(p.Element, dam)

	case element.Missile, element.Rocket, element.Force:

	default:
		dam = t.ResistScale(p.Element, dam)
	}

	a.hurt(t, dam, p.Protect)
	return true
}

func (a *Arena) hurt(t *actor.Actor, dam int, protect bool) {
	if dam <= 0 || t.Status.Has(condition.Invulnerable) {
		return
	}
	hp := t.HP - dam
	if protect && !t.IsPlayer() && (t.Unique || t.Quest) && hp < 1 {
		hp = 1
	}
	t.SetHP(hp)
}
