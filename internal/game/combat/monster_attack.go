package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// protEvilRoll is the threshold randint0(100)+level must beat for
// protection from evil to repel a blow.
const protEvilRoll = 50

// monsterSteps runs a monster's innate blows against the player or another
// monster.
type monsterSteps struct {
	t        *Turn
	attacker *actor.Actor
	target   *actor.Actor
	level    int
	vsPlayer bool
	// seen is whether the player watches the attacker; only watched blows
	// teach lore.
	seen bool

	blinked bool
	taken   int
}

func newMonsterSteps(t *Turn, attacker, target *actor.Actor) *monsterSteps {
	st := &monsterSteps{
		t:        t,
		attacker: attacker,
		target:   target,
		level:    max(attacker.Level, 1),
		vsPlayer: target.IsPlayer(),
	}
	st.seen = st.vsPlayer && t.visible(target, attacker)
	return st
}

func (st *monsterSteps) available(slot int) bool {
	return slot < actor.MaxBlows && !st.attacker.Blows[slot].Empty()
}

func (st *monsterSteps) rollHit(b *blow) bool {
	b.desc = st.attacker.Blows[b.result.Slot]
	b.result.Method = b.desc.Method
	b.result.Effect = b.desc.Effect
	if b.desc.Effect == actor.EffectNone {
		return true
	}
	t := st.t
	info := InfoFor(b.desc.Effect)
	if !TestHitOn(t.stream(), info.Power, st.level, st.target.AC, st.attacker.HasStatus(condition.Stunned)) {
		return false
	}
	if st.vsPlayer && st.repelled() {
		if st.seen {
			t.learnFlags(st.attacker, actor.RaceEvil)
		}
		t.say(narrate.Repelled, st.attacker.Name)
		b.result.Repelled = true
		return false
	}
	return true
}

// repelled reports whether protection from evil turns the blow aside.
func (st *monsterSteps) repelled() bool {
	p := st.target
	return p.HasStatus(condition.ProtEvil) &&
		st.attacker.Alignment == actor.Evil &&
		p.Level >= st.level &&
		st.t.stream().Randint0(100)+p.Level > protEvilRoll
}

func (st *monsterSteps) miss(b *blow) {
	if b.result.Repelled {
		return
	}
	if b.desc.Method.Info().Contact && (st.seen || !st.vsPlayer) {
		b.result.Obvious = true
		st.t.say(narrate.Miss, st.attacker.Name, st.target.Name)
	}
}

func (st *monsterSteps) describe(b *blow) {
	info := b.desc.Method.Info()
	b.touched = info.Contact
	b.explode = info.Explode
	st.t.say(narrate.MethodKey(info.Name), st.attacker.Name, st.target.Name)
}

func (st *monsterSteps) rollDamage(b *blow) {
	b.rolled = st.t.stream().Damroll(b.desc.Dice.Count, b.desc.Dice.Sides)
}

func (st *monsterSteps) dispatch(b *blow) {
	b.ctx = &EffectContext{
		Turn:     st.t,
		Attacker: st.attacker,
		Target:   st.target,
		Blow:     b.desc,
		Slot:     b.result.Slot,
		Level:    st.level,
		Damage:   b.rolled,
		Explode:  b.explode,
	}
	b.effect = Dispatch(b.ctx)
	b.result.Obvious = b.result.Obvious || b.effect.Obvious
	b.result.Resisted = b.effect.Resisted
}

func (st *monsterSteps) applyDamage(b *blow) {
	t := st.t
	if st.vsPlayer {
		lost := t.hurtPlayer(st.target, b.effect.Damage, b.effect.Force)
		b.result.Damage = lost
		st.taken += lost
		return
	}
	if b.effect.Element == element.None || b.explode {
		return
	}
	b.result.Damage = t.projectAt(st.attacker, st.target, b.effect.Element, b.effect.Damage)
}

func (st *monsterSteps) applyStatus(b *blow) {
	if b.effect.Status != nil && !(st.vsPlayer && st.target.HP <= 0) {
		if b.effect.Status(b.ctx) {
			b.result.Obvious = true
		}
	}
	if b.ctx.Blinked {
		st.blinked = true
	}
	if st.vsPlayer && st.target.HP > 0 {
		st.woundPlayer(b)
	}
}

// woundPlayer applies the cut or stun a cutting or stunning method inflicts.
// When both apply a coin flip keeps one; the rank grows with the damage.
func (st *monsterSteps) woundPlayer(b *blow) {
	t := st.t
	s := t.stream()
	info := b.desc.Method.Info()
	cut, stun := info.Cut && !b.effect.NoCut, info.Stun
	if cut && stun {
		if s.Randint0(100) < 50 {
			cut = false
		} else {
			stun = false
		}
	}
	p := st.target
	if cut {
		rank := CalcMonsterCritical(s, b.desc.Dice.Count, b.desc.Dice.Sides, b.effect.Damage)
		if n := CutForRank(s, rank); n > 0 {
			if changed, err := p.Status.Extend(condition.Cut, n); err == nil && changed {
				t.say(narrate.Cut, p.Name)
			}
		}
	}
	if stun {
		rank := CalcMonsterCritical(s, b.desc.Dice.Count, b.desc.Dice.Sides, b.effect.Damage)
		if n := StunForRank(s, rank); n > 0 {
			if changed, err := p.Status.Extend(condition.Stunned, n); err == nil && changed {
				t.say(narrate.Stun, p.Name)
			}
		}
	}
}

func (st *monsterSteps) checkDeath(b *blow) {
	t := st.t
	t.checkDead(st.target, st.attacker)
	if b.explode && !st.attacker.Dead {
		t.say(narrate.Explodes, st.attacker.Name)
		st.blinked = false
		before := st.target.HP
		t.kill(st.attacker, st.attacker)
		// The corpse burst is this blow's damage to the target.
		if lost := before - st.target.HP; lost > 0 {
			b.result.Damage += lost
		}
	}
}

func (st *monsterSteps) counter(b *blow) {
	if !b.touched || st.attacker.Dead || st.target.Dead {
		return
	}
	if st.vsPlayer {
		st.t.playerAurasStrike(st.target, st.attacker)
		return
	}
	st.t.monsterAurasStrike(st.target, st.attacker)
}

func (st *monsterSteps) done(b *blow) {
	t := st.t
	if !st.seen || b.result.Repelled || t.Lore == nil {
		return
	}
	t.Lore.RecordBlow(raceID(st.attacker), b.result.Slot, b.result.Obvious, b.effect.Damage)
}

// projectAt delivers dam of el from source to victim alone and returns the
// HP victim lost. A monster victim's morale follows the loss. Without a
// projector the raw elemental damage is applied directly.
func (t *Turn) projectAt(source, victim *actor.Actor, el element.Element, dam int) int {
	if t.Projector == nil {
		return t.hurt(victim, victim.ResistScale(el, dam), t.protectMonsters())
	}
	before := victim.HP
	wasAfraid := victim.HasStatus(condition.Afraid)
	t.Projector.Project(t.stream(), arena.Projection{
		Source:  source,
		Origin:  victim.Pos,
		Damage:  dam,
		Element: el,
		Filter:  func(a *actor.Actor) bool { return a.ID == victim.ID },
		Protect: t.protectMonsters(),
	})
	lost := before - victim.HP
	if !victim.IsPlayer() && victim.HP > 0 && lost > 0 {
		t.morale(victim, lost)
	}
	if !wasAfraid && victim.HasStatus(condition.Afraid) {
		t.frighten(victim)
	}
	return lost
}

// thiefFlight teleports a thief that stole something away from its victim,
// unless the victim's ward holds it in place.
func (t *Turn) thiefFlight(thief, victim *actor.Actor) {
	if thief.Dead || victim.Dead {
		return
	}
	if t.Displacer == nil {
		return
	}
	if t.Displacer.Blocked(victim, thief) {
		t.say(narrate.ThiefBlocked, thief.Name)
		return
	}
	t.say(narrate.ThiefFlees, thief.Name)
	t.Displacer.TeleportAway(t.stream(), thief, thiefDistance)
}

// thiefDistance is how far a fleeing thief teleports.
const thiefDistance = 45

// monsterAttack runs the monster attacker's blows against target, player or
// monster, with the reactions that surround them.
func (t *Turn) monsterAttack(attacker, target *actor.Actor) *sequence {
	st := newMonsterSteps(t, attacker, target)
	q := newSequence(st, attacker, target)
	if st.vsPlayer && target.HasStatus(condition.IaiStance) {
		t.iaiCounter(target, attacker)
		if attacker.Dead {
			target.Status.Remove(condition.IaiStance)
			q.enter(AttackerGone)
			q.end = AttackerGone
			return q
		}
	}
	q.run()

	if st.vsPlayer {
		t.eyeForEye(target, attacker, st.taken)
	}
	if st.blinked {
		t.thiefFlight(attacker, target)
	}
	if t.frightened[attacker.ID] && !attacker.Dead && !target.Dead {
		t.say(narrate.Flees, attacker.Name)
	}
	if !st.vsPlayer && t.frightened[target.ID] && !target.Dead {
		t.say(narrate.Flees, target.Name)
	}
	if st.vsPlayer {
		target.Status.Remove(condition.IaiStance)
	}
	return q
}
