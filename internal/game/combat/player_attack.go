package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/narrate"
)

const (
	// bthPlusAdj scales to-hit bonuses into melee skill.
	bthPlusAdj = 3
	// maxVampiricDrain caps the HP a vampiric weapon restores per turn.
	maxVampiricDrain = 100
	impactRadius     = 10
)

// playerSteps runs the player's weapon blows against a monster.
type playerSteps struct {
	t      *Turn
	p      *actor.Actor
	m      *actor.Actor
	tech   Technique
	blows  int
	seen   bool
	drain  int
	impact bool
}

func (t *Turn) newPlayerSteps(p, m *actor.Actor, tech Technique) *playerSteps {
	n := max(p.BlowCount, 1)
	if t.MaxPlayerBlows > 0 {
		n = min(n, t.MaxPlayerBlows)
	}
	return &playerSteps{t: t, p: p, m: m, tech: tech, blows: n, seen: t.visible(p, m)}
}

func (st *playerSteps) available(slot int) bool { return slot < st.blows }

func (st *playerSteps) rollHit(b *blow) bool {
	p, w := st.p, st.p.Weapon
	b.result.Method = actor.MethodHit
	stunToHit, _ := meleePenalty(p)
	chance := p.Skill + (w.ToHit+p.ToHit-stunToHit)*bthPlusAdj
	return TestHit(st.t.stream(), chance, st.m.AC, st.seen, p.Personality == actor.PersonalityLazy)
}

func (st *playerSteps) miss(b *blow) {
	st.t.say(narrate.Miss, st.p.Name, st.m.Name)
	if st.p.Weapon.DeathScythe {
		st.t.scytheReflect(st.p, st.tech)
	}
}

func (st *playerSteps) describe(b *blow) {
	b.touched = true
	st.t.say(narrate.MethodKey(actor.MethodHit.Info().Name), st.p.Name, st.m.Name)
}

func (st *playerSteps) rollDamage(b *blow) {
	b.weapon = WeaponBlow(st.t.stream(), st.p, st.m, st.t.Lore, st.seen, st.tech)
	b.rolled = b.weapon.Base
	b.result.Critical = b.weapon.Critical
	b.result.Vorpal = b.weapon.Vorpal
	if b.weapon.Impact {
		st.impact = true
	}
}

func (st *playerSteps) dispatch(b *blow) {
	t := st.t
	wd := b.weapon
	if wd.Critical > 0 {
		t.say(narrate.CriticalKey(int(wd.Critical)))
	}
	if wd.Vorpal > 0 {
		if wd.Total > st.m.HP {
			t.say(narrate.VorpalHalf, st.p.Name, st.m.Name)
		} else {
			t.say(narrate.VorpalKey(wd.Vorpal), st.p.Name, st.m.Name)
		}
	}
	b.effect = EffectResult{Damage: wd.Total, Obvious: true}
	b.result.Obvious = true
}

func (st *playerSteps) applyDamage(b *blow) {
	b.result.Damage = st.t.hurtMonster(st.m, b.effect.Damage, false)
}

func (st *playerSteps) applyStatus(b *blow) {
	if st.m.HP <= 0 {
		return
	}
	st.vampiric(b)
	st.confusingTouch()
}

// vampiric heals the wielder from a living target, up to the per-turn cap.
func (st *playerSteps) vampiric(b *blow) {
	t, p := st.t, st.p
	d := b.weapon.Drain
	if !p.Weapon.Vampiric || d <= 5 || !st.m.Living() || st.drain >= maxVampiricDrain {
		return
	}
	heal := min(t.stream().Damroll(2, d/6), maxVampiricDrain-st.drain)
	st.drain += heal
	if p.Heal(heal) > 0 {
		t.say(narrate.VampHeal, p.Name)
	}
}

// confusingTouch confuses the target with glowing hands or a confusing
// weapon. The hands stop glowing after one use.
func (st *playerSteps) confusingTouch() {
	t, p, m := st.t, st.p, st.m
	touch := p.HasStatus(condition.ConfuseTouch)
	if !touch && !p.Weapon.ConfuseHit {
		return
	}
	if touch {
		p.Status.Remove(condition.ConfuseTouch)
		t.say(narrate.HandsStop, p.Name)
	}
	if m.RaceFlags.Has(actor.RaceNoConf) {
		t.learnFlags(m, actor.RaceNoConf)
		t.say(narrate.Unaffected, m.Name)
		return
	}
	if t.stream().Randint0(100) < m.Level {
		t.say(narrate.Unaffected, m.Name)
		return
	}
	if _, err := m.Status.Extend(condition.Confused, 10+t.stream().Randint0(p.Level)/5); err != nil {
		t.logger().Warn("confusing touch", zap.Error(err))
		return
	}
	t.say(narrate.Confused, m.Name)
}

func (st *playerSteps) checkDeath(b *blow) {
	st.t.checkDead(st.m, st.p)
}

func (st *playerSteps) counter(b *blow) {
	if st.m.Dead || st.p.Dead {
		return
	}
	st.t.monsterAurasBurnPlayer(st.m, st.p)
}

func (st *playerSteps) done(b *blow) {}

// playerAttack runs the player's blows against the monster m. An afraid
// player does not attack at all. An impact weapon that shook the ground
// quakes once the blows are done.
func (t *Turn) playerAttack(p, m *actor.Actor, tech Technique) *sequence {
	st := t.newPlayerSteps(p, m, tech)
	q := newSequence(st, p, m)
	if p.HasStatus(condition.Afraid) {
		t.say(narrate.TooAfraid, p.Name, m.Name)
		q.enter(AttackerGone)
		q.end = AttackerGone
		return q
	}
	q.run()
	if st.impact && !p.Dead {
		t.quake(p.Pos, impactRadius, p, narrate.ImpactQuake)
	}
	if t.frightened[m.ID] && !m.Dead {
		t.say(narrate.Flees, m.Name)
	}
	return q
}
