package combat_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/lore"
	"github.com/cory-johannsen/delve/internal/narrate"
	"github.com/cory-johannsen/delve/internal/testutil"
)

// recorder captures narrative keys in order.
type recorder struct {
	mu   sync.Mutex
	keys []narrate.Key
}

func (r *recorder) Say(key narrate.Key, _ ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, key)
}

func (r *recorder) said(key narrate.Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, k := range r.keys {
		if k == key {
			return true
		}
	}
	return false
}

// deaths counts death hook calls per victim.
type deaths struct {
	calls map[string]int
}

func (d *deaths) OnDeath(_ *dice.Stream, victim, _ *actor.Actor) {
	if d.calls == nil {
		d.calls = make(map[string]int)
	}
	d.calls[victim.ID]++
}

// displacer is a scripted Displacer.
type displacer struct {
	blocked bool
	moved   []string
}

func (d *displacer) TeleportAway(_ *dice.Stream, a *actor.Actor, _ int) bool {
	d.moved = append(d.moved, a.ID)
	return true
}

func (d *displacer) Blocked(_, _ *actor.Actor) bool { return d.blocked }

// projector deals each projection's damage to every living actor the
// projection selects, ignoring element and radius. When shove names an
// actor, the first projection also moves it out of reach.
type projector struct {
	reg   *actor.Registry
	shove string
	calls int
}

func (p *projector) Project(_ *dice.Stream, pr arena.Projection) bool {
	p.calls++
	hit := false
	for _, a := range p.reg.All() {
		if a.Dead || (pr.Filter != nil && !pr.Filter(a)) {
			continue
		}
		a.SetHP(a.HP - pr.Damage)
		hit = true
	}
	if p.shove != "" && p.calls == 1 {
		_ = p.reg.Move(p.shove, actor.Pos{X: 9, Y: 9})
	}
	return hit
}

// fight is a registry of actors and an engine wired to observe them.
type fight struct {
	reg    *actor.Registry
	lore   *lore.Store
	msgs   *recorder
	deaths *deaths
	moves  *displacer
	engine *combat.Engine
}

type fightOption func(*combat.Deps, *combat.Options)

func withClock(turn int) fightOption {
	return func(d *combat.Deps, _ *combat.Options) { d.Clock = func() int { return turn } }
}

func inArena() fightOption {
	return func(_ *combat.Deps, o *combat.Options) { o.ArenaBattle = true }
}

func withProjector(p *projector) fightOption {
	return func(d *combat.Deps, _ *combat.Options) {
		p.reg = d.Registry.(*actor.Registry)
		d.Projector = p
	}
}

func maxBlows(n int) fightOption {
	return func(_ *combat.Deps, o *combat.Options) { o.MaxPlayerBlows = n }
}

// newFight registers actors on consecutive grids of row 0 and builds an
// engine drawing from s.
func newFight(t *testing.T, s *dice.Stream, actors []*actor.Actor, opts ...fightOption) *fight {
	t.Helper()
	f := &fight{
		reg:    actor.NewRegistry(testutil.Conditions),
		lore:   lore.NewStore(),
		msgs:   &recorder{},
		deaths: &deaths{},
		moves:  &displacer{},
	}
	for i, a := range actors {
		a.Pos = actor.Pos{X: i, Y: 0}
		require.NoError(t, f.reg.Add(a))
	}
	deps := combat.Deps{
		Stream:    s,
		Registry:  f.reg,
		Lore:      f.lore,
		Messages:  f.msgs,
		Displacer: f.moves,
		Death:     f.deaths,
	}
	var o combat.Options
	for _, opt := range opts {
		opt(&deps, &o)
	}
	f.engine = combat.NewEngine(deps, o)
	return f
}

// ctx builds an effect context for a direct handler call.
func ctx(s *dice.Stream, attacker, target *actor.Actor, effect actor.Effect, dam int) *combat.EffectContext {
	return &combat.EffectContext{
		Turn:     &combat.Turn{Stream: s, Number: 2},
		Attacker: attacker,
		Target:   target,
		Blow:     testutil.Blow(actor.MethodHit, effect, 1, 1),
		Level:    max(attacker.Level, 1),
		Damage:   dam,
	}
}
