package skirmish_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/narrate"
	"github.com/cory-johannsen/delve/internal/skirmish"
	"github.com/cory-johannsen/delve/internal/testutil"
)

type lines struct {
	keys []narrate.Key
}

func (l *lines) Say(key narrate.Key, _ ...any) { l.keys = append(l.keys, key) }

func (l *lines) count(key narrate.Key) int {
	n := 0
	for _, k := range l.keys {
		if k == key {
			n++
		}
	}
	return n
}

type setup struct {
	reg   *actor.Registry
	clock *skirmish.Clock
	msgs  *lines
	sk    *skirmish.Skirmish
}

func newSetup(t *testing.T, s *dice.Stream, player *actor.Actor, monsters ...*actor.Actor) *setup {
	t.Helper()
	reg := actor.NewRegistry(testutil.Conditions)
	require.NoError(t, reg.Add(player))
	ids := make([]string, 0, len(monsters))
	for i, m := range monsters {
		m.Pos = actor.Pos{X: i + 1}
		require.NoError(t, reg.Add(m))
		ids = append(ids, m.ID)
	}
	clock := &skirmish.Clock{}
	msgs := &lines{}
	engine := combat.NewEngine(combat.Deps{
		Stream:   s,
		Registry: reg,
		Messages: msgs,
		Logger:   zaptest.NewLogger(t),
		Clock:    clock.Now,
	}, combat.Options{})
	sk, err := skirmish.New(engine, reg, clock, msgs, zaptest.NewLogger(t), player.ID, ids...)
	require.NoError(t, err)
	return &setup{reg: reg, clock: clock, msgs: msgs, sk: sk}
}

func TestNew_Rejects(t *testing.T) {
	reg := actor.NewRegistry(testutil.Conditions)
	_, err := skirmish.New(nil, reg, &skirmish.Clock{}, nil, nil, "hero", "orc")
	assert.Error(t, err)
	_, err = skirmish.New(fakeAttacker{}, reg, &skirmish.Clock{}, nil, nil, "hero")
	assert.Error(t, err)
}

func TestRun_PlayerCutsDownMonster(t *testing.T) {
	p := testutil.Player("hero")
	p.Weapon = &actor.Weapon{ID: "maul", Name: "maul", Dice: dice.D(10, 10), ToDam: 100}
	m := testutil.Monster("orc", testutil.Blow(actor.MethodHit, actor.EffectHurt, 1, 1))
	x := newSetup(t, testutil.Fixed(0), p, m)

	res, err := x.sk.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, skirmish.PlayerWon, res.Outcome)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, []string{"orc"}, res.Slain)
	assert.Equal(t, 300, res.PlayerHP, "the orc fell before it could swing")
	assert.GreaterOrEqual(t, res.Damage["hero"], 100)
	assert.Equal(t, 1, x.msgs.count(narrate.Victory))
	assert.Equal(t, 1, x.clock.Now())
}

func TestRun_MonsterKillsPlayer(t *testing.T) {
	p := testutil.Player("hero")
	m := testutil.Monster("ogre", testutil.Blow(actor.MethodHit, actor.EffectHurt, 50, 10))
	m.HP, m.MaxHP = 1000, 1000
	// 99 misses every player swing and maximises every die.
	x := newSetup(t, testutil.Fixed(99), p, m)

	res, err := x.sk.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, skirmish.PlayerDied, res.Outcome)
	assert.Equal(t, 1, res.Rounds)
	assert.Empty(t, res.Slain)
	assert.Zero(t, res.Damage["hero"])
	assert.GreaterOrEqual(t, res.Damage["ogre"], 300)
	_, ok := x.reg.Get("hero")
	assert.False(t, ok)
	assert.Equal(t, 1, x.msgs.count(narrate.Defeat))
}

func TestRun_StalemateTicksStatuses(t *testing.T) {
	p := testutil.Player("hero")
	require.NoError(t, p.Status.Apply(condition.Afraid, 10))
	m := testutil.Monster("statue")
	m.NeverBlow = true
	require.NoError(t, m.Status.Apply(condition.Confused, 2))
	x := newSetup(t, testutil.Seeded(1), p, m)

	res, err := x.sk.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, skirmish.Stalemate, res.Outcome)
	assert.Equal(t, 3, res.Rounds)
	assert.Equal(t, 300, res.PlayerHP)
	assert.Equal(t, 7, p.Status.Value(condition.Afraid))
	assert.False(t, m.HasStatus(condition.Confused))
	assert.Equal(t, 1, x.msgs.count(narrate.StatusExpires))
	assert.Equal(t, 3, x.msgs.count(narrate.RoundBegins))
	assert.Equal(t, 3, x.msgs.count(narrate.TooAfraid))
	assert.Equal(t, 1, x.msgs.count(narrate.Stalemate))
}

func TestRun_PlayerTargetsFirstStanding(t *testing.T) {
	p := testutil.Player("hero")
	a := testutil.Monster("a")
	b := testutil.Monster("b")
	reg := actor.NewRegistry(testutil.Conditions)
	require.NoError(t, reg.Add(p))
	a.Pos, b.Pos = actor.Pos{X: 1}, actor.Pos{X: 2}
	require.NoError(t, reg.Add(a))
	require.NoError(t, reg.Add(b))
	require.NoError(t, reg.Remove("a"))

	fa := &recordingAttacker{}
	sk, err := skirmish.New(fa, reg, &skirmish.Clock{}, nil, nil, "hero", "a", "b")
	require.NoError(t, err)
	res, err := sk.Run(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, skirmish.Stalemate, res.Outcome)
	assert.Equal(t, []string{"a"}, res.Slain, "an actor missing from the roster counts as slain")
	assert.Equal(t, []string{"hero>b", "b>hero", "hero>b", "b>hero"}, fa.calls)
}

func TestRun_PropagatesEngineErrors(t *testing.T) {
	reg := actor.NewRegistry(testutil.Conditions)
	require.NoError(t, reg.Add(testutil.Player("hero")))
	m := testutil.Monster("orc")
	m.Pos = actor.Pos{X: 1}
	require.NoError(t, reg.Add(m))

	boom := errors.New("boom")
	sk, err := skirmish.New(fakeAttacker{err: boom}, reg, &skirmish.Clock{}, nil, nil, "hero", "orc")
	require.NoError(t, err)
	_, err = sk.Run(context.Background(), 1)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "round 1")
}

func TestRun_HonoursCancellation(t *testing.T) {
	reg := actor.NewRegistry(testutil.Conditions)
	require.NoError(t, reg.Add(testutil.Player("hero")))
	sk, err := skirmish.New(fakeAttacker{}, reg, &skirmish.Clock{}, nil, nil, "hero", "orc")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := sk.Run(ctx, 3)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, res.Rounds)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "victory", skirmish.PlayerWon.String())
	assert.Equal(t, "defeat", skirmish.PlayerDied.String())
	assert.Equal(t, "stalemate", skirmish.Stalemate.String())
}

type fakeAttacker struct {
	err error
}

func (f fakeAttacker) ResolveAttack(context.Context, string, string, combat.Mode) (combat.AttackOutcome, error) {
	return combat.AttackOutcome{}, f.err
}

type recordingAttacker struct {
	calls []string
}

func (r *recordingAttacker) ResolveAttack(_ context.Context, a, d string, _ combat.Mode) (combat.AttackOutcome, error) {
	r.calls = append(r.calls, a+">"+d)
	return combat.AttackOutcome{}, nil
}
