package arena_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/arena"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/testutil"
)

func newArena(t *testing.T, w, h int) *arena.Arena {
	t.Helper()
	a, err := arena.New(w, h, actor.NewRegistry(testutil.Conditions), nil)
	require.NoError(t, err)
	return a
}

func place(t *testing.T, a *arena.Arena, x *actor.Actor, p actor.Pos) *actor.Actor {
	t.Helper()
	x.Pos = p
	require.NoError(t, a.Actors().Add(x))
	return x
}

func TestNew_RejectsBadSize(t *testing.T) {
	_, err := arena.New(0, 5, actor.NewRegistry(testutil.Conditions), nil)
	assert.Error(t, err)
	_, err = arena.New(5, 5, nil, nil)
	assert.Error(t, err)
}

func TestTerrainAndPassable(t *testing.T) {
	a := newArena(t, 5, 5)
	p := actor.Pos{X: 2, Y: 2}
	assert.True(t, a.Passable(p))
	require.NoError(t, a.SetTerrain(p, arena.Rubble))
	assert.Equal(t, arena.Rubble, a.Terrain(p))
	assert.False(t, a.Passable(p))
	require.NoError(t, a.SetTerrain(p, arena.Floor))
	assert.True(t, a.Passable(p))

	assert.Equal(t, arena.Wall, a.Terrain(actor.Pos{X: -1}))
	assert.Error(t, a.SetTerrain(actor.Pos{X: 9}, arena.Wall))

	place(t, a, testutil.Monster("m"), p)
	assert.False(t, a.Passable(p))
}

func TestFloorItems(t *testing.T) {
	a := newArena(t, 5, 5)
	p := actor.Pos{X: 1, Y: 1}
	a.Drop(p, actor.Item{InstanceID: "i1", ID: "ration", Quantity: 1})
	a.Drop(p, actor.Item{InstanceID: "i2", ID: "torch", Quantity: 1})

	items := a.ItemsAt(p)
	require.Len(t, items, 2)
	items[0].InstanceID = "mutated"
	assert.Equal(t, "i1", a.ItemsAt(p)[0].InstanceID)

	got, ok := a.Pickup(p, "i1")
	require.True(t, ok)
	assert.Equal(t, "ration", got.ID)
	_, ok = a.Pickup(p, "i1")
	assert.False(t, ok)

	all := a.PickupAll(p)
	assert.Len(t, all, 1)
	assert.Empty(t, a.ItemsAt(p))
	assert.NotNil(t, a.PickupAll(p))
}

func TestProject_EmptyTargetSet(t *testing.T) {
	a := newArena(t, 10, 10)
	s := testutil.Fixed(0)
	hit := a.Project(s, arena.Projection{Origin: actor.Pos{X: 5, Y: 5}, Radius: 3, Damage: 50, Element: element.Fire})
	assert.False(t, hit)
	assert.Zero(t, s.Draws())
}

func TestProject_FilterExcludes(t *testing.T) {
	a := newArena(t, 10, 10)
	m := place(t, a, testutil.Monster("m"), actor.Pos{X: 1, Y: 1})
	hit := a.Project(testutil.Fixed(0), arena.Projection{
		Origin: m.Pos, Damage: 10, Element: element.Missile,
		Filter: func(x *actor.Actor) bool { return x.ID != "m" },
	})
	assert.False(t, hit)
	assert.Equal(t, 100, m.HP)
}

func TestProject_MonsterResistances(t *testing.T) {
	cases := []struct {
		name  string
		setup func(*actor.Actor)
		want  int
	}{
		{"plain", func(*actor.Actor) {}, 90},
		{"immune", func(m *actor.Actor) { m.Resist.Immune = actor.Elements(element.Fire) }, 99},
		{"resist", func(m *actor.Actor) { m.Resist.Resist = actor.Elements(element.Fire) }, 97},
		{"hurt", func(m *actor.Actor) { m.RaceFlags = actor.RaceHurtFire }, 80},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := newArena(t, 5, 5)
			m := place(t, a, testutil.Monster("m"), actor.Pos{})
			tc.setup(m)
			assert.True(t, a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 10, Element: element.Fire}))
			assert.Equal(t, tc.want, m.HP)
		})
	}
}

func TestProject_PlayerResistances(t *testing.T) {
	a := newArena(t, 5, 5)
	p := place(t, a, testutil.Player("p"), actor.Pos{})
	p.Resist.Resist = actor.Elements(element.Cold)
	require.NoError(t, p.Status.Apply(condition.OpposeCold, 10))
	a.Project(testutil.Fixed(0), arena.Projection{Origin: p.Pos, Damage: 30, Element: element.Cold})
	assert.Equal(t, 300-4, p.HP)

	p.Resist.Immune = actor.Elements(element.Acid)
	a.Project(testutil.Fixed(0), arena.Projection{Origin: p.Pos, Damage: 30, Element: element.Acid})
	assert.Equal(t, 296, p.HP)
}

func TestProject_NetherSparesUndead(t *testing.T) {
	a := newArena(t, 5, 5)
	m := place(t, a, testutil.Monster("m"), actor.Pos{})
	m.RaceFlags = actor.RaceUndead
	assert.True(t, a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 40, Element: element.Nether}))
	assert.Equal(t, 100, m.HP)
}

func TestProject_ProtectFloorsUniques(t *testing.T) {
	a := newArena(t, 5, 5)
	m := place(t, a, testutil.Monster("boss"), actor.Pos{})
	m.Unique = true
	a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 500, Element: element.Missile, Protect: true})
	assert.Equal(t, 1, m.HP)
	a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 500, Element: element.Missile})
	assert.Equal(t, 0, m.HP)
}

func TestProject_TurnAllAndSleep(t *testing.T) {
	a := newArena(t, 5, 5)
	m := place(t, a, testutil.Monster("m"), actor.Pos{})
	m.Level = 1
	// a level 1 monster never saves; fear lasts damroll(3, 10)+1 on maximal draws
	a.Project(testutil.Fixed(99), arena.Projection{Origin: m.Pos, Damage: 20, Element: element.TurnAll})
	assert.Equal(t, 31, m.Status.Value(condition.Afraid))
	assert.Equal(t, 100, m.HP)

	a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 20, Element: element.OldSleep})
	assert.True(t, m.Status.Has(condition.Asleep))

	m2 := place(t, a, testutil.Monster("fearless"), actor.Pos{X: 3})
	m2.RaceFlags = actor.RaceNoFear | actor.RaceNoSleep
	a.Project(testutil.Fixed(0), arena.Projection{Origin: m2.Pos, Damage: 20, Element: element.TurnAll})
	a.Project(testutil.Fixed(0), arena.Projection{Origin: m2.Pos, Damage: 20, Element: element.OldSleep})
	assert.False(t, m2.Status.Has(condition.Afraid))
	assert.False(t, m2.Status.Has(condition.Asleep))
}

func TestProject_OldDrainSkipsNonliving(t *testing.T) {
	a := newArena(t, 5, 5)
	m := place(t, a, testutil.Monster("golem"), actor.Pos{})
	m.RaceFlags = actor.RaceNonliving
	a.Project(testutil.Fixed(0), arena.Projection{Origin: m.Pos, Damage: 30, Element: element.OldDrain})
	assert.Equal(t, 100, m.HP)
}

func TestProject_RadiusSelectsTargets(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a, err := arena.New(20, 20, actor.NewRegistry(testutil.Conditions), nil)
		require.NoError(rt, err)
		x := rapid.IntRange(0, 19).Draw(rt, "x")
		radius := rapid.IntRange(0, 5).Draw(rt, "radius")
		m := testutil.Monster("m")
		m.Pos = actor.Pos{X: x, Y: 0}
		require.NoError(rt, a.Actors().Add(m))
		hit := a.Project(testutil.Fixed(0), arena.Projection{Origin: actor.Pos{}, Radius: radius, Damage: 1, Element: element.Missile})
		assert.Equal(rt, x <= radius, hit)
	})
}

func TestEarthquake_SparesCauseAndCenter(t *testing.T) {
	a := newArena(t, 9, 9)
	cause := place(t, a, testutil.Monster("cause"), actor.Pos{X: 4, Y: 4})
	victim := place(t, a, testutil.Monster("victim"), actor.Pos{X: 5, Y: 4})
	// every grid damaged, every rubble roll succeeds, every damage die max
	hit := a.Earthquake(testutil.Fixed(0), cause.Pos, 2, cause)
	assert.True(t, hit)
	assert.Equal(t, 100, cause.HP)
	assert.Equal(t, 100-4, victim.HP)
	assert.Equal(t, arena.Rubble, a.Terrain(actor.Pos{X: 3, Y: 3}))
	assert.Equal(t, arena.Floor, a.Terrain(cause.Pos))
}

func TestEarthquake_NothingDamaged(t *testing.T) {
	a := newArena(t, 9, 9)
	assert.False(t, a.Earthquake(testutil.Fixed(99), actor.Pos{X: 4, Y: 4}, 2, nil))
}

func TestTeleportAway(t *testing.T) {
	a := newArena(t, 30, 30)
	m := place(t, a, testutil.Monster("thief"), actor.Pos{X: 15, Y: 15})
	require.True(t, a.TeleportAway(testutil.Seeded(7), m, 10))
	d := m.Pos.Distance(actor.Pos{X: 15, Y: 15})
	assert.GreaterOrEqual(t, d, 3)
	assert.LessOrEqual(t, d, 10)
	got, ok := a.Actors().At(m.Pos)
	require.True(t, ok)
	assert.Same(t, m, got)
}

func TestTeleportAway_NoRoom(t *testing.T) {
	a := newArena(t, 1, 1)
	m := place(t, a, testutil.Monster("thief"), actor.Pos{})
	assert.False(t, a.TeleportAway(testutil.Seeded(7), m, 10))
	assert.Equal(t, actor.Pos{}, m.Pos)
}

func TestBlocked(t *testing.T) {
	a := newArena(t, 5, 5)
	p := testutil.Player("p")
	m := testutil.Monster("m")
	assert.False(t, a.Blocked(p, m))
	p.Traits |= actor.TraitAntiTeleport
	assert.True(t, a.Blocked(p, m))
	m.Unique = true
	assert.False(t, a.Blocked(p, m))
}
