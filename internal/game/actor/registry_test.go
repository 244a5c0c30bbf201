package actor_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
)

func newRegistry(t *testing.T) (*actor.Registry, *actor.Race) {
	t.Helper()
	r, err := actor.LoadRaceFromBytes([]byte(orcYAML))
	require.NoError(t, err)
	return actor.NewRegistry(condition.DefaultRegistry()), r
}

func TestRegistry_SpawnGetRemove(t *testing.T) {
	reg, race := newRegistry(t)
	m, err := reg.Spawn(race, actor.Pos{X: 1, Y: 1})
	require.NoError(t, err)

	got, ok := reg.Get(m.ID)
	require.True(t, ok)
	assert.Same(t, m, got)

	at, ok := reg.At(actor.Pos{X: 1, Y: 1})
	require.True(t, ok)
	assert.Same(t, m, at)

	require.NoError(t, reg.Remove(m.ID))
	_, ok = reg.Get(m.ID)
	assert.False(t, ok)
	_, ok = reg.At(actor.Pos{X: 1, Y: 1})
	assert.False(t, ok)
	assert.Error(t, reg.Remove(m.ID))
}

func TestRegistry_OccupiedGrid(t *testing.T) {
	reg, race := newRegistry(t)
	_, err := reg.Spawn(race, actor.Pos{})
	require.NoError(t, err)
	_, err = reg.Spawn(race, actor.Pos{})
	assert.Error(t, err)
}

func TestRegistry_Move(t *testing.T) {
	reg, race := newRegistry(t)
	a, err := reg.Spawn(race, actor.Pos{X: 0, Y: 0})
	require.NoError(t, err)
	b, err := reg.Spawn(race, actor.Pos{X: 2, Y: 0})
	require.NoError(t, err)

	assert.Error(t, reg.Move(a.ID, b.Pos))
	require.NoError(t, reg.Move(a.ID, actor.Pos{X: 5, Y: 5}))
	assert.Equal(t, actor.Pos{X: 5, Y: 5}, a.Pos)
	_, ok := reg.At(actor.Pos{})
	assert.False(t, ok)
	assert.Error(t, reg.Move("ghost", actor.Pos{}))
}

func TestRegistry_WithinAndAll(t *testing.T) {
	reg, race := newRegistry(t)
	for x := 0; x < 5; x++ {
		_, err := reg.Spawn(race, actor.Pos{X: x * 2})
		require.NoError(t, err)
	}
	assert.Len(t, reg.All(), 5)
	near := reg.Within(actor.Pos{}, 3)
	assert.Len(t, near, 2)
	assert.Empty(t, reg.Within(actor.Pos{X: 100}, 0))
}

func TestRegistry_Visible(t *testing.T) {
	reg, _ := newRegistry(t)
	conds := condition.DefaultRegistry()
	observer := &actor.Actor{ID: "p", Status: condition.NewActiveSet(conds)}
	ghost := &actor.Actor{ID: "g", RaceFlags: actor.RaceInvisible, Status: condition.NewActiveSet(conds)}
	plain := &actor.Actor{ID: "o", Status: condition.NewActiveSet(conds)}

	assert.True(t, reg.Visible(observer, plain))
	assert.False(t, reg.Visible(observer, ghost))
	observer.Traits |= actor.TraitSeeInvisible
	assert.True(t, reg.Visible(observer, ghost))
	require.NoError(t, observer.Status.Apply(condition.Blind, 5))
	assert.False(t, reg.Visible(observer, plain))
}

func TestRegistry_ConcurrentSpawn(t *testing.T) {
	reg, race := newRegistry(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = reg.Spawn(race, actor.Pos{X: i})
		}(i)
	}
	wg.Wait()
	assert.Len(t, reg.All(), 20)
}
