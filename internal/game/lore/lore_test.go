package lore_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/game/lore"
)

func TestRecordBlow_HarmlessUnknownBlowStaysHidden(t *testing.T) {
	s := lore.NewStore()
	assert.False(t, s.RecordBlow("thief", 0, false, 0))
	assert.Zero(t, s.BlowCount("thief", 0))
}

func TestRecordBlow_WellKnownBlowCountsWhenHarmless(t *testing.T) {
	s := lore.NewStore()
	for i := 0; i < 11; i++ {
		require.True(t, s.RecordBlow("thief", 1, false, 1))
	}
	assert.Equal(t, 11, s.BlowCount("thief", 1))
	assert.True(t, s.RecordBlow("thief", 1, false, 0))
	assert.Equal(t, 12, s.BlowCount("thief", 1))
}

func TestRecordBlow_ExactlyTenIsNotEnough(t *testing.T) {
	s := lore.NewStore()
	for i := 0; i < 10; i++ {
		s.RecordBlow("thief", 2, true, 0)
	}
	assert.False(t, s.RecordBlow("thief", 2, false, 0))
	assert.Equal(t, 10, s.BlowCount("thief", 2))
}

func TestRecordBlow_Caps(t *testing.T) {
	s := lore.NewStore()
	for i := 0; i < lore.MaxBlowCount+10; i++ {
		s.RecordBlow("x", 0, true, 0)
	}
	assert.Equal(t, lore.MaxBlowCount, s.BlowCount("x", 0))
}

func TestRecordBlow_Policy(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := lore.NewStore()
		seed := rapid.IntRange(0, 20).Draw(rt, "seed")
		for i := 0; i < seed; i++ {
			s.RecordBlow("r", 0, true, 0)
		}
		obvious := rapid.Bool().Draw(rt, "obvious")
		damage := rapid.IntRange(0, 5).Draw(rt, "damage")
		before := s.BlowCount("r", 0)
		changed := s.RecordBlow("r", 0, obvious, damage)
		want := obvious || damage > 0 || before > lore.ObviousThreshold
		assert.Equal(rt, want, changed)
	})
}

func TestLearn(t *testing.T) {
	s := lore.NewStore()
	_, ok := s.Get("dragon")
	assert.False(t, ok)

	s.LearnFlags("dragon", actor.RaceDragon|actor.RaceEvil)
	s.LearnImmunity("dragon", element.Fire)
	s.LearnAura("dragon", actor.AuraFire)
	s.RecordKill("dragon")
	s.RecordDeath("dragon")
	s.RecordSighting("dragon")

	e, ok := s.Get("dragon")
	require.True(t, ok)
	assert.True(t, e.Flags.Has(actor.RaceDragon))
	assert.True(t, e.Immune.Has(element.Fire))
	assert.True(t, e.Auras.Has(actor.AuraFire))
	assert.Equal(t, 1, e.Kills)
	assert.Equal(t, 1, e.Deaths)
	assert.Equal(t, 1, e.Sightings)
}

func TestStore_Concurrent(t *testing.T) {
	s := lore.NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.RecordBlow("r", 3, true, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.BlowCount("r", 3))
}
