package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/testutil"
)

func TestCriticalBand(t *testing.T) {
	cases := []struct {
		k        int
		wantDam  int
		wantTier combat.CriticalTier
	}{
		{k: 1, wantDam: 25, wantTier: 1},
		{k: 350, wantDam: 25, wantTier: 1},
		{k: 400, wantDam: 30, wantTier: 2},
		{k: 700, wantDam: 45, wantTier: 3},
		{k: 900, wantDam: 50, wantTier: 4},
		{k: 1300, wantDam: 60, wantTier: 5},
	}
	for _, tc := range cases {
		dam, tier := combat.CriticalBand(tc.k, 10)
		assert.Equal(t, tc.wantDam, dam, "k=%d", tc.k)
		assert.Equal(t, tc.wantTier, tier, "k=%d", tc.k)
	}
}

func TestCriticalBand_NeverReducesDamage(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		k := rapid.IntRange(0, 3000).Draw(rt, "k")
		dam := rapid.IntRange(0, 500).Draw(rt, "dam")
		got, tier := combat.CriticalBand(k, dam)
		if got < 2*dam+5 || tier < 1 || tier > 5 {
			rt.Fatalf("CriticalBand(%d, %d) = %d tier %d", k, dam, got, tier)
		}
	})
}

func TestCriticalNorm(t *testing.T) {
	t.Run("roll above power leaves damage alone", func(t *testing.T) {
		dam, tier := combat.CriticalNorm(testutil.Fixed(4999), 100, 0, 12, 0, 100, actor.ClassWarrior, combat.TechniqueNone)
		assert.Equal(t, 12, dam)
		assert.Zero(t, tier)
	})
	t.Run("lowest severity lands in the first band", func(t *testing.T) {
		dam, tier := combat.CriticalNorm(testutil.Fixed(0), 100, 0, 12, 0, 100, actor.ClassWarrior, combat.TechniqueNone)
		assert.Equal(t, 29, dam)
		assert.Equal(t, combat.CriticalTier(1), tier)
	})
	t.Run("sure-strike techniques always critical and roll twice", func(t *testing.T) {
		src := testutil.Script(4999, 649, 649)
		dam, tier := combat.CriticalNorm(src.Stream(), 100, 0, 10, 0, 0, actor.ClassWarrior, combat.TechniqueMajin)
		// k = 100 + 650 + 650
		assert.Equal(t, 60, dam)
		assert.Equal(t, combat.CriticalTier(5), tier)
		assert.Equal(t, 3, src.Consumed())
	})
	t.Run("ninjas critical more often", func(t *testing.T) {
		// Ninjas roll 1d4444 against the same power.
		_, tier := combat.CriticalNorm(testutil.Fixed(4443), 100, 0, 10, 0, 0, actor.ClassNinja, combat.TechniqueNone)
		assert.Zero(t, tier)
		_, tier = combat.CriticalNorm(testutil.Script(99).Stream(), 100, 0, 10, 0, 0, actor.ClassNinja, combat.TechniqueNone)
		assert.NotZero(t, tier)
	})
}

func TestCalcMonsterCritical_SmallBlowNeedsNearMaximum(t *testing.T) {
	// 3d6 rolling 10 is well below 19/20 of 18.
	assert.Zero(t, combat.CalcMonsterCritical(testutil.Fixed(0), 3, 6, 10))
	// 3d6 rolling 18 ranks when the d100 roll is under the damage.
	assert.Equal(t, 2, combat.CalcMonsterCritical(testutil.Fixed(0), 3, 6, 18))
	assert.Zero(t, combat.CalcMonsterCritical(testutil.Fixed(18), 3, 6, 18))
}

func TestCalcMonsterCritical_LargeBlowsAlwaysRank(t *testing.T) {
	assert.Equal(t, 3, combat.CalcMonsterCritical(testutil.Fixed(99), 10, 10, 20))
	assert.Equal(t, 6, combat.CalcMonsterCritical(testutil.Fixed(99), 10, 10, 46))
	// A maximum roll of 40 or more adds one rank.
	assert.Equal(t, 6, combat.CalcMonsterCritical(testutil.Fixed(99), 4, 10, 40))
	// Every 2% roll adds another, up to the cap.
	assert.Equal(t, combat.MaxRank, combat.CalcMonsterCritical(testutil.Fixed(0), 10, 10, 60))
}

func TestCalcMonsterCritical_Monotone(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		count := rapid.IntRange(1, 20).Draw(rt, "count")
		sides := rapid.IntRange(1, 20).Draw(rt, "sides")
		lo := rapid.IntRange(0, count*sides).Draw(rt, "lo")
		hi := rapid.IntRange(lo, count*sides).Draw(rt, "hi")
		a := combat.CalcMonsterCritical(testutil.Seeded(seed), count, sides, lo)
		b := combat.CalcMonsterCritical(testutil.Seeded(seed), count, sides, hi)
		if a > b {
			rt.Fatalf("rank(%d)=%d > rank(%d)=%d for %dd%d", lo, a, hi, b, count, sides)
		}
		if b < 0 || b > combat.MaxRank {
			rt.Fatalf("rank %d out of range", b)
		}
	})
}

func TestRankTables(t *testing.T) {
	assert.Zero(t, combat.CutForRank(testutil.Fixed(0), 0))
	assert.Equal(t, 21, combat.CutForRank(testutil.Fixed(0), 3))
	assert.Equal(t, 500, combat.CutForRank(testutil.Fixed(0), combat.MaxRank))
	assert.Equal(t, 150, combat.StunForRank(testutil.Fixed(0), 99))
	assert.Equal(t, 11, combat.StunForRank(testutil.Fixed(0), 2))
}
