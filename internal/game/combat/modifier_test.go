package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/combat"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/game/lore"
	"github.com/cory-johannsen/delve/internal/testutil"
)

func TestMultSlaying_TakesStrongest(t *testing.T) {
	m := testutil.Monster("lich")
	m.RaceFlags = actor.RaceEvil | actor.RaceUndead
	lr := lore.NewStore()

	w := &actor.Weapon{Dice: dice.D(1, 4), Slays: actor.SlayEvil | actor.SlayUndead}
	assert.Equal(t, 30, combat.MultSlaying(w, m, lr))

	w.Slays |= actor.KillEvil
	assert.Equal(t, 35, combat.MultSlaying(w, m, lr))

	e, ok := lr.Get("lich")
	require.True(t, ok)
	assert.True(t, e.Flags.Has(actor.RaceEvil))
	assert.True(t, e.Flags.Has(actor.RaceUndead))

	assert.Equal(t, 10, combat.MultSlaying(&actor.Weapon{Slays: actor.SlayDragon}, m, nil))
}

func TestMultBrand(t *testing.T) {
	w := &actor.Weapon{Brands: actor.Elements(element.Fire, element.Cold)}

	plain := testutil.Monster("orc")
	assert.Equal(t, 25, combat.MultBrand(w, plain, nil, true))

	weak := testutil.Monster("ent")
	weak.RaceFlags = actor.RaceHurtFire
	assert.Equal(t, 50, combat.MultBrand(w, weak, nil, true))

	lr := lore.NewStore()
	immune := testutil.Monster("salamander")
	immune.Resist.Immune = actor.Elements(element.Fire, element.Cold)
	assert.Equal(t, 10, combat.MultBrand(w, immune, lr, true))
	e, ok := lr.Get("salamander")
	require.True(t, ok)
	assert.True(t, e.Immune.Has(element.Fire))

	unseen := lore.NewStore()
	combat.MultBrand(w, immune, unseen, false)
	_, ok = unseen.Get("salamander")
	assert.False(t, ok, "an unperceived immunity is not learned")
}

func TestTotalMultiplier_IsMaxNotProduct(t *testing.T) {
	m := testutil.Monster("troll")
	m.RaceFlags = actor.RaceTroll | actor.RaceHurtFire
	w := &actor.Weapon{Slays: actor.KillTroll, Brands: actor.Elements(element.Fire)}
	assert.Equal(t, 50, combat.TotalMultiplier(w, m, nil, true))
	assert.Equal(t, 25, combat.ApplyMultiplier(10, 25))
	assert.Equal(t, 7, combat.ApplyMultiplier(7, 10))
}

func TestTotalMultiplier_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m := testutil.Monster("m")
		m.RaceFlags = actor.RaceFlag(rapid.Uint32().Draw(rt, "race"))
		w := &actor.Weapon{
			Slays:  actor.Slay(rapid.Uint32().Draw(rt, "slays")),
			Brands: actor.ElementSet(rapid.Uint32().Draw(rt, "brands")),
		}
		slay := combat.MultSlaying(w, m, nil)
		brand := combat.MultBrand(w, m, nil, true)
		total := combat.TotalMultiplier(w, m, nil, true)
		if total != max(slay, brand) || total < 10 || total > 50 {
			rt.Fatalf("total %d slay %d brand %d", total, slay, brand)
		}
	})
}

func TestRollVorpal(t *testing.T) {
	mult, ok := combat.RollVorpal(testutil.Fixed(0), &actor.Weapon{})
	assert.False(t, ok)
	assert.Equal(t, 1, mult)

	w := &actor.Weapon{VorpalChance: 6}
	mult, ok = combat.RollVorpal(testutil.Fixed(1), w)
	assert.False(t, ok)
	assert.Equal(t, 1, mult)

	// Trigger, two chained successes, then a failure.
	mult, ok = combat.RollVorpal(testutil.Script(0, 0, 0, 1).Stream(), w)
	assert.True(t, ok)
	assert.Equal(t, 4, mult)
}

func TestRollVorpal_Distribution(t *testing.T) {
	const rolls = 60000
	w := &actor.Weapon{VorpalChance: 4}
	s := testutil.Seeded(7)
	triggered, chained := 0, 0
	for range rolls {
		mult, ok := combat.RollVorpal(s, w)
		if !ok {
			continue
		}
		require.GreaterOrEqual(t, mult, 2)
		triggered++
		if mult > 2 {
			chained++
		}
	}
	assert.InDelta(t, 0.25, float64(triggered)/rolls, 0.02)
	assert.InDelta(t, 0.25, float64(chained)/float64(triggered), 0.03)
}

func TestWeaponBlow(t *testing.T) {
	p := testutil.Player("hero")
	p.Weapon = &actor.Weapon{ID: "blade", Dice: dice.D(2, 5), ToDam: 3, Slays: actor.SlayEvil}
	m := testutil.Monster("orc")
	m.RaceFlags = actor.RaceEvil

	// 3 + 4 = 7, doubled by the slay, no critical, then +3.
	src := testutil.Script(2, 3, 4999)
	d := combat.WeaponBlow(src.Stream(), p, m, nil, true, combat.TechniqueNone)
	assert.Equal(t, 7, d.Base)
	assert.Equal(t, 20, d.Mult)
	assert.Zero(t, d.Critical)
	assert.Equal(t, 14, d.Drain)
	assert.Equal(t, 17, d.Total)
	assert.Equal(t, 3, src.Consumed())
}

func TestWeaponBlow_CriticalThenVorpal(t *testing.T) {
	p := testutil.Player("hero")
	p.Weapon = &actor.Weapon{ID: "vorpal", Dice: dice.D(1, 10), VorpalChance: 6}
	m := testutil.Monster("orc")

	// 10, critical at 1d650=1 (2*10+5), vorpal trigger then one chain.
	src := testutil.Script(9, 0, 0, 0, 0, 1)
	d := combat.WeaponBlow(src.Stream(), p, m, nil, true, combat.TechniqueNone)
	assert.Equal(t, combat.CriticalTier(1), d.Critical)
	assert.Equal(t, 3, d.Vorpal)
	assert.Equal(t, 75, d.Total)
}

func TestWeaponBlow_StunReducesDamage(t *testing.T) {
	p := testutil.Player("hero")
	require.NoError(t, p.Status.Apply(condition.Stunned, 10))
	d := combat.WeaponBlow(testutil.Script(0, 4999).Stream(), p, testutil.Monster("m"), nil, true, combat.TechniqueNone)
	assert.Equal(t, 1, d.Base)
	assert.Zero(t, d.Total, "the stun penalty floors at zero")
}
