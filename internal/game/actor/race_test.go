package actor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
)

const orcYAML = `
id: cave_orc
name: Cave orc
level: 7
max_hp: 33
ac: 36
flags: [orc, evil]
vulnerable: [fire]
blows:
  - {method: hit, effect: hurt, dice: 1d8}
  - {method: hit, effect: hurt, dice: 1d8}
loot:
  gold: {min: 5, max: 40}
  items:
    - {item: ration, kind: food, chance: 0.5, min_qty: 1, max_qty: 2}
`

func TestLoadRaceFromBytes_ResolvesFlags(t *testing.T) {
	r, err := actor.LoadRaceFromBytes([]byte(orcYAML))
	require.NoError(t, err)
	assert.Equal(t, "cave_orc", r.ID)
	assert.True(t, r.RaceFlags().Has(actor.RaceOrc))
	assert.True(t, r.RaceFlags().Has(actor.RaceEvil))
	require.Len(t, r.Blows, 2)
	assert.Equal(t, actor.MethodHit, r.Blows[0].Method)
	assert.Equal(t, actor.EffectHurt, r.Blows[0].Effect)
	assert.Equal(t, dice.D(1, 8), r.Blows[0].Dice)
}

func TestLoadRaceFromBytes_Rejects(t *testing.T) {
	cases := map[string]string{
		"no id":         "name: x\nlevel: 1\nmax_hp: 1\n",
		"bad level":     "id: x\nname: x\nlevel: 0\nmax_hp: 1\n",
		"bad flag":      "id: x\nname: x\nlevel: 1\nmax_hp: 1\nflags: [wizardly]\n",
		"bad effect":    "id: x\nname: x\nlevel: 1\nmax_hp: 1\nblows: [{method: hit, effect: tickle, dice: 1d2}]\n",
		"bad method":    "id: x\nname: x\nlevel: 1\nmax_hp: 1\nblows: [{method: hug, effect: hurt, dice: 1d2}]\n",
		"bad element":   "id: x\nname: x\nlevel: 1\nmax_hp: 1\nimmune: [plasma_x]\n",
		"bad alignment": "id: x\nname: x\nlevel: 1\nmax_hp: 1\nalignment: chaotic\n",
		"too many blows": `id: x
name: x
level: 1
max_hp: 1
blows:
  - {method: hit, effect: hurt, dice: 1d2}
  - {method: hit, effect: hurt, dice: 1d2}
  - {method: hit, effect: hurt, dice: 1d2}
  - {method: hit, effect: hurt, dice: 1d2}
  - {method: hit, effect: hurt, dice: 1d2}
`,
		"bad loot": "id: x\nname: x\nlevel: 1\nmax_hp: 1\nloot: {items: [{item: a, chance: 2, min_qty: 1, max_qty: 1}]}\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := actor.LoadRaceFromBytes([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadRaces_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orc.yaml"), []byte(orcYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	races, err := actor.LoadRaces(dir)
	require.NoError(t, err)
	require.Contains(t, races, "cave_orc")
	assert.Len(t, races, 1)
}

func TestLoadRaces_DuplicateID(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(orcYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(orcYAML), 0o644))
	_, err := actor.LoadRaces(dir)
	assert.ErrorContains(t, err, "duplicate")
}

func TestNewMonster_FromRace(t *testing.T) {
	r, err := actor.LoadRaceFromBytes([]byte(orcYAML))
	require.NoError(t, err)
	m := actor.NewMonster("orc-1", r, condition.DefaultRegistry())
	assert.Equal(t, actor.KindMonster, m.Kind)
	assert.Equal(t, 33, m.HP)
	assert.Equal(t, 2, m.BlowCount)
	assert.Equal(t, actor.Evil, m.Alignment)
	assert.True(t, m.Vulnerable(element.Fire))
	assert.False(t, m.Vulnerable(element.Cold))
	assert.True(t, m.Living())
	assert.True(t, m.Blows[2].Empty())
	require.NoError(t, m.Validate())
}

func TestActor_SetHPClamps(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(1, 500).Draw(rt, "max")
		hp := rapid.IntRange(-1000, 1000).Draw(rt, "hp")
		a := &actor.Actor{MaxHP: maxHP}
		a.SetHP(hp)
		assert.GreaterOrEqual(rt, a.HP, 0)
		assert.LessOrEqual(rt, a.HP, maxHP)
	})
}

func TestActor_Heal(t *testing.T) {
	a := &actor.Actor{HP: 5, MaxHP: 10}
	assert.Equal(t, 5, a.Heal(8))
	assert.Equal(t, 10, a.HP)
	a.Dead = true
	a.HP = 0
	assert.Zero(t, a.Heal(3))
}

func TestActor_LivingByRaceFlags(t *testing.T) {
	assert.False(t, (&actor.Actor{Kind: actor.KindMonster, RaceFlags: actor.RaceUndead}).Living())
	assert.False(t, (&actor.Actor{Kind: actor.KindMonster, RaceFlags: actor.RaceNonliving}).Living())
	assert.True(t, (&actor.Actor{Kind: actor.KindMonster, RaceFlags: actor.RaceAnimal}).Living())
	assert.False(t, (&actor.Actor{Kind: actor.KindPlayer, PlayerRace: actor.PlayerAndroid}).Living())
	assert.True(t, (&actor.Actor{Kind: actor.KindPlayer, PlayerRace: actor.PlayerDwarf}).Living())
}

func TestHumanPlayerAndHumanFlagAreDistinct(t *testing.T) {
	r, err := actor.ParsePlayerRace("human")
	require.NoError(t, err)
	assert.Equal(t, actor.PlayerHuman, r)
	assert.Equal(t, "human", r.String())
	assert.Equal(t, 25, r.ScytheMultiplier())

	flags, err := actor.ParseRaceFlags([]string{"human"})
	require.NoError(t, err)
	assert.Equal(t, actor.RaceHuman, flags)

	_, err = actor.ParsePlayerRace("troll")
	assert.Error(t, err)
}

func TestDexSafe_Bounds(t *testing.T) {
	assert.Equal(t, 0, actor.DexSafe(0))
	assert.Equal(t, 0, actor.DexSafe(3))
	assert.Equal(t, 100, actor.DexSafe(99))
	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.IntRange(3, 40).Draw(rt, "a")
		b := rapid.IntRange(a, 40).Draw(rt, "b")
		assert.LessOrEqual(rt, actor.DexSafe(a), actor.DexSafe(b))
	})
}
