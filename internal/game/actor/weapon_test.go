package actor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
)

const bladeYAML = `
id: ringil
name: Ringil
dice: 4d5
to_hit: 22
to_dam: 25
weight: 130
slays: [slay_evil, kill_undead, slay_demon, slay_troll]
brands: [cold]
vorpal_chance: 6
flags: [vampiric]
`

func TestWeapon_UnmarshalYAML(t *testing.T) {
	var w actor.Weapon
	require.NoError(t, yaml.Unmarshal([]byte(bladeYAML), &w))
	require.NoError(t, w.Validate())
	assert.Equal(t, dice.D(4, 5), w.Dice)
	assert.True(t, w.Slays.Has(actor.SlayEvil))
	assert.True(t, w.Slays.Has(actor.KillUndead))
	assert.False(t, w.Slays.Has(actor.SlayUndead))
	assert.True(t, w.Brands.Has(element.Cold))
	assert.False(t, w.Brands.Has(element.Fire))
	assert.True(t, w.Vorpal())
	assert.True(t, w.Vampiric)
	assert.False(t, w.Impact)
}

func TestWeapon_Validate(t *testing.T) {
	w := actor.Weapon{ID: "x", Name: "x", Dice: dice.D(1, 4), VorpalChance: 5}
	assert.Error(t, w.Validate())
	w.VorpalChance = 4
	assert.NoError(t, w.Validate())
	w.Brands = actor.Elements(element.Nether)
	assert.Error(t, w.Validate())
}

func TestWeapon_UnknownFlag(t *testing.T) {
	var w actor.Weapon
	assert.Error(t, yaml.Unmarshal([]byte("id: x\nname: x\ndice: 1d4\nflags: [glowing]\n"), &w))
	assert.Error(t, yaml.Unmarshal([]byte("id: x\nname: x\ndice: 1d4\nslays: [slay_elf]\n"), &w))
}

func TestLoadWeapons(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ringil.yaml"), []byte(bladeYAML), 0o644))
	ws, err := actor.LoadWeapons(dir)
	require.NoError(t, err)
	require.Contains(t, ws, "ringil")
	assert.Equal(t, 130, ws["ringil"].Weight)
}

func TestLoadWeapons_MissingDir(t *testing.T) {
	_, err := actor.LoadWeapons(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestNewPlayer(t *testing.T) {
	var w actor.Weapon
	require.NoError(t, yaml.Unmarshal([]byte(bladeYAML), &w))
	spec := &actor.PlayerSpec{
		ID: "hero", Name: "Hero", Race: "dunadan", Class: "paladin", Personality: "lazy",
		Level: 30, MaxHP: 300, MaxSP: 40, Skill: 120, Blows: 3, Weapon: "ringil",
		Stats:   actor.StatBlock{Str: 18, Int: 10, Wis: 14, Dex: 20, Con: 18, Chr: 2},
		Sustain: []string{"str"}, Traits: []string{"free_action"}, Auras: []string{"fire"},
		Resist: []element.Element{element.Fire},
		Pack:   []actor.PackEntry{{ID: "ration", Kind: "food", Quantity: 3}},
	}
	p, err := actor.NewPlayer(spec, map[string]*actor.Weapon{"ringil": &w}, condition.DefaultRegistry())
	require.NoError(t, err)
	assert.True(t, p.IsPlayer())
	assert.Equal(t, actor.PersonalityLazy, p.Personality)
	assert.Equal(t, actor.PlayerDunadan, p.PlayerRace)
	assert.Equal(t, 3, p.BlowCount)
	assert.Equal(t, "ringil", p.Weapon.ID)
	assert.True(t, p.Sustain[actor.StatStr])
	assert.Equal(t, actor.MinStat, p.Stats[actor.StatChr])
	assert.True(t, p.Traits.Has(actor.TraitFreeAction))
	assert.True(t, p.Auras.Has(actor.AuraFire))
	assert.True(t, p.Resists(element.Fire))
	require.Len(t, p.Pack, 1)
	assert.Equal(t, actor.ItemFood, p.Pack[0].Kind)
	require.NoError(t, p.Validate())
}

func TestNewPlayer_UnknownWeapon(t *testing.T) {
	spec := &actor.PlayerSpec{ID: "hero", Name: "Hero", Race: "human", Class: "warrior", Level: 1, MaxHP: 10, Weapon: "nope"}
	_, err := actor.NewPlayer(spec, nil, condition.DefaultRegistry())
	assert.Error(t, err)
}

func TestNewPlayer_BareHands(t *testing.T) {
	spec := &actor.PlayerSpec{ID: "hero", Name: "Hero", Race: "human", Class: "monk", Level: 1, MaxHP: 10}
	p, err := actor.NewPlayer(spec, nil, condition.DefaultRegistry())
	require.NoError(t, err)
	assert.Equal(t, "fists", p.Weapon.ID)
	assert.Equal(t, 1, p.BlowCount)
}
