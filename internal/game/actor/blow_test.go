package actor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

func TestEffect_RoundTripNames(t *testing.T) {
	assert.Equal(t, 38, int(actor.EffectCount))
	for e := actor.EffectNone; e < actor.EffectCount; e++ {
		parsed, err := actor.ParseEffect(e.String())
		require.NoError(t, err)
		assert.Equal(t, e, parsed)
	}
	_, err := actor.ParseEffect("tickle")
	assert.Error(t, err)
}

func TestMethod_ContactSubset(t *testing.T) {
	contact := []actor.Method{
		actor.MethodHit, actor.MethodTouch, actor.MethodPunch, actor.MethodKick,
		actor.MethodClaw, actor.MethodBite, actor.MethodSting, actor.MethodSlash,
		actor.MethodButt, actor.MethodCrush, actor.MethodEngulf, actor.MethodCharge,
		actor.MethodCrawl,
	}
	for _, m := range contact {
		assert.True(t, m.Info().Contact, m.String())
	}
	for _, m := range []actor.Method{actor.MethodGaze, actor.MethodWail, actor.MethodSpit, actor.MethodExplode, actor.MethodInsult} {
		assert.False(t, m.Info().Contact, m.String())
	}
	assert.True(t, actor.MethodHit.Info().Cut)
	assert.True(t, actor.MethodHit.Info().Stun)
	assert.True(t, actor.MethodExplode.Info().Explode)
}

func TestMethod_UndefinedPanics(t *testing.T) {
	assert.Panics(t, func() { actor.Method(999).Info() })
}

func TestBlowDescriptor_YAML(t *testing.T) {
	var b actor.BlowDescriptor
	require.NoError(t, yaml.Unmarshal([]byte("{method: bite, effect: exp_vamp, dice: 3d6}"), &b))
	assert.Equal(t, actor.MethodBite, b.Method)
	assert.Equal(t, actor.EffectExpVamp, b.Effect)
	assert.Equal(t, dice.D(3, 6), b.Dice)
	assert.NoError(t, b.Validate())
	assert.Error(t, actor.BlowDescriptor{Method: actor.MethodHit, Effect: actor.Effect(77)}.Validate())
	assert.Error(t, actor.BlowDescriptor{Method: actor.MethodHit, Dice: dice.D(-1, 4)}.Validate())
}
