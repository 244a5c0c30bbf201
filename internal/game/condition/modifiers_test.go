package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/delve/internal/game/condition"
)

func TestMeleePenalty_None(t *testing.T) {
	h, d := condition.MeleePenalty(newSet())
	assert.Zero(t, h)
	assert.Zero(t, d)
}

func TestMeleePenalty_LightStun(t *testing.T) {
	s := newSet()
	require.NoError(t, s.Apply(condition.Stunned, 10))
	h, d := condition.MeleePenalty(s)
	assert.Equal(t, 5, h)
	assert.Equal(t, 5, d)
}

func TestMeleePenalty_HeavyStun(t *testing.T) {
	s := newSet()
	require.NoError(t, s.Apply(condition.Stunned, 51))
	h, d := condition.MeleePenalty(s)
	assert.Equal(t, 20, h)
	assert.Equal(t, 20, d)
}

func TestPreventsMelee_Afraid(t *testing.T) {
	s := newSet()
	assert.False(t, condition.PreventsMelee(s))
	require.NoError(t, s.Apply(condition.Afraid, 3))
	assert.True(t, condition.PreventsMelee(s))
}

func TestHelpless(t *testing.T) {
	s := newSet()
	assert.False(t, condition.Helpless(s))
	require.NoError(t, s.Apply(condition.Asleep, 3))
	assert.True(t, condition.Helpless(s))
}
