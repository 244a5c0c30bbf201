package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/narrate"
)

// eyeForEyeDecay is how much an eye-for-eye status wanes each time it bites.
const eyeForEyeDecay = 5

// iaiCounter lets the player p, waiting in the iai stance, strike the
// approaching monster first with a full round of blows.
func (t *Turn) iaiCounter(p, m *actor.Actor) {
	if p.Dead || m.Dead {
		return
	}
	t.say(narrate.Iai, p.Name, m.Name)
	t.playerAttack(p, m, TechniqueIai)
}

// eyeForEye returns the damage the player p took this turn to the monster
// that dealt it, then weakens the status.
func (t *Turn) eyeForEye(p, m *actor.Actor, taken int) {
	if taken <= 0 || p.Dead || m.Dead || !p.HasStatus(condition.EyeForEye) {
		return
	}
	t.say(narrate.EyeForEye, m.Name, p.Name)
	t.hurtMonster(m, taken, false)
	t.checkDead(m, p)
	_ = p.Status.Set(condition.EyeForEye, p.Status.Value(condition.EyeForEye)-eyeForEyeDecay)
}
