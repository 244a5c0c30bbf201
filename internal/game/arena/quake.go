package arena

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

// Earthquake shakes every grid within radius of center except center itself.
// Each shaken grid is damaged with probability 85%; a damaged grid hurts its
// occupant (the cause excepted) and may collapse to rubble when empty.
//
// Postcondition: returns whether any grid was damaged. Actors are never
// removed here.
func (a *Arena) Earthquake(s *dice.Stream, center actor.Pos, radius int, cause *actor.Actor) bool {
	damaged := 0
	for y := center.Y - radius; y <= center.Y+radius; y++ {
		for x := center.X - radius; x <= center.X+radius; x++ {
			p := actor.Pos{X: x, Y: y}
			if p == center || !a.InBounds(p) || p.Distance(center) > radius {
				continue
			}
			if s.Randint0(100) >= 85 {
				continue
			}
			damaged++
			occupant, ok := a.actors.At(p)
			if !ok || occupant.Dead {
				if s.Randint0(100) < 20 {
					_ = a.SetTerrain(p, Rubble)
				}
				continue
			}
			if cause != nil && occupant.ID == cause.ID {
				continue
			}
			a.crush(s, occupant)
		}
	}
	a.logger.Debug("earthquake",
		zap.Int("radius", radius),
		zap.Int("damaged", damaged),
	)
	return damaged > 0
}

func (a *Arena) crush(s *dice.Stream, t *actor.Actor) {
	if !t.IsPlayer() {
		a.hurt(t, s.Damroll(4, 8), false)
		return
	}
	if s.Randint1(3) == 1 {
		return
	}
	a.hurt(t, s.Damroll(10, 4), false)
	_, _ = t.Status.Extend(condition.Stunned, s.Randint1(50))
}
