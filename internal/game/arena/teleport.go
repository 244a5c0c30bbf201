package arena

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
)

const teleportTries = 500

// TeleportAway moves t to a random open grid between distance/3 and distance
// grids away.
//
// Postcondition: returns true and updates t.Pos on success; on failure t is
// not moved.
func (a *Arena) TeleportAway(s *dice.Stream, t *actor.Actor, distance int) bool {
	minDist := distance / 3
	lo := actor.Pos{X: max(0, t.Pos.X-distance), Y: max(0, t.Pos.Y-distance)}
	hi := actor.Pos{X: min(a.width-1, t.Pos.X+distance), Y: min(a.height-1, t.Pos.Y+distance)}
	for i := 0; i < teleportTries; i++ {
		p := actor.Pos{
			X: lo.X + s.Randint0(hi.X-lo.X+1),
			Y: lo.Y + s.Randint0(hi.Y-lo.Y+1),
		}
		d := p.Distance(t.Pos)
		if d < minDist || d > distance || d == 0 || !a.Passable(p) {
			continue
		}
		from := t.Pos
		if err := a.actors.Move(t.ID, p); err != nil {
			continue
		}
		a.logger.Debug("teleport", zap.String("actor", t.ID), zap.Any("from", from), zap.Any("to", p))
		return true
	}
	return false
}

// Blocked reports whether defender's anti-teleport ward stops mover from
// fleeing. Unique monsters force their way through.
func (a *Arena) Blocked(defender, mover *actor.Actor) bool {
	return defender.Traits.Has(actor.TraitAntiTeleport) && !mover.Unique
}
