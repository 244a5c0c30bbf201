package combat

import (
	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
)

// morale updates a surviving monster's fear after taking dam. Pain wears
// fear down first; a monster left unafraid may then panic when badly hurt
// or when the blow was as large as what it has left.
func (t *Turn) morale(m *actor.Actor, dam int) {
	s := t.stream()
	if m.HasStatus(condition.Afraid) && dam > 0 {
		tmp := s.Randint1(dam)
		if left := m.Status.Value(condition.Afraid); tmp < left {
			_ = m.Status.Set(condition.Afraid, left-tmp)
		} else {
			m.Status.Remove(condition.Afraid)
		}
	}
	if m.HasStatus(condition.Afraid) || m.RaceFlags.Has(actor.RaceNoFear) {
		return
	}
	pct := m.HPPercent()
	lethal := dam >= m.HP
	if s.Randint1(10) >= pct || (lethal && s.Randint0(100) < 80) {
		turns := s.Randint1(10)
		if lethal && pct > 7 {
			turns += 20
		} else {
			turns += (11 - pct) * 5
		}
		if _, err := m.Status.Extend(condition.Afraid, turns); err == nil {
			t.frighten(m)
		}
	}
}
