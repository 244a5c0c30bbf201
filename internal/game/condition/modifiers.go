package condition

// MeleePenalty returns the to-hit and to-damage reductions imposed by active
// statuses. A status whose value exceeds its HeavyThreshold applies its heavy
// penalties instead of the light ones.
//
// Postcondition: both results are >= 0.
func MeleePenalty(s *ActiveSet) (toHit, toDam int) {
	for _, a := range s.active {
		d := a.Def
		if d.HeavyThreshold > 0 && a.Value > d.HeavyThreshold {
			toHit += d.HeavyToHitPenalty
			toDam += d.HeavyToDamPenalty
			continue
		}
		toHit += d.ToHitPenalty
		toDam += d.ToDamPenalty
	}
	return toHit, toDam
}

// PreventsMelee reports whether any active status forbids starting a melee attack.
func PreventsMelee(s *ActiveSet) bool {
	for _, a := range s.active {
		if a.Def.PreventsMelee {
			return true
		}
	}
	return false
}

// Helpless reports whether the actor cannot act or dodge at all.
func Helpless(s *ActiveSet) bool {
	return s.Has(Paralyzed) || s.Has(Asleep)
}
