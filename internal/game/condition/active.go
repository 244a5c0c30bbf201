package condition

import (
	"fmt"
	"sort"
)

// Active tracks one applied status on an actor.
type Active struct {
	Def *ConditionDef
	// Value is the rounds remaining or the magnitude; -1 means permanent.
	Value int
}

// ActiveSet tracks all statuses currently applied to one actor.
// It is not safe for concurrent use; the caller must serialise access.
type ActiveSet struct {
	reg    *Registry
	active map[string]*Active
}

// NewActiveSet creates an empty ActiveSet resolving IDs through reg.
//
// Precondition: reg must be non-nil.
func NewActiveSet(reg *Registry) *ActiveSet {
	return &ActiveSet{reg: reg, active: make(map[string]*Active)}
}

func (s *ActiveSet) def(id string) (*ConditionDef, error) {
	d, ok := s.reg.Get(id)
	if !ok {
		return nil, fmt.Errorf("condition: unknown status %q", id)
	}
	return d, nil
}

func clampValue(d *ConditionDef, v int) int {
	if d.MaxValue > 0 && v > d.MaxValue {
		return d.MaxValue
	}
	return v
}

// Apply sets status id to at least value. Re-applying keeps the larger value.
// Permanent statuses store -1 regardless of value.
//
// Postcondition: Has(id) is true unless value <= 0 for a non-permanent status.
func (s *ActiveSet) Apply(id string, value int) error {
	d, err := s.def(id)
	if err != nil {
		return err
	}
	if d.DurationType == DurationPermanent {
		s.active[id] = &Active{Def: d, Value: -1}
		return nil
	}
	if value <= 0 {
		return nil
	}
	value = clampValue(d, value)
	if existing, ok := s.active[id]; ok {
		if value > existing.Value {
			existing.Value = value
		}
		return nil
	}
	s.active[id] = &Active{Def: d, Value: value}
	return nil
}

// Extend adds amount to the current value of id (starting from zero), capped
// at MaxValue. It reports whether the value changed.
func (s *ActiveSet) Extend(id string, amount int) (bool, error) {
	d, err := s.def(id)
	if err != nil {
		return false, err
	}
	if amount <= 0 {
		return false, nil
	}
	if d.DurationType == DurationPermanent {
		_, had := s.active[id]
		s.active[id] = &Active{Def: d, Value: -1}
		return !had, nil
	}
	cur := s.Value(id)
	next := clampValue(d, cur+amount)
	if next == cur {
		return false, nil
	}
	s.active[id] = &Active{Def: d, Value: next}
	return true, nil
}

// Set replaces the value of id. A value <= 0 removes a non-permanent status.
func (s *ActiveSet) Set(id string, value int) error {
	d, err := s.def(id)
	if err != nil {
		return err
	}
	if value <= 0 && d.DurationType != DurationPermanent {
		delete(s.active, id)
		return nil
	}
	if d.DurationType == DurationPermanent {
		value = -1
	}
	s.active[id] = &Active{Def: d, Value: clampValue(d, value)}
	return nil
}

// Remove deletes status id. Removing an absent status is a no-op.
//
// Postcondition: Has(id) is false.
func (s *ActiveSet) Remove(id string) {
	delete(s.active, id)
}

// Has reports whether status id is currently active.
func (s *ActiveSet) Has(id string) bool {
	_, ok := s.active[id]
	return ok
}

// Value returns the rounds or magnitude of id, -1 for permanent, 0 if absent.
func (s *ActiveSet) Value(id string) int {
	if a, ok := s.active[id]; ok {
		return a.Value
	}
	return 0
}

// Tick decrements every decaying status by one and removes those reaching 0.
//
// Postcondition: For every id in the returned (sorted) slice, Has(id) is false.
func (s *ActiveSet) Tick() []string {
	var expired []string
	for id, a := range s.active {
		if a.Def.DurationType == DurationPermanent || a.Value < 0 {
			continue
		}
		a.Value--
		if a.Value <= 0 {
			expired = append(expired, id)
			delete(s.active, id)
		}
	}
	sort.Strings(expired)
	return expired
}

// All returns the active statuses ordered by ID.
// The pointed-to values are shared; callers must not modify them.
func (s *ActiveSet) All() []*Active {
	out := make([]*Active, 0, len(s.active))
	for _, a := range s.active {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Def.ID < out[j].Def.ID })
	return out
}

// IDs returns the active status identifiers ordered by ID.
func (s *ActiveSet) IDs() []string {
	out := make([]string, 0, len(s.active))
	for id := range s.active {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
