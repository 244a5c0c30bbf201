package actor

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/cory-johannsen/delve/internal/game/condition"
)

// Registry tracks all live actors by ID and by grid position.
// All methods are safe for concurrent use; the actors themselves are not.
type Registry struct {
	mu        sync.RWMutex
	actors    map[string]*Actor // actorID → Actor
	positions map[Pos]string    // grid → actorID
	conds     *condition.Registry
	counter   atomic.Uint64
}

// NewRegistry creates an empty Registry whose spawned monsters resolve
// statuses through conds.
//
// Precondition: conds must be non-nil.
func NewRegistry(conds *condition.Registry) *Registry {
	return &Registry{
		actors:    make(map[string]*Actor),
		positions: make(map[Pos]string),
		conds:     conds,
	}
}

// Conditions returns the status registry used for spawned monsters.
func (r *Registry) Conditions() *condition.Registry { return r.conds }

// Add registers an existing actor at its current position.
//
// Precondition: a must be non-nil with a non-empty ID.
// Postcondition: Returns an error if the ID is taken or the grid is occupied.
func (r *Registry) Add(a *Actor) error {
	if a == nil || a.ID == "" {
		return fmt.Errorf("actor.Registry.Add: actor must be non-nil with an id")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.actors[a.ID]; ok {
		return fmt.Errorf("actor.Registry.Add: id %q already registered", a.ID)
	}
	if other, ok := r.positions[a.Pos]; ok {
		return fmt.Errorf("actor.Registry.Add: grid %v occupied by %q", a.Pos, other)
	}
	r.actors[a.ID] = a
	r.positions[a.Pos] = a.ID
	return nil
}

// Spawn creates a monster of race at pos with a generated unique ID.
//
// Precondition: race must be non-nil and validated.
// Postcondition: Returns the registered monster, or an error if pos is occupied.
func (r *Registry) Spawn(race *Race, pos Pos) (*Actor, error) {
	if race == nil {
		return nil, fmt.Errorf("actor.Registry.Spawn: race must not be nil")
	}
	n := r.counter.Add(1)
	m := NewMonster(fmt.Sprintf("%s-%d", race.ID, n), race, r.conds)
	m.Pos = pos
	if err := r.Add(m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get returns the actor with the given ID.
//
// Postcondition: Returns (a, true) if found, or (nil, false) otherwise.
func (r *Registry) Get(id string) (*Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actors[id]
	return a, ok
}

// Remove deletes an actor by ID.
//
// Postcondition: Returns an error if the actor is not found.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actors[id]
	if !ok {
		return fmt.Errorf("actor %q not found", id)
	}
	if r.positions[a.Pos] == id {
		delete(r.positions, a.Pos)
	}
	delete(r.actors, id)
	return nil
}

// At returns the actor standing on pos.
func (r *Registry) At(pos Pos) (*Actor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.positions[pos]
	if !ok {
		return nil, false
	}
	return r.actors[id], true
}

// Move relocates an actor to pos.
//
// Precondition: id must identify a registered actor.
// Postcondition: a.Pos equals pos and the position index is updated, or an
// error is returned if pos is occupied by another actor.
func (r *Registry) Move(id string, pos Pos) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.actors[id]
	if !ok {
		return fmt.Errorf("actor.Registry.Move: actor %q not found", id)
	}
	if other, ok := r.positions[pos]; ok && other != id {
		return fmt.Errorf("actor.Registry.Move: grid %v occupied by %q", pos, other)
	}
	if r.positions[a.Pos] == id {
		delete(r.positions, a.Pos)
	}
	a.Pos = pos
	r.positions[pos] = id
	return nil
}

// All returns a snapshot of every live actor sorted by ID.
//
// Postcondition: Returns a non-nil slice (may be empty).
func (r *Registry) All() []*Actor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Within returns the actors whose grid lies within radius of center, sorted by ID.
func (r *Registry) Within(center Pos, radius int) []*Actor {
	var out []*Actor
	for _, a := range r.All() {
		if a.Pos.Distance(center) <= radius {
			out = append(out, a)
		}
	}
	return out
}

// Visible reports whether observer can see target: the observer is not
// blind and the target is either visible or the observer sees invisible.
func (r *Registry) Visible(observer, target *Actor) bool {
	if observer.HasStatus(condition.Blind) {
		return false
	}
	if target.Invisible() && !observer.Traits.Has(TraitSeeInvisible) {
		return false
	}
	return true
}
