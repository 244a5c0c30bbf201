// Package arena is the battlefield combat happens on: a bounded grid with
// terrain, the items lying on it, and the area effects (projections,
// earthquakes, teleports) that combat triggers against the actors standing
// in it.
package arena

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
)

// Terrain is the kind of a grid.
type Terrain int

const (
	Floor Terrain = iota
	Wall
	Rubble
)

func (t Terrain) String() string {
	switch t {
	case Wall:
		return "wall"
	case Rubble:
		return "rubble"
	}
	return "floor"
}

// Arena tracks terrain and floor items for a width×height grid whose
// occupants live in an actor.Registry.
// All methods are safe for concurrent use.
type Arena struct {
	mu      sync.RWMutex
	width   int
	height  int
	terrain map[actor.Pos]Terrain
	floor   map[actor.Pos][]actor.Item

	actors *actor.Registry
	logger *zap.Logger
}

// New creates an open arena of the given size.
//
// Precondition: width and height must be >= 1; actors must be non-nil.
// Postcondition: every grid is Floor and no items lie anywhere.
func New(width, height int, actors *actor.Registry, logger *zap.Logger) (*Arena, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("arena: size %dx%d must be positive", width, height)
	}
	if actors == nil {
		return nil, fmt.Errorf("arena: actor registry must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Arena{
		width:   width,
		height:  height,
		terrain: make(map[actor.Pos]Terrain),
		floor:   make(map[actor.Pos][]actor.Item),
		actors:  actors,
		logger:  logger,
	}, nil
}

// Size returns the arena's width and height.
func (a *Arena) Size() (int, int) { return a.width, a.height }

// Actors returns the registry of the arena's occupants.
func (a *Arena) Actors() *actor.Registry { return a.actors }

// InBounds reports whether p lies on the grid.
func (a *Arena) InBounds(p actor.Pos) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < a.width && p.Y < a.height
}

// Terrain returns the terrain at p. Out-of-bounds grids are walls.
func (a *Arena) Terrain(p actor.Pos) Terrain {
	if !a.InBounds(p) {
		return Wall
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.terrain[p]
}

// SetTerrain changes the terrain at p.
//
// Precondition: p must be in bounds.
func (a *Arena) SetTerrain(p actor.Pos, t Terrain) error {
	if !a.InBounds(p) {
		return fmt.Errorf("arena: %v is out of bounds", p)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if t == Floor {
		delete(a.terrain, p)
		return nil
	}
	a.terrain[p] = t
	return nil
}

// Passable reports whether an actor could be placed on p: in bounds, open
// floor, unoccupied.
func (a *Arena) Passable(p actor.Pos) bool {
	if a.Terrain(p) != Floor {
		return false
	}
	_, occupied := a.actors.At(p)
	return !occupied
}

// Drop places an item on the floor at p.
//
// Postcondition: item is appended to the grid's floor items.
func (a *Arena) Drop(p actor.Pos, item actor.Item) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.floor[p] = append(a.floor[p], item)
}

// Pickup removes and returns the item with the given instanceID from p.
//
// Postcondition: on success, the item is removed from the grid and returned;
// on failure, the grid is unchanged.
func (a *Arena) Pickup(p actor.Pos, instanceID string) (actor.Item, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	items := a.floor[p]
	for i, it := range items {
		if it.InstanceID == instanceID {
			a.floor[p] = append(items[:i], items[i+1:]...)
			if len(a.floor[p]) == 0 {
				delete(a.floor, p)
			}
			return it, true
		}
	}
	return actor.Item{}, false
}

// PickupAll removes and returns every item at p.
//
// Postcondition: the grid holds no items; a non-nil slice is returned.
func (a *Arena) PickupAll(p actor.Pos) []actor.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	items := a.floor[p]
	if len(items) == 0 {
		return []actor.Item{}
	}
	delete(a.floor, p)
	return items
}

// ItemsAt returns a snapshot copy of the items at p.
func (a *Arena) ItemsAt(p actor.Pos) []actor.Item {
	a.mu.RLock()
	defer a.mu.RUnlock()
	items := a.floor[p]
	out := make([]actor.Item, len(items))
	copy(out, items)
	return out
}
