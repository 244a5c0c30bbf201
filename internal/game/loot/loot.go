// Package loot turns deaths into corpse drops: the race's loot table, what
// the victim carried, and whatever its scripted death hook adds.
package loot

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/scripting"
)

// GoldItemID is the item ID gold drops use on the floor.
const GoldItemID = "gold"

const chanceScale = 10000

// Result holds the loot rolled for a single death.
type Result struct {
	Gold  int
	Items []actor.Item
}

// Roll rolls lt on s. Item instance IDs are drawn from s so that replaying
// a stream replays the IDs.
//
// Precondition: lt must have passed Validate; s must be non-nil.
// Postcondition: Gold is in [Gold.Min, Gold.Max] when gold is set; each
// item's Quantity is in [MinQty, MaxQty].
func Roll(s *dice.Stream, lt *actor.LootTable) (Result, error) {
	var result Result
	if lt == nil {
		return result, nil
	}
	if lt.Gold != nil && lt.Gold.Max > 0 {
		result.Gold = lt.Gold.Min + s.Randint0(lt.Gold.Max-lt.Gold.Min+1)
	}
	for _, drop := range lt.Items {
		if s.Randint0(chanceScale) >= int(drop.Chance*chanceScale) {
			continue
		}
		qty := drop.MinQty + s.Randint0(drop.MaxQty-drop.MinQty+1)
		it, err := newItem(s, drop.ItemID, drop.Name, actor.KindOf(drop.Kind), qty)
		if err != nil {
			return result, err
		}
		result.Items = append(result.Items, it)
	}
	return result, nil
}

func newItem(s *dice.Stream, id, name string, kind actor.ItemKind, qty int) (actor.Item, error) {
	instance, err := uuid.NewRandomFromReader(s)
	if err != nil {
		return actor.Item{}, fmt.Errorf("loot: instance id for %q: %w", id, err)
	}
	if name == "" {
		name = id
	}
	return actor.Item{
		InstanceID: instance.String(),
		ID:         id,
		Name:       name,
		Kind:       kind,
		Quantity:   qty,
	}, nil
}

// Floor receives dropped items.
type Floor interface {
	Drop(p actor.Pos, item actor.Item)
}

// Scripts runs death hooks.
type Scripts interface {
	OnDeath(s *dice.Stream, hook string, victim, killer *scripting.ActorInfo) []string
}

// Generator drops a corpse's loot onto the floor. It is invoked exactly once
// per death by the combat engine.
type Generator struct {
	floor   Floor
	scripts Scripts
	logger  *zap.Logger
}

// NewGenerator creates a Generator. scripts may be nil to skip death hooks.
//
// Precondition: floor must be non-nil.
func NewGenerator(floor Floor, scripts Scripts, logger *zap.Logger) *Generator {
	if floor == nil {
		panic("loot.NewGenerator: floor must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{floor: floor, scripts: scripts, logger: logger}
}

// OnDeath drops victim's loot at its position. A monster yields its race's
// loot table, everything it carried and its death hook's items; gold goes
// to a player killer and onto the floor otherwise. A dead player yields only
// its death hook's items.
func (g *Generator) OnDeath(s *dice.Stream, victim, killer *actor.Actor) {
	var drops []actor.Item
	gold := 0
	hook := ""

	if !victim.IsPlayer() && victim.Race != nil {
		hook = victim.Race.OnDeath
		rolled, err := Roll(s, victim.Race.Loot)
		if err != nil {
			g.logger.Error("rolling loot", zap.String("victim", victim.ID), zap.Error(err))
		}
		drops = append(drops, rolled.Items...)
		gold = rolled.Gold + victim.Gold
		victim.Gold = 0
		drops = append(drops, victim.Pack.Compact()...)
		victim.Pack = nil
	}

	if g.scripts != nil {
		for _, id := range g.scripts.OnDeath(s, hook, info(victim), info(killer)) {
			it, err := newItem(s, id, "", actor.ItemMisc, 1)
			if err != nil {
				g.logger.Error("scripted drop", zap.String("item", id), zap.Error(err))
				continue
			}
			drops = append(drops, it)
		}
	}

	if gold > 0 {
		if killer != nil && killer.IsPlayer() && !killer.Dead {
			killer.Gold += gold
		} else if it, err := newItem(s, GoldItemID, "gold", actor.ItemMisc, gold); err == nil {
			drops = append(drops, it)
		}
	}

	for _, it := range drops {
		g.floor.Drop(victim.Pos, it)
	}
	g.logger.Debug("corpse dropped",
		zap.String("victim", victim.ID),
		zap.Int("items", len(drops)),
		zap.Int("gold", gold),
	)
}

func info(a *actor.Actor) *scripting.ActorInfo {
	if a == nil {
		return nil
	}
	out := &scripting.ActorInfo{
		ID:     a.ID,
		Name:   a.Name,
		Level:  a.Level,
		HP:     a.HP,
		MaxHP:  a.MaxHP,
		X:      a.Pos.X,
		Y:      a.Pos.Y,
		Player: a.IsPlayer(),
		Unique: a.Unique,
	}
	if a.Race != nil {
		out.Race = a.Race.ID
	}
	return out
}
