package combat

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// ShadowPolicy is how a tag treats a target protected by illusory doubles.
// The policy is per tag and deliberately not uniform.
type ShadowPolicy int

const (
	// ShadowIgnored: the tag's side effects land regardless; only the HP
	// damage itself can be absorbed.
	ShadowIgnored ShadowPolicy = iota
	// ShadowNegates: the side effects are skipped entirely.
	ShadowNegates
	// ShadowPartial: the handler checks doubles itself, part way through.
	ShadowPartial
)

// EffectInfo is the static description of an effect tag.
type EffectInfo struct {
	// Power is added to the attacker's level*3 in the to-hit roll.
	Power int
	// Element is the projection a monster-on-monster blow and an exploding
	// corpse deliver.
	Element element.Element
	// SkipOnExplode tags do nothing when delivered by an exploding blow.
	SkipOnExplode bool
	Shadow        ShadowPolicy
}

var effectInfo = [actor.EffectCount]EffectInfo{
	actor.EffectNone:      {Power: 0, Element: element.None, Shadow: ShadowIgnored},
	actor.EffectHurt:      {Power: 60, Element: element.Missile, Shadow: ShadowIgnored},
	actor.EffectPoison:    {Power: 5, Element: element.Poison, SkipOnExplode: true, Shadow: ShadowNegates},
	actor.EffectUnBonus:   {Power: 20, Element: element.Disenchant, SkipOnExplode: true, Shadow: ShadowNegates},
	actor.EffectUnPower:   {Power: 15, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectEatGold:   {Power: 5, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectEatItem:   {Power: 5, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectEatFood:   {Power: 5, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectEatLite:   {Power: 5, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectAcid:      {Power: 0, Element: element.Acid, SkipOnExplode: true, Shadow: ShadowPartial},
	actor.EffectElec:      {Power: 10, Element: element.Elec, SkipOnExplode: true, Shadow: ShadowPartial},
	actor.EffectFire:      {Power: 10, Element: element.Fire, SkipOnExplode: true, Shadow: ShadowPartial},
	actor.EffectCold:      {Power: 10, Element: element.Cold, SkipOnExplode: true, Shadow: ShadowPartial},
	actor.EffectBlind:     {Power: 2, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectConfuse:   {Power: 10, Element: element.Confusion, SkipOnExplode: true, Shadow: ShadowNegates},
	actor.EffectTerrify:   {Power: 10, Element: element.TurnAll, Shadow: ShadowNegates},
	actor.EffectParalyze:  {Power: 2, Element: element.OldSleep, Shadow: ShadowNegates},
	actor.EffectLoseStr:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseInt:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseWis:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseDex:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseCon:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseChr:   {Power: 0, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectLoseAll:   {Power: 2, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectShatter:   {Power: 60, Element: element.Rocket, Shadow: ShadowIgnored},
	actor.EffectExp10:     {Power: 5, Element: element.Nether, Shadow: ShadowNegates},
	actor.EffectExp20:     {Power: 5, Element: element.Nether, Shadow: ShadowNegates},
	actor.EffectExp40:     {Power: 5, Element: element.Nether, Shadow: ShadowNegates},
	actor.EffectExp80:     {Power: 5, Element: element.Nether, Shadow: ShadowNegates},
	actor.EffectDisease:   {Power: 5, Element: element.Poison, Shadow: ShadowPartial},
	actor.EffectTime:      {Power: 5, Element: element.Time, SkipOnExplode: true, Shadow: ShadowPartial},
	actor.EffectExpVamp:   {Power: 5, Element: element.OldDrain, Shadow: ShadowPartial},
	actor.EffectDrainMana: {Power: 5, Element: element.Mana, Shadow: ShadowPartial},
	actor.EffectSuperHurt: {Power: 60, Element: element.Missile, Shadow: ShadowPartial},
	actor.EffectInertia:   {Power: 5, Element: element.Inertia, Shadow: ShadowNegates},
	actor.EffectStun:      {Power: 5, Element: element.Sound, Shadow: ShadowNegates},
	actor.EffectHungry:    {Power: 5, Element: element.Missile, Shadow: ShadowNegates},
	actor.EffectFlavor:    {Power: 0, Element: element.None, Shadow: ShadowIgnored},
}

// InfoFor returns the static description of e.
//
// Precondition: e must be a defined tag.
func InfoFor(e actor.Effect) EffectInfo {
	if !e.Valid() {
		panic(fmt.Sprintf("combat: undefined blow effect %d", int(e)))
	}
	return effectInfo[e]
}

// EffectContext is what an effect handler sees of the blow it resolves.
type EffectContext struct {
	*Turn
	Attacker *actor.Actor
	Target   *actor.Actor
	Blow     actor.BlowDescriptor
	Slot     int
	// Level is the attacker's effective level, at least 1.
	Level int
	// Damage is the rolled damage before the effect modifies it.
	Damage  int
	Explode bool

	// Blinked is set by a successful theft; the thief tries to teleport
	// away once the blow loop ends.
	Blinked bool
}

// shadowed reports whether illusory doubles protect the target now.
func (c *EffectContext) shadowed() bool { return c.Shadowed(c.Target) }

// EffectResult is what a handler decided.
type EffectResult struct {
	// Damage is passed to the target's damage application. It is also the
	// figure the cut and stun severity is ranked on.
	Damage int
	// Force damage ignores invulnerability and illusory doubles.
	Force   bool
	Obvious bool
	// NoCut suppresses the method's cut.
	NoCut bool
	// Resisted is set when a save, resistance or sustain stopped the tag.
	Resisted bool
	// Element is the projection that carries Damage to a monster target.
	// None means the blow projects nothing.
	Element element.Element
	// Status, when non-nil, runs after the damage and reports whether
	// anything noticeable happened. Against a player it runs only if the
	// player survived.
	Status func(*EffectContext) bool
}

// EffectHandler resolves one effect tag.
type EffectHandler interface {
	Apply(c *EffectContext) EffectResult
}

// EffectFunc adapts a function to EffectHandler.
type EffectFunc func(c *EffectContext) EffectResult

// Apply calls f.
func (f EffectFunc) Apply(c *EffectContext) EffectResult { return f(c) }

// Dispatch resolves c.Blow.Effect against c.Target with the handler table
// for the target's kind. A skip-on-explode tag delivered by an exploding
// blow against a player does nothing. A shadow-negated tag loses its
// status step while the target's doubles are up.
//
// Precondition: c.Blow.Effect must be a defined tag.
func Dispatch(c *EffectContext) EffectResult {
	info := InfoFor(c.Blow.Effect)
	if c.Target.IsPlayer() {
		if c.Explode && info.SkipOnExplode {
			return EffectResult{}
		}
		res := playerEffects[c.Blow.Effect].Apply(c)
		if info.Shadow == ShadowNegates && res.Status != nil && c.shadowed() {
			res.Status = nil
		}
		return res
	}
	return monsterEffects[c.Blow.Effect].Apply(c)
}
