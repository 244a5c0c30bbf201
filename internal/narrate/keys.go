package narrate

import "fmt"

// Key identifies a narrative message in the catalog. Arguments are positional:
// by convention %[1]s is the actor doing something and %[2]s the one it is
// done to.
type Key string

const (
	Miss          Key = "blow.miss"
	Repelled      Key = "blow.repelled"
	TooAfraid     Key = "blow.too_afraid"
	Shadow        Key = "blow.shadow"
	Invulnerable  Key = "blow.invulnerable"
	Explodes      Key = "blow.explodes"
	Cut           Key = "blow.cut"
	Stun          Key = "blow.stun"
	Poisoned      Key = "effect.poisoned"
	Disenchanted  Key = "effect.disenchanted"
	ItemResists   Key = "effect.item_resists"
	ChargesDrain  Key = "effect.charges_drained"
	GoldProtected Key = "effect.gold_protected"
	GoldStolen    Key = "effect.gold_stolen"
	GoldNone      Key = "effect.gold_none"
	ItemProtected Key = "effect.item_protected"
	ItemStolen    Key = "effect.item_stolen"
	FoodEaten     Key = "effect.food_eaten"
	LightDrained  Key = "effect.light_drained"
	AcidHit       Key = "effect.acid"
	ElecHit       Key = "effect.elec"
	FireHit       Key = "effect.fire"
	ColdHit       Key = "effect.cold"
	ElementImmune Key = "effect.element_immune"
	Blinded       Key = "effect.blinded"
	Confused      Key = "effect.confused"
	StandsFast    Key = "effect.stands_fast"
	Terrified     Key = "effect.terrified"
	Unaffected    Key = "effect.unaffected"
	Paralyzed     Key = "effect.paralyzed"
	StatSustained Key = "effect.stat_sustained"
	StatDrained   Key = "effect.stat_drained"
	Quake         Key = "effect.quake"
	ExpHold       Key = "effect.exp_hold"
	ExpSlip       Key = "effect.exp_slip"
	ExpDrain      Key = "effect.exp_drain"
	Diseased      Key = "effect.diseased"
	TimeExp       Key = "effect.time_exp"
	TimeStat      Key = "effect.time_stat"
	TimeAll       Key = "effect.time_all"
	ManaDrained   Key = "effect.mana_drained"
	Slowed        Key = "effect.slowed"
	Stunned       Key = "effect.stunned"
	Hungry        Key = "effect.hungry"
	Flavor        Key = "effect.flavor"
	CriticalHit   Key = "effect.critical"
	Healed        Key = "effect.healed"
	AuraFire      Key = "aura.fire"
	AuraElec      Key = "aura.elec"
	AuraCold      Key = "aura.cold"
	AuraShards    Key = "aura.shards"
	AuraHoly      Key = "aura.holy"
	AuraForce     Key = "aura.force"
	AuraImmune    Key = "aura.immune"
	ThiefFlees    Key = "thief.flees"
	ThiefBlocked  Key = "thief.blocked"
	Flees         Key = "morale.flees"
	Recovers      Key = "morale.recovers"
	EyeForEye     Key = "counter.eye_for_eye"
	Iai           Key = "counter.iai"
	ScytheReturns Key = "scythe.returns"
	ScytheDeep    Key = "scythe.deep"
	VampHeal      Key = "weapon.vamp_heal"
	HandsStop     Key = "weapon.hands_stop"
	ImpactQuake   Key = "weapon.impact"
	VorpalHalf    Key = "vorpal.half"
	VorpalShred   Key = "vorpal.shred"
	Slain         Key = "death.slain"
	Destroyed     Key = "death.destroyed"
	PlayerDies    Key = "death.player"
	RoundBegins   Key = "round.begins"
	StatusExpires Key = "round.status_expires"
	Victory       Key = "skirmish.victory"
	Defeat        Key = "skirmish.defeat"
	Stalemate     Key = "skirmish.stalemate"
)

// MethodKey is the message describing a landed blow of the named method.
func MethodKey(method string) Key { return Key("method." + method) }

// CriticalKey is the message for a critical hit of tier 1..5.
func CriticalKey(tier int) Key { return Key(fmt.Sprintf("critical.%d", tier)) }

// VorpalKey is the message for a vorpal multiplier; anything above 7 shreds.
func VorpalKey(mult int) Key {
	if mult > 7 {
		return VorpalShred
	}
	return Key(fmt.Sprintf("vorpal.%d", mult))
}
