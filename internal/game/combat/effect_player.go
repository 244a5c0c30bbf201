package combat

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
	"github.com/cory-johannsen/delve/internal/narrate"
)

const (
	// armorCap is the most armor that counts toward blunting a blow.
	armorCap = 150
	// artifactSave is the percent chance an artifact shrugs off disenchantment.
	artifactSave = 71
	// theftTries is how many random pack slots a thief or glutton checks.
	theftTries = 10
	// drainLifeRate scales experience drain with current experience.
	drainLifeRate = 2
	// shatterQuake is the damage above which a shattering blow quakes.
	shatterQuake = 23
	quakeRadius  = 8
	// diseaseCon is the percent (exclusive) chance disease drains constitution.
	diseaseCon = 11
	hungerDrain = 500
)

// Mitigate blunts dam by armor, up to 60% at armorCap.
func Mitigate(dam, armor int) int {
	return dam - dam*min(armor, armorCap)/250
}

var playerEffects = [actor.EffectCount]EffectHandler{
	actor.EffectNone:      EffectFunc(playerNoEffect),
	actor.EffectHurt:      EffectFunc(playerHurt),
	actor.EffectPoison:    EffectFunc(playerPoison),
	actor.EffectUnBonus:   EffectFunc(playerUnBonus),
	actor.EffectUnPower:   EffectFunc(playerUnPower),
	actor.EffectEatGold:   EffectFunc(playerEatGold),
	actor.EffectEatItem:   EffectFunc(playerEatItem),
	actor.EffectEatFood:   EffectFunc(playerEatFood),
	actor.EffectEatLite:   EffectFunc(playerEatLite),
	actor.EffectAcid:      playerElement(element.Acid, narrate.AcidHit),
	actor.EffectElec:      playerElement(element.Elec, narrate.ElecHit),
	actor.EffectFire:      playerElement(element.Fire, narrate.FireHit),
	actor.EffectCold:      playerElement(element.Cold, narrate.ColdHit),
	actor.EffectBlind:     EffectFunc(playerBlind),
	actor.EffectConfuse:   EffectFunc(playerConfuse),
	actor.EffectTerrify:   EffectFunc(playerTerrify),
	actor.EffectParalyze:  EffectFunc(playerParalyze),
	actor.EffectLoseStr:   playerLoseStat(actor.StatStr),
	actor.EffectLoseInt:   playerLoseStat(actor.StatInt),
	actor.EffectLoseWis:   playerLoseStat(actor.StatWis),
	actor.EffectLoseDex:   playerLoseStat(actor.StatDex),
	actor.EffectLoseCon:   playerLoseStat(actor.StatCon),
	actor.EffectLoseChr:   playerLoseStat(actor.StatChr),
	actor.EffectLoseAll:   EffectFunc(playerLoseAll),
	actor.EffectShatter:   EffectFunc(playerShatter),
	actor.EffectExp10:     playerDrainExp(10, 95),
	actor.EffectExp20:     playerDrainExp(20, 90),
	actor.EffectExp40:     playerDrainExp(40, 75),
	actor.EffectExp80:     playerDrainExp(80, 50),
	actor.EffectDisease:   EffectFunc(playerDisease),
	actor.EffectTime:      EffectFunc(playerTime),
	actor.EffectExpVamp:   EffectFunc(playerExpVamp),
	actor.EffectDrainMana: EffectFunc(playerDrainMana),
	actor.EffectSuperHurt: EffectFunc(playerSuperHurt),
	actor.EffectInertia:   EffectFunc(playerInertia),
	actor.EffectStun:      EffectFunc(playerStun),
	actor.EffectHungry:    EffectFunc(playerHungry),
	actor.EffectFlavor:    EffectFunc(playerNoEffect),
}

func playerNoEffect(c *EffectContext) EffectResult {
	return EffectResult{Obvious: true}
}

func playerHurt(c *EffectContext) EffectResult {
	return EffectResult{Damage: Mitigate(c.Damage, c.Target.AC), Obvious: true}
}

func resistsPoison(p *actor.Actor) bool {
	return p.Immune(element.Poison) || p.Resists(element.Poison) || p.Opposes(element.Poison)
}

// poison extends the poisoned status by randint1(level)+5.
func poison(c *EffectContext) bool {
	if _, err := c.Target.Status.Extend(condition.Poisoned, c.stream().Randint1(c.Level)+5); err != nil {
		return false
	}
	c.say(narrate.Poisoned, c.Target.Name)
	return true
}

func playerPoison(c *EffectContext) EffectResult {
	res := EffectResult{Damage: c.Damage, Resisted: resistsPoison(c.Target)}
	if !res.Resisted {
		res.Status = poison
	}
	return res
}

func playerUnBonus(c *EffectContext) EffectResult {
	res := EffectResult{Damage: c.Damage, Resisted: c.Target.Resists(element.Disenchant)}
	if res.Resisted {
		return res
	}
	res.Status = func(c *EffectContext) bool {
		p := c.Target
		eq := p.Pack.Equipped()
		if len(eq) == 0 {
			return false
		}
		it := &p.Pack[eq[c.stream().Randint0(len(eq))]]
		if it.Enchant <= 0 {
			return false
		}
		if it.Artifact && c.stream().Randint0(100) < artifactSave {
			c.say(narrate.ItemResists, p.Name, it.Name)
			return true
		}
		it.Enchant--
		if it.Kind == actor.ItemArmor {
			p.AC--
		}
		c.say(narrate.Disenchanted, p.Name, it.Name)
		return true
	}
	return res
}

// rummage checks up to theftTries random pack slots and returns the index
// of the first that ok accepts, or -1.
func (c *EffectContext) rummage(ok func(it *actor.Item) bool) int {
	p := c.Target
	for range theftTries {
		i := c.stream().Randint0(actor.PackSlots)
		if i >= len(p.Pack) || p.Pack[i].Quantity <= 0 {
			continue
		}
		if ok(&p.Pack[i]) {
			return i
		}
	}
	return -1
}

func playerUnPower(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		i := c.rummage(func(it *actor.Item) bool {
			return !it.Equipped && !it.Artifact && it.Device()
		})
		if i < 0 {
			return false
		}
		it := &c.Target.Pack[i]
		heal := c.Level * it.Charges
		if it.Kind == actor.ItemStaff {
			heal *= it.Quantity
		}
		it.Charges = 0
		c.say(narrate.ChargesDrain, c.Target.Name)
		if c.Attacker.Heal(heal) > 0 {
			c.say(narrate.Healed, c.Attacker.Name)
		}
		return true
	}}
}

// protectsPack is the theft save: a player who can move dodges the thief
// with probability DexSafe(dex)+level percent.
func (c *EffectContext) protectsPack() bool {
	p := c.Target
	return !p.HasStatus(condition.Paralyzed) &&
		c.stream().Randint0(100) < actor.DexSafe(p.Stats[actor.StatDex])+p.Level
}

// StolenGold is how much gold a thief takes from a purse of au.
func StolenGold(s *dice.Stream, au int) int {
	gold := au/10 + s.Randint1(25)
	if gold < 2 {
		gold = 2
	}
	if gold > 5000 {
		gold = au/20 + s.Randint1(3000)
	}
	return min(gold, au)
}

func playerEatGold(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		if c.Attacker.HasStatus(condition.Confused) {
			return false
		}
		p := c.Target
		if c.protectsPack() {
			c.say(narrate.GoldProtected, p.Name)
			return true
		}
		gold := StolenGold(c.stream(), p.Gold)
		if gold <= 0 {
			c.say(narrate.GoldNone, p.Name)
			return true
		}
		p.Gold -= gold
		c.Attacker.Gold += gold
		c.say(narrate.GoldStolen, p.Name, gold)
		c.Blinked = c.stream().OneIn(2)
		return true
	}}
}

func playerEatItem(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		if c.Attacker.HasStatus(condition.Confused) {
			return false
		}
		p := c.Target
		if c.protectsPack() {
			c.say(narrate.ItemProtected, p.Name)
			return true
		}
		i := c.rummage(func(it *actor.Item) bool { return !it.Equipped && !it.Artifact })
		if i < 0 {
			return false
		}
		stolen := p.Pack[i]
		stolen.Quantity = 1
		p.Pack[i].Quantity--
		c.Attacker.Pack = append(c.Attacker.Pack, stolen)
		p.Pack = p.Pack.Compact()
		c.say(narrate.ItemStolen, p.Name, stolen.Name)
		c.Blinked = c.stream().OneIn(2)
		return true
	}}
}

func playerEatFood(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		i := c.rummage(func(it *actor.Item) bool { return it.Kind == actor.ItemFood })
		if i < 0 {
			return false
		}
		p := c.Target
		name := p.Pack[i].Name
		p.Pack[i].Quantity--
		p.Pack = p.Pack.Compact()
		c.say(narrate.FoodEaten, p.Name, name)
		return true
	}}
}

func playerEatLite(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		p := c.Target
		if p.Light <= 0 {
			return false
		}
		p.Light = max(p.Light-(250+c.stream().Randint1(250)), 1)
		c.say(narrate.LightDrained, p.Name)
		return true
	}}
}

func playerElement(el element.Element, key narrate.Key) EffectFunc {
	return func(c *EffectContext) EffectResult {
		c.say(key, c.Target.Name)
		dam, immune := c.ElementalDamage(c.Target, el, c.Damage)
		if immune {
			c.say(narrate.ElementImmune, c.Target.Name, el.String())
		}
		return EffectResult{Damage: dam, Obvious: true, Resisted: immune}
	}
}

// extend adds n to status id on the target and reports whether it changed.
func (c *EffectContext) extend(id string, n int) bool {
	changed, err := c.Target.Status.Extend(id, n)
	if err != nil {
		c.logger().Warn("status not applied", zap.String("status", id), zap.Error(err))
		return false
	}
	return changed
}

func playerBlind(c *EffectContext) EffectResult {
	res := EffectResult{Damage: c.Damage, Resisted: c.Target.Traits.Has(actor.TraitResistBlind)}
	if !res.Resisted {
		res.Status = func(c *EffectContext) bool {
			if !c.extend(condition.Blind, 10+c.stream().Randint1(c.Level)) {
				return false
			}
			c.say(narrate.Blinded, c.Target.Name)
			return true
		}
	}
	return res
}

func playerConfuse(c *EffectContext) EffectResult {
	res := EffectResult{Damage: c.Damage, Resisted: c.Target.Traits.Has(actor.TraitResistConf)}
	if !res.Resisted {
		res.Status = func(c *EffectContext) bool {
			if !c.extend(condition.Confused, 3+c.stream().Randint1(c.Level)) {
				return false
			}
			c.say(narrate.Confused, c.Target.Name)
			return true
		}
	}
	return res
}

// savingThrow is the player's roll against a blow's secondary effect.
func (c *EffectContext) savingThrow() bool {
	return c.stream().Randint0(100+c.Level/2) < c.Target.SaveSkill
}

func playerTerrify(c *EffectContext) EffectResult {
	return EffectResult{
		Damage:   c.Damage,
		Resisted: c.Target.Traits.Has(actor.TraitResistFear),
		Status: func(c *EffectContext) bool {
			p := c.Target
			if p.Traits.Has(actor.TraitResistFear) || c.savingThrow() {
				c.say(narrate.StandsFast, p.Name)
				return true
			}
			if !c.extend(condition.Afraid, 3+c.stream().Randint1(c.Level)) {
				return false
			}
			c.say(narrate.Terrified, p.Name)
			c.frighten(p)
			return true
		},
	}
}

func playerParalyze(c *EffectContext) EffectResult {
	return EffectResult{
		Damage:   c.Damage,
		Resisted: c.Target.Traits.Has(actor.TraitFreeAction),
		Status: func(c *EffectContext) bool {
			p := c.Target
			if p.Traits.Has(actor.TraitFreeAction) || c.savingThrow() {
				c.say(narrate.Unaffected, p.Name)
				return true
			}
			if p.HasStatus(condition.Paralyzed) {
				return false
			}
			if !c.extend(condition.Paralyzed, 3+c.stream().Randint1(c.Level)) {
				return false
			}
			c.say(narrate.Paralyzed, p.Name)
			return true
		},
	}
}

func playerLoseStat(stat actor.Stat) EffectFunc {
	return func(c *EffectContext) EffectResult {
		return EffectResult{
			Damage:   c.Damage,
			Resisted: c.Target.Sustain[stat],
			Status:   func(c *EffectContext) bool { return c.decStat(c.Target, stat) },
		}
	}
}

func playerLoseAll(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Status: func(c *EffectContext) bool {
		for stat := range actor.Stat(actor.StatCount) {
			c.decStat(c.Target, stat)
		}
		return true
	}}
}

// quake shakes the ground around center, announced by key, if a quaker is
// wired. Anyone the rubble crushed to death dies here.
func (t *Turn) quake(center actor.Pos, radius int, cause *actor.Actor, key narrate.Key) {
	if t.Quaker == nil {
		return
	}
	t.say(key, cause.Name)
	if t.Quaker.Earthquake(t.stream(), center, radius, cause) {
		t.sweep(center, radius, cause)
	}
}

func playerShatter(c *EffectContext) EffectResult {
	dam := Mitigate(c.Damage, c.Target.AC)
	if dam > shatterQuake || c.Explode {
		c.quake(c.Attacker.Pos, quakeRadius, c.Attacker, narrate.Quake)
	}
	return EffectResult{Damage: dam, Obvious: true}
}

// loseExp drops experience by n, floored at 0.
func loseExp(p *actor.Actor, n int) {
	p.Exp = max(p.Exp-n, 0)
}

// drainExp takes drain experience from the player, or only slip of it when
// hold-life fails to hold entirely. Androids have no life force to drain.
func (c *EffectContext) drainExp(drain, slip, hold int) bool {
	p := c.Target
	if p.PlayerRace == actor.PlayerAndroid {
		return false
	}
	if p.Traits.Has(actor.TraitHoldLife) {
		if c.stream().Randint0(100) < hold {
			c.say(narrate.ExpHold, p.Name)
			return false
		}
		c.say(narrate.ExpSlip, p.Name)
		loseExp(p, slip)
		return true
	}
	c.say(narrate.ExpDrain, p.Name)
	loseExp(p, drain)
	return true
}

func playerDrainExp(dice, hold int) EffectFunc {
	return func(c *EffectContext) EffectResult {
		d := c.stream().Damroll(dice, 6) + (c.Target.Exp/100)*drainLifeRate
		return EffectResult{Damage: c.Damage, Obvious: true, Status: func(c *EffectContext) bool {
			c.drainExp(d, d/10, hold)
			return true
		}}
	}
}

func playerDisease(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Obvious: true, Status: func(c *EffectContext) bool {
		if c.shadowed() {
			return false
		}
		p := c.Target
		if !resistsPoison(p) {
			poison(c)
		}
		if c.stream().Randint1(100) < diseaseCon && p.PlayerRace != actor.PlayerAndroid {
			c.say(narrate.Diseased, p.Name)
			c.decStat(p, actor.StatCon)
		}
		return true
	}}
}

func playerTime(c *EffectContext) EffectResult {
	p := c.Target
	res := EffectResult{Damage: c.Damage, Obvious: true, Resisted: p.Resists(element.Time)}
	if res.Resisted || c.shadowed() {
		return res
	}
	s := c.stream()
	switch roll := s.Randint1(10); {
	case roll <= 5:
		if p.PlayerRace != actor.PlayerAndroid {
			c.say(narrate.TimeExp, p.Name)
			loseExp(p, 100+(p.Exp/100)*drainLifeRate)
		}
	case roll <= 9:
		stat := actor.Stat(s.Randint0(actor.StatCount))
		c.say(narrate.TimeStat, p.Name, stat.Adjective())
		scaleStat(p, stat, 3, 4)
	default:
		c.say(narrate.TimeAll, p.Name)
		for stat := range actor.Stat(actor.StatCount) {
			scaleStat(p, stat, 7, 8)
		}
	}
	return res
}

func playerExpVamp(c *EffectContext) EffectResult {
	rolled := c.Damage
	d := c.stream().Damroll(60, 6) + (c.Target.Exp/100)*drainLifeRate
	return EffectResult{Damage: rolled, Obvious: true, Status: func(c *EffectContext) bool {
		if c.Target.Living() && rolled > 5 {
			if c.Attacker.Heal(c.stream().Damroll(4, rolled/6)) > 0 {
				c.say(narrate.Healed, c.Attacker.Name)
			}
		}
		if c.shadowed() {
			return true
		}
		c.drainExp(d, d/10, 50)
		return true
	}}
}

func playerDrainMana(c *EffectContext) EffectResult {
	p := c.Target
	if c.shadowed() {
		c.say(narrate.Shadow, p.Name)
	} else {
		p.SP = max(p.SP-c.Damage, 0)
		c.say(narrate.ManaDrained, p.Name)
	}
	return EffectResult{Obvious: true, NoCut: true}
}

func playerSuperHurt(c *EffectContext) EffectResult {
	s := c.stream()
	p := c.Target
	crit := s.Randint1(c.Level*2+300) > p.AC+200 || s.OneIn(invulnPierce)
	if crit && !c.shadowed() {
		c.say(narrate.CriticalHit)
		return EffectResult{Damage: max(c.Damage, 2*Mitigate(c.Damage, p.AC)), Obvious: true}
	}
	return playerHurt(c)
}

func playerInertia(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Obvious: true, Status: func(c *EffectContext) bool {
		if !c.extend(condition.Slow, 4+c.stream().Randint0(c.Level/10)) {
			return false
		}
		c.say(narrate.Slowed, c.Target.Name)
		return true
	}}
}

func playerStun(c *EffectContext) EffectResult {
	p := c.Target
	res := EffectResult{Damage: c.Damage, Resisted: p.Resists(element.Sound) || p.Immune(element.Sound)}
	if !res.Resisted {
		res.Status = func(c *EffectContext) bool {
			if !c.extend(condition.Stunned, 10+c.stream().Randint1(c.Level/4)) {
				return false
			}
			c.say(narrate.Stunned, c.Target.Name)
			return true
		}
	}
	return res
}

func playerHungry(c *EffectContext) EffectResult {
	return EffectResult{Damage: c.Damage, Obvious: true, Status: func(c *EffectContext) bool {
		c.Target.Food = max(c.Target.Food-hungerDrain, 0)
		c.say(narrate.Hungry, c.Target.Name)
		return true
	}}
}
