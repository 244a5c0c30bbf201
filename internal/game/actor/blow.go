package actor

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
)

// MaxBlows is the number of innate blow slots a monster race carries.
const MaxBlows = 4

// Method is how a blow is delivered. It decides contact and the cut/stun
// side effects of the hit, never the damage itself.
type Method int

const (
	MethodNone Method = iota
	MethodHit
	MethodTouch
	MethodPunch
	MethodKick
	MethodClaw
	MethodBite
	MethodSting
	MethodSlash
	MethodButt
	MethodCrush
	MethodEngulf
	MethodCharge
	MethodCrawl
	MethodDrool
	MethodSpit
	MethodExplode
	MethodGaze
	MethodWail
	MethodSpore
	MethodBeg
	MethodInsult
	MethodMoan
	MethodShow
	methodCount
)

// MethodInfo is the static behavior of a blow method.
type MethodInfo struct {
	Name    string
	Contact bool
	Cut     bool
	Stun    bool
	Explode bool
}

var methodInfo = [methodCount]MethodInfo{
	MethodNone:    {Name: "none"},
	MethodHit:     {Name: "hit", Contact: true, Cut: true, Stun: true},
	MethodTouch:   {Name: "touch", Contact: true},
	MethodPunch:   {Name: "punch", Contact: true, Stun: true},
	MethodKick:    {Name: "kick", Contact: true, Stun: true},
	MethodClaw:    {Name: "claw", Contact: true, Cut: true},
	MethodBite:    {Name: "bite", Contact: true, Cut: true},
	MethodSting:   {Name: "sting", Contact: true},
	MethodSlash:   {Name: "slash", Contact: true, Cut: true},
	MethodButt:    {Name: "butt", Contact: true, Stun: true},
	MethodCrush:   {Name: "crush", Contact: true, Stun: true},
	MethodEngulf:  {Name: "engulf", Contact: true},
	MethodCharge:  {Name: "charge", Contact: true},
	MethodCrawl:   {Name: "crawl", Contact: true},
	MethodDrool:   {Name: "drool"},
	MethodSpit:    {Name: "spit"},
	MethodExplode: {Name: "explode", Explode: true},
	MethodGaze:    {Name: "gaze"},
	MethodWail:    {Name: "wail"},
	MethodSpore:   {Name: "spore"},
	MethodBeg:     {Name: "beg"},
	MethodInsult:  {Name: "insult"},
	MethodMoan:    {Name: "moan"},
	MethodShow:    {Name: "show"},
}

// Info returns the method's static behavior.
//
// Precondition: m must be a defined Method.
func (m Method) Info() MethodInfo {
	if m < 0 || m >= methodCount {
		panic(fmt.Sprintf("actor: undefined blow method %d", int(m)))
	}
	return methodInfo[m]
}

// Valid reports whether m is a defined method.
func (m Method) Valid() bool { return m >= 0 && m < methodCount }

func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("method(%d)", int(m))
	}
	return methodInfo[m].Name
}

// ParseMethod maps a method name to its Method.
func ParseMethod(s string) (Method, error) {
	for i, info := range methodInfo {
		if info.Name == s {
			return Method(i), nil
		}
	}
	return MethodNone, fmt.Errorf("actor: unknown blow method %q", s)
}

// UnmarshalYAML decodes a method name.
func (m *Method) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseMethod(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Effect is the closed set of blow effect tags.
type Effect int

const (
	EffectNone Effect = iota
	EffectHurt
	EffectPoison
	EffectUnBonus
	EffectUnPower
	EffectEatGold
	EffectEatItem
	EffectEatFood
	EffectEatLite
	EffectAcid
	EffectElec
	EffectFire
	EffectCold
	EffectBlind
	EffectConfuse
	EffectTerrify
	EffectParalyze
	EffectLoseStr
	EffectLoseInt
	EffectLoseWis
	EffectLoseDex
	EffectLoseCon
	EffectLoseChr
	EffectLoseAll
	EffectShatter
	EffectExp10
	EffectExp20
	EffectExp40
	EffectExp80
	EffectDisease
	EffectTime
	EffectExpVamp
	EffectDrainMana
	EffectSuperHurt
	EffectInertia
	EffectStun
	EffectHungry
	EffectFlavor
	// EffectCount is the number of defined effect tags.
	EffectCount
)

var effectNames = [EffectCount]string{
	"none", "hurt", "poison", "un_bonus", "un_power",
	"eat_gold", "eat_item", "eat_food", "eat_lite",
	"acid", "elec", "fire", "cold",
	"blind", "confuse", "terrify", "paralyze",
	"lose_str", "lose_int", "lose_wis", "lose_dex", "lose_con", "lose_chr", "lose_all",
	"shatter", "exp_10", "exp_20", "exp_40", "exp_80",
	"disease", "time", "exp_vamp", "dr_mana", "superhurt",
	"inertia", "stun", "hungry", "flavor",
}

// Valid reports whether e is a defined effect tag.
func (e Effect) Valid() bool { return e >= 0 && e < EffectCount }

func (e Effect) String() string {
	if !e.Valid() {
		return fmt.Sprintf("effect(%d)", int(e))
	}
	return effectNames[e]
}

// ParseEffect maps an effect tag name to its Effect.
func ParseEffect(s string) (Effect, error) {
	for i, n := range effectNames {
		if n == s {
			return Effect(i), nil
		}
	}
	return EffectNone, fmt.Errorf("actor: unknown blow effect %q", s)
}

// UnmarshalYAML decodes an effect tag name.
func (e *Effect) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseEffect(s)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// BlowDescriptor is one innate attack of a monster race.
type BlowDescriptor struct {
	Method Method    `yaml:"method"`
	Effect Effect    `yaml:"effect"`
	Dice   dice.Dice `yaml:"dice"`
}

// Empty reports whether the slot holds no blow. The blow loop stops at the
// first empty slot.
func (b BlowDescriptor) Empty() bool { return b.Method == MethodNone }

// Validate checks the descriptor's tags and dice.
func (b BlowDescriptor) Validate() error {
	if !b.Method.Valid() {
		return fmt.Errorf("blow: undefined method %d", int(b.Method))
	}
	if !b.Effect.Valid() {
		return fmt.Errorf("blow: undefined effect %d", int(b.Effect))
	}
	return b.Dice.Validate()
}
