// Package element names the damage types that blows, brands, auras and area
// projections carry.
package element

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Element is a damage type.
type Element int

const (
	None Element = iota
	Missile
	Acid
	Elec
	Fire
	Cold
	Poison
	Nether
	Confusion
	Disenchant
	Time
	Inertia
	Sound
	Mana
	Shards
	Rocket
	TurnAll
	OldSleep
	OldDrain
	Holy
	Force
)

var names = [...]string{
	None:       "none",
	Missile:    "missile",
	Acid:       "acid",
	Elec:       "elec",
	Fire:       "fire",
	Cold:       "cold",
	Poison:     "poison",
	Nether:     "nether",
	Confusion:  "confusion",
	Disenchant: "disenchant",
	Time:       "time",
	Inertia:    "inertia",
	Sound:      "sound",
	Mana:       "mana",
	Shards:     "shards",
	Rocket:     "rocket",
	TurnAll:    "turn_all",
	OldSleep:   "old_sleep",
	OldDrain:   "old_drain",
	Holy:       "holy",
	Force:      "force",
}

// Base lists the five elements that brands and basic resistances cover.
var Base = []Element{Acid, Elec, Fire, Cold, Poison}

// String returns the lower-case identifier.
func (e Element) String() string {
	if e < 0 || int(e) >= len(names) {
		return "unknown"
	}
	return names[e]
}

// Parse maps an identifier back to its Element.
func Parse(s string) (Element, error) {
	for i, n := range names {
		if n == s {
			return Element(i), nil
		}
	}
	return None, fmt.Errorf("element: unknown element %q", s)
}

// UnmarshalYAML decodes the identifier form.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// IsBase reports whether e is one of the five base elements.
func (e Element) IsBase() bool {
	switch e {
	case Acid, Elec, Fire, Cold, Poison:
		return true
	}
	return false
}
