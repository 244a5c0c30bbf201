package actor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// StatBlock is the YAML form of Stats.
type StatBlock struct {
	Str int `yaml:"str"`
	Int int `yaml:"int"`
	Wis int `yaml:"wis"`
	Dex int `yaml:"dex"`
	Con int `yaml:"con"`
	Chr int `yaml:"chr"`
}

func (b StatBlock) stats() Stats {
	return Stats{b.Str, b.Int, b.Wis, b.Dex, b.Con, b.Chr}
}

// PackEntry is the YAML form of a starting pack stack.
type PackEntry struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Quantity int    `yaml:"quantity"`
	Charges  int    `yaml:"charges"`
	Enchant  int    `yaml:"enchant"`
	Equipped bool   `yaml:"equipped"`
	Artifact bool   `yaml:"artifact"`
}

// PlayerSpec describes a ready-made player character. Character creation is
// out of scope; specs are authored by hand.
type PlayerSpec struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Race        string            `yaml:"race"`
	Class       string            `yaml:"class"`
	Personality string            `yaml:"personality"`
	Level       int               `yaml:"level"`
	Exp         int               `yaml:"exp"`
	Stats       StatBlock         `yaml:"stats"`
	Sustain     []string          `yaml:"sustain"`
	AC          int               `yaml:"ac"`
	ToHit       int               `yaml:"to_hit"`
	ToDam       int               `yaml:"to_dam"`
	Skill       int               `yaml:"skill"`
	SaveSkill   int               `yaml:"save_skill"`
	MaxHP       int               `yaml:"max_hp"`
	MaxSP       int               `yaml:"max_sp"`
	Food        int               `yaml:"food"`
	Gold        int               `yaml:"gold"`
	Light       int               `yaml:"light"`
	Weapon      string            `yaml:"weapon"`
	Blows       int               `yaml:"blows"`
	Alignment   string            `yaml:"alignment"`
	Traits      []string          `yaml:"traits"`
	Immune      []element.Element `yaml:"immune"`
	Resist      []element.Element `yaml:"resist"`
	Vulnerable  []element.Element `yaml:"vulnerable"`
	Auras       []string          `yaml:"auras"`
	Pack        []PackEntry       `yaml:"pack"`
}

var sustainNames = map[string]Stat{
	"str": StatStr, "int": StatInt, "wis": StatWis,
	"dex": StatDex, "con": StatCon, "chr": StatChr,
}

// LoadPlayerSpec reads a single player spec from a YAML file.
//
// Postcondition: Returns the decoded spec or an error naming path.
func LoadPlayerSpec(path string) (*PlayerSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	var spec PlayerSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing player %q: %w", path, err)
	}
	return &spec, nil
}

// NewPlayer builds the player actor from spec, wielding the named weapon from
// weapons (bare hands when spec.Weapon is empty).
//
// Precondition: reg must be non-nil.
// Postcondition: Returns a player at full HP and SP, or an error on the first
// unknown name or invalid value.
func NewPlayer(spec *PlayerSpec, weapons map[string]*Weapon, reg *condition.Registry) (*Actor, error) {
	if spec.ID == "" || spec.Name == "" {
		return nil, fmt.Errorf("player: id and name must not be empty")
	}
	if spec.Level < 1 || spec.MaxHP < 1 {
		return nil, fmt.Errorf("player %q: level and max_hp must be >= 1", spec.ID)
	}
	race, err := ParsePlayerRace(spec.Race)
	if err != nil {
		return nil, err
	}
	class, err := ParseClass(spec.Class)
	if err != nil {
		return nil, err
	}
	pers := PersonalityOrdinary
	if spec.Personality != "" {
		if pers, err = ParsePersonality(spec.Personality); err != nil {
			return nil, err
		}
	}
	traits, err := ParseTraits(spec.Traits)
	if err != nil {
		return nil, err
	}
	auras, err := ParseAuras(spec.Auras)
	if err != nil {
		return nil, err
	}
	align, err := ParseAlignment(spec.Alignment)
	if err != nil {
		return nil, err
	}

	w := Fists()
	if spec.Weapon != "" {
		var ok bool
		if w, ok = weapons[spec.Weapon]; !ok {
			return nil, fmt.Errorf("player %q: unknown weapon %q", spec.ID, spec.Weapon)
		}
	}

	blows := spec.Blows
	if blows < 1 {
		blows = 1
	}

	stats := spec.Stats.stats()
	for i, v := range stats {
		if v < MinStat {
			stats[i] = MinStat
		}
	}

	a := &Actor{
		ID:          spec.ID,
		Name:        spec.Name,
		Kind:        KindPlayer,
		PlayerRace:  race,
		Class:       class,
		Personality: pers,
		Level:       spec.Level,
		Exp:         spec.Exp,
		MaxExp:      spec.Exp,
		Stats:       stats,
		MaxStats:    stats,
		AC:          spec.AC,
		ToHit:       spec.ToHit,
		ToDam:       spec.ToDam,
		Skill:       spec.Skill,
		SaveSkill:   spec.SaveSkill,
		HP:          spec.MaxHP,
		MaxHP:       spec.MaxHP,
		SP:          spec.MaxSP,
		MaxSP:       spec.MaxSP,
		Food:        spec.Food,
		Gold:        spec.Gold,
		Light:       spec.Light,
		Status:      condition.NewActiveSet(reg),
		Resist:      Resistances{Immune: Elements(spec.Immune...), Resist: Elements(spec.Resist...), Vulnerable: Elements(spec.Vulnerable...)},
		Traits:      traits,
		Alignment:   align,
		Auras:       auras,
		Weapon:      w,
		BlowCount:   blows,
	}
	for _, s := range spec.Sustain {
		st, ok := sustainNames[s]
		if !ok {
			return nil, fmt.Errorf("player %q: unknown sustain %q", spec.ID, s)
		}
		a.Sustain[st] = true
	}
	for _, e := range spec.Pack {
		if e.Quantity < 1 {
			return nil, fmt.Errorf("player %q: pack item %q needs quantity >= 1", spec.ID, e.ID)
		}
		a.Pack = append(a.Pack, Item{
			ID: e.ID, Name: e.Name, Kind: KindOf(e.Kind), Quantity: e.Quantity,
			Charges: e.Charges, Enchant: e.Enchant, Equipped: e.Equipped, Artifact: e.Artifact,
		})
	}
	return a, nil
}
