package actor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/element"
)

// Slay is a bitset of race-slaying weapon flags. Each category has a slay
// and a stronger kill variant.
type Slay uint32

const (
	SlayAnimal Slay = 1 << iota
	KillAnimal
	SlayEvil
	KillEvil
	SlayGood
	KillGood
	SlayHuman
	KillHuman
	SlayUndead
	KillUndead
	SlayDemon
	KillDemon
	SlayOrc
	KillOrc
	SlayTroll
	KillTroll
	SlayGiant
	KillGiant
	SlayDragon
	KillDragon
)

var slayNames = map[string]Slay{
	"slay_animal": SlayAnimal, "kill_animal": KillAnimal,
	"slay_evil": SlayEvil, "kill_evil": KillEvil,
	"slay_good": SlayGood, "kill_good": KillGood,
	"slay_human": SlayHuman, "kill_human": KillHuman,
	"slay_undead": SlayUndead, "kill_undead": KillUndead,
	"slay_demon": SlayDemon, "kill_demon": KillDemon,
	"slay_orc": SlayOrc, "kill_orc": KillOrc,
	"slay_troll": SlayTroll, "kill_troll": KillTroll,
	"slay_giant": SlayGiant, "kill_giant": KillGiant,
	"slay_dragon": SlayDragon, "kill_dragon": KillDragon,
}

// Has reports whether every bit of f is set.
func (s Slay) Has(f Slay) bool { return s&f == f && f != 0 }

// Weapon is a wielded weapon. Weapons are read-only during resolution.
type Weapon struct {
	ID     string
	Name   string
	Dice   dice.Dice
	ToHit  int
	ToDam  int
	Weight int // tenths of a pound

	Slays  Slay
	Brands ElementSet

	// VorpalChance is the 1-in-N trigger and chain denominator; 0 means the
	// weapon is not vorpal.
	VorpalChance int

	Impact      bool
	Vampiric    bool
	ConfuseHit  bool
	DeathScythe bool
	Throwable   bool
}

// Vorpal reports whether the weapon can roll the vorpal chain.
func (w *Weapon) Vorpal() bool { return w.VorpalChance > 0 }

// Fists is the weapon used by an empty-handed attacker.
func Fists() *Weapon {
	return &Weapon{ID: "fists", Name: "bare hands", Dice: dice.D(1, 1)}
}

type weaponYAML struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Dice         dice.Dice `yaml:"dice"`
	ToHit        int       `yaml:"to_hit"`
	ToDam        int       `yaml:"to_dam"`
	Weight       int       `yaml:"weight"`
	Slays        []string  `yaml:"slays"`
	Brands       []string  `yaml:"brands"`
	VorpalChance int       `yaml:"vorpal_chance"`
	Flags        []string  `yaml:"flags"`
}

// UnmarshalYAML decodes a weapon definition with named slays, brands and flags.
func (w *Weapon) UnmarshalYAML(node *yaml.Node) error {
	var raw weaponYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	out := Weapon{
		ID:           raw.ID,
		Name:         raw.Name,
		Dice:         raw.Dice,
		ToHit:        raw.ToHit,
		ToDam:        raw.ToDam,
		Weight:       raw.Weight,
		VorpalChance: raw.VorpalChance,
	}
	for _, n := range raw.Slays {
		f, ok := slayNames[n]
		if !ok {
			return fmt.Errorf("weapon %q: unknown slay %q", raw.ID, n)
		}
		out.Slays |= f
	}
	for _, n := range raw.Brands {
		e, err := element.Parse(n)
		if err != nil {
			return fmt.Errorf("weapon %q: %w", raw.ID, err)
		}
		out.Brands = out.Brands.With(e)
	}
	for _, n := range raw.Flags {
		switch n {
		case "impact":
			out.Impact = true
		case "vampiric":
			out.Vampiric = true
		case "confuse":
			out.ConfuseHit = true
		case "death_scythe":
			out.DeathScythe = true
		case "throwable":
			out.Throwable = true
		default:
			return fmt.Errorf("weapon %q: unknown flag %q", raw.ID, n)
		}
	}
	*w = out
	return nil
}

// Validate checks that the Weapon satisfies its invariants.
// Precondition: w is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (w *Weapon) Validate() error {
	var errs []error
	if w.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if w.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if err := w.Dice.Validate(); err != nil {
		errs = append(errs, err)
	}
	if w.Weight < 0 {
		errs = append(errs, errors.New("weight must not be negative"))
	}
	for _, e := range w.brandList() {
		if !e.IsBase() {
			errs = append(errs, fmt.Errorf("brand %s is not a base element", e))
		}
	}
	if w.VorpalChance != 0 && w.VorpalChance != 4 && w.VorpalChance != 6 {
		errs = append(errs, fmt.Errorf("vorpal_chance must be 0, 4 or 6, got %d", w.VorpalChance))
	}
	if len(errs) > 0 {
		return fmt.Errorf("weapon %q: %w", w.ID, errors.Join(errs...))
	}
	return nil
}

func (w *Weapon) brandList() []element.Element {
	var out []element.Element
	for e := element.None; e <= element.Force; e++ {
		if w.Brands.Has(e) {
			out = append(out, e)
		}
	}
	return out
}

// LoadWeapons reads all *.yaml files from dir, each holding one weapon.
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid weapons keyed by ID or the first encountered error.
func LoadWeapons(dir string) (map[string]*Weapon, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("LoadWeapons: cannot read directory %q: %w", dir, err)
	}

	weapons := make(map[string]*Weapon)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot read file %q: %w", path, err)
		}
		var w Weapon
		if err := yaml.Unmarshal(data, &w); err != nil {
			return nil, fmt.Errorf("LoadWeapons: cannot parse file %q: %w", path, err)
		}
		if err := w.Validate(); err != nil {
			return nil, fmt.Errorf("LoadWeapons: invalid weapon in %q: %w", path, err)
		}
		if _, dup := weapons[w.ID]; dup {
			return nil, fmt.Errorf("LoadWeapons: duplicate weapon id %q in %q", w.ID, path)
		}
		weapons[w.ID] = &w
	}
	return weapons, nil
}
