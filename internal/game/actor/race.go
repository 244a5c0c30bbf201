package actor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/delve/internal/game/element"
)

// GoldDrop defines the range of gold a monster can drop on death.
type GoldDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	ItemID string  `yaml:"item"`
	Name   string  `yaml:"name"`
	Kind   string  `yaml:"kind"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootTable defines the possible drops for a monster race.
type LootTable struct {
	Gold  *GoldDrop  `yaml:"gold"`
	Items []ItemDrop `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants.
//
// Precondition: lt must not be nil.
// Postcondition: Returns nil iff all gold and item constraints hold;
// an empty loot table (no gold, no items) is valid.
func (lt *LootTable) Validate() error {
	if lt.Gold != nil {
		if lt.Gold.Min < 0 {
			return fmt.Errorf("loot table: gold min must be >= 0, got %d", lt.Gold.Min)
		}
		if lt.Gold.Min > lt.Gold.Max {
			return fmt.Errorf("loot table: gold min (%d) must be <= max (%d)", lt.Gold.Min, lt.Gold.Max)
		}
	}
	for i, item := range lt.Items {
		if item.ItemID == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item id", i)
		}
		if _, ok := itemKindNames[item.Kind]; item.Kind != "" && !ok {
			return fmt.Errorf("loot table: item[%d] has unknown kind %q", i, item.Kind)
		}
		if item.Chance <= 0 || item.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, item.Chance)
		}
		if item.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, item.MinQty)
		}
		if item.MinQty > item.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, item.MinQty, item.MaxQty)
		}
	}
	return nil
}

// KindOf resolves a loot entry's kind name; unknown or empty names are misc.
func KindOf(name string) ItemKind { return itemKindNames[name] }

// Race defines a reusable monster archetype loaded from YAML.
type Race struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Level       int               `yaml:"level"`
	MaxHP       int               `yaml:"max_hp"`
	AC          int               `yaml:"ac"`
	Alignment   string            `yaml:"alignment"`
	Flags       []string          `yaml:"flags"`
	Traits      []string          `yaml:"traits"`
	Immune      []element.Element `yaml:"immune"`
	Resist      []element.Element `yaml:"resist"`
	Vulnerable  []element.Element `yaml:"vulnerable"`
	Auras       []string          `yaml:"auras"`
	Blows       []BlowDescriptor  `yaml:"blows"`
	Unique      bool              `yaml:"unique"`
	Quest       bool              `yaml:"quest"`
	NeverBlow   bool              `yaml:"never_blow"`
	// OnDeath names a Lua function in the scripts directory called when a
	// monster of this race dies. Empty falls back to the global on_death.
	OnDeath string     `yaml:"on_death"`
	Loot    *LootTable `yaml:"loot"`

	raceFlags RaceFlag
	traits    Trait
	auras     Aura
	align     Alignment
}

// Validate checks that the race satisfies basic invariants and resolves its
// named flags.
//
// Precondition: r must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, Level >= 1,
// MaxHP >= 1, AC >= 0, at most MaxBlows valid blows are listed and every
// flag, trait, aura and alignment name is known.
func (r *Race) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("race: id must not be empty")
	}
	if r.Name == "" {
		return fmt.Errorf("race %q: name must not be empty", r.ID)
	}
	if r.Level < 1 {
		return fmt.Errorf("race %q: level must be >= 1", r.ID)
	}
	if r.MaxHP < 1 {
		return fmt.Errorf("race %q: max_hp must be >= 1", r.ID)
	}
	if r.AC < 0 {
		return fmt.Errorf("race %q: ac must be >= 0", r.ID)
	}
	if len(r.Blows) > MaxBlows {
		return fmt.Errorf("race %q: at most %d blows, got %d", r.ID, MaxBlows, len(r.Blows))
	}
	for i, b := range r.Blows {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("race %q: blow[%d]: %w", r.ID, i, err)
		}
		if b.Empty() {
			return fmt.Errorf("race %q: blow[%d] has no method", r.ID, i)
		}
	}
	var err error
	if r.raceFlags, err = ParseRaceFlags(r.Flags); err != nil {
		return fmt.Errorf("race %q: %w", r.ID, err)
	}
	if r.traits, err = ParseTraits(r.Traits); err != nil {
		return fmt.Errorf("race %q: %w", r.ID, err)
	}
	if r.auras, err = ParseAuras(r.Auras); err != nil {
		return fmt.Errorf("race %q: %w", r.ID, err)
	}
	if r.align, err = ParseAlignment(r.Alignment); err != nil {
		return fmt.Errorf("race %q: %w", r.ID, err)
	}
	if r.Loot != nil {
		if err := r.Loot.Validate(); err != nil {
			return fmt.Errorf("race %q: %w", r.ID, err)
		}
	}
	return nil
}

// RaceFlags returns the resolved race flags. Valid only after Validate.
func (r *Race) RaceFlags() RaceFlag { return r.raceFlags }

// LoadRaceFromBytes parses a single monster race from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Race.
// Postcondition: Returns a validated *Race, or an error.
func LoadRaceFromBytes(data []byte) (*Race, error) {
	var r Race
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing race YAML: %w", err)
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// LoadRaces reads all *.yaml files in dir and returns the parsed races keyed by ID.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all races or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadRaces(dir string) (map[string]*Race, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading race dir %q: %w", dir, err)
	}

	races := make(map[string]*Race)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		r, err := LoadRaceFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		if _, dup := races[r.ID]; dup {
			return nil, fmt.Errorf("loading %q: duplicate race id %q", path, r.ID)
		}
		races[r.ID] = r
	}
	return races, nil
}
