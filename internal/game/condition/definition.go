// Package condition holds the timed status catalogue (confusion, stun, cuts,
// fear, temporary resistances, reactive auras) and the per-actor active set.
package condition

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Status identifiers used by the combat engine.
const (
	Confused     = "confused"
	Stunned      = "stunned"
	Blind        = "blind"
	Afraid       = "afraid"
	Paralyzed    = "paralyzed"
	Asleep       = "asleep"
	Poisoned     = "poisoned"
	Cut          = "cut"
	Slow         = "slow"
	Invulnerable = "invulnerable"
	Multishadow  = "multishadow"
	ProtEvil     = "prot_evil"
	EyeForEye    = "eye_for_eye"
	IaiStance    = "iai_stance"
	HolyAura     = "holy_aura"
	ForceAura    = "force_aura"
	ConfuseTouch = "confusing_touch"
	OpposeAcid   = "oppose_acid"
	OpposeElec   = "oppose_elec"
	OpposeFire   = "oppose_fire"
	OpposeCold   = "oppose_cold"
	OpposePois   = "oppose_pois"
)

// Duration types.
const (
	// DurationRounds counts down by one each Tick.
	DurationRounds = "rounds"
	// DurationMagnitude is a severity that also decays each Tick (cuts, stun).
	DurationMagnitude = "magnitude"
	// DurationPermanent never decays.
	DurationPermanent = "permanent"
)

// ConditionDef is the static definition of a status, loaded from YAML.
type ConditionDef struct {
	ID                string `yaml:"id"`
	Name              string `yaml:"name"`
	Description       string `yaml:"description"`
	DurationType      string `yaml:"duration_type"`
	MaxValue          int    `yaml:"max_value"` // 0 = uncapped
	ToHitPenalty      int    `yaml:"to_hit_penalty"`
	ToDamPenalty      int    `yaml:"to_dam_penalty"`
	HeavyThreshold    int    `yaml:"heavy_threshold"` // value above which the heavy penalties apply; 0 = none
	HeavyToHitPenalty int    `yaml:"heavy_to_hit_penalty"`
	HeavyToDamPenalty int    `yaml:"heavy_to_dam_penalty"`
	PreventsMelee     bool   `yaml:"prevents_melee"`
}

// Validate checks the definition's invariants.
//
// Postcondition: Returns nil iff ID and Name are set, DurationType is known and
// MaxValue is non-negative.
func (d *ConditionDef) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("condition: id must not be empty")
	}
	if d.Name == "" {
		return fmt.Errorf("condition %q: name must not be empty", d.ID)
	}
	switch d.DurationType {
	case DurationRounds, DurationMagnitude, DurationPermanent:
	default:
		return fmt.Errorf("condition %q: duration_type must be one of [rounds, magnitude, permanent], got %q", d.ID, d.DurationType)
	}
	if d.MaxValue < 0 {
		return fmt.Errorf("condition %q: max_value must be >= 0", d.ID)
	}
	return nil
}

// Registry holds all known ConditionDefs keyed by ID.
type Registry struct {
	defs map[string]*ConditionDef
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*ConditionDef)}
}

// DefaultRegistry returns a Registry holding every status the combat engine
// references.
//
// Postcondition: Get succeeds for every exported status identifier.
func DefaultRegistry() *Registry {
	reg := NewRegistry()
	for _, d := range builtins() {
		def := d
		reg.Register(&def)
	}
	return reg
}

func builtins() []ConditionDef {
	return []ConditionDef{
		{ID: Confused, Name: "Confused", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Stunned, Name: "Stunned", DurationType: DurationMagnitude, MaxValue: 10000,
			ToHitPenalty: 5, ToDamPenalty: 5, HeavyThreshold: 50, HeavyToHitPenalty: 20, HeavyToDamPenalty: 20},
		{ID: Blind, Name: "Blind", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Afraid, Name: "Afraid", DurationType: DurationRounds, MaxValue: 10000, PreventsMelee: true},
		{ID: Paralyzed, Name: "Paralyzed", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Asleep, Name: "Asleep", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Poisoned, Name: "Poisoned", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Cut, Name: "Cut", DurationType: DurationMagnitude, MaxValue: 10000},
		{ID: Slow, Name: "Slow", DurationType: DurationRounds, MaxValue: 10000},
		{ID: Invulnerable, Name: "Invulnerable", DurationType: DurationRounds},
		{ID: Multishadow, Name: "Multishadow", DurationType: DurationRounds},
		{ID: ProtEvil, Name: "Protection from Evil", DurationType: DurationRounds},
		{ID: EyeForEye, Name: "Eye for an Eye", DurationType: DurationRounds},
		{ID: IaiStance, Name: "Iai Stance", DurationType: DurationPermanent},
		{ID: HolyAura, Name: "Holy Aura", DurationType: DurationRounds},
		{ID: ForceAura, Name: "Force Aura", DurationType: DurationRounds},
		{ID: ConfuseTouch, Name: "Confusing Touch", DurationType: DurationPermanent},
		{ID: OpposeAcid, Name: "Resist Acid", DurationType: DurationRounds},
		{ID: OpposeElec, Name: "Resist Lightning", DurationType: DurationRounds},
		{ID: OpposeFire, Name: "Resist Fire", DurationType: DurationRounds},
		{ID: OpposeCold, Name: "Resist Cold", DurationType: DurationRounds},
		{ID: OpposePois, Name: "Resist Poison", DurationType: DurationRounds},
	}
}

// Register adds def to the registry, overwriting any existing entry with the same ID.
// Precondition: def must not be nil and def.ID must not be empty.
func (r *Registry) Register(def *ConditionDef) {
	r.defs[def.ID] = def
}

// Get returns the ConditionDef for id, or (nil, false) if not found.
func (r *Registry) Get(id string) (*ConditionDef, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// All returns a snapshot slice of all registered ConditionDefs ordered by ID.
func (r *Registry) All() []*ConditionDef {
	out := make([]*ConditionDef, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// LoadDirectory reads every *.yaml file in dir and overlays the parsed
// definitions on top of DefaultRegistry, so content can retune penalties and
// caps without dropping statuses the engine depends on.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns a non-nil Registry, or an error if any file fails to parse or validate.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading condition dir %q: %w", dir, err)
	}
	reg := DefaultRegistry()
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def ConditionDef
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("validating %q: %w", path, err)
		}
		reg.Register(&def)
	}
	return reg, nil
}
