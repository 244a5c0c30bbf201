// Package config provides Viper-based configuration loading for the skirmish runner.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// CombatConfig holds melee resolution settings.
type CombatConfig struct {
	// Seed seeds the dice stream. Zero selects the crypto source.
	Seed uint64 `mapstructure:"seed"`
	// ArenaBattle removes the floor that protects unique and quest monsters
	// from monster damage.
	ArenaBattle bool `mapstructure:"arena_battle"`
	// Locale selects the narration catalog, e.g. "en-US".
	Locale string `mapstructure:"locale"`
	// MaxPlayerBlows caps the player's blows per turn; 0 means no cap.
	MaxPlayerBlows int `mapstructure:"max_player_blows"`
	// Rounds is how many attack exchanges a skirmish runs before calling it a draw.
	Rounds int `mapstructure:"rounds"`
}

// ArenaConfig holds the battlefield dimensions.
type ArenaConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// ContentConfig names the directories content is loaded from.
type ContentConfig struct {
	RacesDir      string `mapstructure:"races_dir"`
	WeaponsDir    string `mapstructure:"weapons_dir"`
	ConditionsDir string `mapstructure:"conditions_dir"`
	PlayersDir    string `mapstructure:"players_dir"`
	ScriptsDir    string `mapstructure:"scripts_dir"`
}

// ScriptingConfig holds Lua sandbox settings.
type ScriptingConfig struct {
	// InstructionLimit bounds the work a single hook call may do; 0 selects
	// the sandbox default.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging   LoggingConfig   `mapstructure:"logging"`
	Combat    CombatConfig    `mapstructure:"combat"`
	Arena     ArenaConfig     `mapstructure:"arena"`
	Content   ContentConfig   `mapstructure:"content"`
	Scripting ScriptingConfig `mapstructure:"scripting"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateCombat(c.Combat); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}
	if c.Scripting.InstructionLimit < 0 {
		errs = append(errs, fmt.Sprintf("scripting.instruction_limit must be >= 0, got %d", c.Scripting.InstructionLimit))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateCombat(c CombatConfig) error {
	var errs []string
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Sprintf("combat.locale %q is not a language tag", c.Locale))
	}
	if c.MaxPlayerBlows < 0 {
		errs = append(errs, fmt.Sprintf("combat.max_player_blows must be >= 0, got %d", c.MaxPlayerBlows))
	}
	if c.Rounds < 1 {
		errs = append(errs, fmt.Sprintf("combat.rounds must be >= 1, got %d", c.Rounds))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	if a.Width < 1 || a.Height < 1 {
		return fmt.Errorf("arena dimensions must be positive, got %dx%d", a.Width, a.Height)
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.RacesDir == "" {
		errs = append(errs, "content.races_dir must not be empty")
	}
	if c.WeaponsDir == "" {
		errs = append(errs, "content.weapons_dir must not be empty")
	}
	if c.PlayersDir == "" {
		errs = append(errs, "content.players_dir must not be empty")
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with DELVE_ prefix
	v.SetEnvPrefix("DELVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the default settings.
//
// Postcondition: LoadFromViper(Defaults()) succeeds.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("combat.seed", 0)
	v.SetDefault("combat.arena_battle", false)
	v.SetDefault("combat.locale", "en-US")
	v.SetDefault("combat.max_player_blows", 0)
	v.SetDefault("combat.rounds", 20)

	v.SetDefault("arena.width", 16)
	v.SetDefault("arena.height", 16)

	v.SetDefault("content.races_dir", "content/races")
	v.SetDefault("content.weapons_dir", "content/weapons")
	v.SetDefault("content.conditions_dir", "")
	v.SetDefault("content.players_dir", "content/players")
	v.SetDefault("content.scripts_dir", "content/scripts")

	v.SetDefault("scripting.instruction_limit", 0)
}
