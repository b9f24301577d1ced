// Package config loads and saves the rule set a game session runs with.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"forest-wars/internal/game"

	"gopkg.in/yaml.v3"
)

var configProfile string

// SetProfile sets the config profile for separate rule sets.
func SetProfile(profile string) {
	configProfile = profile
}

// Config holds the game configuration.
type Config struct {
	Rules RulesConfig `yaml:"rules"`
	Log   LogConfig   `yaml:"log"`

	// Seed fixes the field layout; zero means a fresh seed per session.
	Seed int64 `yaml:"seed,omitempty"`
}

// RulesConfig mirrors game.Rules in file form.
type RulesConfig struct {
	Width              int           `yaml:"width"`
	Height             int           `yaml:"height"`
	StartBuildingCount int           `yaml:"start_building_count"`
	StartUnits         int           `yaml:"start_units"`
	NeutralMinUnits    int           `yaml:"neutral_min_units"`
	NeutralMaxUnits    int           `yaml:"neutral_max_units"`
	UpgradeCosts       [2]int        `yaml:"upgrade_costs,flow"`
	IncomeRates        [2]int        `yaml:"income_rates,flow"`
	TurnDuration       time.Duration `yaml:"turn_duration"`
	TickInterval       time.Duration `yaml:"tick_interval"`
	SettleDelay        time.Duration `yaml:"settle_delay"`
	MidThreshold       float64       `yaml:"mid_threshold"`
	LowThreshold       float64       `yaml:"low_threshold"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// DefaultConfig returns a config with default values.
func DefaultConfig() *Config {
	return &Config{
		Rules: FromRules(game.DefaultRules()),
		Log:   LogConfig{Level: "info"},
	}
}

// FromRules converts game rules into their file form.
func FromRules(r game.Rules) RulesConfig {
	return RulesConfig{
		Width:              r.Width,
		Height:             r.Height,
		StartBuildingCount: r.StartBuildingCount,
		StartUnits:         r.StartUnits,
		NeutralMinUnits:    r.NeutralMinUnits,
		NeutralMaxUnits:    r.NeutralMaxUnits,
		UpgradeCosts:       r.UpgradeCosts,
		IncomeRates:        r.IncomeRates,
		TurnDuration:       r.TurnDuration,
		TickInterval:       r.TickInterval,
		SettleDelay:        r.SettleDelay,
		MidThreshold:       r.MidThreshold,
		LowThreshold:       r.LowThreshold,
	}
}

// GameRules converts the file form into validated game rules.
func (c *Config) GameRules() (game.Rules, error) {
	rc := c.Rules
	r := game.Rules{
		Width:              rc.Width,
		Height:             rc.Height,
		StartBuildingCount: rc.StartBuildingCount,
		StartUnits:         rc.StartUnits,
		NeutralMinUnits:    rc.NeutralMinUnits,
		NeutralMaxUnits:    rc.NeutralMaxUnits,
		UpgradeCosts:       rc.UpgradeCosts,
		IncomeRates:        rc.IncomeRates,
		TurnDuration:       rc.TurnDuration,
		TickInterval:       rc.TickInterval,
		SettleDelay:        rc.SettleDelay,
		MidThreshold:       rc.MidThreshold,
		LowThreshold:       rc.LowThreshold,
	}
	if err := r.Validate(); err != nil {
		return game.Rules{}, err
	}
	return r, nil
}

// LoadConfig loads config from the user's config directory. A missing file
// yields the defaults.
func LoadConfig() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return DefaultConfig(), err
	}
	return LoadFile(path)
}

// LoadFile loads config from path. Keys absent from the file keep their
// default values.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves the config to the user's config directory.
func (c *Config) Save() error {
	path, err := configPath()
	if err != nil {
		return err
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating parent directories.
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Path returns the config file location for the current profile.
func Path() (string, error) {
	return configPath()
}

// configPath returns the path to the config file.
func configPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	filename := "rules.yaml"
	if configProfile != "" {
		filename = "rules-" + configProfile + ".yaml"
	}

	return filepath.Join(configDir, "forest-wars", filename), nil
}
