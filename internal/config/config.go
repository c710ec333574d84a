package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the full application configuration.
type Config struct {
	Battle  BattleConfig  `mapstructure:"battle"`
	Player  SideConfig    `mapstructure:"player"`
	Enemy   SideConfig    `mapstructure:"enemy"`
	Data    DataConfig    `mapstructure:"data"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BattleConfig holds the rules shared by both sides.
type BattleConfig struct {
	MaxEnergy int   `mapstructure:"max_energy"`
	HandSize  int   `mapstructure:"hand_size"`
	MaxTurns  int   `mapstructure:"max_turns"`
	Seed      int64 `mapstructure:"seed"`
}

// SideConfig describes one combatant.
type SideConfig struct {
	Name   string `mapstructure:"name"`
	MaxHP  int    `mapstructure:"max_hp"`
	Deck   string `mapstructure:"deck"`
	Policy string `mapstructure:"policy"` // enemy only
}

// DataConfig points at card and deck files. Empty paths use the built-in
// data.
type DataConfig struct {
	Cards string `mapstructure:"cards"`
	Decks string `mapstructure:"decks"`
}

// LoggingConfig controls the diagnostic logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EnvPrefix is the prefix of environment overrides, e.g.
// SENGOKU_BATTLE_MAX_TURNS.
const EnvPrefix = "SENGOKU"

// Load reads configuration from path (optional; empty means defaults and
// environment only).
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("battle.max_energy", 3)
	v.SetDefault("battle.hand_size", 5)
	v.SetDefault("battle.max_turns", 200)
	v.SetDefault("battle.seed", 0)

	v.SetDefault("player.name", "Hideyoshi")
	v.SetDefault("player.max_hp", 60)
	v.SetDefault("player.deck", "HIDEYOSHI")

	v.SetDefault("enemy.name", "Bandit Chief")
	v.SetDefault("enemy.max_hp", 40)
	v.SetDefault("enemy.deck", "BANDITS")
	v.SetDefault("enemy.policy", "priority")

	v.SetDefault("data.cards", "")
	v.SetDefault("data.decks", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if c.Battle.MaxEnergy < 1 {
		errs = append(errs, fmt.Errorf("battle.max_energy must be at least 1, got %d", c.Battle.MaxEnergy))
	}
	if c.Battle.HandSize < 1 {
		errs = append(errs, fmt.Errorf("battle.hand_size must be at least 1, got %d", c.Battle.HandSize))
	}
	if c.Battle.MaxTurns < 1 {
		errs = append(errs, fmt.Errorf("battle.max_turns must be at least 1, got %d", c.Battle.MaxTurns))
	}
	if c.Player.MaxHP < 1 {
		errs = append(errs, fmt.Errorf("player.max_hp must be at least 1, got %d", c.Player.MaxHP))
	}
	if c.Enemy.MaxHP < 1 {
		errs = append(errs, fmt.Errorf("enemy.max_hp must be at least 1, got %d", c.Enemy.MaxHP))
	}
	switch strings.ToLower(c.Enemy.Policy) {
	case "", "priority", "random":
	default:
		errs = append(errs, fmt.Errorf("enemy.policy must be priority or random, got %q", c.Enemy.Policy))
	}
	return errors.Join(errs...)
}
