// Package config loads solver settings from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/katalvlaran/spellduel/search"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("config: invalid value")

// Config holds every tunable of the CLI. The mapstructure tags name the keys
// used by config files and flags layered on top of the environment.
type Config struct {
	Workers   int           `env:"SPELLDUEL_WORKERS"    envDefault:"1"     mapstructure:"workers"`
	Strategy  string        `env:"SPELLDUEL_STRATEGY"   envDefault:"fifo"  mapstructure:"strategy"`
	TimeLimit time.Duration `env:"SPELLDUEL_TIME_LIMIT" envDefault:"0s"    mapstructure:"time_limit"`
	MaxStates int           `env:"SPELLDUEL_MAX_STATES" envDefault:"0"     mapstructure:"max_states"`
	Dedupe    bool          `env:"SPELLDUEL_DEDUPE"     envDefault:"true"  mapstructure:"dedupe"`

	AttackerHP   int `env:"SPELLDUEL_ATTACKER_HP"   envDefault:"50"  mapstructure:"attacker_hp"`
	AttackerMana int `env:"SPELLDUEL_ATTACKER_MANA" envDefault:"500" mapstructure:"attacker_mana"`
	Attrition    int `env:"SPELLDUEL_ATTRITION"     envDefault:"0"   mapstructure:"attrition"`

	LogLevel  string `env:"SPELLDUEL_LOG_LEVEL"  envDefault:"info" mapstructure:"log_level"`
	LogFormat string `env:"SPELLDUEL_LOG_FORMAT" envDefault:"json" mapstructure:"log_format"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment into a validated Config.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the solver cannot use.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case c.TimeLimit < 0:
		return fmt.Errorf("%w: time limit %s", ErrInvalidConfig, c.TimeLimit)
	case c.MaxStates < 0:
		return fmt.Errorf("%w: max states %d", ErrInvalidConfig, c.MaxStates)
	case c.AttackerHP < 0 || c.AttackerMana < 0:
		return fmt.Errorf("%w: attacker %d hp / %d mana", ErrInvalidConfig, c.AttackerHP, c.AttackerMana)
	case c.Attrition < 0:
		return fmt.Errorf("%w: attrition %d", ErrInvalidConfig, c.Attrition)
	}
	strategy, err := search.ParseStrategy(c.Strategy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Workers > 1 && strategy == search.BestFirst {
		return fmt.Errorf("%w: best-first search runs on one worker", ErrInvalidConfig)
	}
	return nil
}

// SearchOptions translates the search-related fields into search options.
func (c Config) SearchOptions() ([]search.Option, error) {
	strategy, err := search.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, err
	}
	opts := []search.Option{
		search.WithStrategy(strategy),
		search.WithWorkers(c.Workers),
		search.WithTimeLimit(c.TimeLimit),
		search.WithMaxStates(c.MaxStates),
	}
	if c.Dedupe {
		opts = append(opts, search.WithDedupe())
	}
	return opts, nil
}
