package config

import (
	"fmt"

	"github.com/aretw0/storelog/pkg/logger"
	"github.com/caarlos0/env/v11"
)

// EnvOverrides are the logger settings that can be forced from the environment.
// Unset variables leave the corresponding field nil.
type EnvOverrides struct {
	Enabled      *bool    `env:"STORELOG_ENABLED"`
	Expanded     *bool    `env:"STORELOG_EXPANDED"`
	DeepClone    *bool    `env:"STORELOG_DEEP_CLONE"`
	MaxDepth     *int     `env:"STORELOG_MAX_DEPTH"`
	LogLevel     *string  `env:"STORELOG_LOG_LEVEL"`
	ShowDuration *bool    `env:"STORELOG_SHOW_DURATION"`
	Include      []string `env:"STORELOG_INCLUDE" envSeparator:","`
	Exclude      []string `env:"STORELOG_EXCLUDE" envSeparator:","`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Apply writes every set override onto cfg.
func (o EnvOverrides) Apply(cfg *logger.Config) error {
	if o.Enabled != nil {
		cfg.Enabled = o.Enabled
	}
	if o.Expanded != nil {
		cfg.Expanded = o.Expanded
	}
	if o.DeepClone != nil {
		cfg.DeepClone = o.DeepClone
	}
	if o.MaxDepth != nil {
		cfg.MaxDepth = o.MaxDepth
	}
	if o.ShowDuration != nil {
		cfg.ShowDuration = o.ShowDuration
	}
	if o.LogLevel != nil {
		level, err := logger.ParseLevel(*o.LogLevel)
		if err != nil {
			return fmt.Errorf("%w: STORELOG_LOG_LEVEL: %w", ErrInvalidConfig, err)
		}
		cfg.LogLevel = &level
	}
	if o.Include != nil {
		cfg.IncludeActions = o.Include
	}
	if o.Exclude != nil {
		cfg.ExcludeActions = o.Exclude
	}
	return nil
}
