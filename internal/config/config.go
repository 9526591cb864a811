// Package config defines the simulator configuration and how it is loaded.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// WorkerCount sets the number of simulation workers.
	WorkerCount int `koanf:"worker_count"`
	// QueueSize bounds the fixture queue.
	QueueSize int `koanf:"queue_size"`
	// DedupeSize bounds the played-fixture set; 0 means unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	SeasonSeed      int64 `koanf:"season_seed"`
	SeasonStartYear int   `koanf:"season_start_year"`
	TeamCount       int   `koanf:"team_count"`

	// MetricsAddr serves /metrics when set, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// Simulator calibration.
	HomeAdvantage   float64 `koanf:"home_advantage"`
	VARReviewProb   float64 `koanf:"var_review_prob"`
	VARDisallowProb float64 `koanf:"var_disallow_prob"`
	InjuryRate      float64 `koanf:"injury_rate"`
}

// New returns the default configuration.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		WorkerCount:     runtime.NumCPU(),
		QueueSize:       256,
		DedupeSize:      50_000,
		SeasonSeed:      20250801,
		SeasonStartYear: 2025,
		TeamCount:       20,
		HomeAdvantage:   5,
		VARReviewProb:   0.18,
		VARDisallowProb: 0.38,
		InjuryRate:      0.08,
	}
}

// Validate rejects values the simulator cannot run with.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log_format %q: %w", c.LogFormat, ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("worker_count must be positive: %w", ErrInvalidConfig)
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("queue_size must be positive: %w", ErrInvalidConfig)
	}
	if c.DedupeSize < 0 {
		return fmt.Errorf("dedupe_size must not be negative: %w", ErrInvalidConfig)
	}
	if c.TeamCount < 2 || c.TeamCount%2 != 0 {
		return fmt.Errorf("team_count must be an even number of at least 2: %w", ErrInvalidConfig)
	}
	if c.HomeAdvantage < 0 {
		return fmt.Errorf("home_advantage must not be negative: %w", ErrInvalidConfig)
	}
	for name, p := range map[string]float64{
		"var_review_prob":   c.VARReviewProb,
		"var_disallow_prob": c.VARDisallowProb,
		"injury_rate":       c.InjuryRate,
	} {
		if p < 0 || p > 1 {
			return fmt.Errorf("%s must be within [0,1]: %w", name, ErrInvalidConfig)
		}
	}
	return nil
}
