// Package config defines service configuration and its loading layers.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/trigger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Seed fixes the random seed of every new game. 0 draws a fresh seed per game.
	Seed int64 `koanf:"seed"`

	// MaxGames caps the number of live games held by the store. 0 is unbounded.
	MaxGames int `koanf:"max_games"`

	// CatalogPath points at an external template catalog. Empty uses the embedded one.
	CatalogPath string `koanf:"catalog_path"`

	// DedupeSize bounds the applied-event set per game. 0 is unbounded.
	DedupeSize int `koanf:"dedupe_size"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// QueueSize bounds the batch job queue.
	QueueSize int `koanf:"queue_size"`

	// MaxBatchGames caps the size of a single batch run.
	MaxBatchGames int `koanf:"max_batch_games"`

	// MaxTicks bounds autoplay and batch games. 0 means no limit.
	MaxTicks int `koanf:"max_ticks"`

	// Per-phase fatality rates. Kept flat so each one can be set from the environment.
	FatalityBloodbath float64 `koanf:"fatality_bloodbath"`
	FatalityDay       float64 `koanf:"fatality_day"`
	FatalityNight     float64 `koanf:"fatality_night"`
	FatalityFeast     float64 `koanf:"fatality_feast"`
	FatalityArena     float64 `koanf:"fatality_arena"`

	FeastMinDay   int     `koanf:"feast_min_day"`
	FeastCooldown int     `koanf:"feast_cooldown"`
	FeastChance   float64 `koanf:"feast_chance"`

	ArenaMinDay         int     `koanf:"arena_min_day"`
	ArenaCooldown       int     `koanf:"arena_cooldown"`
	ArenaCrowdThreshold int     `koanf:"arena_crowd_threshold"`
	ArenaChanceCrowded  float64 `koanf:"arena_chance_crowded"`
	ArenaChanceSparse   float64 `koanf:"arena_chance_sparse"`
}

// New creates a Config holding the defaults.
func New() *Config {
	rates := engine.DefaultFatalityRates()
	policy := trigger.DefaultPolicy()
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":9080",
		MaxGames:      1000,
		WorkerCount:   runtime.NumCPU() * 2,
		QueueSize:     1024,
		MaxBatchGames: 10_000,
		MaxTicks:      1000,

		FatalityBloodbath: rates.Rate(model.PhaseBloodbath),
		FatalityDay:       rates.Rate(model.PhaseDay),
		FatalityNight:     rates.Rate(model.PhaseNight),
		FatalityFeast:     rates.Rate(model.PhaseFeast),
		FatalityArena:     rates.Rate(model.PhaseArena),

		FeastMinDay:   policy.FeastMinDay,
		FeastCooldown: policy.FeastCooldown,
		FeastChance:   policy.FeastChance,

		ArenaMinDay:         policy.ArenaMinDay,
		ArenaCooldown:       policy.ArenaCooldown,
		ArenaCrowdThreshold: policy.ArenaCrowdThreshold,
		ArenaChanceCrowded:  policy.ArenaChanceCrowded,
		ArenaChanceSparse:   policy.ArenaChanceSparse,
	}
}

// FatalityRates returns the per-phase rates for the simulator.
func (c *Config) FatalityRates() engine.FatalityRates {
	return engine.FatalityRates{
		model.PhaseBloodbath: c.FatalityBloodbath,
		model.PhaseDay:       c.FatalityDay,
		model.PhaseNight:     c.FatalityNight,
		model.PhaseFeast:     c.FatalityFeast,
		model.PhaseArena:     c.FatalityArena,
	}
}

// TriggerPolicy returns the special-event thresholds.
func (c *Config) TriggerPolicy() trigger.Policy {
	return trigger.Policy{
		FeastMinDay:         c.FeastMinDay,
		FeastCooldown:       c.FeastCooldown,
		FeastChance:         c.FeastChance,
		ArenaMinDay:         c.ArenaMinDay,
		ArenaCooldown:       c.ArenaCooldown,
		ArenaCrowdThreshold: c.ArenaCrowdThreshold,
		ArenaChanceCrowded:  c.ArenaChanceCrowded,
		ArenaChanceSparse:   c.ArenaChanceSparse,
	}
}

// Validate checks ranges. Every failure wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}

	counts := []struct {
		name  string
		value int
	}{
		{"max_games", c.MaxGames},
		{"dedupe_size", c.DedupeSize},
		{"worker_count", c.WorkerCount},
		{"max_ticks", c.MaxTicks},
		{"feast_min_day", c.FeastMinDay},
		{"feast_cooldown", c.FeastCooldown},
		{"arena_min_day", c.ArenaMinDay},
		{"arena_cooldown", c.ArenaCooldown},
		{"arena_crowd_threshold", c.ArenaCrowdThreshold},
	}
	for _, n := range counts {
		if n.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, n.name)
		}
	}
	if c.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.MaxBatchGames < 1 {
		return fmt.Errorf("%w: max_batch_games must be positive", ErrInvalidConfig)
	}

	probabilities := []struct {
		name  string
		value float64
	}{
		{"fatality_bloodbath", c.FatalityBloodbath},
		{"fatality_day", c.FatalityDay},
		{"fatality_night", c.FatalityNight},
		{"fatality_feast", c.FatalityFeast},
		{"fatality_arena", c.FatalityArena},
		{"feast_chance", c.FeastChance},
		{"arena_chance_crowded", c.ArenaChanceCrowded},
		{"arena_chance_sparse", c.ArenaChanceSparse},
	}
	for _, p := range probabilities {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	return nil
}
