// Package batchrun drives a batch of simulated games and renders the
// resulting report. Games run either in-process or against a running
// arena server.
package batchrun

import (
	"errors"
	"fmt"
	"time"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// ErrInvalidConfig is returned for unusable run settings.
var ErrInvalidConfig = errors.New("invalid batch run config")

// Config holds the settings of one batch run.
type Config struct {
	BaseURL     string        // arena server; empty runs in-process
	Games       int           // games to play
	Seed        *int64        // base seed; nil draws one per game
	Workers     int           // in-process worker count
	MaxTicks    int           // per-game tick limit, 0 for none
	CatalogPath string        // in-process template catalog
	Timeout     time.Duration // HTTP timeout for remote runs
	Format      string        // text or json
	OutputFile  string        // optional copy of the report
}

// Validate checks the settings.
func (c *Config) Validate() error {
	if c.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrInvalidConfig, c.Games)
	}
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("%w: format must be text or json, got %q", ErrInvalidConfig, c.Format)
	}
	if c.BaseURL != "" && c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive for remote runs", ErrInvalidConfig)
	}
	return nil
}
