package engine

import (
	"time"

	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/render"
	"github.com/okian/arena/pkg/logger"
)

// FatalityRates is the probability, per phase, of drawing from the fatal
// partition of a category.
type FatalityRates map[model.Phase]float64

// DefaultFatalityRates favours deaths at the opening and feast and keeps
// nights quiet.
func DefaultFatalityRates() FatalityRates {
	return FatalityRates{
		model.PhaseBloodbath: 0.45,
		model.PhaseDay:       0.30,
		model.PhaseNight:     0.20,
		model.PhaseFeast:     0.50,
		model.PhaseArena:     0.25,
	}
}

// Rate returns the configured rate for phase, or 0.
func (r FatalityRates) Rate(phase model.Phase) float64 {
	return r[phase]
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithFatalityRates overrides per-phase rates. Phases absent from rates keep
// their defaults.
func WithFatalityRates(rates FatalityRates) Option {
	return func(s *Simulator) {
		merged := DefaultFatalityRates()
		for p, v := range rates {
			merged[p] = v
		}
		s.rates = merged
	}
}

// WithIDGenerator replaces the uuid event ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Simulator) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock replaces the timestamp source.
func WithClock(fn func() time.Time) Option {
	return func(s *Simulator) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithRenderer sets the text renderer.
func WithRenderer(r *render.Renderer) Option {
	return func(s *Simulator) {
		if r != nil {
			s.renderer = r
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.log = l
		}
	}
}
