package game

import (
	"github.com/okian/arena/internal/domain/dedupe"
	"github.com/okian/arena/internal/domain/trigger"
	"github.com/okian/arena/pkg/logger"
)

// Option configures a Game.
type Option func(*Game)

// WithSeed fixes the random seed, making the game reproducible.
func WithSeed(seed int64) Option {
	return func(g *Game) {
		g.seed = seed
		g.seeded = true
	}
}

// WithPolicy sets the special-event trigger policy.
func WithPolicy(p trigger.Policy) Option {
	return func(g *Game) {
		g.policy = p
	}
}

// WithDeduper sets the applied-event tracker.
func WithDeduper(d dedupe.Deduper) Option {
	return func(g *Game) {
		if d != nil {
			g.applied = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(g *Game) {
		if l != nil {
			g.log = l
		}
	}
}
