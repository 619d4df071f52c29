// Package trigger decides when a feast or an arena hazard preempts the
// normal daytime phase.
package trigger

import (
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/random"
)

// Policy holds the thresholds and probabilities of both predicates. A last
// day of 0 means the event has never run.
type Policy struct {
	FeastMinDay   int     // no feast on or before this day
	FeastCooldown int     // days that must pass between feasts
	FeastChance   float64 // probability once eligible

	ArenaMinDay         int
	ArenaCooldown       int
	ArenaCrowdThreshold int // more alive than this uses ArenaChanceCrowded
	ArenaChanceCrowded  float64
	ArenaChanceSparse   float64
}

// DefaultPolicy returns the stock thresholds.
func DefaultPolicy() Policy {
	return Policy{
		FeastMinDay:         3,
		FeastCooldown:       3,
		FeastChance:         0.20,
		ArenaMinDay:         2,
		ArenaCooldown:       2,
		ArenaCrowdThreshold: 10,
		ArenaChanceCrowded:  0.25,
		ArenaChanceSparse:   0.15,
	}
}

// ShouldFeast reports whether a feast runs on day.
func (p Policy) ShouldFeast(rng random.Source, day, lastFeastDay int) bool {
	if day <= p.FeastMinDay {
		return false
	}
	if lastFeastDay > 0 && day-lastFeastDay < p.FeastCooldown {
		return false
	}
	return random.Chance(rng, p.FeastChance)
}

// ShouldArenaHazard reports whether an arena hazard runs on day.
func (p Policy) ShouldArenaHazard(rng random.Source, day, alive, lastArenaDay int) bool {
	if day <= p.ArenaMinDay {
		return false
	}
	if lastArenaDay > 0 && day-lastArenaDay < p.ArenaCooldown {
		return false
	}
	chance := p.ArenaChanceSparse
	if alive > p.ArenaCrowdThreshold {
		chance = p.ArenaChanceCrowded
	}
	return random.Chance(rng, chance)
}

// Choose evaluates the feast predicate first, then the arena predicate, and
// returns the phase to run instead of a normal day: feast, arena-event or day.
// The arena predicate is not evaluated when a feast fires.
func (p Policy) Choose(rng random.Source, day, alive, lastFeastDay, lastArenaDay int) model.Phase {
	if p.ShouldFeast(rng, day, lastFeastDay) {
		return model.PhaseFeast
	}
	if p.ShouldArenaHazard(rng, day, alive, lastArenaDay) {
		return model.PhaseArena
	}
	return model.PhaseDay
}
