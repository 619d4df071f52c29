package game

import (
	"errors"
	"sort"
	"time"

	"github.com/okian/arena/internal/domain/model"
)

// Placement is one row of the final standings.
type Placement struct {
	Rank    int
	Tribute model.Tribute
}

func (g *Game) ID() string           { return g.id }
func (g *Game) Seed() int64          { return g.seed }
func (g *Game) CreatedAt() time.Time { return g.createdAt }
func (g *Game) Phase() model.Phase   { return g.phase }
func (g *Game) Day() int             { return g.day }
func (g *Game) LastFeastDay() int    { return g.lastFeastDay }
func (g *Game) LastArenaDay() int    { return g.lastArenaDay }

// Finished reports whether a winner was declared or nobody survived.
func (g *Game) Finished() bool { return g.over }

// Pending returns the number of events waiting to be revealed.
func (g *Game) Pending() int { return len(g.pending) }

// Winner returns the winning tribute once declared.
func (g *Game) Winner() (model.Tribute, bool) {
	if g.winner == "" {
		return model.Tribute{}, false
	}
	return g.Tribute(g.winner)
}

// Tribute looks up a tribute by ID.
func (g *Game) Tribute(id string) (model.Tribute, bool) {
	i, ok := g.index[id]
	if !ok {
		return model.Tribute{}, false
	}
	return g.tributes[i], true
}

// Tributes returns the roster in cast order.
func (g *Game) Tributes() []model.Tribute {
	out := make([]model.Tribute, len(g.tributes))
	copy(out, g.tributes)
	return out
}

// Alive returns living tributes in cast order.
func (g *Game) Alive() []model.Tribute {
	return g.filter(func(t model.Tribute) bool { return t.Alive })
}

// Dead returns fallen tributes in cast order.
func (g *Game) Dead() []model.Tribute {
	return g.filter(func(t model.Tribute) bool { return !t.Alive })
}

// ByDistrict returns the tributes of one district.
func (g *Game) ByDistrict(districtID int) []model.Tribute {
	return g.filter(func(t model.Tribute) bool { return t.DistrictID == districtID })
}

// Districts returns the district pairings.
func (g *Game) Districts() []model.District {
	out := make([]model.District, len(g.districts))
	copy(out, g.districts)
	return out
}

// Events returns the full event log in insertion order.
func (g *Game) Events() []model.Event {
	out := make([]model.Event, len(g.events))
	copy(out, g.events)
	return out
}

// EventsByDay returns the logged events of one day.
func (g *Game) EventsByDay(day int) []model.Event {
	var out []model.Event
	for _, ev := range g.events {
		if ev.Day == day {
			out = append(out, ev)
		}
	}
	return out
}

// Revealed returns the logged events that are no longer pending.
func (g *Game) Revealed() []model.Event {
	n := len(g.events) - len(g.pending)
	out := make([]model.Event, n)
	copy(out, g.events[:n])
	return out
}

// Placements ranks every tribute. The living come first. Among the dead a
// later death day places higher, then a later phase within the day, then
// more kills. Remaining ties keep cast order.
func (g *Game) Placements() []Placement {
	ts := g.Tributes()
	sort.SliceStable(ts, func(i, j int) bool {
		a, b := ts[i], ts[j]
		if a.Alive != b.Alive {
			return a.Alive
		}
		if !a.Alive {
			if a.DeathDay != b.DeathDay {
				return a.DeathDay > b.DeathDay
			}
			if ao, bo := a.DeathPhase.Order(), b.DeathPhase.Order(); ao != bo {
				return ao > bo
			}
		}
		return a.Kills > b.Kills
	})

	out := make([]Placement, len(ts))
	for i, t := range ts {
		out[i] = Placement{Rank: i + 1, Tribute: t}
	}
	return out
}

func (g *Game) filter(keep func(model.Tribute) bool) []model.Tribute {
	var out []model.Tribute
	for _, t := range g.tributes {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func isGameOver(err error) bool {
	return errors.Is(err, ErrGameOver)
}
