// Package game owns the mutable state of one contest: roster, districts,
// phase clock, event log and the queue of events waiting to be revealed.
//
// A Game is not safe for concurrent use. The repository serializes access
// per game.
package game

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/arena/internal/domain/dedupe"
	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/random"
	"github.com/okian/arena/internal/domain/trigger"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
)

// MinTributes is the smallest playable roster.
const MinTributes = 2

// Game is the caller-owned state object the engine results are applied to.
type Game struct {
	id        string
	seed      int64
	seeded    bool
	createdAt time.Time

	sim     *engine.Simulator
	policy  trigger.Policy
	applied dedupe.Deduper
	log     logger.Logger
	rng     random.Source

	cast      []model.Tribute
	tributes  []model.Tribute
	index     map[string]int
	districts []model.District

	phase   model.Phase
	day     int
	events  []model.Event
	pending []model.Event
	winner  string
	over    bool

	lastFeastDay int
	lastArenaDay int
	specialDay   int // day whose daytime special check already ran
}

// New creates a game for cast. Tributes get fresh IDs when none are set and
// are paired into districts in order, so the cast size must be even.
func New(id string, cast []model.Tribute, sim *engine.Simulator, opts ...Option) (*Game, error) {
	if len(cast) < MinTributes || len(cast)%2 != 0 {
		return nil, fmt.Errorf("%w: need an even number of at least %d tributes, got %d",
			ErrInvalidRoster, MinTributes, len(cast))
	}
	if sim == nil {
		return nil, fmt.Errorf("%w: nil simulator", ErrInvalidRoster)
	}
	if id == "" {
		id = uuid.NewString()
	}

	g := &Game{
		id:        id,
		createdAt: time.Now().UTC(),
		sim:       sim,
		policy:    trigger.DefaultPolicy(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	if !g.seeded {
		s, err := random.NewSeed()
		if err != nil {
			return nil, err
		}
		g.seed = s
	}
	if g.applied == nil {
		g.applied = dedupe.NewInMemoryDeduper()
	}

	g.cast = make([]model.Tribute, len(cast))
	seen := make(map[string]struct{}, len(cast))
	for i, t := range cast {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tribute %d has no name", ErrInvalidRoster, i+1)
		}
		if t.ID == "" {
			t.ID = uuid.NewString()
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate tribute id %q", ErrInvalidRoster, t.ID)
		}
		seen[t.ID] = struct{}{}
		if t.Gender == "" {
			t.Gender = model.GenderOther
		}
		g.cast[i] = model.Tribute{
			ID:         t.ID,
			Name:       name,
			Gender:     t.Gender,
			ImageURL:   t.ImageURL,
			DistrictID: i/2 + 1,
			Alive:      true,
		}
	}

	g.districts = make([]model.District, len(g.cast)/2)
	for i := range g.districts {
		g.districts[i] = model.District{
			ID:       i + 1,
			Tributes: [2]string{g.cast[2*i].ID, g.cast[2*i+1].ID},
		}
	}

	g.Reset()
	metrics.RecordGameStarted()
	return g, nil
}

// Reset returns the game to its initial state: same cast, all alive, empty
// log, opening phase. The random source is reseeded so a reset game replays
// the same draws.
func (g *Game) Reset() {
	g.tributes = make([]model.Tribute, len(g.cast))
	copy(g.tributes, g.cast)
	g.index = make(map[string]int, len(g.tributes))
	for i, t := range g.tributes {
		g.index[t.ID] = i
	}
	g.rng = random.New(g.seed)
	g.phase = model.PhaseBloodbath
	g.day = 0
	g.events = nil
	g.pending = nil
	g.winner = ""
	g.over = false
	g.lastFeastDay = 0
	g.lastArenaDay = 0
	g.specialDay = -1
	g.applied.Reset()
}

// MarkDead transitions a living tribute to dead with attribution.
func (g *Game) MarkDead(id string, day int, phase model.Phase, killedBy string) error {
	i, ok := g.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTribute, id)
	}
	t := &g.tributes[i]
	if !t.Alive {
		return fmt.Errorf("%w: %s", ErrTributeDead, id)
	}
	t.Alive = false
	t.DeathDay = day
	t.DeathPhase = phase
	t.KilledBy = killedBy
	return nil
}

// IncrementKills credits one kill to id.
func (g *Game) IncrementKills(id string) error {
	i, ok := g.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTribute, id)
	}
	g.tributes[i].Kills++
	return nil
}

// AppendEvents adds events to the log and to the reveal queue, in order.
func (g *Game) AppendEvents(events ...model.Event) {
	g.events = append(g.events, events...)
	g.pending = append(g.pending, events...)
}

// Advance moves the phase clock.
func (g *Game) Advance(phase model.Phase, day int) {
	g.phase = phase
	g.day = day
}

// DeclareWinner records id as the winner and finishes the game.
func (g *Game) DeclareWinner(id string) error {
	if _, ok := g.index[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTribute, id)
	}
	g.winner = id
	g.phase = model.PhaseFinished
	g.over = true
	return nil
}

// ApplyDeaths applies one event's deaths to the roster. Each dead tribute is
// stamped with the event's day and phase and attributed to the event's
// killer, or to the arena when there is none. The killer is credited once
// per event. Applying the same event again is a no-op and returns false.
func (g *Game) ApplyDeaths(ctx context.Context, ev model.Event) bool {
	if g.applied.SeenAndRecord(ctx, ev.ID) {
		return false
	}

	killedBy := ev.Killer
	if killedBy == "" {
		killedBy = model.EnvironmentalKiller
	}

	killed := 0
	for _, id := range ev.Deaths {
		if err := g.MarkDead(id, ev.Day, ev.Phase, killedBy); err != nil {
			g.log.Warn(ctx, "death not applied",
				logger.String("game_id", g.id),
				logger.String("event_id", ev.ID),
				logger.Error(err),
			)
			continue
		}
		killed++
		metrics.RecordDeath(ev.Killer == "")
	}
	if killed > 0 && ev.Killer != "" {
		if err := g.IncrementKills(ev.Killer); err != nil {
			g.log.Warn(ctx, "kill not credited",
				logger.String("game_id", g.id),
				logger.String("event_id", ev.ID),
				logger.Error(err),
			)
		}
	}

	g.checkTermination(ctx)
	return true
}

// checkTermination finishes the game once the living count drops to one or
// zero. A sole survivor is only declared once no queued event can still
// kill them.
func (g *Game) checkTermination(ctx context.Context) {
	if g.over {
		return
	}
	alive := g.Alive()
	switch {
	case len(alive) == 1 && !g.pendingDeaths():
		_ = g.DeclareWinner(alive[0].ID)
		metrics.RecordGameFinished(true, g.day)
		g.log.Info(ctx, "winner declared",
			logger.String("game_id", g.id),
			logger.String("winner", alive[0].Name),
			logger.Int("day", g.day),
			logger.Int("kills", alive[0].Kills),
		)
	case len(alive) == 0:
		g.phase = model.PhaseFinished
		g.over = true
		metrics.RecordGameFinished(false, g.day)
		g.log.Info(ctx, "game finished without survivors",
			logger.String("game_id", g.id),
			logger.Int("day", g.day),
		)
	}
}

func (g *Game) pendingDeaths() bool {
	for _, ev := range g.pending {
		if len(ev.Deaths) > 0 {
			return true
		}
	}
	return false
}

// Step runs one tick: the next phase is simulated, its events are appended
// to the log and the reveal queue, and the clock advances. Deaths are not
// applied until the events are revealed, so Step refuses to run while
// reveals are pending.
func (g *Game) Step(ctx context.Context) (model.StepResult, error) {
	if len(g.pending) > 0 {
		return model.StepResult{}, fmt.Errorf("%w: %d events", ErrEventsPending, len(g.pending))
	}
	if g.Finished() {
		return model.StepResult{}, ErrGameOver
	}

	alive := g.Alive()
	if len(alive) <= 1 {
		g.checkTermination(ctx)
		return model.StepResult{}, ErrGameOver
	}

	phase := g.phase
	if phase == model.PhaseDay && g.specialDay != g.day {
		g.specialDay = g.day
		switch g.policy.Choose(g.rng, g.day, len(alive), g.lastFeastDay, g.lastArenaDay) {
		case model.PhaseFeast:
			phase = model.PhaseFeast
			g.lastFeastDay = g.day
		case model.PhaseArena:
			phase = model.PhaseArena
			g.lastArenaDay = g.day
		}
		if phase.Special() {
			metrics.RecordSpecialEvent(string(phase))
			g.log.Debug(ctx, "special phase triggered",
				logger.String("game_id", g.id),
				logger.String("phase", string(phase)),
				logger.Int("day", g.day),
			)
		}
	}

	res := g.sim.Simulate(g.rng, alive, phase, g.day)
	g.AppendEvents(res.Events...)
	g.Advance(res.NextPhase, res.NextDay)
	return res, nil
}

// Reveal pops the next queued event and applies its deaths.
func (g *Game) Reveal(ctx context.Context) (model.Event, error) {
	if len(g.pending) == 0 {
		return model.Event{}, ErrNothingToReveal
	}
	ev := g.pending[0]
	g.pending = g.pending[1:]
	g.ApplyDeaths(ctx, ev)
	return ev, nil
}

// RevealAll drains the reveal queue and returns the revealed events.
func (g *Game) RevealAll(ctx context.Context) []model.Event {
	out := make([]model.Event, 0, len(g.pending))
	for len(g.pending) > 0 {
		ev, err := g.Reveal(ctx)
		if err != nil {
			break
		}
		out = append(out, ev)
	}
	return out
}

// Play steps and reveals until the game finishes or maxTicks steps have run.
// maxTicks <= 0 means no limit. Returns the number of steps taken.
func (g *Game) Play(ctx context.Context, maxTicks int) (int, error) {
	ticks := 0
	for {
		g.RevealAll(ctx)
		if g.Finished() {
			return ticks, nil
		}
		if err := ctx.Err(); err != nil {
			return ticks, err
		}
		if maxTicks > 0 && ticks >= maxTicks {
			return ticks, fmt.Errorf("%w: %d", ErrTickLimit, maxTicks)
		}
		if _, err := g.Step(ctx); err != nil {
			if isGameOver(err) {
				return ticks, nil
			}
			return ticks, err
		}
		ticks++
	}
}
