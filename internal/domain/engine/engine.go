// Package engine simulates one phase of a game.
//
// The simulator is pure apart from the injected random source: it reads the
// living roster, returns concrete events and the deaths they imply, and
// never touches caller state. Deaths are applied by the caller, one event at
// a time, through the game package.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/okian/arena/internal/domain/catalog"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/random"
	"github.com/okian/arena/internal/domain/render"
	"github.com/okian/arena/pkg/logger"
	"github.com/okian/arena/pkg/metrics"
)

// Simulator turns a living roster and a phase into concrete events.
type Simulator struct {
	pool     *catalog.Pool
	renderer *render.Renderer
	rates    FatalityRates
	newID    func() string
	now      func() time.Time
	log      logger.Logger
}

// New creates a simulator over pool.
func New(pool *catalog.Pool, opts ...Option) *Simulator {
	s := &Simulator{
		pool:  pool,
		rates: DefaultFatalityRates(),
		newID: uuid.NewString,
		now:   time.Now,
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.renderer == nil {
		s.renderer = render.New(pool, render.WithLogger(s.log))
	}
	return s
}

// Simulate runs one phase. An unrecognized phase yields an empty result with
// phase and day echoed back. Tributes left over when no template fits stay
// idle for the phase.
func (s *Simulator) Simulate(rng random.Source, living []model.Tribute, phase model.Phase, day int) model.StepResult {
	if !phase.IsCategory() {
		return model.StepResult{NextPhase: phase, NextDay: day}
	}

	remaining := random.Shuffle(rng, living)

	var (
		shared    model.Template
		hasShared bool
	)
	if phase == model.PhaseArena {
		// The catalog only holds solo arena templates.
		shared, hasShared = s.pick(rng, phase)
	}

	var (
		events []model.Event
		deaths []string
	)
	for len(remaining) > 0 {
		var (
			tpl model.Template
			ok  bool
		)
		if hasShared {
			tpl, ok = shared, true
		} else {
			tpl, ok = s.pick(rng, phase)
		}
		if !ok {
			break
		}
		if tpl.Tributes > len(remaining) {
			if tpl, ok = random.Pick(rng, s.pool.Solo(phase)); !ok {
				break
			}
		}

		assigned := remaining[:tpl.Tributes]
		remaining = remaining[tpl.Tributes:]

		ev := s.instantiate(rng, tpl, assigned, phase, day)
		events = append(events, ev)
		deaths = append(deaths, ev.Deaths...)
		metrics.RecordEventGenerated(string(phase), tpl.Fatal())
	}

	metrics.RecordPhaseSimulated(string(phase))
	metrics.RecordIdleTributes(len(remaining))

	next, nextDay := Next(phase, day)
	res := model.StepResult{
		Events:    events,
		Deaths:    deaths,
		NextPhase: next,
		NextDay:   nextDay,
	}

	if survivors := len(living) - len(deaths); survivors <= 1 {
		res.GameOver = true
		res.NextPhase = model.PhaseFinished
		if survivors == 1 {
			res.Winner = survivor(living, deaths)
		}
	}

	s.log.Debug(context.Background(), "phase simulated",
		logger.String("phase", string(phase)),
		logger.Int("day", day),
		logger.Int("events", len(events)),
		logger.Int("deaths", len(deaths)),
		logger.Int("idle", len(remaining)),
		logger.Bool("game_over", res.GameOver),
	)
	return res
}

// instantiate renders tpl against the assigned tributes and maps its slots
// to tribute IDs.
func (s *Simulator) instantiate(rng random.Source, tpl model.Template, assigned []model.Tribute, phase model.Phase, day int) model.Event {
	ids := make([]string, len(assigned))
	for i, t := range assigned {
		ids[i] = t.ID
	}
	dead := make([]string, 0, len(tpl.Deaths))
	for _, slot := range tpl.Deaths {
		dead = append(dead, ids[slot])
	}
	var killer string
	if slot, ok := tpl.KillerSlot(); ok {
		killer = ids[slot]
	}

	return model.Event{
		ID:         s.newID(),
		Day:        day,
		Phase:      phase,
		Text:       s.renderer.Render(rng, tpl.Text, assigned, tpl.RequiresWeapon, tpl.RequiresItem),
		TemplateID: tpl.ID,
		Tributes:   ids,
		Deaths:     dead,
		Killer:     killer,
		Timestamp:  s.now().UTC(),
	}
}

// pick draws from the precomputed fatal/non-fatal partition of phase.
func (s *Simulator) pick(rng random.Source, phase model.Phase) (model.Template, bool) {
	fatal, nonFatal := s.pool.Partition(phase)
	return s.choose(rng, phase, fatal, nonFatal)
}

// choose rolls the phase fatality rate, falling back to whichever partition
// is non-empty.
func (s *Simulator) choose(rng random.Source, phase model.Phase, fatal, nonFatal []model.Template) (model.Template, bool) {
	switch {
	case len(fatal) == 0:
		return random.Pick(rng, nonFatal)
	case len(nonFatal) == 0:
		return random.Pick(rng, fatal)
	case random.Chance(rng, s.rates.Rate(phase)):
		return random.Pick(rng, fatal)
	default:
		return random.Pick(rng, nonFatal)
	}
}

// Next applies the phase transition table.
func Next(phase model.Phase, day int) (model.Phase, int) {
	switch phase {
	case model.PhaseBloodbath:
		return model.PhaseDay, 1
	case model.PhaseDay:
		return model.PhaseNight, day
	case model.PhaseNight:
		return model.PhaseDay, day + 1
	case model.PhaseFeast, model.PhaseArena:
		return model.PhaseDay, day
	default:
		return phase, day
	}
}

func survivor(living []model.Tribute, deaths []string) *model.Tribute {
	dead := make(map[string]struct{}, len(deaths))
	for _, id := range deaths {
		dead[id] = struct{}{}
	}
	for _, t := range living {
		if _, ok := dead[t.ID]; !ok {
			w := t
			return &w
		}
	}
	return nil
}
