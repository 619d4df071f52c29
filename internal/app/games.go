package service

import (
	"context"
	"fmt"

	"github.com/okian/arena/internal/domain/game"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/types"
	"github.com/okian/arena/pkg/logger"
)

// castFrom converts request tributes, falling back to the default cast.
func castFrom(in []types.TributeInput) ([]model.Tribute, error) {
	if len(in) == 0 {
		return game.DefaultCast(), nil
	}
	cast := make([]model.Tribute, len(in))
	for i, t := range in {
		g, err := model.ParseGender(t.Gender)
		if err != nil {
			return nil, fmt.Errorf("%w: tribute %d: %w", ErrInvalidRequest, i+1, err)
		}
		cast[i] = model.Tribute{Name: t.Name, Gender: g, ImageURL: t.ImageURL}
	}
	return cast, nil
}

// CreateGame starts a new game and stores it.
func (s *Service) CreateGame(ctx context.Context, req types.CreateGame) (types.Game, error) {
	store, sim, err := s.components()
	if err != nil {
		return types.Game{}, err
	}
	cast, err := castFrom(req.Tributes)
	if err != nil {
		return types.Game{}, err
	}
	g, err := s.newGame("", cast, sim, req.Seed)
	if err != nil {
		return types.Game{}, err
	}
	if err := store.Create(ctx, g); err != nil {
		return types.Game{}, err
	}

	s.logger.Info(ctx, "game created",
		logger.String("game_id", g.ID()),
		logger.Int("tributes", len(cast)),
		logger.Int64("seed", g.Seed()),
	)
	return gameView(g), nil
}

// Game returns the full view of game id.
func (s *Service) Game(ctx context.Context, id string) (types.Game, error) {
	var out types.Game
	err := s.view(ctx, id, func(g *game.Game) error {
		out = gameView(g)
		return nil
	})
	return out, err
}

// ListGames returns a summary of every stored game in creation order.
func (s *Service) ListGames(ctx context.Context) ([]types.GameSummary, error) {
	store, _, err := s.components()
	if err != nil {
		return nil, err
	}
	out := []types.GameSummary{}
	err = store.List(ctx, func(g *game.Game) error {
		out = append(out, summaryView(g))
		return nil
	})
	return out, err
}

// DeleteGame removes game id.
func (s *Service) DeleteGame(ctx context.Context, id string) error {
	store, _, err := s.components()
	if err != nil {
		return err
	}
	if err := store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "game deleted", logger.String("game_id", id))
	return nil
}

// Step simulates the next phase of game id. Its events are queued for
// reveal; no death is applied yet.
func (s *Service) Step(ctx context.Context, id string) (types.Step, error) {
	var out types.Step
	err := s.update(ctx, id, func(g *game.Game) error {
		phase := g.Phase()
		res, err := g.Step(ctx)
		if err != nil {
			return err
		}
		if len(res.Events) > 0 {
			phase = res.Events[0].Phase
		}
		out = stepView(phase, res)
		return nil
	})
	return out, err
}

// Reveal reveals the next queued event of game id and applies its deaths.
func (s *Service) Reveal(ctx context.Context, id string) (types.Reveal, error) {
	var out types.Reveal
	err := s.update(ctx, id, func(g *game.Game) error {
		ev, err := g.Reveal(ctx)
		if err != nil {
			return err
		}
		out = types.Reveal{
			Event:    eventView(ev),
			Pending:  g.Pending(),
			Alive:    len(g.Alive()),
			Finished: g.Finished(),
		}
		if w, ok := g.Winner(); ok {
			out.Winner = w.ID
		}
		return nil
	})
	return out, err
}

// Autoplay steps and reveals game id until it finishes or the tick limit
// is reached. On a tick limit the partial state is still returned.
func (s *Service) Autoplay(ctx context.Context, id string) (types.Game, error) {
	var out types.Game
	err := s.update(ctx, id, func(g *game.Game) error {
		ticks, err := g.Play(ctx, s.maxTicks)
		out = gameView(g)
		s.logger.Debug(ctx, "autoplay finished",
			logger.String("game_id", id),
			logger.Int("ticks", ticks),
			logger.Bool("finished", g.Finished()),
		)
		return err
	})
	return out, err
}

// Reset returns game id to its opening state with the same cast and seed.
func (s *Service) Reset(ctx context.Context, id string) (types.Game, error) {
	var out types.Game
	err := s.update(ctx, id, func(g *game.Game) error {
		g.Reset()
		out = gameView(g)
		return nil
	})
	return out, err
}

// Events returns the revealed events of game id, optionally for one day.
// Pending events stay hidden until revealed.
func (s *Service) Events(ctx context.Context, id string, day *int) ([]types.Event, error) {
	var out []types.Event
	err := s.view(ctx, id, func(g *game.Game) error {
		revealed := g.Revealed()
		if day != nil {
			kept := revealed[:0]
			for _, e := range revealed {
				if e.Day == *day {
					kept = append(kept, e)
				}
			}
			revealed = kept
		}
		out = eventViews(revealed)
		return nil
	})
	return out, err
}

// Placements ranks every tribute of game id.
func (s *Service) Placements(ctx context.Context, id string) ([]types.Placement, error) {
	var out []types.Placement
	err := s.view(ctx, id, func(g *game.Game) error {
		out = placementViews(g.Placements())
		return nil
	})
	return out, err
}

func (s *Service) view(ctx context.Context, id string, fn func(*game.Game) error) error {
	store, _, err := s.components()
	if err != nil {
		return err
	}
	return store.View(ctx, id, fn)
}

func (s *Service) update(ctx context.Context, id string, fn func(*game.Game) error) error {
	store, _, err := s.components()
	if err != nil {
		return err
	}
	return store.Update(ctx, id, fn)
}
