package service

import (
	"github.com/okian/arena/internal/domain/game"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/types"
)

func tributeView(t model.Tribute) types.Tribute {
	v := types.Tribute{
		ID:         t.ID,
		Name:       t.Name,
		Gender:     string(t.Gender),
		ImageURL:   t.ImageURL,
		DistrictID: t.DistrictID,
		Alive:      t.Alive,
		Kills:      t.Kills,
	}
	if !t.Alive {
		day := t.DeathDay
		v.DeathDay = &day
		v.DeathPhase = string(t.DeathPhase)
		v.KilledBy = t.KilledBy
	}
	return v
}

func tributeViews(ts []model.Tribute) []types.Tribute {
	out := make([]types.Tribute, len(ts))
	for i, t := range ts {
		out[i] = tributeView(t)
	}
	return out
}

func eventView(e model.Event) types.Event {
	return types.Event{
		ID:         e.ID,
		Day:        e.Day,
		Phase:      string(e.Phase),
		Text:       e.Text,
		TemplateID: e.TemplateID,
		Tributes:   nonNil(e.Tributes),
		Deaths:     nonNil(e.Deaths),
		Killer:     e.Killer,
		Timestamp:  e.Timestamp,
	}
}

func eventViews(es []model.Event) []types.Event {
	out := make([]types.Event, len(es))
	for i, e := range es {
		out[i] = eventView(e)
	}
	return out
}

func summaryView(g *game.Game) types.GameSummary {
	v := types.GameSummary{
		ID:        g.ID(),
		Phase:     string(g.Phase()),
		Day:       g.Day(),
		Alive:     len(g.Alive()),
		Total:     len(g.Tributes()),
		Pending:   g.Pending(),
		Finished:  g.Finished(),
		CreatedAt: g.CreatedAt(),
	}
	if w, ok := g.Winner(); ok {
		v.Winner = w.ID
	}
	return v
}

func gameView(g *game.Game) types.Game {
	districts := g.Districts()
	dv := make([]types.District, len(districts))
	for i, d := range districts {
		dv[i] = types.District{ID: d.ID, Tributes: []string{d.Tributes[0], d.Tributes[1]}}
	}
	return types.Game{
		GameSummary:  summaryView(g),
		Seed:         g.Seed(),
		LastFeastDay: g.LastFeastDay(),
		LastArenaDay: g.LastArenaDay(),
		Tributes:     tributeViews(g.Tributes()),
		Districts:    dv,
	}
}

func stepView(phase model.Phase, res model.StepResult) types.Step {
	v := types.Step{
		Phase:     string(phase),
		Events:    eventViews(res.Events),
		Deaths:    nonNil(res.Deaths),
		NextPhase: string(res.NextPhase),
		NextDay:   res.NextDay,
		GameOver:  res.GameOver,
	}
	if res.Winner != nil {
		v.Winner = res.Winner.ID
	}
	return v
}

func placementViews(ps []game.Placement) []types.Placement {
	out := make([]types.Placement, len(ps))
	for i, p := range ps {
		out[i] = types.Placement{Rank: p.Rank, Tribute: tributeView(p.Tribute)}
	}
	return out
}

// nonNil keeps empty lists as [] in JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
