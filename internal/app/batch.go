package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/arena/internal/adapters/mq/queue"
	"github.com/okian/arena/internal/adapters/repository"
	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/random"
	"github.com/okian/arena/internal/domain/render"
	"github.com/okian/arena/internal/domain/types"
	"github.com/okian/arena/pkg/logger"
)

// RunBatch plays req.Games independent games on the worker pool and
// aggregates the outcomes. Batch games are never stored.
func (s *Service) RunBatch(ctx context.Context, req types.BatchRequest) (types.BatchReport, error) {
	s.mu.RLock()
	started, jobs, batches := s.started, s.jobs, s.batches
	s.mu.RUnlock()
	if !started {
		return types.BatchReport{}, ErrNotStarted
	}
	if req.Games < 1 || req.Games > s.maxBatchGames {
		return types.BatchReport{}, fmt.Errorf("%w: games must be within [1,%d], got %d",
			ErrInvalidRequest, s.maxBatchGames, req.Games)
	}
	cast, err := castFrom(req.Tributes)
	if err != nil {
		return types.BatchReport{}, err
	}

	start := time.Now()
	batchID := uuid.NewString()
	results := batches.open(batchID, req.Games)
	defer batches.close(batchID)

	s.logger.Info(ctx, "batch started",
		logger.String("batch_id", batchID),
		logger.Int("games", req.Games),
	)

	submitted := 0
	var submitErr error
	for i := 0; i < req.Games; i++ {
		seed, err := batchSeed(req.Seed, i)
		if err != nil {
			submitErr = err
			break
		}
		job := queue.Job{BatchID: batchID, Index: i, Seed: seed, Cast: cast, MaxTicks: s.maxTicks}
		if err := jobs.Submit(ctx, job); err != nil {
			submitErr = err
			break
		}
		submitted++
	}

	collected := make([]queue.Result, 0, submitted)
	for len(collected) < submitted {
		select {
		case res := <-results:
			collected = append(collected, res)
		case <-ctx.Done():
			return types.BatchReport{}, ctx.Err()
		}
	}
	if submitErr != nil {
		return types.BatchReport{}, fmt.Errorf("batch %s: submitted %d of %d: %w",
			batchID, submitted, req.Games, submitErr)
	}

	elapsed := time.Since(start)
	report := aggregate(ctx, collected, elapsed)
	s.logger.Info(ctx, "batch finished",
		logger.String("batch_id", batchID),
		logger.Int("completed", report.Completed),
		logger.Int("failed", report.Failed),
		logger.Float64("mean_days", report.MeanDays),
		logger.Duration("elapsed", elapsed),
	)
	return report, nil
}

func batchSeed(base *int64, index int) (int64, error) {
	if base != nil {
		return *base + int64(index), nil
	}
	return random.NewSeed()
}

// topKillersSize bounds the kill leaderboard in a batch report.
const topKillersSize = 5

// aggregate folds per-game results into a report. Failed games only count
// toward Failed. TopKiller is the best single game; TopKillers sums kills
// per tribute across the batch.
func aggregate(ctx context.Context, results []queue.Result, elapsed time.Duration) types.BatchReport {
	report := types.BatchReport{
		Games:          len(results),
		WinsByDistrict: map[string]int{},
		TopKillers:     []types.KillerStanding{},
		DurationMillis: elapsed.Milliseconds(),
	}
	board := repository.NewLeaderboard()
	var days, events int
	for _, res := range results {
		if res.Err != nil {
			report.Failed++
			continue
		}
		report.Completed++
		days += res.Days
		events += res.Events
		if res.Winner == nil {
			report.NoSurvivor++
		} else {
			report.WinsByDistrict[strconv.Itoa(res.Winner.DistrictID)]++
		}
		for _, t := range res.Tributes {
			name := render.QualifiedName(t)
			if t.Kills > report.TopKills {
				report.TopKills = t.Kills
				report.TopKiller = name
			}
			board.Record(ctx, name, t.Kills, res.Winner != nil && res.Winner.ID == t.ID)
		}
	}
	if report.Completed > 0 {
		report.MeanDays = float64(days) / float64(report.Completed)
		report.MeanEvents = float64(events) / float64(report.Completed)
	}

	if board.Count(ctx) > 0 {
		top, err := board.TopN(ctx, topKillersSize)
		if err == nil {
			for _, st := range top {
				report.TopKillers = append(report.TopKillers, types.KillerStanding{
					Rank:  st.Rank,
					Name:  st.Name,
					Kills: st.Kills,
					Best:  st.Best,
					Games: st.Games,
					Wins:  st.Wins,
				})
			}
		}
	}
	return report
}

// batchPlayer plays one job on a throwaway game.
type batchPlayer struct {
	svc *Service
	sim *engine.Simulator
}

func (p *batchPlayer) Play(ctx context.Context, job queue.Job) (queue.Result, error) {
	id := job.BatchID + "-" + strconv.Itoa(job.Index)
	seed := job.Seed
	g, err := p.svc.newGame(id, job.Cast, p.sim, &seed)
	if err != nil {
		return queue.Result{}, err
	}
	if _, err := g.Play(ctx, job.MaxTicks); err != nil {
		return queue.Result{GameID: id}, err
	}

	res := queue.Result{
		GameID:   id,
		Days:     g.Day(),
		Events:   len(g.Events()),
		Tributes: g.Tributes(),
	}
	if w, ok := g.Winner(); ok {
		res.Winner = &w
	}
	return res, nil
}

// batchRouter hands worker results to the RunBatch call waiting for them.
type batchRouter struct {
	mu    sync.RWMutex
	waits map[string]chan queue.Result
}

func newBatchRouter() *batchRouter {
	return &batchRouter{waits: make(map[string]chan queue.Result)}
}

func (r *batchRouter) open(batchID string, n int) <-chan queue.Result {
	ch := make(chan queue.Result, n)
	r.mu.Lock()
	r.waits[batchID] = ch
	r.mu.Unlock()
	return ch
}

func (r *batchRouter) close(batchID string) {
	r.mu.Lock()
	delete(r.waits, batchID)
	r.mu.Unlock()
}

// Report implements worker.Reporter. Results of abandoned batches are dropped.
func (r *batchRouter) Report(_ context.Context, res queue.Result) {
	r.mu.RLock()
	ch, ok := r.waits[res.BatchID]
	r.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case ch <- res:
	default:
	}
}
