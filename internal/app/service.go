// Package service ties the game store, the simulator and the batch worker
// pool together behind the operations the HTTP API and the CLIs use.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/okian/arena/internal/adapters/mq/queue"
	"github.com/okian/arena/internal/adapters/mq/worker"
	"github.com/okian/arena/internal/adapters/repository"
	"github.com/okian/arena/internal/domain/catalog"
	"github.com/okian/arena/internal/domain/dedupe"
	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/game"
	"github.com/okian/arena/internal/domain/model"
	"github.com/okian/arena/internal/domain/trigger"
	"github.com/okian/arena/pkg/logger"
)

// Service implements the game operations.
type Service struct {
	mu sync.RWMutex

	// Core components
	pool    *catalog.Pool
	sim     *engine.Simulator
	store   repository.Store
	jobs    *queue.InMemoryQueue
	workers *worker.Pool
	batches *batchRouter

	// Configuration
	seed          int64
	catalogPath   string
	rates         engine.FatalityRates
	policy        trigger.Policy
	maxGames      int
	workerCount   int
	queueSize     int
	dedupeSize    int
	maxTicks      int
	maxBatchGames int

	// State
	started bool
	cancel  context.CancelFunc

	logger logger.Logger
}

// New constructs a Service with default configuration. Components are
// built by Start.
func New(opts ...Option) *Service {
	s := &Service{
		rates:         engine.DefaultFatalityRates(),
		policy:        trigger.DefaultPolicy(),
		maxGames:      1000,
		workerCount:   runtime.NumCPU() * 2,
		queueSize:     1024,
		maxTicks:      1000,
		maxBatchGames: 10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog and starts the batch workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting arena service...")

	if s.pool == nil {
		pool, err := catalog.Load(s.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.pool = pool
	}
	s.sim = engine.New(s.pool,
		engine.WithFatalityRates(s.rates),
		engine.WithLogger(s.logger.Named("engine")),
	)
	s.store = repository.NewMemoryStore(repository.WithMaxGames(s.maxGames))

	s.batches = newBatchRouter()
	s.jobs = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.workers = worker.NewPool(s.workerCount, s.jobs, &batchPlayer{svc: s, sim: s.sim}, s.batches,
		worker.WithPoolLogger(s.logger.Named("worker-pool")),
	)

	// Workers outlive the request that started the service.
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	s.workers.Start(runCtx)

	s.started = true
	s.logger.Info(ctx, "arena service started",
		logger.Int("templates", len(s.pool.Templates())),
		logger.Int("workers", s.workers.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxGames", s.maxGames),
	)
	return nil
}

// Stop drains the batch queue and stops the workers.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}
	s.logger.Info(ctx, "stopping arena service...")

	err := s.workers.Shutdown(ctx)
	s.cancel()
	s.started = false

	s.logger.Info(ctx, "arena service stopped")
	return err
}

// components returns the live store and simulator, or ErrNotStarted.
func (s *Service) components() (repository.Store, *engine.Simulator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, nil, ErrNotStarted
	}
	return s.store, s.sim, nil
}

// newGame builds a game wired with the service's policy, dedupe bound and
// logger. seed nil draws a fresh seed unless the service has a fixed one.
func (s *Service) newGame(id string, cast []model.Tribute, sim *engine.Simulator, seed *int64) (*game.Game, error) {
	opts := []game.Option{
		game.WithPolicy(s.policy),
		game.WithDeduper(dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))),
		game.WithLogger(s.logger.Named("game")),
	}
	switch {
	case seed != nil:
		opts = append(opts, game.WithSeed(*seed))
	case s.seed != 0:
		opts = append(opts, game.WithSeed(s.seed))
	}
	return game.New(id, cast, sim, opts...)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":       s.started,
		"workerCount":   s.workerCount,
		"queueSize":     s.queueSize,
		"maxGames":      s.maxGames,
		"maxTicks":      s.maxTicks,
		"maxBatchGames": s.maxBatchGames,
	}
	if s.started {
		stats["games"] = s.store.Count(ctx)
		stats["queueLength"] = s.jobs.Len(ctx)
		stats["batchGamesPlayed"] = s.workers.Processed()
		stats["templates"] = len(s.pool.Templates())
	}
	return stats
}
