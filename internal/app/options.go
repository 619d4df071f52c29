package service

import (
	"github.com/okian/arena/internal/domain/catalog"
	"github.com/okian/arena/internal/domain/engine"
	"github.com/okian/arena/internal/domain/trigger"
	"github.com/okian/arena/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSeed fixes the seed of every game created without an explicit one.
// 0 keeps per-game random seeds.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithCatalog uses an already loaded template pool.
func WithCatalog(pool *catalog.Pool) Option {
	return func(s *Service) {
		if pool != nil {
			s.pool = pool
		}
	}
}

// WithCatalogPath loads templates from a YAML file at Start instead of the
// embedded catalog.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithFatalityRates overrides the per-phase fatality rates.
func WithFatalityRates(rates engine.FatalityRates) Option {
	return func(s *Service) {
		s.rates = rates
	}
}

// WithTriggerPolicy sets the feast and arena-hazard thresholds.
func WithTriggerPolicy(p trigger.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithMaxGames caps the number of live games. 0 is unbounded.
func WithMaxGames(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxGames = n
		}
	}
}

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the batch job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize bounds the applied-event set of each game. 0 is unbounded.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxTicks bounds autoplay and batch games. 0 means no limit.
func WithMaxTicks(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxTicks = n
		}
	}
}

// WithMaxBatchGames caps the size of one batch run.
func WithMaxBatchGames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchGames = n
		}
	}
}
