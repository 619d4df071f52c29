// Package repository holds live games in memory and serializes access to
// each one.
package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/arena/internal/domain/game"
	"github.com/okian/arena/pkg/metrics"
)

// Store provides locked access to games. Callbacks run while the game's
// lock is held and must not retain the *game.Game after returning.
type Store interface {
	// Create adds a new game. Returns ErrExists or ErrCapacity.
	Create(ctx context.Context, g *game.Game) error

	// View runs fn under the game's read lock.
	// Returns ErrNotFound if the game is unknown.
	View(ctx context.Context, id string, fn func(*game.Game) error) error

	// Update runs fn under the game's write lock.
	// Returns ErrNotFound if the game is unknown.
	Update(ctx context.Context, id string, fn func(*game.Game) error) error

	// Delete removes a game. Returns ErrNotFound if the game is unknown.
	Delete(ctx context.Context, id string) error

	// List runs fn for every game in creation order under its read lock.
	// Iteration stops at the first error.
	List(ctx context.Context, fn func(*game.Game) error) error

	// Count returns the number of stored games.
	Count(ctx context.Context) int
}

type slot struct {
	mu      sync.RWMutex
	game    *game.Game
	deleted bool
}

// MemoryStore is the in-memory Store.
type MemoryStore struct {
	mu       sync.RWMutex
	games    map[string]*slot
	order    []string
	maxGames int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		games:    make(map[string]*slot),
		maxGames: 1000,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateGamesActive(0)
	return s
}

// Create adds g.
func (s *MemoryStore) Create(_ context.Context, g *game.Game) error {
	start := time.Now()
	defer observe("create", start)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[g.ID()]; ok {
		metrics.RecordErrorByComponent("repository", "exists")
		return fmt.Errorf("%w: %s", ErrExists, g.ID())
	}
	if s.maxGames > 0 && len(s.games) >= s.maxGames {
		metrics.RecordErrorByComponent("repository", "capacity")
		return fmt.Errorf("%w: %d games", ErrCapacity, s.maxGames)
	}
	s.games[g.ID()] = &slot{game: g}
	s.order = append(s.order, g.ID())
	metrics.UpdateGamesActive(len(s.games))
	return nil
}

// View runs fn under the read lock of game id.
func (s *MemoryStore) View(_ context.Context, id string, fn func(*game.Game) error) error {
	start := time.Now()
	defer observe("view", start)

	sl, err := s.lookup(id)
	if err != nil {
		return err
	}
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	if sl.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fn(sl.game)
}

// Update runs fn under the write lock of game id.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*game.Game) error) error {
	start := time.Now()
	defer observe("update", start)

	sl, err := s.lookup(id)
	if err != nil {
		return err
	}
	sl.mu.Lock()
	defer sl.mu.Unlock()
	if sl.deleted {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return fn(sl.game)
}

// Delete removes game id. In-flight callbacks on it finish first.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	start := time.Now()
	defer observe("delete", start)

	s.mu.Lock()
	sl, ok := s.games[id]
	if !ok {
		s.mu.Unlock()
		metrics.RecordErrorByComponent("repository", "not_found")
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	delete(s.games, id)
	for i, gid := range s.order {
		if gid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	metrics.UpdateGamesActive(len(s.games))
	s.mu.Unlock()

	sl.mu.Lock()
	sl.deleted = true
	sl.mu.Unlock()
	return nil
}

// List visits games in creation order.
func (s *MemoryStore) List(ctx context.Context, fn func(*game.Game) error) error {
	s.mu.RLock()
	slots := make([]*slot, 0, len(s.order))
	for _, id := range s.order {
		slots = append(slots, s.games[id])
	}
	s.mu.RUnlock()

	for _, sl := range slots {
		if err := ctx.Err(); err != nil {
			return err
		}
		sl.mu.RLock()
		var err error
		if !sl.deleted {
			err = fn(sl.game)
		}
		sl.mu.RUnlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of stored games.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.games)
}

func (s *MemoryStore) lookup(id string) (*slot, error) {
	s.mu.RLock()
	sl, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sl, nil
}

func observe(op string, start time.Time) {
	metrics.RecordRepositoryLatency(op, float64(time.Since(start).Microseconds())/1000)
}
