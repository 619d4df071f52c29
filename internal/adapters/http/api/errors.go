package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/arena/internal/adapters/mq/queue"
	"github.com/okian/arena/internal/adapters/repository"
	service "github.com/okian/arena/internal/app"
	"github.com/okian/arena/internal/domain/game"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// Wrap prefixes err with the handler operation.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// classify returns the status and error code for err.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, game.ErrEventsPending):
		return http.StatusConflict, "events_pending"
	case errors.Is(err, game.ErrGameOver):
		return http.StatusConflict, "game_over"
	case errors.Is(err, game.ErrNothingToReveal):
		return http.StatusConflict, "nothing_to_reveal"
	case errors.Is(err, game.ErrTickLimit):
		return http.StatusConflict, "tick_limit"
	case errors.Is(err, repository.ErrExists):
		return http.StatusConflict, "conflict"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, game.ErrInvalidRoster):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrCapacity):
		return http.StatusServiceUnavailable, "capacity"
	case errors.Is(err, service.ErrNotStarted),
		errors.Is(err, queue.ErrClosed),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
