package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/okian/arena/internal/domain/types"
)

// HistoryDependencies defines the read-only views of a game's past.
type HistoryDependencies interface {
	Events(ctx context.Context, id string, day *int) ([]types.Event, error)
	Placements(ctx context.Context, id string) ([]types.Placement, error)
}

// HistoryHandler handles event log and standings requests.
type HistoryHandler struct {
	deps HistoryDependencies
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(deps HistoryDependencies) *HistoryHandler {
	return &HistoryHandler{deps: deps}
}

// HandleEvents handles GET /games/{id}/events[?day=N].
func (h *HistoryHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	const op = "api.events"
	var day *int
	if raw := r.URL.Query().Get("day"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request",
				Wrap(op, fmt.Errorf("%w: day must be a non-negative integer", ErrBadRequest)))
			return
		}
		day = &n
	}
	events, err := h.deps.Events(r.Context(), r.PathValue("id"), day)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// HandlePlacements handles GET /games/{id}/placements.
func (h *HistoryHandler) HandlePlacements(w http.ResponseWriter, r *http.Request) {
	placements, err := h.deps.Placements(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.placements", err)
		return
	}
	writeJSON(w, http.StatusOK, placements)
}
