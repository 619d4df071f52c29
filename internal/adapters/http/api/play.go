package api

import (
	"context"
	"net/http"

	"github.com/okian/arena/internal/domain/types"
)

// PlayDependencies defines the operations that advance a game.
type PlayDependencies interface {
	Step(ctx context.Context, id string) (types.Step, error)
	Reveal(ctx context.Context, id string) (types.Reveal, error)
	Autoplay(ctx context.Context, id string) (Game, error)
	Reset(ctx context.Context, id string) (Game, error)
}

// PlayHandler handles step, reveal, autoplay and reset requests.
type PlayHandler struct {
	deps PlayDependencies
}

// NewPlayHandler creates a new play handler.
func NewPlayHandler(deps PlayDependencies) *PlayHandler {
	return &PlayHandler{deps: deps}
}

// HandleStep handles POST /games/{id}/step.
func (h *PlayHandler) HandleStep(w http.ResponseWriter, r *http.Request) {
	step, err := h.deps.Step(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.step", err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// HandleReveal handles POST /games/{id}/reveal.
func (h *PlayHandler) HandleReveal(w http.ResponseWriter, r *http.Request) {
	rev, err := h.deps.Reveal(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.reveal", err)
		return
	}
	writeJSON(w, http.StatusOK, rev)
}

// HandleAutoplay handles POST /games/{id}/autoplay.
func (h *PlayHandler) HandleAutoplay(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Autoplay(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.autoplay", err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// HandleReset handles POST /games/{id}/reset.
func (h *PlayHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Reset(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.reset", err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}
