package api

import (
	"context"
	"net/http"

	"github.com/okian/arena/internal/domain/types"
)

// GameDependencies defines the game lifecycle operations.
type GameDependencies interface {
	CreateGame(ctx context.Context, req types.CreateGame) (Game, error)
	Game(ctx context.Context, id string) (Game, error)
	ListGames(ctx context.Context) ([]types.GameSummary, error)
	DeleteGame(ctx context.Context, id string) error
}

// GamesHandler handles game lifecycle requests.
type GamesHandler struct {
	deps GameDependencies
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies) *GamesHandler {
	return &GamesHandler{deps: deps}
}

// HandleCreate handles POST /games. An empty body uses the default cast.
func (h *GamesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"
	var req types.CreateGame
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	g, err := h.deps.CreateGame(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.Header().Set("Location", "/games/"+g.ID)
	writeJSON(w, http.StatusCreated, g)
}

// HandleList handles GET /games.
func (h *GamesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	games, err := h.deps.ListGames(r.Context())
	if err != nil {
		writeServiceError(w, "api.list_games", err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// HandleGet handles GET /games/{id}.
func (h *GamesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	g, err := h.deps.Game(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, "api.get_game", err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// HandleDelete handles DELETE /games/{id}.
func (h *GamesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, "api.delete_game", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
