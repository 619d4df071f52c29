// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/okian/arena/internal/domain/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GameDependencies
	PlayDependencies
	HistoryDependencies
	BatchDependencies
}

// Server wires HTTP routes for the game API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	gamesHandler   *GamesHandler
	playHandler    *PlayHandler
	historyHandler *HistoryHandler
	batchHandler   *BatchHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		gamesHandler:   NewGamesHandler(deps),
		playHandler:    NewPlayHandler(deps),
		historyHandler: NewHistoryHandler(deps),
		batchHandler:   NewBatchHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /games", MetricsMiddleware(s.gamesHandler.HandleCreate, "games_create"))
	mux.HandleFunc("GET /games", MetricsMiddleware(s.gamesHandler.HandleList, "games_list"))
	mux.HandleFunc("GET /games/{id}", MetricsMiddleware(s.gamesHandler.HandleGet, "games_get"))
	mux.HandleFunc("DELETE /games/{id}", MetricsMiddleware(s.gamesHandler.HandleDelete, "games_delete"))

	mux.HandleFunc("POST /games/{id}/step", MetricsMiddleware(s.playHandler.HandleStep, "games_step"))
	mux.HandleFunc("POST /games/{id}/reveal", MetricsMiddleware(s.playHandler.HandleReveal, "games_reveal"))
	mux.HandleFunc("POST /games/{id}/autoplay", MetricsMiddleware(s.playHandler.HandleAutoplay, "games_autoplay"))
	mux.HandleFunc("POST /games/{id}/reset", MetricsMiddleware(s.playHandler.HandleReset, "games_reset"))

	mux.HandleFunc("GET /games/{id}/events", MetricsMiddleware(s.historyHandler.HandleEvents, "games_events"))
	mux.HandleFunc("GET /games/{id}/placements", MetricsMiddleware(s.historyHandler.HandlePlacements, "games_placements"))

	mux.HandleFunc("POST /batch", MetricsMiddleware(s.batchHandler.HandleBatch, "batch"))
}

// Game mirrors the full game view returned by most routes.
type Game = types.Game

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps a sentinel from the layers below to its status.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	status, code := classify(err)
	writeError(w, status, code, Wrap(op, err))
}

// decodeBody reads an optional JSON body into v. An empty body leaves v
// untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: %w", ErrBadRequest, err)
	}
	return nil
}
