package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/okian/arena/internal/domain/types"
)

// BatchDependencies defines the batch runner.
type BatchDependencies interface {
	RunBatch(ctx context.Context, req types.BatchRequest) (types.BatchReport, error)
}

// BatchHandler handles batch requests.
type BatchHandler struct {
	deps BatchDependencies
}

// NewBatchHandler creates a new batch handler.
func NewBatchHandler(deps BatchDependencies) *BatchHandler {
	return &BatchHandler{deps: deps}
}

// HandleBatch handles POST /batch.
func (h *BatchHandler) HandleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.batch"
	var req types.BatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", Wrap(op, err))
		return
	}
	if req.Games < 1 {
		writeError(w, http.StatusBadRequest, "bad_request",
			Wrap(op, fmt.Errorf("%w: games must be positive", ErrBadRequest)))
		return
	}
	report, err := h.deps.RunBatch(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
