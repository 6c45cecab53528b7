package api

import (
	"context"
	"net/http"
	"time"

	"github.com/okian/bowling/internal/domain/model"
)

// GameDependencies defines the lane reads and resets.
type GameDependencies interface {
	Snapshot(ctx context.Context) (model.Snapshot, error)
	Reset(ctx context.Context) (model.Snapshot, error)
}

// GameHandler handles game requests.
type GameHandler struct {
	deps    GameDependencies
	timeout time.Duration
}

// NewGameHandler creates a new game handler.
func NewGameHandler(deps GameDependencies, timeout time.Duration) *GameHandler {
	return &GameHandler{deps: deps, timeout: timeout}
}

// HandleGetGame handles GET /game requests.
func (h *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_game"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap, err := h.deps.Snapshot(ctx)
	if err != nil {
		writeLaneError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(snap, false))
}

// HandleReset handles POST /reset requests.
func (h *GameHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	const op = "api.reset"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap, err := h.deps.Reset(ctx)
	if err != nil {
		writeLaneError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(snap, false))
}
