package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/okian/bowling/internal/domain/model"
)

// ShotDependencies defines what the shots handler needs from the lane.
type ShotDependencies interface {
	Shoot(ctx context.Context, requestID string, shot model.Shot) (model.Snapshot, bool, error)
}

// shotRequest mirrors the OpenAPI schema for POST /shots.
type shotRequest struct {
	RequestID string `json:"request_id"`
	Shot      string `json:"shot"`
}

func (r shotRequest) parse() (model.Shot, error) {
	if r.Shot == "" {
		return 0, errors.New("missing shot")
	}
	s, ok := model.ParseShot(r.Shot)
	if !ok {
		return 0, fmt.Errorf("%w: %q", model.ErrUnknownShot, r.Shot)
	}
	return s, nil
}

// ShotsHandler handles shot requests.
type ShotsHandler struct {
	deps    ShotDependencies
	timeout time.Duration
}

// NewShotsHandler creates a new shots handler.
func NewShotsHandler(deps ShotDependencies, timeout time.Duration) *ShotsHandler {
	return &ShotsHandler{deps: deps, timeout: timeout}
}

// HandlePostShot handles POST /shots requests.
func (h *ShotsHandler) HandlePostShot(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_shot"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req shotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	shot, err := req.parse()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snap, duplicate, err := h.deps.Shoot(ctx, req.RequestID, shot)
	if err != nil {
		writeLaneError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(snap, duplicate))
}
