// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	service "github.com/okian/bowling/internal/app"
	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/tracker"
	"github.com/okian/bowling/internal/domain/types"
)

const defaultRequestTimeout = 5 * time.Second

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the lane service.
type Dependencies interface {
	ShotDependencies
	GameDependencies
}

// Game mirrors the read shape returned by every game endpoint.
type Game = types.Game

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	metricsHandler http.Handler
	statsHandler   *StatsHandler
	shotsHandler   *ShotsHandler
	gameHandler    *GameHandler
}

// Option configures a Server.
type Option func(*serverOptions)

type serverOptions struct {
	requestTimeout time.Duration
}

// WithRequestTimeout bounds how long a handler waits for the lane.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *serverOptions) {
		if d > 0 {
			o.requestTimeout = d
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := &serverOptions{requestTimeout: defaultRequestTimeout}
	for _, opt := range opts {
		opt(o)
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		metricsHandler: NewMetricsHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		shotsHandler:   NewShotsHandler(deps, o.requestTimeout),
		gameHandler:    NewGameHandler(deps, o.requestTimeout),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.metricsHandler.ServeHTTP, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/shots", MetricsMiddleware(s.shotsHandler.HandlePostShot, "shots"))
	mux.HandleFunc("/game", MetricsMiddleware(s.gameHandler.HandleGetGame, "game"))
	mux.HandleFunc("/reset", MetricsMiddleware(s.gameHandler.HandleReset, "reset"))
}

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

// writeLaneError translates errors coming back from the lane service.
func writeLaneError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidShot):
		writeError(w, http.StatusUnprocessableEntity, "invalid_shot", err)
	case errors.Is(err, tracker.ErrGameOver):
		writeError(w, http.StatusConflict, "game_over", err)
	case errors.Is(err, service.ErrBackpressure):
		writeError(w, http.StatusTooManyRequests, "backpressure", WrapKind(op, ErrBackpressure, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	case errors.Is(err, service.ErrNoReply), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "timeout", WrapKind(op, ErrTimeout, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}

// viewOf converts a snapshot for the wire.
func viewOf(s model.Snapshot, duplicate bool) Game { //nolint:gocritic // hugeParam: snapshots are values
	g := types.FromSnapshot(s)
	g.Duplicate = duplicate
	return g
}
