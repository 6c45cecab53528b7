// Package worker runs the lane worker: the single goroutine that owns the
// game tracker and applies queued commands to it in order.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/bowling/internal/adapters/mq/queue"
	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/tracker"
	"github.com/okian/bowling/pkg/logger"
	"github.com/okian/bowling/pkg/metrics"
)

// Command abstracts what the worker reads off the queue.
type Command = queue.Command

// Queue defines how the worker receives commands.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Command
}

// Game is the state the worker drives. *tracker.Tracker satisfies it.
type Game interface {
	Shoot(s model.Shot) error
	Reset()
	Shots() []model.Shot
	ShotsByFrame() [][]model.Shot
	Scores() []int
	CurrentFrame() int
	CurrentShot() int
	GameOver() bool
}

// LaneWorker applies commands to one game.
type LaneWorker struct {
	queue  Queue
	game   Game
	gameID string
	newID  func() string

	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	logger logger.Logger
}

// NewLaneWorker creates a worker around a fresh tracker.
func NewLaneWorker(q Queue, opts ...Option) *LaneWorker {
	w := &LaneWorker{
		queue:    q,
		game:     tracker.New(),
		newID:    uuid.NewString,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named("lane-worker")
	}
	w.gameID = w.newID()
	return w
}

// Run applies commands until the queue closes, ctx is cancelled, or a
// Shutdown deadline passes.
func (w *LaneWorker) Run(ctx context.Context) {
	defer close(w.done)

	metrics.UpdateCurrentFrame(w.game.CurrentFrame())
	commands := w.queue.Dequeue(ctx)
	for {
		select {
		case <-w.shutdown:
			return
		default:
		}
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case c, ok := <-commands:
			if !ok {
				return
			}
			w.handle(ctx, c)
		}
	}
}

// Shutdown waits for Run to drain a closed queue and exit. If ctx ends
// first, Run is told to stop without draining and the ctx error is returned.
func (w *LaneWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.stopOnce.Do(func() { close(w.shutdown) })
		w.logger.Warn(ctx, "shutdown timed out, pending commands dropped")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Done is closed once Run has returned.
func (w *LaneWorker) Done() <-chan struct{} { return w.done }

func (w *LaneWorker) handle(ctx context.Context, c Command) { //nolint:gocritic // hugeParam: Command is passed by value for channel semantics
	start := time.Now()

	var err error
	switch c.Kind {
	case model.CommandShoot:
		err = w.shoot(ctx, c)
	case model.CommandReset:
		w.reset(ctx)
	case model.CommandSnapshot:
	default:
		err = fmt.Errorf("unknown command %d", c.Kind)
		metrics.RecordErrorByComponent("worker", "unknown_command")
	}

	result := model.Result{Snapshot: w.snapshot(), Err: err}
	metrics.RecordCommand(c.Kind.String(), float64(time.Since(start).Microseconds())/1000)
	metrics.UpdateCurrentFrame(w.game.CurrentFrame())

	if c.Reply == nil {
		return
	}
	select {
	case c.Reply <- result:
	default:
		w.logger.Warn(ctx, "reply dropped", logger.String("request_id", c.RequestID))
	}
}

func (w *LaneWorker) shoot(ctx context.Context, c Command) error { //nolint:gocritic // hugeParam: Command is passed by value for channel semantics
	frame, ball := w.game.CurrentFrame(), w.game.CurrentShot()
	if err := w.game.Shoot(c.Shot); err != nil {
		reason := "invalid_shot"
		if errors.Is(err, tracker.ErrGameOver) {
			reason = "game_over"
		}
		metrics.RecordShotRejected(reason)
		w.logger.Debug(ctx, "shot rejected",
			logger.String("game_id", w.gameID),
			logger.String("request_id", c.RequestID),
			logger.String("shot", c.Shot.String()),
			logger.String("reason", reason),
		)
		return err
	}

	metrics.RecordShotAccepted(c.Shot.Kind())
	w.logger.Debug(ctx, "shot recorded",
		logger.String("game_id", w.gameID),
		logger.String("request_id", c.RequestID),
		logger.String("shot", c.Shot.String()),
		logger.Int("frame", frame+1),
		logger.Int("ball", ball+1),
	)

	if w.game.GameOver() {
		scores := w.game.Scores()
		final := 0
		if len(scores) > 0 {
			final = scores[len(scores)-1]
		}
		metrics.RecordGameCompleted(final)
		w.logger.Info(ctx, "game completed",
			logger.String("game_id", w.gameID),
			logger.Int("score", final),
		)
	}
	return nil
}

func (w *LaneWorker) reset(ctx context.Context) {
	previous := w.gameID
	w.game.Reset()
	w.gameID = w.newID()
	metrics.RecordReset()
	w.logger.Info(ctx, "game reset",
		logger.String("previous_game_id", previous),
		logger.String("game_id", w.gameID),
	)
}

func (w *LaneWorker) snapshot() model.Snapshot {
	return model.Snapshot{
		GameID:       w.gameID,
		Shots:        w.game.Shots(),
		Frames:       w.game.ShotsByFrame(),
		Scores:       w.game.Scores(),
		CurrentFrame: w.game.CurrentFrame(),
		CurrentShot:  w.game.CurrentShot(),
		GameOver:     w.game.GameOver(),
	}
}
