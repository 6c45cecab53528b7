// Package service wires the lane worker, its command queue and request
// de-duplication into the API the HTTP layer depends on.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	eventqueue "github.com/okian/bowling/internal/adapters/mq/queue"
	"github.com/okian/bowling/internal/adapters/mq/worker"
	"github.com/okian/bowling/internal/domain/dedupe"
	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/pkg/logger"
	"github.com/okian/bowling/pkg/metrics"
)

// Default service configuration.
const (
	defaultQueueSize       = 1024
	defaultDedupeSize      = 4096
	defaultShutdownTimeout = 30 * time.Second
)

// Sentinel errors returned by the service.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("backpressure")
	// ErrNoReply means the caller stopped waiting after the command was
	// queued; the command may still be applied.
	ErrNoReply = errors.New("no reply from lane worker")
)

// Service hosts a single game behind the lane worker.
type Service struct {
	mu sync.RWMutex

	deduper    dedupe.Deduper
	queue      eventqueue.Queue
	laneWorker *worker.LaneWorker
	cancel     context.CancelFunc

	queueSize       int
	dedupeSize      int
	shutdownTimeout time.Duration
	workerOpts      []worker.Option

	started bool
	logger  logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum number of pending lane commands.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many request IDs are remembered. Zero or less
// remembers all of them.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		s.dedupeSize = size
	}
}

// WithShutdownTimeout bounds how long Stop waits for the worker.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithWorkerOptions passes extra options to the lane worker built by Start.
func WithWorkerOptions(opts ...worker.Option) Option {
	return func(s *Service) {
		s.workerOpts = append(s.workerOpts, opts...)
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:       defaultQueueSize,
		dedupeSize:      defaultDedupeSize,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start creates the queue and worker and begins processing commands. The
// worker outlives ctx; it stops on Stop.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting lane service...")

	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	q := eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))
	s.queue = q
	workerOpts := append([]worker.Option{worker.WithLogger(s.logger.Named("lane-worker"))}, s.workerOpts...)
	s.laneWorker = worker.NewLaneWorker(q, workerOpts...)

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel
	go s.laneWorker.Run(runCtx)

	s.started = true
	s.logger.Info(ctx, "lane service started",
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop closes the queue, lets the worker drain it and waits for it to exit.
// New commands fail with ErrNotStarted as soon as Stop is called.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	q, w, cancel, log := s.queue, s.laneWorker, s.cancel, s.logger
	s.started = false
	s.mu.Unlock()

	ctx, cancelWait := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancelWait()
	log.Info(ctx, "stopping lane service...")

	_ = q.Close()
	if err := w.Shutdown(ctx); err != nil {
		log.Warn(ctx, "lane worker did not drain in time", logger.Error(err))
	}
	cancel()

	log.Info(ctx, "lane service stopped")
}

// Shoot records a shot. A non-empty requestID makes the call idempotent:
// repeating an applied request returns the current game with duplicate set
// and does not record the shot again. A repeat that arrives while the first
// request is still in flight waits for its outcome.
func (s *Service) Shoot(ctx context.Context, requestID string, shot model.Shot) (model.Snapshot, bool, error) {
	deduper, err := s.dedupe()
	if err != nil {
		return model.Snapshot{}, false, err
	}
	if requestID == "" {
		snap, err := s.do(ctx, "", model.CommandShoot, shot)
		return snap, false, err
	}

	entry, owner := deduper.Claim(ctx, requestID)
	if owner {
		snap, err := s.shootOwned(ctx, deduper, entry, requestID, shot)
		return snap, false, err
	}

	select {
	case <-entry.Done():
	case <-ctx.Done():
		return model.Snapshot{}, false, fmt.Errorf("%w: %w", ErrNoReply, ctx.Err())
	}
	if r := entry.Result(); r.Err != nil {
		// The first attempt failed and was forgotten; its error is this one's.
		return r.Snapshot, false, r.Err
	}

	metrics.RecordDuplicateRequest()
	s.logger.Debug(ctx, "duplicate shot request", logger.String("request_id", requestID))
	snap, err := s.do(ctx, "", model.CommandSnapshot, 0)
	return snap, true, err
}

// shootOwned applies a claimed shot and completes its dedupe entry with the
// worker's result. When the caller stops waiting, the entry is completed in
// the background once the worker answers or exits.
func (s *Service) shootOwned(ctx context.Context, d dedupe.Deduper, e *dedupe.Entry, requestID string, shot model.Shot) (model.Snapshot, error) {
	c, workerDone, err := s.submit(ctx, requestID, model.CommandShoot, shot)
	if err != nil {
		d.Complete(ctx, requestID, e, model.Result{Err: err})
		return model.Snapshot{}, err
	}

	select {
	case r := <-c.Reply:
		d.Complete(ctx, requestID, e, r)
		return r.Snapshot, r.Err
	case <-ctx.Done():
		go s.settle(context.WithoutCancel(ctx), d, e, c, workerDone)
		return model.Snapshot{}, fmt.Errorf("%w: %w", ErrNoReply, ctx.Err())
	}
}

func (s *Service) settle(ctx context.Context, d dedupe.Deduper, e *dedupe.Entry, c model.Command, workerDone <-chan struct{}) { //nolint:gocritic // hugeParam: Command is passed by value for channel semantics
	select {
	case r := <-c.Reply:
		d.Complete(ctx, c.RequestID, e, r)
		return
	case <-workerDone:
	}
	select {
	case r := <-c.Reply:
		d.Complete(ctx, c.RequestID, e, r)
	default:
		s.logger.Warn(ctx, "lane worker exited before applying shot", logger.String("request_id", c.RequestID))
		d.Complete(ctx, c.RequestID, e, model.Result{Err: fmt.Errorf("%w: lane worker stopped", ErrNoReply)})
	}
}

// Reset starts a new game.
func (s *Service) Reset(ctx context.Context) (model.Snapshot, error) {
	return s.do(ctx, "", model.CommandReset, 0)
}

// Snapshot returns the current game.
func (s *Service) Snapshot(ctx context.Context) (model.Snapshot, error) {
	return s.do(ctx, "", model.CommandSnapshot, 0)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":    s.started,
		"queueSize":  s.queueSize,
		"dedupeSize": s.dedupeSize,
	}
	if s.started {
		stats["queueLength"] = s.queue.Len(context.Background())
		stats["requestsRemembered"] = s.deduper.Size()
	}
	return stats
}

func (s *Service) dedupe() (dedupe.Deduper, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.deduper, nil
}

// do sends one command to the lane worker and waits for its reply.
func (s *Service) do(ctx context.Context, requestID string, kind model.CommandKind, shot model.Shot) (model.Snapshot, error) {
	c, _, err := s.submit(ctx, requestID, kind, shot)
	if err != nil {
		return model.Snapshot{}, err
	}

	select {
	case r := <-c.Reply:
		return r.Snapshot, r.Err
	case <-ctx.Done():
		return model.Snapshot{}, fmt.Errorf("%w: %w", ErrNoReply, ctx.Err())
	}
}

// submit queues one command and returns it with the worker's done channel.
func (s *Service) submit(ctx context.Context, requestID string, kind model.CommandKind, shot model.Shot) (model.Command, <-chan struct{}, error) {
	s.mu.RLock()
	if !s.started {
		s.mu.RUnlock()
		return model.Command{}, nil, ErrNotStarted
	}
	q, workerDone := s.queue, s.laneWorker.Done()
	s.mu.RUnlock()

	if requestID == "" {
		requestID = uuid.NewString()
	}
	c := model.NewCommand(requestID, kind, shot)
	if err := q.Enqueue(ctx, c); err != nil {
		if errors.Is(err, eventqueue.ErrFull) || errors.Is(err, eventqueue.ErrClosed) {
			return model.Command{}, nil, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return model.Command{}, nil, err
	}
	return c, workerDone, nil
}
