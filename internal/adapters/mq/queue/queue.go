// Package queue carries lane commands from callers to the lane worker.
//
// The queue is the only way into the worker, which keeps the game state
// confined to a single goroutine.
package queue

import (
	"context"
	"sync"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/pkg/metrics"
)

const defaultCapacity = 1024

// Command is the payload flowing through the queue.
type Command = model.Command

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a command. It fails with ErrFull or ErrClosed instead of
	// blocking.
	Enqueue(ctx context.Context, c Command) error

	// Dequeue returns the channel commands are delivered on. The channel is
	// closed once the queue is closed and drained.
	Dequeue(ctx context.Context) <-chan Command

	// Len returns the current number of queued commands.
	Len(ctx context.Context) int

	// Close stops accepting commands. Already queued commands are still
	// delivered.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	commands chan Command
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.commands = make(chan Command, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	return q
}

// Enqueue adds a command to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, c Command) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return err
	}

	select {
	case q.commands <- c:
		metrics.UpdateQueueSize(len(q.commands))
		return nil
	default:
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns the delivery channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Command {
	return q.commands
}

// Len returns the current number of queued commands.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.commands)
	metrics.UpdateQueueSize(size)
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.commands)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
