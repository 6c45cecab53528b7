package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/okian/bowling/internal/domain/model"
)

func shootCommand(id string, s model.Shot) Command {
	return model.NewCommand(id, model.CommandShoot, s)
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	if err := q.Enqueue(ctx, shootCommand("req-1", model.Strike)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	c := <-q.Dequeue(ctx)
	if c.RequestID != "req-1" || c.Shot != model.Strike || c.Kind != model.CommandShoot {
		t.Errorf("unexpected command %+v", c)
	}
	if cap(c.Reply) != 1 {
		t.Errorf("expected buffered reply channel, got cap %d", cap(c.Reply))
	}
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := q.Enqueue(ctx, shootCommand(fmt.Sprintf("req-%d", i), model.One)); err != nil {
			t.Fatalf("expected enqueue to succeed, got %v", err)
		}
	}

	if err := q.Enqueue(ctx, shootCommand("req-3", model.One)); !errors.Is(err, ErrFull) {
		t.Errorf("expected ErrFull, got %v", err)
	}
	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := q.Enqueue(ctx, shootCommand("req-1", model.One)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestInMemoryQueue_PreservesOrder(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	got := make([]string, 0, 50)
	go func() {
		defer wg.Done()
		for c := range q.Dequeue(ctx) {
			got = append(got, c.RequestID)
		}
	}()

	for i := 0; i < 50; i++ {
		id := fmt.Sprintf("req-%d", i)
		for q.Enqueue(ctx, shootCommand(id, model.Zero)) != nil {
			time.Sleep(time.Millisecond)
		}
	}
	_ = q.Close()
	wg.Wait()

	if len(got) != 50 {
		t.Fatalf("expected 50 commands, got %d", len(got))
	}
	for i, id := range got {
		if id != fmt.Sprintf("req-%d", i) {
			t.Fatalf("command %d out of order: %s", i, id)
		}
	}
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()

	if err := q.Enqueue(ctx, shootCommand("req-1", model.Two)); err != nil {
		t.Fatalf("expected enqueue to succeed, got %v", err)
	}
	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}
	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}
	if err := q.Enqueue(ctx, shootCommand("req-2", model.Two)); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}

	commands := q.Dequeue(ctx)
	if c, ok := <-commands; !ok || c.RequestID != "req-1" {
		t.Errorf("expected queued command to drain, got %+v ok=%v", c, ok)
	}
	select {
	case _, ok := <-commands:
		if ok {
			t.Error("expected dequeue channel to be closed")
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("expected dequeue channel to be closed within timeout")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
