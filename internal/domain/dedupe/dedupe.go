// Package dedupe remembers request IDs so retried requests are applied once.
package dedupe

import (
	"container/list"
	"context"
	"sync"

	"github.com/okian/bowling/internal/domain/model"
)

const defaultMaxSize = 4096

// Deduper tracks request IDs from the moment a request is claimed until its
// outcome is known. Only requests that completed without error stay
// remembered.
type Deduper interface {
	// Claim registers id as in flight. It returns a new entry and true when
	// the caller now owns id and must Complete it, or the existing entry and
	// false when id is already in flight or applied.
	Claim(ctx context.Context, id string) (*Entry, bool)

	// Complete records the outcome of an owned entry and releases anyone
	// waiting on it. A failed entry is forgotten so the request may be
	// retried.
	Complete(ctx context.Context, id string, e *Entry, r model.Result)

	Size() int64
}

// Entry is the state of one claimed request ID.
type Entry struct {
	done   chan struct{}
	result model.Result
}

func newEntry() *Entry {
	return &Entry{done: make(chan struct{})}
}

// Done is closed once the owner has completed the entry.
func (e *Entry) Done() <-chan struct{} { return e.done }

// Result is the owner's outcome. Only valid after Done is closed.
func (e *Entry) Result() model.Result { return e.result }

func (e *Entry) completed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

type record struct {
	id    string
	entry *Entry
}

// inMemoryDeduper keeps IDs in insertion order for oldest-first eviction.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: defaultMaxSize,
		seen:    make(map[string]*list.Element),
		order:   list.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, id string) (*Entry, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		return el.Value.(*record).entry, false
	}
	d.evict()
	e := newEntry()
	d.seen[id] = d.order.PushBack(&record{id: id, entry: e})
	return e, true
}

func (d *inMemoryDeduper) Complete(_ context.Context, id string, e *Entry, r model.Result) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if e.completed() {
		return
	}
	e.result = r
	close(e.done)

	if r.Err == nil {
		return
	}
	if el, ok := d.seen[id]; ok && el.Value.(*record).entry == e {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}

// evict drops the oldest completed entries until there is room. In-flight
// entries are never evicted, so the set may briefly exceed maxSize.
func (d *inMemoryDeduper) evict() {
	if d.maxSize <= 0 {
		return
	}
	for el := d.order.Front(); el != nil && d.order.Len() >= d.maxSize; {
		next := el.Next()
		if rec := el.Value.(*record); rec.entry.completed() {
			d.order.Remove(el)
			delete(d.seen, rec.id)
		}
		el = next
	}
}
