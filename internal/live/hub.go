// Package live turns storage queries into subscriptions that are re-run after
// every committed write. All subscribers of the same query share one loader,
// so a change costs one query no matter how many subscribers are attached.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// LoadFunc runs a query and returns its current result.
type LoadFunc[T any] func(ctx context.Context) (T, error)

type query interface {
	markDirty()
}

// Hub tracks the queries that currently have subscribers.
type Hub struct {
	mu      sync.Mutex
	queries map[string]query
	logger  *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		queries: make(map[string]query),
		logger:  logger.With("component", "live"),
	}
}

// Notify tells every watched query that the underlying data changed.
func (h *Hub) Notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, q := range h.queries {
		q.markDirty()
	}
}

// Len returns the number of queries with at least one subscriber.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.queries)
}

// Watch subscribes to the query identified by key. The first subscriber
// starts the loader; later subscribers with the same key reuse it and
// immediately receive its latest result. The subscription ends when ctx is
// done or Cancel is called.
func Watch[T any](ctx context.Context, h *Hub, key string, load LoadFunc[T]) *Subscription[T] {
	var zero T
	mapKey := fmt.Sprintf("%s|%T", key, zero)

	sub := &Subscription[T]{
		updates: make(chan T, 1),
		done:    make(chan struct{}),
	}

	h.mu.Lock()
	f, ok := h.queries[mapKey].(*feed[T])
	if !ok {
		f = newFeed(h, mapKey, load)
		h.queries[mapKey] = f
		go f.run()
	}
	sub.feed = f
	f.add(sub)
	h.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
			sub.Cancel()
		case <-sub.done:
		}
	}()

	return sub
}

type feed[T any] struct {
	hub    *Hub
	key    string
	load   LoadFunc[T]
	dirty  chan struct{}
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	subs    map[*Subscription[T]]struct{}
	last    T
	hasLast bool
	lastErr error
}

func newFeed[T any](h *Hub, key string, load LoadFunc[T]) *feed[T] {
	ctx, cancel := context.WithCancel(context.Background())
	return &feed[T]{
		hub:    h,
		key:    key,
		load:   load,
		dirty:  make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		subs:   make(map[*Subscription[T]]struct{}),
	}
}

func (f *feed[T]) markDirty() {
	select {
	case f.dirty <- struct{}{}:
	default:
	}
}

func (f *feed[T]) run() {
	for {
		f.refresh()

		select {
		case <-f.ctx.Done():
			return
		case <-f.dirty:
		}
	}
}

func (f *feed[T]) refresh() {
	v, err := f.load(f.ctx)
	if f.ctx.Err() != nil {
		return
	}

	f.mu.Lock()
	if err != nil {
		f.lastErr = err
		f.mu.Unlock()
		f.hub.logger.Warn("live query failed", "query", f.key, "error", err)
		return
	}
	f.last, f.hasLast, f.lastErr = v, true, nil
	subs := make([]*Subscription[T], 0, len(f.subs))
	for s := range f.subs {
		subs = append(subs, s)
	}
	f.mu.Unlock()

	for _, s := range subs {
		s.deliver(v)
	}
}

// add must be called with the hub lock held.
func (f *feed[T]) add(s *Subscription[T]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.subs[s] = struct{}{}
	if f.hasLast {
		s.deliver(f.last)
	}
}

func (f *feed[T]) remove(s *Subscription[T]) {
	f.hub.mu.Lock()
	defer f.hub.mu.Unlock()

	f.mu.Lock()
	delete(f.subs, s)
	empty := len(f.subs) == 0
	f.mu.Unlock()

	if empty {
		if current, ok := f.hub.queries[f.key]; ok && current == query(f) {
			delete(f.hub.queries, f.key)
		}
		f.cancel()
	}
}

func (f *feed[T]) err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}
