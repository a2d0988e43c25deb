package live

import (
	"context"
	"sync"
)

// Value is an observable slot holding the latest value published to it.
type Value[T any] struct {
	mu       sync.RWMutex
	v        T
	version  uint64
	watchers map[chan T]struct{}
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		v:        initial,
		watchers: make(map[chan T]struct{}),
	}
}

// Set stores v and hands it to every watcher.
func (v *Value[T]) Set(x T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.v = x
	v.version++
	for ch := range v.watchers {
		replace(ch, x)
	}
}

func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.v
}

// Version counts the calls to Set.
func (v *Value[T]) Version() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.version
}

// Watch returns a channel that first yields the current value and then every
// later one, keeping only the newest. It is closed when ctx is done.
func (v *Value[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	v.mu.Lock()
	ch <- v.v
	v.watchers[ch] = struct{}{}
	v.mu.Unlock()

	go func() {
		<-ctx.Done()
		v.mu.Lock()
		delete(v.watchers, ch)
		close(ch)
		v.mu.Unlock()
	}()

	return ch
}

func replace[T any](ch chan T, x T) {
	select {
	case <-ch:
	default:
	}
	ch <- x
}
