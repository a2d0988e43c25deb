package live

import "sync"

// Subscription receives the results of a live query. Updates always holds
// the most recent result; older undelivered results are dropped.
type Subscription[T any] struct {
	feed    *feed[T]
	updates chan T
	done    chan struct{}

	mu     sync.Mutex
	closed bool
	once   sync.Once
}

// Updates returns the channel of results. It is closed after Cancel.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

// Done is closed once the subscription has been cancelled.
func (s *Subscription[T]) Done() <-chan struct{} {
	return s.done
}

// Err returns the error of the most recent failed load, or nil once a load
// succeeds again.
func (s *Subscription[T]) Err() error {
	if s.feed == nil {
		return nil
	}
	return s.feed.err()
}

// Cancel detaches the subscription. It is safe to call more than once.
func (s *Subscription[T]) Cancel() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.updates)
		s.mu.Unlock()

		close(s.done)

		if s.feed != nil {
			s.feed.remove(s)
		}
	})
}

func (s *Subscription[T]) deliver(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	select {
	case <-s.updates:
	default:
	}
	s.updates <- v
}
