package live

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const waitFor = 2 * time.Second

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func next[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(waitFor):
		t.Fatal("timed out waiting for update")
	}
	var zero T
	return zero
}

func TestWatch_EmitsInitialAndAfterNotify(t *testing.T) {
	hub := testHub()
	var counter atomic.Int64

	sub := Watch(context.Background(), hub, "count", func(ctx context.Context) (int64, error) {
		return counter.Load(), nil
	})
	defer sub.Cancel()

	assert.Equal(t, int64(0), next(t, sub.Updates()))

	counter.Store(5)
	hub.Notify()

	assert.Equal(t, int64(5), next(t, sub.Updates()))
}

func TestWatch_SharesLoaderBetweenSubscribers(t *testing.T) {
	hub := testHub()
	var loads atomic.Int64
	release := make(chan struct{})

	load := func(ctx context.Context) (int64, error) {
		n := loads.Add(1)
		if n == 1 {
			<-release
		}
		return n, nil
	}

	first := Watch(context.Background(), hub, "shared", load)
	second := Watch(context.Background(), hub, "shared", load)
	defer first.Cancel()
	defer second.Cancel()

	assert.Equal(t, 1, hub.Len())

	close(release)
	assert.Equal(t, int64(1), next(t, first.Updates()))
	assert.Equal(t, int64(1), next(t, second.Updates()))

	hub.Notify()
	assert.Equal(t, int64(2), next(t, first.Updates()))
	assert.Equal(t, int64(2), next(t, second.Updates()))
	assert.Equal(t, int64(2), loads.Load())
}

func TestWatch_LateSubscriberGetsLatestResult(t *testing.T) {
	hub := testHub()
	var loads atomic.Int64
	load := func(ctx context.Context) (int64, error) {
		return loads.Add(1), nil
	}

	first := Watch(context.Background(), hub, "late", load)
	defer first.Cancel()
	require.Equal(t, int64(1), next(t, first.Updates()))

	second := Watch(context.Background(), hub, "late", load)
	defer second.Cancel()
	assert.Equal(t, int64(1), next(t, second.Updates()))
	assert.Equal(t, int64(1), loads.Load())
}

func TestWatch_DistinctKeysAreIndependent(t *testing.T) {
	hub := testHub()

	a := Watch(context.Background(), hub, "a", func(ctx context.Context) (string, error) { return "a", nil })
	b := Watch(context.Background(), hub, "b", func(ctx context.Context) (string, error) { return "b", nil })
	defer a.Cancel()
	defer b.Cancel()

	assert.Equal(t, "a", next(t, a.Updates()))
	assert.Equal(t, "b", next(t, b.Updates()))
	assert.Equal(t, 2, hub.Len())
}

func TestSubscription_CancelRemovesQuery(t *testing.T) {
	hub := testHub()
	sub := Watch(context.Background(), hub, "q", func(ctx context.Context) (int, error) { return 1, nil })

	next(t, sub.Updates())
	sub.Cancel()
	sub.Cancel()

	assert.Equal(t, 0, hub.Len())
	_, ok := <-sub.Updates()
	assert.False(t, ok)
}

func TestSubscription_ContextCancel(t *testing.T) {
	hub := testHub()
	ctx, cancel := context.WithCancel(context.Background())

	sub := Watch(ctx, hub, "q", func(ctx context.Context) (int, error) { return 1, nil })
	next(t, sub.Updates())

	cancel()

	select {
	case <-sub.Done():
	case <-time.After(waitFor):
		t.Fatal("subscription not cancelled")
	}
	require.Eventually(t, func() bool { return hub.Len() == 0 }, waitFor, 10*time.Millisecond)
}

func TestSubscription_LoadErrorKeepsSubscription(t *testing.T) {
	hub := testHub()
	var fail atomic.Bool
	var loads atomic.Int64
	boom := errors.New("boom")

	sub := Watch(context.Background(), hub, "flaky", func(ctx context.Context) (int64, error) {
		n := loads.Add(1)
		if fail.Load() {
			return 0, boom
		}
		return n, nil
	})
	defer sub.Cancel()

	assert.Equal(t, int64(1), next(t, sub.Updates()))

	fail.Store(true)
	hub.Notify()
	require.Eventually(t, func() bool { return errors.Is(sub.Err(), boom) }, waitFor, 10*time.Millisecond)

	fail.Store(false)
	hub.Notify()
	assert.Equal(t, int64(3), next(t, sub.Updates()))
	assert.NoError(t, sub.Err())
}

func TestValue(t *testing.T) {
	v := NewValue[[]string](nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := v.Watch(ctx)
	assert.Nil(t, next(t, ch))

	v.Set([]string{"a"})
	v.Set([]string{"a", "b"})

	assert.Equal(t, []string{"a", "b"}, next(t, ch))
	assert.Equal(t, []string{"a", "b"}, v.Get())
	assert.Equal(t, uint64(2), v.Version())

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, waitFor, 10*time.Millisecond)
}
