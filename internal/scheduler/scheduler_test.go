package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apod_fetcher/internal/domain"
)

type fakeSyncer struct {
	mu      sync.Mutex
	calls   int
	keys    []string
	err     error
	timeout bool
}

func (f *fakeSyncer) RefreshToday(ctx context.Context, apiKey string) (*domain.SyncStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.keys = append(f.keys, apiKey)
	if _, ok := ctx.Deadline(); ok {
		f.timeout = true
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.SyncStats{Kind: domain.SyncKindToday}, nil
}

func (f *fakeSyncer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestScheduler_RunsImmediatelyAndOnTick(t *testing.T) {
	syncer := &fakeSyncer{}
	s := NewScheduler(syncer, "key", 20*time.Millisecond, time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	assert.Eventually(t, func() bool { return syncer.count() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}

	syncer.mu.Lock()
	defer syncer.mu.Unlock()
	assert.Equal(t, "key", syncer.keys[0])
	assert.True(t, syncer.timeout)
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("upstream down")}
	s := NewScheduler(syncer, "key", 10*time.Millisecond, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.Equal(t, defaultRunTimeout, s.runTimeout)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = s.Start(ctx) }()

	assert.Eventually(t, func() bool { return syncer.count() >= 2 }, 2*time.Second, 5*time.Millisecond)
}
