package scheduler

import (
	"context"
	"log/slog"
	"time"

	"apod_fetcher/internal/domain"
)

const defaultRunTimeout = 5 * time.Minute

// Syncer refreshes today's photo in the cache.
type Syncer interface {
	RefreshToday(ctx context.Context, apiKey string) (*domain.SyncStats, error)
}

type Scheduler struct {
	syncer     Syncer
	apiKey     string
	interval   time.Duration
	runTimeout time.Duration
	logger     *slog.Logger
}

func NewScheduler(syncer Syncer, apiKey string, interval, runTimeout time.Duration, logger *slog.Logger) *Scheduler {
	if runTimeout <= 0 {
		runTimeout = defaultRunTimeout
	}
	return &Scheduler{
		syncer:     syncer,
		apiKey:     apiKey,
		interval:   interval,
		runTimeout: runTimeout,
		logger:     logger.With("component", "scheduler"),
	}
}

// Start refreshes immediately and then on every tick until ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx, cancel := context.WithTimeout(ctx, s.runTimeout)
	defer cancel()

	if _, err := s.syncer.RefreshToday(syncCtx, s.apiKey); err != nil {
		s.logger.Error("sync failed", "error", err)
	}
}
