package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"apod_fetcher/internal/config"
	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
)

type SyncService struct {
	source    Source
	photos    PhotoStore
	syncState SyncStateStore
	txManager TransactionManager
	publisher Publisher
	metrics   Metrics
	logger    *slog.Logger
	config    config.SyncConfig
	now       func() time.Time

	current   *live.Value[*domain.PhotoRecord]
	list      *live.Value[[]domain.PhotoRecord]
	selection *live.Value[domain.DateRange]

	mu         sync.Mutex
	forwarders map[slot]context.CancelFunc
	wg         sync.WaitGroup
}

func NewSyncService(
	source Source,
	photos PhotoStore,
	syncState SyncStateStore,
	txManager TransactionManager,
	publisher Publisher,
	metrics Metrics,
	logger *slog.Logger,
	cfg config.SyncConfig,
) *SyncService {
	return &SyncService{
		source:     source,
		photos:     photos,
		syncState:  syncState,
		txManager:  txManager,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger.With("component", "sync"),
		config:     cfg,
		now:        time.Now,
		current:    live.NewValue[*domain.PhotoRecord](nil),
		list:       live.NewValue([]domain.PhotoRecord{}),
		selection:  live.NewValue(domain.DateRange{}),
		forwarders: make(map[slot]context.CancelFunc),
	}
}

// RefreshToday fetches today's photo and stores it.
func (s *SyncService) RefreshToday(ctx context.Context, apiKey string) (*domain.SyncStats, error) {
	return s.refresh(ctx, domain.SyncKindToday, func(ctx context.Context) ([]domain.PhotoRecord, error) {
		photo, err := s.source.FetchToday(ctx, apiKey)
		if err != nil {
			return nil, err
		}
		return []domain.PhotoRecord{*photo}, nil
	})
}

// RefreshRange fetches every photo dated within [start, end] and stores them.
func (s *SyncService) RefreshRange(ctx context.Context, apiKey, start, end string) (*domain.SyncStats, error) {
	if err := dates.ValidateRange(start, end); err != nil {
		return nil, err
	}
	return s.refresh(ctx, domain.SyncKindRange, func(ctx context.Context) ([]domain.PhotoRecord, error) {
		return s.source.FetchRange(ctx, apiKey, start, end)
	})
}

// RefreshRandom fetches count random photos and stores them. A non-positive
// count falls back to the configured default.
func (s *SyncService) RefreshRandom(ctx context.Context, apiKey string, count int) (*domain.SyncStats, error) {
	count = s.randomCount(count)
	return s.refresh(ctx, domain.SyncKindRandom, func(ctx context.Context) ([]domain.PhotoRecord, error) {
		return s.source.FetchRandom(ctx, apiKey, count)
	})
}

// Status returns the bookkeeping row of every kind synced so far.
func (s *SyncService) Status(ctx context.Context) ([]domain.SyncState, error) {
	return s.syncState.List(ctx)
}

func (s *SyncService) refresh(
	ctx context.Context,
	kind domain.SyncKind,
	fetch func(ctx context.Context) ([]domain.PhotoRecord, error),
) (*domain.SyncStats, error) {
	startTime := time.Now()
	stats := &domain.SyncStats{Kind: kind}
	logger := s.logger.With("kind", kind)

	logger.Info("starting sync")

	photos, err := fetch(ctx)
	if err != nil {
		return nil, s.fail(stats, startTime, fmt.Errorf("fetch photos: %w", err))
	}

	stats.Fetched = len(photos)
	logger.Debug("fetched photos from source", "count", len(photos))

	existing, err := s.photos.ExistingDates(ctx, datesOf(photos))
	if err != nil {
		return nil, s.fail(stats, startTime, fmt.Errorf("check existing photos: %w", err))
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.photos.UpsertMany(txCtx, photos); err != nil {
			return fmt.Errorf("upsert photos: %w", err)
		}
		return s.updateSyncState(txCtx, kind, photos)
	})
	if err != nil {
		return nil, s.fail(stats, startTime, err)
	}

	stats.Stored = len(photos)
	stats.LastDate = newestDate(photos)

	if s.publisher != nil {
		for i := range photos {
			photo := &photos[i]
			if err := s.publisher.Publish(ctx, photo, !existing[photo.Date]); err != nil {
				logger.Warn("failed to publish photo", "date", photo.Date, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(startTime)

	logger.Info("sync completed",
		"fetched", stats.Fetched,
		"stored", stats.Stored,
		"published", stats.Published,
		"errors", stats.Errors,
		"duration", stats.Duration,
	)

	if s.metrics != nil {
		s.metrics.ObserveSync(stats, nil)
	}

	return stats, nil
}

func (s *SyncService) fail(stats *domain.SyncStats, startTime time.Time, err error) error {
	stats.Errors++
	stats.Duration = time.Since(startTime)
	if s.metrics != nil {
		s.metrics.ObserveSync(stats, err)
	}
	return err
}

func (s *SyncService) updateSyncState(ctx context.Context, kind domain.SyncKind, photos []domain.PhotoRecord) error {
	state, err := s.syncState.Get(ctx, kind)
	if err != nil {
		return fmt.Errorf("get sync state: %w", err)
	}

	state.Kind = kind
	state.LastSyncedAt = s.now()
	state.TotalSynced += int64(len(photos))
	if newest := newestDate(photos); newest > state.LastDate {
		state.LastDate = newest
	}

	if err := s.syncState.Update(ctx, state); err != nil {
		return fmt.Errorf("update sync state: %w", err)
	}
	return nil
}

func (s *SyncService) randomCount(count int) int {
	if count > 0 {
		return count
	}
	if s.config.RandomCount > 0 {
		return s.config.RandomCount
	}
	return 1
}

func datesOf(photos []domain.PhotoRecord) []string {
	keys := make([]string, len(photos))
	for i, p := range photos {
		keys[i] = p.Date
	}
	return keys
}

func newestDate(photos []domain.PhotoRecord) string {
	var newest string
	for _, p := range photos {
		if p.Date > newest {
			newest = p.Date
		}
	}
	return newest
}
