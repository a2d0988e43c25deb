package service

import (
	"context"
	"fmt"
	"sort"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
)

// Snapshot reads served straight from the cache.

func (s *SyncService) Photo(ctx context.Context, date string) (*domain.PhotoRecord, error) {
	photo, err := s.photos.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if photo == nil {
		return nil, domain.ErrNotFound
	}
	return photo, nil
}

func (s *SyncService) Photos(ctx context.Context) ([]domain.PhotoRecord, error) {
	return s.photos.GetAll(ctx)
}

func (s *SyncService) PhotosInRange(ctx context.Context, start, end string) ([]domain.PhotoRecord, error) {
	return s.photos.GetByRange(ctx, start, end)
}

func (s *SyncService) Favorites(ctx context.Context) ([]domain.PhotoRecord, error) {
	return s.photos.GetFavorites(ctx)
}

func (s *SyncService) RandomSample(ctx context.Context, n int) ([]domain.PhotoRecord, error) {
	return s.photos.GetRandomSample(ctx, s.randomCount(n))
}

// Import writes records restored from a backup and returns the number of
// distinct dates written. A record marked favorite is made a favorite even
// when it is already cached. Favorite flags are never cleared by an import.
func (s *SyncService) Import(ctx context.Context, photos []domain.PhotoRecord) (int, error) {
	for i, p := range photos {
		if _, err := dates.Parse(p.Date); err != nil {
			return 0, fmt.Errorf("import record %d: %w", i+1, err)
		}
	}

	// the last record of a repeated date wins, as in UpsertMany
	latest := make(map[string]bool, len(photos))
	for _, p := range photos {
		latest[p.Date] = p.IsFavorite
	}
	var favorites []string
	for date, favorite := range latest {
		if favorite {
			favorites = append(favorites, date)
		}
	}
	sort.Strings(favorites)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.photos.UpsertMany(txCtx, photos); err != nil {
			return err
		}
		if len(favorites) == 0 {
			return nil
		}
		return s.photos.MarkFavorites(txCtx, favorites)
	})
	if err != nil {
		return 0, fmt.Errorf("import photos: %w", err)
	}

	s.logger.Info("imported photos", "count", len(latest), "favorites", len(favorites))
	return len(latest), nil
}
