package sqlstore

import (
	"context"
	"strconv"

	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
)

// WatchByDate emits the record for date (nil while it is not cached) and
// again after every write.
func (s *PhotoStore) WatchByDate(ctx context.Context, date string) *live.Subscription[*domain.PhotoRecord] {
	return live.Watch(ctx, s.hub, "date:"+date, func(ctx context.Context) (*domain.PhotoRecord, error) {
		return s.GetByDate(ctx, date)
	})
}

func (s *PhotoStore) WatchRange(ctx context.Context, start, end string) *live.Subscription[[]domain.PhotoRecord] {
	return live.Watch(ctx, s.hub, "range:"+start+":"+end, func(ctx context.Context) ([]domain.PhotoRecord, error) {
		return s.GetByRange(ctx, start, end)
	})
}

func (s *PhotoStore) WatchFavorites(ctx context.Context) *live.Subscription[[]domain.PhotoRecord] {
	return live.Watch(ctx, s.hub, "favorites", s.GetFavorites)
}

// WatchRandomSample redraws a sample of up to n records after every write.
func (s *PhotoStore) WatchRandomSample(ctx context.Context, n int) *live.Subscription[[]domain.PhotoRecord] {
	return live.Watch(ctx, s.hub, "random:"+strconv.Itoa(n), func(ctx context.Context) ([]domain.PhotoRecord, error) {
		return s.GetRandomSample(ctx, n)
	})
}
