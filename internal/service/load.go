package service

import (
	"context"
	"errors"
	"fmt"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
)

type slot int

const (
	slotCurrent slot = iota
	slotList
)

// Current holds the single photo shown by the last LoadToday.
func (s *SyncService) Current() *live.Value[*domain.PhotoRecord] {
	return s.current
}

// List holds the records of the last range, random or favorites load.
func (s *SyncService) List() *live.Value[[]domain.PhotoRecord] {
	return s.list
}

// Selection holds the date range picked by the user.
func (s *SyncService) Selection() *live.Value[domain.DateRange] {
	return s.selection
}

// LoadToday refreshes today's photo in the background and points Current at
// the cached record for today.
func (s *SyncService) LoadToday(ctx context.Context, apiKey string) {
	today := dates.Today(s.now)

	s.background(ctx, domain.SyncKindToday, func(ctx context.Context) error {
		_, err := s.RefreshToday(ctx, apiKey)
		return err
	})

	fctx, ok := s.attach(ctx, slotCurrent)
	if !ok {
		return
	}
	forward(fctx, s.photos.WatchByDate(fctx, today), s.setCurrent)
}

// LoadRange refreshes [start, end] in the background and points List at the
// cached records of that range. An invalid range is rejected before anything
// starts.
func (s *SyncService) LoadRange(ctx context.Context, apiKey, start, end string) error {
	if err := dates.ValidateRange(start, end); err != nil {
		return err
	}

	s.background(ctx, domain.SyncKindRange, func(ctx context.Context) error {
		_, err := s.RefreshRange(ctx, apiKey, start, end)
		return err
	})

	s.watchList(ctx, func(ctx context.Context) *live.Subscription[[]domain.PhotoRecord] {
		return s.photos.WatchRange(ctx, start, end)
	})
	return nil
}

// LoadRandom fetches count random photos in the background and points List
// at a random sample of the cache of the same size.
func (s *SyncService) LoadRandom(ctx context.Context, apiKey string, count int) {
	count = s.randomCount(count)

	s.background(ctx, domain.SyncKindRandom, func(ctx context.Context) error {
		_, err := s.RefreshRandom(ctx, apiKey, count)
		return err
	})

	s.watchList(ctx, func(ctx context.Context) *live.Subscription[[]domain.PhotoRecord] {
		return s.photos.WatchRandomSample(ctx, count)
	})
}

// LoadFavorites points List at the favorite records. Nothing is fetched.
func (s *SyncService) LoadFavorites(ctx context.Context) {
	s.watchList(ctx, s.photos.WatchFavorites)
}

// ToggleFavorite flips the favorite flag of photo, stores it and shows every
// cached record in List.
func (s *SyncService) ToggleFavorite(ctx context.Context, photo domain.PhotoRecord) (*domain.PhotoRecord, error) {
	photo.IsFavorite = !photo.IsFavorite

	if err := s.photos.Update(ctx, &photo); err != nil {
		s.logger.Error("failed to toggle favorite", "date", photo.Date, "error", err)
		return nil, fmt.Errorf("update photo: %w", err)
	}

	if s.metrics != nil {
		s.metrics.ObserveFavoriteToggle(photo.IsFavorite)
	}

	all, err := s.photos.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to reload photos", "error", err)
		return &photo, nil
	}

	s.detach(slotList)
	s.list.Set(all)

	return &photo, nil
}

// ToggleFavoriteByDate looks up the cached record for date and toggles it.
func (s *SyncService) ToggleFavoriteByDate(ctx context.Context, date string) (*domain.PhotoRecord, error) {
	photo, err := s.photos.GetByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("get photo: %w", err)
	}
	if photo == nil {
		return nil, domain.ErrNotFound
	}
	return s.ToggleFavorite(ctx, *photo)
}

// SetDateRangeSelection records the range picked by the user. It is kept in
// memory only.
func (s *SyncService) SetDateRangeSelection(start, end string) {
	s.selection.Set(domain.DateRange{Start: start, End: end})
}

func (s *SyncService) DateRangeSelection() domain.DateRange {
	return s.selection.Get()
}

// Wait blocks until every background refresh started by a load returns.
func (s *SyncService) Wait() {
	s.wg.Wait()
}

// Close ends every subscription the service forwards into its slots.
func (s *SyncService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, cancel := range s.forwarders {
		cancel()
		delete(s.forwarders, key)
	}
}

// background runs a refresh whose failure is only logged. Subscribers keep
// receiving whatever the cache holds.
func (s *SyncService) background(ctx context.Context, kind domain.SyncKind, fn func(ctx context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		err := fn(ctx)
		if err == nil {
			return
		}

		var fetchErr *domain.RemoteFetchError
		var writeErr *domain.StoreWriteError
		switch {
		case errors.Is(err, context.Canceled):
			s.logger.Debug("background sync cancelled", "kind", kind)
		case errors.As(err, &fetchErr):
			s.logger.Warn("remote fetch failed, serving cached photos", "kind", kind, "status", fetchErr.Status, "error", err)
		case errors.As(err, &writeErr):
			s.logger.Error("store write failed, serving cached photos", "kind", kind, "error", err)
		default:
			s.logger.Error("background sync failed", "kind", kind, "error", err)
		}
	}()
}

func (s *SyncService) watchList(ctx context.Context, watch func(ctx context.Context) *live.Subscription[[]domain.PhotoRecord]) {
	fctx, ok := s.attach(ctx, slotList)
	if !ok {
		return
	}
	forward(fctx, watch(fctx), s.setList)
}

// attach replaces the forwarder of sl and returns the context the new one
// runs under.
func (s *SyncService) attach(ctx context.Context, sl slot) (context.Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.forwarders[sl]; ok {
		cancel()
	}
	if ctx.Err() != nil {
		delete(s.forwarders, sl)
		return nil, false
	}

	fctx, cancel := context.WithCancel(ctx)
	s.forwarders[sl] = cancel
	return fctx, true
}

func (s *SyncService) detach(sl slot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cancel, ok := s.forwarders[sl]; ok {
		cancel()
		delete(s.forwarders, sl)
	}
}

// setCurrent and setList drop values from forwarders that have been replaced.
func (s *SyncService) setCurrent(ctx context.Context, photo *domain.PhotoRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() == nil {
		s.current.Set(photo)
	}
}

func (s *SyncService) setList(ctx context.Context, photos []domain.PhotoRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() == nil {
		s.list.Set(photos)
	}
}

func forward[T any](ctx context.Context, sub *live.Subscription[T], set func(ctx context.Context, v T)) {
	go func() {
		defer sub.Cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case v, ok := <-sub.Updates():
				if !ok {
					return
				}
				set(ctx, v)
			}
		}
	}()
}
