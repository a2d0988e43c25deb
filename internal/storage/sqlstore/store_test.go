package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
	"apod_fetcher/internal/testutil"
)

const liveTimeout = 2 * time.Second

// storeSuite holds the store tests shared by every database driver. The
// embedding suite opens db and migrates it before each test.
type storeSuite struct {
	suite.Suite
	ctx context.Context
	db  *sqlx.DB

	hub    *live.Hub
	txm    *TransactionManager
	photos *PhotoStore
	state  *SyncStateStore
}

func (s *storeSuite) initStores() {
	s.hub = live.NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.txm = NewTransactionManager(s.db)
	s.photos = NewPhotoStore(s.db, s.txm, s.hub)
	s.state = NewSyncStateStore(s.db)
}

func (s *storeSuite) clean() {
	_, err := s.db.ExecContext(s.ctx, "DELETE FROM apod_photos")
	s.Require().NoError(err)
	_, err = s.db.ExecContext(s.ctx, "DELETE FROM sync_state")
	s.Require().NoError(err)
}

func (s *storeSuite) count() int {
	var n int
	s.Require().NoError(s.db.GetContext(s.ctx, &n, "SELECT COUNT(*) FROM apod_photos"))
	return n
}

func (s *storeSuite) TestEmptyStoreReturnsEmptySlices() {
	all, err := s.photos.GetAll(s.ctx)
	s.NoError(err)
	s.NotNil(all)
	s.Empty(all)

	favorites, err := s.photos.GetFavorites(s.ctx)
	s.NoError(err)
	s.NotNil(favorites)
	s.Empty(favorites)

	sample, err := s.photos.GetRandomSample(s.ctx, 5)
	s.NoError(err)
	s.Empty(sample)

	photo, err := s.photos.GetByDate(s.ctx, "2024-01-01")
	s.NoError(err)
	s.Nil(photo)
}

func (s *storeSuite) TestUpsertOne_InsertAndRead() {
	photo := testutil.Photo("2024-01-15")
	photo.ThumbnailURL = testutil.Ptr("https://example.com/thumb.jpg")

	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	got, err := s.photos.GetByDate(s.ctx, "2024-01-15")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(photo, *got)
}

func (s *storeSuite) TestUpsertOne_NilFieldsRoundTrip() {
	photo := domain.PhotoRecord{Date: "2024-01-15", Title: testutil.Ptr("Only a title")}

	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	got, err := s.photos.GetByDate(s.ctx, "2024-01-15")
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Nil(got.URL)
	s.Nil(got.Copyright)
	s.Equal("Only a title", *got.Title)
}

func (s *storeSuite) TestUpsertMany_IsIdempotent() {
	photos := testutil.Month(2024, 1, 31)

	s.Require().NoError(s.photos.UpsertMany(s.ctx, photos))
	s.Require().NoError(s.photos.UpsertMany(s.ctx, photos))

	s.Equal(31, s.count())
}

func (s *storeSuite) TestUpsertMany_ReplacesContent() {
	photo := testutil.Photo("2024-01-15")
	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	photo.Title = testutil.Ptr("Corrected title")
	photo.Copyright = nil
	s.Require().NoError(s.photos.UpsertMany(s.ctx, []domain.PhotoRecord{photo}))

	got, err := s.photos.GetByDate(s.ctx, "2024-01-15")
	s.Require().NoError(err)
	s.Equal("Corrected title", *got.Title)
	s.Nil(got.Copyright)
	s.Equal(1, s.count())
}

func (s *storeSuite) TestUpsertMany_KeepsFavoriteFlag() {
	photo := testutil.Photo("2024-01-15")
	photo.IsFavorite = true
	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	fresh := testutil.Photo("2024-01-15")
	fresh.Title = testutil.Ptr("Refetched")
	s.Require().NoError(s.photos.UpsertMany(s.ctx, []domain.PhotoRecord{fresh}))

	got, err := s.photos.GetByDate(s.ctx, "2024-01-15")
	s.Require().NoError(err)
	s.True(got.IsFavorite)
	s.Equal("Refetched", *got.Title)
}

func (s *storeSuite) TestUpsertMany_LastDuplicateWins() {
	first := testutil.Photo("2024-01-15")
	second := testutil.Photo("2024-01-15")
	second.Title = testutil.Ptr("second")

	s.Require().NoError(s.photos.UpsertMany(s.ctx, []domain.PhotoRecord{first, second}))

	got, err := s.photos.GetByDate(s.ctx, "2024-01-15")
	s.Require().NoError(err)
	s.Equal("second", *got.Title)
	s.Equal(1, s.count())
}

func (s *storeSuite) TestUpsertMany_SpansChunks() {
	var photos []domain.PhotoRecord
	for m := 1; m <= 4; m++ {
		photos = append(photos, testutil.Month(2023, m, 28)...)
	}

	s.Require().NoError(s.photos.UpsertMany(s.ctx, photos))
	s.Equal(len(photos), s.count())
}

func (s *storeSuite) TestUpsertMany_RejectsMissingDate() {
	photos := []domain.PhotoRecord{testutil.Photo("2024-01-01"), {Title: testutil.Ptr("no date")}}

	err := s.photos.UpsertMany(s.ctx, photos)

	var writeErr *domain.StoreWriteError
	s.ErrorAs(err, &writeErr)
	s.Equal(0, s.count())
}

func (s *storeSuite) TestUpsertMany_Empty() {
	s.NoError(s.photos.UpsertMany(s.ctx, nil))
	s.Equal(0, s.count())
}

func (s *storeSuite) TestGetByRange_InclusiveAndOrdered() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 31)))
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 2, 29)))

	got, err := s.photos.GetByRange(s.ctx, "2024-01-30", "2024-02-02")
	s.Require().NoError(err)

	dates := make([]string, 0, len(got))
	for _, p := range got {
		dates = append(dates, p.Date)
	}
	s.Equal([]string{"2024-02-02", "2024-02-01", "2024-01-31", "2024-01-30"}, dates)
}

func (s *storeSuite) TestGetByRange_ElevenOfThirtyOne() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 31)))

	got, err := s.photos.GetByRange(s.ctx, "2024-01-10", "2024-01-20")
	s.Require().NoError(err)

	s.Require().Len(got, 11)
	s.Equal("2024-01-20", got[0].Date)
	s.Equal("2024-01-10", got[10].Date)
	for _, p := range got {
		s.GreaterOrEqual(p.Date, "2024-01-10")
		s.LessOrEqual(p.Date, "2024-01-20")
	}
}

func (s *storeSuite) TestExistingDates() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 3)))

	existing, err := s.photos.ExistingDates(s.ctx, []string{"2024-01-02", "2024-01-09"})
	s.Require().NoError(err)
	s.Equal(map[string]bool{"2024-01-02": true}, existing)

	none, err := s.photos.ExistingDates(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *storeSuite) TestGetAll_NewestFirst() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 3, 5)))

	got, err := s.photos.GetAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(got, 5)
	s.Equal("2024-03-05", got[0].Date)
	s.Equal("2024-03-01", got[4].Date)
}

func (s *storeSuite) TestGetFavorites_ExactlyMarked() {
	photos := testutil.Month(2024, 1, 5)
	photos[1].IsFavorite = true
	photos[3].IsFavorite = true
	s.Require().NoError(s.photos.UpsertMany(s.ctx, photos))

	favorites, err := s.photos.GetFavorites(s.ctx)
	s.Require().NoError(err)

	s.Require().Len(favorites, 2)
	s.Equal("2024-01-04", favorites[0].Date)
	s.Equal("2024-01-02", favorites[1].Date)
	for _, p := range favorites {
		s.True(p.IsFavorite)
	}
}

func (s *storeSuite) TestGetRandomSample_SubsetOfAll() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 10)))

	all, err := s.photos.GetAll(s.ctx)
	s.Require().NoError(err)
	cached := make(map[string]domain.PhotoRecord, len(all))
	for _, p := range all {
		cached[p.Date] = p
	}

	sample, err := s.photos.GetRandomSample(s.ctx, 3)
	s.Require().NoError(err)

	s.Require().Len(sample, 3)
	for _, p := range sample {
		s.Contains(cached, p.Date)
		s.Equal(cached[p.Date], p)
	}
}

func (s *storeSuite) TestGetRandomSample_Bounds() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 10)))

	sample, err := s.photos.GetRandomSample(s.ctx, 4)
	s.Require().NoError(err)
	s.Len(sample, 4)

	seen := make(map[string]bool)
	for _, p := range sample {
		s.False(seen[p.Date], "duplicate %s", p.Date)
		seen[p.Date] = true
	}

	all, err := s.photos.GetRandomSample(s.ctx, 50)
	s.Require().NoError(err)
	s.Len(all, 10)

	none, err := s.photos.GetRandomSample(s.ctx, 0)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *storeSuite) TestUpdate_TogglesFavorite() {
	photo := testutil.Photo("2024-01-15")
	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	photo.IsFavorite = true
	s.Require().NoError(s.photos.Update(s.ctx, &photo))

	favorites, err := s.photos.GetFavorites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(favorites, 1)
	s.Equal("2024-01-15", favorites[0].Date)

	photo.IsFavorite = false
	s.Require().NoError(s.photos.Update(s.ctx, &photo))

	favorites, err = s.photos.GetFavorites(s.ctx)
	s.Require().NoError(err)
	s.Empty(favorites)
}

func (s *storeSuite) TestUpdate_Missing() {
	photo := testutil.Photo("2024-01-15")

	err := s.photos.Update(s.ctx, &photo)

	s.ErrorIs(err, domain.ErrNotFound)
	s.Equal(0, s.count())
}

func (s *storeSuite) TestMarkFavorites() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 3)))

	s.Require().NoError(s.photos.MarkFavorites(s.ctx, []string{"2024-01-02", "2024-01-09"}))

	favorites, err := s.photos.GetFavorites(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(favorites, 1)
	s.Equal("2024-01-02", favorites[0].Date)
	s.Equal(3, s.count())

	s.NoError(s.photos.MarkFavorites(s.ctx, nil))
}

func (s *storeSuite) TestWatchFavorites_EmitsAfterWrites() {
	photo := testutil.Photo("2024-01-15")
	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub := s.photos.WatchFavorites(ctx)
	s.Empty(s.nextList(sub))

	photo.IsFavorite = true
	s.Require().NoError(s.photos.Update(s.ctx, &photo))

	favorites := s.nextList(sub)
	s.Require().Len(favorites, 1)
	s.True(favorites[0].IsFavorite)
}

func (s *storeSuite) TestWatchRange_SeesNewRecords() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub := s.photos.WatchRange(ctx, "2024-01-01", "2024-01-31")
	s.Empty(s.nextList(sub))

	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 31)))

	s.Len(s.nextList(sub), 31)
}

func (s *storeSuite) TestWatchByDate_NilUntilStored() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub := s.photos.WatchByDate(ctx, "2024-01-15")

	select {
	case got := <-sub.Updates():
		s.Nil(got)
	case <-time.After(liveTimeout):
		s.FailNow("no initial emission")
	}

	photo := testutil.Photo("2024-01-15")
	s.Require().NoError(s.photos.UpsertOne(s.ctx, &photo))

	select {
	case got := <-sub.Updates():
		s.Require().NotNil(got)
		s.Equal("2024-01-15", got.Date)
	case <-time.After(liveTimeout):
		s.FailNow("no emission after upsert")
	}
}

func (s *storeSuite) TestWatchRandomSample_RespectsBound() {
	s.Require().NoError(s.photos.UpsertMany(s.ctx, testutil.Month(2024, 1, 20)))

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub := s.photos.WatchRandomSample(ctx, 5)
	s.Len(s.nextList(sub), 5)
}

func (s *storeSuite) TestTransaction_RollbackDiscardsWritesAndNotifications() {
	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	sub := s.photos.WatchRange(ctx, "2024-01-01", "2024-01-31")
	s.Empty(s.nextList(sub))

	boom := errors.New("boom")
	err := s.txm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.photos.UpsertMany(ctx, testutil.Month(2024, 1, 5)); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)
	s.Equal(0, s.count())

	select {
	case got := <-sub.Updates():
		s.Failf("unexpected emission", "%d records", len(got))
	case <-time.After(100 * time.Millisecond):
	}
}

func (s *storeSuite) TestTransaction_CommitJoinsNestedWrites() {
	err := s.txm.WithTransaction(s.ctx, func(ctx context.Context) error {
		if err := s.photos.UpsertMany(ctx, testutil.Month(2024, 1, 3)); err != nil {
			return err
		}
		photo := testutil.Photo("2024-01-02")
		photo.IsFavorite = true
		if err := s.photos.Update(ctx, &photo); err != nil {
			return err
		}
		return s.state.Update(ctx, &domain.SyncState{
			Kind:         domain.SyncKindRange,
			LastSyncedAt: time.Now(),
			LastDate:     "2024-01-03",
			TotalSynced:  3,
		})
	})
	s.Require().NoError(err)

	s.Equal(3, s.count())
	favorites, err := s.photos.GetFavorites(s.ctx)
	s.Require().NoError(err)
	s.Len(favorites, 1)
}

func (s *storeSuite) TestSyncState_GetMissing() {
	state, err := s.state.Get(s.ctx, domain.SyncKindToday)
	s.Require().NoError(err)
	s.Equal(domain.SyncKindToday, state.Kind)
	s.True(state.LastSyncedAt.IsZero())
	s.Zero(state.TotalSynced)
}

func (s *storeSuite) TestSyncState_UpdateAndList() {
	syncedAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, kind := range []domain.SyncKind{domain.SyncKindToday, domain.SyncKindRandom} {
		err := s.state.Update(s.ctx, &domain.SyncState{
			Kind:         kind,
			LastSyncedAt: syncedAt,
			LastDate:     fmt.Sprintf("2024-05-0%d", i+1),
			TotalSynced:  int64(i + 1),
		})
		s.Require().NoError(err)
	}

	err := s.state.Update(s.ctx, &domain.SyncState{
		Kind:         domain.SyncKindToday,
		LastSyncedAt: syncedAt.Add(time.Hour),
		LastDate:     "2024-05-02",
		TotalSynced:  7,
	})
	s.Require().NoError(err)

	today, err := s.state.Get(s.ctx, domain.SyncKindToday)
	s.Require().NoError(err)
	s.Equal("2024-05-02", today.LastDate)
	s.Equal(int64(7), today.TotalSynced)
	s.True(syncedAt.Add(time.Hour).Equal(today.LastSyncedAt))

	states, err := s.state.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(states, 2)
	s.Equal(domain.SyncKindRandom, states[0].Kind)
	s.Equal(domain.SyncKindToday, states[1].Kind)
}

func (s *storeSuite) nextList(sub *live.Subscription[[]domain.PhotoRecord]) []domain.PhotoRecord {
	select {
	case got, ok := <-sub.Updates():
		s.Require().True(ok, "subscription closed")
		return got
	case <-time.After(liveTimeout):
		s.FailNow("timed out waiting for live query")
	}
	return nil
}
