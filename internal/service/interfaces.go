package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
)

type Source interface {
	FetchToday(ctx context.Context, apiKey string) (*domain.PhotoRecord, error)
	FetchRange(ctx context.Context, apiKey, start, end string) ([]domain.PhotoRecord, error)
	FetchRandom(ctx context.Context, apiKey string, count int) ([]domain.PhotoRecord, error)
}

type PhotoStore interface {
	GetAll(ctx context.Context) ([]domain.PhotoRecord, error)
	GetByDate(ctx context.Context, date string) (*domain.PhotoRecord, error)
	GetByRange(ctx context.Context, start, end string) ([]domain.PhotoRecord, error)
	GetFavorites(ctx context.Context) ([]domain.PhotoRecord, error)
	GetRandomSample(ctx context.Context, n int) ([]domain.PhotoRecord, error)
	ExistingDates(ctx context.Context, dates []string) (map[string]bool, error)
	UpsertMany(ctx context.Context, photos []domain.PhotoRecord) error
	Update(ctx context.Context, photo *domain.PhotoRecord) error
	MarkFavorites(ctx context.Context, dates []string) error

	WatchByDate(ctx context.Context, date string) *live.Subscription[*domain.PhotoRecord]
	WatchRange(ctx context.Context, start, end string) *live.Subscription[[]domain.PhotoRecord]
	WatchFavorites(ctx context.Context) *live.Subscription[[]domain.PhotoRecord]
	WatchRandomSample(ctx context.Context, n int) *live.Subscription[[]domain.PhotoRecord]
}

type SyncStateStore interface {
	Get(ctx context.Context, kind domain.SyncKind) (*domain.SyncState, error)
	Update(ctx context.Context, state *domain.SyncState) error
	List(ctx context.Context) ([]domain.SyncState, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	Publish(ctx context.Context, photo *domain.PhotoRecord, isNew bool) error
	Close() error
}

type Metrics interface {
	ObserveSync(stats *domain.SyncStats, err error)
	ObserveFavoriteToggle(favorite bool)
}
