package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"apod_fetcher/internal/domain"
)

type SyncStateStore struct {
	db *sqlx.DB
}

func NewSyncStateStore(db *sqlx.DB) *SyncStateStore {
	return &SyncStateStore{db: db}
}

func (s *SyncStateStore) Get(ctx context.Context, kind domain.SyncKind) (*domain.SyncState, error) {
	var state domain.SyncState
	query := s.db.Rebind(`
		SELECT kind, last_synced_at, last_date, total_synced
		FROM sync_state
		WHERE kind = ?`)

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &state, query, kind)
	if errors.Is(err, sql.ErrNoRows) {
		// Return empty state for kinds never synced
		return &domain.SyncState{Kind: kind}, nil
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SyncStateStore) List(ctx context.Context) ([]domain.SyncState, error) {
	states := []domain.SyncState{}
	query := `SELECT kind, last_synced_at, last_date, total_synced FROM sync_state ORDER BY kind`

	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &states, query); err != nil {
		return nil, err
	}
	return states, nil
}

func (s *SyncStateStore) Update(ctx context.Context, state *domain.SyncState) error {
	query := s.db.Rebind(`
		INSERT INTO sync_state (kind, last_synced_at, last_date, total_synced)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (kind) DO UPDATE SET
			last_synced_at = excluded.last_synced_at,
			last_date = excluded.last_date,
			total_synced = excluded.total_synced`)

	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		state.Kind,
		state.LastSyncedAt.UTC(),
		state.LastDate,
		state.TotalSynced,
	)
	if err != nil {
		return &domain.StoreWriteError{Op: "update sync state", Err: err}
	}
	return nil
}
