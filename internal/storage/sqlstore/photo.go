package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
)

const photoColumns = `date, title, explanation, copyright, media_type, service_version, url, hd_url, thumbnail_url, is_favorite`

// rows per INSERT statement; keeps the bind count well under SQLite's limit
const upsertChunkSize = 50

// PhotoStore owns the apod_photos table. Committed writes wake the live
// queries registered on its hub.
type PhotoStore struct {
	db  *sqlx.DB
	tx  *TransactionManager
	hub *live.Hub
}

func NewPhotoStore(db *sqlx.DB, tx *TransactionManager, hub *live.Hub) *PhotoStore {
	return &PhotoStore{db: db, tx: tx, hub: hub}
}

// GetAll returns every cached record, newest first.
func (s *PhotoStore) GetAll(ctx context.Context) ([]domain.PhotoRecord, error) {
	return s.selectPhotos(ctx, `SELECT `+photoColumns+` FROM apod_photos ORDER BY date DESC`)
}

// GetByDate returns the record for date, or nil when it is not cached.
func (s *PhotoStore) GetByDate(ctx context.Context, date string) (*domain.PhotoRecord, error) {
	var photo domain.PhotoRecord
	query := s.db.Rebind(`SELECT ` + photoColumns + ` FROM apod_photos WHERE date = ?`)

	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &photo, query, date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// GetByRange returns the records dated within [start, end], newest first.
func (s *PhotoStore) GetByRange(ctx context.Context, start, end string) ([]domain.PhotoRecord, error) {
	return s.selectPhotos(ctx,
		`SELECT `+photoColumns+` FROM apod_photos WHERE date BETWEEN ? AND ? ORDER BY date DESC`,
		start, end,
	)
}

// GetFavorites returns the records marked as favorite, newest first.
func (s *PhotoStore) GetFavorites(ctx context.Context) ([]domain.PhotoRecord, error) {
	return s.selectPhotos(ctx,
		`SELECT `+photoColumns+` FROM apod_photos WHERE is_favorite = ? ORDER BY date DESC`,
		true,
	)
}

// GetRandomSample draws up to n distinct records at random.
func (s *PhotoStore) GetRandomSample(ctx context.Context, n int) ([]domain.PhotoRecord, error) {
	if n <= 0 {
		return []domain.PhotoRecord{}, nil
	}
	return s.selectPhotos(ctx,
		`SELECT `+photoColumns+` FROM apod_photos ORDER BY RANDOM() LIMIT ?`,
		n,
	)
}

// ExistingDates reports which of dates are already cached.
func (s *PhotoStore) ExistingDates(ctx context.Context, dates []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(dates))
	if len(dates) == 0 {
		return existing, nil
	}

	query, args, err := sqlx.In(`SELECT date FROM apod_photos WHERE date IN (?)`, dates)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var found []string
	if err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &found, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	for _, date := range found {
		existing[date] = true
	}
	return existing, nil
}

func (s *PhotoStore) selectPhotos(ctx context.Context, query string, args ...interface{}) ([]domain.PhotoRecord, error) {
	photos := []domain.PhotoRecord{}
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &photos, s.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// UpsertOne inserts photo or replaces the cached record with the same date.
func (s *PhotoStore) UpsertOne(ctx context.Context, photo *domain.PhotoRecord) error {
	return s.UpsertMany(ctx, []domain.PhotoRecord{*photo})
}

// UpsertMany inserts or replaces photos by date in a single transaction.
// Every column of an existing row is replaced except is_favorite, which
// upstream payloads never carry. When a date repeats within photos the last
// occurrence wins.
func (s *PhotoStore) UpsertMany(ctx context.Context, photos []domain.PhotoRecord) error {
	photos = dedupeByDate(photos)
	if len(photos) == 0 {
		return nil
	}
	for _, p := range photos {
		if p.Date == "" {
			return &domain.StoreWriteError{Op: "upsert", Err: errors.New("photo has no date")}
		}
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, s.db)

		for start := 0; start < len(photos); start += upsertChunkSize {
			end := min(start+upsertChunkSize, len(photos))
			query, args := buildUpsert(photos[start:end])

			if _, err := exec.ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
				return err
			}
		}

		OnCommit(ctx, s.hub.Notify)
		return nil
	})
	if err != nil {
		return &domain.StoreWriteError{Op: "upsert", Err: err}
	}

	return nil
}

// Update replaces the record stored under photo.Date. It returns
// domain.ErrNotFound when no such record exists.
func (s *PhotoStore) Update(ctx context.Context, photo *domain.PhotoRecord) error {
	query := s.db.Rebind(`
		UPDATE apod_photos SET
			title = ?,
			explanation = ?,
			copyright = ?,
			media_type = ?,
			service_version = ?,
			url = ?,
			hd_url = ?,
			thumbnail_url = ?,
			is_favorite = ?
		WHERE date = ?`)

	res, err := GetExecutor(ctx, s.db).ExecContext(ctx, query,
		photo.Title,
		photo.Explanation,
		photo.Copyright,
		photo.MediaType,
		photo.ServiceVersion,
		photo.URL,
		photo.HDURL,
		photo.ThumbnailURL,
		photo.IsFavorite,
		photo.Date,
	)
	if err != nil {
		return &domain.StoreWriteError{Op: "update", Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return &domain.StoreWriteError{Op: "update", Err: err}
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	OnCommit(ctx, s.hub.Notify)
	return nil
}

// MarkFavorites sets the favorite flag of every cached record whose date is
// in dates. Unknown dates are ignored.
func (s *PhotoStore) MarkFavorites(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`UPDATE apod_photos SET is_favorite = ? WHERE date IN (?)`, true, dates)
	if err != nil {
		return &domain.StoreWriteError{Op: "mark favorites", Err: err}
	}

	if _, err := GetExecutor(ctx, s.db).ExecContext(ctx, s.db.Rebind(query), args...); err != nil {
		return &domain.StoreWriteError{Op: "mark favorites", Err: err}
	}

	OnCommit(ctx, s.hub.Notify)
	return nil
}

func buildUpsert(photos []domain.PhotoRecord) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO apod_photos (")
	sb.WriteString(photoColumns)
	sb.WriteString(") VALUES ")

	args := make([]interface{}, 0, len(photos)*10)
	for i, p := range photos {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		args = append(args,
			p.Date,
			p.Title,
			p.Explanation,
			p.Copyright,
			p.MediaType,
			p.ServiceVersion,
			p.URL,
			p.HDURL,
			p.ThumbnailURL,
			p.IsFavorite,
		)
	}

	sb.WriteString(` ON CONFLICT (date) DO UPDATE SET
		title = excluded.title,
		explanation = excluded.explanation,
		copyright = excluded.copyright,
		media_type = excluded.media_type,
		service_version = excluded.service_version,
		url = excluded.url,
		hd_url = excluded.hd_url,
		thumbnail_url = excluded.thumbnail_url`)

	return sb.String(), args
}

func dedupeByDate(photos []domain.PhotoRecord) []domain.PhotoRecord {
	index := make(map[string]int, len(photos))
	out := make([]domain.PhotoRecord, 0, len(photos))

	for _, p := range photos {
		if i, ok := index[p.Date]; ok {
			out[i] = p
			continue
		}
		index[p.Date] = len(out)
		out = append(out, p)
	}
	return out
}
