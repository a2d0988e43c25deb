// Package export writes cached photos as CSV and reads such files back.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
)

// row is one CSV line. Empty cells stand for missing optional fields.
type row struct {
	Date           string `csv:"date"`
	Title          string `csv:"title"`
	Copyright      string `csv:"copyright"`
	MediaType      string `csv:"media_type"`
	URL            string `csv:"url"`
	HDURL          string `csv:"hdurl"`
	ThumbnailURL   string `csv:"thumbnail_url"`
	DisplayURL     string `csv:"display_url"`
	ServiceVersion string `csv:"service_version"`
	IsFavorite     bool   `csv:"is_favorite"`
	Explanation    string `csv:"explanation"`
}

// WriteCSV writes a header and one line per photo. The header is written
// even when photos is empty.
func WriteCSV(w io.Writer, photos []domain.PhotoRecord) error {
	cw := csv.NewWriter(w)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(row{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, p := range photos {
		if err := enc.Encode(toRow(p)); err != nil {
			return fmt.Errorf("encode %s: %w", p.Date, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV. Every date must be a
// YYYY-MM-DD key. The display_url column is derived and ignored.
func ReadCSV(r io.Reader) ([]domain.PhotoRecord, error) {
	dec, err := csvutil.NewDecoder(csv.NewReader(r))
	if errors.Is(err, io.EOF) {
		return []domain.PhotoRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows []row
	if err := dec.Decode(&rows); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode rows: %w", err)
	}

	photos := make([]domain.PhotoRecord, 0, len(rows))
	for i, r := range rows {
		if r.Date == "" {
			return nil, fmt.Errorf("row %d: missing date", i+1)
		}
		if _, err := dates.Parse(r.Date); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		photos = append(photos, r.toDomain())
	}
	return photos, nil
}

func toRow(p domain.PhotoRecord) row {
	return row{
		Date:           p.Date,
		Title:          deref(p.Title),
		Copyright:      deref(p.Copyright),
		MediaType:      deref(p.MediaType),
		URL:            deref(p.URL),
		HDURL:          deref(p.HDURL),
		ThumbnailURL:   deref(p.ThumbnailURL),
		DisplayURL:     p.DisplayURL(),
		ServiceVersion: deref(p.ServiceVersion),
		IsFavorite:     p.IsFavorite,
		Explanation:    deref(p.Explanation),
	}
}

func (r row) toDomain() domain.PhotoRecord {
	return domain.PhotoRecord{
		Date:           r.Date,
		Title:          optional(r.Title),
		Explanation:    optional(r.Explanation),
		Copyright:      optional(r.Copyright),
		MediaType:      optional(r.MediaType),
		ServiceVersion: optional(r.ServiceVersion),
		URL:            optional(r.URL),
		HDURL:          optional(r.HDURL),
		ThumbnailURL:   optional(r.ThumbnailURL),
		IsFavorite:     r.IsFavorite,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
