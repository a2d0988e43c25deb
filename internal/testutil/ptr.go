// Package testutil holds small helpers shared by tests.
package testutil

import (
	"fmt"

	"apod_fetcher/internal/domain"
)

func Ptr[T any](v T) *T {
	return &v
}

// Photo builds an image record with every optional field set.
func Photo(date string) domain.PhotoRecord {
	return domain.PhotoRecord{
		Date:           date,
		Title:          Ptr("Title " + date),
		Explanation:    Ptr("Explanation for " + date),
		Copyright:      Ptr("NASA"),
		MediaType:      Ptr("image"),
		ServiceVersion: Ptr("v1"),
		URL:            Ptr(fmt.Sprintf("https://apod.nasa.gov/apod/image/%s.jpg", date)),
		HDURL:          Ptr(fmt.Sprintf("https://apod.nasa.gov/apod/image/%s_hd.jpg", date)),
	}
}

// Month returns one image record per day from 1 to days of the given month.
func Month(year, month, days int) []domain.PhotoRecord {
	photos := make([]domain.PhotoRecord, 0, days)
	for d := 1; d <= days; d++ {
		photos = append(photos, Photo(fmt.Sprintf("%04d-%02d-%02d", year, month, d)))
	}
	return photos
}
