package apod

import "apod_fetcher/internal/domain"

// APIPhoto is a single entry as returned by the APOD API.
type APIPhoto struct {
	Copyright      *string `json:"copyright"`
	Date           string  `json:"date"`
	Explanation    *string `json:"explanation"`
	HDURL          *string `json:"hdurl"`
	MediaType      *string `json:"media_type"`
	ServiceVersion *string `json:"service_version"`
	Title          *string `json:"title"`
	URL            *string `json:"url"`
	ThumbnailURL   *string `json:"thumbnail_url"`
}

func (p APIPhoto) toDomain() domain.PhotoRecord {
	return domain.PhotoRecord{
		Date:           p.Date,
		Title:          p.Title,
		Explanation:    p.Explanation,
		Copyright:      p.Copyright,
		MediaType:      p.MediaType,
		ServiceVersion: p.ServiceVersion,
		URL:            p.URL,
		HDURL:          p.HDURL,
		ThumbnailURL:   p.ThumbnailURL,
	}
}
