package domain

const MediaTypeVideo = "video"

// PhotoRecord is a single Astronomy Picture of the Day entry keyed by its date.
type PhotoRecord struct {
	Date           string  `db:"date" json:"date"`
	Title          *string `db:"title" json:"title,omitempty"`
	Explanation    *string `db:"explanation" json:"explanation,omitempty"`
	Copyright      *string `db:"copyright" json:"copyright,omitempty"`
	MediaType      *string `db:"media_type" json:"media_type,omitempty"`
	ServiceVersion *string `db:"service_version" json:"service_version,omitempty"`
	URL            *string `db:"url" json:"url,omitempty"`
	HDURL          *string `db:"hd_url" json:"hdurl,omitempty"`
	ThumbnailURL   *string `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	IsFavorite     bool    `db:"is_favorite" json:"is_favorite"`
}

// DisplayURL returns the image to show for the record. Videos use their
// thumbnail when the API supplied one.
func (p PhotoRecord) DisplayURL() string {
	if p.MediaType != nil && *p.MediaType == MediaTypeVideo && p.ThumbnailURL != nil {
		return *p.ThumbnailURL
	}
	if p.URL != nil {
		return *p.URL
	}
	return ""
}

// DateRange is an inclusive range of YYYY-MM-DD keys.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
