package domain

import "time"

// Metadata sentinels applied when an upload omits a field and when older
// catalog rows predate the field entirely.
const (
	DefaultTitle  = "Untitled"
	DefaultArtist = "Unknown Artist"
	DefaultGenre  = "Unknown Genre"
)

// MediaRecord is the catalog entry for one uploaded audio file. BlobKey is the
// sole reference into blob storage; a record never exists without its blob.
type MediaRecord struct {
	ID               string
	BlobKey          string
	Filename         string
	OriginalFilename string
	Title            string
	Artist           string
	Genre            string
	Likes            int64
	UploadedBy       string
	CreatedAt        time.Time
}

// ApplyDefaults fills metadata sentinels for rows written before the
// title/artist/genre columns carried values.
func (m *MediaRecord) ApplyDefaults() {
	if m.Title == "" {
		m.Title = DefaultTitle
	}
	if m.Artist == "" {
		m.Artist = DefaultArtist
	}
	if m.Genre == "" {
		m.Genre = DefaultGenre
	}
}

// Comment is an immutable annotation on a media record. Ordering is append
// order, preserved by the comments table serial key.
type Comment struct {
	ID        string
	MediaID   string
	Author    string
	Text      string
	CreatedAt time.Time
}
