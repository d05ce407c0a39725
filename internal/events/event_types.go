package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventMediaUploaded  EventType = "media_uploaded"
	EventMediaLiked     EventType = "media_liked"
	EventMediaCommented EventType = "media_commented"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	MediaID   string      `json:"media_id"`
	Actor     string      `json:"actor,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// MediaUploadedPayload payload.
type MediaUploadedPayload struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
}

// MediaLikedPayload payload.
type MediaLikedPayload struct {
	Likes int64 `json:"likes"`
}

// MediaCommentedPayload payload.
type MediaCommentedPayload struct {
	CommentID string `json:"comment_id"`
	Author    string `json:"author"`
}
