package dto

import (
	"time"

	"github.com/spec-kit/music-hub/internal/domain"
)

// MediaResponse is the catalog view of one record.
type MediaResponse struct {
	ID               string    `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	Title            string    `json:"title"`
	Artist           string    `json:"artist"`
	Genre            string    `json:"genre"`
	Likes            int64     `json:"likes"`
	UploadedBy       string    `json:"uploaded_by,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewMediaResponse maps a domain record to its API view.
func NewMediaResponse(record domain.MediaRecord) MediaResponse {
	return MediaResponse{
		ID:               record.ID,
		Filename:         record.Filename,
		OriginalFilename: record.OriginalFilename,
		Title:            record.Title,
		Artist:           record.Artist,
		Genre:            record.Genre,
		Likes:            record.Likes,
		UploadedBy:       record.UploadedBy,
		CreatedAt:        record.CreatedAt,
	}
}

// NewMediaResponseList maps a slice of records.
func NewMediaResponseList(records []domain.MediaRecord) []MediaResponse {
	result := make([]MediaResponse, 0, len(records))
	for _, record := range records {
		result = append(result, NewMediaResponse(record))
	}
	return result
}

// CommentRequest payload for appending a comment.
type CommentRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

// CommentResponse is the API view of one comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewCommentResponse maps a domain comment to its API view.
func NewCommentResponse(comment domain.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		Author:    comment.Author,
		Content:   comment.Text,
		CreatedAt: comment.CreatedAt,
	}
}

// NewCommentResponseList maps a slice of comments in append order.
func NewCommentResponseList(comments []domain.Comment) []CommentResponse {
	result := make([]CommentResponse, 0, len(comments))
	for _, comment := range comments {
		result = append(result, NewCommentResponse(comment))
	}
	return result
}
