package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/domain"
	"github.com/spec-kit/music-hub/internal/events"
	"github.com/spec-kit/music-hub/internal/repository"
	"github.com/spec-kit/music-hub/internal/storage"
	apperrors "github.com/spec-kit/music-hub/pkg/util"
)

// Audio types accepted by the upload pipeline.
var allowedAudioTypes = map[string]string{
	"mp3": "audio/mpeg",
	"wav": "audio/wav",
}

// UploadInput carries one upload request into the pipeline. Body is streamed
// into blob storage without full buffering.
type UploadInput struct {
	OriginalFilename string
	Title            string
	Artist           string
	Genre            string
	UploadedBy       string
	Body             io.Reader
}

// CatalogDependencies encapsulates collaborator requirements for the catalog
// service.
type CatalogDependencies struct {
	MediaRepo  repository.MediaRepository
	Blobs      storage.BlobStore
	Dispatcher events.Dispatcher
	Cache      *CatalogCache
}

// CatalogService owns the media catalog: ingesting uploads, listing and
// searching records, streaming blobs back, and applying like/comment
// mutations.
type CatalogService struct {
	media              repository.MediaRepository
	blobs              storage.BlobStore
	dispatcher         events.Dispatcher
	cache              *CatalogCache
	logger             *zap.Logger
	keyPrefix          string
	requireCommentAuth bool
}

// NewCatalogService builds the service.
func NewCatalogService(cfg config.Config, deps CatalogDependencies, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		media:              deps.MediaRepo,
		blobs:              deps.Blobs,
		dispatcher:         deps.Dispatcher,
		cache:              deps.Cache,
		logger:             logger,
		keyPrefix:          cfg.S3.KeyPrefix,
		requireCommentAuth: cfg.Auth.RequireCommentAuth,
	}
}

// Upload validates the file type, streams the bytes into blob storage, and
// writes the catalog record. If the record write fails the fresh blob is
// deleted best-effort; anything missed is reclaimed by the sweep worker.
func (s *CatalogService) Upload(ctx context.Context, input UploadInput) (*domain.MediaRecord, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.OriginalFilename), "."))
	contentType, ok := allowedAudioTypes[ext]
	if !ok {
		return nil, apperrors.NewValidationError("unsupported file type", map[string]any{
			"extension": ext,
			"allowed":   []string{"mp3", "wav"},
		})
	}

	id := uuid.NewString()
	key := storage.NewKey(s.keyPrefix, ext)

	if err := s.blobs.Upload(ctx, key, contentType, input.Body); err != nil {
		return nil, apperrors.MapError(err)
	}

	record := &domain.MediaRecord{
		ID:               id,
		BlobKey:          key,
		Filename:         id + "." + ext,
		OriginalFilename: input.OriginalFilename,
		Title:            defaultIfEmpty(input.Title, domain.DefaultTitle),
		Artist:           defaultIfEmpty(input.Artist, domain.DefaultArtist),
		Genre:            defaultIfEmpty(input.Genre, domain.DefaultGenre),
		Likes:            0,
		UploadedBy:       input.UploadedBy,
	}
	if err := s.media.Create(ctx, record); err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to reclaim orphaned blob; sweep will retry",
				zap.String("blob_key", key), zap.Error(delErr))
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMediaUploaded, record.ID, input.UploadedBy, events.MediaUploadedPayload{
		Filename: record.Filename,
		Title:    record.Title,
		Artist:   record.Artist,
	})
	return record, nil
}

// List returns all catalog records, newest first, with metadata sentinels
// applied to legacy rows. Results are served from the Redis cache when warm.
func (s *CatalogService) List(ctx context.Context) ([]domain.MediaRecord, error) {
	if cached, ok := s.cache.GetList(ctx); ok {
		return cached, nil
	}

	records, err := s.media.List(ctx, 0, 0)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range records {
		records[i].ApplyDefaults()
	}

	s.cache.SetList(ctx, records)
	return records, nil
}

// Search filters the catalog by case-insensitive substring on any provided
// field; filters combine with AND.
func (s *CatalogService) Search(ctx context.Context, filter repository.MediaFilter) ([]domain.MediaRecord, error) {
	records, err := s.media.Search(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	for i := range records {
		records[i].ApplyDefaults()
	}
	return records, nil
}

// FetchBlob resolves identifier to a record and opens a stream over its
// bytes. The identifier is tried as a media ID first, then as a stored
// filename. The caller owns closing the reader.
func (s *CatalogService) FetchBlob(ctx context.Context, identifier string) (*domain.MediaRecord, io.ReadCloser, int64, string, error) {
	record, err := s.resolve(ctx, identifier)
	if err != nil {
		return nil, nil, 0, "", err
	}

	reader, size, err := s.blobs.Download(ctx, record.BlobKey)
	if err != nil {
		var noSuchKey *s3types.NoSuchKey
		if errors.As(err, &noSuchKey) {
			return nil, nil, 0, "", apperrors.NewNotFound("media blob", map[string]any{"identifier": identifier})
		}
		return nil, nil, 0, "", apperrors.MapError(err)
	}

	contentType := contentTypeFor(record.Filename)
	return record, reader, size, contentType, nil
}

func (s *CatalogService) resolve(ctx context.Context, identifier string) (*domain.MediaRecord, error) {
	if _, parseErr := uuid.Parse(identifier); parseErr == nil {
		record, err := s.media.GetByID(ctx, identifier)
		if err == nil {
			return record, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.MapError(err)
		}
	}

	record, err := s.media.GetByFilename(ctx, identifier)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("media", map[string]any{"identifier": identifier})
		}
		return nil, apperrors.MapError(err)
	}
	return record, nil
}

// Like applies a single atomic increment to the record's like counter and
// returns the new count.
func (s *CatalogService) Like(ctx context.Context, mediaID, actor string) (int64, error) {
	if _, err := uuid.Parse(mediaID); err != nil {
		return 0, apperrors.NewValidationError("invalid media id", map[string]any{"media_id": mediaID})
	}

	likes, err := s.media.IncrementLikes(ctx, mediaID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.NewNotFound("media", map[string]any{"media_id": mediaID})
		}
		return 0, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMediaLiked, mediaID, actor, events.MediaLikedPayload{Likes: likes})
	return likes, nil
}

// Comment appends an immutable comment with a server-assigned timestamp.
// Authentication is enforced only when the service is configured to require
// it; a token presented anyway has already been verified by the middleware.
func (s *CatalogService) Comment(ctx context.Context, mediaID, author, text string, authenticated bool) (*domain.Comment, error) {
	if s.requireCommentAuth && !authenticated {
		return nil, apperrors.NewUnauthorized("authentication required to comment")
	}
	if _, err := uuid.Parse(mediaID); err != nil {
		return nil, apperrors.NewValidationError("invalid media id", map[string]any{"media_id": mediaID})
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("comment text required", nil)
	}
	if author == "" {
		author = "anonymous"
	}

	comment := &domain.Comment{
		ID:      uuid.NewString(),
		MediaID: mediaID,
		Author:  author,
		Text:    text,
	}
	if err := s.media.AddComment(ctx, comment); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, apperrors.NewNotFound("media", map[string]any{"media_id": mediaID})
		}
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventMediaCommented, mediaID, author, events.MediaCommentedPayload{
		CommentID: comment.ID,
		Author:    author,
	})
	return comment, nil
}

// ListComments returns a record's comments in append order.
func (s *CatalogService) ListComments(ctx context.Context, mediaID string) ([]domain.Comment, error) {
	if _, err := uuid.Parse(mediaID); err != nil {
		return nil, apperrors.NewValidationError("invalid media id", map[string]any{"media_id": mediaID})
	}
	if _, err := s.media.GetByID(ctx, mediaID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("media", map[string]any{"media_id": mediaID})
		}
		return nil, apperrors.MapError(err)
	}

	comments, err := s.media.ListComments(ctx, mediaID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return comments, nil
}

func (s *CatalogService) publish(ctx context.Context, eventType events.EventType, mediaID, actor string, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		MediaID:   mediaID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}

func defaultIfEmpty(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func contentTypeFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if contentType, ok := allowedAudioTypes[ext]; ok {
		return contentType
	}
	return "application/octet-stream"
}
