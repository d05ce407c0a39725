package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/music-hub/internal/domain"
)

// MediaFilter captures catalog search parameters. Each set field matches as a
// case-insensitive substring; set fields combine with AND.
type MediaFilter struct {
	Title  *string
	Artist *string
	Genre  *string
	Limit  int
	Offset int
}

// MediaRepository encapsulates catalog persistence. Like increments and
// comment appends are single statements so concurrent mutations on the same
// record cannot interleave.
type MediaRepository interface {
	Create(ctx context.Context, record *domain.MediaRecord) error
	GetByID(ctx context.Context, id string) (*domain.MediaRecord, error)
	GetByFilename(ctx context.Context, filename string) (*domain.MediaRecord, error)
	List(ctx context.Context, limit, offset int) ([]domain.MediaRecord, error)
	Search(ctx context.Context, filter MediaFilter) ([]domain.MediaRecord, error)
	IncrementLikes(ctx context.Context, id string) (int64, error)
	AddComment(ctx context.Context, comment *domain.Comment) error
	ListComments(ctx context.Context, mediaID string) ([]domain.Comment, error)
	ListBlobKeys(ctx context.Context) (map[string]struct{}, error)
}

type mediaRepository struct {
	pool *pgxpool.Pool
}

// NewMediaRepository instantiates repository.
func NewMediaRepository(pool *pgxpool.Pool) MediaRepository {
	return &mediaRepository{pool: pool}
}

const mediaColumns = `id, blob_key, filename, original_filename, title, artist, genre, likes, uploaded_by, created_at`

func (r *mediaRepository) Create(ctx context.Context, record *domain.MediaRecord) error {
	const query = `
        INSERT INTO media (id, blob_key, filename, original_filename, title, artist, genre, likes, uploaded_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		record.ID,
		record.BlobKey,
		record.Filename,
		record.OriginalFilename,
		record.Title,
		record.Artist,
		record.Genre,
		record.Likes,
		record.UploadedBy,
	).Scan(&record.CreatedAt)
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*domain.MediaRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM media WHERE id=$1`, mediaColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *mediaRepository) GetByFilename(ctx context.Context, filename string) (*domain.MediaRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM media WHERE filename=$1 OR original_filename=$1 ORDER BY created_at DESC LIMIT 1`, mediaColumns)
	return r.fetchSingle(ctx, query, filename)
}

func (r *mediaRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.MediaRecord, error) {
	var record domain.MediaRecord
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&record.ID,
		&record.BlobKey,
		&record.Filename,
		&record.OriginalFilename,
		&record.Title,
		&record.Artist,
		&record.Genre,
		&record.Likes,
		&record.UploadedBy,
		&record.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *mediaRepository) List(ctx context.Context, limit, offset int) ([]domain.MediaRecord, error) {
	return r.Search(ctx, MediaFilter{Limit: limit, Offset: offset})
}

func (r *mediaRepository) Search(ctx context.Context, filter MediaFilter) ([]domain.MediaRecord, error) {
	base := fmt.Sprintf(`SELECT %s FROM media`, mediaColumns)
	clauses := []string{"1=1"}
	args := []any{}

	addSubstring := func(column string, value *string) {
		if value == nil || strings.TrimSpace(*value) == "" {
			return
		}
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*value))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE $%d", column, len(args)))
	}
	addSubstring("title", filter.Title)
	addSubstring("artist", filter.Artist)
	addSubstring("genre", filter.Genre)

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMedia(rows)
}

// IncrementLikes bumps the counter in a single UPDATE so concurrent likers
// never lose updates. Returns the new count, or pgx.ErrNoRows when the record
// does not exist.
func (r *mediaRepository) IncrementLikes(ctx context.Context, id string) (int64, error) {
	const query = `UPDATE media SET likes = likes + 1 WHERE id=$1 RETURNING likes`
	var likes int64
	if err := r.pool.QueryRow(ctx, query, id).Scan(&likes); err != nil {
		return 0, err
	}
	return likes, nil
}

// AddComment appends one comment as a single INSERT. The serial position
// column fixes append order. The media row must exist; the foreign key turns
// a dangling media_id into an error which the service maps to not-found.
func (r *mediaRepository) AddComment(ctx context.Context, comment *domain.Comment) error {
	const query = `
        INSERT INTO media_comments (id, media_id, author, body)
        VALUES ($1,$2,$3,$4)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		comment.ID,
		comment.MediaID,
		comment.Author,
		comment.Text,
	).Scan(&comment.CreatedAt)
}

func (r *mediaRepository) ListComments(ctx context.Context, mediaID string) ([]domain.Comment, error) {
	const query = `
        SELECT id, media_id, author, body, created_at
        FROM media_comments WHERE media_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Comment
	for rows.Next() {
		var comment domain.Comment
		if err := rows.Scan(
			&comment.ID,
			&comment.MediaID,
			&comment.Author,
			&comment.Text,
			&comment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, comment)
	}
	return result, rows.Err()
}

// ListBlobKeys returns every blob key referenced by the catalog, for the
// orphan sweep.
func (r *mediaRepository) ListBlobKeys(ctx context.Context) (map[string]struct{}, error) {
	const query = `SELECT blob_key FROM media`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys[key] = struct{}{}
	}
	return keys, rows.Err()
}

func scanMedia(rows pgx.Rows) ([]domain.MediaRecord, error) {
	var result []domain.MediaRecord
	for rows.Next() {
		var record domain.MediaRecord
		if err := rows.Scan(
			&record.ID,
			&record.BlobKey,
			&record.Filename,
			&record.OriginalFilename,
			&record.Title,
			&record.Artist,
			&record.Genre,
			&record.Likes,
			&record.UploadedBy,
			&record.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}
