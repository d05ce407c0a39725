package worker

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/domain"
	"github.com/spec-kit/music-hub/internal/repository"
	"github.com/spec-kit/music-hub/internal/storage"
)

type stubMediaRepo struct {
	blobKeys map[string]struct{}
}

func (s *stubMediaRepo) Create(context.Context, *domain.MediaRecord) error { return nil }
func (s *stubMediaRepo) GetByID(context.Context, string) (*domain.MediaRecord, error) {
	return nil, nil
}
func (s *stubMediaRepo) GetByFilename(context.Context, string) (*domain.MediaRecord, error) {
	return nil, nil
}
func (s *stubMediaRepo) List(context.Context, int, int) ([]domain.MediaRecord, error) {
	return nil, nil
}
func (s *stubMediaRepo) Search(context.Context, repository.MediaFilter) ([]domain.MediaRecord, error) {
	return nil, nil
}
func (s *stubMediaRepo) IncrementLikes(context.Context, string) (int64, error) { return 0, nil }
func (s *stubMediaRepo) AddComment(context.Context, *domain.Comment) error     { return nil }
func (s *stubMediaRepo) ListComments(context.Context, string) ([]domain.Comment, error) {
	return nil, nil
}
func (s *stubMediaRepo) ListBlobKeys(context.Context) (map[string]struct{}, error) {
	return s.blobKeys, nil
}

type stubBlobStore struct {
	mu      sync.Mutex
	infos   []storage.BlobInfo
	deleted []string
}

func (s *stubBlobStore) Upload(context.Context, string, string, io.Reader) error { return nil }
func (s *stubBlobStore) Download(context.Context, string) (io.ReadCloser, int64, error) {
	return nil, 0, nil
}
func (s *stubBlobStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, key)
	return nil
}
func (s *stubBlobStore) List(context.Context, string) ([]storage.BlobInfo, error) {
	return s.infos, nil
}

func TestSweeper_SweepOnce(t *testing.T) {
	now := time.Now()
	repo := &stubMediaRepo{blobKeys: map[string]struct{}{
		"media/referenced.mp3": {},
	}}
	blobs := &stubBlobStore{infos: []storage.BlobInfo{
		{Key: "media/referenced.mp3", LastModified: now.Add(-48 * time.Hour)},
		{Key: "media/stale-orphan.mp3", LastModified: now.Add(-48 * time.Hour)},
		{Key: "media/fresh-orphan.mp3", LastModified: now.Add(-time.Minute)},
	}}

	sweeper := NewSweeper(repo, blobs, config.SweepConfig{
		Enabled:          true,
		GracePeriodHours: 24,
	}, "media", zap.NewNop())

	removed, err := sweeper.SweepOnce(context.Background())
	require.NoError(t, err)

	// Only the unreferenced blob past the grace period is reclaimed; a fresh
	// orphan may belong to an upload still in flight.
	assert.Equal(t, 1, removed)
	assert.Equal(t, []string{"media/stale-orphan.mp3"}, blobs.deleted)
}

func TestSweeper_DisabledDoesNotStart(t *testing.T) {
	sweeper := NewSweeper(&stubMediaRepo{}, &stubBlobStore{}, config.SweepConfig{Enabled: false}, "media", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sweeper.Start(ctx)
}
