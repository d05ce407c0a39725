// Package worker hosts background jobs that run for the service lifetime.
package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/music-hub/internal/config"
	"github.com/spec-kit/music-hub/internal/repository"
	"github.com/spec-kit/music-hub/internal/storage"
)

// Sweeper reclaims orphaned blobs, the accepted degraded state after a
// partial upload. A blob is reclaimable once it has no catalog row and is
// older than the grace period, which covers uploads still in flight.
type Sweeper struct {
	media  repository.MediaRepository
	blobs  storage.BlobStore
	logger *zap.Logger
	cfg    config.SweepConfig
	prefix string
}

// NewSweeper builds the worker.
func NewSweeper(media repository.MediaRepository, blobs storage.BlobStore, cfg config.SweepConfig, prefix string, logger *zap.Logger) *Sweeper {
	return &Sweeper{media: media, blobs: blobs, logger: logger, cfg: cfg, prefix: prefix}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	if !s.cfg.Enabled {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cfg.Interval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.SweepOnce(ctx)
				if err != nil {
					s.logger.Warn("blob sweep failed", zap.Error(err))
					continue
				}
				if removed > 0 {
					s.logger.Info("reclaimed orphaned blobs", zap.Int("count", removed))
				}
			}
		}
	}()
}

// SweepOnce deletes every unreferenced blob past the grace period and
// returns how many were removed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	referenced, err := s.media.ListBlobKeys(ctx)
	if err != nil {
		return 0, err
	}

	blobs, err := s.blobs.List(ctx, s.prefix)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().Add(-s.cfg.GracePeriod())
	removed := 0
	for _, blob := range blobs {
		if _, ok := referenced[blob.Key]; ok {
			continue
		}
		if blob.LastModified.After(cutoff) {
			continue
		}
		if err := s.blobs.Delete(ctx, blob.Key); err != nil {
			s.logger.Warn("failed to delete orphaned blob",
				zap.String("blob_key", blob.Key), zap.Error(err))
			continue
		}
		removed++
	}
	return removed, nil
}
