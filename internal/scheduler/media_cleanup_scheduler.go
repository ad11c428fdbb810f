package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/internal/storage"
	"github.com/vendra/vendra-backend/pkg/logger"
)

// mediaPrefix is where the media synchronizer writes product objects.
const mediaPrefix = "products/"

// MediaCleanupScheduler periodically deletes storage objects that no media
// row references anymore. Media deletes only remove database rows, so
// detached objects accumulate in the bucket until this sweep runs.
type MediaCleanupScheduler struct {
	cron      *cron.Cron
	mediaRepo repository.ProductMediaRepository
	storage   *storage.S3Storage
	schedule  string
	minAge    time.Duration
}

func NewMediaCleanupScheduler(
	mediaRepo repository.ProductMediaRepository,
	s3 *storage.S3Storage,
	schedule string,
	minAge time.Duration,
) *MediaCleanupScheduler {
	return &MediaCleanupScheduler{
		cron:      cron.New(),
		mediaRepo: mediaRepo,
		storage:   s3,
		schedule:  schedule,
		minAge:    minAge,
	}
}

func (s *MediaCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			logger.Error("Scheduled media sweep failed", err)
		}
	})
	if err != nil {
		logger.Error("Failed to add cron job for media sweep", err)
		return err
	}

	s.cron.Start()
	logger.Info("Media cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
		"min_age":  s.minAge.String(),
	})
	return nil
}

func (s *MediaCleanupScheduler) Stop() {
	logger.Info("Stopping media cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Media cleanup scheduler stopped", nil)
}

// Sweep deletes unreferenced objects older than minAge. The age guard keeps
// uploads from in-flight transactions alive until they either commit or
// become sweepable on the next run.
func (s *MediaCleanupScheduler) Sweep(ctx context.Context) error {
	logger.Info("Starting media storage sweep", nil)

	urls, err := s.mediaRepo.ListAllURLs()
	if err != nil {
		return err
	}

	referenced := make(map[string]struct{}, len(urls))
	for _, url := range urls {
		if key, ok := s.storage.KeyFromURL(url); ok {
			referenced[key] = struct{}{}
		}
	}

	objects, err := s.storage.ListObjects(ctx, mediaPrefix)
	if err != nil {
		logger.Error("Failed to list storage objects", err, nil)
		return err
	}

	cutoff := time.Now().Add(-s.minAge)
	deleted := 0
	for key, modified := range objects {
		if _, ok := referenced[key]; ok {
			continue
		}
		if modified.After(cutoff) {
			continue
		}

		if err := s.storage.DeleteObject(ctx, key); err != nil {
			logger.Warn("Failed to delete orphaned object", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
			continue
		}
		deleted++
	}

	logger.Info("Media storage sweep completed", map[string]interface{}{
		"objects":    len(objects),
		"referenced": len(referenced),
		"deleted":    deleted,
	})
	return nil
}
