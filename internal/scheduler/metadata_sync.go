package scheduler

import (
	"context"

	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/logger"
)

// MetadataSyncer warms the in-memory metadata cache from Redis on startup
type MetadataSyncer struct {
	enrich *enrich.Service
	logger logger.Logger
}

// NewMetadataSyncer creates a new metadata syncer
func NewMetadataSyncer(svc *enrich.Service, log logger.Logger) *MetadataSyncer {
	return &MetadataSyncer{
		enrich: svc,
		logger: log,
	}
}

// Sync loads persisted repository metadata into the memory cache
func (ms *MetadataSyncer) Sync(ctx context.Context) error {
	ms.logger.Info("syncing repository metadata from redis to memory")

	count, err := ms.enrich.WarmFromStore(ctx)
	if err != nil {
		return err
	}

	if count == 0 {
		ms.logger.Info("no repository metadata found in redis")
		return nil
	}

	ms.logger.Info("synced repository metadata from redis",
		logger.Int("count", count))

	return nil
}
