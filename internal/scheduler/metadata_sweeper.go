package scheduler

import (
	"context"
	"time"

	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
)

// MetadataSweeper deletes cached repository metadata for repos that no
// catalog entry references anymore. Without it the no-expiry cache would
// grow forever as entries come and go.
type MetadataSweeper struct {
	enrich   *enrich.Service
	index    *index.MemoryIndex
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewMetadataSweeper creates a new metadata sweeper
func NewMetadataSweeper(
	svc *enrich.Service,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
) *MetadataSweeper {
	return &MetadataSweeper{
		enrich:   svc,
		index:    idx,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep process
func (ms *MetadataSweeper) Start(ctx context.Context) error {
	// Run immediately on start
	ms.Sweep(ctx)

	ticker := time.NewTicker(ms.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ms.Sweep(ctx)
			case <-ms.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper
func (ms *MetadataSweeper) Stop() {
	close(ms.stopCh)
}

// Sweep removes metadata for repositories no longer referenced by the catalog
func (ms *MetadataSweeper) Sweep(ctx context.Context) {
	active := ms.index.SourceURLs()

	removed := ms.enrich.Sweep(ctx, active)
	if removed > 0 {
		ms.logger.Info("swept stale repository metadata",
			logger.Int("removed", removed),
			logger.Int("active_sources", len(active)))
	} else {
		ms.logger.Debug("no stale repository metadata")
	}
}
