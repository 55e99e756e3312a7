package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
	"github.com/showcasehub/gallery/internal/sources/galleryfile"
)

// CatalogReloader handles periodic reloading of the catalog files
type CatalogReloader struct {
	loader        *galleryfile.Loader
	mapper        *galleryfile.Mapper
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewCatalogReloader creates a new catalog reloader
func NewCatalogReloader(
	entriesFile string,
	tagsFile string,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *CatalogReloader {
	return &CatalogReloader{
		loader:        galleryfile.NewLoader(entriesFile, tagsFile),
		mapper:        galleryfile.NewMapper(log),
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the catalog once, then reloads it on a ticker and on manual
// triggers until stopped.
func (cr *CatalogReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *CatalogReloader) Stop() {
	close(cr.stopCh)
}

// Reload parses both catalog files and swaps the in-memory snapshot.
// On any error the previous snapshot stays in place.
func (cr *CatalogReloader) Reload(ctx context.Context) error {
	cr.logger.Info("reloading catalog files")

	tagsConfig, err := cr.loader.LoadTags()
	if err != nil {
		return fmt.Errorf("failed to load tags: %w", err)
	}

	taxonomy, err := cr.mapper.MapTaxonomy(tagsConfig)
	if err != nil {
		return fmt.Errorf("failed to map taxonomy: %w", err)
	}

	entriesConfig, err := cr.loader.LoadEntries()
	if err != nil {
		return fmt.Errorf("failed to load entries: %w", err)
	}

	entries, err := cr.mapper.MapEntries(entriesConfig, taxonomy)
	if err != nil {
		return fmt.Errorf("failed to map entries: %w", err)
	}

	cr.index.UpdateCatalog(entries, taxonomy)

	cr.logger.Info("catalog loaded",
		logger.Int("entries", len(entries)),
		logger.Int("tags", taxonomy.Len()))

	return nil
}
