// Package enrich attaches best-effort repository popularity metadata
// (forks, stars, last update) to gallery entries. Lookups are cached
// in memory and persisted so restarts do not refetch; failures degrade
// to "no metadata" and never surface as errors.
package enrich

import (
	"context"
	"errors"
	"sync"

	"github.com/showcasehub/gallery/internal/enrich/github"
	"github.com/showcasehub/gallery/internal/logger"
)

// Store is the persistent cache behind the in-memory layer. Keys are
// "owner/repo".
type Store interface {
	Get(ctx context.Context, id string) (Metadata, bool, error)
	Save(ctx context.Context, id string, meta Metadata) error
	SaveMany(ctx context.Context, rows map[string]Metadata) error
	All(ctx context.Context) (map[string]Metadata, error)
	Delete(ctx context.Context, id string) error
}

// Fetcher is the outbound metadata API, implemented by github.Client.
type Fetcher interface {
	FetchRepo(ctx context.Context, owner, repo string) (github.RepoInfo, error)
}

// Service is the metadata enrichment cache. Concurrent GetOrFetch
// calls for the same repo may race and fetch twice; both target the
// same idempotent read, and the last write wins.
type Service struct {
	store   Store
	fetcher Fetcher
	logger  logger.Logger

	mu  sync.RWMutex
	mem map[string]Metadata
}

// NewService builds the cache. store may be nil, in which case only
// the in-memory layer is used.
func NewService(store Store, fetcher Fetcher, log logger.Logger) *Service {
	return &Service{
		store:   store,
		fetcher: fetcher,
		logger:  log,
		mem:     make(map[string]Metadata),
	}
}

// GetOrFetch resolves metadata for an entry's source URL.
//
// Order: in-memory cache, persistent store, then one outbound fetch.
// Malformed URLs, rate limiting (HTTP 429) and any other fetch failure
// all return ok=false; only a successful fetch is cached, so a rate
// limited repo is retried on the next call.
func (s *Service) GetOrFetch(ctx context.Context, sourceURL string) (Metadata, bool) {
	owner, repo, ok := ParseRepoURL(sourceURL)
	if !ok {
		return Metadata{}, false
	}
	id := RepoID(owner, repo)

	s.mu.RLock()
	meta, hit := s.mem[id]
	s.mu.RUnlock()
	if hit {
		return meta, true
	}

	if s.store != nil {
		meta, found, err := s.store.Get(ctx, id)
		if err != nil {
			s.logger.Warn("metadata store read failed",
				logger.String("repo", id),
				logger.Error(err))
		} else if found {
			s.remember(id, meta)
			return meta, true
		}
	}

	info, err := s.fetcher.FetchRepo(ctx, owner, repo)
	if err != nil {
		if errors.Is(err, github.ErrRateLimited) {
			s.logger.Debug("metadata fetch rate limited, will retry later",
				logger.String("repo", id))
		} else {
			s.logger.Warn("metadata fetch failed",
				logger.String("repo", id),
				logger.Error(err))
		}
		return Metadata{}, false
	}

	meta = Metadata{
		Forks:     info.Forks,
		Stars:     info.Stars,
		UpdatedOn: info.UpdatedOn,
	}
	s.remember(id, meta)

	if s.store != nil {
		if err := s.store.Save(ctx, id, meta); err != nil {
			s.logger.Warn("failed to persist metadata",
				logger.String("repo", id),
				logger.Error(err))
			// Memory still has it; persistence is best effort.
		}
	}
	return meta, true
}

// WarmFromStore preloads the in-memory layer from the persistent
// store, typically once at startup.
func (s *Service) WarmFromStore(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, nil
	}
	rows, err := s.store.All(ctx)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	for id, meta := range rows {
		s.mem[id] = meta
	}
	s.mu.Unlock()
	return len(rows), nil
}

// Sweep drops cached metadata for repositories no longer referenced by
// any catalog entry, from memory and from the store. It returns the
// number of rows removed.
func (s *Service) Sweep(ctx context.Context, activeSources []string) int {
	active := make(map[string]struct{}, len(activeSources))
	for _, src := range activeSources {
		if owner, repo, ok := ParseRepoURL(src); ok {
			active[RepoID(owner, repo)] = struct{}{}
		}
	}

	s.mu.Lock()
	var stale []string
	for id := range s.mem {
		if _, keep := active[id]; !keep {
			stale = append(stale, id)
			delete(s.mem, id)
		}
	}
	s.mu.Unlock()

	if s.store != nil {
		// The store may hold rows memory never saw (e.g. before a
		// catalog shrink and restart).
		if rows, err := s.store.All(ctx); err == nil {
			for id := range rows {
				if _, keep := active[id]; keep {
					continue
				}
				if !contains(stale, id) {
					stale = append(stale, id)
				}
			}
		}
		for _, id := range stale {
			if err := s.store.Delete(ctx, id); err != nil {
				s.logger.Warn("failed to delete stale metadata",
					logger.String("repo", id),
					logger.Error(err))
			}
		}
	}
	return len(stale)
}

// Flush bulk-persists the in-memory layer. Individual saves are best
// effort, so a row fetched while the store was briefly unreachable
// would otherwise be lost on restart.
func (s *Service) Flush(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	s.mu.RLock()
	rows := make(map[string]Metadata, len(s.mem))
	for id, meta := range s.mem {
		rows[id] = meta
	}
	s.mu.RUnlock()

	if len(rows) == 0 {
		return nil
	}
	return s.store.SaveMany(ctx, rows)
}

// CachedCount returns the size of the in-memory layer.
func (s *Service) CachedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mem)
}

func (s *Service) remember(id string, meta Metadata) {
	s.mu.Lock()
	s.mem[id] = meta
	s.mu.Unlock()
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
