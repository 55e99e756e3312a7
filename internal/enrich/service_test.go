package enrich

import (
	"context"
	"testing"
	"time"

	"github.com/showcasehub/gallery/internal/enrich/github"
	"github.com/showcasehub/gallery/internal/logger"
)

type memStore struct {
	rows map[string]Metadata
}

func newMemStore() *memStore { return &memStore{rows: make(map[string]Metadata)} }

func (m *memStore) Get(_ context.Context, id string) (Metadata, bool, error) {
	meta, ok := m.rows[id]
	return meta, ok, nil
}

func (m *memStore) Save(_ context.Context, id string, meta Metadata) error {
	m.rows[id] = meta
	return nil
}

func (m *memStore) SaveMany(_ context.Context, rows map[string]Metadata) error {
	for id, meta := range rows {
		m.rows[id] = meta
	}
	return nil
}

func (m *memStore) All(_ context.Context) (map[string]Metadata, error) {
	out := make(map[string]Metadata, len(m.rows))
	for k, v := range m.rows {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

type stubFetcher struct {
	info  github.RepoInfo
	err   error
	calls int
}

func (f *stubFetcher) FetchRepo(_ context.Context, _, _ string) (github.RepoInfo, error) {
	f.calls++
	return f.info, f.err
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		url         string
		owner, repo string
		ok          bool
	}{
		{"https://github.com/org/alpha", "org", "alpha", true},
		{"https://GitHub.com/Org/Alpha", "org", "alpha", true},
		{"https://github.com/org/alpha/tree/main", "org", "alpha", true},
		{"https://gitlab.com/org/alpha", "", "", false},
		{"https://github.com/onlyowner", "", "", false},
		{"", "", "", false},
		{"not a url", "", "", false},
	}
	for _, tt := range tests {
		owner, repo, ok := ParseRepoURL(tt.url)
		if owner != tt.owner || repo != tt.repo || ok != tt.ok {
			t.Errorf("ParseRepoURL(%q) = %q, %q, %v; want %q, %q, %v",
				tt.url, owner, repo, ok, tt.owner, tt.repo, tt.ok)
		}
	}
}

func TestGetOrFetchCachesSuccess(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{info: github.RepoInfo{Forks: 3, Stars: 42, UpdatedOn: time.Now()}}
	svc := NewService(store, fetcher, logger.Nop())

	meta, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha")
	if !ok || meta.Stars != 42 {
		t.Fatalf("GetOrFetch() = %+v, %v", meta, ok)
	}
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times, want 1", fetcher.calls)
	}

	// Second call must come from memory, no network.
	if _, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha"); !ok {
		t.Fatal("cached GetOrFetch() missed")
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times after cache hit, want 1", fetcher.calls)
	}

	// And it must have been persisted.
	if _, found := store.rows["org/alpha"]; !found {
		t.Error("metadata not persisted to store")
	}
}

func TestGetOrFetchStoreHitSkipsNetwork(t *testing.T) {
	store := newMemStore()
	store.rows["org/alpha"] = Metadata{Stars: 7}
	fetcher := &stubFetcher{}
	svc := NewService(store, fetcher, logger.Nop())

	meta, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha")
	if !ok || meta.Stars != 7 {
		t.Fatalf("GetOrFetch() = %+v, %v", meta, ok)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times on store hit, want 0", fetcher.calls)
	}
}

func TestGetOrFetchRateLimitedNotCached(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{err: github.ErrRateLimited}
	svc := NewService(store, fetcher, logger.Nop())

	if _, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha"); ok {
		t.Fatal("rate limited fetch must yield no metadata")
	}
	if len(store.rows) != 0 {
		t.Error("rate limited result must not be cached")
	}

	// Next call retries instead of trusting a negative cache.
	fetcher.err = nil
	fetcher.info = github.RepoInfo{Stars: 1}
	if _, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha"); !ok {
		t.Error("retry after rate limit should succeed")
	}
	if fetcher.calls != 2 {
		t.Errorf("fetcher called %d times, want 2", fetcher.calls)
	}
}

func TestGetOrFetchMalformedURLSilent(t *testing.T) {
	fetcher := &stubFetcher{}
	svc := NewService(nil, fetcher, logger.Nop())

	if _, ok := svc.GetOrFetch(context.Background(), "https://example.com/not-github"); ok {
		t.Fatal("malformed source must yield no metadata")
	}
	if fetcher.calls != 0 {
		t.Error("malformed source must not reach the fetcher")
	}
}

func TestWarmFromStore(t *testing.T) {
	store := newMemStore()
	store.rows["org/alpha"] = Metadata{Stars: 5}
	store.rows["org/beta"] = Metadata{Stars: 9}
	svc := NewService(store, &stubFetcher{}, logger.Nop())

	n, err := svc.WarmFromStore(context.Background())
	if err != nil {
		t.Fatalf("WarmFromStore() error: %v", err)
	}
	if n != 2 || svc.CachedCount() != 2 {
		t.Errorf("WarmFromStore() = %d rows, cached %d, want 2/2", n, svc.CachedCount())
	}
}

func TestSweepDropsUnreferencedRepos(t *testing.T) {
	store := newMemStore()
	store.rows["org/alpha"] = Metadata{Stars: 5}
	store.rows["org/gone"] = Metadata{Stars: 9}
	svc := NewService(store, &stubFetcher{}, logger.Nop())
	if _, err := svc.WarmFromStore(context.Background()); err != nil {
		t.Fatal(err)
	}

	removed := svc.Sweep(context.Background(), []string{"https://github.com/org/alpha"})
	if removed != 1 {
		t.Errorf("Sweep() removed %d rows, want 1", removed)
	}
	if _, found := store.rows["org/gone"]; found {
		t.Error("stale row survived the sweep in the store")
	}
	if _, found := store.rows["org/alpha"]; !found {
		t.Error("active row was swept")
	}
	if svc.CachedCount() != 1 {
		t.Errorf("CachedCount() = %d after sweep, want 1", svc.CachedCount())
	}
}

func TestFlushPersistsMemoryRows(t *testing.T) {
	store := newMemStore()
	fetcher := &stubFetcher{info: github.RepoInfo{Stars: 3}}
	svc := NewService(store, fetcher, logger.Nop())

	if _, ok := svc.GetOrFetch(context.Background(), "https://github.com/org/alpha"); !ok {
		t.Fatal("expected metadata")
	}

	// Simulate a lost best-effort save; Flush must restore it.
	delete(store.rows, "org/alpha")
	if err := svc.Flush(context.Background()); err != nil {
		t.Fatalf("Flush() error: %v", err)
	}
	if _, found := store.rows["org/alpha"]; !found {
		t.Error("Flush() did not persist the in-memory row")
	}
}
