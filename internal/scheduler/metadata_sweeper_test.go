package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/enrich/github"
	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
)

type staticFetcher struct{}

func (staticFetcher) FetchRepo(ctx context.Context, owner, repo string) (github.RepoInfo, error) {
	return github.RepoInfo{Stars: 1}, nil
}

func TestMetadataSweeper_Sweep(t *testing.T) {
	log := logger.Nop()
	memIndex := index.NewMemoryIndex()

	entries := []*catalog.Entry{
		{
			Slug:   "kept-demo",
			Title:  "Kept Demo",
			Source: "https://github.com/acme/kept",
		},
		{
			Slug:  "no-repo-demo",
			Title: "No Repo Demo",
		},
	}
	memIndex.UpdateCatalog(entries, catalog.NewTaxonomy(nil))

	svc := enrich.NewService(nil, staticFetcher{}, log)
	ctx := context.Background()

	// Populate the cache with one referenced and one orphaned repo.
	if _, ok := svc.GetOrFetch(ctx, "https://github.com/acme/kept"); !ok {
		t.Fatal("expected metadata for referenced repo")
	}
	if _, ok := svc.GetOrFetch(ctx, "https://github.com/acme/removed"); !ok {
		t.Fatal("expected metadata for orphaned repo")
	}
	if got := svc.CachedCount(); got != 2 {
		t.Fatalf("expected 2 cached repos, got %d", got)
	}

	sweeper := NewMetadataSweeper(svc, memIndex, log, 24*time.Hour)
	sweeper.Sweep(ctx)

	if got := svc.CachedCount(); got != 1 {
		t.Errorf("expected 1 cached repo after sweep, got %d", got)
	}

	// The referenced repo must survive without another network fetch.
	if _, ok := svc.GetOrFetch(ctx, "https://github.com/acme/kept"); !ok {
		t.Error("referenced repo metadata was incorrectly swept")
	}
}

func TestMetadataSweeper_NothingToSweep(t *testing.T) {
	log := logger.Nop()
	memIndex := index.NewMemoryIndex()
	memIndex.UpdateCatalog([]*catalog.Entry{
		{Slug: "kept-demo", Title: "Kept Demo", Source: "https://github.com/acme/kept"},
	}, catalog.NewTaxonomy(nil))

	svc := enrich.NewService(nil, staticFetcher{}, log)
	ctx := context.Background()

	if _, ok := svc.GetOrFetch(ctx, "https://github.com/acme/kept"); !ok {
		t.Fatal("expected metadata for referenced repo")
	}

	sweeper := NewMetadataSweeper(svc, memIndex, log, 24*time.Hour)
	sweeper.Sweep(ctx)

	if got := svc.CachedCount(); got != 1 {
		t.Errorf("expected cache untouched, got %d entries", got)
	}
}
