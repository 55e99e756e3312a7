package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/analytics"
	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/enrich/github"
	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
	"github.com/showcasehub/gallery/internal/panel"
)

type recordingEmitter struct {
	mu     sync.Mutex
	events []analytics.Event
}

func (r *recordingEmitter) Emit(ev analytics.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingEmitter) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Name)
	}
	return out
}

type fixedFetcher struct {
	info github.RepoInfo
}

func (f fixedFetcher) FetchRepo(ctx context.Context, owner, repo string) (github.RepoInfo, error) {
	return f.info, nil
}

func testIndex() *index.MemoryIndex {
	tx := catalog.NewTaxonomy([]catalog.Tag{
		{ID: "python", Label: "Python", Kind: catalog.KindLanguage},
		{ID: "chat", Label: "Chat", Kind: catalog.KindSolution},
	})
	entries := []*catalog.Entry{
		{
			Slug:     "alpha-rag-demo",
			Title:    "Alpha RAG Demo",
			Authors:  []string{"Ada"},
			Websites: []string{"https://example.com/ada"},
			Source:   "https://github.com/acme/alpha",
			Tags:     []string{"python", "chat"},
			Position: 0,
		},
		{
			Slug:     "beta-chat-bot",
			Title:    "Beta Chat Bot",
			Authors:  []string{"Bob"},
			Websites: []string{"https://example.com/bob"},
			Tags:     []string{"chat"},
			Position: 1,
		},
	}
	idx := index.NewMemoryIndex()
	idx.UpdateCatalog(entries, tx)
	return idx
}

func testDeps(t *testing.T) (deps.Deps, *recordingEmitter) {
	t.Helper()
	emitter := &recordingEmitter{}
	ctrl := panel.New(panel.NavigatorFunc(func(string) {}), emitter, func(fn func()) { fn() })

	return deps.Deps{
		Logger:               logger.Nop(),
		StartTime:            time.Now(),
		MemoryIndex:          testIndex(),
		Panel:                ctrl,
		DefaultSort:          catalog.SortAlphaAsc,
		CatalogReloadTrigger: make(chan struct{}, 1),
	}, emitter
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

func TestEntries_FilterSearchSort(t *testing.T) {
	d, _ := testDeps(t)
	h := Entries(d)

	tests := []struct {
		name       string
		query      string
		wantSlugs  []string
		wantFacets []string
	}{
		{
			name:       "no filters, alphabetical",
			query:      "",
			wantSlugs:  []string{"alpha-rag-demo", "beta-chat-bot"},
			wantFacets: []string{"python", "chat"},
		},
		{
			name:      "tag conjunction",
			query:     "tags=python&tags=chat",
			wantSlugs: []string{"alpha-rag-demo"},
		},
		{
			name:      "case-insensitive search",
			query:     "name=BETA",
			wantSlugs: []string{"beta-chat-bot"},
		},
		{
			name:      "descending reverses ascending",
			query:     "sort=alpha-desc",
			wantSlugs: []string{"beta-chat-bot", "alpha-rag-demo"},
		},
		{
			name:      "zero matches is a valid state",
			query:     "name=nothing",
			wantSlugs: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/entries?"+tt.query, nil)
			rec := httptest.NewRecorder()
			h(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			resp := decodeBody[entriesResponse](t, rec)

			if len(resp.Entries) != len(tt.wantSlugs) {
				t.Fatalf("got %d entries, want %d", len(resp.Entries), len(tt.wantSlugs))
			}
			for i, want := range tt.wantSlugs {
				if resp.Entries[i].Slug != want {
					t.Errorf("entry[%d] = %s, want %s", i, resp.Entries[i].Slug, want)
				}
			}
			if resp.Total != len(tt.wantSlugs) {
				t.Errorf("total = %d, want %d", resp.Total, len(tt.wantSlugs))
			}
			for i, want := range tt.wantFacets {
				if i >= len(resp.Facets) || resp.Facets[i] != want {
					t.Errorf("facets = %v, want %v", resp.Facets, tt.wantFacets)
					break
				}
			}
		})
	}
}

func TestEntries_CanonicalQueryPreservesForeignParams(t *testing.T) {
	d, _ := testDeps(t)
	h := Entries(d)

	req := httptest.NewRequest(http.MethodGet, "/entries?tags=chat&utm_source=newsletter", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	resp := decodeBody[entriesResponse](t, rec)
	if !strings.Contains(resp.Query, "utm_source=newsletter") {
		t.Errorf("canonical query dropped foreign param: %q", resp.Query)
	}
	if !strings.Contains(resp.Query, "tags=chat") {
		t.Errorf("canonical query lost tags: %q", resp.Query)
	}
}

func TestEntries_DeepLinkEmitsOpen(t *testing.T) {
	d, emitter := testDeps(t)
	h := Entries(d)

	req := httptest.NewRequest(http.MethodGet, "/entries?card=alpha-rag-demo", nil)
	req.Header.Set("Referer", "https://social.example/post")
	rec := httptest.NewRecorder()
	h(rec, req)

	resp := decodeBody[entriesResponse](t, rec)
	if resp.Card != "alpha-rag-demo" {
		t.Errorf("card = %q, want alpha-rag-demo", resp.Card)
	}

	names := emitter.names()
	if len(names) != 1 || names[0] != analytics.EventDeepLinkOpen {
		t.Errorf("events = %v, want one %s", names, analytics.EventDeepLinkOpen)
	}

	// A second sync with the same card must not fire again.
	rec2 := httptest.NewRecorder()
	h(rec2, req)
	if got := emitter.names(); len(got) != 1 {
		t.Errorf("deep link re-fired: %v", got)
	}
}

func TestEntry_DetailWithMetadata(t *testing.T) {
	d, _ := testDeps(t)
	d.Enrich = enrich.NewService(nil, fixedFetcher{info: github.RepoInfo{Stars: 42, Forks: 7}}, logger.Nop())

	r := chi.NewRouter()
	r.Get("/entries/{slug}", Entry(d))

	req := httptest.NewRequest(http.MethodGet, "/entries/alpha-rag-demo", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[entryDetailResponse](t, rec)
	if resp.Metadata == nil || resp.Metadata.Stars != 42 {
		t.Errorf("metadata = %+v, want stars 42", resp.Metadata)
	}
}

func TestEntry_NoRepoOmitsMetadata(t *testing.T) {
	d, _ := testDeps(t)
	d.Enrich = enrich.NewService(nil, fixedFetcher{}, logger.Nop())

	r := chi.NewRouter()
	r.Get("/entries/{slug}", Entry(d))

	req := httptest.NewRequest(http.MethodGet, "/entries/beta-chat-bot", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	resp := decodeBody[entryDetailResponse](t, rec)
	if resp.Metadata != nil {
		t.Errorf("metadata = %+v, want omitted", resp.Metadata)
	}
}

func TestEntry_NotFound(t *testing.T) {
	d, _ := testDeps(t)

	r := chi.NewRouter()
	r.Get("/entries/{slug}", Entry(d))

	req := httptest.NewRequest(http.MethodGet, "/entries/missing", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestClick_OpensPanelAndEmits(t *testing.T) {
	d, emitter := testDeps(t)

	r := chi.NewRouter()
	r.Post("/entries/{slug}/click", Click(d))

	req := httptest.NewRequest(http.MethodPost, "/entries/alpha-rag-demo/click?tags=chat", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeBody[clickResponse](t, rec)
	if resp.Card != "alpha-rag-demo" {
		t.Errorf("card = %q, want alpha-rag-demo", resp.Card)
	}
	if !strings.Contains(resp.Query, "card=alpha-rag-demo") || !strings.Contains(resp.Query, "tags=chat") {
		t.Errorf("query = %q, want card and tags", resp.Query)
	}

	names := emitter.names()
	if len(names) != 1 || names[0] != analytics.EventCardClick {
		t.Errorf("events = %v, want one %s", names, analytics.EventCardClick)
	}
	if d.Panel.OpenSlug() != "alpha-rag-demo" {
		t.Errorf("panel open = %q, want alpha-rag-demo", d.Panel.OpenSlug())
	}
}

func TestClick_UnknownSlug(t *testing.T) {
	d, emitter := testDeps(t)

	r := chi.NewRouter()
	r.Post("/entries/{slug}/click", Click(d))

	req := httptest.NewRequest(http.MethodPost, "/entries/missing/click", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if got := emitter.names(); len(got) != 0 {
		t.Errorf("unexpected events for unknown slug: %v", got)
	}
}

func TestTags_GroupedByKind(t *testing.T) {
	d, _ := testDeps(t)
	h := Tags(d)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	resp := decodeBody[tagsResponse](t, rec)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	langs := resp.Kinds[string(catalog.KindLanguage)]
	if len(langs) != 1 || langs[0].ID != "python" {
		t.Errorf("language tags = %+v, want python", langs)
	}
	if _, ok := resp.Kinds[string(catalog.KindAzure)]; ok {
		t.Error("empty kinds must be omitted")
	}
}

func TestReload_TriggerAndBackpressure(t *testing.T) {
	d, _ := testDeps(t)
	h := Reload(d)

	req := httptest.NewRequest(http.MethodPost, "/reload", nil)
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202", rec.Code)
	}

	// Channel full, next trigger must be rejected without blocking.
	rec2 := httptest.NewRecorder()
	h(rec2, req)
	if rec2.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", rec2.Code)
	}
}

func TestReadyz_RequiresLoadedCatalog(t *testing.T) {
	d, _ := testDeps(t)

	rec := httptest.NewRecorder()
	Readyz(d)(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 when catalog loaded", rec.Code)
	}

	d.MemoryIndex = index.NewMemoryIndex()
	rec2 := httptest.NewRecorder()
	Readyz(d)(rec2, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec2.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503 when catalog empty", rec2.Code)
	}
}
