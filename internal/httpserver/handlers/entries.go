package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/logger"
	"github.com/showcasehub/gallery/internal/urlstate"
)

type entrySummary struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Authors     []string `json:"authors"`
	Websites    []string `json:"websites"`
	Source      string   `json:"source,omitempty"`
	Tags        []string `json:"tags"`
	Video       string   `json:"video,omitempty"`
	PreviewTags []string `json:"previewTags,omitempty"`
}

type entriesResponse struct {
	Entries []entrySummary `json:"entries"`
	Total   int            `json:"total"`
	Facets  []string       `json:"facets"`
	Applied []string       `json:"applied"`
	Search  string         `json:"search,omitempty"`
	Sort    string         `json:"sort"`
	Card    string         `json:"card,omitempty"`
	Query   string         `json:"query"`
}

// Entries lists the catalog filtered, sorted and searched according to the
// request query string. The response echoes the canonical query so clients
// can sync their address bar.
func Entries(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawQuery := r.URL.RawQuery
		state := urlstate.Decode(rawQuery)

		rule := d.DefaultSort
		if rule == "" {
			rule = catalog.DefaultSort
		}
		if s := r.URL.Query().Get("sort"); s != "" {
			rule = catalog.ParseSortRule(s)
		}

		visible := catalog.Compute(d.MemoryIndex.Entries(), state.Tags, state.Search, rule)

		// Facets reflect what is visible, ordered by taxonomy display order.
		facetSet := catalog.Facets(visible)
		facets := make([]string, 0, len(facetSet))
		for id := range facetSet {
			facets = append(facets, id)
		}
		tx := d.MemoryIndex.Taxonomy()
		if tx != nil {
			facets = tx.DisplayOrder(facets)
		} else {
			sort.Strings(facets)
		}

		applied := state.Tags
		if tx != nil {
			applied = tx.DisplayOrder(state.Tags)
		}
		if applied == nil {
			applied = []string{}
		}

		// Opening through a shared link counts as a deep-link view, not a click.
		if d.Panel != nil {
			d.Panel.SyncFromURL(state.Card, r.Referer())
		}

		canonical := urlstate.Encode(rawQuery, urlstate.Patch{
			Tags:   urlstate.Tags(state.Tags),
			Search: urlstate.Str(state.Search),
			Card:   urlstate.Str(state.Card),
		})

		summaries := make([]entrySummary, 0, len(visible))
		for _, e := range visible {
			summaries = append(summaries, summarize(e))
		}

		d.Logger.Debug("catalog query",
			logger.Strings("tags", state.Tags),
			logger.String("search", state.Search),
			logger.String("sort", string(rule)),
			logger.Int("visible", len(summaries)),
		)

		writeJSON(w, http.StatusOK, entriesResponse{
			Entries: summaries,
			Total:   len(summaries),
			Facets:  facets,
			Applied: applied,
			Search:  state.Search,
			Sort:    string(rule),
			Card:    state.Card,
			Query:   canonical,
		})
	}
}

func summarize(e *catalog.Entry) entrySummary {
	return entrySummary{
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		Authors:     e.Authors,
		Websites:    e.Websites,
		Source:      e.Source,
		Tags:        e.Tags,
		Video:       e.Video,
		PreviewTags: e.PreviewTags,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
