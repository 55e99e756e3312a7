package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/logger"
)

type entryDetailResponse struct {
	entrySummary
	Metadata *enrich.Metadata `json:"metadata,omitempty"`
}

// Entry returns the detail panel payload for one catalog entry. Repository
// metadata is best effort: when the cache and GitHub both come up empty the
// field is simply omitted.
func Entry(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		e, ok := d.MemoryIndex.BySlug(slug)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown entry")
			return
		}

		resp := entryDetailResponse{entrySummary: summarize(e)}

		if d.Enrich != nil && e.Source != "" {
			if meta, ok := d.Enrich.GetOrFetch(r.Context(), e.Source); ok {
				resp.Metadata = &meta
			} else {
				d.Logger.Debug("no repository metadata",
					logger.String("slug", slug),
					logger.String("source", e.Source))
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
