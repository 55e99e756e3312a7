package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/urlstate"
)

type clickResponse struct {
	Card  string `json:"card"`
	Query string `json:"query"`
}

// Click records a card click: the panel opens on the entry and the canonical
// query string gains the card key while everything else is preserved.
func Click(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		e, ok := d.MemoryIndex.BySlug(slug)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown entry")
			return
		}

		rawQuery := r.URL.RawQuery
		d.Panel.OpenCard(e, rawQuery)

		writeJSON(w, http.StatusOK, clickResponse{
			Card:  e.Slug,
			Query: urlstate.Encode(rawQuery, urlstate.Patch{Card: urlstate.Str(e.Slug)}),
		})
	}
}
