package handlers

import (
	"net/http"

	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/httpserver/deps"
)

type tagPayload struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	DarkIcon    string `json:"darkIcon,omitempty"`
	Vendor      string `json:"vendor,omitempty"`
	URL         string `json:"url,omitempty"`
}

type tagsResponse struct {
	Kinds map[string][]tagPayload `json:"kinds"`
	Total int                     `json:"total"`
}

// Tags returns the taxonomy grouped by facet kind, each group in
// taxonomy declaration order.
func Tags(d deps.Deps) http.HandlerFunc {
	kinds := []catalog.Kind{
		catalog.KindContentType,
		catalog.KindLanguage,
		catalog.KindModel,
		catalog.KindResource,
		catalog.KindSolution,
		catalog.KindDatabase,
		catalog.KindAzure,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		tx := d.MemoryIndex.Taxonomy()

		resp := tagsResponse{Kinds: make(map[string][]tagPayload, len(kinds))}
		if tx == nil {
			writeJSON(w, http.StatusOK, resp)
			return
		}

		for _, k := range kinds {
			group := tx.ByKind(k)
			if len(group) == 0 {
				continue
			}
			payloads := make([]tagPayload, 0, len(group))
			for _, t := range group {
				p := tagPayload{
					ID:          t.ID,
					Label:       t.Label,
					Description: t.Description,
					Icon:        t.Icon,
					DarkIcon:    t.DarkIcon,
					URL:         t.URL,
				}
				if t.Vendor != nil {
					p.Vendor = t.Vendor.Label
				}
				payloads = append(payloads, p)
			}
			resp.Kinds[string(k)] = payloads
			resp.Total += len(payloads)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
