package handlers

import (
	"net/http"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready         bool `json:"ready"`
	EntriesLoaded int  `json:"entries_loaded"`
}

// Readyz reports readiness: the service is ready once the catalog has been
// loaded at least once.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		resp := readyzResponse{Ready: count > 0, EntriesLoaded: count}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
