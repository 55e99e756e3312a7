package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/showcasehub/gallery/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	EntriesLoaded *int   `json:"entries_loaded,omitempty"`
	CachedRepos   *int   `json:"cached_repos,omitempty"`
	LastReload    string `json:"last_reload,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	ServiceMode string                     `json:"service_mode"`
	Components  map[string]componentStatus `json:"components"`
}

// Infra reports component health: catalog index, Redis persistence and the
// repository metadata cache.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entriesCount := d.MemoryIndex.Count()
		lastReload := d.MemoryIndex.LastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:            entriesCount > 0,
				EntriesLoaded: &entriesCount,
				LastReload:    lastReloadStr,
			},
			"redis": checkRedis(d),
		}

		if d.Enrich != nil {
			cached := d.Enrich.CachedCount()
			components["enrichment"] = componentStatus{
				OK:          true,
				CachedRepos: &cached,
				Mode:        "memory+redis",
			}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServiceMode: serviceMode(components),
			Components:  components,
		})
	}
}

func serviceMode(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical"
	}
	if c, ok := components["redis"]; ok && !c.OK {
		return "degraded"
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "metadata-persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "metadata-persistence-disabled",
			Error:  err.Error(),
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "metadata-persistence-enabled",
	}
}
