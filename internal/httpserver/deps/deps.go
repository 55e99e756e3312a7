package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/httpserver/mw"
	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
	"github.com/showcasehub/gallery/internal/panel"
)

// Deps carries everything handlers need, wired once at startup.
type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts []string // Host headers allowed to access the server
	AllowedCIDRS []string // IPs allowed to access infra/reload endpoints
	TrustProxy   bool     // true when running behind a trusted reverse proxy

	RateLimit mw.RateLimitConfig

	RedisClient *redis.Client      // nil when persistence is disabled
	MemoryIndex *index.MemoryIndex // in-memory catalog index
	Enrich      *enrich.Service    // repository metadata cache
	Panel       *panel.Controller  // detail panel state machine

	DefaultSort catalog.SortRule

	CatalogReloadTrigger chan struct{} // manual catalog reload
}
