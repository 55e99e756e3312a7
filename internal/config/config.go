package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	EntriesFile    string        // path to entries.yaml
	TagsFile       string        // path to tags.yaml
	ReloadInterval time.Duration // interval to reload the catalog files (default: 24h)
	SweepInterval  time.Duration // interval to sweep stale repo metadata (default: 24h)
	DefaultSort    string        // base ordering when the request carries no sort key

	// GitHub enrichment
	GithubBaseURL string        // override for tests, default https://api.github.com
	GithubToken   string        // optional, raises the API rate limit
	GithubTimeout time.Duration // per-request timeout (default: 10s)

	// Redis (optional: empty addr disables metadata persistence)
	RedisAddr           string
	RedisUser           string
	RedisPassword       string
	RedisDB             int
	RedisDT             time.Duration // dial timeout
	RedisRT             time.Duration // read timeout
	RedisWT             time.Duration // write timeout
	RedisMaxWait        time.Duration // max wait between connect retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt
	RedisPoolSize       int
	RedisConnectTimeout time.Duration // total time to retry connecting
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially

	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict infra endpoints to specific IPs
	AllowedOrigins []string // optional, CORS origins ("*" allows all)
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	// Rate limiting
	RateBurst  int // bucket capacity per client IP
	RateRefill int // tokens refilled per IP per minute

	AnalyticsBuffer int // event buffer size before drops
}

func Load() *Config {
	// Best effort: absent .env just means everything comes from the environment.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenAddr:      getenv("GALLERY_LISTEN_ADDR", ":8080"),
		ShutdownTimeout: mustDuration("GALLERY_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("GALLERY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("GALLERY_PRETTY_LOG", true),

		// Catalog files
		EntriesFile:    getenv("GALLERY_ENTRIES_FILE", "/app/entries.yaml"),
		TagsFile:       getenv("GALLERY_TAGS_FILE", "/app/tags.yaml"),
		ReloadInterval: mustDuration("GALLERY_RELOAD_INTERVAL", 24*time.Hour),
		SweepInterval:  mustDuration("GALLERY_SWEEP_INTERVAL", 24*time.Hour),
		DefaultSort:    getenv("GALLERY_DEFAULT_SORT", "alpha-asc"),

		// GitHub enrichment
		GithubBaseURL: getenv("GALLERY_GITHUB_BASE_URL", ""),
		GithubToken:   getenv("GALLERY_GITHUB_TOKEN", ""),
		GithubTimeout: mustDuration("GALLERY_GITHUB_TIMEOUT", 10*time.Second),

		// Redis settings
		RedisAddr:           getenv("GALLERY_REDIS_ADDR", ""),
		RedisUser:           getenv("GALLERY_REDIS_USERNAME", "default"),
		RedisPassword:       getenv("GALLERY_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("GALLERY_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("GALLERY_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("GALLERY_ALLOWED_CIDRS", "")),
		AllowedOrigins: splitAndTrim(getenv("GALLERY_ALLOWED_ORIGINS", "")),
		TrustProxy:     mustBool("GALLERY_TRUST_PROXY", false),

		// Rate limiting
		RateBurst:  getenvInt("GALLERY_RATE_BURST", 30),
		RateRefill: getenvInt("GALLERY_RATE_REFILL_PER_MIN", 60),

		AnalyticsBuffer: getenvInt("GALLERY_ANALYTICS_BUFFER", 256),
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfg.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		if cfg.GithubToken != "" {
			cfgCopy.GithubToken = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("FATAL: required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
