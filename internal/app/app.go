package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/showcasehub/gallery/internal/analytics"
	"github.com/showcasehub/gallery/internal/catalog"
	"github.com/showcasehub/gallery/internal/config"
	"github.com/showcasehub/gallery/internal/enrich"
	"github.com/showcasehub/gallery/internal/enrich/github"
	"github.com/showcasehub/gallery/internal/httpserver"
	"github.com/showcasehub/gallery/internal/httpserver/deps"
	"github.com/showcasehub/gallery/internal/httpserver/mw"
	"github.com/showcasehub/gallery/internal/index"
	"github.com/showcasehub/gallery/internal/logger"
	"github.com/showcasehub/gallery/internal/panel"
	"github.com/showcasehub/gallery/internal/redis"
	"github.com/showcasehub/gallery/internal/scheduler"
	redisstore "github.com/showcasehub/gallery/internal/store/redis"
	"github.com/showcasehub/gallery/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	enrich      *enrich.Service
	events      *analytics.LogEmitter
	reloader    *scheduler.CatalogReloader
	sweeper     *scheduler.MetadataSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Redis is optional: without it the service runs with a purely
	// in-memory metadata cache.
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
	} else {
		loggerClient.Info("Redis not configured, metadata persistence disabled")
	}

	memIndex := index.NewMemoryIndex()

	// Repository metadata cache: memory in front of Redis in front of
	// the GitHub API.
	var metaStore enrich.Store
	if redisClient != nil {
		metaStore = redisstore.NewStore(redisClient)
	}
	fetcher := github.NewClient(cfg.GithubBaseURL, cfg.GithubToken, cfg.GithubTimeout)
	enrichSvc := enrich.NewService(metaStore, fetcher, loggerClient)

	if redisClient != nil {
		syncer := scheduler.NewMetadataSyncer(enrichSvc, loggerClient)
		if err := syncer.Sync(context.Background()); err != nil {
			loggerClient.Warn("failed to warm metadata cache from redis",
				logger.Error(err))
		}
	}

	events := analytics.NewLogEmitter(loggerClient, cfg.AnalyticsBuffer)

	// The panel navigator only logs: the canonical query string travels
	// back to clients in handler responses.
	nav := panel.NavigatorFunc(func(query string) {
		loggerClient.Debug("panel navigation", logger.String("query", query))
	})
	panelCtrl := panel.New(nav, events, nil)

	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		cfg.EntriesFile,
		cfg.TagsFile,
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	sweeper := scheduler.NewMetadataSweeper(
		enrichSvc,
		memIndex,
		loggerClient,
		cfg.SweepInterval,
	)

	d := deps.Deps{
		Logger:    loggerClient,
		StartTime: time.Now(),
		Version:   version.Version,
		Commit:    version.Commit,
		BuildDate: version.BuildDate,
		GoVersion: version.GoVersion,

		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,

		RateLimit: mw.RateLimitConfig{
			Burst:             cfg.RateBurst,
			RefillPerIPPerMin: cfg.RateRefill,
			TrustProxy:        cfg.TrustProxy,
		},

		RedisClient: redisClient,
		MemoryIndex: memIndex,
		Enrich:      enrichSvc,
		Panel:       panelCtrl,

		DefaultSort: catalog.ParseSortRule(cfg.DefaultSort),

		CatalogReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		enrich:      enrichSvc,
		events:      events,
		reloader:    reloader,
		sweeper:     sweeper,
	}
}

func (a *App) Run() error {
	a.logger.Infof("Starting gallery v%s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("gallery %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start metadata sweeper: %w", err)
	}
	a.logger.Info("metadata sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reloader.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// Flush buffered analytics before closing downstreams.
	a.events.Close()

	if a.redisClient != nil {
		if err := a.enrich.Flush(shutdownCtx); err != nil {
			a.logger.Warnf("failed to flush metadata cache: %v", err)
		}
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("Redis closed cleanly")
		}
	}

	a.logger.Info("gallery stopped cleanly")
	return nil
}
