package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/watchdeck/watchdeck/internal/clipboard"
	"github.com/watchdeck/watchdeck/internal/config"
	"github.com/watchdeck/watchdeck/internal/discovery"
	"github.com/watchdeck/watchdeck/internal/errlog"
	"github.com/watchdeck/watchdeck/internal/httpserver"
	"github.com/watchdeck/watchdeck/internal/httpserver/deps"
	"github.com/watchdeck/watchdeck/internal/intake"
	"github.com/watchdeck/watchdeck/internal/kv"
	"github.com/watchdeck/watchdeck/internal/logger"
	"github.com/watchdeck/watchdeck/internal/redis"
	"github.com/watchdeck/watchdeck/internal/scheduler"
	"github.com/watchdeck/watchdeck/internal/session"
	"github.com/watchdeck/watchdeck/internal/store"
	"github.com/watchdeck/watchdeck/internal/version"
	"github.com/watchdeck/watchdeck/internal/youtube"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	backing     kv.Store
	redisClient *goredis.Client
	pruner      *scheduler.PositionPruner
	refresher   *scheduler.ChannelRefresher
	seeder      *scheduler.SeedImporter
	watcher     *clipboard.Watcher
	advertiser  *discovery.Advertiser
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	backing, redisClient := openStorage(cfg, loggerClient)

	errs := errlog.New(loggerClient)

	// oEmbed needs no API key; it backfills titles for history/favorites.
	oembed := youtube.NewOEmbedClient()

	positions := store.NewPositionStore(backing, loggerClient)
	history := store.NewHistoryLedger(backing, oembed, loggerClient)
	favorites := store.NewFavoritesLedger(backing, oembed, loggerClient)
	channels := store.NewChannelStore(backing, loggerClient)

	// Hydrate in-memory state from the backing store. The context outlives
	// the loads: they kick off fire-and-forget title backfills.
	loadCtx := context.Background()
	positions.Load(loadCtx)
	history.Load(loadCtx)
	favorites.Load(loadCtx)
	channels.Load(loadCtx)

	sess := session.New(positions, loggerClient)
	controller := intake.NewController(history, favorites, sess, loggerClient)

	// Data API client is optional; channel search/subscribe degrade without it.
	var ytClient *youtube.Client
	if cfg.YouTubeAPIKey != "" {
		ytClient = youtube.NewClient(cfg.YouTubeAPIKey)
		loggerClient.Info("youtube data api client initialized")
	} else {
		loggerClient.Warn("no youtube api key configured, channel features disabled")
	}

	pruneTrigger := make(chan struct{}, 1)
	pruner := scheduler.NewPositionPruner(
		positions,
		loggerClient,
		cfg.PruneInterval,
		cfg.RetentionDays,
		pruneTrigger,
	)

	var refresher *scheduler.ChannelRefresher
	var refreshTrigger chan struct{}
	if ytClient != nil {
		refreshTrigger = make(chan struct{}, 1)
		refresher = scheduler.NewChannelRefresher(
			channels,
			ytClient,
			errs,
			loggerClient,
			cfg.RefreshInterval,
			refreshTrigger,
		)
	}

	var seeder *scheduler.SeedImporter
	if cfg.ChannelSeedFile != "" {
		loggerClient.Info("channel seed file configured",
			logger.String("file", cfg.ChannelSeedFile))
		seeder = scheduler.NewSeedImporter(cfg.ChannelSeedFile, channels, loggerClient)
	}

	var watcher *clipboard.Watcher
	var clipboardTrigger chan struct{}
	if cfg.ClipboardWatch {
		pb, err := clipboard.NewSystemPasteboard()
		if err != nil {
			loggerClient.Warn("no clipboard tool found, clipboard watcher disabled",
				logger.Error(err))
			errs.Report(errlog.KindClipboard, "clipboard access unavailable", err)
		} else {
			clipboardTrigger = make(chan struct{}, 1)
			watcher = clipboard.NewWatcher(
				pb,
				loggerClient,
				cfg.ClipboardPollInterval,
				clipboardTrigger,
				func(obs clipboard.Observation) {
					controller.SetActive(context.Background(), obs.VideoID)
				},
			)
		}
	}

	var advertiser *discovery.Advertiser
	if cfg.Discovery {
		advertiser = discovery.NewAdvertiser(
			cfg.InstanceName,
			listenPortNumber(cfg.ListenPort),
			loggerClient,
		)
	}

	d := deps.Deps{
		Logger:           loggerClient,
		StartTime:        time.Now(),
		Version:          version.Version,
		Commit:           version.Commit,
		BuildDate:        version.BuildDate,
		GoVersion:        version.GoVersion,
		TimeNow:          time.Now,
		AllowedCIDRS:     cfg.AllowedCIDRS,
		TrustProxy:       cfg.TrustProxy,
		Positions:        positions,
		History:          history,
		Favorites:        favorites,
		Channels:         channels,
		Intake:           controller,
		Session:          sess,
		Errors:           errs,
		Watcher:          watcher,
		YouTube:          ytClient,
		Storage:          cfg.Storage,
		RedisClient:      redisClient,
		PruneTrigger:     pruneTrigger,
		RefreshTrigger:   refreshTrigger,
		ClipboardTrigger: clipboardTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		backing:     backing,
		redisClient: redisClient,
		pruner:      pruner,
		refresher:   refresher,
		seeder:      seeder,
		watcher:     watcher,
		advertiser:  advertiser,
	}
}

// openStorage builds the persistence backend selected by config. The redis
// client is returned separately so health checks can ping it.
func openStorage(cfg *config.Config, log logger.Logger) (kv.Store, *goredis.Client) {
	switch cfg.Storage {
	case config.StorageRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			log.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		log.Info("Redis initialized successfully")
		return kv.NewRedisStore(client), client

	case config.StorageSQLite:
		st, err := kv.NewSQLiteStore(cfg.SQLitePath)
		if err != nil {
			log.Errorf("Failed to open sqlite database at %s: %v", cfg.SQLitePath, err)
			os.Exit(1)
		}
		log.Info("sqlite storage opened", logger.String("path", cfg.SQLitePath))
		return st, nil

	default:
		log.Warn("memory storage selected, nothing survives a restart")
		return kv.NewMemoryStore(), nil
	}
}

// listenPortNumber extracts the numeric port from an addr like ":8080".
func listenPortNumber(addr string) int {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 8080
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 8080
	}
	return port
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting watchdeck v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("watchdeck %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// One-shot channel seeding before the refresher runs.
	if a.seeder != nil {
		if err := a.seeder.Import(ctx); err != nil {
			a.logger.Warn("channel seed import failed", logger.Error(err))
		}
	}

	if err := a.pruner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start position pruner: %w", err)
	}
	a.logger.Info("position pruner started",
		logger.Duration("interval", a.cfg.PruneInterval),
		logger.Int("retention_days", a.cfg.RetentionDays))

	if a.refresher != nil {
		if err := a.refresher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start channel refresher: %w", err)
		}
		a.logger.Info("channel refresher started",
			logger.Duration("interval", a.cfg.RefreshInterval))
	}

	if a.watcher != nil {
		if err := a.watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start clipboard watcher: %w", err)
		}
		a.logger.Info("clipboard watcher started",
			logger.Duration("interval", a.cfg.ClipboardPollInterval))
	}

	if a.advertiser != nil {
		if err := a.advertiser.Start(); err != nil {
			// Discovery is a convenience; keep serving without it.
			a.logger.Warn("mdns advertisement failed", logger.Error(err))
			a.advertiser = nil
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.pruner.Stop()
	if a.refresher != nil {
		a.refresher.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	if a.advertiser != nil {
		a.advertiser.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	// The redis-backed store closes the client itself.
	if err := a.backing.Close(); err != nil {
		a.logger.Warnf("failed to close storage: %v", err)
	} else {
		a.logger.Info("✅ storage closed cleanly")
	}

	a.logger.Info("✅ watchdeck stopped cleanly")
	return nil
}
