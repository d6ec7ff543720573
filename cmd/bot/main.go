package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "modernc.org/sqlite"

	"github.com/winterfair/fairbot/internal/bot"
	"github.com/winterfair/fairbot/internal/domain"
	apperrors "github.com/winterfair/fairbot/internal/errors"
	"github.com/winterfair/fairbot/internal/game/catalog"
	"github.com/winterfair/fairbot/internal/game/engine"
	"github.com/winterfair/fairbot/internal/game/reward"
	"github.com/winterfair/fairbot/internal/game/session"
	"github.com/winterfair/fairbot/internal/health"
	"github.com/winterfair/fairbot/internal/idempotency"
	"github.com/winterfair/fairbot/internal/lifecycle"
	"github.com/winterfair/fairbot/internal/middleware"
	"github.com/winterfair/fairbot/internal/ratelimit"
	"github.com/winterfair/fairbot/internal/repository"
	"github.com/winterfair/fairbot/internal/user"
	"github.com/winterfair/fairbot/pkg/config"
	"github.com/winterfair/fairbot/pkg/graceful"
	"github.com/winterfair/fairbot/pkg/logger"
	"github.com/winterfair/fairbot/pkg/metrics"
	redisclient "github.com/winterfair/fairbot/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("fairbot exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	sentryEnabled := cfg.Sentry.DSN != ""
	if sentryEnabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	log := logger.New(logger.Options{
		Level:         logger.ParseLevel(cfg.LogLevel),
		File:          cfg.Logging.File,
		MaxSizeMB:     cfg.Logging.MaxSizeMB,
		MaxBackups:    cfg.Logging.MaxBackups,
		MaxAgeDays:    cfg.Logging.MaxAgeDays,
		SentryEnabled: sentryEnabled,
	})
	slog.SetDefault(log)

	log.Info("starting fairbot",
		slog.String("env", cfg.AppEnv),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("log_level", cfg.LogLevel),
	)

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := repository.NewSQLiteStore(ctx, db, log)
	if err != nil {
		return err
	}

	registry := catalog.NewRegistry(log)
	content, err := loadContent(cfg, log)
	if err != nil {
		return err
	}
	registry.Load(content)

	if err := store.SeedCatalog(ctx, content.Pavilions, contentTasks(content), content.Facts); err != nil {
		return err
	}

	var watcher *catalog.Watcher
	if cfg.Game.CatalogPath != "" && cfg.Game.WatchCatalog {
		watcher, err = catalog.NewWatcher(cfg.Game.CatalogPath, registry, log)
		if err != nil {
			return err
		}
		watcher.Start(ctx)
	}

	var (
		redisCli  *redisclient.Client
		sessions  session.Store
		dedup     idempotency.Manager
		limiter   ratelimit.Limiter
		rlChecker *health.RedisChecker
	)
	if cfg.Redis.Enabled {
		redisCli, err = redisclient.New(ctx, redisclient.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}

		sessions = session.NewRedisStore(redisCli.Client, log)
		dedup = idempotency.NewRedisManager(redisclient.NewMetricsClient(redisCli), log)
		limiter = ratelimit.NewRedisLimiter(redisCli, log)
		rlChecker = health.NewRedisChecker(redisCli.Client)
	} else {
		sessions = session.NewMemoryStore()
		dedup = idempotency.NewMemoryManager()
		limiter = ratelimit.NewMemoryLimiter()
	}

	users := user.NewService(store, registry, cfg.Game.StartingCoins, log)
	rewards := reward.NewDispatcher(store, registry, log)
	errHandler := apperrors.NewHandler(log, sentryEnabled)

	var rateLimitMw *middleware.RateLimitMiddleware
	if cfg.RateLimit.PerUser > 0 {
		rateLimitMw = middleware.NewRateLimitMiddleware(limiter, cfg.RateLimit.PerUser, cfg.RateLimit.Window, log)
	}

	b, err := bot.New(*cfg, log, bot.Deps{
		Users:       users,
		Registry:    registry,
		Rewards:     rewards,
		Idempotency: dedup,
		RateLimit:   rateLimitMw,
		ErrHandler:  errHandler,
	})
	if err != nil {
		return err
	}

	eng := engine.New(sessions, registry, rewards, b.Sink(), metrics.NewRecorder(), log)
	b.AttachEngine(eng)

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))
	checker.AddCheck("catalog", health.NewCatalogChecker(registry))
	if rlChecker != nil {
		checker.AddCheck("redis", rlChecker)
	}
	probes := lifecycle.NewProbes(checker, log)

	go metrics.NewSessionCollector(sessions).Run(ctx)

	httpServer := graceful.NewServer(log, &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HTTPPort),
		Handler: logger.Middleware(httpMux(probes)),
	}, shutdownTimeout)

	httpDone := make(chan error, 1)
	go func() {
		httpDone <- httpServer.ListenAndServe(ctx)
	}()

	go b.Start()
	log.Info("fairbot is up")

	<-ctx.Done()
	log.Info("shutdown signal received")

	// Hooks run in reverse registration order: the bot stops first, then
	// the stores it renders from.
	shutdown := lifecycle.NewShutdown(log)
	if watcher != nil {
		shutdown.Register("catalog watcher", func(context.Context) error {
			return watcher.Stop()
		})
	}
	if redisCli != nil {
		shutdown.Register("redis", func(context.Context) error {
			return redisCli.Close()
		})
	}
	shutdown.Register("telegram bot", func(context.Context) error {
		b.Stop()
		return nil
	})

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := shutdown.Execute(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", slog.Any("error", err))
	}

	return <-httpDone
}

func loadContent(cfg *config.Config, log *slog.Logger) (*catalog.Content, error) {
	if cfg.Game.CatalogPath == "" {
		return catalog.Default(), nil
	}

	content, err := catalog.LoadFile(cfg.Game.CatalogPath)
	if err != nil {
		return nil, err
	}

	log.Info("catalog file loaded", slog.String("path", cfg.Game.CatalogPath))
	return content, nil
}

func contentTasks(content *catalog.Content) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(content.Tasks))
	for _, spec := range content.Tasks {
		task := spec.Task
		tasks = append(tasks, &task)
	}
	return tasks
}

func httpMux(probes *lifecycle.Probes) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := probes.Liveness(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := probes.Readiness(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	return mux
}
