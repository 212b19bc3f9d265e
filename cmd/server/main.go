package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lineupiq/context-api/internal/cache"
	"github.com/lineupiq/context-api/internal/config"
	"github.com/lineupiq/context-api/internal/feeds"
	"github.com/lineupiq/context-api/internal/handlers"
	"github.com/lineupiq/context-api/internal/logic"
	"github.com/lineupiq/context-api/internal/pattern"
	"github.com/lineupiq/context-api/internal/store"
	"github.com/lineupiq/context-api/internal/worker"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	var err error
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx := context.Background()

	// Game-log store: Postgres when configured, in-memory otherwise.
	var gameLogs store.GameLogStore
	if cfg.PostgresURL != "" {
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			sugar.Fatalw("Failed to connect to Postgres", "error", err)
		}
		defer pool.Close()
		gameLogs = store.NewPostgresStore(pool, logger)
		sugar.Info("Using Postgres game-log store")
	} else {
		gameLogs = store.NewMemoryStore()
		sugar.Info("Using in-memory game-log store")
	}

	// Context cache: Redis when configured, in-memory otherwise.
	var contextCache logic.ContextCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			sugar.Fatalw("Invalid REDIS_URL", "error", err)
		}
		client := redis.NewClient(opts)
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			sugar.Fatalw("Failed to connect to Redis", "error", err)
		}
		contextCache = cache.NewRedis(client, cfg.CacheTTL, logger)
		sugar.Info("Using Redis context cache")
	} else {
		contextCache = cache.NewMemory(cfg.CacheTTL)
		sugar.Info("Using in-memory context cache")
	}

	// Signal feeds.
	var sources []logic.FeedSource
	if cfg.FeedsDir != "" {
		sources, err = feeds.LoadDir(cfg.FeedsDir, logger)
		if err != nil {
			sugar.Fatalw("Failed to load signal feeds", "dir", cfg.FeedsDir, "error", err)
		}
		sugar.Infow("Signal feeds loaded", "dir", cfg.FeedsDir, "feeds", len(sources))
	} else {
		sugar.Warn("FEEDS_DIR not set, serving contexts without external signals")
	}

	analysis := pattern.Options{
		MinWindow:            cfg.MinAnalysisWindow,
		MaxWindow:            cfg.MaxAnalysisWindow,
		PoorGameMultiplier:   cfg.PoorGameMultiplier,
		BounceBackMultiplier: cfg.BounceBackMultiplier,
	}

	thresholds := logic.DefaultThresholds()
	thresholds.StreakElite = cfg.StreakElite
	thresholds.StreakActive = cfg.StreakActive
	thresholds.HRTopRank = cfg.HRTopRank
	thresholds.HRMidRank = cfg.HRMidRank
	thresholds.SlotMinGames = cfg.SlotMinGames
	thresholds.CoOccurrenceMin = cfg.CoOccurrenceMin

	aggregator := logic.NewAggregator(logic.AggregatorConfig{
		Feeds:       sources,
		History:     gameLogs,
		Cache:       contextCache,
		Logger:      logger,
		Thresholds:  thresholds,
		Analysis:    analysis,
		FeedTimeout: cfg.FeedTimeout,
	})

	pool := worker.NewPool(worker.PoolConfig{
		WorkerCount:   cfg.WorkerCount,
		QueueSize:     cfg.QueueSize,
		BatchSize:     cfg.BatchSize,
		FlushInterval: cfg.FlushInterval,
		Sink:          gameLogs,
		Logger:        logger,
	})
	pool.Start(ctx)

	h := handlers.New(handlers.Config{
		Context:    aggregator,
		Store:      gameLogs,
		WorkerPool: pool,
		Analysis:   analysis,
		Logger:     logger,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/context/{player}", h.GetPlayerContext)
		r.Get("/pattern/{player}", h.GetBounceBackAnalysis)
		r.Post("/match", h.MatchNames)
		r.Post("/ingest/games", h.IngestGameLogs)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Forced shutdown", "error", err)
	}

	// Drain the ingest queue before releasing the store.
	pool.Stop()
	sugar.Info("Server exited")
}
