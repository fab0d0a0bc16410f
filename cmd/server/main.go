// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal services packages.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"jyotish/internal/chart/cache"
	charthandler "jyotish/internal/chart/handler"
	chartservice "jyotish/internal/chart/service"
	"jyotish/internal/platform/config"
	"jyotish/internal/platform/httpserver"
	"jyotish/internal/platform/logger"
	"jyotish/internal/platform/metrics"
	platformredis "jyotish/internal/platform/redis"
	"jyotish/internal/profile"
	profileservice "jyotish/internal/profile/service"
	profilestore "jyotish/internal/profile/store"
	"jyotish/internal/ratelimit"
	httptransport "jyotish/internal/transport/http"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	checks := make(map[string]httptransport.HealthChecker)

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		checks["redis"] = redisClient
		log.Info("redis connected")
	}

	var chartCache cache.Cache
	var limitStore ratelimit.Store
	if redisClient != nil {
		chartCache = cache.NewRedis(redisClient.Client, "chart:")
		limitStore = ratelimit.NewRedisStore(redisClient.Client, "ratelimit:")
	} else {
		chartCache = cache.NewInMemory()
		limitStore = ratelimit.NewInMemoryStore()
	}

	var profiles profileservice.Store
	if cfg.SQLitePath != "" {
		sqliteStore, err := profilestore.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		defer sqliteStore.Close()
		profiles = sqliteStore
		checks["sqlite"] = sqliteStore
		log.Info("sqlite store opened", "path", cfg.SQLitePath)
	} else {
		profiles = profilestore.NewInMemory()
		log.Info("using in-memory profile store, set SQLITE_PATH to persist")
	}

	charts := chartservice.New(log, chartCache, cfg.PositionCacheTTL)
	profileSvc := profile.NewService(log, profiles, charts, m)

	limiter := ratelimit.NewMiddleware(limitStore, log,
		cfg.RateLimitPerMin, cfg.RateLimitWindow,
		ratelimit.WithDisabled(cfg.RateLimitOff),
		ratelimit.WithMetrics(m))

	router := httptransport.NewRouter(httptransport.Config{
		Logger:         log,
		Metrics:        m,
		Charts:         charthandler.New(charts, log, m),
		Profiles:       profile.NewHandler(log, profileSvc),
		Limiter:        limiter,
		Checks:         checks,
		Version:        version,
		RequestTimeout: cfg.RequestTimeout,
	})

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout.String())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
