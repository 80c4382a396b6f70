package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/film-rental-api/internal/config"
	"github.com/iliyamo/film-rental-api/internal/database"
	"github.com/iliyamo/film-rental-api/internal/handler"
	"github.com/iliyamo/film-rental-api/internal/logger"
	"github.com/iliyamo/film-rental-api/internal/middleware"
	"github.com/iliyamo/film-rental-api/internal/queue"
	"github.com/iliyamo/film-rental-api/internal/repository"
	"github.com/iliyamo/film-rental-api/internal/router"
	"github.com/iliyamo/film-rental-api/internal/service"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Error("database unavailable", "error", err)
		return 1
	}
	defer db.Close()

	// Redis is only needed by the cache and the rate limiter. When it is
	// unreachable both stay off and the API keeps serving.
	var rdb *redis.Client
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		if rdb, err = config.NewRedisClient(ctx); err != nil {
			log.Warn("redis unavailable, cache and rate limit disabled", "error", err)
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	films := repository.NewFilmRepo(db)
	rentals := repository.NewRentalRepo(db)
	stores := repository.NewStoreRepo(db)
	lookups := repository.NewLookupRepo(db)
	options := service.NewFilterOptions(lookups)

	hlog := log.Named("handler")
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.RequestLog(log))
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(middleware.NewTokenBucket(cfg.RateLimit, rdb, log))
	e.Use(middleware.NewRedisCache(cfg.Cache, rdb, log.Named("cache")))

	router.RegisterRoutes(e, router.Handlers{
		Films:   handler.NewFilmHandler(films, options, hlog),
		Rentals: handler.NewRentalHandler(rentals, options, hlog),
		Stores:  handler.NewStoreHandler(stores, rentals, hlog),
		Lookups: handler.NewLookupHandler(lookups, hlog),
		Health:  handler.Health(lookups),
	})

	if cfg.Invalidation.Enabled && rdb != nil && cfg.Cache.Enabled {
		purge := queue.InvalidatorFunc(func(ctx context.Context, resources []string) (int64, error) {
			return middleware.PurgeCache(ctx, rdb, cfg.Cache.Prefix, resources)
		})
		consumer := queue.NewConsumer(cfg.Invalidation.URL, cfg.Invalidation.Queue, purge, log)
		go func() {
			if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("cache invalidation consumer stopped", "error", err)
			}
		}()
	}

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("server failed", "error", err)
			return 1
		}
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		return 1
	}
	return 0
}
