package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"home-loan-calculator/config"
	httpLayer "home-loan-calculator/http"
	"home-loan-calculator/logging"
	"home-loan-calculator/repository"
	"home-loan-calculator/service"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(logging.Config{Level: logging.ParseLevel(cfg.LogLevel)})
	logging.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", logging.FieldError, err)
		os.Exit(1)
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", logging.FieldError, err)
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var redisClient *redis.Client
	if cfg.CacheBackend == "redis" || cfg.CounterBackend == "redis" {
		client, err := repository.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
	}

	var cache repository.CacheRepository
	switch cfg.CacheBackend {
	case "redis":
		cache = repository.NewRedisCache(redisClient)
	case "memory":
		memCache := repository.NewMemoryCache()
		go sweepExpired(ctx, memCache, cfg.CacheTTL, logger.WithComponent(logging.ComponentCache))
		cache = memCache
	}

	counter, closeCounter, err := openVisitCounter(cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeCounter()

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	router := httpLayer.NewRouter(httpLayer.Dependencies{
		Mortgage:      service.NewMortgageService(cache, cfg.CacheTTL, logger),
		ExtraPayments: service.NewExtraPaymentService(logger),
		Visits:        counter,
		RateLimiter:   rateLimiter,
		Logger:        logger,
	})

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening",
			logging.FieldOperation, logging.OpStartup,
			"addr", cfg.Addr(),
			logging.FieldBackend, cfg.CacheBackend,
			logging.FieldCounter, cfg.CounterBackend,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("start server: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server", logging.FieldOperation, logging.OpShutdown)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openVisitCounter(cfg *config.Config, redisClient *redis.Client) (repository.VisitCounter, func(), error) {
	noop := func() {}

	switch cfg.CounterBackend {
	case "redis":
		return repository.NewRedisVisitCounter(redisClient, cfg.CounterName), noop, nil
	case "sqlite", "mysql":
		dsn := cfg.MySQLDSN
		if cfg.CounterBackend == "sqlite" {
			dsn = filepath.Clean(cfg.SQLitePath)
		}
		db, err := repository.OpenGorm(cfg.CounterBackend, dsn)
		if err != nil {
			return nil, noop, err
		}
		closeDB := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		counter, err := repository.NewGormVisitCounter(db, cfg.CounterName)
		if err != nil {
			closeDB()
			return nil, noop, err
		}
		return counter, closeDB, nil
	default:
		return repository.NewMemoryVisitCounter(cfg.CounterName), noop, nil
	}
}

func sweepExpired(ctx context.Context, cache *repository.MemoryCache, every time.Duration, logger *logging.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := cache.CleanExpired(); n > 0 {
				logger.Debug("expired cache entries removed", "removed", n, "remaining", cache.Size())
			}
		}
	}
}
