// Package main is the entry point for the ledger HTTP server.
// It loads configuration, opens storage and the optional cache,
// wires the routes and serves until interrupted.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundsledger/internal/config"
	"fundsledger/internal/handlers"
	"fundsledger/internal/logging"
	"fundsledger/internal/metrics"
	"fundsledger/internal/middleware"
	"fundsledger/internal/repositories"
	"fundsledger/internal/repositories/cache"
	"fundsledger/internal/routes"
	"fundsledger/internal/services/ledger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config.LoadEnv()
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repositories.Open(cfg, logging.GormLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		if err := repositories.Close(db); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	logger.Info("connected to database", zap.String("driver", cfg.DBDriver))

	var (
		accountCache ledger.AccountCache = ledger.NoopCache{}
		cachePinger  handlers.Pinger
	)
	if cfg.RedisHost != "" {
		redisCache := cache.NewAccountCache(cache.NewRedisClient(&cache.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}), cfg.CacheTTL)
		defer func() {
			if err := redisCache.Close(); err != nil {
				logger.Warn("failed to close redis", zap.Error(err))
			}
		}()
		if err := redisCache.HealthCheck(ctx); err != nil {
			// Reads fall back to storage while redis is unreachable.
			logger.Warn("redis unavailable, serving reads from storage", zap.Error(err))
		}
		accountCache = redisCache
		cachePinger = handlers.PingerFunc(redisCache.HealthCheck)
	}

	conns := repositories.NewConnManager(db)
	collector := metrics.New(prometheus.DefaultRegisterer)
	metrics.RegisterDatabase(prometheus.DefaultRegisterer, sqlDB, conns.Open)

	ledgerService := ledger.NewService(accountCache, ledger.LedgerConfig{
		Timeout: cfg.TransferTimeout,
		Logger:  logger,
	}, collector)

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.IsProduction()})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST",
	}))
	app.Use("/api/transfers", limiter.New(limiter.Config{
		Max:        config.GetIntEnv("TRANSFER_RATE_LIMIT", 60),
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests. Please try again later.",
			})
		},
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.SetupRoutes(app, routes.Dependencies{
		Ledger:  ledgerService,
		Conns:   conns,
		Health:  handlers.NewHealthHandler(sqlDB, cachePinger),
		Metrics: prometheus.DefaultGatherer,
		Logger:  logger,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.String("port", cfg.Port))
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				stats := sqlDB.Stats()
				logger.Debug("db stats",
					zap.Int("open", stats.OpenConnections),
					zap.Int("idle", stats.Idle),
					zap.Int("in_use", stats.InUse),
					zap.Int64("request_conns", conns.Open()),
					zap.Int64("wait_count", stats.WaitCount),
					zap.Duration("wait_duration", stats.WaitDuration))
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		return app.ShutdownWithTimeout(shutdownTimeout)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
