package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/snaphunt/snaphunt/internal/adapters/http"
	natsadapter "github.com/snaphunt/snaphunt/internal/adapters/nats"
	"github.com/snaphunt/snaphunt/internal/adapters/postgres"
	"github.com/snaphunt/snaphunt/internal/adapters/valkey"
	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/ports"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
	"github.com/snaphunt/snaphunt/internal/pkg/config"
	"github.com/snaphunt/snaphunt/internal/pkg/logging"
	"github.com/snaphunt/snaphunt/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("snaphunt-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("api", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()
	go db.ReportPoolMetrics(ctx, 15*time.Second)

	// Cache
	var cacheSvc ports.CacheService
	cache, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
		cache = nil
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS
	var eventPub ports.EventPublisher
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		eventPub = publisher
		defer publisher.Close()
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Repos
	huntRepo := postgres.NewHuntRepo(db)
	checkpointRepo := postgres.NewCheckpointRepo(db)
	planRepo := postgres.NewZonePlanRepo(db)

	// Use cases
	huntSvc := usecases.NewHuntService(huntRepo, cacheSvc)
	checkpointSvc := usecases.NewCheckpointService(checkpointRepo, cacheSvc, eventPub)
	planSvc := usecases.NewPlanService(huntRepo, checkpointRepo, planRepo, cacheSvc, eventPub)

	deps := &http.Dependencies{
		Hunts:       huntSvc,
		Checkpoints: checkpointSvc,
		Plans:       planSvc,
		Zoning: zoning.Config{
			MinPOIsPerZone:      cfg.Zoning.MinPOIsPerZone,
			MaxPOIsPerZone:      cfg.Zoning.MaxPOIsPerZone,
			ClusterRadiusMeters: cfg.Zoning.ClusterRadiusMeters,
			MapSize: domain.MapSize{
				Width:  cfg.Zoning.MapWidth,
				Height: cfg.Zoning.MapHeight,
			},
		},
		NATS:  natsConn,
		DB:    db,
		Cache: cache,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "Snaphunt API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.snaphunt.app",
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
