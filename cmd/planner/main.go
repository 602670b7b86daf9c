package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/snaphunt/snaphunt/internal/adapters/nats"
	"github.com/snaphunt/snaphunt/internal/adapters/postgres"
	"github.com/snaphunt/snaphunt/internal/adapters/valkey"
	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/ports"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
	"github.com/snaphunt/snaphunt/internal/pkg/config"
	"github.com/snaphunt/snaphunt/internal/pkg/logging"
	"github.com/snaphunt/snaphunt/internal/workflows"
)

// The planner worker hosts the replan workflow and kicks one off whenever a
// checkpoint change event arrives, so zone plans track the checkpoint set
// without the API having to replan synchronously.
func main() {
	cfg, err := config.Load("snaphunt-planner")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup("planner", logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Cache (optional)
	var cacheSvc ports.CacheService
	if cache, err := valkey.New(cfg.Valkey.Addr); err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		cacheSvc = cache
		defer cache.Close()
	}

	// NATS
	publisher, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer publisher.Close()

	// Repos and services
	huntRepo := postgres.NewHuntRepo(db)
	checkpointRepo := postgres.NewCheckpointRepo(db)
	planRepo := postgres.NewZonePlanRepo(db)
	planSvc := usecases.NewPlanService(huntRepo, checkpointRepo, planRepo, cacheSvc, publisher)

	// Temporal
	c, err := client.Dial(client.Options{
		HostPort: cfg.Temporal.HostPort,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	w.RegisterWorkflow(workflows.ReplanWorkflow)
	w.RegisterActivity(&workflows.ReplanActivities{
		PlanService: planSvc,
		Plans:       planRepo,
		Publisher:   publisher,
	})

	// Checkpoint changes trigger a replan of the affected hunt.
	replanCfg := zoning.Config{
		MinPOIsPerZone:      cfg.Zoning.MinPOIsPerZone,
		MaxPOIsPerZone:      cfg.Zoning.MaxPOIsPerZone,
		ClusterRadiusMeters: cfg.Zoning.ClusterRadiusMeters,
		MapSize: domain.MapSize{
			Width:  cfg.Zoning.MapWidth,
			Height: cfg.Zoning.MapHeight,
		},
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats subscriber: %v", err)
	}
	defer sub.Close()

	err = sub.SubscribeCheckpointChanges(ctx, func(ctx context.Context, cp *domain.Checkpoint) error {
		opts := client.StartWorkflowOptions{
			// One replan in flight per hunt; later triggers supersede.
			ID:        "replan-" + cp.HuntID,
			TaskQueue: cfg.Temporal.TaskQueue,
		}
		_, err := c.ExecuteWorkflow(ctx, opts, workflows.ReplanWorkflow, workflows.ReplanInput{
			HuntID: cp.HuntID,
			Config: replanCfg,
			Source: "checkpoint-change",
		})
		if err != nil {
			slog.Error("start replan workflow", "hunt", cp.HuntID, "error", err)
			return err
		}
		slog.Info("replan triggered", "hunt", cp.HuntID)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe checkpoint changes: %v", err)
	}

	slog.Info("planner worker started", "taskQueue", cfg.Temporal.TaskQueue)
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
