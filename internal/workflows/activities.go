package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/snaphunt/snaphunt/internal/core/ports"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
	"github.com/snaphunt/snaphunt/internal/pkg/metrics"
)

// ReplanActivities holds the activity implementations for the replan workflow.
type ReplanActivities struct {
	PlanService *usecases.PlanService
	Plans       ports.ZonePlanRepository
	Publisher   ports.EventPublisher
}

// CountActiveCheckpoints returns how many checkpoints would go into a plan.
// A hunt with no active checkpoints still gets a (zero-zone) plan, but the
// count lets the workflow log something useful.
func (a *ReplanActivities) CountActiveCheckpoints(ctx context.Context, huntID string) (int, error) {
	plan, err := a.PlanService.Latest(ctx, huntID)
	if err != nil {
		return 0, nil // no previous plan is fine
	}
	return len(plan.CheckpointIDs), nil
}

// ComputePlan runs the zoning engine over the hunt's active checkpoints and
// persists the result. Returns the stored plan ID.
func (a *ReplanActivities) ComputePlan(ctx context.Context, huntID string, cfg zoning.Config) (string, error) {
	plan, err := a.PlanService.Plan(ctx, huntID, cfg)
	if err != nil {
		return "", fmt.Errorf("compute plan for hunt %s: %w", huntID, err)
	}
	metrics.ReplansTriggered.WithLabelValues("workflow").Inc()
	return plan.ID, nil
}

// PublishPlan re-announces a stored plan on the event bus.
func (a *ReplanActivities) PublishPlan(ctx context.Context, huntID, planID string) error {
	plan, err := a.Plans.GetLatestByHunt(ctx, huntID)
	if err != nil {
		return fmt.Errorf("load plan %s: %w", planID, err)
	}
	if plan.ID != planID {
		return fmt.Errorf("plan %s is no longer the latest for hunt %s", planID, huntID)
	}
	if a.Publisher == nil {
		slog.Info("no publisher configured, skipping plan announcement", "plan", planID)
		return nil
	}
	return a.Publisher.PublishZonePlan(ctx, plan)
}

// DeletePlan removes a stored plan (saga compensation / rollback).
func (a *ReplanActivities) DeletePlan(ctx context.Context, planID string) error {
	if err := a.Plans.Delete(ctx, planID); err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	slog.Info("plan deleted (saga compensation)", "plan", planID)
	return nil
}
