package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/snaphunt/snaphunt/internal/core/zoning"
)

// ReplanInput is the input for the replan workflow.
type ReplanInput struct {
	HuntID string
	Config zoning.Config
	Source string // "checkpoint-change" | "schedule" | "manual"
}

// ReplanWorkflow recomputes a hunt's zone plan and announces it. If the
// announcement fails the stored plan is deleted again (saga compensation),
// so subscribers never see a plan that was not broadcast.
func ReplanWorkflow(ctx workflow.Context, input ReplanInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting replan workflow", "hunt", input.HuntID, "source", input.Source)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Log the current plan size for context
	var before int
	_ = workflow.ExecuteActivity(ctx, "CountActiveCheckpoints", input.HuntID).Get(ctx, &before)

	// Step 2: Compute and persist the new plan
	var planID string
	err := workflow.ExecuteActivity(ctx, "ComputePlan", input.HuntID, input.Config).Get(ctx, &planID)
	if err != nil {
		return err
	}

	// Step 3: Announce the new plan
	err = workflow.ExecuteActivity(ctx, "PublishPlan", input.HuntID, planID).Get(ctx, nil)
	if err != nil {
		logger.Warn("plan announcement failed, compensating", "error", err)
		// Compensate: delete the plan that nobody heard about
		_ = workflow.ExecuteActivity(ctx, "DeletePlan", planID).Get(ctx, nil)
		return err
	}

	logger.Info("Replan complete", "hunt", input.HuntID, "plan", planID, "previousCheckpoints", before)
	return nil
}
