package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// ZonePlanRepo implements ports.ZonePlanRepository with pgx. Zones and the
// index-to-checkpoint mapping are stored as JSONB since the engine output is
// read back whole, never queried field by field.
type ZonePlanRepo struct {
	db *DB
}

// NewZonePlanRepo creates a new ZonePlanRepo.
func NewZonePlanRepo(db *DB) *ZonePlanRepo {
	return &ZonePlanRepo{db: db}
}

// Save inserts a plan and fills in its generated id.
func (r *ZonePlanRepo) Save(ctx context.Context, plan *domain.ZonePlan) error {
	zones, err := json.Marshal(plan.Zones)
	if err != nil {
		return fmt.Errorf("marshal zones: %w", err)
	}
	ids, err := json.Marshal(plan.CheckpointIDs)
	if err != nil {
		return fmt.Errorf("marshal checkpoint ids: %w", err)
	}

	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO zone_plans (hunt_id, zones, checkpoint_ids, config, planned_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, plan.HuntID, zones, ids, plan.Config, plan.PlannedAt).Scan(&plan.ID)
}

// GetLatestByHunt returns the most recent plan for a hunt.
func (r *ZonePlanRepo) GetLatestByHunt(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
	var plan domain.ZonePlan
	var zones, ids []byte

	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, hunt_id, zones, checkpoint_ids, COALESCE(config, '{}'), planned_at
		FROM zone_plans
		WHERE hunt_id = $1
		ORDER BY planned_at DESC, id DESC
		LIMIT 1
	`, huntID).Scan(&plan.ID, &plan.HuntID, &zones, &ids, &plan.Config, &plan.PlannedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(zones, &plan.Zones); err != nil {
		return nil, fmt.Errorf("unmarshal zones: %w", err)
	}
	if err := json.Unmarshal(ids, &plan.CheckpointIDs); err != nil {
		return nil, fmt.Errorf("unmarshal checkpoint ids: %w", err)
	}
	return &plan, nil
}

// Delete removes a stored plan.
func (r *ZonePlanRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM zone_plans WHERE id = $1`, id)
	return err
}
