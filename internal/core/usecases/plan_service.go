package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/ports"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
	"github.com/snaphunt/snaphunt/internal/pkg/metrics"
)

// PlanService runs the zone-planning engine over a hunt's checkpoints and
// manages the resulting plans.
type PlanService struct {
	hunts       ports.HuntRepository
	checkpoints ports.CheckpointRepository
	plans       ports.ZonePlanRepository
	cache       ports.CacheService
	publisher   ports.EventPublisher
}

// NewPlanService creates a new PlanService.
func NewPlanService(
	hunts ports.HuntRepository,
	checkpoints ports.CheckpointRepository,
	plans ports.ZonePlanRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
) *PlanService {
	return &PlanService{
		hunts:       hunts,
		checkpoints: checkpoints,
		plans:       plans,
		cache:       cache,
		publisher:   publisher,
	}
}

// Plan clusters the hunt's active checkpoints into zones, persists the plan
// and publishes it. Zero cfg fields take the engine defaults.
func (s *PlanService) Plan(ctx context.Context, huntID string, cfg zoning.Config) (*domain.ZonePlan, error) {
	hunt, err := s.hunts.GetByID(ctx, huntID)
	if err != nil {
		return nil, fmt.Errorf("get hunt %s: %w", huntID, err)
	}

	cps, err := s.checkpoints.ListByHunt(ctx, hunt.ID, true)
	if err != nil {
		return nil, fmt.Errorf("list checkpoints: %w", err)
	}

	points := make([]domain.GeoPoint, len(cps))
	ids := make([]string, len(cps))
	for i, cp := range cps {
		points[i] = cp.Location
		ids[i] = cp.ID
	}

	start := time.Now()
	zones := zoning.PlanZones(points, cfg)
	metrics.ZonePlanDuration.Observe(time.Since(start).Seconds())
	metrics.ZonesPlanned.Add(float64(len(zones)))

	plan := &domain.ZonePlan{
		HuntID:        hunt.ID,
		Zones:         zones,
		CheckpointIDs: ids,
		Config:        configMap(cfg),
		PlannedAt:     time.Now().UTC(),
	}

	if err := s.plans.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("save plan: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(plan); err == nil {
			_ = s.cache.Set(ctx, planCacheKey(hunt.ID), data, 600)
		}
	}
	if s.publisher != nil {
		_ = s.publisher.PublishZonePlan(ctx, plan)
	}

	return plan, nil
}

// Latest returns the most recent plan for a hunt.
func (s *PlanService) Latest(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
	if huntID == "" {
		return nil, fmt.Errorf("hunt id must not be empty")
	}

	if s.cache != nil {
		if data, err := s.cache.Get(ctx, planCacheKey(huntID)); err == nil {
			var plan domain.ZonePlan
			if err := json.Unmarshal(data, &plan); err == nil {
				return &plan, nil
			}
		}
	}

	plan, err := s.plans.GetLatestByHunt(ctx, huntID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(plan); err == nil {
			_ = s.cache.Set(ctx, planCacheKey(huntID), data, 600)
		}
	}

	return plan, nil
}

// OverallBounds returns the box spanning every zone of the hunt's latest
// plan, or nil when the plan has no zones.
func (s *PlanService) OverallBounds(ctx context.Context, huntID string) (*domain.Bounds, error) {
	plan, err := s.Latest(ctx, huntID)
	if err != nil {
		return nil, err
	}
	return zoning.OverallBounds(plan.Zones), nil
}

// ZoneCheckpoints resolves one zone of a plan back to full checkpoint
// records, preserving the zone's internal order.
func (s *PlanService) ZoneCheckpoints(ctx context.Context, plan *domain.ZonePlan, zoneID string) ([]domain.Checkpoint, error) {
	var zone *domain.Zone
	for i := range plan.Zones {
		if plan.Zones[i].ID == zoneID {
			zone = &plan.Zones[i]
			break
		}
	}
	if zone == nil {
		return nil, fmt.Errorf("zone %s not in plan %s", zoneID, plan.ID)
	}

	cps := make([]domain.Checkpoint, 0, len(zone.POIIndices))
	for _, idx := range zone.POIIndices {
		if idx < 0 || idx >= len(plan.CheckpointIDs) {
			return nil, fmt.Errorf("plan %s references index %d outside its checkpoint list", plan.ID, idx)
		}
		cp, err := s.checkpoints.GetByID(ctx, plan.CheckpointIDs[idx])
		if err != nil {
			return nil, fmt.Errorf("resolve checkpoint %s: %w", plan.CheckpointIDs[idx], err)
		}
		cps = append(cps, *cp)
	}
	return cps, nil
}

func planCacheKey(huntID string) string {
	return "zones:hunt:" + huntID
}

// configMap records the effective engine configuration on the stored plan.
func configMap(cfg zoning.Config) map[string]any {
	eff := zoning.DefaultConfig()
	if cfg.MinPOIsPerZone != 0 {
		eff.MinPOIsPerZone = cfg.MinPOIsPerZone
	}
	if cfg.MaxPOIsPerZone != 0 {
		eff.MaxPOIsPerZone = cfg.MaxPOIsPerZone
	}
	if cfg.ClusterRadiusMeters != 0 {
		eff.ClusterRadiusMeters = cfg.ClusterRadiusMeters
	}
	if cfg.MapSize.Width != 0 {
		eff.MapSize.Width = cfg.MapSize.Width
	}
	if cfg.MapSize.Height != 0 {
		eff.MapSize.Height = cfg.MapSize.Height
	}
	return map[string]any{
		"min_pois_per_zone":     eff.MinPOIsPerZone,
		"max_pois_per_zone":     eff.MaxPOIsPerZone,
		"cluster_radius_meters": eff.ClusterRadiusMeters,
		"map_width":             eff.MapSize.Width,
		"map_height":            eff.MapSize.Height,
	}
}
