package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
)

// ListHuntsHandler returns all hunts, paginated.
func ListHuntsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hunts, err := deps.Hunts.List(c.Context())
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, hunts, 100, 200)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateHuntHandler creates a new hunt.
func CreateHuntHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var hunt domain.Hunt
		if err := c.BodyParser(&hunt); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}

		if err := deps.Hunts.Create(c.Context(), &hunt); err != nil {
			return errBadRequest(c, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(hunt)
	}
}

// GetHuntHandler returns a single hunt by slug.
func GetHuntHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")
		if slug == "" {
			return errBadRequest(c, "hunt slug is required")
		}
		hunt, err := deps.Hunts.GetBySlug(c.Context(), slug)
		if err != nil {
			return errNotFound(c, "hunt not found")
		}
		return c.JSON(hunt)
	}
}

// UpdateHuntHandler applies partial updates to a hunt.
func UpdateHuntHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "hunt id is required")
		}

		var hunt domain.Hunt
		if err := c.BodyParser(&hunt); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		hunt.ID = id

		if err := deps.Hunts.Update(c.Context(), &hunt); err != nil {
			return errBadRequest(c, err.Error())
		}

		updated, err := deps.Hunts.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "hunt not found")
		}
		return c.JSON(updated)
	}
}

// ListCheckpointsHandler returns the checkpoints of a hunt.
// ?active=true restricts the list to checkpoints still in play.
func ListCheckpointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}
		activeOnly := c.QueryBool("active", false)

		cps, err := deps.Checkpoints.ListByHunt(c.Context(), huntID, activeOnly)
		if err != nil {
			return errInternal(c, err.Error())
		}

		page, pg := paginate(c, cps, 100, 500)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// CreateCheckpointHandler adds a checkpoint to a hunt.
func CreateCheckpointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}

		var cp domain.Checkpoint
		if err := c.BodyParser(&cp); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		cp.HuntID = huntID

		if err := deps.Checkpoints.Create(c.Context(), &cp); err != nil {
			return errBadRequest(c, err.Error())
		}

		return c.Status(fiber.StatusCreated).JSON(cp)
	}
}

// BatchCheckpointsHandler upserts a batch of checkpoints for a hunt.
// Conflicts on (hunt, name) update the existing row.
func BatchCheckpointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}

		var cps []domain.Checkpoint
		if err := c.BodyParser(&cps); err != nil {
			return errBadRequest(c, "invalid request body: "+err.Error())
		}
		if len(cps) == 0 {
			return errBadRequest(c, "at least one checkpoint is required")
		}
		if len(cps) > 500 {
			return errBadRequest(c, "maximum 500 checkpoints per batch")
		}
		for i := range cps {
			cps[i].HuntID = huntID
		}

		if err := deps.Checkpoints.UpsertBatch(c.Context(), cps); err != nil {
			return errBadRequest(c, err.Error())
		}

		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"upserted": len(cps),
		})
	}
}

// GetCheckpointHandler returns a single checkpoint by ID.
func GetCheckpointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "checkpoint id is required")
		}
		cp, err := deps.Checkpoints.GetByID(c.Context(), id)
		if err != nil {
			return errNotFound(c, "checkpoint not found")
		}
		return c.JSON(cp)
	}
}

// DeleteCheckpointHandler removes a checkpoint.
func DeleteCheckpointHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "checkpoint id is required")
		}
		if err := deps.Checkpoints.Delete(c.Context(), id); err != nil {
			return errInternal(c, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// NearbyCheckpointsHandler returns checkpoints within a radius of a point.
func NearbyCheckpointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lon := c.QueryFloat("lon", 0)
		radius := c.QueryFloat("radius", 500)
		limit := c.QueryInt("limit", 20)

		if lat == 0 || lon == 0 {
			return errBadRequest(c, "lat and lon are required")
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return errBadRequest(c, "lat/lon out of range")
		}
		if radius <= 0 || radius > 10000 {
			return errBadRequest(c, "radius must be between 1 and 10000 meters")
		}

		cps, err := deps.Checkpoints.FindNearby(c.Context(), lat, lon, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=120")
		return c.JSON(cps)
	}
}

// planRequest carries per-request overrides for the planning parameters.
// Omitted fields fall back to the server defaults.
type planRequest struct {
	MinPOIsPerZone      int     `json:"min_pois_per_zone"`
	MaxPOIsPerZone      int     `json:"max_pois_per_zone"`
	ClusterRadiusMeters float64 `json:"cluster_radius_meters"`
	MapWidth            int     `json:"map_width"`
	MapHeight           int     `json:"map_height"`
}

func (r planRequest) apply(cfg zoning.Config) (zoning.Config, error) {
	if r.MinPOIsPerZone < 0 || r.MaxPOIsPerZone < 0 {
		return cfg, fiber.NewError(fiber.StatusBadRequest, "zone sizes must be positive")
	}
	if r.ClusterRadiusMeters < 0 {
		return cfg, fiber.NewError(fiber.StatusBadRequest, "cluster_radius_meters must be positive")
	}
	if r.MinPOIsPerZone > 0 {
		cfg.MinPOIsPerZone = r.MinPOIsPerZone
	}
	if r.MaxPOIsPerZone > 0 {
		cfg.MaxPOIsPerZone = r.MaxPOIsPerZone
	}
	if cfg.MinPOIsPerZone > cfg.MaxPOIsPerZone {
		return cfg, fiber.NewError(fiber.StatusBadRequest, "min_pois_per_zone must not exceed max_pois_per_zone")
	}
	if r.ClusterRadiusMeters > 0 {
		cfg.ClusterRadiusMeters = r.ClusterRadiusMeters
	}
	if r.MapWidth > 0 {
		cfg.MapSize.Width = r.MapWidth
	}
	if r.MapHeight > 0 {
		cfg.MapSize.Height = r.MapHeight
	}
	return cfg, nil
}

// PlanZonesHandler computes and stores a fresh zone plan for a hunt.
func PlanZonesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}

		cfg := deps.Zoning
		if len(c.Body()) > 0 {
			var req planRequest
			if err := c.BodyParser(&req); err != nil {
				return errBadRequest(c, "invalid request body: "+err.Error())
			}
			var err error
			if cfg, err = req.apply(cfg); err != nil {
				return errBadRequest(c, err.Error())
			}
		}

		plan, err := deps.Plans.Plan(c.Context(), huntID, cfg)
		if err != nil {
			return errNotFound(c, err.Error())
		}

		LoggerFromCtx(c.UserContext()).Info("zone plan computed",
			"hunt", huntID,
			"zones", len(plan.Zones),
			"checkpoints", len(plan.CheckpointIDs),
		)

		return c.Status(fiber.StatusCreated).JSON(plan)
	}
}

// GetZonesHandler returns the latest zone plan for a hunt.
func GetZonesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}

		plan, err := deps.Plans.Latest(c.Context(), huntID)
		if err != nil {
			return errNotFound(c, "no zone plan for hunt")
		}

		return c.JSON(plan)
	}
}

// GetZoneBoundsHandler returns the bounding box spanning every zone of the
// latest plan. A plan with zero zones has no bounds and yields 404.
func GetZoneBoundsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		if huntID == "" {
			return errBadRequest(c, "hunt id is required")
		}

		bounds, err := deps.Plans.OverallBounds(c.Context(), huntID)
		if err != nil {
			return errNotFound(c, "no zone plan for hunt")
		}
		if bounds == nil {
			return errNotFound(c, "plan contains no zones")
		}

		return c.JSON(bounds)
	}
}

// GetZoneCheckpointsHandler resolves one zone of the latest plan back to its
// full checkpoint records, in the zone's internal order.
func GetZoneCheckpointsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		huntID := c.Params("id")
		zoneID := c.Params("zoneID")
		if huntID == "" || zoneID == "" {
			return errBadRequest(c, "hunt id and zone id are required")
		}

		plan, err := deps.Plans.Latest(c.Context(), huntID)
		if err != nil {
			return errNotFound(c, "no zone plan for hunt")
		}

		cps, err := deps.Plans.ZoneCheckpoints(c.Context(), plan, zoneID)
		if err != nil {
			return errNotFound(c, err.Error())
		}

		return c.JSON(fiber.Map{
			"zone_id":     zoneID,
			"checkpoints": cps,
			"count":       len(cps),
		})
	}
}
