package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/snaphunt/snaphunt/internal/adapters/http"
	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
)

// ---- Mock repositories ----

type mockHuntRepo struct {
	listFn      func(ctx context.Context) ([]domain.Hunt, error)
	getByIDFn   func(ctx context.Context, id string) (*domain.Hunt, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Hunt, error)
	createFn    func(ctx context.Context, h *domain.Hunt) error
}

func (m *mockHuntRepo) Create(ctx context.Context, h *domain.Hunt) error {
	if m.createFn != nil {
		return m.createFn(ctx, h)
	}
	return nil
}
func (m *mockHuntRepo) Update(ctx context.Context, h *domain.Hunt) error { return nil }
func (m *mockHuntRepo) GetByID(ctx context.Context, id string) (*domain.Hunt, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockHuntRepo) GetBySlug(ctx context.Context, slug string) (*domain.Hunt, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, nil
}
func (m *mockHuntRepo) List(ctx context.Context) ([]domain.Hunt, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

type mockCheckpointRepo struct {
	listByHuntFn func(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error)
	getByIDFn    func(ctx context.Context, id string) (*domain.Checkpoint, error)
	findNearbyFn func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Checkpoint, error)
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockCheckpointRepo) Create(ctx context.Context, cp *domain.Checkpoint) error       { return nil }
func (m *mockCheckpointRepo) UpsertBatch(ctx context.Context, cps []domain.Checkpoint) error { return nil }
func (m *mockCheckpointRepo) GetByID(ctx context.Context, id string) (*domain.Checkpoint, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockCheckpointRepo) ListByHunt(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
	if m.listByHuntFn != nil {
		return m.listByHuntFn(ctx, huntID, activeOnly)
	}
	return nil, nil
}
func (m *mockCheckpointRepo) FindNearby(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Checkpoint, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, lat, lon, radius, limit)
	}
	return nil, nil
}
func (m *mockCheckpointRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockPlanRepo struct {
	saveFn   func(ctx context.Context, plan *domain.ZonePlan) error
	latestFn func(ctx context.Context, huntID string) (*domain.ZonePlan, error)
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *domain.ZonePlan) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, plan)
	}
	return nil
}
func (m *mockPlanRepo) GetLatestByHunt(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, huntID)
	}
	return nil, fmt.Errorf("no plan for hunt %s", huntID)
}
func (m *mockPlanRepo) Delete(ctx context.Context, id string) error { return nil }

// ---- Test helpers ----

type depOverrides struct {
	hunts       *mockHuntRepo
	checkpoints *mockCheckpointRepo
	plans       *mockPlanRepo
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(o depOverrides) *handler.Dependencies {
	if o.hunts == nil {
		o.hunts = &mockHuntRepo{}
	}
	if o.checkpoints == nil {
		o.checkpoints = &mockCheckpointRepo{}
	}
	if o.plans == nil {
		o.plans = &mockPlanRepo{}
	}
	return &handler.Dependencies{
		Hunts:       usecases.NewHuntService(o.hunts, nil),
		Checkpoints: usecases.NewCheckpointService(o.checkpoints, nil, nil),
		Plans:       usecases.NewPlanService(o.hunts, o.checkpoints, o.plans, nil, nil),
		Zoning:      zoning.DefaultConfig(),
	}
}

// ---- Hunt handler tests ----

func TestListHunts_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			listFn: func(ctx context.Context) ([]domain.Hunt, error) {
				return []domain.Hunt{
					{ID: "h1", Slug: "old-town", Name: "Old Town Photo Dash"},
					{ID: "h2", Slug: "harbourfront", Name: "Harbourfront Hunt"},
				}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Hunt `json:"data"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 hunts, got %d", len(result.Data))
	}
}

func TestListHunts_Pagination(t *testing.T) {
	hunts := make([]domain.Hunt, 5)
	for i := range hunts {
		hunts[i] = domain.Hunt{ID: fmt.Sprintf("h%d", i), Name: fmt.Sprintf("Hunt %d", i)}
	}

	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			listFn: func(ctx context.Context) ([]domain.Hunt, error) { return hunts, nil },
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts?offset=2&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Hunt `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Pagination.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 hunts in page, got %d", len(result.Data))
	}
	if result.Pagination.Offset != 2 {
		t.Errorf("expected offset 2, got %d", result.Pagination.Offset)
	}
}

func TestCreateHunt_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			createFn: func(ctx context.Context, h *domain.Hunt) error {
				h.ID = "h1"
				return nil
			},
		},
	}))

	body := strings.NewReader(`{"name":"Old Town Photo Dash","city":"Toronto"}`)
	req := httptest.NewRequest("POST", "/v1/hunts", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var hunt domain.Hunt
	json.NewDecoder(resp.Body).Decode(&hunt)
	if hunt.Slug != "old-town-photo-dash" {
		t.Errorf("expected generated slug, got %q", hunt.Slug)
	}
	if hunt.Status != "draft" {
		t.Errorf("expected default status draft, got %q", hunt.Status)
	}
}

func TestCreateHunt_MissingName(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	body := strings.NewReader(`{"city":"Toronto"}`)
	req := httptest.NewRequest("POST", "/v1/hunts", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr struct {
		Status int    `json:"status"`
		Code   string `json:"code"`
	}
	json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request error, got %s", apiErr.Code)
	}
}

func TestGetHunt_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			getBySlugFn: func(ctx context.Context, slug string) (*domain.Hunt, error) {
				return &domain.Hunt{ID: "h1", Slug: slug, Name: "Old Town Photo Dash"}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/old-town", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var hunt domain.Hunt
	json.NewDecoder(resp.Body).Decode(&hunt)
	if hunt.Name != "Old Town Photo Dash" {
		t.Errorf("unexpected hunt name: %s", hunt.Name)
	}
}

func TestGetHunt_NotFound(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			getBySlugFn: func(ctx context.Context, slug string) (*domain.Hunt, error) {
				return nil, fmt.Errorf("not found")
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/nonexistent", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Checkpoint handler tests ----

func TestNearbyCheckpoints_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		checkpoints: &mockCheckpointRepo{
			findNearbyFn: func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Checkpoint, error) {
				return []domain.Checkpoint{
					{ID: "cp1", Name: "Clock Tower", Location: domain.GeoPoint{Lat: 43.65, Lon: -79.38}},
				}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/checkpoints/nearby?lat=43.65&lon=-79.38&radius=500", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var cps []domain.Checkpoint
	json.NewDecoder(resp.Body).Decode(&cps)
	if len(cps) != 1 {
		t.Errorf("expected 1 checkpoint, got %d", len(cps))
	}
}

func TestNearbyCheckpoints_MissingParams(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	req := httptest.NewRequest("GET", "/v1/checkpoints/nearby", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestNearbyCheckpoints_BadRadius(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	req := httptest.NewRequest("GET", "/v1/checkpoints/nearby?lat=43.65&lon=-79.38&radius=50000", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListCheckpoints_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		checkpoints: &mockCheckpointRepo{
			listByHuntFn: func(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
				if !activeOnly {
					t.Errorf("expected activeOnly=true")
				}
				return []domain.Checkpoint{
					{ID: "cp1", HuntID: huntID, Name: "Clock Tower"},
					{ID: "cp2", HuntID: huntID, Name: "Fountain"},
				}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/checkpoints?active=true", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data []domain.Checkpoint `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if len(result.Data) != 2 {
		t.Errorf("expected 2 checkpoints, got %d", len(result.Data))
	}
}

func TestCreateCheckpoint_InvalidLocation(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	body := strings.NewReader(`{"name":"Clock Tower","location":{"lat":123.0,"lon":-79.38}}`)
	req := httptest.NewRequest("POST", "/v1/hunts/h1/checkpoints", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestBatchCheckpoints_Empty(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	body := strings.NewReader(`[]`)
	req := httptest.NewRequest("PUT", "/v1/hunts/h1/checkpoints/batch", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDeleteCheckpoint_Success(t *testing.T) {
	deleted := ""
	app := setupApp(makeDeps(depOverrides{
		checkpoints: &mockCheckpointRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Checkpoint, error) {
				return &domain.Checkpoint{ID: id, HuntID: "h1"}, nil
			},
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		},
	}))

	req := httptest.NewRequest("DELETE", "/v1/checkpoints/cp1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if deleted != "cp1" {
		t.Errorf("expected delete of cp1, got %q", deleted)
	}
}

// ---- Zone plan handler tests ----

func planningFixtures() (*mockHuntRepo, *mockCheckpointRepo) {
	hunts := &mockHuntRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Hunt, error) {
			return &domain.Hunt{ID: id, Slug: "old-town", Status: "active"}, nil
		},
	}
	checkpoints := &mockCheckpointRepo{
		listByHuntFn: func(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
			cps := make([]domain.Checkpoint, 6)
			for i := range cps {
				cps[i] = domain.Checkpoint{
					ID:     fmt.Sprintf("cp-%d", i),
					HuntID: huntID,
					Name:   fmt.Sprintf("Checkpoint %d", i),
					Location: domain.GeoPoint{
						Lat: 43.65 + float64(i)*0.0001,
						Lon: -79.38 + float64(i)*0.0001,
					},
					Active: true,
				}
			}
			return cps, nil
		},
	}
	return hunts, checkpoints
}

func TestPlanZones_Success(t *testing.T) {
	hunts, checkpoints := planningFixtures()
	app := setupApp(makeDeps(depOverrides{hunts: hunts, checkpoints: checkpoints}))

	req := httptest.NewRequest("POST", "/v1/hunts/h1/zones/plan", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var plan domain.ZonePlan
	json.NewDecoder(resp.Body).Decode(&plan)
	if len(plan.Zones) != 1 {
		t.Fatalf("expected 1 zone for 6 nearby checkpoints, got %d", len(plan.Zones))
	}
	if plan.Zones[0].ID != "zone-0" {
		t.Errorf("expected zone-0, got %s", plan.Zones[0].ID)
	}
	if len(plan.CheckpointIDs) != 6 {
		t.Errorf("expected 6 checkpoint ids, got %d", len(plan.CheckpointIDs))
	}
}

func TestPlanZones_ConfigOverrides(t *testing.T) {
	hunts, checkpoints := planningFixtures()
	app := setupApp(makeDeps(depOverrides{hunts: hunts, checkpoints: checkpoints}))

	// A max of 2 per zone forces the 6 checkpoints into 3 zones.
	body := strings.NewReader(`{"min_pois_per_zone":1,"max_pois_per_zone":2}`)
	req := httptest.NewRequest("POST", "/v1/hunts/h1/zones/plan", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	var plan domain.ZonePlan
	json.NewDecoder(resp.Body).Decode(&plan)
	if len(plan.Zones) != 3 {
		t.Fatalf("expected 3 zones with max size 2, got %d", len(plan.Zones))
	}
}

func TestPlanZones_InvalidConfig(t *testing.T) {
	hunts, checkpoints := planningFixtures()
	app := setupApp(makeDeps(depOverrides{hunts: hunts, checkpoints: checkpoints}))

	body := strings.NewReader(`{"min_pois_per_zone":10,"max_pois_per_zone":2}`)
	req := httptest.NewRequest("POST", "/v1/hunts/h1/zones/plan", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestGetZones_NoPlan(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/zones", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetZoneBounds_EmptyPlan(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		plans: &mockPlanRepo{
			latestFn: func(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
				return &domain.ZonePlan{ID: "p1", HuntID: huntID, Zones: []domain.Zone{}}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/zones/bounds", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404 for plan with no zones, got %d", resp.StatusCode)
	}
}

func TestGetZoneBounds_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		plans: &mockPlanRepo{
			latestFn: func(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
				return &domain.ZonePlan{
					ID:     "p1",
					HuntID: huntID,
					Zones: []domain.Zone{
						{ID: "zone-0", Bounds: domain.Bounds{North: 43.66, South: 43.64, East: -79.37, West: -79.39}},
					},
				}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/zones/bounds", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var bounds domain.Bounds
	json.NewDecoder(resp.Body).Decode(&bounds)
	if bounds.North != 43.66 || bounds.West != -79.39 {
		t.Errorf("unexpected bounds: %+v", bounds)
	}
}

func TestGetZoneCheckpoints_Success(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		checkpoints: &mockCheckpointRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Checkpoint, error) {
				return &domain.Checkpoint{ID: id, HuntID: "h1", Name: "Checkpoint " + id}, nil
			},
		},
		plans: &mockPlanRepo{
			latestFn: func(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
				return &domain.ZonePlan{
					ID:            "p1",
					HuntID:        huntID,
					Zones:         []domain.Zone{{ID: "zone-0", POIIndices: []int{1, 0}}},
					CheckpointIDs: []string{"cp-a", "cp-b"},
				}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/zones/zone-0/checkpoints", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		ZoneID      string              `json:"zone_id"`
		Checkpoints []domain.Checkpoint `json:"checkpoints"`
		Count       int                 `json:"count"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	if result.Count != 2 {
		t.Fatalf("expected 2 checkpoints, got %d", result.Count)
	}
	// Zone order, not storage order.
	if result.Checkpoints[0].ID != "cp-b" || result.Checkpoints[1].ID != "cp-a" {
		t.Errorf("checkpoints out of zone order: %s, %s", result.Checkpoints[0].ID, result.Checkpoints[1].ID)
	}
}

func TestGetZoneCheckpoints_UnknownZone(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		plans: &mockPlanRepo{
			latestFn: func(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
				return &domain.ZonePlan{ID: "p1", HuntID: huntID}, nil
			},
		},
	}))

	req := httptest.NewRequest("GET", "/v1/hunts/h1/zones/zone-9/checkpoints", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Health ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{}))

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var health struct {
		Status string `json:"status"`
	}
	json.NewDecoder(resp.Body).Decode(&health)
	if health.Status != "healthy" {
		t.Errorf("expected healthy, got %s", health.Status)
	}
}

// ---- GraphQL ----

func TestGraphQL_Hunts(t *testing.T) {
	app := setupApp(makeDeps(depOverrides{
		hunts: &mockHuntRepo{
			listFn: func(ctx context.Context) ([]domain.Hunt, error) {
				return []domain.Hunt{{ID: "h1", Slug: "old-town", Name: "Old Town Photo Dash"}}, nil
			},
		},
	}))

	body := strings.NewReader(`{"query":"{ hunts { id slug name } }"}`)
	req := httptest.NewRequest("POST", "/graphql", body)
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Hunts []struct {
				Slug string `json:"slug"`
			} `json:"hunts"`
		} `json:"data"`
		Errors []interface{} `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("graphql errors: %v", result.Errors)
	}
	if len(result.Data.Hunts) != 1 || result.Data.Hunts[0].Slug != "old-town" {
		t.Errorf("unexpected graphql result: %+v", result.Data.Hunts)
	}
}
