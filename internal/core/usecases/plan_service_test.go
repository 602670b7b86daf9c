package usecases_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/usecases"
	"github.com/snaphunt/snaphunt/internal/core/zoning"
)

// --- Mock repositories ---

type mockHuntRepo struct {
	createFn    func(ctx context.Context, h *domain.Hunt) error
	updateFn    func(ctx context.Context, h *domain.Hunt) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Hunt, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Hunt, error)
	listFn      func(ctx context.Context) ([]domain.Hunt, error)
}

func (m *mockHuntRepo) Create(ctx context.Context, h *domain.Hunt) error {
	if m.createFn != nil {
		return m.createFn(ctx, h)
	}
	return nil
}
func (m *mockHuntRepo) Update(ctx context.Context, h *domain.Hunt) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, h)
	}
	return nil
}
func (m *mockHuntRepo) GetByID(ctx context.Context, id string) (*domain.Hunt, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return &domain.Hunt{ID: id}, nil
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
	createFn      func(ctx context.Context, cp *domain.Checkpoint) error
	upsertBatchFn func(ctx context.Context, cps []domain.Checkpoint) error
	getByIDFn     func(ctx context.Context, id string) (*domain.Checkpoint, error)
	listByHuntFn  func(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error)
	findNearbyFn  func(ctx context.Context, lat, lon, radius float64, limit int) ([]domain.Checkpoint, error)
	deleteFn      func(ctx context.Context, id string) error
}

func (m *mockCheckpointRepo) Create(ctx context.Context, cp *domain.Checkpoint) error {
	if m.createFn != nil {
		return m.createFn(ctx, cp)
	}
	return nil
}
func (m *mockCheckpointRepo) UpsertBatch(ctx context.Context, cps []domain.Checkpoint) error {
	if m.upsertBatchFn != nil {
		return m.upsertBatchFn(ctx, cps)
	}
	return nil
}
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
	saveFn      func(ctx context.Context, plan *domain.ZonePlan) error
	getLatestFn func(ctx context.Context, huntID string) (*domain.ZonePlan, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockPlanRepo) Save(ctx context.Context, plan *domain.ZonePlan) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, plan)
	}
	return nil
}
func (m *mockPlanRepo) GetLatestByHunt(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
	if m.getLatestFn != nil {
		return m.getLatestFn(ctx, huntID)
	}
	return nil, nil
}
func (m *mockPlanRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockPublisher struct {
	plans       []*domain.ZonePlan
	checkpoints []*domain.Checkpoint
}

func (m *mockPublisher) PublishZonePlan(ctx context.Context, plan *domain.ZonePlan) error {
	m.plans = append(m.plans, plan)
	return nil
}
func (m *mockPublisher) PublishCheckpointChange(ctx context.Context, cp *domain.Checkpoint, action string) error {
	m.checkpoints = append(m.checkpoints, cp)
	return nil
}
func (m *mockPublisher) PublishBroadcast(ctx context.Context, data []byte) error { return nil }

func huntCheckpoints(n int) []domain.Checkpoint {
	cps := make([]domain.Checkpoint, n)
	for i := range cps {
		cps[i] = domain.Checkpoint{
			ID:       fmt.Sprintf("cp-%d", i),
			HuntID:   "hunt-1",
			Name:     fmt.Sprintf("Checkpoint %d", i),
			Location: domain.GeoPoint{Lat: 43.65 - float64(i)*0.0001, Lon: -79.38},
			Active:   true,
		}
	}
	return cps
}

// --- Tests ---

func TestPlanService_Plan(t *testing.T) {
	cps := huntCheckpoints(6)
	var saved *domain.ZonePlan

	hunts := &mockHuntRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Hunt, error) {
			return &domain.Hunt{ID: id, Slug: "toronto-night", Status: "active"}, nil
		},
	}
	checkpoints := &mockCheckpointRepo{
		listByHuntFn: func(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
			if !activeOnly {
				t.Error("planning must only consider active checkpoints")
			}
			return cps, nil
		},
	}
	plans := &mockPlanRepo{
		saveFn: func(ctx context.Context, plan *domain.ZonePlan) error {
			plan.ID = "plan-1"
			saved = plan
			return nil
		},
	}
	pub := &mockPublisher{}

	svc := usecases.NewPlanService(hunts, checkpoints, plans, nil, pub)

	plan, err := svc.Plan(context.Background(), "hunt-1", zoning.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("plan was not persisted")
	}
	if plan.ID != "plan-1" {
		t.Errorf("expected repo-assigned id, got %q", plan.ID)
	}
	if len(plan.CheckpointIDs) != 6 {
		t.Fatalf("expected 6 checkpoint ids, got %d", len(plan.CheckpointIDs))
	}

	// All six points are within metres of each other: one zone.
	if len(plan.Zones) != 1 {
		t.Fatalf("expected 1 zone, got %d", len(plan.Zones))
	}
	seen := make(map[int]bool)
	for _, idx := range plan.Zones[0].POIIndices {
		if seen[idx] {
			t.Fatalf("index %d appears twice", idx)
		}
		seen[idx] = true
	}
	if len(seen) != 6 {
		t.Errorf("zones must cover all checkpoints, covered %d", len(seen))
	}

	if len(pub.plans) != 1 {
		t.Errorf("expected 1 published plan, got %d", len(pub.plans))
	}
}

func TestPlanService_Plan_HuntMissing(t *testing.T) {
	hunts := &mockHuntRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Hunt, error) {
			return nil, fmt.Errorf("no rows")
		},
	}

	svc := usecases.NewPlanService(hunts, &mockCheckpointRepo{}, &mockPlanRepo{}, nil, nil)

	if _, err := svc.Plan(context.Background(), "nope", zoning.Config{}); err == nil {
		t.Error("expected error for unknown hunt")
	}
}

func TestPlanService_Plan_NoCheckpoints(t *testing.T) {
	plans := &mockPlanRepo{}

	svc := usecases.NewPlanService(&mockHuntRepo{}, &mockCheckpointRepo{}, plans, nil, nil)

	plan, err := svc.Plan(context.Background(), "hunt-1", zoning.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(plan.Zones) != 0 {
		t.Errorf("expected zero zones for an empty hunt, got %d", len(plan.Zones))
	}
}

func TestPlanService_Latest(t *testing.T) {
	plans := &mockPlanRepo{
		getLatestFn: func(ctx context.Context, huntID string) (*domain.ZonePlan, error) {
			return &domain.ZonePlan{ID: "plan-9", HuntID: huntID}, nil
		},
	}

	svc := usecases.NewPlanService(&mockHuntRepo{}, &mockCheckpointRepo{}, plans, nil, nil)

	plan, err := svc.Latest(context.Background(), "hunt-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.ID != "plan-9" {
		t.Errorf("expected plan-9, got %s", plan.ID)
	}
}

func TestPlanService_ZoneCheckpoints(t *testing.T) {
	checkpoints := &mockCheckpointRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Checkpoint, error) {
			return &domain.Checkpoint{ID: id}, nil
		},
	}
	svc := usecases.NewPlanService(&mockHuntRepo{}, checkpoints, &mockPlanRepo{}, nil, nil)

	plan := &domain.ZonePlan{
		ID:            "plan-1",
		CheckpointIDs: []string{"cp-a", "cp-b", "cp-c"},
		Zones: []domain.Zone{
			{ID: "zone-0", POIIndices: []int{2, 0}},
		},
	}

	cps, err := svc.ZoneCheckpoints(context.Background(), plan, "zone-0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cps) != 2 || cps[0].ID != "cp-c" || cps[1].ID != "cp-a" {
		t.Errorf("expected [cp-c cp-a] in zone order, got %v", cps)
	}

	if _, err := svc.ZoneCheckpoints(context.Background(), plan, "zone-7"); err == nil {
		t.Error("expected error for unknown zone id")
	}
}
