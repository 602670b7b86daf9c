package ports

import (
	"context"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// HuntRepository persists hunts.
type HuntRepository interface {
	Create(ctx context.Context, hunt *domain.Hunt) error
	Update(ctx context.Context, hunt *domain.Hunt) error
	GetByID(ctx context.Context, id string) (*domain.Hunt, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Hunt, error)
	List(ctx context.Context) ([]domain.Hunt, error)
}

// CheckpointRepository persists checkpoints.
type CheckpointRepository interface {
	Create(ctx context.Context, cp *domain.Checkpoint) error
	UpsertBatch(ctx context.Context, cps []domain.Checkpoint) error
	GetByID(ctx context.Context, id string) (*domain.Checkpoint, error)
	ListByHunt(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error)
	FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Checkpoint, error)
	Delete(ctx context.Context, id string) error
}

// ZonePlanRepository persists zone-planning runs.
type ZonePlanRepository interface {
	Save(ctx context.Context, plan *domain.ZonePlan) error
	GetLatestByHunt(ctx context.Context, huntID string) (*domain.ZonePlan, error)
	Delete(ctx context.Context, id string) error
}
