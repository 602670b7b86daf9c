package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/ports"
	"github.com/snaphunt/snaphunt/internal/pkg/metrics"
)

// CheckpointService handles checkpoint-related business logic.
type CheckpointService struct {
	checkpoints ports.CheckpointRepository
	cache       ports.CacheService
	publisher   ports.EventPublisher
}

// NewCheckpointService creates a new CheckpointService.
func NewCheckpointService(
	checkpoints ports.CheckpointRepository,
	cache ports.CacheService,
	publisher ports.EventPublisher,
) *CheckpointService {
	return &CheckpointService{checkpoints: checkpoints, cache: cache, publisher: publisher}
}

// ListByHunt returns a hunt's checkpoints.
func (s *CheckpointService) ListByHunt(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
	if huntID == "" {
		return nil, fmt.Errorf("hunt id must not be empty")
	}

	cacheKey := fmt.Sprintf("checkpoints:hunt:%s:%t", huntID, activeOnly)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cps []domain.Checkpoint
			if err := json.Unmarshal(data, &cps); err == nil {
				return cps, nil
			}
		}
	}

	cps, err := s.checkpoints.ListByHunt(ctx, huntID, activeOnly)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(cps); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 120)
		}
	}

	return cps, nil
}

// GetByID returns a single checkpoint.
func (s *CheckpointService) GetByID(ctx context.Context, id string) (*domain.Checkpoint, error) {
	if id == "" {
		return nil, fmt.Errorf("checkpoint id must not be empty")
	}
	return s.checkpoints.GetByID(ctx, id)
}

// FindNearby returns checkpoints within radiusMeters of the given point.
func (s *CheckpointService) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Checkpoint, error) {
	if limit <= 0 || limit > 50 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("checkpoints:nearby:%.4f:%.4f:%.0f:%d", lat, lon, radiusMeters, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var cps []domain.Checkpoint
			if err := json.Unmarshal(data, &cps); err == nil {
				return cps, nil
			}
		}
	}

	cps, err := s.checkpoints.FindNearby(ctx, lat, lon, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(cps); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 120)
		}
	}

	return cps, nil
}

// Create validates and stores a new checkpoint.
func (s *CheckpointService) Create(ctx context.Context, cp *domain.Checkpoint) error {
	if err := validateCheckpoint(cp); err != nil {
		return err
	}

	if err := s.checkpoints.Create(ctx, cp); err != nil {
		return err
	}

	metrics.CheckpointsUpserted.Inc()
	s.invalidateHunt(ctx, cp.HuntID)
	if s.publisher != nil {
		_ = s.publisher.PublishCheckpointChange(ctx, cp, "created")
	}
	return nil
}

// UpsertBatch validates and stores many checkpoints at once.
func (s *CheckpointService) UpsertBatch(ctx context.Context, cps []domain.Checkpoint) error {
	if len(cps) == 0 {
		return nil
	}
	for i := range cps {
		if err := validateCheckpoint(&cps[i]); err != nil {
			return fmt.Errorf("checkpoint %d: %w", i, err)
		}
	}

	if err := s.checkpoints.UpsertBatch(ctx, cps); err != nil {
		return err
	}

	metrics.CheckpointsUpserted.Add(float64(len(cps)))
	s.invalidateHunt(ctx, cps[0].HuntID)
	return nil
}

// Delete removes a checkpoint.
func (s *CheckpointService) Delete(ctx context.Context, id string) error {
	cp, err := s.checkpoints.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.checkpoints.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateHunt(ctx, cp.HuntID)
	if s.publisher != nil {
		_ = s.publisher.PublishCheckpointChange(ctx, cp, "deleted")
	}
	return nil
}

func (s *CheckpointService) invalidateHunt(ctx context.Context, huntID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, fmt.Sprintf("checkpoints:hunt:%s:true", huntID))
	_ = s.cache.Delete(ctx, fmt.Sprintf("checkpoints:hunt:%s:false", huntID))
}

func validateCheckpoint(cp *domain.Checkpoint) error {
	if cp.HuntID == "" {
		return fmt.Errorf("hunt id is required")
	}
	if cp.Name == "" {
		return fmt.Errorf("checkpoint name is required")
	}
	if cp.Location.Lat < -90 || cp.Location.Lat > 90 {
		return fmt.Errorf("latitude out of range: %v", cp.Location.Lat)
	}
	if cp.Location.Lon < -180 || cp.Location.Lon > 180 {
		return fmt.Errorf("longitude out of range: %v", cp.Location.Lon)
	}
	return nil
}
