package ports

import (
	"context"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishZonePlan(ctx context.Context, plan *domain.ZonePlan) error
	PublishCheckpointChange(ctx context.Context, cp *domain.Checkpoint, action string) error
	PublishBroadcast(ctx context.Context, data []byte) error
}

// EventSubscriber subscribes to domain events from a message broker.
type EventSubscriber interface {
	SubscribeZonePlans(ctx context.Context, handler func(ctx context.Context, plan *domain.ZonePlan) error) error
	SubscribeCheckpointChanges(ctx context.Context, handler func(ctx context.Context, cp *domain.Checkpoint) error) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
