package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/core/ports"
)

// HuntService handles hunt-related business logic.
type HuntService struct {
	hunts ports.HuntRepository
	cache ports.CacheService
}

// NewHuntService creates a new HuntService.
func NewHuntService(hunts ports.HuntRepository, cache ports.CacheService) *HuntService {
	return &HuntService{hunts: hunts, cache: cache}
}

// List returns all hunts.
func (s *HuntService) List(ctx context.Context) ([]domain.Hunt, error) {
	cacheKey := "hunts:all"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var hunts []domain.Hunt
			if err := json.Unmarshal(data, &hunts); err == nil {
				return hunts, nil
			}
		}
	}

	hunts, err := s.hunts.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(hunts); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 60)
		}
	}

	return hunts, nil
}

// GetBySlug returns a single hunt by its URL slug.
func (s *HuntService) GetBySlug(ctx context.Context, slug string) (*domain.Hunt, error) {
	if slug == "" {
		return nil, fmt.Errorf("hunt slug must not be empty")
	}

	cacheKey := "hunts:slug:" + slug
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var hunt domain.Hunt
			if err := json.Unmarshal(data, &hunt); err == nil {
				return &hunt, nil
			}
		}
	}

	hunt, err := s.hunts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(hunt); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return hunt, nil
}

// GetByID returns a single hunt.
func (s *HuntService) GetByID(ctx context.Context, id string) (*domain.Hunt, error) {
	if id == "" {
		return nil, fmt.Errorf("hunt id must not be empty")
	}
	return s.hunts.GetByID(ctx, id)
}

// Create validates and stores a new hunt.
func (s *HuntService) Create(ctx context.Context, hunt *domain.Hunt) error {
	if strings.TrimSpace(hunt.Name) == "" {
		return fmt.Errorf("hunt name is required")
	}
	if hunt.Slug == "" {
		hunt.Slug = slugify(hunt.Name)
	}
	if hunt.Status == "" {
		hunt.Status = "draft"
	}
	if !validHuntStatus(hunt.Status) {
		return fmt.Errorf("invalid hunt status: %s", hunt.Status)
	}

	if err := s.hunts.Create(ctx, hunt); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, "hunts:all")
	}
	return nil
}

// Update modifies an existing hunt.
func (s *HuntService) Update(ctx context.Context, hunt *domain.Hunt) error {
	if hunt.ID == "" {
		return fmt.Errorf("hunt id is required")
	}
	if hunt.Status != "" && !validHuntStatus(hunt.Status) {
		return fmt.Errorf("invalid hunt status: %s", hunt.Status)
	}

	if err := s.hunts.Update(ctx, hunt); err != nil {
		return err
	}

	if s.cache != nil {
		_ = s.cache.Delete(ctx, "hunts:all")
		_ = s.cache.Delete(ctx, "hunts:slug:"+hunt.Slug)
	}
	return nil
}

func validHuntStatus(status string) bool {
	switch status {
	case "draft", "active", "archived":
		return true
	}
	return false
}

// slugify lowercases a name and replaces runs of non-alphanumerics with dashes.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
