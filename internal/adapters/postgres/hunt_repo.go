package postgres

import (
	"context"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// HuntRepo implements ports.HuntRepository with pgx.
type HuntRepo struct {
	db *DB
}

// NewHuntRepo creates a new HuntRepo.
func NewHuntRepo(db *DB) *HuntRepo {
	return &HuntRepo{db: db}
}

// Create inserts a hunt and fills in its generated id.
func (r *HuntRepo) Create(ctx context.Context, h *domain.Hunt) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO hunts (slug, name, description, city, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`, h.Slug, h.Name, h.Description, h.City, h.Status).Scan(&h.ID, &h.CreatedAt)
}

// Update modifies a hunt's mutable fields.
func (r *HuntRepo) Update(ctx context.Context, h *domain.Hunt) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE hunts
		SET name = COALESCE(NULLIF($2, ''), name),
		    description = COALESCE(NULLIF($3, ''), description),
		    city = COALESCE(NULLIF($4, ''), city),
		    status = COALESCE(NULLIF($5, ''), status)
		WHERE id = $1
	`, h.ID, h.Name, h.Description, h.City, h.Status)
	return err
}

// GetByID returns a hunt by UUID.
func (r *HuntRepo) GetByID(ctx context.Context, id string) (*domain.Hunt, error) {
	var h domain.Hunt
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), COALESCE(city, ''), status, created_at
		FROM hunts WHERE id = $1
	`, id).Scan(&h.ID, &h.Slug, &h.Name, &h.Description, &h.City, &h.Status, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// GetBySlug returns a hunt by its URL slug.
func (r *HuntRepo) GetBySlug(ctx context.Context, slug string) (*domain.Hunt, error) {
	var h domain.Hunt
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), COALESCE(city, ''), status, created_at
		FROM hunts WHERE slug = $1
	`, slug).Scan(&h.ID, &h.Slug, &h.Name, &h.Description, &h.City, &h.Status, &h.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// List returns all hunts, newest first.
func (r *HuntRepo) List(ctx context.Context) ([]domain.Hunt, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, COALESCE(description, ''), COALESCE(city, ''), status, created_at
		FROM hunts ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var hunts []domain.Hunt
	for rows.Next() {
		var h domain.Hunt
		if err := rows.Scan(&h.ID, &h.Slug, &h.Name, &h.Description, &h.City, &h.Status, &h.CreatedAt); err != nil {
			return nil, err
		}
		hunts = append(hunts, h)
	}
	return hunts, rows.Err()
}
