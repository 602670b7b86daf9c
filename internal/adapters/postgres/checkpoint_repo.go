package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// CheckpointRepo implements ports.CheckpointRepository with pgx.
type CheckpointRepo struct {
	db *DB
}

// NewCheckpointRepo creates a new CheckpointRepo.
func NewCheckpointRepo(db *DB) *CheckpointRepo {
	return &CheckpointRepo{db: db}
}

// Create inserts a checkpoint and fills in its generated id.
func (r *CheckpointRepo) Create(ctx context.Context, cp *domain.Checkpoint) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO checkpoints (hunt_id, name, location, hint, photo_url, points, active, metadata)
		VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, cp.HuntID, cp.Name, cp.Location.Lon, cp.Location.Lat,
		cp.Hint, cp.PhotoURL, cp.Points, cp.Active, cp.Metadata).Scan(&cp.ID, &cp.CreatedAt)
}

// UpsertBatch inserts many checkpoints using pgx.Batch, updating on
// (hunt_id, name) conflicts.
func (r *CheckpointRepo) UpsertBatch(ctx context.Context, cps []domain.Checkpoint) error {
	batch := &pgx.Batch{}
	for _, cp := range cps {
		batch.Queue(`
			INSERT INTO checkpoints (hunt_id, name, location, hint, photo_url, points, active, metadata)
			VALUES ($1, $2, ST_SetSRID(ST_MakePoint($3, $4), 4326)::geography, $5, $6, $7, $8, $9)
			ON CONFLICT (hunt_id, name) DO UPDATE
			SET location = EXCLUDED.location, hint = EXCLUDED.hint,
			    photo_url = EXCLUDED.photo_url, points = EXCLUDED.points,
			    active = EXCLUDED.active, metadata = EXCLUDED.metadata
		`, cp.HuntID, cp.Name, cp.Location.Lon, cp.Location.Lat,
			cp.Hint, cp.PhotoURL, cp.Points, cp.Active, cp.Metadata)
	}
	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for range cps {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// GetByID returns a checkpoint by UUID.
func (r *CheckpointRepo) GetByID(ctx context.Context, id string) (*domain.Checkpoint, error) {
	var cp domain.Checkpoint
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, hunt_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(hint, ''), COALESCE(photo_url, ''), points, active, COALESCE(metadata, '{}'), created_at
		FROM checkpoints WHERE id = $1
	`, id).Scan(
		&cp.ID, &cp.HuntID, &cp.Name,
		&cp.Location.Lat, &cp.Location.Lon,
		&cp.Hint, &cp.PhotoURL, &cp.Points, &cp.Active, &cp.Metadata, &cp.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// ListByHunt returns a hunt's checkpoints in insertion order. The order is
// what zone plans index into, so it must be stable.
func (r *CheckpointRepo) ListByHunt(ctx context.Context, huntID string, activeOnly bool) ([]domain.Checkpoint, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, hunt_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(hint, ''), COALESCE(photo_url, ''), points, active, COALESCE(metadata, '{}'), created_at
		FROM checkpoints
		WHERE hunt_id = $1 AND ($2 = false OR active)
		ORDER BY created_at, id
	`, huntID, activeOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCheckpoints(rows, false)
}

// FindNearby returns checkpoints within radiusMeters using PostGIS ST_DWithin.
func (r *CheckpointRepo) FindNearby(ctx context.Context, lat, lon, radiusMeters float64, limit int) ([]domain.Checkpoint, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, hunt_id, name,
		       ST_Y(location::geometry) as lat,
		       ST_X(location::geometry) as lon,
		       COALESCE(hint, ''), COALESCE(photo_url, ''), points, active, COALESCE(metadata, '{}'), created_at,
		       ST_Distance(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) as distance
		FROM checkpoints
		WHERE active AND ST_DWithin(location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance
		LIMIT $4
	`, lon, lat, radiusMeters, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanCheckpoints(rows, true)
}

// Delete removes a checkpoint.
func (r *CheckpointRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM checkpoints WHERE id = $1`, id)
	return err
}

func scanCheckpoints(rows pgx.Rows, withDistance bool) ([]domain.Checkpoint, error) {
	var cps []domain.Checkpoint
	for rows.Next() {
		var cp domain.Checkpoint
		dest := []any{
			&cp.ID, &cp.HuntID, &cp.Name,
			&cp.Location.Lat, &cp.Location.Lon,
			&cp.Hint, &cp.PhotoURL, &cp.Points, &cp.Active, &cp.Metadata, &cp.CreatedAt,
		}
		var dist float64
		if withDistance {
			dest = append(dest, &dist)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if withDistance {
			d := dist
			cp.Distance = &d
		}
		cps = append(cps, cp)
	}
	return cps, rows.Err()
}
