package domain

import (
	"time"
)

// Hunt represents a photo-checkpoint game played on a city map.
type Hunt struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	City        string    `json:"city,omitempty"`
	Status      string    `json:"status"` // draft | active | archived
	CreatedAt   time.Time `json:"created_at"`
}

// Checkpoint is a point of interest players must photograph.
type Checkpoint struct {
	ID        string         `json:"id"`
	HuntID    string         `json:"hunt_id"`
	Name      string         `json:"name"`
	Location  GeoPoint       `json:"location"`
	Hint      string         `json:"hint,omitempty"`
	PhotoURL  string         `json:"photo_url,omitempty"`
	Points    int            `json:"points"`
	Active    bool           `json:"active"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Distance  *float64       `json:"distance,omitempty"` // computed field
	CreatedAt time.Time      `json:"created_at"`
}

// Zone is a group of checkpoints intended to fit on one map view.
// POIIndices reference positions in the point slice the plan was computed
// from; the order inside a zone is the cluster insertion order.
type Zone struct {
	ID         string   `json:"id"`
	POIIndices []int    `json:"poi_indices"`
	Bounds     Bounds   `json:"bounds"`
	Center     GeoPoint `json:"center"`
	Zoom       float64  `json:"zoom"`
}

// ZonePlan is a persisted zone-planning run for a hunt.
// CheckpointIDs maps engine indices back to checkpoint UUIDs: index i in a
// zone refers to CheckpointIDs[i].
type ZonePlan struct {
	ID            string         `json:"id"`
	HuntID        string         `json:"hunt_id"`
	Zones         []Zone         `json:"zones"`
	CheckpointIDs []string       `json:"checkpoint_ids"`
	Config        map[string]any `json:"config,omitempty"`
	PlannedAt     time.Time      `json:"planned_at"`
}
