// Package zoning partitions a hunt's checkpoints into map display zones.
//
// Given an unordered list of coordinates it produces zones that each fit
// comfortably on one map view: a greedy proximity clustering pass, a
// rebalancing pass that folds undersized clusters into near neighbours, and
// a final ordering pass that numbers zones north-to-south, west-to-east.
// Every call is pure and independent; the engine never mutates or copies
// caller data, it only hands back indices into the input slice.
package zoning

import (
	"fmt"
	"math"
	"sort"

	"github.com/snaphunt/snaphunt/internal/core/domain"
)

// Defaults applied to zero Config fields.
const (
	DefaultMinPOIsPerZone      = 3
	DefaultMaxPOIsPerZone      = 10
	DefaultClusterRadiusMeters = 1000.0
)

// DefaultMapSize is the viewport assumed when none is configured.
var DefaultMapSize = domain.MapSize{Width: 400, Height: 600}

// mergeDistanceFactor scales the cluster radius into the maximum
// centroid-to-centroid distance the rebalancer will merge across. Merges
// over larger gaps would produce zones spanning unreasonable areas just to
// hit the minimum size.
const mergeDistanceFactor = 3

// rowEpsilon is the latitude difference (degrees) under which two zones are
// considered to sit on the same display row.
const rowEpsilon = 0.01

// Config tunes a planning run. Zero fields take the package defaults. The
// engine does not validate values; a caller passing MinPOIsPerZone >
// MaxPOIsPerZone or a non-positive radius gets degenerate clustering.
type Config struct {
	MinPOIsPerZone      int            // target lower bound on zone size, may be violated
	MaxPOIsPerZone      int            // hard upper bound, never violated
	ClusterRadiusMeters float64        // max distance from a cluster seed for initial membership
	MapSize             domain.MapSize // viewport used by the zoom calculation only
}

// DefaultConfig returns the default planning configuration.
func DefaultConfig() Config {
	return Config{
		MinPOIsPerZone:      DefaultMinPOIsPerZone,
		MaxPOIsPerZone:      DefaultMaxPOIsPerZone,
		ClusterRadiusMeters: DefaultClusterRadiusMeters,
		MapSize:             DefaultMapSize,
	}
}

// withDefaults assembles the effective immutable config for one call.
func (c Config) withDefaults() Config {
	if c.MinPOIsPerZone == 0 {
		c.MinPOIsPerZone = DefaultMinPOIsPerZone
	}
	if c.MaxPOIsPerZone == 0 {
		c.MaxPOIsPerZone = DefaultMaxPOIsPerZone
	}
	if c.ClusterRadiusMeters == 0 {
		c.ClusterRadiusMeters = DefaultClusterRadiusMeters
	}
	if c.MapSize.Width == 0 {
		c.MapSize.Width = DefaultMapSize.Width
	}
	if c.MapSize.Height == 0 {
		c.MapSize.Height = DefaultMapSize.Height
	}
	return c
}

// PlanZones partitions points into display zones. The union of all returned
// zones' POIIndices is exactly {0..len(points)-1} with no index in two
// zones. Identical input and config always yield identical output. An empty
// input yields an empty, non-nil slice.
func PlanZones(points []domain.GeoPoint, cfg Config) []domain.Zone {
	if len(points) == 0 {
		return []domain.Zone{}
	}

	cfg = cfg.withDefaults()

	clusters := clusterByProximity(points, cfg.ClusterRadiusMeters, cfg.MaxPOIsPerZone)
	clusters = mergeSmallClusters(
		clusters, points,
		cfg.MinPOIsPerZone, cfg.MaxPOIsPerZone,
		mergeDistanceFactor*cfg.ClusterRadiusMeters,
	)

	zones := make([]domain.Zone, 0, len(clusters))
	for i, cluster := range clusters {
		zones = append(zones, buildZone(i, cluster, points, cfg.MapSize))
	}

	orderZones(zones)
	return zones
}

// buildZone resolves a cluster's members and attaches display metadata. The
// id is a positional placeholder until orderZones runs.
func buildZone(pos int, cluster []int, points []domain.GeoPoint, size domain.MapSize) domain.Zone {
	members := make([]domain.GeoPoint, len(cluster))
	for i, idx := range cluster {
		members[i] = points[idx]
	}
	bounds := domain.BoundsOf(members)

	return domain.Zone{
		ID:         fmt.Sprintf("zone-%d", pos),
		POIIndices: cluster,
		Bounds:     bounds,
		Center:     bounds.Center(),
		Zoom:       domain.ZoomFor(bounds, size),
	}
}

// orderZones sorts zones into reading order (north rows first, west to east
// within a row) and reassigns sequential ids. Ids are only authoritative
// after this pass.
func orderZones(zones []domain.Zone) {
	sort.SliceStable(zones, func(a, b int) bool {
		na, nb := zones[a].Bounds.North, zones[b].Bounds.North
		if math.Abs(na-nb) <= rowEpsilon {
			return zones[a].Bounds.West < zones[b].Bounds.West
		}
		return na > nb
	})
	for i := range zones {
		zones[i].ID = fmt.Sprintf("zone-%d", i)
	}
}

// ZonePOIs resolves a zone's indices back to the caller's points, preserving
// the zone's internal order.
func ZonePOIs(points []domain.GeoPoint, zone domain.Zone) []domain.GeoPoint {
	pois := make([]domain.GeoPoint, 0, len(zone.POIIndices))
	for _, idx := range zone.POIIndices {
		pois = append(pois, points[idx])
	}
	return pois
}

// OverallBounds returns the box spanning every zone's bounds, or nil when
// there are no zones.
func OverallBounds(zones []domain.Zone) *domain.Bounds {
	if len(zones) == 0 {
		return nil
	}
	b := zones[0].Bounds
	for _, z := range zones[1:] {
		b.North = math.Max(b.North, z.Bounds.North)
		b.South = math.Min(b.South, z.Bounds.South)
		b.East = math.Max(b.East, z.Bounds.East)
		b.West = math.Min(b.West, z.Bounds.West)
	}
	return &b
}
