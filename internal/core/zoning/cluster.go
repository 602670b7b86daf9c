package zoning

import (
	"sort"

	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/pkg/geospatial"
)

// clusterByProximity partitions all point indices into clusters. Seeds are
// taken north to south; each seed absorbs the nearest still-unassigned
// points within radiusMeters, up to maxSize members per cluster.
//
// The north-to-south scan order exists only so that identical input always
// produces identical clusters; it is not a geographic optimum. Both sorts
// are stable so that equal keys keep input order.
func clusterByProximity(points []domain.GeoPoint, radiusMeters float64, maxSize int) [][]int {
	n := len(points)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return points[order[a]].Lat > points[order[b]].Lat
	})

	assigned := make([]bool, n)
	var clusters [][]int

	for _, seed := range order {
		if assigned[seed] {
			continue
		}

		cluster := []int{seed}
		assigned[seed] = true

		type candidate struct {
			idx  int
			dist float64
		}
		var candidates []candidate
		for _, idx := range order {
			if assigned[idx] {
				continue
			}
			d := geospatial.Haversine(
				points[seed].Lat, points[seed].Lon,
				points[idx].Lat, points[idx].Lon,
			)
			if d <= radiusMeters {
				candidates = append(candidates, candidate{idx: idx, dist: d})
			}
		}

		// Nearest first, until the cluster is full.
		sort.SliceStable(candidates, func(a, b int) bool {
			return candidates[a].dist < candidates[b].dist
		})
		for _, c := range candidates {
			if len(cluster) >= maxSize {
				break
			}
			cluster = append(cluster, c.idx)
			assigned[c.idx] = true
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
