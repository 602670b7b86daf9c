package zoning

import (
	"github.com/snaphunt/snaphunt/internal/core/domain"
	"github.com/snaphunt/snaphunt/internal/pkg/geospatial"
)

// mergeSmallClusters folds clusters below minSize into the nearest other
// cluster by centroid distance, provided the combined size stays within
// maxSize and the centroids are within maxMergeDistance meters.
//
// minSize is advisory: a small cluster with no eligible partner (everything
// nearby is full, or too far away) stays small. maxSize is the hard bound.
//
// After every merge the scan restarts from the first cluster since indices
// shift; each merge strictly reduces the cluster count, so the loop
// terminates. A full pass without a merge ends it.
func mergeSmallClusters(clusters [][]int, points []domain.GeoPoint, minSize, maxSize int, maxMergeDistance float64) [][]int {
	if len(clusters) <= 1 {
		return clusters
	}

	for {
		merged := false

		for i := range clusters {
			if len(clusters[i]) >= minSize {
				continue
			}
			from := centroid(points, clusters[i])

			best := -1
			var bestDist float64
			for j := range clusters {
				if j == i || len(clusters[i])+len(clusters[j]) > maxSize {
					continue
				}
				to := centroid(points, clusters[j])
				d := geospatial.Haversine(from.Lat, from.Lon, to.Lat, to.Lon)
				if d > maxMergeDistance {
					continue
				}
				if best < 0 || d < bestDist {
					best, bestDist = j, d
				}
			}

			if best >= 0 {
				clusters[i] = append(clusters[i], clusters[best]...)
				clusters = append(clusters[:best], clusters[best+1:]...)
				merged = true
				break
			}
		}

		if !merged {
			return clusters
		}
	}
}

// centroid is the arithmetic mean of member coordinates. It is used only for
// merge decisions; a zone's displayed center is the bounding-box midpoint.
func centroid(points []domain.GeoPoint, members []int) domain.GeoPoint {
	var lat, lon float64
	for _, idx := range members {
		lat += points[idx].Lat
		lon += points[idx].Lon
	}
	n := float64(len(members))
	return domain.GeoPoint{Lat: lat / n, Lon: lon / n}
}
