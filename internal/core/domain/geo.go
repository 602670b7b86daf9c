package domain

import "math"

// GeoPoint represents a geographic coordinate (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Bounds represents a geographic bounding box. North >= South always holds
// for boxes produced here; East/West are plain degrees with no antimeridian
// normalisation.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// MapSize is the pixel viewport a zone is meant to be displayed in.
type MapSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// BoundsOf returns the min/max box across all points. The zero Bounds is
// returned for an empty slice.
func BoundsOf(points []GeoPoint) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{
		North: points[0].Lat,
		South: points[0].Lat,
		East:  points[0].Lon,
		West:  points[0].Lon,
	}
	for _, p := range points[1:] {
		b.North = math.Max(b.North, p.Lat)
		b.South = math.Min(b.South, p.Lat)
		b.East = math.Max(b.East, p.Lon)
		b.West = math.Min(b.West, p.Lon)
	}
	return b
}

// Center returns the midpoint of the box (not a centroid of members).
func (b Bounds) Center() GeoPoint {
	return GeoPoint{
		Lat: (b.North + b.South) / 2,
		Lon: (b.East + b.West) / 2,
	}
}

const (
	tileSize   = 256
	maxMapZoom = 21
)

// ZoomFor returns the web-mercator zoom level at which the box fits inside
// the given viewport. A degenerate box (single point) yields the maximum
// zoom.
func ZoomFor(b Bounds, size MapSize) float64 {
	latFraction := (latRad(b.North) - latRad(b.South)) / math.Pi

	lonDiff := b.East - b.West
	if lonDiff < 0 {
		lonDiff += 360
	}
	lonFraction := lonDiff / 360

	latZoom := fracZoom(float64(size.Height), latFraction)
	lonZoom := fracZoom(float64(size.Width), lonFraction)

	zoom := math.Min(latZoom, lonZoom)
	if zoom > maxMapZoom || math.IsInf(zoom, 1) {
		return maxMapZoom
	}
	if zoom < 0 {
		return 0
	}
	return zoom
}

func latRad(lat float64) float64 {
	sin := math.Sin(lat * math.Pi / 180)
	radX2 := math.Log((1+sin)/(1-sin)) / 2
	return math.Max(math.Min(radX2, math.Pi), -math.Pi) / 2
}

func fracZoom(mapPx, fraction float64) float64 {
	if fraction <= 0 {
		return math.Inf(1)
	}
	return math.Log2(mapPx / tileSize / fraction)
}
