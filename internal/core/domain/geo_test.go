package domain

import "testing"

func TestBoundsOf(t *testing.T) {
	points := []GeoPoint{
		{Lat: 43.65, Lon: -79.38},
		{Lat: 43.70, Lon: -79.42},
		{Lat: 43.60, Lon: -79.30},
	}

	b := BoundsOf(points)

	if b.North != 43.70 || b.South != 43.60 {
		t.Errorf("unexpected lat extremes: %+v", b)
	}
	if b.East != -79.30 || b.West != -79.42 {
		t.Errorf("unexpected lon extremes: %+v", b)
	}
}

func TestBoundsOf_Empty(t *testing.T) {
	if b := BoundsOf(nil); b != (Bounds{}) {
		t.Errorf("expected zero bounds for empty input, got %+v", b)
	}
}

func TestBoundsCenter_IsMidpoint(t *testing.T) {
	b := Bounds{North: 44, South: 42, East: -79, West: -81}

	c := b.Center()

	if c.Lat != 43 || c.Lon != -80 {
		t.Errorf("expected midpoint (43,-80), got %+v", c)
	}
}

func TestZoomFor_SinglePointMaxZoom(t *testing.T) {
	b := Bounds{North: 43.65, South: 43.65, East: -79.38, West: -79.38}

	zoom := ZoomFor(b, MapSize{Width: 400, Height: 600})

	if zoom != 21 {
		t.Errorf("degenerate bounds should zoom all the way in, got %v", zoom)
	}
}

func TestZoomFor_WiderBoxZoomsOut(t *testing.T) {
	size := MapSize{Width: 400, Height: 600}
	small := Bounds{North: 43.66, South: 43.64, East: -79.37, West: -79.39}
	large := Bounds{North: 43.90, South: 43.40, East: -79.00, West: -79.80}

	zs := ZoomFor(small, size)
	zl := ZoomFor(large, size)

	if !(zl < zs) {
		t.Errorf("larger area must yield smaller zoom: small=%v large=%v", zs, zl)
	}
	if zs <= 0 || zs > 21 || zl <= 0 || zl > 21 {
		t.Errorf("zooms out of range: small=%v large=%v", zs, zl)
	}
}

func TestZoomFor_ViewportMatters(t *testing.T) {
	b := Bounds{North: 43.70, South: 43.60, East: -79.30, West: -79.45}

	wide := ZoomFor(b, MapSize{Width: 1200, Height: 600})
	narrow := ZoomFor(b, MapSize{Width: 300, Height: 600})

	if !(narrow < wide) {
		t.Errorf("narrow viewport should zoom out: wide=%v narrow=%v", wide, narrow)
	}
}
