package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func square(minLon, minLat, maxLon, maxLat float64) orb.Ring {
	return orb.Ring{
		{minLon, minLat},
		{maxLon, minLat},
		{maxLon, maxLat},
		{minLon, maxLat},
		{minLon, minLat},
	}
}

func TestPointInRing(t *testing.T) {
	ring := square(3.0, 36.7, 3.5, 37.0)

	tests := []struct {
		name string
		pt   orb.Point
		want bool
	}{
		{"center", orb.Point{3.2, 36.85}, true},
		{"west of ring", orb.Point{2.9, 36.85}, false},
		{"south of ring", orb.Point{3.2, 36.60}, false},
		{"north of ring", orb.Point{3.2, 37.1}, false},
		{"far away", orb.Point{10, 10}, false},
		{"near corner inside", orb.Point{3.001, 36.701}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInRing(tt.pt, ring); got != tt.want {
				t.Errorf("PointInRing(%v) = %v, want %v", tt.pt, got, tt.want)
			}
		})
	}
}

func TestPointInRingImplicitClosure(t *testing.T) {
	// Same ring with and without the repeated closing point must agree
	closed := square(0, 0, 1, 1)
	open := closed[:len(closed)-1]

	points := []orb.Point{{0.5, 0.5}, {1.5, 0.5}, {-0.5, 0.5}, {0.5, 1.5}}
	for _, pt := range points {
		if PointInRing(pt, closed) != PointInRing(pt, open) {
			t.Errorf("closed and open ring disagree for %v", pt)
		}
	}
}

func TestPointInRingDegenerate(t *testing.T) {
	cases := []orb.Ring{
		nil,
		{},
		{{0, 0}},
		{{0, 0}, {1, 1}},
		// Closing point only, still just 2 distinct vertices
		{{0, 0}, {1, 1}, {0, 0}},
	}
	for _, ring := range cases {
		if PointInRing(orb.Point{0.5, 0.5}, ring) {
			t.Errorf("degenerate ring %v reported containment", ring)
		}
	}
}

func TestPointInRingConcave(t *testing.T) {
	// U-shaped ring, the notch in the middle is outside
	ring := orb.Ring{
		{0, 0}, {4, 0}, {4, 4}, {3, 4}, {3, 1}, {1, 1}, {1, 4}, {0, 4}, {0, 0},
	}

	if !PointInRing(orb.Point{0.5, 2}, ring) {
		t.Error("left arm should be inside")
	}
	if !PointInRing(orb.Point{3.5, 2}, ring) {
		t.Error("right arm should be inside")
	}
	if PointInRing(orb.Point{2, 2}, ring) {
		t.Error("notch should be outside")
	}
}

func TestPointInPolygonHoleExclusion(t *testing.T) {
	polygon := orb.Polygon{
		square(0, 0, 10, 10),
		square(4, 4, 6, 6), // hole
	}

	if !PointInPolygon(orb.Point{2, 2}, polygon) {
		t.Error("point in outer ring but outside hole should be inside")
	}
	if PointInPolygon(orb.Point{5, 5}, polygon) {
		t.Error("point inside the hole should be outside the polygon")
	}
	if PointInPolygon(orb.Point{11, 5}, polygon) {
		t.Error("point outside the outer ring should be outside")
	}
}

func TestPointInMultiPolygonUnion(t *testing.T) {
	multi := orb.MultiPolygon{
		{square(0, 0, 1, 1)},
		{square(5, 5, 6, 6), square(5.4, 5.4, 5.6, 5.6)},
	}

	if !PointInMultiPolygon(orb.Point{0.5, 0.5}, multi) {
		t.Error("point in first sub-polygon should be inside")
	}
	if !PointInMultiPolygon(orb.Point{5.1, 5.1}, multi) {
		t.Error("point in second sub-polygon should be inside")
	}
	if PointInMultiPolygon(orb.Point{5.5, 5.5}, multi) {
		t.Error("hole subtracts from its own polygon")
	}
	if PointInMultiPolygon(orb.Point{3, 3}, multi) {
		t.Error("point in neither sub-polygon should be outside")
	}

	// A hole in one polygon does not subtract from another that covers it
	overlapping := orb.MultiPolygon{
		{square(0, 0, 10, 10), square(4, 4, 6, 6)},
		{square(3, 3, 7, 7)},
	}
	if !PointInMultiPolygon(orb.Point{5, 5}, overlapping) {
		t.Error("second polygon covers the first one's hole")
	}
}

func TestPointInMultiPolygonEmpty(t *testing.T) {
	if PointInMultiPolygon(orb.Point{0, 0}, nil) {
		t.Error("empty multipolygon contains nothing")
	}
	if PointInPolygon(orb.Point{0, 0}, orb.Polygon{}) {
		t.Error("empty polygon contains nothing")
	}
}

func TestHaversineDistance(t *testing.T) {
	// One degree of latitude is about 111.2 km
	d := HaversineDistance(36.0, 3.0, 37.0, 3.0)
	if math.Abs(d-111200) > 1000 {
		t.Errorf("expected ~111.2km, got %.0fm", d)
	}

	if d := HaversineDistance(36.85, 3.2, 36.85, 3.2); d != 0 {
		t.Errorf("zero distance expected, got %v", d)
	}
}
