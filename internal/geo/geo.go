package geo

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/paulmach/orb"
)

// PointInRing reports whether the point lies inside the ring using the
// even-odd ray casting rule: a ray is cast in the +x direction and edge
// crossings are counted. The ring is treated as implicitly closed, so the
// last point does not need to repeat the first.
//
// Rings with fewer than 3 points are degenerate and always report false.
// Points exactly on an edge or vertex are implementation-defined; ray
// casting is not exact on boundaries and no snapping is attempted. Planar
// math in degrees, so geometry spanning the antimeridian or the poles is
// not handled.
func PointInRing(pt orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}

	// Drop an explicit closing point so the wrap-around edge is not counted twice.
	if ring[0] == ring[n-1] {
		n--
		if n < 3 {
			return false
		}
	}

	x, y := pt[0], pt[1]
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]

		if ((yi > y) != (yj > y)) && (x < (xj-xi)*(y-yi)/(yj-yi)+xi) {
			inside = !inside
		}
	}
	return inside
}

// PointInPolygon reports whether the point is inside the polygon's outer
// ring and outside all of its holes.
func PointInPolygon(pt orb.Point, polygon orb.Polygon) bool {
	if len(polygon) == 0 {
		return false
	}
	if !PointInRing(pt, polygon[0]) {
		return false
	}
	for _, hole := range polygon[1:] {
		if PointInRing(pt, hole) {
			return false
		}
	}
	return true
}

// PointInMultiPolygon reports whether the point is inside any constituent
// polygon. Holes subtract only from their own polygon.
func PointInMultiPolygon(pt orb.Point, multi orb.MultiPolygon) bool {
	for _, polygon := range multi {
		if PointInPolygon(pt, polygon) {
			return true
		}
	}
	return false
}

// HaversineDistance returns the great-circle distance in meters between two
// coordinates.
func HaversineDistance(lat1, lng1, lat2, lng2 float64) float64 {
	point1 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat1, lng1))
	point2 := s2.PointFromLatLng(s2.LatLngFromDegrees(lat2, lng2))

	angle := s1.Angle(s2.ChordAngleBetweenPoints(point1, point2).Angle())

	earthRadiusMeters := 6371000.0
	return angle.Radians() * earthRadiusMeters
}
