package model

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// ParseGeometry parses a GeoJSON coordinates array (the bare coordinates
// string stored on a zone, not a full GeoJSON geometry object) into a
// multipolygon. Both nesting depths are accepted:
//
//	polygon:      [[[lon,lat],...], ...]        rings
//	multipolygon: [[[[lon,lat],...], ...], ...] polygons of rings
//
// A polygon's first ring is the outer boundary, any further rings are holes.
// Rings with fewer than 3 points or non-finite coordinates are rejected.
func ParseGeometry(s string) (orb.MultiPolygon, error) {
	var multi [][][][]float64
	if err := json.Unmarshal([]byte(s), &multi); err == nil {
		return buildMultiPolygon(multi)
	}

	var poly [][][]float64
	if err := json.Unmarshal([]byte(s), &poly); err != nil {
		return nil, fmt.Errorf("geometry is neither polygon nor multipolygon coordinates: %w", err)
	}
	return buildMultiPolygon([][][][]float64{poly})
}

func buildMultiPolygon(coords [][][][]float64) (orb.MultiPolygon, error) {
	if len(coords) == 0 {
		return nil, fmt.Errorf("geometry has no polygons")
	}

	result := make(orb.MultiPolygon, 0, len(coords))
	for pi, polyCoords := range coords {
		if len(polyCoords) == 0 {
			return nil, fmt.Errorf("polygon %d has no rings", pi)
		}

		polygon := make(orb.Polygon, 0, len(polyCoords))
		for ri, ringCoords := range polyCoords {
			ring, err := buildRing(ringCoords)
			if err != nil {
				return nil, fmt.Errorf("polygon %d ring %d: %w", pi, ri, err)
			}
			polygon = append(polygon, ring)
		}
		result = append(result, polygon)
	}

	return result, nil
}

func buildRing(coords [][]float64) (orb.Ring, error) {
	if len(coords) < 3 {
		return nil, fmt.Errorf("ring has %d points, need at least 3", len(coords))
	}

	ring := make(orb.Ring, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			return nil, fmt.Errorf("coordinate pair has %d values", len(pair))
		}
		lon, lat := pair[0], pair[1]
		if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
			return nil, fmt.Errorf("non-finite coordinate (%v, %v)", lon, lat)
		}
		ring = append(ring, orb.Point{lon, lat})
	}

	return ring, nil
}
