// Package geo holds the straight-line distance helpers used by trip planning.
package geo

import (
	"trip-assignment-service/internal/domain"

	"github.com/golang/geo/s2"
)

const EarthRadiusKm = 6371.0

// GreatCircleDistanceKm returns the haversine distance in kilometers.
//
// A point at exactly (0,0) means "location unknown" upstream, so the distance
// is 0 whenever either endpoint is (0,0), in either argument position.
func GreatCircleDistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	if (lat1 == 0 && lon1 == 0) || (lat2 == 0 && lon2 == 0) {
		return 0
	}

	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// Distance is GreatCircleDistanceKm over Coordinates.
func Distance(a, b domain.Coordinates) float64 {
	return GreatCircleDistanceKm(a.Lat, a.Lon, b.Lat, b.Lon)
}
