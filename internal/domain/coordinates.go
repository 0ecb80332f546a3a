package domain

// Immutable geographic coordinates (latitude, longitude) in degrees.
// The zero value (0,0) is the upstream sentinel for "location unknown".
type Coordinates struct {
	Lat float64
	Lon float64
}

// IsUnknown reports whether c is the (0,0) missing-location sentinel.
func (c Coordinates) IsUnknown() bool { return c.Lat == 0 && c.Lon == 0 }

// Centroid returns the arithmetic mean of the given points. Unknown (0,0)
// points are included in the mean; an empty input yields (0,0).
func Centroid(points []Coordinates) Coordinates {
	if len(points) == 0 {
		return Coordinates{}
	}

	var sumLat, sumLon float64
	for _, p := range points {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(points))
	return Coordinates{Lat: sumLat / n, Lon: sumLon / n}
}
