package domain

import "math"

const earthRadiusKm = 6371.0

type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinate) Valid() bool {
	return !math.IsNaN(c.Latitude) && !math.IsInf(c.Latitude, 0) &&
		!math.IsNaN(c.Longitude) && !math.IsInf(c.Longitude, 0)
}

// Distance returns the great-circle distance between a and b in kilometers,
// computed with the haversine formula. ok is false when either coordinate is
// unusable; callers must treat an unknown distance as undeliverable.
func Distance(a, b Coordinate) (km float64, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}

	latA := a.Latitude * math.Pi / 180
	latB := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c, true
}

// WithinRadius reports whether a known distance falls inside the delivery
// radius. An unknown distance is always out of range.
func WithinRadius(distanceKm float64, known bool, maxKm float64) bool {
	return known && distanceKm <= maxKm
}
