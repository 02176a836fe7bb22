package idw

import "github.com/golang/geo/s2"

// earthRadiusMeters is the Earth's mean radius.
const earthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance in meters between (aLat, aLng)
// and (bLat, bLng), both in degrees.
func Haversine(aLat, aLng, bLat, bLng float64) float64 {
	a := s2.LatLngFromDegrees(aLat, aLng)
	b := s2.LatLngFromDegrees(bLat, bLng)
	return a.Distance(b).Radians() * earthRadiusMeters
}
