package geo

import (
	"fmt"
	"math"
)

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000

// Distance returns the great-circle distance between two coordinates in meters.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := (lat2 - lat1) * (math.Pi / 180.0)
	dLng := (lng2 - lng1) * (math.Pi / 180.0)

	lat1Rad := lat1 * (math.Pi / 180.0)
	lat2Rad := lat2 * (math.Pi / 180.0)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusMeters * c
}

// ValidateCoordinates rejects out-of-range coordinates. Values are never clamped.
func ValidateCoordinates(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	return nil
}

// CheckResult is the outcome of a geofence check.
type CheckResult struct {
	DistanceMeters float64
	WithinRadius   bool
}

// Check validates both coordinate pairs and reports whether the user position
// falls inside the office radius. A distance exactly at the radius is inside.
func Check(userLat, userLng, officeLat, officeLng, radiusMeters float64) (CheckResult, error) {
	if err := ValidateCoordinates(userLat, userLng); err != nil {
		return CheckResult{}, err
	}
	if err := ValidateCoordinates(officeLat, officeLng); err != nil {
		return CheckResult{}, err
	}

	d := Distance(userLat, userLng, officeLat, officeLng)
	return CheckResult{
		DistanceMeters: d,
		WithinRadius:   d <= radiusMeters,
	}, nil
}
