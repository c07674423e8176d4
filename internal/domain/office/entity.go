package office

import (
	"time"
)

// Location is the geofence configuration for one office: center coordinates
// plus an acceptance radius. The engine reads the active location on every
// check-in; admins create and update it.
type Location struct {
	ID           string
	Name         string
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
