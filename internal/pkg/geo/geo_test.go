package geo

import (
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	cases := []struct {
		name                   string
		lat1, lng1, lat2, lng2 float64
		want                   float64 // meters
		tolerance              float64
	}{
		{"same point", -6.2, 106.8, -6.2, 106.8, 0, 0.001},
		{"jakarta to surabaya", -6.2088, 106.8456, -7.2575, 112.7521, 663000, 10000},
		{"one degree latitude", 0, 0, 1, 0, 111195, 100},
	}
	for _, c := range cases {
		got := Distance(c.lat1, c.lng1, c.lat2, c.lng2)
		if math.Abs(got-c.want) > c.tolerance {
			t.Errorf("%s: Distance() = %v, want %v (±%v)", c.name, got, c.want, c.tolerance)
		}
	}
}

func TestValidateCoordinates(t *testing.T) {
	valid := [][2]float64{{0, 0}, {-90, -180}, {90, 180}, {-6.2, 106.8}}
	invalid := [][2]float64{{-90.01, 0}, {90.01, 0}, {0, -180.01}, {0, 180.01}, {91, 181}}

	for _, c := range valid {
		if err := ValidateCoordinates(c[0], c[1]); err != nil {
			t.Errorf("ValidateCoordinates(%v, %v) = %v, want nil", c[0], c[1], err)
		}
	}
	for _, c := range invalid {
		if err := ValidateCoordinates(c[0], c[1]); err == nil {
			t.Errorf("ValidateCoordinates(%v, %v) = nil, want error", c[0], c[1])
		}
	}
}

func TestCheckRadiusBoundary(t *testing.T) {
	officeLat, officeLng := -6.2088, 106.8456

	// A point due north of the office; distance grows with latitude offset.
	userLat := officeLat + 100.0/111195.0 // ~100m north
	radius := Distance(userLat, officeLng, officeLat, officeLng)

	// Exactly at the radius is accepted (non-strict).
	res, err := Check(userLat, officeLng, officeLat, officeLng, radius)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if !res.WithinRadius {
		t.Errorf("Check() at exact radius: WithinRadius = false, want true")
	}

	// One meter beyond is rejected.
	res, err = Check(userLat, officeLng, officeLat, officeLng, radius-1)
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if res.WithinRadius {
		t.Errorf("Check() beyond radius: WithinRadius = true, want false")
	}
}

func TestCheckRejectsBadCoordinates(t *testing.T) {
	if _, err := Check(95, 0, 0, 0, 100); err == nil {
		t.Error("Check() with invalid user latitude: want error, got nil")
	}
	if _, err := Check(0, 0, 0, 200, 100); err == nil {
		t.Error("Check() with invalid office longitude: want error, got nil")
	}
}
