package internal

import (
	"math"
	"testing"
)

func TestDistanceIdenticalPoints(t *testing.T) {
	points := []Coordinates{
		NewCoordinates(0, 0),
		NewCoordinates(37.7749, -122.4194),
		NewCoordinates(-89.9, 179.9),
	}

	for _, p := range points {
		if d := Distance(p, p).Meters(); d > 1.0 {
			t.Errorf("distance(%v, %v) = %f, want ~0", p, p, d)
		}
	}
}

func TestDistanceAntipodal(t *testing.T) {
	d := Distance(NewCoordinates(0, 0), NewCoordinates(0, 180)).Meters()

	// Half the circumference of the 6371 km sphere.
	if math.Abs(d-20015087) > 100000 {
		t.Errorf("antipodal distance = %f, want ~20015087", d)
	}
}

func TestDistanceSymmetric(t *testing.T) {
	sf := NewCoordinates(37.7749, -122.4194)
	la := NewCoordinates(34.0522, -118.2437)

	there := Distance(sf, la).Meters()
	back := Distance(la, sf).Meters()

	if math.Abs(there-back) > 1e-6 {
		t.Errorf("distance not symmetric: %f vs %f", there, back)
	}

	// Known distance SF to LA, roughly 559 km.
	if math.Abs(there-559000) > 5000 {
		t.Errorf("SF-LA distance = %f, want ~559 km", there)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name     string
		p1       Coordinates
		p2       Coordinates
		expected float64
	}{
		{
			name:     "Due North",
			p1:       NewCoordinates(0, 0),
			p2:       NewCoordinates(10, 0),
			expected: 0.0,
		},
		{
			name:     "Due East",
			p1:       NewCoordinates(0, 0),
			p2:       NewCoordinates(0, 10),
			expected: 90.0,
		},
		{
			name:     "Due South",
			p1:       NewCoordinates(10, 0),
			p2:       NewCoordinates(0, 0),
			expected: 180.0,
		},
		{
			name:     "Due West",
			p1:       NewCoordinates(0, 10),
			p2:       NewCoordinates(0, 0),
			expected: 270.0,
		},
		{
			name:     "New York to London", // Long distance calculation
			p1:       NewCoordinates(40.7128, -74.0060),
			p2:       NewCoordinates(51.5074, -0.1278),
			expected: 51.21,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Bearing(test.p1, test.p2)
			if math.Abs(got-test.expected) > 0.01 {
				t.Errorf("Bearing() = %f, want %f", got, test.expected)
			}
		})
	}
}

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		bearing  float64
		expected string
	}{
		{0, "N"},
		{11.24, "N"},
		{11.26, "NNE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{340, "NNW"},
		{359.9, "N"},
	}

	for _, test := range tests {
		if got := CompassDirection(test.bearing); got != test.expected {
			t.Errorf("CompassDirection(%f) = %s, want %s", test.bearing, got, test.expected)
		}
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{LatMin: 37, LatMax: 38, LonMin: -123, LonMax: -122}

	tests := []struct {
		name     string
		point    Coordinates
		expected bool
	}{
		{"inside", NewCoordinates(37.5, -122.5), true},
		{"on boundary", NewCoordinates(37, -122), true},
		{"north of box", NewCoordinates(38.1, -122.5), false},
		{"west of box", NewCoordinates(37.5, -123.5), false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := box.Contains(test.point); got != test.expected {
				t.Errorf("Contains(%v) = %v, want %v", test.point, got, test.expected)
			}
		})
	}
}
