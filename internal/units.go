package internal

// Conversion factors between the units used on the wire and SI units.
// ADS-B reports altitude in feet, ground speed in knots and climb rate in
// feet per minute.
const (
	knotsToMps      float64 = 0.514444444
	feetPerMinToMps float64 = 5.08e-3
	feetToMeters    float64 = 0.3048
)

// KnotsToMps converts a ground speed in knots to meters per second.
func KnotsToMps(knots float64) float64 {
	return knots * knotsToMps
}

// FeetPerMinToMps converts a climb or sink rate in feet per minute to
// meters per second.
func FeetPerMinToMps(fpm float64) float64 {
	return fpm * feetPerMinToMps
}

// FeetToMeters converts an altitude in feet to meters.
func FeetToMeters(feet float64) float64 {
	return feet * feetToMeters
}
