package internal

import (
	"math"
)

// Inspired by https://github.com/LucaTheHacker/go-haversine

const (
	// earthRadiusMeters is the fixed sphere radius used for all great-circle
	// math. No projection or great-ellipse correction is applied.
	earthRadiusMeters float64 = 6371000
	piHalf            float64 = math.Pi / 180
)

func degreesToRadian(d float64) float64 {
	return d * piHalf
}

func radianToDegrees(r float64) float64 {
	return r / piHalf
}

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64
	Lon float64
}

// NewCoordinates returns a Coordinates struct based on parameters passed.
func NewCoordinates(lat, lon float64) Coordinates {
	return Coordinates{
		Lat: lat,
		Lon: lon,
	}
}

func (c Coordinates) toRadians() Coordinates {
	return Coordinates{
		Lat: degreesToRadian(c.Lat),
		Lon: degreesToRadian(c.Lon),
	}
}

// Dist holds the central angle between two coordinates. Multiply by a sphere
// radius to obtain a distance.
type Dist struct {
	C float64
}

// Meters returns the great-circle distance in meters.
func (d Dist) Meters() float64 {
	return d.C * earthRadiusMeters
}

// Kilometers returns the great-circle distance in kilometers.
func (d Dist) Kilometers() float64 {
	return d.C * earthRadiusMeters / 1000
}

// Distance calculates the great-circle distance between two coordinates
// using the haversine formula. It is symmetric in its arguments, zero for
// identical points and holds no shared state, so it is safe to call
// concurrently.
//
//nolint:mnd // readability of mathematic formula
func Distance(p, q Coordinates) Dist {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLat := toPos.Lat - fromPos.Lat
	deltaLon := toPos.Lon - fromPos.Lon

	a := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(fromPos.Lat)*
			math.Cos(toPos.Lat)*
			math.Pow(math.Sin(deltaLon/2), 2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return Dist{C: c}
}

// Bearing calculates the initial bearing (forward azimuth) from p towards q,
// normalized to [0, 360) degrees.
func Bearing(p, q Coordinates) float64 {
	fromPos := p.toRadians()
	toPos := q.toRadians()

	deltaLon := toPos.Lon - fromPos.Lon

	y := math.Sin(deltaLon) * math.Cos(toPos.Lat)
	x := math.Cos(fromPos.Lat)*math.Sin(toPos.Lat) -
		math.Sin(fromPos.Lat)*math.Cos(toPos.Lat)*math.Cos(deltaLon)

	brng := radianToDegrees(math.Atan2(y, x))

	// Atan2 ranges from -180 to +180, normalize to 0..360.
	return math.Mod(brng+360.0, 360.0) //nolint:mnd // readability
}

// compassDirections holds the 16-wind compass rose, clockwise from north.
var compassDirections = []string{ //nolint:gochecknoglobals // lookup table
	"N", "NNE", "NE", "ENE",
	"E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW",
	"W", "WNW", "NW", "NNW",
}

// CompassDirection maps a bearing in degrees onto the 16-wind compass rose.
func CompassDirection(bearing float64) string {
	const sector = 360.0 / 16.0

	idx := int(math.Mod(bearing+sector/2, 360.0) / sector)

	return compassDirections[idx]
}

// BoundingBox is an axis-aligned latitude/longitude box.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether the given coordinates lie within the box,
// boundaries included.
func (b BoundingBox) Contains(c Coordinates) bool {
	return c.Lat >= b.LatMin && c.Lat <= b.LatMax &&
		c.Lon >= b.LonMin && c.Lon <= b.LonMax
}
