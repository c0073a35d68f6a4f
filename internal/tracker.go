package internal

import (
	"iter"
	"log/slog"
	"math"
	"sort"
	"time"
)

// renotifyAfter determines how long an aircraft has to be gone from the
// watch radius before re-entering it raises another alert.
const renotifyAfter = 1 * time.Hour

// TrackedFlight is a flight record enriched with its relation to the watch
// center.
type TrackedFlight struct {
	FlightRecord

	// DistanceKm is the great-circle distance to the watch center, or +Inf
	// when the record carries no position.
	DistanceKm float64
	// Direction is the 16-wind compass direction from the watch center, or
	// empty when the record carries no position.
	Direction string
}

// ByDistance implements the comparator interface and allows sorting tracked
// flights by distance to the watch center. Flights without a position sort
// last.
type ByDistance []TrackedFlight

func (a ByDistance) Len() int           { return len(a) }
func (a ByDistance) Less(i, j int) bool { return a[i].DistanceKm < a[j].DistanceKm }
func (a ByDistance) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }

// ProximityAlert reports an aircraft newly arrived inside the watch radius.
type ProximityAlert struct {
	Flight TrackedFlight
}

// Tracker keeps the latest batch of filtered flights in relation to a fixed
// watch center. It powers the ticker and TUI front ends: sorted current
// batch, nearest/fastest/highest stats and proximity alerts.
//
// The tracker is the only stateful piece above the pipeline; it remembers
// which aircraft it has already alerted on so that one aircraft circling the
// area does not alert on every fetch.
type Tracker struct {
	Current []TrackedFlight
	Nearest *TrackedFlight
	Fastest *TrackedFlight
	Highest *TrackedFlight

	center       Coordinates
	radiusMeters float64
	lastAlerted  map[string]time.Time
	logger       *slog.Logger
}

// NewTracker returns a Tracker watching the given radius around center.
func NewTracker(center Coordinates, radiusMeters float64, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}

	return &Tracker{
		Current:      nil,
		Nearest:      nil,
		Fastest:      nil,
		Highest:      nil,
		center:       center,
		radiusMeters: radiusMeters,
		lastAlerted:  make(map[string]time.Time),
		logger:       logger,
	}
}

// Update replaces the current batch with the given flights and returns the
// proximity alerts raised by it. The sequence is consumed exactly once.
func (t *Tracker) Update(flights iter.Seq[FlightRecord]) []ProximityAlert {
	t.Current = t.Current[:0]

	for rec := range flights {
		tracked := TrackedFlight{
			FlightRecord: rec,
			DistanceKm:   math.Inf(1),
			Direction:    "",
		}

		if pos, ok := rec.Position(); ok {
			tracked.DistanceKm = Distance(t.center, pos).Kilometers()
			tracked.Direction = CompassDirection(Bearing(t.center, pos))
		}

		t.Current = append(t.Current, tracked)
	}

	sort.Sort(ByDistance(t.Current))
	t.updateStats()

	return t.collectAlerts(time.Now())
}

func (t *Tracker) updateStats() {
	t.Nearest = nil
	t.Fastest = nil
	t.Highest = nil

	for i := range t.Current {
		flight := &t.Current[i]

		if t.Nearest == nil && !math.IsInf(flight.DistanceKm, 1) {
			t.Nearest = flight
		}

		if flight.Speed != nil && (t.Fastest == nil || *flight.Speed > *t.Fastest.Speed) {
			t.Fastest = flight
		}

		if flight.Altitude != nil && (t.Highest == nil || *flight.Altitude > *t.Highest.Altitude) {
			t.Highest = flight
		}
	}
}

func (t *Tracker) collectAlerts(now time.Time) []ProximityAlert {
	var alerts []ProximityAlert

	for i := range t.Current {
		flight := &t.Current[i]

		// Unidentified aircraft are not alerted on.
		if flight.Icao == "" {
			continue
		}

		if flight.DistanceKm*1000 > t.radiusMeters {
			continue
		}

		if last, seen := t.lastAlerted[flight.Icao]; seen && now.Sub(last) < renotifyAfter {
			t.lastAlerted[flight.Icao] = now
			continue
		}

		t.lastAlerted[flight.Icao] = now
		alerts = append(alerts, ProximityAlert{Flight: *flight})

		t.logger.Debug("proximity alert",
			slog.String("icao", flight.Icao),
			slog.Float64("distanceKm", flight.DistanceKm))
	}

	return alerts
}
