package internal

import (
	"context"
	"iter"
	"log/slog"
)

// FlightLog ties the tracking client, the normalizer and a filter pipeline
// together: fetch once, normalize each payload, then stream the records
// through the configured stages. Every call performs an independent fetch;
// no records or pipeline state survive from one call to the next.
type FlightLog struct {
	client      *Client
	pipeline    *Pipeline
	convertToSI bool
	logger      *slog.Logger
}

// NewFlightLog returns a FlightLog with an empty pipeline and SI conversion
// enabled. A nil logger selects slog.Default.
func NewFlightLog(client *Client, logger *slog.Logger) *FlightLog {
	if logger == nil {
		logger = slog.Default()
	}

	return &FlightLog{
		client:      client,
		pipeline:    NewPipeline(),
		convertToSI: true,
		logger:      logger,
	}
}

// KeepRawUnits disables SI conversion; altitude, speed and climb rate then
// pass through in feet, knots and ft/min.
func (fl *FlightLog) KeepRawUnits() *FlightLog {
	fl.convertToSI = false

	return fl
}

// WithinRadius adds a geographic radius filter.
func (fl *FlightLog) WithinRadius(center Coordinates, radiusMeters float64) *FlightLog {
	fl.pipeline.WithinRadius(center, radiusMeters)

	return fl
}

// AltitudeAbove adds an altitude filter with only a lower bound.
func (fl *FlightLog) AltitudeAbove(minAlt float64) *FlightLog {
	fl.pipeline.AltitudeAbove(minAlt)

	return fl
}

// AltitudeBelow adds an altitude filter with only an upper bound.
func (fl *FlightLog) AltitudeBelow(maxAlt float64) *FlightLog {
	fl.pipeline.AltitudeBelow(maxAlt)

	return fl
}

// AltitudeBetween adds an altitude filter with both bounds, inclusive.
func (fl *FlightLog) AltitudeBetween(minAlt, maxAlt float64) *FlightLog {
	fl.pipeline.AltitudeBetween(minAlt, maxAlt)

	return fl
}

// Where adds a custom filter predicate.
func (fl *FlightLog) Where(pred Predicate) *FlightLog {
	fl.pipeline.Where(pred)

	return fl
}

// ClearFilters removes all filters.
func (fl *FlightLog) ClearFilters() *FlightLog {
	fl.pipeline.Clear()

	return fl
}

// Flights fetches all currently tracked aircraft and returns the filtered
// record sequence. The sequence is lazy and single-pass; a fetch failure is
// returned as an error and is never conflated with an empty result.
func (fl *FlightLog) Flights(ctx context.Context) (iter.Seq[FlightRecord], error) {
	raws, err := fl.client.FetchAll(ctx)
	if err != nil {
		return nil, err
	}

	return fl.pipeline.Apply(NormalizeAll(raws, fl.convertToSI, fl.logger)), nil
}

// FlightsInBounds restricts Flights to records positioned inside the given
// bounding box. Records without a position are dropped.
func (fl *FlightLog) FlightsInBounds(ctx context.Context, box BoundingBox) (iter.Seq[FlightRecord], error) {
	flights, err := fl.Flights(ctx)
	if err != nil {
		return nil, err
	}

	return FilterBy(flights, func(rec FlightRecord) bool {
		pos, ok := rec.Position()

		return ok && box.Contains(pos)
	}), nil
}

// FlightByAddress fetches the record for one aircraft by its ICAO hex
// address. Returns nil without error when the aircraft is not currently
// tracked.
func (fl *FlightLog) FlightByAddress(ctx context.Context, icao string) (*FlightRecord, error) {
	raws, err := fl.client.FetchByAddress(ctx, icao)
	if err != nil {
		return nil, err
	}

	for rec := range NormalizeAll(raws, fl.convertToSI, fl.logger) {
		return &rec, nil
	}

	return nil, nil //nolint:nilnil // absence of a tracked aircraft is not an error
}

// ExportCSV writes the filtered flights to a CSV file and returns the number
// of records written.
func (fl *FlightLog) ExportCSV(ctx context.Context, path string, appendMode bool) (int, error) {
	flights, err := fl.Flights(ctx)
	if err != nil {
		return 0, err
	}

	return LogToCSV(path, flights, appendMode, fl.logger)
}

// ExportJSON writes the filtered flights to a JSON file and returns the
// number of records written.
func (fl *FlightLog) ExportJSON(ctx context.Context, path string) (int, error) {
	flights, err := fl.Flights(ctx)
	if err != nil {
		return 0, err
	}

	return LogToJSON(path, flights, fl.logger)
}
