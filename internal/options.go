package internal

// Options carries the run settings shared by the ticker and TUI apps,
// assembled from config file values and command line flags.
type Options struct {
	// Center is the watch location.
	Center Coordinates
	// RadiusKm is the watch radius around Center.
	RadiusKm float64
	// MinAlt and MaxAlt bound the altitude filter in meters; nil disables
	// the respective bound.
	MinAlt *float64
	MaxAlt *float64
	// OutputPath is where the ticker app appends records; empty disables
	// file export.
	OutputPath string
	// AsJSON selects JSON export over CSV.
	AsJSON bool
	// APIKey and UseRapidAPI select the authenticated endpoint.
	APIKey      string
	UseRapidAPI bool
}

// NewFlightLogFromOptions builds a client and a filtered flight log for the
// given options.
func NewFlightLogFromOptions(opts Options) (*FlightLog, error) {
	client, err := NewClient(ClientOptions{ //nolint:exhaustruct // transport defaults suffice
		APIKey:      opts.APIKey,
		UseRapidAPI: opts.UseRapidAPI,
	})
	if err != nil {
		return nil, err
	}

	flightLog := NewFlightLog(client, nil).
		WithinRadius(opts.Center, opts.RadiusKm*1000)

	if opts.MinAlt != nil {
		flightLog.AltitudeAbove(*opts.MinAlt)
	}

	if opts.MaxAlt != nil {
		flightLog.AltitudeBelow(*opts.MaxAlt)
	}

	return flightLog, nil
}
