// Package main provides the flight data logging application
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/micutio/flightdata/internal"
	"github.com/micutio/flightdata/tickerapp"
	"github.com/micutio/flightdata/tuiapp"
)

const (
	// thisAppName is the name of this application as shown on notifications.
	thisAppName = "flightdata"
)

func main() {
	var argIsUseTicker bool
	var argIsInitConfig bool
	var argLatLon []float64
	var argRadiusKm float64
	var argMinAlt float64
	var argMaxAlt float64
	var argIcao string
	var argOut string
	var argAsJSON bool
	var argAPIKey string

	setupCommandLineFlags(
		&argIsUseTicker,
		&argIsInitConfig,
		&argLatLon,
		&argRadiusKm,
		&argMinAlt,
		&argMaxAlt,
		&argIcao,
		&argOut,
		&argAsJSON,
		&argAPIKey)

	// Parse all arguments provided to the program on launch.
	pflag.Parse()

	if pflag.CommandLine.Changed("latlon") && len(argLatLon) != 2 {
		fmt.Fprintln(os.Stderr, "flag --latlon requires exactly two values: lat,lon")
		os.Exit(1)
	}

	if argIsInitConfig {
		if err := internal.SaveTemplate(".flightdata.json"); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write config template: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("configuration template saved to .flightdata.json")

		return
	}

	cfg, cfgErr := internal.LoadConfig()
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", cfgErr)
		os.Exit(1)
	}

	options := optionsFromFlagsAndConfig(cfg, argLatLon, argRadiusKm, argMinAlt, argMaxAlt, argOut, argAsJSON, argAPIKey)

	if argIcao != "" {
		lookupAircraft(options, argIcao)

		return
	}

	if argIsUseTicker {
		tickerapp.Run(thisAppName, options)
	} else {
		tuiapp.Run(thisAppName, options)
	}
}

// lookupAircraft fetches and prints a single aircraft by its ICAO hex
// address, then exits.
func lookupAircraft(options internal.Options, icao string) {
	flightLog, err := internal.NewFlightLogFromOptions(options)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create flight log: %v\n", err)
		os.Exit(1)
	}

	rec, err := flightLog.FlightByAddress(context.Background(), icao)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		os.Exit(1)
	}

	if rec == nil {
		fmt.Printf("aircraft %s is not currently tracked\n", icao)

		return
	}

	fmt.Println(rec.String())
}

// optionsFromFlagsAndConfig layers explicitly set flags over config file
// values.
func optionsFromFlagsAndConfig(
	cfg internal.Config,
	argLatLon []float64,
	argRadiusKm float64,
	argMinAlt float64,
	argMaxAlt float64,
	argOut string,
	argAsJSON bool,
	argAPIKey string,
) internal.Options {
	center := cfg.DefaultCenter()
	if pflag.CommandLine.Changed("latlon") {
		center = internal.NewCoordinates(argLatLon[0], argLatLon[1])
	}

	radiusKm := cfg.DefaultRadiusKm
	if pflag.CommandLine.Changed("radius") || radiusKm == 0 {
		radiusKm = argRadiusKm
	}

	apiKey := cfg.APIKey
	if argAPIKey != "" {
		apiKey = argAPIKey
	}

	options := internal.Options{
		Center:      center,
		RadiusKm:    radiusKm,
		MinAlt:      nil,
		MaxAlt:      nil,
		OutputPath:  argOut,
		AsJSON:      argAsJSON,
		APIKey:      apiKey,
		UseRapidAPI: cfg.UseRapidAPI || argAPIKey != "",
	}

	if pflag.CommandLine.Changed("min-alt") {
		options.MinAlt = &argMinAlt
	}

	if pflag.CommandLine.Changed("max-alt") {
		options.MaxAlt = &argMaxAlt
	}

	return options
}

func setupCommandLineFlags(
	argIsUseTicker *bool,
	argIsInitConfig *bool,
	argLatLon *[]float64,
	argRadiusKm *float64,
	argMinAlt *float64,
	argMaxAlt *float64,
	argIcao *string,
	argOut *string,
	argAsJSON *bool,
	argAPIKey *string,
) {
	// Whether to launch the Ticker or TUI app.
	pflag.BoolVarP(
		argIsUseTicker,
		"ticker",
		"t",
		false,
		"print flight updates on the command line without TUI")
	pflag.Lookup("ticker").NoOptDefVal = "true"

	pflag.BoolVar(
		argIsInitConfig,
		"init-config",
		false,
		"write a configuration template to .flightdata.json and exit")

	// Location to watch, provided as lat,lon coordinates
	pflag.Float64SliceVarP(
		argLatLon,
		"latlon",
		"l",
		[]float64{0, 0},
		"define the location where to watch for flights")

	pflag.Float64VarP(
		argRadiusKm,
		"radius",
		"r",
		100, //nolint:mnd // default radius in km
		"watch radius around the location in kilometers")

	pflag.Float64Var(
		argMinAlt,
		"min-alt",
		0,
		"only keep flights at or above this altitude in meters")

	pflag.Float64Var(
		argMaxAlt,
		"max-alt",
		0,
		"only keep flights at or below this altitude in meters")

	pflag.StringVar(
		argIcao,
		"icao",
		"",
		"look up a single aircraft by its ICAO hex address and exit")

	pflag.StringVarP(
		argOut,
		"out",
		"o",
		"",
		"append filtered flights to this file (ticker mode)")

	pflag.BoolVar(
		argAsJSON,
		"json",
		false,
		"export as JSON instead of CSV")

	pflag.StringVar(
		argAPIKey,
		"api-key",
		"",
		"RapidAPI key; selects the authenticated endpoint")
}
