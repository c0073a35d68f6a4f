// Package tickerapp launches the ticker application which periodically
// fetches, filters and exports flight records and writes all updates to
// stdout, so it can be piped into other programs and processed further.
// This is in contrast to the TUI app, which works more like htop.
package tickerapp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/micutio/flightdata/internal"
)

const (
	// aircraftUpdateInterval determines the polling rate against the
	// tracking service.
	aircraftUpdateInterval = 30 * time.Second
	// summaryInterval determines how often the summary is shown.
	summaryInterval = 1 * time.Hour
)

func Run(appName string, options internal.Options) {
	fmt.Printf("%s launching at Lat: %.3f, Lon: %.3f\n", appName, options.Center.Lat, options.Center.Lon)

	logger := slog.Default()

	stdout := io.Writer(os.Stdout)
	notify := internal.NewNotify(appName, stdout)

	flightLog, logErr := internal.NewFlightLogFromOptions(options)
	if logErr != nil {
		logger.Error("unable to create flight log, exiting", slog.Any("error", logErr))
		os.Exit(1)
	}

	tracker := internal.NewTracker(options.Center, options.RadiusKm*1000, logger)

	// Create an aircraft update ticker that fires in a given interval
	aircraftUpdateTicker := time.NewTicker(aircraftUpdateInterval)
	defer aircraftUpdateTicker.Stop()

	// Create a summary ticker that fires in a given interval
	summaryTicker := time.NewTicker(summaryInterval)
	defer summaryTicker.Stop()

	// Use a channel to gracefully stop the program if needed.
	done := make(chan bool)

	// Start a goroutine to perform the requests
	go func() {
		for {
			select {
			case <-aircraftUpdateTicker.C:
				pollOnce(flightLog, tracker, notify, options, logger)
			case <-summaryTicker.C:
				notify.PrintSummary(tracker)
			case <-done:
				slog.Info("Stopping HTTP GET request routine.")

				return
			}
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	slog.Info("Shutdown signal received, stopping...")
	close(done)
}

// pollOnce performs one fetch-filter-export cycle. A transport failure only
// aborts this cycle; the next tick starts a fresh one.
func pollOnce(
	flightLog *internal.FlightLog,
	tracker *internal.Tracker,
	notify *internal.Notify,
	options internal.Options,
	logger *slog.Logger,
) {
	ctx, cancel := context.WithTimeout(context.Background(), aircraftUpdateInterval)
	defer cancel()

	flights, err := flightLog.Flights(ctx)
	if err != nil {
		logger.Error("fetch failed", slog.Any("error", err))

		return
	}

	alerts := tracker.Update(flights)
	notify.EmitProximityAlerts(alerts)

	if options.OutputPath == "" {
		return
	}

	if err := exportBatch(tracker, options, logger); err != nil {
		logger.Error("export failed", slog.Any("error", err))
	}
}

func exportBatch(tracker *internal.Tracker, options internal.Options, logger *slog.Logger) error {
	// Re-yield the already materialized batch, the exporters pull lazily.
	flights := func(yield func(internal.FlightRecord) bool) {
		for i := range tracker.Current {
			if !yield(tracker.Current[i].FlightRecord) {
				return
			}
		}
	}

	var err error
	if options.AsJSON {
		_, err = internal.LogToJSON(options.OutputPath, flights, logger)
	} else {
		_, err = internal.LogToCSV(options.OutputPath, flights, true, logger)
	}

	return err
}
