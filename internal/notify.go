package internal

import (
	"fmt"
	"io"
	"log" //nolint:depguard // console output, not diagnostics
	"math"

	"github.com/gen2brain/beeep"
)

const (
	// appIconPath is the file path to the icon png for this application.
	appIconPath = "./assets/icon.png"
)

// Notify writes flight events to the console and raises desktop
// notifications for proximity alerts.
type Notify struct {
	Stdout log.Logger
}

func NewNotify(appName string, consoleOut io.Writer) *Notify {
	beeep.AppName = appName //nolint:reassign // This is the only way to set app name in beeep.

	return &Notify{
		Stdout: *log.New(consoleOut, "", 0),
	}
}

// EmitProximityAlerts raises one desktop notification per aircraft that
// newly entered the watch radius.
func (notify *Notify) EmitProximityAlerts(alerts []ProximityAlert) {
	for i := range alerts {
		flight := &alerts[i].Flight
		notify.Stdout.Printf("aircraft overhead: %s at %.1f km %s\n",
			flight.String(), flight.DistanceKm, flight.Direction)

		msgBody := fmt.Sprintf("%s at %.1f km %s", flight.FlightOrUnknown(), flight.DistanceKm, flight.Direction)
		if err := beeep.Notify("Aircraft Overhead", msgBody, appIconPath); err != nil {
			notify.Stdout.Printf("failed to send notification: %v\n", err)
		}
	}
}

// PrintSummary prints the batch size along with the nearest, fastest and
// highest aircraft of the current batch.
func (notify *Notify) PrintSummary(tracker *Tracker) {
	notify.Stdout.Println("=== Summary ===")
	notify.Stdout.Printf("Tracked aircraft: %d\n", len(tracker.Current))

	notify.printStat("Nearest", tracker.Nearest)
	notify.printStat("Fastest", tracker.Fastest)
	notify.printStat("Highest", tracker.Highest)
	notify.Stdout.Println("=== End Summary ===")
}

func (notify *Notify) printStat(label string, flight *TrackedFlight) {
	if flight == nil {
		return
	}

	notify.Stdout.Printf("%s Aircraft:\n", label)

	if math.IsInf(flight.DistanceKm, 1) {
		notify.Stdout.Printf("  %s\n", flight.String())
	} else {
		notify.Stdout.Printf("  %s DST %4.0f km %s\n", flight.String(), flight.DistanceKm, flight.Direction)
	}
}
