package tuiapp

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/micutio/flightdata/internal"
)

// updateInterval determines the polling rate of the TUI against the
// tracking service.
const updateInterval = 30 * time.Second

type TickMsg time.Time

// FetchResultMsg carries one materialized fetch-and-filter cycle, or the
// error that aborted it.
type FetchResultMsg struct {
	Flights []internal.FlightRecord
	Err     error
}

func tick() tea.Cmd {
	return tea.Every(
		updateInterval,
		func(t time.Time) tea.Msg {
			return TickMsg(t)
		},
	)
}

// fetchFlightsCmd runs one fetch off the update loop. The lazy sequence is
// drained here so the Update method only ever handles ready data.
func fetchFlightsCmd(flightLog *internal.FlightLog) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), updateInterval)
		defer cancel()

		flights, err := flightLog.Flights(ctx)
		if err != nil {
			return FetchResultMsg{Flights: nil, Err: err}
		}

		var batch []internal.FlightRecord
		for rec := range flights {
			batch = append(batch, rec)
		}

		return FetchResultMsg{Flights: batch, Err: nil}
	}
}
