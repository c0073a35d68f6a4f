// Package tuiapp provides the TUI app which displays the filtered flight
// stream, updates continuously and can be interacted with.
// Layout idea:
// +-------------------------------------------------+
// | last update time: 00:00:00                      |
// |                                                 |
// | Nearest Aircraft                                |
// | DST: ... FNO: ... ALT: ... REG: ...             |
// | Fastest / Highest Aircraft                      |
// | SPD: ... FNO: ... ALT: ... REG: ...             |
// |  _____________________________________________  |
// | | current aircraft table                      | |
// | | entry 0                                     | |
// | | ...                                         | |
// | | entry N                                     | |
// |  ---------------------------------------------  |
// +-------------------------------------------------+
// .
package tuiapp

import (
	"log"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/micutio/flightdata/internal"
)

// Theme holds the colors used by the TUI widgets.
type Theme struct {
	Highlight lipgloss.Color
	Border    lipgloss.Color
}

func defaultTheme() Theme {
	return Theme{
		Highlight: lipgloss.Color("212"),
		Border:    lipgloss.Color("240"),
	}
}

func Run(appName string, options internal.Options) {
	logger := slog.Default()

	flightLog, logErr := internal.NewFlightLogFromOptions(options)
	if logErr != nil {
		logger.Error("unable to create flight log, exiting", slog.Any("error", logErr))
		os.Exit(1)
	}

	tracker := internal.NewTracker(options.Center, options.RadiusKm*1000, logger)

	theme := defaultTheme()
	tableStyle := newTableStyle(theme)

	m := model{
		appName:    appName,
		width:      0,
		height:     0,
		baseStyle:  lipgloss.NewStyle(),
		viewStyle:  lipgloss.NewStyle(),
		theme:      theme,
		flightTbl:  newFlightTable(tableStyle),
		tableStyle: tableStyle,
		lastUpdate: time.Time{},
		fetchErr:   nil,
		flightLog:  flightLog,
		tracker:    tracker,
	}

	// Create a new Bubble Tea program with the model and enable alternate screen
	p := tea.NewProgram(&m, tea.WithAltScreen())

	// Run the program and handle any errors
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
