package tuiapp

import (
	"fmt"
	"math"
	"slices"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charmbracelet/bubbles/table"

	"github.com/micutio/flightdata/internal"
)

// Model implements the bubbletea.Model interface, which requires three methods:
// - Init() Cmd
// - Update(Msg) (Model, Cmd)
// - View() string
// This forms the base for the TUI app.
type model struct {
	appName string
	width   int
	height  int

	baseStyle  lipgloss.Style
	viewStyle  lipgloss.Style
	theme      Theme
	flightTbl  autoFormatTable
	tableStyle table.Styles

	lastUpdate time.Time
	fetchErr   error
	flightLog  *internal.FlightLog
	tracker    *internal.Tracker
}

// Init fetches immediately and schedules the periodic updates.
func (m *model) Init() tea.Cmd {
	return tea.Batch(fetchFlightsCmd(m.flightLog), tick())
}

// Update takes a tea.Msg as input and uses a type switch to handle different
// types of messages.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { //nolint:ireturn // required by interface
	switch thisMsg := msg.(type) {
	// message is sent when the window size changes
	case tea.WindowSizeMsg:
		m.height = thisMsg.Height
		m.width = thisMsg.Width
		_ = m.flightTbl.resize(m.width)
		m.flightTbl.setHeight(m.height - headerHeight)

	// message is sent when a key is pressed.
	case tea.KeyMsg:
		switch thisMsg.String() {
		// Toggles the focus state of the aircraft table
		case "esc":
			if m.flightTbl.table.Focused() {
				m.tableStyle.Selected = m.baseStyle
				m.flightTbl.table.SetStyles(m.tableStyle)
				m.flightTbl.table.Blur()
			} else {
				m.tableStyle.Selected = m.tableStyle.Selected.Background(m.theme.Highlight)
				m.flightTbl.table.SetStyles(m.tableStyle)
				m.flightTbl.table.Focus()
			}
		// Moves the focus up in the aircraft table if the table is focused.
		case "up", "k":
			if m.flightTbl.table.Focused() {
				m.flightTbl.table.MoveUp(1)
			}
		// Moves the focus down in the aircraft table if the table is focused.
		case "down", "j":
			if m.flightTbl.table.Focused() {
				m.flightTbl.table.MoveDown(1)
			}
		// Quits the program by returning the tea.Quit command.
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		return m, tea.Batch(fetchFlightsCmd(m.flightLog), tick())
	case FetchResultMsg:
		m.lastUpdate = time.Now()
		m.fetchErr = thisMsg.Err

		if thisMsg.Err == nil {
			m.tracker.Update(slices.Values(thisMsg.Flights))
			m.flightTbl.table.SetRows(flightRows(m.tracker))
		}

		return m, nil // the next request is scheduled by the ticker.
	}

	// If the message type does not match any of the handled cases, the model
	// is returned unchanged, and no new command is issued.
	return m, nil
}

const headerHeight = 10

func (m *model) View() string {
	column := m.baseStyle.Width(m.width).Padding(1, 0, 0, 0).Render
	content := m.baseStyle.
		Width(m.width).
		Height(m.height).
		Render(
			// Vertically join multiple elements aligned to the left.
			lipgloss.JoinVertical(lipgloss.Left,
				column(m.viewHeader()),
				column(m.viewFlights()),
			),
		)

	return content
}

// viewHeader displays the last update time and the nearest, fastest and
// highest aircraft in a structured format.
func (m *model) viewHeader() string {
	listHeader := m.baseStyle.Bold(true).Render

	listItem := func(key string, value string) string {
		return fmt.Sprintf("%s %s", m.baseStyle.Render(key+":"), m.baseStyle.Align(lipgloss.Right).Render(value))
	}

	stat := func(label string, flight *internal.TrackedFlight) string {
		if flight == nil {
			return ""
		}

		dst := "    n/a"
		if !math.IsInf(flight.DistanceKm, 1) {
			dst = fmt.Sprintf("%4.0f km %s", flight.DistanceKm, flight.Direction)
		}

		return lipgloss.JoinVertical(lipgloss.Left,
			listHeader(label),
			lipgloss.JoinHorizontal(
				lipgloss.Left,
				listItem("DST", dst),
				listItem("FNO", flight.FlightOrUnknown()),
				listItem("ALT", flight.AltitudeAsStr()),
				listItem("REG", flight.Registration),
			),
		)
	}

	status := fmt.Sprintf("%s | Last update: %.0f seconds ago", m.appName, time.Since(m.lastUpdate).Seconds())
	if m.fetchErr != nil {
		status = fmt.Sprintf("%s | Last fetch failed: %v", m.appName, m.fetchErr)
	}

	return m.viewStyle.Render(
		lipgloss.JoinVertical(lipgloss.Top,
			status,
			stat("Nearest", m.tracker.Nearest),
			stat("Fastest", m.tracker.Fastest),
			stat("Highest", m.tracker.Highest),
		),
	)
}

func (m *model) viewFlights() string {
	return m.viewStyle.Render(m.flightTbl.table.View())
}
