package tuiapp

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/micutio/flightdata/internal"
)

// Error types

var errColumnMismatch = errors.New("number of columns does not match number of format columns")

// Automated Table Formatting

type tableColumnSizingOption int

const (
	// fixed column width, regardless of table width.
	fixed tableColumnSizingOption = iota
	// relative column width, given as percentage of the total table width.
	relative
	// fill columns receive any remaining table space, evenly distributed.
	fill
)

type columnFormat struct {
	option tableColumnSizingOption
	value  float32
}

type tableFormat struct {
	columnSizes        []columnFormat
	fixedWidth         int     // fixedWidth is the total space taken up by all fixed-width columns.
	fillWidthCount     int     // fillWidthCount indicates how many columns have fill width.
	totalRelativeWidth float32 // how much width is taken by relative columns.
}

func newTableFormat(items ...columnFormat) tableFormat {
	var totalRelativeWidth float32
	fixedWidth := 0
	fillWidthCount := 0

	for _, item := range items {
		switch item.option {
		case relative:
			totalRelativeWidth += item.value
			continue
		case fixed:
			fixedWidth += int(item.value)
			continue
		case fill:
			fillWidthCount++
			continue
		}
	}

	return tableFormat{
		columnSizes:        items,
		fixedWidth:         fixedWidth,
		fillWidthCount:     fillWidthCount,
		totalRelativeWidth: totalRelativeWidth,
	}
}

// Integrated Formatted Table Type

type autoFormatTable struct {
	table  table.Model
	format tableFormat
}

func (aft *autoFormatTable) resize(newWidth int) error {
	columnCount := len(aft.table.Columns())
	if columnCount != len(aft.format.columnSizes) {
		return fmt.Errorf(
			"table.resize: %w -> %d in table, %d in tableFormat",
			errColumnMismatch,
			columnCount,
			len(aft.format.columnSizes))
	}

	adjustedWidth := newWidth - 1 - columnCount
	aft.table.SetWidth(adjustedWidth)
	totalRelativeWidth := int(float32(adjustedWidth) * aft.format.totalRelativeWidth)
	totalFillWidth := adjustedWidth - totalRelativeWidth - aft.format.fixedWidth
	fillPerColumn := int(float32(totalFillWidth) / float32(aft.format.fillWidthCount))

	for idx := range columnCount {
		format := aft.format.columnSizes[idx]
		switch format.option {
		case fixed:
			aft.table.Columns()[idx].Width = int(format.value)
			continue
		case relative:
			aft.table.Columns()[idx].Width = int(format.value * float32(newWidth))
			continue
		case fill:
			aft.table.Columns()[idx].Width = fillPerColumn
			continue
		}
	}

	return nil
}

func (aft *autoFormatTable) setHeight(height int) {
	aft.table.SetHeight(height)
}

func newTableStyle(theme Theme) table.Styles {
	tableStyle := table.DefaultStyles()
	tableStyle.Selected = lipgloss.NewStyle().Background(theme.Highlight)

	return tableStyle
}

// newFlightTable builds the current aircraft table: distance and direction
// from the watch center, callsign, registration, type, altitude, speed and
// heading.
func newFlightTable(tableStyle table.Styles) autoFormatTable {
	dstLen := 7
	dirLen := 5
	fnoLen := 10
	regLen := 8
	numLen := 6
	initialTableHeight := 20

	format := newTableFormat(
		columnFormat{fixed, float32(dstLen)},
		columnFormat{fixed, float32(dirLen)},
		columnFormat{fixed, float32(fnoLen)},
		columnFormat{fixed, float32(regLen)},
		columnFormat{fill, 0.0},
		columnFormat{fixed, float32(numLen)},
		columnFormat{fixed, float32(numLen)},
		columnFormat{fixed, float32(numLen)},
	)

	flightTbl := table.New(
		// table header
		table.WithColumns(
			[]table.Column{
				{Title: "DST", Width: dstLen},
				{Title: "DIR", Width: dirLen},
				{Title: "FNO", Width: fnoLen},
				{Title: "REG", Width: regLen},
				{Title: "TID", Width: 0},
				{Title: "ALT", Width: numLen},
				{Title: "SPD", Width: numLen},
				{Title: "HDG", Width: numLen},
			},
		),
		table.WithRows([]table.Row{}),
		table.WithFocused(false),
		table.WithHeight(initialTableHeight),
		table.WithStyles(tableStyle),
	)

	return autoFormatTable{
		table:  flightTbl,
		format: format,
	}
}

// flightRows maps the tracker's current batch, already sorted by distance,
// onto table rows.
func flightRows(tracker *internal.Tracker) []table.Row {
	rows := make([]table.Row, 0, len(tracker.Current))

	for i := range tracker.Current {
		flight := &tracker.Current[i]

		dst := "n/a"
		if !math.IsInf(flight.DistanceKm, 1) {
			dst = fmt.Sprintf("%4.0f", flight.DistanceKm)
		}

		rows = append(rows, table.Row{
			dst,
			flight.Direction,
			flight.FlightOrUnknown(),
			flight.Registration,
			flight.Type,
			flight.AltitudeAsStr(),
			numCell(flight.Speed),
			numCell(flight.Track),
		})
	}

	return rows
}

func numCell(val *float64) string {
	if val == nil {
		return "n/a"
	}

	return fmt.Sprintf("%3.0f", *val)
}
