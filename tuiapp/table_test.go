package tuiapp

import (
	"math"
	"slices"
	"testing"

	"github.com/charmbracelet/bubbles/table"

	"github.com/micutio/flightdata/internal"
)

func TestTableFormat(t *testing.T) {
	tests := []struct {
		name                       string
		format                     tableFormat
		expectedFixedWidth         int
		expectedFillWidthCount     int
		expectedTotalRelativeWidth float32
	}{
		{
			name:                       "singleFixed",
			format:                     newTableFormat(columnFormat{fixed, 10.0}),
			expectedFixedWidth:         10,
			expectedFillWidthCount:     0,
			expectedTotalRelativeWidth: 0.0,
		},
		{
			name:                       "singleFill",
			format:                     newTableFormat(columnFormat{fill, 0.0}),
			expectedFixedWidth:         0,
			expectedFillWidthCount:     1,
			expectedTotalRelativeWidth: 0.0,
		},
		{
			name: "mixed",
			format: newTableFormat(
				columnFormat{fixed, 7},
				columnFormat{fill, 0},
				columnFormat{relative, 0.25},
				columnFormat{fixed, 5},
			),
			expectedFixedWidth:         12,
			expectedFillWidthCount:     1,
			expectedTotalRelativeWidth: 0.25,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if test.expectedFixedWidth != test.format.fixedWidth {
				t.Errorf(
					"Expected fixedWidth %d, got %d",
					test.expectedFixedWidth,
					test.format.fixedWidth)
			}

			if test.expectedFillWidthCount != test.format.fillWidthCount {
				t.Errorf(
					"Expected fillWidthCount %d, got %d",
					test.expectedFillWidthCount,
					test.format.fillWidthCount)
			}

			if test.expectedTotalRelativeWidth != test.format.totalRelativeWidth {
				t.Errorf(
					"Expected totalRelativeWidth %f, got %f",
					test.expectedTotalRelativeWidth,
					test.format.totalRelativeWidth)
			}
		})
	}
}

func TestAutoFormatTableResize(t *testing.T) {
	aft := autoFormatTable{
		table: table.New(
			table.WithColumns(
				[]table.Column{
					{Title: "A", Width: 10},
				},
			),
		),
		format: newTableFormat(columnFormat{fill, 0}),
	}

	if err := aft.resize(15); err != nil {
		t.Fatalf("resize(15) failed: %v", err)
	}

	if aft.table.Width() != 13 {
		t.Errorf("resized table width -> expected: 13, got: %d", aft.table.Width())
	}

	if aft.table.Columns()[0].Width != 12 {
		t.Errorf("resized column width -> expected: 12, got: %d", aft.table.Columns()[0].Width)
	}
}

func TestAutoFormatTableResizeColumnMismatch(t *testing.T) {
	aft := autoFormatTable{
		table: table.New(
			table.WithColumns(
				[]table.Column{
					{Title: "A", Width: 10},
					{Title: "B", Width: 10},
				},
			),
		),
		format: newTableFormat(columnFormat{fixed, 10}),
	}

	if err := aft.resize(40); err == nil {
		t.Error("resize must fail when format and table column counts differ")
	}
}

func TestFlightRows(t *testing.T) {
	lat := 37.78
	lon := -122.42
	alt := 10668.0

	tracker := internal.NewTracker(internal.NewCoordinates(37.7749, -122.4194), 20000, nil)
	tracker.Update(slices.Values([]internal.FlightRecord{
		{ //nolint:exhaustruct // convenience for testing
			Icao:     "AAA111",
			Flight:   "UAL123",
			Lat:      &lat,
			Lon:      &lon,
			Altitude: &alt,
		},
		{ //nolint:exhaustruct // convenience for testing
			Icao: "BBB222",
		},
	}))

	rows := flightRows(tracker)
	if len(rows) != 2 {
		t.Fatalf("want 2 rows, got %d", len(rows))
	}

	if rows[0][2] != "UAL123" {
		t.Errorf("want callsign UAL123, got %q", rows[0][2])
	}

	// The positionless flight sorts last and shows no distance.
	if rows[1][0] != "n/a" {
		t.Errorf("want n/a distance, got %q", rows[1][0])
	}

	if math.IsInf(tracker.Current[0].DistanceKm, 1) {
		t.Error("distance of positioned flight must be computed")
	}
}
