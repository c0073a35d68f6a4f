// Package internal provides the canonical flight record, the normalizer that
// produces it from raw ADS-B payloads, and the filter pipeline over record
// sequences.
package internal

import (
	"fmt"
	"strings"
	"time"
)

// See https://www.adsbexchange.com/version-2-api-wip/
// for further explanations of the raw fields consumed by the normalizer.

const (
	// flightUnknown is what we use for aircraft with missing flight number.
	flightUnknown = "unknown"
	// altitudeUnknown is what we use for aircraft without a given altitude.
	altitudeUnknown = "  n/a"
)

// FlightRecord is the canonical, unit-consistent representation of one
// aircraft's state at one observation instant. It is created once per raw
// payload and never mutated afterwards.
//
// Optional numeric fields are nil when the transponder did not report them.
// Optional string fields are empty when absent. Whether the numeric fields
// carry SI units (meters, m/s) or raw wire units (feet, knots, ft/min) is
// fixed at normalization time and does not change for the lifetime of the
// record.
type FlightRecord struct {
	Icao         string    // 24-bit transponder address as upper-case hex, empty if unidentified
	Flight       string    // callsign, trimmed
	Registration string    // tail number
	Type         string    // ICAO aircraft type designator
	Lat          *float64  // latitude in decimal degrees
	Lon          *float64  // longitude in decimal degrees
	Altitude     *float64  // barometric (preferred) or geometric altitude
	Speed        *float64  // ground speed
	Track        *float64  // true track over ground in degrees (0-359)
	VertRate     *float64  // barometric (preferred) or geometric climb rate
	Squawk       string    // Mode A code as 4 octal digits
	ObservedAt   time.Time // observation instant, zero if the payload carried no clock
	Category     string    // emitter category (A0-D7)
	Emergency    string    // emergency/priority status
}

// HasPosition reports whether the record carries both coordinates.
// A record with only one of lat/lon is treated as having no position.
func (r *FlightRecord) HasPosition() bool {
	return r.Lat != nil && r.Lon != nil
}

// Position returns the record's coordinates, or false if either is missing.
func (r *FlightRecord) Position() (Coordinates, bool) {
	if !r.HasPosition() {
		return Coordinates{}, false
	}

	return NewCoordinates(*r.Lat, *r.Lon), true
}

// FlightOrUnknown returns the callsign, or a placeholder if it was not
// transmitted.
func (r *FlightRecord) FlightOrUnknown() string {
	if r.Flight == "" {
		return flightUnknown
	}

	return r.Flight
}

// AltitudeAsStr formats the altitude without decimal places (unnecessary
// accuracy), or a placeholder if it was not transmitted.
func (r *FlightRecord) AltitudeAsStr() string {
	if r.Altitude == nil {
		return altitudeUnknown
	}

	return fmt.Sprintf("%5.0f", *r.Altitude)
}

// String generates a one-liner consisting of the most relevant information
// about the record.
func (r *FlightRecord) String() string {
	var sb strings.Builder
	sb.WriteString("ICAO ")
	sb.WriteString(r.Icao)
	sb.WriteString(" FNO ")
	sb.WriteString(r.FlightOrUnknown())
	sb.WriteString(" ALT ")
	sb.WriteString(r.AltitudeAsStr())

	if r.Speed != nil {
		fmt.Fprintf(&sb, " SPD %3.0f", *r.Speed)
	}

	if r.Registration != "" {
		sb.WriteString(" (")
		sb.WriteString(r.Registration)
		sb.WriteString(")")
	}

	return sb.String()
}

// ByFlight implements the comparator interface and allows sorting a list of
// flight records by callsign.
type ByFlight []FlightRecord

func (a ByFlight) Len() int           { return len(a) }
func (a ByFlight) Less(i, j int) bool { return a[i].Flight < a[j].Flight }
func (a ByFlight) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
