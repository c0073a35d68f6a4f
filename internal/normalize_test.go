package internal

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
	"time"
)

func TestNormalizeFieldFallbacks(t *testing.T) {
	tests := []struct {
		name  string
		raw   map[string]any
		check func(t *testing.T, rec FlightRecord)
	}{
		{
			name: "hex is upper-cased",
			raw:  map[string]any{"hex": "a1b2c3"},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Icao != "A1B2C3" {
					t.Errorf("want A1B2C3, got %v", rec.Icao)
				}
			},
		},
		{
			name: "missing hex is empty, not an error",
			raw:  map[string]any{"flight": "UAL123"},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Icao != "" {
					t.Errorf("want empty icao, got %v", rec.Icao)
				}
			},
		},
		{
			name: "flight is trimmed",
			raw:  map[string]any{"hex": "abc123", "flight": "SIA106  "},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Flight != "SIA106" {
					t.Errorf("want SIA106, got %q", rec.Flight)
				}
			},
		},
		{
			name: "whitespace-only flight becomes absent",
			raw:  map[string]any{"hex": "abc123", "flight": "   "},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Flight != "" {
					t.Errorf("want absent flight, got %q", rec.Flight)
				}
			},
		},
		{
			name: "registration prefers r over registration",
			raw:  map[string]any{"hex": "abc123", "r": "9V-SKA", "registration": "ignored"},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Registration != "9V-SKA" {
					t.Errorf("want 9V-SKA, got %v", rec.Registration)
				}
			},
		},
		{
			name: "registration falls back to long key",
			raw:  map[string]any{"hex": "abc123", "registration": "D-ABCD"},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Registration != "D-ABCD" {
					t.Errorf("want D-ABCD, got %v", rec.Registration)
				}
			},
		},
		{
			name: "type prefers t over type",
			raw:  map[string]any{"hex": "abc123", "t": "A388", "type": "adsb_icao"},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				if rec.Type != "A388" {
					t.Errorf("want A388, got %v", rec.Type)
				}
			},
		},
		{
			name: "vertical rate prefers baro_rate",
			raw:  map[string]any{"hex": "abc123", "baro_rate": -1024.0, "geom_rate": 512.0},
			check: func(t *testing.T, rec FlightRecord) {
				t.Helper()
				want := FeetPerMinToMps(-1024)
				if rec.VertRate == nil || math.Abs(*rec.VertRate-want) > 1e-9 {
					t.Errorf("want %v, got %v", want, rec.VertRate)
				}
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec, err := Normalize(test.raw, true)
			if err != nil {
				t.Fatalf("Normalize() failed: %v", err)
			}

			test.check(t, rec)
		})
	}
}

func TestNormalizeUnitConversion(t *testing.T) {
	raw := map[string]any{
		"hex":      "abc123",
		"alt_baro": 35000.0,
		"gs":       450.0,
	}

	rec, err := Normalize(raw, true)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if rec.Altitude == nil || math.Abs(*rec.Altitude-10668.0) > 0.01 {
		t.Errorf("altitude: want 10668.0 m, got %v", rec.Altitude)
	}

	if rec.Speed == nil || math.Abs(*rec.Speed-231.5) > 0.01 {
		t.Errorf("speed: want 231.5 m/s, got %v", rec.Speed)
	}
}

func TestNormalizeRawUnitsPassThrough(t *testing.T) {
	raw := map[string]any{
		"hex":      "abc123",
		"alt_baro": 35000.0,
		"gs":       450.0,
	}

	rec, err := Normalize(raw, false)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	if rec.Altitude == nil || *rec.Altitude != 35000.0 {
		t.Errorf("altitude: want raw 35000, got %v", rec.Altitude)
	}

	if rec.Speed == nil || *rec.Speed != 450.0 {
		t.Errorf("speed: want raw 450, got %v", rec.Speed)
	}
}

// A raw altitude of exactly 0 is indistinguishable from a missing field and
// falls through to the next source, or to absent.
func TestNormalizeAltitudeZeroQuirk(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want *float64
	}{
		{
			name: "zero alt_baro falls through to alt_geom",
			raw:  map[string]any{"hex": "abc123", "alt_baro": 0.0, "alt_geom": 1000.0},
			want: floatPtr(FeetToMeters(1000)),
		},
		{
			name: "both zero means absent",
			raw:  map[string]any{"hex": "abc123", "alt_baro": 0.0, "alt_geom": 0.0},
			want: nil,
		},
		{
			name: "on-ground marker falls through to alt_geom",
			raw:  map[string]any{"hex": "abc123", "alt_baro": "ground", "alt_geom": 250.0},
			want: floatPtr(FeetToMeters(250)),
		},
		{
			name: "on-ground marker alone means absent",
			raw:  map[string]any{"hex": "abc123", "alt_baro": "ground"},
			want: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec, err := Normalize(test.raw, true)
			if err != nil {
				t.Fatalf("Normalize() failed: %v", err)
			}

			switch {
			case test.want == nil && rec.Altitude != nil:
				t.Errorf("want absent altitude, got %v", *rec.Altitude)
			case test.want != nil && rec.Altitude == nil:
				t.Errorf("want %v, got absent altitude", *test.want)
			case test.want != nil && math.Abs(*rec.Altitude-*test.want) > 1e-9:
				t.Errorf("want %v, got %v", *test.want, *rec.Altitude)
			}
		})
	}
}

func TestNormalizeObservationTime(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want time.Time
	}{
		{
			name: "now in seconds preferred",
			raw:  map[string]any{"hex": "abc123", "now": 1700000000.0, "postime": 1600000000000.0},
			want: time.Unix(1700000000, 0),
		},
		{
			name: "postime in milliseconds as fallback",
			raw:  map[string]any{"hex": "abc123", "postime": 1700000000500.0},
			want: time.Unix(1700000000, int64(500*time.Millisecond)),
		},
		{
			name: "no clock means zero time",
			raw:  map[string]any{"hex": "abc123"},
			want: time.Time{},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			rec, err := Normalize(test.raw, true)
			if err != nil {
				t.Fatalf("Normalize() failed: %v", err)
			}

			if !rec.ObservedAt.Equal(test.want) {
				t.Errorf("want %v, got %v", test.want, rec.ObservedAt)
			}
		})
	}
}

func TestNormalizeMalformedPayload(t *testing.T) {
	raw := map[string]any{"hex": "abc123", "gs": "very fast"}

	_, err := Normalize(raw, true)
	if err == nil {
		t.Fatal("want error for non-numeric gs, got nil")
	}

	var malformed *MalformedRecordError
	if !errors.As(err, &malformed) {
		t.Errorf("want MalformedRecordError, got %T", err)
	}

	if malformed.Field != "gs" {
		t.Errorf("want field gs, got %q", malformed.Field)
	}
}

func TestNormalizeAllSkipsMalformed(t *testing.T) {
	raws := []map[string]any{
		{"hex": "aaa111", "gs": 400.0},
		{"hex": "bbb222", "gs": "broken"},
		{"hex": "ccc333", "gs": 410.0},
	}

	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	var got []string
	for rec := range NormalizeAll(raws, true, logger) {
		got = append(got, rec.Icao)
	}

	want := []string{"AAA111", "CCC333"}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("want %v, got %v", want, got)
	}

	if !strings.Contains(logBuf.String(), "skipping aircraft record") {
		t.Errorf("want diagnostic for skipped record, got log: %q", logBuf.String())
	}
}

func TestNormalizeAllEmptyBatch(t *testing.T) {
	count := 0
	for range NormalizeAll(nil, true, slog.Default()) {
		count++
	}

	if count != 0 {
		t.Errorf("want empty sequence, got %d records", count)
	}
}

func TestNormalizeMissingPositionAbsent(t *testing.T) {
	rec, err := Normalize(map[string]any{"hex": "abc123", "lat": 1.25}, true)
	if err != nil {
		t.Fatalf("Normalize() failed: %v", err)
	}

	// One coordinate without the other still counts as "no position".
	if rec.HasPosition() {
		t.Error("record with only lat must not have a position")
	}
}

func floatPtr(val float64) *float64 {
	return &val
}
