package internal

import (
	"fmt"
	"iter"
	"log/slog"
	"math"
	"strings"
	"time"
)

// MalformedRecordError reports a single raw payload that failed
// normalization, e.g. a non-numeric value where a number is expected.
// One malformed payload never aborts the batch it arrived in.
type MalformedRecordError struct {
	Field string
	Value any
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed aircraft record: field %q has unexpected value %v (%T)", e.Field, e.Value, e.Value)
}

// Normalize maps one raw aircraft payload into a canonical FlightRecord.
//
// Field resolution follows the wire format, first present wins:
// altitude is alt_baro then alt_geom (in feet), climb rate is baro_rate then
// geom_rate (in ft/min), speed is gs (in knots), the timestamp is now
// (seconds) preferred over postime (milliseconds). Unrecognized keys are
// ignored.
//
// When convertToSI is true, altitude, speed and climb rate are converted to
// meters and m/s; otherwise the raw values pass through unmodified and the
// caller is responsible for knowing the units. The flag is fixed for the
// lifetime of the returned record.
//
// A raw value of exactly 0 for altitude or climb rate is indistinguishable
// from "field missing" and treated as absent. An aircraft on the ground at
// 0 ft therefore has no altitude; this mirrors the upstream feed's own
// behavior and is kept for compatibility.
func Normalize(raw map[string]any, convertToSI bool) (FlightRecord, error) {
	rec := FlightRecord{} //nolint:exhaustruct // fields are filled below

	icao, err := stringField(raw, "hex")
	if err != nil {
		return FlightRecord{}, err
	}
	rec.Icao = strings.ToUpper(icao)

	flight, err := stringField(raw, "flight")
	if err != nil {
		return FlightRecord{}, err
	}
	rec.Flight = strings.TrimSpace(flight)

	if rec.Registration, err = firstStringField(raw, "r", "registration"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Type, err = firstStringField(raw, "t", "type"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Lat, err = numField(raw, "lat"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Lon, err = numField(raw, "lon"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Altitude, err = firstNonZeroNumField(raw, "alt_baro", "alt_geom"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Speed, err = numField(raw, "gs"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Track, err = numField(raw, "track"); err != nil {
		return FlightRecord{}, err
	}

	if rec.VertRate, err = firstNonZeroNumField(raw, "baro_rate", "geom_rate"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Squawk, err = stringField(raw, "squawk"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Category, err = stringField(raw, "category"); err != nil {
		return FlightRecord{}, err
	}

	if rec.Emergency, err = stringField(raw, "emergency"); err != nil {
		return FlightRecord{}, err
	}

	if rec.ObservedAt, err = observationTime(raw); err != nil {
		return FlightRecord{}, err
	}

	if convertToSI {
		if rec.Altitude != nil {
			alt := FeetToMeters(*rec.Altitude)
			rec.Altitude = &alt
		}
		if rec.Speed != nil {
			spd := KnotsToMps(*rec.Speed)
			rec.Speed = &spd
		}
		if rec.VertRate != nil {
			rate := FeetPerMinToMps(*rec.VertRate)
			rec.VertRate = &rate
		}
	}

	return rec, nil
}

// NormalizeAll lazily normalizes a batch of raw payloads. Payloads that fail
// normalization are skipped and reported to the given logger; one bad record
// never blocks the rest of the stream. An empty batch yields an empty
// sequence.
func NormalizeAll(raws []map[string]any, convertToSI bool, logger *slog.Logger) iter.Seq[FlightRecord] {
	return func(yield func(FlightRecord) bool) {
		for _, raw := range raws {
			rec, err := Normalize(raw, convertToSI)
			if err != nil {
				logger.Warn("skipping aircraft record", slog.Any("error", err))
				continue
			}

			if !yield(rec) {
				return
			}
		}
	}
}

// observationTime resolves the record timestamp. The service clock field
// `now` (seconds) is preferred; the higher-resolution position-report field
// `postime` (milliseconds) is only consulted when `now` is absent.
func observationTime(raw map[string]any) (time.Time, error) {
	if val, ok := raw["now"]; ok {
		secs, err := asFloat("now", val)
		if err != nil {
			return time.Time{}, err
		}

		return epochToTime(secs), nil
	}

	if val, ok := raw["postime"]; ok {
		millis, err := asFloat("postime", val)
		if err != nil {
			return time.Time{}, err
		}

		return epochToTime(millis / 1000), nil
	}

	return time.Time{}, nil
}

func epochToTime(secs float64) time.Time {
	whole, frac := math.Modf(secs)

	return time.Unix(int64(whole), int64(frac*float64(time.Second)))
}

// stringField reads an optional string field; absence maps to "".
func stringField(raw map[string]any, key string) (string, error) {
	val, ok := raw[key]
	if !ok || val == nil {
		return "", nil
	}

	str, ok := val.(string)
	if !ok {
		return "", &MalformedRecordError{Field: key, Value: val}
	}

	return str, nil
}

// firstStringField returns the first of the given keys that carries a
// non-empty string.
func firstStringField(raw map[string]any, keys ...string) (string, error) {
	for _, key := range keys {
		str, err := stringField(raw, key)
		if err != nil {
			return "", err
		}

		if str != "" {
			return str, nil
		}
	}

	return "", nil
}

// numField reads an optional numeric field; absence maps to nil.
func numField(raw map[string]any, key string) (*float64, error) {
	val, ok := raw[key]
	if !ok || val == nil {
		return nil, nil
	}

	num, err := asFloat(key, val)
	if err != nil {
		return nil, err
	}

	return &num, nil
}

// firstNonZeroNumField returns the first of the given keys that carries a
// non-zero number. A zero value falls through to the next key, and to
// "absent" if no key remains; see the quirk note on Normalize.
// The feed encodes aircraft on the ground as the string "ground" in
// alt_baro, which falls through the same way.
func firstNonZeroNumField(raw map[string]any, keys ...string) (*float64, error) {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok || val == nil {
			continue
		}

		if _, isStr := val.(string); isStr {
			continue
		}

		num, err := asFloat(key, val)
		if err != nil {
			return nil, err
		}

		if num != 0 {
			return &num, nil
		}
	}

	return nil, nil
}

// asFloat coerces the numeric representations produced by JSON decoding.
func asFloat(key string, val any) (float64, error) {
	switch num := val.(type) {
	case float64:
		return num, nil
	case float32:
		return float64(num), nil
	case int:
		return float64(num), nil
	case int64:
		return float64(num), nil
	default:
		return 0, &MalformedRecordError{Field: key, Value: val}
	}
}
