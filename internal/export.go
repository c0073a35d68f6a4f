package internal

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"log/slog"
	"os"
	"strconv"
	"time"
)

// exportProgressEvery determines how often export progress is logged.
const exportProgressEvery = 100

// csvHeader lists the exported fields in column order. The JSON exporter
// uses the same names as object keys.
var csvHeader = []string{ //nolint:gochecknoglobals // fixed export schema
	"icao",
	"flight",
	"registration",
	"type",
	"lat",
	"lon",
	"altitude",
	"speed",
	"track",
	"vert_rate",
	"squawk",
	"timestamp",
	"category",
	"emergency",
}

// csvRow maps a record onto the header columns. Absent fields become empty
// cells; the timestamp is serialized as ISO-8601, never as a numeric epoch.
func csvRow(rec *FlightRecord) []string {
	return []string{
		rec.Icao,
		rec.Flight,
		rec.Registration,
		rec.Type,
		floatCell(rec.Lat),
		floatCell(rec.Lon),
		floatCell(rec.Altitude),
		floatCell(rec.Speed),
		floatCell(rec.Track),
		floatCell(rec.VertRate),
		rec.Squawk,
		timeCell(rec.ObservedAt),
		rec.Category,
		rec.Emergency,
	}
}

func floatCell(val *float64) string {
	if val == nil {
		return ""
	}

	return strconv.FormatFloat(*val, 'f', -1, 64)
}

func timeCell(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339)
}

// exportMap flattens a record into field-name-to-value form for the JSON
// exporter. Absent fields are kept as nulls so every object carries the full
// schema.
func exportMap(rec *FlightRecord) map[string]any {
	out := map[string]any{
		"icao":         rec.Icao,
		"flight":       nullableStr(rec.Flight),
		"registration": nullableStr(rec.Registration),
		"type":         nullableStr(rec.Type),
		"lat":          nullableNum(rec.Lat),
		"lon":          nullableNum(rec.Lon),
		"altitude":     nullableNum(rec.Altitude),
		"speed":        nullableNum(rec.Speed),
		"track":        nullableNum(rec.Track),
		"vert_rate":    nullableNum(rec.VertRate),
		"squawk":       nullableStr(rec.Squawk),
		"category":     nullableStr(rec.Category),
		"emergency":    nullableStr(rec.Emergency),
	}

	if rec.ObservedAt.IsZero() {
		out["timestamp"] = nil
	} else {
		out["timestamp"] = rec.ObservedAt.Format(time.RFC3339)
	}

	return out
}

func nullableStr(str string) any {
	if str == "" {
		return nil
	}

	return str
}

func nullableNum(val *float64) any {
	if val == nil {
		return nil
	}

	return *val
}

// WriteCSV streams the flights into w as CSV rows and returns the number of
// records written.
func WriteCSV(w io.Writer, flights iter.Seq[FlightRecord], writeHeader bool, logger *slog.Logger) (int, error) {
	writer := csv.NewWriter(w)

	if writeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return 0, fmt.Errorf("writeCSV: failed to write header: %w", err)
		}
	}

	count := 0
	for rec := range flights {
		if err := writer.Write(csvRow(&rec)); err != nil {
			return count, fmt.Errorf("writeCSV: failed to write record: %w", err)
		}

		count++
		if count%exportProgressEvery == 0 {
			logger.Info("export progress", slog.Int("records", count))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return count, fmt.Errorf("writeCSV: failed to flush: %w", err)
	}

	return count, nil
}

// WriteJSON writes the flights into w as an indented JSON array and returns
// the number of records written. Unlike the CSV path this materializes the
// batch, since a JSON array cannot be appended to incrementally.
func WriteJSON(w io.Writer, flights iter.Seq[FlightRecord]) (int, error) {
	records := make([]map[string]any, 0)
	for rec := range flights {
		records = append(records, exportMap(&rec))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(records); err != nil {
		return 0, fmt.Errorf("writeJSON: failed to encode records: %w", err)
	}

	return len(records), nil
}

// LogToCSV writes the flights to a CSV file. In append mode rows are added
// to an existing file and the header is only written when the file is fresh.
func LogToCSV(path string, flights iter.Seq[FlightRecord], appendMode bool, logger *slog.Logger) (int, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	writeHeader := true
	if appendMode {
		if info, err := os.Stat(path); err == nil && info.Size() > 0 {
			writeHeader = false
		}
	}

	file, openErr := os.OpenFile(path, flags, 0o644)
	if openErr != nil {
		return 0, fmt.Errorf("logToCSV: failed to open file: %w", openErr)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("logToCSV: error while closing file", slog.String("path", path), slog.Any("error", closeErr))
		}
	}()

	logger.Info("logging to CSV file", slog.String("path", path))

	count, err := WriteCSV(file, flights, writeHeader, logger)
	if err != nil {
		return count, err
	}

	logger.Info("export done", slog.Int("records", count))

	return count, nil
}

// LogToJSON writes the flights to a JSON file.
func LogToJSON(path string, flights iter.Seq[FlightRecord], logger *slog.Logger) (int, error) {
	file, createErr := os.Create(path)
	if createErr != nil {
		return 0, fmt.Errorf("logToJSON: failed to create file: %w", createErr)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			logger.Warn("logToJSON: error while closing file", slog.String("path", path), slog.Any("error", closeErr))
		}
	}()

	logger.Info("logging to JSON file", slog.String("path", path))

	count, err := WriteJSON(file, flights)
	if err != nil {
		return count, err
	}

	logger.Info("export done", slog.Int("records", count))

	return count, nil
}
