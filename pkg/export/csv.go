// Package export writes query results to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	sfcore "github.com/natserract/sfcli/pkg/salesforce/core"
	"go.uber.org/zap"
)

// CSVExporter serializes records to a CSV file, one export per call.
type CSVExporter struct {
	logger *zap.Logger
}

func NewCSVExporter(logger *zap.Logger) *CSVExporter {
	return &CSVExporter{logger: logger}
}

// Export writes a header row followed by one row per record, overwriting any
// existing file at path. Column order is the given column list; a record
// missing a column renders an empty cell. With no records the file still
// gets the header row, so re-running an export is always deterministic.
func (e *CSVExporter) Export(path string, columns []string, records []sfcore.Record) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to export")
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, record := range records {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = formatCell(record[col])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush export file: %w", err)
	}

	e.logger.Info("Export written",
		zap.String("path", path),
		zap.Int("records", len(records)))

	return nil
}

// DefaultFilename returns the conventional export filename for an object,
// e.g. Contact_export_20260828_153000.csv.
func DefaultFilename(objectType sfcore.ObjectType, now time.Time) string {
	return fmt.Sprintf("%s_export_%s.csv", objectType, now.Format("20060102_150405"))
}

func formatCell(v interface{}) string {
	if v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		// JSON numbers decode as float64; render integers without a decimal point.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%v", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
