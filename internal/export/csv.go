package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"timelog/internal/domain"
	"timelog/internal/format"
)

// ErrNoEntries is returned when there is nothing to export. Callers
// surface it as a message instead of writing an empty file.
var ErrNoEntries = errors.New("nothing to export")

// DefaultCSVFileName is the file written when no path is given.
const DefaultCSVFileName = "time_logs.csv"

var csvHeader = []string{"Task", "Start Time", "End Time", "Duration", "Notes"}

// ToCSV writes all entries to a CSV file at path. The End Time column
// is empty for open entries and their Duration renders as zero.
// Quoting follows RFC 4180 via encoding/csv.
func ToCSV(entries []*domain.LogEntry, path string) error {
	if len(entries) == 0 {
		return ErrNoEntries
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range entries {
		endTime := ""
		if entry.EndTime != nil {
			endTime = format.Timestamp(*entry.EndTime, "")
		}
		record := []string{
			entry.TaskName,
			format.Timestamp(entry.StartTime, ""),
			endTime,
			format.Duration(entry.Duration()),
			entry.Notes,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
