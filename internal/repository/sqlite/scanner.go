package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// ScanLogEntry scans a single log entry from a database row.
// Time columns are stored as RFC3339 TEXT, so they are scanned into
// strings and parsed rather than relying on driver conversion.
func ScanLogEntry(scanner Scanner) (*LogEntry, error) {
	entry := &LogEntry{}
	var startTime string
	var endTime sql.NullString

	err := scanner.Scan(
		&entry.ID,
		&entry.TaskName,
		&startTime,
		&endTime,
		&entry.Notes,
	)
	if err != nil {
		return nil, err
	}

	entry.StartTime, err = ParseTimeFromDB(startTime)
	if err != nil {
		return nil, err
	}

	entry.EndTime, err = ParseTimePtrFromDB(endTime)
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanLogEntries scans multiple log entries from database rows
func ScanLogEntries(rows Rows) ([]*LogEntry, error) {
	var entries []*LogEntry
	for rows.Next() {
		entry, err := ScanLogEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// ScanTaskNames scans a single task_name column from database rows
func ScanTaskNames(rows Rows) ([]string, error) {
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return names, nil
}
